// SPDX-License-Identifier: Unlicense OR MIT

package frame

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// packNaive is the obvious per-pixel interleave, kept as the oracle for the
// row-sliced implementation.
func packNaive(f *Frame) []byte {
	out := make([]byte, PackedSize(f.Width, f.Height))
	y, cb, cr := f.Y(), f.Cb(), f.Cr()
	cw := f.Width / 2
	for py := 0; py < f.Height; py++ {
		for px := 0; px < f.Width; px++ {
			i := (py*f.Width + px) * 4
			out[i+0] = y[py*f.Width+px]
			out[i+1] = cb[(py/2)*cw+px/2]
			out[i+2] = cr[(py/2)*cw+px/2]
			out[i+3] = 0xff
		}
	}
	return out
}

func testFrame(t *testing.T, w, h int) *Frame {
	t.Helper()
	f, err := New(w, h)
	if err != nil {
		t.Fatal(err)
	}
	for i := range f.Data {
		f.Data[i] = byte(i*7 + 13)
	}
	return f
}

func TestPackBGRA(t *testing.T) {
	for _, tc := range []struct{ w, h int }{{2, 2}, {4, 2}, {6, 4}, {16, 16}} {
		f := testFrame(t, tc.w, tc.h)
		got := make([]byte, PackedSize(tc.w, tc.h))
		if err := f.PackBGRA(got); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(packNaive(f), got); diff != "" {
			t.Errorf("%dx%d pack mismatch (-want +got):\n%s", tc.w, tc.h, diff)
		}
	}
}

func TestPackBGRAAlphaOpaque(t *testing.T) {
	f := testFrame(t, 8, 8)
	dst := make([]byte, PackedSize(8, 8))
	if err := f.PackBGRA(dst); err != nil {
		t.Fatal(err)
	}
	for i := 3; i < len(dst); i += 4 {
		if dst[i] != 0xff {
			t.Fatalf("alpha at %d = %#x, want 0xff", i, dst[i])
		}
	}
}

func TestPackBGRAShortDestination(t *testing.T) {
	f := testFrame(t, 4, 4)
	if err := f.PackBGRA(make([]byte, PackedSize(4, 4)-1)); err == nil {
		t.Error("short destination: expected error")
	}
}

// The packed texture samples b/g/r where the planar textures sample their
// single channels, so shading the packed bytes must reproduce RGBAt exactly.
func TestPackedPathMatchesPlanar(t *testing.T) {
	f := testFrame(t, 8, 6)
	packed := make([]byte, PackedSize(8, 6))
	if err := f.PackBGRA(packed); err != nil {
		t.Fatal(err)
	}
	for py := 0; py < f.Height; py++ {
		for px := 0; px < f.Width; px++ {
			i := (py*f.Width + px) * 4
			r, g, b := YUVToRGB(
				float64(packed[i+0])/255, // b carries luma
				float64(packed[i+1])/255,
				float64(packed[i+2])/255,
			)
			wr, wg, wb := f.RGBAt(px, py)
			if math.Abs(r-wr) > 1e-12 || math.Abs(g-wg) > 1e-12 || math.Abs(b-wb) > 1e-12 {
				t.Fatalf("pixel (%d, %d): packed (%g, %g, %g), planar (%g, %g, %g)",
					px, py, r, g, b, wr, wg, wb)
			}
		}
	}
}
