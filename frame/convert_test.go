// SPDX-License-Identifier: Unlicense OR MIT

package frame

import (
	"math"
	"testing"
)

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestYUVToRGB(t *testing.T) {
	tests := []struct {
		name    string
		y, u, v float64
		r, g, b float64
	}{
		// Mid gray: chroma offsets cancel, all channels are 1.164*(0.5-0.0625).
		{"mid gray", 0.5, 0.5, 0.5, 0.509, 0.509, 0.509},
		// Studio black and white.
		{"black", 0.0625, 0.5, 0.5, 0, 0, 0},
		{"white", 0.9375, 0.5, 0.5, 1.018, 1.018, 1.018},
		// Saturated chroma pushes single channels past the others.
		{"red chroma", 0.5, 0.5, 1.0, 1.307, 0.103, 0.509},
		{"blue chroma", 0.5, 1.0, 0.5, 0.509, 0.314, 1.518},
	}
	const tol = 1e-3
	for _, tc := range tests {
		r, g, b := YUVToRGB(tc.y, tc.u, tc.v)
		if !near(r, tc.r, tol) || !near(g, tc.g, tol) || !near(b, tc.b, tol) {
			t.Errorf("%s: YUVToRGB(%g, %g, %g) = (%.4f, %.4f, %.4f), want (%g, %g, %g)",
				tc.name, tc.y, tc.u, tc.v, r, g, b, tc.r, tc.g, tc.b)
		}
	}
}

func TestYUVToRGBClampsInput(t *testing.T) {
	r1, g1, b1 := YUVToRGB(-0.5, 1.7, 0.5)
	r2, g2, b2 := YUVToRGB(0, 1, 0.5)
	if r1 != r2 || g1 != g2 || b1 != b2 {
		t.Errorf("out-of-range input not clamped: (%g, %g, %g) != (%g, %g, %g)",
			r1, g1, b1, r2, g2, b2)
	}
}

func TestRGBAtSamplesNearestChroma(t *testing.T) {
	f, err := New(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	// Distinct chroma per 2x2 block; all four luma pixels of a block must
	// resolve to the same chroma sample.
	cb, cr := f.Cb(), f.Cr()
	for i := range cb {
		cb[i] = byte(10 * (i + 1))
		cr[i] = byte(20 * (i + 1))
	}
	for by := 0; by < 2; by++ {
		for bx := 0; bx < 2; bx++ {
			r0, g0, b0 := f.RGBAt(bx*2, by*2)
			for _, d := range [][2]int{{1, 0}, {0, 1}, {1, 1}} {
				r, g, b := f.RGBAt(bx*2+d[0], by*2+d[1])
				if r != r0 || g != g0 || b != b0 {
					t.Fatalf("block (%d, %d): pixel offset %v sampled different chroma", bx, by, d)
				}
			}
		}
	}
}
