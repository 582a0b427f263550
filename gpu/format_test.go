// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"errors"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
)

func TestNormalizeTriplePromotesUnsized(t *testing.T) {
	tests := []struct {
		name string
		in   FormatTriple
		want FormatTriple
	}{
		{
			"unsized red",
			FormatTriple{Internal: gl.RED, Format: gl.RED, Type: gl.UNSIGNED_BYTE},
			FormatTriple{Internal: gl.R8, Format: gl.RED, Type: gl.UNSIGNED_BYTE},
		},
		{
			"unsized rgba",
			FormatTriple{Internal: gl.RGBA, Format: gl.RGBA, Type: gl.UNSIGNED_BYTE},
			FormatTriple{Internal: gl.RGBA8, Format: gl.RGBA, Type: gl.UNSIGNED_BYTE},
		},
		{"sized planar passes", PlanarTriple(), PlanarTriple()},
		{"sized packed passes", PackedTriple(), PackedTriple()},
	}
	for _, tc := range tests {
		got, err := normalizeTriple(tc.in)
		if err != nil {
			t.Errorf("%s: %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: got %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestNormalizeTripleRejectsBadPairings(t *testing.T) {
	tests := []struct {
		name string
		in   FormatTriple
	}{
		{"float internal", FormatTriple{Internal: gl.RGBA32F, Format: gl.RGBA, Type: gl.UNSIGNED_BYTE}},
		{"bgra into r8", FormatTriple{Internal: gl.R8, Format: gl.BGRA, Type: gl.UNSIGNED_BYTE}},
		{"red into rgba8", FormatTriple{Internal: gl.RGBA8, Format: gl.RED, Type: gl.UNSIGNED_BYTE}},
		{"float type", FormatTriple{Internal: gl.R8, Format: gl.RED, Type: gl.FLOAT}},
		{"zero triple", FormatTriple{}},
	}
	for _, tc := range tests {
		if _, err := normalizeTriple(tc.in); err == nil {
			t.Errorf("%s: expected error", tc.name)
			continue
		} else {
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Errorf("%s: got %T, want *FormatError", tc.name, err)
			}
		}
	}
}

func TestBytesPerPixel(t *testing.T) {
	if got := bytesPerPixel(PlanarTriple()); got != 1 {
		t.Errorf("planar stride = %d, want 1", got)
	}
	if got := bytesPerPixel(PackedTriple()); got != 4 {
		t.Errorf("packed stride = %d, want 4", got)
	}
}
