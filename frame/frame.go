// SPDX-License-Identifier: Unlicense OR MIT

// Package frame models raw YUV 4:2:0 frames as they arrive from a decoder
// or capture source: one contiguous byte buffer holding a full-resolution
// luma plane followed by two quarter-size chroma planes.
package frame

import (
	"errors"
	"fmt"
)

// Layout selects how a frame reaches the GPU.
type Layout uint8

const (
	// LayoutPlanar streams the three planes into three single-channel
	// textures and lets the shader sample them independently.
	LayoutPlanar Layout = iota
	// LayoutPacked interleaves the planes on the CPU into one
	// four-channel buffer and streams it as a single texture.
	LayoutPacked
)

func (l Layout) String() string {
	switch l {
	case LayoutPlanar:
		return "planar"
	case LayoutPacked:
		return "packed"
	default:
		return fmt.Sprintf("layout(%d)", l)
	}
}

var errOddDimensions = errors.New("frame: dimensions must be positive and even")

// PlanarSize returns the byte size of an I420 frame: a w×h luma plane plus
// two (w/2)×(h/2) chroma planes.
func PlanarSize(w, h int) int {
	return w*h + 2*(w/2)*(h/2)
}

// PackedSize returns the byte size of the four-channel packed form.
func PackedSize(w, h int) int {
	return w * h * 4
}

// Frame is a single I420 frame. Data is laid out Y, then Cb, then Cr.
// Frames handed to an uploader are read-only for the duration of the call.
type Frame struct {
	Width  int
	Height int
	Data   []byte
}

// New allocates a zeroed frame.
func New(w, h int) (*Frame, error) {
	if err := checkDims(w, h); err != nil {
		return nil, err
	}
	return &Frame{Width: w, Height: h, Data: make([]byte, PlanarSize(w, h))}, nil
}

// FromBytes wraps an existing buffer without copying. The buffer must be
// exactly one frame.
func FromBytes(w, h int, data []byte) (*Frame, error) {
	if err := checkDims(w, h); err != nil {
		return nil, err
	}
	if want := PlanarSize(w, h); len(data) != want {
		return nil, fmt.Errorf("frame: got %d bytes, want %d for %dx%d", len(data), want, w, h)
	}
	return &Frame{Width: w, Height: h, Data: data}, nil
}

func checkDims(w, h int) error {
	if w <= 0 || h <= 0 || w%2 != 0 || h%2 != 0 {
		return errOddDimensions
	}
	return nil
}

// Y returns the luma plane, w×h samples.
func (f *Frame) Y() []byte {
	return f.Data[:f.Width*f.Height]
}

// Cb returns the first chroma plane, (w/2)×(h/2) samples.
func (f *Frame) Cb() []byte {
	lumaSize := f.Width * f.Height
	chromaSize := (f.Width / 2) * (f.Height / 2)
	return f.Data[lumaSize : lumaSize+chromaSize]
}

// Cr returns the second chroma plane, (w/2)×(h/2) samples.
func (f *Frame) Cr() []byte {
	lumaSize := f.Width * f.Height
	chromaSize := (f.Width / 2) * (f.Height / 2)
	return f.Data[lumaSize+chromaSize : lumaSize+2*chromaSize]
}

// PackBGRA interleaves the three planes into dst as B←Y, G←Cb, R←Cr with an
// opaque alpha channel. Chroma is replicated nearest-neighbor: the sample at
// luma pixel (x, y) is taken from chroma pixel (x/2, y/2). dst must hold
// PackedSize(w, h) bytes.
func (f *Frame) PackBGRA(dst []byte) error {
	w, h := f.Width, f.Height
	if len(dst) < PackedSize(w, h) {
		return fmt.Errorf("frame: packed destination too small: %d < %d", len(dst), PackedSize(w, h))
	}
	y, cb, cr := f.Y(), f.Cb(), f.Cr()
	cw := w / 2
	stride := w * 4
	for row := 0; row < h; row++ {
		yRow := y[row*w:]
		cbRow := cb[(row/2)*cw:]
		crRow := cr[(row/2)*cw:]
		out := dst[row*stride:]
		for col := 0; col < w; col++ {
			out[col*4+0] = yRow[col]    // b carries luma
			out[col*4+1] = cbRow[col/2] // g carries first chroma
			out[col*4+2] = crRow[col/2] // r carries second chroma
			out[col*4+3] = 0xff
		}
	}
	return nil
}
