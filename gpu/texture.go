// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/elsampsa/opengl-texture-streaming/internal/glutil"
)

// Filter selects the texture sampling filter.
type Filter uint8

const (
	FilterLinear Filter = iota
	FilterNearest
)

func toGLFilter(f Filter) int32 {
	switch f {
	case FilterNearest:
		return gl.NEAREST
	case FilterLinear:
		return gl.LINEAR
	default:
		panic("unsupported texture filter")
	}
}

// FormatTriple holds the settings for a TexImage2D call: the on-GPU storage
// format, the client pixel format, and the client component type.
type FormatTriple struct {
	Internal int32
	Format   uint32
	Type     uint32
}

// PlanarTriple is the triple for a single-channel plane texture.
func PlanarTriple() FormatTriple {
	return FormatTriple{Internal: gl.R8, Format: gl.RED, Type: gl.UNSIGNED_BYTE}
}

// PackedTriple is the triple for the four-channel packed texture. BGRA with
// the reversed packed type is the historically fast upload path; the shader
// reads luma from b, chroma from g and r.
func PackedTriple() FormatTriple {
	return FormatTriple{Internal: gl.RGBA8, Format: gl.BGRA, Type: gl.UNSIGNED_INT_8_8_8_8_REV}
}

// normalizeTriple enforces the sized-internal-format policy. Core profiles
// from 3.2 on reject or silently reinterpret unsized internal formats, so
// unsized requests are promoted to their sized equivalent and anything else
// is refused before a texture is created.
func normalizeTriple(t FormatTriple) (FormatTriple, error) {
	switch t.Internal {
	case gl.RED:
		t.Internal = gl.R8
	case gl.RGBA:
		t.Internal = gl.RGBA8
	case gl.R8, gl.RGBA8:
	default:
		return FormatTriple{}, &FormatError{Reason: fmt.Sprintf("internal format %#x is not a supported sized format", t.Internal)}
	}
	switch {
	case t.Internal == gl.R8 && t.Format == gl.RED:
	case t.Internal == gl.RGBA8 && (t.Format == gl.RGBA || t.Format == gl.BGRA):
	default:
		return FormatTriple{}, &FormatError{Reason: fmt.Sprintf("pixel format %#x cannot fill internal format %#x", t.Format, t.Internal)}
	}
	switch t.Type {
	case gl.UNSIGNED_BYTE, gl.UNSIGNED_INT_8_8_8_8_REV:
	default:
		return FormatTriple{}, &FormatError{Reason: fmt.Sprintf("unsupported component type %#x", t.Type)}
	}
	return t, nil
}

// bytesPerPixel returns the client-side pixel stride for a triple.
func bytesPerPixel(t FormatTriple) int {
	switch t.Format {
	case gl.RED:
		return 1
	case gl.RGBA, gl.BGRA:
		return 4
	default:
		panic("unsupported pixel format")
	}
}

// Texture is a GPU texture of fixed dimensions, created once at setup and
// overwritten every frame through a StreamingBuffer transfer.
type Texture struct {
	handle uint32
	width  int
	height int
	triple FormatTriple
}

// NewTexture reserves texture storage without uploading any pixels. The
// triple is validated against the sized-format policy first.
func NewTexture(w, h int, triple FormatTriple, filter Filter) (*Texture, error) {
	triple, err := normalizeTriple(triple)
	if err != nil {
		return nil, err
	}
	t := &Texture{width: w, height: h, triple: triple}
	gl.GenTextures(1, &t.handle)
	gl.BindTexture(gl.TEXTURE_2D, t.handle)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, toGLFilter(filter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, toGLFilter(filter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, triple.Internal, int32(w), int32(h), 0, triple.Format, triple.Type, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if err := glutil.Err(); err != nil {
		t.Release()
		return nil, fmt.Errorf("gpu: creating %dx%d texture: %w", w, h, err)
	}
	return t, nil
}

// Size returns the texture dimensions.
func (t *Texture) Size() (w, h int) {
	return t.width, t.height
}

// ByteSize returns the number of client bytes one full update needs.
func (t *Texture) ByteSize() int {
	return t.width * t.height * bytesPerPixel(t.triple)
}

func (t *Texture) Release() {
	if t.handle != 0 {
		gl.DeleteTextures(1, &t.handle)
		t.handle = 0
	}
}
