// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/elsampsa/opengl-texture-streaming/internal/glutil"
)

// StreamingBuffer is a pixel-unpack buffer used as a staging area between
// host memory and a texture. It is created once, mapped briefly for each
// host write, and never reallocated while the stream runs. Keeping the
// buffer unmapped between writes lets the driver schedule the
// buffer-to-texture transfer asynchronously relative to the CPU.
type StreamingBuffer struct {
	handle   uint32
	capacity int
	mapped   []byte
}

// NewStreamingBuffer reserves capacity bytes of device-visible storage with
// a streaming usage hint: written by the host, read once by the GPU,
// contents replaced every frame.
func NewStreamingBuffer(capacity int) (*StreamingBuffer, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("gpu: streaming buffer capacity %d", capacity)
	}
	b := &StreamingBuffer{capacity: capacity}
	gl.GenBuffers(1, &b.handle)
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, b.handle)
	gl.BufferData(gl.PIXEL_UNPACK_BUFFER, capacity, nil, gl.STREAM_DRAW)
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, 0)
	if err := glutil.Err(); err != nil {
		b.Release()
		return nil, fmt.Errorf("gpu: creating %d-byte streaming buffer: %w", capacity, err)
	}
	return b, nil
}

// Capacity returns the buffer size in bytes.
func (b *StreamingBuffer) Capacity() int {
	return b.capacity
}

// BeginWrite maps the buffer for writing and returns the host view. The
// view is valid only until EndWrite. A nil mapping from the driver is a
// transient condition: the caller skips the current frame and the previous
// texture contents remain on screen.
//
// The caller must not begin a new write while a transfer issued from this
// buffer may still be in flight unless it accepts an implicit driver wait.
func (b *StreamingBuffer) BeginWrite() ([]byte, error) {
	if b.mapped != nil {
		panic("gpu: BeginWrite while already mapped")
	}
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, b.handle)
	ptr := gl.MapBuffer(gl.PIXEL_UNPACK_BUFFER, gl.WRITE_ONLY)
	if ptr == nil {
		gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, 0)
		return nil, ErrMapFailed
	}
	b.mapped = unsafe.Slice((*byte)(ptr), b.capacity)
	return b.mapped, nil
}

// EndWrite unmaps the buffer. The slice returned by BeginWrite must not be
// used afterwards.
func (b *StreamingBuffer) EndWrite() error {
	if b.mapped == nil {
		panic("gpu: EndWrite without BeginWrite")
	}
	b.mapped = nil
	ok := gl.UnmapBuffer(gl.PIXEL_UNPACK_BUFFER)
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, 0)
	if !ok {
		return ErrContentLost
	}
	return nil
}

// TransferToTexture copies the buffer contents, starting at offset 0, into
// the given sub-region of the texture. The buffer must be unmapped.
func (b *StreamingBuffer) TransferToTexture(t *Texture, x, y, w, h int) {
	if b.mapped != nil {
		panic("gpu: TransferToTexture while mapped")
	}
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, b.handle)
	gl.BindTexture(gl.TEXTURE_2D, t.handle)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, int32(x), int32(y), int32(w), int32(h), t.triple.Format, t.triple.Type, gl.PtrOffset(0))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, 0)
}

func (b *StreamingBuffer) Release() {
	if b.handle != 0 {
		gl.DeleteBuffers(1, &b.handle)
		b.handle = 0
	}
	b.mapped = nil
}
