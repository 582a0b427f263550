// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/elsampsa/opengl-texture-streaming/frame"
)

// stagingBuffer is the buffer surface the uploader writes through.
// *StreamingBuffer implements it over a pixel-unpack buffer.
type stagingBuffer interface {
	BeginWrite() ([]byte, error)
	EndWrite() error
	TransferToTexture(t *Texture, x, y, w, h int)
	Release()
}

// FrameUploader moves raw frames into the pipeline's textures through one
// streaming buffer per texture. The frame is read-only and only borrowed
// for the duration of Upload.
type FrameUploader struct {
	layout   frame.Layout
	width    int
	height   int
	textures []*Texture
	buffers  []stagingBuffer
	scratch  []byte // packed interleave staging, nil for planar
	log      zerolog.Logger
}

// NewFrameUploader creates one streaming buffer per destination texture,
// each sized to a full texture update.
func NewFrameUploader(layout frame.Layout, w, h int, textures []*Texture, log zerolog.Logger) (*FrameUploader, error) {
	u := &FrameUploader{
		layout:   layout,
		width:    w,
		height:   h,
		textures: textures,
		log:      log,
	}
	for _, t := range textures {
		b, err := NewStreamingBuffer(t.ByteSize())
		if err != nil {
			u.Release()
			return nil, err
		}
		u.buffers = append(u.buffers, b)
	}
	if layout == frame.LayoutPacked {
		u.scratch = make([]byte, frame.PackedSize(w, h))
	}
	return u, nil
}

// Upload pushes one frame into the textures. Every plane is staged into its
// buffer before any texture is touched, so a transient failure on any plane
// skips the whole frame and leaves all textures showing the previous one.
func (u *FrameUploader) Upload(f *frame.Frame) error {
	if f.Width != u.width || f.Height != u.height {
		return &ConfigError{Reason: fmt.Sprintf("frame is %dx%d, pipeline was set up for %dx%d", f.Width, f.Height, u.width, u.height)}
	}
	switch u.layout {
	case frame.LayoutPlanar:
		planes := [3][]byte{f.Y(), f.Cb(), f.Cr()}
		for i, plane := range planes {
			if err := u.stage(i, plane); err != nil {
				return err
			}
		}
		for i := range planes {
			u.transfer(i)
		}
		return nil
	case frame.LayoutPacked:
		if err := f.PackBGRA(u.scratch); err != nil {
			return err
		}
		if err := u.stage(0, u.scratch); err != nil {
			return err
		}
		u.transfer(0)
		return nil
	default:
		return &ConfigError{Reason: fmt.Sprintf("unknown layout %s", u.layout)}
	}
}

// stage runs one begin-write/copy/end-write pass into buffer i without
// touching its texture.
func (u *FrameUploader) stage(i int, src []byte) error {
	dst, err := u.buffers[i].BeginWrite()
	if err != nil {
		u.log.Warn().Err(err).Int("plane", i).Msg("skipping frame upload")
		return err
	}
	copy(dst, src)
	if err := u.buffers[i].EndWrite(); err != nil {
		u.log.Warn().Err(err).Int("plane", i).Msg("skipping frame upload")
		return err
	}
	return nil
}

// transfer issues the buffer-to-texture copy for plane i.
func (u *FrameUploader) transfer(i int) {
	w, h := u.textures[i].Size()
	u.buffers[i].TransferToTexture(u.textures[i], 0, 0, w, h)
}

func (u *FrameUploader) Release() {
	for _, b := range u.buffers {
		b.Release()
	}
	u.buffers = nil
}
