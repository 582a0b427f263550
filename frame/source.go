// SPDX-License-Identifier: Unlicense OR MIT

package frame

import (
	"fmt"
	"os"
)

// Source supplies raw frames synchronously, one per call.
type Source interface {
	// Next fills dst with the next frame. dst dimensions must match the
	// source's.
	Next(dst *Frame) error
}

// FileSource cycles through the frames of a raw .yuv file loaded into
// memory. A file holding a single frame renders as a still image.
type FileSource struct {
	width  int
	height int
	data   []byte
	count  int
	next   int
}

// NewFileSource reads path into memory and splits it into w×h I420 frames.
// The file size must be a whole number of frames.
func NewFileSource(path string, w, h int) (*FileSource, error) {
	if err := checkDims(w, h); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("frame: reading %s: %w", path, err)
	}
	size := PlanarSize(w, h)
	if len(data) == 0 || len(data)%size != 0 {
		return nil, fmt.Errorf("frame: %s holds %d bytes, not a multiple of the %d-byte frame size", path, len(data), size)
	}
	return &FileSource{
		width:  w,
		height: h,
		data:   data,
		count:  len(data) / size,
	}, nil
}

// Count returns the number of frames in the file.
func (s *FileSource) Count() int {
	return s.count
}

func (s *FileSource) Next(dst *Frame) error {
	if dst.Width != s.width || dst.Height != s.height {
		return fmt.Errorf("frame: destination is %dx%d, source is %dx%d", dst.Width, dst.Height, s.width, s.height)
	}
	size := PlanarSize(s.width, s.height)
	copy(dst.Data, s.data[s.next*size:(s.next+1)*size])
	s.next = (s.next + 1) % s.count
	return nil
}
