// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import "errors"

// Transient per-frame failures. The frame is skipped, the previously
// uploaded texture contents stay on screen, and the next frame retries
// naturally; there is no backoff.
var (
	// ErrMapFailed reports that the driver could not provide a host
	// mapping for a streaming buffer this frame.
	ErrMapFailed = errors.New("gpu: buffer mapping unavailable")
	// ErrContentLost reports that the driver discarded the buffer's
	// contents while it was mapped.
	ErrContentLost = errors.New("gpu: buffer contents lost on unmap")
	// ErrSurfaceUnavailable reports that the context could not be made
	// current on the target surface.
	ErrSurfaceUnavailable = errors.New("gpu: surface unavailable")
)

// IsTransient reports whether err only affects the current frame.
func IsTransient(err error) bool {
	return errors.Is(err, ErrMapFailed) ||
		errors.Is(err, ErrContentLost) ||
		errors.Is(err, ErrSurfaceUnavailable)
}

// ConfigError is a programming or wiring mistake caught at setup: an
// unresolved required uniform or attribute, or using a pipeline before
// Setup. Left unreported these corrupt every subsequent frame, so they are
// fatal.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "gpu: configuration error: " + e.Reason
}

// FormatError reports a pixel/internal-format pairing the target profile
// does not support. Detected at setup, never mid-stream.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "gpu: format error: " + e.Reason
}
