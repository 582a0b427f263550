// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/elsampsa/opengl-texture-streaming/frame"
)

// These tests exercise the pipeline's setup-order and configuration guards,
// which run before any GPU call. Anything past the guards needs a live
// context and is covered by running cmd/glstream.

func TestUploadBeforeSetup(t *testing.T) {
	p := NewPipeline(nil, nil, StreamConfig{Width: 64, Height: 64}, zerolog.Nop())
	f, err := frame.New(64, 64)
	if err != nil {
		t.Fatal(err)
	}
	err = p.Upload(f)
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("Upload before Setup: got %v, want *ConfigError", err)
	}
	if IsTransient(err) {
		t.Error("setup-order error must not be transient")
	}
}

func TestRenderFrameBeforeSetup(t *testing.T) {
	p := NewPipeline(nil, nil, StreamConfig{Width: 64, Height: 64}, zerolog.Nop())
	err := p.RenderFrame()
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("RenderFrame before Setup: got %v, want *ConfigError", err)
	}
}

func TestSetupRejectsBadDimensions(t *testing.T) {
	for _, tc := range []struct{ w, h int }{
		{0, 64}, {64, 0}, {-64, 64}, {63, 64}, {64, 63},
	} {
		p := NewPipeline(nil, nil, StreamConfig{Width: tc.w, Height: tc.h}, zerolog.Nop())
		err := p.Setup()
		var ce *ConfigError
		if !errors.As(err, &ce) {
			t.Errorf("Setup with %dx%d: got %v, want *ConfigError", tc.w, tc.h, err)
		}
	}
}

func TestReleaseIdempotent(t *testing.T) {
	p := NewPipeline(nil, NewPlanarShader(), StreamConfig{Width: 64, Height: 64}, zerolog.Nop())
	p.Release()
	p.Release()
	err := p.Upload(&frame.Frame{Width: 64, Height: 64})
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("Upload after Release: got %v, want *ConfigError", err)
	}
}

func TestReleaseWithoutShader(t *testing.T) {
	p := NewPipeline(nil, nil, StreamConfig{Width: 64, Height: 64}, zerolog.Nop())
	p.Release()
	p.Release()
}

func TestIsTransient(t *testing.T) {
	for _, err := range []error{ErrMapFailed, ErrContentLost, ErrSurfaceUnavailable} {
		if !IsTransient(err) {
			t.Errorf("IsTransient(%v) = false", err)
		}
	}
	if IsTransient(&ConfigError{Reason: "x"}) {
		t.Error("ConfigError reported transient")
	}
	if IsTransient(&FormatError{Reason: "x"}) {
		t.Error("FormatError reported transient")
	}
	if IsTransient(nil) {
		t.Error("nil reported transient")
	}
}
