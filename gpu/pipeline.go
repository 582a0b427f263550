// SPDX-License-Identifier: Unlicense OR MIT

// Package gpu implements the streaming render core: pixel-unpack buffers
// that decouple host writes from texture updates, YUV-to-RGB shader
// variants, and the per-frame render sequence.
//
// All calls must come from the single goroutine that owns the GL context.
package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"github.com/elsampsa/opengl-texture-streaming/frame"
)

// Surface is the window-system collaborator: an already-created GL context
// bound to a presentable surface. The pipeline never creates or destroys
// it.
type Surface interface {
	// MakeCurrent binds the context to this goroutine and surface.
	MakeCurrent() error
	// Size returns the surface dimensions in pixels.
	Size() (width, height int)
	// DoubleBuffered reports the buffering mode negotiated at surface
	// creation.
	DoubleBuffered() bool
	// Swap presents the back buffer. Only meaningful when double
	// buffered.
	Swap()
}

// StreamConfig fixes the source stream properties for the pipeline's
// lifetime.
type StreamConfig struct {
	// Width and Height are the source frame dimensions. Textures are
	// sized from these once and never reallocated.
	Width  int
	Height int
	// Layout selects the planar or packed upload path. Both produce the
	// same image; the choice is a performance knob.
	Layout frame.Layout
	// Filter is the sampling filter for every stream texture.
	Filter Filter
}

type pipelineState uint8

const (
	stateIdle pipelineState = iota
	stateBound
	statePresented
	stateReleased
)

// RenderPipeline owns every GPU resource of one stream and runs the
// per-frame sequence: upload, bind, transform, draw, present.
type RenderPipeline struct {
	surface  Surface
	shader   Shader
	cfg      StreamConfig
	log      zerolog.Logger
	state    pipelineState
	quad     *Quad
	textures []*Texture
	uploader *FrameUploader
}

// NewPipeline wires a pipeline together without touching the GPU. Call
// Setup on the GL goroutine before streaming.
func NewPipeline(surface Surface, shader Shader, cfg StreamConfig, log zerolog.Logger) *RenderPipeline {
	return &RenderPipeline{
		surface: surface,
		shader:  shader,
		cfg:     cfg,
		log:     log,
	}
}

// Setup compiles the shader, resolves its locations, and creates the quad,
// textures, and streaming buffers. Any failure here is fatal for the
// stream: nothing has been presented yet and a partial setup would corrupt
// every frame.
func (p *RenderPipeline) Setup() error {
	if p.state != stateIdle {
		return &ConfigError{Reason: "Setup called twice"}
	}
	if p.cfg.Width <= 0 || p.cfg.Height <= 0 || p.cfg.Width%2 != 0 || p.cfg.Height%2 != 0 {
		return &ConfigError{Reason: fmt.Sprintf("stream dimensions %dx%d must be positive and even", p.cfg.Width, p.cfg.Height)}
	}
	if err := p.surface.MakeCurrent(); err != nil {
		return fmt.Errorf("gpu: setup: %w", err)
	}
	if err := p.shader.Compile(); err != nil {
		return err
	}
	quad, err := NewQuad(p.shader.AttribLocations())
	if err != nil {
		p.release()
		return err
	}
	p.quad = quad
	for _, spec := range p.shader.TextureSpecs(p.cfg.Width, p.cfg.Height) {
		t, err := NewTexture(spec.Width, spec.Height, spec.Triple, p.cfg.Filter)
		if err != nil {
			p.release()
			return err
		}
		p.textures = append(p.textures, t)
	}
	uploader, err := NewFrameUploader(p.cfg.Layout, p.cfg.Width, p.cfg.Height, p.textures, p.log)
	if err != nil {
		p.release()
		return err
	}
	p.uploader = uploader
	p.state = stateBound
	if msg := p.shader.Validate(); msg != "" {
		p.log.Debug().Str("log", msg).Msg("program validation")
	}
	p.log.Debug().
		Str("layout", p.cfg.Layout.String()).
		Int("width", p.cfg.Width).
		Int("height", p.cfg.Height).
		Bool("double_buffered", p.surface.DoubleBuffered()).
		Msg("pipeline ready")
	return nil
}

// Upload pushes one frame towards the textures. Transient errors mean the
// frame was skipped; the previous contents stay on screen.
func (p *RenderPipeline) Upload(f *frame.Frame) error {
	if p.state == stateIdle || p.state == stateReleased {
		return &ConfigError{Reason: "Upload before Setup"}
	}
	return p.uploader.Upload(f)
}

// RenderFrame draws the current texture contents to the surface and
// presents them. A failed context switch skips the frame with a warning.
func (p *RenderPipeline) RenderFrame() error {
	if p.state == stateIdle || p.state == stateReleased {
		return &ConfigError{Reason: "RenderFrame before Setup"}
	}
	if err := p.surface.MakeCurrent(); err != nil {
		p.log.Warn().Err(err).Msg("skipping frame")
		return fmt.Errorf("%w: %v", ErrSurfaceUnavailable, err)
	}
	p.state = stateBound

	w, h := p.surface.Size()
	gl.Viewport(0, 0, int32(w), int32(h))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	p.shader.Use()
	p.shader.BindTextures(p.textures)

	dx, dy := aspectScale(w, h, p.cfg.Width, p.cfg.Height)
	transform := mgl32.Ident4()
	transform[0] = dx
	transform[5] = dy
	p.shader.SetTransform(transform)

	p.quad.Draw()

	if p.surface.DoubleBuffered() {
		p.surface.Swap()
	} else {
		gl.Flush()
	}
	p.state = statePresented
	return nil
}

// Release frees every GPU handle the pipeline owns. Safe to call more than
// once.
func (p *RenderPipeline) Release() {
	if p.state == stateReleased {
		return
	}
	p.release()
	p.state = stateReleased
}

func (p *RenderPipeline) release() {
	if p.uploader != nil {
		p.uploader.Release()
		p.uploader = nil
	}
	for _, t := range p.textures {
		t.Release()
	}
	p.textures = nil
	if p.quad != nil {
		p.quad.Release()
		p.quad = nil
	}
	if p.shader != nil {
		p.shader.Release()
	}
}
