// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/elsampsa/opengl-texture-streaming/internal/glutil"
)

// Attribute locations shared by both shader variants. The quad's vertex
// layout binds to whatever locations the active shader reports, but both
// variants agree on these by convention.
const (
	attribPosition = 0
	attribTexcoord = 1
)

// TextureSpec describes one texture a shader variant samples from.
type TextureSpec struct {
	Width  int
	Height int
	Triple FormatTriple
}

// Shader is a compiled GPU program that turns streamed YUV data into RGB
// fragments. Implementations are constructed inert and brought to life with
// Compile; location resolution happens there, never during construction.
type Shader interface {
	// Compile builds and links the program and resolves every required
	// uniform and attribute. After a failure the shader is unusable and
	// every later call panics.
	Compile() error
	// Use makes the program current.
	Use()
	// SetTransform uploads the 4x4 transform uniform.
	SetTransform(m mgl32.Mat4)
	// AttribLocations returns the vertex attribute locations the quad
	// binds to.
	AttribLocations() (position, texcoord uint32)
	// TextureSpecs returns the textures this variant expects for a
	// source of the given dimensions, in texture-unit order.
	TextureSpecs(w, h int) []TextureSpec
	// BindTextures binds the textures to consecutive units starting at 0
	// and points the sampler uniforms at them. len(ts) must match
	// TextureSpecs.
	BindTextures(ts []*Texture)
	// Validate returns the driver's program validation log.
	Validate() string
	Release()
}

// program carries the state common to both variants.
type program struct {
	handle    uint32
	transform int32
}

func (p *program) compile(vsSrc, fsSrc string) error {
	prog, err := glutil.CreateProgram(vsSrc, fsSrc, []string{"position", "texcoord"})
	if err != nil {
		return fmt.Errorf("gpu: %w", err)
	}
	p.handle = prog
	p.transform = glutil.UniformLocation(prog, "transform")
	if p.transform == -1 {
		p.Release()
		return &ConfigError{Reason: `uniform "transform" not found`}
	}
	return nil
}

// resolveSampler resolves a required sampler uniform. -1 means the shader
// source and the render code disagree, which silently blanks every frame,
// so it is surfaced as a ConfigError.
func (p *program) resolveSampler(name string) (int32, error) {
	loc := glutil.UniformLocation(p.handle, name)
	if loc == -1 {
		return 0, &ConfigError{Reason: fmt.Sprintf("sampler uniform %q not found", name)}
	}
	return loc, nil
}

func (p *program) Use() {
	if p.handle == 0 {
		panic("gpu: Use of uncompiled shader")
	}
	gl.UseProgram(p.handle)
}

func (p *program) SetTransform(m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.transform, 1, false, &m[0])
}

func (p *program) AttribLocations() (position, texcoord uint32) {
	return attribPosition, attribTexcoord
}

func (p *program) Validate() string {
	return glutil.Validate(p.handle)
}

func (p *program) Release() {
	if p.handle != 0 {
		gl.DeleteProgram(p.handle)
		p.handle = 0
	}
}

func bindTextureUnit(unit int, t *Texture, sampler int32) {
	gl.ActiveTexture(uint32(gl.TEXTURE0 + unit))
	gl.BindTexture(gl.TEXTURE_2D, t.handle)
	gl.Uniform1i(sampler, int32(unit))
}

// Both variants share the vertex stage: scale by the transform and flip the
// texture y axis, since frame rows run top to bottom while GL's do not.
const vertexSrc = `#version 330 core
uniform mat4 transform;
layout (location = 0) in vec3 position;
layout (location = 1) in vec2 texcoord;
out vec2 TexCoord;
void main()
{
    gl_Position = transform * vec4(position, 1.0);
    TexCoord = vec2(texcoord.x, 1.0 - texcoord.y);
}
`
