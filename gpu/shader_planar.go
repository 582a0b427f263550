// SPDX-License-Identifier: Unlicense OR MIT

package gpu

// PlanarShader samples three independent single-channel textures: luma at
// full resolution and the two chroma planes at half resolution in each
// dimension. The sampler's own interpolation upsamples the chroma.
type PlanarShader struct {
	program
	texy int32
	texu int32
	texv int32
}

// NewPlanarShader returns an uncompiled shader. Call Compile before use.
func NewPlanarShader() *PlanarShader {
	return &PlanarShader{}
}

func (s *PlanarShader) Compile() error {
	if err := s.compile(vertexSrc, planarFragmentSrc); err != nil {
		return err
	}
	var err error
	if s.texy, err = s.resolveSampler("texy"); err != nil {
		s.Release()
		return err
	}
	if s.texu, err = s.resolveSampler("texu"); err != nil {
		s.Release()
		return err
	}
	if s.texv, err = s.resolveSampler("texv"); err != nil {
		s.Release()
		return err
	}
	return nil
}

func (s *PlanarShader) TextureSpecs(w, h int) []TextureSpec {
	return []TextureSpec{
		{Width: w, Height: h, Triple: PlanarTriple()},
		{Width: w / 2, Height: h / 2, Triple: PlanarTriple()},
		{Width: w / 2, Height: h / 2, Triple: PlanarTriple()},
	}
}

func (s *PlanarShader) BindTextures(ts []*Texture) {
	if len(ts) != 3 {
		panic("gpu: planar shader needs exactly three textures")
	}
	bindTextureUnit(0, ts[0], s.texy)
	bindTextureUnit(1, ts[1], s.texu)
	bindTextureUnit(2, ts[2], s.texv)
}

const planarFragmentSrc = `#version 330 core
in vec2 TexCoord;
uniform sampler2D texy; // Y
uniform sampler2D texu; // U
uniform sampler2D texv; // V
out vec4 colour;

vec3 yuv2rgb(in vec3 yuv)
{
    // YUV offset
    const vec3 offset = vec3(-0.0625, -0.5, -0.5);
    // RGB coefficients
    const vec3 Rcoeff = vec3( 1.164, 0.000,  1.596);
    const vec3 Gcoeff = vec3( 1.164, -0.391, -0.813);
    const vec3 Bcoeff = vec3( 1.164, 2.018,  0.000);
    vec3 rgb;
    yuv = clamp(yuv, 0.0, 1.0);
    yuv += offset;
    rgb.r = dot(yuv, Rcoeff);
    rgb.g = dot(yuv, Gcoeff);
    rgb.b = dot(yuv, Bcoeff);
    return rgb;
}

vec3 get_yuv_from_texture(in vec2 tcoord)
{
    vec3 yuv;
    yuv.x = texture(texy, tcoord).r;
    yuv.y = texture(texu, tcoord).r;
    yuv.z = texture(texv, tcoord).r;
    return yuv;
}

void main()
{
    colour = vec4(yuv2rgb(get_yuv_from_texture(TexCoord)), 1.0);
}
`
