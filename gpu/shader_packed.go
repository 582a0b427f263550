// SPDX-License-Identifier: Unlicense OR MIT

package gpu

// PackedShader samples one four-channel texture that carries YUV in place
// of RGB: luma in the blue channel, the chroma pair in green and red, and
// an unused opaque alpha. The CPU pays for the interleave; the GPU gets a
// four-channel upload, which some drivers transfer much faster than
// single-channel planes.
type PackedShader struct {
	program
	texblock int32
}

// NewPackedShader returns an uncompiled shader. Call Compile before use.
func NewPackedShader() *PackedShader {
	return &PackedShader{}
}

func (s *PackedShader) Compile() error {
	if err := s.compile(vertexSrc, packedFragmentSrc); err != nil {
		return err
	}
	var err error
	if s.texblock, err = s.resolveSampler("texblock"); err != nil {
		s.Release()
		return err
	}
	return nil
}

func (s *PackedShader) TextureSpecs(w, h int) []TextureSpec {
	return []TextureSpec{
		{Width: w, Height: h, Triple: PackedTriple()},
	}
}

func (s *PackedShader) BindTextures(ts []*Texture) {
	if len(ts) != 1 {
		panic("gpu: packed shader needs exactly one texture")
	}
	bindTextureUnit(0, ts[0], s.texblock)
}

const packedFragmentSrc = `#version 330 core
in vec2 TexCoord;
uniform sampler2D texblock; // YUV carried in bgr
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
    yuv.x = texture(texblock, tcoord).b;
    yuv.y = texture(texblock, tcoord).g;
    yuv.z = texture(texblock, tcoord).r;
    return yuv;
}

void main()
{
    colour = vec4(yuv2rgb(get_yuv_from_texture(TexCoord)), 1.0);
}
`
