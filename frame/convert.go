// SPDX-License-Identifier: Unlicense OR MIT

package frame

// Studio-range BT.601 conversion, matching the fragment shaders in the gpu
// package term for term. Any change here must be mirrored there.
var (
	yuvOffset = [3]float64{-0.0625, -0.5, -0.5}
	rCoeff    = [3]float64{1.164, 0.000, 1.596}
	gCoeff    = [3]float64{1.164, -0.391, -0.813}
	bCoeff    = [3]float64{1.164, 2.018, 0.000}
)

// YUVToRGB converts a normalized YUV triple to RGB the same way the shaders
// do: clamp to [0,1], apply the fixed offset, then the fixed coefficient
// rows via dot products. The result is not clamped.
func YUVToRGB(y, u, v float64) (r, g, b float64) {
	yuv := [3]float64{clamp01(y), clamp01(u), clamp01(v)}
	for i := range yuv {
		yuv[i] += yuvOffset[i]
	}
	r = dot3(yuv, rCoeff)
	g = dot3(yuv, gCoeff)
	b = dot3(yuv, bCoeff)
	return r, g, b
}

// RGBAt shades the frame at luma pixel (x, y) on the CPU, sampling chroma
// nearest-neighbor exactly like the planar texture path. Used to check that
// the planar and packed paths agree.
func (f *Frame) RGBAt(x, y int) (r, g, b float64) {
	cw := f.Width / 2
	luma := float64(f.Y()[y*f.Width+x]) / 255
	cb := float64(f.Cb()[(y/2)*cw+x/2]) / 255
	cr := float64(f.Cr()[(y/2)*cw+x/2]) / 255
	return YUVToRGB(luma, cb, cr)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func dot3(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}
