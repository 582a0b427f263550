// SPDX-License-Identifier: Unlicense OR MIT

package gpu

// aspectScale computes the diagonal scale factors that letterbox or
// pillarbox a frameW×frameH source onto a surfaceW×surfaceH surface without
// stretching. The comparison ratio is
//
//	r = (surfaceH·frameW) / (surfaceW·frameH)
//
// r < 1 means the surface is relatively wider than the source, so the image
// is pillarboxed by shrinking x; r > 1 letterboxes by shrinking y.
func aspectScale(surfaceW, surfaceH, frameW, frameH int) (dx, dy float32) {
	if surfaceW <= 0 || surfaceH <= 0 || frameW <= 0 || frameH <= 0 {
		return 1, 1
	}
	r := float32(surfaceH*frameW) / float32(surfaceW*frameH)
	switch {
	case r < 1:
		return r, 1
	case r > 1:
		return 1, 1 / r
	default:
		return 1, 1
	}
}
