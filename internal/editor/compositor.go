package editor

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// edgeTolerance absorbs float noise when display-space crop edges are
// scaled onto natural pixel boundaries (30 * 4/3 must stay 40, not 41).
const edgeTolerance = 1e-9

// ScaleCrop resolves a display-space crop against the natural bitmap. The
// rectangle is scaled by natural/display on each axis, expanded outward to
// whole pixels and clipped to the bitmap. An absent crop, a crop that falls
// entirely outside the bitmap, or an unknown display size selects the full
// bitmap.
func ScaleCrop(crop CropRegion, display, natural Size) image.Rectangle {
	full := natural.Rect()
	if !crop.Present() || display.Empty() {
		return full
	}

	sx := float64(natural.Width) / float64(display.Width)
	sy := float64(natural.Height) / float64(display.Height)

	r := image.Rect(
		int(math.Floor(crop.X*sx+edgeTolerance)),
		int(math.Floor(crop.Y*sy+edgeTolerance)),
		int(math.Ceil((crop.X+crop.Width)*sx-edgeTolerance)),
		int(math.Ceil((crop.Y+crop.Height)*sy-edgeTolerance)),
	).Intersect(full)
	if r.Empty() {
		return full
	}
	return r
}

// Compose clears dst and draws the source into it, rotated by angleDegrees
// about the center of dst. The drawn image is the (cropped) natural bitmap
// stretched to the source's size for target, so a crop is always sampled
// at natural resolution whatever resolution dst represents.
//
// dst is normally sized by ResolveBounds for the same target and angle.
// An empty dst or a zero-sized source leaves dst cleared.
func Compose(dst *image.NRGBA, src *SourceImage, crop CropRegion, angleDegrees float64, target Target, interp xdraw.Interpolator) {
	clear(dst.Pix)

	size := src.Size(target)
	if dst.Rect.Empty() || size.Empty() || src.Natural().Empty() {
		return
	}
	if interp == nil {
		interp = xdraw.BiLinear
	}

	sr := ScaleCrop(crop, src.Display(), src.Natural())
	interp.Transform(dst, sourceToDest(dst.Rect, sr, size, angleDegrees), src.bitmap, sr, xdraw.Src, nil)
}

// sourceToDest builds the affine map taking the crop rectangle sr of the
// natural bitmap onto a size-sized image centered on dr and rotated
// clockwise (y grows downward) by angleDegrees:
//
//	dst = T(center of dr) * R(θ) * S(size/sr) * T(-center of sr) * src
func sourceToDest(dr, sr image.Rectangle, size Size, angleDegrees float64) f64.Aff3 {
	sin, cos := sinCos(angleDegrees)

	kx := float64(size.Width) / float64(sr.Dx())
	ky := float64(size.Height) / float64(sr.Dy())

	scx := float64(sr.Min.X) + float64(sr.Dx())/2
	scy := float64(sr.Min.Y) + float64(sr.Dy())/2
	dcx := float64(dr.Min.X) + float64(dr.Dx())/2
	dcy := float64(dr.Min.Y) + float64(dr.Dy())/2

	a, b := cos*kx, -sin*ky
	d, e := sin*kx, cos*ky

	return f64.Aff3{
		a, b, dcx - a*scx - b*scy,
		d, e, dcy - d*scx - e*scy,
	}
}
