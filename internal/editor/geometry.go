package editor

import (
	"image"
	"math"
)

// Size is a width and height in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty reports whether the size covers no pixels.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect returns the rectangle (0,0)-(Width,Height).
func (s Size) Rect() image.Rectangle {
	return image.Rect(0, 0, s.Width, s.Height)
}

// ResolveBounds returns the axis-aligned bounding box of a width x height
// rectangle rotated by angleDegrees about its center:
//
//	newWidth  = floor(width*|cos θ| + height*|sin θ|)
//	newHeight = floor(width*|sin θ| + height*|cos θ|)
//
// Any finite angle is accepted, including negative angles and angles of a
// full turn or more. A 0x0 input yields a 0x0 result, which callers treat as
// nothing to render.
func ResolveBounds(width, height int, angleDegrees float64) Size {
	sin, cos := sinCos(angleDegrees)
	sin, cos = math.Abs(sin), math.Abs(cos)

	w, h := float64(width), float64(height)
	return Size{
		Width:  nonNegative(int(math.Floor(w*cos + h*sin))),
		Height: nonNegative(int(math.Floor(w*sin + h*cos))),
	}
}

// NormalizeAngle reduces an angle in degrees to [0, 360).
// Non-finite angles are treated as 0.
func NormalizeAngle(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		Logger().Warn("non-finite rotation angle treated as 0", "angle", deg)
		return 0
	}
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	// -1e-18 + 360 rounds to 360, and -0 stays -0 through Mod.
	if d >= 360 || d == 0 {
		d = 0
	}
	return d
}

// sinCos returns the sine and cosine of an angle in degrees. Quarter turns
// are exact so that 90/180/270 degree renders map pixel centers onto pixel
// centers.
func sinCos(deg float64) (sin, cos float64) {
	d := NormalizeAngle(deg)
	switch d {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	return math.Sincos(d * math.Pi / 180)
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
