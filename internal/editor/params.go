package editor

// CropRegion is an axis-aligned crop rectangle in display coordinates.
// A region with zero (or negative) width or height means "no crop"; the
// zero value is therefore the absent crop.
type CropRegion struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Present reports whether the region selects a non-empty area.
func (c CropRegion) Present() bool {
	return c.Width > 0 && c.Height > 0
}

// ChannelShift is an additive per-channel offset, nominally in [-255, 255].
type ChannelShift struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// ColorAdjustment describes the per-pixel color pass. Brightness, Contrast
// and Saturation are percentages where 100 is identity. Values outside the
// slider ranges are accepted as-is.
type ColorAdjustment struct {
	Brightness float64      `json:"brightness"`
	Contrast   float64      `json:"contrast"`
	Saturation float64      `json:"saturation"`
	Shift      ChannelShift `json:"shift"`
}

// IdentityAdjustment returns the adjustment that leaves pixels unchanged.
func IdentityAdjustment() ColorAdjustment {
	return ColorAdjustment{Brightness: 100, Contrast: 100, Saturation: 100}
}

// IsIdentity reports whether a is the identity adjustment.
func (a ColorAdjustment) IsIdentity() bool {
	return a == IdentityAdjustment()
}

// EditParameters is the complete editing state applied by one render.
// It is a value type: edits produce a new value instead of mutating one.
type EditParameters struct {
	Crop     CropRegion      `json:"crop"`
	Rotation float64         `json:"rotation"`
	Color    ColorAdjustment `json:"color"`
}

// DefaultParameters returns the "restore original" state: no crop, no
// rotation and the identity color adjustment.
func DefaultParameters() EditParameters {
	return EditParameters{Color: IdentityAdjustment()}
}

// WithCrop returns a copy of p with the crop replaced.
func (p EditParameters) WithCrop(c CropRegion) EditParameters {
	p.Crop = c
	return p
}

// WithRotation returns a copy of p with the rotation replaced.
func (p EditParameters) WithRotation(deg float64) EditParameters {
	p.Rotation = deg
	return p
}

// WithColor returns a copy of p with the color adjustment replaced.
func (p EditParameters) WithColor(a ColorAdjustment) EditParameters {
	p.Color = a
	return p
}
