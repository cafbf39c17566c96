package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultGuideColor is used when no guide color is given or it fails to parse.
var DefaultGuideColor = color.NRGBA{R: 255, G: 255, B: 255, A: 200}

// CropGuides renders img at width x height and overlays the crop widget: the
// area outside crop is dimmed, the crop rectangle is outlined, and
// rule-of-thirds lines are drawn inside it. crop is in display coordinates.
// An empty crop returns the scaled image without overlay.
func CropGuides(img image.Image, width, height int, crop image.Rectangle, guideColorHex string, showSize bool) (*EncodedImage, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid display size %dx%d", width, height)
	}

	display := DisplayImage(img, width, height)

	guide, err := parseHexColor(guideColorHex)
	if err != nil {
		guide = DefaultGuideColor
	}

	DrawCropGuides(display, crop, guide, showSize)
	return EncodePNG(display)
}

// DisplayImage returns a copy of img scaled to width x height, the size it
// is shown at in the editor.
func DisplayImage(img image.Image, width, height int) *image.NRGBA {
	if b := img.Bounds(); b.Dx() == width && b.Dy() == height {
		return imaging.Clone(img)
	}
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

// DrawCropGuides draws the crop overlay onto img in place.
func DrawCropGuides(img *image.NRGBA, crop image.Rectangle, guide color.NRGBA, showSize bool) {
	bounds := img.Bounds()
	crop = crop.Intersect(bounds)
	if crop.Empty() {
		return
	}

	// Dim everything outside the crop.
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if (image.Point{X: x, Y: y}).In(crop) {
				continue
			}
			c := img.NRGBAAt(x, y)
			c.R, c.G, c.B = c.R/2, c.G/2, c.B/2
			img.SetNRGBA(x, y, c)
		}
	}

	// Rule of thirds.
	w, h := crop.Dx(), crop.Dy()
	for i := 1; i <= 2; i++ {
		x := crop.Min.X + w*i/3
		y := crop.Min.Y + h*i/3
		for yy := crop.Min.Y; yy < crop.Max.Y; yy++ {
			blend(img, x, yy, guide)
		}
		for xx := crop.Min.X; xx < crop.Max.X; xx++ {
			blend(img, xx, y, guide)
		}
	}

	// Outline, drawn opaque so it stays visible on light images.
	edge := guide
	edge.A = 255
	for x := crop.Min.X; x < crop.Max.X; x++ {
		img.SetNRGBA(x, crop.Min.Y, edge)
		img.SetNRGBA(x, crop.Max.Y-1, edge)
	}
	for y := crop.Min.Y; y < crop.Max.Y; y++ {
		img.SetNRGBA(crop.Min.X, y, edge)
		img.SetNRGBA(crop.Max.X-1, y, edge)
	}

	if showSize {
		label := fmt.Sprintf("%dx%d", w, h)
		drawLabel(img, crop.Min.X+2, crop.Min.Y+2, label,
			color.NRGBA{255, 255, 255, 255}, color.NRGBA{0, 0, 0, 180})
	}
}

// blend composites c over the pixel at (x, y).
func blend(img *image.NRGBA, x, y int, c color.NRGBA) {
	if !(image.Point{X: x, Y: y}).In(img.Rect) {
		return
	}
	dst := img.NRGBAAt(x, y)
	a := uint32(c.A)
	mix := func(s, d uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*(255-a) + 127) / 255)
	}
	img.SetNRGBA(x, y, color.NRGBA{
		R: mix(c.R, dst.R),
		G: mix(c.G, dst.G),
		B: mix(c.B, dst.B),
		A: uint8(a + uint32(dst.A)*(255-a)/255),
	})
}

// parseHexColor parses a hex color string like "#FF0000", "#F00" or
// "#FF000080". The leading '#' is optional; an eighth and ninth digit give
// the alpha.
func parseHexColor(hex string) (color.NRGBA, error) {
	if len(hex) == 0 {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var a uint8 = 255
	switch len(hex) {
	case 3, 6:
	case 8:
		val, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha in %q: %w", hex, err)
		}
		a = uint8(val)
		hex = hex[:6]
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color length")
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

// drawLabel draws a text label using a 3x5 pixel font for digits and 'x'.
func drawLabel(img *image.NRGBA, x, y int, text string, fg, bg color.NRGBA) {
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
		'x': {"000", "101", "010", "101", "000"},
	}

	bounds := img.Bounds()
	charWidth := 4
	labelWidth := len(text) * charWidth
	labelHeight := 7

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			blend(img, x+dx, y+dy, bg)
		}
	}

	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel == '1' {
					px, py := cx+col, y+row
					if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
						img.SetNRGBA(px, py, fg)
					}
				}
			}
		}
		cx += charWidth
	}
}
