package editor

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/parallel"
)

// Luma weights used as the saturation pivot.
const (
	lumaR = 0.2989
	lumaG = 0.5870
	lumaB = 0.1140
)

// truncTolerance keeps float noise from identity stages (199.99999999) from
// dropping a level when values are truncated to bytes.
const truncTolerance = 1e-6

// ApplyAdjustment rewrites the R, G and B channels of every pixel of buf in
// place. Alpha is left untouched. The stages run per pixel in a fixed order:
//
//  1. channel shift:  c = c + shift
//  2. brightness:     c = c * brightness/100
//  3. contrast:       c = ((c/255 - 0.5) * (contrast/100)^2 + 0.5) * 255
//  4. saturation:     c = gray + (c - gray) * saturation/100,
//     gray = 0.2989 R + 0.5870 G + 0.1140 B of the post-contrast pixel
//
// Every stage result is clamped to [0, 255]. Values are kept as floats
// between stages and truncated once when written back. No field of adj is
// validated.
func ApplyAdjustment(buf *image.NRGBA, adj ColorAdjustment) {
	if adj.IsIdentity() || buf.Rect.Empty() {
		return
	}

	k := newAdjuster(adj)
	width := buf.Rect.Dx()

	// Rows are independent.
	parallel.Line(buf.Rect.Dy(), func(start, end int) {
		for y := start; y < end; y++ {
			i := buf.PixOffset(buf.Rect.Min.X, buf.Rect.Min.Y+y)
			row := buf.Pix[i : i+width*4 : i+width*4]
			for p := 0; p < len(row); p += 4 {
				row[p], row[p+1], row[p+2] = k.apply(row[p], row[p+1], row[p+2])
			}
		}
	})
}

// AdjustPixel applies adj to a single RGB triple. It is the per-pixel step
// of ApplyAdjustment.
func AdjustPixel(r, g, b uint8, adj ColorAdjustment) (uint8, uint8, uint8) {
	return newAdjuster(adj).apply(r, g, b)
}

type adjuster struct {
	shift      [3]float64
	brightness float64
	contrast   float64
	saturation float64
}

func newAdjuster(adj ColorAdjustment) adjuster {
	c := adj.Contrast / 100
	return adjuster{
		shift:      [3]float64{float64(adj.Shift.R), float64(adj.Shift.G), float64(adj.Shift.B)},
		brightness: adj.Brightness / 100,
		contrast:   c * c,
		saturation: adj.Saturation / 100,
	}
}

func (k adjuster) apply(r, g, b uint8) (uint8, uint8, uint8) {
	c := [3]float64{float64(r), float64(g), float64(b)}

	for i := range c {
		c[i] = clamp255(c[i] + k.shift[i])
		c[i] = clamp255(c[i] * k.brightness)
		c[i] = clamp255(((c[i]/255-0.5)*k.contrast + 0.5) * 255)
	}

	gray := lumaR*c[0] + lumaG*c[1] + lumaB*c[2]
	for i := range c {
		c[i] = clamp255(gray + (c[i]-gray)*k.saturation)
	}

	return store(c[0]), store(c[1]), store(c[2])
}

func clamp255(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// store truncates a clamped channel value to a byte.
func store(v float64) uint8 {
	v += truncTolerance
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
