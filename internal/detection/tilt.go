package detection

import (
	"errors"
	"image"
	"math"

	"github.com/anthonynsimon/bild/effect"
	"github.com/ironsheep/photo-editor-mcp/internal/editor"
)

// ErrNoEdges is returned when an image has no edge strong enough to vote.
var ErrNoEdges = errors.New("no straight edges found")

// Orientation names the family of the dominant line.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// TiltOptions controls EstimateTilt.
type TiltOptions struct {
	// MaxTilt is the largest tilt searched, in degrees on either side of level.
	MaxTilt float64

	// Step is the angular resolution in degrees.
	Step float64

	// EdgeThreshold is the Sobel magnitude (0-255) an edge pixel must exceed.
	EdgeThreshold uint8
}

// DefaultTiltOptions returns the options used when none are given.
func DefaultTiltOptions() TiltOptions {
	return TiltOptions{
		MaxTilt:       20,
		Step:          0.25,
		EdgeThreshold: 96,
	}
}

// TiltResult describes the dominant near-level line of an image.
type TiltResult struct {
	// TiltDegrees is the clockwise tilt of the dominant line from level.
	TiltDegrees float64 `json:"tilt_degrees"`

	// Rotation is the clockwise rotation in [0, 360) that levels the line.
	Rotation float64 `json:"suggested_rotation"`

	Orientation Orientation `json:"orientation"`

	// Votes is the number of edge pixels on the dominant line.
	Votes int `json:"votes"`

	// EdgePixels is the number of edge pixels that voted.
	EdgePixels int `json:"edge_pixels"`

	// Confidence is Votes relative to the longest line the image could hold.
	Confidence float64 `json:"confidence"`
}

// border is the margin, in pixels, excluded from edge detection.
const border = 2

// EstimateTilt finds the dominant near-horizontal or near-vertical line of
// img and the rotation that levels it.
func EstimateTilt(img image.Image, opts TiltOptions) (*TiltResult, error) {
	def := DefaultTiltOptions()
	if opts.MaxTilt <= 0 || opts.MaxTilt > 45 {
		opts.MaxTilt = def.MaxTilt
	}
	if opts.Step <= 0 {
		opts.Step = def.Step
	}

	edges := detectEdges(img, opts.EdgeThreshold)
	if len(edges) == 0 {
		return nil, ErrNoEdges
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	numAngles := int(math.Round(2*opts.MaxTilt/opts.Step)) + 1
	angles := make([]float64, numAngles)
	cosT := make([]float64, numAngles)
	sinT := make([]float64, numAngles)
	for i := range angles {
		angles[i] = -opts.MaxTilt + float64(i)*opts.Step
		rad := angles[i] * math.Pi / 180
		cosT[i] = math.Cos(rad)
		sinT[i] = math.Sin(rad)
	}

	// Distances stay within the image diagonal for both families.
	maxDist := int(math.Ceil(math.Hypot(float64(width), float64(height))))
	rhoSize := maxDist*2 + 1
	horiz := make([][]int, numAngles)
	vert := make([][]int, numAngles)
	for i := range horiz {
		horiz[i] = make([]int, rhoSize)
		vert[i] = make([]int, rhoSize)
	}

	// Vote in Hough space. A horizontal line tilted by t has direction
	// (cos t, sin t) and normal (-sin t, cos t); a vertical one has direction
	// (-sin t, cos t) and normal (cos t, sin t).
	for _, p := range edges {
		x, y := float64(p.X), float64(p.Y)
		for t := 0; t < numAngles; t++ {
			h := int(math.Round(-x*sinT[t]+y*cosT[t])) + maxDist
			v := int(math.Round(x*cosT[t]+y*sinT[t])) + maxDist
			if h >= 0 && h < rhoSize {
				horiz[t][h]++
			}
			if v >= 0 && v < rhoSize {
				vert[t][v]++
			}
		}
	}

	best := peak{theta: -1}
	for t := 0; t < numAngles; t++ {
		for rho := 0; rho < rhoSize; rho++ {
			best = best.consider(peak{theta: t, votes: horiz[t][rho], orientation: Horizontal}, angles)
			best = best.consider(peak{theta: t, votes: vert[t][rho], orientation: Vertical}, angles)
		}
	}

	tilt := angles[best.theta]
	longest := width
	if best.orientation == Vertical {
		longest = height
	}
	// Both sides of a drawn line are edges, so a clean line can reach twice
	// its length in votes.
	confidence := math.Min(1, float64(best.votes)/float64(2*max(1, longest-2*border)))

	editor.Logger().Debug("tilt estimated",
		"tilt", tilt,
		"orientation", best.orientation,
		"votes", best.votes,
		"edge_pixels", len(edges),
	)

	return &TiltResult{
		TiltDegrees: tilt,
		Rotation:    editor.NormalizeAngle(-tilt),
		Orientation: best.orientation,
		Votes:       best.votes,
		EdgePixels:  len(edges),
		Confidence:  math.Round(confidence*100) / 100,
	}, nil
}

type peak struct {
	theta       int
	votes       int
	orientation Orientation
}

// consider returns whichever of p and q has more votes, preferring the
// smaller tilt on a tie.
func (p peak) consider(q peak, angles []float64) peak {
	if q.votes == 0 {
		return p
	}
	if p.theta < 0 || q.votes > p.votes {
		return q
	}
	if q.votes == p.votes && math.Abs(angles[q.theta]) < math.Abs(angles[p.theta]) {
		return q
	}
	return p
}

// detectEdges returns the pixels whose Sobel gradient magnitude exceeds
// threshold, relative to the image origin. Pixels within border of the
// frame are skipped.
func detectEdges(img image.Image, threshold uint8) []image.Point {
	magnitude := effect.Sobel(effect.Grayscale(img))
	b := magnitude.Bounds()

	var edges []image.Point
	for y := b.Min.Y + border; y < b.Max.Y-border; y++ {
		row := magnitude.Pix[(y-b.Min.Y)*magnitude.Stride:]
		for x := b.Min.X + border; x < b.Max.X-border; x++ {
			if row[(x-b.Min.X)*4] > threshold {
				edges = append(edges, image.Point{X: x - b.Min.X, Y: y - b.Min.Y})
			}
		}
	}
	return edges
}
