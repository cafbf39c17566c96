package editor

import (
	"errors"
	"fmt"
	"image"
	"io"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
)

// ErrNothingToRender is returned by Export when the resolved bounds are
// empty (a zero-sized source).
var ErrNothingToRender = errors.New("nothing to render")

// Target selects the resolution a render is drawn at.
type Target int

const (
	// TargetPreview draws at the display size into a reused buffer.
	TargetPreview Target = iota
	// TargetExport draws at the natural size into a fresh buffer.
	TargetExport
)

func (t Target) String() string {
	switch t {
	case TargetPreview:
		return "preview"
	case TargetExport:
		return "export"
	default:
		return fmt.Sprintf("Target(%d)", int(t))
	}
}

// ParseTarget parses "preview" or "export". The empty string is preview.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "preview":
		return TargetPreview, nil
	case "export":
		return TargetExport, nil
	default:
		return 0, fmt.Errorf("unknown render target: %q", s)
	}
}

// Interpolation names accepted by ParseInterpolator.
var interpolators = map[string]xdraw.Interpolator{
	"nearest":         xdraw.NearestNeighbor,
	"approx-bilinear": xdraw.ApproxBiLinear,
	"bilinear":        xdraw.BiLinear,
	"catmull-rom":     xdraw.CatmullRom,
}

// InterpolationNames lists the names accepted by ParseInterpolator.
func InterpolationNames() []string {
	return []string{"nearest", "approx-bilinear", "bilinear", "catmull-rom"}
}

// ParseInterpolator maps an interpolation name to a resampler. The empty
// string selects bilinear.
func ParseInterpolator(name string) (xdraw.Interpolator, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return xdraw.BiLinear, nil
	}
	interp, ok := interpolators[name]
	if !ok {
		return nil, fmt.Errorf("unknown interpolation %q (want one of %s)", name, strings.Join(InterpolationNames(), ", "))
	}
	return interp, nil
}

// Pipeline runs geometry, compositing and color adjustment for a source.
// It owns the preview buffer, so a Pipeline must not be used by more than
// one goroutine at a time.
type Pipeline struct {
	interp  xdraw.Interpolator
	preview *image.NRGBA
}

// NewPipeline creates a pipeline resampling with interp (bilinear if nil).
func NewPipeline(interp xdraw.Interpolator) *Pipeline {
	if interp == nil {
		interp = xdraw.BiLinear
	}
	return &Pipeline{interp: interp}
}

// Render runs the full pipeline for target and returns the resulting
// buffer. A preview render returns the pipeline's reused buffer, which is
// only valid until the next preview render; an export render returns a
// buffer owned by the caller. Degenerate geometry yields a 0x0 buffer.
func (p *Pipeline) Render(src *SourceImage, params EditParameters, target Target) *image.NRGBA {
	start := time.Now()

	size := src.Size(target)
	bounds := ResolveBounds(size.Width, size.Height, params.Rotation)

	var dst *image.NRGBA
	if target == TargetPreview {
		dst = p.previewBuffer(bounds)
	} else {
		dst = image.NewNRGBA(bounds.Rect())
	}

	if bounds.Empty() {
		Logger().Debug("nothing to render", "target", target, "size", size)
		return dst
	}

	Compose(dst, src, params.Crop, params.Rotation, target, p.interp)
	ApplyAdjustment(dst, params.Color)

	Logger().Debug("rendered",
		"target", target,
		"bounds", bounds,
		"crop", ScaleCrop(params.Crop, src.Display(), src.Natural()),
		"rotation", params.Rotation,
		"elapsed", time.Since(start),
	)
	return dst
}

// Export renders at natural resolution and writes the result to w as PNG.
// It returns the size of the encoded image.
func (p *Pipeline) Export(w io.Writer, src *SourceImage, params EditParameters) (Size, error) {
	buf := p.Render(src, params, TargetExport)
	size := Size{Width: buf.Rect.Dx(), Height: buf.Rect.Dy()}
	if size.Empty() {
		return Size{}, ErrNothingToRender
	}
	if err := imaging.Encode(w, buf, imaging.PNG); err != nil {
		return Size{}, fmt.Errorf("encode export: %w", err)
	}
	return size, nil
}

// previewBuffer resizes the reused preview buffer to size, reallocating
// only when the existing backing array is too small.
func (p *Pipeline) previewBuffer(size Size) *image.NRGBA {
	n := size.Width * size.Height * 4
	if p.preview == nil || cap(p.preview.Pix) < n {
		p.preview = image.NewNRGBA(size.Rect())
		return p.preview
	}
	p.preview.Pix = p.preview.Pix[:n]
	p.preview.Stride = size.Width * 4
	p.preview.Rect = size.Rect()
	return p.preview
}
