package editor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// ErrSourceUnavailable is returned when a render is requested before the
// source bitmap has finished decoding, or after decoding failed.
var ErrSourceUnavailable = errors.New("source image not available")

// SourceImage is an immutable decoded bitmap together with the size it is
// displayed at. The natural bitmap is only ever read by the pipeline.
type SourceImage struct {
	bitmap  *image.NRGBA
	display Size
}

// NewSourceImage copies img into a natural-resolution NRGBA bitmap anchored
// at (0,0). A display size with a zero component falls back to the natural
// size.
func NewSourceImage(img image.Image, display Size) *SourceImage {
	bitmap := imaging.Clone(img)
	natural := Size{Width: bitmap.Rect.Dx(), Height: bitmap.Rect.Dy()}
	if display.Empty() {
		display = natural
	}
	return &SourceImage{bitmap: bitmap, display: display}
}

// Natural returns the original resolution of the source.
func (s *SourceImage) Natural() Size {
	return Size{Width: s.bitmap.Rect.Dx(), Height: s.bitmap.Rect.Dy()}
}

// Display returns the display-scaled size of the source.
func (s *SourceImage) Display() Size {
	return s.display
}

// Bitmap returns the natural-resolution pixels. Callers must not modify it.
func (s *SourceImage) Bitmap() *image.NRGBA {
	return s.bitmap
}

// Size returns the size the source is drawn at for the given target.
func (s *SourceImage) Size(t Target) Size {
	if t == TargetExport {
		return s.Natural()
	}
	return s.display
}

// FitDisplay returns the size an image of the given natural size is shown
// at inside a maxWidth x maxHeight box. The aspect ratio is preserved and
// images are never upscaled. A non-positive limit leaves that axis
// unconstrained.
func FitDisplay(natural Size, maxWidth, maxHeight int) Size {
	if natural.Empty() {
		return Size{}
	}
	scale := 1.0
	if maxWidth > 0 && natural.Width > maxWidth {
		scale = float64(maxWidth) / float64(natural.Width)
	}
	if maxHeight > 0 && float64(natural.Height)*scale > float64(maxHeight) {
		scale = float64(maxHeight) / float64(natural.Height)
	}
	if scale == 1 {
		return natural
	}
	return Size{
		Width:  max(1, int(math.Round(float64(natural.Width)*scale))),
		Height: max(1, int(math.Round(float64(natural.Height)*scale))),
	}
}

// PendingSource is a source whose bitmap may still be decoding.
// Ready is closed exactly once, when decoding completes or fails.
type PendingSource struct {
	ready chan struct{}
	src   *SourceImage
	err   error
}

// LoadSource starts decoding in a new goroutine. The display size is
// derived with FitDisplay against maxDisplay once the natural size is known.
func LoadSource(decode func() (image.Image, error), maxDisplay Size) *PendingSource {
	p := &PendingSource{ready: make(chan struct{})}
	go func() {
		defer close(p.ready)
		img, err := decode()
		if err != nil {
			p.err = fmt.Errorf("decode source: %w", err)
			return
		}
		b := img.Bounds()
		display := FitDisplay(Size{Width: b.Dx(), Height: b.Dy()}, maxDisplay.Width, maxDisplay.Height)
		p.src = NewSourceImage(img, display)
	}()
	return p
}

// ReadySource wraps an already decoded source; its Ready channel is closed.
func ReadySource(src *SourceImage) *PendingSource {
	p := &PendingSource{ready: make(chan struct{}), src: src}
	close(p.ready)
	return p
}

// Ready returns a channel that is closed once decoding has finished.
func (p *PendingSource) Ready() <-chan struct{} {
	return p.ready
}

// Source returns the decoded source without blocking. It returns
// ErrSourceUnavailable while decoding is in progress, and an error wrapping
// both ErrSourceUnavailable and the decode error if decoding failed.
func (p *PendingSource) Source() (*SourceImage, error) {
	select {
	case <-p.ready:
	default:
		return nil, ErrSourceUnavailable
	}
	if p.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, p.err)
	}
	return p.src, nil
}

// Wait blocks until decoding finishes or ctx is done.
func (p *PendingSource) Wait(ctx context.Context) (*SourceImage, error) {
	select {
	case <-p.ready:
		return p.Source()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
