package editor

import (
	"context"
	"image"
	"io"
	"sync"

	xdraw "golang.org/x/image/draw"
)

// Session is one editing session over a single source. It holds the current
// EditParameters value and serializes renders so that the preview buffer is
// owned by one render at a time.
type Session struct {
	mu       sync.Mutex
	source   *PendingSource
	params   EditParameters
	pipeline *Pipeline
}

// NewSession starts a session over source with default parameters.
func NewSession(source *PendingSource, interp xdraw.Interpolator) *Session {
	return &Session{
		source:   source,
		params:   DefaultParameters(),
		pipeline: NewPipeline(interp),
	}
}

// Source returns the decoded source without blocking.
func (s *Session) Source() (*SourceImage, error) {
	return s.source.Source()
}

// Wait blocks until the source has finished decoding or ctx is done.
func (s *Session) Wait(ctx context.Context) (*SourceImage, error) {
	return s.source.Wait(ctx)
}

// Parameters returns the current parameter value.
func (s *Session) Parameters() EditParameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// SetParameters replaces the current parameter value.
func (s *Session) SetParameters(p EditParameters) {
	s.mu.Lock()
	s.params = p
	s.mu.Unlock()
}

// Update replaces the current parameter value with fn applied to it and
// returns the new value. fn must not call back into the session.
func (s *Session) Update(fn func(EditParameters) EditParameters) EditParameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = fn(s.params)
	return s.params
}

// Reset restores DefaultParameters.
func (s *Session) Reset() {
	s.SetParameters(DefaultParameters())
}

// Preview renders the preview with the current parameters and passes the
// buffer to fn. The buffer is reused by the next preview and must not be
// retained after fn returns.
func (s *Session) Preview(fn func(buf *image.NRGBA) error) error {
	src, err := s.source.Source()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.pipeline.Render(src, s.params, TargetPreview))
}

// Render renders target with the current parameters into a buffer owned by
// the caller.
func (s *Session) Render(target Target) (*image.NRGBA, error) {
	if target == TargetPreview {
		var out *image.NRGBA
		err := s.Preview(func(buf *image.NRGBA) error {
			out = &image.NRGBA{
				Pix:    append([]uint8(nil), buf.Pix...),
				Stride: buf.Stride,
				Rect:   buf.Rect,
			}
			return nil
		})
		return out, err
	}

	src, err := s.source.Source()
	if err != nil {
		return nil, err
	}
	// Export renders never touch the preview buffer.
	return s.pipeline.Render(src, s.Parameters(), TargetExport), nil
}

// Export renders at natural resolution and writes PNG to w.
func (s *Session) Export(w io.Writer) (Size, error) {
	src, err := s.source.Source()
	if err != nil {
		return Size{}, err
	}
	return s.pipeline.Export(w, src, s.Parameters())
}
