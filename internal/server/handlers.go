package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"os"

	"github.com/ironsheep/photo-editor-mcp/internal/detection"
	"github.com/ironsheep/photo-editor-mcp/internal/editor"
	"github.com/ironsheep/photo-editor-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "editor_open", "editor_export").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Info("tool failed", "tool", params.Name, "err", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Session Operations
	case "editor_open":
		return s.handleEditorOpen(ctx, args)
	case "editor_close":
		return s.handleEditorClose(args)
	case "editor_set_parameters":
		return s.handleEditorSetParameters(args)
	case "editor_reset":
		return s.handleEditorReset(args)

	// Rendering
	case "editor_preview":
		return s.handleEditorPreview(args)
	case "editor_export":
		return s.handleEditorExport(args)
	case "editor_sample_color":
		return s.handleEditorSampleColor(args)
	case "editor_crop_guides":
		return s.handleEditorCropGuides(args)

	// Geometry
	case "editor_resolve_bounds":
		return s.handleEditorResolveBounds(args)
	case "editor_straighten":
		return s.handleEditorStraighten(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Session Handlers ===

// SessionResult describes an editing session.
type SessionResult struct {
	Path       string                `json:"path"`
	Natural    editor.Size           `json:"natural"`
	Display    editor.Size           `json:"display"`
	Parameters editor.EditParameters `json:"parameters"`
}

type editorOpenArgs struct {
	Path      string `json:"path"`
	MaxWidth  int    `json:"max_width"`
	MaxHeight int    `json:"max_height"`
}

func (s *Server) handleEditorOpen(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a editorOpenArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if a.MaxWidth == 0 {
		a.MaxWidth = s.cfg.PreviewMaxWidth
	}
	if a.MaxHeight == 0 {
		a.MaxHeight = s.cfg.PreviewMaxHeight
	}

	// Opening always reads the file again, so a reopen sees changes on disk.
	s.cache.Evict(a.Path)
	pending := editor.LoadSource(s.cache.Decoder(a.Path), editor.Size{Width: a.MaxWidth, Height: a.MaxHeight})
	sess := editor.NewSession(pending, s.interp)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.OpenTimeout)
	defer cancel()
	src, err := sess.Wait(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[a.Path] = sess
	s.mu.Unlock()

	s.logger.Debug("session opened", "path", a.Path, "natural", src.Natural(), "display", src.Display())

	return &SessionResult{
		Path:       a.Path,
		Natural:    src.Natural(),
		Display:    src.Display(),
		Parameters: sess.Parameters(),
	}, nil
}

func (s *Server) handleEditorClose(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	s.mu.Lock()
	_, ok := s.sessions[a.Path]
	delete(s.sessions, a.Path)
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("no editing session for %s", a.Path)
	}

	s.cache.Evict(a.Path)
	return map[string]interface{}{"path": a.Path, "closed": true}, nil
}

// ParametersResult reports the parameters of a session and the buffer sizes
// they produce.
type ParametersResult struct {
	Parameters    editor.EditParameters `json:"parameters"`
	PreviewBounds editor.Size           `json:"preview_bounds"`
	ExportBounds  editor.Size           `json:"export_bounds"`
}

type shiftArgs struct {
	R *int `json:"r"`
	G *int `json:"g"`
	B *int `json:"b"`
}

type editorSetParametersArgs struct {
	Path       string             `json:"path"`
	Crop       *editor.CropRegion `json:"crop"`
	Rotation   *float64           `json:"rotation"`
	Brightness *float64           `json:"brightness"`
	Contrast   *float64           `json:"contrast"`
	Saturation *float64           `json:"saturation"`
	Shift      *shiftArgs         `json:"shift"`
}

// apply returns p with every field present in a replaced.
func (a editorSetParametersArgs) apply(p editor.EditParameters) editor.EditParameters {
	if a.Crop != nil {
		p = p.WithCrop(*a.Crop)
	}
	if a.Rotation != nil {
		p = p.WithRotation(*a.Rotation)
	}

	c := p.Color
	if a.Brightness != nil {
		c.Brightness = *a.Brightness
	}
	if a.Contrast != nil {
		c.Contrast = *a.Contrast
	}
	if a.Saturation != nil {
		c.Saturation = *a.Saturation
	}
	if a.Shift != nil {
		if a.Shift.R != nil {
			c.Shift.R = *a.Shift.R
		}
		if a.Shift.G != nil {
			c.Shift.G = *a.Shift.G
		}
		if a.Shift.B != nil {
			c.Shift.B = *a.Shift.B
		}
	}
	return p.WithColor(c)
}

func (s *Server) parametersResult(sess *editor.Session) (*ParametersResult, error) {
	src, err := sess.Source()
	if err != nil {
		return nil, err
	}
	p := sess.Parameters()
	preview, natural := src.Display(), src.Natural()
	return &ParametersResult{
		Parameters:    p,
		PreviewBounds: editor.ResolveBounds(preview.Width, preview.Height, p.Rotation),
		ExportBounds:  editor.ResolveBounds(natural.Width, natural.Height, p.Rotation),
	}, nil
}

func (s *Server) handleEditorSetParameters(args json.RawMessage) (interface{}, error) {
	var a editorSetParametersArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session(a.Path)
	if err != nil {
		return nil, err
	}

	sess.Update(a.apply)
	return s.parametersResult(sess)
}

func (s *Server) handleEditorReset(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session(a.Path)
	if err != nil {
		return nil, err
	}

	sess.Reset()
	return s.parametersResult(sess)
}

// === Rendering Handlers ===

func (s *Server) handleEditorPreview(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session(a.Path)
	if err != nil {
		return nil, err
	}

	var result *imaging.EncodedImage
	err = sess.Preview(func(buf *image.NRGBA) error {
		if buf.Rect.Empty() {
			return editor.ErrNothingToRender
		}
		var err error
		result, err = imaging.EncodePNG(buf)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type editorExportArgs struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleEditorExport(args json.RawMessage) (interface{}, error) {
	var a editorExportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.OutputPath != "" {
		if err := imaging.ValidatePNGPath(a.OutputPath); err != nil {
			return nil, err
		}
	}
	sess, err := s.session(a.Path)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	size, err := sess.Export(&buf)
	if err != nil {
		return nil, err
	}

	result := &imaging.EncodedImage{
		Width:       size.Width,
		Height:      size.Height,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}
	if a.OutputPath != "" {
		if err := os.WriteFile(a.OutputPath, buf.Bytes(), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write export: %w", err)
		}
		result.SavedTo = a.OutputPath
	}
	return result, nil
}

type editorSampleColorArgs struct {
	Path   string `json:"path"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Target string `json:"target"`
}

func (s *Server) handleEditorSampleColor(args json.RawMessage) (interface{}, error) {
	var a editorSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	target, err := editor.ParseTarget(a.Target)
	if err != nil {
		return nil, err
	}
	sess, err := s.session(a.Path)
	if err != nil {
		return nil, err
	}

	if target == editor.TargetPreview {
		var result *imaging.ColorResult
		err := sess.Preview(func(buf *image.NRGBA) error {
			var err error
			result, err = imaging.SampleColor(buf, a.X, a.Y)
			return err
		})
		if err != nil {
			return nil, err
		}
		return result, nil
	}

	buf, err := sess.Render(target)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(buf, a.X, a.Y)
}

type editorCropGuidesArgs struct {
	Path     string `json:"path"`
	Color    string `json:"color"`
	ShowSize *bool  `json:"show_size"`
}

func (s *Server) handleEditorCropGuides(args json.RawMessage) (interface{}, error) {
	var a editorCropGuidesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	showSize := true
	if a.ShowSize != nil {
		showSize = *a.ShowSize
	}
	sess, err := s.session(a.Path)
	if err != nil {
		return nil, err
	}
	src, err := sess.Source()
	if err != nil {
		return nil, err
	}

	display := src.Display()
	var crop image.Rectangle
	if c := sess.Parameters().Crop; c.Present() {
		// Scaling display onto itself only snaps the crop to whole pixels.
		crop = editor.ScaleCrop(c, display, display)
	}
	return imaging.CropGuides(src.Bitmap(), display.Width, display.Height, crop, a.Color, showSize)
}

// === Geometry Handlers ===

type editorResolveBoundsArgs struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Angle  float64 `json:"angle"`
}

func (s *Server) handleEditorResolveBounds(args json.RawMessage) (interface{}, error) {
	var a editorResolveBoundsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Width < 0 || a.Height < 0 {
		return nil, fmt.Errorf("width and height must not be negative")
	}
	return editor.ResolveBounds(a.Width, a.Height, a.Angle), nil
}

// StraightenResult reports the estimated tilt of a session's image.
type StraightenResult struct {
	detection.TiltResult
	Applied    bool                   `json:"applied"`
	Parameters *editor.EditParameters `json:"parameters,omitempty"`
}

type editorStraightenArgs struct {
	Path    string  `json:"path"`
	MaxTilt float64 `json:"max_tilt"`
	Apply   bool    `json:"apply"`
}

func (s *Server) handleEditorStraighten(args json.RawMessage) (interface{}, error) {
	var a editorStraightenArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session(a.Path)
	if err != nil {
		return nil, err
	}
	src, err := sess.Source()
	if err != nil {
		return nil, err
	}

	opts := detection.DefaultTiltOptions()
	if a.MaxTilt > 0 {
		opts.MaxTilt = a.MaxTilt
	}
	display := src.Display()
	tilt, err := detection.EstimateTilt(imaging.DisplayImage(src.Bitmap(), display.Width, display.Height), opts)
	if err != nil {
		return nil, err
	}

	result := &StraightenResult{TiltResult: *tilt}
	if a.Apply {
		p := sess.Update(func(p editor.EditParameters) editor.EditParameters {
			return p.WithRotation(tilt.Rotation)
		})
		result.Applied = true
		result.Parameters = &p
	}
	return result, nil
}
