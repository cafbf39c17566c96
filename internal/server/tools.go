package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func pathOnlySchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": pathProperty(),
		},
		"required": []string{"path"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. EXIF orientation is applied.",
			InputSchema: pathOnlySchema(),
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: pathOnlySchema(),
		},

		// Session Operations
		{
			Name:        "editor_open",
			Description: "Open an editing session for an image. Returns the natural size, the display size used for previews and crop coordinates, and the current edit parameters. Reopening resets the session.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"max_width": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum display width. Defaults to the server's preview limit.",
					},
					"max_height": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum display height. Defaults to the server's preview limit.",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "editor_close",
			Description: "Close an editing session and release the cached image.",
			InputSchema: pathOnlySchema(),
		},
		{
			Name:        "editor_set_parameters",
			Description: "Update the edit parameters of a session. Omitted fields keep their current value. Crop coordinates are in display pixels; a crop with zero width or height removes the crop.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"crop": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x":      map[string]interface{}{"type": "number"},
							"y":      map[string]interface{}{"type": "number"},
							"width":  map[string]interface{}{"type": "number"},
							"height": map[string]interface{}{"type": "number"},
						},
						"description": "Crop rectangle in display coordinates",
					},
					"rotation": map[string]interface{}{
						"type":        "number",
						"description": "Clockwise rotation in degrees (0-360)",
					},
					"brightness": map[string]interface{}{
						"type":        "number",
						"description": "Brightness percent (0-200, 100 = unchanged)",
					},
					"contrast": map[string]interface{}{
						"type":        "number",
						"description": "Contrast percent (0-200, 100 = unchanged)",
					},
					"saturation": map[string]interface{}{
						"type":        "number",
						"description": "Saturation percent (0-200, 100 = unchanged, 0 = grayscale)",
					},
					"shift": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"r": map[string]interface{}{"type": "integer"},
							"g": map[string]interface{}{"type": "integer"},
							"b": map[string]interface{}{"type": "integer"},
						},
						"description": "Per-channel offsets (-255 to 255)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "editor_reset",
			Description: "Restore the original: no crop, no rotation, neutral colors.",
			InputSchema: pathOnlySchema(),
		},

		// Rendering
		{
			Name:        "editor_preview",
			Description: "Render the display-size preview with the current parameters and return it as base64-encoded PNG.",
			InputSchema: pathOnlySchema(),
		},
		{
			Name:        "editor_export",
			Description: "Render at full resolution with the current parameters and return it as base64-encoded PNG. Optionally also save it to a .png file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional absolute .png path to write the export to",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "editor_sample_color",
			Description: "Get the color at a pixel of the preview or export render.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
					"target": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"preview", "export"},
						"description": "Which render to sample. Default preview",
						"default":     "preview",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "editor_crop_guides",
			Description: "Render the display-size original with the crop rectangle, dimmed surroundings and rule-of-thirds lines.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Guide color in hex (#RRGGBB or #RRGGBBAA). Default semi-transparent white",
					},
					"show_size": map[string]interface{}{
						"type":        "boolean",
						"description": "Label the crop with its size in display pixels. Default true",
						"default":     true,
					},
				},
				"required": []string{"path"},
			},
		},

		// Geometry
		{
			Name:        "editor_resolve_bounds",
			Description: "Compute the canvas size of a width x height image rotated by an angle.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width":  map[string]interface{}{"type": "integer"},
					"height": map[string]interface{}{"type": "integer"},
					"angle": map[string]interface{}{
						"type":        "number",
						"description": "Rotation in degrees",
					},
				},
				"required": []string{"width", "height", "angle"},
			},
		},
		{
			Name:        "editor_straighten",
			Description: "Estimate how far the photo is tilted from the dominant near-horizontal or near-vertical edge, and the rotation that levels it. Optionally apply that rotation.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"max_tilt": map[string]interface{}{
						"type":        "number",
						"description": "Largest tilt searched in degrees, up to 45. Default 20",
						"default":     20,
					},
					"apply": map[string]interface{}{
						"type":        "boolean",
						"description": "Set the session rotation to the suggested value. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
