// Package server implements the MCP (Model Context Protocol) server for photo editing.
//
// This package provides a JSON-RPC 2.0 server that exposes the editor pipeline
// through the MCP protocol. A client opens an editing session on an image file,
// adjusts crop, rotation and color parameters, and pulls back a display-size
// preview or a full-resolution export.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Session Operations:
//   - editor_open: Decode an image and start a session
//   - editor_close: End a session and evict the image
//   - editor_set_parameters: Update crop, rotation and color (partial)
//   - editor_reset: Restore the original
//
// Rendering:
//   - editor_preview: Display-size render as PNG
//   - editor_export: Natural-size render as PNG, optionally saved to disk
//   - editor_sample_color: Color at a pixel of either render
//   - editor_crop_guides: Crop rectangle overlay on the display image
//
// Geometry:
//   - editor_resolve_bounds: Canvas size of a rotated rectangle
//   - editor_straighten: Suggest (and optionally apply) a leveling rotation
//
// # Sessions
//
// Sessions are keyed by image path. Opening a path that already has a session
// replaces it with a fresh one. Decoded images are cached until the session is
// closed.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv, err := server.NewWithConfig(server.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	return srv.Run(ctx)
package server
