// Package imaging provides the file and pixel plumbing around the editor core.
//
// It loads and caches decoded images (with EXIF auto-orientation), reports
// image metadata, encodes rendered buffers as base64 PNG payloads or PNG
// files, samples pixel colors from rendered buffers, and draws the crop
// guide overlay shown over the display-scaled original.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based relative to the image
// bounds, with (0,0) at the top-left corner, X increasing rightward and Y
// increasing downward. Rectangles are half-open: Min is inclusive, Max is
// exclusive.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The other functions are
// stateless; DrawCropGuides mutates only the image passed to it.
//
// # Color Representation
//
// Sampled colors are reported non-premultiplied in several formats:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - RGBA: 8-bit components with alpha (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Coordinates outside image bounds
//   - Empty images passed to the encoder
//   - File I/O and decode errors during loading
//   - Output paths that would not produce a lossless PNG
package imaging
