// Package editor implements the raster editing pipeline behind the photo editor.
//
// A render runs three stages over a single RGBA buffer:
//
//  1. Geometry: ResolveBounds computes the axis-aligned bounding box of the
//     target-sized image rotated by the requested angle. The buffer is
//     allocated at exactly that size.
//  2. Compositing: Compose clears the buffer and draws the (optionally
//     cropped) source bitmap rotated about the buffer's center. The crop
//     rectangle is authored in display coordinates and always resolved
//     against the natural-resolution bitmap.
//  3. Color adjustment: ApplyAdjustment rewrites R, G and B of every pixel
//     in place (channel shift, brightness, contrast, saturation, in that
//     order). Alpha is never modified.
//
// # Targets
//
// The same pipeline runs for two targets. TargetPreview draws at the
// display size of the source and reuses one buffer across renders.
// TargetExport draws at the natural size into a fresh buffer that is
// encoded as PNG and then dropped. Export never starts from a preview
// buffer.
//
// # Parameters
//
// EditParameters is an immutable value. A Session holds the single current
// value and replaces it wholesale on every edit; Reset restores
// DefaultParameters.
//
// # Source readiness
//
// A PendingSource decodes its bitmap in the background and closes its Ready
// channel exactly once when decoding finishes. Rendering against a source
// that is not ready yet fails fast with ErrSourceUnavailable; callers that
// want to block use Wait.
//
// # Degenerate input
//
// Zero-sized sources produce an empty (0x0) buffer rather than an error.
// A crop with zero width or height means "no crop". Export reports
// ErrNothingToRender because an empty buffer cannot be encoded.
package editor
