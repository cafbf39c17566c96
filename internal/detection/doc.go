// Package detection estimates how far a photo is tilted from level.
//
// The estimate looks for the dominant straight edge that is close to
// horizontal or vertical (a horizon, a door frame, the edge of a table) and
// reports the clockwise rotation that levels it. The result is a suggestion
// for the editor's rotation parameter; nothing here modifies an image.
//
// # Algorithm
//
//  1. Edge detection: grayscale conversion and a Sobel gradient magnitude
//     (bild/effect), thresholded into a set of edge pixels. A thin border is
//     ignored so the frame of the image never counts as a line.
//  2. Hough voting: every edge pixel votes for each candidate tilt in
//     [-MaxTilt, +MaxTilt], once for a near-horizontal line and once for a
//     near-vertical line through it.
//  3. Peak selection: the (tilt, distance) cell with the most votes wins.
//     Ties go to the smaller tilt.
//
// # Coordinate System
//
// Image coordinates have Y growing downward, so a positive tilt means the
// content is rotated clockwise: a horizon with positive tilt falls toward
// the right. The suggested rotation is the negated tilt normalized to
// [0, 360).
//
// # Limitations
//
// The estimate works best on photos with at least one long, high-contrast
// straight edge. Busy textures spread votes across many cells and lower the
// reported confidence.
package detection
