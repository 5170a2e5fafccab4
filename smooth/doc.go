// Package smooth post-processes a raw cell-by-cell search path.
//
// Three path forms occur in sequence:
//
//	raw        one cell per search step (from package search)
//	key-point  start, goal and direction-change cells only (KeyPoints)
//	shortcut   key points with line-of-sight shortcuts applied (Shortcut)
//	dense      every consecutive pair grid-adjacent again (Densify)
//
// Shortcut is string pulling: an intermediate waypoint is dropped whenever the
// straight raster line between its neighbours stays clear of cells with cost
// above the visibility threshold. Densify re-expands the sparse result with
// the very same raster, so every dense cell was sampled by a clear
// line-of-sight check or lies on a straight run of the raw path.
//
// Complexity:
//
//   - KeyPoints: O(n).
//   - Shortcut:  O(k²·L) worst case, k key points, L longest segment.
//   - Densify:   O(output length).
//
// None of the functions fail: paths of length ≤ 2 pass through unchanged,
// and all functions return fresh slices.
package smooth
