// Package gridmap holds the read-only occupancy grid consumed by the planner.
//
// What:
//
//   - GridMap wraps a rectangular grid of per-cell traversal costs.
//   - Costs follow the ROS OccupancyGrid convention: -1 unknown, 0 free,
//     increasing toward 100 = certainly occupied.
//   - Point is the integer (x, y) cell coordinate used by every other package.
//   - Regions labels connected areas of passable cells under 8-connectivity.
//
// Why:
//
//   - The search, line-of-sight and densification stages only ever read costs;
//     a GridMap is deep-copied on construction so a planning call sees a
//     stable snapshot.
//
// Layout:
//
//	From2D(values)        values[y][x], row y = grid row y
//	FromRowMajor(w,h,d)   d[y*w+x], the layout of OccupancyGrid.data
//
// Complexity:
//
//   - Cost, InBounds:  O(1).
//   - Regions:         O(W×H×8), Memory: O(W×H).
//
// Errors:
//
//   - ErrEmptyGrid:      input grid has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrSize:           row-major data length differs from width×height.
//   - ErrCostRange:      a cell cost lies outside [-1, 100].
package gridmap
