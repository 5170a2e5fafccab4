// Package gridplan plans collision-free paths on 2-D occupancy grids.
//
// A request names a start and a goal cell on a grid of traversal costs
// (-1 unknown, 0 free up to 100 occupied). Two heuristic searches grow from
// the two anchors until their frontiers meet; the joined path is then pulled
// tight along clear lines of sight and re-expanded into adjacent cells.
//
// Under the hood the work is split into small packages:
//
//	gridmap/       read-only cost grid, cell coordinates, passable regions
//	search/        bidirectional frontier search (raw cell path)
//	visibility/    digital line sampling and the line-of-sight test
//	smooth/        key points, shortcutting and densification
//	planner/       validation + search + smoothing behind one call, YAML config
//	costmap/       world ↔ grid transform, map_server YAML/PGM loading
//	node/          long-running planner fed by latest map, pose and goal
//	cmd/gridplan/  command-line front end
//
// Quick example:
//
//	grid, _ := gridmap.From2D([][]int{
//		{0, 0, 100, 0, 0},
//		{0, 0, 100, 0, 0},
//		{0, 0,   0, 0, 0},
//	})
//	path, err := planner.Plan(grid, gridmap.Pt(0, 0), gridmap.Pt(4, 0))
//	// path: adjacent cells from (0,0) to (4,0) through the gap at (2,2)
package gridplan
