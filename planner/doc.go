// Package planner turns a start/goal request on an occupancy grid into a
// smooth, cell-adjacent path.
//
// A request is handled in four stages:
//
//  1. Validation: both anchors must lie inside the grid and carry a cost in
//     the open interval (-1, ValidMax). Unknown anchors are rejected.
//  2. Search: search.Search grows frontiers from both anchors until they meet.
//  3. Smoothing: smooth.Shortcut reduces the raw path to key points and pulls
//     it tight wherever the straight line between points is clear.
//  4. Densification: smooth.Densify re-expands the key points into adjacent
//     cells ordered start → goal.
//
// start == goal returns [start] without searching or smoothing.
//
// Use Plan for one-off calls; New builds a reusable Planner, and Config loads
// the same settings from YAML:
//
//	cfg, err := planner.LoadConfig("planner.yaml")
//	if err != nil { ... }
//	p, err := planner.New(append(cfg.Options(), planner.WithLogger(logger))...)
//	path, err := p.Plan(ctx, grid, start, goal)
//
// Errors:
//
//   - ErrInvalidStart / ErrInvalidGoal: anchor out of bounds or not plannable.
//   - ErrNoPathFound:     the search was exhausted (or regions differ when
//     WithReachabilityCheck is set).
//   - ErrCancelled:       the context ended; wraps the context error.
//   - ErrOptionViolation: invalid option or configuration value.
package planner
