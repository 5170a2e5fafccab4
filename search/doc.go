// Package search implements the bidirectional heuristic grid search at the
// heart of the planner.
//
// Overview:
//
//   - Two frontiers grow in lock-step, one rooted at the start cell and one at
//     the goal cell, over the 8-connected grid of a gridmap.GridMap.
//   - Each round pops the minimum-f node from both open sets, expands the goal
//     side and then the start side, and intersects the two open sets.
//   - The first non-empty intersection ends the search: the position with the
//     smallest startNode.f + goalNode.f is the meeting point and BOTH halves
//     of the path are rebuilt from that same position.
//
// Cost model (per side, toward the fixed opposite anchor):
//
//	g = parent.g + sqrt(dx²+dy²)
//	h = manhattan(pos, oppositeAnchor) + cost(pos)·CostWeight + turn
//	turn = 0 on a straight continuation or at the root's children, TurnPenalty otherwise
//	f = g + h
//
// When an already-open node is reached with a smaller g, only g and parent
// change; h and f keep their insertion-time values. The heuristic is not
// admissible, so paths are valid but not guaranteed shortest.
//
// Determinism:
//
//   - The open sets are binary heaps ordered by (f, insertion sequence), so
//     equal-f nodes leave in insertion order.
//   - Neighbour offsets follow gridmap's fixed order.
//   - Intersection candidates are ranked in start-side insertion order and
//     the first strict minimum wins.
//
// Termination:
//
//   - MeetingFound  the frontiers met.
//   - Exhausted     an open set drained (after a final check for positions
//     reached by both sides, which catches frontiers that slipped past each
//     other in narrow corridors) or MaxSteps rounds elapsed.
//   - Cancelled     the context was done at the top of a round.
//
// Complexity:
//
//   - Time:  O(N log N) for N = W×H cells; each side closes every cell at most once.
//   - Space: O(N) per side: a dense cell→node index plus the node arena.
//
// Errors (sentinel):
//
//   - ErrNilGrid:         the grid is nil.
//   - ErrOutOfBounds:     start or goal lies outside the grid.
//   - ErrOptionViolation: an option was given an invalid value.
package search
