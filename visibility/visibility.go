// Package visibility implements the digital-line visibility test between two
// grid cells and the rasterisation it is built on.
//
// The raster steps one cell at a time along the axis with the larger absolute
// delta (the y axis on ties) and computes the minor coordinate by linear
// interpolation truncated toward zero:
//
//	minor(i) = trunc(a.minor + i·dMinor/|dMajor|),  i = 0 … |dMajor|-1
//
// The end cell b is never sampled. This is a truncation-biased raster, not a
// symmetric line algorithm: Trace(a, b) and Trace(b, a) may differ.
//
// Complexity: O(max(|dx|,|dy|)) time, O(1) extra memory for Blocked.
package visibility

import (
	"github.com/katalvlaran/gridplan/gridmap"
)

// DefaultThreshold is the cost above which a sampled cell blocks the line.
const DefaultThreshold = 50

// Blocked reports whether the line from a toward b crosses a cell whose cost
// exceeds DefaultThreshold. Both points must lie inside gm.
func Blocked(gm *gridmap.GridMap, a, b gridmap.Point) bool {
	return BlockedAt(gm, a, b, DefaultThreshold)
}

// BlockedAt is Blocked with an explicit threshold: any sampled cell with
// cost > threshold blocks the line.
func BlockedAt(gm *gridmap.GridMap, a, b gridmap.Point, threshold int) bool {
	return BlockedBy(gm, a, b, func(cost int) bool { return cost <= threshold })
}

// BlockedBy reports whether the line from a toward b samples a cell whose
// cost passable rejects.
func BlockedBy(gm *gridmap.GridMap, a, b gridmap.Point, passable func(cost int) bool) bool {
	blocked := false
	walk(a, b, func(p gridmap.Point) bool {
		if !passable(gm.CostAt(p)) {
			blocked = true
			return false
		}
		return true
	})

	return blocked
}

// Trace returns the cells sampled on the way from a toward b, starting with a
// and excluding b. Consecutive cells are grid-adjacent, and the last cell is
// adjacent to b. Trace(a, a) is empty.
func Trace(a, b gridmap.Point) []gridmap.Point {
	out := make([]gridmap.Point, 0, a.Chebyshev(b))
	walk(a, b, func(p gridmap.Point) bool {
		out = append(out, p)
		return true
	})

	return out
}

// walk feeds every raster cell from a toward b to visit until visit returns false.
func walk(a, b gridmap.Point, visit func(gridmap.Point) bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	adx, ady := abs(dx), abs(dy)

	if adx > ady {
		sx := sign(dx)
		for i := 0; i < adx; i++ {
			y := int(float64(a.Y) + float64(i*dy)/float64(adx))
			if !visit(gridmap.Point{X: a.X + sx*i, Y: y}) {
				return
			}
		}
		return
	}

	sy := sign(dy)
	for i := 0; i < ady; i++ {
		x := int(float64(a.X) + float64(i*dx)/float64(ady))
		if !visit(gridmap.Point{X: x, Y: a.Y + sy*i}) {
			return
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}

	return 0
}
