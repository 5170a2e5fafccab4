package gridmap

import "fmt"

// Cost bounds of the occupancy convention.
const (
	// CostUnknown marks a cell the map provider has no information about.
	CostUnknown = -1
	// CostFree marks a cell known to be free.
	CostFree = 0
	// CostOccupied marks a cell known to be occupied.
	CostOccupied = 100
)

// Point is a grid cell coordinate: X is the column, Y is the row.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy int) Point { return Point{X: p.X + dx, Y: p.Y + dy} }

// Sub returns the component-wise difference p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Chebyshev returns max(|dx|, |dy|) between p and q.
// Two cells are grid-adjacent when their Chebyshev distance is 1.
func (p Point) Chebyshev(q Point) int {
	dx, dy := abs(p.X-q.X), abs(p.Y-q.Y)
	if dx > dy {
		return dx
	}

	return dy
}

// Manhattan returns |dx| + |dy| between p and q.
func (p Point) Manhattan(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// String renders the point as "(x,y)".
func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// GridMap is an immutable occupancy-cost grid.
// Width and Height define dimensions; cells[y*Width+x] holds the cost of (x, y).
type GridMap struct {
	Width, Height int
	cells         []int
}

// neighborOffsets is the 8-connected expansion order used by every search.
// The order is part of the planner's deterministic output and must not change.
var neighborOffsets = [8][2]int{
	{0, 1}, {1, 0}, {0, -1}, {-1, 0},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
