package gridmap

import "fmt"

// From2D constructs a GridMap from a non-empty, rectangular 2D slice where
// values[y][x] is the cost of cell (x, y). The input is deep-copied.
// Returns ErrEmptyGrid, ErrNonRectangular or ErrCostRange on bad input.
// Complexity: O(W×H) time and memory.
func From2D(values [][]int) (*GridMap, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(values), len(values[0])
	for _, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	cells := make([]int, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := values[y][x]
			if c < CostUnknown || c > CostOccupied {
				return nil, fmt.Errorf("%w: cell (%d,%d)=%d", ErrCostRange, x, y, c)
			}
			cells = append(cells, c)
		}
	}

	return &GridMap{Width: w, Height: h, cells: cells}, nil
}

// FromRowMajor constructs a GridMap of the given size from data laid out
// row by row (data[y*width+x]), the layout of a ROS OccupancyGrid.
// The slice is copied.
func FromRowMajor[T ~int | ~int8 | ~int16 | ~int32 | ~int64](width, height int, data []T) (*GridMap, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyGrid
	}
	if len(data) != width*height {
		return nil, fmt.Errorf("%w: got %d, want %d×%d", ErrSize, len(data), width, height)
	}
	cells := make([]int, len(data))
	for i, v := range data {
		c := int(v)
		if c < CostUnknown || c > CostOccupied {
			return nil, fmt.Errorf("%w: cell (%d,%d)=%d", ErrCostRange, i%width, i/width, c)
		}
		cells[i] = c
	}

	return &GridMap{Width: width, Height: height, cells: cells}, nil
}

// Filled returns a width×height grid with every cell set to cost.
// Handy for tests and for seeding synthetic maps.
func Filled(width, height, cost int) (*GridMap, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyGrid
	}
	if cost < CostUnknown || cost > CostOccupied {
		return nil, fmt.Errorf("%w: %d", ErrCostRange, cost)
	}
	cells := make([]int, width*height)
	for i := range cells {
		cells[i] = cost
	}

	return &GridMap{Width: width, Height: height, cells: cells}, nil
}

// InBounds reports whether (x,y) lies within the grid boundaries.
// Complexity: O(1).
func (gm *GridMap) InBounds(x, y int) bool {
	return x >= 0 && x < gm.Width && y >= 0 && y < gm.Height
}

// Contains reports whether p lies within the grid boundaries.
func (gm *GridMap) Contains(p Point) bool {
	return gm.InBounds(p.X, p.Y)
}

// Cost returns the occupancy cost of (x,y).
// Callers must bounds-check first; an out-of-bounds access panics.
func (gm *GridMap) Cost(x, y int) int {
	if !gm.InBounds(x, y) {
		panic(fmt.Sprintf("gridmap: Cost(%d,%d) outside %d×%d grid", x, y, gm.Width, gm.Height))
	}

	return gm.cells[gm.index(x, y)]
}

// CostAt is Cost for a Point.
func (gm *GridMap) CostAt(p Point) int {
	return gm.Cost(p.X, p.Y)
}

// Len returns the number of cells, Width×Height.
func (gm *GridMap) Len() int {
	return len(gm.cells)
}

// NeighborOffsets returns the 8-connected offsets in expansion order:
// (0,1),(1,0),(0,-1),(-1,0),(1,1),(1,-1),(-1,1),(-1,-1).
func (gm *GridMap) NeighborOffsets() [8][2]int {
	return neighborOffsets
}

// Index maps p to its row-major index p.Y*Width + p.X.
// Complexity: O(1).
func (gm *GridMap) Index(p Point) int {
	return gm.index(p.X, p.Y)
}

// Coordinate converts a row-major index back to a Point.
// Complexity: O(1).
func (gm *GridMap) Coordinate(idx int) Point {
	return Point{X: idx % gm.Width, Y: idx / gm.Width}
}

// Rows returns a deep copy of the grid as values[y][x].
func (gm *GridMap) Rows() [][]int {
	rows := make([][]int, gm.Height)
	for y := range rows {
		rows[y] = make([]int, gm.Width)
		copy(rows[y], gm.cells[y*gm.Width:(y+1)*gm.Width])
	}

	return rows
}

func (gm *GridMap) index(x, y int) int {
	return y*gm.Width + x
}
