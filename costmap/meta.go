package costmap

import (
	"fmt"

	"github.com/golang/geo/r2"
	"go.uber.org/multierr"

	"github.com/katalvlaran/gridplan/gridmap"
)

// Meta describes where a grid sits in the world.
type Meta struct {
	Resolution float64  // metres per cell
	Origin     r2.Point // world position of the corner of cell (0,0)
	Width      int
	Height     int
}

// Validate reports every invalid field, each wrapping ErrBadMetadata.
func (m Meta) Validate() error {
	var err error
	if !(m.Resolution > 0) {
		err = multierr.Append(err, fmt.Errorf("%w: resolution must be positive, got %g", ErrBadMetadata, m.Resolution))
	}
	if m.Width <= 0 || m.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: size %d×%d", ErrBadMetadata, m.Width, m.Height))
	}

	return err
}

// WorldToGrid maps a world position to the cell containing it. Offsets from
// the origin are divided by the resolution and truncated. ok is false when
// the position lies outside the grid.
func (m Meta) WorldToGrid(w r2.Point) (gridmap.Point, bool) {
	d := w.Sub(m.Origin).Mul(1 / m.Resolution)
	if d.X < 0 || d.Y < 0 {
		return gridmap.Point{}, false
	}
	p := gridmap.Pt(int(d.X), int(d.Y))

	return p, p.X < m.Width && p.Y < m.Height
}

// GridToWorld returns the world position of the centre of cell p.
func (m Meta) GridToWorld(p gridmap.Point) r2.Point {
	return m.Origin.Add(r2.Point{X: float64(p.X) + 0.5, Y: float64(p.Y) + 0.5}.Mul(m.Resolution))
}

// PathToWorld converts a cell path into cell-centre world positions.
func (m Meta) PathToWorld(path []gridmap.Point) []r2.Point {
	out := make([]r2.Point, len(path))
	for i, p := range path {
		out[i] = m.GridToWorld(p)
	}

	return out
}
