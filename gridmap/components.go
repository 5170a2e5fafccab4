package gridmap

// Regions labels contiguous areas of passable cells under 8-connectivity.
// passable decides per cost whether a cell may be entered.
// The returned Labels hold one region id per cell (row-major), or -1 for
// impassable cells; ids are assigned in row-major discovery order.
//
// Time:   O(W·H·8).
// Memory: O(W·H) for labels and the BFS queue.
func (gm *GridMap) Regions(passable func(cost int) bool) *Labels {
	total := gm.Len()
	labels := make([]int, total)
	for i := range labels {
		labels[i] = -1
	}
	count := 0
	queue := make([]int, 0, 64)

	for i0 := 0; i0 < total; i0++ {
		if labels[i0] >= 0 || !passable(gm.cells[i0]) {
			continue
		}
		// BFS flood from the first unlabelled passable cell
		labels[i0] = count
		queue = append(queue[:0], i0)
		for qi := 0; qi < len(queue); qi++ {
			u := gm.Coordinate(queue[qi])
			for _, d := range neighborOffsets {
				vx, vy := u.X+d[0], u.Y+d[1]
				if !gm.InBounds(vx, vy) {
					continue
				}
				vi := gm.index(vx, vy)
				if labels[vi] >= 0 || !passable(gm.cells[vi]) {
					continue
				}
				labels[vi] = count
				queue = append(queue, vi)
			}
		}
		count++
	}

	return &Labels{gm: gm, ids: labels, count: count}
}

// Labels is the result of Regions.
type Labels struct {
	gm    *GridMap
	ids   []int
	count int
}

// Count returns the number of distinct regions.
func (l *Labels) Count() int { return l.count }

// Of returns the region id of p, or -1 if p is impassable or out of bounds.
func (l *Labels) Of(p Point) int {
	if !l.gm.Contains(p) {
		return -1
	}

	return l.ids[l.gm.Index(p)]
}

// Connected reports whether a and b are both passable and share a region.
func (l *Labels) Connected(a, b Point) bool {
	ra := l.Of(a)

	return ra >= 0 && ra == l.Of(b)
}

// Reaches is Connected for search anchors. An anchor the labelling rejected
// stands for the regions of its passable neighbours, because a search that
// starts on a cell leaves it without having to enter it.
func (l *Labels) Reaches(a, b Point) bool {
	from := l.entries(a)
	for _, rb := range l.entries(b) {
		for _, ra := range from {
			if ra == rb {
				return true
			}
		}
	}

	return false
}

// entries lists the region ids a search leaving p can step into.
func (l *Labels) entries(p Point) []int {
	if r := l.Of(p); r >= 0 {
		return []int{r}
	}
	if !l.gm.Contains(p) {
		return nil
	}
	var ids []int
	for _, d := range neighborOffsets {
		if r := l.Of(Pt(p.X+d[0], p.Y+d[1])); r >= 0 {
			ids = append(ids, r)
		}
	}

	return ids
}

// Cells returns the points of region id in row-major order.
func (l *Labels) Cells(id int) []Point {
	var out []Point
	for i, r := range l.ids {
		if r == id {
			out = append(out, l.gm.Coordinate(i))
		}
	}

	return out
}
