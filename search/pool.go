package search

import (
	"container/heap"
	"math"

	"github.com/katalvlaran/gridplan/gridmap"
)

// node is one search node. Nodes live in a per-side arena; the arena index is
// the insertion sequence and parent is the arena index of the generating node
// (-1 for the root), so the parent links always form a tree.
type node struct {
	pos     gridmap.Point
	parent  int32
	g, h, f float64
}

// pool is the node arena, open set and closed set of one side.
//
// A cell is unseen (index == -1), open (indexed, not closed) or closed.
// A closed node is never reopened.
type pool struct {
	side     Side
	gm       *gridmap.GridMap
	opts     *Options
	opposite gridmap.Point // the other side's root, the fixed heuristic target

	nodes  []node
	closed []bool  // per arena index
	index  []int32 // per cell (row-major) → arena index, -1 if unseen
	open   openHeap
	fresh  []int32 // arena indices created during the current round
}

// newPool creates a pool rooted at root that estimates toward opposite.
func newPool(side Side, gm *gridmap.GridMap, opts *Options, root, opposite gridmap.Point) *pool {
	p := &pool{
		side:     side,
		gm:       gm,
		opts:     opts,
		opposite: opposite,
		nodes:    make([]node, 0, 64),
		closed:   make([]bool, 0, 64),
		index:    make([]int32, gm.Len()),
	}
	for i := range p.index {
		p.index[i] = -1
	}
	p.open.nodes = &p.nodes
	p.insert(node{pos: root, parent: -1})

	return p
}

// insert appends n to the arena and the open set.
func (p *pool) insert(n node) int32 {
	idx := int32(len(p.nodes))
	p.nodes = append(p.nodes, n)
	p.closed = append(p.closed, false)
	p.index[p.gm.Index(n.pos)] = idx
	heap.Push(&p.open, idx)
	p.fresh = append(p.fresh, idx)

	return idx
}

// popMin removes the minimum-f open node (earliest inserted on ties),
// marks it closed and returns its arena index.
func (p *pool) popMin() int32 {
	idx := heap.Pop(&p.open).(int32)
	p.closed[idx] = true

	return idx
}

// lookup returns the arena index of pos, or -1 if this side never reached it.
func (p *pool) lookup(pos gridmap.Point) int32 {
	return p.index[p.gm.Index(pos)]
}

// isOpen reports whether pos is in this side's open set.
func (p *pool) isOpen(pos gridmap.Point) bool {
	idx := p.lookup(pos)

	return idx >= 0 && !p.closed[idx]
}

// expand relaxes all 8 neighbours of the node at from.
func (p *pool) expand(from int32) {
	for _, d := range p.gm.NeighborOffsets() {
		p.relax(from, d[0], d[1])
	}
}

// relax offers the cell at from+(dx,dy) to this side.
// Out of bounds, impassable and closed cells are ignored. A new cell becomes
// an open node with a full g/h/f; an open cell only gets a better g and
// parent, leaving h and f as they were at insertion.
func (p *pool) relax(from int32, dx, dy int) {
	parent := p.nodes[from]
	pos := parent.pos.Add(dx, dy)
	if !p.gm.Contains(pos) {
		return
	}
	cost := p.gm.CostAt(pos)
	if !p.passable(cost) {
		return
	}
	g := parent.g + math.Sqrt(float64(dx*dx+dy*dy))

	if idx := p.lookup(pos); idx >= 0 {
		if p.closed[idx] {
			return
		}
		if g < p.nodes[idx].g {
			p.nodes[idx].g = g
			p.nodes[idx].parent = from
		}
		return
	}

	h := float64(pos.Manhattan(p.opposite)) + float64(cost)*p.opts.CostWeight + p.turnPenalty(pos, from)
	p.insert(node{pos: pos, parent: from, g: g, h: h, f: g + h})
}

// turnPenalty is 0 when parent is a root or when parent→child continues the
// grandparent→parent direction, and TurnPenalty otherwise.
func (p *pool) turnPenalty(child gridmap.Point, parent int32) float64 {
	par := p.nodes[parent]
	if par.parent < 0 {
		return 0
	}
	grand := p.nodes[par.parent]
	if child.Sub(par.pos) == par.pos.Sub(grand.pos) {
		return 0
	}

	return p.opts.TurnPenalty
}

func (p *pool) passable(cost int) bool {
	if cost == gridmap.CostUnknown {
		return p.opts.AllowUnknown
	}

	return cost <= p.opts.LethalThreshold
}

// chain walks parent links from idx to the root, returning positions
// in that order (idx first, root last).
func (p *pool) chain(idx int32) []gridmap.Point {
	var out []gridmap.Point
	for i := idx; i >= 0; i = p.nodes[i].parent {
		out = append(out, p.nodes[i].pos)
	}

	return out
}

// openHeap is a min-heap of arena indices ordered by (f, index).
// Because f is fixed at insertion, entries never need re-sifting.
type openHeap struct {
	nodes *[]node
	items []int32
}

// Len returns the number of open nodes.
func (h openHeap) Len() int { return len(h.items) }

// Less orders by f, then by insertion sequence.
func (h openHeap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	fa, fb := (*h.nodes)[a].f, (*h.nodes)[b].f
	if fa != fb {
		return fa < fb
	}

	return a < b
}

// Swap swaps two elements in the heap.
func (h openHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

// Push adds an arena index; called by heap.Push.
func (h *openHeap) Push(x interface{}) { h.items = append(h.items, x.(int32)) }

// Pop removes the last element; called by heap.Pop.
func (h *openHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]

	return item
}
