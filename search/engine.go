package search

import (
	"fmt"
	"sort"
	"sync"

	"github.com/katalvlaran/gridplan/gridmap"
)

// Search runs the bidirectional search on gm from start to goal.
//
// Returns:
//
//   - Result with Status MeetingFound and a start → goal raw path, or
//     Status Exhausted when no meeting exists within the step bound.
//   - Status Cancelled together with the context error when the context
//     is done at the top of a round.
//   - err for invalid input, checked in order: options (ErrOptionViolation),
//     grid (ErrNilGrid), anchors (ErrOutOfBounds).
//
// The anchor cells themselves are not checked for passability; callers
// validate them before searching.
func Search(gm *gridmap.GridMap, start, goal gridmap.Point, opts ...Option) (Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return Result{}, cfg.err
	}
	if gm == nil {
		return Result{}, ErrNilGrid
	}
	if !gm.Contains(start) {
		return Result{}, fmt.Errorf("%w: start %v in %d×%d grid", ErrOutOfBounds, start, gm.Width, gm.Height)
	}
	if !gm.Contains(goal) {
		return Result{}, fmt.Errorf("%w: goal %v in %d×%d grid", ErrOutOfBounds, goal, gm.Width, gm.Height)
	}
	if start == goal {
		return Result{Status: MeetingFound, Path: []gridmap.Point{start}, Meeting: start}, nil
	}

	r := newRunner(gm, &cfg, start, goal)

	return r.run()
}

// runner holds the mutable state for a single search.
type runner struct {
	gm       *gridmap.GridMap
	opts     *Options
	fwd      *pool // rooted at start, estimates toward goal
	bwd      *pool // rooted at goal, estimates toward start
	maxSteps int
	steps    int

	// candidates of the last evaluated intersection, start-side arena indices
	candidates []int32
}

func newRunner(gm *gridmap.GridMap, opts *Options, start, goal gridmap.Point) *runner {
	maxSteps := opts.MaxSteps
	if maxSteps == 0 {
		maxSteps = 2 * gm.Len()
	}

	return &runner{
		gm:       gm,
		opts:     opts,
		fwd:      newPool(StartSide, gm, opts, start, goal),
		bwd:      newPool(GoalSide, gm, opts, goal, start),
		maxSteps: maxSteps,
	}
}

// run executes rounds until a terminal state is reached.
func (r *runner) run() (Result, error) {
	for {
		if err := r.opts.Ctx.Err(); err != nil {
			return r.result(Cancelled), err
		}
		if r.fwd.open.Len() == 0 || r.bwd.open.Len() == 0 {
			return r.drained(), nil
		}
		if r.steps >= r.maxSteps {
			return r.result(Exhausted), nil
		}
		r.steps++
		if best, ok := r.step(); ok {
			return r.meet(best, false), nil
		}
	}
}

// step executes one round and reports the chosen meeting node (a start-side
// arena index) if the open sets intersect.
func (r *runner) step() (int32, bool) {
	minStart := r.fwd.popMin()
	minGoal := r.bwd.popMin()
	r.opts.OnExpand(GoalSide, r.bwd.nodes[minGoal].pos)
	r.opts.OnExpand(StartSide, r.fwd.nodes[minStart].pos)

	r.fwd.fresh = r.fwd.fresh[:0]
	r.bwd.fresh = r.bwd.fresh[:0]

	if r.opts.Parallel {
		// each goroutine touches only its own pool; the grid is read-only
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.bwd.expand(minGoal)
		}()
		go func() {
			defer wg.Done()
			r.fwd.expand(minStart)
		}()
		wg.Wait()
	} else {
		r.bwd.expand(minGoal)
		r.fwd.expand(minStart)
	}

	return r.intersect()
}

// intersect collects the positions open on both sides and picks the one with
// the smallest f-sum; the first candidate in start-side insertion order wins
// ties.
//
// Rounds end as soon as an intersection exists, so every shared open position
// was created during the current round by at least one side; scanning the
// fresh nodes of both sides therefore finds the whole intersection.
func (r *runner) intersect() (int32, bool) {
	r.candidates = r.candidates[:0]
	for _, idx := range r.fwd.fresh {
		if r.bwd.isOpen(r.fwd.nodes[idx].pos) {
			r.candidates = append(r.candidates, idx)
		}
	}
	for _, idx := range r.bwd.fresh {
		pos := r.bwd.nodes[idx].pos
		fi := r.fwd.lookup(pos)
		if fi >= 0 && !r.fwd.closed[fi] && !r.bwd.closed[idx] {
			r.candidates = append(r.candidates, fi)
		}
	}
	if len(r.candidates) == 0 {
		return -1, false
	}
	sort.Slice(r.candidates, func(i, j int) bool { return r.candidates[i] < r.candidates[j] })
	r.candidates = dedupe(r.candidates)

	return r.best(r.candidates), true
}

// drained handles an empty open set. A side whose open set is empty has
// closed every cell it can reach, so any position known to both sides joins
// them; if there is none the search is exhausted.
func (r *runner) drained() Result {
	r.candidates = r.candidates[:0]
	for idx := range r.fwd.nodes {
		if r.bwd.lookup(r.fwd.nodes[idx].pos) >= 0 {
			r.candidates = append(r.candidates, int32(idx))
		}
	}
	if len(r.candidates) == 0 {
		return r.result(Exhausted)
	}

	return r.meet(r.best(r.candidates), true)
}

// best returns the candidate minimising startNode.f + goalNode.f,
// keeping the first one on ties.
func (r *runner) best(cands []int32) int32 {
	best := cands[0]
	bestF := r.fSum(best)
	for _, idx := range cands[1:] {
		if f := r.fSum(idx); f < bestF {
			best, bestF = idx, f
		}
	}

	return best
}

func (r *runner) fSum(fwdIdx int32) float64 {
	pos := r.fwd.nodes[fwdIdx].pos

	return r.fwd.nodes[fwdIdx].f + r.bwd.nodes[r.bwd.lookup(pos)].f
}

// meet rebuilds the path through the meeting node. Both halves are taken from
// the same position: start → meeting from the start side, then meeting → goal
// from the goal side without repeating the meeting cell.
func (r *runner) meet(fwdIdx int32, touched bool) Result {
	pos := r.fwd.nodes[fwdIdx].pos
	head := r.fwd.chain(fwdIdx)            // meeting … start
	tail := r.bwd.chain(r.bwd.lookup(pos)) // meeting … goal
	path := make([]gridmap.Point, 0, len(head)+len(tail)-1)
	for i := len(head) - 1; i >= 0; i-- {
		path = append(path, head[i])
	}
	path = append(path, tail[1:]...)

	res := r.result(MeetingFound)
	res.Path = path
	res.Meeting = pos
	res.Touched = touched

	return res
}

func (r *runner) result(status Status) Result {
	return Result{
		Status:      status,
		Steps:       r.steps,
		OpenedStart: len(r.fwd.nodes),
		OpenedGoal:  len(r.bwd.nodes),
	}
}

// dedupe removes adjacent duplicates from a sorted slice in place.
func dedupe(s []int32) []int32 {
	if len(s) < 2 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}

	return out
}
