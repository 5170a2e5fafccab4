package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/gridplan/gridmap"
)

// Sentinel errors returned by Search.
var (
	// ErrNilGrid indicates that a nil *gridmap.GridMap was passed to Search.
	ErrNilGrid = errors.New("search: grid is nil")

	// ErrOutOfBounds indicates a start or goal cell outside the grid.
	ErrOutOfBounds = errors.New("search: anchor outside grid")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("search: invalid option supplied")
)

// Default cost-model constants.
const (
	// DefaultLethalThreshold: cells with a higher cost are never entered.
	DefaultLethalThreshold = 50
	// DefaultCostWeight scales the cell cost inside the heuristic.
	DefaultCostWeight = 0.9
	// DefaultTurnPenalty is added to h when a step changes direction.
	DefaultTurnPenalty = 5.0
)

// Status is the terminal state of a search.
type Status int

const (
	// Running is the state while rounds are being executed.
	Running Status = iota
	// MeetingFound means the frontiers met and Result.Path is set.
	MeetingFound
	// Exhausted means no meeting exists or the step bound was reached.
	Exhausted
	// Cancelled means the context was done before a meeting was found.
	Cancelled
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case MeetingFound:
		return "meeting-found"
	case Exhausted:
		return "exhausted"
	case Cancelled:
		return "cancelled"
	}

	return fmt.Sprintf("status(%d)", int(s))
}

// Side identifies one of the two frontiers.
type Side int

const (
	// StartSide is the frontier rooted at the start cell.
	StartSide Side = iota
	// GoalSide is the frontier rooted at the goal cell.
	GoalSide
)

// String returns "start" or "goal".
func (s Side) String() string {
	if s == GoalSide {
		return "goal"
	}

	return "start"
}

// Options configures the search.
//
// Ctx              – cancellation, checked at the top of every round.
// LethalThreshold  – cells with cost > LethalThreshold are impassable.
// AllowUnknown     – whether cells with cost -1 may be entered.
// CostWeight       – multiplier of the cell cost in h.
// TurnPenalty      – added to h on a change of direction.
// MaxSteps         – round limit; 0 means 2·W·H.
// Parallel         – expand both sides concurrently each round.
// OnExpand         – called for every node popped from an open set.
type Options struct {
	Ctx             context.Context
	LethalThreshold int
	AllowUnknown    bool
	CostWeight      float64
	TurnPenalty     float64
	MaxSteps        int
	Parallel        bool
	OnExpand        func(side Side, p gridmap.Point)

	// internal error recorded during option parsing
	err error
}

// Option represents a functional option for configuring Search.
type Option func(*Options)

// DefaultOptions returns the cost model of the reference planner:
//   - Ctx:             context.Background()
//   - LethalThreshold: 50
//   - AllowUnknown:    true
//   - CostWeight:      0.9
//   - TurnPenalty:     5
//   - MaxSteps:        0 (2·W·H)
//   - Parallel:        false
func DefaultOptions() Options {
	return Options{
		Ctx:             context.Background(),
		LethalThreshold: DefaultLethalThreshold,
		AllowUnknown:    true,
		CostWeight:      DefaultCostWeight,
		TurnPenalty:     DefaultTurnPenalty,
		OnExpand:        func(Side, gridmap.Point) {},
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithLethalThreshold sets the cost above which cells are impassable.
// Valid range is [0, 100].
func WithLethalThreshold(threshold int) Option {
	return func(o *Options) {
		if threshold < 0 || threshold > gridmap.CostOccupied {
			o.err = fmt.Errorf("%w: LethalThreshold %d outside [0,100]", ErrOptionViolation, threshold)
			return
		}
		o.LethalThreshold = threshold
	}
}

// WithAllowUnknown controls whether unknown (-1) cells may be traversed.
func WithAllowUnknown(allow bool) Option {
	return func(o *Options) {
		o.AllowUnknown = allow
	}
}

// WithCostWeight sets the weight of the cell cost in the heuristic (≥ 0).
func WithCostWeight(w float64) Option {
	return func(o *Options) {
		if w < 0 {
			o.err = fmt.Errorf("%w: CostWeight cannot be negative (%g)", ErrOptionViolation, w)
			return
		}
		o.CostWeight = w
	}
}

// WithTurnPenalty sets the heuristic penalty for a change of direction (≥ 0).
func WithTurnPenalty(p float64) Option {
	return func(o *Options) {
		if p < 0 {
			o.err = fmt.Errorf("%w: TurnPenalty cannot be negative (%g)", ErrOptionViolation, p)
			return
		}
		o.TurnPenalty = p
	}
}

// WithMaxSteps bounds the number of rounds.
//
//	n > 0: at most n rounds
//	n == 0: default bound 2·W·H
//	n < 0: invalid option → ErrOptionViolation
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxSteps cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxSteps = n
	}
}

// WithParallelExpansion expands the two sides on separate goroutines each
// round and joins them before the intersection is evaluated.
func WithParallelExpansion() Option {
	return func(o *Options) {
		o.Parallel = true
	}
}

// WithOnExpand registers a callback run for every node popped from an open
// set, goal side first within a round. It always runs on the calling goroutine.
func WithOnExpand(fn func(side Side, p gridmap.Point)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

// Result holds the outcome of a search:
//   - Status:  terminal state.
//   - Path:    start → goal raw cell path when Status == MeetingFound.
//   - Meeting: the chosen meeting position.
//   - Touched: the meeting was found by the drained-frontier check.
//   - Steps:   rounds executed.
//   - OpenedStart / OpenedGoal: nodes created per side, roots included.
type Result struct {
	Status      Status
	Path        []gridmap.Point
	Meeting     gridmap.Point
	Touched     bool
	Steps       int
	OpenedStart int
	OpenedGoal  int
}
