package planner

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/gridplan/gridmap"
	"github.com/katalvlaran/gridplan/search"
)

// DefaultValidMax is the exclusive upper bound on anchor costs.
const DefaultValidMax = 90

// Options holds every planner setting.
type Options struct {
	// Ctx cancels the search; checked once per round.
	Ctx context.Context

	// ValidMax: anchors must have cost < ValidMax (and > -1).
	ValidMax int

	// LethalThreshold: cells with a higher cost are never entered, by the
	// search or by a shortcut.
	LethalThreshold int

	// AllowUnknown lets the search cross cells with cost -1.
	AllowUnknown bool

	// CostWeight and TurnPenalty shape the search heuristic.
	CostWeight  float64
	TurnPenalty float64

	// MaxSteps bounds the search rounds; 0 means 2·W·H.
	MaxSteps int

	// Parallel expands both search sides concurrently.
	Parallel bool

	// Reachability labels passable regions first and fails fast when the
	// anchors are disconnected.
	Reachability bool

	// Logger receives request diagnostics; never nil after DefaultOptions.
	Logger *zap.Logger

	// internal error recorded during option parsing
	err error
}

// Option configures a Planner.
type Option func(*Options)

// DefaultOptions returns the reference configuration:
//   - ValidMax 90, LethalThreshold 50, unknown cells traversable
//   - CostWeight 0.9, TurnPenalty 5, default step bound
//   - sequential expansion, no reachability pre-check
//   - a no-op logger
func DefaultOptions() Options {
	return Options{
		Ctx:             context.Background(),
		ValidMax:        DefaultValidMax,
		LethalThreshold: search.DefaultLethalThreshold,
		AllowUnknown:    true,
		CostWeight:      search.DefaultCostWeight,
		TurnPenalty:     search.DefaultTurnPenalty,
		Logger:          zap.NewNop(),
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

// WithLogger sets the logger. A nil logger keeps the current one.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithValidMax sets the exclusive anchor cost bound; valid range is [0, 101].
func WithValidMax(n int) Option {
	return func(o *Options) {
		if n < 0 || n > gridmap.CostOccupied+1 {
			o.err = fmt.Errorf("%w: ValidMax %d outside [0,101]", ErrOptionViolation, n)
			return
		}
		o.ValidMax = n
	}
}

// WithLethalThreshold sets the cost above which cells are impassable; [0, 100].
func WithLethalThreshold(n int) Option {
	return func(o *Options) {
		if n < 0 || n > gridmap.CostOccupied {
			o.err = fmt.Errorf("%w: LethalThreshold %d outside [0,100]", ErrOptionViolation, n)
			return
		}
		o.LethalThreshold = n
	}
}

// WithAllowUnknown controls whether the search may cross unknown cells.
func WithAllowUnknown(allow bool) Option {
	return func(o *Options) {
		o.AllowUnknown = allow
	}
}

// WithCostWeight sets the heuristic cost weight (≥ 0).
func WithCostWeight(w float64) Option {
	return func(o *Options) {
		if w < 0 {
			o.err = fmt.Errorf("%w: CostWeight cannot be negative (%g)", ErrOptionViolation, w)
			return
		}
		o.CostWeight = w
	}
}

// WithTurnPenalty sets the heuristic turn penalty (≥ 0).
func WithTurnPenalty(p float64) Option {
	return func(o *Options) {
		if p < 0 {
			o.err = fmt.Errorf("%w: TurnPenalty cannot be negative (%g)", ErrOptionViolation, p)
			return
		}
		o.TurnPenalty = p
	}
}

// WithMaxSteps bounds the number of search rounds; 0 restores the default.
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxSteps cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxSteps = n
	}
}

// WithParallelExpansion expands both search sides concurrently.
func WithParallelExpansion() Option {
	return func(o *Options) {
		o.Parallel = true
	}
}

// WithReachabilityCheck rejects disconnected requests with ErrNoPathFound
// before searching.
func WithReachabilityCheck() Option {
	return func(o *Options) {
		o.Reachability = true
	}
}

// searchOptions maps the planner settings onto the search engine.
func (o *Options) searchOptions(ctx context.Context) []search.Option {
	opts := []search.Option{
		search.WithContext(ctx),
		search.WithLethalThreshold(o.LethalThreshold),
		search.WithAllowUnknown(o.AllowUnknown),
		search.WithCostWeight(o.CostWeight),
		search.WithTurnPenalty(o.TurnPenalty),
		search.WithMaxSteps(o.MaxSteps),
	}
	if o.Parallel {
		opts = append(opts, search.WithParallelExpansion())
	}

	return opts
}

// passable reports whether the search may enter a cell of the given cost.
func (o *Options) passable(cost int) bool {
	if cost == gridmap.CostUnknown {
		return o.AllowUnknown
	}

	return cost <= o.LethalThreshold
}

// Report describes every stage of one request.
//   - Raw:      the search path, start → goal.
//   - Key:      the raw path reduced to direction changes.
//   - Smoothed: the key points after shortcutting.
//   - Dense:    the smoothed path re-expanded into adjacent cells (the result).
//   - Search:   engine statistics; zero when Searched is false.
type Report struct {
	Raw      []gridmap.Point
	Key      []gridmap.Point
	Smoothed []gridmap.Point
	Dense    []gridmap.Point
	Search   search.Result
	Searched bool
}
