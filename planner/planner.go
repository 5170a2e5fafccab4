package planner

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/gridplan/gridmap"
	"github.com/katalvlaran/gridplan/search"
	"github.com/katalvlaran/gridplan/smooth"
)

// Planner plans paths with a fixed configuration. It holds no per-request
// state and is safe for concurrent use.
type Planner struct {
	opts Options
	log  *zap.Logger
}

// New builds a Planner, returning ErrOptionViolation for invalid options.
func New(opts ...Option) (*Planner, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	return &Planner{opts: cfg, log: cfg.Logger}, nil
}

// Plan is a one-shot helper: New(opts...) followed by Planner.Plan with the
// context given by WithContext.
func Plan(gm *gridmap.GridMap, start, goal gridmap.Point, opts ...Option) ([]gridmap.Point, error) {
	p, err := New(opts...)
	if err != nil {
		return nil, err
	}

	return p.Plan(p.opts.Ctx, gm, start, goal)
}

// Plan returns a dense start → goal path on gm.
func (p *Planner) Plan(ctx context.Context, gm *gridmap.GridMap, start, goal gridmap.Point) ([]gridmap.Point, error) {
	rep, err := p.PlanDetailed(ctx, gm, start, goal)
	if err != nil {
		return nil, err
	}

	return rep.Dense, nil
}

// PlanDetailed is Plan with every intermediate path and the search statistics.
func (p *Planner) PlanDetailed(ctx context.Context, gm *gridmap.GridMap, start, goal gridmap.Point) (Report, error) {
	if gm == nil {
		return Report{}, search.ErrNilGrid
	}
	log := p.log.With(zap.Stringer("start", start), zap.Stringer("goal", goal))

	if !p.validAnchor(gm, start) {
		log.Debug("start is not valid")
		return Report{}, fmt.Errorf("%w: %v", ErrInvalidStart, start)
	}
	if !p.validAnchor(gm, goal) {
		log.Debug("goal is not valid")
		return Report{}, fmt.Errorf("%w: %v", ErrInvalidGoal, goal)
	}
	if start == goal {
		single := []gridmap.Point{start}
		return Report{Raw: single, Key: single, Smoothed: single, Dense: single}, nil
	}

	if p.opts.Reachability && !gm.Regions(p.opts.passable).Reaches(start, goal) {
		log.Warn("no path found", zap.String("reason", "anchors in different regions"))
		return Report{}, fmt.Errorf("%w: %v and %v are not connected", ErrNoPathFound, start, goal)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	res, err := search.Search(gm, start, goal, p.opts.searchOptions(ctx)...)
	rep := Report{Search: res, Searched: true}
	switch {
	case res.Status == search.Cancelled:
		log.Debug("search cancelled", zap.Int("steps", res.Steps), zap.Error(err))
		return rep, fmt.Errorf("%w: %w", ErrCancelled, err)
	case err != nil:
		return rep, err
	case res.Status != search.MeetingFound:
		log.Warn("no path found",
			zap.Int("steps", res.Steps),
			zap.Int("opened_start", res.OpenedStart),
			zap.Int("opened_goal", res.OpenedGoal),
		)
		return rep, fmt.Errorf("%w: search exhausted after %d steps", ErrNoPathFound, res.Steps)
	}

	rep.Raw = res.Path
	rep.Key = smooth.KeyPoints(res.Path)
	rep.Smoothed = smooth.ShortcutBy(gm, res.Path, p.opts.passable)
	rep.Dense = smooth.Densify(rep.Smoothed)

	log.Debug("path planned",
		zap.Int("steps", res.Steps),
		zap.Stringer("meeting", res.Meeting),
		zap.Bool("touched", res.Touched),
		zap.Int("raw_len", len(rep.Raw)),
		zap.Int("key_points", len(rep.Smoothed)),
		zap.Int("dense_len", len(rep.Dense)),
	)

	return rep, nil
}

// validAnchor: in bounds and -1 < cost < ValidMax.
func (p *Planner) validAnchor(gm *gridmap.GridMap, pt gridmap.Point) bool {
	if !gm.Contains(pt) {
		return false
	}
	c := gm.CostAt(pt)

	return c > gridmap.CostUnknown && c < p.opts.ValidMax
}
