package node

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/golang/geo/r2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/gridplan/costmap"
	"github.com/katalvlaran/gridplan/planner"
)

var (
	// ErrNoMap is returned when a goal arrives before any map.
	ErrNoMap = errors.New("node: no map received")

	// ErrNoPose is returned when a goal arrives before any pose.
	ErrNoPose = errors.New("node: no pose received")
)

// Node holds the latest inputs and plans on demand.
type Node struct {
	planner *planner.Planner
	sink    Sink
	log     *zap.Logger

	mu       sync.Mutex
	m        *costmap.Map
	pose     r2.Point
	havePose bool
	goal     r2.Point
	haveGoal bool

	wake chan struct{}
}

// Option configures a Node.
type Option func(*Node)

// WithLogger sets the node logger (default: no-op).
func WithLogger(l *zap.Logger) Option {
	return func(n *Node) {
		if l != nil {
			n.log = l
		}
	}
}

// New returns a Node that plans with p and publishes to sink. sink may be nil
// when the node is only used through PlanTo.
func New(p *planner.Planner, sink Sink, opts ...Option) *Node {
	n := &Node{
		planner: p,
		sink:    sink,
		log:     zap.NewNop(),
		wake:    make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(n)
	}

	return n
}

// SetMap replaces the map used by later plans.
func (n *Node) SetMap(m *costmap.Map) {
	n.mu.Lock()
	n.m = m
	n.mu.Unlock()
}

// SetPose replaces the robot position, world frame.
func (n *Node) SetPose(p r2.Point) {
	n.mu.Lock()
	n.pose, n.havePose = p, true
	n.mu.Unlock()
}

// SetGoal queues a goal for Run, replacing any goal not yet picked up.
func (n *Node) SetGoal(g r2.Point) {
	n.mu.Lock()
	n.goal, n.haveGoal = g, true
	n.mu.Unlock()
	n.log.Info("goal received", zap.Float64("x", g.X), zap.Float64("y", g.Y))

	select {
	case n.wake <- struct{}{}:
	default:
	}
}

// takeGoal returns the pending goal, if any, and clears it.
func (n *Node) takeGoal() (r2.Point, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	g, ok := n.goal, n.haveGoal
	n.haveGoal = false

	return g, ok
}

// PlanTo plans from the latest pose to goal on the latest map.
func (n *Node) PlanTo(ctx context.Context, goal r2.Point) (Path, error) {
	n.mu.Lock()
	m, pose, havePose := n.m, n.pose, n.havePose
	n.mu.Unlock()

	if m == nil {
		return Path{}, ErrNoMap
	}
	if !havePose {
		return Path{}, ErrNoPose
	}
	start, ok := m.WorldToGrid(pose)
	if !ok {
		return Path{}, fmt.Errorf("%w: pose %v is outside the map", planner.ErrInvalidStart, pose)
	}
	end, ok := m.WorldToGrid(goal)
	if !ok {
		return Path{}, fmt.Errorf("%w: goal %v is outside the map", planner.ErrInvalidGoal, goal)
	}

	cells, err := n.planner.Plan(ctx, m.Grid, start, end)
	if err != nil {
		return Path{}, err
	}

	return Path{Goal: goal, Cells: cells, Points: m.PathToWorld(cells)}, nil
}

// Run plans every goal set through SetGoal and publishes the results until
// ctx ends (returning nil) or the sink fails (returning its error).
// Planning and publishing run on separate goroutines. At most one path waits
// for the sink; a newer path replaces it, so a slow sink never delays
// picking up the latest goal.
func (n *Node) Run(ctx context.Context) error {
	if n.sink == nil {
		return errors.New("node: Run needs a sink")
	}
	g, ctx := errgroup.WithContext(ctx)
	out := make(chan Path, 1)

	g.Go(func() error {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-n.wake:
			}
			goal, ok := n.takeGoal()
			if !ok {
				continue
			}
			path, err := n.PlanTo(ctx, goal)
			if errors.Is(err, planner.ErrCancelled) {
				return nil
			}
			if err != nil {
				n.logFailure(goal, err)
				continue
			}
			n.offer(out, path)
		}
	})

	g.Go(func() error {
		for path := range out {
			if err := n.sink.Publish(ctx, path); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("node: publish: %w", err)
			}
			n.log.Info("path published", zap.Int("cells", len(path.Cells)))
		}
		return nil
	})

	return g.Wait()
}

// offer puts path into the one-slot queue, replacing an unpublished path.
// Only the planning goroutine sends, so the send after draining never blocks.
func (n *Node) offer(out chan Path, path Path) {
	select {
	case out <- path:
		return
	default:
	}
	select {
	case old := <-out:
		n.log.Debug("unpublished path replaced", zap.Float64("x", old.Goal.X), zap.Float64("y", old.Goal.Y))
	default:
	}
	out <- path
}

func (n *Node) logFailure(goal r2.Point, err error) {
	log := n.log.With(zap.Float64("x", goal.X), zap.Float64("y", goal.Y), zap.Error(err))
	switch {
	case errors.Is(err, planner.ErrInvalidGoal):
		log.Warn("goal is not valid")
	case errors.Is(err, planner.ErrInvalidStart):
		log.Warn("start is not valid")
	case errors.Is(err, planner.ErrNoPathFound):
		log.Warn("no path found")
	case errors.Is(err, ErrNoMap), errors.Is(err, ErrNoPose):
		log.Warn("goal ignored, inputs missing")
	default:
		log.Error("planning failed")
	}
}
