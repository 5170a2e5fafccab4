package node_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/gridplan/costmap"
	"github.com/katalvlaran/gridplan/gridmap"
	"github.com/katalvlaran/gridplan/node"
	"github.com/katalvlaran/gridplan/planner"
)

// testMap is a 6×6 map with 1 m cells at the world origin and an occupied
// cell at (3,3).
func testMap(t *testing.T) *costmap.Map {
	t.Helper()
	data := make([]int8, 36)
	data[3*6+3] = gridmap.CostOccupied
	m, err := costmap.FromOccupancy(costmap.Meta{Resolution: 1, Width: 6, Height: 6}, data)
	require.NoError(t, err)

	return m
}

func newPlanner(t *testing.T) *planner.Planner {
	t.Helper()
	p, err := planner.New()
	require.NoError(t, err)

	return p
}

func TestPlanTo_Errors(t *testing.T) {
	n := node.New(newPlanner(t), node.SinkFunc(func(context.Context, node.Path) error { return nil }))
	ctx := context.Background()

	_, err := n.PlanTo(ctx, r2.Point{X: 1, Y: 1})
	assert.ErrorIs(t, err, node.ErrNoMap)

	n.SetMap(testMap(t))
	_, err = n.PlanTo(ctx, r2.Point{X: 1, Y: 1})
	assert.ErrorIs(t, err, node.ErrNoPose)

	n.SetPose(r2.Point{X: -3, Y: 0.5})
	_, err = n.PlanTo(ctx, r2.Point{X: 1, Y: 1})
	assert.ErrorIs(t, err, planner.ErrInvalidStart)

	n.SetPose(r2.Point{X: 0.5, Y: 0.5})
	_, err = n.PlanTo(ctx, r2.Point{X: 10, Y: 1})
	assert.ErrorIs(t, err, planner.ErrInvalidGoal)

	_, err = n.PlanTo(ctx, r2.Point{X: 3.5, Y: 3.2})
	assert.ErrorIs(t, err, planner.ErrInvalidGoal, "occupied goal")
}

func TestPlanTo_World(t *testing.T) {
	n := node.New(newPlanner(t), node.SinkFunc(func(context.Context, node.Path) error { return nil }))
	n.SetMap(testMap(t))
	n.SetPose(r2.Point{X: 0.2, Y: 0.9})

	p, err := n.PlanTo(context.Background(), r2.Point{X: 2.7, Y: 0.1})
	require.NoError(t, err)
	assert.Equal(t, []gridmap.Point{gridmap.Pt(0, 0), gridmap.Pt(1, 0), gridmap.Pt(2, 0)}, p.Cells)
	assert.Equal(t, []r2.Point{{X: 0.5, Y: 0.5}, {X: 1.5, Y: 0.5}, {X: 2.5, Y: 0.5}}, p.Points)
	assert.Equal(t, r2.Point{X: 2.7, Y: 0.1}, p.Goal)
}

func TestRun_PublishesAndSkipsInvalid(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	out := make(chan node.Path, 1)
	n := node.New(newPlanner(t), node.ChanSink(out), node.WithLogger(zap.New(core)))
	n.SetMap(testMap(t))
	n.SetPose(r2.Point{X: 0.5, Y: 0.5})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- n.Run(ctx) }()

	n.SetGoal(r2.Point{X: 3.5, Y: 3.5})
	require.Eventually(t, func() bool {
		return logs.FilterMessage("goal is not valid").Len() == 1
	}, time.Second, 5*time.Millisecond)

	n.SetGoal(r2.Point{X: 5.5, Y: 0.5})
	select {
	case p := <-out:
		require.NotEmpty(t, p.Cells)
		assert.Equal(t, gridmap.Pt(0, 0), p.Cells[0])
		assert.Equal(t, gridmap.Pt(5, 0), p.Cells[len(p.Cells)-1])
		assert.Len(t, p.Points, len(p.Cells))
	case <-time.After(time.Second):
		t.Fatal("no path published")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
}

// TestRun_SlowSinkKeepsLatest blocks the sink on the first path and plans two
// more goals meanwhile: planning goes on and only the newest path waits.
func TestRun_SlowSinkKeepsLatest(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)
	p, err := planner.New(planner.WithLogger(logger))
	require.NoError(t, err)

	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	published := make(chan node.Path, 4)
	sink := node.SinkFunc(func(ctx context.Context, path node.Path) error {
		select {
		case entered <- struct{}{}:
		default:
		}
		select {
		case <-release:
		case <-ctx.Done():
			return ctx.Err()
		}
		published <- path
		return nil
	})
	n := node.New(p, sink, node.WithLogger(logger))
	n.SetMap(testMap(t))
	n.SetPose(r2.Point{X: 0.5, Y: 0.5})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- n.Run(ctx) }()

	planned := func(k int) func() bool {
		return func() bool { return logs.FilterMessage("path planned").Len() == k }
	}
	first, second, third := r2.Point{X: 1.5, Y: 0.5}, r2.Point{X: 2.5, Y: 0.5}, r2.Point{X: 4.5, Y: 0.5}

	n.SetGoal(first)
	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("sink never called")
	}
	n.SetGoal(second)
	require.Eventually(t, planned(2), time.Second, 5*time.Millisecond)
	n.SetGoal(third)
	require.Eventually(t, planned(3), time.Second, 5*time.Millisecond, "planning blocked by the sink")
	require.Eventually(t, func() bool {
		return logs.FilterMessage("unpublished path replaced").Len() == 1
	}, time.Second, 5*time.Millisecond)

	close(release)
	var got []r2.Point
	for len(got) < 2 {
		select {
		case path := <-published:
			got = append(got, path.Goal)
		case <-time.After(time.Second):
			t.Fatal("paths not published")
		}
	}
	assert.Equal(t, []r2.Point{first, third}, got)

	cancel()
	require.NoError(t, <-done)
	assert.Empty(t, published)
}

// TestRun_FailureMessages checks that each planning failure is logged under
// its own message.
func TestRun_FailureMessages(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	n := node.New(newPlanner(t), node.ChanSink(make(chan node.Path, 1)), node.WithLogger(zap.New(core)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- n.Run(ctx) }()

	seen := func(msg string) func() bool {
		return func() bool { return logs.FilterMessage(msg).Len() == 1 }
	}

	n.SetGoal(r2.Point{X: 1.5, Y: 1.5})
	require.Eventually(t, seen("goal ignored, inputs missing"), time.Second, 5*time.Millisecond)

	// (4,4) is free but boxed in by occupied cells
	data := make([]int8, 36)
	for y := 3; y <= 5; y++ {
		for x := 3; x <= 5; x++ {
			if x != 4 || y != 4 {
				data[y*6+x] = gridmap.CostOccupied
			}
		}
	}
	m, err := costmap.FromOccupancy(costmap.Meta{Resolution: 1, Width: 6, Height: 6}, data)
	require.NoError(t, err)
	n.SetMap(m)
	n.SetPose(r2.Point{X: 0.5, Y: 0.5})

	n.SetGoal(r2.Point{X: 4.5, Y: 4.5})
	require.Eventually(t, seen("no path found"), time.Second, 5*time.Millisecond)

	n.SetGoal(r2.Point{X: 3.5, Y: 3.5})
	require.Eventually(t, seen("goal is not valid"), time.Second, 5*time.Millisecond)

	n.SetPose(r2.Point{X: 3.5, Y: 4.5})
	n.SetGoal(r2.Point{X: 0.5, Y: 0.5})
	require.Eventually(t, seen("start is not valid"), time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestRun_SinkErrorStops(t *testing.T) {
	boom := errors.New("sink down")
	n := node.New(newPlanner(t), node.SinkFunc(func(context.Context, node.Path) error { return boom }))
	n.SetMap(testMap(t))
	n.SetPose(r2.Point{X: 0.5, Y: 0.5})
	n.SetGoal(r2.Point{X: 1.5, Y: 1.5})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := n.Run(ctx)
	assert.ErrorIs(t, err, boom)
}

func TestChanSink_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := node.ChanSink(make(chan node.Path)).Publish(ctx, node.Path{})
	assert.ErrorIs(t, err, context.Canceled)
}
