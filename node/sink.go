package node

import (
	"context"

	"github.com/golang/geo/r2"

	"github.com/katalvlaran/gridplan/gridmap"
)

// Path is one planning result.
type Path struct {
	Goal   r2.Point        // requested goal, world frame
	Cells  []gridmap.Point // dense grid path, start → goal
	Points []r2.Point      // cell centres of Cells, world frame
}

// Sink receives planned paths.
type Sink interface {
	Publish(ctx context.Context, p Path) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, p Path) error

// Publish calls f.
func (f SinkFunc) Publish(ctx context.Context, p Path) error { return f(ctx, p) }

// ChanSink delivers paths on a channel, blocking until the receiver is ready
// or ctx ends.
type ChanSink chan<- Path

// Publish sends p on the channel.
func (c ChanSink) Publish(ctx context.Context, p Path) error {
	select {
	case c <- p:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
