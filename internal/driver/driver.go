package driver

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

const (
	DefaultTickLength = time.Millisecond * 600
	MinTickLength     = time.Millisecond * 50
)

// Manager is run once per frame.
type Manager interface {
	Tick(context.Context) error
}

// ManagerFunc adapts a function to Manager.
type ManagerFunc func(context.Context) error

func (f ManagerFunc) Tick(ctx context.Context) error {
	return f(ctx)
}

// FrameDriver runs its managers on a fixed interval. Frames never overlap:
// a frame that overruns the interval delays the next one.
type FrameDriver struct {
	tickLength time.Duration
	managers   []Manager
	frames     atomic.Uint64
	ready      func(context.Context) error
}

func NewFrameDriver(managers []Manager, opts ...FrameDriverOpt) *FrameDriver {
	d := &FrameDriver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *FrameDriver) Start(ctx context.Context) error {
	if d.ready != nil {
		if err := d.ready(ctx); err != nil {
			return nil
		}
	}

	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	slog.InfoContext(ctx, "frame driver started", "tick", d.tickLength, "managers", len(d.managers))

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

// Tick runs one frame. The first manager error aborts the frame.
func (d *FrameDriver) Tick(ctx context.Context) error {
	frame := d.frames.Add(1)
	for i, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return fmt.Errorf("frame %d: manager %d: %w", frame, i, err)
		}
	}
	return nil
}

// Frames returns the number of frames run. It is safe to call while the
// driver is running.
func (d *FrameDriver) Frames() uint64 {
	return d.frames.Load()
}
