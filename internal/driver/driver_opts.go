package driver

import (
	"context"
	"time"
)

type FrameDriverOpt func(*FrameDriver)

// WithTickLength sets the frame interval. Values below MinTickLength are
// raised to it.
func WithTickLength(tickLength time.Duration) FrameDriverOpt {
	return func(d *FrameDriver) {
		d.tickLength = max(tickLength, MinTickLength)
	}
}

// WithReadyCheck delays the first frame until ready returns. The driver
// exits quietly if ready fails, which happens when ctx ends first.
func WithReadyCheck(ready func(context.Context) error) FrameDriverOpt {
	return func(d *FrameDriver) {
		d.ready = ready
	}
}
