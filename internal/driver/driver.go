package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pixil98/go-errors"
)

const (
	DefaultTickLength = time.Second * 2
)

// Manager is anything with periodic work, such as retrying library writes.
type Manager interface {
	Tick(context.Context) error
}

// Driver ticks its managers on a fixed interval. A failing tick is logged
// and retried on the next interval rather than stopping the server.
type Driver struct {
	tickLength time.Duration
	managers   []Manager
}

func NewDriver(managers []Manager, opts ...DriverOpt) *Driver {
	d := &Driver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	slog.InfoContext(ctx, "driver started", "tick", d.tickLength, "managers", len(d.managers))
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			start := time.Now()
			if err := d.Tick(ctx); err != nil {
				slog.ErrorContext(ctx, "tick failed", "error", err)
			}
			if took := time.Since(start); took > d.tickLength {
				slog.WarnContext(ctx, "tick overran", "took", took, "tick", d.tickLength)
			}
		}
	}
}

// Tick runs every manager once, in order. One manager failing does not
// keep the rest from running; all errors are returned together.
func (d *Driver) Tick(ctx context.Context) error {
	el := errors.NewErrorList()
	for i, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			el.Add(fmt.Errorf("manager %d: %w", i, err))
		}
	}
	return el.Err()
}
