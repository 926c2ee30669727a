package driver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

type mockManager struct {
	ticks chan struct{}
	count int
	err   error
}

func (m *mockManager) Tick(context.Context) error {
	m.count++
	if m.ticks != nil {
		select {
		case m.ticks <- struct{}{}:
		default:
		}
	}
	return m.err
}

func TestDriver_Tick(t *testing.T) {
	tests := map[string]struct {
		managers []*mockManager
		expErrs  []string
	}{
		"all managers tick": {
			managers: []*mockManager{{}, {}},
		},
		"errors do not stop later managers": {
			managers: []*mockManager{{err: errors.New("disk full")}, {}, {err: errors.New("bus down")}},
			expErrs:  []string{"manager 0: disk full", "manager 2: bus down"},
		},
		"no managers": {},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var ms []Manager
			for _, m := range tc.managers {
				ms = append(ms, m)
			}
			d := NewDriver(ms)

			err := d.Tick(context.Background())
			if len(tc.expErrs) == 0 && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, exp := range tc.expErrs {
				testutil.AssertErrorContains(t, err, exp)
			}
			for _, m := range tc.managers {
				testutil.AssertEqual(t, "ticks", m.count, 1)
			}
		})
	}
}

func TestDriver_Start(t *testing.T) {
	m := &mockManager{ticks: make(chan struct{}, 1), err: errors.New("flush failed")}
	d := NewDriver([]Manager{m}, WithTickLength(time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- d.Start(ctx) }()

	// A failing manager keeps getting ticked.
	for range 2 {
		select {
		case <-m.ticks:
		case <-time.After(time.Second):
			t.Fatal("manager was not ticked")
		}
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("driver did not stop")
	}
}
