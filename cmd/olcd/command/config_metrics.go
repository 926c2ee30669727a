package command

import (
	"fmt"
	"net"

	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/metrics"
)

type MetricsConfig struct {
	Addr string `json:"addr,omitempty"`
}

func (c *MetricsConfig) validate() error {
	if c.Addr == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("metrics: invalid addr %q: %w", c.Addr, err)
	}
	return nil
}

func (c *MetricsConfig) enabled() bool {
	return c.Addr != ""
}

func (c *MetricsConfig) buildMetrics(dict *game.Dictionary, opts ...metrics.MetricsOpt) *metrics.Metrics {
	kinds := make([]string, len(game.AllKinds))
	for i, k := range game.AllKinds {
		kinds[i] = string(k)
	}
	count := metrics.CounterFunc(func(kind string) int {
		return dict.Count(game.Kind(kind))
	})
	return metrics.New(append([]metrics.MetricsOpt{metrics.WithPrototypes(count, kinds)}, opts...)...)
}
