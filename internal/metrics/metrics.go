package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter reports how many prototypes of a kind exist.
type Counter interface {
	Count(kind string) int
}

// Pender reports how many library writes are queued.
type Pender interface {
	Pending() int
}

// SessionCounter reports how many editing sessions are open.
type SessionCounter interface {
	OpenCount() int
}

// CounterFunc adapts a function to Counter.
type CounterFunc func(kind string) int

func (f CounterFunc) Count(kind string) int { return f(kind) }

type MetricsOpt func(*Metrics)

// WithPrototypes sets the source for the per-kind prototype gauge.
func WithPrototypes(c Counter, kinds []string) MetricsOpt {
	return func(m *Metrics) {
		m.prototypes = c
		m.kinds = kinds
	}
}

func WithLibrary(p Pender) MetricsOpt {
	return func(m *Metrics) {
		m.library = p
	}
}

func WithSessions(s SessionCounter) MetricsOpt {
	return func(m *Metrics) {
		m.sessions = s
	}
}

// Metrics holds the OLC collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	registry  *prometheus.Registry
	startTime time.Time

	prototypes Counter
	kinds      []string
	library    Pender
	sessions   SessionCounter

	commandsTotal   *prometheus.CounterVec
	userErrorsTotal prometheus.Counter
	commitsTotal    *prometheus.CounterVec
	deletesTotal    *prometheus.CounterVec
	rejectedTotal   *prometheus.CounterVec
	repairsTotal    *prometheus.CounterVec
	flushFailures   prometheus.Counter
	prototypesGauge *prometheus.GaugeVec
	pendingWrites   prometheus.Gauge
	openSessions    prometheus.Gauge
	journalEntries  prometheus.Gauge
	uptimeSeconds   prometheus.Gauge
}

// New creates the collectors and registers them on a private registry.
func New(opts ...MetricsOpt) *Metrics {
	m := &Metrics{
		registry:  prometheus.NewRegistry(),
		startTime: time.Now(),
		commandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "olc_commands_total",
			Help: "OLC commands processed, by command.",
		}, []string{"command"}),
		userErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "olc_user_errors_total",
			Help: "OLC commands rejected with a user error.",
		}),
		commitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "olc_commits_total",
			Help: "Editing sessions saved, by kind.",
		}, []string{"kind"}),
		deletesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "olc_deletes_total",
			Help: "Prototypes deleted, by kind.",
		}, []string{"kind"}),
		rejectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "olc_deletes_rejected_total",
			Help: "Deletes refused before any change, by kind.",
		}, []string{"kind"}),
		repairsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "olc_references_repaired_total",
			Help: "References removed by cascading deletes, by referencing kind.",
		}, []string{"kind"}),
		flushFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "olc_flush_failures_total",
			Help: "Library flushes that left writes queued.",
		}),
		prototypesGauge: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "olc_prototypes",
			Help: "Prototypes currently stored, by kind.",
		}, []string{"kind"}),
		pendingWrites: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "olc_pending_writes",
			Help: "Library blocks and indexes waiting to be written.",
		}),
		openSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "olc_open_sessions",
			Help: "Editing sessions with an open buffer.",
		}),
		journalEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "olc_journal_entries",
			Help: "Deletes recorded in the journal and not yet settled.",
		}),
		uptimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "olc_uptime_seconds",
			Help: "Server uptime in seconds.",
		}),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.registry.MustRegister(
		m.commandsTotal,
		m.userErrorsTotal,
		m.commitsTotal,
		m.deletesTotal,
		m.rejectedTotal,
		m.repairsTotal,
		m.flushFailures,
		m.prototypesGauge,
		m.pendingWrites,
		m.openSessions,
		m.journalEntries,
		m.uptimeSeconds,
	)

	return m
}

func (m *Metrics) Command(name string) {
	if m == nil {
		return
	}
	m.commandsTotal.WithLabelValues(name).Inc()
}

func (m *Metrics) UserError() {
	if m == nil {
		return
	}
	m.userErrorsTotal.Inc()
}

func (m *Metrics) Committed(kind string) {
	if m == nil {
		return
	}
	m.commitsTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) Deleted(kind string) {
	if m == nil {
		return
	}
	m.deletesTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) DeleteRejected(kind string) {
	if m == nil {
		return
	}
	m.rejectedTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) Repaired(kind string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.repairsTotal.WithLabelValues(kind).Add(float64(n))
}

func (m *Metrics) FlushFailed() {
	if m == nil {
		return
	}
	m.flushFailures.Inc()
}

func (m *Metrics) JournalEntries(n int) {
	if m == nil {
		return
	}
	m.journalEntries.Set(float64(n))
}

// Update refreshes the gauges from their sources.
func (m *Metrics) Update() {
	if m == nil {
		return
	}

	if m.prototypes != nil {
		for _, k := range m.kinds {
			m.prototypesGauge.WithLabelValues(k).Set(float64(m.prototypes.Count(k)))
		}
	}
	if m.library != nil {
		m.pendingWrites.Set(float64(m.library.Pending()))
	}
	if m.sessions != nil {
		m.openSessions.Set(float64(m.sessions.OpenCount()))
	}
	m.uptimeSeconds.Set(time.Since(m.startTime).Seconds())
}

// Gather returns the current value of every collector.
func (m *Metrics) Gather() (map[string]float64, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}

	out := map[string]float64{}
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			name := f.GetName()
			for _, l := range metric.GetLabel() {
				name += "{" + l.GetName() + "=" + l.GetValue() + "}"
			}
			switch {
			case metric.GetCounter() != nil:
				out[name] = metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				out[name] = metric.GetGauge().GetValue()
			}
		}
	}
	return out, nil
}

// Handler returns an http.Handler that updates the gauges before serving
// them.
func (m *Metrics) Handler() http.Handler {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.Update()
		h.ServeHTTP(w, r)
	})
}
