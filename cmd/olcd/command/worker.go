package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pixil98/go-olc/internal/audit"
	"github.com/pixil98/go-olc/internal/cascade"
	"github.com/pixil98/go-olc/internal/commands"
	"github.com/pixil98/go-olc/internal/driver"
	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/listener"
	"github.com/pixil98/go-olc/internal/metrics"
	"github.com/pixil98/go-olc/internal/olc"
	"github.com/pixil98/go-service/service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	pol, err := cfg.Policy.buildPolicy()
	if err != nil {
		return nil, err
	}

	dict, lib, err := cfg.Storage.BuildDictionary()
	if err != nil {
		return nil, err
	}

	w, err := cfg.Storage.BuildWorld()
	if err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}

	jrnl, err := cfg.Storage.OpenJournal()
	if err != nil {
		return nil, err
	}

	nats, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	dir := olc.NewDirectory(nats)

	var m *metrics.Metrics
	if cfg.Metrics.enabled() {
		m = cfg.Metrics.buildMetrics(dict, metrics.WithLibrary(lib), metrics.WithSessions(dir))
	}

	cmds := commands.NewHandler(commands.WithMetrics(m))
	editor := olc.NewEditor(dict, w, lib, dir, append(cfg.Editor.editorOpts(), olc.WithEditorMetrics(m))...)
	deleter := cascade.NewDeleter(dict, w, lib, append(cfg.Editor.deleterOpts(),
		cascade.WithJournal(jrnl),
		cascade.WithPolicy(pol),
		cascade.WithSessions(dir),
		cascade.WithMetrics(m),
	)...)

	// Finish whatever deletes the last run journaled before anyone can edit.
	n, err := deleter.Replay(context.Background())
	if err != nil {
		return nil, err
	}
	if n > 0 {
		slog.Warn("replayed journaled deletes, consider running an audit", "count", n)
	}

	manager, err := olc.NewManager(cmds, dict, editor, deleter, audit.New(dict), dir,
		append(cfg.Editor.managerOpts(), olc.WithManagerMetrics(m))...)
	if err != nil {
		return nil, fmt.Errorf("creating olc manager: %w", err)
	}
	if err := cmds.Add(olc.DefaultCommands()...); err != nil {
		return nil, fmt.Errorf("adding commands: %w", err)
	}

	cm := listener.NewConnectionManager(manager)
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		worker, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = worker
	}

	d := driver.NewDriver([]driver.Manager{manager}, driver.WithTickLength(cfg.tickLength()))

	workers := service.WorkerList{
		"nats":      nats,
		"olc":       manager,
		"driver":    d,
		"journal":   &closeOnDone{name: "journal", c: jrnl},
		"listeners": &listeners,
	}
	if m != nil {
		workers["metrics"] = metrics.NewServer(cfg.Metrics.Addr, m)
	}

	total := 0
	for _, k := range game.AllKinds {
		total += dict.Count(k)
	}
	slog.Info("library loaded", "path", lib.Root(), "prototypes", total)

	return workers, nil
}

// closeOnDone closes c once the service shuts down.
type closeOnDone struct {
	name string
	c    io.Closer
}

func (w *closeOnDone) Start(ctx context.Context) error {
	<-ctx.Done()
	if err := w.c.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", w.name, err)
	}
	return nil
}
