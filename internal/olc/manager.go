package olc

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pixil98/go-olc/internal"
	"github.com/pixil98/go-olc/internal/audit"
	"github.com/pixil98/go-olc/internal/cascade"
	"github.com/pixil98/go-olc/internal/commands"
	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/metrics"
)

type ManagerOpt func(*Manager)

func WithManagerMetrics(m *metrics.Metrics) ManagerOpt {
	return func(mgr *Manager) {
		mgr.metrics = m
	}
}

// WithGreeting replaces the banner shown to new connections.
func WithGreeting(g string) ManagerOpt {
	return func(mgr *Manager) {
		mgr.greeting = g
	}
}

const DefaultGreeting = "Welcome to the content editor."

// Manager runs editor connections against the shared command handler.
type Manager struct {
	dict    *game.Dictionary
	cmds    *commands.Handler
	editor  *Editor
	deleter *cascade.Deleter
	auditor *audit.Auditor
	dir     *Directory
	metrics *metrics.Metrics

	greeting string
}

// NewManager registers the editor's handler factories on cmds. Commands
// naming them still have to be added.
func NewManager(cmds *commands.Handler, dict *game.Dictionary, editor *Editor, deleter *cascade.Deleter, auditor *audit.Auditor, dir *Directory, opts ...ManagerOpt) (*Manager, error) {
	m := &Manager{
		dict:     dict,
		cmds:     cmds,
		editor:   editor,
		deleter:  deleter,
		auditor:  auditor,
		dir:      dir,
		greeting: DefaultGreeting,
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.registerFactories(); err != nil {
		return nil, fmt.Errorf("registering handlers: %w", err)
	}
	return m, nil
}

func (m *Manager) Start(ctx context.Context) error {
	<-ctx.Done()

	m.dir.Broadcast("The editor is shutting down.")
	return nil
}

// Tick retries queued writes and refreshes gauges. It shares the command
// lock so it never runs in the middle of a command.
func (m *Manager) Tick(ctx context.Context) error {
	err := m.cmds.Exclusive(func() error {
		return m.deleter.Settle(ctx)
	})
	m.metrics.Update()
	if err != nil {
		slog.WarnContext(ctx, "settling library", "error", err)
	}
	return nil
}

// RunSession greets a connection, asks for a name and runs its session
// until it quits or the connection drops.
func (m *Manager) RunSession(ctx context.Context, conn io.ReadWriter) error {
	in := newLineFeed(conn)
	defer in.stop()

	if _, err := io.WriteString(conn, m.greeting+"\n"); err != nil {
		return err
	}
	// Transports that already know who is connecting skip the prompt.
	name := internal.EditorName(ctx)
	if ok, _ := validName(name); ok {
		name = formatName(name)
	} else {
		var err error
		name, err = login(in, conn)
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
	}

	s := m.dir.Open(ctx, name, in, conn)
	defer func() {
		if s.Prototype() != nil {
			_ = m.cmds.Exclusive(func() error { return m.editor.Abort(ctx, s) })
		}
		m.dir.Close(ctx, s)
	}()

	return m.run(ctx, s, in)
}
