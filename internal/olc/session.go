package olc

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/pixil98/go-olc/internal"
	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
)

const messageBacklog = 32

// Session is one editor's connection. It holds at most one detached buffer.
type Session struct {
	id   uuid.UUID
	name string
	dir  *Directory

	outMu sync.Mutex
	out   io.Writer
	in    internal.LineReader

	msgs  chan string
	unsub []func()
	quit  bool

	// The buffer and what it edits are only touched under the command lock.
	buffer game.Prototype
	isNew  bool
}

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) Name() string { return s.name }

// Prototype returns the buffer being edited, or nil.
func (s *Session) Prototype() game.Prototype {
	return s.buffer
}

// Editing reports what the session is editing.
func (s *Session) Editing() (game.Kind, storage.Vnum, bool) {
	if s.buffer == nil {
		return "", storage.Nothing, false
	}
	return s.buffer.Kind(), s.buffer.Vnum(), true
}

// IsNew reports whether the buffer has no stored prototype yet.
func (s *Session) IsNew() bool {
	return s.buffer != nil && s.isNew
}

func (s *Session) open(buf game.Prototype, isNew bool) {
	s.buffer = buf
	s.isNew = isNew
}

func (s *Session) close() {
	s.buffer = nil
	s.isNew = false
}

// Notify queues an asynchronous notice for this session.
func (s *Session) Notify(msg string) {
	if s.dir == nil {
		s.deliver(msg)
		return
	}
	s.dir.Notify(s.id, msg)
}

// deliver hands a notice to the connection loop. Notices are dropped when
// the editor has stopped reading.
func (s *Session) deliver(msg string) {
	select {
	case s.msgs <- msg:
	default:
		slog.Warn("dropping session notice", "session", s.id, "name", s.name)
	}
}

// Messages yields notices meant for this session.
func (s *Session) Messages() <-chan string {
	return s.msgs
}

// Write sends raw output to the editor's connection.
func (s *Session) Write(p []byte) (int, error) {
	s.outMu.Lock()
	defer s.outMu.Unlock()

	return s.out.Write(p)
}

func (s *Session) Send(msg string) {
	if _, err := s.Write([]byte(msg + "\n")); err != nil {
		slog.Warn("writing to session", "session", s.id, "error", err)
	}
}

func (s *Session) Confirm(ctx context.Context, prompt string) (bool, error) {
	return internal.PromptYN(s.in, s, prompt+" (y/n) ")
}

func (s *Session) Quit() {
	s.quit = true
}

func (s *Session) Quitting() bool {
	return s.quit
}
