package olc

import (
	"cmp"
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/pixil98/go-olc/internal"
	"github.com/pixil98/go-olc/internal/cascade"
	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/messaging"
	"github.com/pixil98/go-olc/internal/storage"
)

// Notifier carries session notices between goroutines.
type Notifier interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

// Directory tracks every connected session.
type Directory struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	notifier Notifier
}

// NewDirectory creates a directory. With a nil notifier notices are handed
// to sessions directly.
func NewDirectory(n Notifier) *Directory {
	return &Directory{
		sessions: map[uuid.UUID]*Session{},
		notifier: n,
	}
}

// Open registers a new session reading from in and writing to out.
func (d *Directory) Open(ctx context.Context, name string, in internal.LineReader, out io.Writer) *Session {
	s := &Session{
		id:   uuid.New(),
		name: name,
		dir:  d,
		in:   in,
		out:  out,
		msgs: make(chan string, messageBacklog),
	}

	if d.notifier != nil {
		for _, subject := range []string{messaging.SessionSubject(s.id), messaging.BroadcastSubject} {
			unsub, err := d.notifier.Subscribe(subject, func(data []byte) { s.deliver(string(data)) })
			if err != nil {
				slog.WarnContext(ctx, "subscribing session", "session", s.id, "subject", subject, "error", err)
				continue
			}
			s.unsub = append(s.unsub, unsub)
		}
	}

	d.mu.Lock()
	d.sessions[s.id] = s
	d.mu.Unlock()

	slog.InfoContext(ctx, "session opened", "session", s.id, "name", name)
	return s
}

// Close forgets a session. Its buffer, if any, is discarded.
func (d *Directory) Close(ctx context.Context, s *Session) {
	d.mu.Lock()
	delete(d.sessions, s.id)
	d.mu.Unlock()

	for _, unsub := range s.unsub {
		unsub()
	}

	slog.InfoContext(ctx, "session closed", "session", s.id, "name", s.name)
}

// Notify sends msg to one session.
func (d *Directory) Notify(id uuid.UUID, msg string) {
	d.mu.RLock()
	s, ok := d.sessions[id]
	d.mu.RUnlock()
	if !ok {
		return
	}

	if d.notifier == nil || len(s.unsub) == 0 {
		s.deliver(msg)
		return
	}
	if err := d.notifier.Publish(messaging.SessionSubject(id), []byte(msg)); err != nil {
		slog.Warn("publishing session notice", "session", id, "error", err)
		s.deliver(msg)
	}
}

// Broadcast sends msg to every session.
func (d *Directory) Broadcast(msg string) {
	if d.notifier != nil {
		if err := d.notifier.Publish(messaging.BroadcastSubject, []byte(msg)); err == nil {
			return
		}
	}
	for _, s := range d.snapshot() {
		s.deliver(msg)
	}
}

// ForEachOpen calls fn for every session with a buffer.
func (d *Directory) ForEachOpen(fn func(cascade.Buffer)) {
	for _, s := range d.snapshot() {
		if s.buffer != nil {
			fn(s)
		}
	}
}

// EditorOf returns the session editing kind/vnum.
func (d *Directory) EditorOf(kind game.Kind, vnum storage.Vnum) (*Session, bool) {
	for _, s := range d.snapshot() {
		if k, v, ok := s.Editing(); ok && k == kind && v == vnum {
			return s, true
		}
	}
	return nil, false
}

// OpenCount returns the number of connected sessions.
func (d *Directory) OpenCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.sessions)
}

// Sessions returns every connected session.
func (d *Directory) Sessions() []*Session {
	return d.snapshot()
}

func (d *Directory) snapshot() []*Session {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*Session, 0, len(d.sessions))
	for _, s := range d.sessions {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b *Session) int {
		if c := cmp.Compare(a.name, b.name); c != 0 {
			return c
		}
		return cmp.Compare(a.id.String(), b.id.String())
	})
	return out
}
