package olc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-olc/internal/commands"
	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/metrics"
	"github.com/pixil98/go-olc/internal/storage"
	"github.com/pixil98/go-olc/internal/world"
)

// DefaultMaxVnum is the highest vnum an editor may create.
const DefaultMaxVnum storage.Vnum = 999999

type EditorOpt func(*Editor)

func WithMaxVnum(v storage.Vnum) EditorOpt {
	return func(e *Editor) {
		e.maxVnum = v
	}
}

// WithVnumFloor makes "new" prototypes of kind start counting at floor.
func WithVnumFloor(kind game.Kind, floor storage.Vnum) EditorOpt {
	return func(e *Editor) {
		e.floors[kind] = floor
	}
}

func WithEditorMetrics(m *metrics.Metrics) EditorOpt {
	return func(e *Editor) {
		e.metrics = m
	}
}

// Editor moves prototypes between the dictionary and session buffers. Every
// method must run under the command lock.
type Editor struct {
	dict    *game.Dictionary
	world   *world.World
	library *storage.Library
	dir     *Directory
	metrics *metrics.Metrics

	kinds   map[game.Kind]*kindEditor
	floors  map[game.Kind]storage.Vnum
	maxVnum storage.Vnum
}

func NewEditor(dict *game.Dictionary, w *world.World, lib *storage.Library, dir *Directory, opts ...EditorOpt) *Editor {
	e := &Editor{
		dict:    dict,
		world:   w,
		library: lib,
		dir:     dir,
		kinds:   defaultKinds(dict),
		floors:  map[game.Kind]storage.Vnum{},
		maxVnum: DefaultMaxVnum,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Editor) kind(k game.Kind) (*kindEditor, error) {
	ke, ok := e.kinds[k]
	if !ok {
		return nil, commands.NewUserErrorf("You can't edit a %s.", k)
	}
	return ke, nil
}

// resolveVnum turns commands.NewVnum into the next vnum of kind that is
// neither stored nor held by an open buffer, and range-checks the result.
func (e *Editor) resolveVnum(ke *kindEditor, vnum storage.Vnum) (storage.Vnum, error) {
	if vnum == commands.NewVnum {
		vnum = ke.nextFree(e.floors[ke.kind])
		for {
			if _, held := e.dir.EditorOf(ke.kind, vnum); !held {
				break
			}
			vnum = ke.nextFree(vnum + 1)
		}
	}
	if vnum < 0 || vnum > e.maxVnum {
		return storage.Nothing, commands.NewUserErrorf("Valid vnums are 0 to %d.", e.maxVnum)
	}
	return vnum, nil
}

func (e *Editor) checkFree(s *Session, kind game.Kind, vnum storage.Vnum) error {
	if _, _, ok := s.Editing(); ok {
		return commands.NewUserError("You are already editing something. Save or abort it first.")
	}
	if other, ok := e.dir.EditorOf(kind, vnum); ok && other != s {
		return commands.NewUserErrorf("Someone else is already editing that %s.", kind)
	}
	return nil
}

// Begin opens a buffer on kind/vnum: a deep copy when it exists, a fresh
// prototype otherwise.
func (e *Editor) Begin(ctx context.Context, s *Session, kind game.Kind, vnum storage.Vnum) (game.Prototype, error) {
	ke, err := e.kind(kind)
	if err != nil {
		return nil, err
	}
	vnum, err = e.resolveVnum(ke, vnum)
	if err != nil {
		return nil, err
	}
	if err := e.checkFree(s, kind, vnum); err != nil {
		return nil, err
	}

	if live, ok := e.dict.Lookup(kind, vnum); ok {
		s.open(ke.clone(live), false)
	} else {
		s.open(ke.create(vnum), true)
	}

	slog.InfoContext(ctx, "editing prototype", "kind", kind, "vnum", vnum, "by", s.Name(), "new", s.isNew)
	return s.buffer, nil
}

// Copy opens a buffer on a new prototype at to, copied from from.
func (e *Editor) Copy(ctx context.Context, s *Session, kind game.Kind, from, to storage.Vnum) (game.Prototype, error) {
	ke, err := e.kind(kind)
	if err != nil {
		return nil, err
	}
	src, ok := e.dict.Lookup(kind, from)
	if !ok {
		return nil, commands.NewUserErrorf("There is no %s with that vnum.", kind)
	}
	to, err = e.resolveVnum(ke, to)
	if err != nil {
		return nil, err
	}
	if _, ok := e.dict.Lookup(kind, to); ok {
		return nil, commands.NewUserErrorf("There is already a %s with that vnum.", kind)
	}
	if err := e.checkFree(s, kind, to); err != nil {
		return nil, err
	}

	buf := ke.clone(src)
	buf.SetVnum(to)
	if d, ok := buf.(game.Developable); ok {
		d.SetInDevelopment(true)
	}
	s.open(buf, true)

	slog.InfoContext(ctx, "copying prototype", "kind", kind, "from", from, "to", to, "by", s.Name())
	return buf, nil
}

// Commit copies the session's buffer onto the live prototype, creating it
// when needed, and writes it out. A failed write is logged and retried by
// the next flush; the commit itself stands. The prototype is written even
// when the kind's post-commit step fails, so disk matches memory.
func (e *Editor) Commit(ctx context.Context, s *Session) (game.Prototype, error) {
	buf := s.buffer
	if buf == nil {
		return nil, commands.NewUserError("You aren't editing anything.")
	}
	ke, err := e.kind(buf.Kind())
	if err != nil {
		return nil, err
	}

	ke.sanitize(buf)
	if err := buf.Validate(); err != nil {
		return nil, commands.NewUserErrorf("Unable to save: %s", err)
	}

	kind, vnum := buf.Kind(), buf.Vnum()
	live, existed := e.dict.Lookup(kind, vnum)
	oldBlock := -1
	if existed {
		oldBlock = game.BlockOf(live)
	} else {
		live = ke.create(vnum)
		if !e.dict.Insert(live) {
			return nil, fmt.Errorf("inserting %s %d", kind, vnum)
		}
	}

	ke.apply(live, buf)
	s.close()

	var hookErr error
	if ke.committed != nil {
		hookErr = ke.committed(ctx, e, live)
	}

	block := game.BlockOf(live)
	e.library.SaveBlock(string(kind), block)
	if oldBlock != block {
		if oldBlock >= 0 {
			e.library.SaveBlock(string(kind), oldBlock)
		}
		e.library.SaveIndex(string(kind))
	}
	if err := e.library.Flush(); err != nil {
		e.metrics.FlushFailed()
		slog.ErrorContext(ctx, "writing committed prototype", "kind", kind, "vnum", vnum, "error", err)
	}

	if hookErr != nil {
		return live, fmt.Errorf("after committing %s %d: %w", kind, vnum, hookErr)
	}

	e.metrics.Committed(string(kind))
	slog.InfoContext(ctx, "committed prototype", "kind", kind, "vnum", vnum, "by", s.Name(), "created", !existed)
	return live, nil
}

// Abort discards the session's buffer.
func (e *Editor) Abort(ctx context.Context, s *Session) error {
	kind, vnum, ok := s.Editing()
	if !ok {
		return commands.NewUserError("You aren't editing anything.")
	}
	s.close()
	slog.InfoContext(ctx, "aborted edit", "kind", kind, "vnum", vnum, "by", s.Name())
	return nil
}

// Apply runs a field module on the session's buffer.
func (e *Editor) Apply(s *Session, name, args string) (string, error) {
	buf := s.buffer
	if buf == nil {
		return "", commands.NewUserError("You aren't editing anything.")
	}
	ke, err := e.kind(buf.Kind())
	if err != nil {
		return "", err
	}
	m, ok := ke.modules[name]
	if !ok {
		return "", commands.NewUserErrorf("There is no %s option when editing a %s.", name, buf.Kind())
	}
	return m(e, buf, args)
}

// Show summarizes p.
func (e *Editor) Show(p game.Prototype) []string {
	ke, ok := e.kinds[p.Kind()]
	if !ok || ke.show == nil {
		return []string{fmt.Sprintf("[%d] %s", p.Vnum(), p.Label())}
	}
	return ke.show(e, p)
}

func commitEvent(_ context.Context, _ *Editor, live game.Prototype) error {
	live.(*game.Event).Version++
	return nil
}

// commitGeneric rebuilds relations and drops languages and currencies
// players can no longer hold.
func commitGeneric(ctx context.Context, e *Editor, _ game.Prototype) error {
	if err := game.ComputeGenericRelations(e.dict.Generics); err != nil {
		return fmt.Errorf("recomputing generic relations: %w", err)
	}

	isType := func(t game.GenericType) func(storage.Vnum) bool {
		return func(v storage.Vnum) bool {
			_, ok := e.dict.FindGeneric(v, t)
			return ok
		}
	}
	dropped := 0
	e.world.ForEachPlayer(func(p *world.Player) {
		dropped += p.CheckLanguages(isType(game.GenericLanguage))
		dropped += p.CheckCurrencies(isType(game.GenericCurrency))
	})
	if dropped > 0 {
		slog.InfoContext(ctx, "dropped stale player generics", "count", dropped)
	}
	return nil
}
