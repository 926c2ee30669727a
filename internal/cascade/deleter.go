package cascade

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/pixil98/go-olc/internal/commands"
	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/journal"
	"github.com/pixil98/go-olc/internal/metrics"
	"github.com/pixil98/go-olc/internal/policy"
	"github.com/pixil98/go-olc/internal/storage"
	"github.com/pixil98/go-olc/internal/world"
)

const (
	// DefaultFallbackLiquid is the generic drink containers fall back to
	// when their liquid is deleted.
	DefaultFallbackLiquid storage.Vnum = 0

	DefaultNotice = "A {{ .Deleted }} related to the {{ .Editing }} you're editing was deleted."
)

// Buffer is an open editing session as the deleter sees it.
type Buffer interface {
	// Prototype returns the detached copy being edited, or nil.
	Prototype() game.Prototype
	Notify(msg string)
}

// Sessions lists the open editing sessions.
type Sessions interface {
	ForEachOpen(fn func(Buffer))
}

type DeleterOpt func(*Deleter)

func WithJournal(j *journal.Journal) DeleterOpt {
	return func(d *Deleter) {
		d.journal = j
	}
}

func WithPolicy(p *policy.Policy) DeleterOpt {
	return func(d *Deleter) {
		d.policy = p
	}
}

func WithSessions(s Sessions) DeleterOpt {
	return func(d *Deleter) {
		d.sessions = s
	}
}

func WithMetrics(m *metrics.Metrics) DeleterOpt {
	return func(d *Deleter) {
		d.metrics = m
	}
}

func WithFallbackLiquid(v storage.Vnum) DeleterOpt {
	return func(d *Deleter) {
		d.fallbackLiquid = v
	}
}

// WithReplacementSector sets the sector rooms take when theirs is deleted.
// Without it the lowest remaining sector is used.
func WithReplacementSector(v storage.Vnum) DeleterOpt {
	return func(d *Deleter) {
		d.replacementSector = v
	}
}

func WithRegistry(r *Registry) DeleterOpt {
	return func(d *Deleter) {
		d.registry = r
	}
}

// WithNotice sets the template sent to sessions whose buffer lost a
// reference. It sees .Deleted and .Editing.
func WithNotice(tmpl string) DeleterOpt {
	return func(d *Deleter) {
		d.notice = tmpl
	}
}

// Ref is one stored reference to a prototype.
type Ref struct {
	Kind  game.Kind    `json:"kind" yaml:"kind"`
	Vnum  storage.Vnum `json:"vnum" yaml:"vnum"`
	Name  string       `json:"name" yaml:"name"`
	Field string       `json:"field" yaml:"field"`
}

// Result summarizes a finished delete.
type Result struct {
	Kind game.Kind
	Vnum storage.Vnum
	Name string

	// World counts repaired live rooms, objects, vehicles and instances.
	World int
	// Changed lists every stored prototype that lost a reference.
	Changed []Ref
	// Notified counts open buffers that lost a reference.
	Notified int
	// Flushed is false when the library still has writes queued.
	Flushed bool
}

// Deleter removes prototypes and everything that refers to them.
type Deleter struct {
	dict    *game.Dictionary
	world   *world.World
	library *storage.Library

	registry *Registry
	policy   *policy.Policy
	journal  *journal.Journal
	sessions Sessions
	metrics  *metrics.Metrics

	fallbackLiquid    storage.Vnum
	replacementSector storage.Vnum
	notice            string
}

func NewDeleter(dict *game.Dictionary, w *world.World, lib *storage.Library, opts ...DeleterOpt) *Deleter {
	d := &Deleter{
		dict:              dict,
		world:             w,
		library:           lib,
		registry:          DefaultRegistry(),
		policy:            policy.Default(),
		fallbackLiquid:    DefaultFallbackLiquid,
		replacementSector: storage.Nothing,
		notice:            DefaultNotice,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Delete removes kind/vnum on behalf of the session editing through by,
// which may be nil. Rejections are user errors and change nothing. Once the
// prototype leaves its store the delete stands: later failures are logged
// and left for the journal and the next flush.
func (d *Deleter) Delete(ctx context.Context, kind game.Kind, vnum storage.Vnum, by Buffer) (*Result, error) {
	if !slices.Contains(game.ContentKinds, kind) {
		return nil, commands.NewUserError(fmt.Sprintf("You can't delete a %s from here.", kind))
	}

	proto, ok := d.dict.Lookup(kind, vnum)
	if !ok {
		return nil, commands.NewUserError(fmt.Sprintf("There is no %s with that vnum.", kind))
	}

	if d.dict.Count(kind) <= d.policy.MinimumCount(kind) {
		d.metrics.DeleteRejected(string(kind))
		return nil, commands.NewUserError(fmt.Sprintf("You can't delete the last %s.", kind))
	}

	if err := d.checkEditors(kind, vnum, by); err != nil {
		d.metrics.DeleteRejected(string(kind))
		return nil, err
	}

	var entry *journal.Entry
	if d.journal != nil {
		var err error
		entry, err = d.journal.Begin(kind, vnum)
		if err != nil {
			return nil, err
		}
	}

	d.dict.Remove(kind, vnum)
	slog.InfoContext(ctx, "deleting prototype", "kind", kind, "vnum", vnum, "name", proto.Label())

	return d.cascade(ctx, kind, vnum, proto, entry), nil
}

// Replay reruns the cascade of every delete a previous run journaled but
// never saw flushed. Repairs that already happened find nothing to do.
func (d *Deleter) Replay(ctx context.Context) (int, error) {
	if d.journal == nil {
		return 0, nil
	}

	entries, err := d.journal.Entries()
	if err != nil {
		return 0, fmt.Errorf("reading delete journal: %w", err)
	}

	for _, e := range entries {
		proto, _ := d.dict.Remove(e.Kind, e.Vnum)
		slog.WarnContext(ctx, "replaying journaled delete", "kind", e.Kind, "vnum", e.Vnum, "state", e.State, "started", e.Started)
		d.cascade(ctx, e.Kind, e.Vnum, proto, e)
	}

	return len(entries), nil
}

// Settle retries queued library writes and clears the journal entries they
// were holding open.
func (d *Deleter) Settle(ctx context.Context) error {
	if d.library.Pending() > 0 {
		if err := d.library.Flush(); err != nil {
			d.metrics.FlushFailed()
			return fmt.Errorf("flushing library: %w", err)
		}
	}
	d.settleJournal(ctx)
	return nil
}

// cascade runs every repair for a prototype that has already left its store.
// proto is nil when a replayed delete finds it already gone.
func (d *Deleter) cascade(ctx context.Context, kind game.Kind, vnum storage.Vnum, proto game.Prototype, entry *journal.Entry) *Result {
	del := &Deleted{
		Kind:           kind,
		Vnum:           vnum,
		Proto:          proto,
		FallbackLiquid: d.fallbackLiquid,
		Sector:         d.sectorFor(kind, vnum),
		Policy:         d.policy,
	}
	if kind == game.KindGeneric && vnum == d.fallbackLiquid {
		del.FallbackLiquid = storage.Nothing
	}

	res := &Result{Kind: kind, Vnum: vnum}
	if proto != nil {
		res.Name = proto.Label()
	}

	for _, fn := range d.registry.world[kind] {
		res.World += fn(d.dict, d.world, del)
	}

	touched := map[game.Kind]map[int]bool{kind: {}}
	if proto != nil {
		touched[kind][game.BlockOf(proto)] = true
	}

	rules := d.registry.Rules(kind)
	for _, rl := range rules {
		n := 0
		for _, p := range d.dict.All(rl.Source) {
			if !rl.Strip(p, del) {
				continue
			}
			d.markInDevelopment(p, kind)
			res.Changed = append(res.Changed, Ref{Kind: p.Kind(), Vnum: p.Vnum(), Name: p.Label(), Field: rl.Field})
			if touched[rl.Source] == nil {
				touched[rl.Source] = map[int]bool{}
			}
			touched[rl.Source][game.BlockOf(p)] = true
			n++
		}
		d.metrics.Repaired(string(rl.Source), n)
	}

	if d.sessions != nil {
		d.sessions.ForEachOpen(func(b Buffer) {
			if d.repairBuffer(ctx, b, rules, del) {
				res.Notified++
			}
		})
	}

	for _, fn := range d.registry.refresh[kind] {
		if err := fn(d.dict, d.world, del); err != nil {
			slog.ErrorContext(ctx, "refreshing after delete", "kind", kind, "vnum", vnum, "error", err)
		}
	}

	kinds := make([]game.Kind, 0, len(touched))
	for k, blocks := range touched {
		kinds = append(kinds, k)
		for b := range blocks {
			d.library.SaveBlock(string(k), b)
		}
		d.library.SaveIndex(string(k))
	}
	slices.Sort(kinds)

	if entry != nil {
		if err := d.journal.Repaired(entry, kinds); err != nil {
			slog.ErrorContext(ctx, "journaling delete", "kind", kind, "vnum", vnum, "error", err)
		}
	}

	if err := d.library.Flush(); err != nil {
		d.metrics.FlushFailed()
		slog.ErrorContext(ctx, "persisting delete", "kind", kind, "vnum", vnum, "error", err)
	} else {
		res.Flushed = true
		d.settleJournal(ctx)
	}

	d.metrics.Deleted(string(kind))
	slog.InfoContext(ctx, "deleted prototype",
		"kind", kind, "vnum", vnum, "world", res.World, "changed", len(res.Changed), "notified", res.Notified, "flushed", res.Flushed)

	// Nothing reads the old fields past this point.
	del.Proto = nil

	return res
}

// repairBuffer strips the deleted prototype from an open buffer and tells
// its owner.
func (d *Deleter) repairBuffer(ctx context.Context, b Buffer, rules []Rule, del *Deleted) bool {
	p := b.Prototype()
	if p == nil {
		return false
	}

	changed := false
	for _, rl := range rules {
		if rl.Source == p.Kind() && rl.Strip(p, del) {
			changed = true
		}
	}
	if !changed {
		return false
	}

	d.markInDevelopment(p, del.Kind)

	msg, err := commands.ExpandTemplate(d.notice, struct {
		Deleted game.Kind
		Editing game.Kind
	}{del.Kind, p.Kind()})
	if err != nil {
		slog.WarnContext(ctx, "expanding delete notice", "error", err)
		msg = fmt.Sprintf("A %s related to the %s you're editing was deleted.", del.Kind, p.Kind())
	}
	b.Notify(msg)
	return true
}

func (d *Deleter) checkEditors(kind game.Kind, vnum storage.Vnum, by Buffer) error {
	if by != nil && editing(by, kind, vnum) {
		return commands.NewUserError(fmt.Sprintf("You can't delete the %s you're editing.", kind))
	}
	if d.sessions == nil {
		return nil
	}

	busy := false
	d.sessions.ForEachOpen(func(b Buffer) {
		if b != by && editing(b, kind, vnum) {
			busy = true
		}
	})
	if busy {
		return commands.NewUserError(fmt.Sprintf("Someone else is currently editing that %s.", kind))
	}
	return nil
}

func editing(b Buffer, kind game.Kind, vnum storage.Vnum) bool {
	p := b.Prototype()
	return p != nil && p.Kind() == kind && p.Vnum() == vnum
}

func (d *Deleter) markInDevelopment(p game.Prototype, target game.Kind) {
	dev, ok := p.(game.Developable)
	if !ok || !d.policy.MarksInDevelopment(p.Kind(), target) {
		return
	}
	dev.SetInDevelopment(true)
}

// sectorFor picks the sector that replaces a deleted sector or crop.
func (d *Deleter) sectorFor(kind game.Kind, vnum storage.Vnum) storage.Vnum {
	if kind != game.KindSector && kind != game.KindCrop {
		return storage.Nothing
	}
	if d.replacementSector != vnum && d.dict.Sectors.Has(d.replacementSector) {
		return d.replacementSector
	}
	if s, ok := d.dict.Sectors.First(); ok {
		return s.Vnum()
	}
	return storage.Nothing
}

func (d *Deleter) settleJournal(ctx context.Context) {
	if d.journal == nil {
		return
	}

	n, err := d.journal.Settle()
	if err != nil {
		slog.ErrorContext(ctx, "settling delete journal", "error", err)
	} else if n > 0 {
		slog.DebugContext(ctx, "settled delete journal", "entries", n)
	}

	if entries, err := d.journal.Entries(); err == nil {
		d.metrics.JournalEntries(len(entries))
	}
}
