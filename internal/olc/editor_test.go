package olc

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
	"github.com/pixil98/go-olc/internal/world"
	"github.com/pixil98/go-testutil"
)

type scriptReader struct {
	lines []string
}

func (r *scriptReader) ReadLine() (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

type fixture struct {
	dict   *game.Dictionary
	w      *world.World
	lib    *storage.Library
	root   string
	dir    *Directory
	editor *Editor
}

func newFixture(t *testing.T, opts ...EditorOpt) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{
		dict: game.NewDictionary(),
		w:    world.New(),
		lib:  storage.NewLibrary(root),
		root: root,
		dir:  NewDirectory(nil),
	}
	for _, k := range game.AllKinds {
		tbl, _ := f.dict.Table(k)
		f.lib.Attach(tbl)
	}
	f.editor = NewEditor(f.dict, f.w, f.lib, f.dir, opts...)
	return f
}

// open starts a session whose confirmation prompts read answers.
func (f *fixture) open(name string, answers ...string) (*Session, *bytes.Buffer) {
	out := &bytes.Buffer{}
	s := f.dir.Open(context.Background(), name, &scriptReader{lines: answers}, out)
	return s, out
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestEditor_BeginExisting(t *testing.T) {
	f := newFixture(t)
	live := game.NewSector(10)
	live.Name = "Plains"
	f.dict.Sectors.Insert(live)
	s, _ := f.open("Ann")

	buf, err := f.editor.Begin(context.Background(), s, game.KindSector, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	buf.(*game.Sector).Name = "Changed"

	testutil.AssertEqual(t, "is new", s.IsNew(), false)
	testutil.AssertEqual(t, "live untouched", live.Name, "Plains")
	kind, vnum, ok := s.Editing()
	testutil.AssertEqual(t, "editing", ok, true)
	testutil.AssertEqual(t, "kind", kind, game.KindSector)
	testutil.AssertEqual(t, "vnum", vnum, storage.Vnum(10))
}

func TestEditor_BeginNewUsesFloor(t *testing.T) {
	f := newFixture(t, WithVnumFloor(game.KindBuilding, 5000))
	f.dict.Buildings.Insert(game.NewBuilding(5000))
	s, _ := f.open("Ann")

	buf, err := f.editor.Begin(context.Background(), s, game.KindBuilding, storage.Nothing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "vnum", buf.Vnum(), storage.Vnum(5001))
	testutil.AssertEqual(t, "is new", s.IsNew(), true)
	testutil.AssertEqual(t, "not stored yet", f.dict.Buildings.Has(5001), false)
}

func TestEditor_BeginNewSkipsOpenBuffers(t *testing.T) {
	f := newFixture(t, WithVnumFloor(game.KindBook, 5000))
	f.dict.Books.Insert(game.NewBook(5001))
	ann, _ := f.open("Ann")
	bob, _ := f.open("Bob")
	cat, _ := f.open("Cat")
	ctx := context.Background()

	first, err := f.editor.Begin(ctx, ann, game.KindBook, storage.Nothing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := f.editor.Begin(ctx, bob, game.KindBook, storage.Nothing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	third, err := f.editor.Begin(ctx, cat, game.KindBook, storage.Nothing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "ann", first.Vnum(), storage.Vnum(5000))
	testutil.AssertEqual(t, "bob", second.Vnum(), storage.Vnum(5002))
	testutil.AssertEqual(t, "cat", third.Vnum(), storage.Vnum(5003))
}

func TestEditor_BeginRejects(t *testing.T) {
	tests := map[string]struct {
		setup  func(f *fixture, s, other *Session)
		kind   game.Kind
		vnum   storage.Vnum
		expErr string
	}{
		"vnum out of range": {
			kind:   game.KindSector,
			vnum:   DefaultMaxVnum + 1,
			expErr: "Valid vnums are 0 to 999999.",
		},
		"already editing": {
			setup: func(f *fixture, s, _ *Session) {
				f.editor.Begin(context.Background(), s, game.KindCrop, 2)
			},
			kind:   game.KindSector,
			vnum:   1,
			expErr: "You are already editing something. Save or abort it first.",
		},
		"someone else editing": {
			setup: func(f *fixture, _, other *Session) {
				f.editor.Begin(context.Background(), other, game.KindSector, 1)
			},
			kind:   game.KindSector,
			vnum:   1,
			expErr: "Someone else is already editing that sector.",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			s, _ := f.open("Ann")
			other, _ := f.open("Bob")
			if tc.setup != nil {
				tc.setup(f, s, other)
			}

			_, err := f.editor.Begin(context.Background(), s, tc.kind, tc.vnum)
			testutil.AssertErrorContains(t, err, tc.expErr)
		})
	}
}

func TestEditor_CommitNew(t *testing.T) {
	f := newFixture(t)
	s, _ := f.open("Ann")
	ctx := context.Background()

	if _, err := f.editor.Begin(ctx, s, game.KindBuilding, 5100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.editor.Apply(s, "name", "Great Hall"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	live, err := f.editor.Commit(ctx, s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, ok := f.dict.Buildings.Find(5100)
	testutil.AssertEqual(t, "stored", ok, true)
	testutil.AssertEqual(t, "same pointer", stored == live, true)
	testutil.AssertEqual(t, "name", stored.Name, "Great Hall")
	_, _, editing := s.Editing()
	testutil.AssertEqual(t, "closed", editing, false)
	testutil.AssertEqual(t, "block written", fileExists(filepath.Join(f.root, "building", "51.json")), true)
	testutil.AssertEqual(t, "index written", fileExists(filepath.Join(f.root, "building", "index.json")), true)
	testutil.AssertEqual(t, "nothing pending", f.lib.Pending(), 0)
}

func TestEditor_CommitKeepsLivePointer(t *testing.T) {
	f := newFixture(t)
	live := game.NewCrop(7)
	f.dict.Crops.Insert(live)
	s, _ := f.open("Ann")
	ctx := context.Background()

	f.editor.Begin(ctx, s, game.KindCrop, 7)
	f.editor.Apply(s, "title", "a field of wheat")
	if _, err := f.editor.Commit(ctx, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := f.dict.Crops.Find(7)
	testutil.AssertEqual(t, "same pointer", stored == live, true)
	testutil.AssertEqual(t, "title", live.Title, "a field of wheat")
	testutil.AssertEqual(t, "vnum", live.Vnum(), storage.Vnum(7))
}

func TestEditor_CommitInvalid(t *testing.T) {
	f := newFixture(t)
	f.dict.Sectors.Insert(game.NewSector(1))
	s, _ := f.open("Ann")
	ctx := context.Background()

	buf, _ := f.editor.Begin(ctx, s, game.KindSector, 1)
	sect := buf.(*game.Sector)
	sect.Evolutions = append(sect.Evolutions, game.Evolution{Becomes: 1, Percent: 250})

	_, err := f.editor.Commit(ctx, s)
	testutil.AssertErrorContains(t, err, "Unable to save")

	_, _, editing := s.Editing()
	testutil.AssertEqual(t, "still editing", editing, true)
	stored, _ := f.dict.Sectors.Find(1)
	testutil.AssertEqual(t, "live untouched", len(stored.Evolutions), 0)
}

func TestEditor_CommitEventBumpsVersion(t *testing.T) {
	f := newFixture(t)
	s, _ := f.open("Ann")
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		if _, err := f.editor.Begin(ctx, s, game.KindEvent, 3); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := f.editor.Commit(ctx, s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ev, _ := f.dict.Events.Find(3)
		testutil.AssertEqual(t, "version", ev.Version, i)
	}
}

func TestEditor_CommitHookFailureStillWrites(t *testing.T) {
	f := newFixture(t)
	f.editor.kinds[game.KindBuilding].committed = func(context.Context, *Editor, game.Prototype) error {
		return errors.New("recompute failed")
	}
	s, _ := f.open("Ann")
	ctx := context.Background()

	if _, err := f.editor.Begin(ctx, s, game.KindBuilding, 5100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.editor.Apply(s, "name", "Great Hall")
	live, err := f.editor.Commit(ctx, s)

	testutil.AssertErrorContains(t, err, "after committing building 5100: recompute failed")
	testutil.AssertEqual(t, "live returned", live != nil, true)
	testutil.AssertEqual(t, "stored", f.dict.Buildings.Has(5100), true)
	testutil.AssertEqual(t, "block written", fileExists(filepath.Join(f.root, "building", "51.json")), true)
	testutil.AssertEqual(t, "index written", fileExists(filepath.Join(f.root, "building", "index.json")), true)
	testutil.AssertEqual(t, "nothing pending", f.lib.Pending(), 0)
}

func TestEditor_CommitBookAuthorMove(t *testing.T) {
	f := newFixture(t)
	s, _ := f.open("Ann")
	ctx := context.Background()

	f.editor.Begin(ctx, s, game.KindBook, 40)
	f.editor.Apply(s, "author", "1")
	if _, err := f.editor.Commit(ctx, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "first author block", fileExists(filepath.Join(f.root, "book", "1.json")), true)

	f.editor.Begin(ctx, s, game.KindBook, 40)
	f.editor.Apply(s, "author", "2")
	if _, err := f.editor.Commit(ctx, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "old block removed", fileExists(filepath.Join(f.root, "book", "1.json")), false)
	testutil.AssertEqual(t, "new block", fileExists(filepath.Join(f.root, "book", "2.json")), true)
}

func TestEditor_CommitGenericRecomputes(t *testing.T) {
	f := newFixture(t)
	f.dict.Generics.Insert(game.NewGeneric(1))
	f.dict.Generics.Insert(game.NewGeneric(2))
	s, _ := f.open("Ann")
	ctx := context.Background()

	f.editor.Begin(ctx, s, game.KindGeneric, 1)
	if _, err := f.editor.Apply(s, "relation", "add 2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.editor.Commit(ctx, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g, _ := f.dict.Generics.Find(1)
	testutil.AssertEqual(t, "computed", g.ComputedRelations().Has(2), true)
}

func TestEditor_Copy(t *testing.T) {
	tests := map[string]struct {
		from   storage.Vnum
		to     storage.Vnum
		expErr string
		expTo  storage.Vnum
	}{
		"missing source": {
			from:   99,
			to:     20,
			expErr: "There is no crop with that vnum.",
		},
		"target taken": {
			from:   10,
			to:     11,
			expErr: "There is already a crop with that vnum.",
		},
		"explicit target": {
			from:  10,
			to:    20,
			expTo: 20,
		},
		"next free target": {
			from:  10,
			to:    storage.Nothing,
			expTo: 0,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			src := game.NewCrop(10)
			src.Name = "wheat"
			src.Flags = 0
			f.dict.Crops.Insert(src)
			f.dict.Crops.Insert(game.NewCrop(11))
			s, _ := f.open("Ann")

			buf, err := f.editor.Copy(context.Background(), s, game.KindCrop, tc.from, tc.to)
			if tc.expErr != "" {
				testutil.AssertErrorContains(t, err, tc.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			crop := buf.(*game.Crop)
			testutil.AssertEqual(t, "vnum", crop.Vnum(), tc.expTo)
			testutil.AssertEqual(t, "name", crop.Name, "wheat")
			testutil.AssertEqual(t, "in dev", crop.InDevelopment(), true)
			testutil.AssertEqual(t, "source untouched", src.InDevelopment(), false)
			testutil.AssertEqual(t, "is new", s.IsNew(), true)
		})
	}
}

func TestEditor_Abort(t *testing.T) {
	f := newFixture(t)
	s, _ := f.open("Ann")
	ctx := context.Background()

	err := f.editor.Abort(ctx, s)
	testutil.AssertErrorContains(t, err, "You aren't editing anything.")

	f.editor.Begin(ctx, s, game.KindGlobal, 4)
	if err := f.editor.Abort(ctx, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, _, editing := s.Editing()
	testutil.AssertEqual(t, "closed", editing, false)
	testutil.AssertEqual(t, "not created", f.dict.Globals.Has(4), false)
}

func TestEditor_ApplyUnknownModule(t *testing.T) {
	f := newFixture(t)
	s, _ := f.open("Ann")

	_, err := f.editor.Apply(s, "name", "x")
	testutil.AssertErrorContains(t, err, "You aren't editing anything.")

	f.editor.Begin(context.Background(), s, game.KindShop, 1)
	_, err = f.editor.Apply(s, "icon", "[  ]")
	testutil.AssertErrorContains(t, err, "There is no icon option when editing a shop.")
}
