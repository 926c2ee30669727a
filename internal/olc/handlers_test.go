package olc

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pixil98/go-olc/internal/audit"
	"github.com/pixil98/go-olc/internal/cascade"
	"github.com/pixil98/go-olc/internal/commands"
	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
	"github.com/pixil98/go-testutil"
)

func newManager(t *testing.T, f *fixture) *Manager {
	t.Helper()
	cmds := commands.NewHandler()
	deleter := cascade.NewDeleter(f.dict, f.w, f.lib, cascade.WithSessions(f.dir))
	m, err := NewManager(cmds, f.dict, f.editor, deleter, audit.New(f.dict), f.dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cmds.Add(DefaultCommands()...); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m
}

// exec runs each line and returns everything the session was sent.
func exec(t *testing.T, m *Manager, s *Session, out *bytes.Buffer, lines ...string) (string, error) {
	t.Helper()
	out.Reset()
	for _, line := range lines {
		if err := m.cmds.Exec(context.Background(), s, line); err != nil {
			return out.String(), err
		}
	}
	return out.String(), nil
}

func TestManager_EditAndSave(t *testing.T) {
	f := newFixture(t)
	m := newManager(t, f)
	s, out := f.open("Ann")

	got, err := exec(t, m, s, out, "edit building 5100", "name Great Hall", "sa")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "creating", strings.Contains(got, "You are creating building 5100."), true)
	testutil.AssertEqual(t, "name", strings.Contains(got, "Name set to: Great Hall"), true)
	testutil.AssertEqual(t, "saved", strings.Contains(got, "Saved building 5100."), true)
	b, ok := f.dict.Buildings.Find(5100)
	testutil.AssertEqual(t, "stored", ok, true)
	testutil.AssertEqual(t, "stored name", b.Name, "Great Hall")
}

func TestManager_UserErrors(t *testing.T) {
	tests := map[string]struct {
		lines  []string
		expErr string
	}{
		"unknown command": {
			lines:  []string{"frobnicate"},
			expErr: "Unknown command: frobnicate",
		},
		"save without editing": {
			lines:  []string{"save"},
			expErr: "You aren't editing anything.",
		},
		"module without editing": {
			lines:  []string{"title Nope"},
			expErr: "You aren't editing anything.",
		},
		"module not for kind": {
			lines:  []string{"edit shop 1", "icon [  ]"},
			expErr: "There is no icon option when editing a shop.",
		},
		"bad kind": {
			lines:  []string{"edit dragon 1"},
			expErr: `Unknown type "dragon".`,
		},
		"show missing": {
			lines:  []string{"show sector 42"},
			expErr: "There is no sector with that vnum.",
		},
		"show kind only": {
			lines:  []string{"show sector"},
			expErr: "Which sector?",
		},
		"search missing": {
			lines:  []string{"search building 42"},
			expErr: "There is no building with that vnum.",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			m := newManager(t, f)
			s, out := f.open("Ann")

			_, err := exec(t, m, s, out, tc.lines...)
			testutil.AssertErrorContains(t, err, tc.expErr)
		})
	}
}

func TestManager_Delete(t *testing.T) {
	tests := map[string]struct {
		answer    string
		expGone   bool
		expOutput string
	}{
		"confirmed": {
			answer:    "yes",
			expGone:   true,
			expOutput: "Building 5100 (Old Mill) deleted.",
		},
		"declined": {
			answer:    "n",
			expGone:   false,
			expOutput: "Cancelled.",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			mill := game.NewBuilding(5100)
			mill.Name = "Old Mill"
			f.dict.Buildings.Insert(mill)
			upgrade := game.NewBuilding(5101)
			upgrade.Relations.Add(game.RelationUpgradesTo, 5100)
			f.dict.Buildings.Insert(upgrade)
			m := newManager(t, f)

			bob, _ := f.open("Bob")
			f.editor.Begin(context.Background(), bob, game.KindBuilding, 5101)
			s, out := f.open("Ann", tc.answer)

			got, err := exec(t, m, s, out, "delete building 5100")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "prompt", strings.Contains(got, "Really delete building 5100?"), true)
			testutil.AssertEqual(t, "output", strings.Contains(got, tc.expOutput), true)
			testutil.AssertEqual(t, "gone", !f.dict.Buildings.Has(5100), tc.expGone)
			testutil.AssertEqual(t, "bob notified", len(bob.Messages()) == 1, tc.expGone)
		})
	}
}

func TestManager_DeleteOpenElsewhere(t *testing.T) {
	f := newFixture(t)
	f.dict.Buildings.Insert(game.NewBuilding(5100))
	f.dict.Buildings.Insert(game.NewBuilding(5101))
	m := newManager(t, f)

	bob, _ := f.open("Bob")
	f.editor.Begin(context.Background(), bob, game.KindBuilding, 5100)
	s, out := f.open("Ann", "y")

	_, err := exec(t, m, s, out, "delete building 5100")
	testutil.AssertErrorContains(t, err, "Someone else is currently editing that building.")
	testutil.AssertEqual(t, "kept", f.dict.Buildings.Has(5100), true)
}

func TestManager_Search(t *testing.T) {
	f := newFixture(t)
	f.dict.Buildings.Insert(game.NewBuilding(5100))
	upgrade := game.NewBuilding(5101)
	upgrade.Name = "Mill"
	upgrade.Relations.Add(game.RelationUpgradesTo, 5100)
	f.dict.Buildings.Insert(upgrade)
	m := newManager(t, f)
	s, out := f.open("Ann")

	got, err := exec(t, m, s, out, "search building 5100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "header", strings.Contains(got, "1 reference to building 5100:"), true)
	testutil.AssertEqual(t, "ref", strings.Contains(got, "[ 5101] Mill"), true)

	got, _ = exec(t, m, s, out, "search building 5101")
	testutil.AssertEqual(t, "none", strings.Contains(got, "Nothing refers to building 5101."), true)
}

func TestManager_ListAndWho(t *testing.T) {
	f := newFixture(t)
	for i, name := range []string{"wheat", "barley", "wild wheat"} {
		c := game.NewCrop(storage.Vnum(i + 1))
		c.Name = name
		f.dict.Crops.Insert(c)
	}
	m := newManager(t, f)
	s, out := f.open("Ann")
	bob, _ := f.open("Bob")
	f.editor.Begin(context.Background(), bob, game.KindCrop, 2)

	got, err := exec(t, m, s, out, "list crop wheat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "wheat", strings.Contains(got, "[    1] wheat"), true)
	testutil.AssertEqual(t, "wild wheat", strings.Contains(got, "[    3] wild wheat"), true)
	testutil.AssertEqual(t, "barley filtered", strings.Contains(got, "barley"), false)

	got, _ = exec(t, m, s, out, "who")
	testutil.AssertEqual(t, "ann idle", strings.Contains(got, "Ann"), true)
	testutil.AssertEqual(t, "bob editing", strings.Contains(got, "editing crop 2"), true)
}

func TestManager_Audit(t *testing.T) {
	f := newFixture(t)
	clean := game.NewCrop(1)
	clean.Name = "wheat"
	f.dict.Crops.Insert(clean)
	loud := game.NewCrop(2)
	loud.Name = "Wheat"
	f.dict.Crops.Insert(loud)
	m := newManager(t, f)
	s, out := f.open("Ann")

	got, err := exec(t, m, s, out, "audit crop")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "summary", strings.Contains(got, "Audited 2 crops, 2 flagged."), true)
	testutil.AssertEqual(t, "finding", strings.Contains(got, "[    2] Non-lowercase name"), true)

	got, _ = exec(t, m, s, out, "edit crop 2", "audit")
	testutil.AssertEqual(t, "buffer", strings.Contains(got, "problem: Non-lowercase name"), true)
}
