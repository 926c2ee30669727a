package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-testutil"
)

func openJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("opening journal: %v", err)
	}
	t.Cleanup(func() { j.Close() })

	tick := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	j.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	return j
}

func TestJournal_Lifecycle(t *testing.T) {
	j := openJournal(t)

	e, err := j.Begin(game.KindBuilding, 5100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "state", e.State, StateStarted)

	entries, err := j.Entries()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "entries", len(entries), 1)
	testutil.AssertEqual(t, "vnum", int(entries[0].Vnum), 5100)

	err = j.Repaired(e, []game.Kind{game.KindBuilding, game.KindCraft})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, _ = j.Entries()
	testutil.AssertEqual(t, "repaired", entries[0].State, StateRepaired)
	testutil.AssertEqual(t, "touched", len(entries[0].Touched), 2)

	err = j.Complete(e.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries, _ = j.Entries()
	testutil.AssertEqual(t, "after complete", len(entries), 0)
}

func TestJournal_SettleKeepsStarted(t *testing.T) {
	j := openJournal(t)

	stuck, _ := j.Begin(game.KindSector, 1)
	done, _ := j.Begin(game.KindGeneric, 9000)
	if err := j.Repaired(done, []game.Kind{game.KindGeneric}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n, err := j.Settle()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "settled", n, 1)

	entries, _ := j.Entries()
	testutil.AssertEqual(t, "left", len(entries), 1)
	testutil.AssertEqual(t, "left id", entries[0].ID, stuck.ID)
}

func TestJournal_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := Open(path)
	if err != nil {
		t.Fatalf("opening journal: %v", err)
	}
	e, _ := j.Begin(game.KindCrop, 30)
	j.Close()

	j, err = Open(path)
	if err != nil {
		t.Fatalf("reopening journal: %v", err)
	}
	defer j.Close()

	entries, err := j.Entries()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "entries", len(entries), 1)
	testutil.AssertEqual(t, "id", entries[0].ID, e.ID)
	testutil.AssertEqual(t, "kind", entries[0].Kind, game.KindCrop)
}

func TestOpen_BadPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "journal.db"))
	testutil.AssertErrorContains(t, err, "opening delete journal")
}
