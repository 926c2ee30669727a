package world

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
	"github.com/pixil98/go-testutil"
)

func roomVnums(w *World) string {
	var out []storage.Vnum
	w.ForEachRoom(func(r *Room) { out = append(out, r.Vnum) })
	return fmt.Sprint(out)
}

func TestWorld_ResetBuilding(t *testing.T) {
	w := New()
	home := &Room{Vnum: 1, Sector: 50, OriginalSector: 2, Crop: storage.Nothing, Building: 5100,
		Construction: &Construction{Remaining: game.Resources{{Type: game.ResourceObject, Vnum: 4000, Amount: 1}}}}
	w.AddRoom(home)
	w.AddRoom(&Room{Vnum: 1001, Building: 5101, Interior: true, HomeRoom: 1})
	w.AddRoom(&Room{Vnum: 1002, Building: 5101, Interior: true, HomeRoom: 9})
	w.AddRoom(&Room{Vnum: 9, Building: storage.Nothing})

	w.ResetBuilding(home)

	testutil.AssertEqual(t, "building", home.Building, storage.Nothing)
	testutil.AssertEqual(t, "sector", home.Sector, storage.Vnum(2))
	testutil.AssertEqual(t, "construction", home.UnderConstruction(), false)
	testutil.AssertEqual(t, "rooms", roomVnums(w), "[1 9 1002]")
}

func TestWorld_ForEachRoomAllowsMutation(t *testing.T) {
	w := New()
	w.AddRoom(&Room{Vnum: 1, Building: 10})
	w.AddRoom(&Room{Vnum: 2, Building: 10, Interior: true, HomeRoom: 1})

	visited := 0
	w.ForEachRoom(func(r *Room) {
		visited++
		if r.Building == 10 && !r.Interior {
			w.ResetBuilding(r)
		}
	})

	testutil.AssertEqual(t, "visited", visited, 2)
	testutil.AssertEqual(t, "rooms", roomVnums(w), "[1]")
}

func TestWorld_RemoveInstancesOf(t *testing.T) {
	w := New()
	a := w.StartInstance(10)
	b := w.StartInstance(10)
	c := w.StartInstance(11)
	w.AddRoom(&Room{Vnum: 10000, Instance: a})
	w.AddRoom(&Room{Vnum: 10001, Instance: b})
	w.AddRoom(&Room{Vnum: 11000, Instance: c})
	w.AddRoom(&Room{Vnum: 5})

	removed := w.RemoveInstancesOf(10)

	testutil.AssertEqual(t, "removed", removed, 2)
	testutil.AssertEqual(t, "left of 10", w.InstanceCount(10), 0)
	testutil.AssertEqual(t, "left of 11", w.InstanceCount(11), 1)
	testutil.AssertEqual(t, "rooms", roomVnums(w), "[5 11000]")
}

func TestWorld_Events(t *testing.T) {
	w := New()
	w.StartEvent(100, 3)

	testutil.AssertEqual(t, "running", w.EventRunning(100), true)
	testutil.AssertEqual(t, "cancel", w.CancelEvent(100), true)
	testutil.AssertEqual(t, "cancel again", w.CancelEvent(100), false)
	testutil.AssertEqual(t, "running after", w.EventRunning(100), false)
}

func TestWorld_Players(t *testing.T) {
	w := New()

	err := w.AddPlayer(NewPlayer("Ana"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = w.AddPlayer(NewPlayer("Ana"))
	testutil.AssertErrorContains(t, err, "already exists")

	err = w.RemovePlayer("Bo")
	testutil.AssertErrorContains(t, err, "not found")
	testutil.AssertEqual(t, "stats", w.Stats().Players, 1)
}

func TestPlayer_CheckLanguages(t *testing.T) {
	p := NewPlayer("Ana")
	p.Languages[1] = LanguageSpeak
	p.Languages[2] = LanguageRecognize
	p.Currencies[3] = 40

	dropped := p.CheckLanguages(func(v storage.Vnum) bool { return v == 1 })
	testutil.AssertEqual(t, "dropped", dropped, 1)
	testutil.AssertEqual(t, "kept", p.Languages[1], LanguageSpeak)
	_, ok := p.Languages[2]
	testutil.AssertEqual(t, "gone", ok, false)

	dropped = p.CheckCurrencies(func(storage.Vnum) bool { return false })
	testutil.AssertEqual(t, "currencies dropped", dropped, 1)
}

func TestPlayer_CheckQuests(t *testing.T) {
	quests := map[storage.Vnum]*game.Quest{}
	q := game.NewQuest(50)
	q.Tasks = game.Requirements{{Type: game.ReqVisitBuilding, Vnum: 5100, Needed: 1}}
	quests[50] = q

	p := NewPlayer("Ana")
	p.Quests = []*ActiveQuest{
		{
			Quest: 50,
			Tasks: game.Requirements{
				{Type: game.ReqGetComponent, Vnum: 9001, Needed: 4},
				{Type: game.ReqVisitBuilding, Vnum: 5100, Needed: 1},
			},
			Progress: []int{2, 1},
		},
		{Quest: 51},
	}

	changed := p.CheckQuests(func(v storage.Vnum) (*game.Quest, bool) {
		q, ok := quests[v]
		return q, ok
	})

	testutil.AssertEqual(t, "changed", changed, 2)
	testutil.AssertEqual(t, "quests", len(p.Quests), 1)
	testutil.AssertEqual(t, "tasks", len(p.Quests[0].Tasks), 1)
	testutil.AssertEqual(t, "progress kept", fmt.Sprint(p.Quests[0].Progress), "[1]")
}

func TestLoadSnapshot(t *testing.T) {
	tests := map[string]struct {
		data   string
		expErr string
		expLen int
	}{
		"valid": {
			data:   `{"rooms":[{"vnum":1,"sector":2,"building":-1,"crop":-1}],"players":[{"name":"Ana"}],"instances":[{"id":4,"adventure":10}]}`,
			expLen: 1,
		},
		"duplicate room": {
			data:   `{"rooms":[{"vnum":1},{"vnum":1}]}`,
			expErr: "room 1 listed twice",
		},
		"unnamed player": {
			data:   `{"players":[{}]}`,
			expErr: "player 0 has no name",
		},
		"bad json": {
			data:   `{`,
			expErr: "unmarshalling world snapshot",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "world.json")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatalf("writing snapshot: %v", err)
			}

			w, err := LoadSnapshot(path)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "rooms", w.Stats().Rooms, tt.expLen)
			testutil.AssertEqual(t, "player maps", w.Player("Ana").Languages != nil, true)
			testutil.AssertEqual(t, "next instance", w.StartInstance(10), 5)
		})
	}
}

func TestWorld_StripConstruction(t *testing.T) {
	tests := map[string]struct {
		remaining    game.Resources
		expStripped  bool
		expCompleted bool
	}{
		"last need": {
			remaining:    game.Resources{{Type: game.ResourceComponent, Vnum: 9001, Amount: 2}},
			expStripped:  true,
			expCompleted: true,
		},
		"other needs left": {
			remaining: game.Resources{
				{Type: game.ResourceComponent, Vnum: 9001, Amount: 2},
				{Type: game.ResourceObject, Vnum: 4000, Amount: 1},
			},
			expStripped: true,
		},
		"object with same vnum": {
			remaining: game.Resources{{Type: game.ResourceObject, Vnum: 9001, Amount: 1}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := New()
			r := &Room{Vnum: 1, Building: 5100, Construction: &Construction{Remaining: tt.remaining}}
			w.AddRoom(r)

			stripped, completed := w.StripConstruction(r, 9001)

			testutil.AssertEqual(t, "stripped", stripped, tt.expStripped)
			testutil.AssertEqual(t, "completed", completed, tt.expCompleted)
			testutil.AssertEqual(t, "under construction", r.UnderConstruction(), !tt.expCompleted)
		})
	}
}
