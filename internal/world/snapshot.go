package world

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-olc/internal/storage"
)

// Snapshot is the on-disk form of a world, used to seed a server that runs
// without the rest of the game attached.
type Snapshot struct {
	Rooms     []*Room         `json:"rooms"`
	Objects   []*Object       `json:"objects"`
	Vehicles  []*Vehicle      `json:"vehicles"`
	Players   []*Player       `json:"players"`
	Instances []*Instance     `json:"instances"`
	Events    []*RunningEvent `json:"events"`
}

func (s *Snapshot) Validate() error {
	el := errors.NewErrorList()

	seen := map[storage.Vnum]bool{}
	for i, r := range s.Rooms {
		if r == nil {
			el.Add(fmt.Errorf("room %d is empty", i))
			continue
		}
		if seen[r.Vnum] {
			el.Add(fmt.Errorf("room %d listed twice", r.Vnum))
		}
		seen[r.Vnum] = true
	}
	for i, p := range s.Players {
		if p == nil || p.Name == "" {
			el.Add(fmt.Errorf("player %d has no name", i))
		}
	}

	return el.Err()
}

// LoadSnapshot builds a world from the snapshot file at path.
func LoadSnapshot(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading world snapshot: %w", err)
	}

	var snap Snapshot
	err = json.Unmarshal(data, &snap)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling world snapshot: %w", err)
	}

	err = snap.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating world snapshot: %w", err)
	}

	return FromSnapshot(&snap), nil
}

// FromSnapshot builds a world holding the snapshot's contents.
func FromSnapshot(snap *Snapshot) *World {
	w := New()

	for _, r := range snap.Rooms {
		w.rooms[r.Vnum] = r
	}
	w.objects = append(w.objects, snap.Objects...)
	w.vehicles = append(w.vehicles, snap.Vehicles...)
	for _, p := range snap.Players {
		if p.Languages == nil {
			p.Languages = map[storage.Vnum]LanguageLevel{}
		}
		if p.Currencies == nil {
			p.Currencies = map[storage.Vnum]int{}
		}
		if p.EventPoints == nil {
			p.EventPoints = map[storage.Vnum]int{}
		}
		w.players[p.Name] = p
	}
	for _, inst := range snap.Instances {
		w.instances[inst.ID] = inst
		if inst.ID >= w.nextInstance {
			w.nextInstance = inst.ID + 1
		}
	}
	for _, ev := range snap.Events {
		w.running[ev.Event] = ev
	}

	return w
}
