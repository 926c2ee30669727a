package world

import (
	"slices"

	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
)

// LanguageLevel is how well a player knows a language.
type LanguageLevel int

const (
	LanguageUnknown LanguageLevel = iota
	LanguageRecognize
	LanguageSpeak
)

// ActiveQuest is a quest a player is on, with their own copy of its tasks.
type ActiveQuest struct {
	Quest   storage.Vnum      `json:"quest"`
	Version int               `json:"version"`
	Tasks   game.Requirements `json:"tasks"`
	// Progress holds how much of each task is done, by task index.
	Progress []int `json:"progress"`
}

// Player is the part of a logged-in character the content tables touch.
type Player struct {
	Name       string                         `json:"name"`
	Languages  map[storage.Vnum]LanguageLevel `json:"languages"`
	Currencies map[storage.Vnum]int           `json:"currencies"`
	// EventPoints is per event.
	EventPoints map[storage.Vnum]int `json:"event_points"`
	Quests      []*ActiveQuest       `json:"quests"`
}

func NewPlayer(name string) *Player {
	return &Player{
		Name:        name,
		Languages:   map[storage.Vnum]LanguageLevel{},
		Currencies:  map[storage.Vnum]int{},
		EventPoints: map[storage.Vnum]int{},
	}
}

// CheckLanguages drops every known language that valid rejects.
func (p *Player) CheckLanguages(valid func(storage.Vnum) bool) int {
	return dropKeys(p.Languages, valid)
}

// CheckCurrencies drops every currency that valid rejects.
func (p *Player) CheckCurrencies(valid func(storage.Vnum) bool) int {
	return dropKeys(p.Currencies, valid)
}

// DropEvent forgets the player's points for event vnum.
func (p *Player) DropEvent(vnum storage.Vnum) bool {
	if _, ok := p.EventPoints[vnum]; !ok {
		return false
	}
	delete(p.EventPoints, vnum)
	return true
}

// CheckQuests brings active quests in line with their prototypes: quests that
// no longer exist are dropped and tasks are replaced by the prototype's,
// keeping progress on tasks that survived.
func (p *Player) CheckQuests(lookup func(storage.Vnum) (*game.Quest, bool)) int {
	changed := 0

	p.Quests = slices.DeleteFunc(p.Quests, func(aq *ActiveQuest) bool {
		q, ok := lookup(aq.Quest)
		if !ok {
			changed++
			return true
		}
		if aq.refresh(q.Tasks) {
			changed++
		}
		return false
	})

	return changed
}

func (aq *ActiveQuest) refresh(tasks game.Requirements) bool {
	if slices.Equal(aq.Tasks, tasks) {
		return false
	}

	progress := make([]int, len(tasks))
	for i, t := range tasks {
		for j, old := range aq.Tasks {
			if old.Type == t.Type && old.Vnum == t.Vnum && j < len(aq.Progress) {
				progress[i] = aq.Progress[j]
				break
			}
		}
	}

	aq.Tasks = tasks.Copy()
	aq.Progress = progress
	return true
}

func dropKeys[V any](m map[storage.Vnum]V, valid func(storage.Vnum) bool) int {
	n := 0
	for v := range m {
		if !valid(v) {
			delete(m, v)
			n++
		}
	}
	return n
}
