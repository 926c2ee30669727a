package game

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-olc/internal/storage"
)

const (
	DefaultGlobalName = "Unnamed Global"

	NumGlobalValues = 3
)

// GlobalType is what a global rule applies to.
type GlobalType int

const (
	GlobalMobInteractions GlobalType = iota
	GlobalMineData
	GlobalNewbieGear
	GlobalMapSpawns
)

var GlobalTypeNames = TypeNames{"mob-interactions", "mine-data", "newbie-gear", "map-spawns"}

// AllowsInteraction reports whether interactions of type t make sense on a
// global of this type. Types without interactions allow none.
func (t GlobalType) AllowsInteraction(it InteractionType) bool {
	switch t {
	case GlobalMobInteractions:
		return it == InteractShear || it == InteractLoot || it == InteractPickpocket
	case GlobalMineData:
		return it == InteractMine
	}
	return false
}

const (
	GlobalInDevelopment Flags = 1 << iota
	GlobalAdventureOnly
	GlobalCumulativePercent
	GlobalChooseLast
)

var GlobalFlagNames = FlagNames{"in-development", "adventure-only", "cumulative-percent", "choose-last"}

// GearItem is one object handed to new characters.
type GearItem struct {
	Wear string       `json:"wear,omitempty"`
	Vnum storage.Vnum `json:"vnum"`
}

type Gear []GearItem

func (g Gear) Copy() Gear {
	return slices.Clone(g)
}

// GlobalRule applies interactions, gear or spawns across many prototypes at
// once.
type GlobalRule struct {
	vnum storage.Vnum

	Name         string               `json:"name"`
	Type         GlobalType           `json:"type"`
	Flags        Flags                `json:"flags"`
	TypeFlags    Flags                `json:"type_flags"`
	TypeExclude  Flags                `json:"type_exclude"`
	MinLevel     int                  `json:"min_level"`
	MaxLevel     int                  `json:"max_level"`
	Percent      float64              `json:"percent"`
	Values       [NumGlobalValues]int `json:"values"`
	Interactions Interactions         `json:"interactions"`
	Gear         Gear                 `json:"gear"`
	Spawns       Spawns               `json:"spawns"`
}

func NewGlobalRule(vnum storage.Vnum) *GlobalRule {
	return &GlobalRule{
		vnum:    vnum,
		Name:    DefaultGlobalName,
		Flags:   GlobalInDevelopment,
		Percent: 100,
	}
}

func (g *GlobalRule) Vnum() storage.Vnum     { return g.vnum }
func (g *GlobalRule) SetVnum(v storage.Vnum) { g.vnum = v }
func (g *GlobalRule) Kind() Kind             { return KindGlobal }
func (g *GlobalRule) Label() string          { return g.Name }

func (g *GlobalRule) InDevelopment() bool      { return g.Flags.Has(GlobalInDevelopment) }
func (g *GlobalRule) SetInDevelopment(on bool) { g.Flags.SetTo(GlobalInDevelopment, on) }

func (g *GlobalRule) Clone() *GlobalRule {
	c := *g
	c.Interactions = g.Interactions.Copy()
	c.Gear = g.Gear.Copy()
	c.Spawns = g.Spawns.Copy()
	return &c
}

func (g *GlobalRule) Sanitize() {
	g.Name = defaultIfBlank(g.Name, DefaultGlobalName)
}

func (g *GlobalRule) Validate() error {
	el := errors.NewErrorList()

	if g.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	if !GlobalTypeNames.Valid(int(g.Type)) {
		el.Add(fmt.Errorf("unknown global type %d", g.Type))
	}
	if g.Percent < 0 || g.Percent > 100 {
		el.Add(fmt.Errorf("percent out of range: %.2f", g.Percent))
	}

	return el.Err()
}
