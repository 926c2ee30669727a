package game

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-olc/internal/storage"
)

const (
	DefaultAdventureName        = "Unnamed Adventure Zone"
	DefaultAdventureAuthor      = "Unknown"
	DefaultAdventureDescription = "This new adventure zone has no description.\r\n"
	DefaultAdventureResetTime   = 30

	// HighMaxInstances is where the audit starts to complain.
	HighMaxInstances = 50
)

const (
	AdventureInDevelopment Flags = 1 << iota
	AdventureLockLevelOnEnter
	AdventureLockLevelOnCombat
	AdventureNoNearby
	AdventureRotatable
	AdventureConfusingRandoms
	AdventureNoNewbie
	AdventureNewbieOnly
)

var AdventureFlagNames = FlagNames{
	"in-development", "lock-level-on-enter", "lock-level-on-combat", "no-nearby",
	"rotatable", "confusing-randoms", "no-newbie", "newbie-only",
}

// LinkType is how an adventure instance attaches to the world.
type LinkType int

const (
	LinkBuildingExisting LinkType = iota
	LinkBuildingNew
	LinkPortalWorld
	LinkPortalBuildingExisting
	LinkPortalBuildingNew
	LinkTimeLimit
	LinkNotNearSelf
)

var LinkTypeNames = TypeNames{
	"building-existing", "building-new", "portal-world",
	"portal-building-existing", "portal-building-new", "time-limit", "not-near-self",
}

// Target returns the table a link rule's value points into.
func (t LinkType) Target() Kind {
	switch t {
	case LinkBuildingExisting, LinkBuildingNew, LinkPortalBuildingExisting, LinkPortalBuildingNew:
		return KindBuilding
	case LinkPortalWorld:
		return KindSector
	}
	return ""
}

const (
	LinkClaimedOK Flags = 1 << iota
	LinkCityOnly
	LinkNoCity
)

var LinkFlagNames = FlagNames{"claimed-ok", "city-only", "no-city"}

type LinkRule struct {
	Type  LinkType `json:"type"`
	Flags Flags    `json:"flags,omitempty"`
	// Value is a building or sector vnum, or minutes for time limits.
	Value     int          `json:"value"`
	PortalIn  storage.Vnum `json:"portal_in,omitempty"`
	PortalOut storage.Vnum `json:"portal_out,omitempty"`
}

type LinkRules []LinkRule

func (ls LinkRules) Copy() LinkRules {
	return slices.Clone(ls)
}

func (ls LinkRules) HasRef(kind Kind, vnum storage.Vnum) bool {
	return slices.ContainsFunc(ls, func(l LinkRule) bool {
		return l.Type.Target() == kind && storage.Vnum(l.Value) == vnum
	})
}

func (ls *LinkRules) RemoveRef(kind Kind, vnum storage.Vnum) bool {
	before := len(*ls)
	*ls = slices.DeleteFunc(*ls, func(l LinkRule) bool {
		return l.Type.Target() == kind && storage.Vnum(l.Value) == vnum
	})
	return len(*ls) != before
}

// Adventure is an instanced zone template covering a vnum range.
type Adventure struct {
	vnum storage.Vnum

	Name         string       `json:"name"`
	Author       string       `json:"author"`
	Description  string       `json:"description"`
	StartVnum    storage.Vnum `json:"start_vnum"`
	EndVnum      storage.Vnum `json:"end_vnum"`
	MinLevel     int          `json:"min_level"`
	MaxLevel     int          `json:"max_level"`
	MaxInstances int          `json:"max_instances"`
	PlayerLimit  int          `json:"player_limit"`
	// ResetTime is in minutes.
	ResetTime int       `json:"reset_time"`
	Flags     Flags     `json:"flags"`
	Links     LinkRules `json:"links"`
	Scripts   Vnums     `json:"scripts"`
}

func NewAdventure(vnum storage.Vnum) *Adventure {
	return &Adventure{
		vnum:         vnum,
		Name:         DefaultAdventureName,
		Author:       DefaultAdventureAuthor,
		Description:  DefaultAdventureDescription,
		MaxInstances: 1,
		ResetTime:    DefaultAdventureResetTime,
		Flags:        AdventureInDevelopment,
	}
}

func (a *Adventure) Vnum() storage.Vnum     { return a.vnum }
func (a *Adventure) SetVnum(v storage.Vnum) { a.vnum = v }
func (a *Adventure) Kind() Kind             { return KindAdventure }
func (a *Adventure) Label() string          { return a.Name }

func (a *Adventure) InDevelopment() bool      { return a.Flags.Has(AdventureInDevelopment) }
func (a *Adventure) SetInDevelopment(on bool) { a.Flags.SetTo(AdventureInDevelopment, on) }

// Contains reports whether vnum falls in the adventure's range.
func (a *Adventure) Contains(vnum storage.Vnum) bool {
	return vnum >= a.StartVnum && vnum <= a.EndVnum
}

func (a *Adventure) Clone() *Adventure {
	c := *a
	c.Links = a.Links.Copy()
	c.Scripts = a.Scripts.Copy()
	return &c
}

func (a *Adventure) Sanitize() {
	a.Name = defaultIfBlank(a.Name, DefaultAdventureName)
	a.Author = defaultIfBlank(a.Author, DefaultAdventureAuthor)
	a.Description = defaultIfBlank(a.Description, DefaultAdventureDescription)
}

func (a *Adventure) Validate() error {
	el := errors.NewErrorList()

	if a.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	if a.StartVnum < 0 || a.EndVnum < 0 {
		el.Add(fmt.Errorf("vnum range must not be negative"))
	}
	for i, l := range a.Links {
		if !LinkTypeNames.Valid(int(l.Type)) {
			el.Add(fmt.Errorf("link %d: unknown type %d", i, l.Type))
		}
	}

	return el.Err()
}

// AdventureFor returns the adventure whose range holds vnum.
func AdventureFor(adventures *storage.Store[*Adventure], vnum storage.Vnum) (*Adventure, bool) {
	for _, a := range adventures.All() {
		if a.Contains(vnum) {
			return a, true
		}
	}
	return nil, false
}
