package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-olc/internal/storage"
)

const (
	DefaultBuildingName  = "Unnamed Building"
	DefaultBuildingTitle = "An Unnamed Building"
	DefaultBuildingIcon  = "&0[  ]"

	// BuildingIconWidth is the visible width of a map icon once color codes
	// are stripped.
	BuildingIconWidth = 4
)

const (
	BuildingRoom Flags = 1 << iota
	BuildingAllowMounts
	BuildingTwoEntrances
	BuildingOpen
	BuildingClosed
	BuildingInterlink
	BuildingHerd
	BuildingDedicate
	BuildingDrink
	BuildingNoNPC
	BuildingBarrier
	BuildingTavern
	BuildingCountsAsCity
	BuildingMine
	BuildingAttachRoad
	BuildingBurnable
	BuildingLibrary
	BuildingSecondaryTerritory
	BuildingInDevelopment
)

var BuildingFlagNames = FlagNames{
	"room", "allow-mounts", "two-entrances", "open", "closed", "interlink",
	"herd", "dedicate", "drink", "no-npc", "barrier", "tavern",
	"counts-as-city", "mine", "attach-road", "burnable", "library",
	"secondary-territory", "in-development",
}

// BuildingRoomIncompatible are flags that make no sense on a designated room.
const BuildingRoomIncompatible = BuildingOpen | BuildingClosed | BuildingTwoEntrances | BuildingAttachRoad | BuildingInterlink

// Building is a map building or a designatable interior room.
type Building struct {
	vnum storage.Vnum

	Name           string            `json:"name"`
	Title          string            `json:"title"`
	Icon           string            `json:"icon"`
	Commands       string            `json:"commands,omitempty"`
	Description    string            `json:"description,omitempty"`
	HitPoints      int               `json:"hit_points"`
	Fame           int               `json:"fame"`
	Military       int               `json:"military"`
	ExtraRooms     int               `json:"extra_rooms"`
	Citizens       int               `json:"citizens"`
	DesignateFlags Flags             `json:"designate_flags"`
	Flags          Flags             `json:"flags"`
	Functions      Flags             `json:"functions"`
	Relations      BuildingRelations `json:"relations"`
	Interactions   Interactions      `json:"interactions"`
	Spawns         Spawns            `json:"spawns"`
	Scripts        Vnums             `json:"scripts"`
	Maintenance    Resources         `json:"maintenance"`
	ExtraDescs     ExtraDescs        `json:"extra_descs"`
}

func NewBuilding(vnum storage.Vnum) *Building {
	return &Building{
		vnum:      vnum,
		Name:      DefaultBuildingName,
		Title:     DefaultBuildingTitle,
		Icon:      DefaultBuildingIcon,
		HitPoints: 1,
	}
}

func (b *Building) Vnum() storage.Vnum     { return b.vnum }
func (b *Building) SetVnum(v storage.Vnum) { b.vnum = v }
func (b *Building) Kind() Kind             { return KindBuilding }
func (b *Building) Label() string          { return b.Name }

func (b *Building) InDevelopment() bool      { return b.Flags.Has(BuildingInDevelopment) }
func (b *Building) SetInDevelopment(on bool) { b.Flags.SetTo(BuildingInDevelopment, on) }

// IsRoom reports whether this is a designatable interior room.
func (b *Building) IsRoom() bool {
	return b.Flags.Has(BuildingRoom)
}

func (b *Building) Clone() *Building {
	c := *b
	c.Relations = b.Relations.Copy()
	c.Interactions = b.Interactions.Copy()
	c.Spawns = b.Spawns.Copy()
	c.Scripts = b.Scripts.Copy()
	c.Maintenance = b.Maintenance.Copy()
	c.ExtraDescs = b.ExtraDescs.Copy()
	return &c
}

func (b *Building) Sanitize() {
	b.Name = defaultIfBlank(b.Name, DefaultBuildingName)
	b.Title = defaultIfBlank(b.Title, DefaultBuildingTitle)
	b.Icon = defaultIfBlank(b.Icon, DefaultBuildingIcon)
	b.Commands = optional(b.Commands)
	b.Description = optional(b.Description)
}

func (b *Building) Validate() error {
	el := errors.NewErrorList()

	if b.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	if b.HitPoints < 0 {
		el.Add(fmt.Errorf("hit points must not be negative"))
	}
	for i, r := range b.Relations {
		if !BuildingRelationTypeNames.Valid(int(r.Type)) {
			el.Add(fmt.Errorf("relation %d: unknown type %d", i, r.Type))
		}
	}

	return el.Err()
}

// IconWidth is the icon's length without "&x" color codes.
func IconWidth(icon string) int {
	n := 0
	for i := 0; i < len(icon); i++ {
		if icon[i] == '&' && i+1 < len(icon) {
			i++
			continue
		}
		n++
	}
	return n
}
