package game

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-olc/internal/storage"
)

const (
	DefaultSectorName  = "Unnamed Sector"
	DefaultSectorTitle = "An Unnamed Sector"
)

// Climate flags; ClimateNone means unset.
const ClimateNone Flags = 0

const (
	ClimateTemperate Flags = 1 << iota
	ClimateArid
	ClimateTropical
	ClimateMountain
	ClimateRiver
	ClimateFreshWater
	ClimateSaltWater
	ClimateForest
	ClimateGrassland
	ClimateCoastal
	ClimateFrozen
)

var ClimateNames = FlagNames{
	"temperate", "arid", "tropical", "mountain", "river", "fresh-water",
	"salt-water", "forest", "grassland", "coastal", "frozen",
}

const (
	SectorLockIcon Flags = 1 << iota
	SectorAdventure
	SectorNonIsland
	SectorChore
	SectorNoClaim
	SectorStartLocation
	SectorFreshWater
	SectorOcean
	SectorDrink
	SectorHasCropData
	SectorCrop
	SectorLayRoad
	SectorIsRoad
	SectorCanMine
	SectorMapBuilding
	SectorInside
)

var SectorFlagNames = FlagNames{
	"lock-icon", "adventure", "non-island", "chore", "no-claim",
	"start-location", "fresh-water", "ocean", "drink", "has-crop-data",
	"crop", "lay-road", "is-road", "can-mine", "map-building", "inside",
}

// EvolutionType is the trigger for a sector changing into another.
type EvolutionType int

const (
	EvoChoppedDown EvolutionType = iota
	EvoCropGrows
	EvoAdjacentOne
	EvoAdjacentMany
	EvoRandom
	EvoTrenchStart
	EvoTrenchFull
	EvoNearSector
	EvoPlantsTo
	EvoMagicGrowth
)

var EvolutionTypeNames = TypeNames{
	"chopped-down", "crop-grows", "adjacent-one", "adjacent-many", "random",
	"trench-start", "trench-full", "near-sector", "plants-to", "magic-growth",
}

// ValueIsSector reports whether an evolution's value names a sector.
func (t EvolutionType) ValueIsSector() bool {
	switch t {
	case EvoAdjacentOne, EvoAdjacentMany, EvoNearSector:
		return true
	}
	return false
}

type Evolution struct {
	Type    EvolutionType `json:"type"`
	Value   int           `json:"value"`
	Becomes storage.Vnum  `json:"becomes"`
	Percent float64       `json:"percent"`
}

type Evolutions []Evolution

func (es Evolutions) Copy() Evolutions {
	return slices.Clone(es)
}

// RefersTo reports whether evolution e mentions sector vnum as its target or
// its value.
func (e Evolution) RefersTo(vnum storage.Vnum) bool {
	return e.Becomes == vnum || (e.Type.ValueIsSector() && storage.Vnum(e.Value) == vnum)
}

func (es Evolutions) HasSector(vnum storage.Vnum) bool {
	return slices.ContainsFunc(es, func(e Evolution) bool { return e.RefersTo(vnum) })
}

func (es *Evolutions) RemoveSector(vnum storage.Vnum) bool {
	before := len(*es)
	*es = slices.DeleteFunc(*es, func(e Evolution) bool { return e.RefersTo(vnum) })
	return len(*es) != before
}

// Sector is a map terrain type.
type Sector struct {
	vnum storage.Vnum

	Name         string       `json:"name"`
	Title        string       `json:"title"`
	Commands     string       `json:"commands,omitempty"`
	RoadsideIcon string       `json:"roadside_icon"`
	Icons        Icons        `json:"icons"`
	Mapout       int          `json:"mapout"`
	Climate      Flags        `json:"climate"`
	MoveLoss     int          `json:"move_loss"`
	Flags        Flags        `json:"flags"`
	BuildFlags   Flags        `json:"build_flags"`
	Evolutions   Evolutions   `json:"evolutions"`
	Interactions Interactions `json:"interactions"`
	Spawns       Spawns       `json:"spawns"`
}

func NewSector(vnum storage.Vnum) *Sector {
	return &Sector{
		vnum:         vnum,
		Name:         DefaultSectorName,
		Title:        DefaultSectorTitle,
		RoadsideIcon: ".",
		MoveLoss:     1,
	}
}

func (s *Sector) Vnum() storage.Vnum     { return s.vnum }
func (s *Sector) SetVnum(v storage.Vnum) { s.vnum = v }
func (s *Sector) Kind() Kind             { return KindSector }
func (s *Sector) Label() string          { return s.Name }

func (s *Sector) Clone() *Sector {
	c := *s
	c.Icons = s.Icons.Copy()
	c.Evolutions = s.Evolutions.Copy()
	c.Interactions = s.Interactions.Copy()
	c.Spawns = s.Spawns.Copy()
	return &c
}

func (s *Sector) Sanitize() {
	s.Name = defaultIfBlank(s.Name, DefaultSectorName)
	s.Title = defaultIfBlank(s.Title, DefaultSectorTitle)
	s.Commands = optional(s.Commands)
}

func (s *Sector) Validate() error {
	el := errors.NewErrorList()

	if s.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	if s.MoveLoss < 0 {
		el.Add(fmt.Errorf("move loss must not be negative"))
	}
	for i, e := range s.Evolutions {
		if !EvolutionTypeNames.Valid(int(e.Type)) {
			el.Add(fmt.Errorf("evolution %d: unknown type %d", i, e.Type))
		}
		if e.Percent < 0 || e.Percent > 100 {
			el.Add(fmt.Errorf("evolution %d: percent out of range: %.2f", i, e.Percent))
		}
	}

	return el.Err()
}
