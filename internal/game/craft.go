package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-olc/internal/storage"
)

const DefaultCraftName = "unnamed craft"

const (
	CraftInDevelopment Flags = 1 << iota
	CraftBuilding
	CraftVehicle
	CraftLearned
)

var CraftFlagNames = FlagNames{"in-development", "building", "vehicle", "learned"}

// Craft is a recipe. A building craft produces BuildTarget instead of an
// object.
type Craft struct {
	vnum storage.Vnum

	Name        string       `json:"name"`
	Flags       Flags        `json:"flags"`
	Object      storage.Vnum `json:"object"`
	Quantity    int          `json:"quantity"`
	BuildTarget storage.Vnum `json:"build_target"`
	Resources   Resources    `json:"resources"`
}

func NewCraft(vnum storage.Vnum) *Craft {
	return &Craft{
		vnum:        vnum,
		Name:        DefaultCraftName,
		Flags:       CraftInDevelopment,
		Object:      storage.Nothing,
		Quantity:    1,
		BuildTarget: storage.Nothing,
	}
}

func (c *Craft) Vnum() storage.Vnum     { return c.vnum }
func (c *Craft) SetVnum(v storage.Vnum) { c.vnum = v }
func (c *Craft) Kind() Kind             { return KindCraft }
func (c *Craft) Label() string          { return c.Name }

func (c *Craft) InDevelopment() bool      { return c.Flags.Has(CraftInDevelopment) }
func (c *Craft) SetInDevelopment(on bool) { c.Flags.SetTo(CraftInDevelopment, on) }

func (c *Craft) Clone() *Craft {
	n := *c
	n.Resources = c.Resources.Copy()
	return &n
}

func (c *Craft) Sanitize() {
	c.Name = defaultIfBlank(c.Name, DefaultCraftName)
}

func (c *Craft) Validate() error {
	el := errors.NewErrorList()

	if c.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	if c.Quantity < 0 {
		el.Add(fmt.Errorf("quantity must not be negative"))
	}

	return el.Err()
}
