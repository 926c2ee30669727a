package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-olc/internal/storage"
)

const (
	DefaultCropName  = "Unnamed Crop"
	DefaultCropTitle = "An Unnamed Crop"
)

const (
	CropRequiresWater Flags = 1 << iota
	CropOrchard
	CropNotWild
	CropInDevelopment
)

var CropFlagNames = FlagNames{"requires-water", "orchard", "not-wild", "in-development"}

// Bounds limits where on the map a crop may spawn, as percentages of the
// map's width and height.
type Bounds struct {
	XMin int `json:"x_min"`
	XMax int `json:"x_max"`
	YMin int `json:"y_min"`
	YMax int `json:"y_max"`
}

// Crop is a plantable, harvestable map tile.
type Crop struct {
	vnum storage.Vnum

	Name         string       `json:"name"`
	Title        string       `json:"title"`
	Mapout       int          `json:"mapout"`
	Climate      Flags        `json:"climate"`
	Flags        Flags        `json:"flags"`
	Icons        Icons        `json:"icons"`
	Spawns       Spawns       `json:"spawns"`
	Interactions Interactions `json:"interactions"`
	Bounds       Bounds       `json:"bounds"`
}

func NewCrop(vnum storage.Vnum) *Crop {
	return &Crop{
		vnum:   vnum,
		Name:   DefaultCropName,
		Title:  DefaultCropTitle,
		Flags:  CropInDevelopment,
		Bounds: Bounds{XMax: 100, YMax: 100},
	}
}

func (c *Crop) Vnum() storage.Vnum     { return c.vnum }
func (c *Crop) SetVnum(v storage.Vnum) { c.vnum = v }
func (c *Crop) Kind() Kind             { return KindCrop }
func (c *Crop) Label() string          { return c.Name }

func (c *Crop) InDevelopment() bool      { return c.Flags.Has(CropInDevelopment) }
func (c *Crop) SetInDevelopment(on bool) { c.Flags.SetTo(CropInDevelopment, on) }

func (c *Crop) Clone() *Crop {
	n := *c
	n.Icons = c.Icons.Copy()
	n.Spawns = c.Spawns.Copy()
	n.Interactions = c.Interactions.Copy()
	return &n
}

func (c *Crop) Sanitize() {
	c.Name = defaultIfBlank(c.Name, DefaultCropName)
	c.Title = defaultIfBlank(c.Title, DefaultCropTitle)
}

func (c *Crop) Validate() error {
	el := errors.NewErrorList()

	if c.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	b := c.Bounds
	if b.XMin < 0 || b.XMax > 100 || b.YMin < 0 || b.YMax > 100 {
		el.Add(fmt.Errorf("bounds must be between 0 and 100"))
	}
	if b.XMin > b.XMax || b.YMin > b.YMax {
		el.Add(fmt.Errorf("bounds are inverted"))
	}

	return el.Err()
}
