package game

import (
	"fmt"

	"github.com/pixil98/go-olc/internal/storage"
)

const DefaultVehicleName = "an unnamed vehicle"

const (
	VehicleInDevelopment Flags = 1 << iota
	VehicleShip
	VehicleDraggable
	VehicleBuilding
)

var VehicleFlagNames = FlagNames{"in-development", "ship", "draggable", "building"}

type Vehicle struct {
	vnum storage.Vnum

	Name        string            `json:"name"`
	Flags       Flags             `json:"flags"`
	Interior    storage.Vnum      `json:"interior"`
	Relations   BuildingRelations `json:"relations"`
	Maintenance Resources         `json:"maintenance"`
}

func NewVehicle(vnum storage.Vnum) *Vehicle {
	return &Vehicle{
		vnum:     vnum,
		Name:     DefaultVehicleName,
		Flags:    VehicleInDevelopment,
		Interior: storage.Nothing,
	}
}

func (v *Vehicle) Vnum() storage.Vnum      { return v.vnum }
func (v *Vehicle) SetVnum(vn storage.Vnum) { v.vnum = vn }
func (v *Vehicle) Kind() Kind              { return KindVehicle }
func (v *Vehicle) Label() string           { return v.Name }

func (v *Vehicle) InDevelopment() bool      { return v.Flags.Has(VehicleInDevelopment) }
func (v *Vehicle) SetInDevelopment(on bool) { v.Flags.SetTo(VehicleInDevelopment, on) }

func (v *Vehicle) Clone() *Vehicle {
	c := *v
	c.Relations = v.Relations.Copy()
	c.Maintenance = v.Maintenance.Copy()
	return &c
}

func (v *Vehicle) Sanitize() {
	v.Name = defaultIfBlank(v.Name, DefaultVehicleName)
}

func (v *Vehicle) Validate() error {
	if v.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}
