package world

import (
	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
)

// Room is a live map tile or interior room.
type Room struct {
	Vnum           storage.Vnum `json:"vnum"`
	Sector         storage.Vnum `json:"sector"`
	OriginalSector storage.Vnum `json:"original_sector"`
	Crop           storage.Vnum `json:"crop"`
	Building       storage.Vnum `json:"building"`

	// Interior rooms belong to the building on their home map room and go
	// away with it.
	Interior bool         `json:"interior,omitempty"`
	HomeRoom storage.Vnum `json:"home_room,omitempty"`

	Construction *Construction `json:"construction,omitempty"`
	Instance     int           `json:"instance,omitempty"`
}

// Construction tracks what a building under construction still needs.
type Construction struct {
	Remaining game.Resources `json:"remaining"`
}

// Done reports whether nothing further is needed.
func (c *Construction) Done() bool {
	return c == nil || len(c.Remaining) == 0
}

func (r *Room) HasBuilding() bool {
	return r.Building != storage.Nothing
}

func (r *Room) UnderConstruction() bool {
	return r.Construction != nil
}

// Object is a live object instance.
type Object struct {
	ID     int          `json:"id"`
	Proto  storage.Vnum `json:"proto"`
	Liquid storage.Vnum `json:"liquid"`
	Crop   storage.Vnum `json:"crop"`
	Book   storage.Vnum `json:"book"`
}

// Vehicle is a live vehicle instance. Interior is the building vnum of its
// interior room.
type Vehicle struct {
	ID       int          `json:"id"`
	Proto    storage.Vnum `json:"proto"`
	Interior storage.Vnum `json:"interior"`
}

// Instance is a live copy of an adventure zone.
type Instance struct {
	ID        int          `json:"id"`
	Adventure storage.Vnum `json:"adventure"`
}

// RunningEvent is an event currently in progress.
type RunningEvent struct {
	Event   storage.Vnum `json:"event"`
	Version int          `json:"version"`
}
