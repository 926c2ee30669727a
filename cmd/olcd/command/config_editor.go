package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-olc/internal/cascade"
	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/olc"
	"github.com/pixil98/go-olc/internal/storage"
)

type EditorConfig struct {
	Greeting          string            `json:"greeting,omitempty"`
	MaxVnum           int               `json:"max_vnum,omitempty"`
	VnumFloors        map[game.Kind]int `json:"vnum_floors,omitempty"`
	FallbackLiquid    *int              `json:"fallback_liquid,omitempty"`
	ReplacementSector *int              `json:"replacement_sector,omitempty"`
	Notice            string            `json:"notice,omitempty"`
}

func (c *EditorConfig) validate() error {
	el := errors.NewErrorList()

	if c.MaxVnum < 0 {
		el.Add(fmt.Errorf("editor: max_vnum must not be negative"))
	}
	floors := make(map[game.Kind]int, len(c.VnumFloors))
	for k, v := range c.VnumFloors {
		kind, err := game.ParseKind(string(k))
		if err != nil {
			el.Add(fmt.Errorf("editor: vnum_floors: %w", err))
			continue
		}
		if v < 0 {
			el.Add(fmt.Errorf("editor: vnum_floors: %s floor must not be negative", k))
		}
		if _, dup := floors[kind]; dup {
			el.Add(fmt.Errorf("editor: vnum_floors: %s is set more than once", kind))
		}
		floors[kind] = v
	}
	if c.VnumFloors != nil {
		c.VnumFloors = floors
	}

	return el.Err()
}

func (c *EditorConfig) editorOpts() []olc.EditorOpt {
	var opts []olc.EditorOpt
	if c.MaxVnum > 0 {
		opts = append(opts, olc.WithMaxVnum(storage.Vnum(c.MaxVnum)))
	}
	for k, v := range c.VnumFloors {
		kind, err := game.ParseKind(string(k))
		if err != nil {
			continue
		}
		opts = append(opts, olc.WithVnumFloor(kind, storage.Vnum(v)))
	}
	return opts
}

func (c *EditorConfig) deleterOpts() []cascade.DeleterOpt {
	var opts []cascade.DeleterOpt
	if c.FallbackLiquid != nil {
		opts = append(opts, cascade.WithFallbackLiquid(storage.Vnum(*c.FallbackLiquid)))
	}
	if c.ReplacementSector != nil {
		opts = append(opts, cascade.WithReplacementSector(storage.Vnum(*c.ReplacementSector)))
	}
	if c.Notice != "" {
		opts = append(opts, cascade.WithNotice(c.Notice))
	}
	return opts
}

func (c *EditorConfig) managerOpts() []olc.ManagerOpt {
	var opts []olc.ManagerOpt
	if c.Greeting != "" {
		opts = append(opts, olc.WithGreeting(c.Greeting))
	}
	return opts
}
