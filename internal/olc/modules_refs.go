package olc

import (
	"fmt"
	"math"
	"strings"

	"github.com/pixil98/go-olc/internal/commands"
	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
)

// The referencing kinds only get the fields that point at content; their
// full editors live elsewhere.

func craftModules() map[string]module {
	return map[string]module{
		"name":      textModule("Name", func(c *game.Craft) *string { return &c.Name }),
		"flags":     flagsModule("Flags", game.CraftFlagNames, func(c *game.Craft) *game.Flags { return &c.Flags }),
		"quantity":  intModule("Quantity", 1, math.MaxInt32, func(c *game.Craft) *int { return &c.Quantity }),
		"object":    vnumModule("Object", game.KindObject, func(c *game.Craft) *storage.Vnum { return &c.Object }),
		"build":     vnumModule("Build target", game.KindBuilding, func(c *game.Craft) *storage.Vnum { return &c.BuildTarget }),
		"resources": resourcesModule("resource", func(c *game.Craft) *game.Resources { return &c.Resources }),
	}
}

func questModules() map[string]module {
	return map[string]module{
		"name":        textModule("Name", func(q *game.Quest) *string { return &q.Name }),
		"description": descModule("Description", func(q *game.Quest) *string { return &q.Description }),
		"flags":       flagsModule("Flags", game.QuestFlagNames, func(q *game.Quest) *game.Flags { return &q.Flags }),
		"levels":      levelsModule(func(q *game.Quest) *int { return &q.MinLevel }, func(q *game.Quest) *int { return &q.MaxLevel }),
	}
}

func progressModules() map[string]module {
	return map[string]module{
		"name":          textModule("Name", func(p *game.Progress) *string { return &p.Name }),
		"description":   descModule("Description", func(p *game.Progress) *string { return &p.Description }),
		"flags":         flagsModule("Flags", game.ProgressFlagNames, func(p *game.Progress) *game.Flags { return &p.Flags }),
		"value":         intModule("Value", 0, math.MaxInt32, func(p *game.Progress) *int { return &p.Value }),
		"prerequisites": vnumListModule("prerequisite", game.KindProgress, func(p *game.Progress) *game.Vnums { return &p.Prerequisites }),
	}
}

func shopModules() map[string]module {
	return map[string]module{
		"name":  textModule("Name", func(s *game.Shop) *string { return &s.Name }),
		"flags": flagsModule("Flags", game.ShopFlagNames, func(s *game.Shop) *game.Flags { return &s.Flags }),
	}
}

func socialModules() map[string]module {
	return map[string]module{
		"name":    textModule("Name", func(s *game.Social) *string { return &s.Name }),
		"command": textModule("Command", func(s *game.Social) *string { return &s.Command }),
		"flags":   flagsModule("Flags", game.SocialFlagNames, func(s *game.Social) *game.Flags { return &s.Flags }),
	}
}

func vehicleModules() map[string]module {
	return map[string]module{
		"name":        textModule("Name", func(v *game.Vehicle) *string { return &v.Name }),
		"flags":       flagsModule("Flags", game.VehicleFlagNames, func(v *game.Vehicle) *game.Flags { return &v.Flags }),
		"interior":    vnumModule("Interior", "", func(v *game.Vehicle) *storage.Vnum { return &v.Interior }),
		"relation":    relationsModule(func(v *game.Vehicle) *game.BuildingRelations { return &v.Relations }),
		"maintenance": resourcesModule("maintenance", func(v *game.Vehicle) *game.Resources { return &v.Maintenance }),
	}
}

func objectModules() map[string]module {
	return map[string]module{
		"name":   textModule("Name", func(o *game.ObjectProto) *string { return &o.Name }),
		"type":   typeModule("Type", game.ObjectTypeNames, func(o *game.ObjectProto, v int) { o.Type = game.ObjectType(v) }),
		"liquid": typed(objectLiquid),
		"crop":   vnumModule("Crop", game.KindCrop, func(o *game.ObjectProto) *storage.Vnum { return &o.Crop }),
		"book":   vnumModule("Book", game.KindBook, func(o *game.ObjectProto) *storage.Vnum { return &o.Book }),
	}
}

// vnumModule sets a single vnum field. "none" clears it; a non-empty target
// kind requires the vnum to exist there.
func vnumModule[T game.Prototype](label string, target game.Kind, field func(T) *storage.Vnum) module {
	return typed(func(e *Editor, t T, args string) (string, error) {
		arg := strings.TrimSpace(args)
		if strings.EqualFold(arg, "none") {
			*field(t) = storage.Nothing
			return fmt.Sprintf("%s cleared.", label), nil
		}
		v, err := parseVnum(arg)
		if err != nil {
			return "", err
		}
		if target != "" && !e.exists(target, v) {
			return "", commands.NewUserErrorf("There is no %s with that vnum.", target)
		}
		*field(t) = v
		return fmt.Sprintf("%s set to %d.", label, v), nil
	})
}

func objectLiquid(e *Editor, o *game.ObjectProto, args string) (string, error) {
	v, err := parseVnum(strings.TrimSpace(args))
	if err != nil {
		return "", err
	}
	g, ok := e.dict.FindGeneric(v, game.GenericLiquid)
	if !ok {
		return "", commands.NewUserError("There is no liquid generic with that vnum.")
	}
	o.Liquid = v
	return fmt.Sprintf("Liquid set to %s.", g.LiquidName()), nil
}
