package olc

import (
	"fmt"
	"math"
	"strings"

	"github.com/pixil98/go-olc/internal/commands"
	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
)

func bookModules() map[string]module {
	return map[string]module{
		"title":     textModule("Title", func(b *game.Book) *string { return &b.Title }),
		"byline":    textModule("Byline", func(b *game.Book) *string { return &b.Byline }),
		"item":      textModule("Item name", func(b *game.Book) *string { return &b.ItemName }),
		"itemdesc":  descModule("Item description", func(b *game.Book) *string { return &b.ItemDescription }),
		"author":    intModule("Author", 0, math.MaxInt32, func(b *game.Book) *int { return &b.Author }),
		"paragraph": typed(bookParagraph),
		"library":   vnumListModule("library", "", func(b *game.Book) *game.Vnums { return &b.Libraries }),
	}
}

// bookParagraph handles "add <text>", "edit <number> <text>" and
// "remove <number>".
func bookParagraph(_ *Editor, b *game.Book, args string) (string, error) {
	op, rest := nextWord(args)
	switch op {
	case "add":
		if rest == "" {
			return "", commands.NewUserError("What should the paragraph say?")
		}
		b.Paragraphs = append(b.Paragraphs, rest)
		return fmt.Sprintf("Added paragraph %d.", len(b.Paragraphs)), nil
	case "edit":
		pos, text := nextWord(rest)
		i, err := parseIndex(pos, len(b.Paragraphs))
		if err != nil {
			return "", err
		}
		b.Paragraphs[i] = text
		return fmt.Sprintf("Paragraph %d replaced.", i+1), nil
	case "remove":
		return removeAt(&b.Paragraphs, rest, "paragraph")
	}
	return "", commands.NewUserError("Usage: paragraph add <text> | edit <number> <text> | remove <number>")
}

func eventModules() map[string]module {
	return map[string]module{
		"name":        textModule("Name", func(ev *game.Event) *string { return &ev.Name }),
		"description": descModule("Description", func(ev *game.Event) *string { return &ev.Description }),
		"complete":    descModule("Completion message", func(ev *game.Event) *string { return &ev.CompleteMsg }),
		"notes":       descModule("Notes", func(ev *game.Event) *string { return &ev.Notes }),
		"flags":       flagsModule("Flags", game.EventFlagNames, func(ev *game.Event) *game.Flags { return &ev.Flags }),
		"levels":      levelsModule(func(ev *game.Event) *int { return &ev.MinLevel }, func(ev *game.Event) *int { return &ev.MaxLevel }),
		"duration":    intModule("Duration", 1, math.MaxInt32, func(ev *game.Event) *int { return &ev.Duration }),
		"repeats":     intModule("Repeat delay", 0, math.MaxInt32, func(ev *game.Event) *int { return &ev.RepeatsAfter }),
		"reward":      typed(eventReward),
	}
}

// eventReward handles "rank|threshold add <min> <max> <type> <vnum> <amount>"
// and "rank|threshold remove <number>".
func eventReward(e *Editor, ev *game.Event, args string) (string, error) {
	usage := commands.NewUserError("Usage: reward rank|threshold add <min> <max> <type> <vnum> <amount> | remove <number>")

	which, rest := nextWord(args)
	var list *game.EventRewards
	switch which {
	case "rank":
		list = &ev.RankRewards
	case "threshold":
		list = &ev.ThresholdRewards
	default:
		return "", usage
	}

	op, rest := nextWord(rest)
	switch op {
	case "remove":
		return removeAt(list, rest, which+" reward")
	case "add":
	default:
		return "", usage
	}

	fields := strings.Fields(rest)
	if len(fields) != 5 {
		return "", usage
	}
	lo, err := parseInt(fields[0])
	if err != nil {
		return "", err
	}
	hi, err := parseInt(fields[1])
	if err != nil {
		return "", err
	}
	if lo < 0 || hi < lo {
		return "", commands.NewUserError("Reward ranges need 0 <= min <= max.")
	}
	rt, err := game.RewardTypeNames.Parse(fields[2])
	if err != nil {
		return "", userErr(err)
	}
	v, err := parseVnum(fields[3])
	if err != nil {
		return "", err
	}
	amount, err := parseInt(fields[4])
	if err != nil {
		return "", err
	}

	r := game.EventReward{Min: lo, Max: hi, Reward: game.Reward{Type: game.RewardType(rt), Vnum: v, Amount: amount}}
	if target := r.Type.Target(); target != "" && !e.exists(target, v) {
		return "", commands.NewUserErrorf("There is no %s with that vnum.", target)
	}
	*list = append(*list, r)
	return fmt.Sprintf("Added %s reward for %d-%d: %s %d.", which, lo, hi, game.RewardTypeNames.Name(rt), v), nil
}

func genericModules() map[string]module {
	return map[string]module{
		"name":     textModule("Name", func(g *game.Generic) *string { return &g.Name }),
		"flags":    flagsModule("Flags", game.GenericFlagNames, func(g *game.Generic) *game.Flags { return &g.Flags }),
		"type":     typeModule("Type", game.GenericTypeNames, func(g *game.Generic, v int) { g.SetType(game.GenericType(v)) }),
		"value":    typed(genericValue),
		"string":   typed(genericString),
		"relation": typed(genericRelation),
	}
}

func genericValue(_ *Editor, g *game.Generic, args string) (string, error) {
	posArg, valArg := nextWord(args)
	pos, err := parseIndex(posArg, game.NumGenericValues)
	if err != nil {
		return "", err
	}
	n, err := parseInt(valArg)
	if err != nil {
		return "", err
	}
	g.Values[pos] = n
	return fmt.Sprintf("Value %d set to %d.", pos+1, n), nil
}

func genericString(_ *Editor, g *game.Generic, args string) (string, error) {
	posArg, text := nextWord(args)
	pos, err := parseIndex(posArg, game.NumGenericStrings)
	if err != nil {
		return "", err
	}
	g.Strings[pos] = text
	return fmt.Sprintf("String %d set to: %s", pos+1, text), nil
}

// genericRelation adds or removes a direct relation. Loops are allowed;
// the closure is rebuilt when the generic is saved.
func genericRelation(e *Editor, g *game.Generic, args string) (string, error) {
	op, arg := nextWord(args)
	v, err := parseVnum(arg)
	if err != nil {
		return "", err
	}
	switch op {
	case "add":
		if !e.exists(game.KindGeneric, v) && v != g.Vnum() {
			return "", commands.NewUserError("There is no generic with that vnum.")
		}
		if !g.Relations.Add(v) {
			return "", commands.NewUserErrorf("Already related to %d.", v)
		}
		return fmt.Sprintf("Now relates to generic %d.", v), nil
	case "remove":
		if !g.Relations.Remove(v) {
			return "", commands.NewUserErrorf("Not related to %d.", v)
		}
		return fmt.Sprintf("No longer relates to generic %d.", v), nil
	}
	return "", commands.NewUserError("Usage: relation add|remove <vnum>")
}

func adventureModules() map[string]module {
	return map[string]module{
		"name":        textModule("Name", func(a *game.Adventure) *string { return &a.Name }),
		"author":      textModule("Author", func(a *game.Adventure) *string { return &a.Author }),
		"description": descModule("Description", func(a *game.Adventure) *string { return &a.Description }),
		"flags":       flagsModule("Flags", game.AdventureFlagNames, func(a *game.Adventure) *game.Flags { return &a.Flags }),
		"levels":      levelsModule(func(a *game.Adventure) *int { return &a.MinLevel }, func(a *game.Adventure) *int { return &a.MaxLevel }),
		"instances":   intModule("Max instances", 0, math.MaxInt32, func(a *game.Adventure) *int { return &a.MaxInstances }),
		"limit":       intModule("Player limit", 0, math.MaxInt32, func(a *game.Adventure) *int { return &a.PlayerLimit }),
		"reset":       intModule("Reset time", 0, math.MaxInt32, func(a *game.Adventure) *int { return &a.ResetTime }),
		"range":       typed(adventureRange),
		"link":        typed(adventureLink),
	}
}

func adventureRange(_ *Editor, a *game.Adventure, args string) (string, error) {
	startArg, endArg := nextWord(args)
	start, err := parseVnum(startArg)
	if err != nil {
		return "", err
	}
	end, err := parseVnum(endArg)
	if err != nil {
		return "", err
	}
	if end < start {
		return "", commands.NewUserError("The range must end after it starts.")
	}
	a.StartVnum, a.EndVnum = start, end
	return fmt.Sprintf("Vnum range set to %d-%d.", start, end), nil
}

// adventureLink handles "add <type> <value> [flags...]" and "remove <number>".
func adventureLink(e *Editor, a *game.Adventure, args string) (string, error) {
	op, rest := nextWord(args)
	switch op {
	case "remove":
		return removeAt(&a.Links, rest, "link")
	case "add":
	default:
		return "", commands.NewUserError("Usage: link add <type> <value> [flags] | remove <number>")
	}

	fields := strings.Fields(rest)
	if len(fields) < 2 {
		return "", commands.NewUserError("Usage: link add <type> <value> [flags]")
	}
	lt, err := game.LinkTypeNames.Parse(fields[0])
	if err != nil {
		return "", userErr(err)
	}
	value, err := parseInt(fields[1])
	if err != nil {
		return "", err
	}
	l := game.LinkRule{Type: game.LinkType(lt), Value: value, PortalIn: storage.Nothing, PortalOut: storage.Nothing}
	for _, name := range fields[2:] {
		f, err := game.LinkFlagNames.Parse(name)
		if err != nil {
			return "", userErr(err)
		}
		l.Flags.Set(f)
	}
	if target := l.Type.Target(); target != "" && !e.exists(target, storage.Vnum(value)) {
		return "", commands.NewUserErrorf("There is no %s with that vnum.", target)
	}
	a.Links = append(a.Links, l)
	return fmt.Sprintf("Added %s link.", game.LinkTypeNames.Name(lt)), nil
}

func buildingModules() map[string]module {
	return map[string]module{
		"name":        textModule("Name", func(b *game.Building) *string { return &b.Name }),
		"title":       textModule("Title", func(b *game.Building) *string { return &b.Title }),
		"commands":    textModule("Commands", func(b *game.Building) *string { return &b.Commands }),
		"description": descModule("Description", func(b *game.Building) *string { return &b.Description }),
		"icon":        typed(buildingIcon),
		"flags":       flagsModule("Flags", game.BuildingFlagNames, func(b *game.Building) *game.Flags { return &b.Flags }),
		"hitpoints":   intModule("Hit points", 0, math.MaxInt32, func(b *game.Building) *int { return &b.HitPoints }),
		"fame":        intModule("Fame", 0, math.MaxInt32, func(b *game.Building) *int { return &b.Fame }),
		"military":    intModule("Military", 0, math.MaxInt32, func(b *game.Building) *int { return &b.Military }),
		"rooms":       intModule("Extra rooms", 0, math.MaxInt32, func(b *game.Building) *int { return &b.ExtraRooms }),
		"citizens":    intModule("Citizens", 0, math.MaxInt32, func(b *game.Building) *int { return &b.Citizens }),
		"relation":    relationsModule(func(b *game.Building) *game.BuildingRelations { return &b.Relations }),
		"maintenance": resourcesModule("maintenance", func(b *game.Building) *game.Resources { return &b.Maintenance }),
	}
}

func buildingIcon(_ *Editor, b *game.Building, args string) (string, error) {
	icon := strings.TrimSpace(args)
	if w := game.IconWidth(icon); w != game.BuildingIconWidth {
		return "", commands.NewUserErrorf("Icons must be %d characters wide, not %d.", game.BuildingIconWidth, w)
	}
	b.Icon = icon
	return fmt.Sprintf("Icon set to %s.", icon), nil
}

// relationsModule handles "add|remove <type> <vnum>" on building relations,
// shared by buildings and vehicles.
func relationsModule[T game.Prototype](list func(T) *game.BuildingRelations) module {
	return typed(func(e *Editor, t T, args string) (string, error) {
		fields := strings.Fields(args)
		if len(fields) != 3 || (fields[0] != "add" && fields[0] != "remove") {
			return "", commands.NewUserError("Usage: relation add|remove <type> <vnum>")
		}
		rt, err := game.BuildingRelationTypeNames.Parse(fields[1])
		if err != nil {
			return "", userErr(err)
		}
		v, err := parseVnum(fields[2])
		if err != nil {
			return "", err
		}
		typ := game.BuildingRelationType(rt)
		name := game.BuildingRelationTypeNames.Name(rt)

		if fields[0] == "remove" {
			if !list(t).Remove(typ, v) {
				return "", commands.NewUserErrorf("There is no %s relation to %d.", name, v)
			}
			return fmt.Sprintf("Removed %s %d.", name, v), nil
		}
		if !e.exists(typ.Target(), v) {
			return "", commands.NewUserErrorf("There is no %s with that vnum.", typ.Target())
		}
		if !list(t).Add(typ, v) {
			return "", commands.NewUserErrorf("There is already a %s relation to %d.", name, v)
		}
		return fmt.Sprintf("Added %s %d.", name, v), nil
	})
}

func cropModules() map[string]module {
	return map[string]module{
		"name":    textModule("Name", func(c *game.Crop) *string { return &c.Name }),
		"title":   textModule("Title", func(c *game.Crop) *string { return &c.Title }),
		"flags":   flagsModule("Flags", game.CropFlagNames, func(c *game.Crop) *game.Flags { return &c.Flags }),
		"climate": flagsModule("Climate", game.ClimateNames, func(c *game.Crop) *game.Flags { return &c.Climate }),
		"mapout":  intModule("Mapout", 0, math.MaxInt32, func(c *game.Crop) *int { return &c.Mapout }),
		"icon":    iconsModule(func(c *game.Crop) *game.Icons { return &c.Icons }),
	}
}

func globalModules() map[string]module {
	return map[string]module{
		"name":    textModule("Name", func(g *game.GlobalRule) *string { return &g.Name }),
		"type":    typeModule("Type", game.GlobalTypeNames, func(g *game.GlobalRule, v int) { g.Type = game.GlobalType(v) }),
		"flags":   flagsModule("Flags", game.GlobalFlagNames, func(g *game.GlobalRule) *game.Flags { return &g.Flags }),
		"levels":  levelsModule(func(g *game.GlobalRule) *int { return &g.MinLevel }, func(g *game.GlobalRule) *int { return &g.MaxLevel }),
		"percent": percentModule("Percent", func(g *game.GlobalRule) *float64 { return &g.Percent }),
	}
}

func sectorModules() map[string]module {
	return map[string]module{
		"name":      textModule("Name", func(s *game.Sector) *string { return &s.Name }),
		"title":     textModule("Title", func(s *game.Sector) *string { return &s.Title }),
		"commands":  textModule("Commands", func(s *game.Sector) *string { return &s.Commands }),
		"roadside":  textModule("Roadside icon", func(s *game.Sector) *string { return &s.RoadsideIcon }),
		"flags":     flagsModule("Flags", game.SectorFlagNames, func(s *game.Sector) *game.Flags { return &s.Flags }),
		"climate":   flagsModule("Climate", game.ClimateNames, func(s *game.Sector) *game.Flags { return &s.Climate }),
		"mapout":    intModule("Mapout", 0, math.MaxInt32, func(s *game.Sector) *int { return &s.Mapout }),
		"moveloss":  intModule("Move loss", 0, math.MaxInt32, func(s *game.Sector) *int { return &s.MoveLoss }),
		"icon":      iconsModule(func(s *game.Sector) *game.Icons { return &s.Icons }),
		"evolution": typed(sectorEvolution),
	}
}

// sectorEvolution handles "add <type> <value> <becomes> <percent>" and
// "remove <number>".
func sectorEvolution(e *Editor, s *game.Sector, args string) (string, error) {
	op, rest := nextWord(args)
	switch op {
	case "remove":
		return removeAt(&s.Evolutions, rest, "evolution")
	case "add":
	default:
		return "", commands.NewUserError("Usage: evolution add <type> <value> <becomes> <percent> | remove <number>")
	}

	fields := strings.Fields(rest)
	if len(fields) != 4 {
		return "", commands.NewUserError("Usage: evolution add <type> <value> <becomes> <percent>")
	}
	et, err := game.EvolutionTypeNames.Parse(fields[0])
	if err != nil {
		return "", userErr(err)
	}
	value, err := parseInt(fields[1])
	if err != nil {
		return "", err
	}
	becomes, err := parseVnum(fields[2])
	if err != nil {
		return "", err
	}
	pct, err := parseFloat(fields[3])
	if err != nil {
		return "", err
	}
	if pct < 0 || pct > 100 {
		return "", commands.NewUserError("Percent must be from 0 to 100.")
	}

	evo := game.Evolution{Type: game.EvolutionType(et), Value: value, Becomes: becomes, Percent: pct}
	if becomes != s.Vnum() && !e.exists(game.KindSector, becomes) {
		return "", commands.NewUserError("There is no sector with that vnum.")
	}
	if evo.Type.ValueIsSector() && !e.exists(game.KindSector, storage.Vnum(value)) {
		return "", commands.NewUserError("There is no sector with that vnum.")
	}
	s.Evolutions = append(s.Evolutions, evo)
	return fmt.Sprintf("Added %s evolution to sector %d.", game.EvolutionTypeNames.Name(et), becomes), nil
}
