package olc

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-olc/internal/display"
	"github.com/pixil98/go-olc/internal/game"
)

func showFor(kind game.Kind) func(e *Editor, p game.Prototype) []string {
	return func(e *Editor, p game.Prototype) []string {
		lines := []string{fmt.Sprintf("[%d] %s: %s", p.Vnum(), display.Capitalize(string(kind)), p.Label())}
		switch t := p.(type) {
		case *game.Book:
			lines = append(lines, showBook(t)...)
		case *game.Event:
			lines = append(lines, showEvent(t)...)
		case *game.Generic:
			lines = append(lines, showGeneric(t)...)
		case *game.Adventure:
			lines = append(lines, showAdventure(t)...)
		case *game.Building:
			lines = append(lines, showBuilding(t)...)
		case *game.Crop:
			lines = append(lines,
				fmt.Sprintf("Title: %s  Mapout: %d", t.Title, t.Mapout),
				"Flags: "+game.CropFlagNames.Describe(t.Flags),
				"Climate: "+game.ClimateNames.Describe(t.Climate))
			lines = append(lines, showIcons(t.Icons)...)
		case *game.GlobalRule:
			lines = append(lines,
				fmt.Sprintf("Type: %s  Percent: %.2f", game.GlobalTypeNames.Name(int(t.Type)), t.Percent),
				fmt.Sprintf("Levels: %d-%d", t.MinLevel, t.MaxLevel),
				"Flags: "+game.GlobalFlagNames.Describe(t.Flags))
		case *game.Sector:
			lines = append(lines, showSector(t)...)
		case *game.Craft:
			lines = append(lines,
				fmt.Sprintf("Makes: %dx object %d  Builds: %d", t.Quantity, t.Object, t.BuildTarget),
				"Flags: "+game.CraftFlagNames.Describe(t.Flags))
			lines = append(lines, showResources("Resources", t.Resources)...)
		case *game.Quest:
			lines = append(lines,
				fmt.Sprintf("Levels: %d-%d", t.MinLevel, t.MaxLevel),
				"Flags: "+game.QuestFlagNames.Describe(t.Flags),
				fmt.Sprintf("Tasks: %d  Prerequisites: %d  Rewards: %d", len(t.Tasks), len(t.Prerequisites), len(t.Rewards)))
		case *game.Progress:
			lines = append(lines,
				fmt.Sprintf("Value: %d  Prerequisites: %s", t.Value, vnumList(t.Prerequisites)),
				"Flags: "+game.ProgressFlagNames.Describe(t.Flags))
		case *game.Shop:
			lines = append(lines, "Flags: "+game.ShopFlagNames.Describe(t.Flags))
		case *game.Social:
			lines = append(lines, "Command: "+t.Command, "Flags: "+game.SocialFlagNames.Describe(t.Flags))
		case *game.Vehicle:
			lines = append(lines,
				fmt.Sprintf("Interior: %d", t.Interior),
				"Flags: "+game.VehicleFlagNames.Describe(t.Flags))
			lines = append(lines, showRelations(t.Relations)...)
			lines = append(lines, showResources("Maintenance", t.Maintenance)...)
		case *game.ObjectProto:
			lines = append(lines, fmt.Sprintf("Type: %s  Liquid: %d  Crop: %d  Book: %d",
				game.ObjectTypeNames.Name(int(t.Type)), t.Liquid, t.Crop, t.Book))
		}
		return lines
	}
}

func showBook(b *game.Book) []string {
	lines := []string{
		fmt.Sprintf("Title: %s", b.Title),
		fmt.Sprintf("Byline: %s  Author: %d", b.Byline, b.Author),
		fmt.Sprintf("Item: %s", b.ItemName),
		fmt.Sprintf("Libraries: %s", vnumList(b.Libraries)),
	}
	for i, para := range b.Paragraphs {
		lines = append(lines, fmt.Sprintf("%2d) %s", i+1, display.Wrap(para)))
	}
	return lines
}

func showEvent(ev *game.Event) []string {
	lines := []string{
		fmt.Sprintf("Levels: %d-%d  Duration: %d  Repeats after: %d  Version: %d",
			ev.MinLevel, ev.MaxLevel, ev.Duration, ev.RepeatsAfter, ev.Version),
		"Flags: " + game.EventFlagNames.Describe(ev.Flags),
		display.Wrap(strings.TrimSpace(ev.Description)),
	}
	lines = append(lines, showRewards("Rank rewards", ev.RankRewards)...)
	lines = append(lines, showRewards("Threshold rewards", ev.ThresholdRewards)...)
	return lines
}

func showRewards(label string, rs game.EventRewards) []string {
	if len(rs) == 0 {
		return []string{label + ": none"}
	}
	lines := []string{label + ":"}
	for i, r := range rs {
		lines = append(lines, fmt.Sprintf("%2d) %d-%d: %s %d x%d",
			i+1, r.Min, r.Max, game.RewardTypeNames.Name(int(r.Type)), r.Vnum, r.Amount))
	}
	return lines
}

func showGeneric(g *game.Generic) []string {
	lines := []string{
		fmt.Sprintf("Type: %s  Flags: %s", game.GenericTypeNames.Name(int(g.Type)), game.GenericFlagNames.Describe(g.Flags)),
		fmt.Sprintf("Values: %v", g.Values),
	}
	for i, s := range g.Strings {
		if s != "" {
			lines = append(lines, fmt.Sprintf("String %d: %s", i+1, s))
		}
	}
	lines = append(lines,
		fmt.Sprintf("Relations: %s", vnumList(g.Relations)),
		fmt.Sprintf("Computed: %s", vnumList(g.ComputedRelations())))
	return lines
}

func showAdventure(a *game.Adventure) []string {
	lines := []string{
		fmt.Sprintf("Author: %s  Vnums: %d-%d", a.Author, a.StartVnum, a.EndVnum),
		fmt.Sprintf("Levels: %d-%d  Instances: %d  Player limit: %d  Reset: %d",
			a.MinLevel, a.MaxLevel, a.MaxInstances, a.PlayerLimit, a.ResetTime),
		"Flags: " + game.AdventureFlagNames.Describe(a.Flags),
	}
	for i, l := range a.Links {
		lines = append(lines, fmt.Sprintf("%2d) %s %d (%s)",
			i+1, game.LinkTypeNames.Name(int(l.Type)), l.Value, game.LinkFlagNames.Describe(l.Flags)))
	}
	return lines
}

func showBuilding(b *game.Building) []string {
	lines := []string{
		fmt.Sprintf("Title: %s  Icon: %s", b.Title, b.Icon),
		fmt.Sprintf("Hit points: %d  Fame: %d  Military: %d  Rooms: %d  Citizens: %d",
			b.HitPoints, b.Fame, b.Military, b.ExtraRooms, b.Citizens),
		"Flags: " + game.BuildingFlagNames.Describe(b.Flags),
	}
	lines = append(lines, showRelations(b.Relations)...)
	lines = append(lines, showResources("Maintenance", b.Maintenance)...)
	return lines
}

func showSector(s *game.Sector) []string {
	lines := []string{
		fmt.Sprintf("Title: %s  Roadside: %s  Mapout: %d  Move loss: %d", s.Title, s.RoadsideIcon, s.Mapout, s.MoveLoss),
		"Flags: " + game.SectorFlagNames.Describe(s.Flags),
		"Climate: " + game.ClimateNames.Describe(s.Climate),
	}
	lines = append(lines, showIcons(s.Icons)...)
	for i, evo := range s.Evolutions {
		lines = append(lines, fmt.Sprintf("%2d) %s %d -> %d (%.2f%%)",
			i+1, game.EvolutionTypeNames.Name(int(evo.Type)), evo.Value, evo.Becomes, evo.Percent))
	}
	return lines
}

func showIcons(icons game.Icons) []string {
	var lines []string
	for i, ic := range icons {
		season := ic.Season
		if season == "" {
			season = "any"
		}
		lines = append(lines, fmt.Sprintf("%2d) %s %s", i+1, ic.Icon, season))
	}
	return lines
}

func showRelations(rels game.BuildingRelations) []string {
	var lines []string
	for _, r := range rels {
		lines = append(lines, fmt.Sprintf("Relation: %s %d", game.BuildingRelationTypeNames.Name(int(r.Type)), r.Vnum))
	}
	return lines
}

func showResources(label string, rs game.Resources) []string {
	if len(rs) == 0 {
		return nil
	}
	lines := []string{label + ":"}
	for i, r := range rs {
		lines = append(lines, fmt.Sprintf("%2d) %dx %s %d", i+1, r.Amount, game.ResourceTypeNames.Name(int(r.Type)), r.Vnum))
	}
	return lines
}

func vnumList[S ~[]E, E fmt.Stringer](vs S) string {
	if len(vs) == 0 {
		return "none"
	}
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}
