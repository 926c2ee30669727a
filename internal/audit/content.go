package audit

import (
	"strings"
	"unicode"

	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
)

const nothingDesc = "Nothing."

func unset(s, def string) bool {
	return strings.TrimSpace(s) == "" || strings.EqualFold(s, def)
}

func (c *checker) description(desc string) {
	switch {
	case strings.TrimSpace(desc) == "" || desc == nothingDesc+"\r\n":
		c.problem("Description not set")
	case strings.HasPrefix(desc, nothingDesc):
		c.problem("Description starting with 'Nothing.'")
	}
}

func (c *checker) book(b *game.Book) {
	if unset(b.Title, game.DefaultBookTitle) {
		c.problem("Title not set")
	}
	if unset(b.Byline, game.DefaultBookByline) {
		c.problem("Byline not set")
	}
	if unset(b.ItemName, game.DefaultBookItemName) {
		c.problem("Item name not set")
	}
	if len(b.Paragraphs) == 0 {
		c.problem("No paragraphs written")
	}
	for i, p := range b.Paragraphs {
		if strings.TrimSpace(p) == "" {
			c.problem("Paragraph %d is empty", i+1)
		}
	}
	seen := map[storage.Vnum]bool{}
	for _, v := range b.Libraries {
		if seen[v] {
			c.problem("Library room %d listed twice", v)
		}
		seen[v] = true
	}
}

func (c *checker) event(e *game.Event) {
	c.developable(e)

	if unset(e.Name, game.DefaultEventName) {
		c.problem("Name not set")
	}
	if r := []rune(e.Name); len(r) > 0 && !unicode.IsUpper(r[0]) {
		c.problem("Name not capitalized")
	}
	if unset(e.Description, game.DefaultEventDescription) {
		c.problem("Description not set")
	}
	if unset(e.CompleteMsg, game.DefaultEventCompleteMsg) {
		c.problem("Complete message not set")
	}
	if e.MinLevel > e.MaxLevel && e.MaxLevel != 0 {
		c.problem("Min level higher than max level")
	}
	if e.Duration < 1 {
		c.problem("Invalid duration")
	}
	if e.Duration < 30 {
		c.notice("Duration is very low")
	}
	if len(e.RankRewards) == 0 {
		c.problem("No rank rewards set")
	}
	if len(e.ThresholdRewards) == 0 {
		c.problem("No threshold rewards set")
	}
	for _, r := range append(e.RankRewards.Copy(), e.ThresholdRewards...) {
		target := r.Type.Target()
		if target != "" && !c.exists(target, r.Vnum) {
			c.problem("Reward refers to missing %s %d", target, r.Vnum)
		}
	}
}

func (c *checker) generic(g *game.Generic) {
	c.developable(g)

	if unset(g.Name, game.DefaultGenericName) {
		c.problem("No name set")
	}

	switch g.Type {
	case game.GenericUnknown:
		c.problem("Type not set")
	case game.GenericLiquid:
		if g.StringAt(game.LiquidName) == "" {
			c.problem("Liquid name not set")
		}
		if g.StringAt(game.LiquidColor) == "" {
			c.problem("Liquid color not set")
		}
	case game.GenericCurrency:
		if g.StringAt(game.CurrencySingular) == "" {
			c.problem("Singular name not set")
		}
		if g.StringAt(game.CurrencyPlural) == "" {
			c.problem("Plural name not set")
		}
	case game.GenericComponent:
		obj := storage.Vnum(g.ValueAt(game.ComponentObject))
		if obj == storage.Nothing {
			c.problem("Basic object not set")
		} else if !c.exists(game.KindObject, obj) {
			c.problem("Basic object %d does not exist", obj)
		}
	}

	for _, v := range g.Relations {
		if v == g.Vnum() {
			c.problem("Relates to itself")
		} else if _, ok := c.dict.Generics.Find(v); !ok {
			c.problem("Relation to missing generic %d", v)
		}
	}
	if !g.Relations.Has(g.Vnum()) && game.ClosureOf(g, c.dict.Generics).Has(g.Vnum()) {
		c.problem("Relations loop back to itself")
	}
}

func (c *checker) adventure(a *game.Adventure) {
	if a.StartVnum == 0 || a.EndVnum == 0 {
		c.problem("Vnums not set")
	}
	if a.StartVnum > a.EndVnum {
		c.problem("Bad vnum set")
	}
	if unset(a.Name, game.DefaultAdventureName) {
		c.problem("Name not set")
	}
	if unset(a.Author, game.DefaultAdventureAuthor) {
		c.problem("Author not set")
	}
	if a.Description == game.DefaultAdventureDescription {
		c.problem("Description not set")
	} else {
		c.description(a.Description)
	}
	if a.MinLevel > a.MaxLevel && a.MaxLevel != 0 {
		c.problem("Max level is lower than min level")
	}
	if a.MaxInstances > game.HighMaxInstances {
		c.problem("Unusually high max-instances: %d", a.MaxInstances)
	}
	c.developable(a)
	if a.Flags.Has(game.AdventureLockLevelOnEnter | game.AdventureLockLevelOnCombat) {
		c.problem("Multiple lock flags")
	}
	if a.Flags.Has(game.AdventureNoNewbie | game.AdventureNewbieOnly) {
		c.problem("!NEWBIE and NEWBIE-ONLY")
	}

	limit := false
	for _, l := range a.Links {
		switch l.Type.Target() {
		case game.KindBuilding:
			b, ok := c.dict.Buildings.Find(storage.Vnum(l.Value))
			switch {
			case !ok:
				c.problem("Links to missing building %d", l.Value)
			case b.IsRoom():
				c.problem("Links to interior room %d", l.Value)
			case b.Flags.Has(game.BuildingOpen):
				c.problem("Links to open building")
			}
		case game.KindSector:
			if !c.dict.Sectors.Has(storage.Vnum(l.Value)) {
				c.problem("Links to missing sector %d", l.Value)
			}
		}
		if l.Type == game.LinkTimeLimit {
			limit = true
		}
	}
	if !limit {
		c.problem("No time limit")
	}
}

func (c *checker) building(b *game.Building) {
	room := b.IsRoom()

	if unset(b.Name, game.DefaultBuildingName) {
		c.problem("Name not set")
	}
	if unset(b.Title, game.DefaultBuildingTitle) {
		c.problem("Title not set")
	}
	if !room && b.Icon == game.DefaultBuildingIcon {
		c.problem("Icon not set")
	}
	if !room && game.IconWidth(b.Icon) != game.BuildingIconWidth {
		c.problem("Icon is %d characters wide, not %d", game.IconWidth(b.Icon), game.BuildingIconWidth)
	}
	if !b.Flags.Has(game.BuildingOpen) {
		c.description(b.Description)
	}
	if b.ExtraRooms > 0 && room {
		c.problem("Designated room has extra rooms set")
	}
	if b.ExtraRooms > 0 && b.DesignateFlags == 0 {
		c.problem("Has extra rooms but no designate flags")
	}
	if room && b.Flags.HasAny(game.BuildingRoomIncompatible) {
		c.problem("Designated room has incompatible flag(s)")
	}
	if !room && b.Flags.Has(game.BuildingSecondaryTerritory) {
		c.problem("2ND-TERRITORY flag on a non-designated building")
	}
	if !room && len(b.Maintenance) == 0 {
		c.problem("Requires no maintenance")
	}
	if room && len(b.Maintenance) > 0 {
		c.problem("Interior room has yearly maintenance (will have no effect)")
	}
	if room && b.Relations.Count(game.RelationUpgradesTo) > 0 {
		c.problem("Interior room has upgrades-to")
	}
	c.developable(b)

	for _, r := range b.Relations {
		if !c.exists(r.Type.Target(), r.Vnum) {
			c.problem("Relation %s to missing %s %d", game.BuildingRelationTypeNames.Name(int(r.Type)), r.Type.Target(), r.Vnum)
		}
	}
	for _, m := range b.Maintenance {
		if _, ok := m.Type.Generic(); ok && !c.dict.Generics.Has(m.Vnum) {
			c.problem("Maintenance needs missing generic %d", m.Vnum)
		}
	}
}

func (c *checker) crop(cp *game.Crop) {
	_, inAdventure := game.AdventureFor(c.dict.Adventures, cp.Vnum())

	if unset(cp.Name, game.DefaultCropName) {
		c.problem("No name set")
	} else if cp.Name != strings.ToLower(cp.Name) {
		c.problem("Non-lowercase name")
	}
	if unset(cp.Title, game.DefaultCropTitle) {
		c.problem("No title set")
	}
	if inAdventure && !cp.Flags.Has(game.CropNotWild) {
		c.problem("Missing !WILD flag in adventure crop")
	}
	if !inAdventure && cp.Flags.Has(game.CropNotWild) {
		c.problem("!WILD flag on non-adventure crop")
	}
	if cp.Mapout == 0 {
		c.problem("Mapout color not set")
	}
	if len(cp.Icons) == 0 {
		c.problem("No icons set")
	}
	if cp.Climate == game.ClimateNone {
		c.problem("Climate not set")
	}
	if len(cp.Spawns) == 0 {
		c.problem("No spawns set")
	}
	c.developable(cp)
}

func (c *checker) global(g *game.GlobalRule) {
	c.developable(g)

	if unset(g.Name, game.DefaultGlobalName) {
		c.problem("Name not set")
	}
	if g.Flags.Has(game.GlobalCumulativePercent | game.GlobalChooseLast) {
		c.problem("Has both CUMULATIVE-PRC and CHOOSE-LAST")
	}
	if g.MinLevel > g.MaxLevel && g.MaxLevel != 0 {
		c.problem("Min level is greater than max level")
	}
	if g.TypeFlags&g.TypeExclude != 0 {
		c.problem("Same flags in required and excluded set")
	}
	if g.Type == game.GlobalMobInteractions || g.Type == game.GlobalMineData {
		for _, in := range g.Interactions {
			if !g.Type.AllowsInteraction(in.Type) {
				c.problem("Unsupported interaction type")
			}
		}
	}
}

func (c *checker) sector(s *game.Sector) {
	if unset(s.Name, game.DefaultSectorName) {
		c.problem("Name not set")
	}
	if unset(s.Title, game.DefaultSectorTitle) {
		c.problem("Title not set")
	}
	if len(s.Icons) == 0 {
		c.problem("No icons set")
	}
	for _, e := range s.Evolutions {
		switch {
		case e.Becomes == s.Vnum():
			c.problem("Evolves into itself")
		case !c.dict.Sectors.Has(e.Becomes):
			c.problem("Evolution to missing sector %d", e.Becomes)
		}
		if e.Type.ValueIsSector() && !c.dict.Sectors.Has(storage.Vnum(e.Value)) {
			c.problem("Evolution depends on missing sector %d", e.Value)
		}
	}
}
