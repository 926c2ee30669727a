package cascade

import (
	"fmt"

	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
	"github.com/pixil98/go-olc/internal/world"
)

func registerGeneric(r *Registry) {
	r.AddRules(
		rule(game.KindGeneric, game.KindGeneric, "relations",
			func(g *game.Generic, v storage.Vnum) bool { return g.Relations.Has(v) },
			func(g *game.Generic, d *Deleted) bool { return g.Relations.Remove(d.Vnum) }),
		rule(game.KindGeneric, game.KindBuilding, "maintenance",
			func(b *game.Building, v storage.Vnum) bool { return b.Maintenance.HasGeneric(v) },
			func(b *game.Building, d *Deleted) bool { return b.Maintenance.RemoveGeneric(d.Vnum) }),
		rule(game.KindGeneric, game.KindVehicle, "maintenance",
			func(vh *game.Vehicle, v storage.Vnum) bool { return vh.Maintenance.HasGeneric(v) },
			func(vh *game.Vehicle, d *Deleted) bool { return vh.Maintenance.RemoveGeneric(d.Vnum) }),
		rule(game.KindGeneric, game.KindCraft, "resources",
			func(c *game.Craft, v storage.Vnum) bool { return c.Resources.HasGeneric(v) },
			func(c *game.Craft, d *Deleted) bool { return c.Resources.RemoveGeneric(d.Vnum) }),
		rule(game.KindGeneric, game.KindObject, "liquid",
			func(o *game.ObjectProto, v storage.Vnum) bool { return o.Liquid == v },
			func(o *game.ObjectProto, d *Deleted) bool {
				o.Liquid = d.FallbackLiquid
				return true
			}),
	)
	r.AddRules(requirementRules(game.KindGeneric)...)
	r.AddRules(rewardRules(game.KindGeneric)...)

	r.AddWorldRepair(game.KindGeneric, func(_ *game.Dictionary, w *world.World, d *Deleted) int {
		n := 0
		w.ForEachObject(func(o *world.Object) {
			if o.Liquid == d.Vnum {
				w.SetLiquid(o, d.FallbackLiquid)
				n++
			}
		})
		return n
	})
	r.AddWorldRepair(game.KindGeneric, func(_ *game.Dictionary, w *world.World, d *Deleted) int {
		n := 0
		w.ForEachRoom(func(rm *world.Room) {
			if stripped, _ := w.StripConstruction(rm, d.Vnum); stripped {
				n++
			}
		})
		return n
	})

	r.AddRefresh(game.KindGeneric, func(dict *game.Dictionary, _ *world.World, _ *Deleted) error {
		if err := game.ComputeGenericRelations(dict.Generics); err != nil {
			return fmt.Errorf("recomputing generic relations: %w", err)
		}
		return nil
	})
	r.AddRefresh(game.KindGeneric, func(dict *game.Dictionary, w *world.World, _ *Deleted) error {
		isLanguage := func(v storage.Vnum) bool {
			_, ok := dict.FindGeneric(v, game.GenericLanguage)
			return ok
		}
		isCurrency := func(v storage.Vnum) bool {
			_, ok := dict.FindGeneric(v, game.GenericCurrency)
			return ok
		}
		w.ForEachPlayer(func(p *world.Player) {
			p.CheckLanguages(isLanguage)
			p.CheckCurrencies(isCurrency)
		})
		return nil
	})
	r.AddRefresh(game.KindGeneric, checkQuests)
}
