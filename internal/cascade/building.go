package cascade

import (
	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
	"github.com/pixil98/go-olc/internal/world"
)

func registerBuilding(r *Registry) {
	r.AddRules(
		rule(game.KindBuilding, game.KindAdventure, "links",
			func(a *game.Adventure, v storage.Vnum) bool { return a.Links.HasRef(game.KindBuilding, v) },
			func(a *game.Adventure, d *Deleted) bool { return a.Links.RemoveRef(game.KindBuilding, d.Vnum) }),
		rule(game.KindBuilding, game.KindBuilding, "relations",
			func(b *game.Building, v storage.Vnum) bool { return b.Relations.HasRef(game.KindBuilding, v) },
			func(b *game.Building, d *Deleted) bool { return b.Relations.RemoveRef(game.KindBuilding, d.Vnum) }),
		rule(game.KindBuilding, game.KindCraft, "build target",
			func(c *game.Craft, v storage.Vnum) bool { return c.BuildTarget == v },
			func(c *game.Craft, _ *Deleted) bool {
				c.BuildTarget = storage.Nothing
				return true
			}),
		rule(game.KindBuilding, game.KindObject, "storage",
			func(o *game.ObjectProto, v storage.Vnum) bool { return o.Storage.HasBuilding(v) },
			func(o *game.ObjectProto, d *Deleted) bool { return o.Storage.RemoveBuilding(d.Vnum) }),
		rule(game.KindBuilding, game.KindQuest, "starts",
			func(q *game.Quest, v storage.Vnum) bool { return q.Starts.HasRef(game.KindBuilding, v) },
			func(q *game.Quest, d *Deleted) bool { return q.Starts.RemoveRef(game.KindBuilding, d.Vnum) }),
		rule(game.KindBuilding, game.KindQuest, "ends",
			func(q *game.Quest, v storage.Vnum) bool { return q.Ends.HasRef(game.KindBuilding, v) },
			func(q *game.Quest, d *Deleted) bool { return q.Ends.RemoveRef(game.KindBuilding, d.Vnum) }),
		rule(game.KindBuilding, game.KindShop, "locations",
			func(s *game.Shop, v storage.Vnum) bool { return s.Locations.HasRef(game.KindBuilding, v) },
			func(s *game.Shop, d *Deleted) bool { return s.Locations.RemoveRef(game.KindBuilding, d.Vnum) }),
		rule(game.KindBuilding, game.KindVehicle, "interior",
			func(vh *game.Vehicle, v storage.Vnum) bool { return vh.Interior == v },
			func(vh *game.Vehicle, _ *Deleted) bool {
				vh.Interior = storage.Nothing
				return true
			}),
		rule(game.KindBuilding, game.KindVehicle, "relations",
			func(vh *game.Vehicle, v storage.Vnum) bool { return vh.Relations.HasRef(game.KindBuilding, v) },
			func(vh *game.Vehicle, d *Deleted) bool { return vh.Relations.RemoveRef(game.KindBuilding, d.Vnum) }),
	)
	r.AddRules(requirementRules(game.KindBuilding)...)

	r.AddWorldRepair(game.KindBuilding, func(_ *game.Dictionary, w *world.World, d *Deleted) int {
		n := 0
		w.ForEachRoom(func(rm *world.Room) {
			if rm.Building != d.Vnum {
				return
			}
			if rm.Interior {
				w.RemoveRoom(rm)
			} else {
				w.ResetBuilding(rm)
			}
			n++
		})
		return n
	})
	r.AddWorldRepair(game.KindBuilding, func(_ *game.Dictionary, w *world.World, d *Deleted) int {
		n := 0
		w.ForEachVehicle(func(v *world.Vehicle) {
			if v.Interior == d.Vnum {
				w.SetVehicleInterior(v, storage.Nothing)
				n++
			}
		})
		return n
	})

	r.AddRefresh(game.KindBuilding, checkQuests)
}
