package cascade

import (
	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
	"github.com/pixil98/go-olc/internal/world"
)

func registerSector(r *Registry) {
	r.AddRules(
		rule(game.KindSector, game.KindSector, "evolutions",
			func(s *game.Sector, v storage.Vnum) bool { return s.Evolutions.HasSector(v) },
			func(s *game.Sector, d *Deleted) bool { return s.Evolutions.RemoveSector(d.Vnum) }),
		rule(game.KindSector, game.KindAdventure, "links",
			func(a *game.Adventure, v storage.Vnum) bool { return a.Links.HasRef(game.KindSector, v) },
			func(a *game.Adventure, d *Deleted) bool { return a.Links.RemoveRef(game.KindSector, d.Vnum) }),
	)
	r.AddRules(requirementRules(game.KindSector)...)

	r.AddWorldRepair(game.KindSector, func(_ *game.Dictionary, w *world.World, d *Deleted) int {
		n := 0
		w.ForEachRoom(func(rm *world.Room) {
			changed := false
			if rm.Sector == d.Vnum {
				w.SetSector(rm, d.Sector)
				changed = true
			}
			if rm.OriginalSector == d.Vnum {
				w.SetOriginalSector(rm, d.Sector)
				changed = true
			}
			if changed {
				n++
			}
		})
		return n
	})

	r.AddRefresh(game.KindSector, checkQuests)
}
