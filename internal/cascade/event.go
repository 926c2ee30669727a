package cascade

import (
	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/world"
)

func registerEvent(r *Registry) {
	r.AddRules(rewardRules(game.KindEvent)...)
	r.AddRules(requirementRules(game.KindEvent)...)

	r.AddWorldRepair(game.KindEvent, func(_ *game.Dictionary, w *world.World, d *Deleted) int {
		if w.CancelEvent(d.Vnum) {
			return 1
		}
		return 0
	})

	r.AddRefresh(game.KindEvent, func(_ *game.Dictionary, w *world.World, d *Deleted) error {
		w.ForEachPlayer(func(p *world.Player) {
			p.DropEvent(d.Vnum)
		})
		return nil
	})
	r.AddRefresh(game.KindEvent, checkQuests)
}
