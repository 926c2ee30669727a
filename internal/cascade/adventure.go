package cascade

import (
	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/world"
)

// Nothing stores a reference to an adventure; only live instances go.
func registerAdventure(r *Registry) {
	r.AddWorldRepair(game.KindAdventure, func(_ *game.Dictionary, w *world.World, d *Deleted) int {
		return w.RemoveInstancesOf(d.Vnum)
	})
}
