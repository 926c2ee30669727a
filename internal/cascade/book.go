package cascade

import (
	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
	"github.com/pixil98/go-olc/internal/world"
)

func registerBook(r *Registry) {
	r.AddRules(
		rule(game.KindBook, game.KindObject, "book",
			func(o *game.ObjectProto, v storage.Vnum) bool { return o.Book == v },
			func(o *game.ObjectProto, _ *Deleted) bool {
				o.Book = storage.Nothing
				return true
			}),
	)

	r.AddWorldRepair(game.KindBook, func(_ *game.Dictionary, w *world.World, d *Deleted) int {
		n := 0
		w.ForEachObject(func(o *world.Object) {
			if o.Book == d.Vnum {
				w.SetObjectBook(o, storage.Nothing)
				n++
			}
		})
		return n
	})
}
