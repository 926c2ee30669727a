package cascade

import (
	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
	"github.com/pixil98/go-olc/internal/world"
)

func registerCrop(r *Registry) {
	r.AddRules(
		rule(game.KindCrop, game.KindObject, "crop",
			func(o *game.ObjectProto, v storage.Vnum) bool { return o.Crop == v },
			func(o *game.ObjectProto, _ *Deleted) bool {
				o.Crop = storage.Nothing
				return true
			}),
	)
	r.AddRules(requirementRules(game.KindCrop)...)

	r.AddWorldRepair(game.KindCrop, func(dict *game.Dictionary, w *world.World, d *Deleted) int {
		sector := climateSector(dict, d)
		n := 0
		w.ForEachRoom(func(rm *world.Room) {
			if rm.Crop == d.Vnum {
				w.ClearCrop(rm, sector)
				n++
			}
		})
		return n
	})
	r.AddWorldRepair(game.KindCrop, func(_ *game.Dictionary, w *world.World, d *Deleted) int {
		n := 0
		w.ForEachObject(func(o *world.Object) {
			if o.Crop == d.Vnum {
				w.SetObjectCrop(o, storage.Nothing)
				n++
			}
		})
		return n
	})

	r.AddRefresh(game.KindCrop, checkQuests)
}

// climateSector picks the sector a field of the deleted crop turns into: the
// policy's sector for the crop's climate when it exists, else the lowest
// plain sector sharing one of the crop's climates, else d.Sector.
func climateSector(dict *game.Dictionary, d *Deleted) storage.Vnum {
	crop, ok := d.Proto.(*game.Crop)
	if !ok || crop.Climate == game.ClimateNone {
		return d.Sector
	}
	if v, ok := d.Policy.ClimateSector(crop.Climate); ok && dict.Sectors.Has(v) {
		return v
	}

	for _, s := range dict.Sectors.All() {
		if s.Flags.HasAny(game.SectorHasCropData | game.SectorCrop) {
			continue
		}
		if s.Climate.HasAny(crop.Climate) {
			return s.Vnum()
		}
	}
	return d.Sector
}
