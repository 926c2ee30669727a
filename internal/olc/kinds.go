package olc

import (
	"context"

	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
)

// kindEditor is everything the editor needs to handle one prototype kind.
type kindEditor struct {
	kind game.Kind

	create   func(storage.Vnum) game.Prototype
	clone    func(game.Prototype) game.Prototype
	apply    func(live, buf game.Prototype)
	sanitize func(game.Prototype)
	nextFree func(floor storage.Vnum) storage.Vnum

	modules map[string]module
	show    func(e *Editor, p game.Prototype) []string

	// committed runs after the buffer is copied onto the live prototype.
	committed func(ctx context.Context, e *Editor, live game.Prototype) error
}

func newKindEditor[E any, T interface {
	*E
	game.Cloner[T]
}](kind game.Kind, store *storage.Store[T], create func(storage.Vnum) T) *kindEditor {
	return &kindEditor{
		kind:   kind,
		create: func(v storage.Vnum) game.Prototype { return create(v) },
		clone:  func(p game.Prototype) game.Prototype { return p.(T).Clone() },
		apply: func(live, buf game.Prototype) {
			l, b := live.(T), buf.(T)
			vnum := l.Vnum()
			*l = *b
			l.SetVnum(vnum)
		},
		sanitize: func(p game.Prototype) { p.(T).Sanitize() },
		nextFree: store.NextFree,
		modules:  map[string]module{},
	}
}

func (k *kindEditor) with(mods map[string]module) *kindEditor {
	for name, m := range mods {
		k.modules[name] = m
	}
	return k
}

func defaultKinds(dict *game.Dictionary) map[game.Kind]*kindEditor {
	kinds := []*kindEditor{
		newKindEditor[game.Book](game.KindBook, dict.Books, game.NewBook).with(bookModules()),
		newKindEditor[game.Event](game.KindEvent, dict.Events, game.NewEvent).with(eventModules()),
		newKindEditor[game.Generic](game.KindGeneric, dict.Generics, game.NewGeneric).with(genericModules()),
		newKindEditor[game.Adventure](game.KindAdventure, dict.Adventures, game.NewAdventure).with(adventureModules()),
		newKindEditor[game.Building](game.KindBuilding, dict.Buildings, game.NewBuilding).with(buildingModules()),
		newKindEditor[game.Crop](game.KindCrop, dict.Crops, game.NewCrop).with(cropModules()),
		newKindEditor[game.GlobalRule](game.KindGlobal, dict.Globals, game.NewGlobalRule).with(globalModules()),
		newKindEditor[game.Sector](game.KindSector, dict.Sectors, game.NewSector).with(sectorModules()),

		newKindEditor[game.Craft](game.KindCraft, dict.Crafts, game.NewCraft).with(craftModules()),
		newKindEditor[game.Quest](game.KindQuest, dict.Quests, game.NewQuest).with(questModules()),
		newKindEditor[game.Progress](game.KindProgress, dict.Progress, game.NewProgress).with(progressModules()),
		newKindEditor[game.Shop](game.KindShop, dict.Shops, game.NewShop).with(shopModules()),
		newKindEditor[game.Social](game.KindSocial, dict.Socials, game.NewSocial).with(socialModules()),
		newKindEditor[game.Vehicle](game.KindVehicle, dict.Vehicles, game.NewVehicle).with(vehicleModules()),
		newKindEditor[game.ObjectProto](game.KindObject, dict.Objects, game.NewObjectProto).with(objectModules()),
	}

	out := make(map[game.Kind]*kindEditor, len(kinds))
	for _, k := range kinds {
		k.show = showFor(k.kind)
		out[k.kind] = k
	}
	out[game.KindEvent].committed = commitEvent
	out[game.KindGeneric].committed = commitGeneric
	return out
}
