package game

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-olc/internal/storage"
)

// Dictionary holds every prototype store. It is the single reference handed
// to editors, the deleter and the auditor so they all share one view of the
// content tables.
type Dictionary struct {
	Books      *storage.Store[*Book]
	Events     *storage.Store[*Event]
	Generics   *storage.Store[*Generic]
	Adventures *storage.Store[*Adventure]
	Buildings  *storage.Store[*Building]
	Crops      *storage.Store[*Crop]
	Globals    *storage.Store[*GlobalRule]
	Sectors    *storage.Store[*Sector]

	Crafts   *storage.Store[*Craft]
	Quests   *storage.Store[*Quest]
	Progress *storage.Store[*Progress]
	Shops    *storage.Store[*Shop]
	Socials  *storage.Store[*Social]
	Vehicles *storage.Store[*Vehicle]
	Objects  *storage.Store[*ObjectProto]
}

func NewDictionary() *Dictionary {
	return &Dictionary{
		Books:      storage.NewStore(string(KindBook), storage.WithBlocks(bookBlock)),
		Events:     storage.NewStore[*Event](string(KindEvent)),
		Generics:   storage.NewStore(string(KindGeneric), storage.WithOrder(compareGenerics)),
		Adventures: storage.NewStore[*Adventure](string(KindAdventure)),
		Buildings:  storage.NewStore[*Building](string(KindBuilding)),
		Crops:      storage.NewStore[*Crop](string(KindCrop)),
		Globals:    storage.NewStore[*GlobalRule](string(KindGlobal)),
		Sectors:    storage.NewStore[*Sector](string(KindSector)),

		Crafts:   storage.NewStore[*Craft](string(KindCraft)),
		Quests:   storage.NewStore[*Quest](string(KindQuest)),
		Progress: storage.NewStore[*Progress](string(KindProgress)),
		Shops:    storage.NewStore[*Shop](string(KindShop)),
		Socials:  storage.NewStore[*Social](string(KindSocial)),
		Vehicles: storage.NewStore[*Vehicle](string(KindVehicle)),
		Objects:  storage.NewStore[*ObjectProto](string(KindObject)),
	}
}

// Table returns the store for kind as a persistable table.
func (d *Dictionary) Table(kind Kind) (storage.BlockDecoder, bool) {
	switch kind {
	case KindBook:
		return d.Books, true
	case KindEvent:
		return d.Events, true
	case KindGeneric:
		return d.Generics, true
	case KindAdventure:
		return d.Adventures, true
	case KindBuilding:
		return d.Buildings, true
	case KindCrop:
		return d.Crops, true
	case KindGlobal:
		return d.Globals, true
	case KindSector:
		return d.Sectors, true
	case KindCraft:
		return d.Crafts, true
	case KindQuest:
		return d.Quests, true
	case KindProgress:
		return d.Progress, true
	case KindShop:
		return d.Shops, true
	case KindSocial:
		return d.Socials, true
	case KindVehicle:
		return d.Vehicles, true
	case KindObject:
		return d.Objects, true
	}
	return nil, false
}

// Load reads every table from the library and resolves derived data.
func (d *Dictionary) Load(lib *storage.Library) error {
	for _, kind := range AllKinds {
		t, _ := d.Table(kind)
		if err := lib.Load(t); err != nil {
			return fmt.Errorf("loading %s: %w", kind, err)
		}
	}
	return d.Resolve()
}

// Resolve rebuilds everything derived from the stored prototypes.
func (d *Dictionary) Resolve() error {
	if err := ComputeGenericRelations(d.Generics); err != nil {
		return fmt.Errorf("computing generic relations: %w", err)
	}
	return nil
}

// Lookup finds any prototype by kind and vnum.
func (d *Dictionary) Lookup(kind Kind, vnum storage.Vnum) (Prototype, bool) {
	switch kind {
	case KindBook:
		return lookup(d.Books, vnum)
	case KindEvent:
		return lookup(d.Events, vnum)
	case KindGeneric:
		return lookup(d.Generics, vnum)
	case KindAdventure:
		return lookup(d.Adventures, vnum)
	case KindBuilding:
		return lookup(d.Buildings, vnum)
	case KindCrop:
		return lookup(d.Crops, vnum)
	case KindGlobal:
		return lookup(d.Globals, vnum)
	case KindSector:
		return lookup(d.Sectors, vnum)
	case KindCraft:
		return lookup(d.Crafts, vnum)
	case KindQuest:
		return lookup(d.Quests, vnum)
	case KindProgress:
		return lookup(d.Progress, vnum)
	case KindShop:
		return lookup(d.Shops, vnum)
	case KindSocial:
		return lookup(d.Socials, vnum)
	case KindVehicle:
		return lookup(d.Vehicles, vnum)
	case KindObject:
		return lookup(d.Objects, vnum)
	}
	return nil, false
}

// All returns every prototype of kind in vnum order.
func (d *Dictionary) All(kind Kind) []Prototype {
	switch kind {
	case KindBook:
		return protos(d.Books)
	case KindEvent:
		return protos(d.Events)
	case KindGeneric:
		return protos(d.Generics)
	case KindAdventure:
		return protos(d.Adventures)
	case KindBuilding:
		return protos(d.Buildings)
	case KindCrop:
		return protos(d.Crops)
	case KindGlobal:
		return protos(d.Globals)
	case KindSector:
		return protos(d.Sectors)
	case KindCraft:
		return protos(d.Crafts)
	case KindQuest:
		return protos(d.Quests)
	case KindProgress:
		return protos(d.Progress)
	case KindShop:
		return protos(d.Shops)
	case KindSocial:
		return protos(d.Socials)
	case KindVehicle:
		return protos(d.Vehicles)
	case KindObject:
		return protos(d.Objects)
	}
	return nil
}

// Insert adds p to the store of its kind. It reports false when the vnum is
// already taken.
func (d *Dictionary) Insert(p Prototype) bool {
	switch p := p.(type) {
	case *Book:
		return insert(d.Books, p)
	case *Event:
		return insert(d.Events, p)
	case *Generic:
		return insert(d.Generics, p)
	case *Adventure:
		return insert(d.Adventures, p)
	case *Building:
		return insert(d.Buildings, p)
	case *Crop:
		return insert(d.Crops, p)
	case *GlobalRule:
		return insert(d.Globals, p)
	case *Sector:
		return insert(d.Sectors, p)
	case *Craft:
		return insert(d.Crafts, p)
	case *Quest:
		return insert(d.Quests, p)
	case *Progress:
		return insert(d.Progress, p)
	case *Shop:
		return insert(d.Shops, p)
	case *Social:
		return insert(d.Socials, p)
	case *Vehicle:
		return insert(d.Vehicles, p)
	case *ObjectProto:
		return insert(d.Objects, p)
	}
	return false
}

// Remove detaches vnum from the store of kind. The prototype stays readable
// by the caller.
func (d *Dictionary) Remove(kind Kind, vnum storage.Vnum) (Prototype, bool) {
	switch kind {
	case KindBook:
		return remove(d.Books, vnum)
	case KindEvent:
		return remove(d.Events, vnum)
	case KindGeneric:
		return remove(d.Generics, vnum)
	case KindAdventure:
		return remove(d.Adventures, vnum)
	case KindBuilding:
		return remove(d.Buildings, vnum)
	case KindCrop:
		return remove(d.Crops, vnum)
	case KindGlobal:
		return remove(d.Globals, vnum)
	case KindSector:
		return remove(d.Sectors, vnum)
	case KindCraft:
		return remove(d.Crafts, vnum)
	case KindQuest:
		return remove(d.Quests, vnum)
	case KindProgress:
		return remove(d.Progress, vnum)
	case KindShop:
		return remove(d.Shops, vnum)
	case KindSocial:
		return remove(d.Socials, vnum)
	case KindVehicle:
		return remove(d.Vehicles, vnum)
	case KindObject:
		return remove(d.Objects, vnum)
	}
	return nil, false
}

// BlockOf returns the library block p is persisted in.
func BlockOf(p Prototype) int {
	if b, ok := p.(*Book); ok {
		return bookBlock(b)
	}
	return p.Vnum().Block()
}

func protos[T Prototype](s *storage.Store[T]) []Prototype {
	all := s.All()
	out := make([]Prototype, 0, len(all))
	for _, p := range all {
		out = append(out, p)
	}
	return out
}

func insert[T Prototype](s *storage.Store[T], p T) bool {
	_, ok := s.Insert(p)
	return ok
}

func remove[T Prototype](s *storage.Store[T], vnum storage.Vnum) (Prototype, bool) {
	p, ok := s.Remove(vnum)
	if !ok {
		return nil, false
	}
	return p, true
}

func lookup[T Prototype](s *storage.Store[T], vnum storage.Vnum) (Prototype, bool) {
	p, ok := s.Find(vnum)
	if !ok {
		return nil, false
	}
	return p, true
}

// Count returns how many prototypes of kind exist.
func (d *Dictionary) Count(kind Kind) int {
	t, ok := d.Table(kind)
	if !ok {
		return 0
	}
	if c, ok := t.(interface{ Count() int }); ok {
		return c.Count()
	}
	return 0
}

// FindGeneric returns generic vnum if it exists and has type t. GenericUnknown
// matches any type.
func (d *Dictionary) FindGeneric(vnum storage.Vnum, t GenericType) (*Generic, bool) {
	g, ok := d.Generics.Find(vnum)
	if !ok || (t != GenericUnknown && g.Type != t) {
		return nil, false
	}
	return g, true
}

// FindGenericByName looks a generic of type t up by name. Exact matches win
// over abbreviations; language names also match with spaces, dashes and
// apostrophes ignored.
func (d *Dictionary) FindGenericByName(t GenericType, name string, exact bool) (*Generic, bool) {
	candidates := slices.DeleteFunc(d.Generics.Sorted(), func(g *Generic) bool {
		return g.Type != t
	})

	return storage.FindByName(candidates, func(g *Generic) string { return g.Name }, name, exact, t == GenericLanguage)
}

// LiquidName returns the display name of liquid vnum, or "" when it is not a
// liquid.
func (d *Dictionary) LiquidName(vnum storage.Vnum) string {
	g, ok := d.FindGeneric(vnum, GenericLiquid)
	if !ok {
		return ""
	}
	return g.LiquidName()
}
