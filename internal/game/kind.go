package game

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-olc/internal/storage"
)

// Kind names a prototype table.
type Kind string

const (
	KindBook      Kind = "book"
	KindEvent     Kind = "event"
	KindGeneric   Kind = "generic"
	KindAdventure Kind = "adventure"
	KindBuilding  Kind = "building"
	KindCrop      Kind = "crop"
	KindGlobal    Kind = "global"
	KindSector    Kind = "sector"

	KindCraft    Kind = "craft"
	KindQuest    Kind = "quest"
	KindProgress Kind = "progress"
	KindShop     Kind = "shop"
	KindSocial   Kind = "social"
	KindVehicle  Kind = "vehicle"
	KindObject   Kind = "object"
)

// ContentKinds are the content tables with full editors.
var ContentKinds = []Kind{
	KindBook, KindEvent, KindGeneric, KindAdventure,
	KindBuilding, KindCrop, KindGlobal, KindSector,
}

// ReferencingKinds hold references into the content tables.
var ReferencingKinds = []Kind{
	KindCraft, KindQuest, KindProgress, KindShop,
	KindSocial, KindVehicle, KindObject,
}

// AllKinds lists every table in load order.
var AllKinds = append(append([]Kind{}, ContentKinds...), ReferencingKinds...)

func (k Kind) String() string {
	return string(k)
}

// ParseKind accepts a kind name or an unambiguous prefix of one.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", fmt.Errorf("no type given")
	}

	var found []Kind
	for _, k := range AllKinds {
		if string(k) == s {
			return k, nil
		}
		if strings.HasPrefix(string(k), s) {
			found = append(found, k)
		}
	}

	switch len(found) {
	case 0:
		return "", fmt.Errorf("unknown type %q", s)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("%q is ambiguous", s)
	}
}

// Prototype is implemented by every stored type.
type Prototype interface {
	storage.Record
	Kind() Kind
	Label() string
}

// Cloner is a prototype that can produce a detached deep copy of itself and
// clean itself up before being committed.
type Cloner[T any] interface {
	Prototype
	Clone() T
	Sanitize()
}

// Developable prototypes carry an in-development flag.
type Developable interface {
	InDevelopment() bool
	SetInDevelopment(bool)
}
