package game

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-olc/internal/storage"
)

const DefaultObjectName = "an unnamed object"

// ObjectType decides which of an object's typed fields mean anything.
type ObjectType int

const (
	ObjectOther ObjectType = iota
	ObjectDrinkContainer
	ObjectPlantable
	ObjectBook
	ObjectCurrency
)

var ObjectTypeNames = TypeNames{"other", "drink-container", "plantable", "book", "currency"}

// StorageEntry lets an object be stored in buildings of one type.
type StorageEntry struct {
	Building storage.Vnum `json:"building"`
	Flags    Flags        `json:"flags,omitempty"`
}

type StorageEntries []StorageEntry

func (ss StorageEntries) Copy() StorageEntries {
	return slices.Clone(ss)
}

func (ss StorageEntries) HasBuilding(vnum storage.Vnum) bool {
	return slices.ContainsFunc(ss, func(s StorageEntry) bool { return s.Building == vnum })
}

func (ss *StorageEntries) RemoveBuilding(vnum storage.Vnum) bool {
	before := len(*ss)
	*ss = slices.DeleteFunc(*ss, func(s StorageEntry) bool { return s.Building == vnum })
	return len(*ss) != before
}

// ObjectProto is an object prototype. Only the fields that point at content
// tables are modelled.
type ObjectProto struct {
	vnum storage.Vnum

	Name    string         `json:"name"`
	Type    ObjectType     `json:"type"`
	Liquid  storage.Vnum   `json:"liquid"`
	Crop    storage.Vnum   `json:"crop"`
	Book    storage.Vnum   `json:"book"`
	Storage StorageEntries `json:"storage"`
}

func NewObjectProto(vnum storage.Vnum) *ObjectProto {
	return &ObjectProto{
		vnum:   vnum,
		Name:   DefaultObjectName,
		Liquid: storage.Nothing,
		Crop:   storage.Nothing,
		Book:   storage.Nothing,
	}
}

func (o *ObjectProto) Vnum() storage.Vnum     { return o.vnum }
func (o *ObjectProto) SetVnum(v storage.Vnum) { o.vnum = v }
func (o *ObjectProto) Kind() Kind             { return KindObject }
func (o *ObjectProto) Label() string          { return o.Name }

func (o *ObjectProto) Clone() *ObjectProto {
	c := *o
	c.Storage = o.Storage.Copy()
	return &c
}

func (o *ObjectProto) Sanitize() {
	o.Name = defaultIfBlank(o.Name, DefaultObjectName)
}

func (o *ObjectProto) Validate() error {
	el := errors.NewErrorList()

	if o.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	if !ObjectTypeNames.Valid(int(o.Type)) {
		el.Add(fmt.Errorf("unknown object type %d", o.Type))
	}

	return el.Err()
}
