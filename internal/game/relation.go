package game

import (
	"slices"

	"github.com/pixil98/go-olc/internal/storage"
)

// RelationList is a set of generic vnums kept in insertion order.
type RelationList []storage.Vnum

// Add appends vnum unless it is Nothing or already present. It reports
// whether the list changed.
func (rl *RelationList) Add(vnum storage.Vnum) bool {
	if vnum == storage.Nothing || rl.Has(vnum) {
		return false
	}
	*rl = append(*rl, vnum)
	return true
}

// Remove deletes vnum, reporting whether anything was removed.
func (rl *RelationList) Remove(vnum storage.Vnum) bool {
	before := len(*rl)
	*rl = slices.DeleteFunc(*rl, func(v storage.Vnum) bool { return v == vnum })
	return len(*rl) != before
}

func (rl RelationList) Has(vnum storage.Vnum) bool {
	return slices.Contains(rl, vnum)
}

func (rl RelationList) Copy() RelationList {
	return slices.Clone(rl)
}

// BuildingRelationType is the meaning of a building relation edge.
type BuildingRelationType int

const (
	RelationUpgradesTo BuildingRelationType = iota
	RelationStoresLike
	RelationUpgradesToVehicle
	RelationStoresLikeVehicle
)

var BuildingRelationTypeNames = TypeNames{"upgrades-to", "stores-like", "upgrades-to-vehicle", "stores-like-vehicle"}

// Target returns the table the relation's vnum points into.
func (t BuildingRelationType) Target() Kind {
	switch t {
	case RelationUpgradesToVehicle, RelationStoresLikeVehicle:
		return KindVehicle
	}
	return KindBuilding
}

type BuildingRelation struct {
	Type BuildingRelationType `json:"type"`
	Vnum storage.Vnum         `json:"vnum"`
}

// BuildingRelations holds at most one edge per (type, vnum) pair.
type BuildingRelations []BuildingRelation

// Add appends the edge unless vnum is Nothing or the pair already exists.
func (br *BuildingRelations) Add(t BuildingRelationType, vnum storage.Vnum) bool {
	if vnum == storage.Nothing || br.Has(t, vnum) {
		return false
	}
	*br = append(*br, BuildingRelation{Type: t, Vnum: vnum})
	return true
}

// Remove deletes the (type, vnum) edge.
func (br *BuildingRelations) Remove(t BuildingRelationType, vnum storage.Vnum) bool {
	before := len(*br)
	*br = slices.DeleteFunc(*br, func(r BuildingRelation) bool {
		return r.Type == t && r.Vnum == vnum
	})
	return len(*br) != before
}

// RemoveRef deletes every edge into kind/vnum regardless of type.
func (br *BuildingRelations) RemoveRef(kind Kind, vnum storage.Vnum) bool {
	before := len(*br)
	*br = slices.DeleteFunc(*br, func(r BuildingRelation) bool {
		return r.Type.Target() == kind && r.Vnum == vnum
	})
	return len(*br) != before
}

func (br BuildingRelations) Has(t BuildingRelationType, vnum storage.Vnum) bool {
	return slices.Contains(br, BuildingRelation{Type: t, Vnum: vnum})
}

func (br BuildingRelations) HasRef(kind Kind, vnum storage.Vnum) bool {
	return slices.ContainsFunc(br, func(r BuildingRelation) bool {
		return r.Type.Target() == kind && r.Vnum == vnum
	})
}

// Count returns how many edges of type t exist.
func (br BuildingRelations) Count(t BuildingRelationType) int {
	n := 0
	for _, r := range br {
		if r.Type == t {
			n++
		}
	}
	return n
}

func (br BuildingRelations) Copy() BuildingRelations {
	return slices.Clone(br)
}
