package game

import (
	"fmt"
	"testing"

	"github.com/pixil98/go-olc/internal/storage"
	"github.com/pixil98/go-testutil"
)

func TestRelationList_Add(t *testing.T) {
	var rl RelationList

	testutil.AssertEqual(t, "first add", rl.Add(5), true)
	testutil.AssertEqual(t, "second add", rl.Add(5), false)
	testutil.AssertEqual(t, "nothing", rl.Add(storage.Nothing), false)
	testutil.AssertEqual(t, "other", rl.Add(3), true)
	testutil.AssertEqual(t, "list", fmt.Sprint(rl), "[5 3]")
}

func TestRelationList_Remove(t *testing.T) {
	tests := map[string]struct {
		start  RelationList
		remove storage.Vnum
		expOk  bool
		exp    string
	}{
		"present": {start: RelationList{1, 2, 3}, remove: 2, expOk: true, exp: "[1 3]"},
		"missing": {start: RelationList{1, 3}, remove: 2, expOk: false, exp: "[1 3]"},
		"empty":   {start: nil, remove: 2, expOk: false, exp: "[]"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rl := tt.start.Copy()
			testutil.AssertEqual(t, "removed", rl.Remove(tt.remove), tt.expOk)
			testutil.AssertEqual(t, "list", fmt.Sprint(rl), tt.exp)
		})
	}
}

func TestRelationList_CopyIsDetached(t *testing.T) {
	orig := RelationList{1, 2}
	cp := orig.Copy()
	cp.Add(3)
	cp[0] = 9

	testutil.AssertEqual(t, "original", fmt.Sprint(orig), "[1 2]")
	testutil.AssertEqual(t, "copy", fmt.Sprint(cp), "[9 2 3]")
}

func TestBuildingRelations(t *testing.T) {
	var br BuildingRelations

	testutil.AssertEqual(t, "add", br.Add(RelationUpgradesTo, 10), true)
	testutil.AssertEqual(t, "add again", br.Add(RelationUpgradesTo, 10), false)
	testutil.AssertEqual(t, "same vnum other type", br.Add(RelationStoresLike, 10), true)
	testutil.AssertEqual(t, "vehicle", br.Add(RelationUpgradesToVehicle, 10), true)
	testutil.AssertEqual(t, "count upgrades", br.Count(RelationUpgradesTo), 1)
	testutil.AssertEqual(t, "len", len(br), 3)

	testutil.AssertEqual(t, "has building ref", br.HasRef(KindBuilding, 10), true)
	testutil.AssertEqual(t, "remove building refs", br.RemoveRef(KindBuilding, 10), true)
	testutil.AssertEqual(t, "building gone", br.HasRef(KindBuilding, 10), false)
	testutil.AssertEqual(t, "vehicle kept", br.Has(RelationUpgradesToVehicle, 10), true)

	testutil.AssertEqual(t, "remove typed", br.Remove(RelationUpgradesToVehicle, 10), true)
	testutil.AssertEqual(t, "empty", len(br), 0)
}

func TestRequirements_RemoveRef(t *testing.T) {
	reqs := Requirements{
		{Type: ReqGetComponent, Vnum: 7, Needed: 1},
		{Type: ReqVisitBuilding, Vnum: 7},
		{Type: ReqGetCurrency, Vnum: 7, Needed: 10},
		{Type: ReqReachLevel, Vnum: 7},
	}

	testutil.AssertEqual(t, "has generic", reqs.HasRef(KindGeneric, 7), true)
	testutil.AssertEqual(t, "removed", reqs.RemoveRef(KindGeneric, 7), true)
	testutil.AssertEqual(t, "left", len(reqs), 2)
	testutil.AssertEqual(t, "building kept", reqs.HasRef(KindBuilding, 7), true)
}
