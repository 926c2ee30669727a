package olc

import (
	"context"
	"fmt"
	"testing"

	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
	"github.com/pixil98/go-testutil"
)

func TestModules_Apply(t *testing.T) {
	tests := map[string]struct {
		kind   game.Kind
		module string
		args   string
		expMsg string
		expErr string
		check  func(t *testing.T, p game.Prototype)
	}{
		"text field": {
			kind:   game.KindBook,
			module: "title",
			args:   "  The Long Road  ",
			expMsg: "Title set to: The Long Road",
			check: func(t *testing.T, p game.Prototype) {
				testutil.AssertEqual(t, "title", p.(*game.Book).Title, "The Long Road")
			},
		},
		"description ends in a line break": {
			kind:   game.KindEvent,
			module: "description",
			args:   "Gather the harvest.",
			expMsg: "Description set.",
			check: func(t *testing.T, p game.Prototype) {
				testutil.AssertEqual(t, "desc", p.(*game.Event).Description, "Gather the harvest.\r\n")
			},
		},
		"flags toggle": {
			kind:   game.KindCrop,
			module: "flags",
			args:   "orchard in-dev",
			expMsg: "Flags now: orchard",
			check: func(t *testing.T, p game.Prototype) {
				testutil.AssertEqual(t, "flags", p.(*game.Crop).Flags, game.CropOrchard)
			},
		},
		"flags without args shows": {
			kind:   game.KindCrop,
			module: "flags",
			expMsg: "Flags: in-development",
		},
		"unknown flag changes nothing": {
			kind:   game.KindCrop,
			module: "flags",
			args:   "orchard bogus",
			expErr: `Unknown flag "bogus".`,
			check: func(t *testing.T, p game.Prototype) {
				testutil.AssertEqual(t, "flags", p.(*game.Crop).Flags, game.CropInDevelopment)
			},
		},
		"int out of range": {
			kind:   game.KindEvent,
			module: "duration",
			args:   "0",
			expErr: "Duration must be from 1 to",
		},
		"int not a number": {
			kind:   game.KindBuilding,
			module: "fame",
			args:   "lots",
			expErr: `"lots" is not a valid number.`,
		},
		"levels": {
			kind:   game.KindGlobal,
			module: "levels",
			args:   "10 50",
			expMsg: "Levels set to 10-50.",
			check: func(t *testing.T, p game.Prototype) {
				g := p.(*game.GlobalRule)
				testutil.AssertEqual(t, "levels", fmt.Sprint(g.MinLevel, g.MaxLevel), "10 50")
			},
		},
		"generic type resets values": {
			kind:   game.KindGeneric,
			module: "type",
			args:   "component",
			expMsg: "Type set to COMPONENT.",
			check: func(t *testing.T, p game.Prototype) {
				g := p.(*game.Generic)
				testutil.AssertEqual(t, "type", g.Type, game.GenericComponent)
				testutil.AssertEqual(t, "object", g.Values[game.ComponentObject], int(storage.Nothing))
			},
		},
		"generic relation to missing": {
			kind:   game.KindGeneric,
			module: "relation",
			args:   "add 404",
			expErr: "There is no generic with that vnum.",
		},
		"generic relation to existing": {
			kind:   game.KindGeneric,
			module: "relation",
			args:   "add 2",
			expMsg: "Now relates to generic 2.",
		},
		"building icon width": {
			kind:   game.KindBuilding,
			module: "icon",
			args:   "&0[GH",
			expErr: "Icons must be 4 characters wide, not 3.",
		},
		"building relation": {
			kind:   game.KindBuilding,
			module: "relation",
			args:   "add upgrades-to 5101",
			expMsg: "Added upgrades-to 5101.",
			check: func(t *testing.T, p game.Prototype) {
				testutil.AssertEqual(t, "relation", p.(*game.Building).Relations.Has(game.RelationUpgradesTo, 5101), true)
			},
		},
		"building relation to missing": {
			kind:   game.KindBuilding,
			module: "relation",
			args:   "add upgrades-to 9999",
			expErr: "There is no building with that vnum.",
		},
		"maintenance needs a real object": {
			kind:   game.KindBuilding,
			module: "maintenance",
			args:   "add object 77 3",
			expErr: "There is no object with that vnum.",
		},
		"maintenance component": {
			kind:   game.KindBuilding,
			module: "maintenance",
			args:   "add component 3 2",
			expMsg: "Added maintenance: 2x component 3.",
		},
		"maintenance wrong generic type": {
			kind:   game.KindBuilding,
			module: "maintenance",
			args:   "add liquid 3 2",
			expErr: "There is no LIQUID generic with that vnum.",
		},
		"adventure link": {
			kind:   game.KindAdventure,
			module: "link",
			args:   "add building-existing 5101 city-only",
			expMsg: "Added building-existing link.",
			check: func(t *testing.T, p game.Prototype) {
				l := p.(*game.Adventure).Links[0]
				testutil.AssertEqual(t, "value", l.Value, 5101)
				testutil.AssertEqual(t, "flags", l.Flags, game.LinkCityOnly)
			},
		},
		"adventure range inverted": {
			kind:   game.KindAdventure,
			module: "range",
			args:   "200 100",
			expErr: "The range must end after it starts.",
		},
		"event reward": {
			kind:   game.KindEvent,
			module: "reward",
			args:   "rank add 1 3 coins 0 500",
			expMsg: "Added rank reward for 1-3: coins 0.",
			check: func(t *testing.T, p game.Prototype) {
				testutil.AssertEqual(t, "rewards", len(p.(*game.Event).RankRewards), 1)
			},
		},
		"event reward to missing object": {
			kind:   game.KindEvent,
			module: "reward",
			args:   "threshold add 10 20 object 31 1",
			expErr: "There is no object with that vnum.",
		},
		"event reward remove empty": {
			kind:   game.KindEvent,
			module: "reward",
			args:   "rank remove 1",
			expErr: "The list is empty.",
		},
		"sector evolution": {
			kind:   game.KindSector,
			module: "evolution",
			args:   "add adjacent-one 1 1 12.5",
			expMsg: "Added adjacent-one evolution to sector 1.",
		},
		"sector evolution to missing": {
			kind:   game.KindSector,
			module: "evolution",
			args:   "add random 0 55 10",
			expErr: "There is no sector with that vnum.",
		},
		"book paragraphs": {
			kind:   game.KindBook,
			module: "paragraph",
			args:   "add It was a dark night.",
			expMsg: "Added paragraph 1.",
		},
		"book library": {
			kind:   game.KindBook,
			module: "library",
			args:   "remove 3001",
			expErr: "3001 isn't listed.",
		},
		"global percent": {
			kind:   game.KindGlobal,
			module: "percent",
			args:   "150",
			expErr: "Percent must be from 0 to 100.",
		},
		"craft object vnum": {
			kind:   game.KindCraft,
			module: "object",
			args:   "none",
			expMsg: "Object cleared.",
		},
		"object crop": {
			kind:   game.KindObject,
			module: "crop",
			args:   "8",
			expErr: "There is no crop with that vnum.",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.dict.Generics.Insert(game.NewGeneric(2))
			comp := game.NewGeneric(3)
			comp.SetType(game.GenericComponent)
			f.dict.Generics.Insert(comp)
			f.dict.Buildings.Insert(game.NewBuilding(5101))
			f.dict.Sectors.Insert(game.NewSector(1))
			s, _ := f.open("Ann")

			vnum := storage.Vnum(1000)
			if _, err := f.editor.Begin(context.Background(), s, tc.kind, vnum); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			msg, err := f.editor.Apply(s, tc.module, tc.args)
			if tc.expErr != "" {
				testutil.AssertErrorContains(t, err, tc.expErr)
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				testutil.AssertEqual(t, "message", msg, tc.expMsg)
			}
			if tc.check != nil {
				tc.check(t, s.Prototype())
			}
		})
	}
}

func TestModules_RemoveByIndex(t *testing.T) {
	f := newFixture(t)
	s, _ := f.open("Ann")
	f.editor.Begin(context.Background(), s, game.KindBook, 1)

	for _, text := range []string{"one", "two", "three"} {
		if _, err := f.editor.Apply(s, "paragraph", "add "+text); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	_, err := f.editor.Apply(s, "paragraph", "remove 4")
	testutil.AssertErrorContains(t, err, "Choose a number from 1 to 3.")

	msg, err := f.editor.Apply(s, "paragraph", "remove 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "message", msg, "Removed paragraph 2.")
	testutil.AssertEqual(t, "paragraphs", fmt.Sprint(s.Prototype().(*game.Book).Paragraphs), "[one three]")
}

func TestModuleNames(t *testing.T) {
	names := ModuleNames()

	testutil.AssertEqual(t, "first", names[0], "author")
	seen := map[string]bool{}
	for _, n := range names {
		if seen[n] {
			t.Errorf("duplicate module %q", n)
		}
		seen[n] = true
	}
	testutil.AssertEqual(t, "has relation", seen["relation"], true)
	testutil.AssertEqual(t, "has evolution", seen["evolution"], true)
}
