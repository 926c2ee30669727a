package game

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-olc/internal/storage"
)

const (
	DefaultGenericName = "Unnamed Generic"

	NumGenericValues  = 4
	NumGenericStrings = 10

	// MaxLiquidCondition bounds the hunger, thirst and drunk values of a liquid.
	MaxLiquidCondition = 750
)

// GenericType selects how a generic's values and strings are interpreted.
type GenericType int

const (
	GenericUnknown GenericType = iota
	GenericLiquid
	GenericAction
	GenericCooldown
	GenericAffect
	GenericCurrency
	GenericComponent
	GenericMoon
	GenericLanguage
)

var GenericTypeNames = TypeNames{
	"UNKNOWN", "LIQUID", "ACTION", "COOLDOWN", "AFFECT",
	"CURRENCY", "COMPONENT", "MOON", "LANGUAGE",
}

func (t GenericType) String() string {
	return GenericTypeNames.Name(int(t))
}

const (
	GenericInDevelopment Flags = 1 << iota
	GenericBasic
)

var GenericFlagNames = FlagNames{"in-development", "basic"}

// Value and string slots by type.
const (
	LiquidDrunk  = 0
	LiquidFull   = 1
	LiquidThirst = 2
	LiquidFlags  = 3

	LiquidName  = 0
	LiquidColor = 1

	CurrencySingular = 0
	CurrencyPlural   = 1

	ComponentPlural = 0
	ComponentObject = 1

	CooldownWearOff = 0

	MoonCycle = 0
)

// Generic is a small typed definition referenced from elsewhere: liquids,
// currencies, components, languages and so on.
type Generic struct {
	vnum storage.Vnum

	Name   string                `json:"name"`
	Type   GenericType           `json:"type"`
	Flags  Flags                 `json:"flags"`
	Values [NumGenericValues]int `json:"values"`

	// Strings are optional; "" means unset.
	Strings   [NumGenericStrings]string `json:"strings"`
	Relations RelationList              `json:"relations"`

	// computed is the transitive closure of Relations. Derived, never saved.
	computed RelationList
}

func NewGeneric(vnum storage.Vnum) *Generic {
	return &Generic{vnum: vnum, Name: DefaultGenericName}
}

func (g *Generic) Vnum() storage.Vnum     { return g.vnum }
func (g *Generic) SetVnum(v storage.Vnum) { g.vnum = v }
func (g *Generic) Kind() Kind             { return KindGeneric }
func (g *Generic) Label() string          { return g.Name }

func (g *Generic) InDevelopment() bool      { return g.Flags.Has(GenericInDevelopment) }
func (g *Generic) SetInDevelopment(on bool) { g.Flags.SetTo(GenericInDevelopment, on) }

// ComputedRelations returns every generic reachable through relations.
func (g *Generic) ComputedRelations() RelationList {
	return g.computed
}

// StringAt returns the string in slot pos, or "" when unset or out of range.
func (g *Generic) StringAt(pos int) string {
	if pos < 0 || pos >= NumGenericStrings {
		return ""
	}
	return g.Strings[pos]
}

// ValueAt returns the value in slot pos, or 0 when out of range.
func (g *Generic) ValueAt(pos int) int {
	if pos < 0 || pos >= NumGenericValues {
		return 0
	}
	return g.Values[pos]
}

// SetType changes the type and wipes the type-specific values and strings.
func (g *Generic) SetType(t GenericType) {
	if g.Type == t {
		return
	}
	g.Type = t
	g.Values = [NumGenericValues]int{}
	g.Strings = [NumGenericStrings]string{}
	if t == GenericComponent {
		g.Values[ComponentObject] = int(storage.Nothing)
	}
}

func (g *Generic) Clone() *Generic {
	c := *g
	c.Relations = g.Relations.Copy()
	c.computed = g.computed.Copy()
	return &c
}

// Sanitize fills the required name and trims optional strings.
func (g *Generic) Sanitize() {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" {
		g.Name = DefaultGenericName
	}
	for i := range g.Strings {
		g.Strings[i] = strings.TrimSpace(g.Strings[i])
	}
}

func (g *Generic) Validate() error {
	el := errors.NewErrorList()

	if g.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	if !GenericTypeNames.Valid(int(g.Type)) {
		el.Add(fmt.Errorf("unknown generic type %d", g.Type))
	}
	if g.Type == GenericLiquid {
		for _, pos := range []int{LiquidDrunk, LiquidFull, LiquidThirst} {
			if v := g.Values[pos]; v < -MaxLiquidCondition || v > MaxLiquidCondition {
				el.Add(fmt.Errorf("liquid value %d out of range: %d", pos, v))
			}
		}
	}

	return el.Err()
}

// LiquidName returns the liquid's name for display.
func (g *Generic) LiquidName() string {
	if g.Type != GenericLiquid {
		return ""
	}
	return g.Strings[LiquidName]
}

// compareGenerics orders generics by type, then case-folded name.
func compareGenerics(a, b *Generic) int {
	if c := cmp.Compare(a.Type, b.Type); c != 0 {
		return c
	}
	return strings.Compare(storage.Fold(a.Name), storage.Fold(b.Name))
}
