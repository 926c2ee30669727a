package game

import (
	"slices"

	"github.com/pixil98/go-olc/internal/storage"
)

// ResourceType says what a Resource's vnum points at.
type ResourceType int

const (
	ResourceObject ResourceType = iota
	ResourceComponent
	ResourceLiquid
	ResourceCoins
	ResourcePool
	ResourceAction
	ResourceCurrency
)

var ResourceTypeNames = TypeNames{"object", "component", "liquid", "coins", "pool", "action", "currency"}

// Generic reports the generic type a resource of this kind refers to.
func (t ResourceType) Generic() (GenericType, bool) {
	switch t {
	case ResourceComponent:
		return GenericComponent, true
	case ResourceLiquid:
		return GenericLiquid, true
	case ResourceAction:
		return GenericAction, true
	case ResourceCurrency:
		return GenericCurrency, true
	}
	return GenericUnknown, false
}

// Resource is one needed ingredient: maintenance, craft input or
// construction requirement.
type Resource struct {
	Type   ResourceType `json:"type"`
	Vnum   storage.Vnum `json:"vnum"`
	Amount int          `json:"amount"`
}

type Resources []Resource

func (rs Resources) Copy() Resources {
	return slices.Clone(rs)
}

// HasGeneric reports whether any generic-backed resource names vnum.
func (rs Resources) HasGeneric(vnum storage.Vnum) bool {
	return slices.ContainsFunc(rs, func(r Resource) bool {
		_, ok := r.Type.Generic()
		return ok && r.Vnum == vnum
	})
}

// RemoveGeneric drops every generic-backed resource naming vnum.
func (rs *Resources) RemoveGeneric(vnum storage.Vnum) bool {
	before := len(*rs)
	*rs = slices.DeleteFunc(*rs, func(r Resource) bool {
		_, ok := r.Type.Generic()
		return ok && r.Vnum == vnum
	})
	return len(*rs) != before
}

// RequirementType is a quest task, prerequisite or progress goal kind.
type RequirementType int

const (
	ReqCompleteQuest RequirementType = iota
	ReqGetObject
	ReqOwnBuilding
	ReqVisitBuilding
	ReqGetComponent
	ReqGetCurrency
	ReqEventRunning
	ReqEventNotRunning
	ReqOwnVehicle
	ReqVisitSector
	ReqCropVariety
	ReqReachLevel
)

var RequirementTypeNames = TypeNames{
	"complete-quest", "get-object", "own-building", "visit-building",
	"get-component", "get-currency", "event-running", "event-not-running",
	"own-vehicle", "visit-sector", "crop-variety", "reach-level",
}

// Target returns the table a requirement's vnum refers to, or "" when the
// requirement carries no vnum.
func (t RequirementType) Target() Kind {
	switch t {
	case ReqCompleteQuest:
		return KindQuest
	case ReqGetObject:
		return KindObject
	case ReqOwnBuilding, ReqVisitBuilding:
		return KindBuilding
	case ReqGetComponent, ReqGetCurrency:
		return KindGeneric
	case ReqEventRunning, ReqEventNotRunning:
		return KindEvent
	case ReqOwnVehicle:
		return KindVehicle
	case ReqVisitSector:
		return KindSector
	case ReqCropVariety:
		return KindCrop
	}
	return ""
}

type Requirement struct {
	Type   RequirementType `json:"type"`
	Vnum   storage.Vnum    `json:"vnum"`
	Needed int             `json:"needed"`
}

type Requirements []Requirement

func (rs Requirements) Copy() Requirements {
	return slices.Clone(rs)
}

func (rs Requirements) HasRef(kind Kind, vnum storage.Vnum) bool {
	return slices.ContainsFunc(rs, func(r Requirement) bool {
		return r.Type.Target() == kind && r.Vnum == vnum
	})
}

func (rs *Requirements) RemoveRef(kind Kind, vnum storage.Vnum) bool {
	before := len(*rs)
	*rs = slices.DeleteFunc(*rs, func(r Requirement) bool {
		return r.Type.Target() == kind && r.Vnum == vnum
	})
	return len(*rs) != before
}

// GiverType says where a quest starts or ends, or where a shop stands.
type GiverType int

const (
	GiverBuilding GiverType = iota
	GiverMob
	GiverObject
	GiverRoomTemplate
	GiverVehicle
)

var GiverTypeNames = TypeNames{"building", "mob", "object", "room-template", "vehicle"}

func (t GiverType) Target() Kind {
	switch t {
	case GiverBuilding:
		return KindBuilding
	case GiverObject:
		return KindObject
	case GiverVehicle:
		return KindVehicle
	}
	return ""
}

type Giver struct {
	Type GiverType    `json:"type"`
	Vnum storage.Vnum `json:"vnum"`
}

type Givers []Giver

func (gs Givers) Copy() Givers {
	return slices.Clone(gs)
}

func (gs Givers) HasRef(kind Kind, vnum storage.Vnum) bool {
	return slices.ContainsFunc(gs, func(g Giver) bool {
		return g.Type.Target() == kind && g.Vnum == vnum
	})
}

func (gs *Givers) RemoveRef(kind Kind, vnum storage.Vnum) bool {
	before := len(*gs)
	*gs = slices.DeleteFunc(*gs, func(g Giver) bool {
		return g.Type.Target() == kind && g.Vnum == vnum
	})
	return len(*gs) != before
}

// RewardType is what a quest or event hands out.
type RewardType int

const (
	RewardBonusExp RewardType = iota
	RewardCoins
	RewardObject
	RewardCurrency
	RewardEventPoints
	RewardSpeakLanguage
	RewardRecognizeLanguage
	RewardQuestChain
)

var RewardTypeNames = TypeNames{
	"bonus-exp", "coins", "object", "currency", "event-points",
	"speak-language", "recognize-language", "quest-chain",
}

func (t RewardType) Target() Kind {
	switch t {
	case RewardObject:
		return KindObject
	case RewardCurrency, RewardSpeakLanguage, RewardRecognizeLanguage:
		return KindGeneric
	case RewardEventPoints:
		return KindEvent
	case RewardQuestChain:
		return KindQuest
	}
	return ""
}

type Reward struct {
	Type   RewardType   `json:"type"`
	Vnum   storage.Vnum `json:"vnum"`
	Amount int          `json:"amount"`
}

type Rewards []Reward

func (rs Rewards) Copy() Rewards {
	return slices.Clone(rs)
}

func (rs Rewards) HasRef(kind Kind, vnum storage.Vnum) bool {
	return slices.ContainsFunc(rs, func(r Reward) bool {
		return r.Type.Target() == kind && r.Vnum == vnum
	})
}

func (rs *Rewards) RemoveRef(kind Kind, vnum storage.Vnum) bool {
	before := len(*rs)
	*rs = slices.DeleteFunc(*rs, func(r Reward) bool {
		return r.Type.Target() == kind && r.Vnum == vnum
	})
	return len(*rs) != before
}

// InteractionType is a harvesting or looting action.
type InteractionType int

const (
	InteractButcher InteractionType = iota
	InteractSkin
	InteractShear
	InteractBarde
	InteractPickpocket
	InteractLoot
	InteractMine
	InteractForage
	InteractHarvest
	InteractChop
	InteractDig
	InteractGather
	InteractFish
	InteractEncounter
)

var InteractionTypeNames = TypeNames{
	"butcher", "skin", "shear", "barde", "pickpocket", "loot",
	"mine", "forage", "harvest", "chop", "dig", "gather", "fish", "encounter",
}

// OnMob reports whether the interaction happens on a mob rather than a map
// location.
func (t InteractionType) OnMob() bool {
	return t <= InteractLoot
}

type Interaction struct {
	Type     InteractionType `json:"type"`
	Vnum     storage.Vnum    `json:"vnum"`
	Quantity int             `json:"quantity"`
	Percent  float64         `json:"percent"`
}

type Interactions []Interaction

func (is Interactions) Copy() Interactions {
	return slices.Clone(is)
}

// Spawn is a chance for a mob to appear.
type Spawn struct {
	Vnum    storage.Vnum `json:"vnum"`
	Percent float64      `json:"percent"`
	Flags   Flags        `json:"flags,omitempty"`
}

type Spawns []Spawn

func (ss Spawns) Copy() Spawns {
	return slices.Clone(ss)
}

type ExtraDesc struct {
	Keywords    string `json:"keywords"`
	Description string `json:"description"`
}

type ExtraDescs []ExtraDesc

func (es ExtraDescs) Copy() ExtraDescs {
	return slices.Clone(es)
}

// Icon is one map tile appearance, optionally per season.
type Icon struct {
	Season string `json:"season,omitempty"`
	Color  string `json:"color,omitempty"`
	Icon   string `json:"icon"`
}

type Icons []Icon

func (is Icons) Copy() Icons {
	return slices.Clone(is)
}

// Vnums is an ordered vnum list such as script attachments or library rooms.
type Vnums []storage.Vnum

func (vs Vnums) Copy() Vnums {
	return slices.Clone(vs)
}

func (vs Vnums) Has(v storage.Vnum) bool {
	return slices.Contains(vs, v)
}

func (vs *Vnums) Remove(v storage.Vnum) bool {
	before := len(*vs)
	*vs = slices.DeleteFunc(*vs, func(x storage.Vnum) bool { return x == v })
	return len(*vs) != before
}
