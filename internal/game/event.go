package game

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-olc/internal/storage"
)

const (
	DefaultEventName        = "Unnamed Event"
	DefaultEventDescription = "This event has no description.\r\n"
	DefaultEventCompleteMsg = "The event has ended.\r\n"
)

const (
	EventInDevelopment Flags = 1 << iota
	EventContinues
	EventAutomatic
)

var EventFlagNames = FlagNames{"in-development", "continues", "automatic"}

// EventReward is paid to players whose rank or point total falls in
// [Min, Max].
type EventReward struct {
	Min int `json:"min"`
	Max int `json:"max"`
	Reward
}

type EventRewards []EventReward

func (rs EventRewards) Copy() EventRewards {
	return slices.Clone(rs)
}

func (rs EventRewards) HasRef(kind Kind, vnum storage.Vnum) bool {
	return slices.ContainsFunc(rs, func(r EventReward) bool {
		return r.Type.Target() == kind && r.Vnum == vnum
	})
}

func (rs *EventRewards) RemoveRef(kind Kind, vnum storage.Vnum) bool {
	before := len(*rs)
	*rs = slices.DeleteFunc(*rs, func(r EventReward) bool {
		return r.Type.Target() == kind && r.Vnum == vnum
	})
	return len(*rs) != before
}

// Event is a timed, repeatable server-wide contest.
type Event struct {
	vnum storage.Vnum

	Name        string `json:"name"`
	Description string `json:"description"`
	CompleteMsg string `json:"complete_msg"`
	Notes       string `json:"notes,omitempty"`
	Flags       Flags  `json:"flags"`
	MinLevel    int    `json:"min_level"`
	MaxLevel    int    `json:"max_level"`
	// Duration is in minutes.
	Duration     int `json:"duration"`
	RepeatsAfter int `json:"repeats_after"`
	// Version goes up on every save so players' stale event data can be told
	// apart.
	Version int `json:"version"`

	RankRewards      EventRewards `json:"rank_rewards"`
	ThresholdRewards EventRewards `json:"threshold_rewards"`
}

// NewEvent returns a blank event. New events start in development.
func NewEvent(vnum storage.Vnum) *Event {
	return &Event{
		vnum:        vnum,
		Name:        DefaultEventName,
		Description: DefaultEventDescription,
		CompleteMsg: DefaultEventCompleteMsg,
		Flags:       EventInDevelopment,
	}
}

func (e *Event) Vnum() storage.Vnum     { return e.vnum }
func (e *Event) SetVnum(v storage.Vnum) { e.vnum = v }
func (e *Event) Kind() Kind             { return KindEvent }
func (e *Event) Label() string          { return e.Name }

func (e *Event) InDevelopment() bool      { return e.Flags.Has(EventInDevelopment) }
func (e *Event) SetInDevelopment(on bool) { e.Flags.SetTo(EventInDevelopment, on) }

func (e *Event) Clone() *Event {
	c := *e
	c.RankRewards = e.RankRewards.Copy()
	c.ThresholdRewards = e.ThresholdRewards.Copy()
	return &c
}

func (e *Event) Sanitize() {
	e.Name = defaultIfBlank(e.Name, DefaultEventName)
	e.Description = defaultIfBlank(e.Description, DefaultEventDescription)
	e.CompleteMsg = defaultIfBlank(e.CompleteMsg, DefaultEventCompleteMsg)
	e.Notes = optional(e.Notes)
}

func (e *Event) Validate() error {
	el := errors.NewErrorList()

	if e.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	if e.Duration < 0 {
		el.Add(fmt.Errorf("duration must not be negative"))
	}
	for i, r := range slices.Concat(e.RankRewards, e.ThresholdRewards) {
		if !RewardTypeNames.Valid(int(r.Type)) {
			el.Add(fmt.Errorf("reward %d: unknown type %d", i, r.Type))
		}
	}

	return el.Err()
}
