package cascade

import (
	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/policy"
	"github.com/pixil98/go-olc/internal/storage"
	"github.com/pixil98/go-olc/internal/world"
)

// Deleted describes the prototype being deleted while its cascade runs. Proto
// stays readable until the cascade is done.
type Deleted struct {
	Kind  game.Kind
	Vnum  storage.Vnum
	Proto game.Prototype

	// FallbackLiquid replaces a deleted liquid. It is Nothing when the
	// fallback itself is being deleted.
	FallbackLiquid storage.Vnum
	// Sector replaces a deleted sector or a crop that has no better
	// climate match.
	Sector storage.Vnum
	// Policy maps a deleted crop's climate to the sector its fields become.
	Policy *policy.Policy
}

// Rule is one field through which a Source prototype can refer to a Target
// prototype.
type Rule struct {
	Target game.Kind
	Source game.Kind
	Field  string

	// Match reports whether p refers to vnum through Field.
	Match func(p game.Prototype, vnum storage.Vnum) bool
	// Strip removes the reference to the deleted prototype and reports
	// whether p changed.
	Strip func(p game.Prototype, d *Deleted) bool
}

func rule[T game.Prototype](target, source game.Kind, field string, match func(T, storage.Vnum) bool, strip func(T, *Deleted) bool) Rule {
	return Rule{
		Target: target,
		Source: source,
		Field:  field,
		Match: func(p game.Prototype, vnum storage.Vnum) bool {
			t, ok := p.(T)
			return ok && match(t, vnum)
		},
		Strip: func(p game.Prototype, d *Deleted) bool {
			t, ok := p.(T)
			return ok && match(t, d.Vnum) && strip(t, d)
		},
	}
}

// WorldRepair fixes live state that refers to the deleted prototype and
// returns how many things it changed.
type WorldRepair func(dict *game.Dictionary, w *world.World, d *Deleted) int

// Refresh rebuilds derived data once the stores are repaired.
type Refresh func(dict *game.Dictionary, w *world.World, d *Deleted) error

// Registry lists everything a delete of each kind has to repair.
type Registry struct {
	rules   []Rule
	world   map[game.Kind][]WorldRepair
	refresh map[game.Kind][]Refresh
}

func NewRegistry() *Registry {
	return &Registry{
		world:   map[game.Kind][]WorldRepair{},
		refresh: map[game.Kind][]Refresh{},
	}
}

// DefaultRegistry knows every reference the content tables can hold.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	registerBook(r)
	registerEvent(r)
	registerGeneric(r)
	registerAdventure(r)
	registerBuilding(r)
	registerCrop(r)
	registerSector(r)
	return r
}

func (r *Registry) AddRules(rules ...Rule) {
	r.rules = append(r.rules, rules...)
}

func (r *Registry) AddWorldRepair(kind game.Kind, fn WorldRepair) {
	r.world[kind] = append(r.world[kind], fn)
}

func (r *Registry) AddRefresh(kind game.Kind, fn Refresh) {
	r.refresh[kind] = append(r.refresh[kind], fn)
}

// Rules returns the rules whose target is kind, in registration order.
func (r *Registry) Rules(target game.Kind) []Rule {
	var out []Rule
	for _, rl := range r.rules {
		if rl.Target == target {
			out = append(out, rl)
		}
	}
	return out
}

// Sources returns the kinds that can refer to target, without duplicates.
func (r *Registry) Sources(target game.Kind) []game.Kind {
	var out []game.Kind
	seen := map[game.Kind]bool{}
	for _, rl := range r.Rules(target) {
		if !seen[rl.Source] {
			seen[rl.Source] = true
			out = append(out, rl.Source)
		}
	}
	return out
}

// requirementRules covers every requirement list that can name target.
func requirementRules(target game.Kind) []Rule {
	return []Rule{
		rule(target, game.KindQuest, "tasks",
			func(q *game.Quest, v storage.Vnum) bool { return q.Tasks.HasRef(target, v) },
			func(q *game.Quest, d *Deleted) bool { return q.Tasks.RemoveRef(target, d.Vnum) }),
		rule(target, game.KindQuest, "prerequisites",
			func(q *game.Quest, v storage.Vnum) bool { return q.Prerequisites.HasRef(target, v) },
			func(q *game.Quest, d *Deleted) bool { return q.Prerequisites.RemoveRef(target, d.Vnum) }),
		rule(target, game.KindProgress, "tasks",
			func(p *game.Progress, v storage.Vnum) bool { return p.Tasks.HasRef(target, v) },
			func(p *game.Progress, d *Deleted) bool { return p.Tasks.RemoveRef(target, d.Vnum) }),
		rule(target, game.KindSocial, "requirements",
			func(s *game.Social, v storage.Vnum) bool { return s.Requirements.HasRef(target, v) },
			func(s *game.Social, d *Deleted) bool { return s.Requirements.RemoveRef(target, d.Vnum) }),
	}
}

// rewardRules covers quest and event rewards that can name target.
func rewardRules(target game.Kind) []Rule {
	return []Rule{
		rule(target, game.KindQuest, "rewards",
			func(q *game.Quest, v storage.Vnum) bool { return q.Rewards.HasRef(target, v) },
			func(q *game.Quest, d *Deleted) bool { return q.Rewards.RemoveRef(target, d.Vnum) }),
		rule(target, game.KindEvent, "rank rewards",
			func(e *game.Event, v storage.Vnum) bool { return e.RankRewards.HasRef(target, v) },
			func(e *game.Event, d *Deleted) bool { return e.RankRewards.RemoveRef(target, d.Vnum) }),
		rule(target, game.KindEvent, "threshold rewards",
			func(e *game.Event, v storage.Vnum) bool { return e.ThresholdRewards.HasRef(target, v) },
			func(e *game.Event, d *Deleted) bool { return e.ThresholdRewards.RemoveRef(target, d.Vnum) }),
	}
}

// checkQuests brings every player's active quests in line with the quest
// table.
func checkQuests(dict *game.Dictionary, w *world.World, _ *Deleted) error {
	w.ForEachPlayer(func(p *world.Player) {
		p.CheckQuests(dict.Quests.Find)
	})
	return nil
}
