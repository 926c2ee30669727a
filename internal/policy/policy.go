package policy

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
	"gopkg.in/yaml.v3"
)

// Policy decides the side effects of a delete that are a matter of taste
// rather than correctness: which dependents get flagged in-development when
// they lose a reference, how many of each kind must always remain, and what
// sector a deleted crop's fields revert to.
type Policy struct {
	Version       int               `yaml:"version"`
	InDevelopment []Rule            `yaml:"in_development"`
	MinimumCounts map[game.Kind]int `yaml:"minimum_counts"`
	// ClimateSectors maps a climate name to the sector its fields become.
	ClimateSectors map[string]storage.Vnum `yaml:"climate_sectors"`

	marks    map[pair]bool
	climates map[game.Flags]storage.Vnum
}

// Rule sets whether a Source prototype that loses a reference into Target
// is flagged in-development.
type Rule struct {
	Source game.Kind `yaml:"source"`
	Target game.Kind `yaml:"target"`
	Mark   bool      `yaml:"mark"`
}

type pair struct {
	source, target game.Kind
}

// Default marks every dependent in-development except events that lose an
// event-points reward target, and requires one of each map-critical kind.
func Default() *Policy {
	p := &Policy{
		Version: 1,
		InDevelopment: []Rule{
			{Source: game.KindEvent, Target: game.KindEvent, Mark: false},
		},
		MinimumCounts: map[game.Kind]int{
			game.KindBuilding:  1,
			game.KindSector:    1,
			game.KindAdventure: 1,
			game.KindCrop:      1,
			game.KindGlobal:    1,
		},
	}
	p.index()
	return p
}

// Load reads overrides from the YAML file at path on top of Default. An
// empty path returns the defaults.
func Load(path string) (*Policy, error) {
	p := Default()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading policy: %w", err)
	}

	var overrides Policy
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("loading policy: %w", err)
	}

	if err := overrides.Validate(); err != nil {
		return nil, fmt.Errorf("loading policy: %w", err)
	}

	p.InDevelopment = append(p.InDevelopment, overrides.InDevelopment...)
	for k, n := range overrides.MinimumCounts {
		p.MinimumCounts[k] = n
	}
	if len(overrides.ClimateSectors) > 0 {
		p.ClimateSectors = overrides.ClimateSectors
	}
	p.index()

	return p, nil
}

// Validate checks the kinds and counts named by the policy.
func (p *Policy) Validate() error {
	el := errors.NewErrorList()

	if p.Version != 1 {
		el.Add(fmt.Errorf("unsupported version: %d", p.Version))
	}
	for i, r := range p.InDevelopment {
		if !known(r.Source) {
			el.Add(fmt.Errorf("rule %d: unknown source %q", i, r.Source))
		}
		if !known(r.Target) {
			el.Add(fmt.Errorf("rule %d: unknown target %q", i, r.Target))
		}
	}
	for k, n := range p.MinimumCounts {
		if !known(k) {
			el.Add(fmt.Errorf("minimum count for unknown kind %q", k))
		}
		if n < 0 {
			el.Add(fmt.Errorf("minimum count for %s must not be negative", k))
		}
	}
	seen := map[game.Flags]string{}
	for name, v := range p.ClimateSectors {
		f, err := game.ClimateNames.Parse(name)
		if err != nil {
			el.Add(fmt.Errorf("climate sectors: %w", err))
			continue
		}
		if prev, dup := seen[f]; dup {
			el.Add(fmt.Errorf("climate sectors: %q and %q name the same climate", prev, name))
		}
		seen[f] = name
		if v < 0 {
			el.Add(fmt.Errorf("climate sectors: %s sector must not be negative", name))
		}
	}

	return el.Err()
}

// MarksInDevelopment reports whether a source prototype that lost a
// reference into target should be flagged in-development. Later rules win.
func (p *Policy) MarksInDevelopment(source, target game.Kind) bool {
	mark, ok := p.marks[pair{source, target}]
	if !ok {
		return true
	}
	return mark
}

// MinimumCount is how many prototypes of kind must survive any delete.
func (p *Policy) MinimumCount(kind game.Kind) int {
	return p.MinimumCounts[kind]
}

// ClimateSector returns the sector mapped to the first of climate's flags,
// in climate order, that has one.
func (p *Policy) ClimateSector(climate game.Flags) (storage.Vnum, bool) {
	if p == nil {
		return storage.Nothing, false
	}
	for i := range game.ClimateNames {
		f := game.Flags(1) << i
		if !climate.Has(f) {
			continue
		}
		if v, ok := p.climates[f]; ok {
			return v, true
		}
	}
	return storage.Nothing, false
}

func (p *Policy) index() {
	p.marks = make(map[pair]bool, len(p.InDevelopment))
	for _, r := range p.InDevelopment {
		p.marks[pair{r.Source, r.Target}] = r.Mark
	}
	p.climates = make(map[game.Flags]storage.Vnum, len(p.ClimateSectors))
	for name, v := range p.ClimateSectors {
		if f, err := game.ClimateNames.Parse(name); err == nil {
			p.climates[f] = v
		}
	}
}

func known(k game.Kind) bool {
	for _, kind := range game.AllKinds {
		if kind == k {
			return true
		}
	}
	return false
}
