package cascade

import (
	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
)

// Searcher finds stored references with the same rules a delete uses.
type Searcher struct {
	dict     *game.Dictionary
	registry *Registry
}

func NewSearcher(dict *game.Dictionary, r *Registry) *Searcher {
	if r == nil {
		r = DefaultRegistry()
	}
	return &Searcher{dict: dict, registry: r}
}

// Search lists every stored prototype that refers to kind/vnum, grouped by
// rule in registration order.
func (s *Searcher) Search(kind game.Kind, vnum storage.Vnum) []Ref {
	var out []Ref
	for _, rl := range s.registry.Rules(kind) {
		for _, p := range s.dict.All(rl.Source) {
			if p.Kind() == kind && p.Vnum() == vnum {
				continue
			}
			if rl.Match(p, vnum) {
				out = append(out, Ref{Kind: p.Kind(), Vnum: p.Vnum(), Name: p.Label(), Field: rl.Field})
			}
		}
	}
	return out
}

// Search lists the stored references a delete of kind/vnum would repair.
func (d *Deleter) Search(kind game.Kind, vnum storage.Vnum) []Ref {
	return NewSearcher(d.dict, d.registry).Search(kind, vnum)
}
