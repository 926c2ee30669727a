package game

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-olc/internal/storage"
)

// reachable returns every vnum reachable from start through one or more
// edges, in ascending order. start itself is included only when it sits on
// a cycle. Edges to vnums missing from edges are followed no further.
func reachable(start storage.Vnum, edges map[storage.Vnum]RelationList) RelationList {
	seen := map[storage.Vnum]bool{}
	queue := append([]storage.Vnum{}, edges[start]...)

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if seen[v] {
			continue
		}
		seen[v] = true
		queue = append(queue, edges[v]...)
	}

	out := make(RelationList, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// ClosureOf computes g's relations against the stored generics, reading g's
// own direct relations rather than the stored copy's. It suits an unsaved
// buffer, whose computed relations are stale until it is committed.
func ClosureOf(g *Generic, generics *storage.Store[*Generic]) RelationList {
	all := generics.All()

	edges := make(map[storage.Vnum]RelationList, len(all)+1)
	for _, other := range all {
		edges[other.Vnum()] = other.Relations
	}
	edges[g.Vnum()] = g.Relations

	return reachable(g.Vnum(), edges)
}

// ComputeGenericRelations rebuilds every generic's computed relations from
// the direct relation lists in the store.
func ComputeGenericRelations(generics *storage.Store[*Generic]) error {
	all := generics.All()

	edges := make(map[storage.Vnum]RelationList, len(all))
	for _, g := range all {
		edges[g.Vnum()] = g.Relations
	}

	for _, g := range all {
		g.computed = reachable(g.Vnum(), edges)
	}

	// Every direct edge out of the closure must land back inside it.
	for _, g := range all {
		for _, v := range g.computed {
			for _, w := range edges[v] {
				if !g.computed.Has(w) {
					return fmt.Errorf("generic %d: closure missing %d via %d", g.Vnum(), w, v)
				}
			}
		}
	}

	return nil
}
