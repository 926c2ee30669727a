package storage

import (
	"strings"

	"golang.org/x/text/cases"
)

// Match ranks how well a name matched a lookup string.
type Match int

const (
	NoMatch Match = iota
	NormalizedMatch
	AbbrevMatch
	ExactMatch
)

// Fold case-folds s for comparison.
func Fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Normalize folds s and drops spaces, dashes and apostrophes, so
// "Guardian Tongue" and "guardian-tongue" both become "guardiantongue".
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-', '\'':
			return -1
		}
		return r
	}, Fold(s))
}

// MatchName compares input against name. Abbreviations (prefixes of the
// whole name) count only when exact is false; normalized comparison only
// when normalize is true.
func MatchName(input, name string, exact, normalize bool) Match {
	in, nm := Fold(input), Fold(name)
	if in == "" || nm == "" {
		return NoMatch
	}

	if in == nm {
		return ExactMatch
	}
	if !exact && strings.HasPrefix(nm, in) {
		return AbbrevMatch
	}
	if normalize {
		nin, nnm := Normalize(input), Normalize(name)
		if nin == nnm || (!exact && nin != "" && strings.HasPrefix(nnm, nin)) {
			return NormalizedMatch
		}
	}

	return NoMatch
}

// FindByName returns the best match among items. An exact match wins
// immediately; otherwise the first abbreviation, then the first normalized
// match, in the order items were given.
func FindByName[T any](items []T, name func(T) string, input string, exact, normalize bool) (T, bool) {
	var best T
	bestMatch := NoMatch

	for _, it := range items {
		m := MatchName(input, name(it), exact, normalize)
		if m == ExactMatch {
			return it, true
		}
		if m > bestMatch {
			best, bestMatch = it, m
		}
	}

	return best, bestMatch != NoMatch
}
