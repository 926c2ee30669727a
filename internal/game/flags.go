package game

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-olc/internal/storage"
)

// Flags is a bitset; each prototype type has its own bit meanings.
type Flags uint64

func (f Flags) Has(b Flags) bool {
	return b != 0 && f&b == b
}

func (f Flags) HasAny(b Flags) bool {
	return f&b != 0
}

func (f *Flags) Set(b Flags) {
	*f |= b
}

func (f *Flags) Clear(b Flags) {
	*f &^= b
}

// SetTo sets or clears b.
func (f *Flags) SetTo(b Flags, on bool) {
	if on {
		f.Set(b)
	} else {
		f.Clear(b)
	}
}

func (f *Flags) Toggle(b Flags) {
	*f ^= b
}

// FlagNames maps bit positions to names, bit 0 first.
type FlagNames []string

// Parse finds the flag for name, accepting abbreviations.
func (n FlagNames) Parse(name string) (Flags, error) {
	idx := make([]int, len(n))
	for i := range n {
		idx[i] = i
	}

	i, ok := storage.FindByName(idx, func(i int) string { return n[i] }, name, false, true)
	if !ok {
		return 0, fmt.Errorf("unknown flag %q", name)
	}
	return Flags(1) << i, nil
}

// Describe lists the names of every set bit, or "none".
func (n FlagNames) Describe(f Flags) string {
	var out []string
	for i, name := range n {
		if f.Has(Flags(1) << i) {
			out = append(out, name)
		}
	}
	if len(out) == 0 {
		return "none"
	}
	return strings.Join(out, ", ")
}

// TypeNames maps enum values to names.
type TypeNames []string

// Parse finds the enum value for name, accepting abbreviations.
func (n TypeNames) Parse(name string) (int, error) {
	idx := make([]int, len(n))
	for i := range n {
		idx[i] = i
	}

	i, ok := storage.FindByName(idx, func(i int) string { return n[i] }, name, false, true)
	if !ok {
		return 0, fmt.Errorf("unknown type %q", name)
	}
	return i, nil
}

// Name returns the name for value v.
func (n TypeNames) Name(v int) string {
	if v < 0 || v >= len(n) {
		return "UNKNOWN"
	}
	return n[v]
}

// Valid reports whether v is a known value.
func (n TypeNames) Valid(v int) bool {
	return v >= 0 && v < len(n)
}
