package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

type Storer[T Record] interface {
	Kind() string
	Get(Vnum) T
	Find(Vnum) (T, bool)
	All() []T
}

type StoreOpt[T Record] func(*Store[T])

// WithOrder sets the secondary ordering returned by Sorted.
func WithOrder[T Record](cmp func(a, b T) int) StoreOpt[T] {
	return func(s *Store[T]) {
		s.order = cmp
	}
}

// WithBlocks overrides which library block a record is persisted in.
func WithBlocks[T Record](fn func(T) int) StoreOpt[T] {
	return func(s *Store[T]) {
		s.block = fn
	}
}

// Store is an in-memory table of prototypes keyed by vnum.
type Store[T Record] struct {
	kind    string
	records map[Vnum]T
	vnums   []Vnum // kept sorted

	order func(a, b T) int
	block func(T) int

	mu sync.RWMutex
}

func NewStore[T Record](kind string, opts ...StoreOpt[T]) *Store[T] {
	s := &Store[T]{
		kind:    kind,
		records: map[Vnum]T{},
		block:   func(rec T) int { return rec.Vnum().Block() },
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Store[T]) Kind() string {
	return s.kind
}

// Insert adds rec under its vnum. Inserting over an existing vnum is an
// invariant violation: it is logged and the existing record is returned
// untouched along with false.
func (s *Store[T]) Insert(rec T) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vnum := rec.Vnum()
	if existing, ok := s.records[vnum]; ok {
		slog.Error("attempt to insert prototype at existing vnum", "kind", s.kind, "vnum", vnum)
		return existing, false
	}

	s.records[vnum] = rec
	i, _ := slices.BinarySearch(s.vnums, vnum)
	s.vnums = slices.Insert(s.vnums, i, vnum)

	return rec, true
}

// Remove detaches the record from the store and hands it back. The caller
// still owns the value and may keep reading it.
func (s *Store[T]) Remove(vnum Vnum) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[vnum]
	if !ok {
		return rec, false
	}

	delete(s.records, vnum)
	if i, found := slices.BinarySearch(s.vnums, vnum); found {
		s.vnums = slices.Delete(s.vnums, i, i+1)
	}

	return rec, true
}

func (s *Store[T]) Get(vnum Vnum) T {
	rec, _ := s.Find(vnum)
	return rec
}

func (s *Store[T]) Find(vnum Vnum) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[vnum]
	return rec, ok
}

func (s *Store[T]) Has(vnum Vnum) bool {
	_, ok := s.Find(vnum)
	return ok
}

func (s *Store[T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

// All returns every record in vnum order.
func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.vnums))
	for _, v := range s.vnums {
		out = append(out, s.records[v])
	}
	return out
}

// Sorted returns every record in the store's secondary order, falling back to
// vnum order when none was configured. Ties keep vnum order.
func (s *Store[T]) Sorted() []T {
	out := s.All()
	if s.order != nil {
		slices.SortStableFunc(out, s.order)
	}
	return out
}

// First returns the lowest-vnum record.
func (s *Store[T]) First() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.vnums) == 0 {
		var zero T
		return zero, false
	}
	return s.records[s.vnums[0]], true
}

// NextFree returns the lowest unused vnum at or above floor.
func (s *Store[T]) NextFree(floor Vnum) Vnum {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if floor < 0 {
		floor = 0
	}
	i, _ := slices.BinarySearch(s.vnums, floor)
	next := floor
	for ; i < len(s.vnums) && s.vnums[i] == next; i++ {
		next++
	}
	return next
}

// BlockOf returns the library block rec is persisted in.
func (s *Store[T]) BlockOf(rec T) int {
	return s.block(rec)
}

// Blocks returns the distinct library blocks that currently hold records.
func (s *Store[T]) Blocks() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[int]bool{}
	var blocks []int
	for _, v := range s.vnums {
		b := s.block(s.records[v])
		if !seen[b] {
			seen[b] = true
			blocks = append(blocks, b)
		}
	}
	slices.Sort(blocks)
	return blocks
}

// EncodeBlock serializes every record in block n. It returns nil data when
// the block is empty.
func (s *Store[T]) EncodeBlock(n int) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var assets []*Asset[T]
	for _, v := range s.vnums {
		rec := s.records[v]
		if s.block(rec) != n {
			continue
		}
		assets = append(assets, &Asset[T]{
			Version: AssetVersion,
			Vnum:    v,
			Spec:    rec,
		})
	}

	if len(assets) == 0 {
		return nil, nil
	}

	jsonData, err := json.MarshalIndent(assets, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s block %d: %w", s.kind, n, err)
	}
	return jsonData, nil
}

// DecodeBlock parses a block file and inserts its records. Duplicate vnums
// are logged by Insert and skipped.
func (s *Store[T]) DecodeBlock(data []byte) error {
	var assets []*Asset[T]
	err := json.Unmarshal(data, &assets)
	if err != nil {
		return fmt.Errorf("unmarshalling assets: %w", err)
	}

	for i, asset := range assets {
		if asset == nil {
			return fmt.Errorf("asset %d is empty", i)
		}

		err := asset.Validate()
		if err != nil {
			return fmt.Errorf("validating vnum %d: %w", asset.Vnum, err)
		}

		asset.Spec.SetVnum(asset.Vnum)
		s.Insert(asset.Spec)
	}

	return nil
}
