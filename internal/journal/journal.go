package journal

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
	bbolt "go.etcd.io/bbolt"
)

var bucketDeletes = []byte("deletes")

// State is how far a journaled delete got.
type State string

const (
	// StateStarted is written before the prototype leaves its store. An
	// entry still started after a restart means the cascade never finished.
	StateStarted State = "started"
	// StateRepaired means every in-memory repair ran and only the library
	// writes are outstanding.
	StateRepaired State = "repaired"
)

// Entry records one delete in flight.
type Entry struct {
	ID      string       `json:"id"`
	Kind    game.Kind    `json:"kind"`
	Vnum    storage.Vnum `json:"vnum"`
	State   State        `json:"state"`
	Touched []game.Kind  `json:"touched,omitempty"`
	Started time.Time    `json:"started"`
	Updated time.Time    `json:"updated"`
}

// Journal is a write-ahead log of cascading deletes kept in a bbolt file.
// An entry lives from just before store removal until the library flush
// that persists the cascade succeeds.
type Journal struct {
	db  *bbolt.DB
	now func() time.Time
}

// Open opens or creates the journal at path.
func Open(path string) (*Journal, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening delete journal %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketDeletes)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating delete journal bucket: %w", err)
	}

	return &Journal{db: db, now: time.Now}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) Path() string {
	return j.db.Path()
}

// Begin records the start of a delete and returns its entry.
func (j *Journal) Begin(kind game.Kind, vnum storage.Vnum) (*Entry, error) {
	now := j.now()
	e := &Entry{
		ID:      uuid.NewString(),
		Kind:    kind,
		Vnum:    vnum,
		State:   StateStarted,
		Started: now,
		Updated: now,
	}

	if err := j.put(e); err != nil {
		return nil, fmt.Errorf("journaling delete of %s %d: %w", kind, vnum, err)
	}
	return e, nil
}

// Repaired moves an entry to StateRepaired and records which kinds still
// have to be written.
func (j *Journal) Repaired(e *Entry, touched []game.Kind) error {
	e.State = StateRepaired
	e.Touched = slices.Clone(touched)
	e.Updated = j.now()

	if err := j.put(e); err != nil {
		return fmt.Errorf("journaling repair of %s %d: %w", e.Kind, e.Vnum, err)
	}
	return nil
}

// Complete drops an entry once its cascade is on disk.
func (j *Journal) Complete(id string) error {
	return j.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDeletes).Delete([]byte(id))
	})
}

// Entries returns every outstanding entry, oldest first.
func (j *Journal) Entries() ([]*Entry, error) {
	var out []*Entry

	err := j.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDeletes).ForEach(func(k, v []byte) error {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return fmt.Errorf("decoding entry %s: %w", k, err)
			}
			out = append(out, &e)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(out, func(a, b *Entry) int {
		return a.Started.Compare(b.Started)
	})
	return out, nil
}

// Settle completes every repaired entry. It is called after a library flush
// succeeds and returns how many entries were cleared.
func (j *Journal) Settle() (int, error) {
	entries, err := j.Entries()
	if err != nil {
		return 0, err
	}

	n := 0
	for _, e := range entries {
		if e.State != StateRepaired {
			continue
		}
		if err := j.Complete(e.ID); err != nil {
			return n, fmt.Errorf("completing %s: %w", e.ID, err)
		}
		n++
	}
	return n, nil
}

func (j *Journal) put(e *Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return j.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDeletes).Put([]byte(e.ID), data)
	})
}
