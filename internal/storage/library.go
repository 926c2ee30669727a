package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"

	errorlist "github.com/pixil98/go-errors"
)

const indexFileName = "index.json"

// Table is the persistence view of a Store.
type Table interface {
	Kind() string
	Blocks() []int
	EncodeBlock(int) ([]byte, error)
}

type libraryIndex struct {
	Version uint  `json:"version"`
	Blocks  []int `json:"blocks"`
}

type blockRef struct {
	kind  string
	block int
}

// Library persists stores as one file per block of vnums plus an index file
// per kind. Writes are queued with SaveIndex/SaveBlock and performed by Flush;
// anything that fails to write stays queued for the next Flush.
type Library struct {
	root   string
	tables map[string]Table

	dirtyIndex  map[string]bool
	dirtyBlocks map[blockRef]bool

	mu sync.Mutex
}

func NewLibrary(root string) *Library {
	return &Library{
		root:        root,
		tables:      map[string]Table{},
		dirtyIndex:  map[string]bool{},
		dirtyBlocks: map[blockRef]bool{},
	}
}

func (l *Library) Root() string {
	return l.root
}

// Attach registers a table so its blocks can be written.
func (l *Library) Attach(t Table) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.tables[t.Kind()] = t
}

// SaveIndex queues the index file of kind for writing.
func (l *Library) SaveIndex(kind string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.dirtyIndex[kind] = true
}

// SaveBlock queues one block file of kind for writing.
func (l *Library) SaveBlock(kind string, block int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.dirtyBlocks[blockRef{kind: kind, block: block}] = true
}

// Pending returns the number of queued writes.
func (l *Library) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.dirtyIndex) + len(l.dirtyBlocks)
}

// Flush writes every queued block and index. Failed writes are kept queued
// and reported together.
func (l *Library) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	el := errorlist.NewErrorList()

	refs := make([]blockRef, 0, len(l.dirtyBlocks))
	for ref := range l.dirtyBlocks {
		refs = append(refs, ref)
	}
	slices.SortFunc(refs, func(a, b blockRef) int {
		if a.kind != b.kind {
			if a.kind < b.kind {
				return -1
			}
			return 1
		}
		return a.block - b.block
	})

	for _, ref := range refs {
		err := l.writeBlock(ref)
		if err != nil {
			el.Add(fmt.Errorf("writing %s block %d: %w", ref.kind, ref.block, err))
			continue
		}
		delete(l.dirtyBlocks, ref)
	}

	for kind := range l.dirtyIndex {
		err := l.writeIndex(kind)
		if err != nil {
			el.Add(fmt.Errorf("writing %s index: %w", kind, err))
			continue
		}
		delete(l.dirtyIndex, kind)
	}

	return el.Err()
}

func (l *Library) writeBlock(ref blockRef) error {
	t, ok := l.tables[ref.kind]
	if !ok {
		return fmt.Errorf("no table attached for %q", ref.kind)
	}

	data, err := t.EncodeBlock(ref.block)
	if err != nil {
		return err
	}

	path := l.blockPath(ref.kind, ref.block)
	if data == nil {
		err := os.Remove(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing empty block: %w", err)
		}
		return nil
	}

	err = os.MkdirAll(l.kindDir(ref.kind), 0755)
	if err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	return atomicWrite(path, data, 0644)
}

func (l *Library) writeIndex(kind string) error {
	t, ok := l.tables[kind]
	if !ok {
		return fmt.Errorf("no table attached for %q", kind)
	}

	idx := libraryIndex{
		Version: AssetVersion,
		Blocks:  t.Blocks(),
	}
	if idx.Blocks == nil {
		idx.Blocks = []int{}
	}

	jsonData, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling json: %w", err)
	}

	err = os.MkdirAll(l.kindDir(kind), 0755)
	if err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	return atomicWrite(filepath.Join(l.kindDir(kind), indexFileName), jsonData, 0644)
}

func (l *Library) kindDir(kind string) string {
	return filepath.Join(l.root, kind)
}

func (l *Library) blockPath(kind string, block int) string {
	return filepath.Join(l.kindDir(kind), strconv.Itoa(block)+".json")
}

// BlockDecoder is the load-side view of a Store.
type BlockDecoder interface {
	Table
	DecodeBlock([]byte) error
}

// Load reads every block listed in the kind's index into t and attaches it.
// A kind with no index yet loads as empty.
func (l *Library) Load(t BlockDecoder) error {
	kind := t.Kind()
	defer l.Attach(t)

	data, err := os.ReadFile(filepath.Join(l.kindDir(kind), indexFileName))
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("no library index, starting empty", "kind", kind)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s index: %w", kind, err)
	}

	var idx libraryIndex
	err = json.Unmarshal(data, &idx)
	if err != nil {
		return fmt.Errorf("unmarshalling %s index: %w", kind, err)
	}

	for _, block := range idx.Blocks {
		data, err := os.ReadFile(l.blockPath(kind, block))
		if err != nil {
			return fmt.Errorf("reading %s block %d: %w", kind, block, err)
		}

		err = t.DecodeBlock(data)
		if err != nil {
			return fmt.Errorf("loading %s block %d: %w", kind, block, err)
		}
	}

	return nil
}

// atomicWrite writes data to a temp file then renames it to the target path.
// This prevents partial or empty files if the process is interrupted.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			slog.Warn("failed to remove temp file after rename failure", "path", tmp, "error", removeErr)
		}
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
