package command

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/journal"
	"github.com/pixil98/go-olc/internal/storage"
	"github.com/pixil98/go-olc/internal/world"
)

type StorageConfig struct {
	LibraryPath string `json:"library_path"`
	JournalPath string `json:"journal_path"`
	WorldPath   string `json:"world_path,omitempty"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()

	if c.LibraryPath == "" {
		el.Add(fmt.Errorf("storage: library_path is required"))
	} else if info, err := os.Stat(c.LibraryPath); err != nil {
		el.Add(fmt.Errorf("storage: invalid library_path %q: %w", c.LibraryPath, err))
	} else if !info.IsDir() {
		el.Add(fmt.Errorf("storage: library_path %q is not a directory", c.LibraryPath))
	}

	if c.JournalPath == "" {
		el.Add(fmt.Errorf("storage: journal_path is required"))
	} else if _, err := os.Stat(filepath.Dir(c.JournalPath)); err != nil {
		el.Add(fmt.Errorf("storage: invalid journal_path %q: %w", c.JournalPath, err))
	}

	if c.WorldPath != "" {
		if _, err := os.Stat(c.WorldPath); err != nil {
			el.Add(fmt.Errorf("storage: invalid world_path %q: %w", c.WorldPath, err))
		}
	}

	return el.Err()
}

// BuildDictionary loads every prototype table from the library.
func (c *StorageConfig) BuildDictionary() (*game.Dictionary, *storage.Library, error) {
	lib := storage.NewLibrary(c.LibraryPath)
	dict := game.NewDictionary()

	if err := dict.Load(lib); err != nil {
		return nil, nil, fmt.Errorf("loading library %q: %w", c.LibraryPath, err)
	}

	return dict, lib, nil
}

// BuildWorld seeds the live world from a snapshot, or starts it empty.
func (c *StorageConfig) BuildWorld() (*world.World, error) {
	if c.WorldPath == "" {
		return world.New(), nil
	}
	return world.LoadSnapshot(c.WorldPath)
}

func (c *StorageConfig) OpenJournal() (*journal.Journal, error) {
	return journal.Open(c.JournalPath)
}
