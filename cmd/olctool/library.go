package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
	"gopkg.in/yaml.v3"
)

type toolOptions struct {
	library string
	format  string
}

func (o *toolOptions) yaml() (bool, error) {
	switch o.format {
	case "text", "":
		return false, nil
	case "yaml":
		return true, nil
	default:
		return false, fmt.Errorf("unknown output format %q", o.format)
	}
}

// load reads the whole library the way the server does at boot.
func (o *toolOptions) load() (*game.Dictionary, error) {
	info, err := os.Stat(o.library)
	if err != nil {
		return nil, fmt.Errorf("opening library: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("library %q is not a directory", o.library)
	}

	dict := game.NewDictionary()
	if err := dict.Load(storage.NewLibrary(o.library)); err != nil {
		return nil, err
	}
	return dict, nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
