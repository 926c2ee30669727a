package main

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-olc/internal/display"
	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
	"github.com/spf13/cobra"
)

type listEntry struct {
	Vnum          storage.Vnum `yaml:"vnum"`
	Name          string       `yaml:"name"`
	InDevelopment bool         `yaml:"in_development,omitempty"`
}

func listCmd(opts *toolOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <type> [filter]",
		Short: "List the stored prototypes of one type",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := ""
			if len(args) > 1 {
				filter = args[1]
			}
			return runList(cmd, opts, args[0], filter)
		},
	}
	return cmd
}

func runList(cmd *cobra.Command, opts *toolOptions, kindArg, filter string) error {
	asYAML, err := opts.yaml()
	if err != nil {
		return err
	}
	kind, err := game.ParseKind(kindArg)
	if err != nil {
		return err
	}

	dict, err := opts.load()
	if err != nil {
		return err
	}

	filter = storage.Fold(filter)
	entries := []listEntry{}
	for _, p := range dict.All(kind) {
		if filter != "" && !strings.Contains(storage.Fold(p.Label()), filter) {
			continue
		}
		e := listEntry{Vnum: p.Vnum(), Name: p.Label()}
		if d, ok := p.(game.Developable); ok {
			e.InDevelopment = d.InDevelopment()
		}
		entries = append(entries, e)
	}

	out := cmd.OutOrStdout()
	if asYAML {
		return writeYAML(out, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintf(out, "No %ss found.\n", kind)
		return nil
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("[%5d] %s", e.Vnum, e.Name)
	}
	for _, l := range display.Columns(lines) {
		fmt.Fprintln(out, l)
	}
	return nil
}
