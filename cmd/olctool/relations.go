package main

import (
	"fmt"

	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
	"github.com/spf13/cobra"
)

type relationView struct {
	Vnum     storage.Vnum      `yaml:"vnum"`
	Name     string            `yaml:"name"`
	Declared game.RelationList `yaml:"declared"`
	Computed game.RelationList `yaml:"computed"`
}

func relationsCmd(opts *toolOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relations <generic vnum>",
		Short: "Show a generic's declared and computed relations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelations(cmd, opts, args[0])
		},
	}
	return cmd
}

func runRelations(cmd *cobra.Command, opts *toolOptions, vnumArg string) error {
	asYAML, err := opts.yaml()
	if err != nil {
		return err
	}
	vnum, err := storage.ParseVnum(vnumArg)
	if err != nil {
		return err
	}

	dict, err := opts.load()
	if err != nil {
		return err
	}
	g, ok := dict.Generics.Find(vnum)
	if !ok {
		return fmt.Errorf("there is no generic %d", vnum)
	}

	v := relationView{
		Vnum:     vnum,
		Name:     g.Name,
		Declared: g.Relations.Copy(),
		Computed: g.ComputedRelations().Copy(),
	}

	out := cmd.OutOrStdout()
	if asYAML {
		return writeYAML(out, v)
	}

	fmt.Fprintf(out, "[%d] %s\n", v.Vnum, v.Name)
	fmt.Fprintf(out, "Declared: %s\n", vnumsOrNone(v.Declared))
	fmt.Fprintf(out, "Computed: %s\n", vnumsOrNone(v.Computed))
	return nil
}

func vnumsOrNone(rl game.RelationList) string {
	if len(rl) == 0 {
		return "none"
	}
	return fmt.Sprint([]storage.Vnum(rl))
}
