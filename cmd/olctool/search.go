package main

import (
	"fmt"

	"github.com/pixil98/go-olc/internal/cascade"
	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
	"github.com/spf13/cobra"
)

func searchCmd(opts *toolOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <type> <vnum>",
		Short: "List everything that a delete would change",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts, args[0], args[1])
		},
	}
	return cmd
}

func runSearch(cmd *cobra.Command, opts *toolOptions, kindArg, vnumArg string) error {
	asYAML, err := opts.yaml()
	if err != nil {
		return err
	}
	kind, err := game.ParseKind(kindArg)
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
	if _, ok := dict.Lookup(kind, vnum); !ok {
		return fmt.Errorf("there is no %s %d", kind, vnum)
	}

	refs := cascade.NewSearcher(dict, nil).Search(kind, vnum)

	out := cmd.OutOrStdout()
	if asYAML {
		if refs == nil {
			refs = []cascade.Ref{}
		}
		return writeYAML(out, refs)
	}

	if len(refs) == 0 {
		fmt.Fprintf(out, "Nothing refers to %s %d.\n", kind, vnum)
		return nil
	}
	for _, r := range refs {
		fmt.Fprintf(out, "%-9s [%5d] %s (%s)\n", r.Kind, r.Vnum, r.Name, r.Field)
	}
	return nil
}
