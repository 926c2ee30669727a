package main

import (
	"fmt"

	"github.com/pixil98/go-olc/internal/audit"
	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
	"github.com/spf13/cobra"
)

func auditCmd(opts *toolOptions) *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "audit [type [vnum]]",
		Short: "Run the audit checklists over stored content",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(cmd, opts, args, check)
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "Exit with an error when anything is flagged")
	return cmd
}

func runAudit(cmd *cobra.Command, opts *toolOptions, args []string, check bool) error {
	asYAML, err := opts.yaml()
	if err != nil {
		return err
	}

	kinds := game.ContentKinds
	vnum := storage.Nothing
	if len(args) > 0 {
		k, err := game.ParseKind(args[0])
		if err != nil {
			return err
		}
		kinds = []game.Kind{k}
	}
	if len(args) > 1 {
		vnum, err = storage.ParseVnum(args[1])
		if err != nil {
			return err
		}
	}

	dict, err := opts.load()
	if err != nil {
		return err
	}
	a := audit.New(dict)

	var reports []*audit.Report
	if vnum != storage.Nothing {
		p, ok := dict.Lookup(kinds[0], vnum)
		if !ok {
			return fmt.Errorf("there is no %s %d", kinds[0], vnum)
		}
		_, findings := a.Audit(p)
		reports = append(reports, &audit.Report{Kind: kinds[0], Audited: 1, Findings: findings})
	} else {
		for _, k := range kinds {
			reports = append(reports, a.AuditAll(k))
		}
	}

	flagged := 0
	for _, r := range reports {
		flagged += len(r.Flagged())
	}

	out := cmd.OutOrStdout()
	if asYAML {
		if err := writeYAML(out, reports); err != nil {
			return err
		}
	} else {
		for _, r := range reports {
			if len(r.Findings) == 0 {
				continue
			}
			fmt.Fprintf(out, "%s (%d audited, %d flagged):\n", r.Kind, r.Audited, len(r.Flagged()))
			for _, f := range r.Findings {
				fmt.Fprintf(out, "  %s %s\n", f, f.Severity)
			}
		}
		if flagged == 0 {
			fmt.Fprintln(out, "No problems found.")
		}
	}

	if check && flagged > 0 {
		return fmt.Errorf("audit flagged %d prototypes", flagged)
	}
	return nil
}
