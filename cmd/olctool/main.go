package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &toolOptions{}
	root := &cobra.Command{
		Use:          "olctool",
		Short:        "Inspect an OLC content library without starting the server",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.library, "library", "l", ".", "Path to the content library")
	root.PersistentFlags().StringVarP(&opts.format, "output", "o", "text", "Output format: text or yaml")
	root.AddCommand(auditCmd(opts))
	root.AddCommand(searchCmd(opts))
	root.AddCommand(relationsCmd(opts))
	root.AddCommand(listCmd(opts))
	return root
}
