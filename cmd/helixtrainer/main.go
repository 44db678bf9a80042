// Command helixtrainer is the process entrypoint: a cobra root command
// with "play" and "list" subcommands, grounded on the CLI sibling repo's
// root-command-plus-subcommands wiring (main.go's RunE/SilenceUsage/
// SilenceErrors/Execute-then-os.Exit idiom), trimmed to the two
// subcommands SPEC_FULL.md §6 names.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "helixtrainer",
		Short:         "Practice Helix-style modal keybindings against scored scenarios",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolP("verbose", "v", false, "log internal detail to stderr")

	root.AddCommand(newPlayCmd(), newListCmd())
	return root
}
