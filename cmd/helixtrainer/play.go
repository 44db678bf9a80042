package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bug-ops/helixtrainer/internal/logging"
	"github.com/bug-ops/helixtrainer/scenario"
	"github.com/bug-ops/helixtrainer/session"
	"github.com/bug-ops/helixtrainer/tui"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play <scenario-file> [scenario-id]",
		Short: "Launch the interactive trainer for one scenario",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			logger := logging.New(verbose)

			loader := scenario.NewLoader()
			catalog, err := loader.Load(args[0])
			if err != nil {
				return err
			}

			sc, err := pickScenario(catalog, args)
			if err != nil {
				return err
			}

			sess := session.New(sc, time.Now())
			sess.SetLogger(logger)

			p := tea.NewProgram(tui.New(sess))
			_, err = p.Run()
			return err
		},
	}
	return cmd
}

func pickScenario(catalog scenario.Catalog, args []string) (scenario.Scenario, error) {
	if len(args) == 2 {
		sc, ok := catalog.ByID(args[1])
		if !ok {
			return scenario.Scenario{}, fmt.Errorf("scenario %q not found in %s", args[1], args[0])
		}
		return sc, nil
	}
	if len(catalog.Scenarios) == 0 {
		return scenario.Scenario{}, fmt.Errorf("%s contains no scenarios", args[0])
	}
	return catalog.Scenarios[0], nil
}
