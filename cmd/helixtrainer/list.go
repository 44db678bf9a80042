package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bug-ops/helixtrainer/scenario"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <scenario-file>",
		Short: "Print the scenarios available in a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := scenario.NewLoader()
			catalog, err := loader.Load(args[0])
			if err != nil {
				return err
			}
			for _, sc := range catalog.Scenarios {
				fmt.Printf("%-20s %-30s %s\n", sc.ID, sc.Name, sc.Description)
			}
			return nil
		},
	}
	return cmd
}
