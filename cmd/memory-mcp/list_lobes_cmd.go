package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listLobesCmd = &cobra.Command{
	Use:    "list-lobes",
	Short:  "Show server mode and loaded lobe names (no per-lobe stats or config origin)",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildCoordinator()
		if err != nil {
			return err
		}

		type output struct {
			State string   `json:"state"`
			Lobes []string `json:"lobes"`
		}
		out := output{State: string(c.State()), Lobes: c.LobeNames()}

		if jsonOutput {
			return printJSON(out)
		}
		fmt.Printf("mode: %s\n", out.State)
		for _, l := range out.Lobes {
			fmt.Printf("  - %s\n", l)
		}
		return nil
	},
}
