package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:    "stats",
	Short:  "Show per-lobe and global entry counts",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		lobe, _ := cmd.Flags().GetString("lobe")

		c, err := buildCoordinator()
		if err != nil {
			return err
		}

		result := c.Stats(lobe)
		if jsonOutput {
			return printJSON(result)
		}
		for name, s := range result {
			fmt.Printf("%s: %d entries (%d fresh, %d stale, %d corrupt), %d/%d bytes\n",
				name, s.TotalEntries, s.FreshCount, s.StaleCount, s.CorruptCount, s.TotalBytes, s.BudgetBytes)
		}
		return nil
	},
}
