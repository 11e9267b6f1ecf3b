package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/untoldecay/memory-mcp/internal/bootstrapseed"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Seed a lobe's initial entries by scanning its repo root",
	RunE: func(cmd *cobra.Command, args []string) error {
		lobe, _ := cmd.Flags().GetString("lobe")
		root, _ := cmd.Flags().GetString("root")
		budgetMB, _ := cmd.Flags().GetInt("budget-mb")

		c, err := buildCoordinator()
		if err != nil {
			return err
		}

		result, err := c.Bootstrap(lobe, root, budgetMB, bootstrapseed.Scan)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(result)
		}
		for _, r := range result.Results {
			if r.Stored {
				fmt.Printf("seeded %s (%s)\n", r.ID, r.Topic)
			} else {
				fmt.Println(renderWarning(r.Warning))
			}
		}
		return nil
	},
}

func init() {
	bootstrapCmd.Flags().String("root", "", "repo root to scan and, if the lobe is unconfigured, auto-create")
	bootstrapCmd.Flags().Int("budget-mb", 0, "storage budget in MB for an auto-created lobe")
}
