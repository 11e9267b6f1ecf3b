package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var diagnoseCmd = &cobra.Command{
	Use:    "diagnose",
	Short:  "Report coordinator health, config origin, and recent crash history",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		showHistory, _ := cmd.Flags().GetBool("show-crash-history")

		c, err := buildCoordinator()
		if err != nil {
			return err
		}

		result, err := c.Diagnose(showHistory)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(result)
		}

		md := fmt.Sprintf("# Diagnose\n\n**state**: %s\n**config origin**: %s\n\n", result.State, result.ConfigOrigin)
		for _, h := range result.Lobes {
			status := "healthy"
			if !h.Healthy {
				status = "degraded: " + h.Err
			}
			md += fmt.Sprintf("- `%s`: %s\n", h.Name, status)
		}
		if result.CrashLatest != nil {
			md += fmt.Sprintf("\n## Latest crash\n\n%s — %s\n", result.CrashLatest.ID, result.CrashLatest.Error)
		}

		if isTTY() {
			rendered, err := glamour.Render(md, "dark")
			if err == nil {
				fmt.Print(rendered)
				return nil
			}
		}
		fmt.Fprintln(os.Stdout, md)
		return nil
	},
}

func init() {
	diagnoseCmd.Flags().Bool("show-crash-history", false, "include recent crash journal history")
}
