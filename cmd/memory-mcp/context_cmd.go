package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/untoldecay/memory-mcp/internal/format"
	"github.com/untoldecay/memory-mcp/internal/store"
)

var contextCmd = &cobra.Command{
	Use:   "context [query]",
	Short: "Search for relevant context, or show a session briefing when no query is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lobe, _ := cmd.Flags().GetString("lobe")
		maxResults, _ := cmd.Flags().GetInt("max-results")
		minMatch, _ := cmd.Flags().GetFloat64("min-match")
		referenceFilter, _ := cmd.Flags().GetString("reference-filter")

		c, err := buildCoordinator()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			briefing, err := c.Briefing(lobe)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(briefing)
			}
			if briefing.BootstrapSuggested {
				fmt.Println("store is empty — consider running `memory-mcp bootstrap`")
				return nil
			}
			for _, section := range briefing.Sections {
				fmt.Printf("## %s\n", section.Title)
				for _, e := range section.Entries {
					fmt.Printf("- %s: %s\n", e.ID, e.Title)
				}
			}
			fmt.Print(format.StaleBlock(briefing.StaleDetails))
			return nil
		}

		req := store.ContextRequest{Query: args[0], Max: maxResults, MinMatch: minMatch, ReferenceFilter: referenceFilter}
		matches := c.ContextSearch(lobe, lobe, req)
		if jsonOutput {
			return printJSON(matches)
		}
		for _, m := range matches {
			fmt.Printf("%-20s %-6.2f %s (%s, lobe %s)\n", m.ID, m.Confidence, m.Title, m.Topic, m.Lobe)
		}
		return nil
	},
}

func init() {
	contextCmd.Flags().Int("max-results", 0, "cap on results (default 8)")
	contextCmd.Flags().Float64("min-match", 0, "minimum score for non-user entries")
	contextCmd.Flags().String("reference-filter", "", "only consider entries whose references contain this substring")
}
