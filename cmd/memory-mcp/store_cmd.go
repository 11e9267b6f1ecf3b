package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/untoldecay/memory-mcp/internal/entry"
	"github.com/untoldecay/memory-mcp/internal/normalize"
	"github.com/untoldecay/memory-mcp/internal/store"
)

var storeCmd = &cobra.Command{
	Use:   "store <topic> <title> <content>",
	Short: "Store a new memory entry",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		lobe, _ := cmd.Flags().GetString("lobe")
		sources, _ := cmd.Flags().GetStringSlice("sources")
		references, _ := cmd.Flags().GetStringSlice("references")
		tags, _ := cmd.Flags().GetStringSlice("tags")
		trust, _ := cmd.Flags().GetString("trust")

		topic := entry.Topic(normalize.NormalizeWildcard(args[0]))
		if !entry.IsValidTopic(topic) {
			return fmt.Errorf("invalid topic %q", topic)
		}

		c, err := buildCoordinator()
		if err != nil {
			return err
		}

		result, err := c.Store(lobe, store.WriteRequest{
			Topic:      topic,
			Title:      args[1],
			Content:    args[2],
			Sources:    sources,
			References: references,
			Tags:       tags,
			Trust:      entry.Trust(trust),
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(result)
		}
		if !result.Stored {
			fmt.Println(renderWarning(result.Warning))
			return nil
		}
		fmt.Printf("stored %s (topic=%s confidence=%.2f)\n", result.ID, result.Topic, result.Confidence)
		if result.Warning != "" {
			fmt.Println(renderWarning(result.Warning))
		}
		if result.EphemeralWarning != "" {
			fmt.Println(renderWarning(result.EphemeralWarning))
		}
		for _, r := range result.RelatedEntries {
			fmt.Printf("  related: %s %q (confidence %.2f)\n", r.ID, r.Title, r.Confidence)
		}
		for _, r := range result.RelevantPreferences {
			fmt.Printf("  relevant preference: %s %q\n", r.ID, r.Title)
		}
		return nil
	},
}

func init() {
	storeCmd.Flags().StringSlice("sources", nil, "source file paths this entry was derived from")
	storeCmd.Flags().StringSlice("references", nil, "file paths or symbols this entry describes")
	storeCmd.Flags().StringSlice("tags", nil, "tags")
	storeCmd.Flags().String("trust", "", "trust level: user, agent-confirmed, agent-inferred")
}
