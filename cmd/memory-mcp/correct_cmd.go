package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/untoldecay/memory-mcp/internal/entry"
	"github.com/untoldecay/memory-mcp/internal/store"
)

var correctCmd = &cobra.Command{
	Use:   "correct <id> <append|replace|delete> [correction]",
	Short: "Correct an existing memory entry",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		lobe, _ := cmd.Flags().GetString("lobe")
		topicHint, _ := cmd.Flags().GetString("topic")

		correction := ""
		if len(args) == 3 {
			correction = args[2]
		}

		c, err := buildCoordinator()
		if err != nil {
			return err
		}

		result, err := c.Correct(lobe, entry.Topic(topicHint), store.CorrectRequest{
			ID:         args[0],
			Action:     store.CorrectAction(args[1]),
			Correction: correction,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(result)
		}
		if !result.Corrected {
			fmt.Println(renderError(result.Error))
			return nil
		}
		fmt.Printf("corrected %s (confidence=%.2f trust=%s)\n", args[0], result.NewConfidence, result.Trust)
		return nil
	},
}

func init() {
	correctCmd.Flags().String("topic", "", "topic hint, used to resolve the owning lobe (e.g. architecture, preferences)")
}
