package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/untoldecay/memory-mcp/internal/analyzer"
	"github.com/untoldecay/memory-mcp/internal/coordinator"
	"github.com/untoldecay/memory-mcp/internal/format"
	"github.com/untoldecay/memory-mcp/internal/normalize"
	"github.com/untoldecay/memory-mcp/internal/relativetime"
	"github.com/untoldecay/memory-mcp/internal/store"
)

var queryCmd = &cobra.Command{
	Use:   "query [filter]",
	Short: "Query stored entries",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lobe, _ := cmd.Flags().GetString("lobe")
		scope, _ := cmd.Flags().GetString("scope")
		detail, _ := cmd.Flags().GetString("detail")
		branch, _ := cmd.Flags().GetString("branch")
		since, _ := cmd.Flags().GetString("since")

		filter := ""
		if len(args) == 1 {
			filter = args[0]
		}
		scope = normalize.NormalizeWildcard(normalize.DefaultQueryScope(scope, filter))
		branch = normalize.NormalizeWildcard(branch)

		var sinceCutoff time.Time
		requestDetail := store.Detail(detail)
		if since != "" {
			cutoff, ok, err := relativetime.Parse(since, time.Now())
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("could not understand --since %q", since)
			}
			sinceCutoff = cutoff
			requestDetail = store.DetailFull // LastAccessed is only projected at full detail
		}

		c, err := buildCoordinator()
		if err != nil {
			return err
		}

		req := store.QueryRequest{Scope: scope, Detail: requestDetail, Filter: filter, Branch: branch}
		entries, err := c.Query(lobe, req)
		if err != nil {
			return err
		}
		if !sinceCutoff.IsZero() {
			entries = filterSince(entries, sinceCutoff)
		}

		conflicts := c.DetectConflicts(entries)

		if jsonOutput {
			type output struct {
				Entries   []coordinator.LabeledEntry `json:"entries"`
				Conflicts []store.ConflictPair       `json:"conflicts,omitempty"`
			}
			return printJSON(output{Entries: entries, Conflicts: conflicts})
		}

		mode := format.ClassifyMode(filter, len(analyzer.ParseFilter(filter)))
		fmt.Print(format.Body(entries))
		fmt.Print(format.ConflictBlock(conflicts))
		fmt.Print(format.Footer(mode, tagFrequencies(entries)))
		return nil
	},
}

func filterSince(entries []coordinator.LabeledEntry, cutoff time.Time) []coordinator.LabeledEntry {
	out := entries[:0]
	for _, e := range entries {
		t, err := time.Parse(time.RFC3339, e.LastAccessed)
		if err != nil || t.After(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

func tagFrequencies(entries []coordinator.LabeledEntry) map[string]int {
	freq := make(map[string]int)
	for _, e := range entries {
		for _, t := range e.Tags {
			freq[t]++
		}
	}
	return freq
}

func init() {
	queryCmd.Flags().String("scope", "", "topic, modules/<name>, or * for every topic")
	queryCmd.Flags().String("detail", "", "brief, standard, or full (default standard)")
	queryCmd.Flags().String("branch", "", "recent-work branch filter; * for every branch")
	queryCmd.Flags().String("since", "", `only show entries accessed after a relative time, e.g. "3 days ago"`)
}
