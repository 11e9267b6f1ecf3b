// Command memory-mcp is a thin CLI for local inspection and debugging of a
// memory store without going through the host process, mirroring the
// teacher's bd CLI-over-daemon split.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var jsonOutput bool

var rootCmd = &cobra.Command{
	Use:   "memory-mcp",
	Short: "Inspect and debug a memory-mcp store from the command line",
	Long: `memory-mcp is a thin wrapper over internal/coordinator for local
inspection of a per-repository memory store: storing, querying, correcting,
and diagnosing entries without going through the MCP host transport.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit machine-readable JSON output")
	rootCmd.PersistentFlags().StringP("lobe", "l", "", "lobe name (defaults to the sole configured lobe)")

	rootCmd.AddCommand(storeCmd, queryCmd, correctCmd, contextCmd, bootstrapCmd, diagnoseCmd, statsCmd, listLobesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
