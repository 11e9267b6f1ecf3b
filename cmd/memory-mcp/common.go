package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/untoldecay/memory-mcp/internal/config"
	"github.com/untoldecay/memory-mcp/internal/coordinator"
)

// buildCoordinator loads config and constructs+initializes a Coordinator,
// the shared setup every subcommand needs before it can route an
// operation.
func buildCoordinator() (*coordinator.Coordinator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c := coordinator.New(cfg, slog.Default())
	if err := c.Init(); err != nil {
		return nil, fmt.Errorf("init coordinator: %w", err)
	}
	return c, nil
}

var (
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// isTTY reports whether stdout is an interactive terminal, gating
// lipgloss styling versus plain text per §5.3.
func isTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

func renderWarning(msg string) string {
	if msg == "" {
		return ""
	}
	if isTTY() {
		return warningStyle.Render("warning: ") + msg
	}
	return "warning: " + msg
}

func renderError(msg string) string {
	if isTTY() {
		return errorStyle.Render("error: ") + msg
	}
	return "error: " + msg
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
