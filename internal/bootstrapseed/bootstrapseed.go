// Package bootstrapseed provides a minimal default implementation of the
// bootstrap heuristic that store.Bootstrap treats as an opaque callback.
// The heuristic itself — how to best mine a repo root for seed knowledge —
// is explicitly out of this module's scope (see SPEC_FULL.md §1); this
// package exists only so cmd/memory-mcp has a concrete store.SeedFunc to
// pass, grounded on the simplest signal available without guessing at a
// sophisticated scanning strategy: top-level README and go.mod module path.
package bootstrapseed

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/untoldecay/memory-mcp/internal/entry"
	"github.com/untoldecay/memory-mcp/internal/store"
)

// Scan yields at most one architecture seed (from a top-level README) and
// one seed naming the module path (from go.mod), skipping either that is
// absent.
func Scan(repoRoot string) ([]store.Seed, error) {
	var seeds []store.Seed

	for _, name := range []string{"README.md", "Readme.md", "README"} {
		path := filepath.Join(repoRoot, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		seeds = append(seeds, store.Seed{
			Topic:   entry.TopicArchitecture,
			Title:   "Project README",
			Content: strings.TrimSpace(string(data)),
			Sources: []string{name},
		})
		break
	}

	if data, err := os.ReadFile(filepath.Join(repoRoot, "go.mod")); err == nil {
		firstLine := strings.SplitN(string(data), "\n", 2)[0]
		module := strings.TrimSpace(strings.TrimPrefix(firstLine, "module"))
		if module != "" {
			seeds = append(seeds, store.Seed{
				Topic:   entry.TopicArchitecture,
				Title:   "Module path",
				Content: "This repository's Go module path is " + module + ".",
				Sources: []string{"go.mod"},
			})
		}
	}

	return seeds, nil
}
