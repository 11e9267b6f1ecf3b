package store

import (
	"path/filepath"
	"testing"

	"github.com/untoldecay/memory-mcp/internal/entry"
)

// TestReinitVisibility covers the §5 ordering guarantee: durability is
// per-file atomic-rename, so a second store instance sharing the same
// MemoryPath only observes a write made by a first instance once it has
// (re)loaded the directory. This stands in for the script-driven fixture
// originally planned around rsc.io/script (see DESIGN.md for why that
// dependency was dropped instead of wired).
func TestReinitVisibility(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "memory")

	a := New(Config{MemoryPath: dir})
	if err := a.Init(); err != nil {
		t.Fatalf("init store A: %v", err)
	}

	result, err := a.Store(WriteRequest{
		Topic:   entry.TopicArchitecture,
		Title:   "A writes first",
		Content: "content written by store A",
	})
	if err != nil || !result.Stored {
		t.Fatalf("store A write: result=%+v err=%v", result, err)
	}

	b := New(Config{MemoryPath: dir})
	if err := b.Init(); err != nil {
		t.Fatalf("init store B: %v", err)
	}
	got, ok := b.inMemory[result.ID]
	if !ok {
		t.Fatalf("store B did not observe store A's write after init")
	}
	if got.Content != "content written by store A" {
		t.Fatalf("store B observed wrong content: %q", got.Content)
	}

	// Write a second entry through A after B has already initialized, and
	// confirm B does not see it until B re-inits — a store never watches
	// its MemoryPath, it only reflects what Init last saw on disk.
	second, err := a.Store(WriteRequest{
		Topic:   entry.TopicArchitecture,
		Title:   "A writes again",
		Content: "second write",
	})
	if err != nil || !second.Stored {
		t.Fatalf("store A second write: result=%+v err=%v", second, err)
	}
	if _, ok := b.inMemory[second.ID]; ok {
		t.Fatalf("store B must not observe a write made after its last Init without re-initing")
	}
	if err := b.Init(); err != nil {
		t.Fatalf("reinit store B: %v", err)
	}
	if _, ok := b.inMemory[second.ID]; !ok {
		t.Fatalf("store B did not observe store A's second write after reinit")
	}
}
