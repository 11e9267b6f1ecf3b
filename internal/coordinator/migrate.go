package coordinator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/untoldecay/memory-mcp/internal/entry"
)

const migratedMarker = ".migrated"

// migrateGlobalTopicsLocked runs the one-shot upgrade migration: if the
// global directory has no .migrated marker yet, every lobe's user/
// preferences entries are moved into the global store and the originals
// deleted, then the marker is written atomically. Must be called while
// holding c.mu for writing (Init holds it already).
func (c *Coordinator) migrateGlobalTopicsLocked() error {
	markerPath := filepath.Join(c.globalDir, migratedMarker)
	if _, err := os.Stat(markerPath); err == nil {
		return nil
	}

	for name, lobe := range c.lobes {
		for _, topic := range []entry.Topic{entry.TopicUser, entry.TopicPreferences} {
			moved, err := lobe.MigrateTopicTo(topic, c.global)
			if err != nil {
				c.logger.Error("global topic migration failed", "lobe", name, "topic", topic, "error", err)
				continue
			}
			if moved > 0 {
				c.logger.Info("migrated entries to global store", "lobe", name, "topic", topic, "count", moved)
			}
		}
	}

	if err := os.WriteFile(markerPath+".tmp", []byte("migrated\n"), 0640); err != nil {
		return fmt.Errorf("write migration marker: %w", err)
	}
	return os.Rename(markerPath+".tmp", markerPath)
}
