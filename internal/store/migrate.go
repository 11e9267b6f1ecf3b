package store

import (
	"os"

	"github.com/untoldecay/memory-mcp/internal/entry"
)

// MigrateTopicTo moves every entry of the given topic out of s and into
// dest, deleting the originals from s. Used once by the coordinator's
// startup global-topic migration (user/preferences moving into the shared
// global store). Returns the number of entries moved.
func (s *Store) MigrateTopicTo(topic entry.Topic, dest *Store) (int, error) {
	s.mu.RLock()
	var toMove []*entry.Entry
	for _, e := range s.inMemory {
		if e.Topic == topic {
			toMove = append(toMove, e)
		}
	}
	s.mu.RUnlock()

	moved := 0
	for _, e := range toMove {
		result, err := dest.Store(WriteRequest{
			Topic:      e.Topic,
			Title:      e.Title,
			Content:    e.Content,
			Sources:    e.Sources,
			References: e.References,
			Trust:      e.Trust,
			Tags:       e.Tags,
			GitSHA:     e.GitSHA,
		})
		if err != nil || !result.Stored {
			continue
		}

		s.mu.Lock()
		if err := os.Remove(entryPath(s.cfg.MemoryPath, e)); err == nil || os.IsNotExist(err) {
			delete(s.inMemory, e.ID)
			moved++
		}
		s.mu.Unlock()
	}
	return moved, nil
}
