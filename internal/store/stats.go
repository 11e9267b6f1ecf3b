package store

import (
	"strings"

	"github.com/untoldecay/memory-mcp/internal/entry"
)

// StatsResult is the output of Store.Stats.
type StatsResult struct {
	TotalEntries  int
	ByTopic       map[entry.Topic]int
	ByTrust       map[entry.Trust]int
	StaleCount    int
	FreshCount    int
	CorruptCount  int
	TotalBytes    int64
	BudgetBytes   int64
	OldestEntry   string
	NewestEntryID string
	ModuleTopics  []string
}

// Stats reports store-wide counters: per-topic and per-trust breakdowns,
// freshness counts, on-disk size against the configured budget, and the
// number of files skipped for failing to parse during Init.
func (s *Store) Stats() StatsResult {
	now := s.clock.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	res := StatsResult{
		ByTopic:     make(map[entry.Topic]int),
		ByTrust:     make(map[entry.Trust]int),
		BudgetBytes: s.cfg.StorageBudgetBytes,
	}

	moduleSet := make(map[string]bool)
	var oldest, newest *entry.Entry
	for _, e := range s.inMemory {
		res.TotalEntries++
		res.ByTopic[e.Topic]++
		res.ByTrust[e.Trust]++
		if s.isFresh(e, now) {
			res.FreshCount++
		} else {
			res.StaleCount++
		}
		if strings.HasPrefix(string(e.Topic), entry.ModulesPrefix) {
			moduleSet[string(e.Topic)] = true
		}
		if oldest == nil || e.Created.Before(oldest.Created) {
			oldest = e
		}
		if newest == nil || e.Created.After(newest.Created) {
			newest = e
		}
	}
	if oldest != nil {
		res.OldestEntry = oldest.ID
	}
	if newest != nil {
		res.NewestEntryID = newest.ID
	}
	for t := range moduleSet {
		res.ModuleTopics = append(res.ModuleTopics, t)
	}

	res.CorruptCount = s.corruptCount

	total, err := s.onDiskTotalSize()
	if err == nil {
		res.TotalBytes = total
	}

	return res
}
