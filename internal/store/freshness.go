package store

import (
	"time"

	"github.com/untoldecay/memory-mcp/internal/entry"
)

// isFresh computes freshness purely from age vs. a topic-tiered threshold:
// user entries are always fresh; preferences use StaleDaysPreferences;
// every other topic (at any trust level — trust never confers a freshness
// exemption) uses StaleDaysStandard. This pins the tiered-threshold
// variant as authoritative for gotchas: they go stale at the standard
// 30-day tier, not "always fresh" (see DESIGN.md for the discrepancy this
// resolves).
func (s *Store) isFresh(e *entry.Entry, now time.Time) bool {
	if e.Topic == entry.TopicUser {
		return true
	}
	days := s.behavior.StaleDaysStandard
	if e.Topic == entry.TopicPreferences {
		days = s.behavior.StaleDaysPreferences
	}
	age := now.Sub(e.LastAccessed)
	return age <= time.Duration(days)*24*time.Hour
}

func daysSince(t, now time.Time) int {
	return int(now.Sub(t).Hours() / 24)
}
