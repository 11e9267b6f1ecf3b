package store

import (
	"sort"

	"github.com/untoldecay/memory-mcp/internal/analyzer"
	"github.com/untoldecay/memory-mcp/internal/entry"
)

// conflictMinContentLen excludes terse entries (e.g. one-line touches) from
// conflict detection — short content produces unreliable keyword overlap.
const conflictMinContentLen = 50

// ConflictPair is one candidate contradiction surfaced by DetectConflicts.
type ConflictPair struct {
	A, B       RelatedEntry
	Similarity float64
}

// DetectConflicts takes the ids of a query's result set (per spec, "an
// array of entries") and scans every pair among them for high textual
// similarity (above ConflictThreshold) among entries long enough to carry
// real content, returning up to MaxConflictPairs, highest similarity
// first. Conflict detection is deliberately cross-topic: two entries in
// different topics are just as eligible as two entries in the same one,
// since a contradiction (e.g. an architecture note and a gotcha) can span
// topics. A high-similarity pair is a candidate contradiction, not a
// confirmed one: two entries can be near-duplicates in wording while
// describing the current and a since-reversed decision.
func (s *Store) DetectConflicts(ids []string) []ConflictPair {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var candidates []*entry.Entry
	for _, id := range ids {
		e, ok := s.inMemory[id]
		if !ok || len(e.Content) < conflictMinContentLen {
			continue
		}
		candidates = append(candidates, e)
	}

	var pairs []ConflictPair
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			a, b := candidates[i], candidates[j]
			sim := analyzer.HybridSimilarity(a.Title, a.Content, b.Title, b.Content)
			if sim > s.behavior.ConflictThreshold {
				pairs = append(pairs, ConflictPair{
					A:          RelatedEntry{ID: a.ID, Title: a.Title, Content: a.Content, Confidence: a.Confidence},
					B:          RelatedEntry{ID: b.ID, Title: b.Title, Content: b.Content, Confidence: b.Confidence},
					Similarity: sim,
				})
			}
		}
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Similarity > pairs[j].Similarity })
	if len(pairs) > s.behavior.MaxConflictPairs {
		pairs = pairs[:s.behavior.MaxConflictPairs]
	}
	return pairs
}

// MaxConflictPairs reports this store's configured conflict-pair cap, for
// callers merging conflict results gathered from multiple stores.
func (s *Store) MaxConflictPairs() int {
	return s.behavior.MaxConflictPairs
}
