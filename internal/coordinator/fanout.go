package coordinator

import (
	"math"
	"sort"

	"github.com/untoldecay/memory-mcp/internal/analyzer"
	"github.com/untoldecay/memory-mcp/internal/store"
)

// crossLobeWeakMatchPenalty scales down a context-search hit originating
// from a non-primary lobe whose matched-keyword count falls below the
// spec's max(2, ceil(0.4 * |contextKeywords|)) threshold, so a generic
// match in another repo cannot outrank relevant knowledge in the caller's
// own lobe.
const crossLobeWeakMatchPenalty = 0.5

// LabeledEntry pairs a projected query result with the lobe it came from,
// for cross-lobe fan-out display.
type LabeledEntry struct {
	store.Projected
	Lobe string
}

// Query fans the request out across every healthy lobe plus the global
// store when no explicit lobe is given, dedups by id, and re-sorts the
// merged list by confidence descending; per-store relevance scores are not
// carried across the merge.
func (c *Coordinator) Query(lobeName string, req store.QueryRequest) ([]LabeledEntry, error) {
	if lobeName != "" {
		resolved, err := c.resolveForScope(lobeName)
		if err != nil {
			return nil, err
		}
		return label(resolved.Store.Query(req).Entries, resolved.DisplayName), nil
	}

	var all []LabeledEntry
	seen := make(map[string]bool)

	for _, rl := range c.HealthyStores() {
		for _, e := range label(rl.Store.Query(req).Entries, rl.DisplayName) {
			if seen[e.ID] {
				continue
			}
			seen[e.ID] = true
			all = append(all, e)
		}
	}
	g := c.GlobalStore()
	if g != nil {
		for _, e := range label(g.Query(req).Entries, "global") {
			if seen[e.ID] {
				continue
			}
			seen[e.ID] = true
			all = append(all, e)
		}
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Confidence > all[j].Confidence })
	return all, nil
}

// DetectConflicts runs conflict detection over a query's full result set,
// per spec "Conflict detection ... runs on whatever result set a query
// returned." Entries are grouped back to the store that produced them
// (since ids are only locally unique per store) and each store scans its
// own subset cross-topic; the merged pairs are re-sorted and capped to
// the smallest MaxConflictPairs among the stores involved.
func (c *Coordinator) DetectConflicts(entries []LabeledEntry) []store.ConflictPair {
	idsByLobe := make(map[string][]string)
	for _, e := range entries {
		idsByLobe[e.Lobe] = append(idsByLobe[e.Lobe], e.ID)
	}

	var all []store.ConflictPair
	maxPairs := -1
	for lobe, ids := range idsByLobe {
		s := c.storeByLabel(lobe)
		if s == nil {
			continue
		}
		all = append(all, s.DetectConflicts(ids)...)
		if m := s.MaxConflictPairs(); maxPairs < 0 || m < maxPairs {
			maxPairs = m
		}
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Similarity > all[j].Similarity })
	if maxPairs >= 0 && len(all) > maxPairs {
		all = all[:maxPairs]
	}
	return all
}

// storeByLabel resolves the display label fanout attaches to a
// LabeledEntry ("global" or a configured lobe name) back to its store.
func (c *Coordinator) storeByLabel(label string) *store.Store {
	if label == "global" {
		return c.GlobalStore()
	}
	s, _ := c.lobeByName(label)
	return s
}

// resolveForScope resolves lobeName the normal way but never special-cases
// global topics, since a scoped Query may legitimately ask a named lobe for
// its own copy of a modules/* topic.
func (c *Coordinator) resolveForScope(lobeName string) (*ResolvedLobe, error) {
	if s, ok := c.lobeByName(lobeName); ok {
		return &ResolvedLobe{Store: s, DisplayName: lobeName}, nil
	}
	if lobeName == "global" {
		return &ResolvedLobe{Store: c.GlobalStore(), DisplayName: "global"}, nil
	}
	return nil, ErrUnknownLobe
}

func (c *Coordinator) lobeByName(name string) (*store.Store, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.lobes[name]
	return s, ok
}

func label(entries []store.Projected, lobe string) []LabeledEntry {
	out := make([]LabeledEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, LabeledEntry{Projected: e, Lobe: lobe})
	}
	return out
}

// ContextSearch fans a context search out across every healthy lobe plus
// the global store when no explicit lobe is given, applying the
// cross-lobe weak-match penalty to non-primary-lobe hits whose matched
// keyword count is below max(2, ceil(0.4*|contextKeywords|)).
func (c *Coordinator) ContextSearch(lobeName, primaryLobe string, req store.ContextRequest) []LabeledEntry {
	contextKeywordCount := len(analyzer.Keywords(req.Query))
	weakThreshold := int(math.Max(2, math.Ceil(0.4*float64(contextKeywordCount))))

	var all []LabeledEntry
	seen := make(map[string]bool)

	consider := func(matches []store.ContextMatch, lobe string) {
		for _, m := range matches {
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			score := m.Score
			if lobe != primaryLobe && lobe != "global" && len(m.MatchedKeywords) < weakThreshold {
				score *= crossLobeWeakMatchPenalty
			}
			all = append(all, LabeledEntry{
				Projected: store.Projected{ID: m.ID, Title: m.Title, Topic: m.Topic, Confidence: score, Summary: m.Summary},
				Lobe:      lobe,
			})
		}
	}

	if lobeName != "" {
		if s, ok := c.lobeByName(lobeName); ok {
			consider(s.ContextSearch(req).Matches, lobeName)
		}
	} else {
		for _, rl := range c.HealthyStores() {
			consider(rl.Store.ContextSearch(req).Matches, rl.DisplayName)
		}
	}
	if g := c.GlobalStore(); g != nil {
		consider(g.ContextSearch(req).Matches, "global")
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Confidence > all[j].Confidence })
	return all
}
