package store

import (
	"sort"
	"strings"

	"github.com/untoldecay/memory-mcp/internal/analyzer"
	"github.com/untoldecay/memory-mcp/internal/entry"
)

// ContextRequest is the input to Store.ContextSearch.
type ContextRequest struct {
	Query           string
	Max             int     // 0 defaults to 8
	ReferenceFilter string  // only consider entries whose References contain this substring; "" = no filter
	MinMatch        float64 // score floor applied to non-user entries
}

// ContextMatch is one ranked result from Store.ContextSearch.
type ContextMatch struct {
	ID              string
	Title           string
	Topic           entry.Topic
	Score           float64
	Summary         string
	MatchedKeywords []string
}

// ContextResult is the output of Store.ContextSearch.
type ContextResult struct {
	Matches []ContextMatch
}

const defaultContextMax = 8

// weighting applied on top of raw keyword-overlap score, before the
// always-include-user and reference-match bonuses.
const (
	gotchaPreferenceWeight = 1.5
	referenceMatchBonus    = 0.5
)

// ContextSearch scores every entry by stemmed keyword overlap against the
// query (counted over title+content+references), weighting gotchas and
// preferences 1.5x and scaling by the entry's confidence, then adds a flat
// bonus when any reference path literally contains one of the query's
// keywords. User entries are always included regardless of score; every
// other entry is dropped unless its score meets MinMatch. Results are
// sorted by score descending and capped to Max (default 8).
func (s *Store) ContextSearch(req ContextRequest) ContextResult {
	max := req.Max
	if max <= 0 {
		max = defaultContextMax
	}

	queryKeywords := analyzer.Keywords(req.Query)

	type scored struct {
		entry           *entry.Entry
		score           float64
		matchedKeywords []string
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []scored
	for _, e := range s.inMemory {
		if req.ReferenceFilter != "" && !referencesContain(e.References, req.ReferenceFilter) {
			continue
		}

		if e.Topic == entry.TopicUser {
			results = append(results, scored{e, 1.0, nil})
			continue
		}

		entryKeywords := analyzer.KeywordsFromAll(e.Title, e.Content, strings.Join(e.References, " "))
		var matched []string
		for k := range queryKeywords {
			if entryKeywords[k] {
				matched = append(matched, k)
			}
		}
		if len(matched) == 0 {
			continue
		}

		score := float64(len(matched)) / float64(len(queryKeywords))
		if e.Topic == entry.TopicGotchas || e.Topic == entry.TopicPreferences {
			score *= gotchaPreferenceWeight
		}
		score *= e.Confidence

		if referenceLiterallyContainsKeyword(e.References, queryKeywords) {
			score += referenceMatchBonus
		}

		if score < req.MinMatch {
			continue
		}

		results = append(results, scored{e, score, matched})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].entry.LastAccessed.After(results[j].entry.LastAccessed)
	})
	if len(results) > max {
		results = results[:max]
	}

	out := make([]ContextMatch, 0, len(results))
	for _, r := range results {
		out = append(out, ContextMatch{
			ID:              r.entry.ID,
			Title:           r.entry.Title,
			Topic:           r.entry.Topic,
			Score:           r.score,
			Summary:         summarize(r.entry.Content, 160),
			MatchedKeywords: r.matchedKeywords,
		})
	}
	return ContextResult{Matches: out}
}

func referencesContain(refs []string, substr string) bool {
	for _, r := range refs {
		if strings.Contains(r, substr) {
			return true
		}
	}
	return false
}

// referenceLiterallyContainsKeyword reports whether any reference path
// contains, as a raw substring, one of the query's stemmed keywords. This
// is the spec's literal-containment bonus check, distinct from the
// stemmed-overlap matching used to build matchedCount.
func referenceLiterallyContainsKeyword(refs []string, queryKeywords map[string]bool) bool {
	for _, ref := range refs {
		lowerRef := strings.ToLower(ref)
		for k := range queryKeywords {
			if strings.Contains(lowerRef, k) {
				return true
			}
		}
	}
	return false
}
