package store

import (
	"sort"
	"strings"
	"time"

	"github.com/untoldecay/memory-mcp/internal/analyzer"
	"github.com/untoldecay/memory-mcp/internal/entry"
)

// Detail selects how much of a matched entry is projected into the
// response.
type Detail string

const (
	DetailBrief    Detail = "brief"
	DetailStandard Detail = "standard"
	DetailFull     Detail = "full"
)

// QueryRequest is the input to Store.Query.
type QueryRequest struct {
	Scope  string // topic, "modules/<x>", or "*"
	Detail Detail
	Filter string
	Branch string // recent-work only; "" = current branch, "*" = all branches
}

// Projected is one projected query result. Fields beyond Detail's level are
// left zero-valued.
type Projected struct {
	ID           string
	Title        string
	Topic        entry.Topic
	Confidence   float64
	Fresh        bool
	Summary      string // brief+
	References   []string
	Tags         []string // standard+
	Content      string
	Sources      []string
	GitSHA       string
	LastAccessed string // full
}

// QueryResult is the output of Store.Query.
type QueryResult struct {
	Entries []Projected
}

// Query filters the in-memory mirror by scope, parses and applies the
// filter, scores and sorts the matches, then projects them to the
// requested detail level. Queries are side-effect free: LastAccessed is
// never refreshed by a read.
func (s *Store) Query(req QueryRequest) QueryResult {
	detail := req.Detail
	if detail == "" {
		detail = DetailStandard
	}

	groups := analyzer.ParseFilter(req.Filter)
	now := s.clock.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []*entry.Entry
	for _, e := range s.inMemory {
		if !s.inScope(e, req.Scope, req.Branch) {
			continue
		}
		me := analyzer.MatchedEntry{
			Keywords: analyzer.KeywordsFromAll(e.Title, e.Content),
			Tags:     tagSet(e.Tags),
		}
		if !analyzer.MatchesFilter(me, groups) {
			continue
		}
		matches = append(matches, e)
	}

	type rankedEntry struct {
		entry *entry.Entry
		score float64
	}
	ranked := make([]rankedEntry, 0, len(matches))
	hasFilter := strings.TrimSpace(req.Filter) != ""
	for _, e := range matches {
		score := e.Confidence
		if hasFilter {
			score = analyzer.Score(analyzer.ScoredEntry{
				TitleKeywords:   analyzer.Keywords(e.Title),
				ContentKeywords: analyzer.Keywords(e.Content),
				Tags:            tagSet(e.Tags),
			}, groups, e.Confidence)
		}
		ranked = append(ranked, rankedEntry{e, score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].entry.LastAccessed.After(ranked[j].entry.LastAccessed)
	})

	out := make([]Projected, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, s.project(r.entry, detail, now))
	}
	return QueryResult{Entries: out}
}

// inScope applies the scope and recent-work branch restriction rules.
func (s *Store) inScope(e *entry.Entry, scope, branch string) bool {
	switch {
	case scope == "" || scope == "*":
		// "*" (or an omitted scope) matches every topic.
	default:
		if string(e.Topic) != scope {
			return false
		}
	}

	if e.Topic == entry.TopicRecentWork {
		switch {
		case branch == "":
			return e.Branch == s.currentBranch()
		case branch == "*":
			return true
		default:
			return e.Branch == branch
		}
	}
	return true
}

// project renders an entry into the requested detail level. brief carries
// id/title/topic/confidence/fresh/summary; standard adds references and
// tags; full adds everything including content, sources, and git sha.
func (s *Store) project(e *entry.Entry, detail Detail, now time.Time) Projected {
	p := Projected{
		ID:         e.ID,
		Title:      e.Title,
		Topic:      e.Topic,
		Confidence: e.Confidence,
		Fresh:      s.isFresh(e, now),
		Summary:    summarize(e.Content, 160),
	}
	if detail == DetailBrief {
		return p
	}

	p.References = e.References
	p.Tags = e.Tags
	if detail == DetailStandard {
		return p
	}

	p.Content = e.Content
	p.Sources = e.Sources
	p.GitSHA = e.GitSHA
	p.LastAccessed = e.LastAccessed.UTC().Format(time.RFC3339)
	return p
}

// summarize trims content to at most max characters, breaking on a word
// boundary rather than mid-word.
func summarize(content string, max int) string {
	if len(content) <= max {
		return content
	}
	cut := content[:max]
	if idx := strings.LastIndexAny(cut, " \t\n"); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}

func tagSet(tags []string) map[string]bool {
	out := make(map[string]bool, len(tags))
	for _, t := range tags {
		out[strings.ToLower(t)] = true
	}
	return out
}
