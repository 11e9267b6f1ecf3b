package store

import (
	"sort"
	"strings"

	"github.com/untoldecay/memory-mcp/internal/entry"
)

// BriefingSection is one ordered section of a Briefing response.
type BriefingSection struct {
	Topic   entry.Topic
	Title   string
	Entries []Projected
}

// StaleDetail names one stale entry surfaced in the briefing footer so the
// caller can decide whether to refresh or re-confirm it.
type StaleDetail struct {
	ID              string
	Title           string
	Topic           entry.Topic
	DaysSinceAccess int
}

// BriefingResult is the output of Store.Briefing.
type BriefingResult struct {
	Sections           []BriefingSection
	StaleDetails       []StaleDetail
	BootstrapSuggested bool
}

// briefingOrder is the fixed section order the spec requires: About You,
// Your Preferences, Active Gotchas, Architecture, Conventions, every
// modules/* topic (alphabetical), then Recent Work last.
var briefingOrder = []struct {
	topic entry.Topic
	title string
}{
	{entry.TopicUser, "About You"},
	{entry.TopicPreferences, "Your Preferences"},
	{entry.TopicGotchas, "Active Gotchas"},
	{entry.TopicArchitecture, "Architecture"},
	{entry.TopicConventions, "Conventions"},
}

// Briefing assembles the session-start digest: one section per fixed
// topic in spec order, followed by each modules/* topic present in the
// store (alphabetically), then Recent Work for the current branch last.
// Sections with zero entries are omitted entirely. Stale entries are still
// included in their section but are also collected into StaleDetails,
// ordered gotchas-first then by staleness descending and capped to
// MaxStaleInBriefing. Bootstrap is suggested when the store holds no
// entries at all.
func (s *Store) Briefing() BriefingResult {
	now := s.clock.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.inMemory) == 0 {
		return BriefingResult{BootstrapSuggested: true}
	}

	byTopic := make(map[entry.Topic][]*entry.Entry)
	moduleTopics := make(map[entry.Topic]bool)
	for _, e := range s.inMemory {
		byTopic[e.Topic] = append(byTopic[e.Topic], e)
		if strings.HasPrefix(string(e.Topic), entry.ModulesPrefix) {
			moduleTopics[e.Topic] = true
		}
	}

	var modules []entry.Topic
	for t := range moduleTopics {
		modules = append(modules, t)
	}
	sort.Slice(modules, func(i, j int) bool { return modules[i] < modules[j] })

	type staleCandidate struct {
		detail        StaleDetail
		daysSinceNorm float64 // fractional days, for stable ordering beyond the int field
	}
	var staleCandidates []staleCandidate

	buildSection := func(topic entry.Topic, title string, source []*entry.Entry) (BriefingSection, bool) {
		if len(source) == 0 {
			return BriefingSection{}, false
		}
		entries := append([]*entry.Entry(nil), source...)
		sort.Slice(entries, func(i, j int) bool { return entries[i].LastAccessed.After(entries[j].LastAccessed) })
		projected := make([]Projected, 0, len(entries))
		for _, e := range entries {
			p := s.project(e, DetailStandard, now)
			projected = append(projected, p)
			if !p.Fresh {
				staleCandidates = append(staleCandidates, staleCandidate{
					detail:        StaleDetail{ID: e.ID, Title: e.Title, Topic: e.Topic, DaysSinceAccess: daysSince(e.LastAccessed, now)},
					daysSinceNorm: now.Sub(e.LastAccessed).Hours() / 24,
				})
			}
		}
		return BriefingSection{Topic: topic, Title: title, Entries: projected}, true
	}

	var sections []BriefingSection
	for _, fixed := range briefingOrder {
		if sec, ok := buildSection(fixed.topic, fixed.title, byTopic[fixed.topic]); ok {
			sections = append(sections, sec)
		}
	}
	for _, t := range modules {
		if sec, ok := buildSection(t, string(t), byTopic[t]); ok {
			sections = append(sections, sec)
		}
	}

	branch := s.currentBranch()
	var currentBranchRecent []*entry.Entry
	for _, e := range byTopic[entry.TopicRecentWork] {
		if e.Branch == branch {
			currentBranchRecent = append(currentBranchRecent, e)
		}
	}
	if sec, ok := buildSection(entry.TopicRecentWork, "Recent Work", currentBranchRecent); ok {
		sections = append(sections, sec)
	}

	sort.SliceStable(staleCandidates, func(i, j int) bool {
		iGotcha := staleCandidates[i].detail.Topic == entry.TopicGotchas
		jGotcha := staleCandidates[j].detail.Topic == entry.TopicGotchas
		if iGotcha != jGotcha {
			return iGotcha
		}
		return staleCandidates[i].daysSinceNorm > staleCandidates[j].daysSinceNorm
	})
	if len(staleCandidates) > s.behavior.MaxStaleInBriefing {
		staleCandidates = staleCandidates[:s.behavior.MaxStaleInBriefing]
	}
	stale := make([]StaleDetail, 0, len(staleCandidates))
	for _, c := range staleCandidates {
		stale = append(stale, c.detail)
	}

	return BriefingResult{Sections: sections, StaleDetails: stale}
}
