package analyzer

import "strings"

// Group is one OR-group of the filter language: a conjunction of
// positive/negative terms. N (the term count used for relevance scoring)
// is |Must|+|MustExact|+|MustTags|; a group with N==0 can never be
// satisfied, even if it carries only exclusions.
type Group struct {
	Must      map[string]bool // plain terms, stemmed, hyphen-expanded
	MustExact map[string]bool // "=term" — literal, unstemmed
	MustTags  map[string]bool // "#tag" — literal, unstemmed
	MustNot   map[string]bool // "-term" — stemmed compound, no hyphen expansion
}

func newGroup() *Group {
	return &Group{
		Must:      map[string]bool{},
		MustExact: map[string]bool{},
		MustTags:  map[string]bool{},
		MustNot:   map[string]bool{},
	}
}

// N is the positive-term count used by relevance scoring and by the
// "non-empty group" rule.
func (g *Group) N() int {
	return len(g.Must) + len(g.MustExact) + len(g.MustTags)
}

// ParseFilter parses a filter string into its OR-groups. An empty filter
// yields no groups, and MatchesFilter treats zero groups as "match
// everything".
func ParseFilter(filter string) []*Group {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return nil
	}

	var groups []*Group
	for _, part := range strings.Split(filter, "|") {
		group := newGroup()
		for _, term := range strings.Fields(part) {
			switch {
			case strings.HasPrefix(term, "-"):
				raw := strings.ToLower(strings.TrimPrefix(term, "-"))
				if raw != "" {
					group.MustNot[Stem(raw)] = true
				}
			case strings.HasPrefix(term, "#"):
				tag := strings.ToLower(strings.TrimPrefix(term, "#"))
				if tag != "" {
					group.MustTags[tag] = true
				}
			case strings.HasPrefix(term, "="):
				exact := strings.ToLower(strings.TrimPrefix(term, "="))
				if exact != "" {
					group.MustExact[exact] = true
				}
			default:
				for kw := range Keywords(term) {
					group.Must[kw] = true
				}
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// MatchedEntry is the minimal view MatchesFilter and Score need of an
// entry: its combined keyword set and its tag set.
type MatchedEntry struct {
	Keywords map[string]bool
	Tags     map[string]bool
}

// MatchesFilter reports whether an entry satisfies at least one OR-group.
// Zero groups (an empty filter) always matches.
func MatchesFilter(e MatchedEntry, groups []*Group) bool {
	if len(groups) == 0 {
		return true
	}
	for _, g := range groups {
		if groupMatches(e, g) {
			return true
		}
	}
	return false
}

func groupMatches(e MatchedEntry, g *Group) bool {
	if g.N() == 0 {
		return false
	}
	for kw := range g.Must {
		if !e.Keywords[kw] {
			return false
		}
	}
	for kw := range g.MustExact {
		if !e.Keywords[kw] {
			return false
		}
	}
	for tag := range g.MustTags {
		if !e.Tags[tag] {
			return false
		}
	}
	for kw := range g.MustNot {
		if e.Keywords[kw] {
			return false
		}
	}
	return true
}
