// Package format holds the pure rendering functions that turn query
// results, conflicts, and stale entries into the markdown bodies and
// footers the host surfaces to callers. Nothing in this package touches
// the filesystem or a clock; every function is deterministic given its
// arguments.
package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/untoldecay/memory-mcp/internal/coordinator"
	"github.com/untoldecay/memory-mcp/internal/store"
)

// MaxFooterTags bounds how many tags the query footer echoes.
const MaxFooterTags = 8

// QueryMode classifies how a parsed filter shaped the query, for the
// footer's mode echo.
type QueryMode struct {
	Kind     string // "no-filter", "tag-only", "keyword-only", "complex"
	HasTags  bool
	HasExact bool
	HasNot   bool
	HasOr    bool
}

// ClassifyMode derives a QueryMode from a raw filter string and its parsed
// group count.
func ClassifyMode(filter string, groupCount int) QueryMode {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return QueryMode{Kind: "no-filter"}
	}

	m := QueryMode{HasOr: groupCount > 1}
	hasTag, hasExact, hasNot, hasPlain := false, false, false, false
	for _, field := range strings.Fields(filter) {
		switch {
		case strings.HasPrefix(field, "#"):
			hasTag = true
		case strings.HasPrefix(field, "="):
			hasExact = true
		case strings.HasPrefix(field, "-"):
			hasNot = true
		case field != "|":
			hasPlain = true
		}
	}
	m.HasTags, m.HasExact, m.HasNot = hasTag, hasExact, hasNot

	switch {
	case hasTag && !hasExact && !hasNot && !hasPlain && !m.HasOr:
		m.Kind = "tag-only"
	case hasPlain && !hasTag && !hasExact && !hasNot && !m.HasOr:
		m.Kind = "keyword-only"
	default:
		m.Kind = "complex"
	}
	return m
}

// String renders a QueryMode the way the footer echoes it: a bare name
// for the simple modes, or complex{hasTags,hasExact,hasNot,hasOr} for the
// general case.
func (m QueryMode) String() string {
	if m.Kind != "complex" {
		return m.Kind
	}
	return fmt.Sprintf("complex{hasTags:%t, hasExact:%t, hasNot:%t, hasOr:%t}", m.HasTags, m.HasExact, m.HasNot, m.HasOr)
}

// Body renders a merged markdown body for a set of query results, one
// section per entry ordered as given.
func Body(entries []coordinator.LabeledEntry) string {
	if len(entries) == 0 {
		return "_No matching entries._\n"
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "## %s\n", e.Title)
		fmt.Fprintf(&b, "_%s · %s · confidence %.2f_\n\n", e.ID, e.Topic, e.Confidence)
		if e.Summary != "" {
			b.WriteString(e.Summary)
			b.WriteString("\n")
		}
		if e.Lobe != "" {
			fmt.Fprintf(&b, "\n(from lobe `%s`)\n", e.Lobe)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ConflictBlock renders a conflict-warning block, or "" when pairs is
// empty — callers must skip emitting the block entirely in that case.
func ConflictBlock(pairs []store.ConflictPair) string {
	if len(pairs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("### Possible conflicts\n\n")
	for _, p := range pairs {
		fmt.Fprintf(&b, "- %q (%s) vs %q (%s) — similarity %.2f\n", p.A.Title, p.A.ID, p.B.Title, p.B.ID, p.Similarity)
	}
	return b.String()
}

// StaleBlock renders a stale-entries block, or "" when details is empty.
func StaleBlock(details []store.StaleDetail) string {
	if len(details) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("### Stale entries\n\n")
	for _, d := range details {
		fmt.Fprintf(&b, "- %q (%s, topic %s)\n", d.Title, d.ID, d.Topic)
	}
	return b.String()
}

// Footer renders the query footer: the filter mode, the top-N tags by
// frequency (bounded by MaxFooterTags), and a one-line filter-syntax
// reminder.
func Footer(mode QueryMode, tagFrequencies map[string]int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "mode: %s\n", mode.String())

	if len(tagFrequencies) > 0 {
		type tf struct {
			tag   string
			count int
		}
		tags := make([]tf, 0, len(tagFrequencies))
		for t, c := range tagFrequencies {
			tags = append(tags, tf{t, c})
		}
		sort.Slice(tags, func(i, j int) bool {
			if tags[i].count != tags[j].count {
				return tags[i].count > tags[j].count
			}
			return tags[i].tag < tags[j].tag
		})
		if len(tags) > MaxFooterTags {
			tags = tags[:MaxFooterTags]
		}
		names := make([]string, 0, len(tags))
		for _, t := range tags {
			names = append(names, fmt.Sprintf("#%s(%d)", t.tag, t.count))
		}
		fmt.Fprintf(&b, "tags: %s\n", strings.Join(names, " "))
	}

	b.WriteString("filter syntax: plain keywords AND by default; `|` separates OR-groups; `-term` excludes; `#tag` matches a tag; `=term` matches literally.\n")
	return b.String()
}
