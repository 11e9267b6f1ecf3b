package format

import (
	"strings"
	"testing"

	"github.com/untoldecay/memory-mcp/internal/coordinator"
	"github.com/untoldecay/memory-mcp/internal/store"
)

func TestClassifyMode(t *testing.T) {
	cases := []struct {
		name       string
		filter     string
		groupCount int
		wantKind   string
	}{
		{"empty", "", 0, "no-filter"},
		{"tag only", "#gotcha #billing", 1, "tag-only"},
		{"keyword only", "payment retry", 1, "keyword-only"},
		{"or group", "payment | retry", 2, "complex"},
		{"mixed tag and keyword", "#gotcha payment", 1, "complex"},
		{"negation", "payment -legacy", 1, "complex"},
		{"exact", "=payment", 1, "complex"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := ClassifyMode(c.filter, c.groupCount)
			if m.Kind != c.wantKind {
				t.Errorf("ClassifyMode(%q, %d).Kind = %q, want %q", c.filter, c.groupCount, m.Kind, c.wantKind)
			}
		})
	}
}

func TestQueryModeStringComplexIncludesFlags(t *testing.T) {
	m := ClassifyMode("payment | #gotcha -legacy", 2)
	s := m.String()
	if !strings.HasPrefix(s, "complex{") {
		t.Fatalf("String() = %q, want a complex{...} rendering", s)
	}
	if !strings.Contains(s, "hasOr:true") {
		t.Errorf("expected hasOr:true in %q", s)
	}
}

func TestBodyEmptyEntries(t *testing.T) {
	if got := Body(nil); got != "_No matching entries._\n" {
		t.Errorf("Body(nil) = %q", got)
	}
}

func TestBodyRendersEachEntry(t *testing.T) {
	entries := []coordinator.LabeledEntry{
		{Projected: store.Projected{ID: "arch-1", Title: "Overview", Topic: "architecture", Confidence: 0.9, Summary: "A summary."}, Lobe: "alpha"},
	}
	got := Body(entries)
	if !strings.Contains(got, "## Overview") {
		t.Errorf("expected a heading, got %q", got)
	}
	if !strings.Contains(got, "arch-1") {
		t.Errorf("expected the id rendered, got %q", got)
	}
	if !strings.Contains(got, "lobe `alpha`") {
		t.Errorf("expected the lobe label rendered, got %q", got)
	}
}

func TestConflictBlockEmptyYieldsEmptyString(t *testing.T) {
	if got := ConflictBlock(nil); got != "" {
		t.Errorf("ConflictBlock(nil) = %q, want empty string", got)
	}
}

func TestConflictBlockRendersPairs(t *testing.T) {
	pairs := []store.ConflictPair{
		{
			A:          store.RelatedEntry{ID: "arch-1", Title: "Uses Postgres"},
			B:          store.RelatedEntry{ID: "gotcha-1", Title: "Uses MySQL now"},
			Similarity: 0.72,
		},
	}
	got := ConflictBlock(pairs)
	if !strings.Contains(got, "Possible conflicts") {
		t.Errorf("expected a conflicts heading, got %q", got)
	}
	if !strings.Contains(got, "0.72") {
		t.Errorf("expected the similarity score rendered, got %q", got)
	}
}

func TestStaleBlockEmptyYieldsEmptyString(t *testing.T) {
	if got := StaleBlock(nil); got != "" {
		t.Errorf("StaleBlock(nil) = %q, want empty string", got)
	}
}

func TestStaleBlockRendersDetails(t *testing.T) {
	details := []store.StaleDetail{{ID: "gotcha-1", Title: "Flaky test", Topic: "gotchas", DaysSinceAccess: 40}}
	got := StaleBlock(details)
	if !strings.Contains(got, "Stale entries") || !strings.Contains(got, "Flaky test") {
		t.Errorf("unexpected stale block: %q", got)
	}
}

func TestFooterIncludesModeAndFilterReminder(t *testing.T) {
	got := Footer(ClassifyMode("", 0), nil)
	if !strings.Contains(got, "mode: no-filter") {
		t.Errorf("expected mode echo, got %q", got)
	}
	if !strings.Contains(got, "filter syntax:") {
		t.Errorf("expected a filter syntax reminder, got %q", got)
	}
	if strings.Contains(got, "tags:") {
		t.Errorf("expected no tags line when tagFrequencies is empty, got %q", got)
	}
}

func TestFooterTagsSortedByFrequencyThenNameAndCapped(t *testing.T) {
	freqs := map[string]int{
		"a": 1, "b": 5, "c": 5, "d": 3, "e": 2, "f": 1, "g": 1, "h": 1, "i": 1,
	}
	got := Footer(ClassifyMode("", 0), freqs)
	line := ""
	for _, l := range strings.Split(got, "\n") {
		if strings.HasPrefix(l, "tags:") {
			line = l
		}
	}
	if line == "" {
		t.Fatal("expected a tags line")
	}
	if !strings.HasPrefix(line, "tags: #b(5) #c(5)") {
		t.Errorf("expected b and c (both freq 5, alphabetical tiebreak) first, got %q", line)
	}
	count := strings.Count(line, "#")
	if count > MaxFooterTags {
		t.Errorf("expected at most %d tags, got %d in %q", MaxFooterTags, count, line)
	}
}
