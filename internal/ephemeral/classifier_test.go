package ephemeral

import (
	"strings"
	"testing"
)

func TestClassifyFiresTemporalOnBuildIssue(t *testing.T) {
	c := New()
	signals := c.Classify("gotchas", "Build Issue", "The build is currently broken and nobody knows why yet.")
	if len(signals) == 0 {
		t.Fatalf("expected at least one signal")
	}
	found := false
	for _, s := range signals {
		if s.ID == "temporal" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected temporal signal among %v", signals)
	}
	warning := FormatWarning(signals)
	if !strings.Contains(warning, "Temporal language") {
		t.Errorf("expected warning to mention Temporal language, got %q", warning)
	}
}

func TestClassifyNoSignalOnArchitectureNote(t *testing.T) {
	c := New()
	signals := c.Classify("architecture", "MVI Pattern",
		"The messaging feature uses MVI: unidirectional data flow from intents to state to view.")
	if len(signals) != 0 {
		t.Errorf("expected no signals, got %v", signals)
	}
}

func TestClassifyTFIDFLayerSkipsRecentWorkAndUser(t *testing.T) {
	c := New()
	// A bland sentence that trips no regex signal; the TF-IDF fallback is
	// the only thing that could fire, and it must not for these topics.
	// (The store package separately never calls Classify at all for
	// recent-work entries — see Store in internal/store/write.go.)
	bland := "Notes about the thing we talked about during onboarding for context."
	if got := c.Classify("recent-work", "Notes", bland); len(got) != 0 {
		t.Errorf("expected TF-IDF layer to skip recent-work, got %v", got)
	}
	if got := c.Classify("user", "Notes", bland); len(got) != 0 {
		t.Errorf("expected TF-IDF layer to skip user, got %v", got)
	}
}

func TestFormatWarningTiers(t *testing.T) {
	oneHigh := FormatWarning([]Signal{{ID: "a", Confidence: High, Detail: "d1"}})
	if !strings.Contains(oneHigh, "possibly contains") {
		t.Errorf("expected 'possibly contains' for one high signal, got %q", oneHigh)
	}
	twoHigh := FormatWarning([]Signal{{ID: "a", Confidence: High, Detail: "d1"}, {ID: "b", Confidence: High, Detail: "d2"}})
	if !strings.Contains(twoHigh, "likely contains") {
		t.Errorf("expected 'likely contains' for two high signals, got %q", twoHigh)
	}
	onlyLow := FormatWarning([]Signal{{ID: "a", Confidence: Low, Detail: "d1"}})
	if !strings.Contains(onlyLow, "may contain") {
		t.Errorf("expected 'may contain' with no high signals, got %q", onlyLow)
	}
	if FormatWarning(nil) != "" {
		t.Errorf("expected empty warning for no signals")
	}
}
