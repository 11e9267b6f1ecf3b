// Package ephemeral classifies an entry's likely short shelf-life: a
// declarative regex signal registry runs first, and a TF-IDF logistic
// layer runs only when the registry found nothing. Classification is
// advisory only — it attaches a warning to a successful store, it never
// blocks one.
package ephemeral

import "strings"

// Confidence is the strength of a single signal, not to be confused with
// entry.Entry's trust-derived confidence.
type Confidence string

const (
	High   Confidence = "high"
	Medium Confidence = "medium"
	Low    Confidence = "low"
)

// Signal is one fired ephemerality indicator.
type Signal struct {
	ID         string
	Label      string
	Detail     string
	Confidence Confidence
}

// signalTest inspects lowercase and raw title/content and, on a match,
// returns a short detail string describing what matched.
type signalTest func(lowerTitle, lowerContent, title, content string) (detail string, matched bool)

// signalDef is one entry in the declarative registry. Adding a new signal
// is adding an object here; no other code changes.
type signalDef struct {
	id         string
	label      string
	confidence Confidence
	skipTopics map[string]bool
	test       signalTest
}

func phraseTest(label string, phrases ...string) signalTest {
	return func(lowerTitle, lowerContent, _, _ string) (string, bool) {
		haystack := lowerTitle + " " + lowerContent
		for _, p := range phrases {
			if strings.Contains(haystack, p) {
				return label + ": \"" + p + "\"", true
			}
		}
		return "", false
	}
}

// registry is the in-order declarative signal list. Its order is the order
// in which fired signals are returned; within one signal, the first
// matching phrase in its list supplies the detail string. All fired
// signals are collected and returned.
var registry = []signalDef{
	{
		id:         "temporal",
		label:      "Temporal language",
		confidence: High,
		test: phraseTest("Temporal language",
			"currently", "right now", "for now", "temporarily", "at the moment",
			"this week", "today", "as of now"),
	},
	{
		id:         "fixed-bug",
		label:      "References a now-fixed bug",
		confidence: Medium,
		test: phraseTest("Now-fixed bug",
			"was broken", "turned out to be", "root cause was", "now fixed",
			"fixed by", "resolved by"),
	},
	{
		id:         "task-language",
		label:      "Actionable task language",
		confidence: Medium,
		test: phraseTest("Task language",
			"todo", "fixme", "need to", "should do", "let's", "next step",
			"action item"),
	},
	{
		id:         "stack-trace",
		label:      "Contains a stack trace",
		confidence: High,
		test:       stackTraceTest,
	},
	{
		id:         "environment-specific",
		label:      "Environment-specific detail",
		confidence: Medium,
		test: phraseTest("Environment-specific",
			"my machine", "my laptop", "localhost", "on my box", "my local env"),
	},
	{
		id:         "verbatim-code",
		label:      "Contains verbatim code",
		confidence: Low,
		test:       verbatimCodeTest,
	},
	{
		id:         "investigation",
		label:      "Describes an in-progress investigation",
		confidence: High,
		test: phraseTest("In-progress investigation",
			"investigating", "still debugging", "trying to figure out",
			"still figuring out", "digging into", "looking into why"),
	},
	{
		id:         "uncertainty",
		label:      "Expresses uncertainty",
		confidence: Medium,
		test: phraseTest("Uncertainty",
			"i think", "not sure", "probably", "might be", "maybe it's",
			"not 100% sure"),
	},
	{
		id:         "self-correction",
		label:      "Self-correction",
		confidence: Medium,
		test: phraseTest("Self-correction",
			"actually,", "correction:", "i was wrong", "scratch that",
			"edit:", "update:"),
	},
	{
		id:         "meeting-reference",
		label:      "References a meeting or conversation",
		confidence: Medium,
		test: phraseTest("Meeting reference",
			"in today's meeting", "as discussed", "per our call", "in standup",
			"during the sync"),
	},
	{
		id:         "pending-decision",
		label:      "Pending decision",
		confidence: Medium,
		test: phraseTest("Pending decision",
			"tbd", "to be decided", "pending approval", "waiting on", "not finalized"),
	},
	{
		id:         "version-pinned",
		label:      "References a specific pinned version",
		confidence: Low,
		test:       versionPinnedTest,
	},
	{
		id:         "metrics-change",
		label:      "References a point-in-time metric",
		confidence: Low,
		test:       metricsChangeTest,
	},
	{
		id:         "too-short",
		label:      "Very short note",
		confidence: Low,
		skipTopics: map[string]bool{"user": true, "preferences": true},
		test:       tooShortTest,
	},
}
