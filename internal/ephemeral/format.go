package ephemeral

import "strings"

// FormatWarning renders fired signals into the closing-advice phrasing: two
// or more high-confidence signals read "likely contains", exactly one high
// reads "possibly contains", anything else reads "may contain". Returns ""
// when there are no signals.
func FormatWarning(signals []Signal) string {
	if len(signals) == 0 {
		return ""
	}

	highCount := 0
	for _, s := range signals {
		if s.Confidence == High {
			highCount++
		}
	}

	var verb, advice string
	switch {
	case highCount >= 2:
		verb = "likely contains"
		advice = "This entry is likely to go stale soon; consider re-confirming it before relying on it."
	case highCount == 1:
		verb = "possibly contains"
		advice = "This entry may go stale; a quick recheck before relying on it is worthwhile."
	default:
		verb = "may contain"
		advice = "This entry might be session-specific; keep an eye on it over time."
	}

	details := make([]string, 0, len(signals))
	for _, s := range signals {
		details = append(details, s.Detail)
	}

	var b strings.Builder
	b.WriteString("This entry ")
	b.WriteString(verb)
	b.WriteString(" ephemeral, session-specific information (")
	b.WriteString(strings.Join(details, "; "))
	b.WriteString("). ")
	b.WriteString(advice)
	return b.String()
}
