package crashjournal

import (
	"fmt"
	"strings"
)

// FormatSummary renders a one-paragraph digest of a report, suitable for
// inclusion in a diagnose response.
func FormatSummary(r *Report) string {
	if r == nil {
		return "No previous crash on record."
	}
	return fmt.Sprintf("Crash %s at %s (pid %d, type %s): %s",
		r.ID, r.Timestamp.Format("2006-01-02 15:04:05 UTC"), r.PID, r.Type, r.Error)
}

// FormatFull renders the complete report, including context and recovery
// steps, for operator-facing diagnostics.
func FormatFull(r *Report) string {
	if r == nil {
		return "No previous crash on record."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Crash Report %s\n", r.ID)
	fmt.Fprintf(&b, "  Time:   %s\n", r.Timestamp.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "  PID:    %d\n", r.PID)
	fmt.Fprintf(&b, "  Type:   %s\n", r.Type)
	fmt.Fprintf(&b, "  Error:  %s\n", r.Error)
	if r.Stack != "" {
		fmt.Fprintf(&b, "  Stack:\n%s\n", indent(r.Stack, "    "))
	}
	fmt.Fprintf(&b, "  Phase:  %s\n", r.Context.Phase)
	if r.Context.ActiveLobe != "" {
		fmt.Fprintf(&b, "  Lobe:   %s\n", r.Context.ActiveLobe)
	}
	if r.Context.LastToolCall != "" {
		fmt.Fprintf(&b, "  Last tool call: %s\n", r.Context.LastToolCall)
	}
	fmt.Fprintf(&b, "  Config source: %s (%d lobes)\n", r.Context.ConfigSource, r.Context.LobeCount)
	fmt.Fprintf(&b, "  Uptime before crash: %s\n", r.ServerUptime)
	b.WriteString("  Recovery steps:\n")
	for _, step := range r.RecoverySteps {
		fmt.Fprintf(&b, "    - %s\n", step)
	}
	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
