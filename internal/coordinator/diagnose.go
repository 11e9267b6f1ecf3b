package coordinator

import (
	"github.com/untoldecay/memory-mcp/internal/crashjournal"
)

// DiagnoseResult is the output of the hidden memory_diagnose tool: overall
// health, per-lobe health, the config origin, and (when requested) the
// latest crash report and recent crash history. The effective behavior
// config is not included.
type DiagnoseResult struct {
	State        State
	Lobes        []LobeHealth
	ConfigOrigin string
	CrashLatest  *crashjournal.Report
	CrashHistory []*crashjournal.Report
}

// Diagnose reports server health plus, when showCrashHistory is set, the
// crash journal's latest report and recent history.
func (c *Coordinator) Diagnose(showCrashHistory bool) (*DiagnoseResult, error) {
	c.mu.RLock()
	origin := string(c.cfg.Origin)
	c.mu.RUnlock()

	res := &DiagnoseResult{
		State:        c.State(),
		Lobes:        c.HealthSnapshot(),
		ConfigOrigin: origin,
	}
	if !showCrashHistory {
		return res, nil
	}

	j, err := crashjournal.Default()
	if err != nil {
		return nil, err
	}
	latest, err := j.ReadLatestCrash()
	if err != nil {
		return nil, err
	}
	res.CrashLatest = latest

	history, err := j.ReadCrashHistory(10)
	if err != nil {
		return nil, err
	}
	res.CrashHistory = history

	return res, nil
}
