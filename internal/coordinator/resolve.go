package coordinator

import (
	"errors"
	"fmt"

	"github.com/untoldecay/memory-mcp/internal/entry"
	"github.com/untoldecay/memory-mcp/internal/store"
)

// ErrUnknownLobe is returned by Resolve when the named lobe is not
// configured at all.
var ErrUnknownLobe = errors.New("unknown lobe")

// ErrDegradedLobe is returned by Resolve when the named lobe failed init
// and has not recovered.
var ErrDegradedLobe = errors.New("lobe is degraded")

// ResolvedLobe is the {store, displayLabel} pair a resolved operation acts
// against.
type ResolvedLobe struct {
	Store       *store.Store
	DisplayName string
}

// Resolve applies the lobe resolution rules: topics in {user, preferences}
// always route to the global store labeled "global"; otherwise an omitted
// lobe defaults to the sole configured lobe when there is exactly one, a
// degraded lobe surfaces its recovery steps, and an unknown name surfaces a
// bootstrap hint.
func (c *Coordinator) Resolve(lobeName string, topic entry.Topic) (*ResolvedLobe, error) {
	if entry.IsGlobal(topic) {
		c.mu.RLock()
		g := c.global
		c.mu.RUnlock()
		return &ResolvedLobe{Store: g, DisplayName: "global"}, nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if lobeName == "" {
		if len(c.lobes) == 1 {
			for name, s := range c.lobes {
				return &ResolvedLobe{Store: s, DisplayName: name}, nil
			}
		}
		return nil, fmt.Errorf("%w: multiple lobes configured, an explicit lobe is required", ErrUnknownLobe)
	}

	if s, ok := c.lobes[lobeName]; ok {
		return &ResolvedLobe{Store: s, DisplayName: lobeName}, nil
	}

	if h, ok := c.health[lobeName]; ok && !h.Healthy {
		return nil, fmt.Errorf("%w: %s (recovery: %v)", ErrDegradedLobe, lobeName, h.RecoverySteps)
	}

	hint := "auto-add it via bootstrap"
	if c.cfg.Origin != "file" {
		hint = "edit memory-config.json to add it, or re-run with a file-based config"
	}
	return nil, fmt.Errorf("%w: %q (%s)", ErrUnknownLobe, lobeName, hint)
}

// HealthyStores returns every healthy lobe store paired with its display
// name, used for cross-lobe read fan-out. The global store is never part
// of this set; it is addressed separately per Resolve's rule.
func (c *Coordinator) HealthyStores() []ResolvedLobe {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]ResolvedLobe, 0, len(c.lobes))
	for name, s := range c.lobes {
		if h, ok := c.health[name]; ok && !h.Healthy {
			continue
		}
		out = append(out, ResolvedLobe{Store: s, DisplayName: name})
	}
	return out
}
