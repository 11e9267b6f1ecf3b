package coordinator

import (
	"fmt"

	"github.com/untoldecay/memory-mcp/internal/entry"
	"github.com/untoldecay/memory-mcp/internal/store"
)

// Store resolves the target lobe for req.Topic and runs the write there.
func (c *Coordinator) Store(lobeName string, req store.WriteRequest) (*store.WriteResult, error) {
	resolved, err := c.Resolve(lobeName, req.Topic)
	if err != nil {
		return nil, err
	}
	return resolved.Store.Store(req)
}

// Correct dispatches a correction to the lobe that owns id. Since the
// coordinator does not index entries globally by id, the caller is
// expected to supply the lobe that originally returned the id (mirroring
// the store operation table's `lobe?` input). Routing goes through Resolve
// with topicHint: a global topic hint selects the global store, and an
// empty lobe falls back to the single-lobe default. The id itself is not
// inspected.
func (c *Coordinator) Correct(lobeName string, topicHint entry.Topic, req store.CorrectRequest) (*store.CorrectResult, error) {
	resolved, err := c.Resolve(lobeName, topicHint)
	if err != nil {
		return nil, err
	}
	return resolved.Store.Correct(req)
}

// Briefing assembles the session-start digest for a single lobe (or the
// sole configured lobe when lobeName is empty).
func (c *Coordinator) Briefing(lobeName string) (*store.BriefingResult, error) {
	resolved, err := c.Resolve(lobeName, entry.TopicArchitecture)
	if err != nil {
		return nil, err
	}
	result := resolved.Store.Briefing()
	return &result, nil
}

// Bootstrap seeds a lobe (creating it first when root is supplied and the
// name is not yet configured).
func (c *Coordinator) Bootstrap(lobeName, root string, budgetMB int, seedFn store.SeedFunc) (*store.BootstrapResult, error) {
	c.mu.Lock()
	if _, ok := c.lobes[lobeName]; !ok && root != "" {
		var budget int64
		if budgetMB > 0 {
			budget = int64(budgetMB) * 1024 * 1024
		}
		s := store.New(store.Config{RepoRoot: root, MemoryPath: root + "/.memory-mcp", StorageBudgetBytes: budget, Clock: c.clk})
		if err := s.Init(); err != nil {
			c.mu.Unlock()
			return nil, fmt.Errorf("auto-create lobe %q: %w", lobeName, err)
		}
		c.lobes[lobeName] = s
		c.health[lobeName] = &LobeHealth{Name: lobeName, Healthy: true}
		c.recomputeStateLocked()
	}
	c.mu.Unlock()

	s, ok := c.lobeByName(lobeName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLobe, lobeName)
	}
	return s.Bootstrap(seedFn)
}

// Stats reports per-lobe and global stats. An empty lobeName reports every
// lobe plus global.
func (c *Coordinator) Stats(lobeName string) map[string]store.StatsResult {
	out := make(map[string]store.StatsResult)
	if lobeName != "" {
		if s, ok := c.lobeByName(lobeName); ok {
			out[lobeName] = s.Stats()
		}
		return out
	}
	for _, rl := range c.HealthyStores() {
		out[rl.DisplayName] = rl.Store.Stats()
	}
	if g := c.GlobalStore(); g != nil {
		out["global"] = g.Stats()
	}
	return out
}
