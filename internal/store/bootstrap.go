package store

import "github.com/untoldecay/memory-mcp/internal/entry"

// Seed is one (topic, title, content, sources) triple yielded by the
// external bootstrap heuristic that inspects a repo root. The heuristic
// itself is an opaque collaborator outside this module's scope; Bootstrap
// only consumes the seeds it produces.
type Seed struct {
	Topic   entry.Topic
	Title   string
	Content string
	Sources []string
}

// SeedFunc produces the seed stream for a repo root. The host process
// supplies the concrete heuristic.
type SeedFunc func(repoRoot string) ([]Seed, error)

// BootstrapResult is the output of Store.Bootstrap: one WriteResult per
// seed, in the order produced.
type BootstrapResult struct {
	Results []*WriteResult
}

// Bootstrap seeds an empty (or partially empty) store by running seedFn
// over the store's configured repo root and storing each yielded seed
// through the normal Store pipeline, so bootstrap-written entries get the
// same dedup, confidence, and ephemerality treatment as any other write.
func (s *Store) Bootstrap(seedFn SeedFunc) (*BootstrapResult, error) {
	seeds, err := seedFn(s.cfg.RepoRoot)
	if err != nil {
		return nil, err
	}

	results := make([]*WriteResult, 0, len(seeds))
	for _, seed := range seeds {
		r, err := s.Store(WriteRequest{
			Topic:   seed.Topic,
			Title:   seed.Title,
			Content: seed.Content,
			Sources: seed.Sources,
			Trust:   entry.TrustAgentInferred,
		})
		if err != nil {
			results = append(results, &WriteResult{Stored: false, Warning: err.Error()})
			continue
		}
		results = append(results, r)
	}
	return &BootstrapResult{Results: results}, nil
}
