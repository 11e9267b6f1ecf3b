package store

import (
	"fmt"
	"os"

	"github.com/untoldecay/memory-mcp/internal/entry"
)

// CorrectAction selects what a Correct call does to an existing entry.
type CorrectAction string

const (
	ActionAppend  CorrectAction = "append"
	ActionReplace CorrectAction = "replace"
	ActionDelete  CorrectAction = "delete"
)

// CorrectRequest is the input to Store.Correct.
type CorrectRequest struct {
	ID         string
	Action     CorrectAction
	Correction string
}

// CorrectResult is the output of Store.Correct.
type CorrectResult struct {
	Corrected     bool
	NewConfidence float64
	Trust         entry.Trust
	Error         string
}

// Correct applies an append/replace/delete correction to an existing
// entry. append with an empty correction is a touch: it refreshes
// LastAccessed without changing content or trust. replace and a non-empty
// append both promote trust to "user" and recompute confidence. delete
// removes the file and the in-memory entry.
func (s *Store) Correct(req CorrectRequest) (*CorrectResult, error) {
	var result *CorrectResult
	err := s.withFileLock(func() error {
		r, err := s.correctLocked(req)
		result = r
		return err
	})
	return result, err
}

func (s *Store) correctLocked(req CorrectRequest) (*CorrectResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.inMemory[req.ID]
	if !ok {
		return &CorrectResult{Corrected: false, Error: fmt.Sprintf("entry %q not found", req.ID)}, nil
	}

	switch req.Action {
	case ActionDelete:
		if err := os.Remove(entryPath(s.cfg.MemoryPath, e)); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("delete entry file: %w", err)
		}
		delete(s.inMemory, req.ID)
		return &CorrectResult{Corrected: true}, nil

	case ActionReplace:
		if req.Correction == "" {
			return &CorrectResult{Corrected: false, Error: "replace requires non-empty correction"}, nil
		}
		e.Content = req.Correction
		e.Trust = entry.TrustUser
		e.Confidence = entry.ConfidenceFor(entry.TrustUser)
		e.LastAccessed = s.clock.Now()

	case ActionAppend:
		e.LastAccessed = s.clock.Now()
		if req.Correction != "" {
			e.Content = e.Content + "\n\n" + req.Correction
			e.Trust = entry.TrustUser
			e.Confidence = entry.ConfidenceFor(entry.TrustUser)
		}
		// empty correction: touch only, content and trust unchanged.

	default:
		return &CorrectResult{Corrected: false, Error: fmt.Sprintf("unknown action %q", req.Action)}, nil
	}

	if err := atomicWriteFile(entryPath(s.cfg.MemoryPath, e), []byte(entry.Serialize(e))); err != nil {
		return nil, fmt.Errorf("write corrected entry: %w", err)
	}

	return &CorrectResult{Corrected: true, NewConfidence: e.Confidence, Trust: e.Trust}, nil
}
