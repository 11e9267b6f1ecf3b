package store

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/untoldecay/memory-mcp/internal/analyzer"
	"github.com/untoldecay/memory-mcp/internal/entry"
	"github.com/untoldecay/memory-mcp/internal/ephemeral"
)

// WriteRequest is the input to Store.Store.
type WriteRequest struct {
	Topic      entry.Topic
	Title      string
	Content    string
	Sources    []string
	References []string
	Trust      entry.Trust // "" defaults to agent-inferred
	Tags       []string
	Branch     string // recent-work only; defaults to the store's current branch
	GitSHA     string
}

// RelatedEntry is a dedup/preference-surfacing candidate returned alongside
// a successful store.
type RelatedEntry struct {
	ID         string
	Title      string
	Content    string
	Confidence float64
}

// WriteResult is the output of Store.Store.
type WriteResult struct {
	Stored              bool
	ID                  string
	Topic               entry.Topic
	Confidence          float64
	Warning             string
	RelatedEntries      []RelatedEntry
	RelevantPreferences []RelatedEntry
	EphemeralWarning    string
}

// Store runs the full write pipeline: derive confidence, compute the
// on-disk path, enforce the storage budget, overwrite any same-(topic,
// title) entry, mint a collision-free id, write the file, update the
// in-memory mirror, then run dedup detection, preference surfacing, and
// the ephemerality check.
func (s *Store) Store(req WriteRequest) (*WriteResult, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("title must not be empty")
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("content must not be empty")
	}
	if !entry.IsValidTopic(req.Topic) {
		return nil, fmt.Errorf("invalid topic %q", req.Topic)
	}

	trust := req.Trust
	if trust == "" {
		trust = entry.DefaultTrust
	}
	confidence := entry.ConfidenceFor(trust)

	branch := req.Branch
	if req.Topic == entry.TopicRecentWork && branch == "" {
		branch = s.currentBranch()
	}

	now := s.clock.Now()
	newEntry := &entry.Entry{
		Topic:        req.Topic,
		Title:        req.Title,
		Content:      req.Content,
		Sources:      req.Sources,
		References:   req.References,
		Tags:         req.Tags,
		Trust:        trust,
		Confidence:   confidence,
		Created:      now,
		LastAccessed: now,
		Branch:       branch,
		GitSHA:       req.GitSHA,
	}

	var result *WriteResult
	err := s.withFileLock(func() error {
		r, err := s.storeLocked(newEntry)
		result = r
		return err
	})
	if err != nil {
		return nil, err
	}
	if !result.Stored {
		return result, nil
	}

	s.mu.RLock()
	result.RelatedEntries = s.dedupCandidates(newEntry)
	if newEntry.Topic != entry.TopicPreferences {
		result.RelevantPreferences = s.preferenceCandidates(newEntry)
	}
	s.mu.RUnlock()

	if newEntry.Topic != entry.TopicRecentWork {
		signals := s.classifier.Classify(string(newEntry.Topic), newEntry.Title, newEntry.Content)
		result.EphemeralWarning = ephemeral.FormatWarning(signals)
	}

	return result, nil
}

// storeLocked must be called while holding the store's file lock. It
// performs the budget check, overwrite deletion, id minting, and file
// write as a single critical section, then updates the in-memory mirror.
func (s *Store) storeLocked(e *entry.Entry) (*WriteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := entry.DirFor(e.Topic, e.Branch)
	absDir := filepath.Join(s.cfg.MemoryPath, dir)

	var overwritten *entry.Entry
	if e.Topic != entry.TopicRecentWork {
		for _, existing := range s.inMemory {
			if existing.Topic == e.Topic && existing.Title == e.Title {
				overwritten = existing
				break
			}
		}
	}

	currentTotal, err := s.onDiskTotalSize()
	if err != nil {
		return nil, fmt.Errorf("compute storage size: %w", err)
	}

	// Existing entries count at their on-disk size; the new entry is
	// estimated by its content length.
	newSize := int64(len(e.Content))
	projected := currentTotal + newSize
	if overwritten != nil {
		projected -= entrySize(s.cfg.MemoryPath, overwritten)
	}
	if s.cfg.StorageBudgetBytes > 0 && projected > s.cfg.StorageBudgetBytes {
		return &WriteResult{Stored: false, Warning: "storage budget exceeded: write rejected"}, nil
	}

	var warning string
	if overwritten != nil {
		if err := os.Remove(entryPath(s.cfg.MemoryPath, overwritten)); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("remove overwritten entry: %w", err)
		}
		delete(s.inMemory, overwritten.ID)
		warning = fmt.Sprintf("Overwrote existing entry %q in topic %q", e.Title, e.Topic)
	}

	id, err := s.mintID(e.Topic)
	if err != nil {
		return nil, err
	}
	e.ID = id

	if err := os.MkdirAll(absDir, 0750); err != nil {
		return nil, fmt.Errorf("create entry directory: %w", err)
	}
	path := filepath.Join(absDir, e.ID+".md")
	if err := atomicWriteFile(path, []byte(entry.Serialize(e))); err != nil {
		return nil, fmt.Errorf("write entry file: %w", err)
	}

	s.inMemory[e.ID] = e

	return &WriteResult{
		Stored:     true,
		ID:         e.ID,
		Topic:      e.Topic,
		Confidence: e.Confidence,
		Warning:    warning,
	}, nil
}

// entryPath returns the absolute on-disk path of an already-stored entry.
func entryPath(memoryPath string, e *entry.Entry) string {
	dir := entry.DirFor(e.Topic, e.Branch)
	return filepath.Join(memoryPath, dir, e.ID+".md")
}

// entrySize returns an already-stored entry's on-disk file size, falling
// back to its serialized length if the file is unexpectedly absent.
func entrySize(memoryPath string, e *entry.Entry) int64 {
	if info, err := os.Stat(entryPath(memoryPath, e)); err == nil {
		return info.Size()
	}
	return int64(len(entry.Serialize(e)))
}

func atomicWriteFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0640); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// mintID generates a collision-free "<prefix>-<hex8>" id, retrying on the
// small probability of a collision within this store.
func (s *Store) mintID(topic entry.Topic) (string, error) {
	prefix := entry.IDPrefix(topic)
	for attempt := 0; attempt < 16; attempt++ {
		var buf [4]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return "", fmt.Errorf("generate entry id: %w", err)
		}
		id := prefix + "-" + hex.EncodeToString(buf[:])
		if _, exists := s.inMemory[id]; !exists {
			return id, nil
		}
	}
	return "", fmt.Errorf("could not mint a unique id after 16 attempts")
}

// onDiskTotalSize sums the size of every *.md entry file under MemoryPath.
// Must be called while holding s.mu.
func (s *Store) onDiskTotalSize() (int64, error) {
	var total int64
	err := filepath.WalkDir(s.cfg.MemoryPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total += info.Size()
		return nil
	})
	return total, err
}

// dedupCandidates computes hybrid similarity against every other entry in
// the same topic, keeping those above the dedup threshold, sorted by
// similarity descending, capped to MaxDedupSuggestions. Must be called
// while holding at least a read lock on s.mu.
func (s *Store) dedupCandidates(e *entry.Entry) []RelatedEntry {
	return s.similarCandidates(e, func(other *entry.Entry) bool {
		return other.ID != e.ID && other.Topic == e.Topic
	}, s.behavior.DedupThreshold)
}

// preferenceCandidates computes hybrid similarity against every
// preferences-topic entry, surfacing those above the preference-surface
// threshold. Must be called while holding at least a read lock on s.mu.
func (s *Store) preferenceCandidates(e *entry.Entry) []RelatedEntry {
	return s.similarCandidates(e, func(other *entry.Entry) bool {
		return other.Topic == entry.TopicPreferences
	}, s.behavior.PreferenceSurfaceThreshold)
}

func (s *Store) similarCandidates(e *entry.Entry, include func(*entry.Entry) bool, threshold float64) []RelatedEntry {
	type scored struct {
		entry *entry.Entry
		sim   float64
	}
	var candidates []scored
	for _, other := range s.inMemory {
		if !include(other) {
			continue
		}
		sim := analyzer.HybridSimilarity(e.Title, e.Content, other.Title, other.Content)
		if sim >= threshold {
			candidates = append(candidates, scored{other, sim})
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].sim > candidates[j].sim })
	if len(candidates) > s.behavior.MaxDedupSuggestions {
		candidates = candidates[:s.behavior.MaxDedupSuggestions]
	}
	out := make([]RelatedEntry, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, RelatedEntry{ID: c.entry.ID, Title: c.entry.Title, Content: c.entry.Content, Confidence: c.entry.Confidence})
	}
	return out
}
