package coordinator

import (
	"path/filepath"
	"testing"

	"github.com/untoldecay/memory-mcp/internal/config"
	"github.com/untoldecay/memory-mcp/internal/entry"
	"github.com/untoldecay/memory-mcp/internal/store"
)

// newTestCoordinator builds a Coordinator over n lobes, each rooted in its
// own temp dir, and points its global store at a temp HOME so Init never
// touches the real user home directory.
func newTestCoordinator(t *testing.T, lobeNames ...string) *Coordinator {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	lobes := make(map[string]config.LobeConfig, len(lobeNames))
	for _, name := range lobeNames {
		lobes[name] = config.LobeConfig{Root: filepath.Join(t.TempDir(), name)}
	}
	cfg := &config.Config{Origin: config.OriginDefault, Lobes: lobes}

	c := New(cfg, nil)
	if err := c.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	return c
}

func TestInitAllHealthyIsRunning(t *testing.T) {
	c := newTestCoordinator(t, "alpha", "beta")
	if got := c.State(); got != Running {
		t.Fatalf("State() = %q, want Running", got)
	}
	if len(c.LobeNames()) != 2 {
		t.Fatalf("LobeNames() = %v", c.LobeNames())
	}
}

func TestInitMixedHealthIsDegraded(t *testing.T) {
	c := newTestCoordinator(t, "alpha")

	c.mu.Lock()
	c.health["broken"] = &LobeHealth{Name: "broken", Healthy: false, Err: "simulated failure"}
	c.recomputeStateLocked()
	c.mu.Unlock()

	if got := c.State(); got != Degraded {
		t.Fatalf("State() = %q, want Degraded", got)
	}
}

func TestInitAllFailedIsSafeMode(t *testing.T) {
	c := newTestCoordinator(t)

	c.mu.Lock()
	c.health["a"] = &LobeHealth{Name: "a", Healthy: false}
	c.health["b"] = &LobeHealth{Name: "b", Healthy: false}
	c.recomputeStateLocked()
	c.mu.Unlock()

	if got := c.State(); got != SafeMode {
		t.Fatalf("State() = %q, want SafeMode", got)
	}
}

func TestResolveGlobalTopicsAlwaysRouteToGlobalStore(t *testing.T) {
	c := newTestCoordinator(t, "alpha")

	resolved, err := c.Resolve("alpha", entry.TopicUser)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.DisplayName != "global" {
		t.Fatalf("DisplayName = %q, want global", resolved.DisplayName)
	}
	if resolved.Store != c.GlobalStore() {
		t.Fatal("expected the shared global store instance")
	}
}

func TestResolveSingleLobeDefaultsWhenNameOmitted(t *testing.T) {
	c := newTestCoordinator(t, "alpha")

	resolved, err := c.Resolve("", entry.TopicArchitecture)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.DisplayName != "alpha" {
		t.Fatalf("DisplayName = %q, want alpha", resolved.DisplayName)
	}
}

func TestResolveAmbiguousWithoutNameErrors(t *testing.T) {
	c := newTestCoordinator(t, "alpha", "beta")

	if _, err := c.Resolve("", entry.TopicArchitecture); err == nil {
		t.Fatal("expected an error when multiple lobes are configured and none is named")
	}
}

func TestResolveUnknownLobeErrors(t *testing.T) {
	c := newTestCoordinator(t, "alpha")

	_, err := c.Resolve("nope", entry.TopicArchitecture)
	if err == nil {
		t.Fatal("expected ErrUnknownLobe")
	}
}

func TestResolveDegradedLobeSurfacesRecoverySteps(t *testing.T) {
	c := newTestCoordinator(t, "alpha")

	c.mu.Lock()
	c.health["broken"] = &LobeHealth{Name: "broken", Healthy: false, RecoverySteps: []string{"fix permissions"}}
	c.mu.Unlock()

	_, err := c.Resolve("broken", entry.TopicArchitecture)
	if err == nil {
		t.Fatal("expected ErrDegradedLobe")
	}
}

func TestReconcileAddsAndRemovesLobes(t *testing.T) {
	c := newTestCoordinator(t, "alpha")

	newCfg := &config.Config{
		Origin: config.OriginDefault,
		Lobes: map[string]config.LobeConfig{
			"beta": {Root: filepath.Join(t.TempDir(), "beta")},
		},
	}

	c.mu.Lock()
	c.reconcileLocked(newCfg)
	c.mu.Unlock()

	names := c.LobeNames()
	if len(names) != 1 || names[0] != "beta" {
		t.Fatalf("LobeNames() = %v, want [beta]", names)
	}
	if _, ok := c.health["alpha"]; ok {
		t.Fatal("expected alpha's health entry to be removed on reconcile")
	}
}

func TestReconcileReinitsLobeWhenRootChanges(t *testing.T) {
	c := newTestCoordinator(t, "alpha")

	c.mu.RLock()
	original := c.lobes["alpha"]
	c.mu.RUnlock()

	newRoot := filepath.Join(t.TempDir(), "alpha-moved")
	newCfg := &config.Config{
		Origin: config.OriginDefault,
		Lobes: map[string]config.LobeConfig{
			"alpha": {Root: newRoot},
		},
	}

	c.mu.Lock()
	c.reconcileLocked(newCfg)
	c.mu.Unlock()

	c.mu.RLock()
	reinit := c.lobes["alpha"]
	c.mu.RUnlock()

	if reinit == original {
		t.Fatal("expected a changed root to trigger reinit with a new Store instance")
	}
	if reinit.RepoRoot() != newRoot {
		t.Fatalf("RepoRoot() = %q, want %q", reinit.RepoRoot(), newRoot)
	}
}

func TestMigrateGlobalTopicsMovesUserAndPreferencesOnce(t *testing.T) {
	c := newTestCoordinator(t, "alpha")

	lobe, _ := c.lobeByName("alpha")
	if _, err := lobe.Store(store.WriteRequest{Topic: entry.TopicUser, Title: "About me", Content: "I work on payments."}); err != nil {
		t.Fatalf("seed user entry: %v", err)
	}

	if err := c.migrateGlobalTopicsLocked(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	global := c.GlobalStore()
	result := global.Query(store.QueryRequest{Scope: string(entry.TopicUser)})
	if len(result.Entries) != 1 {
		t.Fatalf("expected the user entry to land in the global store, got %+v", result.Entries)
	}

	lobeResult := lobe.Query(store.QueryRequest{Scope: string(entry.TopicUser)})
	if len(lobeResult.Entries) != 0 {
		t.Fatalf("expected the original lobe entry to be removed after migration, got %+v", lobeResult.Entries)
	}

	// Second call is a no-op: the marker file already exists.
	if err := c.migrateGlobalTopicsLocked(); err != nil {
		t.Fatalf("second migrate call: %v", err)
	}
}

func TestCrossLobeContextSearchDedupsByID(t *testing.T) {
	c := newTestCoordinator(t, "alpha", "beta")

	alpha, _ := c.lobeByName("alpha")
	beta, _ := c.lobeByName("beta")

	if _, err := alpha.Store(store.WriteRequest{
		Topic:   entry.TopicArchitecture,
		Title:   "Payment retries",
		Content: "Payment retries use exponential backoff with jitter for failed webhook deliveries.",
	}); err != nil {
		t.Fatalf("seed alpha: %v", err)
	}
	if _, err := beta.Store(store.WriteRequest{
		Topic:   entry.TopicArchitecture,
		Title:   "Unrelated note",
		Content: "This team uses a monorepo for frontend packages only, nothing about payments.",
	}); err != nil {
		t.Fatalf("seed beta: %v", err)
	}

	req := store.ContextRequest{Query: "payment webhook retry backoff", Max: 10}
	matches := c.ContextSearch("", "alpha", req)

	seen := make(map[string]int)
	for _, m := range matches {
		seen[m.ID]++
	}
	for id, count := range seen {
		if count > 1 {
			t.Fatalf("id %q appeared %d times, expected dedup", id, count)
		}
	}
	if len(matches) == 0 {
		t.Fatal("expected at least one match")
	}
}

func TestCoordinatorDetectConflictsGroupsByLobe(t *testing.T) {
	c := newTestCoordinator(t, "alpha", "beta")

	alpha, _ := c.lobeByName("alpha")
	beta, _ := c.lobeByName("beta")

	a, err := alpha.Store(store.WriteRequest{
		Topic:   entry.TopicArchitecture,
		Title:   "Database choice",
		Content: "We use Postgres as the primary datastore for all production workloads today.",
	})
	if err != nil || !a.Stored {
		t.Fatalf("store a: result=%+v err=%v", a, err)
	}
	b, err := beta.Store(store.WriteRequest{
		Topic:   entry.TopicGotchas,
		Title:   "Database choice changed",
		Content: "We use Postgres as the primary datastore for all production workloads now.",
	})
	if err != nil || !b.Stored {
		t.Fatalf("store b: result=%+v err=%v", b, err)
	}

	entries := []LabeledEntry{
		{Projected: store.Projected{ID: a.ID}, Lobe: "alpha"},
		{Projected: store.Projected{ID: b.ID}, Lobe: "beta"},
	}
	pairs := c.DetectConflicts(entries)
	if len(pairs) != 0 {
		t.Fatalf("conflicts spanning two different stores' ids must not cross-match, got %+v", pairs)
	}
}

func TestBootstrapAutoCreatesUnconfiguredLobe(t *testing.T) {
	c := newTestCoordinator(t)
	root := t.TempDir()

	emptySeed := func(string) ([]store.Seed, error) { return nil, nil }
	result, err := c.Bootstrap("newlobe", root, 0, emptySeed)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if result == nil {
		t.Fatal("expected a non-nil bootstrap result")
	}
	if _, ok := c.lobeByName("newlobe"); !ok {
		t.Fatal("expected the lobe to be registered after bootstrap")
	}
}

func TestStatsReportsEveryHealthyLobePlusGlobal(t *testing.T) {
	c := newTestCoordinator(t, "alpha", "beta")

	stats := c.Stats("")
	if _, ok := stats["alpha"]; !ok {
		t.Error("expected alpha in stats")
	}
	if _, ok := stats["beta"]; !ok {
		t.Error("expected beta in stats")
	}
	if _, ok := stats["global"]; !ok {
		t.Error("expected global in stats")
	}
}
