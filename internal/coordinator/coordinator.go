// Package coordinator owns the lobeName -> Store registry plus the global
// store shared by every lobe for the user/preferences topics, and drives
// hot-reload, lobe resolution, and cross-lobe read fan-out.
package coordinator

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/untoldecay/memory-mcp/internal/clock"
	"github.com/untoldecay/memory-mcp/internal/config"
	"github.com/untoldecay/memory-mcp/internal/store"
)

// State is the coordinator's overall health, derived from its lobes'
// individual health at Init/reload time.
type State string

const (
	Running  State = "running"
	Degraded State = "degraded"
	SafeMode State = "safe_mode"
)

// LobeHealth records one lobe's init/reinit outcome.
type LobeHealth struct {
	Name          string
	Healthy       bool
	Err           string
	RecoverySteps []string
}

// Coordinator is the top-level object a host process constructs once at
// startup. It is safe for concurrent use.
type Coordinator struct {
	mu     sync.RWMutex
	cfg    *config.Config
	logger *slog.Logger
	clk    clock.Clock

	lobes  map[string]*store.Store
	health map[string]*LobeHealth
	global *store.Store

	state        State
	lastMtime    int64
	globalDir    string
	watcherEvent <-chan struct{}
}

// New constructs a Coordinator from a resolved Config. Call Init before
// routing any operation.
func New(cfg *config.Config, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		cfg:    cfg,
		logger: logger,
		clk:    clock.Real(),
		lobes:  make(map[string]*store.Store),
		health: make(map[string]*LobeHealth),
	}
}

// Init attempts to initialize every configured lobe's Store independently,
// plus the global store, and derives overall State from the per-lobe
// results: Running if all lobes succeed, Degraded if some fail, SafeMode
// if all fail (a SafeMode coordinator still answers diagnostic tools).
func (c *Coordinator) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve user home for global store: %w", err)
	}
	c.globalDir = filepath.Join(home, ".memory-mcp", "global")
	c.global = store.New(store.Config{MemoryPath: c.globalDir, Clock: c.clk})
	if err := c.global.Init(); err != nil {
		return fmt.Errorf("init global store: %w", err)
	}

	for name, lobeCfg := range c.cfg.Lobes {
		c.initLobeLocked(name, lobeCfg)
	}

	c.recomputeStateLocked()

	if c.cfg.Origin == config.OriginFile {
		if mtime, err := c.cfg.StatMtime(); err == nil {
			c.lastMtime = mtime
		}
	}

	return c.migrateGlobalTopicsLocked()
}

func (c *Coordinator) initLobeLocked(name string, lobeCfg config.LobeConfig) {
	memDir := lobeCfg.MemoryDir
	if memDir == "" {
		memDir = ".memory-mcp"
	}
	memPath := filepath.Join(lobeCfg.Root, memDir)

	var budget int64
	if lobeCfg.BudgetMB > 0 {
		budget = int64(lobeCfg.BudgetMB) * 1024 * 1024
	}

	s := store.New(store.Config{
		RepoRoot:           lobeCfg.Root,
		MemoryPath:         memPath,
		StorageBudgetBytes: budget,
		Clock:              c.clk,
		Behavior:           resolveBehavior(c.cfg.Behavior),
	})

	if err := s.Init(); err != nil {
		c.health[name] = &LobeHealth{
			Name:          name,
			Healthy:       false,
			Err:           err.Error(),
			RecoverySteps: recoverySteps(err),
		}
		c.logger.Error("lobe init failed", "lobe", name, "error", err)
		return
	}

	c.lobes[name] = s
	c.health[name] = &LobeHealth{Name: name, Healthy: true}
}

func recoverySteps(err error) []string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "permission denied"):
		return []string{"check filesystem permissions on the lobe root", "retry after fixing ownership/permissions"}
	case strings.Contains(msg, "no such file"):
		return []string{"verify the lobe root path exists", "edit memory-config.json or re-bootstrap the lobe"}
	default:
		return []string{"inspect the lobe root for disk errors", "retry the operation"}
	}
}

func (c *Coordinator) recomputeStateLocked() {
	total := len(c.health)
	healthy := 0
	for _, h := range c.health {
		if h.Healthy {
			healthy++
		}
	}
	switch {
	case total == 0 || healthy == total:
		c.state = Running
	case healthy == 0:
		c.state = SafeMode
	default:
		c.state = Degraded
	}
}

// State reports the coordinator's current overall health.
func (c *Coordinator) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// HealthSnapshot returns a copy of every lobe's health, sorted by name.
func (c *Coordinator) HealthSnapshot() []LobeHealth {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]LobeHealth, 0, len(c.health))
	for _, h := range c.health {
		out = append(out, *h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LobeNames returns the names of the lobes whose store initialized,
// sorted; configured lobes whose init failed are not listed.
func (c *Coordinator) LobeNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.lobes))
	for n := range c.lobes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// GlobalStore returns the shared global store (user/preferences topics).
func (c *Coordinator) GlobalStore() *store.Store {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.global
}

func resolveBehavior(o config.BehaviorOverride) *store.Behavior {
	b := store.DefaultBehavior()
	if o.StaleDaysStandard != nil {
		b.StaleDaysStandard = *o.StaleDaysStandard
	}
	if o.StaleDaysPreferences != nil {
		b.StaleDaysPreferences = *o.StaleDaysPreferences
	}
	if o.MaxStaleInBriefing != nil {
		b.MaxStaleInBriefing = *o.MaxStaleInBriefing
	}
	if o.MaxDedupSuggestions != nil {
		b.MaxDedupSuggestions = *o.MaxDedupSuggestions
	}
	if o.MaxConflictPairs != nil {
		b.MaxConflictPairs = *o.MaxConflictPairs
	}
	if o.DedupThreshold != nil {
		b.DedupThreshold = *o.DedupThreshold
	}
	if o.PreferenceSurfaceThreshold != nil {
		b.PreferenceSurfaceThreshold = *o.PreferenceSurfaceThreshold
	}
	if o.ConflictThreshold != nil {
		b.ConflictThreshold = *o.ConflictThreshold
	}
	return &b
}
