package coordinator

import (
	"os"

	"github.com/untoldecay/memory-mcp/internal/config"
)

// MaybeReload implements §4.E's hot-reload contract: only a file-based
// config origin ever stats the filesystem. If mtime advanced since the
// last check, the config is re-read and reconciled: new lobes are added
// and initialized immediately (not lazily), vanished lobes are removed, and lobes
// whose root changed are reinitialized. Stat errors (ENOENT, EACCES) are
// swallowed and the current config is retained, per spec.
func (c *Coordinator) MaybeReload() error {
	c.mu.RLock()
	origin := c.cfg.Origin
	c.mu.RUnlock()

	if origin != config.OriginFile {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	mtime, err := c.cfg.StatMtime()
	if err != nil {
		if os.IsNotExist(err) || os.IsPermission(err) {
			return nil
		}
		return nil
	}
	if mtime <= c.lastMtime {
		return nil
	}
	c.lastMtime = mtime

	newCfg, err := config.Load()
	if err != nil {
		// Swallow: retain the currently-loaded config rather than fail an
		// in-flight operation over a transient parse error.
		return nil
	}

	c.reconcileLocked(newCfg)
	return nil
}

// reconcileLocked must be called while holding c.mu for writing.
func (c *Coordinator) reconcileLocked(newCfg *config.Config) {
	for name := range c.lobes {
		if _, stillConfigured := newCfg.Lobes[name]; !stillConfigured {
			delete(c.lobes, name)
			delete(c.health, name)
		}
	}

	for name, lobeCfg := range newCfg.Lobes {
		existing, ok := c.lobes[name]
		if !ok {
			c.initLobeLocked(name, lobeCfg)
			continue
		}
		if existing.RepoRoot() != lobeCfg.Root {
			c.initLobeLocked(name, lobeCfg)
		}
	}

	c.cfg = newCfg
	c.recomputeStateLocked()
}
