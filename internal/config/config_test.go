package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearMemoryMCPEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{"MEMORY_MCP_REPO_ROOT", "MEMORY_MCP_DIR", "MEMORY_MCP_WORKSPACES"} {
		t.Setenv(v, "")
	}
}

func TestLoadDefaultsToSingleHomeLobeWhenNothingConfigured(t *testing.T) {
	clearMemoryMCPEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Origin != OriginDefault {
		t.Fatalf("Origin = %q, want %q", cfg.Origin, OriginDefault)
	}
	lobe, ok := cfg.Lobes["home"]
	if !ok {
		t.Fatalf("expected a 'home' lobe, got %+v", cfg.Lobes)
	}
	if lobe.Root != home {
		t.Errorf("Root = %q, want %q", lobe.Root, home)
	}
	if lobe.MemoryDir != ".memory-mcp" {
		t.Errorf("MemoryDir = %q, want .memory-mcp", lobe.MemoryDir)
	}
}

func TestLoadEnvOriginFromRepoRoot(t *testing.T) {
	clearMemoryMCPEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	repoRoot := t.TempDir()
	t.Setenv("MEMORY_MCP_REPO_ROOT", repoRoot)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Origin != OriginEnv {
		t.Fatalf("Origin = %q, want %q", cfg.Origin, OriginEnv)
	}
	name := filepath.Base(repoRoot)
	lobe, ok := cfg.Lobes[name]
	if !ok {
		t.Fatalf("expected a lobe named %q, got %+v", name, cfg.Lobes)
	}
	if lobe.Root != repoRoot {
		t.Errorf("Root = %q, want %q", lobe.Root, repoRoot)
	}
}

func TestLoadEnvOriginWithWorkspacesOverride(t *testing.T) {
	clearMemoryMCPEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	repoRoot := t.TempDir()
	t.Setenv("MEMORY_MCP_REPO_ROOT", repoRoot)
	t.Setenv("MEMORY_MCP_WORKSPACES", `{"custom":{"root":"/tmp/custom","budgetMB":50}}`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	lobe, ok := cfg.Lobes["custom"]
	if !ok {
		t.Fatalf("expected the WORKSPACES override to replace lobes, got %+v", cfg.Lobes)
	}
	if lobe.Root != "/tmp/custom" || lobe.BudgetMB != 50 {
		t.Errorf("lobe = %+v, want root /tmp/custom budget 50", lobe)
	}
}

func TestLoadFileOriginWalksUpFromCwd(t *testing.T) {
	clearMemoryMCPEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := t.TempDir()
	sub := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(sub, 0750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	configJSON := `{
		"lobes": {"alpha": {"root": "/repo/alpha", "budgetMB": 10}},
		"behavior": {"staleDaysStandard": 14, "conflictThreshold": 0.8}
	}`
	if err := os.WriteFile(filepath.Join(root, "memory-config.json"), []byte(configJSON), 0640); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Chdir(sub)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Origin != OriginFile {
		t.Fatalf("Origin = %q, want %q", cfg.Origin, OriginFile)
	}
	lobe, ok := cfg.Lobes["alpha"]
	if !ok || lobe.Root != "/repo/alpha" || lobe.BudgetMB != 10 {
		t.Fatalf("Lobes = %+v", cfg.Lobes)
	}
	if cfg.Behavior.StaleDaysStandard == nil || *cfg.Behavior.StaleDaysStandard != 14 {
		t.Fatalf("Behavior.StaleDaysStandard = %v, want 14", cfg.Behavior.StaleDaysStandard)
	}
	if cfg.Behavior.ConflictThreshold == nil || *cfg.Behavior.ConflictThreshold != 0.8 {
		t.Fatalf("Behavior.ConflictThreshold = %v, want 0.8", cfg.Behavior.ConflictThreshold)
	}
}

func TestStatMtimeRequiresFileOrigin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "memory-config.json")
	if err := os.WriteFile(path, []byte(`{}`), 0640); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg := &Config{Origin: OriginFile, FilePath: path}
	mtime, err := cfg.StatMtime()
	if err != nil {
		t.Fatalf("StatMtime: %v", err)
	}
	if mtime <= 0 {
		t.Errorf("mtime = %d, want positive", mtime)
	}
}
