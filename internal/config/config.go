// Package config loads memory-mcp's layered configuration: a file-based
// memory-config.json (or .yaml sibling) found by walking up from the
// working directory, user config dir, and home dir; environment variables;
// and finally built-in defaults. It follows the teacher's viper-based
// precedence chain in spirit, adapted to this domain's lobe/behavior shape.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Origin names where a resolved Config came from. The Coordinator's
// hot-reload state machine only stats the filesystem when Origin ==
// OriginFile; non-file origins never stat, per the spec's ordering
// guarantee.
type Origin string

const (
	OriginFile    Origin = "file"
	OriginEnv     Origin = "env"
	OriginDefault Origin = "default"
)

// LobeConfig is one entry of the "lobes" map in memory-config.json.
type LobeConfig struct {
	Root      string `json:"root" mapstructure:"root"`
	BudgetMB  int    `json:"budgetMB" mapstructure:"budgetMB"`
	MemoryDir string `json:"memoryDir" mapstructure:"memoryDir"`
}

// BehaviorOverride mirrors store.Behavior's tunables as pointer fields so an
// absent key in the config file leaves the store's own default in place.
type BehaviorOverride struct {
	StaleDaysStandard          *int     `json:"staleDaysStandard,omitempty" mapstructure:"staleDaysStandard"`
	StaleDaysPreferences       *int     `json:"staleDaysPreferences,omitempty" mapstructure:"staleDaysPreferences"`
	MaxStaleInBriefing         *int     `json:"maxStaleInBriefing,omitempty" mapstructure:"maxStaleInBriefing"`
	MaxDedupSuggestions        *int     `json:"maxDedupSuggestions,omitempty" mapstructure:"maxDedupSuggestions"`
	MaxConflictPairs           *int     `json:"maxConflictPairs,omitempty" mapstructure:"maxConflictPairs"`
	DedupThreshold             *float64 `json:"dedupThreshold,omitempty" mapstructure:"dedupThreshold"`
	PreferenceSurfaceThreshold *float64 `json:"preferenceSurfaceThreshold,omitempty" mapstructure:"preferenceSurfaceThreshold"`
	ConflictThreshold          *float64 `json:"conflictThreshold,omitempty" mapstructure:"conflictThreshold"`
}

// Config is the fully resolved configuration, tagged with the origin it was
// resolved from and (for file origin) the path that was stat'd.
type Config struct {
	Origin   Origin
	FilePath string
	Lobes    map[string]LobeConfig
	Behavior BehaviorOverride
}

const envPrefix = "MEMORY_MCP"

// Load resolves configuration using the documented precedence chain:
// project memory-config.json (walking up from cwd) > XDG config dir >
// home dir > environment variables > defaults (single lobe at user home).
func Load() (*Config, error) {
	v := viper.New()

	filePath, found := locateConfigFile()
	if found {
		v.SetConfigFile(filePath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", filePath, err)
		}
		cfg, err := fromViper(v)
		if err != nil {
			return nil, err
		}
		cfg.Origin = OriginFile
		cfg.FilePath = filePath
		return cfg, nil
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if repoRoot := os.Getenv(envPrefix + "_REPO_ROOT"); repoRoot != "" {
		cfg := &Config{Origin: OriginEnv, Lobes: map[string]LobeConfig{
			lobeNameFromPath(repoRoot): {Root: repoRoot, MemoryDir: defaultMemoryDir(os.Getenv(envPrefix + "_DIR"))},
		}}
		if workspaces := os.Getenv(envPrefix + "_WORKSPACES"); workspaces != "" {
			lobes := map[string]LobeConfig{}
			if err := json.Unmarshal([]byte(workspaces), &lobes); err != nil {
				return nil, fmt.Errorf("parse %s_WORKSPACES: %w", envPrefix, err)
			}
			cfg.Lobes = lobes
		}
		return cfg, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user home: %w", err)
	}
	return &Config{
		Origin: OriginDefault,
		Lobes: map[string]LobeConfig{
			"home": {Root: home, MemoryDir: ".memory-mcp"},
		},
	}, nil
}

func defaultMemoryDir(configuredDir string) string {
	if configuredDir != "" {
		return configuredDir
	}
	return ".memory-mcp"
}

func lobeNameFromPath(path string) string {
	name := filepath.Base(filepath.Clean(path))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "repo"
	}
	return name
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{Lobes: map[string]LobeConfig{}}
	if err := v.UnmarshalKey("lobes", &cfg.Lobes); err != nil {
		return nil, fmt.Errorf("parse lobes: %w", err)
	}
	if err := v.UnmarshalKey("behavior", &cfg.Behavior); err != nil {
		return nil, fmt.Errorf("parse behavior: %w", err)
	}
	return cfg, nil
}

// locateConfigFile walks up from the working directory looking for
// memory-config.json (or .yaml), then checks the XDG config dir, then the
// home directory, matching the teacher's three-tier file-search order.
func locateConfigFile() (string, bool) {
	names := []string{"memory-config.json", "memory-config.yaml", "memory-config.yml"}

	if cwd, err := os.Getwd(); err == nil {
		for dir := cwd; ; dir = filepath.Dir(dir) {
			for _, name := range names {
				p := filepath.Join(dir, name)
				if _, err := os.Stat(p); err == nil {
					return p, true
				}
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		for _, name := range names {
			p := filepath.Join(configDir, "memory-mcp", name)
			if _, err := os.Stat(p); err == nil {
				return p, true
			}
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		for _, name := range names {
			p := filepath.Join(home, ".memory-mcp", name)
			if _, err := os.Stat(p); err == nil {
				return p, true
			}
		}
	}

	return "", false
}

// StatMtime returns the config file's modification time as a Unix
// nanosecond timestamp, used by the coordinator's hot-reload poll. It must
// only be called when Origin == OriginFile.
func (c *Config) StatMtime() (int64, error) {
	info, err := os.Stat(c.FilePath)
	if err != nil {
		return 0, err
	}
	return info.ModTime().UnixNano(), nil
}
