// Package config loads tij's own configuration file. All repository state
// lives in jj; this file only carries UI preferences and the protected
// bookmark list.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is read from $XDG_CONFIG_HOME/tij/config.toml. A missing file is
// not an error; defaults apply.
type Config struct {
	// ProtectedBookmarks are names push refuses to force-push without the
	// elevated warning. Merged with jj's own config at startup.
	ProtectedBookmarks []string `toml:"protected_bookmarks"`
	// LogLimit bounds the default log query. A user revset disables it.
	LogLimit int `toml:"log_limit"`
	// PreviewCapacity bounds the LRU preview cache.
	PreviewCapacity int `toml:"preview_capacity"`
	// PreviewEnabled controls the diff preview pane at startup.
	PreviewEnabled bool `toml:"preview_enabled"`
	// OpLogLimit bounds the operation history query.
	OpLogLimit int `toml:"op_log_limit"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ProtectedBookmarks: []string{"main", "master", "trunk"},
		LogLimit:           200,
		PreviewCapacity:    32,
		PreviewEnabled:     true,
		OpLogLimit:         100,
	}
}

// Path returns the config file location, honoring XDG_CONFIG_HOME.
func Path() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "tij", "config.toml")
}

// Load reads the config file at path, applying defaults for absent keys.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	if cfg.LogLimit <= 0 {
		cfg.LogLimit = Default().LogLimit
	}
	if cfg.PreviewCapacity <= 0 {
		cfg.PreviewCapacity = Default().PreviewCapacity
	}
	if cfg.OpLogLimit <= 0 {
		cfg.OpLogLimit = Default().OpLogLimit
	}
	return cfg, nil
}

// IsProtected reports whether name is in the protected list.
func (c *Config) IsProtected(name string) bool {
	for _, p := range c.ProtectedBookmarks {
		if p == name {
			return true
		}
	}
	return false
}

// MergeProtected adds names (from jj's config) to the protected list,
// de-duplicated.
func (c *Config) MergeProtected(names []string) {
	for _, n := range names {
		if n != "" && !c.IsProtected(n) {
			c.ProtectedBookmarks = append(c.ProtectedBookmarks, n)
		}
	}
}
