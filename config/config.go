// Package config loads and persists tool configuration.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the root configuration structure.
type Config struct {
	Aggregation AggregationConfig `json:"aggregation"`
	Diffs       DiffConfig        `json:"diffs"`
	Filters     FilterConfig      `json:"filters"`
	Output      OutputConfig      `json:"output"`
	SVN         SVNConfig         `json:"svn"`
}

// AggregationConfig holds windowing options.
type AggregationConfig struct {
	WindowWeeks int `json:"windowWeeks"` // Default: 12
}

// DiffConfig holds diff fetching and caching options.
type DiffConfig struct {
	Workers        int    `json:"workers"`        // Default: 4
	TimeoutSeconds int    `json:"timeoutSeconds"` // Per-diff fetch timeout. Default: 60
	CacheDir       string `json:"cacheDir"`       // Default: ".cache"
	CacheBackend   string `json:"cacheBackend"`   // "json" or "bolt". Default: "json"
}

// FilterConfig holds file path filtering options for the Git pipeline.
type FilterConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// OutputConfig holds output location options.
type OutputConfig struct {
	Dir string `json:"dir"` // Default: "data"
}

// SVNConfig holds Subversion repository options.
type SVNConfig struct {
	URL string `json:"url"` // Default: WordPress develop repo
}

// DefaultSVNURL is the canonical WordPress core development repository.
const DefaultSVNURL = "https://develop.svn.wordpress.org/"

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Aggregation: AggregationConfig{
			WindowWeeks: 12,
		},
		Diffs: DiffConfig{
			Workers:        4,
			TimeoutSeconds: 60,
			CacheDir:       ".cache",
			CacheBackend:   "json",
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
		Output: OutputConfig{
			Dir: "data",
		},
		SVN: SVNConfig{
			URL: DefaultSVNURL,
		},
	}
}

// LoadConfig loads configuration from a file, merging with defaults. An
// empty path checks the default locations; a missing file yields defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		candidates := []string{".repo-history.json"}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, ".repo-history.json"))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
