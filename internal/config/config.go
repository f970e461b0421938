// Package config loads a run's YAML configuration file: a single struct
// decoded with gopkg.in/yaml.v3, with defaults applied before decoding
// rather than scattered zero-value checks at each call site.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Search holds the knobs exposed by both cmd/mimir-brfs and cmd/mimir-astar.
type Search struct {
	SplitMetric            string        `yaml:"split_metric"`
	PreferAtomsOverNumeric bool          `yaml:"prefer_atoms_over_numeric"`
	MaxMatchTreeNodes      int           `yaml:"max_match_tree_nodes"`
	TimeLimit              time.Duration `yaml:"time_limit"`
	MaxStates              int           `yaml:"max_states"`
}

// Logging holds the operator's logging preferences.
type Logging struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Config is the full run configuration file.
type Config struct {
	Search  Search  `yaml:"search"`
	Logging Logging `yaml:"logging"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Search: Search{
			SplitMetric:            "gain",
			PreferAtomsOverNumeric: true,
			MaxMatchTreeNodes:      1 << 20,
		},
		Logging: Logging{Level: "info"},
	}
}

// Load reads and decodes path, starting from Default() so a partial file
// only overrides the fields it mentions.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
