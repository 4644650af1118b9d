package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the mapper configuration.
type Config struct {
	WorldDir     string `json:"world_dir"`
	RegionList   string `json:"region_list"`    // path to a file listing region containers, one per line
	UseBiomeData bool   `json:"use_biome_data"` // look for extracted biome data next to the world
	LogLevel     string `json:"log_level"`      // "debug", "info", "warn", or "error"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
	}
}

// LoadFile reads a JSON config file into a Config. A missing file is
// not an error and yields nil.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Merge applies file-loaded config values into cfg, but only for
// fields that were NOT explicitly set via CLI flags. explicitFlags
// contains the flag names that were provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if fromFile == nil {
		return
	}
	if !explicitFlags["world"] {
		cfg.WorldDir = fromFile.WorldDir
	}
	if !explicitFlags["regionlist"] {
		cfg.RegionList = fromFile.RegionList
	}
	if !explicitFlags["biomes"] {
		cfg.UseBiomeData = fromFile.UseBiomeData
	}
	if !explicitFlags["log-level"] {
		cfg.LogLevel = fromFile.LogLevel
	}
}
