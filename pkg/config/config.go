// Package config loads and validates smelldetect configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/Hazem-khriji/Code-smell-detector/pkg/analyzer/smells"
)

// Config holds all configuration options for smelldetect.
type Config struct {
	Analysis   AnalysisConfig    `koanf:"analysis"`
	Thresholds smells.Thresholds `koanf:"thresholds"`
	Exclude    ExcludeConfig     `koanf:"exclude"`
	Cache      CacheConfig       `koanf:"cache"`
	Output     OutputConfig      `koanf:"output"`
}

// AnalysisConfig controls detection behavior.
type AnalysisConfig struct {
	// NestedDefinitionReset excludes nested function/class bodies from the
	// enclosing function's nesting depth.
	NestedDefinitionReset bool `koanf:"nested_definition_reset"`
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns  []string `koanf:"patterns"`
	Dirs      []string `koanf:"dirs"`
	Gitignore bool     `koanf:"gitignore"`
}

// CacheConfig controls result caching.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
	TTL     int    `koanf:"ttl"` // hours
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format string `koanf:"format"` // text, json, markdown, toon
	Color  bool   `koanf:"color"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			NestedDefinitionReset: false,
		},
		Thresholds: smells.DefaultThresholds(),
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*_test.go",
				"*_test.py",
				"*.min.js",
			},
			Dirs: []string{
				"vendor",
				"node_modules",
				".git",
				"dist",
				"build",
				"__pycache__",
			},
			Gitignore: true,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".smelldetect/cache",
			TTL:     24,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}

// Load loads configuration from a file, validating it before returning.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOrDefault tries standard config locations, falling back to defaults.
func LoadOrDefault() *Config {
	names := []string{
		"smelldetect.toml",
		"smelldetect.yaml",
		"smelldetect.yml",
		"smelldetect.json",
		".smelldetect.toml",
		".smelldetect.yaml",
	}

	for _, dir := range []string{".", ".smelldetect"} {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				if cfg, err := Load(path); err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}

// Validate rejects configurations that indicate caller misuse. Detection
// thresholds must be positive; this is a configuration-time failure,
// distinct from per-file analysis errors.
func (c *Config) Validate() error {
	if err := c.Thresholds.Validate(); err != nil {
		return err
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache ttl must not be negative (got %d)", c.Cache.TTL)
	}
	return nil
}
