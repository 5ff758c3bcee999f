// Package projectconfig provides the ProjectConfig struct and loader for
// .deckard.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default values for project configuration. These are the single source of
// truth: New() references them and no other code should duplicate them.
const (
	DefaultDecksDir   = "decks/"
	DefaultResultsDir = "results/"

	DefaultWorkers       = 4
	DefaultMinConfidence = 0.4
	DefaultFormat        = "table"

	DefaultCacheDir = ".deckard-cache"

	DefaultServerPort       = 3000
	DefaultServerResultsDir = "."

	DefaultGenerationProvider = "static"
	DefaultGenerationSlides   = 5
)

// PathsConfig holds directory paths for deck files and analysis results.
type PathsConfig struct {
	Decks   string `yaml:"decks,omitempty"`
	Results string `yaml:"results,omitempty"`
}

// DefaultsConfig holds default analysis parameters.
type DefaultsConfig struct {
	Workers       int     `yaml:"workers,omitempty"`
	Parallel      *bool   `yaml:"parallel,omitempty"`
	MinConfidence float64 `yaml:"min_confidence,omitempty"`
	Format        string  `yaml:"format,omitempty"`
}

// CacheConfig holds cache settings.
type CacheConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Dir     string `yaml:"dir,omitempty"`
}

// ServerConfig holds dashboard server settings.
type ServerConfig struct {
	Port       int    `yaml:"port,omitempty"`
	ResultsDir string `yaml:"results_dir,omitempty"`
}

// GenerationConfig holds deckard draft settings.
type GenerationConfig struct {
	Provider     string  `yaml:"provider,omitempty"`
	Model        string  `yaml:"model,omitempty"`
	RateLimitRPS float64 `yaml:"rate_limit_rps,omitempty"`
	Slides       int     `yaml:"slides,omitempty"`
}

// RulesConfig holds rule table settings.
type RulesConfig struct {
	WeightsFile string `yaml:"weights_file,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .deckard.yaml.
type ProjectConfig struct {
	Paths      PathsConfig      `yaml:"paths,omitempty"`
	Defaults   DefaultsConfig   `yaml:"defaults,omitempty"`
	Cache      CacheConfig      `yaml:"cache,omitempty"`
	Server     ServerConfig     `yaml:"server,omitempty"`
	Generation GenerationConfig `yaml:"generation,omitempty"`
	Rules      RulesConfig      `yaml:"rules,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Paths: PathsConfig{
			Decks:   DefaultDecksDir,
			Results: DefaultResultsDir,
		},
		Defaults: DefaultsConfig{
			Workers:       DefaultWorkers,
			Parallel:      boolPtr(false),
			MinConfidence: DefaultMinConfidence,
			Format:        DefaultFormat,
		},
		Cache: CacheConfig{
			Enabled: boolPtr(false),
			Dir:     DefaultCacheDir,
		},
		Server: ServerConfig{
			Port:       DefaultServerPort,
			ResultsDir: DefaultServerResultsDir,
		},
		Generation: GenerationConfig{
			Provider: DefaultGenerationProvider,
			Slides:   DefaultGenerationSlides,
		},
	}
}

// Load finds .deckard.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading .deckard.yaml: %w", err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing .deckard.yaml: %w", err)
	}

	// Merge file values onto defaults.
	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .deckard.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found. Propagates
// real I/O errors (e.g. permission denied) instead of silently swallowing
// them.
func findConfigFile(dir string) ([]byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ".deckard.yaml")
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Paths
	if src.Paths.Decks != "" {
		dst.Paths.Decks = src.Paths.Decks
	}
	if src.Paths.Results != "" {
		dst.Paths.Results = src.Paths.Results
	}

	// Defaults
	if src.Defaults.Workers != 0 {
		dst.Defaults.Workers = src.Defaults.Workers
	}
	if src.Defaults.Parallel != nil {
		dst.Defaults.Parallel = src.Defaults.Parallel
	}
	if src.Defaults.MinConfidence != 0 {
		dst.Defaults.MinConfidence = src.Defaults.MinConfidence
	}
	if src.Defaults.Format != "" {
		dst.Defaults.Format = src.Defaults.Format
	}

	// Cache
	if src.Cache.Enabled != nil {
		dst.Cache.Enabled = src.Cache.Enabled
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}

	// Server
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.ResultsDir != "" {
		dst.Server.ResultsDir = src.Server.ResultsDir
	}

	// Generation
	if src.Generation.Provider != "" {
		dst.Generation.Provider = src.Generation.Provider
	}
	if src.Generation.Model != "" {
		dst.Generation.Model = src.Generation.Model
	}
	if src.Generation.RateLimitRPS != 0 {
		dst.Generation.RateLimitRPS = src.Generation.RateLimitRPS
	}
	if src.Generation.Slides != 0 {
		dst.Generation.Slides = src.Generation.Slides
	}

	// Rules
	if src.Rules.WeightsFile != "" {
		dst.Rules.WeightsFile = src.Rules.WeightsFile
	}
}

func boolPtr(b bool) *bool {
	return &b
}
