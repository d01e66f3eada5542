// Package config loads chaffc configuration from chaffc.yaml with
// environment overrides. Every field has a working default so the tool
// runs with no config file at all.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up in the exercise directory.
const DefaultFileName = "chaffc.yaml"

// Config holds all chaffc configuration.
type Config struct {
	// CodeDir is the name of the template source subdirectory inside an
	// exercise directory.
	CodeDir string `yaml:"code_dir"`

	Preview PreviewConfig `yaml:"preview"`
	Compile CompileConfig `yaml:"compile"`
}

// PreviewConfig configures the HTML preview renderer and watch mode.
type PreviewConfig struct {
	// Style is the chroma style name used for highlighting.
	Style string `yaml:"style"`

	// LineNumbers toggles line numbers in the rendered preview.
	LineNumbers bool `yaml:"line_numbers"`

	// Debounce is how long the watcher waits for edits to settle before
	// re-rendering, as a Go duration string.
	Debounce string `yaml:"debounce"`
}

// CompileConfig configures the tree compiler.
type CompileConfig struct {
	// Workers bounds how many template files compile concurrently.
	Workers int `yaml:"workers"`

	// OutputDir is the default output directory for chaffc compile.
	OutputDir string `yaml:"output_dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		CodeDir: "code",
		Preview: PreviewConfig{
			Style:       "github",
			LineNumbers: true,
			Debounce:    "500ms",
		},
		Compile: CompileConfig{
			Workers:   4,
			OutputDir: "compiled",
		},
	}
}

// Load reads the config file at path, layered over the defaults and under
// the environment overrides. A missing file is not an error: the defaults
// apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// applyEnvOverrides layers CHAFFC_* environment variables over the loaded
// values. Environment always wins over file contents.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CHAFFC_STYLE"); v != "" {
		cfg.Preview.Style = v
	}
	if v := os.Getenv("CHAFFC_CODE_DIR"); v != "" {
		cfg.CodeDir = v
	}
	if v := os.Getenv("CHAFFC_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Compile.Workers = n
		}
	}
}

func (c *Config) validate() error {
	if c.Compile.Workers < 0 {
		return fmt.Errorf("compile.workers must not be negative, got %d", c.Compile.Workers)
	}
	if c.Preview.Debounce != "" {
		if _, err := time.ParseDuration(c.Preview.Debounce); err != nil {
			return fmt.Errorf("preview.debounce: %w", err)
		}
	}
	return nil
}

// DebounceDuration returns the parsed watch debounce interval, falling
// back to the default when unset or unparseable.
func (p PreviewConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(p.Debounce)
	if err != nil || d <= 0 {
		return 500 * time.Millisecond
	}
	return d
}
