// Package wfcconfig loads the YAML run configuration consumed by cmd/wfcgen.
// It is read only by the CLI shell — the solver core never imports it and
// sees nothing but an assembled solver.Settings.
package wfcconfig

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config specifies one generation run end to end: grid dimensions, seed,
// which plugins to enable, their settings, and output options.
type Config struct {
	// Seed is the master seed for deterministic generation. Zero means
	// "auto-generate from current time".
	Seed uint64 `yaml:"seed" json:"seed"`

	// Grid specifies the output map dimensions.
	Grid GridCfg `yaml:"grid" json:"grid"`

	// Plugins lists the tile pack YAML file paths to load and merge, in the
	// order the compiler should apply them (last write wins on tile id).
	Plugins []string `yaml:"plugins" json:"plugins"`

	// PluginSettings is opaque per-plugin configuration, passed through to
	// solver.Settings.PluginSettings unmodified.
	PluginSettings map[string]any `yaml:"pluginSettings,omitempty" json:"pluginSettings,omitempty"`

	// Overlay points at the optional tiles.json/rules.json overlay pair
	// (see pkg/compiler); either may be left empty.
	Overlay OverlayCfg `yaml:"overlay,omitempty" json:"overlay,omitempty"`

	// RetryBudget overrides solver.DefaultRetryBudget when > 0.
	RetryBudget int `yaml:"retryBudget,omitempty" json:"retryBudget,omitempty"`

	// ProgressEvery overrides solver.DefaultProgressEvery when > 0.
	ProgressEvery int `yaml:"progressEvery,omitempty" json:"progressEvery,omitempty"`

	// Output controls where and how the result is written.
	Output OutputCfg `yaml:"output" json:"output"`
}

// GridCfg specifies output map dimensions.
type GridCfg struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// OverlayCfg points at optional JSON overlay files merged over the
// registered plugins by pkg/compiler.
type OverlayCfg struct {
	Dir string `yaml:"dir,omitempty" json:"dir,omitempty"`
}

// OutputCfg controls result export.
type OutputCfg struct {
	// Path is the file the result is written to. Empty means stdout.
	Path string `yaml:"path,omitempty" json:"path,omitempty"`

	// Compact selects compact JSON over indented JSON.
	Compact bool `yaml:"compact,omitempty" json:"compact,omitempty"`
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadConfigFromBytes(data)
}

// LoadConfigFromBytes parses YAML configuration from a byte slice. Useful
// for tests and programmatic config construction.
func LoadConfigFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	if cfg.Seed == 0 {
		cfg.Seed = generateSeed()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks all configuration constraints, returning the first
// failure found.
func (c *Config) Validate() error {
	if c.Grid.Width < 1 {
		return fmt.Errorf("grid.width must be at least 1, got %d", c.Grid.Width)
	}
	if c.Grid.Height < 1 {
		return fmt.Errorf("grid.height must be at least 1, got %d", c.Grid.Height)
	}
	if len(c.Plugins) == 0 {
		return errors.New("at least one plugin must be enabled")
	}
	if c.RetryBudget < 0 {
		return fmt.Errorf("retryBudget must be >= 0, got %d", c.RetryBudget)
	}
	if c.ProgressEvery < 0 {
		return fmt.Errorf("progressEvery must be >= 0, got %d", c.ProgressEvery)
	}
	return nil
}

// ToYAML serializes the config back to YAML.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Hash computes a deterministic fingerprint of the configuration, the same
// way the RNG's configHash inputs are derived: serialize, then SHA-256.
func (c *Config) Hash() []byte {
	data, err := c.ToYAML()
	if err != nil {
		h := sha256.New()
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], c.Seed)
		h.Write(buf[:])
		return h.Sum(nil)
	}
	h := sha256.New()
	h.Write(data)
	return h.Sum(nil)
}

// generateSeed derives a seed from the current time when none is supplied.
func generateSeed() uint64 {
	now := time.Now().UnixNano()
	if now < 0 {
		now = -now
	}
	seed := uint64(now)
	if seed == 0 {
		seed = 1
	}
	return seed
}
