// Package config provides configuration types and defaults for the block
// engine demo CLI. The core (internal/block, internal/cx,
// internal/blockmanager, internal/layout, internal/overlay,
// internal/integrator) takes all of its tunables as explicit constructor
// arguments and never reads this package directly — Config exists to load
// those arguments from a file for cmd/blockdemo.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cxterm/blockengine/internal/log"
)

// Config holds all configuration options for the block engine demo.
// cmd/blockdemo applies only MaxBlocks and Dispatch.MaxQueued; the
// Render, Theme and Tracing sections are loaded and (for Tracing)
// validated, but no code in this module acts on them.
type Config struct {
	MaxBlocks int            `mapstructure:"max_blocks"`
	Render    RenderConfig   `mapstructure:"render"`
	Theme     ThemeConfig    `mapstructure:"theme"`
	Tracing   TracingConfig  `mapstructure:"tracing"`
	Dispatch  DispatchConfig `mapstructure:"dispatch"`
}

// RenderConfig holds overlay rendering options.
type RenderConfig struct {
	// ShowStatusRibbon toggles the left-edge state-colored ribbon.
	ShowStatusRibbon bool `mapstructure:"show_status_ribbon"`
	// ShowDuration toggles the humanized duration in the block header.
	ShowDuration bool `mapstructure:"show_duration"`
	// ShowActionButtons toggles hover-revealed action buttons.
	ShowActionButtons bool `mapstructure:"show_action_buttons"`
	// MaxHeaderWidth truncates header text past this display-cell width.
	// 0 disables truncation.
	MaxHeaderWidth int `mapstructure:"max_header_width"`
}

// ThemeConfig holds color customization options.
type ThemeConfig struct {
	// Preset loads a built-in color theme as the base (optional).
	// Valid values: "default", "catppuccin-mocha", "catppuccin-latte",
	// "dracula", "nord", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Mode forces light or dark mode. If empty, uses terminal detection.
	Mode string `mapstructure:"mode"`

	// Colors allows overriding individual color tokens, e.g.
	// "status.success": "#73F59F". Supports nested YAML or dot notation.
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// TracingConfig holds distributed tracing configuration for block
// lifecycle spans. Its fields match internal/tracing.Config except that
// it has no ServiceName; it carries mapstructure tags for viper, while
// tracing.Config carries yaml tags.
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	Exporter     string  `mapstructure:"exporter"`
	FilePath     string  `mapstructure:"file_path"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate"`
}

// DispatchConfig holds AI/agent dispatch outbox configuration.
type DispatchConfig struct {
	// MaxQueued caps the fire-and-forget dispatch outbox. When full,
	// new requests are logged and discarded (never block the UI thread).
	MaxQueued int `mapstructure:"max_queued"`
}

// DefaultConfigFilePath returns the default path for the config file.
// Returns ~/.config/blockengine/config.yaml or empty string if home
// directory unavailable.
func DefaultConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "blockengine", "config.yaml")
}

// DefaultTracesFilePath returns the default path for trace file export.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "blockengine", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		MaxBlocks: 1000,
		Render: RenderConfig{
			ShowStatusRibbon:  true,
			ShowDuration:      true,
			ShowActionButtons: true,
			MaxHeaderWidth:    120,
		},
		Theme: ThemeConfig{
			Preset: "",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "",
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Dispatch: DispatchConfig{
			MaxQueued: 100,
		},
	}
}

// Validate checks the configuration for errors. Returns nil if the
// configuration is valid (empty/zero values fall back to defaults).
func Validate(cfg Config) error {
	if cfg.MaxBlocks < 0 {
		return fmt.Errorf("max_blocks must be >= 0, got %d", cfg.MaxBlocks)
	}
	if err := validateTracing(cfg.Tracing); err != nil {
		return err
	}
	if cfg.Dispatch.MaxQueued < 0 {
		return fmt.Errorf("dispatch.max_queued must be >= 0, got %d", cfg.Dispatch.MaxQueued)
	}
	return nil
}

func validateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Block engine demo configuration

# Soft cap on blocks retained per pane before FIFO eviction kicks in.
# Pinned blocks are never evicted; the cap becomes effectively soft
# once every remaining block is pinned.
max_blocks: 1000

# Overlay rendering options
render:
  show_status_ribbon: true    # left-edge state-colored ribbon
  show_duration: true         # humanized duration in block header
  show_action_buttons: true   # hover-revealed copy/rerun/explain buttons
  max_header_width: 120       # truncate header text past this cell width, 0 disables

# Color theme
theme:
  # preset: catppuccin-mocha
  #
  # Available presets:
  #   default           - Default block engine theme
  #   catppuccin-mocha  - Warm, cozy dark theme
  #   catppuccin-latte  - Warm, cozy light theme
  #   dracula           - Dark theme with vibrant colors
  #   nord              - Arctic, north-bluish palette
  #   high-contrast     - High contrast for accessibility
  #
  # colors:
  #   status.success: "#73F59F"
  #   status.failed: "#FF8787"

# Distributed tracing for block lifecycle spans
tracing:
  enabled: false
  exporter: file   # none, file, stdout, or otlp
  # file_path: ~/.config/blockengine/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0

# AI/agent dispatch outbox
dispatch:
  max_queued: 100   # requests queued before new ones are logged and discarded
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "created default config", "path", configPath)
	return nil
}
