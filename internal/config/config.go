// Package config resolves slimids settings from defaults, JSONC config files
// and command-line overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"

	"github.com/treerec/slimids/internal/nodetable"
	"github.com/treerec/slimids/pkg/nodemap"
)

// Output formats for the map command.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FileName is the project config file name.
const FileName = ".slimids.json"

// Error variables for config loading.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrInvalidValue       = errors.New("invalid config value")
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	Encoding   string `json:"encoding,omitempty"`
	Duplicates string `json:"duplicates,omitempty"`
	Format     string `json:"format,omitempty"`

	// Resolved (computed, not serialized)
	EffectiveCwd string  `json:"-"`
	Sources      Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Encoding:   string(nodetable.EncodingBase64),
		Duplicates: nodemap.LastWins.String(),
		Format:     FormatText,
	}
}

// Policy returns the parsed duplicate policy. Valid after [Load].
func (c Config) Policy() nodemap.Policy {
	p, _ := nodemap.ParsePolicy(c.Duplicates)
	return p
}

// TableOptions returns the node table reader options.
func (c Config) TableOptions() nodetable.Options {
	return nodetable.Options{Encoding: nodetable.Encoding(c.Encoding)}
}

// LoadInput holds the inputs for [Load].
type LoadInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	Overrides       Config            // flag values; empty fields mean no override
	Env             map[string]string // environment variables
}

// Load resolves configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config ($XDG_CONFIG_HOME/slimids/config.json or ~/.config/slimids/config.json)
// 3. Project config file (.slimids.json, if exists)
// 4. Explicit config file via ConfigPath (replaces 3)
// 5. CLI overrides.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := Default()

	globalPath := globalConfigPath(input.Env)
	if globalPath != "" {
		globalCfg, loaded, err := loadFile(globalPath, false)
		if err != nil {
			return Config{}, err
		}

		if loaded {
			cfg.Sources.Global = globalPath
			cfg = merge(cfg, globalCfg)
		}
	}

	projectPath, mustExist := filepath.Join(workDir, FileName), false

	if input.ConfigPath != "" {
		projectPath, mustExist = input.ConfigPath, true
		if !filepath.IsAbs(projectPath) {
			projectPath = filepath.Join(workDir, projectPath)
		}

		if _, statErr := os.Stat(projectPath); statErr != nil {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigFileNotFound, input.ConfigPath)
		}
	}

	projectCfg, loaded, err := loadFile(projectPath, mustExist)
	if err != nil {
		return Config{}, err
	}

	if loaded {
		cfg.Sources.Project = projectPath
		cfg = merge(cfg, projectCfg)
	}

	cfg = merge(cfg, input.Overrides)

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	cfg.EffectiveCwd = workDir

	return cfg, nil
}

func globalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "slimids", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "slimids", "config.json")
	}

	return ""
}

// loadFile loads a config file. If mustExist is false, missing files return zero config.
func loadFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if mustExist {
			return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return Config{}, false, nil
	}

	cfg, parseErr := parse(data)
	if parseErr != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	if err := validate(merge(Default(), cfg)); err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return cfg, true, nil
}

func parse(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return cfg, nil
}

func merge(base, overlay Config) Config {
	if overlay.Encoding != "" {
		base.Encoding = overlay.Encoding
	}

	if overlay.Duplicates != "" {
		base.Duplicates = overlay.Duplicates
	}

	if overlay.Format != "" {
		base.Format = overlay.Format
	}

	return base
}

func validate(cfg Config) error {
	if _, err := nodetable.ParseEncoding(cfg.Encoding); err != nil {
		return fmt.Errorf("%w: encoding: %w", ErrInvalidValue, err)
	}

	if _, err := nodemap.ParsePolicy(cfg.Duplicates); err != nil {
		return fmt.Errorf("%w: duplicates: %w", ErrInvalidValue, err)
	}

	switch cfg.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w: format: %q (want text, json or yaml)", ErrInvalidValue, cfg.Format)
	}

	return nil
}

// Format renders cfg as indented JSON (only the serialized fields).
func Format(cfg Config) (string, error) {
	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("format config: %w", err)
	}

	return string(out), nil
}
