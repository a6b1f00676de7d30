// Package config loads the settings of the monkey command line tool.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Output formats accepted by the parse command.
const (
	FormatSource = "source"
	FormatYAML   = "yaml"
)

// Config holds the complete tool configuration.
type Config struct {
	LogLevel string         `toml:"log_level"`
	Output   OutputConfig   `toml:"output"`
	REPL     REPLConfig     `toml:"repl"`
	Language LanguageConfig `toml:"language"`
}

// OutputConfig controls how parse results are printed.
type OutputConfig struct {
	Format string `toml:"format"`
	Color  bool   `toml:"color"`
}

// REPLConfig holds interactive shell settings.
type REPLConfig struct {
	Prompt string `toml:"prompt"`
	Plain  bool   `toml:"plain"` // line-based loop instead of the terminal UI
}

// LanguageConfig pins the front end version a project expects.
type LanguageConfig struct {
	Requires string `toml:"requires"` // semver constraint, e.g. ">= 0.1.0"
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Output: OutputConfig{
			Format: FormatSource,
			Color:  true,
		},
		REPL: REPLConfig{
			Prompt: ">> ",
		},
		Language: LanguageConfig{
			Requires: ">= 0.1.0",
		},
	}
}

// Load reads a TOML file on top of the defaults. An empty path returns the
// defaults; a path that does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalidConfig, path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Validate checks field values and that version satisfies the
// language.requires constraint.
func (c *Config) Validate(version string) error {
	switch c.Output.Format {
	case FormatSource, FormatYAML:
	default:
		return fmt.Errorf("%w: output.format must be %q or %q, got %q",
			ErrInvalidConfig, FormatSource, FormatYAML, c.Output.Format)
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}

	if c.Language.Requires == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(c.Language.Requires)
	if err != nil {
		return fmt.Errorf("%w: language.requires %q: %v", ErrInvalidConfig, c.Language.Requires, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: front end version %q: %v", ErrInvalidConfig, version, err)
	}
	if ok, errs := constraint.Validate(v); !ok {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return fmt.Errorf("%w: language.requires: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
	}
	return nil
}

// SlogLevel returns the configured log level. Call Validate first; an
// unknown level falls back to info.
func (c *Config) SlogLevel() slog.Level {
	lvl, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q: must be debug, info, warn or error", ErrInvalidConfig, s)
	}
	return lvl, nil
}
