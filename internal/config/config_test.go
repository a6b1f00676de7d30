package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "monkey.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg.Output.Format != FormatSource || !cfg.Output.Color {
		t.Errorf("output defaults: got %+v", cfg.Output)
	}
	if cfg.REPL.Prompt != ">> " {
		t.Errorf("prompt default: got %q", cfg.REPL.Prompt)
	}
	if err := cfg.Validate("0.1.0"); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Errorf("log level default: got %v", cfg.SlogLevel())
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"

[output]
format = "yaml"
color = false

[repl]
prompt = "monkey> "
plain = true

[language]
requires = "~0.1"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Format != FormatYAML || cfg.Output.Color {
		t.Errorf("output: got %+v", cfg.Output)
	}
	if cfg.REPL.Prompt != "monkey> " || !cfg.REPL.Plain {
		t.Errorf("repl: got %+v", cfg.REPL)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("log level: got %v", cfg.SlogLevel())
	}
	if err := cfg.Validate("0.1.3"); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[repl]\nplain = true\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.REPL.Prompt != ">> " || cfg.Output.Format != FormatSource {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected an error for a missing file")
	}
	if _, err := Load(writeConfig(t, "log_level = ")); err == nil {
		t.Error("expected an error for malformed TOML")
	}

	_, err := Load(writeConfig(t, "[output]\nfromat = \"yaml\"\n"))
	if !errors.Is(err, ErrInvalidConfig) || !strings.Contains(err.Error(), "output.fromat") {
		t.Errorf("unknown key: got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		version string
		wantErr string
	}{
		{"bad format", func(c *Config) { c.Output.Format = "json" }, "0.1.0", "output.format"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "0.1.0", "log_level"},
		{"bad constraint", func(c *Config) { c.Language.Requires = "not a range" }, "0.1.0", "language.requires"},
		{"unsatisfied", func(c *Config) { c.Language.Requires = ">= 2.0.0" }, "0.1.0", "language.requires"},
		{"bad version", func(c *Config) {}, "dev", "front end version"},
		{"no constraint", func(c *Config) { c.Language.Requires = "" }, "dev", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate(tt.version)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
