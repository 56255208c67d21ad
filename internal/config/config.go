// Package config loads todo settings.
//
// Precedence (highest to lowest):
//  1. Command-line flags (applied by the caller after Load)
//  2. Environment variables prefixed TODO_ (TODO_LOG_LEVEL -> log.level)
//  3. YAML config file
//  4. Defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

const (
	envPrefix         = "TODO_"
	maxConfigFileSize = 1 << 20
)

// Config is the full application configuration.
type Config struct {
	Theme string     `koanf:"theme"`
	Log   LogConfig  `koanf:"log"`
	UI    UIConfig   `koanf:"ui"`
	Todo  TodoConfig `koanf:"todo"`
}

type LogConfig struct {
	Level string `koanf:"level"`
	// File receives logs while the TUI owns the terminal. Empty discards them.
	File string `koanf:"file"`
}

type UIConfig struct {
	// File is a UI description to compile instead of the built-in one.
	File string `koanf:"file"`
}

type TodoConfig struct {
	RejectEmpty bool `koanf:"reject_empty"`
}

var themes = []string{"classic", "neon", "mono"}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Theme: "classic",
		Log:   LogConfig{Level: "info"},
	}
}

// Load reads path (if non-empty) and the environment on top of Default.
// A missing file at an explicit path is an error.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		b, err := readConfigFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := k.Load(rawbytes.Provider(b), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envKey maps TODO_LOG_LEVEL to log.level and TODO_TODO_REJECT_EMPTY to
// todo.reject_empty: the first underscore separates section and field.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	section, field, ok := strings.Cut(s, "_")
	if !ok {
		return s
	}
	return section + "." + field
}

func readConfigFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config %s is a directory", path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config %s exceeds %d bytes", path, maxConfigFileSize)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return b, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	var errs []error
	if !validTheme(c.Theme) {
		errs = append(errs, fmt.Errorf("theme %q: want one of %s", c.Theme, strings.Join(themes, ", ")))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level %q: %w", c.Log.Level, err))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func validTheme(name string) bool {
	for _, t := range themes {
		if strings.EqualFold(name, t) {
			return true
		}
	}
	return false
}
