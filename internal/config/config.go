// Package config loads kotoba's settings from defaults, an optional YAML
// file, KOTOBA_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // timezone names must resolve on hosts without zoneinfo

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	envPrefix         = "KOTOBA_"
	defaultConfigFile = "kotoba.yaml"
)

// Config holds all application configuration.
type Config struct {
	DB        string `koanf:"db" validate:"required"`
	LogLevel  string `koanf:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat string `koanf:"log_format" validate:"required,oneof=text json"`
	Timezone  string `koanf:"timezone" validate:"required,timezone"`
	Deck      string `koanf:"deck" validate:"required,oneof=due all"`
}

var defaults = map[string]any{
	"db":         "kotoba.db",
	"log_level":  "info",
	"log_format": "text",
	"timezone":   "UTC",
	"deck":       "due",
}

// Location resolves Timezone. Load has already checked that it is valid.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// RegisterFlags adds the global flags. Their names use dashes; Load
// maps them onto the underscored keys.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "Path to a YAML config file (default "+defaultConfigFile+" if present)")
	flags.String("db", defaults["db"].(string), "Path to the SQLite database file")
	flags.String("log-level", defaults["log_level"].(string), "Log level: debug, info, warn or error")
	flags.String("log-format", defaults["log_format"].(string), "Log format: text or json")
	flags.String("timezone", defaults["timezone"].(string), "IANA timezone that decides what \"today\" is")
}

// Load builds the configuration. flags may be nil when no flags apply.
func Load(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}

	path, explicit := configPath(flags)
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if f.Name == "config" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// configPath returns the file to read and whether the user asked for it.
func configPath(flags *pflag.FlagSet) (string, bool) {
	if flags != nil {
		if p, err := flags.GetString("config"); err == nil && p != "" {
			return p, true
		}
	}
	if p := os.Getenv(envPrefix + "CONFIG"); p != "" {
		return p, true
	}
	return defaultConfigFile, false
}
