// Package config loads tablediff settings from defaults, a tablediff.yaml
// file, TABLEDIFF_* environment variables and command line flags, in
// increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/roach88/tablediff/internal/locale"
	"github.com/roach88/tablediff/internal/report"
)

// Config file names, searched in the working directory in this order.
const (
	FileName    = "tablediff.yaml"
	FileNameAlt = "tablediff.yml"
)

// EnvPrefix is the prefix of environment overrides: TABLEDIFF_STYLE=box.
const EnvPrefix = "TABLEDIFF_"

// Default values.
const (
	DefaultFormat = "text"
	DefaultStyle  = string(report.StyleAligned)
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Config is the resolved configuration.
type Config struct {
	Format  string `koanf:"format"`
	Style   string `koanf:"style"`
	Locale  string `koanf:"locale"`
	Sheet   string `koanf:"sheet"`
	Verbose bool   `koanf:"verbose"`

	// File is the config file that was loaded, empty when none was found.
	File string `koanf:"-"`
}

// Load resolves the configuration. cfgFile names an explicit config file;
// when empty, tablediff.yaml or tablediff.yml in the working directory is
// used if present. Only flags the user actually set override lower layers.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"format":  DefaultFormat,
		"style":   DefaultStyle,
		"locale":  "",
		"sheet":   "",
		"verbose": false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: TABLEDIFF_STYLE -> style
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks format, style and locale.
func (c *Config) Validate() error {
	if !slices.Contains(ValidFormats, c.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", c.Format, ValidFormats)
	}
	if _, err := report.ParseStyle(c.Style); err != nil {
		return fmt.Errorf("invalid style: %w", err)
	}
	if _, err := locale.Parse(c.Locale); err != nil {
		return fmt.Errorf("invalid locale: %w", err)
	}
	return nil
}

// ReportStyle returns the parsed style. Call after Validate.
func (c *Config) ReportStyle() report.Style {
	st, _ := report.ParseStyle(c.Style)
	return st
}

// LocaleContext returns the parsed locale. Call after Validate.
func (c *Config) LocaleContext() locale.Context {
	ctx, _ := locale.Parse(c.Locale)
	return ctx
}

// findConfigFile returns explicit when set, otherwise the first default
// config file present in the working directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{FileName, FileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}
