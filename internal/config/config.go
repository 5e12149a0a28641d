// Package config loads settings from defaults, a TOML file, the environment
// and command-line flags, in that order of increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

const (
	FileName        = "tada.toml"
	DefaultDirName  = "tada"
	DefaultBackend  = "json"
	DefaultKey      = "projects"
	DefaultTheme    = "classic"
	DefaultLogLevel = "warn"
	DefaultLogFmt   = "text"
	DefaultAddr     = "127.0.0.1:8080"
)

// Config holds the full configuration.
type Config struct {
	DataDir    string `toml:"data_dir" validate:"required"`
	Backend    string `toml:"backend" validate:"oneof=json sqlite memory"`
	StorageKey string `toml:"storage_key" validate:"required,excludesall=/\\"`
	Theme      string `toml:"theme" validate:"oneof=classic neon mono"`
	LogLevel   string `toml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat  string `toml:"log_format" validate:"oneof=text json logfmt"`
	Timezone   string `toml:"timezone"`
	Seed       bool   `toml:"seed"`
	Addr       string `toml:"addr" validate:"required,hostname_port"`

	// AllowedOrigins lists browser origins allowed to read the HTTP view.
	AllowedOrigins []string `toml:"allowed_origins" validate:"dive,required"`

	// File is the config file that was read, if any.
	File string `toml:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DataDir:    defaultDataDir(),
		Backend:    DefaultBackend,
		StorageKey: DefaultKey,
		Theme:      DefaultTheme,
		LogLevel:   DefaultLogLevel,
		LogFormat:  DefaultLogFmt,
		Seed:       true,
		Addr:       DefaultAddr,
	}
}

// Load builds the configuration. An explicit path must exist; otherwise the
// first of ./tada.toml and the user config dir file is used when present.
func Load(path string) (*Config, error) {
	cfg := Default()

	file := path
	if file == "" {
		file = findConfigFile()
	}
	if file != "" {
		if _, err := toml.DecodeFile(file, cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", file, err)
		}
		cfg.File = file
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}
	cfg.DataDir = expandPath(cfg.DataDir)
	return cfg, nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone; empty means the local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Clock returns a time source in the configured location.
func (c *Config) Clock() (func() time.Time, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	return func() time.Time { return time.Now().In(loc) }, nil
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("TADA_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TADA_BACKEND"); v != "" {
		cfg.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("TADA_STORAGE_KEY"); v != "" {
		cfg.StorageKey = v
	}
	if v := os.Getenv("TADA_THEME"); v != "" {
		cfg.Theme = strings.ToLower(v)
	}
	if v := os.Getenv("TADA_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("TADA_LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v := os.Getenv("TADA_TZ"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("TADA_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("TADA_ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}
	if v := os.Getenv("TADA_SEED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TADA_SEED must be a boolean, got %q", v)
		}
		cfg.Seed = b
	}
	return nil
}

func findConfigFile() string {
	candidates := []string{FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, DefaultDirName, FileName))
	}
	for _, c := range candidates {
		if fi, err := os.Stat(c); err == nil && !fi.IsDir() {
			return c
		}
	}
	return ""
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, DefaultDirName)
	}
	return "."
}

// expandPath resolves a leading ~ and environment variables.
func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p
}

var validate = validator.New()

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := fieldName(e.Field())
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "hostname_port":
		return fmt.Sprintf("%s must be host:port", field)
	case "excludesall":
		return fmt.Sprintf("%s must not contain path separators", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// fieldName maps a struct field to its TOML key.
func fieldName(f string) string {
	var b strings.Builder
	for i, r := range f {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}
