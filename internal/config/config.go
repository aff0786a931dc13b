// Package config loads CLI defaults for datagen.
//
// Precedence: built-in defaults → YAML file → DATAGEN_* environment variables.
// Explicit command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-datagen/pkg/format"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "DATAGEN"
	// EnvConfigPath names the variable holding a config file path.
	EnvConfigPath = EnvPrefix + "_CONFIG"
)

// Config holds the settings the generate command starts from.
type Config struct {
	Format       string    `yaml:"format" env:"FORMAT"`
	Count        int       `yaml:"count" env:"COUNT"`
	Locale       string    `yaml:"locale" env:"LOCALE"`
	Indent       int       `yaml:"indent" env:"INDENT"`
	Delimiter    string    `yaml:"delimiter" env:"DELIMITER"`
	Table        string    `yaml:"table" env:"TABLE"`
	Dialect      string    `yaml:"dialect" env:"DIALECT"`
	TemplatesDir string    `yaml:"templates_dir" env:"TEMPLATES_DIR"`
	Log          LogConfig `yaml:"log" env:"LOG"`
}

// LogConfig configures the stderr logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" env:"LEVEL"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Format:    format.FormatJSON,
		Count:     1,
		Locale:    "en_US",
		Indent:    format.DefaultJSONIndent,
		Delimiter: string(format.DefaultDelimiter),
		Table:     format.DefaultTable,
		Dialect:   format.DialectStandard,
		Log:       LogConfig{Level: "warn"},
	}
}

// Loader reads configuration using the builder pattern.
type Loader struct {
	configPath string
	envPrefix  string
	lookupEnv  func(string) (string, bool)
}

// NewLoader creates a loader reading the process environment.
func NewLoader() *Loader {
	return &Loader{
		envPrefix: EnvPrefix,
		lookupEnv: os.LookupEnv,
	}
}

// WithConfigPath sets the YAML file to read. When empty, DATAGEN_CONFIG is
// consulted.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvPrefix changes the environment variable prefix.
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// WithLookupEnv replaces the environment lookup, mainly for tests.
func (l *Loader) WithLookupEnv(lookup func(string) (string, bool)) *Loader {
	if lookup != nil {
		l.lookupEnv = lookup
	}
	return l
}

// Load applies defaults, the config file, then environment overrides, and
// validates the result.
func (l *Loader) Load() (*Config, error) {
	cfg := Default()

	path := l.configPath
	if path == "" {
		path, _ = l.lookupEnv(l.envPrefix + "_CONFIG")
	}
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := l.setFieldsFromEnv(reflect.ValueOf(cfg).Elem(), l.envPrefix); err != nil {
		return nil, fmt.Errorf("config: env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (l *Loader) setFieldsFromEnv(v reflect.Value, prefix string) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		tag := t.Field(i).Tag.Get("env")
		if tag == "" || tag == "-" {
			continue
		}
		key := prefix + "_" + tag

		if field.Kind() == reflect.Struct {
			if err := l.setFieldsFromEnv(field, key); err != nil {
				return err
			}
			continue
		}

		value, ok := l.lookupEnv(key)
		if !ok || value == "" {
			continue
		}
		if err := setFieldValue(field, value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func setFieldValue(field reflect.Value, value string) error {
	if !field.CanSet() {
		return nil
	}
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind())
	}
	return nil
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate rejects settings no command could use.
func (c *Config) Validate() error {
	var errs []error
	if c.Count < 0 {
		errs = append(errs, fmt.Errorf("count %d is negative", c.Count))
	}
	if c.Indent < 0 {
		errs = append(errs, fmt.Errorf("indent %d is negative", c.Indent))
	}
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		errs = append(errs, fmt.Errorf("delimiter %q must be a single character", c.Delimiter))
	}
	if !logLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Errorf("log level %q (want debug, info, warn or error)", c.Log.Level))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// DelimiterRune returns the CSV delimiter.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}
