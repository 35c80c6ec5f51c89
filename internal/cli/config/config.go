// Package config provides configuration management for the luceql CLI
// and server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/luceql/luceql/internal/luceneql"
)

// Config represents the luceql configuration.
type Config struct {
	Parser ParserConfig `koanf:"parser"`
	Server ServerConfig `koanf:"server"`
	Output OutputConfig `koanf:"output"`
}

// ParserConfig holds the grammar configuration: the default field and
// the coercion field sets.
type ParserConfig struct {
	DefaultField string               `koanf:"default_field"`
	IntFields    []string             `koanf:"int_fields"`
	YesNoFields  []string             `koanf:"yesno_fields"`
	Schema       []luceneql.FieldInfo `koanf:"schema"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Address     string        `koanf:"address"`
	ReadTimeout time.Duration `koanf:"read_timeout"`
}

// OutputConfig holds CLI output settings.
type OutputConfig struct {
	Color string `koanf:"color"` // auto, always, never
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	ConfigPath string
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Parser: ParserConfig{
			DefaultField: "text",
			IntFields:    []string{"count", "number"},
			YesNoFields:  []string{"is_active", "is_ready"},
		},
		Server: ServerConfig{
			Address:     ":8080",
			ReadTimeout: 10 * time.Second,
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}

// Load loads configuration from file and environment.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// Start with defaults
	cfg := Default()

	// Determine config file path
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = filepath.Join(configDir(), "config.toml")
	}

	// Load from file if it exists
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// Load from environment variables (LUCEQL_*)
	if err := k.Load(env.Provider("LUCEQL_", ".", func(s string) string {
		// LUCEQL_PARSER_DEFAULT_FIELD -> parser.default_field
		return envToKey(s[7:]) // Strip LUCEQL_ prefix
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// Unmarshal into config struct
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// ParserOptions converts the parser section into luceneql options.
func (c *Config) ParserOptions() []luceneql.Option {
	opts := []luceneql.Option{
		luceneql.WithDefaultField(c.Parser.DefaultField),
		luceneql.WithIntFields(c.Parser.IntFields...),
		luceneql.WithYesNoFields(c.Parser.YesNoFields...),
	}
	if len(c.Parser.Schema) > 0 {
		opts = append(opts, luceneql.WithSchema(&luceneql.Schema{Fields: c.Parser.Schema}))
	}
	return opts
}

// envToKey converts an env var suffix to a koanf key. The first segment
// selects the section; the rest is the key within it.
func envToKey(s string) string {
	s = strings.ToLower(s)
	parts := strings.SplitN(s, "_", 2)
	if len(parts) == 1 {
		return parts[0]
	}
	return parts[0] + "." + parts[1]
}

// configDir returns the directory holding the config file.
func configDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "luceql")
	}
	return "."
}
