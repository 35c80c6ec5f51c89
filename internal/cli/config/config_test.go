package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/luceql/luceql/internal/luceneql"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.Parser.DefaultField != "text" {
		t.Errorf("Default() Parser.DefaultField = %q, want %q", cfg.Parser.DefaultField, "text")
	}

	if len(cfg.Parser.IntFields) != 2 || cfg.Parser.IntFields[0] != "count" {
		t.Errorf("Default() Parser.IntFields = %v", cfg.Parser.IntFields)
	}

	if len(cfg.Parser.YesNoFields) != 2 || cfg.Parser.YesNoFields[0] != "is_active" {
		t.Errorf("Default() Parser.YesNoFields = %v", cfg.Parser.YesNoFields)
	}

	if cfg.Server.Address != ":8080" {
		t.Errorf("Default() Server.Address = %q, want %q", cfg.Server.Address, ":8080")
	}

	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("Default() Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 10*time.Second)
	}

	if cfg.Output.Color != "auto" {
		t.Errorf("Default() Output.Color = %q, want %q", cfg.Output.Color, "auto")
	}
}

func TestEnvToKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"PARSER_DEFAULT_FIELD", "parser.default_field"},
		{"PARSER_INT_FIELDS", "parser.int_fields"},
		{"SERVER_ADDRESS", "server.address"},
		{"OUTPUT_COLOR", "output.color"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envToKey(tt.input); got != tt.expected {
				t.Errorf("envToKey(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[parser]
default_field = "body"
int_fields = ["age"]

[[parser.schema]]
name = "stars"
type = "int"

[server]
address = ":9090"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(LoadOptions{ConfigPath: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Parser.DefaultField != "body" {
		t.Errorf("Parser.DefaultField = %q, want %q", cfg.Parser.DefaultField, "body")
	}
	if len(cfg.Parser.IntFields) != 1 || cfg.Parser.IntFields[0] != "age" {
		t.Errorf("Parser.IntFields = %v, want [age]", cfg.Parser.IntFields)
	}
	if len(cfg.Parser.Schema) != 1 || cfg.Parser.Schema[0].Name != "stars" {
		t.Errorf("Parser.Schema = %v", cfg.Parser.Schema)
	}
	if cfg.Server.Address != ":9090" {
		t.Errorf("Server.Address = %q, want %q", cfg.Server.Address, ":9090")
	}
	// Untouched sections keep defaults
	if cfg.Output.Color != "auto" {
		t.Errorf("Output.Color = %q, want %q", cfg.Output.Color, "auto")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LUCEQL_PARSER_DEFAULT_FIELD", "title")
	t.Setenv("LUCEQL_SERVER_ADDRESS", ":7070")

	cfg, err := Load(LoadOptions{ConfigPath: filepath.Join(t.TempDir(), "missing.toml")})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Parser.DefaultField != "title" {
		t.Errorf("Parser.DefaultField = %q, want %q", cfg.Parser.DefaultField, "title")
	}
	if cfg.Server.Address != ":7070" {
		t.Errorf("Server.Address = %q, want %q", cfg.Server.Address, ":7070")
	}
}

func TestParserOptions(t *testing.T) {
	cfg := Default()
	if got := len(cfg.ParserOptions()); got != 3 {
		t.Errorf("ParserOptions() returned %d options, want 3", got)
	}

	cfg.Parser.Schema = append(cfg.Parser.Schema, luceneql.FieldInfo{Name: "stars", Type: "int"})
	if got := len(cfg.ParserOptions()); got != 4 {
		t.Errorf("ParserOptions() with schema returned %d options, want 4", got)
	}
}
