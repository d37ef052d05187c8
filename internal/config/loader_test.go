package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestExpandEnvVars(t *testing.T) {
	os.Setenv("TEST_VAR", "hello")
	defer os.Unsetenv("TEST_VAR")

	tests := []struct {
		input    string
		expected string
	}{
		{"${TEST_VAR}", "hello"},
		{"${TEST_VAR:default}", "hello"},
		{"${UNSET_VAR:fallback}", "fallback"},
		{"${UNSET_VAR}", ""},
		{"no vars here", "no vars here"},
		{"prefix-${TEST_VAR}-suffix", "prefix-hello-suffix"},
	}

	for _, tt := range tests {
		got := expandEnvVars(tt.input)
		if got != tt.expected {
			t.Errorf("expandEnvVars(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestLoadFile(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "test-config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpFile.Name())

	content := `
server:
  host: "0.0.0.0"
  port: 9999
catalog:
  backend: postgres
`
	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatal(err)
	}
	tmpFile.Close()

	cfg := DefaultConfig()
	if err := LoadFile(tmpFile.Name(), cfg); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("expected port 9999, got %d", cfg.Server.Port)
	}
	if cfg.Catalog.Backend != BackendPostgres {
		t.Errorf("expected backend postgres, got %s", cfg.Catalog.Backend)
	}
	// Untouched sections keep their defaults.
	if len(cfg.Catalog.Sources) != 4 {
		t.Errorf("expected 4 default sources, got %d", len(cfg.Catalog.Sources))
	}
}

func TestLoadFile_WithEnvVars(t *testing.T) {
	os.Setenv("TEST_PORT", "7777")
	defer os.Unsetenv("TEST_PORT")

	tmpFile, err := os.CreateTemp("", "test-config-env-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpFile.Name())

	content := `
server:
  host: "${TEST_HOST:127.0.0.1}"
  port: ${TEST_PORT}
`
	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatal(err)
	}
	tmpFile.Close()

	var cfg Config
	if err := LoadFile(tmpFile.Name(), &cfg); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("expected host 127.0.0.1 (default), got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("expected port 7777, got %d", cfg.Server.Port)
	}
}

const testModels = `
models:
  - name: Claude 3.7 Sonnet
    id: anthropic.claude-3-7-sonnet-20250219-v1:0
  - name: Nova Pro
    id: amazon.nova-pro-v1:0
  - name: Command R
    id: cohere.command-r-v1:0
`

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, modelsFile, testModels)
	writeFile(t, dir, lookupsFile, `
vendors:
  Amazon: {formation_year: 1994, company: Amazon.com Inc., maturity: mature}
pricing:
  Nova Pro: {input: 0.0008, output: 0.0032}
`)

	l := NewLoader(dir, discardLogger())
	if err := l.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	models := l.Models().Models
	if len(models) != 3 {
		t.Fatalf("expected 3 models, got %d", len(models))
	}
	// Insertion order is preserved.
	if models[0].Name != "Claude 3.7 Sonnet" || models[2].ID != "cohere.command-r-v1:0" {
		t.Errorf("unexpected model order: %+v", models)
	}
	if l.Config().Server.Port != 8080 {
		t.Errorf("expected default port without catalog.yaml, got %d", l.Config().Server.Port)
	}
	if l.Lookups().Vendors["Amazon"].FormationYear != 1994 {
		t.Errorf("expected Amazon formation year 1994, got %+v", l.Lookups().Vendors["Amazon"])
	}
	if l.Lookups().Pricing["Nova Pro"].Output != 0.0032 {
		t.Errorf("unexpected pricing: %+v", l.Lookups().Pricing)
	}
}

func TestLoadCatalogConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, found, err := LoadCatalogConfig(dir)
	if err != nil || found {
		t.Fatalf("missing file: found=%v err=%v", found, err)
	}
	if cfg.Catalog.Backend != BackendFile {
		t.Errorf("expected default backend file, got %q", cfg.Catalog.Backend)
	}

	writeFile(t, dir, catalogFile, "database:\n  name: models\n  user: reader\n")
	cfg, found, err = LoadCatalogConfig(dir)
	if err != nil || !found {
		t.Fatalf("present file: found=%v err=%v", found, err)
	}
	want := "postgres://reader:@localhost:5432/models?sslmode=disable"
	if got := cfg.Database.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}

	writeFile(t, dir, catalogFile, "server: [\n")
	if _, _, err := LoadCatalogConfig(dir); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoader_MissingMappingIsFatal(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(dir, discardLogger())
	err := l.Load()
	if err == nil {
		t.Fatal("expected error without models.yaml")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestLoader_EmptyMappingIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, modelsFile, "models: []\n")
	l := NewLoader(dir, discardLogger())
	if err := l.Load(); !errors.Is(err, ErrEmptyMapping) {
		t.Errorf("expected ErrEmptyMapping, got %v", err)
	}
}

func TestModelsConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		models  []CanonicalModel
		wantErr string
	}{
		{"valid", []CanonicalModel{{Name: "Nova Pro", ID: "amazon.nova-pro-v1:0"}, {Name: "Nova Lite", ID: "amazon.nova-lite-v1:0"}}, ""},
		{"blank ids allowed", []CanonicalModel{{Name: "A"}, {Name: "B"}}, ""},
		{"blank name", []CanonicalModel{{Name: "Nova Pro"}, {Name: "  ", ID: "x"}}, "models[1]: name is required"},
		{"duplicate name", []CanonicalModel{{Name: "Nova Pro", ID: "a"}, {Name: " Nova Pro ", ID: "b"}}, `name "Nova Pro" already listed at models[0]`},
		{"duplicate id", []CanonicalModel{{Name: "A", ID: "x"}, {Name: "B", ID: "y"}, {Name: "C", ID: "x"}}, `models[2]: id "x" already listed at models[0]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&ModelsConfig{Models: tt.models}).validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoader_DuplicateModelIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, modelsFile, testModels+"  - name: Nova Pro\n    id: amazon.nova-pro-v1:0\n")
	if err := NewLoader(dir, discardLogger()).Load(); err == nil {
		t.Error("expected error for a repeated canonical name")
	}
}

func TestLoader_WatchDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, modelsFile, testModels)

	l := NewLoader(dir, discardLogger())
	l.debounce = 100 * time.Millisecond
	if err := l.Load(); err != nil {
		t.Fatal(err)
	}

	var reloads atomic.Int32
	l.OnReload(func() { reloads.Add(1) })
	if err := l.Watch(); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	for port := 9001; port <= 9005; port++ {
		writeFile(t, dir, catalogFile, fmt.Sprintf("server:\n  port: %d\n", port))
	}

	deadline := time.Now().Add(5 * time.Second)
	for reloads.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(4 * l.debounce)

	if n := reloads.Load(); n != 1 {
		t.Errorf("expected one reload for the burst, got %d", n)
	}
	if l.Config().Server.Port != 9005 {
		t.Errorf("expected last written port 9005, got %d", l.Config().Server.Port)
	}
}

func TestLoader_WatchReloads(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, modelsFile, testModels)

	l := NewLoader(dir, discardLogger())
	if err := l.Load(); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan struct{}, 4)
	l.OnReload(func() { reloaded <- struct{}{} })
	if err := l.Watch(); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	writeFile(t, dir, catalogFile, "server:\n  port: 9191\n")

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	// Several events may fire for one write; wait until the port settles.
	deadline := time.Now().Add(5 * time.Second)
	for l.Config().Server.Port != 9191 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if l.Config().Server.Port != 9191 {
		t.Errorf("expected reloaded port 9191, got %d", l.Config().Server.Port)
	}
}
