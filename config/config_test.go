package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	cfg := ServiceConfig{Name: "prices", Version: "1.2.0"}
	cfg.ApplyDefaults()

	if cfg.Environment != "development" || !cfg.Debug {
		t.Errorf("expected development with debug, got %q debug=%v", cfg.Environment, cfg.Debug)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug logging in development, got %q", cfg.Logging.Level)
	}
	if cfg.Stream.BufferSize != 16 || cfg.Stream.TraceLevel != "debug" {
		t.Errorf("expected stream defaults, got %+v", cfg.Stream)
	}
	if cfg.Telemetry.ServiceName != "prices" || cfg.Telemetry.ServiceVersion != "1.2.0" {
		t.Errorf("expected telemetry to inherit service identity, got %+v", cfg.Telemetry)
	}
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServiceConfig)
		errMsg  string
		wantErr bool
	}{
		{"valid", func(*ServiceConfig) {}, "", false},
		{"missing name", func(c *ServiceConfig) { c.Name = "" }, "name: is required", true},
		{"bad environment", func(c *ServiceConfig) { c.Environment = "qa" }, "environment", true},
		{"bad logging", func(c *ServiceConfig) { c.Logging.Level = "loud" }, "config.logging", true},
		{"bad stream", func(c *ServiceConfig) { c.Stream.BufferSize = -1 }, "config.stream", true},
		{"bad telemetry", func(c *ServiceConfig) { c.Telemetry.SampleRate = 2 }, "config.telemetry", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := ServiceConfig{Name: "prices"}
			cfg.ApplyDefaults()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tc.errMsg) {
					t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadWithYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: prices
environment: staging
version: "1.0.0"
logging:
  level: warn
  format: json
stream:
  buffer_size: 64
  trace_level: info
telemetry:
  endpoint: collector:4318
  interval: 30s
  sample_rate: 0.25
`)

	var cfg ServiceConfig
	if err := Load("prices", &cfg, WithConfigFile(path), WithEnvFile(filepath.Join(dir, "missing.env"))); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Environment != "staging" || cfg.Debug {
		t.Errorf("expected staging without debug, got %q debug=%v", cfg.Environment, cfg.Debug)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
	if cfg.Stream.BufferSize != 64 || cfg.Stream.TraceLevel != "info" {
		t.Errorf("unexpected stream %+v", cfg.Stream)
	}
	if cfg.Telemetry.Endpoint != "collector:4318" || cfg.Telemetry.Interval != 30*time.Second || cfg.Telemetry.SampleRate != 0.25 {
		t.Errorf("unexpected telemetry %+v", cfg.Telemetry)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: prices\nstream:\n  buffer_size: 8\n")
	t.Setenv("STREAM_BUFFER_SIZE", "128")
	t.Setenv("LOGGING_LEVEL", "error")

	var cfg ServiceConfig
	if err := Load("prices", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Stream.BufferSize != 128 {
		t.Errorf("expected env to override buffer size, got %d", cfg.Stream.BufferSize)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("expected env logging level, got %q", cfg.Logging.Level)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "NAME=from-dotenv\nSTREAM_TRACE_LEVEL=warn\n")
	t.Setenv("NAME", "")
	os.Unsetenv("NAME")
	t.Setenv("STREAM_TRACE_LEVEL", "")
	os.Unsetenv("STREAM_TRACE_LEVEL")

	var cfg ServiceConfig
	if err := Load("prices", &cfg, WithConfigFile(filepath.Join(dir, "none.yml")), WithEnvFile(envPath)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Name != "from-dotenv" || cfg.Stream.TraceLevel != "warn" {
		t.Errorf("expected values from .env, got name=%q trace=%q", cfg.Name, cfg.Stream.TraceLevel)
	}
}

func TestLoadValidationError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: prices\nstream:\n  trace_level: loud\n")

	var cfg ServiceConfig
	err := Load("prices", &cfg, WithConfigFile(path))
	if err == nil || !strings.Contains(err.Error(), "trace_level") {
		t.Errorf("expected trace_level validation error, got %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg ServiceConfig
	err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./config/prices.yml": true,
		"./config/config.yml": true,
		"./.env.prices":       true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("prices", LoaderConfig{})
	if files.ConfigFile != "./config/prices.yml" {
		t.Errorf("expected ./config/prices.yml, got %q", files.ConfigFile)
	}
	if files.EnvFile != "./.env.prices" {
		t.Errorf("expected ./.env.prices, got %q", files.EnvFile)
	}

	explicit := resolver.ResolveFiles("prices", LoaderConfig{ConfigFile: "/etc/prices.yml"})
	if explicit.ConfigFile != "/etc/prices.yml" {
		t.Errorf("expected explicit path to win, got %q", explicit.ConfigFile)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("STREAM_BUFFER_SIZE")
	want := []string{"stream_buffer_size", "stream.buffer_size", "stream.buffer.size"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("variant %d: got %q, want %q", i, got[i], want[i])
		}
	}

	if single := envKeyVariants("NAME"); len(single) != 1 || single[0] != "name" {
		t.Errorf("expected [name], got %v", single)
	}
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	WithFileSystem(fs)(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	if lc.FileSystem != fs || lc.ConfigFile != "/path/to/config.yml" || lc.EnvFile != "/path/to/.env" {
		t.Errorf("unexpected loader config %+v", lc)
	}
}
