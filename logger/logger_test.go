package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func newBufferLogger(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return NewWithWriter(&Config{Level: level, Format: "json"}, &buf, "test-svc"), &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid json line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	l, buf := newBufferLogger(t, "invalid-level")
	l.Debug("hidden")
	l.Info("shown")

	lines := decodeLines(t, buf)
	if len(lines) != 1 || lines[0]["message"] != "shown" {
		t.Errorf("expected invalid level to fall back to info, got %v", lines)
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	l, buf := newBufferLogger(t, "debug")
	l.Info("hello", Fields("count", 3))

	lines := decodeLines(t, buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0]["service"] != "test-svc" {
		t.Errorf("expected service field, got %v", lines[0]["service"])
	}
	if lines[0]["count"] != float64(3) {
		t.Errorf("expected count=3, got %v", lines[0]["count"])
	}
}

func TestNewFromEnv(t *testing.T) {
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")
	defer os.Unsetenv("LOG_LEVEL")
	defer os.Unsetenv("LOG_FORMAT")

	l := NewFromEnv("env-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if !l.Enabled("debug") {
		t.Error("expected debug to be enabled from LOG_LEVEL")
	}
}

func TestWithComponent(t *testing.T) {
	l, buf := newBufferLogger(t, "info")
	l.WithComponent("stream").Info("x")

	lines := decodeLines(t, buf)
	if lines[0][FieldComponent] != "stream" {
		t.Errorf("expected component=stream, got %v", lines[0][FieldComponent])
	}
}

func TestWithFields(t *testing.T) {
	l, buf := newBufferLogger(t, "info")
	l.WithFields(SubscriptionFields("prices", "abc")).Info("x")

	lines := decodeLines(t, buf)
	if lines[0][FieldStream] != "prices" || lines[0][FieldSubscriptionID] != "abc" {
		t.Errorf("expected subscription fields, got %v", lines[0])
	}
}

func TestWithError(t *testing.T) {
	l, buf := newBufferLogger(t, "info")
	l.WithError(errors.New("boom")).Error("failed")

	lines := decodeLines(t, buf)
	if lines[0]["error"] != "boom" {
		t.Errorf("expected error=boom, got %v", lines[0]["error"])
	}
}

func TestLog_Levels(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		logged bool
		want   string
	}{
		{"debug below info", "debug", false, ""},
		{"info", "info", true, "info"},
		{"warn", "warn", true, "warn"},
		{"unknown falls back to debug", "verbose", false, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, buf := newBufferLogger(t, "info")
			l.Log(tc.level, "msg")
			lines := decodeLines(t, buf)
			if !tc.logged {
				if len(lines) != 0 {
					t.Errorf("expected nothing logged, got %v", lines)
				}
				return
			}
			if len(lines) != 1 || lines[0]["level"] != tc.want {
				t.Errorf("expected level %s, got %v", tc.want, lines)
			}
		})
	}
}

func TestEnabled(t *testing.T) {
	l, _ := newBufferLogger(t, "warn")
	if l.Enabled("info") {
		t.Error("info should be disabled at warn")
	}
	if !l.Enabled("error") {
		t.Error("error should be enabled at warn")
	}
	if l.Enabled("nonsense") {
		t.Error("unknown level should not be enabled")
	}
	if Nop().Enabled("error") {
		t.Error("nop logger should never be enabled")
	}
}

func TestInit(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	cfg := Config{Format: "json"}
	Init(&cfg)
	if cfg.Level != "info" {
		t.Errorf("expected Init to apply defaults, got level %q", cfg.Level)
	}
	if GetGlobalLogger() == prev {
		t.Error("expected Init to replace the global logger")
	}
}

func TestSetGlobalLogger(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	l := NewDefault("custom")
	SetGlobalLogger(l)
	if GetGlobalLogger() != l {
		t.Error("expected custom global logger")
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	l, buf := newBufferLogger(t, "debug")
	SetGlobalLogger(l)
	Debug("d")
	Info("i")
	Warn("w")
	Error("e")
	WithComponent("c").Info("tagged")

	if got := len(decodeLines(t, buf)); got != 5 {
		t.Errorf("expected 5 lines, got %d", got)
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("expected output 'stdout', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"pretty", Config{Level: "trace", Format: "pretty"}, false},
		{"bad level", Config{Level: "invalid", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "debug", Format: "console", NoColor: true}, &buf, "svc")
	l.Debug("hello console")
	out := buf.String()
	if !strings.Contains(out, "[DBG]") || !strings.Contains(out, "hello console") {
		t.Errorf("unexpected console output %q", out)
	}
}

func TestRegisterAndGet(t *testing.T) {
	l := Nop()
	Register("test-registry", l)
	defer Unregister("test-registry")

	if Get("test-registry") != l {
		t.Error("expected registered logger")
	}
}

func TestGetUnregistered(t *testing.T) {
	if Get("nonexistent-logger") == nil {
		t.Fatal("expected fallback logger")
	}
}

func TestFields(t *testing.T) {
	m := Fields("key1", "val1", "key2", 42, 99, "dropped", "odd")
	if m["key1"] != "val1" || m["key2"] != 42 {
		t.Errorf("unexpected fields %v", m)
	}
	if len(m) != 2 {
		t.Errorf("expected non-string keys and trailing keys to be dropped, got %v", m)
	}
}

func TestErrorFields(t *testing.T) {
	m := ErrorFields("collect", errors.New("fail"))
	if m[FieldOperation] != "collect" || m[FieldError] != "fail" {
		t.Errorf("unexpected fields %v", m)
	}
}

func TestDurationFields(t *testing.T) {
	m := DurationFields("drain", 150*time.Millisecond)
	if m[FieldDuration] != int64(150) {
		t.Errorf("expected duration 150, got %v", m[FieldDuration])
	}
}

func TestMergeWithError(t *testing.T) {
	m := MergeWithError(nil, errors.New("oops"))
	if m[FieldError] != "oops" {
		t.Errorf("expected error 'oops', got %v", m[FieldError])
	}
	m = MergeWithError(map[string]interface{}{"k": 1}, errors.New("x"))
	if m["k"] != 1 || m[FieldError] != "x" {
		t.Errorf("expected merge, got %v", m)
	}
}
