package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/vcore/internal/errors"
	"github.com/vango-dev/vcore/pkg/reactive"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, DefaultLogFormat)
	}
	if cfg.Runtime.Reentrancy != DefaultReentrancy {
		t.Errorf("Runtime.Reentrancy = %q", cfg.Runtime.Reentrancy)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if cfg.Tracing.Exporter != DefaultExporter {
		t.Errorf("Tracing.Exporter = %q", cfg.Tracing.Exporter)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Path() != "" {
		t.Errorf("Path() = %q, want empty", cfg.Path())
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "vcore.yaml", `
log:
  level: DEBUG
  format: json
runtime:
  reentrancy: skip
metrics:
  namespace: app
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Runtime.Reentrancy != "skip" {
		t.Errorf("Runtime.Reentrancy = %q", cfg.Runtime.Reentrancy)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should keep its default when omitted")
	}
	if cfg.Metrics.Namespace != "app" {
		t.Errorf("Metrics.Namespace = %q", cfg.Metrics.Namespace)
	}
	if cfg.Tracing.ServiceName != DefaultServiceName {
		t.Errorf("Tracing.ServiceName = %q", cfg.Tracing.ServiceName)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vcore.json", `{
  "metrics": {"enabled": false},
  "tracing": {"exporter": "stdout", "serviceName": "bench"}
}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = true, want false")
	}
	if cfg.Tracing.Exporter != "stdout" || cfg.Tracing.ServiceName != "bench" {
		t.Errorf("Tracing = %+v", cfg.Tracing)
	}
}

func TestLoadPrefersYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vcore.json", `{"log": {"level": "error"}}`)
	writeFile(t, dir, "vcore.yaml", "log:\n  level: warn\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn from vcore.yaml", cfg.Log.Level)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		content  string
		wantCode string
	}{
		{"syntax", "log: [unclosed", "E100"},
		{"unknown field", "logging:\n  level: info\n", "E100"},
		{"bad level", "log:\n  level: verbose\n", "E101"},
		{"bad format", "log:\n  format: xml\n", "E102"},
		{"bad reentrancy", "runtime:\n  reentrancy: retry\n", "E103"},
		{"bad namespace", "metrics:\n  namespace: 9lives\n", "E104"},
		{"bad exporter", "tracing:\n  exporter: zipkin\n", "E105"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "vcore.yaml", tt.content)
			_, err := LoadFile(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.HasCode(err, tt.wantCode) {
				t.Errorf("error %v, want code %s", err, tt.wantCode)
			}
			if !strings.HasPrefix(err.Error(), path) {
				t.Errorf("error should start with the file path: %v", err)
			}
		})
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); !errors.HasCode(err, "E106") {
		t.Errorf("missing file error = %v, want E106", err)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "vcore.yml", "log:\n  level: info\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot: %v", err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindProjectRoot = %q, want %q", got, want)
	}

	if _, err := FindProjectRoot(t.TempDir()); !errors.HasCode(err, "E106") {
		t.Errorf("expected E106, got %v", err)
	}
}

func TestLogger(t *testing.T) {
	cfg := New()
	cfg.Log.Format = "json"
	cfg.Log.Level = "warn"

	var buf bytes.Buffer
	logger := cfg.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", 1)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if rec["msg"] != "shown" || rec["level"] != "WARN" {
		t.Errorf("record = %v", rec)
	}

	if cfg.Level() != slog.LevelWarn {
		t.Errorf("Level() = %v", cfg.Level())
	}
}

func TestRuntimeOptions(t *testing.T) {
	cfg := New()
	cfg.Runtime.Reentrancy = "skip"

	rt := reactive.NewRuntime(cfg.RuntimeOptions(nil)...)
	s := reactive.NewSignal(rt, 0)
	runs := 0
	rt.CreateEffect(func() {
		runs++
		s.Set(s.Get() + 1)
	})

	if runs != 1 {
		t.Errorf("runs = %d, want 1 with skip policy", runs)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := New()
	cfg.Metrics.Namespace = "roundtrip"

	var buf bytes.Buffer
	if err := cfg.WriteYAML(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "namespace: roundtrip") {
		t.Errorf("output:\n%s", buf.String())
	}

	parsed, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.Metrics.Namespace != "roundtrip" {
		t.Errorf("Namespace = %q", parsed.Metrics.Namespace)
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil): %v", err)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}
