package config

import (
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/vango-dev/arbor/internal/errors"
	"github.com/vango-dev/arbor/pkg/arbor"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func errorCode(err error) string {
	var ae *errors.ArborError
	if stderrors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Mode != DefaultMode {
		t.Errorf("Mode = %q, want %q", cfg.Mode, DefaultMode)
	}
	if cfg.Inspector.Addr != DefaultInspectorAddr {
		t.Errorf("Inspector.Addr = %q, want %q", cfg.Inspector.Addr, DefaultInspectorAddr)
	}
	if cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics.Namespace = %q, want %q", cfg.Metrics.Namespace, DefaultNamespace)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadMissingUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if diff := cmp.Diff(New(), cfg, cmpopts.IgnoreUnexported(Config{})); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Path() != "" {
		t.Errorf("Path() = %q, want empty", cfg.Path())
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, YAMLFileName, `
mode: poll
debug: true
log:
  level: debug
inspector:
  addr: ":9000"
metrics:
  enabled: true
  subsystem: ui
tracing:
  tracerName: demo
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	want := New()
	want.Mode = "poll"
	want.Debug = true
	want.Log.Level = "debug"
	want.Inspector.Addr = ":9000"
	want.Metrics.Enabled = true
	want.Metrics.Subsystem = "ui"
	want.Tracing.TracerName = "demo"
	if diff := cmp.Diff(want, cfg, cmpopts.IgnoreUnexported(Config{})); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), dir)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, JSONFileName, `{"mode": "poll", "log": {"format": "json"}}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Mode != "poll" || cfg.Log.Format != "json" || cfg.Log.Level != DefaultLogLevel {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadPrefersYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, YAMLFileName, "mode: poll\n")
	writeFile(t, dir, JSONFileName, `{"mode": "instant"}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Mode != "poll" {
		t.Errorf("Mode = %q, want poll from %s", cfg.Mode, YAMLFileName)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
		code string
	}{
		{"missing", filepath.Join(dir, "nope.yaml"), "C003"},
		{"bad yaml", writeFile(t, dir, "bad.yaml", "mode: [unterminated\n"), "C002"},
		{"bad json", writeFile(t, dir, "bad.json", "{"), "C002"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(tt.path)
			if got := errorCode(err); got != tt.code {
				t.Errorf("LoadFile error code = %q (%v), want %s", got, err, tt.code)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"poll upper", func(c *Config) { c.Mode = "POLL" }, true},
		{"bad mode", func(c *Config) { c.Mode = "eager" }, false},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, false},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.valid && errorCode(err) != "C001" {
				t.Errorf("Validate() = %v, want C001", err)
			}
		})
	}
}

func TestModelOptions(t *testing.T) {
	cfg := New()
	cfg.Mode = "poll"
	cfg.Debug = true
	cfg.Tracing.Enabled = true

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts, err := cfg.ModelOptions(logger)
	if err != nil {
		t.Fatalf("ModelOptions error: %v", err)
	}
	m := arbor.New(opts...)
	if m.Mode() != arbor.Poll || !m.Debug() || m.Logger() != logger {
		t.Errorf("model mode=%s debug=%v", m.Mode(), m.Debug())
	}

	cfg.Mode = "bogus"
	if _, err := cfg.ModelOptions(logger); err == nil {
		t.Error("ModelOptions should reject an invalid mode")
	}
}

func TestNewLogger(t *testing.T) {
	var b strings.Builder
	cfg := New()
	cfg.Log.Format = "json"
	cfg.Log.Level = "warn"

	logger := cfg.NewLogger(&b)
	logger.Info("hidden")
	logger.Warn("shown")

	out := b.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("log output = %q", out)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{YAMLFileName, JSONFileName} {
		t.Run(name, func(t *testing.T) {
			cfg := New()
			cfg.Mode = "poll"
			cfg.Metrics.Enabled = true
			if err := cfg.SaveTo(filepath.Join(dir, name)); err != nil {
				t.Fatalf("SaveTo error: %v", err)
			}

			loaded, err := LoadFile(filepath.Join(dir, name))
			if err != nil {
				t.Fatalf("LoadFile error: %v", err)
			}
			if diff := cmp.Diff(cfg, loaded, cmpopts.IgnoreUnexported(Config{})); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
			if err := loaded.Save(); err != nil {
				t.Errorf("Save error: %v", err)
			}
		})
	}

	if err := New().Save(); err == nil {
		t.Error("Save without a path should fail")
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, YAMLFileName, "mode: instant\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot error: %v", err)
	}
	if got != root {
		t.Errorf("FindProjectRoot = %q, want %q", got, root)
	}
	if !Exists(root) || Exists(nested) {
		t.Error("Exists mismatch")
	}
}

func TestEncode(t *testing.T) {
	var b strings.Builder
	if err := New().Encode(&b); err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	for _, want := range []string{"mode: instant", "127.0.0.1:7070", "tracerName: arbor"} {
		if !strings.Contains(b.String(), want) {
			t.Errorf("Encode output missing %q:\n%s", want, b.String())
		}
	}
}
