package main

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/arbor/internal/errors"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&globalFlags{})
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDemoCounter(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "instant",
			args: []string{"demo", "counter", "--clicks", "2"},
			want: []string{`text "Count: 0"`, "click 1", `text "Count: 1"`, "click 2", `text "Count: 2"`},
		},
		{
			name: "poll",
			args: []string{"demo", "counter", "--clicks", "2", "--mode", "poll"},
			want: []string{"2 updates pending", `text "Count: 0"`, "flushed", `text "Count: 2"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			rest := out
			for _, w := range tt.want {
				i := strings.Index(rest, w)
				if i < 0 {
					t.Fatalf("output missing %q in order:\n%s", w, out)
				}
				rest = rest[i+len(w):]
			}
		})
	}
}

func TestDemoListReusesRows(t *testing.T) {
	out, err := execute(t, "demo", "list", "--order", "a,b", "--then", "b,a,c")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, w := range []string{"render 1: a,b", "render 2: b,a,c", "destroyed=0"} {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

func TestConfigCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arbor.yaml")
	if err := os.WriteFile(path, []byte("mode: poll\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--config", path, "config")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "mode: poll") {
		t.Errorf("output missing mode:\n%s", out)
	}

	if _, err := execute(t, "--config", filepath.Join(dir, "missing.yaml"), "config"); err == nil {
		t.Error("expected error for missing config file")
	}
	if _, err := execute(t, "--config", path, "--log-level", "loud", "config"); err == nil {
		t.Error("expected error for invalid log level")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a, ,b,c ")
	if strings.Join(got, "|") != "a|b|c" {
		t.Errorf("splitList() = %v", got)
	}
}

func TestVersionShort(t *testing.T) {
	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version = %q, want %q", out, version)
	}
}

func TestPrintErrorFormats(t *testing.T) {
	errors.DisableColors()
	defer errors.EnableColors()

	cause := stderrors.New("unknown flag: --bogus")
	tests := []struct {
		format string
		want   []string
	}{
		{"text", []string{"ERROR X001: Command failed", "Cause: unknown flag: --bogus"}},
		{"compact", []string{"X001: Command failed\n"}},
		{"json", []string{`"code":"X001"`, `"category":"cli"`, `"cause":"unknown flag: --bogus"`}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			printError(&buf, cause, tt.format)
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output missing %q:\n%s", w, buf.String())
				}
			}
		})
	}

	var buf bytes.Buffer
	printError(&buf, errors.New("C003"), "compact")
	if !strings.HasPrefix(buf.String(), "C003:") {
		t.Errorf("ArborError should keep its code, got %q", buf.String())
	}
}

func TestColorFlag(t *testing.T) {
	defer errors.EnableColors()

	if _, err := execute(t, "--color", "never", "version", "--short"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out := errors.New("A001").Format(); strings.Contains(out, "\033[") {
		t.Errorf("--color never left colors on: %q", out)
	}

	if _, err := execute(t, "--color", "always", "version", "--short"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out := errors.New("A001").Format(); !strings.Contains(out, "\033[") {
		t.Errorf("--color always left colors off: %q", out)
	}

	for _, args := range [][]string{
		{"--color", "sometimes", "version"},
		{"--error-format", "xml", "version"},
	} {
		if _, err := execute(t, args...); err == nil {
			t.Errorf("Execute(%v) should fail", args)
		}
	}
}

func TestExplain(t *testing.T) {
	out, err := execute(t, "explain")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, code := range []string{"A001", "C003", "X001"} {
		if !strings.Contains(out, code) {
			t.Errorf("explain list missing %s:\n%s", code, out)
		}
	}

	out, err = execute(t, "explain", "a003")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(out, "A003: Hook order changed (runtime)") {
		t.Errorf("explain A003 = %q", out)
	}

	_, err = execute(t, "explain", "Z999")
	var ae *errors.ArborError
	if !stderrors.As(err, &ae) || ae.Code != "X001" {
		t.Errorf("explain Z999 error = %v, want X001", err)
	}
}
