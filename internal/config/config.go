package config

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/arbor/internal/errors"
	"github.com/vango-dev/arbor/pkg/arbor"
	"github.com/vango-dev/arbor/pkg/middleware"
)

const (
	// YAMLFileName is the preferred configuration file name.
	YAMLFileName = "arbor.yaml"

	// JSONFileName is the alternative configuration file name.
	JSONFileName = "arbor.json"

	// DefaultMode is the default update mode.
	DefaultMode = "instant"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultInspectorAddr is the default inspector listen address.
	DefaultInspectorAddr = "127.0.0.1:7070"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "arbor"

	// DefaultTracerName is the default OpenTelemetry tracer name.
	DefaultTracerName = "arbor"
)

// Config represents arbor.yaml (or arbor.json).
type Config struct {
	// Mode is the update mode: "instant" or "poll".
	Mode string `yaml:"mode,omitempty" json:"mode,omitempty"`

	// Debug enables hook order validation.
	Debug bool `yaml:"debug,omitempty" json:"debug,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `yaml:"log,omitempty" json:"log,omitempty"`

	// Inspector contains devtools server configuration.
	Inspector InspectorConfig `yaml:"inspector,omitempty" json:"inspector,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `yaml:"metrics,omitempty" json:"metrics,omitempty"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `yaml:"tracing,omitempty" json:"tracing,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level,omitempty" json:"level,omitempty"`

	// Format is "text" (default) or "json".
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
}

// InspectorConfig contains devtools server settings.
type InspectorConfig struct {
	// Addr is the address the inspector listens on.
	Addr string `yaml:"addr,omitempty" json:"addr,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled attaches the Prometheus observer to models.
	Enabled bool `yaml:"enabled,omitempty" json:"enabled,omitempty"`

	// Namespace is the metrics namespace.
	Namespace string `yaml:"namespace,omitempty" json:"namespace,omitempty"`

	// Subsystem is the metrics subsystem.
	Subsystem string `yaml:"subsystem,omitempty" json:"subsystem,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// Enabled wraps scope processing in tracing spans.
	Enabled bool `yaml:"enabled,omitempty" json:"enabled,omitempty"`

	// TracerName is the tracer name.
	TracerName string `yaml:"tracerName,omitempty" json:"tracerName,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Mode: DefaultMode,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: "text",
		},
		Inspector: InspectorConfig{
			Addr: DefaultInspectorAddr,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
		},
		Tracing: TracingConfig{
			TracerName: DefaultTracerName,
		},
	}
}

// Load reads configuration from dir. It looks for arbor.yaml, then
// arbor.json. A directory with neither yields the defaults.
func Load(dir string) (*Config, error) {
	for _, name := range []string{YAMLFileName, JSONFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return New(), nil
}

// LoadFile reads configuration from the specified file path. Files ending
// in .json are parsed as JSON, everything else as YAML.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("C003").
				WithDetail("No configuration file at " + path).
				WithSuggestion("Run 'arbor config --init' to write one with the defaults")
		}
		return nil, errors.New("C002").Wrap(err)
	}

	cfg := New()
	if isJSON(path) {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("C002").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, as JSON for .json
// paths and YAML otherwise.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return errors.New("C002").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("C002").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Encode writes the configuration as YAML to w.
func (c *Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = DefaultMode
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Inspector.Addr == "" {
		c.Inspector.Addr = DefaultInspectorAddr
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultTracerName
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := c.UpdateMode(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("C001").
			WithDetailf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// UpdateMode returns the configured update mode.
func (c *Config) UpdateMode() (arbor.UpdateMode, error) {
	switch strings.ToLower(c.Mode) {
	case "", "instant":
		return arbor.Instant, nil
	case "poll":
		return arbor.Poll, nil
	default:
		return 0, errors.New("C001").
			WithDetailf("mode must be instant or poll, got %q", c.Mode)
	}
}

// LogLevel returns the configured log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, errors.New("C001").
			WithDetailf("log.level must be debug, info, warn or error, got %q", c.Log.Level).
			Wrap(err)
	}
	return level, nil
}

// NewLogger returns a logger writing to w at the configured level and in
// the configured format. Call Validate first; invalid values fall back to
// info and text.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := c.LogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ModelOptions converts the configuration into Model options: mode, debug,
// logger, and the tracing and logging middleware when enabled.
func (c *Config) ModelOptions(logger *slog.Logger) ([]arbor.Option, error) {
	mode, err := c.UpdateMode()
	if err != nil {
		return nil, err
	}
	opts := []arbor.Option{
		arbor.WithMode(mode),
		arbor.WithDebug(c.Debug),
		arbor.WithLogger(logger),
	}
	if c.Tracing.Enabled {
		opts = append(opts, arbor.WithMiddleware(middleware.OpenTelemetry(
			middleware.WithTracerName(c.Tracing.TracerName),
		)))
	}
	if logger != nil {
		opts = append(opts, arbor.WithMiddleware(middleware.Logging(logger, 0)))
	}
	return opts, nil
}

// MetricsOptions converts the metrics section into observer options.
func (c *Config) MetricsOptions() []middleware.MetricsOption {
	return []middleware.MetricsOption{
		middleware.WithNamespace(c.Metrics.Namespace),
		middleware.WithSubsystem(c.Metrics.Subsystem),
	}
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range []string{YAMLFileName, JSONFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the directory containing
// arbor.yaml or arbor.json.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("C003").
				WithDetail(fmt.Sprintf("No %s or %s found in %s or any parent directory", YAMLFileName, JSONFileName, startDir))
		}
		dir = parent
	}
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
