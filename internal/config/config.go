package config

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vcore/internal/errors"
	"github.com/vango-dev/vcore/pkg/observe"
	"github.com/vango-dev/vcore/pkg/reactive"
)

const (
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultReentrancy  = "panic"
	DefaultNamespace   = "vcore"
	DefaultExporter    = "none"
	DefaultServiceName = "vcore"
)

// FileNames are the configuration file names searched for, in order.
var FileNames = []string{"vcore.yaml", "vcore.yml", "vcore.json"}

// Config is the contents of a vcore configuration file.
type Config struct {
	Log     LogConfig     `yaml:"log" json:"log"`
	Runtime RuntimeConfig `yaml:"runtime" json:"runtime"`
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
	Tracing TracingConfig `yaml:"tracing" json:"tracing"`

	// configPath is where the config was loaded from, if anywhere.
	configPath string
}

// LogConfig configures the slog handler.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level,omitempty" json:"level,omitempty"`

	// Format is text or json.
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
}

// RuntimeConfig configures reactive runtimes created by the CLI.
type RuntimeConfig struct {
	// Reentrancy is panic or skip.
	Reentrancy string `yaml:"reentrancy,omitempty" json:"reentrancy,omitempty"`
}

// MetricsConfig configures Prometheus collectors.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" json:"enabled"`
	Namespace string `yaml:"namespace,omitempty" json:"namespace,omitempty"`
}

// TracingConfig configures span export.
type TracingConfig struct {
	// Exporter is stdout or none.
	Exporter    string `yaml:"exporter,omitempty" json:"exporter,omitempty"`
	ServiceName string `yaml:"serviceName,omitempty" json:"serviceName,omitempty"`
}

// New returns a Config with default values.
func New() *Config {
	return &Config{
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Runtime: RuntimeConfig{
			Reentrancy: DefaultReentrancy,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
		Tracing: TracingConfig{
			Exporter:    DefaultExporter,
			ServiceName: DefaultServiceName,
		},
	}
}

// Load reads the first configuration file found in dir. Defaults are
// returned when dir has none.
func Load(dir string) (*Config, error) {
	path, ok := Exists(dir)
	if !ok {
		return New(), nil
	}
	return LoadFile(path)
}

// LoadFile reads and validates the configuration at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E106").
				WithDetail("No configuration file at " + path).
				Wrap(err)
		}
		return nil, errors.New("E100").Wrap(err)
	}

	cfg, err := Parse(data)
	if err != nil {
		e := errors.FromError(err, "E100")
		e.Location = &errors.Location{File: path}
		return nil, e
	}

	cfg.configPath = path
	return cfg, nil
}

// Parse decodes YAML or JSON configuration bytes, applies defaults and
// validates the result. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := New()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.New("E100").
			WithSuggestion("Check the file against the documented log, runtime, metrics and tracing sections").
			Wrap(err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills in empty fields. Metrics.Enabled is left as decoded.
func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if c.Runtime.Reentrancy == "" {
		c.Runtime.Reentrancy = DefaultReentrancy
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.Exporter == "" {
		c.Tracing.Exporter = DefaultExporter
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = DefaultServiceName
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
	c.Log.Format = strings.ToLower(c.Log.Format)
}

// Validate checks every enumerated field.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.Log.Level); err != nil {
		return errors.New("E101").WithSuggestionf("Got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("E102").WithSuggestionf("Got %q", c.Log.Format)
	}
	if _, err := reactive.ParseReentrancyPolicy(c.Runtime.Reentrancy); err != nil {
		return errors.New("E103").WithSuggestionf("Got %q", c.Runtime.Reentrancy).Wrap(err)
	}
	if !validMetricName(c.Metrics.Namespace) {
		return errors.New("E104").WithSuggestionf("Got %q", c.Metrics.Namespace)
	}
	switch c.Tracing.Exporter {
	case "stdout", "none":
	default:
		return errors.New("E105").WithSuggestionf("Got %q", c.Tracing.Exporter)
	}
	return nil
}

// Path returns the file the config was loaded from, or "" for defaults.
func (c *Config) Path() string {
	return c.configPath
}

// WriteYAML writes the effective configuration as YAML.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// Level returns the configured slog level.
func (c *Config) Level() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

// Logger builds a slog.Logger writing to w.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level()}
	var handler slog.Handler
	if c.Log.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// RuntimeOptions returns the reactive.Runtime options for this config.
func (c *Config) RuntimeOptions(logger *slog.Logger) []reactive.Option {
	policy, _ := reactive.ParseReentrancyPolicy(c.Runtime.Reentrancy)
	opts := []reactive.Option{reactive.WithReentrancyPolicy(policy)}
	if logger != nil {
		opts = append(opts, reactive.WithLogger(logger.With("component", "reactive")))
	}
	return opts
}

// MetricsOptions returns the observe.Metrics options for this config.
func (c *Config) MetricsOptions() []observe.MetricsOption {
	return []observe.MetricsOption{observe.WithNamespace(c.Metrics.Namespace)}
}

// TracingConfig returns the tracer provider settings for this config.
func (c *Config) TracingConfig(w io.Writer, version string) observe.TracingConfig {
	return observe.TracingConfig{
		ServiceName:    c.Tracing.ServiceName,
		ServiceVersion: version,
		Exporter:       c.Tracing.Exporter,
		Writer:         w,
	}
}

// Exists returns the path of the first configuration file in dir.
func Exists(dir string) (string, bool) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// FindProjectRoot walks up from startDir to the first directory holding a
// configuration file.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if _, ok := Exists(dir); ok {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E106").
				WithDetail("No configuration file found in " + startDir + " or any parent directory").
				WithSuggestion("Create vcore.yaml at the project root, or run without one to use defaults")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads the configuration of the enclosing project, or
// defaults if there is none.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root, err := FindProjectRoot(wd)
	if err != nil {
		if errors.HasCode(err, "E106") {
			return New(), nil
		}
		return nil, err
	}
	return Load(root)
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	if err != nil {
		return slog.LevelInfo, err
	}
	switch s {
	case "debug", "info", "warn", "error":
		return level, nil
	}
	return slog.LevelInfo, fmt.Errorf("unsupported level %q", s)
}

// validMetricName reports whether s matches [a-zA-Z_][a-zA-Z0-9_]*.
func validMetricName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
