// Package config loads modalstack settings from a YAML file with env overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"modalstack/internal/modal"
)

// EnvConfigPath names the env var that points at the config file.
const EnvConfigPath = "MODALSTACK_CONFIG"

const defaultBaseLayer = 1

// Dialog kinds understood by the UI.
const (
	KindInfo    = "info"
	KindConfirm = "confirm"
	KindPrompt  = "prompt"
)

// DialogConfig declares a dialog registered at startup.
type DialogConfig struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Body  string `yaml:"body,omitempty"`
	Kind  string `yaml:"kind,omitempty"`
	Open  bool   `yaml:"open,omitempty"` // shown immediately on startup
	Data  any    `yaml:"data,omitempty"` // initial payload
}

// LogConfig controls the file logger.
type LogConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}

// TraceConfig controls OTLP export of registry spans.
type TraceConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint,omitempty"`
	ServiceName string `yaml:"service_name,omitempty"`
}

// Config is the full runtime configuration.
type Config struct {
	CommitMode string         `yaml:"commit_mode"` // "sync" or "deferred"
	BaseLayer  int            `yaml:"base_layer"`  // layer for a dialog opened onto an empty stack
	Log        LogConfig      `yaml:"log"`
	Trace      TraceConfig    `yaml:"trace"`
	Dialogs    []DialogConfig `yaml:"dialogs"`

	// Path is the file the config was read from, empty when defaults were used.
	Path string `yaml:"-"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		CommitMode: modal.CommitSync.String(),
		BaseLayer:  defaultBaseLayer,
		Log: LogConfig{
			Level: "info",
			Dir:   defaultStateDir(),
		},
		Trace: TraceConfig{
			ServiceName: "modalstack",
		},
	}
}

// Load reads the config file at path. An empty path falls back to
// $MODALSTACK_CONFIG, then to the user config dir. A missing file at a
// fallback location yields Default(); a missing explicit path is an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if path == "" {
		path = os.Getenv(EnvConfigPath)
		explicit = path != ""
	}
	if path == "" {
		path = defaultConfigPath()
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
			}
			cfg.Path = path
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := ParseCommitMode(c.CommitMode); err != nil {
		return err
	}
	seen := make(map[string]bool, len(c.Dialogs))
	for i, d := range c.Dialogs {
		if d.ID == "" {
			return fmt.Errorf("config: dialogs[%d]: id is required", i)
		}
		if seen[d.ID] {
			return fmt.Errorf("config: dialogs[%d]: duplicate id %q", i, d.ID)
		}
		seen[d.ID] = true
		switch d.Kind {
		case "", KindInfo, KindConfirm, KindPrompt:
		default:
			return fmt.Errorf("config: dialogs[%d]: unknown kind %q", i, d.Kind)
		}
	}
	if c.Trace.Enabled && c.Trace.Endpoint == "" {
		return fmt.Errorf("config: trace.endpoint is required when tracing is enabled")
	}
	return nil
}

// Mode returns the parsed commit mode. Call after Validate.
func (c Config) Mode() modal.CommitMode {
	m, _ := ParseCommitMode(c.CommitMode)
	return m
}

// ParseCommitMode maps "sync" / "deferred" to a modal.CommitMode.
func ParseCommitMode(s string) (modal.CommitMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sync":
		return modal.CommitSync, nil
	case "deferred":
		return modal.CommitDeferred, nil
	default:
		return modal.CommitSync, fmt.Errorf("config: unknown commit_mode %q (want sync or deferred)", s)
	}
}

// applyEnv lets the standard OTel env vars switch tracing on.
func (c *Config) applyEnv() {
	if ep := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); ep != "" {
		c.Trace.Endpoint = ep
		c.Trace.Enabled = true
	}
	if name := os.Getenv("OTEL_SERVICE_NAME"); name != "" {
		c.Trace.ServiceName = name
	}
}

func (c *Config) normalize() {
	if c.Log.Dir == "" {
		c.Log.Dir = defaultStateDir()
	}
	if c.Trace.ServiceName == "" {
		c.Trace.ServiceName = "modalstack"
	}
	for i := range c.Dialogs {
		if c.Dialogs[i].Kind == "" {
			c.Dialogs[i].Kind = KindInfo
		}
		if c.Dialogs[i].Title == "" {
			c.Dialogs[i].Title = c.Dialogs[i].ID
		}
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "modalstack", "config.yaml")
}

func defaultStateDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "modalstack")
	}
	return filepath.Join(dir, "modalstack")
}
