// Package config resolves runtime settings from defaults, an optional YAML
// file and the environment. Command-line flags are applied last by the
// caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bmi-tracker/internal/chart"
	"bmi-tracker/internal/logger"

	"gopkg.in/yaml.v3"
)

const (
	AppDirName         = "bmi-tracker"
	DefaultHistoryFile = "bmi_history.csv"
	DefaultLogLevel    = "info"

	EnvHistoryFile = "BMI_HISTORY_FILE"
	EnvLogLevel    = "LOG_LEVEL"
	EnvDebug       = "DEBUG"
)

type Config struct {
	HistoryFile string       `yaml:"history_file"`
	LogLevel    string       `yaml:"log_level"`
	Window      WindowConfig `yaml:"window"`
	Chart       ChartConfig  `yaml:"chart"`
}

type WindowConfig struct {
	Width     float32 `yaml:"width"`
	Height    float32 `yaml:"height"`
	Resizable bool    `yaml:"resizable"`
}

type ChartConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Default returns the settings of the stock desktop build.
func Default() Config {
	return Config{
		HistoryFile: DefaultHistoryFile,
		LogLevel:    DefaultLogLevel,
		Window: WindowConfig{
			Width:  350,
			Height: 250,
		},
		Chart: ChartConfig{
			Width:  chart.DefaultWidth,
			Height: chart.DefaultHeight,
		},
	}
}

// ChartSize converts the chart settings into a render size.
func (c Config) ChartSize() chart.Size {
	return chart.Size{Width: c.Chart.Width, Height: c.Chart.Height}
}

// DefaultPath is the config file looked up when none is given explicitly.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppDirName, "config.yaml"), nil
}

// Load builds the configuration. An explicit path must exist; when path is
// empty the default location is used if present.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}

	if path != "" {
		err := cfg.mergeFile(path)
		switch {
		case err == nil:
		case !explicit && errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, err
		}
	}

	cfg.ApplyEnv(getenv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// mergeFile overlays the values present in a YAML file onto cfg.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// Decoding into the populated struct keeps defaults for absent keys.
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from BMI_HISTORY_FILE, LOG_LEVEL and DEBUG=1.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		return
	}
	if v := strings.TrimSpace(getenv(EnvHistoryFile)); v != "" {
		c.HistoryFile = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	} else if getenv(EnvDebug) == "1" {
		c.LogLevel = "debug"
	}
}

// Validate rejects settings the application cannot start with.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.HistoryFile) == "" {
		errs = append(errs, errors.New("history_file must not be empty"))
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %vx%v must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Chart.Width < 200 || c.Chart.Height < 150 {
		errs = append(errs, fmt.Errorf("chart size %dx%d below minimum 200x150", c.Chart.Width, c.Chart.Height))
	}

	return errors.Join(errs...)
}
