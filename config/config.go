// Package config loads the client configuration used by the hyperion CLI.
//
// The file may be TOML or YAML, chosen by extension.  A missing file is not an
// error: defaults are used instead.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/pdf/gohyperion/common"
)

// DefaultPath is read when no path is given
const DefaultPath = `~/.config/gohyperion/config.toml`

// Config holds the client settings
type Config struct {
	Host           string
	Port           int
	Priority       int
	ConnectTimeout time.Duration
	ReceiveTimeout time.Duration
	Log            LogConfig
}

// LogConfig controls CLI logging.  When File is set, logs are written there
// and rotated.
type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type rawConfig struct {
	Host           string `toml:"host" yaml:"host"`
	Port           int    `toml:"port" yaml:"port"`
	Priority       *int   `toml:"priority" yaml:"priority"`
	ConnectTimeout string `toml:"connect_timeout" yaml:"connect_timeout"`
	ReceiveTimeout string `toml:"receive_timeout" yaml:"receive_timeout"`
	Log            struct {
		Level      string `toml:"level" yaml:"level"`
		File       string `toml:"file" yaml:"file"`
		MaxSizeMB  int    `toml:"max_size_mb" yaml:"max_size_mb"`
		MaxBackups int    `toml:"max_backups" yaml:"max_backups"`
		MaxAgeDays int    `toml:"max_age_days" yaml:"max_age_days"`
	} `toml:"log" yaml:"log"`
}

// Default returns the configuration used when no file exists
func Default() Config {
	return Config{
		Host:           common.DefaultHost,
		Port:           common.DefaultPort,
		Priority:       common.DefaultPriority,
		ConnectTimeout: common.DefaultConnectTimeout,
		ReceiveTimeout: common.DefaultReceiveTimeout,
		Log: LogConfig{
			Level:      `info`,
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load reads the configuration at path, or DefaultPath when path is empty.
// Unset values keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == `` {
		path = DefaultPath
	}
	resolved, err := expandPath(path)
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	switch strings.ToLower(filepath.Ext(resolved)) {
	case `.yaml`, `.yml`:
		err = yaml.Unmarshal(data, &raw)
	default:
		err = toml.Unmarshal(data, &raw)
	}
	if err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", resolved, err)
	}

	if err := cfg.apply(raw); err != nil {
		return Default(), fmt.Errorf("config %s: %w", resolved, err)
	}
	return cfg, nil
}

// Validate reports settings that can not work
func (c Config) Validate() error {
	if strings.TrimSpace(c.Host) == `` {
		return errors.New(`host is empty`)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.Priority < 0 {
		return fmt.Errorf("priority %d is negative", c.Priority)
	}
	if c.ConnectTimeout <= 0 || c.ReceiveTimeout <= 0 {
		return errors.New(`timeouts must be positive`)
	}
	return nil
}

func (c *Config) apply(raw rawConfig) error {
	if host := strings.TrimSpace(raw.Host); host != `` {
		c.Host = host
	}
	if raw.Port != 0 {
		c.Port = raw.Port
	}
	if raw.Priority != nil {
		c.Priority = *raw.Priority
	}
	var err error
	if c.ConnectTimeout, err = parseDuration(raw.ConnectTimeout, c.ConnectTimeout); err != nil {
		return fmt.Errorf("connect_timeout: %w", err)
	}
	if c.ReceiveTimeout, err = parseDuration(raw.ReceiveTimeout, c.ReceiveTimeout); err != nil {
		return fmt.Errorf("receive_timeout: %w", err)
	}
	if level := strings.TrimSpace(raw.Log.Level); level != `` {
		c.Log.Level = strings.ToLower(level)
	}
	if file := strings.TrimSpace(raw.Log.File); file != `` {
		if c.Log.File, err = expandPath(file); err != nil {
			return fmt.Errorf("log file: %w", err)
		}
	}
	if raw.Log.MaxSizeMB > 0 {
		c.Log.MaxSizeMB = raw.Log.MaxSizeMB
	}
	if raw.Log.MaxBackups > 0 {
		c.Log.MaxBackups = raw.Log.MaxBackups
	}
	if raw.Log.MaxAgeDays > 0 {
		c.Log.MaxAgeDays = raw.Log.MaxAgeDays
	}
	return c.Validate()
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == `` {
		return fallback, nil
	}
	return time.ParseDuration(value)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == `` {
		return ``, errors.New(`path is empty`)
	}
	if strings.HasPrefix(trimmed, `~`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return ``, fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, `~`))
	}
	return filepath.Abs(trimmed)
}
