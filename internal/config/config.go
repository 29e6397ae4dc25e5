// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ik5/pcmwav"
)

// Config represents the complete configuration
type Config struct {
	Audio   AudioConfig   `yaml:"audio"`
	HTTP    HTTPConfig    `yaml:"http"`
	Logging LoggingConfig `yaml:"logging"`
}

// AudioConfig is the layout assumed for payloads that do not carry one.
type AudioConfig struct {
	SampleRate    int `yaml:"sample_rate"`
	Channels      int `yaml:"channels"`
	BitsPerSample int `yaml:"bits_per_sample"`
}

// HTTPConfig contains HTTP server configuration
type HTTPConfig struct {
	Address      string        `yaml:"address"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	Compress   bool   `yaml:"compress"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Audio: AudioConfig{
			SampleRate:    pcmwav.DefaultFormat.SampleRate,
			Channels:      pcmwav.DefaultFormat.Channels,
			BitsPerSample: pcmwav.DefaultFormat.BitsPerSample,
		},
		HTTP: HTTPConfig{
			Address:      ":8080",
			MaxBodyBytes: 16 << 20,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  100,
			MaxBackups: 3,
			Compress:   true,
		},
	}
}

// Load reads the configuration file at path over the defaults. An empty
// path returns the defaults.
func Load(path string) (*Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Audio.Validate(); err != nil {
		return fmt.Errorf("audio config: %w", err)
	}

	if err := c.HTTP.Validate(); err != nil {
		return fmt.Errorf("http config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

func (a *AudioConfig) Format() pcmwav.Format {
	return pcmwav.Format{
		SampleRate:    a.SampleRate,
		Channels:      a.Channels,
		BitsPerSample: a.BitsPerSample,
	}
}

func (a *AudioConfig) Validate() error {
	return a.Format().Validate()
}

func (h *HTTPConfig) Validate() error {
	if h.Address == "" {
		return errors.New("address cannot be empty")
	}

	if h.MaxBodyBytes < 1 {
		return fmt.Errorf("max_body_bytes must be positive, got %d", h.MaxBodyBytes)
	}

	if h.ReadTimeout < 0 || h.WriteTimeout < 0 {
		return fmt.Errorf("timeouts cannot be negative, got read %v write %v", h.ReadTimeout, h.WriteTimeout)
	}

	return nil
}

func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[l.Level] {
		return fmt.Errorf("level must be one of [debug, info, warn, error], got '%s'", l.Level)
	}

	validFormats := map[string]bool{"console": true, "json": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("format must be 'console' or 'json', got '%s'", l.Format)
	}

	if l.File != "" && (l.MaxSizeMB < 1 || l.MaxBackups < 0) {
		return fmt.Errorf("max_size_mb must be positive and max_backups non-negative, got %d and %d",
			l.MaxSizeMB, l.MaxBackups)
	}

	return nil
}
