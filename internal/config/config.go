// Package config loads the relay daemon configuration from a JSON file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config is the daemon configuration.
type Config struct {
	HostURL         string `json:"hostUrl"`
	ListenAddr      string `json:"listenAddr"`
	LogLevel        string `json:"logLevel"`
	DialTimeout     int    `json:"dialTimeout"`     // ms
	EventBufferSize int    `json:"eventBufferSize"` // per-subscription channel capacity
	PushDedupSize   int    `json:"pushDedupSize"`   // remembered push payloads
}

// Default values
const (
	DefaultListenAddr      = "localhost:9090"
	DefaultLogLevel        = "info"
	DefaultDialTimeout     = 10000 // ms
	DefaultEventBufferSize = 64
	DefaultPushDedupSize   = 512
)

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// applyDefaults sets default values for unset fields.
func applyDefaults(cfg *Config) {
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = DefaultDialTimeout
	}
	if cfg.EventBufferSize == 0 {
		cfg.EventBufferSize = DefaultEventBufferSize
	}
	if cfg.PushDedupSize == 0 {
		cfg.PushDedupSize = DefaultPushDedupSize
	}
}

// validate checks the configuration for errors.
func validate(cfg *Config) error {
	if cfg.HostURL == "" {
		return errors.New("hostUrl is required")
	}
	if !strings.HasPrefix(cfg.HostURL, "ws://") && !strings.HasPrefix(cfg.HostURL, "wss://") {
		return fmt.Errorf("hostUrl must be a ws:// or wss:// URL")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.LogLevel] {
		return fmt.Errorf("logLevel must be one of: debug, info, warn, error")
	}

	if cfg.DialTimeout < 0 {
		return fmt.Errorf("dialTimeout must be non-negative")
	}
	if cfg.EventBufferSize < 0 {
		return fmt.Errorf("eventBufferSize must be non-negative")
	}
	if cfg.PushDedupSize < 0 {
		return fmt.Errorf("pushDedupSize must be non-negative")
	}

	return nil
}

// GetDialTimeoutDuration returns the dial timeout as time.Duration.
func (c *Config) GetDialTimeoutDuration() time.Duration {
	return time.Duration(c.DialTimeout) * time.Millisecond
}
