// ABOUTME: YAML configuration parsing, defaults, and environment overrides
// ABOUTME: Defines structure for stream ingest, gateway, and status service settings
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harper/listenmoe-ingest/internal/domain/station"
)

type Config struct {
	Listen   ListenConfig  `yaml:"listen"`
	Stations []string      `yaml:"stations"`
	HTTP     HTTPConfig    `yaml:"http"`
	Gateway  GatewayConfig `yaml:"gateway"`
	Logging  LoggingConfig `yaml:"logging"`
}

type ListenConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type HTTPConfig struct {
	UserAgent               string            `yaml:"user_agent"`
	RequestHeaders          map[string]string `yaml:"request_headers"`
	ConnectTimeoutMs        int               `yaml:"connect_timeout_ms"`
	ResponseHeaderTimeoutMs int               `yaml:"response_header_timeout_ms"`
}

type GatewayConfig struct {
	ReconnectDelayMs   int `yaml:"reconnect_delay_ms"`
	HandshakeTimeoutMs int `yaml:"handshake_timeout_ms"`
	HistorySize        int `yaml:"history_size"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Default returns a Config populated with the defaults.
func Default() *Config {
	return &Config{
		Listen: ListenConfig{
			Host: "127.0.0.1",
			Port: 8000,
		},
		HTTP: HTTPConfig{
			ConnectTimeoutMs:        10000,
			ResponseHeaderTimeoutMs: 15000,
		},
		Gateway: GatewayConfig{
			ReconnectDelayMs:   5000,
			HandshakeTimeoutMs: 10000,
			HistorySize:        32,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path, then applies defaults and environment overrides. An
// empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	}

	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	d := Default()

	if c.Listen.Host == "" {
		c.Listen.Host = d.Listen.Host
	}
	if c.Listen.Port == 0 {
		c.Listen.Port = d.Listen.Port
	}

	if c.HTTP.ConnectTimeoutMs == 0 {
		c.HTTP.ConnectTimeoutMs = d.HTTP.ConnectTimeoutMs
	}
	if c.HTTP.ResponseHeaderTimeoutMs == 0 {
		c.HTTP.ResponseHeaderTimeoutMs = d.HTTP.ResponseHeaderTimeoutMs
	}

	if c.Gateway.ReconnectDelayMs == 0 {
		c.Gateway.ReconnectDelayMs = d.Gateway.ReconnectDelayMs
	}
	if c.Gateway.HandshakeTimeoutMs == 0 {
		c.Gateway.HandshakeTimeoutMs = d.Gateway.HandshakeTimeoutMs
	}
	if c.Gateway.HistorySize == 0 {
		c.Gateway.HistorySize = d.Gateway.HistorySize
	}

	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LISTENMOE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LISTENMOE_LOG_JSON"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Logging.JSON = b
		}
	}
	if v := os.Getenv("LISTENMOE_LISTEN_PORT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Listen.Port = i
		}
	}
	if v := os.Getenv("LISTENMOE_USER_AGENT"); v != "" {
		cfg.HTTP.UserAgent = v
	}
	if v := os.Getenv("LISTENMOE_STATIONS"); v != "" {
		cfg.Stations = strings.Split(v, ",")
	}
}

// Validate reports every problem found.
func (c *Config) Validate() error {
	var errs []error

	if c.Listen.Port < 0 || c.Listen.Port > 65535 {
		errs = append(errs, fmt.Errorf("listen: port %d out of range", c.Listen.Port))
	}
	for _, name := range c.Stations {
		if _, err := station.Parse(name); err != nil {
			errs = append(errs, fmt.Errorf("stations: %w", err))
		}
	}
	if c.HTTP.ConnectTimeoutMs < 0 || c.HTTP.ResponseHeaderTimeoutMs < 0 {
		errs = append(errs, errors.New("http: timeouts must be non-negative"))
	}
	if c.Gateway.ReconnectDelayMs < 0 || c.Gateway.HandshakeTimeoutMs < 0 {
		errs = append(errs, errors.New("gateway: delays must be non-negative"))
	}
	if c.Gateway.HistorySize < 1 {
		errs = append(errs, errors.New("gateway: history_size must be at least 1"))
	}

	return errors.Join(errs...)
}

// StationList resolves the configured names; an empty list means every
// station in the catalog.
func (c *Config) StationList() ([]station.Station, error) {
	if len(c.Stations) == 0 {
		return station.All(), nil
	}

	seen := make(map[station.Station]bool, len(c.Stations))
	out := make([]station.Station, 0, len(c.Stations))
	for _, name := range c.Stations {
		st, err := station.Parse(name)
		if err != nil {
			return nil, err
		}
		if seen[st] {
			continue
		}
		seen[st] = true
		out = append(out, st)
	}
	return out, nil
}

func (c HTTPConfig) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutMs) * time.Millisecond
}

func (c HTTPConfig) ResponseHeaderTimeout() time.Duration {
	return time.Duration(c.ResponseHeaderTimeoutMs) * time.Millisecond
}

func (c GatewayConfig) ReconnectDelay() time.Duration {
	return time.Duration(c.ReconnectDelayMs) * time.Millisecond
}

func (c GatewayConfig) HandshakeTimeout() time.Duration {
	return time.Duration(c.HandshakeTimeoutMs) * time.Millisecond
}
