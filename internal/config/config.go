package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/connectn/internal/model"
	redisstorage "github.com/mcoot/connectn/internal/storage/redis"
)

// Storage backends
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Environment variables that override the file
const (
	EnvStorage  = "CONNECTN_STORAGE"
	EnvRedisURL = "CONNECTN_REDIS_URL"
	EnvLogLevel = "CONNECTN_LOG_LEVEL"
	EnvPort     = "CONNECTN_PORT"
)

// Config is the full application configuration
type Config struct {
	Rules       model.Rules         `yaml:"rules"`
	StorageType string              `yaml:"storage"`
	Redis       redisstorage.Config `yaml:"redis"`
	LogLevel    string              `yaml:"log_level"`
	Server      ServerConfig        `yaml:"server"`
}

// ServerConfig holds the history API listen settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Rules:       model.DefaultRules(),
		StorageType: StorageTypeMemory,
		Redis:       redisstorage.DefaultConfig(),
		LogLevel:    "info",
		Server: ServerConfig{
			Port: 8080,
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvStorage); v != "" {
		c.StorageType = v
	}
	if v := os.Getenv(EnvRedisURL); v != "" {
		c.Redis.URL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a port", model.ErrInvalidArgument, EnvPort, v)
		}
		c.Server.Port = port
	}
	return nil
}

// Validate checks the rules and the selected backends
func (c *Config) Validate() error {
	if err := c.Rules.Validate(); err != nil {
		return err
	}

	switch c.StorageType {
	case StorageTypeMemory:
	case StorageTypeRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("%w: redis url required for redis storage", model.ErrInvalidArgument)
		}
	default:
		return fmt.Errorf("%w: storage must be %q or %q, got %q",
			model.ErrInvalidArgument, StorageTypeMemory, StorageTypeRedis, c.StorageType)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", model.ErrInvalidArgument, c.Server.Port)
	}
	return nil
}

// SlogLevel parses LogLevel (debug, info, warn, error)
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", model.ErrInvalidArgument, c.LogLevel)
	}
	return level, nil
}
