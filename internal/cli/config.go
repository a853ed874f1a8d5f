package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/mcoot/connectn/internal/config"
	"github.com/mcoot/connectn/internal/factory"
)

// Options holds the global command line flags
type Options struct {
	ConfigPath string
	Storage    string
	RedisURL   string
	LogLevel   string
	Output     string
	ServerURL  string
}

// DefaultOptions returns Options with default values
func DefaultOptions() *Options {
	return &Options{
		ConfigPath: os.Getenv("CONNECTN_CONFIG"),
		Output:     getEnvOrDefault("CONNECTN_OUTPUT", "text"),
		ServerURL:  os.Getenv("CONNECTN_SERVER"),
	}
}

// loadConfig reads the config file and environment, then applies any flags
func (o *Options) loadConfig() (config.Config, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}

	if o.Storage != "" {
		cfg.StorageType = o.Storage
	}
	if o.RedisURL != "" {
		cfg.Redis.URL = o.RedisURL
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger builds the JSON logger used by every command
func newLogger(w io.Writer, cfg config.Config) *slog.Logger {
	level, _ := cfg.SlogLevel()
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// newApp wires the application for the configured storage backend
func newApp(cfg config.Config, logger *slog.Logger) (*factory.App, error) {
	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.StorageType,
	}
	if cfg.StorageType == factory.StorageTypeRedis {
		redisCfg := cfg.Redis
		factoryCfg.RedisConfig = &redisCfg
	}
	return factory.New(factoryCfg)
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
