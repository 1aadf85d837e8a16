package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default config file location.
const ConfigPath = "config.yaml"

// Storage backend names accepted in config.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	LogLevel string `yaml:"logLevel"`

	Storage       string `yaml:"storage"`
	DataDir       string `yaml:"dataDir"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	DatabaseURL   string `yaml:"databaseURL"`

	CatalogLoadDelay string `yaml:"catalogLoadDelay"`
	ReplyDelay       string `yaml:"replyDelay"`
	AuthDelay        string `yaml:"authDelay"`

	JWTSecret  string `yaml:"jwtSecret"`
	SessionTTL string `yaml:"sessionTTL"`
}

// Load reads config from path (defaults to config.yaml) and applies
// environment overrides.
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if v := os.Getenv("BOOKCHAT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("BOOKCHAT_STORAGE"); v != "" {
		cfg.Storage = v
	}
	if v := os.Getenv("BOOKCHAT_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("BOOKCHAT_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateConfig(cfg FileConfig) error {
	switch cfg.Storage {
	case StorageMemory:
	case StorageFile:
		if cfg.DataDir == "" {
			return errors.New("config: dataDir is required for file storage")
		}
	case StorageRedis:
		if cfg.RedisAddr == "" {
			return errors.New("config: redisAddr is required for redis storage (set in config.yaml or REDIS_ADDR)")
		}
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return errors.New("config: databaseURL is required for postgres storage (set in config.yaml or DATABASE_URL)")
		}
	default:
		return fmt.Errorf("config: unknown storage backend %q", cfg.Storage)
	}
	if cfg.JWTSecret == "" {
		return errors.New("config: jwtSecret is required (set in config.yaml or BOOKCHAT_JWT_SECRET)")
	}
	for _, d := range []string{cfg.CatalogLoadDelay, cfg.ReplyDelay, cfg.AuthDelay, cfg.SessionTTL} {
		if _, err := parseDuration(d); err != nil {
			return err
		}
	}
	return nil
}

// CatalogLoadDelayDuration returns the parsed delay (zero when unset).
func (c FileConfig) CatalogLoadDelayDuration() time.Duration {
	d, _ := parseDuration(c.CatalogLoadDelay)
	return d
}

// ReplyDelayDuration returns the parsed delay (zero when unset).
func (c FileConfig) ReplyDelayDuration() time.Duration {
	d, _ := parseDuration(c.ReplyDelay)
	return d
}

// AuthDelayDuration returns the parsed delay (zero when unset).
func (c FileConfig) AuthDelayDuration() time.Duration {
	d, _ := parseDuration(c.AuthDelay)
	return d
}

// SessionTTLDuration returns the parsed ttl (zero when unset).
func (c FileConfig) SessionTTLDuration() time.Duration {
	d, _ := parseDuration(c.SessionTTL)
	return d
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("config: invalid duration %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config: duration %q must be >= 0", s)
	}
	return d, nil
}
