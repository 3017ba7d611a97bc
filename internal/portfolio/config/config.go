// Package config loads runtime settings from a YAML file, an optional .env
// file and the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gartstein/efportfolio/internal/portfolio/db"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.yaml"

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	HTTPPort int    `yaml:"HTTP_PORT"`
	LogLevel string `yaml:"LOG_LEVEL"`

	DBDriver         string `yaml:"DB_DRIVER"`
	DBHost           string `yaml:"DB_HOST"`
	DBPort           int    `yaml:"DB_PORT"`
	DBUser           string `yaml:"DB_USER"`
	DBPassword       string `yaml:"DB_PASSWORD"`
	DBName           string `yaml:"DB_NAME"`
	DBSSLMode        string `yaml:"DB_SSLMODE"`
	DBConnectTimeout int    `yaml:"DB_CONNECT_TIMEOUT_SECONDS"`
	SQLitePath       string `yaml:"SQLITE_PATH"`

	RedisAddr       string `yaml:"REDIS_ADDR"`
	RedisPassword   string `yaml:"REDIS_PASSWORD"`
	RedisDB         int    `yaml:"REDIS_DB"`
	CacheTTLSeconds int    `yaml:"CACHE_TTL_SECONDS"`

	KafkaBrokers  []string `yaml:"KAFKA_BROKERS"`
	Topic         string   `yaml:"TOPIC"`
	ConsumerGroup string   `yaml:"CONSUMER_GROUP"`

	SnapshotRefreshCron string  `yaml:"SNAPSHOT_REFRESH_CRON"`
	RateLimitRPS        float64 `yaml:"RATE_LIMIT_RPS"`
	RateLimitBurst      int     `yaml:"RATE_LIMIT_BURST"`

	APIURL string `yaml:"API_URL"`
}

func defaults() Config {
	return Config{
		HTTPPort:         8080,
		LogLevel:         "info",
		DBDriver:         DriverPostgres,
		DBHost:           "localhost",
		DBPort:           5432,
		DBUser:           "postgres",
		DBName:           "efportfolio",
		DBSSLMode:        "disable",
		DBConnectTimeout: 30,
		SQLitePath:       "efportfolio.db",
		CacheTTLSeconds:  600,
		Topic:            "portfolio.events",
		ConsumerGroup:    "efportfolio",
		RateLimitBurst:   20,
		APIURL:           "http://localhost:8080",
	}
}

// Load reads path (a missing file at DefaultPath is not an error), then
// .env, then environment variables, and validates the result.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path == "" {
		path = DefaultPath
	}
	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && path == DefaultPath:
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	// .env is optional
	_ = godotenv.Load()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	c.HTTPPort = getEnvAsInt("HTTP_PORT", c.HTTPPort)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.DBDriver = getEnv("DB_DRIVER", c.DBDriver)
	c.DBHost = getEnv("DB_HOST", c.DBHost)
	c.DBPort = getEnvAsInt("DB_PORT", c.DBPort)
	c.DBUser = getEnv("DB_USER", c.DBUser)
	c.DBPassword = getEnv("DB_PASSWORD", c.DBPassword)
	c.DBName = getEnv("DB_NAME", c.DBName)
	c.DBSSLMode = getEnv("DB_SSLMODE", c.DBSSLMode)
	c.DBConnectTimeout = getEnvAsInt("DB_CONNECT_TIMEOUT_SECONDS", c.DBConnectTimeout)
	c.SQLitePath = getEnv("SQLITE_PATH", c.SQLitePath)
	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	c.RedisPassword = getEnv("REDIS_PASSWORD", c.RedisPassword)
	c.RedisDB = getEnvAsInt("REDIS_DB", c.RedisDB)
	c.CacheTTLSeconds = getEnvAsInt("CACHE_TTL_SECONDS", c.CacheTTLSeconds)
	c.KafkaBrokers = getEnvAsList("KAFKA_BROKERS", c.KafkaBrokers)
	c.Topic = getEnv("TOPIC", c.Topic)
	c.ConsumerGroup = getEnv("CONSUMER_GROUP", c.ConsumerGroup)
	c.SnapshotRefreshCron = getEnv("SNAPSHOT_REFRESH_CRON", c.SnapshotRefreshCron)
	c.RateLimitRPS = getEnvAsFloat("RATE_LIMIT_RPS", c.RateLimitRPS)
	c.RateLimitBurst = getEnvAsInt("RATE_LIMIT_BURST", c.RateLimitBurst)
	c.APIURL = getEnv("API_URL", c.APIURL)
}

func (c *Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.HTTPPort)
	}
	switch c.DBDriver {
	case DriverPostgres:
		if c.DBHost == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.DBName == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.DBDriver)
	}
	if len(c.KafkaBrokers) > 0 && c.Topic == "" {
		return fmt.Errorf("TOPIC is required when KAFKA_BROKERS is set")
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative")
	}
	return nil
}

// Database returns the PostgreSQL connection settings.
func (c *Config) Database() *db.Config {
	return &db.Config{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		DBName:   c.DBName,
		SSLMode:  c.DBSSLMode,
	}
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c *Config) ConnectTimeout() time.Duration {
	return time.Duration(c.DBConnectTimeout) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
