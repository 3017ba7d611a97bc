package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
HTTP_PORT: 9090
DB_HOST: db
DB_NAME: portfolio
KAFKA_BROKERS: ["kafka:9092"]
TOPIC: portfolio.events
CACHE_TTL_SECONDS: 60
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, time.Minute, cfg.CacheTTL())
	assert.Equal(t, "postgres", cfg.DBUser, "defaults fill unset keys")
	assert.Equal(t, "host=db port=5432 user=postgres password= dbname=portfolio sslmode=disable", cfg.Database().DSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "HTTP_PORT: 9090\n")
	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.HTTPPort)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "HTTP_PORT: [not an int"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{name: "defaults", mutate: func(*Config) {}, valid: true},
		{name: "bad port", mutate: func(c *Config) { c.HTTPPort = 0 }},
		{name: "unknown driver", mutate: func(c *Config) { c.DBDriver = "mysql" }},
		{name: "postgres without host", mutate: func(c *Config) { c.DBHost = "" }},
		{name: "sqlite without path", mutate: func(c *Config) { c.DBDriver = DriverSQLite; c.SQLitePath = "" }},
		{name: "brokers without topic", mutate: func(c *Config) { c.KafkaBrokers = []string{"k:9092"}; c.Topic = "" }},
		{name: "negative rate", mutate: func(c *Config) { c.RateLimitRPS = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
