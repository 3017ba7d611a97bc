package main

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gartstein/efportfolio/internal/portfolio/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestInitDatabase_SQLite(t *testing.T) {
	cfg := &config.Config{DBDriver: config.DriverSQLite, SQLitePath: ":memory:"}

	repo, err := initDatabase(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer repo.Close()

	count, err := repo.CountFounders(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestInitCache(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	assert.IsType(t, nopCache{}, initCache(ctx, &config.Config{}, logger))

	srv := miniredis.RunT(t)
	c := initCache(ctx, &config.Config{RedisAddr: srv.Addr(), CacheTTLSeconds: 60}, logger)
	defer c.Close()
	_, ok := c.(redisCache)
	assert.True(t, ok)
}

func TestInitCache_UnreachableFallsBack(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	c := initCache(context.Background(), &config.Config{RedisAddr: addr}, zaptest.NewLogger(t))
	assert.IsType(t, nopCache{}, c)
}

func TestInitPublisher_NoBrokers(t *testing.T) {
	p := initPublisher(&config.Config{}, zaptest.NewLogger(t))
	assert.IsType(t, nopPublisher{}, p)
	p.Close()
}

func TestInitLogger(t *testing.T) {
	assert.True(t, initLogger("debug").Core().Enabled(zap.DebugLevel))
	assert.False(t, initLogger("warn").Core().Enabled(zap.InfoLevel))
	assert.True(t, initLogger("bogus").Core().Enabled(zap.InfoLevel))
}
