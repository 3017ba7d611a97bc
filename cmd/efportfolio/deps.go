package main

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gartstein/efportfolio/internal/portfolio/cache"
	"github.com/gartstein/efportfolio/internal/portfolio/config"
	"github.com/gartstein/efportfolio/internal/portfolio/controller"
	"github.com/gartstein/efportfolio/internal/portfolio/db"
	"github.com/gartstein/efportfolio/internal/portfolio/events"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// initDatabase opens the configured store, retrying PostgreSQL with
// exponential backoff until the connect timeout elapses.
func initDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*db.Repository, error) {
	if cfg.DBDriver == config.DriverSQLite {
		return db.OpenSQLite(cfg.SQLitePath)
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = cfg.ConnectTimeout()

	var repo *db.Repository
	err := backoff.RetryNotify(func() error {
		var err error
		repo, err = db.NewRepository(cfg.Database())
		return err
	}, backoff.WithContext(policy, ctx), func(err error, wait time.Duration) {
		logger.Warn("Database not ready, retrying", zap.Error(err), zap.Duration("wait", wait))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return repo, nil
}

type snapshotCache interface {
	controller.SnapshotCache
	Close() error
}

type redisCache struct {
	*cache.Redis
	client *redis.Client
}

func (r redisCache) Close() error { return r.client.Close() }

type nopCache struct{ cache.Nop }

func (nopCache) Close() error { return nil }

// initCache connects to Redis when REDIS_ADDR is set.
func initCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) snapshotCache {
	if cfg.RedisAddr == "" {
		return nopCache{}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unavailable, snapshot cache disabled", zap.Error(err))
		_ = client.Close()
		return nopCache{}
	}
	return redisCache{Redis: cache.NewRedis(client, cfg.CacheTTL()), client: client}
}

type publisher interface {
	Publish(events.Event)
	Close()
}

type nopPublisher struct{ events.Nop }

func (nopPublisher) Close() {}

// initPublisher starts a Kafka producer when brokers are configured.
func initPublisher(cfg *config.Config, logger *zap.Logger) publisher {
	if len(cfg.KafkaBrokers) == 0 {
		return nopPublisher{}
	}
	if err := events.EnsureTopic(cfg.KafkaBrokers, cfg.Topic, logger); err != nil {
		logger.Warn("Kafka unavailable, events disabled", zap.Error(err))
		return nopPublisher{}
	}
	return events.NewProducer(cfg.KafkaBrokers, cfg.Topic, logger)
}
