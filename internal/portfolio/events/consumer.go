package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type KafkaReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Handler func(context.Context, Event) error

// handlerAttempts bounds the tries of one event before it is skipped.
const handlerAttempts = 3

type Consumer struct {
	reader     KafkaReader
	logger     *zap.Logger
	handler    Handler
	// newBackOff paces fetch and handler retries; nil means exponential.
	newBackOff func() backoff.BackOff
}

// NewConsumer reads portfolio events from topic as part of groupID.
func NewConsumer(brokers []string, groupID, topic string, logger *zap.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
			Dialer:  kafka.DefaultDialer,
		}),
		logger: logger.Named("kafka_consumer"),
	}
}

// Start consumes until ctx is cancelled. Messages are committed only after
// the handler succeeds. An event whose handler fails handlerAttempts times is
// logged and skipped; the next commit moves the group offset past it. The
// snapshot TTL bounds how long a missed invalidation stays visible.
func (c *Consumer) Start(ctx context.Context) {
	go c.run(ctx)
}

func (c *Consumer) backOff() backoff.BackOff {
	if c.newBackOff != nil {
		return c.newBackOff()
	}
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 0
	b.MaxInterval = 30 * time.Second
	return b
}

func (c *Consumer) run(ctx context.Context) {
	fetchPause := c.backOff()
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			wait := fetchPause.NextBackOff()
			c.logger.Error("Failed to fetch message", zap.Error(err), zap.Duration("retry_in", wait))
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
			continue
		}
		fetchPause.Reset()

		var event Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.Error("Failed to parse event",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			continue
		}

		if c.handler != nil {
			if err := c.handle(ctx, event); err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error("Failed to handle event",
					zap.Error(err),
					zap.String("event_type", string(event.Type)),
					zap.Int64("company_id", event.CompanyID),
				)
				continue
			}
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("Failed to commit message",
				zap.Error(err),
				zap.String("event_type", string(event.Type)),
			)
		}
	}
}

// handle runs the handler up to handlerAttempts times.
func (c *Consumer) handle(ctx context.Context, event Event) error {
	policy := backoff.WithContext(backoff.WithMaxRetries(c.backOff(), handlerAttempts-1), ctx)
	return backoff.Retry(func() error {
		return c.handler(ctx, event)
	}, policy)
}

func (c *Consumer) RegisterHandler(fn Handler) {
	c.handler = fn
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		c.logger.Error("Failed to close Kafka reader", zap.Error(err))
	}
}
