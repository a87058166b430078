package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/cache"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

func NewKafkaReader(brokers []string, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

// Listener drops cached product list pages whenever any process reports a product change.
type Listener struct {
	reader     MessageReader
	cache      cache.Cache
	logger     logger.ZapLogger
	retryDelay time.Duration
}

func NewListener(reader MessageReader, c cache.Cache, log logger.ZapLogger) *Listener {
	return &Listener{
		reader:     reader,
		cache:      c,
		logger:     log,
		retryDelay: time.Second,
	}
}

// Start blocks until ctx is cancelled.
func (l *Listener) Start(ctx context.Context) {
	l.logger.Info("Starting catalog event listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping catalog event listener")
			return
		default:
			msg, err := l.reader.ReadMessage(ctx)
			if err != nil {
				// Don't log context canceled error as error
				if ctx.Err() != nil {
					l.logger.Info("Stopping catalog event listener")
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				select {
				case <-ctx.Done():
				case <-time.After(l.retryDelay):
				}
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *Listener) processMessage(ctx context.Context, value []byte) {
	var event Event
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if !event.AffectsProducts() {
		return
	}

	l.logger.Debug("Invalidating product list cache",
		zap.String("event_type", string(event.EventType)),
		zap.String("entity_id", event.EntityID),
	)
	if err := l.cache.DeletePrefix(ctx, cache.ProductListPrefix); err != nil {
		l.logger.Warn("Failed to invalidate product list cache", zap.String("event_id", event.EventID), zap.Error(err))
	}
}
