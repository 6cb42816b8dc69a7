package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Consumer struct {
	reader *kafka.Reader
	logger *zap.Logger
}

func NewConsumer(brokers []string, groupID, topic string, logger *zap.Logger) *Consumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		logger: logger,
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume decodes each message into an Event and hands it to handler until
// ctx is cancelled or handler fails. Undecodable messages are skipped.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, Event) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		event, ok := c.decode(msg)
		if !ok {
			continue
		}
		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}

func (c *Consumer) decode(msg kafka.Message) (Event, bool) {
	var event Event
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Warn("decode event error",
			zap.String("topic", msg.Topic),
			zap.Int64("offset", msg.Offset),
			zap.Error(err))
		return Event{}, false
	}
	return event, true
}
