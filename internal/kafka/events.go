package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Event is the envelope published for every entity state change.
type Event struct {
	Type       string            `json:"type"`
	Aggregate  string            `json:"aggregate"`
	ID         string            `json:"id"`
	Status     string            `json:"status"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`

	// Notify also routes the event to the passenger notifications topic.
	Notify bool `json:"-"`
}

type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

// Emitter publishes events on behalf of the services. Publication failures
// are logged and never fail the operation that produced the event. A nil
// Emitter is valid and drops everything.
type Emitter struct {
	publisher          Publisher
	topic              string
	notificationsTopic string
	logger             *zap.Logger
	now                func() time.Time
}

type EmitterOption func(*Emitter)

func WithNotificationsTopic(topic string) EmitterOption {
	return func(e *Emitter) { e.notificationsTopic = topic }
}

func WithEmitterLogger(logger *zap.Logger) EmitterOption {
	return func(e *Emitter) { e.logger = logger }
}

func WithEmitterClock(now func() time.Time) EmitterOption {
	return func(e *Emitter) { e.now = now }
}

func NewEmitter(publisher Publisher, topic string, opts ...EmitterOption) *Emitter {
	e := &Emitter{
		publisher: publisher,
		topic:     topic,
		logger:    zap.NewNop(),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Emitter) Emit(ctx context.Context, event Event) {
	if e == nil || e.publisher == nil || e.topic == "" {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = e.now()
	}

	if err := e.publisher.Publish(ctx, e.topic, event.ID, event); err != nil {
		e.logger.Warn("failed to publish event",
			zap.String("type", event.Type),
			zap.String("id", event.ID),
			zap.Error(err))
		return
	}
	if event.Notify && e.notificationsTopic != "" {
		if err := e.publisher.Publish(ctx, e.notificationsTopic, event.ID, event); err != nil {
			e.logger.Warn("failed to publish notification",
				zap.String("type", event.Type),
				zap.String("id", event.ID),
				zap.Error(err))
		}
	}
}
