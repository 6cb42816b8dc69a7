package email

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Domenick1991/airport/internal/kafka"
	"go.uber.org/zap"
)

// Message is a rendered passenger notification.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Transport delivers a rendered message. The default transport only logs.
type Transport interface {
	Deliver(ctx context.Context, msg Message) error
}

type Sender struct {
	from      string
	airport   string
	transport Transport
	logger    *zap.Logger
}

type SenderOption func(*Sender)

func WithTransport(transport Transport) SenderOption {
	return func(s *Sender) {
		s.transport = transport
	}
}

func WithLogger(logger *zap.Logger) SenderOption {
	return func(s *Sender) {
		s.logger = logger
	}
}

func NewSender(from, airport string, opts ...SenderOption) *Sender {
	s := &Sender{from: from, airport: airport, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send renders the event and hands it to the transport. Events without a
// recipient attribute are logged and dropped.
func (s *Sender) Send(ctx context.Context, event kafka.Event) error {
	msg := s.Render(event)
	if msg.To == "" {
		s.logger.Info("notification without recipient",
			zap.String("type", event.Type),
			zap.String("id", event.ID))
		return nil
	}
	if s.transport == nil {
		s.logger.Info("send email",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject))
		return nil
	}
	if err := s.transport.Deliver(ctx, msg); err != nil {
		return fmt.Errorf("deliver %s to %s: %w", event.Type, msg.To, err)
	}
	return nil
}

func (s *Sender) Render(event kafka.Event) Message {
	var body strings.Builder
	fmt.Fprintf(&body, "%s %s is now %s.\n", event.Aggregate, event.ID, event.Status)

	keys := make([]string, 0, len(event.Attributes))
	for k := range event.Attributes {
		if k == "email" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&body, "%s: %s\n", k, event.Attributes[k])
	}
	fmt.Fprintf(&body, "\n%s\n", s.airport)

	return Message{
		From:    s.from,
		To:      recipient(event),
		Subject: fmt.Sprintf("[%s] %s", s.airport, strings.ReplaceAll(event.Type, "_", " ")),
		Body:    body.String(),
	}
}

// recipientKeys are tried in order; the worker resolves ids to addresses
// through the transport.
var recipientKeys = []string{"email", "passenger_id", "owner_id", "booking_id"}

func recipient(event kafka.Event) string {
	for _, k := range recipientKeys {
		if to := event.Attributes[k]; to != "" {
			return to
		}
	}
	return ""
}
