package messaging

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"
)

// Producer publishes student-change events. The app runs without one when
// NATS is unavailable at startup.
type Producer interface {
	Publish(ctx context.Context, value interface{}) error
	Close() error
}

// StudentEvent is the payload published on every roster change.
type StudentEvent struct {
	Action    string `json:"action"` // created | updated | deleted | profile_updated
	StudentID int    `json:"studentId,omitempty"`
	Email     string `json:"email,omitempty"`
}

type natsProducer struct {
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
}

func NewProducer(url string, subject string, logger *slog.Logger) (Producer, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}

	logger.Info("NATS producer initialized", "url", url, "subject", subject)

	return &natsProducer{
		conn:    nc,
		subject: subject,
		logger:  logger,
	}, nil
}

func (p *natsProducer) Publish(ctx context.Context, value interface{}) error {
	valueBytes, err := json.Marshal(value)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to marshal event", "error", err)
		return err
	}

	if err := p.conn.Publish(p.subject, valueBytes); err != nil {
		p.logger.ErrorContext(ctx, "failed to publish event to NATS", "error", err)
		return err
	}

	p.logger.InfoContext(ctx, "event published to NATS", "subject", p.subject)
	return nil
}

func (p *natsProducer) Close() error {
	p.conn.Close()
	return nil
}
