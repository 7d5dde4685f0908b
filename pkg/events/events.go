// Package events publishes reservation lifecycle events for staff tooling.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	ReservationCreated   = "reservation.created"
	ReservationConfirmed = "reservation.confirmed"
	ReservationRejected  = "reservation.rejected"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data any) error
	Close() error
}

type ReservationEvent struct {
	ReservationID  string    `json:"reservation_id"`
	CustomerName   string    `json:"customer_name"`
	Phone          string    `json:"phone"`
	DesiredService string    `json:"desired_service"`
	Status         string    `json:"status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type NATSPublisher struct {
	conn *nats.Conn
	log  *zap.Logger
}

func NewNATSPublisher(url string, log *zap.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("prebook"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("NATS disconnected", zap.Error(err))
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	return &NATSPublisher{conn: conn, log: log.With(zap.String("component", "events"))}, nil
}

func (n *NATSPublisher) Publish(ctx context.Context, subject string, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}

	n.log.Debug("Publishing event", zap.String("subject", subject), zap.Int("bytes", len(payload)))
	return n.conn.Publish(subject, payload)
}

func (n *NATSPublisher) Close() error {
	return n.conn.Drain()
}

// NopPublisher is used when NATS_URL is empty.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
func (NopPublisher) Close() error                              { return nil }

// New connects to NATS when url is set and falls back to NopPublisher otherwise.
func New(url string, log *zap.Logger) (Publisher, error) {
	if url == "" {
		return NopPublisher{}, nil
	}
	return NewNATSPublisher(url, log)
}
