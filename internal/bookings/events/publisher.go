package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"classbook/pkg/logger"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	TypeBookingCreated = "booking.created"
	TypeClassDeleted   = "class.deleted"
	TypeBookingsReset  = "bookings.reset"
)

// Event is one booking lifecycle notification. Booked carries the booking
// count after the change where that makes sense.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	ClassID    string    `json:"classId,omitempty"`
	Booked     int       `json:"booked,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher emits lifecycle events to Kafka, keyed by classId so events for
// one class stay ordered. Publishing is advisory: failures are logged and
// never surfaced to the request that triggered them. A nil Publisher or one
// built without brokers is a no-op.
type Publisher struct {
	writer *kafka.Writer
	log    *logger.Logger
}

func NewPublisher(brokers []string, topic string, log *logger.Logger) *Publisher {
	p := &Publisher{log: log}
	if len(brokers) == 0 {
		log.Info("Kafka brokers not configured, booking events disabled")
		return p
	}

	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error(fmt.Sprintf(msg, args...))
		}),
	}
	log.Info("Booking event publisher initialized", "brokers", brokers, "topic", topic)
	return p
}

func (p *Publisher) Publish(ctx context.Context, eventType, classID string, booked int) {
	if p == nil || p.writer == nil {
		return
	}

	event := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		ClassID:    classID,
		Booked:     booked,
		OccurredAt: time.Now().UTC(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.log.Error("Failed to encode booking event", "type", eventType, "error", err)
		return
	}

	key := classID
	if key == "" {
		key = eventType
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  event.OccurredAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Warn("Failed to publish booking event",
			"type", eventType,
			"class_id", classID,
			"error", err,
		)
	}
}

func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
