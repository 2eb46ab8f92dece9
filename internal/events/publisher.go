package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"parking-api/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// SpotCreatedType is the event type of SpotEvent messages published on creation.
const SpotCreatedType = "spot.created"

// MessageWriter is the subset of *kafka.Writer used by the publisher.
// This allows for easy mocking in unit tests.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// SpotEvent is the JSON payload written to Kafka.
type SpotEvent struct {
	EventID    string             `json:"event_id"`
	Type       string             `json:"type"`
	OccurredAt time.Time          `json:"occurred_at"`
	Spot       models.ParkingSpot `json:"spot"`
}

// KafkaPublisher publishes spot events to a Kafka topic.
type KafkaPublisher struct {
	writer MessageWriter
	now    func() time.Time
}

// NewKafkaPublisher creates a publisher writing to topic on broker.
func NewKafkaPublisher(broker, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
	log.Info().Str("broker", broker).Str("topic", topic).Msg("publishing spot events to kafka")
	return NewPublisherWithWriter(writer)
}

// NewPublisherWithWriter wraps an existing writer.
func NewPublisherWithWriter(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, now: time.Now}
}

// SpotCreated publishes a spot.created event keyed by the spot id.
func (p *KafkaPublisher) SpotCreated(ctx context.Context, spot models.ParkingSpot) error {
	event := SpotEvent{
		EventID:    uuid.NewString(),
		Type:       SpotCreatedType,
		OccurredAt: p.now().UTC(),
		Spot:       spot,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: failed to encode event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(spot.ID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(SpotCreatedType)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("events: failed to write message: %w", err)
	}

	log.Debug().Str("event_id", event.EventID).Int64("spot_id", spot.ID).Msg("published spot event")
	return nil
}

// Close flushes and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher discards events. It is used when no broker is configured.
type NopPublisher struct{}

// SpotCreated implements the publisher contract without doing anything.
func (NopPublisher) SpotCreated(context.Context, models.ParkingSpot) error { return nil }

// Close implements io.Closer.
func (NopPublisher) Close() error { return nil }
