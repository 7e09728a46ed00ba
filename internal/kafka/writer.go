package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/i474232898/incident-map/internal/incident"
)

// messageWriter is the subset of *kafkago.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes incident snapshots, one message per category.
type Writer struct {
	writer messageWriter
}

// NewWriter creates a Kafka producer for topic.
func NewWriter(brokers []string, topic string) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w}
}

// Publish writes every category of set in a single batch. Keys are category
// names so each category lands on a stable partition.
func (w *Writer) Publish(ctx context.Context, set incident.IncidentSet, at time.Time) error {
	msgs := make([]kafkago.Message, 0, len(incident.Categories))
	for _, c := range incident.Categories {
		msg, err := serializeToMessage(c, set[c], at)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

func serializeToMessage(c incident.Category, items []incident.Incident, at time.Time) (kafkago.Message, error) {
	if items == nil {
		items = []incident.Incident{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize %s incidents: %w", c, err)
	}
	return kafkago.Message{
		Key:   []byte(c),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "category", Value: []byte(c)},
			{Key: "generated_at", Value: []byte(at.UTC().Format(time.RFC3339))},
		},
	}, nil
}
