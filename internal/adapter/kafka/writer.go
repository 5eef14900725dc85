// Package kafka publishes canonical stations to the downstream topic.
// Persistence of the canonical entities happens outside this service; the
// topic is the hand-off point.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/robho/nobil-etl-service/internal/domain"
)

// Writer produces canonical stations to a Kafka topic.
// It implements pipeline.Loader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the given sink topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes a batch of stations in a single
// WriteMessages call.
func (w *Writer) LoadBatch(ctx context.Context, stations []*domain.Station) error {
	if len(stations) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(stations))
	for i, st := range stations {
		msg, err := serializeToMessage(st)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a station into a Kafka message keyed by the
// numeric station id, so updates for one station land on one partition.
func serializeToMessage(st *domain.Station) (kafkago.Message, error) {
	data, err := json.Marshal(st)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize station %d: %w", st.ID, err)
	}
	return kafkago.Message{
		Key:   []byte(strconv.FormatInt(st.ID, 10)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "data_source", Value: []byte(st.DataSource)},
			{Key: "processed_at", Value: []byte(st.ProcessedAt.Format(time.RFC3339))},
		},
	}, nil
}
