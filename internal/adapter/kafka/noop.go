package kafka

import (
	"context"
	"log/slog"

	"github.com/robho/nobil-etl-service/internal/domain"
)

// NoopLoader discards batches. Used when the Kafka sink is disabled, so the
// pipeline and read API still run.
type NoopLoader struct {
	logger *slog.Logger
}

// NewNoopLoader creates a loader that only logs batch sizes.
func NewNoopLoader(logger *slog.Logger) *NoopLoader {
	return &NoopLoader{logger: logger}
}

func (l *NoopLoader) LoadBatch(_ context.Context, stations []*domain.Station) error {
	l.logger.Debug("kafka sink disabled, dropping batch", "batch_size", len(stations))
	return nil
}
