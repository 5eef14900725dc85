// Package pipeline runs the periodic fetch-normalize-publish loop.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robho/nobil-etl-service/internal/domain"
	"github.com/robho/nobil-etl-service/internal/nobil"
	"github.com/robho/nobil-etl-service/internal/observability"
)

// Extractor fetches the current raw station records from the provider.
type Extractor interface {
	FetchStations(ctx context.Context) ([]nobil.ChargerStation, error)
}

// Transformer converts one raw record into a canonical station. A nil
// station with a nil error means the record was rejected, which is expected
// and frequent.
type Transformer interface {
	Transform(ctx context.Context, raw nobil.ChargerStation) (*domain.Station, error)
}

// Loader hands a batch of canonical stations to the sink.
type Loader interface {
	LoadBatch(ctx context.Context, stations []*domain.Station) error
}

// Pipeline orchestrates the periodic ingest cycle and keeps the latest
// normalized snapshot for the read API.
type Pipeline struct {
	extractor   Extractor
	transformer Transformer
	loader      Loader
	snapshot    *Snapshot
	logger      *slog.Logger
	metrics     *observability.Metrics
	interval    time.Duration
	ready       atomic.Bool
}

// New creates a Pipeline polling at the given interval.
func New(e Extractor, t Transformer, l Loader, snapshot *Snapshot, logger *slog.Logger, metrics *observability.Metrics, interval time.Duration) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		snapshot:    snapshot,
		logger:      logger,
		metrics:     metrics,
		interval:    interval,
	}
}

// CheckReadiness returns nil once at least one poll cycle has completed.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no poll cycle has completed yet")
	}
	return nil
}

// Run polls immediately and then on every interval tick until the context
// is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "interval", p.interval)
	p.metrics.PollRunning.Set(1)
	defer p.metrics.PollRunning.Set(0)

	p.pollOnce(ctx)

	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		case <-timer.C:
			p.pollOnce(ctx)
			timer.Reset(p.interval)
		}
	}
}

// pollOnce runs one fetch-normalize-publish cycle. Failures are logged and
// retried on the next tick; a partial cycle never clears the last snapshot.
func (p *Pipeline) pollOnce(ctx context.Context) {
	start := time.Now()

	rawStations, err := p.extractor.FetchStations(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.Error("fetch stations failed", "error", err)
		return
	}
	p.metrics.StationsFetched.Add(float64(len(rawStations)))

	stations := make([]*domain.Station, 0, len(rawStations))
	for _, raw := range rawStations {
		st, err := p.transformer.Transform(ctx, raw)
		if err != nil {
			if errors.Is(err, nobil.ErrMalformedCoordinate) {
				p.logger.Warn("skipping corrupt station record", "error", err)
				p.metrics.MalformedRecords.Inc()
				continue
			}
			p.logger.Error("transform failed", "error", err, "station_id", raw.Data.ID)
			continue
		}
		if st == nil {
			p.metrics.StationsRejected.Inc()
			continue
		}
		stations = append(stations, st)
	}
	p.metrics.StationsNormalized.Add(float64(len(stations)))

	p.snapshot.Replace(stations)

	if err := p.loader.LoadBatch(ctx, stations); err != nil {
		p.logger.Error("load batch failed", "error", err, "batch_size", len(stations))
		return
	}
	p.metrics.StationsPublished.Add(float64(len(stations)))

	p.metrics.PollDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)
	p.logger.Info("poll cycle complete",
		"fetched", len(rawStations),
		"normalized", len(stations),
		"duration", time.Since(start),
	)
}
