package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/robho/nobil-etl-service/internal/adapter/httpapi"
	kafkaadapter "github.com/robho/nobil-etl-service/internal/adapter/kafka"
	"github.com/robho/nobil-etl-service/internal/adapter/nobilapi"
	"github.com/robho/nobil-etl-service/internal/availability"
	"github.com/robho/nobil-etl-service/internal/config"
	"github.com/robho/nobil-etl-service/internal/nobil"
	"github.com/robho/nobil-etl-service/internal/observability"
	"github.com/robho/nobil-etl-service/internal/pipeline"
)

func main() {
	configPath := flag.String("config", "", "path to yaml config file (environment-only when empty)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	client := nobilapi.NewClient(nobilapi.Options{
		APIKey:            cfg.Nobil.APIKey,
		SearchURL:         cfg.Nobil.SearchURL,
		StatusBaseURL:     cfg.Nobil.StatusURL,
		Timeout:           cfg.Nobil.Timeout,
		RequestsPerSecond: cfg.Nobil.RequestsPerSecond,
	}, logger, metrics)

	// Corners were validated during config load.
	northEast, _ := nobil.ParseCoordinate(cfg.Poll.NorthEast)
	southWest, _ := nobil.ParseCoordinate(cfg.Poll.SouthWest)
	extractor := nobilapi.NewRectangleExtractor(client, northEast, southWest, cfg.Poll.Limit)

	transformer := pipeline.NewTransformer(cfg.Nobil.DataLicense, searchFilters(cfg))

	var loader pipeline.Loader
	var kafkaWriter *kafkaadapter.Writer
	if cfg.Kafka.Enabled {
		kafkaWriter = kafkaadapter.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		loader = kafkaWriter
		logger.Info("kafka sink enabled", "topic", cfg.Kafka.Topic)
	} else {
		loader = kafkaadapter.NewNoopLoader(logger)
		logger.Info("kafka sink disabled")
	}

	snapshot := pipeline.NewSnapshot()
	p := pipeline.New(extractor, transformer, loader, snapshot, logger, metrics, cfg.Poll.Interval)

	detector := availability.NewDetector(client, logger)
	srv := httpapi.NewServer(cfg.HTTPAddr, p, snapshot, detector, cfg.Availability.CacheTTL, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// searchFilters maps filter config to normalizer predicates, nil when no
// filtering is requested.
func searchFilters(cfg *config.Config) *nobil.Filters {
	f := cfg.Filters
	if f.MinConnectors == 0 && f.MinPower == 0 && !f.FreeParking && !f.Open247 {
		return nil
	}
	return &nobil.Filters{
		MinPower:      f.MinPower,
		MinConnectors: f.MinConnectors,
		FreeParking:   f.FreeParking,
		Open247:       f.Open247,
	}
}
