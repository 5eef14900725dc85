package nobilapi

import (
	"context"

	"github.com/robho/nobil-etl-service/internal/domain"
	"github.com/robho/nobil-etl-service/internal/nobil"
)

// RectangleExtractor feeds the pipeline from a fixed bounding-box search.
// It implements pipeline.Extractor.
type RectangleExtractor struct {
	client    *Client
	northEast domain.Coordinate
	southWest domain.Coordinate
	limit     int
}

// NewRectangleExtractor creates an extractor for the given bounding box.
func NewRectangleExtractor(client *Client, northEast, southWest domain.Coordinate, limit int) *RectangleExtractor {
	return &RectangleExtractor{
		client:    client,
		northEast: northEast,
		southWest: southWest,
		limit:     limit,
	}
}

func (e *RectangleExtractor) FetchStations(ctx context.Context) ([]nobil.ChargerStation, error) {
	return e.client.RectangleSearch(ctx, e.northEast, e.southWest, e.limit)
}
