package pipeline

import (
	"context"

	"github.com/robho/nobil-etl-service/internal/domain"
	"github.com/robho/nobil-etl-service/internal/nobil"
)

// StationTransformer implements Transformer using the Nobil normalizer with
// fixed license and filter settings.
type StationTransformer struct {
	license string
	filters *nobil.Filters
}

// NewTransformer creates a StationTransformer. Pass nil filters to disable
// search-time filtering.
func NewTransformer(license string, filters *nobil.Filters) *StationTransformer {
	return &StationTransformer{license: license, filters: filters}
}

func (t *StationTransformer) Transform(_ context.Context, raw nobil.ChargerStation) (*domain.Station, error) {
	return nobil.Normalize(raw, t.license, t.filters)
}
