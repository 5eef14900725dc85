package availability

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/robho/nobil-etl-service/internal/domain"
)

// Result is the outcome of one station's availability fetch.
type Result struct {
	Availability *domain.StationAvailability
	Err          error
}

// FetchAll polls availability for every supported station with at most
// limit fetches in flight. Unsupported stations are omitted from the result
// map; per-station failures are recorded, not fatal. Cancelling the context
// stops issuing new fetches and cancels those in flight.
func FetchAll(ctx context.Context, d *Detector, stations []*domain.Station, limit int) map[int64]Result {
	if limit < 1 {
		limit = 1
	}

	var mu sync.Mutex
	results := make(map[int64]Result)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, st := range stations {
		if !d.Supports(st) {
			continue
		}
		g.Go(func() error {
			avail, err := d.Fetch(ctx, st)
			mu.Lock()
			results[st.ID] = Result{Availability: avail, Err: err}
			mu.Unlock()
			return nil
		})
	}

	g.Wait() //nolint:errcheck // workers never return errors
	return results
}
