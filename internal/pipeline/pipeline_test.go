package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robho/nobil-etl-service/internal/domain"
	"github.com/robho/nobil-etl-service/internal/nobil"
	"github.com/robho/nobil-etl-service/internal/observability"
)

type fakeExtractor struct {
	stations []nobil.ChargerStation
	err      error
	calls    int
}

func (f *fakeExtractor) FetchStations(context.Context) ([]nobil.ChargerStation, error) {
	f.calls++
	return f.stations, f.err
}

// fakeTransformer maps station ids to canned outcomes: a station, a silent
// rejection, or a malformed-record error.
type fakeTransformer struct{}

func (fakeTransformer) Transform(_ context.Context, raw nobil.ChargerStation) (*domain.Station, error) {
	switch raw.Data.ID % 3 {
	case 0:
		return nil, fmt.Errorf("station %d: %w", raw.Data.ID, nobil.ErrMalformedCoordinate)
	case 1:
		return &domain.Station{ID: raw.Data.ID, DataSource: "nobil"}, nil
	default:
		return nil, nil
	}
}

type fakeLoader struct {
	batches [][]*domain.Station
	err     error
}

func (f *fakeLoader) LoadBatch(_ context.Context, stations []*domain.Station) error {
	f.batches = append(f.batches, stations)
	return f.err
}

func rawWithID(id int64) nobil.ChargerStation {
	return nobil.ChargerStation{Data: nobil.ChargerStationData{ID: id}}
}

func newTestPipeline(e Extractor, l Loader, snapshot *Snapshot) *Pipeline {
	return New(e, fakeTransformer{}, l, snapshot,
		slog.New(slog.DiscardHandler), observability.NewMetricsForTesting(), time.Hour)
}

func TestPollOnce(t *testing.T) {
	t.Run("partitions records into published, rejected, and corrupt", func(t *testing.T) {
		extractor := &fakeExtractor{stations: []nobil.ChargerStation{
			rawWithID(1), // normalized
			rawWithID(2), // rejected
			rawWithID(3), // malformed
			rawWithID(4), // normalized
		}}
		loader := &fakeLoader{}
		snapshot := NewSnapshot()
		p := newTestPipeline(extractor, loader, snapshot)

		p.pollOnce(context.Background())

		require.Len(t, loader.batches, 1)
		require.Len(t, loader.batches[0], 2)
		assert.Equal(t, int64(1), loader.batches[0][0].ID)
		assert.Equal(t, int64(4), loader.batches[0][1].ID)

		stations, updatedAt := snapshot.All()
		assert.Len(t, stations, 2)
		assert.False(t, updatedAt.IsZero())

		_, ok := snapshot.ByID(4)
		assert.True(t, ok)
		_, ok = snapshot.ByID(2)
		assert.False(t, ok)
	})

	t.Run("fetch failure keeps the previous snapshot", func(t *testing.T) {
		loader := &fakeLoader{}
		snapshot := NewSnapshot()
		snapshot.Replace([]*domain.Station{{ID: 7}})

		p := newTestPipeline(&fakeExtractor{err: errors.New("boom")}, loader, snapshot)
		p.pollOnce(context.Background())

		stations, _ := snapshot.All()
		assert.Len(t, stations, 1)
		assert.Empty(t, loader.batches)
	})

	t.Run("load failure does not mark the pipeline ready", func(t *testing.T) {
		extractor := &fakeExtractor{stations: []nobil.ChargerStation{rawWithID(1)}}
		loader := &fakeLoader{err: errors.New("broker unavailable")}
		p := newTestPipeline(extractor, loader, NewSnapshot())

		p.pollOnce(context.Background())

		assert.Error(t, p.CheckReadiness(context.Background()))
	})
}

func TestCheckReadiness(t *testing.T) {
	extractor := &fakeExtractor{stations: []nobil.ChargerStation{rawWithID(1)}}
	p := newTestPipeline(extractor, &fakeLoader{}, NewSnapshot())

	require.Error(t, p.CheckReadiness(context.Background()))

	p.pollOnce(context.Background())

	assert.NoError(t, p.CheckReadiness(context.Background()))
}

func TestRunStopsOnCancel(t *testing.T) {
	extractor := &fakeExtractor{stations: []nobil.ChargerStation{rawWithID(1)}}
	p := newTestPipeline(extractor, &fakeLoader{}, NewSnapshot())

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	// Run polls once immediately; readiness flips when that cycle lands.
	require.Eventually(t, func() bool {
		return p.CheckReadiness(context.Background()) == nil
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("pipeline did not stop after cancellation")
	}

	assert.Equal(t, 1, extractor.calls)
}

func TestStationTransformer(t *testing.T) {
	tr := NewTransformer("NLOD", nil)

	t.Run("rejects a record with no connectors", func(t *testing.T) {
		st, err := tr.Transform(context.Background(), rawWithID(1))
		require.NoError(t, err)
		assert.Nil(t, st)
	})

	t.Run("normalizes a complete record", func(t *testing.T) {
		raw := nobil.ChargerStation{
			Data: nobil.ChargerStationData{
				ID:       189,
				Name:     "Ullevaal Stadion",
				Position: "(59.9433, 10.7351)",
				LandCode: "NOR",
			},
			Attributes: nobil.StationAttributes{
				Connectors: map[string]map[string]nobil.Attribute{
					"1": {"4": {AttrValID: "39"}, "5": {AttrValID: "13"}},
				},
			},
		}

		st, err := tr.Transform(context.Background(), raw)

		require.NoError(t, err)
		require.NotNil(t, st)
		assert.Equal(t, "NLOD", st.DataLicense)
		assert.Equal(t, domain.CCS, st.Connectors[0].Type)
	})
}

func TestSnapshotReplace(t *testing.T) {
	s := NewSnapshot()

	stations, updatedAt := s.All()
	assert.Empty(t, stations)
	assert.True(t, updatedAt.IsZero())

	s.Replace([]*domain.Station{{ID: 1}, {ID: 2}})
	s.Replace([]*domain.Station{{ID: 3}})

	stations, updatedAt = s.All()
	require.Len(t, stations, 1)
	assert.False(t, updatedAt.IsZero())

	_, ok := s.ByID(1)
	assert.False(t, ok)
	st, ok := s.ByID(3)
	require.True(t, ok)
	assert.Equal(t, int64(3), st.ID)
}
