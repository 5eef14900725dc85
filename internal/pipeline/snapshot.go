package pipeline

import (
	"sync"
	"time"

	"github.com/robho/nobil-etl-service/internal/domain"
)

// Snapshot holds the most recent normalized station list for the read API.
// It is replaced wholesale after each successful poll cycle; readers never
// see a partially updated list.
type Snapshot struct {
	mu        sync.RWMutex
	stations  []*domain.Station
	byID      map[int64]*domain.Station
	updatedAt time.Time
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{byID: make(map[int64]*domain.Station)}
}

// Replace swaps in a new station list.
func (s *Snapshot) Replace(stations []*domain.Station) {
	byID := make(map[int64]*domain.Station, len(stations))
	for _, st := range stations {
		byID[st.ID] = st
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stations = stations
	s.byID = byID
	s.updatedAt = time.Now()
}

// All returns the current station list and when it was produced. The
// returned slice must not be modified.
func (s *Snapshot) All() ([]*domain.Station, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stations, s.updatedAt
}

// ByID looks up one station by its numeric id.
func (s *Snapshot) ByID(id int64) (*domain.Station, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.byID[id]
	return st, ok
}
