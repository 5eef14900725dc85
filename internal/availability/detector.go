// Package availability reconciles live per-connector status against a
// station's persisted connector identifiers.
package availability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/robho/nobil-etl-service/internal/domain"
	"github.com/robho/nobil-etl-service/internal/nobil"
)

// ErrUnsupportedCountry means no live-status query can be constructed for
// the station because its country is outside the provider's coverage. It is
// a detector-level failure, distinct from network failure, and is raised
// before any network I/O.
var ErrUnsupportedCountry = errors.New("no candidates found")

// attribution is the provider label attached to every poll result.
const attribution = "Nobil"

// placeholderEvseID stands in for units whose external identifier is
// unknown. It never matches a status row, so such units report UNKNOWN.
const placeholderEvseID = "??"

// StatusRow is one live-status record for a single physical unit.
type StatusRow struct {
	EvseID    string
	Status    string
	Timestamp int64 // epoch seconds of the last status change
}

// StatusSource fetches live status rows for a composite station id. Rows
// come back in no guaranteed order and need not cover every connector.
type StatusSource interface {
	StationStatus(ctx context.Context, compositeID string) ([]StatusRow, error)
}

// Detector polls live availability for normalized stations. It is stateless
// between calls and safe for concurrent use; retry, backoff, and caching are
// the caller's concern.
type Detector struct {
	source StatusSource
	logger *slog.Logger
}

// NewDetector creates a Detector backed by the given status source.
func NewDetector(source StatusSource, logger *slog.Logger) *Detector {
	return &Detector{source: source, logger: logger}
}

// Supports reports whether live status can be resolved for the station:
// it must originate from Nobil and at least one connector must carry
// external identifiers, since those are what status rows are matched
// against. Nobil's own "Real-time information" attribute is not reliable
// and is deliberately ignored.
func (d *Detector) Supports(st *domain.Station) bool {
	if st.DataSource != nobil.DataSource {
		return false
	}
	for _, c := range st.Connectors {
		if len(c.EvseIDs) > 0 {
			return true
		}
	}
	return false
}

// CompositeID derives the provider's live-status lookup key for a station:
// the 3-letter land code reversed from the stored country name, plus the
// zero-padded numeric station id.
func CompositeID(st *domain.Station) (string, error) {
	code, ok := nobil.LandCode(st.Address.Country)
	if !ok {
		return "", fmt.Errorf("%w: country %q", ErrUnsupportedCountry, st.Address.Country)
	}
	return fmt.Sprintf("%s_%05d", code, st.ID), nil
}

// Fetch queries live status for the station and maps every physical unit to
// a canonical availability state. Units without a matching status row report
// [domain.StatusUnknown] with no last-change instant.
func (d *Detector) Fetch(ctx context.Context, st *domain.Station) (*domain.StationAvailability, error) {
	id, err := CompositeID(st)
	if err != nil {
		return nil, err
	}

	rows, err := d.source.StationStatus(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch status for %s: %w", id, err)
	}

	byEvseID := make(map[string]StatusRow, len(rows))
	for _, row := range rows {
		byEvseID[row.EvseID] = row
	}

	merged := st.ConnectorsMerged()
	groups := make([]domain.GroupAvailability, 0, len(merged))
	for _, group := range merged {
		ids := groupEvseIDs(st.Connectors, group)

		g := domain.GroupAvailability{
			Connector:  group,
			Statuses:   make([]domain.Status, len(ids)),
			EvseIDs:    ids,
			LastChange: make([]*time.Time, len(ids)),
		}
		for i, evseID := range ids {
			row, ok := byEvseID[evseID]
			if !ok {
				g.Statuses[i] = domain.StatusUnknown
				continue
			}
			g.Statuses[i] = domain.MapStatus(row.Status)
			t := time.Unix(row.Timestamp, 0).UTC()
			g.LastChange[i] = &t
		}
		groups = append(groups, g)
	}

	return &domain.StationAvailability{
		Groups:      groups,
		Attribution: attribution,
	}, nil
}

// groupEvseIDs collects the per-unit external identifiers of all unmerged
// connectors belonging to a merged (type, power) group, ordered by
// identifier. Unknown identifiers become the placeholder marker.
//
// The declared unit count of a group and the length of its identifier list
// are assumed equal; when they diverge the identifier list wins, since only
// identified units can be correlated with status rows.
func groupEvseIDs(connectors []domain.Connector, group domain.Connector) []string {
	var ids []string
	for _, c := range connectors {
		if !sameVariant(c, group) {
			continue
		}
		for _, id := range c.EvseIDs {
			if id == "" {
				id = placeholderEvseID
			}
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func sameVariant(a, b domain.Connector) bool {
	if a.Type != b.Type {
		return false
	}
	if (a.Power == nil) != (b.Power == nil) {
		return false
	}
	return a.Power == nil || *a.Power == *b.Power
}
