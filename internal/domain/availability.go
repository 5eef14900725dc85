package domain

import "time"

// Status is the canonical availability state of a single charging unit.
// It is re-derived on every poll; there are no terminal states.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusOccupied  Status = "OCCUPIED"
	StatusCharging  Status = "CHARGING"
	StatusFaulted   Status = "FAULTED"
	StatusUnknown   Status = "UNKNOWN"
)

// statusTokens maps provider status tokens to canonical states. Matching is
// exact; tokens are not case-folded.
var statusTokens = map[string]Status{
	"AVAILABLE":   StatusAvailable,
	"BLOCKED":     StatusOccupied,
	"CHARGING":    StatusCharging,
	"INOPERATIVE": StatusFaulted,
	"OUTOFORDER":  StatusFaulted,
	"PLANNED":     StatusFaulted,
	"REMOVED":     StatusFaulted,
	"RESERVED":    StatusOccupied,
	"UNKNOWN":     StatusUnknown,
}

// MapStatus translates a provider status token into a canonical [Status].
// Unrecognized tokens map to [StatusUnknown], never an error.
func MapStatus(token string) Status {
	if s, ok := statusTokens[token]; ok {
		return s
	}
	return StatusUnknown
}

// GroupAvailability is the live status of one merged connector group.
// Statuses, EvseIDs, and LastChange are parallel slices, one entry per
// physical unit, ordered by the unit's external identifier.
type GroupAvailability struct {
	Connector  Connector    `json:"connector"` // merged (type, power, count)
	Statuses   []Status     `json:"statuses"`
	EvseIDs    []string     `json:"evse_ids"` // "??" for units with unknown identifier
	LastChange []*time.Time `json:"last_change"`
}

// StationAvailability is a transient per-station poll result. It has no
// persisted identity and is keyed implicitly by the station it was computed
// for.
type StationAvailability struct {
	Groups      []GroupAvailability `json:"groups"`
	Attribution string              `json:"attribution"`
}
