package domain

import "fmt"

// Canonical connector type tags. An empty type means the provider did not
// specify one.
const (
	Type1             = "Type 1"
	Type2Socket       = "Type 2 socket"
	Type2Plug         = "Type 2 plug"
	CCS               = "CCS"
	CHAdeMO           = "CHAdeMO"
	Schuko            = "Schuko"
	TeslaSupercharger = "Tesla Supercharger"
)

// FastChargeThreshold is the power (kW) from which a connector counts as
// fast charging.
const FastChargeThreshold = 43.0

// Connector is one variant of physical charging outlet at a station.
//
// Power is nil when the provider's power class carries no numeric rating
// (gas pressure classes, for example). Such connectors stay valid but are
// skipped whenever a consumer filters or sorts by minimum power.
//
// EvseIDs holds one external identifier per physical unit; an empty entry
// means the identifier for that unit is unknown. The list is dropped by
// [MergeConnectors] and only consulted on the unmerged connector list.
type Connector struct {
	Type    string   `json:"type,omitempty"`
	Power   *float64 `json:"power,omitempty"` // kW
	Count   int      `json:"count"`
	Current *float64 `json:"current,omitempty"` // A
	Voltage *float64 `json:"voltage,omitempty"` // V
	EvseIDs []string `json:"evse_ids,omitempty"`
}

// FormatPower renders the power rating, without decimals when integral:
// "50 kW", "62.5 kW", or "" when the power is unknown.
func (c Connector) FormatPower() string {
	if c.Power == nil {
		return ""
	}
	p := *c.Power
	if p == float64(int64(p)) {
		return fmt.Sprintf("%.0f kW", p)
	}
	return fmt.Sprintf("%.1f kW", p)
}

// variantKey identifies a (type, power) connector variant. Unknown power is
// a distinct variant from any numeric value.
type variantKey struct {
	typ      string
	power    float64
	hasPower bool
}

func keyOf(c Connector) variantKey {
	k := variantKey{typ: c.Type}
	if c.Power != nil {
		k.power = *c.Power
		k.hasPower = true
	}
	return k
}

// MergeConnectors collapses connectors into (type, power) variants in
// first-seen order, summing counts. Per-unit identifiers and electrical
// characteristics are dropped from the merged view.
func MergeConnectors(connectors []Connector) []Connector {
	var order []variantKey
	counts := make(map[variantKey]int)
	powers := make(map[variantKey]*float64)

	for _, c := range connectors {
		k := keyOf(c)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
			powers[k] = c.Power
		}
		counts[k] += c.Count
	}

	merged := make([]Connector, 0, len(order))
	for _, k := range order {
		merged = append(merged, Connector{
			Type:  k.typ,
			Power: powers[k],
			Count: counts[k],
		})
	}
	return merged
}

// IsMultiPlug reports whether any connector type offers more than one plug,
// counted within the fastest charging tier: when the maximum known power
// among the considered connectors is at least [FastChargeThreshold], slower
// connectors (including those with unknown power) are excluded first.
// An optional type filter restricts which connectors are considered.
func IsMultiPlug(connectors []Connector, types map[string]bool) bool {
	merged := filterByType(MergeConnectors(connectors), types)

	if maxPower(connectors, types) >= FastChargeThreshold {
		fast := merged[:0]
		for _, c := range merged {
			if c.Power != nil && *c.Power >= FastChargeThreshold {
				fast = append(fast, c)
			}
		}
		merged = fast
	}

	perType := make(map[string]int)
	for _, c := range merged {
		perType[c.Type] += c.Count
	}
	for _, n := range perType {
		if n > 1 {
			return true
		}
	}
	return false
}

func filterByType(connectors []Connector, types map[string]bool) []Connector {
	if types == nil {
		return connectors
	}
	out := make([]Connector, 0, len(connectors))
	for _, c := range connectors {
		if types[c.Type] {
			out = append(out, c)
		}
	}
	return out
}

func maxPower(connectors []Connector, types map[string]bool) float64 {
	best := 0.0
	for _, c := range filterByType(connectors, types) {
		if c.Power != nil && *c.Power > best {
			best = *c.Power
		}
	}
	return best
}
