package domain

import (
	"fmt"
	"strings"
	"time"
)

// Coordinate is a WGS-84 latitude/longitude pair in floating point degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// FormatDecimal renders the coordinate with six decimal places.
func (c Coordinate) FormatDecimal() string {
	return fmt.Sprintf("%.6f, %.6f", c.Lat, c.Lng)
}

// Address is a postal address. All fields are optional; providers rarely
// deliver a complete set.
type Address struct {
	City     string `json:"city,omitempty"`
	Country  string `json:"country,omitempty"`
	Postcode string `json:"postcode,omitempty"`
	Street   string `json:"street,omitempty"`
}

// FaultReport describes a user-submitted defect report for a station.
type FaultReport struct {
	Created     *time.Time `json:"created,omitempty"`
	Description string     `json:"description,omitempty"`
}

// OpeningHours describes when a station is accessible. TwentyfourSeven set
// means always open; Days carries a weekly schedule when one is known.
// Both unset means the hours are unknown.
type OpeningHours struct {
	TwentyfourSeven bool       `json:"twentyfour_seven"`
	Description     string     `json:"description,omitempty"`
	Days            *WeekHours `json:"days,omitempty"`
}

// WeekHours holds one start/end pair per weekday plus a holiday slot.
type WeekHours struct {
	Monday    Hours `json:"monday"`
	Tuesday   Hours `json:"tuesday"`
	Wednesday Hours `json:"wednesday"`
	Thursday  Hours `json:"thursday"`
	Friday    Hours `json:"friday"`
	Saturday  Hours `json:"saturday"`
	Sunday    Hours `json:"sunday"`
	Holiday   Hours `json:"holiday"`
}

// Hours is a daily opening interval. Nil start or end means closed.
type Hours struct {
	Start *string `json:"start,omitempty"` // "HH:MM"
	End   *string `json:"end,omitempty"`
}

// Cost describes the pricing situation at a station.
type Cost struct {
	Freecharging     bool   `json:"freecharging"`
	Freeparking      bool   `json:"freeparking"`
	DescriptionShort string `json:"description_short,omitempty"`
	DescriptionLong  string `json:"description_long,omitempty"`
}

// Station is the canonical charging-station entity, immutable once built.
type Station struct {
	ID          int64      `json:"id"`
	DataSource  string     `json:"data_source"`
	Name        string     `json:"name"`
	Coordinates Coordinate `json:"coordinates"`
	Address     Address    `json:"address"`

	// Connectors is never empty; the normalizer rejects records that
	// decode to zero usable connectors.
	Connectors []Connector `json:"connectors"`

	Network     string        `json:"network,omitempty"`
	URL         string        `json:"url,omitempty"`
	ContactURL  string        `json:"contact_url,omitempty"`
	FaultReport *FaultReport  `json:"fault_report,omitempty"`
	Verified    bool          `json:"verified"`
	BarrierFree *bool         `json:"barrier_free,omitempty"`

	Operator            string `json:"operator,omitempty"`
	GeneralInformation  string `json:"general_information,omitempty"`
	Amenities           string `json:"amenities,omitempty"`
	LocationDescription string `json:"location_description,omitempty"`

	Photos       []ChargerPhoto `json:"-"`
	OpeningHours *OpeningHours  `json:"opening_hours,omitempty"`
	Cost         *Cost          `json:"cost,omitempty"`

	DataLicense string    `json:"data_license,omitempty"`
	ProcessedAt time.Time `json:"processed_at"`
}

// ConnectorsMerged returns the station's connectors collapsed into
// (type, power) variants with summed counts.
func (s *Station) ConnectorsMerged() []Connector {
	return MergeConnectors(s.Connectors)
}

// MaxPower returns the maximum known power among the station's connectors,
// optionally restricted to a set of connector types. Connectors with unknown
// power contribute nothing.
func (s *Station) MaxPower(types map[string]bool) float64 {
	return maxPower(s.Connectors, types)
}

// TotalConnectors is the number of physical charging units at the station.
func (s *Station) TotalConnectors() int {
	total := 0
	for _, c := range s.Connectors {
		total += c.Count
	}
	return total
}

// IsMultiPlug reports whether the station offers more than one plug of any
// connector type within its fastest charging tier.
func (s *Station) IsMultiPlug(types map[string]bool) bool {
	return IsMultiPlug(s.Connectors, types)
}

// FormatConnectors renders the merged connector list for display,
// e.g. "2 × CCS 50 kW · 1 × Type 2 socket 22 kW".
func (s *Station) FormatConnectors() string {
	merged := s.ConnectorsMerged()
	parts := make([]string, len(merged))
	for i, c := range merged {
		parts[i] = fmt.Sprintf("%d × %s", c.Count, strings.TrimSpace(c.Type+" "+c.FormatPower()))
	}
	return strings.Join(parts, " · ")
}
