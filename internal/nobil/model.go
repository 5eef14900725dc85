package nobil

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// dateTimeLayout is the local-datetime format used by Nobil for Created and
// Updated timestamps.
const dateTimeLayout = "2006-01-02 15:04:05"

// DateTime wraps a timestamp encoded as "YYYY-MM-DD HH:MM:SS" without a zone.
// An empty string decodes to the zero time.
type DateTime struct {
	time.Time
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parse datetime: %w", err)
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateTimeLayout, s)
	if err != nil {
		return fmt.Errorf("parse datetime %q: %w", s, err)
	}
	d.Time = t
	return nil
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(d.Format(dateTimeLayout))
}

// ResponseData is the envelope of a Nobil search response.
type ResponseData struct {
	Error           string           `json:"error,omitempty"`
	Provider        string           `json:"Provider,omitempty"`
	Rights          string           `json:"Rights,omitempty"`
	APIVersion      string           `json:"apiver,omitempty"`
	ChargerStations []ChargerStation `json:"chargerstations,omitempty"`
}

// ChargerStation is one raw station record: metadata plus attribute maps.
type ChargerStation struct {
	Data       ChargerStationData `json:"csmd"`
	Attributes StationAttributes  `json:"attr"`
}

// ChargerStationData is the "csmd" metadata block of a raw station record.
// Position is kept as the raw "(lat, long)" text; the normalizer parses it
// so that a malformed coordinate fails that station, not the whole response.
type ChargerStationData struct {
	ID                   int64    `json:"id"`
	Name                 string   `json:"name"`
	OcpiID               *string  `json:"ocpidb_mapping_stasjon_id"`
	Street               *string  `json:"Street"`
	HouseNumber          string   `json:"House_number"`
	Zipcode              *string  `json:"Zipcode"`
	City                 *string  `json:"City"`
	MunicipalityID       string   `json:"Municipality_ID"`
	Municipality         string   `json:"Municipality"`
	CountyID             string   `json:"County_ID"`
	County               string   `json:"County"`
	Description          *string  `json:"Description_of_location"`
	Owner                *string  `json:"Owned_by"`
	Operator             *string  `json:"Operator"`
	NumChargePoints      int      `json:"Number_charging_points"`
	Position             string   `json:"Position"`
	Image                string   `json:"Image"`
	AvailableChargePoints int     `json:"Available_charging_points"`
	UserComment          *string  `json:"User_comment"`
	ContactInfo          *string  `json:"Contact_info"`
	Created              DateTime `json:"Created"`
	Updated              DateTime `json:"Updated"`
	StationStatus        int      `json:"Station_status"`
	LandCode             string   `json:"Land_code"`
	InternationalID      string   `json:"International_id"`
}

// StationAttributes groups the numerically-keyed attribute maps: "st" for
// station-level attributes and "conn" for one map per connector entry.
type StationAttributes struct {
	Station    map[string]Attribute            `json:"st"`
	Connectors map[string]map[string]Attribute `json:"conn"`
}

// Attribute is one coded attribute value. AttrValID carries the numeric
// value code, Trans its English translation, and Value the loosely-typed
// payload.
type Attribute struct {
	AttrTypeID string    `json:"attrtypeid"`
	AttrName   string    `json:"attrname"`
	AttrValID  string    `json:"attrvalid"`
	Trans      string    `json:"trans"`
	Value      AttrValue `json:"attrval"`
}

// SentinelNoImage is Nobil's placeholder filename for stations without a
// photo.
const SentinelNoImage = "no.image.svg"

// Search request shapes. All searches share the action/format/apiversion
// constants and are submitted as form fields.

// RectangleSearch asks for all stations inside a bounding box. Corners are
// "(lat, long)" encoded.
type RectangleSearch struct {
	APIKey    string
	NorthEast string
	SouthWest string
	Limit     int
}

// RadiusSearch asks for stations around a point, distance in meters.
type RadiusSearch struct {
	APIKey   string
	Lat      float64
	Long     float64
	Distance float64
	Limit    int
}

// DetailSearch asks for a single station by its international id.
type DetailSearch struct {
	APIKey string
	ID     string
}

// errorField returns the response error, tolerating the empty envelope.
func (r *ResponseData) errorField() string {
	return strings.TrimSpace(r.Error)
}

// Err returns a non-nil error when the provider reported one in the
// response envelope.
func (r *ResponseData) Err() error {
	if msg := r.errorField(); msg != "" {
		return fmt.Errorf("nobil api error: %s", msg)
	}
	return nil
}
