package nobil

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/robho/nobil-etl-service/internal/domain"
)

// DataSource tags stations normalized from Nobil records.
const DataSource = "nobil"

const (
	reportURL  = "https://nobil.no"
	contactMail = "post@nobil.no"
	// Sweden has its own registration web form instead of the shared
	// contact mailbox.
	swedenContactURL = "https://www.energimyndigheten.se/klimat/transporter/laddinfrastruktur/registrera-din-laddstation/elbilsagare/"
)

// freshnessWindow is how recently a record must have been updated to count
// as verified without a foreign operator-network id.
const freshnessWindowMonths = 6

// Filters are search-time predicates applied during normalization. The zero
// value applies no filtering.
type Filters struct {
	// MinPower and MinConnectors reject stations with fewer than
	// MinConnectors connectors of at least MinPower kW. Connectors with
	// unknown power never count toward the threshold.
	MinPower      float64
	MinConnectors int

	// FreeParking rejects stations without known-free parking.
	FreeParking bool

	// Open247 rejects stations not marked as always open.
	Open247 bool
}

// Normalize converts one raw station record into a canonical station.
//
// A nil station with a nil error means the record is not representable (no
// supported connectors, or excluded by filters); this is an expected,
// frequent outcome and not an error. A non-nil error means the record is
// corrupt (malformed coordinate text) and must not be silently dropped.
func Normalize(raw ChargerStation, license string, filters *Filters) (*domain.Station, error) {
	var connectors []domain.Connector
	for _, key := range sortedKeys(raw.Attributes.Connectors) {
		if c, ok := DecodeConnector(raw.Attributes.Connectors[key]); ok {
			connectors = append(connectors, c)
		}
	}
	if len(connectors) == 0 {
		return nil, nil
	}

	if filters != nil && filters.MinConnectors > 0 {
		matching := 0
		for _, c := range connectors {
			if c.Power != nil && *c.Power >= filters.MinPower {
				matching++
			}
		}
		if matching < filters.MinConnectors {
			return nil, nil
		}
	}

	coord, err := ParseCoordinate(raw.Data.Position)
	if err != nil {
		return nil, fmt.Errorf("station %d: %w", raw.Data.ID, err)
	}

	st := &domain.Station{
		ID:          raw.Data.ID,
		DataSource:  DataSource,
		Name:        cleanHTML(raw.Data.Name),
		Coordinates: coord,
		Address: domain.Address{
			City:     deref(raw.Data.City),
			Country:  CountryName(raw.Data.LandCode),
			Postcode: deref(raw.Data.Zipcode),
			Street:   joinNonEmpty(" ", deref(raw.Data.Street), raw.Data.HouseNumber),
		},
		Connectors: connectors,
		URL:        reportURL,
		ContactURL: contactURL(raw.Data.LandCode, raw.Data.InternationalID),
		Verified: raw.Data.OcpiID != nil ||
			raw.Data.Updated.After(clock.Now().AddDate(0, -freshnessWindowMonths, 0)),
		Operator:            cleanHTMLPtr(raw.Data.Operator),
		GeneralInformation:  cleanHTMLPtr(raw.Data.UserComment),
		LocationDescription: cleanHTMLPtr(raw.Data.Description),
		Photos:              photos(raw.Data.Image),
		OpeningHours:        openingHours(raw.Attributes.Station),
		Cost:                cost(raw.Attributes.Station),
		DataLicense:         license,
		ProcessedAt:         clock.Now(),
	}

	if filters != nil {
		if filters.FreeParking && (st.Cost == nil || !st.Cost.Freeparking) {
			return nil, nil
		}
		if filters.Open247 && (st.OpeningHours == nil || !st.OpeningHours.TwentyfourSeven) {
			return nil, nil
		}
	}

	return st, nil
}

// contactURL picks the station's contact channel: Sweden's registration web
// form, or the shared mailbox with the international id encoded into the
// subject line.
func contactURL(landCode, internationalID string) string {
	if landCode == "SWE" {
		return swedenContactURL
	}
	subject := url.QueryEscape("Regarding charging station " + internationalID)
	subject = strings.ReplaceAll(subject, "+", "%20")
	return "mailto:" + contactMail + "?subject=" + subject
}

func photos(image string) []domain.ChargerPhoto {
	if image == SentinelNoImage || image == "" {
		return nil
	}
	return []domain.ChargerPhoto{NewPhoto(image)}
}

// openingHours maps station attribute 24 ("Open 24h"). Nobil publishes no
// weekly schedule, so the day-by-day form is never produced here.
func openingHours(attrs map[string]Attribute) *domain.OpeningHours {
	if attrs[attrOpen24h].Trans == "Yes" {
		return &domain.OpeningHours{TwentyfourSeven: true}
	}
	return nil
}

// cost maps station attribute 7 ("Parking fee"); no other cost information
// is derivable from Nobil.
func cost(attrs map[string]Attribute) *domain.Cost {
	switch attrs[attrParkingFee].Trans {
	case "Yes":
		return &domain.Cost{Freeparking: false}
	case "No":
		return &domain.Cost{Freeparking: true}
	default:
		return nil
	}
}

// sortedKeys returns connector entry keys in stable numeric-ish order so
// repeated normalizations of the same record produce identical connector
// lists.
func sortedKeys(m map[string]map[string]Attribute) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
