package nobil

import "github.com/robho/nobil-etl-service/internal/domain"

// Static lookup tables for Nobil's numeric attribute-value codes, per
// https://nobil.no/admin/attributes.php. All tables are read-only after
// process start and safe for unsynchronized concurrent reads.

// Attribute type keys used by the decoder and normalizer.
const (
	attrConnectorKind = "4"
	attrPowerClass    = "5"
	attrParkingFee    = "7"
	attrVoltage       = "12"
	attrOpen24h       = "24"
	attrFixedCable    = "25"
	attrEvseID        = "28"
	attrCurrent       = "31"
)

// connectorKind is the decode outcome for one connector-kind code.
type connectorKind struct {
	typ string
	// fixedCableSplit marks the generic Type 2 code that is disambiguated
	// by the fixed-cable flag into plug and socket variants.
	fixedCableSplit bool
	// reject marks physical outlets that are not EV connectors and must be
	// dropped from the station's connector list.
	reject bool
}

// connectorKinds maps Nobil connector-kind value codes (attribute 4) to
// canonical connector types. Codes outside the table decode as unspecified.
var connectorKinds = map[string]connectorKind{
	"0":  {typ: ""},                      // Unspecified
	"30": {typ: domain.CHAdeMO},          // CHAdeMO
	"31": {typ: domain.Type1},            // Type 1
	"32": {fixedCableSplit: true},        // Type 2: plug or socket by fixed-cable flag
	"39": {typ: domain.CCS},              // CCS/Combo
	"40": {typ: domain.TeslaSupercharger}, // Tesla Connector Model
	"50": {typ: domain.Schuko},           // Type 2 + Schuko
	"60": {typ: domain.CCS},              // Type1/Type2
	"70": {reject: true},                 // Hydrogen
	"82": {reject: true},                 // Biogas
}

// powerClasses maps Nobil charging-capacity value codes (attribute 5) to a
// power rating in kW. Codes listed with a nil value are valid connectors
// without a numeric power (gas pressure classes and similar); codes outside
// the table also decode to unknown power.
var powerClasses = map[string]*float64{
	"7":  kw(3.6),   // 3,6 kW - 230V 1-phase max 16A
	"8":  kw(7.4),   // 7,4 kW - 230V 1-phase max 32A
	"10": kw(11),    // 11 kW - 400V 3-phase max 16A
	"11": kw(22),    // 22 kW - 400V 3-phase max 32A
	"12": kw(43),    // 43 kW - 400V 3-phase max 63A
	"13": kw(50),    // 50 kW - 500VDC max 100A
	"16": kw(11),    // 230V 3-phase max 16A
	"17": kw(22),    // 230V 3-phase max 32A
	"18": kw(43),    // 230V 3-phase max 63A
	"19": kw(20),    // 20 kW - 500VDC max 50A
	"22": kw(135),   // 135 kW DC
	"23": kw(100),   // 100 kW - 500VDC max 200A
	"24": kw(150),   // 150 kW DC
	"25": kw(350),   // 350 kW DC
	"26": nil,       // 350 bar
	"27": nil,       // 700 bar
	"29": kw(75),    // 75 kW DC
	"30": kw(225),   // 225 kW DC
	"31": kw(250),   // 250 kW DC
	"32": kw(200),   // 200 kW DC
	"33": kw(300),   // 300 kW DC
	"34": nil,       // CBG
	"35": nil,       // LBG
	"36": kw(400),   // 400 kW DC
	"37": kw(30),    // 30 kW DC
	"38": kw(62.5),  // 62,5 kW DC
	"39": kw(500),   // 500 kW DC
	"41": kw(175),   // 175 kW DC
}

func kw(v float64) *float64 { return &v }

// countries maps Nobil's 3-letter land codes to country names. The table is
// closed: unsupported codes map to an empty name, never an error.
var countries = map[string]string{
	"DAN": "Denmark",
	"FIN": "Finland",
	"ISL": "Iceland",
	"NOR": "Norway",
	"SWE": "Sweden",
}

// CountryName resolves a Nobil land code to a country name, or "" for codes
// outside the table.
func CountryName(landCode string) string {
	return countries[landCode]
}

// LandCode reverses the country table, resolving a country name back to its
// Nobil land code. The availability detector uses it to build composite
// station ids; a miss means no valid query can be constructed.
func LandCode(country string) (string, bool) {
	for code, name := range countries {
		if name == country {
			return code, true
		}
	}
	return "", false
}
