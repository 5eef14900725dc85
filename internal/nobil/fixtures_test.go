package nobil

import "time"

// Test fixture helpers shared by the decoder and normalizer tests.

func attr(valID, trans string) Attribute {
	return Attribute{AttrValID: valID, Trans: trans}
}

func attrStringVal(s string) Attribute {
	return Attribute{Value: StringValue(s)}
}

// connAttrs builds a raw connector attribute map with the given kind and
// power codes plus any extra attributes keyed by attribute type id.
func connAttrs(kindCode, powerCode string, extra map[string]Attribute) map[string]Attribute {
	attrs := map[string]Attribute{}
	if kindCode != "" {
		attrs[attrConnectorKind] = attr(kindCode, "")
	}
	if powerCode != "" {
		attrs[attrPowerClass] = attr(powerCode, "")
	}
	for k, v := range extra {
		attrs[k] = v
	}
	return attrs
}

// rawStation builds a minimal valid raw record with the given connector
// attribute maps, numbered in insertion order.
func rawStation(connectors ...map[string]Attribute) ChargerStation {
	conn := make(map[string]map[string]Attribute, len(connectors))
	for i, attrs := range connectors {
		conn[string(rune('1'+i))] = attrs
	}
	return ChargerStation{
		Data: ChargerStationData{
			ID:              189,
			Name:            "Ullevaal Stadion",
			HouseNumber:     "75",
			Position:        "(59.9433, 10.7351)",
			Image:           SentinelNoImage,
			LandCode:        "NOR",
			InternationalID: "NOR_00189",
			Created:         DateTime{time.Date(2010, 2, 1, 12, 0, 0, 0, time.UTC)},
			Updated:         DateTime{time.Date(2010, 2, 1, 12, 0, 0, 0, time.UTC)},
		},
		Attributes: StationAttributes{
			Station:    map[string]Attribute{},
			Connectors: conn,
		},
	}
}

func strPtr(s string) *string { return &s }
