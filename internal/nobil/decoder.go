package nobil

import "github.com/robho/nobil-etl-service/internal/domain"

// DecodeConnector converts one raw connector attribute map into a canonical
// connector. The second return is false when the entry describes a physical
// outlet that is not an EV connector (hydrogen, biogas) and must be dropped.
//
// Unknown or missing attribute keys degrade to defaults: unspecified type,
// unknown power, no electrical characteristics. The count is always 1; Nobil
// models multiplicity as repeated connector entries.
func DecodeConnector(attrs map[string]Attribute) (domain.Connector, bool) {
	isFixedCable := attrs[attrFixedCable].Trans == "Yes"

	var typ string
	if kind, ok := connectorKinds[attrs[attrConnectorKind].AttrValID]; ok {
		if kind.reject {
			return domain.Connector{}, false
		}
		typ = kind.typ
		if kind.fixedCableSplit {
			if isFixedCable {
				typ = domain.Type2Plug
			} else {
				typ = domain.Type2Socket
			}
		}
	}

	var power *float64
	if p, ok := powerClasses[attrs[attrPowerClass].AttrValID]; ok && p != nil {
		v := *p
		power = &v
	}

	var voltage, current *float64
	if f, ok := attrs[attrVoltage].Value.Float(); ok {
		voltage = &f
	}
	if f, ok := attrs[attrCurrent].Value.Float(); ok {
		current = &f
	}

	var evseIDs []string
	if id, ok := attrs[attrEvseID].Value.String(); ok {
		evseIDs = []string{id}
	}

	return domain.Connector{
		Type:    typ,
		Power:   power,
		Count:   1,
		Current: current,
		Voltage: voltage,
		EvseIDs: evseIDs,
	}, true
}
