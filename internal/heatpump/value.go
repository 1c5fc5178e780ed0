package heatpump

import "fmt"

// Unit describes how a raw controller integer is interpreted for display.
type Unit int

const (
	UnitNone    Unit = iota // raw integer, no scaling
	UnitCelsius             // tenths of a degree Celsius
	UnitKelvin              // tenths of a Kelvin (temperature deltas)
	UnitPercent             // tenths of a percent
	UnitKW                  // tenths of a kilowatt
	UnitEnum                // raw integer selecting an operating mode
	UnitBool                // 0 or 1
	UnitHours               // raw seconds, displayed as hours
)

// String returns the display suffix for the unit
func (u Unit) String() string {
	switch u {
	case UnitCelsius:
		return "°C"
	case UnitKelvin:
		return "K"
	case UnitPercent:
		return "%"
	case UnitKW:
		return "kW"
	case UnitHours:
		return "h"
	default:
		return ""
	}
}

// MarshalText renders the unit as its display suffix in JSON and YAML.
func (u Unit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// scale converts a raw controller integer to its display value.
func (u Unit) scale(raw int32) float64 {
	switch u {
	case UnitCelsius, UnitKelvin, UnitPercent, UnitKW:
		return float64(raw) / 10
	case UnitHours:
		return float64(raw) / 3600
	default:
		return float64(raw)
	}
}

// entry describes one well-known controller index.
type entry struct {
	Name      string
	Unit      Unit
	Writeable bool // parameter may be written at all
	Safe      bool // parameter may be written in safe mode
}

// Value is one decoded element of a parameter or calculation vector.
type Value struct {
	Index  int     `json:"index"`
	Name   string  `json:"name"`
	Raw    int32   `json:"raw"`
	Scaled float64 `json:"value"`
	Unit   Unit    `json:"unit,omitempty"`
}

// String returns a human-readable representation of the value
func (v Value) String() string {
	if suffix := v.Unit.String(); suffix != "" {
		return fmt.Sprintf("%s = %.1f %s", v.Name, v.Scaled, suffix)
	}
	return fmt.Sprintf("%s = %d", v.Name, v.Raw)
}
