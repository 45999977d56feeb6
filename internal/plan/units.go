package plan

import "strings"

// Canonical wire unit strings. These exact values are part of the persisted
// contract.
const (
	WireMinutes = "minutes"
	WireSeconds = "seconds"
	WireHours   = "hours"

	WireMeters     = "meters"
	WireKilometers = "kilometers"
)

// Builder-side duration abbreviations map to the wire long forms. Singular
// and plural spellings are accepted because older builder versions sent both.
var wireDurationUnits = map[string]string{
	"min":     WireMinutes,
	"mins":    WireMinutes,
	"minute":  WireMinutes,
	"minutes": WireMinutes,
	"sec":     WireSeconds,
	"secs":    WireSeconds,
	"second":  WireSeconds,
	"seconds": WireSeconds,
	"hour":    WireHours,
	"hours":   WireHours,
}

// The builder only offers min/sec, so hours collapse to min on the way back.
// Lossy, but hours never originate from the builder in the first place.
var uiDurationUnits = map[string]string{
	WireMinutes: "min",
	WireSeconds: "sec",
	WireHours:   "min",
}

var wireDistanceUnits = map[string]string{
	"m":          WireMeters,
	"meter":      WireMeters,
	"meters":     WireMeters,
	"km":         WireKilometers,
	"k":          WireKilometers,
	"kilometer":  WireKilometers,
	"kilometers": WireKilometers,
}

var uiDistanceUnits = map[string]string{
	WireMeters:     "m",
	WireKilometers: "km",
}

// Intensity zone identifiers: the builder uses descriptive tokens, the wire
// record short codes.
var wireZones = map[string]string{
	"heart_rate": "HR",
	"mas":        "MAS",
	"fpp":        "FPP",
	"css":        "CSS",
}

var uiZones = map[string]string{
	"HR":  "heart_rate",
	"MAS": "MAS",
	"FPP": "FPP",
	"CSS": "CSS",
}

// ToWireDurationUnit maps a builder duration unit to its wire form.
// Unknown or absent input returns "" so the caller can apply its default.
func ToWireDurationUnit(unit string) string {
	return wireDurationUnits[strings.ToLower(strings.TrimSpace(unit))]
}

// ToUIDurationUnit maps a wire duration unit back to the builder abbreviation.
func ToUIDurationUnit(unit string) string {
	return uiDurationUnits[strings.ToLower(strings.TrimSpace(unit))]
}

// ToWireDistanceUnit maps a builder distance unit to its wire form.
func ToWireDistanceUnit(unit string) string {
	return wireDistanceUnits[strings.ToLower(strings.TrimSpace(unit))]
}

// ToUIDistanceUnit maps a wire distance unit back to the builder abbreviation.
func ToUIDistanceUnit(unit string) string {
	return uiDistanceUnits[strings.ToLower(strings.TrimSpace(unit))]
}

// ToWireZone maps a builder intensity-zone identifier to its wire code.
func ToWireZone(zone string) string {
	return wireZones[strings.ToLower(strings.TrimSpace(zone))]
}

// ToUIZone maps a wire zone code back to the builder identifier. Lookup is
// case-insensitive since stored records are not guaranteed a single casing.
func ToUIZone(zone string) string {
	return uiZones[strings.ToUpper(strings.TrimSpace(zone))]
}
