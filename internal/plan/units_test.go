package plan

import "testing"

// TestToWireDurationUnit verifies that every builder abbreviation, including
// singular/plural variants, normalizes to the canonical wire long form.
func TestToWireDurationUnit(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"min", "minutes"},
		{"mins", "minutes"},
		{"minute", "minutes"},
		{"minutes", "minutes"},
		{"sec", "seconds"},
		{"secs", "seconds"},
		{"second", "seconds"},
		{"seconds", "seconds"},
		{"hour", "hours"},
		{"hours", "hours"},
		{"MIN", "minutes"},
		{" min ", "minutes"},
		{"furlongs", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ToWireDurationUnit(tc.input); got != tc.want {
			t.Errorf("ToWireDurationUnit(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

// TestToUIDurationUnit verifies the reverse mapping, including the deliberate
// collapse of hours to min: the builder does not offer hours as a unit.
func TestToUIDurationUnit(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"minutes", "min"},
		{"seconds", "sec"},
		{"hours", "min"},
		{"days", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ToUIDurationUnit(tc.input); got != tc.want {
			t.Errorf("ToUIDurationUnit(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

// TestDurationUnitRoundTrip verifies wire->UI->wire stability for every
// builder unit except the hours class, which is a documented lossy case.
func TestDurationUnitRoundTrip(t *testing.T) {
	for _, ui := range []string{"min", "sec"} {
		if got := ToUIDurationUnit(ToWireDurationUnit(ui)); got != ui {
			t.Errorf("round trip of %q = %q, want unchanged", ui, got)
		}
	}
	// hours-class input comes back as min, by design
	if got := ToUIDurationUnit(ToWireDurationUnit("hours")); got != "min" {
		t.Errorf("round trip of \"hours\" = %q, want \"min\"", got)
	}
}

// TestDistanceUnits verifies both directions of the distance vocabulary.
func TestDistanceUnits(t *testing.T) {
	toWire := []struct {
		input string
		want  string
	}{
		{"m", "meters"},
		{"meter", "meters"},
		{"meters", "meters"},
		{"km", "kilometers"},
		{"k", "kilometers"},
		{"kilometer", "kilometers"},
		{"kilometers", "kilometers"},
		{"miles", ""},
		{"", ""},
	}
	for _, tc := range toWire {
		if got := ToWireDistanceUnit(tc.input); got != tc.want {
			t.Errorf("ToWireDistanceUnit(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}

	toUI := []struct {
		input string
		want  string
	}{
		{"meters", "m"},
		{"kilometers", "km"},
		{"miles", ""},
	}
	for _, tc := range toUI {
		if got := ToUIDistanceUnit(tc.input); got != tc.want {
			t.Errorf("ToUIDistanceUnit(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

// TestZoneUnits verifies the intensity-zone mapping, including the
// case-insensitive lookup on decode.
func TestZoneUnits(t *testing.T) {
	toWire := []struct {
		input string
		want  string
	}{
		{"heart_rate", "HR"},
		{"MAS", "MAS"},
		{"FPP", "FPP"},
		{"CSS", "CSS"},
		{"mas", "MAS"},
		{"watts", ""},
		{"", ""},
	}
	for _, tc := range toWire {
		if got := ToWireZone(tc.input); got != tc.want {
			t.Errorf("ToWireZone(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}

	toUI := []struct {
		input string
		want  string
	}{
		{"HR", "heart_rate"},
		{"hr", "heart_rate"},
		{"MAS", "MAS"},
		{"mas", "MAS"},
		{"FPP", "FPP"},
		{"CSS", "CSS"},
		{"RPE", ""},
	}
	for _, tc := range toUI {
		if got := ToUIZone(tc.input); got != tc.want {
			t.Errorf("ToUIZone(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
