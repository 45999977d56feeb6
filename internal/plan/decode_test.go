package plan

import (
	"fmt"
	"testing"
)

// sequentialIDs returns a NewID func producing "id-1", "id-2", ... so tests
// can assert on deterministic identifiers.
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// TestDecodeOrdering verifies blocks come back in builder order: warmup,
// intervals, rest periods, cooldown.
func TestDecodeOrdering(t *testing.T) {
	intensity := 120.0
	rec := Record{
		Warmup:      &Phase{Name: "Warm Up", Duration: 10, Unit: "minutes", Intensity: &intensity, ZoneType: "HR"},
		Cooldown:    &Phase{Name: "Cool Down", Duration: 5, Unit: "minutes"},
		Intervals:   []Interval{{Name: "Interval", Type: IntervalTime, Amount: 5, Unit: "minutes", Repetitions: 4}},
		RestPeriods: []Phase{{Name: "Rest", Duration: 2, Unit: "minutes"}},
	}
	d := Decoder{NewID: sequentialIDs()}
	blocks := d.Decode(rec)

	wantTypes := []BlockType{BlockWarmup, BlockInterval, BlockRest, BlockCooldown}
	if len(blocks) != len(wantTypes) {
		t.Fatalf("got %d blocks, want %d", len(blocks), len(wantTypes))
	}
	for i, want := range wantTypes {
		if blocks[i].Type != want {
			t.Errorf("block %d type = %q, want %q", i, blocks[i].Type, want)
		}
	}

	warmup := blocks[0]
	if warmup.Duration != "10" || warmup.DurationUnit != "min" {
		t.Errorf("warmup = %+v, want duration 10 min", warmup)
	}
	if warmup.Intensity != "120" || warmup.IntensityUnit != "heart_rate" {
		t.Errorf("warmup intensity = %q %q, want 120 heart_rate", warmup.Intensity, warmup.IntensityUnit)
	}

	iv := blocks[1]
	if iv.IntervalType != IntervalTime || iv.Duration != "5" || iv.DurationUnit != "min" || iv.Repetitions != "4" {
		t.Errorf("interval = %+v, want time / 5 min / 4 reps", iv)
	}
}

// TestDecodeFreshIDs verifies every decode generates new identifiers; IDs
// are never read from the wire record because it has none.
func TestDecodeFreshIDs(t *testing.T) {
	rec := Record{Warmup: &Phase{Duration: 10, Unit: "minutes"}}

	first := Decode(rec)
	second := Decode(rec)
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected one block per decode")
	}
	if first[0].ID == "" || second[0].ID == "" {
		t.Error("decoded blocks must carry synthetic IDs")
	}
	if first[0].ID == second[0].ID {
		t.Error("IDs must not be stable across repeated decodes")
	}
}

// TestDecodeCompositeInterval verifies work/rest sub-intervals expand into
// alternating interval and rest children, skipping absent phases.
func TestDecodeCompositeInterval(t *testing.T) {
	rec := Record{
		Intervals: []Interval{{
			Name:        "Main set",
			Repetitions: 6,
			SubIntervals: []SubInterval{
				{
					Work: &WorkPhase{Name: "Effort", Type: IntervalTime, Amount: 3, Unit: "minutes"},
					Rest: &Phase{Name: "Rest", Duration: 1, Unit: "minutes"},
				},
				{
					Work: &WorkPhase{Name: "Float", Type: IntervalDistance, Amount: 200, Unit: "meters"},
				},
			},
		}},
	}
	d := Decoder{NewID: sequentialIDs()}
	blocks := d.Decode(rec)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}

	b := blocks[0]
	if b.Type != BlockInterval || b.Repetitions != "6" {
		t.Fatalf("block = %+v, want composite interval with 6 reps", b)
	}
	if len(b.Children) != 3 {
		t.Fatalf("got %d children, want 3 (work, rest, work)", len(b.Children))
	}
	if b.Children[0].Type != BlockInterval || b.Children[0].Duration != "3" {
		t.Errorf("child 0 = %+v, want 3-minute work", b.Children[0])
	}
	if b.Children[1].Type != BlockRest || b.Children[1].Duration != "1" {
		t.Errorf("child 1 = %+v, want 1-minute rest", b.Children[1])
	}
	if b.Children[2].Type != BlockInterval || b.Children[2].IntervalType != IntervalDistance ||
		b.Children[2].Distance != "200" || b.Children[2].DistanceUnit != "m" {
		t.Errorf("child 2 = %+v, want 200 m work", b.Children[2])
	}
}

// TestDecodeIsTotal verifies decoding tolerates sparse records: missing
// optional fields simply stay absent on the reconstructed blocks.
func TestDecodeIsTotal(t *testing.T) {
	if got := Decode(Record{}); len(got) != 0 {
		t.Errorf("decoding an empty record should yield no blocks, got %+v", got)
	}

	// Unknown units decode to absent builder units rather than failing.
	blocks := Decode(Record{Warmup: &Phase{Duration: 10, Unit: "fortnights"}})
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if blocks[0].DurationUnit != "" {
		t.Errorf("unknown unit should decode to empty, got %q", blocks[0].DurationUnit)
	}
}

// TestRoundTrip verifies decode(encode(blocks)) preserves every semantic
// field for well-formed input: structure, values, normalized units,
// repetitions, names, and notes. Only identifiers change.
func TestRoundTrip(t *testing.T) {
	original := []Block{
		{ID: "b1", Type: BlockWarmup, Name: "Warm Up", Duration: "10", DurationUnit: "min", Intensity: "120", IntensityUnit: "heart_rate"},
		{
			ID: "b2", Type: BlockInterval, Name: "Main set", Repetitions: "4", Notes: "hold form",
			Children: []Block{
				{ID: "b3", Type: BlockInterval, Name: "Effort", IntervalType: IntervalTime, Duration: "3", DurationUnit: "min"},
				{ID: "b4", Type: BlockRest, Name: "Rest", Duration: "1", DurationUnit: "min"},
			},
		},
		{ID: "b5", Type: BlockInterval, Name: "Strides", IntervalType: IntervalDistance, Distance: "100", DistanceUnit: "m", Repetitions: "6"},
		{ID: "b6", Type: BlockRest, Name: "Rest", Duration: "2", DurationUnit: "min"},
		{ID: "b7", Type: BlockCooldown, Name: "Cool Down", Duration: "5", DurationUnit: "min"},
	}

	decoded := Decode(Encode(original, "Track Tuesday"))

	// Encode emits intervals before top-level rests, so the decoded order is
	// warmup, both intervals, rest, cooldown: same content, builder order.
	if len(decoded) != len(original) {
		t.Fatalf("got %d blocks, want %d", len(decoded), len(original))
	}

	assertSemanticMatch(t, "warmup", decoded[0], original[0])
	assertSemanticMatch(t, "composite", decoded[1], original[1])
	assertSemanticMatch(t, "strides", decoded[2], original[2])
	assertSemanticMatch(t, "rest", decoded[3], original[3])
	assertSemanticMatch(t, "cooldown", decoded[4], original[4])

	for i, b := range decoded {
		if b.ID == original[i].ID {
			t.Errorf("block %d kept its original ID %q; IDs must be regenerated", i, b.ID)
		}
	}
}

// assertSemanticMatch compares every round-trip-preserved field of two
// blocks, recursing into children, ignoring IDs.
func assertSemanticMatch(t *testing.T, label string, got, want Block) {
	t.Helper()
	if got.Type != want.Type {
		t.Errorf("%s: type = %q, want %q", label, got.Type, want.Type)
	}
	if got.Name != want.Name {
		t.Errorf("%s: name = %q, want %q", label, got.Name, want.Name)
	}
	if got.Notes != want.Notes {
		t.Errorf("%s: notes = %q, want %q", label, got.Notes, want.Notes)
	}
	if got.Duration != want.Duration || got.DurationUnit != want.DurationUnit {
		t.Errorf("%s: duration = %q %q, want %q %q", label, got.Duration, got.DurationUnit, want.Duration, want.DurationUnit)
	}
	if got.Distance != want.Distance || got.DistanceUnit != want.DistanceUnit {
		t.Errorf("%s: distance = %q %q, want %q %q", label, got.Distance, got.DistanceUnit, want.Distance, want.DistanceUnit)
	}
	if got.Intensity != want.Intensity || got.IntensityUnit != want.IntensityUnit {
		t.Errorf("%s: intensity = %q %q, want %q %q", label, got.Intensity, got.IntensityUnit, want.Intensity, want.IntensityUnit)
	}
	if got.Repetitions != want.Repetitions {
		t.Errorf("%s: repetitions = %q, want %q", label, got.Repetitions, want.Repetitions)
	}
	if len(got.Children) != len(want.Children) {
		t.Fatalf("%s: got %d children, want %d", label, len(got.Children), len(want.Children))
	}
	for i := range got.Children {
		assertSemanticMatch(t, fmt.Sprintf("%s.child%d", label, i), got.Children[i], want.Children[i])
	}
}
