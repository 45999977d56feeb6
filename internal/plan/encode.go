package plan

import "strings"

// Default display names applied when a block carries no label of its own.
const (
	defaultWarmupName   = "Warm Up"
	defaultCooldownName = "Cool Down"
	defaultIntervalName = "Interval"
	defaultRestName     = "Rest"
)

// Encoder turns a flat builder block list into a wire Record. The zero value
// encodes silently; set Logf to capture diagnostics about skipped or dropped
// input (invalid numbers, empty composites). Encoding never fails: malformed
// pieces are omitted from the output rather than surfaced as errors.
type Encoder struct {
	Logf func(format string, args ...any)
}

// Encode runs a zero-value Encoder over blocks.
func Encode(blocks []Block, planName string) Record {
	var e Encoder
	return e.Encode(blocks, planName)
}

func (e *Encoder) logf(format string, args ...any) {
	if e.Logf != nil {
		e.Logf(format, args...)
	}
}

// Encode walks blocks in order and emits the nested wire record. Warmup and
// cooldown blocks become the corresponding phase keys (last one wins if the
// builder somehow produced duplicates), top-level rests accumulate in
// rest_periods, and intervals in intervals. Any block whose measurement fails
// validation is skipped; a composite interval with zero valid sub-intervals
// is dropped entirely so the backend never sees an empty sub_intervals list.
func (e *Encoder) Encode(blocks []Block, planName string) Record {
	var rec Record
	if strings.TrimSpace(planName) != "" {
		rec.Name = planName
	}

	for _, b := range blocks {
		switch b.Type {
		case BlockWarmup:
			if p := e.encodePhase(b, defaultWarmupName); p != nil {
				rec.Warmup = p
			}
		case BlockCooldown:
			if p := e.encodePhase(b, defaultCooldownName); p != nil {
				rec.Cooldown = p
			}
		case BlockRest:
			if p := e.encodePhase(b, defaultRestName); p != nil {
				rec.RestPeriods = append(rec.RestPeriods, *p)
			}
		case BlockInterval:
			if iv := e.encodeInterval(b); iv != nil {
				rec.Intervals = append(rec.Intervals, *iv)
			}
		default:
			e.logf("plan: skipping block %q: unknown type %q", b.ID, b.Type)
		}
	}
	return rec
}

// encodePhase builds a warmup/cooldown/rest phase. A phase with an invalid
// duration is omitted, not an error.
func (e *Encoder) encodePhase(b Block, defaultName string) *Phase {
	dur, ok := PositiveNumber(b.Duration)
	if !ok {
		e.logf("plan: skipping %s block %q: invalid duration %q", b.Type, b.ID, b.Duration)
		return nil
	}
	unit := ToWireDurationUnit(b.DurationUnit)
	if unit == "" {
		unit = WireMinutes
	}
	p := &Phase{
		Name:     nameOrDefault(b.Name, defaultName),
		Duration: dur,
		Unit:     unit,
		Notes:    b.Notes,
	}
	if iv, ok := PositiveNumber(b.Intensity); ok {
		p.Intensity = &iv
	}
	p.ZoneType = ToWireZone(b.IntensityUnit)
	return p
}

func (e *Encoder) encodeInterval(b Block) *Interval {
	if b.IsComposite() {
		subs := e.pairChildren(b.Children)
		if len(subs) == 0 {
			e.logf("plan: dropping interval %q: no valid sub-intervals", b.ID)
			return nil
		}
		return &Interval{
			Name:         nameOrDefault(b.Name, defaultIntervalName),
			Repetitions:  PositiveInteger(b.Repetitions, 1),
			SubIntervals: subs,
			Notes:        b.Notes,
		}
	}

	kind, amount, unit, ok := e.measurement(b)
	if !ok {
		return nil
	}
	iv := &Interval{
		Name:        nameOrDefault(b.Name, defaultIntervalName),
		Type:        kind,
		Amount:      amount,
		Unit:        unit,
		Repetitions: PositiveInteger(b.Repetitions, 1),
		Notes:       b.Notes,
	}
	if v, ok := PositiveNumber(b.Intensity); ok {
		iv.Intensity = &v
	}
	iv.ZoneType = ToWireZone(b.IntensityUnit)
	return iv
}

// pairChildren converts a composite interval's children into sub-intervals
// using positional adjacency as the only pairing signal: a rest child is
// attached to the immediately preceding valid interval child, never looked
// ahead past one position. An interval child with an invalid measurement is
// skipped without consuming a slot; a rest child not consumed as a pair
// partner becomes a rest-only sub-interval.
func (e *Encoder) pairChildren(children []Block) []SubInterval {
	var subs []SubInterval
	for i := 0; i < len(children); i++ {
		c := children[i]
		switch c.Type {
		case BlockInterval:
			work := e.encodeWork(c)
			if work == nil {
				continue
			}
			sub := SubInterval{Work: work}
			if i+1 < len(children) && children[i+1].Type == BlockRest {
				if rest := e.encodePhase(children[i+1], defaultRestName); rest != nil {
					sub.Rest = rest
					i++
				}
			}
			subs = append(subs, sub)
		case BlockRest:
			if rest := e.encodePhase(c, defaultRestName); rest != nil {
				subs = append(subs, SubInterval{Rest: rest})
			}
		default:
			e.logf("plan: skipping sub-interval child %q: unexpected type %q", c.ID, c.Type)
		}
	}
	return subs
}

func (e *Encoder) encodeWork(b Block) *WorkPhase {
	kind, amount, unit, ok := e.measurement(b)
	if !ok {
		return nil
	}
	w := &WorkPhase{
		Name:   nameOrDefault(b.Name, defaultIntervalName),
		Type:   kind,
		Amount: amount,
		Unit:   unit,
		Notes:  b.Notes,
	}
	if v, ok := PositiveNumber(b.Intensity); ok {
		w.Intensity = &v
	}
	w.ZoneType = ToWireZone(b.IntensityUnit)
	return w
}

// measurement reads the duration or distance pair matching the block's
// interval type. Anything other than an explicit distance interval is
// measured in time.
func (e *Encoder) measurement(b Block) (IntervalKind, float64, string, bool) {
	if b.IntervalType == IntervalDistance {
		amount, ok := PositiveNumber(b.Distance)
		if !ok {
			e.logf("plan: skipping interval %q: invalid distance %q", b.ID, b.Distance)
			return IntervalDistance, 0, "", false
		}
		unit := ToWireDistanceUnit(b.DistanceUnit)
		if unit == "" {
			unit = WireMeters
		}
		return IntervalDistance, amount, unit, true
	}

	amount, ok := PositiveNumber(b.Duration)
	if !ok {
		e.logf("plan: skipping interval %q: invalid duration %q", b.ID, b.Duration)
		return IntervalTime, 0, "", false
	}
	unit := ToWireDurationUnit(b.DurationUnit)
	if unit == "" {
		unit = WireMinutes
	}
	return IntervalTime, amount, unit, true
}

func nameOrDefault(name, fallback string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	return fallback
}
