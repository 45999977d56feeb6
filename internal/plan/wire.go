package plan

// Record is the canonical nested wire form of a training plan. The field
// names are a persisted contract shared with the mobile and web builders and
// must not change. Every top-level key is optional; empty phases and lists
// are omitted entirely rather than serialized empty.
type Record struct {
	Name        string     `json:"name,omitempty" bson:"name,omitempty"`
	Warmup      *Phase     `json:"warmup,omitempty" bson:"warmup,omitempty"`
	Cooldown    *Phase     `json:"cooldown,omitempty" bson:"cooldown,omitempty"`
	Intervals   []Interval `json:"intervals,omitempty" bson:"intervals,omitempty"`
	RestPeriods []Phase    `json:"rest_periods,omitempty" bson:"rest_periods,omitempty"`
}

// IsZero reports whether the record carries no content at all.
func (r Record) IsZero() bool {
	return r.Name == "" && r.Warmup == nil && r.Cooldown == nil &&
		len(r.Intervals) == 0 && len(r.RestPeriods) == 0
}

// Phase is a named duration-bearing segment: a warmup, a cooldown, a
// standalone rest period, or the rest half of a sub-interval.
type Phase struct {
	Name      string   `json:"name,omitempty" bson:"name,omitempty"`
	Duration  float64  `json:"duration" bson:"duration"`
	Unit      string   `json:"unit" bson:"unit"`
	Intensity *float64 `json:"intensity,omitempty" bson:"intensity,omitempty"`
	ZoneType  string   `json:"zone_type,omitempty" bson:"zone_type,omitempty"`
	Notes     string   `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Interval is one entry of the intervals list. It is either simple (Type,
// Amount and Unit set, no SubIntervals) or composite (SubIntervals non-empty,
// measurement fields zero). Repetitions is always a positive integer.
type Interval struct {
	Name         string        `json:"name,omitempty" bson:"name,omitempty"`
	Type         IntervalKind  `json:"type,omitempty" bson:"type,omitempty"`
	Amount       float64       `json:"duration_or_distance,omitempty" bson:"duration_or_distance,omitempty"`
	Unit         string        `json:"unit,omitempty" bson:"unit,omitempty"`
	Repetitions  int           `json:"repetitions" bson:"repetitions"`
	Intensity    *float64      `json:"intensity,omitempty" bson:"intensity,omitempty"`
	ZoneType     string        `json:"zone_type,omitempty" bson:"zone_type,omitempty"`
	SubIntervals []SubInterval `json:"sub_intervals,omitempty" bson:"sub_intervals,omitempty"`
	Notes        string        `json:"notes,omitempty" bson:"notes,omitempty"`
}

// IsComposite reports whether the interval is defined by sub-intervals.
func (iv Interval) IsComposite() bool {
	return len(iv.SubIntervals) > 0
}

// SubInterval is one work(+optional rest) cycle inside a composite interval.
// Work is normally present; a rest-only sub-interval results from a rest
// child that had no preceding work child to pair with.
type SubInterval struct {
	Work *WorkPhase `json:"work,omitempty" bson:"work,omitempty"`
	Rest *Phase     `json:"rest,omitempty" bson:"rest,omitempty"`
}

// WorkPhase is the work half of a sub-interval: a single time or distance
// effort, shaped like a simple interval without repetitions.
type WorkPhase struct {
	Name      string       `json:"name,omitempty" bson:"name,omitempty"`
	Type      IntervalKind `json:"type" bson:"type"`
	Amount    float64      `json:"duration_or_distance" bson:"duration_or_distance"`
	Unit      string       `json:"unit" bson:"unit"`
	Intensity *float64     `json:"intensity,omitempty" bson:"intensity,omitempty"`
	ZoneType  string       `json:"zone_type,omitempty" bson:"zone_type,omitempty"`
	Notes     string       `json:"notes,omitempty" bson:"notes,omitempty"`
}
