// Package plan implements the structured training-plan codec: the
// bidirectional transformation between the flat, builder-oriented list of
// typed blocks and the canonical nested wire record used for storage and
// transport.
package plan

// BlockType distinguishes the four kinds of builder blocks.
type BlockType string

const (
	BlockWarmup   BlockType = "warmup"
	BlockCooldown BlockType = "cooldown"
	BlockInterval BlockType = "interval"
	BlockRest     BlockType = "rest"
)

// IntervalKind selects which measurement a simple interval carries.
type IntervalKind string

const (
	IntervalTime     IntervalKind = "time"
	IntervalDistance IntervalKind = "distance"
)

// Block is a node in the builder-side workout representation. Numeric fields
// are kept as strings because they arrive straight from form inputs; the
// encoder owns parsing and validation. Exactly which fields are meaningful
// depends on Type:
//
//   - warmup/cooldown: Duration, DurationUnit, optional Intensity/IntensityUnit
//   - rest: Duration, DurationUnit, optional Notes
//   - interval (simple): IntervalType plus the matching Duration or Distance
//     pair, optional Repetitions/Intensity/IntensityUnit
//   - interval (composite): Repetitions plus Children restricted to
//     interval/rest blocks forming one work/rest cycle
type Block struct {
	ID            string       `json:"id"`
	Type          BlockType    `json:"type"`
	Name          string       `json:"name,omitempty"`
	Notes         string       `json:"notes,omitempty"`
	Duration      string       `json:"duration,omitempty"`
	DurationUnit  string       `json:"durationUnit,omitempty"`
	Distance      string       `json:"distance,omitempty"`
	DistanceUnit  string       `json:"distanceUnit,omitempty"`
	IntervalType  IntervalKind `json:"intervalType,omitempty"`
	Repetitions   string       `json:"repetitions,omitempty"`
	Intensity     string       `json:"intensity,omitempty"`
	IntensityUnit string       `json:"intensityUnit,omitempty"`
	Children      []Block      `json:"children,omitempty"`
}

// IsComposite reports whether the block is an interval defined by nested
// children rather than a single duration/distance value.
func (b Block) IsComposite() bool {
	return b.Type == BlockInterval && len(b.Children) > 0
}
