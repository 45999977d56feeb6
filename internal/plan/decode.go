package plan

import (
	"strconv"

	"github.com/google/uuid"
)

// Decoder reconstructs the flat builder block list from a wire Record.
// Decoding is total: well-formed wire input cannot fail, missing optional
// fields are simply absent on the reconstructed blocks. Every block gets a
// fresh synthetic ID from NewID (uuid.NewString by default); the wire format
// carries no identifiers, so IDs are never stable across decodes.
type Decoder struct {
	NewID func() string
	Logf  func(format string, args ...any)
}

// Decode runs a zero-value Decoder over rec.
func Decode(rec Record) []Block {
	var d Decoder
	return d.Decode(rec)
}

// Decode emits blocks in builder order: warmup first, then intervals, then
// standalone rest periods, cooldown last.
func (d *Decoder) Decode(rec Record) []Block {
	newID := d.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	var blocks []Block
	if rec.Warmup != nil {
		blocks = append(blocks, d.phaseBlock(BlockWarmup, *rec.Warmup, newID))
	}
	for _, iv := range rec.Intervals {
		blocks = append(blocks, d.intervalBlock(iv, newID))
	}
	for _, rest := range rec.RestPeriods {
		blocks = append(blocks, d.phaseBlock(BlockRest, rest, newID))
	}
	if rec.Cooldown != nil {
		blocks = append(blocks, d.phaseBlock(BlockCooldown, *rec.Cooldown, newID))
	}
	return blocks
}

func (d *Decoder) phaseBlock(t BlockType, p Phase, newID func() string) Block {
	b := Block{
		ID:           newID(),
		Type:         t,
		Name:         p.Name,
		Notes:        p.Notes,
		Duration:     formatNumber(p.Duration),
		DurationUnit: ToUIDurationUnit(p.Unit),
	}
	if p.Intensity != nil {
		b.Intensity = formatNumber(*p.Intensity)
	}
	b.IntensityUnit = ToUIZone(p.ZoneType)
	return b
}

func (d *Decoder) intervalBlock(iv Interval, newID func() string) Block {
	if iv.IsComposite() {
		b := Block{
			ID:          newID(),
			Type:        BlockInterval,
			Name:        iv.Name,
			Notes:       iv.Notes,
			Repetitions: strconv.Itoa(iv.Repetitions),
		}
		for _, sub := range iv.SubIntervals {
			if sub.Work != nil {
				b.Children = append(b.Children, d.workBlock(*sub.Work, newID))
			}
			if sub.Rest != nil {
				b.Children = append(b.Children, d.phaseBlock(BlockRest, *sub.Rest, newID))
			}
		}
		return b
	}

	b := Block{
		ID:          newID(),
		Type:        BlockInterval,
		Name:        iv.Name,
		Notes:       iv.Notes,
		Repetitions: strconv.Itoa(iv.Repetitions),
	}
	d.setMeasurement(&b, iv.Type, iv.Amount, iv.Unit)
	if iv.Intensity != nil {
		b.Intensity = formatNumber(*iv.Intensity)
	}
	b.IntensityUnit = ToUIZone(iv.ZoneType)
	return b
}

func (d *Decoder) workBlock(w WorkPhase, newID func() string) Block {
	b := Block{
		ID:    newID(),
		Type:  BlockInterval,
		Name:  w.Name,
		Notes: w.Notes,
	}
	d.setMeasurement(&b, w.Type, w.Amount, w.Unit)
	if w.Intensity != nil {
		b.Intensity = formatNumber(*w.Intensity)
	}
	b.IntensityUnit = ToUIZone(w.ZoneType)
	return b
}

func (d *Decoder) setMeasurement(b *Block, kind IntervalKind, amount float64, unit string) {
	if kind == IntervalDistance {
		b.IntervalType = IntervalDistance
		b.Distance = formatNumber(amount)
		b.DistanceUnit = ToUIDistanceUnit(unit)
		return
	}
	b.IntervalType = IntervalTime
	b.Duration = formatNumber(amount)
	b.DurationUnit = ToUIDurationUnit(unit)
}

// formatNumber renders a wire number the way the builder displays it, with
// no trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
