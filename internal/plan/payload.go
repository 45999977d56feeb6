package plan

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// EventKind selects which payload shape an event update takes.
type EventKind string

const (
	EventTraining EventKind = "training"
	EventRace     EventKind = "race"
	EventCustom   EventKind = "custom"
)

// ErrUnsupportedEventKind is the one fatal condition in the codec: asking for
// a payload shape outside training/race/custom.
var ErrUnsupportedEventKind = errors.New("unsupported event kind")

// EventInput carries the scalar fields of an event-update request alongside
// the builder blocks. Blank fields mean "leave unchanged" and are omitted
// from the payload, never sent as empty values.
type EventInput struct {
	Kind      EventKind
	Title     string
	Date      string // calendar date, optionally with a time-of-day component
	Time      string // optional explicit time override, e.g. "07:30"
	Sport     string
	Location  string
	Distance  string
	Notes     string
	AthleteID string
	PlanName  string
	Blocks    []Block
}

// TrainingPayload is the update shape for structured training events. It is
// the only shape that carries the encoded wire record.
type TrainingPayload struct {
	Title        string  `json:"title,omitempty" bson:"title,omitempty"`
	Date         string  `json:"date,omitempty" bson:"date,omitempty"`
	Sport        string  `json:"sport,omitempty" bson:"sport,omitempty"`
	Notes        string  `json:"notes,omitempty" bson:"notes,omitempty"`
	Athlete      string  `json:"athlete,omitempty" bson:"athlete,omitempty"`
	TrainingData *Record `json:"training_data,omitempty" bson:"training_data,omitempty"`
}

// RacePayload is the update shape for race events.
type RacePayload struct {
	Title    string `json:"title,omitempty" bson:"title,omitempty"`
	Date     string `json:"date,omitempty" bson:"date,omitempty"`
	Sport    string `json:"sport,omitempty" bson:"sport,omitempty"`
	Location string `json:"location,omitempty" bson:"location,omitempty"`
	Distance string `json:"distance,omitempty" bson:"distance,omitempty"`
	Notes    string `json:"notes,omitempty" bson:"notes,omitempty"`
	Athlete  string `json:"athlete,omitempty" bson:"athlete,omitempty"`
}

// CustomPayload is the update shape for free-form calendar entries.
type CustomPayload struct {
	Title   string `json:"title,omitempty" bson:"title,omitempty"`
	Date    string `json:"date,omitempty" bson:"date,omitempty"`
	Notes   string `json:"notes,omitempty" bson:"notes,omitempty"`
	Athlete string `json:"athlete,omitempty" bson:"athlete,omitempty"`
}

// BuildEventPayload combines the encoder's output with the remaining scalar
// event fields into the payload shape for the given kind. Returns
// ErrUnsupportedEventKind for anything outside training/race/custom; every
// other anomaly (malformed date or time fragments, invalid blocks) degrades
// to field omission.
func BuildEventPayload(in EventInput) (any, error) {
	switch in.Kind {
	case EventTraining:
		p := TrainingPayload{
			Title:   strings.TrimSpace(in.Title),
			Date:    CombineDateTime(in.Date, in.Time),
			Sport:   strings.TrimSpace(in.Sport),
			Notes:   strings.TrimSpace(in.Notes),
			Athlete: strings.TrimSpace(in.AthleteID),
		}
		if rec := Encode(in.Blocks, in.PlanName); !rec.IsZero() {
			p.TrainingData = &rec
		}
		return p, nil
	case EventRace:
		return RacePayload{
			Title:    strings.TrimSpace(in.Title),
			Date:     CombineDateTime(in.Date, in.Time),
			Sport:    strings.TrimSpace(in.Sport),
			Location: strings.TrimSpace(in.Location),
			Distance: strings.TrimSpace(in.Distance),
			Notes:    strings.TrimSpace(in.Notes),
			Athlete:  strings.TrimSpace(in.AthleteID),
		}, nil
	case EventCustom:
		return CustomPayload{
			Title:   strings.TrimSpace(in.Title),
			Date:    CombineDateTime(in.Date, in.Time),
			Notes:   strings.TrimSpace(in.Notes),
			Athlete: strings.TrimSpace(in.AthleteID),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEventKind, in.Kind)
	}
}

// Accepted date layouts, tried in order. The bool marks layouts that carry a
// time-of-day component.
var dateLayouts = []struct {
	layout  string
	hasTime bool
}{
	{time.RFC3339, true},
	{"2006-01-02T15:04:05", true},
	{"2006-01-02T15:04", true},
	{"2006-01-02 15:04:05", true},
	{"2006-01-02 15:04", true},
	{"2006-01-02", false},
}

var timeLayouts = []string{"15:04:05", "15:04"}

// CombineDateTime merges a date value and an optional time override into one
// timestamp string. A valid explicit time always wins; otherwise the date's
// own time component, if any, is kept. A date without any time component
// stays a bare date. Malformed input yields "" so the owning field is
// omitted from the payload.
func CombineDateTime(date, timeOfDay string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return ""
	}

	var parsed time.Time
	hasTime := false
	ok := false
	for _, dl := range dateLayouts {
		if t, err := time.Parse(dl.layout, date); err == nil {
			parsed, hasTime, ok = t, dl.hasTime, true
			break
		}
	}
	if !ok {
		return ""
	}

	if override, okT := parseTimeOfDay(timeOfDay); okT {
		parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(),
			override.Hour(), override.Minute(), override.Second(), 0, time.UTC)
		hasTime = true
	}

	if !hasTime {
		return parsed.Format("2006-01-02")
	}
	return parsed.Format("2006-01-02T15:04:05")
}

func parseTimeOfDay(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
