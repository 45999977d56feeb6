package domain

import (
	"time"

	"github.com/toseg1/promethia-v2-sub001/internal/plan"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event represents a single calendar entry for an athlete: a structured
// training session, a race, or a free-form custom entry. Only training
// events carry a plan record; the builder block tree itself is never stored,
// it is re-derived from TrainingData on load.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CoachID   primitive.ObjectID `bson:"coachId,omitempty" json:"coachId,omitempty"` // Who scheduled it (self-coached athletes leave this empty)
	AthleteID primitive.ObjectID `bson:"athleteId" json:"athleteId"`
	Kind      plan.EventKind     `bson:"kind" json:"kind"`
	Title     string             `bson:"title" json:"title"`
	Date      string             `bson:"date" json:"date"` // combined timestamp string from the payload builder
	Sport     string             `bson:"sport,omitempty" json:"sport,omitempty"`
	Location  string             `bson:"location,omitempty" json:"location,omitempty"` // races only
	Distance  string             `bson:"distance,omitempty" json:"distance,omitempty"` // races only
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`

	// TrainingData is the canonical nested wire record, stored whole. It is
	// always fully replaced on update, never patched field by field.
	TrainingData *plan.Record `bson:"training_data,omitempty" json:"training_data,omitempty"`

	// AttachmentKey points at an uploaded file in object storage (race course
	// file, exported plan document).
	AttachmentKey string `bson:"attachmentKey,omitempty" json:"attachmentKey,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
