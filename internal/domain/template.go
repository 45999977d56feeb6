package domain

import (
	"time"

	"github.com/toseg1/promethia-v2-sub001/internal/plan"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanTemplate is a reusable training plan saved by a coach. The plan is
// stored in wire form and decoded back into builder blocks when the coach
// loads it into the editor.
type PlanTemplate struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CoachID     primitive.ObjectID `bson:"coachId" json:"coachId"`
	Name        string             `bson:"name" json:"name"` // e.g., "VO2max 4x5"
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Record      plan.Record        `bson:"record" json:"record"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
