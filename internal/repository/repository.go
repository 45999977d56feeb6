package repository

import (
	"context"

	"github.com/toseg1/promethia-v2-sub001/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	AddAthleteIDToCoach(ctx context.Context, coachID, athleteID primitive.ObjectID) error
	GetAthletesByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.User, error)
	SetCoachForAthlete(ctx context.Context, athleteID, coachID primitive.ObjectID) error
}

// EventRepository defines the interface for interacting with calendar events.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Event, error)
	// GetByAthleteAndRange lists an athlete's events whose date falls within
	// [from, to), ordered by date. Blank bounds mean unbounded.
	GetByAthleteAndRange(ctx context.Context, athleteID primitive.ObjectID, from, to string) ([]domain.Event, error)
	// Update applies a sparse patch document; fields absent from the patch
	// are left unchanged.
	Update(ctx context.Context, id primitive.ObjectID, patch any) error
	SetAttachmentKey(ctx context.Context, id primitive.ObjectID, objectKey string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TemplateRepository defines the interface for interacting with saved plan
// templates.
type TemplateRepository interface {
	Create(ctx context.Context, tpl *domain.PlanTemplate) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlanTemplate, error)
	GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.PlanTemplate, error)
	Delete(ctx context.Context, id primitive.ObjectID, coachID primitive.ObjectID) error // Ensure coach owns the template
}
