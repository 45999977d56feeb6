package service

import (
	"context"
	"errors"

	"github.com/toseg1/promethia-v2-sub001/internal/domain"
	"github.com/toseg1/promethia-v2-sub001/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrRosterAthleteNotFound = errors.New("no athlete found with this email")
	ErrRosterNotAnAthlete    = errors.New("user with this email is not an athlete")
	ErrRosterAlreadyCoached  = errors.New("athlete is already managed by another coach")
)

// --- Service Interface ---
type CoachService interface {
	// AddAthleteByEmail links an existing athlete account to the coach's
	// roster. Athletes already managed by a different coach are rejected.
	AddAthleteByEmail(ctx context.Context, coachID primitive.ObjectID, athleteEmail string) (*domain.User, error)
	// ListAthletes returns the coach's roster, sorted by name.
	ListAthletes(ctx context.Context, coachID primitive.ObjectID) ([]domain.User, error)
}

// --- Service Implementation ---

// coachService implements the CoachService interface.
type coachService struct {
	userRepo repository.UserRepository
}

// NewCoachService creates a new instance of coachService.
func NewCoachService(userRepo repository.UserRepository) CoachService {
	return &coachService{userRepo: userRepo}
}

// AddAthleteByEmail resolves the athlete by email and records the link on
// both sides: the coach's roster array and the athlete's coachId field.
func (s *coachService) AddAthleteByEmail(ctx context.Context, coachID primitive.ObjectID, athleteEmail string) (*domain.User, error) {
	if coachID == primitive.NilObjectID || athleteEmail == "" {
		return nil, errors.New("coach ID and athlete email are required")
	}

	athlete, err := s.userRepo.GetByEmail(ctx, athleteEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRosterAthleteNotFound
		}
		return nil, err
	}
	if !athlete.IsAthlete() {
		return nil, ErrRosterNotAnAthlete
	}
	if athlete.CoachID != nil && *athlete.CoachID != coachID {
		return nil, ErrRosterAlreadyCoached
	}

	if err := s.userRepo.SetCoachForAthlete(ctx, athlete.ID, coachID); err != nil {
		return nil, err
	}
	if err := s.userRepo.AddAthleteIDToCoach(ctx, coachID, athlete.ID); err != nil {
		return nil, err
	}

	athlete.CoachID = &coachID
	athlete.PasswordHash = ""
	return athlete, nil
}

// ListAthletes returns the coach's managed athletes.
func (s *coachService) ListAthletes(ctx context.Context, coachID primitive.ObjectID) ([]domain.User, error) {
	if coachID == primitive.NilObjectID {
		return nil, errors.New("coach ID is required")
	}
	athletes, err := s.userRepo.GetAthletesByCoachID(ctx, coachID)
	if err != nil {
		return nil, err
	}
	for i := range athletes {
		athletes[i].PasswordHash = ""
	}
	return athletes, nil
}
