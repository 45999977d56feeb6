package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/toseg1/promethia-v2-sub001/internal/domain"
	"github.com/toseg1/promethia-v2-sub001/internal/plan"
	"github.com/toseg1/promethia-v2-sub001/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrTemplateNotFound     = errors.New("plan template not found")
	ErrTemplateAccessDenied = errors.New("access denied to this plan template")
	ErrTemplateEmpty        = errors.New("template plan has no valid content")
)

// --- Service Interface ---
type TemplateService interface {
	// SaveTemplate encodes the builder block list and stores it under the
	// coach's account for reuse.
	SaveTemplate(ctx context.Context, coachID primitive.ObjectID, name, description string, blocks []plan.Block) (*domain.PlanTemplate, error)
	// LoadTemplate returns a template together with the builder blocks
	// decoded from its stored record, ready to drop into the editor.
	LoadTemplate(ctx context.Context, coachID, templateID primitive.ObjectID) (*domain.PlanTemplate, []plan.Block, error)
	ListTemplates(ctx context.Context, coachID primitive.ObjectID) ([]domain.PlanTemplate, error)
	DeleteTemplate(ctx context.Context, coachID, templateID primitive.ObjectID) error
}

// --- Service Implementation ---

// templateService implements the TemplateService interface.
type templateService struct {
	templateRepo repository.TemplateRepository
}

// NewTemplateService creates a new instance of templateService.
func NewTemplateService(templateRepo repository.TemplateRepository) TemplateService {
	return &templateService{templateRepo: templateRepo}
}

// SaveTemplate encodes and persists a reusable plan. A plan whose every
// block fails validation is rejected rather than stored empty.
func (s *templateService) SaveTemplate(ctx context.Context, coachID primitive.ObjectID, name, description string, blocks []plan.Block) (*domain.PlanTemplate, error) {
	if coachID == primitive.NilObjectID || strings.TrimSpace(name) == "" {
		return nil, errors.New("coach ID and template name are required")
	}

	encoder := plan.Encoder{Logf: log.Printf}
	record := encoder.Encode(blocks, name)
	if record.Warmup == nil && record.Cooldown == nil && len(record.Intervals) == 0 && len(record.RestPeriods) == 0 {
		return nil, ErrTemplateEmpty
	}

	tpl := &domain.PlanTemplate{
		CoachID:     coachID,
		Name:        name,
		Description: description,
		Record:      record,
	}
	templateID, err := s.templateRepo.Create(ctx, tpl)
	if err != nil {
		return nil, err
	}
	tpl.ID = templateID
	return tpl, nil
}

// LoadTemplate fetches a template and decodes its record into fresh builder
// blocks. Each load produces new block IDs, so dropping the same template
// into a plan twice never collides.
func (s *templateService) LoadTemplate(ctx context.Context, coachID, templateID primitive.ObjectID) (*domain.PlanTemplate, []plan.Block, error) {
	tpl, err := s.ownedTemplate(ctx, coachID, templateID)
	if err != nil {
		return nil, nil, err
	}
	decoder := plan.Decoder{Logf: log.Printf}
	return tpl, decoder.Decode(tpl.Record), nil
}

// ListTemplates returns the coach's saved templates, newest first.
func (s *templateService) ListTemplates(ctx context.Context, coachID primitive.ObjectID) ([]domain.PlanTemplate, error) {
	if coachID == primitive.NilObjectID {
		return nil, errors.New("coach ID is required")
	}
	return s.templateRepo.GetByCoachID(ctx, coachID)
}

// DeleteTemplate removes one of the coach's templates.
func (s *templateService) DeleteTemplate(ctx context.Context, coachID, templateID primitive.ObjectID) error {
	if coachID == primitive.NilObjectID || templateID == primitive.NilObjectID {
		return errors.New("coach ID and template ID are required")
	}
	err := s.templateRepo.Delete(ctx, templateID, coachID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTemplateNotFound
	}
	return err
}

func (s *templateService) ownedTemplate(ctx context.Context, coachID, templateID primitive.ObjectID) (*domain.PlanTemplate, error) {
	if coachID == primitive.NilObjectID || templateID == primitive.NilObjectID {
		return nil, errors.New("coach ID and template ID are required")
	}
	tpl, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if tpl.CoachID != coachID {
		return nil, ErrTemplateAccessDenied
	}
	return tpl, nil
}
