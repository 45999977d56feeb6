package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"

	"github.com/toseg1/promethia-v2-sub001/internal/domain"
	"github.com/toseg1/promethia-v2-sub001/internal/plan"
	"github.com/toseg1/promethia-v2-sub001/internal/repository"
	"github.com/toseg1/promethia-v2-sub001/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrEventNotFound     = errors.New("event not found")
	ErrEventAccessDenied = errors.New("access denied to this event")
	ErrAthleteNotFound   = errors.New("athlete user not found")
	ErrAthleteNotRole    = errors.New("user found but is not an athlete")
	ErrAthleteNotManaged = errors.New("athlete is not managed by this coach")
	ErrUploadURLError    = errors.New("failed to generate upload URL")
	ErrNoAttachment      = errors.New("event has no attachment")
)

// UploadURLResponse carries a presigned upload URL and the object key the
// client must confirm after a successful PUT.
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// --- Service Interface ---
type EventService interface {
	// CreateEvent builds the payload for the given kind, encodes the block
	// tree when present, and persists a new calendar event.
	CreateEvent(ctx context.Context, actorID primitive.ObjectID, in plan.EventInput) (*domain.Event, error)
	// GetEvent returns an event together with the builder block list decoded
	// from its stored plan record (nil for race/custom events).
	GetEvent(ctx context.Context, actorID, eventID primitive.ObjectID) (*domain.Event, []plan.Block, error)
	ListEvents(ctx context.Context, actorID, athleteID primitive.ObjectID, from, to string) ([]domain.Event, error)
	// UpdateEvent applies a sparse patch: blank input fields leave the stored
	// values unchanged, the plan record is replaced whole when blocks are sent.
	UpdateEvent(ctx context.Context, actorID, eventID primitive.ObjectID, in plan.EventInput) (*domain.Event, error)
	DeleteEvent(ctx context.Context, actorID, eventID primitive.ObjectID) error

	// Attachment flow (race course files, exported plan documents).
	RequestAttachmentUpload(ctx context.Context, actorID, eventID primitive.ObjectID, contentType string) (*UploadURLResponse, error)
	ConfirmAttachment(ctx context.Context, actorID, eventID primitive.ObjectID, objectKey string) error
	GetAttachmentDownloadURL(ctx context.Context, actorID, eventID primitive.ObjectID) (string, error)
}

// --- Service Implementation ---

// eventService implements the EventService interface.
type eventService struct {
	eventRepo   repository.EventRepository
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage
}

// NewEventService creates a new instance of eventService.
func NewEventService(
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	fileStorage storage.FileStorage,
) EventService {
	return &eventService{
		eventRepo:   eventRepo,
		userRepo:    userRepo,
		fileStorage: fileStorage,
	}
}

// CreateEvent validates the target athlete, runs the payload builder, and
// persists the resulting event.
func (s *eventService) CreateEvent(ctx context.Context, actorID primitive.ObjectID, in plan.EventInput) (*domain.Event, error) {
	if actorID == primitive.NilObjectID {
		return nil, errors.New("actor ID is required")
	}

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errors.New("acting user not found")
		}
		return nil, err
	}

	athleteID, coachID, err := s.resolveOwnership(ctx, actor, in.AthleteID)
	if err != nil {
		return nil, err
	}
	// The payload record stores the athlete as a hex reference.
	in.AthleteID = athleteID.Hex()

	payload, err := plan.BuildEventPayload(in)
	if err != nil {
		return nil, err // ErrUnsupportedEventKind is the only builder failure
	}

	event := &domain.Event{
		CoachID:   coachID,
		AthleteID: athleteID,
		Kind:      in.Kind,
	}
	applyPayloadToEvent(event, payload)

	eventID, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, err
	}
	event.ID = eventID
	return event, nil
}

// GetEvent fetches an event and decodes its plan record back into builder
// blocks. Block IDs are freshly generated on every call.
func (s *eventService) GetEvent(ctx context.Context, actorID, eventID primitive.ObjectID) (*domain.Event, []plan.Block, error) {
	event, err := s.authorizedEvent(ctx, actorID, eventID)
	if err != nil {
		return nil, nil, err
	}

	var blocks []plan.Block
	if event.TrainingData != nil {
		decoder := plan.Decoder{Logf: log.Printf}
		blocks = decoder.Decode(*event.TrainingData)
	}
	return event, blocks, nil
}

// ListEvents returns the athlete's calendar over a date range. Coaches may
// list their managed athletes' calendars; athletes only their own.
func (s *eventService) ListEvents(ctx context.Context, actorID, athleteID primitive.ObjectID, from, to string) ([]domain.Event, error) {
	if athleteID == primitive.NilObjectID {
		athleteID = actorID
	}
	if athleteID != actorID {
		athlete, err := s.userRepo.GetByID(ctx, athleteID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrAthleteNotFound
			}
			return nil, err
		}
		if athlete.CoachID == nil || *athlete.CoachID != actorID {
			return nil, ErrAthleteNotManaged
		}
	}
	return s.eventRepo.GetByAthleteAndRange(ctx, athleteID, from, to)
}

// UpdateEvent rebuilds the payload for the stored event kind and applies it
// as a sparse patch. The input kind, when blank, defaults to the stored one;
// changing kind across shapes is not supported.
func (s *eventService) UpdateEvent(ctx context.Context, actorID, eventID primitive.ObjectID, in plan.EventInput) (*domain.Event, error) {
	event, err := s.authorizedEvent(ctx, actorID, eventID)
	if err != nil {
		return nil, err
	}

	if in.Kind == "" {
		in.Kind = event.Kind
	}
	if in.Kind != event.Kind {
		return nil, fmt.Errorf("cannot change event kind from %q to %q", event.Kind, in.Kind)
	}
	// The athlete reference is immutable on update; the patch never moves an
	// event to another calendar.
	in.AthleteID = ""

	payload, err := plan.BuildEventPayload(in)
	if err != nil {
		return nil, err
	}

	if err := s.eventRepo.Update(ctx, eventID, payload); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return s.eventRepo.GetByID(ctx, eventID)
}

// DeleteEvent removes an event and its attachment, if any.
func (s *eventService) DeleteEvent(ctx context.Context, actorID, eventID primitive.ObjectID) error {
	event, err := s.authorizedEvent(ctx, actorID, eventID)
	if err != nil {
		return err
	}

	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	if event.AttachmentKey != "" {
		if err := s.fileStorage.DeleteObject(ctx, event.AttachmentKey); err != nil {
			// The event row is already gone; orphaned objects are cleaned up
			// by a bucket lifecycle rule.
			log.Printf("WARN: failed to delete attachment %q for event %s: %v", event.AttachmentKey, eventID.Hex(), err)
		}
	}
	return nil
}

// === Attachments ===

// RequestAttachmentUpload generates a presigned PUT URL for an event
// attachment and the object key the client must confirm afterwards.
func (s *eventService) RequestAttachmentUpload(ctx context.Context, actorID, eventID primitive.ObjectID, contentType string) (*UploadURLResponse, error) {
	if contentType == "" {
		return nil, errors.New("content type is required")
	}
	event, err := s.authorizedEvent(ctx, actorID, eventID)
	if err != nil {
		return nil, err
	}

	uniqueID := uuid.NewString()
	fileExtension := ""
	parts := strings.Split(contentType, "/")
	if len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("events", event.AthleteID.Hex(), eventID.Hex(), fmt.Sprintf("%s.%s", uniqueID, fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}

	return &UploadURLResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	}, nil
}

// ConfirmAttachment records the object key after the client has completed the
// upload against the presigned URL.
func (s *eventService) ConfirmAttachment(ctx context.Context, actorID, eventID primitive.ObjectID, objectKey string) error {
	if objectKey == "" {
		return errors.New("object key is required")
	}
	if _, err := s.authorizedEvent(ctx, actorID, eventID); err != nil {
		return err
	}
	return s.eventRepo.SetAttachmentKey(ctx, eventID, objectKey)
}

// GetAttachmentDownloadURL generates a presigned GET URL for the event's
// attachment.
func (s *eventService) GetAttachmentDownloadURL(ctx context.Context, actorID, eventID primitive.ObjectID) (string, error) {
	event, err := s.authorizedEvent(ctx, actorID, eventID)
	if err != nil {
		return "", err
	}
	if event.AttachmentKey == "" {
		return "", ErrNoAttachment
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, event.AttachmentKey, storage.DefaultPresignedURLExpiry)
}

// === Helpers ===

// authorizedEvent fetches an event and checks the actor is its athlete or
// the scheduling coach.
func (s *eventService) authorizedEvent(ctx context.Context, actorID, eventID primitive.ObjectID) (*domain.Event, error) {
	if actorID == primitive.NilObjectID || eventID == primitive.NilObjectID {
		return nil, errors.New("actor ID and event ID are required")
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if event.AthleteID != actorID && event.CoachID != actorID {
		return nil, ErrEventAccessDenied
	}
	return event, nil
}

// resolveOwnership determines which athlete the event belongs to and which
// coach (if any) scheduled it. Athletes schedule for themselves; coaches must
// name a managed athlete.
func (s *eventService) resolveOwnership(ctx context.Context, actor *domain.User, athleteHex string) (athleteID, coachID primitive.ObjectID, err error) {
	if actor.IsAthlete() {
		return actor.ID, primitive.NilObjectID, nil
	}

	if athleteHex == "" {
		return primitive.NilObjectID, primitive.NilObjectID, errors.New("coach must specify an athlete")
	}
	athleteID, err = primitive.ObjectIDFromHex(athleteHex)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, errors.New("invalid athlete ID format")
	}

	athlete, err := s.userRepo.GetByID(ctx, athleteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, primitive.NilObjectID, ErrAthleteNotFound
		}
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	if !athlete.IsAthlete() {
		return primitive.NilObjectID, primitive.NilObjectID, ErrAthleteNotRole
	}
	if athlete.CoachID == nil || *athlete.CoachID != actor.ID {
		return primitive.NilObjectID, primitive.NilObjectID, ErrAthleteNotManaged
	}
	return athleteID, actor.ID, nil
}

// applyPayloadToEvent copies a freshly built payload onto a new event record.
func applyPayloadToEvent(event *domain.Event, payload any) {
	switch p := payload.(type) {
	case plan.TrainingPayload:
		event.Title = p.Title
		event.Date = p.Date
		event.Sport = p.Sport
		event.Notes = p.Notes
		event.TrainingData = p.TrainingData
	case plan.RacePayload:
		event.Title = p.Title
		event.Date = p.Date
		event.Sport = p.Sport
		event.Location = p.Location
		event.Distance = p.Distance
		event.Notes = p.Notes
	case plan.CustomPayload:
		event.Title = p.Title
		event.Date = p.Date
		event.Notes = p.Notes
	}
}
