package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/toseg1/promethia-v2-sub001/internal/domain"
	"github.com/toseg1/promethia-v2-sub001/internal/plan"
	"github.com/toseg1/promethia-v2-sub001/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- In-memory fakes ---

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	user.ID = primitive.NewObjectID()
	r.users[user.ID] = user
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) AddAthleteIDToCoach(ctx context.Context, coachID, athleteID primitive.ObjectID) error {
	return nil
}

func (r *fakeUserRepo) GetAthletesByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) SetCoachForAthlete(ctx context.Context, athleteID, coachID primitive.ObjectID) error {
	return nil
}

type fakeEventRepo struct {
	events      map[primitive.ObjectID]*domain.Event
	lastPatch   any
	lastPatched primitive.ObjectID
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[primitive.ObjectID]*domain.Event)}
}

func (r *fakeEventRepo) Create(ctx context.Context, event *domain.Event) (primitive.ObjectID, error) {
	event.ID = primitive.NewObjectID()
	event.CreatedAt = time.Now().UTC()
	event.UpdatedAt = event.CreatedAt
	r.events[event.ID] = event
	return event.ID, nil
}

func (r *fakeEventRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return e, nil
}

func (r *fakeEventRepo) GetByAthleteAndRange(ctx context.Context, athleteID primitive.ObjectID, from, to string) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range r.events {
		if e.AthleteID != athleteID {
			continue
		}
		if from != "" && e.Date < from {
			continue
		}
		if to != "" && e.Date >= to {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeEventRepo) Update(ctx context.Context, id primitive.ObjectID, patch any) error {
	if _, ok := r.events[id]; !ok {
		return repository.ErrNotFound
	}
	r.lastPatch = patch
	r.lastPatched = id
	return nil
}

func (r *fakeEventRepo) SetAttachmentKey(ctx context.Context, id primitive.ObjectID, objectKey string) error {
	e, ok := r.events[id]
	if !ok {
		return repository.ErrNotFound
	}
	e.AttachmentKey = objectKey
	return nil
}

func (r *fakeEventRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.events, id)
	return nil
}

type fakeStorage struct {
	deleted []string
}

func (s *fakeStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey, contentType string, expires time.Duration) (string, error) {
	return "https://storage.test/upload/" + objectKey, nil
}

func (s *fakeStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	return "https://storage.test/download/" + objectKey, nil
}

func (s *fakeStorage) DeleteObject(ctx context.Context, objectKey string) error {
	s.deleted = append(s.deleted, objectKey)
	return nil
}

// --- Fixtures ---

func testUsers() (coach, athlete, stranger *domain.User) {
	coach = &domain.User{ID: primitive.NewObjectID(), Name: "Coach", Email: "coach@test", Role: domain.RoleCoach}
	athlete = &domain.User{ID: primitive.NewObjectID(), Name: "Athlete", Email: "athlete@test", Role: domain.RoleAthlete, CoachID: &coach.ID}
	stranger = &domain.User{ID: primitive.NewObjectID(), Name: "Other", Email: "other@test", Role: domain.RoleAthlete}
	return coach, athlete, stranger
}

// --- Tests ---

// TestCreateEventAthleteSelf verifies an athlete scheduling their own
// training event gets the encoded plan record attached.
func TestCreateEventAthleteSelf(t *testing.T) {
	coach, athlete, _ := testUsers()
	svc := NewEventService(newFakeEventRepo(), newFakeUserRepo(coach, athlete), &fakeStorage{})

	event, err := svc.CreateEvent(context.Background(), athlete.ID, plan.EventInput{
		Kind:  plan.EventTraining,
		Title: "Intervals",
		Date:  "2025-03-10",
		Time:  "18:00",
		Blocks: []plan.Block{
			{ID: "w", Type: plan.BlockWarmup, Duration: "10", DurationUnit: "min"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.AthleteID != athlete.ID {
		t.Errorf("athleteID = %v, want self", event.AthleteID)
	}
	if event.CoachID != primitive.NilObjectID {
		t.Errorf("self-scheduled event should carry no coach, got %v", event.CoachID)
	}
	if event.Date != "2025-03-10T18:00:00" {
		t.Errorf("date = %q, want combined timestamp", event.Date)
	}
	if event.TrainingData == nil || event.TrainingData.Warmup == nil {
		t.Fatalf("training data missing: %+v", event.TrainingData)
	}
}

// TestCreateEventCoachForAthlete verifies a coach can schedule only for
// managed athletes.
func TestCreateEventCoachForAthlete(t *testing.T) {
	coach, athlete, stranger := testUsers()
	svc := NewEventService(newFakeEventRepo(), newFakeUserRepo(coach, athlete, stranger), &fakeStorage{})

	event, err := svc.CreateEvent(context.Background(), coach.ID, plan.EventInput{
		Kind:      plan.EventRace,
		Title:     "City Half",
		Date:      "2025-04-06",
		AthleteID: athlete.ID.Hex(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.CoachID != coach.ID || event.AthleteID != athlete.ID {
		t.Errorf("ownership = coach %v athlete %v", event.CoachID, event.AthleteID)
	}

	_, err = svc.CreateEvent(context.Background(), coach.ID, plan.EventInput{
		Kind:      plan.EventRace,
		Title:     "Not yours",
		Date:      "2025-04-06",
		AthleteID: stranger.ID.Hex(),
	})
	if !errors.Is(err, ErrAthleteNotManaged) {
		t.Fatalf("err = %v, want ErrAthleteNotManaged", err)
	}
}

// TestCreateEventUnsupportedKind verifies the builder's one fatal error is
// surfaced to the caller.
func TestCreateEventUnsupportedKind(t *testing.T) {
	coach, athlete, _ := testUsers()
	svc := NewEventService(newFakeEventRepo(), newFakeUserRepo(coach, athlete), &fakeStorage{})

	_, err := svc.CreateEvent(context.Background(), athlete.ID, plan.EventInput{
		Kind:  plan.EventKind("party"),
		Title: "nope",
		Date:  "2025-04-06",
	})
	if !errors.Is(err, plan.ErrUnsupportedEventKind) {
		t.Fatalf("err = %v, want ErrUnsupportedEventKind", err)
	}
}

// TestUpdateEventSparsePatch verifies updates go through the payload builder
// and keep the stored kind.
func TestUpdateEventSparsePatch(t *testing.T) {
	coach, athlete, _ := testUsers()
	eventRepo := newFakeEventRepo()
	svc := NewEventService(eventRepo, newFakeUserRepo(coach, athlete), &fakeStorage{})

	created, err := svc.CreateEvent(context.Background(), athlete.ID, plan.EventInput{
		Kind:  plan.EventTraining,
		Title: "Intervals",
		Date:  "2025-03-10",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.UpdateEvent(context.Background(), athlete.ID, created.ID, plan.EventInput{
		Notes: "bring spikes",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	patch, ok := eventRepo.lastPatch.(plan.TrainingPayload)
	if !ok {
		t.Fatalf("patch type = %T, want TrainingPayload", eventRepo.lastPatch)
	}
	if patch.Notes != "bring spikes" {
		t.Errorf("patch notes = %q", patch.Notes)
	}
	if patch.Title != "" || patch.Date != "" || patch.TrainingData != nil {
		t.Errorf("untouched fields must stay blank in the patch: %+v", patch)
	}

	// Changing kind across shapes is rejected.
	_, err = svc.UpdateEvent(context.Background(), athlete.ID, created.ID, plan.EventInput{Kind: plan.EventRace})
	if err == nil || !strings.Contains(err.Error(), "cannot change event kind") {
		t.Fatalf("err = %v, want kind-change rejection", err)
	}
}

// TestEventAccessControl verifies only the athlete or the scheduling coach
// can read an event.
func TestEventAccessControl(t *testing.T) {
	coach, athlete, stranger := testUsers()
	svc := NewEventService(newFakeEventRepo(), newFakeUserRepo(coach, athlete, stranger), &fakeStorage{})

	created, err := svc.CreateEvent(context.Background(), coach.ID, plan.EventInput{
		Kind:      plan.EventCustom,
		Title:     "Team meeting",
		Date:      "2025-03-11",
		AthleteID: athlete.ID.Hex(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, _, err := svc.GetEvent(context.Background(), athlete.ID, created.ID); err != nil {
		t.Errorf("athlete read: %v", err)
	}
	if _, _, err := svc.GetEvent(context.Background(), coach.ID, created.ID); err != nil {
		t.Errorf("coach read: %v", err)
	}
	if _, _, err := svc.GetEvent(context.Background(), stranger.ID, created.ID); !errors.Is(err, ErrEventAccessDenied) {
		t.Errorf("stranger read err = %v, want ErrEventAccessDenied", err)
	}
}

// TestGetEventDecodesBlocks verifies single-event reads decode the stored
// record back into builder blocks with fresh IDs.
func TestGetEventDecodesBlocks(t *testing.T) {
	coach, athlete, _ := testUsers()
	svc := NewEventService(newFakeEventRepo(), newFakeUserRepo(coach, athlete), &fakeStorage{})

	created, err := svc.CreateEvent(context.Background(), athlete.ID, plan.EventInput{
		Kind:  plan.EventTraining,
		Title: "Intervals",
		Date:  "2025-03-10",
		Blocks: []plan.Block{
			{ID: "w", Type: plan.BlockWarmup, Duration: "10", DurationUnit: "min"},
			{ID: "i", Type: plan.BlockInterval, IntervalType: plan.IntervalTime, Duration: "5", DurationUnit: "min", Repetitions: "4"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, blocks, err := svc.GetEvent(context.Background(), athlete.ID, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].Type != plan.BlockWarmup || blocks[1].Type != plan.BlockInterval {
		t.Errorf("block types = %q, %q", blocks[0].Type, blocks[1].Type)
	}
	if blocks[0].ID == "w" || blocks[1].ID == "i" {
		t.Error("decoded blocks must carry fresh IDs")
	}
}

// TestAttachmentFlow verifies the presigned upload round trip and cleanup on
// delete.
func TestAttachmentFlow(t *testing.T) {
	coach, athlete, _ := testUsers()
	store := &fakeStorage{}
	svc := NewEventService(newFakeEventRepo(), newFakeUserRepo(coach, athlete), store)

	created, err := svc.CreateEvent(context.Background(), athlete.ID, plan.EventInput{
		Kind: plan.EventRace, Title: "City Half", Date: "2025-04-06",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	resp, err := svc.RequestAttachmentUpload(context.Background(), athlete.ID, created.ID, "application/gpx+xml")
	if err != nil {
		t.Fatalf("request upload: %v", err)
	}
	if resp.UploadURL == "" || resp.ObjectKey == "" {
		t.Fatalf("upload response incomplete: %+v", resp)
	}
	if !strings.HasPrefix(resp.ObjectKey, "events/"+athlete.ID.Hex()) {
		t.Errorf("object key %q not scoped to athlete", resp.ObjectKey)
	}

	if err := svc.ConfirmAttachment(context.Background(), athlete.ID, created.ID, resp.ObjectKey); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	url, err := svc.GetAttachmentDownloadURL(context.Background(), athlete.ID, created.ID)
	if err != nil || url == "" {
		t.Fatalf("download url: %v %q", err, url)
	}

	if err := svc.DeleteEvent(context.Background(), athlete.ID, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != resp.ObjectKey {
		t.Errorf("attachment not cleaned up: %v", store.deleted)
	}
}
