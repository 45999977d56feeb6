package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/toseg1/promethia-v2-sub001/internal/domain"
	"github.com/toseg1/promethia-v2-sub001/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const eventCollectionName = "events"

// mongoEventRepository implements repository.EventRepository
type mongoEventRepository struct {
	collection *mongo.Collection
}

// NewMongoEventRepository creates a new Event repository backed by MongoDB.
func NewMongoEventRepository(db *mongo.Database) repository.EventRepository {
	return &mongoEventRepository{
		collection: db.Collection(eventCollectionName),
	}
}

// Create inserts a new calendar event.
func (r *mongoEventRepository) Create(ctx context.Context, event *domain.Event) (primitive.ObjectID, error) {
	if event.AthleteID == primitive.NilObjectID || event.Title == "" || event.Kind == "" {
		return primitive.NilObjectID, errors.New("event requires athleteId, title, and kind")
	}

	event.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted event ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single event by its ID.
func (r *mongoEventRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Event, error) {
	var event domain.Event
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// GetByAthleteAndRange retrieves an athlete's events with dates in [from, to).
// Date strings are the payload builder's combined timestamps, which sort
// lexicographically in chronological order.
func (r *mongoEventRepository) GetByAthleteAndRange(ctx context.Context, athleteID primitive.ObjectID, from, to string) ([]domain.Event, error) {
	filter := bson.M{"athleteId": athleteID}
	dateFilter := bson.M{}
	if from != "" {
		dateFilter["$gte"] = from
	}
	if to != "" {
		dateFilter["$lt"] = to
	}
	if len(dateFilter) > 0 {
		filter["date"] = dateFilter
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []domain.Event
	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	// Return empty slice if no events found (not an error)
	return events, nil
}

// Update applies a sparse patch produced by the payload builder. Only the
// fields present in the patch are touched; training_data, when present,
// replaces the stored record whole.
func (r *mongoEventRepository) Update(ctx context.Context, id primitive.ObjectID, patch any) error {
	doc, err := toSparseDocument(patch)
	if err != nil {
		return err
	}
	doc["updatedAt"] = time.Now().UTC()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": doc})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// toSparseDocument marshals a payload struct through bson so omitempty tags
// strip the blank fields, leaving only the keys the caller actually set.
func toSparseDocument(patch any) (bson.M, error) {
	raw, err := bson.Marshal(patch)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// SetAttachmentKey records the object-storage key of an uploaded attachment.
func (r *mongoEventRepository) SetAttachmentKey(ctx context.Context, id primitive.ObjectID, objectKey string) error {
	update := bson.M{
		"$set": bson.M{
			"attachmentKey": objectKey,
			"updatedAt":     time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes an event.
func (r *mongoEventRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureEventIndexes creates necessary indexes. Call during startup.
func EnsureEventIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Main query pattern: an athlete's calendar over a date range
			Keys:    bson.D{{Key: "athleteId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "coachId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
