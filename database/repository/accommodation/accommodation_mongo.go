package accommodationRepo

import (
	"context"
	"fmt"
	"time"

	"stayhub/database"
	"stayhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAccommodationRepo implements AccommodationRepository using MongoDB.
type MongoAccommodationRepo struct {
	coll *mongo.Collection
}

// NewMongoAccommodationRepo creates a new instance of AccommodationRepository using MongoDB.
func NewMongoAccommodationRepo() AccommodationRepository {
	repo := &MongoAccommodationRepo{coll: database.Collection("accommodations")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAccommodationRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "location", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new accommodation document.
func (r *MongoAccommodationRepo) Create(a *models.Accommodation) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, a)
	if err != nil {
		return fmt.Errorf("failed to create accommodation: %w", err)
	}
	return nil
}

// Update modifies an existing accommodation document.
func (r *MongoAccommodationRepo) Update(a *models.Accommodation) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	a.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": a.ID}, bson.M{"$set": a})
	if err != nil {
		return fmt.Errorf("failed to update accommodation with id %s: %w", a.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("accommodation with id %s not found", a.ID)
	}
	return nil
}

// Delete removes an accommodation document by its ID.
func (r *MongoAccommodationRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete accommodation with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("accommodation with id %s not found", id)
	}
	return nil
}

// GetByID retrieves an accommodation by its unique ID. Returns (nil, nil)
// when no document matches.
func (r *MongoAccommodationRepo) GetByID(id string) (*models.Accommodation, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var a models.Accommodation
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch accommodation with id %s: %w", id, err)
	}
	return &a, nil
}

// GetAll retrieves a page of accommodations.
func (r *MongoAccommodationRepo) GetAll(page, size int) ([]models.Accommodation, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().
		SetSkip(int64(page * size)).
		SetLimit(int64(size)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve accommodations: %w", err)
	}
	defer cursor.Close(ctx)

	var accommodations []models.Accommodation
	for cursor.Next(ctx) {
		var a models.Accommodation
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode accommodation: %w", err)
		}
		accommodations = append(accommodations, a)
	}
	return accommodations, nil
}
