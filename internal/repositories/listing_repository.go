package repositories

import (
	"context"
	"time"

	"github.com/PzyCool/DomiHive-sub000/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListingRepository defines the interface for curated listing operations.
// Curated listings are agent-submitted, verified records, unlike the
// synthesized browsing sets.
type ListingRepository interface {
	InsertListing(ctx context.Context, listing *models.PropertyListing) error
	GetByID(ctx context.Context, id string) (*models.PropertyListing, error)
	ListByCategory(ctx context.Context, category string) ([]models.PropertyListing, error)
}

// MongoListingRepository implements ListingRepository for MongoDB
type MongoListingRepository struct {
	collection *mongo.Collection
}

// NewMongoListingRepository creates a new MongoListingRepository
func NewMongoListingRepository(db *mongo.Database) *MongoListingRepository {
	return &MongoListingRepository{collection: db.Collection("listings")}
}

func (r *MongoListingRepository) InsertListing(ctx context.Context, listing *models.PropertyListing) error {
	if listing.ListedAt.IsZero() {
		listing.ListedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, listing)
	return err
}

func (r *MongoListingRepository) GetByID(ctx context.Context, id string) (*models.PropertyListing, error) {
	var listing models.PropertyListing
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&listing)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &listing, nil
}

func (r *MongoListingRepository) ListByCategory(ctx context.Context, category string) ([]models.PropertyListing, error) {
	var listings []models.PropertyListing
	findOptions := options.Find().SetSort(bson.D{{Key: "listedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"category": category}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}
