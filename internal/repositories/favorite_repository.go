package repositories

import (
	"context"
	"time"

	"github.com/PzyCool/DomiHive-sub000/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FavoriteRepository defines the interface for favorite operations
type FavoriteRepository interface {
	AddFavorite(ctx context.Context, userID uint, propertyID string) error
	RemoveFavorite(ctx context.Context, userID uint, propertyID string) error
	ListByUser(ctx context.Context, userID uint) ([]models.Favorite, error)
	FavoritedSet(ctx context.Context, userID uint, propertyIDs []string) (map[string]bool, error)
}

// MongoFavoriteRepository implements FavoriteRepository for MongoDB
type MongoFavoriteRepository struct {
	collection *mongo.Collection
}

// NewMongoFavoriteRepository creates a new MongoFavoriteRepository
func NewMongoFavoriteRepository(db *mongo.Database) *MongoFavoriteRepository {
	return &MongoFavoriteRepository{collection: db.Collection("favorites")}
}

func (r *MongoFavoriteRepository) AddFavorite(ctx context.Context, userID uint, propertyID string) error {
	filter := bson.M{"userId": userID, "propertyId": propertyID}
	update := bson.M{"$setOnInsert": bson.M{
		"userId":     userID,
		"propertyId": propertyID,
		"createdAt":  time.Now(),
	}}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

func (r *MongoFavoriteRepository) RemoveFavorite(ctx context.Context, userID uint, propertyID string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID, "propertyId": propertyID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoFavoriteRepository) ListByUser(ctx context.Context, userID uint) ([]models.Favorite, error) {
	var favorites []models.Favorite
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// FavoritedSet returns which of the given property IDs the user has saved,
// for flagging listing responses in one query.
func (r *MongoFavoriteRepository) FavoritedSet(ctx context.Context, userID uint, propertyIDs []string) (map[string]bool, error) {
	set := make(map[string]bool)
	if len(propertyIDs) == 0 {
		return set, nil
	}
	filter := bson.M{"userId": userID, "propertyId": bson.M{"$in": propertyIDs}}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var fav models.Favorite
		if err := cursor.Decode(&fav); err != nil {
			continue
		}
		set[fav.PropertyID] = true
	}
	return set, cursor.Err()
}
