package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorite marks a property saved by a user (MongoDB)
type Favorite struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     uint               `bson:"userId" json:"user_id"`
	PropertyID string             `bson:"propertyId" json:"property_id"`
	CreatedAt  time.Time          `bson:"createdAt" json:"created_at"`
}
