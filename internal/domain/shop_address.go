package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShopAddress is a singleton document: exactly zero or one ever exists.
type ShopAddress struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Phone        string             `bson:"phone" json:"phone"`
	Address      string             `bson:"address" json:"address"`
	MapURL       string             `bson:"mapUrl" json:"mapUrl"`
	WorkingHours string             `bson:"workingHours" json:"workingHours"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
