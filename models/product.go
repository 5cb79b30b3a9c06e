package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Default package dimensions used when a product carries none. Weight is in
// kg, dimensions in cm, matching what the carrier API expects.
const (
	DefaultWeight  = 0.5
	DefaultLength  = 10
	DefaultBreadth = 10
	DefaultHeight  = 5
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image" json:"image"`
	Categories  []string           `bson:"categories" json:"categories"`
	Size        string             `bson:"size,omitempty" json:"size,omitempty"`
	Color       string             `bson:"color,omitempty" json:"color,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	SKU         string             `bson:"sku,omitempty" json:"sku,omitempty"`
	Active      bool               `bson:"active" json:"active"`

	// Shipping dimensions consumed by the carrier order payload.
	Weight  float64 `bson:"weight" json:"weight"`
	Length  float64 `bson:"length" json:"length"`
	Breadth float64 `bson:"breadth" json:"breadth"`
	Height  float64 `bson:"height" json:"height"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
