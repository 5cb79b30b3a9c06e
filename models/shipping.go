package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ShippingRate struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                  string             `bson:"name" json:"name"`
	Description           string             `bson:"description" json:"description"`
	BaseRate              float64            `bson:"baseRate" json:"baseRate"`
	PerKmRate             float64            `bson:"perKmRate" json:"perKmRate"`
	FreeShippingThreshold float64            `bson:"freeShippingThreshold" json:"freeShippingThreshold"`
	EstimatedDays         string             `bson:"estimatedDays" json:"estimatedDays"`
	Active                bool               `bson:"active" json:"active"`
	CreatedAt             time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type ShippingZone struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	States        []string           `bson:"states" json:"states"`
	Rate          float64            `bson:"rate" json:"rate"`
	EstimatedDays string             `bson:"estimatedDays" json:"estimatedDays"`
	Active        bool               `bson:"active" json:"active"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ShiprocketIntegration is the single active carrier account record. Only the
// short-lived bearer token is stored, never the account password.
type ShiprocketIntegration struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email             string             `bson:"email" json:"email"`
	Token             string             `bson:"token,omitempty" json:"-"`
	TokenExpiry       *time.Time         `bson:"tokenExpiry,omitempty" json:"tokenExpiry,omitempty"`
	LastAuthenticated *time.Time         `bson:"lastAuthenticated,omitempty" json:"lastAuthenticated,omitempty"`
	IsActive          bool               `bson:"isActive" json:"isActive"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
