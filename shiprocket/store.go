package shiprocket

import (
	"context"
	"time"

	"github.com/shreeflow/shreeflow-backend-go/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTokenStore keeps the integration record in a single-document
// collection. Upsert semantics: at most one active record ever exists.
type MongoTokenStore struct {
	collection *mongo.Collection
}

func NewMongoTokenStore(db *mongo.Database) *MongoTokenStore {
	return &MongoTokenStore{collection: db.Collection("shiprocket_integration")}
}

func (s *MongoTokenStore) Load(ctx context.Context) (*models.ShiprocketIntegration, error) {
	var record models.ShiprocketIntegration
	err := s.collection.FindOne(ctx, bson.M{"isActive": true}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (s *MongoTokenStore) Save(ctx context.Context, email, token string, expiry time.Time) error {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"email":             email,
			"token":             token,
			"tokenExpiry":       expiry,
			"lastAuthenticated": now,
			"isActive":          true,
			"updatedAt":         now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	_, err := s.collection.UpdateOne(ctx, bson.M{}, update, options.Update().SetUpsert(true))
	return err
}

func (s *MongoTokenStore) Invalidate(ctx context.Context) error {
	_, err := s.collection.UpdateOne(ctx, bson.M{}, bson.M{
		"$set":   bson.M{"updatedAt": time.Now()},
		"$unset": bson.M{"token": "", "tokenExpiry": ""},
	})
	return err
}
