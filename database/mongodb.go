package database

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var DB *mongo.Database

func ConnectDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoURI := os.Getenv("MONGODB_URI")
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return err
	}

	// Ping the database
	err = client.Ping(ctx, nil)
	if err != nil {
		return err
	}

	DB = client.Database("shreeflow")
	log.Println("🗄️ Connected to MongoDB!")

	if err := ensureIndexes(ctx); err != nil {
		log.Printf("Failed to create indexes: %v", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context) error {
	orderIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "customer.email", Value: 1}}},
		{Keys: bson.D{{Key: "customer.phone", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "shipment.awbCode", Value: 1}}, Options: options.Index().SetSparse(true)},
	}
	if _, err := DB.Collection("orders").Indexes().CreateMany(ctx, orderIndexes); err != nil {
		return err
	}

	productIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "categories", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	if _, err := DB.Collection("products").Indexes().CreateMany(ctx, productIndexes); err != nil {
		return err
	}

	articleIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "publishedAt", Value: -1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
	}
	if _, err := DB.Collection("articles").Indexes().CreateMany(ctx, articleIndexes); err != nil {
		return err
	}

	zoneIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "states", Value: 1}}},
	}
	if _, err := DB.Collection("shipping_zones").Indexes().CreateMany(ctx, zoneIndexes); err != nil {
		return err
	}

	_, err := DB.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
