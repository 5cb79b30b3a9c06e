// Command seed provisions a fresh database: the admin user, a sample catalog,
// and the default shipping rate and zone tables.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/shreeflow/shreeflow-backend-go/config"
	"github.com/shreeflow/shreeflow-backend-go/database"
	"github.com/shreeflow/shreeflow-backend-go/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	root := &cobra.Command{
		Use:   "seed",
		Short: "Seed the Shree Flow database",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()
			return database.ConnectDB()
		},
	}

	var adminUsername, adminEmail, adminPassword string
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Create or update the admin user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return seedAdmin(cmd.Context(), adminUsername, adminEmail, adminPassword)
		},
	}
	adminCmd.Flags().StringVar(&adminUsername, "username", "admin", "admin username")
	adminCmd.Flags().StringVar(&adminEmail, "email", "admin@shreeflow.com", "admin email")
	adminCmd.Flags().StringVar(&adminPassword, "password", "", "admin password (required)")
	adminCmd.MarkFlagRequired("password")

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Insert sample products",
		RunE: func(cmd *cobra.Command, args []string) error {
			return seedCatalog(cmd.Context())
		},
	}

	shippingCmd := &cobra.Command{
		Use:   "shipping",
		Short: "Insert default shipping rates and zones",
		RunE: func(cmd *cobra.Command, args []string) error {
			return seedShipping(cmd.Context())
		},
	}

	root.AddCommand(adminCmd, catalogCmd, shippingCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func seedAdmin(ctx context.Context, username, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = database.DB.Collection("users").UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{
			"$set": bson.M{
				"email":     email,
				"password":  string(hash),
				"isAdmin":   true,
				"updatedAt": now,
			},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}
	fmt.Printf("Admin user %q ready (email %s)\n", username, email)
	return nil
}

func seedCatalog(ctx context.Context) error {
	now := time.Now()
	products := []interface{}{
		models.Product{
			Title:       "Fully Automatic Water Level Controller",
			Description: "Automatic water level controller with dry-run protection for overhead and underground tanks.",
			Image:       "https://cdn.shreeflow.com/products/controller-auto.jpg",
			Categories:  []string{"controllers"},
			Price:       2499,
			SKU:         "SF-WLC-AUTO",
			Active:      true,
			Weight:      1.2, Length: 25, Breadth: 18, Height: 10,
			CreatedAt: now, UpdatedAt: now,
		},
		models.Product{
			Title:       "Semi Automatic Water Level Controller",
			Description: "Single-tank semi automatic controller with manual override switch.",
			Image:       "https://cdn.shreeflow.com/products/controller-semi.jpg",
			Categories:  []string{"controllers"},
			Price:       1799,
			SKU:         "SF-WLC-SEMI",
			Active:      true,
			Weight:      0.9, Length: 22, Breadth: 16, Height: 8,
			CreatedAt: now, UpdatedAt: now,
		},
		models.Product{
			Title:       "Water Level Sensor Set",
			Description: "Replacement stainless steel sensor set, pack of five with mounting hardware.",
			Image:       "https://cdn.shreeflow.com/products/sensor-set.jpg",
			Categories:  []string{"accessories"},
			Price:       499,
			SKU:         "SF-SENSOR-5",
			Active:      true,
			Weight:      0.3, Length: 15, Breadth: 10, Height: 5,
			CreatedAt: now, UpdatedAt: now,
		},
	}

	result, err := database.DB.Collection("products").InsertMany(ctx, products)
	if err != nil {
		return err
	}
	fmt.Printf("Inserted %d products\n", len(result.InsertedIDs))
	return nil
}

func seedShipping(ctx context.Context) error {
	now := time.Now()

	rates := []interface{}{
		models.ShippingRate{Name: "Standard Shipping", Description: "Regular delivery within business days", BaseRate: 50, PerKmRate: 2, FreeShippingThreshold: 1500, EstimatedDays: "3-5", Active: true, CreatedAt: now, UpdatedAt: now},
		models.ShippingRate{Name: "Express Shipping", Description: "Fast delivery for urgent orders", BaseRate: 100, PerKmRate: 5, FreeShippingThreshold: 2500, EstimatedDays: "1-2", Active: true, CreatedAt: now, UpdatedAt: now},
		models.ShippingRate{Name: "Economic Shipping", Description: "Budget-friendly shipping option", BaseRate: 30, PerKmRate: 1.5, FreeShippingThreshold: 1000, EstimatedDays: "5-7", Active: true, CreatedAt: now, UpdatedAt: now},
	}

	zones := []interface{}{
		models.ShippingZone{Name: "North India Zone", States: []string{"Delhi", "Punjab", "Haryana", "Himachal Pradesh", "Uttarakhand", "Uttar Pradesh", "Chandigarh"}, Rate: 60, EstimatedDays: "2-4", Active: true, CreatedAt: now, UpdatedAt: now},
		models.ShippingZone{Name: "West India Zone", States: []string{"Maharashtra", "Gujarat", "Rajasthan", "Goa", "Dadra and Nagar Haveli and Daman and Diu"}, Rate: 80, EstimatedDays: "3-5", Active: true, CreatedAt: now, UpdatedAt: now},
		models.ShippingZone{Name: "South India Zone", States: []string{"Karnataka", "Tamil Nadu", "Kerala", "Andhra Pradesh", "Telangana", "Puducherry"}, Rate: 100, EstimatedDays: "4-6", Active: true, CreatedAt: now, UpdatedAt: now},
		models.ShippingZone{Name: "East India Zone", States: []string{"West Bengal", "Odisha", "Jharkhand", "Bihar", "Assam", "Meghalaya", "Manipur", "Mizoram", "Nagaland", "Tripura", "Arunachal Pradesh", "Sikkim"}, Rate: 90, EstimatedDays: "4-6", Active: true, CreatedAt: now, UpdatedAt: now},
		models.ShippingZone{Name: "Central India Zone", States: []string{"Madhya Pradesh", "Chhattisgarh"}, Rate: 70, EstimatedDays: "3-5", Active: true, CreatedAt: now, UpdatedAt: now},
		models.ShippingZone{Name: "Special Areas", States: []string{"Jammu and Kashmir", "Ladakh", "Andaman and Nicobar Islands", "Lakshadweep"}, Rate: 150, EstimatedDays: "7-10", Active: true, CreatedAt: now, UpdatedAt: now},
	}

	if _, err := database.DB.Collection("shipping_rates").DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if _, err := database.DB.Collection("shipping_zones").DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}

	insertedRates, err := database.DB.Collection("shipping_rates").InsertMany(ctx, rates)
	if err != nil {
		return err
	}
	insertedZones, err := database.DB.Collection("shipping_zones").InsertMany(ctx, zones)
	if err != nil {
		return err
	}

	fmt.Printf("Inserted %d shipping rates and %d shipping zones\n", len(insertedRates.InsertedIDs), len(insertedZones.InsertedIDs))
	return nil
}
