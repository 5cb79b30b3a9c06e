package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shreeflow/shreeflow-backend-go/database"
	"github.com/shreeflow/shreeflow-backend-go/models"
	"github.com/shreeflow/shreeflow-backend-go/shipping"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetShippingRates lists configured rate rules (admin).
func GetShippingRates(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.DB.Collection("shipping_rates").Find(ctx, bson.M{}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch shipping rates"})
	}
	var rates []models.ShippingRate
	if err := cursor.All(ctx, &rates); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch shipping rates"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"type": "success", "data": rates})
}

// CreateShippingRate adds a rate rule (admin).
func CreateShippingRate(c echo.Context) error {
	var rate models.ShippingRate
	if err := c.Bind(&rate); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if rate.Name == "" || rate.Description == "" || rate.EstimatedDays == "" ||
		rate.BaseRate < 0 || rate.PerKmRate < 0 || rate.FreeShippingThreshold < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "All fields are required"})
	}

	rate.ID = primitive.NewObjectID()
	rate.Active = true
	rate.CreatedAt = time.Now()
	rate.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := database.DB.Collection("shipping_rates").InsertOne(ctx, rate); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create shipping rate"})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"type":    "success",
		"message": "Shipping rate created successfully",
		"data":    rate,
	})
}

// UpdateShippingRate patches a rate rule (admin).
func UpdateShippingRate(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid shipping rate ID"})
	}

	var updates bson.M
	if err := c.Bind(&updates); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	delete(updates, "_id")
	delete(updates, "createdAt")
	updates["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var updated models.ShippingRate
	err = database.DB.Collection("shipping_rates").FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Shipping rate not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update shipping rate"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"type":    "success",
		"message": "Shipping rate updated successfully",
		"data":    updated,
	})
}

// ToggleShippingRateStatus flips a rate rule's active flag (admin).
func ToggleShippingRateStatus(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid shipping rate ID"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := database.DB.Collection("shipping_rates")
	var rate models.ShippingRate
	if err := collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&rate); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Shipping rate not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to toggle shipping rate status"})
	}

	rate.Active = !rate.Active
	rate.UpdatedAt = time.Now()
	if _, err := collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{
		"active":    rate.Active,
		"updatedAt": rate.UpdatedAt,
	}}); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to toggle shipping rate status"})
	}

	message := "Shipping rate deactivated successfully"
	if rate.Active {
		message = "Shipping rate activated successfully"
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"type":    "success",
		"message": message,
		"data":    rate,
	})
}

// DeleteShippingRate removes a rate rule (admin).
func DeleteShippingRate(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid shipping rate ID"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection("shipping_rates").DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete shipping rate"})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Shipping rate not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"type": "success", "message": "Shipping rate deleted successfully"})
}

// GetShippingZones lists configured zones (admin).
func GetShippingZones(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.DB.Collection("shipping_zones").Find(ctx, bson.M{}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch shipping zones"})
	}
	var zones []models.ShippingZone
	if err := cursor.All(ctx, &zones); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch shipping zones"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"type": "success", "data": zones})
}

// CreateShippingZone adds a per-state flat-rate zone (admin).
func CreateShippingZone(c echo.Context) error {
	var zone models.ShippingZone
	if err := c.Bind(&zone); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if zone.Name == "" || len(zone.States) == 0 || zone.Rate < 0 || zone.EstimatedDays == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Name, states array, rate, and estimated days are required"})
	}

	zone.ID = primitive.NewObjectID()
	zone.Active = true
	zone.CreatedAt = time.Now()
	zone.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := database.DB.Collection("shipping_zones").InsertOne(ctx, zone); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Shipping zone with this name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create shipping zone"})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"type":    "success",
		"message": "Shipping zone created successfully",
		"data":    zone,
	})
}

// UpdateShippingZone patches a zone (admin).
func UpdateShippingZone(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid shipping zone ID"})
	}

	var updates bson.M
	if err := c.Bind(&updates); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	delete(updates, "_id")
	delete(updates, "createdAt")
	updates["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var updated models.ShippingZone
	err = database.DB.Collection("shipping_zones").FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Shipping zone not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update shipping zone"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"type":    "success",
		"message": "Shipping zone updated successfully",
		"data":    updated,
	})
}

// DeleteShippingZone removes a zone (admin).
func DeleteShippingZone(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid shipping zone ID"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection("shipping_zones").DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete shipping zone"})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Shipping zone not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"type": "success", "message": "Shipping zone deleted successfully"})
}

type calculateShippingRequest struct {
	State       string  `json:"state"`
	Pincode     string  `json:"pincode"`
	OrderAmount float64 `json:"orderAmount"`
	TotalWeight float64 `json:"totalWeight"`
}

// CalculateShippingCost estimates shipping locally from the cached rate and
// zone tables. No carrier call is made here.
func CalculateShippingCost(c echo.Context) error {
	var req calculateShippingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if req.State == "" || req.OrderAmount <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "State and order amount are required"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var rates []models.ShippingRate
	cursor, err := database.DB.Collection("shipping_rates").Find(ctx, bson.M{"active": true})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to calculate shipping cost"})
	}
	if err := cursor.All(ctx, &rates); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to calculate shipping cost"})
	}

	var zones []models.ShippingZone
	zoneCursor, err := database.DB.Collection("shipping_zones").Find(ctx, bson.M{"active": true})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to calculate shipping cost"})
	}
	if err := zoneCursor.All(ctx, &zones); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to calculate shipping cost"})
	}

	estimate, err := shipping.EstimateCost(rates, zones, req.State, req.OrderAmount, req.TotalWeight)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"type": "success", "data": estimate})
}

type saveIntegrationRequest struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// SaveShiprocketIntegration stores carrier account settings directly (admin).
// Upsert semantics keep a single record.
func SaveShiprocketIntegration(c echo.Context) error {
	var req saveIntegrationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if req.Email == "" || req.Token == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email and token are required"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	expiry := now.Add(9 * 24 * time.Hour)
	_, err := database.DB.Collection("shiprocket_integration").UpdateOne(ctx, bson.M{}, bson.M{
		"$set": bson.M{
			"email":             req.Email,
			"token":             req.Token,
			"tokenExpiry":       expiry,
			"lastAuthenticated": now,
			"isActive":          true,
			"updatedAt":         now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}, options.Update().SetUpsert(true))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save Shiprocket integration settings"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"type":    "success",
		"message": "Shiprocket integration settings saved successfully",
		"data":    map[string]interface{}{"email": req.Email, "isActive": true},
	})
}

// GetShiprocketIntegration returns the integration record without the token.
func GetShiprocketIntegration(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var record models.ShiprocketIntegration
	err := database.DB.Collection("shiprocket_integration").FindOne(ctx, bson.M{}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusOK, map[string]interface{}{
				"type":    "success",
				"data":    nil,
				"message": "No Shiprocket integration configured",
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch Shiprocket integration settings"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"type": "success", "data": record})
}

// CheckShiprocketStatus reports whether a valid carrier session exists.
func CheckShiprocketStatus(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var record models.ShiprocketIntegration
	err := database.DB.Collection("shiprocket_integration").FindOne(ctx, bson.M{}).Decode(&record)
	if err != nil {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"type": "success",
			"data": map[string]interface{}{"configured": false, "tokenValid": false},
		})
	}

	tokenValid := record.Token != "" && record.TokenExpiry != nil && time.Now().Before(*record.TokenExpiry)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"type": "success",
		"data": map[string]interface{}{
			"configured":        true,
			"email":             record.Email,
			"tokenValid":        tokenValid,
			"lastAuthenticated": record.LastAuthenticated,
		},
	})
}
