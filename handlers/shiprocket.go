package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shreeflow/shreeflow-backend-go/database"
	"github.com/shreeflow/shreeflow-backend-go/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type authenticateShiprocketRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthenticateShiprocket logs in with the carrier and stores the issued token
// in the integration record. The password is used for this call only and
// never persisted.
func AuthenticateShiprocket(c echo.Context) error {
	var req authenticateShiprocketRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email and password are required"})
	}

	if _, err := shiprocketClient.Authenticate(c.Request().Context(), req.Email, req.Password); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"type":    "success",
		"message": "Shiprocket authentication successful",
		"data":    map[string]string{"email": req.Email},
	})
}

type createShipmentRequest struct {
	OrderID string `json:"order_id"`
}

// CreateShipmentForOrder runs the full carrier workflow for an order and
// persists the shipment sub-record in one update after every step succeeded.
// A failed attempt leaves the order exactly as it was.
func CreateShipmentForOrder(c echo.Context) error {
	var req createShipmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	objID, err := primitive.ObjectIDFromHex(req.OrderID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "order_id is required and must be valid"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var order models.Order
	if err := database.DB.Collection("orders").FindOne(ctx, bson.M{"_id": objID}).Decode(&order); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Order not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch order"})
	}

	if order.Shipment.ShiprocketOrderID != "" {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Order already has a shipment"})
	}

	products, err := loadOrderProducts(ctx, order)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch order products"})
	}

	result, err := shiprocketClient.CreateShipment(ctx, &order, products)
	if err != nil {
		return err
	}

	// Conditional filter keeps a concurrent duplicate run from overwriting an
	// already persisted shipment.
	update := bson.M{"$set": bson.M{
		"status":                     models.OrderStatusShipped,
		"shipment.shiprocketOrderId": result.ShiprocketOrderID,
		"shipment.shipmentId":        result.ShipmentID,
		"shipment.awbCode":           result.AWBCode,
		"shipment.courierName":       result.CourierName,
		"shipment.shippingCost":      result.ShippingCost,
		"shipment.status":            "AWB_ASSIGNED",
		"updatedAt":                  time.Now(),
	}}
	res, err := database.DB.Collection("orders").UpdateOne(ctx, bson.M{
		"_id":                        objID,
		"shipment.shiprocketOrderId": bson.M{"$in": []interface{}{nil, ""}},
	}, update)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Shipment created but order update failed"})
	}
	if res.MatchedCount == 0 {
		log.Printf("duplicate shipment detected for order %s: carrier order %s not persisted", objID.Hex(), result.ShiprocketOrderID)
		return c.JSON(http.StatusConflict, map[string]string{"error": "Order already has a shipment"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"type":    "success",
		"message": "Shipping order created successfully",
		"data": map[string]interface{}{
			"shiprocket_order_id": result.ShiprocketOrderID,
			"shipment_id":         result.ShipmentID,
			"awb_code":            result.AWBCode,
			"courier_name":        result.CourierName,
			"shipping_cost":       result.ShippingCost,
		},
	})
}

func loadOrderProducts(ctx context.Context, order models.Order) ([]models.Product, error) {
	ids := make([]primitive.ObjectID, 0, len(order.Products))
	for _, item := range order.Products {
		ids = append(ids, item.ProductID)
	}
	cursor, err := database.DB.Collection("products").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetLiveRates proxies a serviceability lookup to the carrier (admin).
func GetLiveRates(c echo.Context) error {
	pickup := c.QueryParam("pickup_postcode")
	delivery := c.QueryParam("delivery_postcode")
	weight, _ := strconv.ParseFloat(c.QueryParam("weight"), 64)
	if pickup == "" || delivery == "" || weight <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "pickup_postcode, delivery_postcode, and weight are required"})
	}

	length := queryFloat(c, "length", 10)
	breadth := queryFloat(c, "breadth", 10)
	height := queryFloat(c, "height", 10)

	couriers, err := shiprocketClient.GetServiceability(c.Request().Context(), pickup, delivery, weight, length, breadth, height)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"type": "success", "data": couriers})
}

func queryFloat(c echo.Context, name string, fallback float64) float64 {
	v, err := strconv.ParseFloat(c.QueryParam(name), 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// GetPickupLocations lists the carrier account's pickup addresses (admin).
func GetPickupLocations(c echo.Context) error {
	locations, err := shiprocketClient.GetPickupLocations(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"type": "success", "data": locations})
}

// TrackShipmentByAWB proxies tracking to the carrier and mirrors the returned
// status into the matching local order. The carrier stays authoritative; the
// local copy is a cache.
func TrackShipmentByAWB(c echo.Context) error {
	awb := c.Param("awb")
	if awb == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "AWB number is required"})
	}

	tracking, err := shiprocketClient.TrackShipment(c.Request().Context(), awb)
	if err != nil {
		return err
	}

	if status := tracking.CurrentStatus(); status != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_, err := database.DB.Collection("orders").UpdateOne(ctx,
			bson.M{"shipment.awbCode": awb},
			bson.M{"$set": bson.M{
				"shipment.status":       status,
				"shipment.lastLocation": tracking.LastLocation(),
				"updatedAt":             time.Now(),
			}},
		)
		if err != nil {
			log.Printf("failed to mirror tracking status for awb %s: %v", awb, err)
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"type": "success", "data": tracking})
}

type cancelShipmentRequest struct {
	AWB string `json:"awb"`
}

// CancelShipmentByAWB cancels with the carrier and, only on carrier-confirmed
// success, marks the local order cancelled.
func CancelShipmentByAWB(c echo.Context) error {
	var req cancelShipmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if req.AWB == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "AWB number is required"})
	}

	result, err := shiprocketClient.CancelShipment(c.Request().Context(), req.AWB)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err = database.DB.Collection("orders").UpdateOne(ctx,
		bson.M{"shipment.awbCode": req.AWB},
		bson.M{"$set": bson.M{
			"status":    models.OrderStatusCancelled,
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		log.Printf("failed to mark order cancelled for awb %s: %v", req.AWB, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"type":    "success",
		"message": "Shipment cancelled successfully",
		"data":    result,
	})
}
