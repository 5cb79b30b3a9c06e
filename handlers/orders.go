package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shreeflow/shreeflow-backend-go/database"
	"github.com/shreeflow/shreeflow-backend-go/models"
	"github.com/shreeflow/shreeflow-backend-go/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateOrder handles guest checkout. COD orders are paid immediately; online
// orders stay pending until the payment signature verifies.
func CreateOrder(c echo.Context) error {
	var order models.Order
	if err := c.Bind(&order); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	if order.Customer.Name == "" || order.Customer.Email == "" || order.Customer.Phone == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Customer name, email and phone are required"})
	}
	if len(order.Products) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Order must contain at least one product"})
	}
	if order.Address.Street == "" || order.Address.City == "" || order.Address.State == "" || order.Address.ZipCode == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Complete shipping address is required"})
	}
	if order.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Order amount must be positive"})
	}

	message := prepareNewOrder(&order)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := database.DB.Collection("orders").InsertOne(ctx, order); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create order. Please try again."})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"type":    "success",
		"message": message,
		"data":    order,
	})
}

// prepareNewOrder resets everything a guest must not control. Payment
// references are written only by the verification endpoint; a pre-stamped
// razorpayPaymentId would otherwise flip the carrier payload to Prepaid.
func prepareNewOrder(order *models.Order) (message string) {
	order.ID = primitive.NewObjectID()
	order.Customer.Email = strings.ToLower(order.Customer.Email)
	if order.Address.Country == "" {
		order.Address.Country = "India"
	}
	order.Status = models.OrderStatusPending
	order.Shipment = models.Shipment{}
	order.RazorpayOrderID = ""
	order.RazorpayPaymentID = ""
	order.RazorpaySignature = ""
	order.PaymentDate = nil
	order.TrackingURL = ""
	order.EstimatedDelivery = nil
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()

	if order.PaymentMethod == models.PaymentMethodCOD {
		now := time.Now()
		order.Status = models.OrderStatusPaid
		order.PaymentDate = &now
		return "Order placed successfully! Pay on delivery."
	}
	order.PaymentMethod = models.PaymentMethodOnline
	return "Order created successfully"
}

// GetOrdersByContact lets a guest look up their recent orders by email and
// phone, newest first, capped at 10.
func GetOrdersByContact(c echo.Context) error {
	email := strings.ToLower(c.QueryParam("email"))
	phone := c.QueryParam("phone")
	if email == "" || phone == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email and phone are required"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(10)
	cursor, err := database.DB.Collection("orders").Find(ctx, bson.M{
		"customer.email": email,
		"customer.phone": phone,
	}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve orders. Please try again."})
	}

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve orders. Please try again."})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"type":  "success",
		"data":  orders,
		"count": len(orders),
	})
}

// GetAllOrders lists orders for the admin dashboard with status filter and
// name/email/phone search.
func GetAllOrders(c echo.Context) error {
	page, limit, skip := utils.GetPaginationParams(c)

	filter := bson.M{}
	if status := c.QueryParam("status"); status != "" {
		filter["status"] = status
	}
	if search := c.QueryParam("search"); search != "" {
		regex := primitive.Regex{Pattern: search, Options: "i"}
		filter["$or"] = []bson.M{
			{"customer.name": regex},
			{"customer.email": regex},
			{"customer.phone": regex},
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := database.DB.Collection("orders")
	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve orders"})
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetSkip(skip).SetLimit(int64(limit))
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve orders"})
	}
	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve orders"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"type":       "success",
		"data":       orders,
		"pagination": utils.NewPagination(total, page, limit),
	})
}

type updateOrderStatusRequest struct {
	Status            models.OrderStatus `json:"status"`
	CourierName       string             `json:"courier_name"`
	AWB               string             `json:"awb"`
	TrackingURL       string             `json:"tracking_url"`
	EstimatedDelivery string             `json:"estimated_delivery"`
}

// UpdateOrderStatus moves an order through its lifecycle (admin). An order
// can only become shipped once it carries a waybill.
func UpdateOrderStatus(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid order ID"})
	}

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if !models.IsValidStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid order status"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := database.DB.Collection("orders")

	if req.Status == models.OrderStatusShipped {
		var current models.Order
		if err := collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&current); err != nil {
			if err == mongo.ErrNoDocuments {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "Order not found"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update order"})
		}
		if current.Shipment.AWBCode == "" && req.AWB == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Order cannot be shipped without an AWB code"})
		}
	}

	update := bson.M{"status": req.Status, "updatedAt": time.Now()}
	if req.CourierName != "" {
		update["shipment.courierName"] = req.CourierName
	}
	if req.AWB != "" {
		update["shipment.awbCode"] = req.AWB
	}
	if req.TrackingURL != "" {
		update["trackingUrl"] = req.TrackingURL
	}
	if req.EstimatedDelivery != "" {
		if t, err := time.Parse(time.RFC3339, req.EstimatedDelivery); err == nil {
			update["estimatedDelivery"] = t
		}
	}

	var updated models.Order
	err = collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Order not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update order"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"type":    "success",
		"message": "Order updated successfully",
		"data":    updated,
	})
}

// GetOrderAnalytics aggregates order counts, revenue and customer stats for
// the admin dashboard.
func GetOrderAnalytics(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	collection := database.DB.Collection("orders")

	totalOrders, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve analytics"})
	}

	byStatus := map[string]int64{}
	for _, status := range models.ValidStatuses {
		count, err := collection.CountDocuments(ctx, bson.M{"status": status})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve analytics"})
		}
		byStatus[string(status)] = count
	}

	revenueMatch := bson.M{"status": bson.M{"$in": []string{"paid", "delivered"}}}

	var totalRevenue float64
	revCursor, err := collection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: revenueMatch}},
		{{Key: "$group", Value: bson.M{"_id": nil, "totalRevenue": bson.M{"$sum": "$amount"}}}},
	})
	if err == nil {
		var results []bson.M
		if err := revCursor.All(ctx, &results); err == nil && len(results) > 0 {
			if v, ok := results[0]["totalRevenue"].(float64); ok {
				totalRevenue = v
			}
		}
	}

	sixMonthsAgo := time.Now().AddDate(0, -6, 0)
	monthlyCursor, err := collection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status":    bson.M{"$in": []string{"paid", "delivered"}},
			"createdAt": bson.M{"$gte": sixMonthsAgo},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$createdAt"},
				"month": bson.M{"$month": "$createdAt"},
			},
			"revenue": bson.M{"$sum": "$amount"},
			"orders":  bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id.year", Value: 1}, {Key: "_id.month", Value: 1}}}},
	})
	var monthlyRevenue []bson.M
	if err == nil {
		monthlyCursor.All(ctx, &monthlyRevenue)
	}

	recentOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(10)
	var recentOrders []models.Order
	if cursor, err := collection.Find(ctx, bson.M{}, recentOpts); err == nil {
		cursor.All(ctx, &recentOrders)
	}

	topCursor, err := collection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: revenueMatch}},
		{{Key: "$group", Value: bson.M{
			"_id":          "$customer.email",
			"customerName": bson.M{"$first": "$customer.name"},
			"totalSpent":   bson.M{"$sum": "$amount"},
			"orderCount":   bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "totalSpent", Value: -1}}}},
		{{Key: "$limit", Value: 10}},
	})
	var topCustomers []bson.M
	if err == nil {
		topCursor.All(ctx, &topCustomers)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"type": "success",
		"data": map[string]interface{}{
			"totalOrders":    totalOrders,
			"ordersByStatus": byStatus,
			"totalRevenue":   totalRevenue,
			"monthlyRevenue": monthlyRevenue,
			"recentOrders":   recentOrders,
			"topCustomers":   topCustomers,
		},
	})
}
