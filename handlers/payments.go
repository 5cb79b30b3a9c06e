package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shreeflow/shreeflow-backend-go/database"
	"github.com/shreeflow/shreeflow-backend-go/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type createPaymentRequest struct {
	Amount   float64                `json:"amount"`
	Currency string                 `json:"currency"`
	Receipt  string                 `json:"receipt"`
	Notes    map[string]interface{} `json:"notes"`
}

// CreateRazorpayOrder registers a payment intent with the gateway.
func CreateRazorpayOrder(c echo.Context) error {
	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if req.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Amount is required"})
	}

	receipt := req.Receipt
	if receipt == "" {
		receipt = "receipt_" + uuid.NewString()
	}

	order, err := paymentClient.CreateOrder(req.Amount, req.Currency, receipt, req.Notes)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create Razorpay order"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"type":    "success",
		"message": "Razorpay order created successfully",
		"order":   order,
	})
}

type verifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	OrderID           string `json:"order_id"`
}

// VerifyRazorpayPayment checks the gateway signature and, only on a match,
// marks the order paid. A mismatch never touches the order and is never
// retried.
func VerifyRazorpayPayment(c echo.Context) error {
	var req verifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" || req.OrderID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing required payment verification parameters"})
	}

	objID, err := primitive.ObjectIDFromHex(req.OrderID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid order ID"})
	}

	if !paymentClient.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"type":    "error",
			"message": "Payment verification failed - Invalid signature",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	var updated models.Order
	err = database.DB.Collection("orders").FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{
			"status":            models.OrderStatusPaid,
			"razorpayOrderId":   req.RazorpayOrderID,
			"razorpayPaymentId": req.RazorpayPaymentID,
			"razorpaySignature": req.RazorpaySignature,
			"paymentDate":       now,
			"updatedAt":         now,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Order not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Payment verification failed"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"type":    "success",
		"message": "Payment verified and order updated successfully",
		"order":   updated,
	})
}

// GetPaymentDetails fetches a payment from the gateway (admin).
func GetPaymentDetails(c echo.Context) error {
	paymentID := c.Param("payment_id")
	if paymentID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Payment ID is required"})
	}

	payment, err := paymentClient.FetchPayment(paymentID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": fmt.Sprintf("Failed to fetch payment details: %v", err),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"type":    "success",
		"payment": payment,
	})
}
