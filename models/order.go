package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodOnline PaymentMethod = "online"
)

type Customer struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`
}

type Address struct {
	Street  string `bson:"street" json:"street"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	ZipCode string `bson:"zipCode" json:"zipCode"`
	Country string `bson:"country" json:"country"`
}

type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Shipment is the embedded carrier sub-record on an order. It is written in a
// single update once the whole shipment workflow has succeeded; a partially
// completed workflow never touches it.
type Shipment struct {
	ShiprocketOrderID string  `bson:"shiprocketOrderId,omitempty" json:"shiprocketOrderId,omitempty"`
	ShipmentID        string  `bson:"shipmentId,omitempty" json:"shipmentId,omitempty"`
	AWBCode           string  `bson:"awbCode,omitempty" json:"awbCode,omitempty"`
	CourierName       string  `bson:"courierName,omitempty" json:"courierName,omitempty"`
	Status            string  `bson:"status,omitempty" json:"status,omitempty"`
	ShippingCost      float64 `bson:"shippingCost,omitempty" json:"shippingCost,omitempty"`
	LastLocation      string  `bson:"lastLocation,omitempty" json:"lastLocation,omitempty"`
}

type Order struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Customer Customer           `bson:"customer" json:"customer"`
	Products []OrderItem        `bson:"products" json:"products"`
	Amount   float64            `bson:"amount" json:"amount"`
	Address  Address            `bson:"address" json:"address"`
	Status   OrderStatus        `bson:"status" json:"status"`

	PaymentMethod PaymentMethod `bson:"paymentMethod" json:"paymentMethod"`

	// Razorpay payment fields, set only after signature verification.
	RazorpayOrderID   string     `bson:"razorpayOrderId,omitempty" json:"razorpayOrderId,omitempty"`
	RazorpayPaymentID string     `bson:"razorpayPaymentId,omitempty" json:"razorpayPaymentId,omitempty"`
	RazorpaySignature string     `bson:"razorpaySignature,omitempty" json:"-"`
	PaymentDate       *time.Time `bson:"paymentDate,omitempty" json:"paymentDate,omitempty"`

	Shipment          Shipment   `bson:"shipment" json:"shipment"`
	TrackingURL       string     `bson:"trackingUrl,omitempty" json:"trackingUrl,omitempty"`
	EstimatedDelivery *time.Time `bson:"estimatedDelivery,omitempty" json:"estimatedDelivery,omitempty"`
	ShippingCharges   float64    `bson:"shippingCharges" json:"shippingCharges"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ValidStatuses is the whitelist accepted by the admin status-update endpoint.
var ValidStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func IsValidStatus(s OrderStatus) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}
