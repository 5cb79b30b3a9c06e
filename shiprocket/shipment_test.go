package shiprocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shreeflow/shreeflow-backend-go/apperrors"
	"github.com/shreeflow/shreeflow-backend-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSelectCourierCheapestWins(t *testing.T) {
	couriers := []Courier{
		{CourierCompanyID: 1, CourierName: "Bluedart", Rate: 120},
		{CourierCompanyID: 2, CourierName: "Delhivery", Rate: 85},
		{CourierCompanyID: 3, CourierName: "Ekart", Rate: 95},
	}
	chosen, err := SelectCourier(couriers)
	require.NoError(t, err)
	assert.Equal(t, 2, chosen.CourierCompanyID)
}

func TestSelectCourierTieKeepsListedOrder(t *testing.T) {
	couriers := []Courier{
		{CourierCompanyID: 7, CourierName: "Bluedart", Rate: 85},
		{CourierCompanyID: 2, CourierName: "Delhivery", Rate: 85},
	}
	chosen, err := SelectCourier(couriers)
	require.NoError(t, err)
	assert.Equal(t, 7, chosen.CourierCompanyID)
}

func TestSelectCourierEmpty(t *testing.T) {
	_, err := SelectCourier(nil)
	assert.ErrorIs(t, err, apperrors.ErrNoCourierAvailable)
}

func TestValidateOrderForShipment(t *testing.T) {
	order := shippableOrder()
	require.NoError(t, ValidateOrderForShipment(order))

	tests := []struct {
		field  string
		mutate func(o *models.Order)
	}{
		{"status", func(o *models.Order) { o.Status = models.OrderStatusPending }},
		{"customer.name", func(o *models.Order) { o.Customer.Name = "" }},
		{"customer.email", func(o *models.Order) { o.Customer.Email = "" }},
		{"customer.phone", func(o *models.Order) { o.Customer.Phone = "" }},
		{"address.street", func(o *models.Order) { o.Address.Street = "" }},
		{"address.city", func(o *models.Order) { o.Address.City = "" }},
		{"address.state", func(o *models.Order) { o.Address.State = "" }},
		{"address.zipCode", func(o *models.Order) { o.Address.ZipCode = "" }},
		{"products", func(o *models.Order) { o.Products = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			o := shippableOrder()
			tt.mutate(o)
			err := ValidateOrderForShipment(o)
			var verr *apperrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestBuildOrderPayload(t *testing.T) {
	order := shippableOrder()
	order.Customer.Phone = "+91 98765-43210"
	order.Address.ZipCode = "400 001"
	order.Amount = 2550
	order.ShippingCharges = 50

	products := []models.Product{catalogProduct(order.Products[0].ProductID)}

	payload, err := BuildOrderPayload(order, products, "Warehouse A")
	require.NoError(t, err)

	assert.Equal(t, order.ID.Hex(), payload.OrderID)
	assert.Equal(t, "Warehouse A", payload.PickupLocation)
	assert.Equal(t, "9876543210", payload.BillingPhone)
	assert.Equal(t, "400001", payload.BillingPincode)
	assert.Equal(t, "India", payload.BillingCountry)
	assert.Equal(t, "Ramesh", payload.BillingCustomerName)
	assert.Equal(t, "Patel", payload.BillingLastName)
	assert.True(t, payload.ShippingIsBilling)
	assert.Equal(t, "COD", payload.PaymentMethod)
	assert.Equal(t, 2500.0, payload.SubTotal)

	require.Len(t, payload.OrderItems, 1)
	assert.Equal(t, "Aqua Guard Pro", payload.OrderItems[0].Name)
	assert.Equal(t, "WLC-001", payload.OrderItems[0].SKU)
	assert.Equal(t, 2, payload.OrderItems[0].Units)

	assert.Equal(t, 1.5, payload.Weight)
	assert.Equal(t, 25.0, payload.Length)
}

func TestBuildOrderPayloadPrepaidWhenPaymentCaptured(t *testing.T) {
	order := shippableOrder()
	order.RazorpayPaymentID = "pay_abc123"
	products := []models.Product{catalogProduct(order.Products[0].ProductID)}

	payload, err := BuildOrderPayload(order, products, "Warehouse A")
	require.NoError(t, err)
	assert.Equal(t, "Prepaid", payload.PaymentMethod)
}

func TestBuildOrderPayloadUnknownProduct(t *testing.T) {
	order := shippableOrder()
	_, err := BuildOrderPayload(order, nil, "Warehouse A")
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "products", verr.Field)
}

// fakeCarrier wires an httptest server that plays the whole shipment
// workflow. Handlers can be swapped per test to fail individual steps.
type fakeCarrier struct {
	mux            *http.ServeMux
	orderCalls     int
	awbCalls       int
	serviceability func(w http.ResponseWriter, r *http.Request)
	assignAWB      func(w http.ResponseWriter, r *http.Request)
}

func newFakeCarrier(t *testing.T) (*fakeCarrier, *Client) {
	t.Helper()
	f := &fakeCarrier{mux: http.NewServeMux()}

	f.mux.HandleFunc("/settings/company/pickup", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"shipping_address": []map[string]interface{}{
					{"pickup_location": "Warehouse A", "status": 1},
				},
			},
		})
	})
	f.mux.HandleFunc("/orders/create/adhoc", func(w http.ResponseWriter, r *http.Request) {
		f.orderCalls++
		json.NewEncoder(w).Encode(map[string]interface{}{
			"order_id": 990011, "shipment_id": 880022, "status": "NEW",
		})
	})
	f.serviceability = func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": 200,
			"data": map[string]interface{}{
				"available_courier_companies": []map[string]interface{}{
					{"courier_company_id": 1, "courier_name": "Bluedart", "rate": 120.0},
					{"courier_company_id": 2, "courier_name": "Delhivery", "rate": 85.0},
				},
			},
		})
	}
	f.mux.HandleFunc("/courier/serviceability", func(w http.ResponseWriter, r *http.Request) {
		f.serviceability(w, r)
	})
	f.assignAWB = func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"awb_assign_status": 1,
			"response": map[string]interface{}{
				"data": map[string]interface{}{
					"awb_code": "AWB123456789", "courier_company_name": "Delhivery",
				},
			},
		})
	}
	f.mux.HandleFunc("/courier/assign/awb", func(w http.ResponseWriter, r *http.Request) {
		f.awbCalls++
		f.assignAWB(w, r)
	})

	srv := httptest.NewServer(f.mux)
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, nil)
	client.token = "tok"
	client.expiry = time.Now().Add(time.Hour)
	return f, client
}

func TestCreateShipmentHappyPath(t *testing.T) {
	_, client := newFakeCarrier(t)
	order := shippableOrder()
	products := []models.Product{catalogProduct(order.Products[0].ProductID)}

	result, err := client.CreateShipment(context.Background(), order, products)
	require.NoError(t, err)

	assert.Equal(t, "990011", result.ShiprocketOrderID)
	assert.Equal(t, "880022", result.ShipmentID)
	assert.Equal(t, "AWB123456789", result.AWBCode)
	assert.Equal(t, "Delhivery", result.CourierName)
	assert.Equal(t, 2, result.CourierID)
	assert.Equal(t, 85.0, result.ShippingCost)
}

func TestCreateShipmentNoCouriers(t *testing.T) {
	f, client := newFakeCarrier(t)
	f.serviceability = func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": 200,
			"data":   map[string]interface{}{"available_courier_companies": []interface{}{}},
		})
	}

	order := shippableOrder()
	products := []models.Product{catalogProduct(order.Products[0].ProductID)}

	result, err := client.CreateShipment(context.Background(), order, products)
	assert.ErrorIs(t, err, apperrors.ErrNoCourierAvailable)
	assert.Nil(t, result)
	assert.Equal(t, 0, f.awbCalls, "awb assignment must not run without a courier")
}

func TestCreateShipmentAWBRejected(t *testing.T) {
	f, client := newFakeCarrier(t)
	f.assignAWB = func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"awb_assign_status": 0,
			"message":           "Wallet balance insufficient",
		})
	}

	order := shippableOrder()
	products := []models.Product{catalogProduct(order.Products[0].ProductID)}

	result, err := client.CreateShipment(context.Background(), order, products)
	require.Nil(t, result)

	// The carrier's reason surfaces verbatim; there is no fallback retry
	// with the next-cheapest courier.
	var carrierErr *apperrors.CarrierError
	require.ErrorAs(t, err, &carrierErr)
	assert.Equal(t, "Wallet balance insufficient", carrierErr.Message)
	assert.Equal(t, 1, f.awbCalls)
}

func TestCreateShipmentInvalidOrderNeverCallsCarrier(t *testing.T) {
	f, client := newFakeCarrier(t)
	order := shippableOrder()
	order.Customer.Phone = ""

	_, err := client.CreateShipment(context.Background(), order, nil)
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, f.orderCalls)
}

func TestCreateShipmentUnpaidOrderNeverCallsCarrier(t *testing.T) {
	f, client := newFakeCarrier(t)
	order := shippableOrder()
	order.Status = models.OrderStatusPending

	_, err := client.CreateShipment(context.Background(), order, nil)
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Field)
	assert.Equal(t, 0, f.orderCalls)
}

func shippableOrder() *models.Order {
	return &models.Order{
		ID: primitive.NewObjectID(),
		Customer: models.Customer{
			Name:  "Ramesh Patel",
			Email: "ramesh@example.com",
			Phone: "9876543210",
		},
		Address: models.Address{
			Street:  "12 MG Road",
			City:    "Mumbai",
			State:   "Maharashtra",
			ZipCode: "400001",
		},
		Products: []models.OrderItem{
			{ProductID: primitive.NewObjectID(), Quantity: 2},
		},
		Amount:        2550,
		Status:        models.OrderStatusPaid,
		PaymentMethod: models.PaymentMethodCOD,
		CreatedAt:     time.Now(),
	}
}

func catalogProduct(id primitive.ObjectID) models.Product {
	return models.Product{
		ID:      id,
		Title:   "Aqua Guard Pro",
		SKU:     "WLC-001",
		Price:   1250,
		Weight:  1.5,
		Length:  25,
		Breadth: 15,
		Height:  10,
	}
}
