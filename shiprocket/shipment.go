package shiprocket

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shreeflow/shreeflow-backend-go/apperrors"
	"github.com/shreeflow/shreeflow-backend-go/models"
)

// ShipmentResult carries everything the workflow produced. The caller writes
// it into the order's shipment sub-record in a single update, and only when
// the whole workflow succeeded.
type ShipmentResult struct {
	ShiprocketOrderID string
	ShipmentID        string
	AWBCode           string
	CourierName       string
	CourierID         int
	ShippingCost      float64
}

// CreateShipment runs the full carrier workflow for a paid order:
// validate → register order → fetch courier options → select courier →
// assign AWB. Any failure aborts the invocation without touching the order,
// so it can be re-run from the top.
func (c *Client) CreateShipment(ctx context.Context, order *models.Order, products []models.Product) (*ShipmentResult, error) {
	if err := ValidateOrderForShipment(order); err != nil {
		return nil, err
	}

	pickup, err := c.ResolveActivePickupLocation(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := BuildOrderPayload(order, products, pickup)
	if err != nil {
		return nil, err
	}

	var created CreateOrderResponse
	if err := c.doRequest(ctx, http.MethodPost, "/orders/create/adhoc", payload, &created); err != nil {
		return nil, err
	}
	if created.ShipmentID == 0 {
		return nil, &apperrors.CarrierError{
			StatusCode: http.StatusBadGateway,
			Message:    "carrier did not return a shipment id",
			Endpoint:   "/orders/create/adhoc",
		}
	}

	couriers, err := c.GetCouriersForShipment(ctx, created.ShipmentID)
	if err != nil {
		return nil, err
	}

	chosen, err := SelectCourier(couriers)
	if err != nil {
		return nil, err
	}

	awb, err := c.AssignAWB(ctx, created.ShipmentID, chosen.CourierCompanyID)
	if err != nil {
		return nil, err
	}

	courierName := awb.Response.Data.CourierName
	if courierName == "" {
		courierName = chosen.CourierName
	}

	return &ShipmentResult{
		ShiprocketOrderID: strconv.FormatInt(created.OrderID, 10),
		ShipmentID:        strconv.FormatInt(created.ShipmentID, 10),
		AWBCode:           awb.Response.Data.AWBCode,
		CourierName:       courierName,
		CourierID:         chosen.CourierCompanyID,
		ShippingCost:      chosen.Rate,
	}, nil
}

// ValidateOrderForShipment fails fast with a structured field error so bad
// orders never reach the carrier. Only paid orders ship; a pending online
// order has no verified payment behind it.
func ValidateOrderForShipment(order *models.Order) error {
	switch {
	case order.Status != models.OrderStatusPaid:
		return apperrors.NewValidation("status", "only paid orders can be shipped")
	case order.Customer.Name == "":
		return apperrors.NewValidation("customer.name", "is required")
	case order.Customer.Email == "":
		return apperrors.NewValidation("customer.email", "is required")
	case order.Customer.Phone == "":
		return apperrors.NewValidation("customer.phone", "is required")
	case order.Address.Street == "":
		return apperrors.NewValidation("address.street", "is required")
	case order.Address.City == "":
		return apperrors.NewValidation("address.city", "is required")
	case order.Address.State == "":
		return apperrors.NewValidation("address.state", "is required")
	case order.Address.ZipCode == "":
		return apperrors.NewValidation("address.zipCode", "is required")
	case len(order.Products) == 0:
		return apperrors.NewValidation("products", "order has no line items")
	}
	return nil
}

// BuildOrderPayload maps a local order onto the carrier's adhoc order format
// with normalized contact fields and folded package dimensions.
func BuildOrderPayload(order *models.Order, products []models.Product, pickupLocation string) (*CreateOrderRequest, error) {
	phone, err := NormalizePhone(order.Customer.Phone)
	if err != nil {
		return nil, err
	}
	pincode, err := NormalizePincode(order.Address.ZipCode)
	if err != nil {
		return nil, err
	}

	country := order.Address.Country
	if country == "" {
		country = "India"
	}

	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID.Hex()] = p
	}

	items := make([]OrderItemPayload, 0, len(order.Products))
	for _, line := range order.Products {
		p, ok := byID[line.ProductID.Hex()]
		if !ok {
			return nil, apperrors.NewValidation("products", fmt.Sprintf("unknown product %s", line.ProductID.Hex()))
		}
		sku := p.SKU
		if sku == "" {
			sku = "SKU-" + p.ID.Hex()
		}
		items = append(items, OrderItemPayload{
			Name:         p.Title,
			SKU:          sku,
			Units:        line.Quantity,
			SellingPrice: p.Price,
		})
	}

	paymentMethod := "COD"
	if order.RazorpayPaymentID != "" {
		paymentMethod = "Prepaid"
	}

	first, last := splitName(order.Customer.Name)
	dims := ComputePackageDims(products)

	return &CreateOrderRequest{
		OrderID:             order.ID.Hex(),
		OrderDate:           order.CreatedAt.Format("2006-01-02"),
		PickupLocation:      pickupLocation,
		CompanyName:         "Shree Flow",
		Comment:             "Water Level Controller Order",
		BillingCustomerName: first,
		BillingLastName:     last,
		BillingAddress:      order.Address.Street,
		BillingCity:         order.Address.City,
		BillingPincode:      pincode,
		BillingState:        order.Address.State,
		BillingCountry:      country,
		BillingEmail:        order.Customer.Email,
		BillingPhone:        phone,
		ShippingIsBilling:   true,
		OrderItems:          items,
		PaymentMethod:       paymentMethod,
		SubTotal:            order.Amount - order.ShippingCharges,
		Length:              dims.Length,
		Breadth:             dims.Breadth,
		Height:              dims.Height,
		Weight:              dims.Weight,
	}, nil
}

// GetCouriersForShipment fetches the serviceable couriers for a registered
// shipment.
func (c *Client) GetCouriersForShipment(ctx context.Context, shipmentID int64) ([]Courier, error) {
	endpoint := "/courier/serviceability?shipment_id=" + strconv.FormatInt(shipmentID, 10)
	var resp ServiceabilityResponse
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data.AvailableCourierCompanies, nil
}

// GetServiceability looks up couriers and quoted rates between two pincodes.
// Used by the admin live-rate endpoint; the shipment workflow queries by
// shipment id instead.
func (c *Client) GetServiceability(ctx context.Context, pickupPincode, deliveryPincode string, weight, length, breadth, height float64) ([]Courier, error) {
	params := url.Values{}
	params.Set("pickup_postcode", pickupPincode)
	params.Set("delivery_postcode", deliveryPincode)
	params.Set("weight", strconv.FormatFloat(weight, 'f', -1, 64))
	params.Set("length", strconv.FormatFloat(length, 'f', -1, 64))
	params.Set("breadth", strconv.FormatFloat(breadth, 'f', -1, 64))
	params.Set("height", strconv.FormatFloat(height, 'f', -1, 64))
	params.Set("cod", "0")

	var resp ServiceabilityResponse
	if err := c.doRequest(ctx, http.MethodGet, "/courier/serviceability?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data.AvailableCourierCompanies, nil
}

// SelectCourier picks the cheapest quoted courier; ties keep the carrier's
// listed order, so selection is deterministic for a fixed quote list.
func SelectCourier(couriers []Courier) (*Courier, error) {
	if len(couriers) == 0 {
		return nil, apperrors.ErrNoCourierAvailable
	}
	best := couriers[0]
	for _, courier := range couriers[1:] {
		if courier.Rate < best.Rate {
			best = courier
		}
	}
	return &best, nil
}

// AssignAWB asks the carrier to assign a waybill with the chosen courier.
// A carrier-reported assignment failure surfaces the carrier's reason; there
// is no automatic fallback to the next-cheapest courier.
func (c *Client) AssignAWB(ctx context.Context, shipmentID int64, courierID int) (*AWBAssignResponse, error) {
	var resp AWBAssignResponse
	req := awbAssignRequest{ShipmentID: shipmentID, CourierID: courierID}
	if err := c.doRequest(ctx, http.MethodPost, "/courier/assign/awb", req, &resp); err != nil {
		return nil, err
	}
	if resp.AWBAssignStatus != 1 || resp.Response.Data.AWBCode == "" {
		message := resp.Message
		if message == "" {
			message = "awb assignment rejected by carrier"
		}
		return nil, &apperrors.CarrierError{
			StatusCode: http.StatusBadGateway,
			Message:    message,
			Endpoint:   "/courier/assign/awb",
		}
	}
	return &resp, nil
}

// TrackShipment proxies a track-by-AWB request; the carrier is the source of
// truth for shipment state.
func (c *Client) TrackShipment(ctx context.Context, awb string) (*TrackingResponse, error) {
	var resp TrackingResponse
	if err := c.doRequest(ctx, http.MethodGet, "/courier/track/awb/"+url.PathEscape(awb), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CancelShipment cancels a shipment by AWB.
func (c *Client) CancelShipment(ctx context.Context, awb string) (*CancelResponse, error) {
	var resp CancelResponse
	req := cancelRequest{AWBs: []string{awb}}
	if err := c.doRequest(ctx, http.MethodPost, "/orders/cancel/shipment/awbs", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
