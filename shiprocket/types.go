package shiprocket

// Wire types for the carrier API. Field names follow the Shiprocket payloads.

type OrderItemPayload struct {
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Units        int     `json:"units"`
	SellingPrice float64 `json:"selling_price"`
	Discount     float64 `json:"discount"`
	Tax          float64 `json:"tax"`
	HSN          int     `json:"hsn,omitempty"`
}

type CreateOrderRequest struct {
	OrderID             string             `json:"order_id"`
	OrderDate           string             `json:"order_date"`
	PickupLocation      string             `json:"pickup_location"`
	ChannelID           string             `json:"channel_id,omitempty"`
	Comment             string             `json:"comment,omitempty"`
	CompanyName         string             `json:"company_name,omitempty"`
	BillingCustomerName string             `json:"billing_customer_name"`
	BillingLastName     string             `json:"billing_last_name"`
	BillingAddress      string             `json:"billing_address"`
	BillingAddress2     string             `json:"billing_address_2,omitempty"`
	BillingCity         string             `json:"billing_city"`
	BillingPincode      string             `json:"billing_pincode"`
	BillingState        string             `json:"billing_state"`
	BillingCountry      string             `json:"billing_country"`
	BillingEmail        string             `json:"billing_email"`
	BillingPhone        string             `json:"billing_phone"`
	ShippingIsBilling   bool               `json:"shipping_is_billing"`
	OrderItems          []OrderItemPayload `json:"order_items"`
	PaymentMethod       string             `json:"payment_method"`
	ShippingCharges     float64            `json:"shipping_charges"`
	TotalDiscount       float64            `json:"total_discount"`
	SubTotal            float64            `json:"sub_total"`
	Length              float64            `json:"length"`
	Breadth             float64            `json:"breadth"`
	Height              float64            `json:"height"`
	Weight              float64            `json:"weight"`
}

type CreateOrderResponse struct {
	OrderID    int64  `json:"order_id"`
	ShipmentID int64  `json:"shipment_id"`
	Status     string `json:"status"`
	StatusCode int    `json:"status_code"`
}

type Courier struct {
	CourierCompanyID int     `json:"courier_company_id"`
	CourierName      string  `json:"courier_name"`
	Rate             float64 `json:"rate"`
	ETD              string  `json:"etd"`
	EstimatedDays    string  `json:"estimated_delivery_days"`
}

type ServiceabilityResponse struct {
	Status int `json:"status"`
	Data   struct {
		AvailableCourierCompanies []Courier `json:"available_courier_companies"`
	} `json:"data"`
}

type awbAssignRequest struct {
	ShipmentID int64 `json:"shipment_id"`
	CourierID  int   `json:"courier_id"`
}

type AWBAssignResponse struct {
	AWBAssignStatus int `json:"awb_assign_status"`
	Response        struct {
		Data struct {
			AWBCode     string `json:"awb_code"`
			CourierName string `json:"courier_company_name"`
		} `json:"data"`
	} `json:"response"`
	Message string `json:"message"`
}

type PickupAddress struct {
	PickupLocation string `json:"pickup_location"`
	Address        string `json:"address"`
	City           string `json:"city"`
	State          string `json:"state"`
	PinCode        string `json:"pin_code"`
	Status         int    `json:"status"`
	IsPrimary      int    `json:"is_primary_location"`
}

type pickupLocationsResponse struct {
	Data struct {
		ShippingAddress []PickupAddress `json:"shipping_address"`
	} `json:"data"`
}

type TrackActivity struct {
	Date     string `json:"date"`
	Status   string `json:"sr-status-label"`
	Activity string `json:"activity"`
	Location string `json:"location"`
}

type TrackingData struct {
	TrackStatus   int             `json:"track_status"`
	ShipmentTrack []struct {
		CurrentStatus string `json:"current_status"`
		Destination   string `json:"destination"`
		Origin        string `json:"origin"`
	} `json:"shipment_track"`
	Activities []TrackActivity `json:"shipment_track_activities"`
}

type TrackingResponse struct {
	TrackingData TrackingData `json:"tracking_data"`
}

// CurrentStatus returns the carrier's latest reported shipment status, empty
// when the carrier has no scan yet.
func (t *TrackingResponse) CurrentStatus() string {
	if len(t.TrackingData.ShipmentTrack) > 0 {
		return t.TrackingData.ShipmentTrack[0].CurrentStatus
	}
	return ""
}

// LastLocation returns the most recent scan location, empty when unknown.
func (t *TrackingResponse) LastLocation() string {
	if len(t.TrackingData.Activities) > 0 {
		return t.TrackingData.Activities[0].Location
	}
	return ""
}

type cancelRequest struct {
	AWBs []string `json:"awbs"`
}

type CancelResponse struct {
	Message string `json:"message"`
}
