package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math"

	razorpay "github.com/razorpay/razorpay-go"
)

// Client wraps the Razorpay SDK for order-intent creation and payment lookup,
// and owns signature verification, the sole trust boundary for marking an
// order paid online.
type Client struct {
	rz        *razorpay.Client
	keySecret string
}

func NewClient(keyID, keySecret string) *Client {
	return &Client{
		rz:        razorpay.NewClient(keyID, keySecret),
		keySecret: keySecret,
	}
}

// toPaise converts a rupee amount to paise, rounding to the nearest paisa.
// Plain conversion truncates: 99.99 * 100 is 9998.999... as a float64.
func toPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateOrder registers a payment intent with the gateway. Amount is in
// rupees; Razorpay wants paise.
func (c *Client) CreateOrder(amount float64, currency, receipt string, notes map[string]interface{}) (map[string]interface{}, error) {
	if currency == "" {
		currency = "INR"
	}
	if notes == nil {
		notes = map[string]interface{}{}
	}
	data := map[string]interface{}{
		"amount":   toPaise(amount),
		"currency": currency,
		"receipt":  receipt,
		"notes":    notes,
	}
	order, err := c.rz.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order creation failed: %w", err)
	}
	return order, nil
}

// FetchPayment retrieves payment details from the gateway.
func (c *Client) FetchPayment(paymentID string) (map[string]interface{}, error) {
	payment, err := c.rz.Payment.Fetch(paymentID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay payment fetch failed: %w", err)
	}
	return payment, nil
}

// VerifySignature checks hmac_sha256(orderID + "|" + paymentID, secret)
// against the signature the gateway handed the client. Comparison is
// constant-time.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(orderID, paymentID, signature, c.keySecret)
}

func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
