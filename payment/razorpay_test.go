package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signPayload(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	const (
		orderID   = "order_IluGWxBm9U8zJ8"
		paymentID = "pay_IluGWxBm9U8zJ9"
		secret    = "test_secret"
	)
	valid := signPayload(orderID, paymentID, secret)

	assert.True(t, VerifySignature(orderID, paymentID, valid, secret))
	assert.False(t, VerifySignature(orderID, paymentID, valid, "other_secret"))
	assert.False(t, VerifySignature(orderID, "pay_other", valid, secret))
	assert.False(t, VerifySignature(orderID, paymentID, "", secret))
	assert.False(t, VerifySignature(orderID, paymentID, valid+"00", secret))
}

func TestToPaiseRoundsFractionalRupees(t *testing.T) {
	tests := []struct {
		rupees float64
		paise  int64
	}{
		{100, 10000},
		{99.99, 9999},
		{2499.99, 249999},
		{0.01, 1},
		{49.9, 4990},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.paise, toPaise(tt.rupees), "amount %v", tt.rupees)
	}
}

func TestClientVerifySignatureUsesKeySecret(t *testing.T) {
	client := NewClient("rzp_test_key", "test_secret")
	valid := signPayload("order_A", "pay_B", "test_secret")

	assert.True(t, client.VerifySignature("order_A", "pay_B", valid))
	assert.False(t, client.VerifySignature("order_A", "pay_B", "deadbeef"))
}
