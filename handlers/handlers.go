package handlers

import (
	"github.com/shreeflow/shreeflow-backend-go/payment"
	"github.com/shreeflow/shreeflow-backend-go/shiprocket"
)

var (
	shiprocketClient *shiprocket.Client
	paymentClient    *payment.Client
)

// Init wires the outbound clients once at startup.
func Init(sr *shiprocket.Client, pay *payment.Client) {
	shiprocketClient = sr
	paymentClient = pay
}
