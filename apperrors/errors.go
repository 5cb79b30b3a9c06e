package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors let handlers and the HTTP error handler map business
// failures to status codes without string matching.
var (
	ErrNotFound = errors.New("resource not found")

	// ErrTokenExpired means the carrier session is invalid and a human must
	// re-authenticate. The account password is never retained, so there is no
	// silent re-login path.
	ErrTokenExpired = errors.New("shiprocket token expired, re-authentication required")

	ErrNoPickupLocation   = errors.New("no pickup location configured in the shiprocket account")
	ErrNoCourierAvailable = errors.New("no serviceable courier for this destination")
	ErrNoRatesConfigured  = errors.New("no shipping rates configured")

	ErrPaymentVerificationFailed = errors.New("payment verification failed: invalid signature")
)

// ValidationError carries field-level detail for malformed input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// CarrierError wraps an upstream carrier failure with the status code and
// message the carrier reported. The message is assumed safe to surface.
type CarrierError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *CarrierError) Error() string {
	return fmt.Sprintf("shiprocket api error (%s): %s", e.Endpoint, e.Message)
}
