package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shreeflow/shreeflow-backend-go/apperrors"
)

// HTTPErrorHandler maps the error taxonomy onto status codes. Business and
// precondition failures surface actionable messages; anything unexpected
// becomes an opaque 500.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		validationErr *apperrors.ValidationError
		carrierErr    *apperrors.CarrierError
		httpErr       *echo.HTTPError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, map[string]string{
			"type":    "error",
			"message": "Validation failed",
			"field":   validationErr.Field,
			"error":   validationErr.Message,
		})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, map[string]string{"type": "error", "message": err.Error()})
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, map[string]string{
			"type":    "error",
			"message": "Shiprocket session expired. Re-authenticate from the admin dashboard.",
		})
	case errors.Is(err, apperrors.ErrNoPickupLocation),
		errors.Is(err, apperrors.ErrNoCourierAvailable),
		errors.Is(err, apperrors.ErrNoRatesConfigured):
		c.JSON(http.StatusUnprocessableEntity, map[string]string{"type": "error", "message": err.Error()})
	case errors.Is(err, apperrors.ErrPaymentVerificationFailed):
		c.JSON(http.StatusBadRequest, map[string]string{"type": "error", "message": err.Error()})
	case errors.As(err, &carrierErr):
		c.JSON(http.StatusBadGateway, map[string]string{
			"type":    "error",
			"message": "Shiprocket request failed",
			"error":   carrierErr.Message,
		})
	case errors.As(err, &httpErr):
		c.JSON(httpErr.Code, map[string]interface{}{"type": "error", "message": httpErr.Message})
	default:
		log.Printf("unhandled error on %s %s: %v", c.Request().Method, c.Path(), err)
		c.JSON(http.StatusInternalServerError, map[string]string{
			"type":    "error",
			"message": "Something went wrong please try again",
		})
	}
}
