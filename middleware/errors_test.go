package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shreeflow/shreeflow-backend-go/apperrors"
	"github.com/stretchr/testify/assert"
)

func handleError(err error) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	HTTPErrorHandler(err, c)
	return rec
}

func TestHTTPErrorHandlerStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", apperrors.NewValidation("phone", "must contain at least 10 digits"), http.StatusBadRequest},
		{"not found", apperrors.ErrNotFound, http.StatusNotFound},
		{"token expired", apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{"no pickup location", apperrors.ErrNoPickupLocation, http.StatusUnprocessableEntity},
		{"no courier", apperrors.ErrNoCourierAvailable, http.StatusUnprocessableEntity},
		{"no rates", apperrors.ErrNoRatesConfigured, http.StatusUnprocessableEntity},
		{"payment verification", apperrors.ErrPaymentVerificationFailed, http.StatusBadRequest},
		{"carrier", &apperrors.CarrierError{StatusCode: 400, Message: "bad pickup", Endpoint: "/orders/create/adhoc"}, http.StatusBadGateway},
		{"echo http error", echo.NewHTTPError(http.StatusForbidden, "Admin access required"), http.StatusForbidden},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := handleError(tt.err)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestHTTPErrorHandlerValidationIncludesField(t *testing.T) {
	rec := handleError(apperrors.NewValidation("pincode", "must be exactly 6 digits"))
	assert.Contains(t, rec.Body.String(), `"field":"pincode"`)
}

func TestHTTPErrorHandlerUnknownErrorIsOpaque(t *testing.T) {
	rec := handleError(errors.New("pq: secret connection string"))
	assert.NotContains(t, rec.Body.String(), "secret connection string")
}

func TestHTTPErrorHandlerWrappedSentinel(t *testing.T) {
	rec := handleError(errors.Join(errors.New("loading rates"), apperrors.ErrNoRatesConfigured))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
