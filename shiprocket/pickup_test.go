package shiprocket

import (
	"testing"

	"github.com/shreeflow/shreeflow-backend-go/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectPickupLocationPrefersActive(t *testing.T) {
	addresses := []PickupAddress{
		{PickupLocation: "Warehouse B", Status: 0, IsPrimary: 1},
		{PickupLocation: "Warehouse A", Status: pickupStatusActive},
	}
	got, err := selectPickupLocation(addresses)
	require.NoError(t, err)
	assert.Equal(t, "Warehouse A", got)
}

func TestSelectPickupLocationFallsBackToPrimary(t *testing.T) {
	addresses := []PickupAddress{
		{PickupLocation: "Warehouse A", Status: 0},
		{PickupLocation: "Warehouse B", Status: 0, IsPrimary: 1},
	}
	got, err := selectPickupLocation(addresses)
	require.NoError(t, err)
	assert.Equal(t, "Warehouse B", got)
}

func TestSelectPickupLocationFallsBackToAnyNamed(t *testing.T) {
	addresses := []PickupAddress{
		{PickupLocation: "", Status: 0},
		{PickupLocation: "Warehouse C", Status: 0},
	}
	got, err := selectPickupLocation(addresses)
	require.NoError(t, err)
	assert.Equal(t, "Warehouse C", got)
}

func TestSelectPickupLocationNoneUsable(t *testing.T) {
	_, err := selectPickupLocation([]PickupAddress{{PickupLocation: ""}})
	assert.ErrorIs(t, err, apperrors.ErrNoPickupLocation)

	_, err = selectPickupLocation(nil)
	assert.ErrorIs(t, err, apperrors.ErrNoPickupLocation)
}
