package shiprocket

import (
	"context"
	"net/http"

	"github.com/shreeflow/shreeflow-backend-go/apperrors"
)

const pickupStatusActive = 1

// GetPickupLocations lists the pickup addresses configured in the carrier
// account.
func (c *Client) GetPickupLocations(ctx context.Context) ([]PickupAddress, error) {
	var resp pickupLocationsResponse
	if err := c.doRequest(ctx, http.MethodGet, "/settings/company/pickup", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data.ShippingAddress, nil
}

// ResolveActivePickupLocation picks the pickup address shipments dispatch
// from, preferring an active address, then the primary one even if inactive,
// then any address with a name. A carrier account with no usable pickup
// address cannot create shipments at all.
func (c *Client) ResolveActivePickupLocation(ctx context.Context) (string, error) {
	addresses, err := c.GetPickupLocations(ctx)
	if err != nil {
		return "", err
	}
	return selectPickupLocation(addresses)
}

func selectPickupLocation(addresses []PickupAddress) (string, error) {
	for _, a := range addresses {
		if a.Status == pickupStatusActive && a.PickupLocation != "" {
			return a.PickupLocation, nil
		}
	}
	for _, a := range addresses {
		if a.IsPrimary == 1 && a.PickupLocation != "" {
			return a.PickupLocation, nil
		}
	}
	for _, a := range addresses {
		if a.PickupLocation != "" {
			return a.PickupLocation, nil
		}
	}
	return "", apperrors.ErrNoPickupLocation
}
