// Package shipping evaluates the locally configured rate and zone tables.
// It never calls the carrier; the live quote used during shipment creation is
// a separate path.
package shipping

import (
	"github.com/shreeflow/shreeflow-backend-go/apperrors"
	"github.com/shreeflow/shreeflow-backend-go/models"
)

type Estimate struct {
	ShippingCost  float64 `json:"shippingCost"`
	EstimatedDays string  `json:"estimatedDays"`
	ZoneName      string  `json:"zoneName,omitempty"`
	Message       string  `json:"message,omitempty"`
}

// EstimateCost applies the rate policy in priority order:
//  1. order amount meets any active rate's free-shipping threshold → free
//  2. a shipping zone covers the destination state → zone flat rate
//  3. first active rate → baseRate + weight × perKmRate
//  4. nothing configured → ErrNoRatesConfigured
func EstimateCost(rates []models.ShippingRate, zones []models.ShippingZone, state string, orderAmount, weight float64) (*Estimate, error) {
	active := make([]models.ShippingRate, 0, len(rates))
	for _, r := range rates {
		if r.Active {
			active = append(active, r)
		}
	}

	for _, r := range active {
		if r.FreeShippingThreshold > 0 && orderAmount >= r.FreeShippingThreshold {
			return &Estimate{
				ShippingCost:  0,
				EstimatedDays: r.EstimatedDays,
				Message:       "Free shipping eligible!",
			}, nil
		}
	}

	for _, z := range zones {
		if !z.Active {
			continue
		}
		for _, s := range z.States {
			if s == state {
				return &Estimate{
					ShippingCost:  z.Rate,
					EstimatedDays: z.EstimatedDays,
					ZoneName:      z.Name,
				}, nil
			}
		}
	}

	if len(active) > 0 {
		rate := active[0]
		if weight <= 0 {
			weight = 1
		}
		return &Estimate{
			ShippingCost:  rate.BaseRate + weight*rate.PerKmRate,
			EstimatedDays: rate.EstimatedDays,
			Message:       "Default shipping rate applied",
		}, nil
	}

	return nil, apperrors.ErrNoRatesConfigured
}
