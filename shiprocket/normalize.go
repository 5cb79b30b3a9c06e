package shiprocket

import (
	"strings"

	"github.com/shreeflow/shreeflow-backend-go/apperrors"
	"github.com/shreeflow/shreeflow-backend-go/models"
)

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizePhone reduces a phone number to the 10 trailing digits the carrier
// requires, dropping country codes and separators. "+91 98765-43210" becomes
// "9876543210".
func NormalizePhone(phone string) (string, error) {
	digits := digitsOnly(phone)
	if len(digits) < 10 {
		return "", apperrors.NewValidation("phone", "must contain at least 10 digits")
	}
	return digits[len(digits)-10:], nil
}

// NormalizePincode requires exactly 6 digits after stripping separators.
func NormalizePincode(pincode string) (string, error) {
	digits := digitsOnly(pincode)
	if len(digits) != 6 {
		return "", apperrors.NewValidation("pincode", "must be exactly 6 digits")
	}
	return digits, nil
}

// PackageDims holds the single-package dimensions sent to the carrier.
type PackageDims struct {
	Weight  float64
	Length  float64
	Breadth float64
	Height  float64
}

// ComputePackageDims folds line-item products into one package: the per-axis
// maximum of the declared dimensions. Products with no dimensions fall back
// to the catalog defaults.
func ComputePackageDims(products []models.Product) PackageDims {
	dims := PackageDims{}
	for _, p := range products {
		if p.Weight > dims.Weight {
			dims.Weight = p.Weight
		}
		if p.Length > dims.Length {
			dims.Length = p.Length
		}
		if p.Breadth > dims.Breadth {
			dims.Breadth = p.Breadth
		}
		if p.Height > dims.Height {
			dims.Height = p.Height
		}
	}
	if dims.Weight == 0 {
		dims.Weight = models.DefaultWeight
	}
	if dims.Length == 0 {
		dims.Length = models.DefaultLength
	}
	if dims.Breadth == 0 {
		dims.Breadth = models.DefaultBreadth
	}
	if dims.Height == 0 {
		dims.Height = models.DefaultHeight
	}
	return dims
}

// splitName separates a full name into the first/last parts the carrier
// payload wants. A single-word name gets "." as the last name, which the
// carrier accepts.
func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", "."
	}
	first = parts[0]
	last = strings.Join(parts[1:], " ")
	if last == "" {
		last = "."
	}
	return first, last
}
