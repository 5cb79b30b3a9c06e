package shiprocket

import (
	"testing"

	"github.com/shreeflow/shreeflow-backend-go/apperrors"
	"github.com/shreeflow/shreeflow-backend-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain ten digits", "9876543210", "9876543210"},
		{"country code with separators", "+91 98765-43210", "9876543210"},
		{"zero prefixed", "09876543210", "9876543210"},
		{"parenthesized", "(+91) 98765 43210", "9876543210"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizePhoneTooShort(t *testing.T) {
	_, err := NormalizePhone("98765")
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "phone", verr.Field)
}

func TestNormalizePincode(t *testing.T) {
	got, err := NormalizePincode("400 001")
	require.NoError(t, err)
	assert.Equal(t, "400001", got)

	for _, bad := range []string{"4000", "4000011", "abcdef"} {
		_, err := NormalizePincode(bad)
		var verr *apperrors.ValidationError
		require.ErrorAs(t, err, &verr, "pincode %q", bad)
		assert.Equal(t, "pincode", verr.Field)
	}
}

func TestComputePackageDimsTakesPerAxisMax(t *testing.T) {
	products := []models.Product{
		{Weight: 1.2, Length: 30, Breadth: 8, Height: 12},
		{Weight: 0.8, Length: 15, Breadth: 20, Height: 25},
	}
	dims := ComputePackageDims(products)
	assert.Equal(t, PackageDims{Weight: 1.2, Length: 30, Breadth: 20, Height: 25}, dims)
}

func TestComputePackageDimsDefaults(t *testing.T) {
	dims := ComputePackageDims([]models.Product{{}, {}})
	assert.Equal(t, PackageDims{
		Weight:  models.DefaultWeight,
		Length:  models.DefaultLength,
		Breadth: models.DefaultBreadth,
		Height:  models.DefaultHeight,
	}, dims)
}

func TestSplitName(t *testing.T) {
	first, last := splitName("Ramesh Kumar Patel")
	assert.Equal(t, "Ramesh", first)
	assert.Equal(t, "Kumar Patel", last)

	first, last = splitName("Ramesh")
	assert.Equal(t, "Ramesh", first)
	assert.Equal(t, ".", last)
}
