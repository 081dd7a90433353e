package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveUnitPrice_Standard(t *testing.T) {
	product := CatalogProduct{
		ID:            1,
		PricingMethod: MethodStandard,
		Price:         50000,
		VariantGroups: []VariantGroup{
			{
				Name: "Paper",
				Options: []VariantOption{
					{ID: 1, Value: "Art Carton 260gsm", PriceAdjustment: 10000},
					{ID: 2, Value: "HVS 100gsm", PriceAdjustment: -5000},
				},
			},
		},
	}

	price, err := ResolveUnitPrice(product, SelectedOptions{"Paper": {ID: 1}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 60000.0, price)

	price, err = ResolveUnitPrice(product, SelectedOptions{"Paper": {ID: 2}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 45000.0, price)
}

func TestResolveUnitPrice_NeverNegative(t *testing.T) {
	product := CatalogProduct{
		PricingMethod: MethodStandard,
		Price:         1000,
		VariantGroups: []VariantGroup{
			{
				Name: "Promo",
				Options: []VariantOption{
					{ID: 1, Value: "Clearance", PriceAdjustment: -5000},
				},
			},
		},
	}

	price, err := ResolveUnitPrice(product, SelectedOptions{"Promo": {ID: 1}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, price)
}

func TestResolveUnitPrice_RollEstimateInInches(t *testing.T) {
	product := CatalogProduct{
		PricingMethod: MethodRoll,
		PricePerSqFt:  20000,
	}

	// 24in x 36in = 2ft x 3ft = 6 sqft
	size := &CutSize{Width: 24, Height: 36, Unit: UnitInch}
	price, err := ResolveUnitPrice(product, nil, size)
	require.NoError(t, err)
	assert.InDelta(t, 120000.0, price, 1e-9)
}

func TestResolveUnitPrice_RollEstimateInFeet(t *testing.T) {
	product := CatalogProduct{
		PricingMethod: MethodRoll,
		PricePerSqFt:  20000,
	}

	size := &CutSize{Width: 2, Height: 3, Unit: UnitFoot}
	price, err := ResolveUnitPrice(product, nil, size)
	require.NoError(t, err)
	assert.InDelta(t, 120000.0, price, 1e-9)
}

func TestResolveUnitPrice_RollWithAdjustment(t *testing.T) {
	product := CatalogProduct{
		PricingMethod: MethodRoll,
		PricePerSqFt:  20000,
		VariantGroups: []VariantGroup{
			{
				Name: "Finishing",
				Options: []VariantOption{
					{ID: 1, Value: "Eyelets", PriceAdjustment: 2000},
				},
			},
		},
	}

	size := &CutSize{Width: 1, Height: 1, Unit: UnitFoot}
	price, err := ResolveUnitPrice(product, SelectedOptions{"Finishing": {ID: 1}}, size)
	require.NoError(t, err)

	// The adjustment applies once per unit, not per square foot.
	assert.InDelta(t, 22000.0, price, 1e-9)
}

func TestResolveUnitPrice_RollMissingSize(t *testing.T) {
	product := CatalogProduct{PricingMethod: MethodRoll, PricePerSqFt: 20000}

	tests := []struct {
		name string
		size *CutSize
	}{
		{"nil size", nil},
		{"zero width", &CutSize{Width: 0, Height: 5, Unit: UnitFoot}},
		{"zero height", &CutSize{Width: 5, Height: 0, Unit: UnitFoot}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := ResolveUnitPrice(product, nil, tt.size)
			assert.ErrorIs(t, err, ErrMissingSize)
			assert.Equal(t, 0.0, price)
		})
	}
}
