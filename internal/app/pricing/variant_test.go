package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func bannerGroups() []VariantGroup {
	return []VariantGroup{
		{
			Name: "Material",
			Options: []VariantOption{
				{ID: 1, Value: "Flexi 280gsm", PriceAdjustment: 0},
				{
					ID: 2, Value: "Flexi Korea", PriceAdjustment: 15000,
					Subgroups: []VariantGroup{
						{
							Name: "Lamination",
							Options: []VariantOption{
								{ID: 21, Value: "Glossy", PriceAdjustment: 5000},
								{ID: 22, Value: "Matte", PriceAdjustment: 7500},
							},
						},
					},
				},
			},
		},
		{
			Name: "Finishing",
			Options: []VariantOption{
				{ID: 3, Value: "Eyelets", PriceAdjustment: 2000},
				{ID: 4, Value: "Pole Pocket", PriceAdjustment: -1000},
			},
		},
	}
}

func TestVariantAdjustment_TopLevelSelections(t *testing.T) {
	selected := SelectedOptions{
		"Material":  {ID: 2, Value: "Flexi Korea"},
		"Finishing": {ID: 3, Value: "Eyelets"},
	}

	adj := VariantAdjustment(bannerGroups(), selected)
	assert.Equal(t, 17000.0, adj)
}

func TestVariantAdjustment_SubgroupAdded(t *testing.T) {
	selected := SelectedOptions{
		"Material": {
			ID:    2,
			Value: "Flexi Korea",
			Sub: map[string]OptionChoice{
				"Lamination": {ID: 22, Value: "Matte"},
			},
		},
	}

	adj := VariantAdjustment(bannerGroups(), selected)
	assert.Equal(t, 22500.0, adj)
}

func TestVariantAdjustment_SubgroupIgnoredForOtherParent(t *testing.T) {
	// A sub-choice under an option with no subgroups contributes nothing.
	selected := SelectedOptions{
		"Material": {
			ID:    1,
			Value: "Flexi 280gsm",
			Sub: map[string]OptionChoice{
				"Lamination": {ID: 22, Value: "Matte"},
			},
		},
	}

	adj := VariantAdjustment(bannerGroups(), selected)
	assert.Equal(t, 0.0, adj)
}

func TestVariantAdjustment_MatchByValueFallback(t *testing.T) {
	selected := SelectedOptions{
		"Finishing": {Value: "Pole Pocket"},
	}

	adj := VariantAdjustment(bannerGroups(), selected)
	assert.Equal(t, -1000.0, adj)
}

func TestVariantAdjustment_StaleSelectionContributesZero(t *testing.T) {
	selected := SelectedOptions{
		"Material":  {ID: 999, Value: "Removed Material"},
		"Finishing": {ID: 3, Value: "Eyelets"},
	}

	adj := VariantAdjustment(bannerGroups(), selected)
	assert.Equal(t, 2000.0, adj)
}

func TestVariantAdjustment_UnknownGroupIgnored(t *testing.T) {
	selected := SelectedOptions{
		"Packaging": {ID: 7, Value: "Tube"},
	}

	adj := VariantAdjustment(bannerGroups(), selected)
	assert.Equal(t, 0.0, adj)
}

func TestVariantAdjustment_EmptyInputs(t *testing.T) {
	assert.Equal(t, 0.0, VariantAdjustment(nil, SelectedOptions{"Material": {ID: 1}}))
	assert.Equal(t, 0.0, VariantAdjustment(bannerGroups(), nil))
}
