// Package pricing is the computation core of the print shop: it turns a
// product configuration into a unit price, a unit price and quantity into a
// line total, and a set of lines plus adjustment rules into order totals.
//
// Every function here is a deterministic, synchronous function of its inputs.
// The package does no I/O, holds no state, and never reaches for the catalog
// itself; callers hand it already-resolved data. Recomputing with the same
// inputs yields bit-identical results.
package pricing

// PricingMethod selects how a product's unit price is derived.
type PricingMethod string

const (
	// MethodStandard prices by a flat base price plus variant adjustments.
	MethodStandard PricingMethod = "standard"
	// MethodRoll prices by area cut from a fixed-width material roll.
	MethodRoll PricingMethod = "roll"
)

// SizeUnit is the unit of the customer-entered cut dimensions.
type SizeUnit string

const (
	UnitInch SizeUnit = "in"
	UnitFoot SizeUnit = "ft"
)

// CatalogProduct is the already-resolved product snapshot the core computes
// against. It mirrors the catalog model without owning it.
type CatalogProduct struct {
	ID            uint
	PricingMethod PricingMethod
	Price         float64 // standard unit price
	PricePerSqFt  float64 // roll running rate
	VariantGroups []VariantGroup
}

// CutSize is a requested cut, as entered on the storefront estimate form.
type CutSize struct {
	Width  float64
	Height float64
	Unit   SizeUnit
}

// toFeet converts a linear dimension to feet according to the size unit.
func toFeet(v float64, unit SizeUnit) float64 {
	if unit == UnitInch {
		return v / 12
	}
	return v
}
