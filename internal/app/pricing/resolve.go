package pricing

// ResolveUnitPrice computes the per-unit price of one configured product.
//
// Standard products price as base price plus variant adjustments. Roll
// products price as cut area times the roll's per-square-foot rate plus
// variant adjustments; this is the customer-facing estimate, distinct from
// the production figure CalculateRollCut yields, because the estimate charges
// only the cut's own area while production bills the roll's full width.
//
// A roll product without a positive width and height returns ErrMissingSize;
// the caller must treat the price as unset and block line submission, never
// silently charge zero.
//
// The result is never negative: adjustments may raise or lower the base, but
// the floor is zero.
func ResolveUnitPrice(product CatalogProduct, selected SelectedOptions, size *CutSize) (float64, error) {
	adjustment := VariantAdjustment(product.VariantGroups, selected)

	switch product.PricingMethod {
	case MethodRoll:
		if size == nil || size.Width <= 0 || size.Height <= 0 {
			return 0, ErrMissingSize
		}
		widthFt := toFeet(size.Width, size.Unit)
		heightFt := toFeet(size.Height, size.Unit)
		area := widthFt * heightFt
		return clampPrice(area*product.PricePerSqFt + adjustment), nil
	default:
		return clampPrice(product.Price + adjustment), nil
	}
}

func clampPrice(price float64) float64 {
	if price < 0 {
		return 0
	}
	return price
}
