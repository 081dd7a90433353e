package pricing

// AdjustmentMode is how a discount or tax rule interprets its value.
type AdjustmentMode string

const (
	ModeNone    AdjustmentMode = "none"
	ModeFixed   AdjustmentMode = "fixed"
	ModePercent AdjustmentMode = "percent"
)

// Rule is one order-level adjustment. The zero value behaves as ModeNone.
type Rule struct {
	Mode  AdjustmentMode
	Value float64
}

// TotalsInput carries the order-level rules folded over the line totals.
// Absent rules behave as their none/zero case.
type TotalsInput struct {
	Discount       Rule
	Tax            Rule
	ShippingAmount float64
}

// Totals is the computed money breakdown of an order.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	TaxAmount      float64 `json:"tax_amount"`
	GrandTotal     float64 `json:"grand_total"`
}

// ComputeTotals folds line totals and adjustment rules into a grand total.
//
// A fixed discount never exceeds the subtotal. Percent tax applies to the
// post-discount base, so a discount is never taxed away. The grand total is
// floored at zero. Totals are always recomputed from the line totals, never
// adjusted incrementally, so recomputation cannot drift.
func ComputeTotals(lineTotals []float64, in TotalsInput) Totals {
	var subtotal float64
	for _, lt := range lineTotals {
		subtotal += lt
	}

	discount := applyRule(in.Discount, subtotal)
	if discount > subtotal {
		discount = subtotal
	}

	taxBase := subtotal - discount
	tax := applyRule(in.Tax, taxBase)

	grand := subtotal - discount + tax + in.ShippingAmount
	if grand < 0 {
		grand = 0
	}

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		GrandTotal:     grand,
	}
}

func applyRule(rule Rule, base float64) float64 {
	switch rule.Mode {
	case ModeFixed:
		return rule.Value
	case ModePercent:
		return base * rule.Value / 100
	default:
		return 0
	}
}
