package pricing

// RollCutResult is the production-side breakdown of cutting a piece from a
// fixed-width roll. The roll unwinds along its length and the operator cuts
// across the fixed width, so the cut's height always maps onto the roll's
// width axis.
type RollCutResult struct {
	// FixedAreaFt2 is billed at the roll's running rate regardless of
	// whether the cut uses the full roll width.
	FixedAreaFt2 float64 `json:"fixed_area_ft2"`
	// OffcutAreaFt2 is the leftover strip, tracked and priced separately.
	OffcutAreaFt2 float64 `json:"offcut_area_ft2"`
	// OffcutWidthIn is the width of the leftover strip in inches.
	OffcutWidthIn float64 `json:"offcut_width_in"`
}

// CalculateRollCut computes the billable and offcut areas for a cut taken
// from a roll. rollWidthFt is the roll's fixed width; the cut dimensions are
// in inches.
//
// Both cut dimensions must be positive before any price can derive from the
// result, and the cut height must fit across the roll.
func CalculateRollCut(rollWidthFt, cutWidthIn, cutHeightIn float64) (RollCutResult, error) {
	if cutWidthIn <= 0 || cutHeightIn <= 0 {
		return RollCutResult{}, ErrMissingSize
	}

	rollWidthIn := rollWidthFt * 12
	if cutHeightIn > rollWidthIn {
		return RollCutResult{}, ErrCutExceedsRoll
	}

	cutWidthFt := cutWidthIn / 12

	offcutWidthIn := rollWidthIn - cutHeightIn
	if offcutWidthIn < 0 {
		offcutWidthIn = 0
	}

	result := RollCutResult{
		FixedAreaFt2:  cutWidthFt * rollWidthFt,
		OffcutWidthIn: offcutWidthIn,
	}
	if offcutWidthIn > 0 {
		result.OffcutAreaFt2 = cutWidthFt * (offcutWidthIn / 12)
	}
	return result, nil
}
