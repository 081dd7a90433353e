package pricing

import (
	"strconv"
	"strings"
)

// QuantitySource tells where a line's quantity comes from.
type QuantitySource string

const (
	// SourceManual quantities are entered by the user and default to 1.
	SourceManual QuantitySource = "manual"
	// SourceGallery quantities are derived from the number of selected
	// designs and are not independently editable.
	SourceGallery QuantitySource = "gallery"
)

// NormalizeQuantity coerces a quantity to an integer of at least 1.
func NormalizeQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

// ResolveQuantity coerces a loosely typed quantity value from a request
// payload. Integers, floats carrying whole numbers, and numeric strings are
// accepted; anything else, including non-positive values, resolves to 1.
func ResolveQuantity(raw interface{}) int {
	switch v := raw.(type) {
	case int:
		return NormalizeQuantity(v)
	case int64:
		return NormalizeQuantity(int(v))
	case float64:
		if v > 0 && v == float64(int(v)) {
			return int(v)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return NormalizeQuantity(i)
		}
	}
	return 1
}

// DeriveQuantity resolves a line's effective quantity from its source.
// Gallery-sourced lines take the selected-design count (minimum 1) and
// ignore the manual field entirely.
func DeriveQuantity(source QuantitySource, gallerySelected, manual int) int {
	if source == SourceGallery {
		return NormalizeQuantity(gallerySelected)
	}
	return NormalizeQuantity(manual)
}

// ComputeLine combines a resolved unit price with a quantity into a line
// total. The quantity is clamped to at least 1 so a malformed value can
// never zero out or negate a line.
func ComputeLine(unitPrice float64, quantity int) float64 {
	return unitPrice * float64(NormalizeQuantity(quantity))
}
