package pricing

import "errors"

var (
	// ErrMissingSize is returned when a roll product is priced without a
	// positive cut width and height. Callers must block line submission
	// rather than charge zero.
	ErrMissingSize = errors.New("roll product requires cut width and height")

	// ErrCutExceedsRoll is returned when the cut height does not fit across
	// the roll's fixed width.
	ErrCutExceedsRoll = errors.New("cut height exceeds roll width")

	// ErrInvalidQuantity is available to boundary layers that validate
	// quantities instead of coercing them through NormalizeQuantity.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)
