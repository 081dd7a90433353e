package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeQuantity(t *testing.T) {
	assert.Equal(t, 1, NormalizeQuantity(0))
	assert.Equal(t, 1, NormalizeQuantity(-3))
	assert.Equal(t, 1, NormalizeQuantity(1))
	assert.Equal(t, 7, NormalizeQuantity(7))
}

func TestResolveQuantity(t *testing.T) {
	tests := []struct {
		name string
		raw  interface{}
		want int
	}{
		{"int", 5, 5},
		{"zero int", 0, 1},
		{"negative int", -2, 1},
		{"numeric string", "12", 12},
		{"padded string", " 3 ", 3},
		{"empty string", "", 1},
		{"garbage string", "many", 1},
		{"whole float", 4.0, 4},
		{"fractional float", 2.5, 1},
		{"nil", nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveQuantity(tt.raw))
		})
	}
}

func TestDeriveQuantity_GallerySource(t *testing.T) {
	// Quantity follows the number of selected designs, minimum 1.
	assert.Equal(t, 3, DeriveQuantity(SourceGallery, 3, 10))
	assert.Equal(t, 1, DeriveQuantity(SourceGallery, 0, 10))
}

func TestDeriveQuantity_ManualSource(t *testing.T) {
	assert.Equal(t, 10, DeriveQuantity(SourceManual, 3, 10))
	assert.Equal(t, 1, DeriveQuantity(SourceManual, 3, 0))
}

func TestComputeLine(t *testing.T) {
	assert.Equal(t, 30000.0, ComputeLine(10000, 3))
	// Clamped quantity keeps a malformed payload from zeroing the line.
	assert.Equal(t, 10000.0, ComputeLine(10000, 0))
	assert.Equal(t, 10000.0, ComputeLine(10000, -4))
}
