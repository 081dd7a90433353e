package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateRollCut_NarrowCutLeavesOffcut(t *testing.T) {
	// 3ft roll, 120in (10ft) long cut, 30in tall: the roll bills its full
	// 36in width, leaving a 6in offcut strip along the cut's length.
	result, err := CalculateRollCut(3, 120, 30)
	require.NoError(t, err)

	assert.Equal(t, 30.0, result.FixedAreaFt2)
	assert.Equal(t, 6.0, result.OffcutWidthIn)
	assert.Equal(t, 5.0, result.OffcutAreaFt2)
}

func TestCalculateRollCut_FullWidthCutHasNoOffcut(t *testing.T) {
	result, err := CalculateRollCut(3, 60, 36)
	require.NoError(t, err)

	assert.Equal(t, 15.0, result.FixedAreaFt2)
	assert.Equal(t, 0.0, result.OffcutWidthIn)
	assert.Equal(t, 0.0, result.OffcutAreaFt2)
}

func TestCalculateRollCut_MissingDimensions(t *testing.T) {
	tests := []struct {
		name   string
		width  float64
		height float64
	}{
		{"zero width", 0, 30},
		{"zero height", 120, 0},
		{"negative width", -10, 30},
		{"both missing", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateRollCut(3, tt.width, tt.height)
			assert.ErrorIs(t, err, ErrMissingSize)
		})
	}
}

func TestCalculateRollCut_CutTallerThanRoll(t *testing.T) {
	_, err := CalculateRollCut(3, 120, 40)
	assert.ErrorIs(t, err, ErrCutExceedsRoll)
}

func TestCalculateRollCut_Deterministic(t *testing.T) {
	first, err := CalculateRollCut(4.5, 87, 31)
	require.NoError(t, err)
	second, err := CalculateRollCut(4.5, 87, 31)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
