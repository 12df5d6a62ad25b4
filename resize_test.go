package tctim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestArray(rows, cols int) *Array {
	a := NewUint8(rows, cols, 3)
	// Fill with a simple pattern for visual verification
	for y := range rows {
		for x := range cols {
			i := 3 * (y*cols + x)
			a.Pix[i] = uint8((x * 255) / cols)
			a.Pix[i+1] = uint8((y * 255) / rows)
			a.Pix[i+2] = uint8((x + y) % 255)
		}
	}
	return a
}

func TestFitToBudget(t *testing.T) {
	tests := []struct {
		name       string
		sourceRows int
		sourceCols int
		budget     Budget
		wantRows   int
		wantCols   int
	}{
		{
			name:       "Fits already",
			sourceRows: 20,
			sourceCols: 30,
			budget:     Budget{Rows: 20, Cols: 30},
			wantRows:   20,
			wantCols:   30,
		},
		{
			name:       "Downscale square image",
			sourceRows: 100,
			sourceCols: 100,
			budget:     Budget{Rows: 50, Cols: 80},
			wantRows:   50,
			wantCols:   50,
		},
		{
			name:       "Width bound",
			sourceRows: 60,
			sourceCols: 200,
			budget:     Budget{Rows: 48, Cols: 100},
			wantRows:   30,
			wantCols:   100,
		},
		{
			name:       "Height bound",
			sourceRows: 300,
			sourceCols: 90,
			budget:     Budget{Rows: 100, Cols: 80},
			wantRows:   100,
			wantCols:   30,
		},
		{
			name:       "Thin strip keeps one pixel",
			sourceRows: 1,
			sourceCols: 500,
			budget:     Budget{Rows: 64, Cols: 64},
			wantRows:   1,
			wantCols:   64,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := createTestArray(tt.sourceRows, tt.sourceCols)
			got, err := fitToBudget(src, tt.budget)
			require.NoError(t, err)

			assert.Equal(t, []int{tt.wantRows, tt.wantCols, 3}, got.Shape)
			assert.LessOrEqual(t, got.Shape[0], tt.budget.Rows)
			assert.LessOrEqual(t, got.Shape[1], tt.budget.Cols)
			require.NoError(t, got.validate())
		})
	}
}

func TestFitToBudgetKeepsSolidColor(t *testing.T) {
	src := NewUint8(40, 40, 3)
	for i := 0; i < len(src.Pix); i += 3 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2] = 200, 100, 50
	}

	got, err := fitToBudget(src, Budget{Rows: 10, Cols: 10})
	require.NoError(t, err)
	require.Equal(t, []int{10, 10, 3}, got.Shape)

	for i := 0; i < len(got.Pix); i += 3 {
		assert.InDelta(t, 200, got.Pix[i], 1)
		assert.InDelta(t, 100, got.Pix[i+1], 1)
		assert.InDelta(t, 50, got.Pix[i+2], 1)
	}
}

func TestFitToBudgetReturnsSameArrayWhenItFits(t *testing.T) {
	src := createTestArray(4, 4)
	got, err := fitToBudget(src, Budget{Rows: 64, Cols: 64})
	require.NoError(t, err)
	assert.Same(t, src, got)
}
