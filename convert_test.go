package tctim

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAny(t *testing.T) {
	tests := []struct {
		name      string
		in        any
		wantShape []int
		wantDType DType
		wantFlat  []float64
	}{
		{
			name:      "uint8 matrix",
			in:        [][]uint8{{1, 2}, {3, 4}},
			wantShape: []int{2, 2},
			wantDType: Uint8,
			wantFlat:  []float64{1, 2, 3, 4},
		},
		{
			name:      "float image",
			in:        [][][]float64{{{0.5, 1, 1.5}}},
			wantShape: []int{1, 1, 3},
			wantDType: Float64,
			wantFlat:  []float64{0.5, 1, 1.5},
		},
		{
			name:      "int vector",
			in:        []int{-3, 7},
			wantShape: []int{2},
			wantDType: Int64,
			wantFlat:  []float64{-3, 7},
		},
		{
			name:      "uint16 go arrays",
			in:        [2][1]uint16{{1000}, {65535}},
			wantShape: []int{2, 1},
			wantDType: Uint16,
			wantFlat:  []float64{1000, 65535},
		},
		{
			name:      "float32",
			in:        [][]float32{{0.25}},
			wantShape: []int{1, 1},
			wantDType: Float32,
			wantFlat:  []float64{0.25},
		},
		{
			name:      "bool",
			in:        [][]bool{{true, false}},
			wantShape: []int{1, 2},
			wantDType: Int64,
			wantFlat:  []float64{1, 0},
		},
		{
			name:      "scalar",
			in:        3.5,
			wantShape: nil,
			wantDType: Float64,
			wantFlat:  []float64{3.5},
		},
		{
			name:      "empty rows",
			in:        [][]float64{},
			wantShape: []int{0, 0},
			wantDType: Float64,
			wantFlat:  []float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := FromAny(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantShape, a.Shape)
			assert.Equal(t, tt.wantDType, a.DType)
			got := make([]float64, a.Len())
			for i := range got {
				got[i] = a.flat(i)
			}
			assert.Equal(t, tt.wantFlat, got)
		})
	}
}

func TestFromAnyErrors(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{name: "nil", in: nil},
		{name: "string", in: "image.png"},
		{name: "strings", in: []string{"a", "b"}},
		{name: "interface elements", in: [][]any{{1, 2}}},
		{name: "ragged", in: [][]int{{1, 2}, {3}}},
		{name: "ragged after empty", in: [][]int{{}, {1}}},
		{name: "complex", in: []complex128{1}},
		{name: "bad array", in: &Array{Shape: []int{3}, DType: Uint8, Pix: []uint8{1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromAny(tt.in)
			assert.ErrorIs(t, err, ErrConversion)
		})
	}
}

func TestFromAnyBorrowsArray(t *testing.T) {
	a := NewUint8(2, 2)
	got, err := FromAny(a)
	require.NoError(t, err)
	assert.Same(t, a, got)

	got, err = FromAny(*a)
	require.NoError(t, err)
	assert.Equal(t, a.Shape, got.Shape)
}

func TestFromImage(t *testing.T) {
	t.Run("gray", func(t *testing.T) {
		img := image.NewGray(image.Rect(0, 0, 4, 4))
		for i := range img.Pix {
			img.Pix[i] = uint8(i)
		}
		sub := img.SubImage(image.Rect(1, 1, 3, 4))

		a, err := FromAny(sub)
		require.NoError(t, err)
		assert.Equal(t, []int{3, 2}, a.Shape)
		assert.Equal(t, Uint8, a.DType)
		assert.Equal(t, []uint8{5, 6, 9, 10, 13, 14}, a.Pix)
	})

	t.Run("rgba becomes straight alpha", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 2, 1))
		img.Set(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		img.Set(1, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 0})

		a := FromImage(img)
		assert.Equal(t, []int{1, 2, 4}, a.Shape)
		assert.Equal(t, []uint8{200, 100, 50, 255}, a.Pix[:4])
		assert.Equal(t, uint8(0), a.Pix[7])
	})

	t.Run("offset bounds", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
		img.Set(2, 2, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
		sub := img.SubImage(image.Rect(1, 1, 3, 3))

		a := FromImage(sub)
		assert.Equal(t, []int{2, 2, 4}, a.Shape)
		assert.Equal(t, []uint8{1, 2, 3, 255}, a.Pix[12:16])
	})
}

func TestArrayImage(t *testing.T) {
	a := NewUint8(1, 2, 3)
	copy(a.Pix, []uint8{10, 20, 30, 40, 50, 60})

	img, err := a.Image()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 1), img.Bounds())
	assert.Equal(t, color.RGBA{R: 40, G: 50, B: 60, A: 255}, img.RGBAAt(1, 0))

	back := fromRGBA(img)
	assert.Equal(t, a.Pix, back.Pix)

	_, err = NewUint8(1, 2, 4).Image()
	assert.ErrorIs(t, err, ErrShape)
	_, err = NewArray(Float64, 1, 2, 3).Image()
	assert.ErrorIs(t, err, ErrShape)
}
