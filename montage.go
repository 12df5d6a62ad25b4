package tctim

import (
	"fmt"
	"slices"
)

// Grid is a montage layout in tiles
type Grid struct {
	Rows int
	Cols int
}

// MontageOptions configures Montage
type MontageOptions struct {
	// Grid fixes the layout. When nil, as many tiles as fit the terminal
	// width are placed per row.
	Grid *Grid
	// Size overrides the terminal size query
	Size SizeFunc
	// Fallback is the pixel budget used when the terminal size is unknown
	Fallback Budget
}

// Montage tiles a batch of equally shaped images into one image.
//
// The batch has the axes (image, row, column) for grayscale or (image, row,
// column, channel). Image i lands in tile (i / cols, i % cols). Unused tiles
// are filled with the batch minimum and images beyond rows*cols are dropped.
// The result keeps the element type of the batch.
func Montage(batch any, opts MontageOptions) (*Array, error) {
	a, err := FromAny(batch)
	if err != nil {
		return nil, err
	}
	switch a.Ndim() {
	case 3:
		a, _ = a.Reshape(a.Shape[0], a.Shape[1], a.Shape[2], 1)
	case 4:
	default:
		return nil, fmt.Errorf("%w: montage batch must have 3 (grayscale) or 4 (color) axes, got %d", ErrShape, a.Ndim())
	}
	n, tileH, tileW, channels := a.Shape[0], a.Shape[1], a.Shape[2], a.Shape[3]

	grid, err := montageGrid(n, tileW, opts)
	if err != nil {
		return nil, err
	}

	out := NewArray(a.DType, grid.Rows*tileH, grid.Cols*tileW, channels)
	if fill, _, ok := a.MinMax(); ok && fill != 0 {
		for i := range out.Len() {
			out.setFlat(i, fill)
		}
	}

	tileLen := tileH * tileW * channels
	rowLen := tileW * channels
	outRowLen := grid.Cols * rowLen
	for i := range min(n, grid.Rows*grid.Cols) {
		gy, gx := i/grid.Cols, i%grid.Cols
		for y := range tileH {
			src := i*tileLen + y*rowLen
			dst := (gy*tileH+y)*outRowLen + gx*rowLen
			copyElems(out, dst, a, src, rowLen)
		}
	}
	return out, nil
}

func montageGrid(n, tileW int, opts MontageOptions) (Grid, error) {
	if opts.Grid != nil {
		if opts.Grid.Rows <= 0 || opts.Grid.Cols <= 0 {
			return Grid{}, fmt.Errorf("%w: montage grid %dx%d must be positive", ErrShape, opts.Grid.Rows, opts.Grid.Cols)
		}
		return *opts.Grid, nil
	}

	fallback := opts.Fallback
	if fallback.Rows <= 0 || fallback.Cols <= 0 {
		fallback = DefaultFallback
	}
	budget := PixelBudget(opts.Size, fallback)

	cols := 1
	if tileW > 0 {
		cols = max(budget.Cols/tileW, 1)
	}
	return Grid{Rows: (n + cols - 1) / cols, Cols: cols}, nil
}

func copyElems(dst *Array, dstOff int, src *Array, srcOff, n int) {
	if dst.DType == Uint8 {
		copy(dst.Pix[dstOff:dstOff+n], src.Pix[srcOff:srcOff+n])
		return
	}
	copy(dst.Data[dstOff:dstOff+n], src.Data[srcOff:srcOff+n])
}

// Stack joins equally shaped arrays along a new leading axis, producing a
// batch for Montage
func Stack(arrays ...*Array) (*Array, error) {
	if len(arrays) == 0 {
		return nil, fmt.Errorf("%w: nothing to stack", ErrShape)
	}
	first := arrays[0]
	for i, a := range arrays {
		if err := a.validate(); err != nil {
			return nil, err
		}
		if a.DType != first.DType || !slices.Equal(a.Shape, first.Shape) {
			return nil, fmt.Errorf("%w: array %d is %s, want %s", ErrShape, i, a, first)
		}
	}

	out := NewArray(first.DType, append([]int{len(arrays)}, first.Shape...)...)
	n := first.Len()
	for i, a := range arrays {
		copyElems(out, i*n, a, 0, n)
	}
	return out, nil
}
