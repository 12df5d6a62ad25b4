package tctim

import (
	"fmt"
	"math"
)

// BBox is the (low, high) value range mapped linearly onto [0, 255]
type BBox struct {
	Lo float64
	Hi float64
}

// Normalize converts v into a canonical image: uint8 elements, three RGB
// channels and an even number of rows.
//
// Non-uint8 input is rescaled using opts.BBox or, when that is nil, the
// array's own minimum and maximum. Alpha is folded onto black, grayscale is
// replicated to RGB, the image is optionally downscaled to fit the terminal
// and an odd final row is padded with zeros. The input is never modified and
// the result never shares memory with it.
func Normalize(v any, opts Options) (*Array, error) {
	a, err := FromAny(v)
	if err != nil {
		return nil, err
	}

	if a.Ndim() != 2 && a.Ndim() != 3 {
		return nil, fmt.Errorf("%w: image must have 2 or 3 axes, got %d", ErrShape, a.Ndim())
	}
	if a.Ndim() == 3 {
		switch a.Shape[2] {
		case 1, 3, 4:
		default:
			return nil, fmt.Errorf("%w: last axis holds color channels and must be 1, 3 or 4, got %d", ErrShape, a.Shape[2])
		}
	}

	fresh := false
	if a.DType != Uint8 {
		if a, err = rescale(a, opts.BBox); err != nil {
			return nil, err
		}
		fresh = true
	}

	if a.Ndim() == 2 {
		a, _ = a.Reshape(a.Shape[0], a.Shape[1], 1)
	}

	switch a.Shape[2] {
	case 4:
		a = foldAlpha(a)
		fresh = true
	case 1:
		a = grayToRGB(a)
		fresh = true
	}

	if opts.Fit {
		fitted, err := fitToBudget(a, PixelBudget(opts.Size, opts.fallback()))
		if err != nil {
			return nil, err
		}
		if fitted != a {
			a, fresh = fitted, true
		}
	}

	if a.Shape[0]%2 != 0 {
		a = padRow(a)
		fresh = true
	}

	if !fresh {
		a = a.Clone()
	}
	return a, nil
}

// rescale maps every element through clip(round((x-lo)*255/(hi-lo)), 0, 255)
func rescale(a *Array, bbox *BBox) (*Array, error) {
	var lo, hi float64
	if bbox != nil {
		lo, hi = bbox.Lo, bbox.Hi
	} else {
		var ok bool
		if lo, hi, ok = a.MinMax(); !ok {
			return nil, fmt.Errorf("%w: %s array holds no finite value range", ErrDegenerateRange, a)
		}
	}
	if hi == lo {
		return nil, fmt.Errorf("%w: low and high are both %v", ErrDegenerateRange, lo)
	}

	out := NewUint8(a.Shape...)
	scale := 255 / (hi - lo)
	for i, v := range a.Data {
		out.Pix[i] = clip8((v - lo) * scale)
	}
	return out, nil
}

// clip8 rounds to the nearest integer and saturates to [0, 255]; NaN maps to 0
func clip8(v float64) uint8 {
	v = math.Round(v)
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// foldAlpha composites straight RGBA onto black and drops the alpha channel
func foldAlpha(a *Array) *Array {
	rows, cols := a.Shape[0], a.Shape[1]
	out := NewUint8(rows, cols, 3)
	for i := range rows * cols {
		alpha := float64(a.Pix[4*i+3])
		for c := range 3 {
			out.Pix[3*i+c] = clip8(float64(a.Pix[4*i+c]) * alpha / 255)
		}
	}
	return out
}

// grayToRGB replicates a single channel three times
func grayToRGB(a *Array) *Array {
	rows, cols := a.Shape[0], a.Shape[1]
	out := NewUint8(rows, cols, 3)
	for i, v := range a.Pix[:rows*cols] {
		out.Pix[3*i], out.Pix[3*i+1], out.Pix[3*i+2] = v, v, v
	}
	return out
}

// padRow appends a single zero row
func padRow(a *Array) *Array {
	out := NewUint8(a.Shape[0]+1, a.Shape[1], a.Shape[2])
	copy(out.Pix, a.Pix)
	return out
}
