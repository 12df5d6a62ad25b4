package tctim

import (
	"fmt"
	"math"
	"strings"
)

// DType is the element type of an Array
type DType int

const (
	// Uint8 is the canonical element type, stored in Array.Pix
	Uint8 DType = iota
	// Uint16 holds 16-bit samples, e.g. from 16-bit grayscale images
	Uint16
	// Int64 holds any signed or unsigned integer input other than uint8
	Int64
	// Float32 holds single precision input
	Float32
	// Float64 holds double precision input
	Float64
)

func (d DType) String() string {
	switch d {
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return fmt.Sprintf("DType(%d)", int(d))
	}
}

// Array is a dense row-major numeric array.
//
// Images use the axes (row, column, channel). Uint8 arrays keep their elements
// in Pix, every other element type keeps them in Data.
type Array struct {
	Shape []int
	DType DType
	Pix   []uint8
	Data  []float64
}

// NewUint8 allocates a zero-filled uint8 array
func NewUint8(shape ...int) *Array {
	return NewArray(Uint8, shape...)
}

// NewArray allocates a zero-filled array of the given element type
func NewArray(dtype DType, shape ...int) *Array {
	a := &Array{
		Shape: append([]int(nil), shape...),
		DType: dtype,
	}
	n := numElements(shape)
	if dtype == Uint8 {
		a.Pix = make([]uint8, n)
	} else {
		a.Data = make([]float64, n)
	}
	return a
}

func numElements(shape []int) int {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return 0
		}
		n *= d
	}
	return n
}

// Ndim returns the number of axes
func (a *Array) Ndim() int {
	return len(a.Shape)
}

// Len returns the number of elements
func (a *Array) Len() int {
	return numElements(a.Shape)
}

func (a *Array) String() string {
	dims := make([]string, len(a.Shape))
	for i, d := range a.Shape {
		dims[i] = fmt.Sprint(d)
	}
	return fmt.Sprintf("%s(%s)", a.DType, strings.Join(dims, "x"))
}

func (a *Array) offset(idx []int) int {
	if len(idx) != len(a.Shape) {
		panic(fmt.Sprintf("tctim: index with %d axes into array with %d axes", len(idx), len(a.Shape)))
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= a.Shape[i] {
			panic(fmt.Sprintf("tctim: index %d out of range for axis %d with size %d", v, i, a.Shape[i]))
		}
		off = off*a.Shape[i] + v
	}
	return off
}

// At returns the element at the given index as a float64
func (a *Array) At(idx ...int) float64 {
	return a.flat(a.offset(idx))
}

func (a *Array) flat(i int) float64 {
	if a.DType == Uint8 {
		return float64(a.Pix[i])
	}
	return a.Data[i]
}

func (a *Array) setFlat(i int, v float64) {
	if a.DType == Uint8 {
		a.Pix[i] = uint8(v)
		return
	}
	a.Data[i] = v
}

// MinMax returns the smallest and largest element, ignoring NaN.
// ok is false when the array holds no comparable element.
func (a *Array) MinMax() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	if a.DType == Uint8 {
		for _, v := range a.Pix {
			f := float64(v)
			lo = min(lo, f)
			hi = max(hi, f)
			ok = true
		}
		return lo, hi, ok
	}
	for _, v := range a.Data {
		if math.IsNaN(v) {
			continue
		}
		lo = min(lo, v)
		hi = max(hi, v)
		ok = true
	}
	return lo, hi, ok
}

// Clone returns a deep copy
func (a *Array) Clone() *Array {
	return &Array{
		Shape: append([]int(nil), a.Shape...),
		DType: a.DType,
		Pix:   append([]uint8(nil), a.Pix...),
		Data:  append([]float64(nil), a.Data...),
	}
}

// Reshape returns a view of the same elements with a different shape
func (a *Array) Reshape(shape ...int) (*Array, error) {
	if numElements(shape) != a.Len() {
		return nil, fmt.Errorf("%w: cannot reshape %v into %v", ErrShape, a.Shape, shape)
	}
	return &Array{
		Shape: append([]int(nil), shape...),
		DType: a.DType,
		Pix:   a.Pix,
		Data:  a.Data,
	}, nil
}

// validate checks that the backing storage matches the shape
func (a *Array) validate() error {
	if a == nil {
		return fmt.Errorf("%w: nil array", ErrConversion)
	}
	for _, d := range a.Shape {
		if d < 0 {
			return fmt.Errorf("%w: negative dimension in shape %v", ErrConversion, a.Shape)
		}
	}
	if a.DType < Uint8 || a.DType > Float64 {
		return fmt.Errorf("%w: unknown element type %s", ErrConversion, a.DType)
	}
	n, have := a.Len(), len(a.Data)
	if a.DType == Uint8 {
		have = len(a.Pix)
	}
	if n != have {
		return fmt.Errorf("%w: shape %v needs %d elements, have %d", ErrConversion, a.Shape, n, have)
	}
	return nil
}

// isCanonical reports whether the array can be fed to Encode
func (a *Array) isCanonical() error {
	switch {
	case a.DType != Uint8:
		return fmt.Errorf("%w: element type is %s, want uint8", ErrShape, a.DType)
	case a.Ndim() != 3:
		return fmt.Errorf("%w: %d axes, want 3", ErrShape, a.Ndim())
	case a.Shape[2] != 3:
		return fmt.Errorf("%w: %d channels, want 3", ErrShape, a.Shape[2])
	case a.Shape[0]%2 != 0:
		return fmt.Errorf("%w: odd number of rows (%d)", ErrShape, a.Shape[0])
	}
	return nil
}
