package tctim

import (
	"fmt"
	"image"
	"reflect"

	"golang.org/x/image/draw"
)

// FromAny interprets v as a numeric array.
//
// Supported inputs are *Array, Array, image.Image and nested slices or Go
// arrays of any integer, float or bool type. A *Array is borrowed, not copied;
// nothing in this package mutates its input.
func FromAny(v any) (*Array, error) {
	switch x := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil input", ErrConversion)
	case *Array:
		if err := x.validate(); err != nil {
			return nil, err
		}
		return x, nil
	case Array:
		if err := x.validate(); err != nil {
			return nil, err
		}
		return &x, nil
	case image.Image:
		return FromImage(x), nil
	}

	rv := reflect.ValueOf(v)
	depth, leaf := 0, rv.Type()
	for leaf.Kind() == reflect.Slice || leaf.Kind() == reflect.Array {
		leaf = leaf.Elem()
		depth++
	}
	dtype, ok := dtypeOf(leaf.Kind())
	if !ok {
		return nil, fmt.Errorf("%w: unsupported element type %s", ErrConversion, leaf)
	}

	shape := make([]int, depth)
	cur := rv
	for i := range depth {
		shape[i] = cur.Len()
		if cur.Len() == 0 {
			break
		}
		cur = cur.Index(0)
	}

	a := NewArray(dtype, shape...)
	pos := 0
	if err := fill(a, rv, 0, &pos); err != nil {
		return nil, err
	}
	return a, nil
}

func dtypeOf(k reflect.Kind) (DType, bool) {
	switch k {
	case reflect.Uint8:
		return Uint8, true
	case reflect.Uint16:
		return Uint16, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint32, reflect.Uint64, reflect.Uintptr, reflect.Bool:
		return Int64, true
	case reflect.Float32:
		return Float32, true
	case reflect.Float64:
		return Float64, true
	default:
		return 0, false
	}
}

// fill copies rv into a in row-major order, rejecting ragged input
func fill(a *Array, rv reflect.Value, axis int, pos *int) error {
	if axis == len(a.Shape) {
		a.setFlat(*pos, scalar(rv))
		*pos++
		return nil
	}
	if rv.Len() != a.Shape[axis] {
		return fmt.Errorf("%w: ragged input, axis %d has length %d and %d", ErrConversion, axis, a.Shape[axis], rv.Len())
	}
	for i := range rv.Len() {
		if err := fill(a, rv.Index(i), axis+1, pos); err != nil {
			return err
		}
	}
	return nil
}

func scalar(rv reflect.Value) float64 {
	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			return 1
		}
		return 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	default:
		return rv.Float()
	}
}

// FromImage converts a decoded image into an array.
// Grayscale images become (rows, columns) uint8 arrays; everything else
// becomes a (rows, columns, 4) array of non-premultiplied RGBA.
func FromImage(img image.Image) *Array {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if gray, ok := img.(*image.Gray); ok {
		a := NewUint8(h, w)
		for y := range h {
			off := gray.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(a.Pix[y*w:(y+1)*w], gray.Pix[off:off+w])
		}
		return a
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != 4*w || bounds.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}
	a := NewUint8(h, w, 4)
	copy(a.Pix, nrgba.Pix)
	return a
}

// Image converts a canonical array into an *image.RGBA
func (a *Array) Image() (*image.RGBA, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}
	if a.DType != Uint8 || a.Ndim() != 3 || a.Shape[2] != 3 {
		return nil, fmt.Errorf("%w: want a uint8 RGB array, got %s", ErrShape, a)
	}
	h, w := a.Shape[0], a.Shape[1]
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range h * w {
		copy(img.Pix[4*i:4*i+3], a.Pix[3*i:3*i+3])
		img.Pix[4*i+3] = 0xff
	}
	return img, nil
}

// fromRGBA reads back a fully opaque image produced by the resampler
func fromRGBA(img image.Image) *Array {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	a := NewUint8(h, w, 3)
	for y := range h {
		for x := range w {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := 3 * (y*w + x)
			a.Pix[i], a.Pix[i+1], a.Pix[i+2] = uint8(r>>8), uint8(g>>8), uint8(b>>8)
		}
	}
	return a
}
