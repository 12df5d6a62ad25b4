package tctim

import (
	"fmt"
	"io"
	"os"
)

// Options controls the rendering pipeline
type Options struct {
	// BBox is the value range rescaled onto [0, 255] for non-uint8 input.
	// When nil the input's own minimum and maximum are used.
	BBox *BBox
	// Fit downscales the image to the terminal size
	Fit bool
	// Montage treats the input as a batch of images and tiles it first
	Montage bool
	// Grid fixes the montage layout
	Grid *Grid
	// Size overrides the terminal size query
	Size SizeFunc
	// Fallback is the pixel budget used when the terminal size is unknown
	Fallback Budget
}

// DefaultOptions fits the image to the terminal and falls back to a 64x64
// pixel budget
func DefaultOptions() Options {
	return Options{
		Fit:      true,
		Fallback: DefaultFallback,
	}
}

func (o Options) fallback() Budget {
	if o.Fallback.Rows <= 0 || o.Fallback.Cols <= 0 {
		return DefaultFallback
	}
	return o.Fallback
}

// Render runs v through montage (if enabled), Normalize and Encode
func Render(v any, opts Options) (string, error) {
	a, err := prepare(v, opts)
	if err != nil {
		return "", err
	}
	return Encode(a)
}

// prepare returns the canonical array for v
func prepare(v any, opts Options) (*Array, error) {
	if opts.Montage {
		m, err := Montage(v, MontageOptions{
			Grid:     opts.Grid,
			Size:     opts.Size,
			Fallback: opts.fallback(),
		})
		if err != nil {
			return nil, err
		}
		v = m
	}
	return Normalize(v, opts)
}

type flusher interface {
	Flush() error
}

// Print renders v and writes it to w followed by a newline. A nil w writes
// to stdout. With flush set, a buffered w (one with a Flush method) is
// flushed after writing.
func Print(w io.Writer, v any, opts Options, flush bool) error {
	out, err := Render(v, opts)
	if err != nil {
		return err
	}
	if w == nil {
		w = os.Stdout
	}
	if _, err := io.WriteString(w, out+"\n"); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	if f, ok := w.(flusher); ok && flush {
		return f.Flush()
	}
	return nil
}

// Image is a renderable image with a fluent configuration API
type Image struct {
	source any
	reader io.Reader
	path   string

	opts Options
}

// New creates an Image from an array, nested slices or an image.Image
func New(v any) *Image {
	if v == nil {
		return nil
	}
	return &Image{
		source: v,
		opts:   DefaultOptions(),
	}
}

// Open creates an Image that is decoded from path on first use
func Open(path string) (*Image, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}
	return &Image{
		path: path,
		opts: DefaultOptions(),
	}, nil
}

// From creates an Image that is decoded from r on first use
func From(r io.Reader) *Image {
	if r == nil {
		return nil
	}
	return &Image{
		reader: r,
		opts:   DefaultOptions(),
	}
}

// BBox sets the value range used to rescale non-uint8 data
func (i *Image) BBox(lo, hi float64) *Image {
	i.opts.BBox = &BBox{Lo: lo, Hi: hi}
	return i
}

// Fit enables or disables fitting to the terminal size
func (i *Image) Fit(fit bool) *Image {
	i.opts.Fit = fit
	return i
}

// Montage enables tiling the source as a batch of images
func (i *Image) Montage(m bool) *Image {
	i.opts.Montage = m
	return i
}

// Grid sets the montage layout and enables montage
func (i *Image) Grid(rows, cols int) *Image {
	i.opts.Grid = &Grid{Rows: rows, Cols: cols}
	i.opts.Montage = true
	return i
}

// Size overrides the terminal size query
func (i *Image) Size(fn SizeFunc) *Image {
	i.opts.Size = fn
	return i
}

// Options returns a copy of the current configuration
func (i *Image) Options() Options {
	return i.opts
}

// Normalize returns the canonical array that Render encodes
func (i *Image) Normalize() (*Array, error) {
	src, err := i.load()
	if err != nil {
		return nil, err
	}
	return prepare(src, i.opts)
}

// Render generates the escape sequence string for the image
func (i *Image) Render() (string, error) {
	src, err := i.load()
	if err != nil {
		return "", err
	}
	return Render(src, i.opts)
}

// Print writes the image to stdout
func (i *Image) Print() error {
	return i.Fprint(os.Stdout, false)
}

// Fprint writes the image to w, optionally flushing it
func (i *Image) Fprint(w io.Writer, flush bool) error {
	src, err := i.load()
	if err != nil {
		return err
	}
	return Print(w, src, i.opts, flush)
}

// load decodes the image from the configured source
func (i *Image) load() (any, error) {
	if i.source != nil {
		return i.source, nil
	}

	if i.path != "" {
		a, err := DecodeFile(i.path)
		if err != nil {
			return nil, err
		}
		i.source = a
		return a, nil
	}

	if i.reader != nil {
		a, err := Decode(i.reader)
		if err != nil {
			return nil, err
		}
		i.source = a
		return a, nil
	}

	return nil, fmt.Errorf("no image source configured")
}

// Convenience functions for quick rendering

// RenderFile renders an image file with default settings
func RenderFile(path string) (string, error) {
	img, err := Open(path)
	if err != nil {
		return "", err
	}
	return img.Render()
}

// PrintFile prints an image file to stdout with default settings
func PrintFile(path string) error {
	img, err := Open(path)
	if err != nil {
		return err
	}
	return img.Print()
}
