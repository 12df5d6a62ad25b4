/*
Package tctim renders images in true-color terminals using Unicode half
blocks.

Every terminal cell shows two vertically stacked pixels: the top pixel is the
background color and the bottom pixel the foreground color of a lower half
block ("▄"), both set with 24-bit ANSI escape sequences. The terminal is
assumed to support true color; there is no capability detection or fallback.

The pipeline has three stages:

  - Montage (optional) tiles a batch of equally shaped images into a grid
  - Normalize turns grayscale, RGB or RGBA data of any numeric type into a
    canonical uint8 RGB array with an even number of rows, downscaled to fit
    the terminal
  - Encode turns a canonical array into the printable string

Basic Usage:

	// Simple one-liner
	tctim.PrintFile("image.png")

	// Numeric data, rescaled from a known range
	data := [][]float64{{0, 0.5}, {0.5, 1}}
	out, err := tctim.New(data).BBox(0, 1).Fit(false).Render()
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(out)

Montage:

	// batch has the axes (image, row, column, channel)
	out, err := tctim.New(batch).Grid(2, 3).Render()

Lower level:

	a, err := tctim.Normalize(data, tctim.DefaultOptions())
	if err != nil {
	    log.Fatal(err)
	}
	out, err := tctim.Encode(a)

Every function is stateless and safe for concurrent use as long as callers do
not modify an input while it is being rendered. Errors can be matched with
errors.Is against ErrConversion, ErrShape, ErrDegenerateRange,
ErrResourceUnavailable and ErrFileAccess.
*/
package tctim
