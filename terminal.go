package tctim

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// DefaultFallback is the pixel budget used when the terminal size is unknown
var DefaultFallback = Budget{Rows: 64, Cols: 64}

// SizeFunc reports the terminal size in character cells
type SizeFunc func() (rows, cols int, err error)

// Budget is a size in image pixels. Every terminal row holds two pixel rows.
type Budget struct {
	Rows int
	Cols int
}

// TerminalSize queries the size of the terminal attached to stdout
func TerminalSize() (rows, cols int, err error) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrResourceUnavailable, err)
	}
	return height, width, nil
}

// PixelBudget converts the terminal size into the number of pixel rows and
// columns that fit on screen. It never fails: if size is nil the real
// terminal is queried, and any error or empty size yields fallback.
func PixelBudget(size SizeFunc, fallback Budget) Budget {
	if size == nil {
		size = TerminalSize
	}
	rows, cols, err := size()
	if err != nil || rows <= 0 || cols <= 0 {
		return fallback
	}
	return Budget{Rows: 2 * rows, Cols: cols}
}
