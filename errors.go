package tctim

import "errors"

// Error kinds returned by the package. Callers match them with errors.Is;
// the wrapped message carries the detail.
var (
	// ErrConversion is returned when an input cannot be interpreted as a numeric array
	ErrConversion = errors.New("cannot convert input to a numeric array")
	// ErrShape is returned when the axis or channel count is not supported
	ErrShape = errors.New("unsupported array shape")
	// ErrDegenerateRange is returned when rescale bounds are equal
	ErrDegenerateRange = errors.New("degenerate rescale range")
	// ErrResourceUnavailable is returned when the terminal size cannot be determined
	ErrResourceUnavailable = errors.New("terminal size unavailable")
	// ErrFileAccess is returned when an image file cannot be opened
	ErrFileAccess = errors.New("cannot access image file")
)
