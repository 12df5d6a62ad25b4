package tctim

import (
	"github.com/nfnt/resize"
)

// fitToBudget downscales a canonical RGB array so that it fits within the
// budget, preserving the aspect ratio. Images that already fit are returned
// unchanged; images are never upscaled.
func fitToBudget(a *Array, budget Budget) (*Array, error) {
	rows, cols := a.Shape[0], a.Shape[1]
	if rows <= budget.Rows && cols <= budget.Cols {
		return a, nil
	}

	img, err := a.Image()
	if err != nil {
		return nil, err
	}

	// Thumbnail keeps the ratio and clamps each side to at least one pixel
	resized := resize.Thumbnail(uint(budget.Cols), uint(budget.Rows), img, resize.Lanczos3)

	return fromRGBA(resized), nil
}
