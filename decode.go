package tctim

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode reads an image in any registered format and converts it with
// FromImage
func Decode(r io.Reader) (*Array, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img), nil
}

// DecodeFile opens and decodes the image at path
func DecodeFile(path string) (*Array, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	defer file.Close()

	return Decode(file)
}
