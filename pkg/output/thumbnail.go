package output

import (
	"image"

	"github.com/nfnt/resize"
)

// Thumbnail scales img down to fit within maxSize x maxSize, keeping its aspect
// ratio. Images that already fit are returned unchanged.
func Thumbnail(img image.Image, maxSize uint) image.Image {
	return resize.Thumbnail(maxSize, maxSize, img, resize.Bilinear)
}
