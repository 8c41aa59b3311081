package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// Framebuffer holds one byte triple per pixel in row-major RGB order
type Framebuffer struct {
	Width  int
	Height int
	Pix    []byte
}

// NewFramebuffer allocates an empty framebuffer with room for every pixel
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, 0, 3*width*height),
	}
}

func (fb *Framebuffer) append(r, g, b uint8) {
	fb.Pix = append(fb.Pix, r, g, b)
}

// Bytes returns the raw RGB byte sequence
func (fb *Framebuffer) Bytes() []byte {
	return fb.Pix
}

// RGB returns the byte triple of pixel (i, j)
func (fb *Framebuffer) RGB(i, j int) (r, g, b uint8) {
	offset := 3 * (j*fb.Width + i)
	return fb.Pix[offset], fb.Pix[offset+1], fb.Pix[offset+2]
}

// ColorModel implements image.Image
func (fb *Framebuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

// At implements image.Image
func (fb *Framebuffer) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(fb.Bounds())) {
		return color.RGBA{}
	}
	r, g, b := fb.RGB(x, y)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// AverageLuminance returns the mean relative luminance of all pixels in [0, 1]
func (fb *Framebuffer) AverageLuminance() float64 {
	pixels := len(fb.Pix) / 3
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for p := 0; p < pixels; p++ {
		c := core.NewVec3(float64(fb.Pix[3*p]), float64(fb.Pix[3*p+1]), float64(fb.Pix[3*p+2]))
		total += c.Multiply(1.0 / 255.0).Luminance()
	}
	return total / float64(pixels)
}

// vec3ToRGB converts a color to bytes by clamping each channel to [0, 1] and
// scaling by 255, truncating toward zero
func vec3ToRGB(c core.Vec3) (r, g, b uint8) {
	c = c.Clamp(0.0, 1.0)
	return uint8(255 * c.X), uint8(255 * c.Y), uint8(255 * c.Z)
}
