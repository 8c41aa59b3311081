package output

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
)

// ErrUnknownFormat is returned for an unsupported image format name
var ErrUnknownFormat = errors.New("unknown image format")

// Format identifies an image container
type Format string

const (
	FormatPPM Format = "ppm"
	FormatPNG Format = "png"
	FormatBMP Format = "bmp"
)

// ParseFormat parses a format name, case-insensitively
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatPPM, FormatPNG, FormatBMP:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Extension returns the file extension including the dot
func (f Format) Extension() string {
	return "." + string(f)
}

// ContentType returns the MIME type
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatBMP:
		return "image/bmp"
	default:
		return "image/x-portable-pixmap"
	}
}

// RGBImage is an image that also exposes its raw row-major RGB bytes
type RGBImage interface {
	image.Image
	Bytes() []byte
}

// WritePPM writes a binary PPM: a "P6 <width> <height> 255" header line followed by the pixel bytes
func WritePPM(w io.Writer, width, height int, pix []byte) error {
	if len(pix) != 3*width*height {
		return fmt.Errorf("pixel data has %d bytes, expected %d for %dx%d", len(pix), 3*width*height, width, height)
	}
	if _, err := fmt.Fprintf(w, "P6 %d %d 255\n", width, height); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}
	if _, err := w.Write(pix); err != nil {
		return fmt.Errorf("failed to write PPM pixels: %w", err)
	}
	return nil
}

// Encode writes img in the given format
func Encode(w io.Writer, img RGBImage, format Format) error {
	switch format {
	case FormatPPM:
		bounds := img.Bounds()
		return WritePPM(w, bounds.Dx(), bounds.Dy(), img.Bytes())
	case FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("failed to encode PNG: %w", err)
		}
	case FormatBMP:
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("failed to encode BMP: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return nil
}
