package gray

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("gray: unsupported format")
)

// LoadImage loads an image from the given file path, auto-detecting the
// format from the extension. Supported formats: PNG, JPEG, BMP.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("gray: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Decode(f)
	case ".jpg", ".jpeg":
		return jpeg.Decode(f)
	case ".bmp":
		return bmp.Decode(f)
	default:
		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
		}
		return img, nil
	}
}

// SaveImage writes an image to the given file path. The format follows
// the extension: .png, .bmp, or .jpg/.jpeg.
func SaveImage(path string, img image.Image) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("gray: create file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(f, img)
	case ".bmp":
		err = bmp.Encode(f, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, nil)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
