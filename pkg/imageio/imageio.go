package imageio

// Package imageio converts between the backend's base64 data-URL image
// encoding and Go images, and encodes images for local output.

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	_ "image/gif"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DecodeDataURL decodes a "data:image/...;base64,..." payload (or bare
// base64) into an image.
func DecodeDataURL(s string) (image.Image, error) {
	raw, err := DataURLBytes(s)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("Failed to decode image: %w", err)
	}
	return img, nil
}

// DataURLBytes strips the data-URL header, if present, and base64-decodes
// the rest.
func DataURLBytes(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:image") {
		comma := strings.IndexByte(s, ',')
		if comma == -1 {
			return nil, fmt.Errorf("Malformed data URL")
		}
		s = s[comma+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("Invalid base64 image payload: %w", err)
	}
	return raw, nil
}

// EncodeDataURL encodes an image as a PNG data URL, the format the backend
// emits from /generate and expects back in save payloads.
func EncodeDataURL(img image.Image) (string, error) {
	buf := bytes.Buffer{}
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Open loads an image file. PNG/JPEG/GIF/BMP/WebP are supported.
func Open(filename string) (image.Image, error) {
	return imaging.Open(filename)
}

// Encode writes img in the named format. WebP goes through chai2010/webp
// since the standard library has no webp encoder.
func Encode(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case "png":
		return png.Encode(w, img)
	case "jpg", "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	case "webp":
		return webp.Encode(w, img, &webp.Options{Quality: 90})
	default:
		return fmt.Errorf("Unsupported output format '%v'", format)
	}
}

// Thumbnail downscales img to fit within maxDim, preserving aspect.
// Images already small enough come back unchanged.
func Thumbnail(img image.Image, maxDim int) image.Image {
	if img.Bounds().Dx() <= maxDim && img.Bounds().Dy() <= maxDim {
		return img
	}
	return imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
}
