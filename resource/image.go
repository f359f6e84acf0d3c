package resource

import (
	"fmt"
	"image"
	"io"

	// Register the decoders games actually ship with.
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// DecodeImage decodes a PNG or JPEG image from r.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("resource: decode image: %w", err)
	}
	return img, nil
}

// ScaleImage resamples src to width x height with bilinear filtering.
// It returns src unchanged when it already has the requested size.
func ScaleImage(src image.Image, width, height int) image.Image {
	b := src.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
