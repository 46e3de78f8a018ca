package utils

import (
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// ScaleImage returns img scaled by an integer factor using nearest
// neighbour sampling, which keeps individual pixels crisp.
func ScaleImage(img image.Image, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// WritePNG encodes img, scaled by the given factor, as a PNG to w.
func WritePNG(w io.Writer, img image.Image, scale int) error {
	return png.Encode(w, ScaleImage(img, scale))
}
