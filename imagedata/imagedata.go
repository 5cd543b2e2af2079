// Package imagedata converts images into the RGB888 pixel data carried by the
// image command.
package imagedata

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/disintegration/imaging"
)

// Image is tightly packed RGB888 pixel data, row by row
type Image struct {
	Width  int
	Height int
	Data   []byte
}

// Load opens the image at path and converts it with FromImage.  PNG, JPEG,
// GIF, BMP and TIFF are supported.
func Load(path string, width, height int, brightness float64) (*Image, error) {
	src, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	return FromImage(src, width, height, brightness)
}

// FromImage downscales src to fit within width x height, preserving its aspect
// ratio, and changes its brightness by the given fraction in [-1,1] when
// non-zero.  The result may be smaller than the requested size.
func FromImage(src image.Image, width, height int, brightness float64) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid target dimensions %dx%d", width, height)
	}
	if brightness < -1 || brightness > 1 {
		return nil, fmt.Errorf("brightness change %v out of range [-1,1]", brightness)
	}
	var img image.Image = imaging.Fit(src, width, height, imaging.Lanczos)
	if brightness != 0 {
		img = adjust.Brightness(img, brightness)
	}

	bounds := img.Bounds()
	out := &Image{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Data:   make([]byte, 0, bounds.Dx()*bounds.Dy()*3),
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out.Data = append(out.Data, px.R, px.G, px.B)
		}
	}
	return out, nil
}
