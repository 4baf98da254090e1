package asset

import (
	"image"
	_ "image/jpeg" // decoders
	_ "image/png"
	"io"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

func loadImage(r io.Reader) (interface{}, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return ToRGBA(src), nil
}

// ToRGBA returns src as an *image.RGBA with bounds starting at (0, 0).
//
// image.RGBA holds alpha-premultiplied colors, so non-premultiplied sources
// like *image.NRGBA are premultiplied in the process. This matches a
// ONE, ONE_MINUS_SRC_ALPHA blend function.
//
func ToRGBA(src image.Image) *image.RGBA {
	sr := src.Bounds()
	if i, ok := src.(*image.RGBA); ok && sr.Min == (image.Point{}) {
		return i
	}
	dst := image.NewRGBA(image.Rectangle{Max: sr.Size()})
	draw.Draw(dst, dst.Bounds(), src, sr.Min, draw.Src)
	return dst
}

// Image returns the named image, loading it synchronously if it has not been
// preloaded.
//
func (m *Manager) Image(name string) (*image.RGBA, error) {
	a := Image(name)
	data, err := m.get(a)
	if err != nil {
		return nil, err
	}
	img, ok := data.(*image.RGBA)
	if !ok {
		return nil, errors.Errorf("%s is not an image", a)
	}
	return img, nil
}
