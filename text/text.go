// Package text renders single line labels to images.
//
package text

import (
	"image"
	"image/color"

	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Hinting selects how to quantize a vector font's glyph nodes.
//
// Not all fonts support hinting.
//
// This is a convenience duplicate of golang.org/x/image/font#Hinting
//
type Hinting int

const (
	HintingNone     Hinting = Hinting(font.HintingNone)
	HintingVertical         = Hinting(font.HintingVertical)
	HintingFull             = Hinting(font.HintingFull)
)

// Drawer renders text with a given font face.
//
type Drawer struct {
	face font.Face
}

// NewDrawer returns a Drawer for font f at the given size in points (72 DPI).
//
func NewDrawer(f *truetype.Font, size float64, hinting Hinting) *Drawer {
	return &Drawer{
		face: truetype.NewFace(f, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.Hinting(hinting),
		}),
	}
}

// Default returns a Drawer using the Go Regular font.
//
func Default(size float64) (*Drawer, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "parse Go Regular")
	}
	return NewDrawer(f, size, HintingFull), nil
}

// BoundString returns the bounding box of s drawn at a dot equal to the origin,
// as well as the advance.
//
func (d *Drawer) BoundString(s string) (bounds fixed.Rectangle26_6, advance fixed.Int26_6) {
	return font.BoundString(d.face, s)
}

// Render draws s in color c on a transparent background. The returned image
// is just large enough to hold the text plus a one pixel border. It returns
// nil for strings with no visible glyphs.
//
func (d *Drawer) Render(s string, c color.Color) *image.RGBA {
	b, _ := d.BoundString(s)
	r := image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil())
	if r.Empty() {
		return nil
	}
	sz := r.Size().Add(image.Pt(2, 2))
	dst := image.NewRGBA(image.Rectangle{Max: sz})
	dr := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: d.face,
		// move the bounding box to (1, 1)
		Dot: fixed.P(1-r.Min.X, 1-r.Min.Y),
	}
	dr.DrawString(s)
	return dst
}

// RenderOn is like Render but draws the text over a solid background of color bg.
//
func (d *Drawer) RenderOn(s string, fg, bg color.Color) *image.RGBA {
	fgImg := d.Render(s, fg)
	if fgImg == nil {
		return nil
	}
	dst := image.NewRGBA(fgImg.Bounds())
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), fgImg, image.Point{}, draw.Over)
	return dst
}

// Close releases the font face.
//
func (d *Drawer) Close() error {
	return d.face.Close()
}
