package letterbox

import (
	"fmt"
	"image"
)

// Point is a 2D point or vector in any of the projector's coordinate spaces.
//
type Point struct {
	X float32
	Y float32
}

func PtPt(p image.Point) Point { return Point{float32(p.X), float32(p.Y)} }
func Pt(x, y float32) Point    { return Point{x, y} }

func (p Point) Sub(pt Point) Point  { return Point{p.X - pt.X, p.Y - pt.Y} }
func (p Point) Div(k float32) Point { return Point{p.X / k, p.Y / k} }
func (p Point) Mul(k float32) Point { return Point{p.X * k, p.Y * k} }

// Scale returns p scaled independently on each axis by the components of s.
//
func (p Point) Scale(s Point) Point { return Point{p.X * s.X, p.Y * s.Y} }

func (p Point) String() string {
	return fmt.Sprintf("(%.2f,%.2f)", p.X, p.Y)
}

// Rect is an axis aligned rectangle given by its origin and size. Unlike
// image.Rectangle, it is not canonicalized: W and H are used as is.
//
type Rect struct {
	X, Y float32
	W, H float32
}

// R is shorthand for Rect{X: x, Y: y, W: w, H: h}.
func R(x, y, w, h float32) Rect { return Rect{x, y, w, h} }

func (r Rect) Min() Point  { return Point{r.X, r.Y} }
func (r Rect) Max() Point  { return Point{r.X + r.W, r.Y + r.H} }
func (r Rect) Size() Point { return Point{r.W, r.H} }

// Contains reports whether p lies in [Min, Max).
//
func (r Rect) Contains(p Point) bool {
	return r.X <= p.X && p.X < r.X+r.W &&
		r.Y <= p.Y && p.Y < r.Y+r.H
}

func (r Rect) String() string {
	return fmt.Sprintf("%v+%v", r.Min(), r.Size())
}
