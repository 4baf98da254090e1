// Package letterbox maps coordinates between a fixed virtual resolution and a
// resizable frame buffer, preserving the virtual aspect ratio by padding the
// buffer with margins.
//
// Three coordinate spaces are involved:
//
//	virtual     the fixed logical resolution content is authored in.
//	screen      physical pixels of the current frame buffer.
//	projection  normalized [0, 1]x[0, 1] coordinates, as consumed by an
//	            orthographic projection Ortho(0, 1, 1, 0, -1, 1).
//
// All spaces have their origin at the top-left corner with y increasing
// downwards.
//
package letterbox

import (
	"image"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// ErrInvalidArgument is the cause of all errors returned when a zero, negative
// or non-finite size is given to New or SetBufferSize.
//
var ErrInvalidArgument = errors.New("invalid argument")

// Layout is a snapshot of the letterbox layout for a given buffer size. All
// sizes and margins are in buffer pixels.
//
// Exactly one of MarginX and MarginY is non-zero, unless the buffer and virtual
// aspect ratios match, in which case both are zero.
//
type Layout struct {
	BufferW, BufferH float32 // size of the whole buffer
	ViewW, ViewH     float32 // size of the inscribed view
	MarginX, MarginY float32 // margin on each side of the view
	ScaleX, ScaleY   float32 // projection units per virtual unit
}

// MarginFracX returns the horizontal margin as a fraction of the buffer width.
func (l *Layout) MarginFracX() float32 { return l.MarginX / l.BufferW }

// MarginFracY returns the vertical margin as a fraction of the buffer height.
func (l *Layout) MarginFracY() float32 { return l.MarginY / l.BufferH }

func finite(vs ...float32) bool {
	for _, v := range vs {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func validSize(w, h float32) bool {
	// NaN fails both comparisons.
	return w > 0 && h > 0 && finite(w, h)
}

// ComputeLayout returns the letterbox layout of a view with the given virtual
// size inside a buffer of the given size.
//
// When the buffer is relatively wider than the virtual view, the view fills
// the buffer height and side margins absorb the excess width. Otherwise the
// view fills the buffer width with top and bottom margins. Matching aspect
// ratios take the latter path and yield zero margins.
//
// Sizes that produce a non-finite layout or a scale that is not positive are
// rejected with ErrInvalidArgument, see Projector.SetBufferSize.
//
func ComputeLayout(virtual, buffer Point) (Layout, error) {
	if !validSize(virtual.X, virtual.Y) {
		return Layout{}, errors.Wrapf(ErrInvalidArgument, "virtual size %v", virtual)
	}
	if !validSize(buffer.X, buffer.Y) {
		return Layout{}, errors.Wrapf(ErrInvalidArgument, "buffer size %v", buffer)
	}

	l := Layout{BufferW: buffer.X, BufferH: buffer.Y}
	bufferAR := buffer.X / buffer.Y
	targetAR := virtual.X / virtual.Y
	if bufferAR > targetAR {
		l.ViewW = buffer.Y * targetAR
		l.ViewH = buffer.Y
		l.MarginX = math32.Max(0, (buffer.X-l.ViewW)/2)
	} else {
		l.ViewW = buffer.X
		l.ViewH = buffer.X / targetAR
		l.MarginY = math32.Max(0, (buffer.Y-l.ViewH)/2)
	}
	l.ScaleX = (1 / virtual.X) * (l.ViewW / (buffer.X - l.MarginFracX()))
	l.ScaleY = (1 / virtual.Y) * (l.ViewH / (buffer.Y - l.MarginFracY()))

	if !finite(l.ViewW, l.ViewH, l.MarginX, l.MarginY) || !(l.ScaleX > 0 && l.ScaleY > 0) || !finite(l.ScaleX, l.ScaleY) {
		return Layout{}, errors.Wrapf(ErrInvalidArgument, "buffer size %v with virtual size %v", buffer, virtual)
	}
	return l, nil
}

// A Projector maintains the letterbox layout of a fixed virtual resolution
// inside a resizable buffer and converts coordinates between the virtual,
// screen and projection spaces.
//
// A Projector is not safe for concurrent use. Resize events delivered on a
// different goroutine than the one rendering must be serialized by the caller.
//
type Projector struct {
	virtual Point
	l       Layout
	sized   bool
}

// New returns a new Projector for the given virtual resolution.
//
// Until SetBufferSize is called, the projector behaves as if the buffer had
// the same size as the virtual view: no margins and a one to one scale.
//
func New(virtualWidth, virtualHeight float32) (*Projector, error) {
	v := Pt(virtualWidth, virtualHeight)
	l, err := ComputeLayout(v, v)
	if err != nil {
		return nil, err
	}
	return &Projector{virtual: v, l: l}, nil
}

// SetBufferSize updates the buffer size. This is expected to happen whenever
// the frame buffer is resized.
//
// If width or height is not a positive finite number, SetBufferSize returns an
// error whose cause is ErrInvalidArgument and the current layout is left
// unchanged. The same applies to sub-pixel buffers too small to hold their
// own margin fraction (BufferW <= MarginX/BufferW or the Y equivalent, e.g.
// 0.1x0.01 for a 16:9 view), for which the scale would not be positive, and
// to sizes whose scale overflows float32.
//
func (p *Projector) SetBufferSize(width, height float32) error {
	l, err := ComputeLayout(p.virtual, Pt(width, height))
	if err != nil {
		return err
	}
	p.l = l
	p.sized = true
	return nil
}

// SetBufferSizePt is like SetBufferSize for integer pixel sizes.
//
func (p *Projector) SetBufferSizePt(sz image.Point) error {
	return p.SetBufferSize(float32(sz.X), float32(sz.Y))
}

// Sized reports whether SetBufferSize has been successfully called at least
// once.
func (p *Projector) Sized() bool { return p.sized }

// VirtualSize returns the virtual resolution.
func (p *Projector) VirtualSize() Point { return p.virtual }

// BufferSize returns the current buffer size in pixels.
func (p *Projector) BufferSize() Point { return Pt(p.l.BufferW, p.l.BufferH) }

// Layout returns a copy of the current layout.
func (p *Projector) Layout() Layout { return p.l }

// ProjectionMarginX returns the width of the side margins as a fraction of the
// buffer width.
//
func (p *Projector) ProjectionMarginX() float32 { return p.l.MarginFracX() }

// ProjectionMarginY returns the height of the top and bottom margins as a
// fraction of the buffer height.
//
func (p *Projector) ProjectionMarginY() float32 { return p.l.MarginFracY() }

// VirtualScale returns the size of one virtual unit in projection space.
//
func (p *Projector) VirtualScale() Point { return Pt(p.l.ScaleX, p.l.ScaleY) }

// ProjectVirtualPoint projects a point from virtual space to projection space.
//
// Points outside of the virtual view are not clamped and may project outside
// of [0, 1].
//
func (p *Projector) ProjectVirtualPoint(x, y float32) Point {
	return Point{
		X: p.l.MarginFracX() + x*p.l.ScaleX,
		Y: p.l.MarginFracY() + y*p.l.ScaleY,
	}
}

// ProjectVirtualRect projects a rectangle from virtual space to projection
// space.
//
func (p *Projector) ProjectVirtualRect(r Rect) Rect {
	o := p.ProjectVirtualPoint(r.X, r.Y)
	return Rect{X: o.X, Y: o.Y, W: r.W * p.l.ScaleX, H: r.H * p.l.ScaleY}
}

// ProjectScreenPoint projects a point in buffer pixels to projection space.
//
// This is a plain normalization by the buffer size: margins are not taken
// into account. Use ProjectScreenPointToVirtual to locate a screen point in the
// letterboxed view.
//
func (p *Projector) ProjectScreenPoint(x, y float32) Point {
	return Point{X: x / p.l.BufferW, Y: y / p.l.BufferH}
}

// ProjectScreenPointToVirtual projects a point in buffer pixels to virtual
// space. It is the inverse of ProjectVirtualPoint composed with
// ProjectScreenPoint.
//
func (p *Projector) ProjectScreenPointToVirtual(x, y float32) Point {
	pp := p.ProjectScreenPoint(x, y)
	return Point{
		X: (pp.X - p.l.MarginFracX()) / p.l.ScaleX,
		Y: (pp.Y - p.l.MarginFracY()) / p.l.ScaleY,
	}
}

// Viewport returns the bounds of the inscribed view in buffer pixels, rounded
// to the nearest pixel.
//
func (p *Projector) Viewport() image.Rectangle {
	x0, y0 := math32.Round(p.l.MarginX), math32.Round(p.l.MarginY)
	return image.Rect(int(x0), int(y0), int(x0+math32.Round(p.l.ViewW)), int(y0+math32.Round(p.l.ViewH)))
}
