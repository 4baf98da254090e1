// Package scene computes the geometry of the letterbox demo for each frame.
//
// Everything is returned in projection space, ready to be drawn under an
// Ortho(0, 1, 1, 0, -1, 1) projection. The package does not issue any GL call.
//
package scene

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/db47h/letterbox"
	"github.com/pkg/errors"
)

// Colors used by the demo.
var (
	BackdropColor  = color.RGBA{G: 255, A: 255}
	HighlightColor = color.RGBA{R: 77, G: 128, B: 77, A: 255}
	LineColor      = color.RGBA{R: 255, G: 255, B: 255, A: 128}
	GridColor      = color.RGBA{A: 128}
)

// Segment is a line segment.
type Segment struct {
	A, B letterbox.Point
}

// Frame is the geometry of a single frame.
//
type Frame struct {
	Mouse        letterbox.Point // cursor position in virtual space
	Backdrop     letterbox.Rect  // buffer minus margins
	Background   letterbox.Rect  // the whole virtual view
	Highlight    letterbox.Rect  // grid cell under the cursor, valid if HasHighlight
	HasHighlight bool
	Grid         []Segment
	Center       Segment // virtual origin to view center
	ScreenMouse  Segment // screen origin to cursor, ignoring margins
	VirtualMouse Segment // virtual origin to cursor
	Cursor       letterbox.Rect
}

// Scene lays out the grid and cursor visualization of a letterboxed view.
//
type Scene struct {
	p    *letterbox.Projector
	cell float32
}

// New returns a new Scene drawing a grid with the given number of cells across
// the virtual width of p. Cell sizes are rounded down to whole virtual units.
//
func New(p *letterbox.Projector, divisions int) (*Scene, error) {
	if divisions <= 0 {
		return nil, errors.Wrapf(letterbox.ErrInvalidArgument, "grid divisions %d", divisions)
	}
	cell := math32.Floor(p.VirtualSize().X / float32(divisions))
	if cell < 1 {
		cell = 1
	}
	return &Scene{p: p, cell: cell}, nil
}

// CellSize returns the size of a grid cell in virtual units.
func (s *Scene) CellSize() float32 { return s.cell }

// Cell returns the origin of the grid cell containing the virtual point v and
// whether that cell lies within the virtual view.
//
func (s *Scene) Cell(v letterbox.Point) (letterbox.Point, bool) {
	vs := s.p.VirtualSize()
	c := letterbox.Pt(math32.Floor(v.X/s.cell)*s.cell, math32.Floor(v.Y/s.cell)*s.cell)
	return c, letterbox.R(0, 0, vs.X, vs.Y).Contains(c)
}

// Grid returns the inner grid lines, in virtual space.
//
func (s *Scene) Grid() []Segment {
	vs := s.p.VirtualSize()
	var segs []Segment
	for x := s.cell; x <= vs.X-s.cell; x += s.cell {
		segs = append(segs, Segment{letterbox.Pt(x, 0), letterbox.Pt(x, vs.Y)})
	}
	for y := s.cell; y <= vs.Y-s.cell; y += s.cell {
		segs = append(segs, Segment{letterbox.Pt(0, y), letterbox.Pt(vs.X, y)})
	}
	return segs
}

func (s *Scene) project(seg Segment) Segment {
	return Segment{
		s.p.ProjectVirtualPoint(seg.A.X, seg.A.Y),
		s.p.ProjectVirtualPoint(seg.B.X, seg.B.Y),
	}
}

// cursorBox returns a box twice the cursor size centered on v.
func cursorBox(v, cursor letterbox.Point) letterbox.Rect {
	o, sz := v.Sub(cursor), cursor.Mul(2)
	return letterbox.R(o.X, o.Y, sz.X, sz.Y)
}

// Frame computes the frame geometry for a cursor at screen position mouse (in
// buffer pixels) and a cursor image of the given size in virtual units.
//
func (s *Scene) Frame(mouse, cursor letterbox.Point) Frame {
	p := s.p
	vs := p.VirtualSize()
	mx, my := p.ProjectionMarginX(), p.ProjectionMarginY()
	mv := p.ProjectScreenPointToVirtual(mouse.X, mouse.Y)

	f := Frame{
		Mouse:        mv,
		Backdrop:     letterbox.R(mx, my, 1-2*mx, 1-2*my),
		Background:   p.ProjectVirtualRect(letterbox.R(0, 0, vs.X, vs.Y)),
		Center:       s.project(Segment{letterbox.Pt(0, 0), vs.Div(2)}),
		ScreenMouse:  Segment{p.ProjectScreenPoint(0, 0), p.ProjectScreenPoint(mouse.X, mouse.Y)},
		VirtualMouse: s.project(Segment{letterbox.Pt(0, 0), mv}),
		Cursor:       p.ProjectVirtualRect(cursorBox(mv, cursor)),
	}
	if c, ok := s.Cell(mv); ok {
		f.Highlight = p.ProjectVirtualRect(letterbox.R(c.X, c.Y, s.cell, s.cell))
		f.HasHighlight = true
	}
	grid := s.Grid()
	f.Grid = make([]Segment, len(grid))
	for i := range grid {
		f.Grid[i] = s.project(grid[i])
	}
	return f
}
