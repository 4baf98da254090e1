package main

import (
	"image/color"

	"github.com/db47h/letterbox"
	"github.com/db47h/letterbox/scene"
	"github.com/go-gl/gl/v3.2-compatibility/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// projection maps [0, 1]x[0, 1] to the whole buffer, origin at the top-left.
var projection = mgl32.Ortho(0, 1, 1, 0, -1, 1)

func setColor(c color.RGBA) {
	gl.Color4ub(c.R, c.G, c.B, c.A)
}

func drawRect(r letterbox.Rect, c color.RGBA) {
	setColor(c)
	gl.Rectf(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

func vertex(p letterbox.Point) {
	gl.Vertex2f(p.X, p.Y)
}

func segments(c color.RGBA, segs ...scene.Segment) {
	setColor(c)
	gl.Begin(gl.LINES)
	for _, s := range segs {
		vertex(s.A)
		vertex(s.B)
	}
	gl.End()
}

func box(r letterbox.Rect) []scene.Segment {
	a, b, c, d := r.Min(), letterbox.Pt(r.X+r.W, r.Y), r.Max(), letterbox.Pt(r.X, r.Y+r.H)
	return []scene.Segment{{a, b}, {b, c}, {c, d}, {d, a}}
}

func (d *demo) render(f scene.Frame) {
	bs := d.p.BufferSize()
	gl.Viewport(0, 0, int32(bs.X), int32(bs.Y))
	cc := d.cfg.Render.ClearColor
	gl.ClearColor(cc[0], cc[1], cc[2], cc[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	// textures are premultiplied.
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)

	gl.MatrixMode(gl.PROJECTION)
	gl.LoadMatrixf(&projection[0])
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()

	drawRect(f.Backdrop, scene.BackdropColor)
	d.bg.Render(f.Background)
	if f.HasHighlight {
		drawRect(f.Highlight, scene.HighlightColor)
	}
	segments(scene.GridColor, f.Grid...)
	lines := append([]scene.Segment{f.Center, f.ScreenMouse, f.VirtualMouse}, box(f.Cursor)...)
	segments(scene.LineColor, lines...)
	d.cursor.Render(f.Cursor)

	if d.showHUD && d.hud != nil {
		// top-left corner of the view, one to one pixel mapping.
		sz := letterbox.PtPt(d.hud.Size())
		l := d.p.Layout()
		d.hud.Render(letterbox.R(
			(l.MarginX+4)/bs.X, (l.MarginY+4)/bs.Y,
			sz.X/bs.X, sz.Y/bs.Y))
	}
}
