package scene

import (
	"testing"

	"github.com/db47h/letterbox"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-3

func newScene(t *testing.T, w, h float32) (*Scene, *letterbox.Projector) {
	t.Helper()
	p, err := letterbox.New(1920, 1080)
	require.NoError(t, err)
	require.NoError(t, p.SetBufferSize(w, h))
	s, err := New(p, 32)
	require.NoError(t, err)
	return s, p
}

func TestNew(t *testing.T) {
	p, err := letterbox.New(1920, 1080)
	require.NoError(t, err)
	_, err = New(p, 0)
	assert.Equal(t, letterbox.ErrInvalidArgument, errors.Cause(err))

	s, err := New(p, 32)
	require.NoError(t, err)
	assert.Equal(t, float32(60), s.CellSize())

	s, err = New(p, 7)
	require.NoError(t, err)
	assert.Equal(t, float32(274), s.CellSize())

	s, err = New(p, 5000)
	require.NoError(t, err)
	assert.Equal(t, float32(1), s.CellSize())
}

func TestGrid(t *testing.T) {
	s, _ := newScene(t, 1920, 1080)
	g := s.Grid()
	// 31 vertical and 17 horizontal inner lines
	require.Len(t, g, 48)
	assert.Equal(t, Segment{letterbox.Pt(60, 0), letterbox.Pt(60, 1080)}, g[0])
	assert.Equal(t, Segment{letterbox.Pt(1860, 0), letterbox.Pt(1860, 1080)}, g[30])
	assert.Equal(t, Segment{letterbox.Pt(0, 60), letterbox.Pt(1920, 60)}, g[31])
	assert.Equal(t, Segment{letterbox.Pt(0, 1020), letterbox.Pt(1920, 1020)}, g[47])
}

func TestCell(t *testing.T) {
	s, _ := newScene(t, 1920, 1080)
	tests := []struct {
		v    letterbox.Point
		cell letterbox.Point
		ok   bool
	}{
		{letterbox.Pt(0, 0), letterbox.Pt(0, 0), true},
		{letterbox.Pt(59.9, 61), letterbox.Pt(0, 60), true},
		{letterbox.Pt(1919, 1079), letterbox.Pt(1860, 1020), true},
		{letterbox.Pt(1920, 10), letterbox.Pt(1920, 0), false},
		{letterbox.Pt(10, 1080), letterbox.Pt(0, 1080), false},
		// slightly negative coordinates must not snap into the first cell
		{letterbox.Pt(-0.5, 10), letterbox.Pt(-60, 0), false},
		{letterbox.Pt(10, -59), letterbox.Pt(0, -60), false},
	}
	for _, tt := range tests {
		c, ok := s.Cell(tt.v)
		assert.Equal(t, tt.cell, c, "point %v", tt.v)
		assert.Equal(t, tt.ok, ok, "point %v", tt.v)
	}
}

func TestFrameCenter(t *testing.T) {
	s, p := newScene(t, 1000, 500)
	f := s.Frame(letterbox.Pt(500, 250), letterbox.Pt(16, 16))

	assert.InDelta(t, 960, f.Mouse.X, 0.1)
	assert.InDelta(t, 540, f.Mouse.Y, 0.1)

	mx := p.ProjectionMarginX()
	assert.InDelta(t, mx, f.Backdrop.X, 1e-6)
	assert.Equal(t, float32(0), f.Backdrop.Y)
	assert.InDelta(t, 1-2*mx, f.Backdrop.W, 1e-6)
	assert.Equal(t, float32(1), f.Backdrop.H)

	assert.InDelta(t, mx, f.Background.X, tol)
	assert.InDelta(t, 1-2*mx, f.Background.W, tol)

	require.True(t, f.HasHighlight)
	c, ok := s.Cell(f.Mouse)
	require.True(t, ok)
	assert.Equal(t, p.ProjectVirtualRect(letterbox.R(c.X, c.Y, 60, 60)), f.Highlight)
	assert.Equal(t, float32(540), c.Y)

	s2 := p.VirtualScale()
	assert.InDelta(t, 32*s2.X, f.Cursor.W, 1e-6)
	assert.InDelta(t, 32*s2.Y, f.Cursor.H, 1e-6)
	assert.InDelta(t, 0.5, f.Cursor.X+f.Cursor.W/2, tol)
	assert.InDelta(t, 0.5, f.Cursor.Y+f.Cursor.H/2, tol)

	assert.Equal(t, letterbox.Pt(0, 0), f.ScreenMouse.A)
	assert.Equal(t, letterbox.Pt(0.5, 0.5), f.ScreenMouse.B)
	assert.Equal(t, p.ProjectVirtualPoint(0, 0), f.VirtualMouse.A)
	assert.InDelta(t, 0.5, f.VirtualMouse.B.X, tol)
	assert.InDelta(t, 0.5, f.Center.B.X, tol)
	assert.InDelta(t, 0.5, f.Center.B.Y, tol)

	assert.Len(t, f.Grid, 48)
	assert.Equal(t, p.ProjectVirtualPoint(60, 0), f.Grid[0].A)
}

func TestFrameInMargin(t *testing.T) {
	s, p := newScene(t, 1000, 500)
	l := p.Layout()
	// a few pixels left of the view
	f := s.Frame(letterbox.Pt(l.MarginX-5, 100), letterbox.Pt(16, 16))
	assert.Less(t, f.Mouse.X, float32(0))
	assert.False(t, f.HasHighlight)
	// the screen line still reaches the cursor
	assert.InDelta(t, (l.MarginX-5)/1000, f.ScreenMouse.B.X, 1e-6)
}

func TestFrameNarrowBuffer(t *testing.T) {
	s, _ := newScene(t, 800, 800)
	f := s.Frame(letterbox.Pt(400, 10), letterbox.Pt(8, 8))
	assert.Equal(t, float32(0), f.Backdrop.X)
	assert.InDelta(t, 175.0/800, f.Backdrop.Y, 1e-6)
	assert.Equal(t, float32(1), f.Backdrop.W)
	assert.InDelta(t, 450.0/800, f.Backdrop.H, 1e-6)
	assert.False(t, f.HasHighlight)
}
