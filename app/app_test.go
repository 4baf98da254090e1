package app

import (
	"image"
	"testing"
	"time"

	"github.com/db47h/letterbox"
	"github.com/stretchr/testify/assert"
)

func TestScaleToFrameBuffer(t *testing.T) {
	tests := []struct {
		name    string
		x, y    float64
		win, fb image.Point
		want    letterbox.Point
	}{
		{"same size", 10, 20, image.Pt(500, 500), image.Pt(500, 500), letterbox.Pt(10, 20)},
		{"hidpi", 10, 20, image.Pt(500, 500), image.Pt(1000, 1000), letterbox.Pt(20, 40)},
		{"non uniform", 100, 100, image.Pt(800, 600), image.Pt(1600, 900), letterbox.Pt(200, 150)},
		{"fractional", 0.5, 0.25, image.Pt(400, 300), image.Pt(600, 450), letterbox.Pt(0.75, 0.375)},
		{"outside", -10, 610, image.Pt(800, 600), image.Pt(1600, 1200), letterbox.Pt(-20, 1220)},
		{"minimized", 10, 20, image.Pt(0, 0), image.Pt(0, 0), letterbox.Pt(10, 20)},
		{"empty framebuffer", 10, 20, image.Pt(500, 500), image.Pt(0, 0), letterbox.Pt(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := scaleToFrameBuffer(tt.x, tt.y, tt.win, tt.fb)
			assert.InDelta(t, tt.want.X, p.X, 1e-5)
			assert.InDelta(t, tt.want.Y, p.Y, 1e-5)
		})
	}
}

func TestWindowOptions(t *testing.T) {
	cfg := defaultCfg()
	for _, o := range []WindowOption{
		Title("test"), Size(640, 480), Centered(), Pos(10, 20), Resizable(false),
		Samples(4), SwapInterval(0), ContextVersion(3, 2), MinFrameTime(time.Second / 30),
	} {
		o.set(&cfg)
	}
	assert.Equal(t, winCfg{
		title:        "test",
		x:            10,
		y:            20,
		w:            640,
		h:            480,
		samples:      4,
		major:        3,
		minor:        2,
		minFrameTime: time.Second / 30,
	}, cfg)

	cfg = defaultCfg()
	Centered().set(&cfg)
	assert.True(t, cfg.centered)
	assert.Equal(t, 2, cfg.major)
	assert.Equal(t, 1, cfg.minor)
	assert.Equal(t, 1, cfg.swapInterval)
}
