// Package app provides the window and input layer of the demo.
//
// An application implements Interface, plus any of the optional handler
// interfaces, and passes it to Main which creates the window, delivers the
// initial window and framebuffer sizes to the size handlers and runs the
// render loop until the window is closed.
//
package app

import (
	"image"
	"runtime"
	"time"

	"github.com/db47h/letterbox"
)

func init() {
	// the event loop and all GL calls must run on the main thread.
	runtime.LockOSThread()
}

// Main creates the application window and runs a until its window is closed.
//
// a.Init is called once the GL context is current. Once Init returns, size
// handlers are invoked with the current window and framebuffer sizes, then
// a.Draw is called once per frame. a.Terminate is called after the window is
// closed and its error, if any, returned.
//
func Main(a Interface, opts ...WindowOption) error {
	if err := drv.init(a, opts...); err != nil {
		return err
	}
	defer drv.terminate()
	if err := a.Init(drv.window()); err != nil {
		return err
	}
	drv.run(a)
	return a.Terminate()
}

// Window is the application window.
//
type Window interface {
	// FrameBufferSize returns the framebuffer size in pixels.
	FrameBufferSize() image.Point
	// Size returns the window size in screen coordinates.
	Size() image.Point
	// CursorPos returns the cursor position in framebuffer pixels.
	CursorPos() letterbox.Point
	SetTitle(title string)
	// Close flags the window for closing. The render loop exits at the end
	// of the current frame.
	Close()
}

type driver interface {
	init(Interface, ...WindowOption) error
	terminate()
	run(Interface)
	window() Window
}

// Interface is implemented by applications run by Main.
//
type Interface interface {
	Init(Window) error
	Draw(Window)
	Terminate() error
}

// FrameBufferSizeHandler is implemented by applications that need to be
// notified when the framebuffer is resized.
//
type FrameBufferSizeHandler interface {
	OnFrameBufferSize(w Window, width, height int)
}

// WindowSizeHandler is implemented by applications that need to be notified
// when the window is resized. Sizes are in screen coordinates, which may
// differ from framebuffer pixels on HiDPI displays.
//
type WindowSizeHandler interface {
	OnWindowSize(w Window, width, height int)
}

// CursorPosHandler is implemented by applications tracking the mouse cursor.
// pos is in framebuffer pixels, origin at the top-left corner.
//
type CursorPosHandler interface {
	OnCursorPos(w Window, pos letterbox.Point)
}

// RefreshHandler is implemented by applications that need to handle window
// refresh requests themselves. By default, the window is redrawn with Draw.
//
type RefreshHandler interface {
	OnRefresh(w Window)
}

// WindowOption is a window creation option passed to Main.
//
type WindowOption interface {
	set(*winCfg)
}

type winCfg struct {
	title        string
	x, y, w, h   int
	centered     bool
	resizable    bool
	samples      int
	swapInterval int
	major, minor int
	minFrameTime time.Duration
}

func defaultCfg() winCfg {
	return winCfg{
		title:        "letterbox",
		x:            -1,
		y:            -1,
		w:            500,
		h:            500,
		resizable:    true,
		swapInterval: 1,
		major:        2,
		minor:        1,
	}
}

// scaleToFrameBuffer converts a position in screen coordinates to framebuffer
// pixels, given the window and framebuffer sizes. On HiDPI displays, the
// framebuffer is larger than the window. Positions are returned unchanged for
// empty windows.
//
func scaleToFrameBuffer(x, y float64, win, fb image.Point) letterbox.Point {
	p := letterbox.Pt(float32(x), float32(y))
	if win.X <= 0 || win.Y <= 0 {
		return p
	}
	f := letterbox.PtPt(fb)
	return p.Scale(letterbox.Pt(f.X/float32(win.X), f.Y/float32(win.Y)))
}

type winOption func(*winCfg)

func (f winOption) set(cfg *winCfg) {
	f(cfg)
}

// Title sets the window title.
//
func Title(title string) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.title = title
	})
}

// Pos sets the window position. It overrides Centered.
//
func Pos(x, y int) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.x, cfg.y = x, y
		cfg.centered = false
	})
}

// Size sets the initial window size in screen coordinates.
//
func Size(w, h int) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.w, cfg.h = w, h
	})
}

// Centered centers the window on the primary monitor.
//
func Centered() WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.centered = true
	})
}

// Resizable sets whether the window can be resized by the user.
//
func Resizable(b bool) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.resizable = b
	})
}

// Samples sets the number of samples of the default framebuffer. 0 disables
// multisampling.
//
func Samples(n int) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.samples = n
	})
}

// SwapInterval sets the number of screen updates to wait for before swapping
// buffers. 0 disables vsync.
//
func SwapInterval(n int) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.swapInterval = n
	})
}

// ContextVersion sets the requested OpenGL context version. The default is
// 2.1, the renderer needs a compatibility context for immediate mode.
//
func ContextVersion(major, minor int) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.major, cfg.minor = major, minor
	})
}

// MinFrameTime caps the frame rate to one frame every t. It is mostly useful
// when vsync is disabled.
//
func MinFrameTime(t time.Duration) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.minFrameTime = t
	})
}
