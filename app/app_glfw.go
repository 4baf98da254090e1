package app

import (
	"fmt"
	"image"
	"time"

	"github.com/db47h/letterbox"
	"github.com/db47h/letterbox/loop"
	"github.com/go-gl/gl/v3.2-compatibility/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
)

// DriverVersion returns a description of the GLFW and OpenGL versions in use.
// It must be called after the GL context has been created.
//
func DriverVersion() string {
	return fmt.Sprintf("GLFW %s - %s %s, OpenGL %s",
		glfw.GetVersionString(),
		gl.GoStr(gl.GetString(gl.VENDOR)),
		gl.GoStr(gl.GetString(gl.RENDERER)),
		gl.GoStr(gl.GetString(gl.VERSION)))
}

// KeyHandler is implemented by applications handling keyboard input. Releasing
// Escape always closes the window, before OnKey is called.
//
type KeyHandler interface {
	OnKey(w Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey)
}

var drv driver = new(glfwDriver)

type glfwDriver struct {
	w     *window
	a     Interface
	cfg   winCfg
	drawn bool
}

func (d *glfwDriver) init(a Interface, opts ...WindowOption) error {
	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "glfw init")
	}
	d.a = a
	d.cfg = defaultCfg()
	for _, o := range opts {
		o.set(&d.cfg)
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, d.cfg.major)
	glfw.WindowHint(glfw.ContextVersionMinor, d.cfg.minor)
	glfw.WindowHint(glfw.Samples, d.cfg.samples)

	if err := d.createWindow(); err != nil {
		glfw.Terminate()
		return err
	}
	return nil
}

func (d *glfwDriver) terminate() {
	if d.w != nil {
		d.w.glfw.Destroy()
		d.w = nil
	}
	glfw.Terminate()
}

func glfwBool(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func (d *glfwDriver) createWindow() error {
	cfg := &d.cfg
	// the window is shown once positioned.
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfwBool(cfg.resizable))
	w, err := glfw.CreateWindow(cfg.w, cfg.h, cfg.title, nil, nil)
	if err != nil {
		return errors.Wrap(err, "create window")
	}
	switch {
	case cfg.centered:
		if mode := glfw.GetPrimaryMonitor().GetVideoMode(); mode != nil {
			ww, wh := w.GetSize()
			w.SetPos((mode.Width-ww)/2, (mode.Height-wh)/2)
		}
	case cfg.x >= 0 && cfg.y >= 0:
		w.SetPos(cfg.x, cfg.y)
	}

	w.MakeContextCurrent()
	if err = gl.Init(); err != nil {
		w.Destroy()
		return errors.Wrap(err, "OpenGL init")
	}
	glfw.SwapInterval(cfg.swapInterval)

	w.Show()
	d.w = &window{glfw: w}
	return nil
}

// run sets up callbacks, invokes the size handlers with the current sizes and
// runs the render loop.
//
func (d *glfwDriver) run(a Interface) {
	w := d.w
	w.onFrameBufferSize, _ = a.(FrameBufferSizeHandler)
	w.onWindowSize, _ = a.(WindowSizeHandler)
	w.onCursorPos, _ = a.(CursorPosHandler)
	w.onKey, _ = a.(KeyHandler)
	w.onRefresh = d.refresh
	if h, ok := a.(RefreshHandler); ok {
		w.onRefresh = func() { h.OnRefresh(w) }
	}

	w.glfw.SetFramebufferSizeCallback(w.frameBufferSizeCallback)
	w.glfw.SetSizeCallback(w.sizeCallback)
	w.glfw.SetCursorPosCallback(w.cursorPosCallback)
	w.glfw.SetKeyCallback(w.keyCallback)
	w.glfw.SetRefreshCallback(w.refreshCallback)

	ww, wh := w.glfw.GetSize()
	w.sizeCallback(w.glfw, ww, wh)
	fw, fh := w.glfw.GetFramebufferSize()
	w.frameBufferSizeCallback(w.glfw, fw, fh)

	var l loop.Loop
	l.MinFrameTime(d.cfg.minFrameTime)
	l.Run(d)
}

func (d *glfwDriver) refresh() {
	d.a.Draw(d.w)
	d.w.glfw.SwapBuffers()
}

// ProcessEvents implements loop.EventProcessor.
//
func (d *glfwDriver) ProcessEvents() bool {
	w := d.w.glfw
	if d.drawn {
		w.SwapBuffers()
	}
	glfw.PollEvents()
	return w.ShouldClose()
}

// FrameStart implements loop.FrameStarter.
//
func (d *glfwDriver) FrameStart(t time.Time) {
	if fs, ok := d.a.(loop.FrameStarter); ok {
		fs.FrameStart(t)
	}
}

// Draw implements loop.Drawer.
//
func (d *glfwDriver) Draw() {
	d.a.Draw(d.w)
	d.drawn = true
}

func (d *glfwDriver) window() Window {
	return d.w
}

type window struct {
	glfw              *glfw.Window
	onFrameBufferSize FrameBufferSizeHandler
	onWindowSize      WindowSizeHandler
	onCursorPos       CursorPosHandler
	onKey             KeyHandler
	onRefresh         func()
}

func (w *window) FrameBufferSize() image.Point {
	return image.Pt(w.glfw.GetFramebufferSize())
}

func (w *window) Size() image.Point {
	return image.Pt(w.glfw.GetSize())
}

func (w *window) CursorPos() letterbox.Point {
	return w.toFrameBuffer(w.glfw.GetCursorPos())
}

func (w *window) SetTitle(title string) {
	w.glfw.SetTitle(title)
}

func (w *window) Close() {
	w.glfw.SetShouldClose(true)
}

func (w *window) toFrameBuffer(x, y float64) letterbox.Point {
	return scaleToFrameBuffer(x, y, w.Size(), w.FrameBufferSize())
}

func (w *window) frameBufferSizeCallback(_ *glfw.Window, width int, height int) {
	if h := w.onFrameBufferSize; h != nil {
		h.OnFrameBufferSize(w, width, height)
	}
}

func (w *window) sizeCallback(_ *glfw.Window, width int, height int) {
	if h := w.onWindowSize; h != nil {
		h.OnWindowSize(w, width, height)
	}
}

func (w *window) cursorPosCallback(_ *glfw.Window, x, y float64) {
	if h := w.onCursorPos; h != nil {
		h.OnCursorPos(w, w.toFrameBuffer(x, y))
	}
}

func (w *window) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Release {
		w.Close()
	}
	if h := w.onKey; h != nil {
		h.OnKey(w, key, scancode, action, mods)
	}
}

func (w *window) refreshCallback(_ *glfw.Window) {
	if f := w.onRefresh; f != nil {
		f()
	}
}
