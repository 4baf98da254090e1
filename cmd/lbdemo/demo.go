package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"time"

	"github.com/db47h/letterbox"
	"github.com/db47h/letterbox/app"
	"github.com/db47h/letterbox/asset"
	"github.com/db47h/letterbox/config"
	"github.com/db47h/letterbox/debug"
	"github.com/db47h/letterbox/fbo"
	"github.com/db47h/letterbox/scene"
	"github.com/db47h/letterbox/text"
	"github.com/db47h/letterbox/texture"
	"github.com/db47h/ofs"
	"github.com/go-gl/gl/v3.2-compatibility/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
)

// refresh rate of the information line, in frames.
const hudRefresh = 15

type demo struct {
	cfg   *config.Config
	mgr   *asset.Manager
	rc    <-chan asset.Result
	p     *letterbox.Projector
	scene *scene.Scene

	bg, cursor *texture.Texture
	fb         *fbo.Framebuffer
	resetFB    bool

	mouse   letterbox.Point // buffer pixels
	font    *text.Drawer
	hud     *texture.Texture
	showHUD bool
	timer   debug.Timer
	frames  int
}

// newDemo starts loading assets. Images are decoded while the window is being
// created and converted to textures in Init.
//
func newDemo(cfg *config.Config) (*demo, error) {
	p, err := letterbox.New(cfg.Virtual.Width, cfg.Virtual.Height)
	if err != nil {
		return nil, err
	}
	s, err := scene.New(p, cfg.Grid.Divisions)
	if err != nil {
		return nil, err
	}
	var ovl ofs.Overlay
	if err = ovl.Add(false, cfg.Assets.Dirs...); err != nil {
		return nil, errors.Wrap(err, "asset directories")
	}
	mgr := asset.NewManager(&ovl,
		asset.ImagePath("textures"),
		asset.FontPath("fonts"),
		asset.FilePath("."))
	assets := []asset.Asset{asset.Image(cfg.Assets.Background), asset.Image(cfg.Assets.Cursor)}
	if cfg.Assets.Font != "" {
		assets = append(assets, asset.Font(cfg.Assets.Font))
	}
	rc, _ := mgr.Preload(assets...)
	return &demo{cfg: cfg, mgr: mgr, rc: rc, p: p, scene: s, showHUD: true}, nil
}

func (d *demo) Init(w app.Window) error {
	log.Print(app.DriverVersion())
	if err := asset.Wait(d.rc); err != nil {
		return err
	}
	var err error
	// the background is mostly drawn scaled down.
	if d.bg, err = d.texture(d.cfg.Assets.Background, texture.Filter(texture.LinearMipmapLinear, texture.Linear)); err != nil {
		return err
	}
	// fade to transparent at the edges of the cursor box.
	if d.cursor, err = d.texture(d.cfg.Assets.Cursor,
		texture.Filter(texture.Linear, texture.Linear),
		texture.Wrap(texture.ClampToBorder, texture.ClampToBorder),
		texture.BorderColor(color.Transparent)); err != nil {
		return err
	}
	d.mouse = w.CursorPos()
	if d.cfg.Assets.Font != "" {
		f, err := d.mgr.Font(d.cfg.Assets.Font)
		if err != nil {
			return err
		}
		d.font = text.NewDrawer(f, 14, text.HintingFull)
	} else if d.font, err = text.Default(14); err != nil {
		return err
	}
	// decoded images are no longer needed once uploaded.
	d.mgr.Close()
	if d.cfg.Render.MSAA {
		log.Printf("max MSAA samples: %d", fbo.MaxSamples())
	}
	return nil
}

func (d *demo) texture(name string, params ...texture.Parameter) (*texture.Texture, error) {
	img, err := d.mgr.Image(name)
	if err != nil {
		return nil, err
	}
	return texture.FromImage(img, params...), nil
}

func (d *demo) Terminate() error {
	if d.fb != nil {
		d.fb.Delete()
	}
	for _, t := range []*texture.Texture{d.bg, d.cursor, d.hud} {
		if t != nil {
			t.Delete()
		}
	}
	if d.font != nil {
		return d.font.Close()
	}
	return nil
}

func (d *demo) OnFrameBufferSize(w app.Window, width, height int) {
	if d.cfg.Verbose {
		log.Printf("framebuffer size %dx%d", width, height)
	}
	if err := d.p.SetBufferSize(float32(width), float32(height)); err != nil {
		// minimized windows report a zero size: keep the previous layout.
		if d.cfg.Verbose {
			log.Print(err)
		}
		return
	}
	d.resetFB = true
}

func (d *demo) OnWindowSize(w app.Window, width, height int) {
	if d.cfg.Verbose {
		log.Printf("window size %dx%d", width, height)
	}
}

func (d *demo) OnCursorPos(w app.Window, pos letterbox.Point) {
	d.mouse = pos
	if d.cfg.Verbose {
		log.Printf("cursor at %v, virtual %v", pos, d.p.ProjectScreenPointToVirtual(pos.X, pos.Y))
	}
}

func (d *demo) OnKey(w app.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeySpace && action == glfw.Press {
		d.showHUD = !d.showHUD
	}
}

func (d *demo) FrameStart(t time.Time) {
	d.timer.Tick(t)
}

// resetFrameBuffer (re)creates the multisampled framebuffer to match the
// buffer size. On failure, rendering falls back to the default framebuffer.
//
func (d *demo) resetFrameBuffer() {
	d.resetFB = false
	if !d.cfg.Render.MSAA {
		return
	}
	bs := d.p.BufferSize()
	sz := image.Pt(int(bs.X), int(bs.Y))
	var err error
	if d.fb == nil {
		d.fb, err = fbo.New(sz, d.cfg.Render.Samples)
		if err == nil {
			log.Printf("using %dx multisampling", d.fb.Samples())
		}
	} else {
		err = d.fb.Resize(sz)
	}
	if err != nil {
		log.Printf("%v, multisampling disabled", err)
		if d.fb != nil {
			d.fb.Delete()
			d.fb = nil
		}
		d.cfg.Render.MSAA = false
	}
}

func (d *demo) updateHUD(w app.Window) {
	fps := d.timer.AveragePerSecond()
	if d.frames%hudRefresh == 0 {
		w.SetTitle(fmt.Sprintf("%s - %.0f fps", d.cfg.Window.Title, fps))
	}
	if !d.showHUD || (d.frames%hudRefresh != 0 && d.hud != nil) {
		return
	}
	v := d.p.ProjectScreenPointToVirtual(d.mouse.X, d.mouse.Y)
	img := d.font.RenderOn(debug.Info(d.mouse, v, fps), color.White, color.RGBA{A: 160})
	if img == nil {
		return
	}
	if d.hud == nil {
		d.hud = texture.FromImage(img, texture.Filter(texture.Nearest, texture.Nearest))
	} else {
		d.hud.SetImage(img)
	}
}

func (d *demo) Draw(w app.Window) {
	if d.resetFB {
		d.resetFrameBuffer()
	}
	d.updateHUD(w)
	d.frames++

	f := d.scene.Frame(d.mouse, letterbox.PtPt(d.cursor.Size()))
	if d.fb != nil {
		d.fb.Bind()
	}
	d.render(f)
	if d.fb != nil {
		d.fb.Blit()
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}
