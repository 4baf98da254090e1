// Package config holds the configuration of the letterbox demo.
//
// Configuration is layered: Default values, then an optional TOML file, then
// command line flags.
//
package config

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/db47h/letterbox"
	"github.com/db47h/ofs"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// Window configures the initial window.
type Window struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Resizable bool   `toml:"resizable"`
	// X and Y set the window position. Negative values center the window.
	X int `toml:"x"`
	Y int `toml:"y"`
}

// Virtual is the fixed virtual resolution content is authored in.
type Virtual struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

// Render holds rendering options.
//
type Render struct {
	VSync   int  `toml:"vsync"`   // swap interval
	MSAA    bool `toml:"msaa"`    // render through a multisampled framebuffer
	Samples int  `toml:"samples"` // 0 means the maximum supported by the driver
	// ClearColor is the RGBA color of the letterbox margins.
	ClearColor [4]float32 `toml:"clear_color"`
	GLVersion  string     `toml:"gl_version"` // requested context version, "major.minor"
	MaxFPS     int        `toml:"max_fps"`    // 0 for no limit other than vsync
}

// ContextVersion parses GLVersion.
//
func (r *Render) ContextVersion() (major, minor int, err error) {
	var rest string
	n, _ := fmt.Sscanf(r.GLVersion+" end", "%d.%d %s", &major, &minor, &rest)
	if n != 3 || rest != "end" || major < 1 || minor < 0 {
		return 0, 0, errors.Wrapf(letterbox.ErrInvalidArgument, "GL version %q", r.GLVersion)
	}
	return major, minor, nil
}

// Grid configures the background grid.
type Grid struct {
	Divisions int `toml:"divisions"` // number of cells across the virtual width
}

// Assets configures asset locations.
//
type Assets struct {
	Dirs       []string `toml:"dirs"` // overlay directories, searched last to first
	Background string   `toml:"background"`
	Cursor     string   `toml:"cursor"`
	Font       string   `toml:"font"` // empty for the built-in font
}

// Config is the complete demo configuration.
//
type Config struct {
	Window  Window  `toml:"window"`
	Virtual Virtual `toml:"virtual"`
	Render  Render  `toml:"render"`
	Grid    Grid    `toml:"grid"`
	Assets  Assets  `toml:"assets"`
	Verbose bool    `toml:"verbose"`
}

// Default returns the default configuration.
//
func Default() Config {
	return Config{
		Window:  Window{Title: "letterbox demo", Width: 500, Height: 500, Resizable: true, X: -1, Y: -1},
		Virtual: Virtual{Width: 1920, Height: 1080},
		Render:  Render{VSync: 1, MSAA: true, Samples: 8, GLVersion: "2.1"},
		Grid:    Grid{Divisions: 32},
		Assets: Assets{
			Dirs:       []string{"assets", "cmd/lbdemo/assets"},
			Background: "background.png",
			Cursor:     "red.png",
		},
	}
}

// Load reads the named TOML file from fs on top of the default configuration.
// Unknown keys are errors.
//
func Load(fs ofs.FileSystem, name string) (Config, error) {
	cfg := Default()
	f, err := fs.Open(name)
	if err != nil {
		return cfg, errors.Wrap(err, "open config")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return cfg, errors.Wrapf(err, "read %s", name)
	}
	if err = Decode(&cfg, data); err != nil {
		return cfg, errors.Wrapf(err, "decode %s", name)
	}
	return cfg, nil
}

// Decode decodes TOML data into cfg, keeping the current value of any field
// not present in data.
//
func Decode(cfg *Config, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// Validate checks that sizes and counts are in range. Errors have
// letterbox.ErrInvalidArgument as cause.
//
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return errors.Wrapf(letterbox.ErrInvalidArgument, "window size %dx%d", c.Window.Width, c.Window.Height)
	case !(c.Virtual.Width > 0 && c.Virtual.Height > 0):
		return errors.Wrapf(letterbox.ErrInvalidArgument, "virtual size %vx%v", c.Virtual.Width, c.Virtual.Height)
	case c.Render.Samples < 0:
		return errors.Wrapf(letterbox.ErrInvalidArgument, "samples %d", c.Render.Samples)
	case c.Render.MaxFPS < 0:
		return errors.Wrapf(letterbox.ErrInvalidArgument, "max fps %d", c.Render.MaxFPS)
	case c.Grid.Divisions <= 0:
		return errors.Wrapf(letterbox.ErrInvalidArgument, "grid divisions %d", c.Grid.Divisions)
	case len(c.Assets.Dirs) == 0:
		return errors.Wrap(letterbox.ErrInvalidArgument, "no asset directory")
	}
	_, _, err := c.Render.ContextVersion()
	return err
}

// RegisterFlags registers command line flags overriding the fields of c. It
// must be called after loading any configuration file and before fs.Parse.
//
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Window.Title, "title", c.Window.Title, "window title")
	fs.IntVar(&c.Window.Width, "w", c.Window.Width, "initial window width")
	fs.IntVar(&c.Window.Height, "h", c.Window.Height, "initial window height")
	fs.IntVar(&c.Window.X, "x", c.Window.X, "window x position, negative to center")
	fs.IntVar(&c.Window.Y, "y", c.Window.Y, "window y position, negative to center")
	fs.Var((*float32Value)(&c.Virtual.Width), "vw", "virtual width")
	fs.Var((*float32Value)(&c.Virtual.Height), "vh", "virtual height")
	fs.IntVar(&c.Render.VSync, "v", c.Render.VSync, "vsync value for glfw.SwapInterval")
	fs.BoolVar(&c.Render.MSAA, "msaa", c.Render.MSAA, "render through a multisampled framebuffer")
	fs.IntVar(&c.Render.Samples, "samples", c.Render.Samples, "MSAA samples, 0 for the driver maximum")
	fs.StringVar(&c.Render.GLVersion, "gl", c.Render.GLVersion, "OpenGL context version, compatibility profile")
	fs.IntVar(&c.Render.MaxFPS, "fps", c.Render.MaxFPS, "frame rate limit, 0 for none")
	fs.IntVar(&c.Grid.Divisions, "grid", c.Grid.Divisions, "grid cells across the virtual width")
	fs.Var((*listValue)(&c.Assets.Dirs), "assets", "comma separated list of asset directories")
	fs.BoolVar(&c.Verbose, "verbose", c.Verbose, "log cursor and resize events")
}

type float32Value float32

func (v *float32Value) String() string { return strconv.FormatFloat(float64(*v), 'g', -1, 32) }

func (v *float32Value) Set(s string) error {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return err
	}
	*v = float32Value(f)
	return nil
}

type listValue []string

func (l *listValue) String() string { return strings.Join(*l, ",") }

func (l *listValue) Set(s string) error {
	*l = (*l)[:0]
	for _, d := range strings.Split(s, ",") {
		if d = strings.TrimSpace(d); d != "" {
			*l = append(*l, d)
		}
	}
	return nil
}
