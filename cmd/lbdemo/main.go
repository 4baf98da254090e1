// Command lbdemo is an interactive demo of the letterbox projector.
//
// It draws a background image and a grid laid out in a fixed virtual
// resolution, letterboxed into a resizable window. Moving the mouse highlights
// the grid cell under the cursor and draws lines from the origin of both the
// screen and the virtual view to the cursor. Press Escape to quit, Space to
// toggle the information line.
//
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/db47h/letterbox/app"
	"github.com/db47h/letterbox/config"
	"github.com/db47h/ofs"
	"github.com/pkg/errors"
)

func loadConfig(args []string) (config.Config, error) {
	parse := func(cfg *config.Config) (string, error) {
		fs := flag.NewFlagSet(filepath.Base(os.Args[0]), flag.ExitOnError)
		name := fs.String("config", "", "TOML configuration file")
		cfg.RegisterFlags(fs)
		err := fs.Parse(args)
		return *name, err
	}

	cfg := config.Default()
	name, err := parse(&cfg)
	if err != nil || name == "" {
		return cfg, err
	}
	// load the file then parse flags again so that they take precedence.
	var ovl ofs.Overlay
	if err = ovl.Add(true, filepath.Dir(name)); err != nil {
		return cfg, errors.Wrap(err, "config directory")
	}
	if cfg, err = config.Load(&ovl, filepath.Base(name)); err != nil {
		return cfg, err
	}
	_, err = parse(&cfg)
	return cfg, err
}

func main() {
	log.SetFlags(log.Ltime | log.Lmicroseconds)
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if err = cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	d, err := newDemo(&cfg)
	if err != nil {
		log.Fatal(err)
	}
	major, minor, _ := cfg.Render.ContextVersion()
	opts := []app.WindowOption{
		app.Title(cfg.Window.Title),
		app.Size(cfg.Window.Width, cfg.Window.Height),
		app.Resizable(cfg.Window.Resizable),
		app.SwapInterval(cfg.Render.VSync),
		app.ContextVersion(major, minor),
	}
	if cfg.Window.X >= 0 && cfg.Window.Y >= 0 {
		opts = append(opts, app.Pos(cfg.Window.X, cfg.Window.Y))
	} else {
		opts = append(opts, app.Centered())
	}
	if cfg.Render.MaxFPS > 0 {
		opts = append(opts, app.MinFrameTime(time.Second/time.Duration(cfg.Render.MaxFPS)))
	}
	if !cfg.Render.MSAA && cfg.Render.Samples > 0 {
		// no off-screen framebuffer, ask the window system instead.
		opts = append(opts, app.Samples(cfg.Render.Samples))
	}
	if err = app.Main(d, opts...); err != nil {
		log.Fatal(err)
	}
}
