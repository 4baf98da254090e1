// Package asset provides asynchronous loading and caching of images, fonts and
// raw files from an overlay file system.
//
// The package does not depend on a GL context: images are returned as
// *image.RGBA, ready to be uploaded as textures by the caller.
//
package asset

import (
	"io"
	"os"
	"path"
	"runtime"
	"strings"
	"sync"

	"github.com/db47h/ofs"
	"github.com/pkg/errors"
)

// ErrMissingAsset is the cause of errors returned when an asset file does not
// exist or when trying to discard an asset that is not loaded.
//
var ErrMissingAsset = errors.New("asset not found")

type errorList []error

func (e errorList) Error() string {
	var sb strings.Builder
	for i, err := range e {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// A Manager manages asynchronous (pre)loading and caching of images, fonts and
// raw files.
//
type Manager struct {
	fs      ofs.FileSystem
	cfg     *config
	m       sync.Mutex
	cond    *sync.Cond
	assets  map[Asset]interface{}
	pending map[Asset]struct{}
}

type config struct {
	imagePath string
	fontPath  string
	filePath  string
}

// Option is implemented by option functions passed as arguments to NewManager.
//
type Option interface {
	set(*config)
}

type cfn func(*config)

func (f cfn) set(cfg *config) {
	f(cfg)
}

// ImagePath returns an Option that sets the default image path.
//
func ImagePath(name string) Option {
	return cfn(func(cfg *config) {
		cfg.imagePath = name
	})
}

// FontPath returns an Option that sets the default font path.
//
func FontPath(name string) Option {
	return cfn(func(cfg *config) {
		cfg.fontPath = name
	})
}

// FilePath returns an Option that sets the default path for raw files.
//
func FilePath(name string) Option {
	return cfn(func(cfg *config) {
		cfg.filePath = name
	})
}

// NewManager returns a new asset Manager.
//
func NewManager(fs ofs.FileSystem, options ...Option) *Manager {
	cfg := new(config)
	for _, o := range options {
		o.set(cfg)
	}

	m := &Manager{
		fs:      fs,
		cfg:     cfg,
		assets:  make(map[Asset]interface{}),
		pending: make(map[Asset]struct{}),
	}
	m.cond = sync.NewCond(&m.m)
	return m
}

// Type designates the type of an asset.
//
type Type int

const (
	TypeImage Type = iota
	TypeFont
	TypeFile
)

// Asset uniquely describes an asset.
//
type Asset struct {
	Type
	Name string
}

func (a Asset) String() string {
	switch a.Type {
	case TypeImage:
		return "image asset " + a.Name
	case TypeFont:
		return "font asset " + a.Name
	case TypeFile:
		return "file asset " + a.Name
	}
	return "unknown asset " + a.Name
}

func Image(name string) Asset { return Asset{TypeImage, name} }
func Font(name string) Asset  { return Asset{TypeFont, name} }
func File(name string) Asset  { return Asset{TypeFile, name} }

type loader func(r io.Reader) (interface{}, error)

var loaders = map[Type]loader{
	TypeImage: loadImage,
	TypeFont:  loadFont,
	TypeFile:  loadFile,
}

func (m *Manager) assetPath(a Asset) string {
	switch a.Type {
	case TypeImage:
		return path.Join(m.cfg.imagePath, a.Name)
	case TypeFont:
		return path.Join(m.cfg.fontPath, a.Name)
	case TypeFile:
		return path.Join(m.cfg.filePath, a.Name)
	}
	return a.Name
}

type loadState int

const (
	stateMissing loadState = iota
	statePending
	stateLoaded
)

func (m *Manager) lookupNoLock(a Asset) (data interface{}, state loadState) {
	if data, ok := m.assets[a]; ok {
		return data, stateLoaded
	}
	if _, ok := m.pending[a]; ok {
		return nil, statePending
	}
	return nil, stateMissing
}

// read opens and decodes an asset. It must be called without holding m.m.
//
func (m *Manager) read(a Asset) (interface{}, error) {
	l, ok := loaders[a.Type]
	if !ok {
		return nil, errors.Errorf("unsupported asset type %d", a.Type)
	}
	name := m.assetPath(a)
	f, err := m.fs.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(ErrMissingAsset, "open %s", name)
		}
		return nil, err
	}
	defer f.Close()
	return l(f)
}

// get returns an asset from cache or synchronously loads it if not in the
// cache. If this asset is being loaded from another goroutine, get waits for
// the asset to be loaded and returns the cached version.
//
func (m *Manager) get(a Asset) (interface{}, error) {
	m.m.Lock()
	defer m.m.Unlock()
	for {
		data, s := m.lookupNoLock(a)
		switch s {
		case stateLoaded:
			return data, nil
		case stateMissing:
			m.pending[a] = struct{}{}
			m.m.Unlock()
			data, err := m.read(a)
			m.m.Lock()
			delete(m.pending, a)
			m.cond.Broadcast()
			if err != nil {
				return nil, errors.Wrapf(err, "load %s", a)
			}
			m.assets[a] = data
			return data, nil
		}
		m.cond.Wait()
	}
}

// Loaded reports whether the given asset is in the cache.
//
func (m *Manager) Loaded(a Asset) bool {
	m.m.Lock()
	_, s := m.lookupNoLock(a)
	m.m.Unlock()
	return s == stateLoaded
}

// Discard removes the given asset from the cache. If the asset is being
// loaded, Discard waits for the load to complete.
//
func (m *Manager) Discard(a Asset) error {
	m.m.Lock()
	for {
		if _, ok := m.assets[a]; ok {
			delete(m.assets, a)
			m.m.Unlock()
			return nil
		}
		if _, ok := m.pending[a]; !ok {
			m.m.Unlock()
			return errors.Wrapf(ErrMissingAsset, "discard %s", a)
		}
		m.cond.Wait()
	}
}

// Close discards all cached assets. Pending loads are not affected.
//
func (m *Manager) Close() {
	m.m.Lock()
	for a := range m.assets {
		delete(m.assets, a)
	}
	m.m.Unlock()
}

// Result wraps the result from preloading an asset.
//
type Result struct {
	Asset
	Err error
}

// Preload bulk preloads assets. It returns a channel to read preload results
// from as well as the number of assets that will actually be loaded; assets
// already cached or pending are skipped. Callers should rely on the rc channel
// being closed to ensure that the operation is complete.
//
func (m *Manager) Preload(assets ...Asset) (rc <-chan Result, n int) {
	todo := make([]Asset, 0, len(assets))
	m.m.Lock()
	for _, a := range assets {
		if _, s := m.lookupNoLock(a); s != stateMissing {
			continue
		}
		m.pending[a] = struct{}{}
		todo = append(todo, a)
	}
	m.m.Unlock()

	c := make(chan Result, len(todo))
	go m.preload(todo, c)
	return c, len(todo)
}

func (m *Manager) preload(assets []Asset, rc chan<- Result) {
	// a limited number of workers prevents excessive simultaneous disk access.
	workers := runtime.NumCPU()
	if workers > len(assets) {
		workers = len(assets)
	}
	c := make(chan Asset)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for a := range c {
				data, err := m.read(a)
				m.m.Lock()
				if err != nil {
					err = errors.Wrapf(err, "preload %s", a)
				} else {
					m.assets[a] = data
				}
				delete(m.pending, a)
				m.cond.Broadcast()
				m.m.Unlock()
				rc <- Result{Asset: a, Err: err}
			}
		}()
	}
	for _, a := range assets {
		c <- a
	}
	close(c)
	wg.Wait()
	close(rc)
}

// Wait waits for completion of a previous Preload and returns any load errors.
//
func Wait(rc <-chan Result) error {
	var errs errorList
	for r := range rc {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	if errs != nil {
		return errs
	}
	return nil
}
