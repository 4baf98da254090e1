// Package fbo provides a multisampled off-screen framebuffer used for
// anti-aliasing.
//
// Scenes are rendered into the framebuffer, then resolved to the default
// framebuffer with Blit. All functions must be called from the thread owning
// the GL context.
//
package fbo

import (
	"image"

	"github.com/go-gl/gl/v3.2-compatibility/gl"
	"github.com/pkg/errors"
)

// MaxSamples returns the maximum number of samples supported by the driver.
//
func MaxSamples() int {
	var n int32
	gl.GetIntegerv(gl.MAX_SAMPLES, &n)
	return int(n)
}

// A Framebuffer is a multisampled framebuffer with an RGBA8 color attachment
// and a depth24/stencil8 attachment.
//
type Framebuffer struct {
	id, color, depth uint32
	size             image.Point
	samples          int32
}

// New creates a new framebuffer of the given size. If samples is 0 or greater
// than MaxSamples, MaxSamples is used.
//
func New(size image.Point, samples int) (*Framebuffer, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, errors.Errorf("invalid framebuffer size %v", size)
	}
	if max := MaxSamples(); samples <= 0 || samples > max {
		samples = max
	}
	f := &Framebuffer{samples: int32(samples)}
	if err := f.create(size); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Framebuffer) create(size image.Point) error {
	w, h := int32(size.X), int32(size.Y)
	gl.GenRenderbuffers(1, &f.color)
	gl.GenRenderbuffers(1, &f.depth)
	gl.GenFramebuffers(1, &f.id)
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.id)
	gl.BindRenderbuffer(gl.RENDERBUFFER, f.color)
	gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, f.samples, gl.RGBA8, w, h)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, f.color)
	gl.BindRenderbuffer(gl.RENDERBUFFER, f.depth)
	gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, f.samples, gl.DEPTH24_STENCIL8, w, h)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, f.depth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		f.Delete()
		return errors.Errorf("incomplete framebuffer: status 0x%x", status)
	}
	f.size = size
	return nil
}

// Size returns the framebuffer size.
func (f *Framebuffer) Size() image.Point { return f.size }

// Samples returns the number of samples per pixel.
func (f *Framebuffer) Samples() int { return int(f.samples) }

// Resize recreates the framebuffer storage with the given size. Resizing to
// the current size is a no-op.
//
func (f *Framebuffer) Resize(size image.Point) error {
	if size == f.size {
		return nil
	}
	if size.X <= 0 || size.Y <= 0 {
		return errors.Errorf("invalid framebuffer size %v", size)
	}
	f.Delete()
	return errors.Wrap(f.create(size), "resize framebuffer")
}

// Bind makes f the current draw and read framebuffer.
//
func (f *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.id)
}

// Blit resolves the framebuffer content into the default framebuffer and
// leaves the default framebuffer bound.
//
func (f *Framebuffer) Blit() {
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, f.id)
	w, h := int32(f.size.X), int32(f.size.Y)
	gl.BlitFramebuffer(0, 0, w, h, 0, 0, w, h, gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Delete releases all GL resources held by f.
//
func (f *Framebuffer) Delete() {
	gl.DeleteRenderbuffers(1, &f.depth)
	gl.DeleteRenderbuffers(1, &f.color)
	gl.DeleteFramebuffers(1, &f.id)
	f.id, f.color, f.depth = 0, 0, 0
	f.size = image.Point{}
}
