// Package texture wraps OpenGL 2D textures drawn with the fixed function
// pipeline.
//
// All functions must be called from the thread owning the GL context.
//
package texture

import (
	"image"
	"image/color"
	"unsafe"

	"github.com/db47h/letterbox"
	"github.com/go-gl/gl/v3.2-compatibility/gl"
)

// FilterMode selects how to filter textures.
//
type FilterMode int32

// FilterMode values map directly to their OpenGL equivalents.
//
const (
	Nearest              FilterMode = gl.NEAREST
	Linear               FilterMode = gl.LINEAR
	NearestMipmapNearest FilterMode = gl.NEAREST_MIPMAP_NEAREST
	NearestMipmapLinear  FilterMode = gl.NEAREST_MIPMAP_LINEAR
	LinearMipmapNearest  FilterMode = gl.LINEAR_MIPMAP_NEAREST
	LinearMipmapLinear   FilterMode = gl.LINEAR_MIPMAP_LINEAR
)

// WrapMode selects how textures wrap when texture coordinates get outside of
// the range [0, 1].
//
type WrapMode int32

// WrapMode values map directly to their OpenGL equivalents.
//
const (
	Repeat         WrapMode = gl.REPEAT
	MirroredRepeat WrapMode = gl.MIRRORED_REPEAT
	ClampToEdge    WrapMode = gl.CLAMP_TO_EDGE
	ClampToBorder  WrapMode = gl.CLAMP_TO_BORDER
)

// A Texture is an OpenGL texture.
//
type Texture struct {
	width  int
	height int
	glID   uint32
	mipmap bool
}

type tp struct {
	wrapS, wrapT         WrapMode
	minFilter, magFilter FilterMode
	border               color.Color
}

// Parameter is implemented by functions setting texture parameters. See
// FromImage.
//
type Parameter interface {
	set(*tp)
}

type optionFunc func(*tp)

func (f optionFunc) set(p *tp) {
	f(p)
}

// Wrap sets the GL_TEXTURE_WRAP_S and GL_TEXTURE_WRAP_T texture parameters.
//
func Wrap(wrapS, wrapT WrapMode) Parameter {
	return optionFunc(func(p *tp) {
		p.wrapS = wrapS
		p.wrapT = wrapT
	})
}

// Filter sets the GL_TEXTURE_MIN_FILTER and GL_TEXTURE_MAG_FILTER texture parameters.
//
func Filter(min, mag FilterMode) Parameter {
	return optionFunc(func(p *tp) {
		p.minFilter = min
		p.magFilter = mag
	})
}

// BorderColor sets the GL_TEXTURE_BORDER_COLOR texture parameter.
//
func BorderColor(c color.Color) Parameter {
	return optionFunc(func(p *tp) {
		p.border = c
	})
}

// FromImage creates a new texture from an RGBA image whose bounds start at
// (0, 0), see asset.ToRGBA. Since image.RGBA is
// alpha-premultiplied, textures should be blended with ONE,
// ONE_MINUS_SRC_ALPHA.
//
func FromImage(src *image.RGBA, params ...Parameter) *Texture {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	t := &Texture{glID: tex}
	t.setParams(params...)
	t.upload(src)
	return t
}

// SetImage replaces the texture content with src, resizing the texture as
// needed.
//
func (t *Texture) SetImage(src *image.RGBA) {
	gl.BindTexture(gl.TEXTURE_2D, t.glID)
	t.upload(src)
}

func (t *Texture) upload(src *image.RGBA) {
	sz := src.Bounds().Size()
	t.width, t.height = sz.X, sz.Y
	var pix unsafe.Pointer
	if len(src.Pix) > 0 {
		pix = gl.Ptr(src.Pix)
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(src.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(sz.X), int32(sz.Y), 0, gl.RGBA, gl.UNSIGNED_BYTE, pix)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	if t.mipmap && pix != nil {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
}

func (t *Texture) setParams(params ...Parameter) {
	// the GL defaults use mipmaps, which our textures do not have unless asked for.
	tp := tp{minFilter: Linear, magFilter: Linear, wrapS: ClampToEdge, wrapT: ClampToEdge}
	for _, p := range params {
		p.set(&tp)
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, int32(tp.wrapS))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, int32(tp.wrapT))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, int32(tp.minFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, int32(tp.magFilter))
	if tp.border != nil {
		c := color.RGBAModel.Convert(tp.border).(color.RGBA)
		bc := [...]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
		gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &bc[0])
	}
	switch tp.minFilter {
	case NearestMipmapNearest, LinearMipmapLinear, LinearMipmapNearest, NearestMipmapLinear:
		t.mipmap = true
	default:
		t.mipmap = false
	}
}

// Bind binds the texture.
//
func (t *Texture) Bind() {
	gl.BindTexture(gl.TEXTURE_2D, t.glID)
}

// Size returns the size of the texture in pixels.
//
func (t *Texture) Size() image.Point {
	return image.Point{t.width, t.height}
}


// Render draws the texture stretched over r using the current projection.
// Blending must be set up by the caller.
//
func (t *Texture) Render(r letterbox.Rect) {
	gl.Enable(gl.TEXTURE_2D)
	t.Bind()
	gl.Color4f(1, 1, 1, 1)
	gl.Begin(gl.QUADS)
	gl.TexCoord2f(0, 0)
	gl.Vertex2f(r.X, r.Y)
	gl.TexCoord2f(1, 0)
	gl.Vertex2f(r.X+r.W, r.Y)
	gl.TexCoord2f(1, 1)
	gl.Vertex2f(r.X+r.W, r.Y+r.H)
	gl.TexCoord2f(0, 1)
	gl.Vertex2f(r.X, r.Y+r.H)
	gl.End()
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.Disable(gl.TEXTURE_2D)
}

// Delete deletes the texture.
//
func (t *Texture) Delete() {
	gl.DeleteTextures(1, &t.glID)
	t.glID = 0
}
