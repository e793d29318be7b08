package gfx

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ColorFormat is the channel layout uploaded to a texture.
type ColorFormat int

const (
	RGB ColorFormat = iota
	RGBA
)

func (f ColorFormat) String() string {
	if f == RGB {
		return "rgb"
	}
	return "rgba"
}

func (f ColorFormat) glFormat() Enum {
	if f == RGB {
		return RGBFormat
	}
	return RGBAFormat
}

func (f ColorFormat) channels() int {
	if f == RGB {
		return 3
	}
	return 4
}

type Filter int

const (
	Nearest Filter = iota
	Linear
)

func (f Filter) glParam() int32 {
	if f == Linear {
		return int32(LinearFilter)
	}
	return int32(NearestFilter)
}

type Wrap int

const (
	Repeat Wrap = iota
	MirroredRepeat
	ClampToEdge
)

func (w Wrap) glParam() int32 {
	switch w {
	case MirroredRepeat:
		return int32(MirroredWrap)
	case ClampToEdge:
		return int32(ClampWrap)
	default:
		return int32(RepeatWrap)
	}
}

// Texture is a 2D image on the GPU assigned to one texture unit.
type Texture struct {
	ctx    *Context
	handle uint32
	unit   int32
	width  int
	height int
	format ColorFormat
}

// NewTexture decodes the image at path and uploads it as a texture for unit.
// Missing, unrecognised and malformed files all yield a *DecodeError.
func NewTexture(ctx *Context, path string, unit int32, format ColorFormat) (*Texture, error) {
	img, err := DecodeImage(path)
	if err != nil {
		return nil, err
	}
	return NewTextureFromImage(ctx, img, unit, format)
}

// DecodeImage reads a raster image file. Supported: png, jpeg, gif, bmp,
// tiff, webp.
func DecodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	r := bufio.NewReader(f)
	head, err := r.Peek(262)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, &DecodeError{Path: path, Err: err}
	}
	if !filetype.IsImage(head) {
		return nil, &DecodeError{Path: path, Err: ErrNotImage}
	}
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return img, nil
}

// NewTextureFromImage uploads img with mipmaps to a new texture on unit and
// applies nearest filtering with repeat wrapping. The texture is left bound.
func NewTextureFromImage(ctx *Context, img image.Image, unit int32, format ColorFormat) (*Texture, error) {
	pixels, width, height := imagePixels(img, format)

	d := ctx.driver
	handle := d.GenTexture()
	if err := ctx.allocated(KindTexture, handle); err != nil {
		return nil, err
	}
	t := &Texture{ctx: ctx, handle: handle, unit: unit, width: width, height: height, format: format}

	ctx.activeTexture(unit)
	ctx.bindTexture(handle)
	if format == RGB {
		// rows of 3-byte pixels are not 4-byte aligned in general
		d.PixelStorei(UnpackAlignment, 1)
	}
	d.TexImage2D(Texture2D, 0, int32(RGBAFormat), int32(width), int32(height), format.glFormat(), UnsignedByte, pixels)
	if format == RGB {
		d.PixelStorei(UnpackAlignment, 4)
	}
	d.GenerateMipmap(Texture2D)

	t.SetSampling(Nearest, Nearest, Repeat, Repeat)
	t.Bind()
	return t, nil
}

// imagePixels flattens img into tightly packed rows of the requested format,
// top row first.
func imagePixels(img image.Image, format ColorFormat) ([]byte, int, int) {
	b := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) || nrgba.Stride != 4*b.Dx() {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}
	if format == RGBA {
		return nrgba.Pix, b.Dx(), b.Dy()
	}
	n := b.Dx() * b.Dy()
	out := make([]byte, 0, n*format.channels())
	for i := 0; i < n; i++ {
		out = append(out, nrgba.Pix[4*i:4*i+3]...)
	}
	return out, b.Dx(), b.Dy()
}

func (t *Texture) Handle() uint32 { return t.handle }

// Unit returns the texture unit the texture was created for and which
// BindToUnit publishes to samplers.
func (t *Texture) Unit() int32 { return t.unit }

func (t *Texture) Size() (int, int) { return t.width, t.height }

func (t *Texture) Format() ColorFormat { return t.format }

func (t *Texture) String() string {
	return fmt.Sprintf("texture(%d, unit %d, %dx%d %s)", t.handle, t.unit, t.width, t.height, t.format)
}

// Bound reports whether the texture is bound on unit 0.
func (t *Texture) Bound() bool {
	return t.handle != 0 && t.ctx.textures[0] == t.handle
}

// Bind activates unit 0 and binds the texture there, whatever Unit returns.
// Shaders sampling from another unit see the binding made at creation time.
func (t *Texture) Bind() {
	if t.handle == 0 {
		return
	}
	t.ctx.activeTexture(0)
	t.ctx.bindTexture(t.handle)
}

func (t *Texture) Unbind() {
	if !t.Bound() {
		return
	}
	t.ctx.activeTexture(0)
	t.ctx.bindTexture(0)
}

// SetSampling binds the texture, sets filtering and wrapping, and unbinds it.
func (t *Texture) SetSampling(minFilter, magFilter Filter, wrapS, wrapT Wrap) {
	if t.handle == 0 {
		return
	}
	t.Bind()
	d := t.ctx.driver
	d.TexParameteri(Texture2D, TextureMinFilter, minFilter.glParam())
	d.TexParameteri(Texture2D, TextureMagFilter, magFilter.glParam())
	d.TexParameteri(Texture2D, TextureWrapS, wrapS.glParam())
	d.TexParameteri(Texture2D, TextureWrapT, wrapT.glParam())
	t.Unbind()
}

// BindToUnit points the sampler uniform named sampler in p at this texture's
// unit.
func (t *Texture) BindToUnit(p *ShaderProgram, sampler string) {
	u := NewUniform(sampler, p)
	p.Bind()
	u.SetInt(t.unit)
	p.Unbind()
}

func (t *Texture) Close() {
	if t.handle == 0 {
		return
	}
	t.Unbind()
	t.ctx.driver.DeleteTexture(t.handle)
	t.ctx.forgetTexture(t.handle)
	t.ctx.released(KindTexture, t.handle)
	t.handle = 0
}
