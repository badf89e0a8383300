// Package texture provides readable RGBA textures with bilinear
// sampling, plus decoders for the image formats scene assets use.
package texture

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
)

// Texture is an immutable 2D grid of RGBA pixels addressable by
// normalized UV coordinates. A nil *Texture is valid and samples as
// opaque white, which is the documented fallback for missing or
// non-readable textures.
type Texture struct {
	Width  int
	Height int
	Pix    []uint8 // RGBA, row-major, 4 bytes per pixel
}

// White is the color returned for absent textures.
var White = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// FromImage converts any image.Image into a Texture.
func FromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	t := &Texture{Width: w, Height: h, Pix: make([]uint8, w*h*4)}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r16, g16, b16, a16 := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := (y*w + x) * 4
			t.Pix[i] = uint8(r16 >> 8)
			t.Pix[i+1] = uint8(g16 >> 8)
			t.Pix[i+2] = uint8(b16 >> 8)
			t.Pix[i+3] = uint8(a16 >> 8)
		}
	}

	return t
}

// Readable reports whether the texture has pixel data to sample.
func (t *Texture) Readable() bool {
	return t != nil && t.Width > 0 && t.Height > 0 && len(t.Pix) >= t.Width*t.Height*4
}

// at returns the pixel at integer coordinates, clamped to the edges.
func (t *Texture) at(x, y int) (r, g, b, a float32) {
	if x < 0 {
		x = 0
	}
	if x >= t.Width {
		x = t.Width - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= t.Height {
		y = t.Height - 1
	}
	i := (y*t.Width + x) * 4
	return float32(t.Pix[i]), float32(t.Pix[i+1]), float32(t.Pix[i+2]), float32(t.Pix[i+3])
}

// Sample bilinearly samples the texture at normalized UV coordinates.
// V follows the texture-file convention of v=0 at the bottom row.
// Out-of-range coordinates wrap (textures tile). A non-readable
// texture samples as opaque white.
func (t *Texture) Sample(u, v float32) color.RGBA {
	if !t.Readable() {
		return White
	}

	u -= float32(int(u))
	if u < 0 {
		u += 1
	}
	v -= float32(int(v))
	if v < 0 {
		v += 1
	}

	fx := u*float32(t.Width) - 0.5
	fy := (1-v)*float32(t.Height) - 0.5
	x0 := int(math32.Floor(fx))
	y0 := int(math32.Floor(fy))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	r00, g00, b00, a00 := t.at(x0, y0)
	r10, g10, b10, a10 := t.at(x0+1, y0)
	r01, g01, b01, a01 := t.at(x0, y0+1)
	r11, g11, b11, a11 := t.at(x0+1, y0+1)

	lerp2 := func(c00, c10, c01, c11 float32) uint8 {
		top := c00 + (c10-c00)*tx
		bot := c01 + (c11-c01)*tx
		return uint8(top + (bot-top)*ty + 0.5)
	}

	return color.RGBA{
		R: lerp2(r00, r10, r01, r11),
		G: lerp2(g00, g10, g01, g11),
		B: lerp2(b00, b10, b01, b11),
		A: lerp2(a00, a10, a01, a11),
	}
}
