// Package preview renders a point cloud to a top-down WebP image, for
// quick visual inspection of a capture without a 3D viewer.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"sort"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"github.com/meshcap/meshcap/pkg/formats"
	"github.com/meshcap/meshcap/pkg/math"
)

// Options controls the rendered preview.
type Options struct {
	Size        int // output edge length in pixels
	Supersample int // render at Size*Supersample and filter down
	PointRadius int // splat radius at supersampled resolution
}

// DefaultOptions renders a 512px preview at 4x supersampling.
func DefaultOptions() Options {
	return Options{Size: 512, Supersample: 4, PointRadius: 2}
}

// Render draws the cloud seen from above (looking down -Y), each point
// splatted with its own color. Lower points are drawn first so higher
// geometry occludes the floor. The background stays transparent.
func Render(points []formats.PCDPoint, opts Options) *image.NRGBA {
	if opts.Size <= 0 {
		opts.Size = 512
	}
	if opts.Supersample <= 0 {
		opts.Supersample = 1
	}

	big := opts.Size * opts.Supersample
	img := image.NewNRGBA(image.Rect(0, 0, big, big))
	if len(points) == 0 {
		return downsample(img, opts.Size)
	}

	bounds := math.EmptyBox3()
	for _, p := range points {
		bounds = bounds.Expand(p.Position)
	}
	size := bounds.Size()
	extent := size.X
	if size.Z > extent {
		extent = size.Z
	}
	if extent == 0 {
		extent = 1
	}

	// Fit the cloud into the frame with a small margin, preserving
	// the XZ aspect ratio.
	margin := float32(big) * 0.05
	scale := (float32(big) - 2*margin) / extent
	center := bounds.Center()

	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return points[order[a]].Position.Y < points[order[b]].Position.Y
	})

	for _, i := range order {
		p := points[i]
		px := int(float32(big)/2 + (p.Position.X-center.X)*scale)
		py := int(float32(big)/2 + (p.Position.Z-center.Z)*scale)
		splat(img, px, py, opts.PointRadius, p.Color)
	}

	return downsample(img, opts.Size)
}

// WriteFile renders the cloud and writes it as a WebP file.
func WriteFile(path string, points []formats.PCDPoint, opts Options) error {
	img := Render(points, opts)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

func splat(img *image.NRGBA, cx, cy, r int, c color.RGBA) {
	b := img.Bounds()
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
				continue
			}
			img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
}

// downsample filters the supersampled render down to the target edge
// length. Alpha is premultiplied around the CatmullRom pass so the
// transparent background does not bleed dark halos into point edges.
func downsample(img *image.NRGBA, target int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= target && b.Dy() <= target {
		return img
	}

	premul := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := img.PixOffset(x, y)
			di := premul.PixOffset(x, y)
			a := float64(img.Pix[si+3]) / 255.0
			premul.Pix[di] = uint8(float64(img.Pix[si])*a + 0.5)
			premul.Pix[di+1] = uint8(float64(img.Pix[si+1])*a + 0.5)
			premul.Pix[di+2] = uint8(float64(img.Pix[si+2])*a + 0.5)
			premul.Pix[di+3] = img.Pix[si+3]
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, target, target))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, premul.Bounds(), draw.Src, nil)

	out := image.NewNRGBA(dst.Bounds())
	for y := 0; y < target; y++ {
		for x := 0; x < target; x++ {
			si := dst.PixOffset(x, y)
			di := out.PixOffset(x, y)
			a := float64(dst.Pix[si+3])
			if a > 1 {
				inv := 255.0 / a
				out.Pix[di] = clamp8(float64(dst.Pix[si]) * inv)
				out.Pix[di+1] = clamp8(float64(dst.Pix[si+1]) * inv)
				out.Pix[di+2] = clamp8(float64(dst.Pix[si+2]) * inv)
			}
			out.Pix[di+3] = dst.Pix[si+3]
		}
	}
	return out
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
