// Package raster renders a scene tree into an RGBA preview image.
//
// Leaves are filled with golang.org/x/image/vector: points as small dots,
// circles as stroked rings. The scene is scaled to fit the image with its
// y axis pointing up.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/matrix"

	"github.com/chazu/vellum/pkg/scene"
)

// Default rendering parameters.
const (
	DefaultSize   = 512
	DefaultMargin = 8
	DotPixels     = 2.0 // radius of a rendered point
	StrokePixels  = 2.0 // width of a rendered circle outline
)

// Options control how a scene is rendered.
type Options struct {
	Size       int // width and height in pixels
	Margin     int
	Background color.Color
	Foreground color.Color
}

// Option configures Render.
type Option func(*Options)

// WithSize sets the square image size in pixels.
func WithSize(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Size = n
		}
	}
}

// WithMargin sets the blank border kept around the scene.
func WithMargin(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.Margin = n
		}
	}
}

// WithColors sets background and ink colours.
func WithColors(bg, fg color.Color) Option {
	return func(o *Options) {
		o.Background, o.Foreground = bg, fg
	}
}

// viewport returns the matrix mapping scene coordinates to pixels: the
// scene is scaled uniformly, centred and flipped so y points up.
func viewport(b scene.Rect, size, margin int) matrix.Matrix {
	span := math.Max(b.Width(), b.Height())
	avail := float64(size - 2*margin)
	scale := 1.0
	if span > 0 && avail > 0 {
		scale = avail / span
	}
	offX := (float64(size) - b.Width()*scale) / 2
	offY := (float64(size) - b.Height()*scale) / 2
	return matrix.Translate(-b.MinX, -b.MinY).
		Mul(matrix.Scale(scale, -scale)).
		Mul(matrix.Translate(offX, float64(size)-offY))
}

// project applies m to a point.
func project(m matrix.Matrix, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Render draws every leaf under root into a new image.
func Render(root scene.Element, opts ...Option) *image.RGBA {
	o := Options{
		Size:       DefaultSize,
		Margin:     DefaultMargin,
		Background: color.White,
		Foreground: color.Black,
	}
	for _, opt := range opts {
		opt(&o)
	}

	img := image.NewRGBA(image.Rect(0, 0, o.Size, o.Size))
	draw.Draw(img, img.Bounds(), image.NewUniform(o.Background), image.Point{}, draw.Src)

	if root == nil {
		return img
	}
	b, ok := scene.Bounds(root)
	if !ok {
		return img
	}

	r := &renderer{
		img:  img,
		ink:  image.NewUniform(o.Foreground),
		ras:  vector.NewRasterizer(o.Size, o.Size),
		view: viewport(b, o.Size, o.Margin),
	}
	r.element(root)
	scene.Logger().Debug("raster: rendered", "size", o.Size, "leaves", r.leaves)
	return img
}

type renderer struct {
	img    *image.RGBA
	ink    image.Image
	ras    *vector.Rasterizer
	view   matrix.Matrix
	leaves int
}

func (r *renderer) element(e scene.Element) {
	switch v := e.(type) {
	case *scene.Point:
		x, y := v.Position()
		cx, cy := project(r.view, x, y)
		r.disc(cx, cy, DotPixels)
	case *scene.Circle:
		x, y := v.Position()
		cx, cy := project(r.view, x, y)
		rad := v.Radius() * r.view[0]
		if rad <= 0 {
			r.disc(cx, cy, DotPixels)
			return
		}
		r.ring(cx, cy, rad+StrokePixels/2, rad-StrokePixels/2)
	case *scene.Group:
		for _, c := range v.Children() {
			r.element(c)
		}
	}
}

func (r *renderer) disc(cx, cy, radius float64) {
	r.ras.Reset(r.img.Bounds().Dx(), r.img.Bounds().Dy())
	polygon(r.ras, cx, cy, radius, false)
	r.fill()
}

// ring fills the annulus between outer and inner. The inner contour is
// wound the other way so the non-zero rule leaves it empty.
func (r *renderer) ring(cx, cy, outer, inner float64) {
	r.ras.Reset(r.img.Bounds().Dx(), r.img.Bounds().Dy())
	polygon(r.ras, cx, cy, outer, false)
	if inner > 0 {
		polygon(r.ras, cx, cy, inner, true)
	}
	r.fill()
}

func (r *renderer) fill() {
	r.ras.Draw(r.img, r.img.Bounds(), r.ink, image.Point{})
	r.leaves++
}

// polygon adds a closed regular polygon approximating a circle.
func polygon(ras *vector.Rasterizer, cx, cy, radius float64, reverse bool) {
	n := segments(radius)
	for i := 0; i <= n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		if reverse {
			a = -a
		}
		x := float32(cx + radius*math.Cos(a))
		y := float32(cy + radius*math.Sin(a))
		if i == 0 {
			ras.MoveTo(x, y)
			continue
		}
		ras.LineTo(x, y)
	}
	ras.ClosePath()
}

// segments picks a polygon resolution of roughly two pixels per edge.
func segments(radius float64) int {
	n := int(math.Ceil(math.Pi * radius))
	switch {
	case n < 16:
		return 16
	case n > 512:
		return 512
	}
	return n
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// SavePNG renders root and writes it to path.
func SavePNG(root scene.Element, path string, opts ...Option) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: %w", err)
	}
	if err := WritePNG(f, Render(root, opts...)); err != nil {
		f.Close()
		return fmt.Errorf("raster: encoding %s: %w", path, err)
	}
	return f.Close()
}
