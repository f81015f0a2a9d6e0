// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"
	"sync"

	"github.com/chazu/vellum/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// defaultMeshCells controls marching squares resolution along the longest
// side of the shape's bounding box.
const defaultMeshCells = 400

// sdfxShape wraps an sdf.SDF2 to implement kernel.Shape.
type sdfxShape struct {
	s sdf.SDF2
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxShape) BoundingBox() (min, max [2]float64) {
	bb := s.s.BoundingBox()
	min = [2]float64{bb.Min.X, bb.Min.Y}
	max = [2]float64{bb.Max.X, bb.Max.Y}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	cells int
}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{cells: defaultMeshCells}
}

// unwrap extracts the underlying sdf.SDF2 from a kernel.Shape.
func unwrap(s kernel.Shape) sdf.SDF2 {
	return s.(*sdfxShape).s
}

// wrap creates a kernel.Shape from an sdf.SDF2.
func wrap(s sdf.SDF2) kernel.Shape {
	return &sdfxShape{s: s}
}

// Disc creates a filled disc centred on the origin. The radius must be
// positive.
func (k *SdfxKernel) Disc(radius float64) kernel.Shape {
	if radius <= 0 {
		panic(fmt.Sprintf("sdfx.Disc: radius %v must be > 0", radius))
	}
	s, err := sdf.Circle2D(radius)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Circle2D: %v", err))
	}
	return wrap(s)
}

// Ring creates an annulus with the given outer radius and stroke width,
// centred on the origin. A width at least as large as the radius yields a
// filled disc.
func (k *SdfxKernel) Ring(radius, width float64) kernel.Shape {
	outer := k.Disc(radius)
	if width >= radius {
		return outer
	}
	inner := k.Disc(radius - width)
	return wrap(sdf.Difference2D(unwrap(outer), unwrap(inner)))
}

// Union returns the union of the given shapes.
func (k *SdfxKernel) Union(shapes ...kernel.Shape) kernel.Shape {
	if len(shapes) == 1 {
		return shapes[0]
	}
	parts := make([]sdf.SDF2, len(shapes))
	for i, s := range shapes {
		parts[i] = unwrap(s)
	}
	return wrap(sdf.Union2D(parts...))
}

// Translate moves a shape by (x, y).
func (k *SdfxKernel) Translate(s kernel.Shape, x, y float64) kernel.Shape {
	m := sdf.Translate2d(v2.Vec{X: x, Y: y})
	return wrap(sdf.Transform2D(unwrap(s), m))
}

// svgLineStyle is the stroke used for exported outlines.
const svgLineStyle = "fill:none;stroke:black;stroke-width:0.1"

// lineCollector is an sdf.Line2Writer that keeps every segment in memory.
type lineCollector struct {
	mu    sync.Mutex
	lines []*sdf.Line2
}

func (c *lineCollector) Write(in []*sdf.Line2) error {
	c.mu.Lock()
	c.lines = append(c.lines, in...)
	c.mu.Unlock()
	return nil
}

func (c *lineCollector) Close() error { return nil }

// outline runs marching squares over s and returns the contour segments.
func (k *SdfxKernel) outline(s kernel.Shape) []*sdf.Line2 {
	c := &lineCollector{}
	render.NewMarchingSquaresQuadtree(k.cells).Render(unwrap(s), c)
	return c.lines
}

// ToSVG writes the outline of s to path as an SVG drawing.
func (k *SdfxKernel) ToSVG(s kernel.Shape, path string) error {
	if err := render.SaveSVG(path, svgLineStyle, k.outline(s)); err != nil {
		return fmt.Errorf("sdfx: svg %s: %w", path, err)
	}
	return nil
}

// ToDXF writes the outline of s to path as a DXF drawing.
func (k *SdfxKernel) ToDXF(s kernel.Shape, path string) error {
	if err := render.SaveDXF(path, k.outline(s)); err != nil {
		return fmt.Errorf("sdfx: dxf %s: %w", path, err)
	}
	return nil
}
