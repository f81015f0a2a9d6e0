// Package kernel defines the abstract 2-D geometry kernel interface.
// Implementations (sdfx) turn scene leaves into solid shapes and write
// them out as vector drawings. The abstraction allows swapping backends
// without changing the rest of the system.
package kernel

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Shape is an opaque handle to a kernel 2-D shape.
// Implementations wrap their internal representation.
type Shape interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [2]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives
	Disc(radius float64) Shape
	Ring(radius, width float64) Shape // annulus with outer radius and stroke width

	// Boolean operations
	Union(shapes ...Shape) Shape

	// Transforms
	Translate(s Shape, x, y float64) Shape

	// Vector output
	ToSVG(s Shape, path string) error
	ToDXF(s Shape, path string) error
}

// Format is a vector output format.
type Format int

const (
	FormatSVG Format = iota
	FormatDXF
)

func (f Format) String() string {
	switch f {
	case FormatSVG:
		return "svg"
	case FormatDXF:
		return "dxf"
	default:
		return "unknown"
	}
}

// FormatFor picks the output format from a file name's extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return FormatSVG, nil
	case ".dxf":
		return FormatDXF, nil
	}
	return 0, fmt.Errorf("kernel: unsupported output extension %q", filepath.Ext(path))
}

// Write renders s to path in the format implied by its extension.
func Write(k Kernel, s Shape, path string) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	switch f {
	case FormatDXF:
		return k.ToDXF(s, path)
	default:
		return k.ToSVG(s, path)
	}
}
