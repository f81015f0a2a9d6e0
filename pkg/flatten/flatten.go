// Package flatten walks a scene tree and produces one kernel shape per
// leaf using a geometry kernel. The walk is read-only and never mutates
// the scene.
package flatten

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/chazu/vellum/pkg/kernel"
	"github.com/chazu/vellum/pkg/scene"
)

const (
	// DotRadius is the radius of the dot drawn for a Point, which has no
	// extent of its own. Zero-radius circles are drawn the same way.
	DotRadius = 0.5

	// StrokeWidth is the outline width used for circles.
	StrokeWidth = 0.25
)

// ErrEmpty is returned when a tree holds no leaves to draw.
var ErrEmpty = errors.New("flatten: scene has no leaves")

// Piece is the kernel shape produced for one leaf.
type Piece struct {
	Path  string // slash-separated child-index path from the walked root
	Kind  scene.Kind
	Shape kernel.Shape
}

// Flatten walks root depth-first, left to right, and returns one piece per
// leaf in draw order.
func Flatten(root *scene.Group, k kernel.Kernel) ([]Piece, error) {
	if root == nil {
		return nil, nil
	}
	var pieces []Piece
	for i, child := range root.Children() {
		collected, err := walk(k, child, strconv.Itoa(i))
		if err != nil {
			return nil, fmt.Errorf("flatten: %w", err)
		}
		pieces = append(pieces, collected...)
	}
	return pieces, nil
}

// walk recursively traverses an element, collecting pieces.
func walk(k kernel.Kernel, e scene.Element, path string) ([]Piece, error) {
	switch v := e.(type) {
	case *scene.Point:
		x, y := v.Position()
		return []Piece{{Path: path, Kind: scene.KindPoint, Shape: k.Translate(k.Disc(DotRadius), x, y)}}, nil

	case *scene.Circle:
		x, y := v.Position()
		var s kernel.Shape
		if r := v.Radius(); r > 0 {
			s = k.Ring(r, StrokeWidth)
		} else {
			s = k.Disc(DotRadius)
		}
		return []Piece{{Path: path, Kind: scene.KindCircle, Shape: k.Translate(s, x, y)}}, nil

	case *scene.Group:
		var pieces []Piece
		for i, child := range v.Children() {
			collected, err := walk(k, child, path+"/"+strconv.Itoa(i))
			if err != nil {
				return nil, err
			}
			pieces = append(pieces, collected...)
		}
		return pieces, nil

	default:
		return nil, fmt.Errorf("element at %s has unsupported type %T", path, e)
	}
}

// Combine unions every piece into a single shape.
func Combine(pieces []Piece, k kernel.Kernel) (kernel.Shape, error) {
	if len(pieces) == 0 {
		return nil, ErrEmpty
	}
	shapes := make([]kernel.Shape, len(pieces))
	for i, p := range pieces {
		shapes[i] = p.Shape
	}
	return k.Union(shapes...), nil
}

// Export flattens root and writes it to path; the extension selects the
// format (see kernel.FormatFor).
func Export(root *scene.Group, k kernel.Kernel, path string) error {
	if _, err := kernel.FormatFor(path); err != nil {
		return err
	}
	pieces, err := Flatten(root, k)
	if err != nil {
		return err
	}
	shape, err := Combine(pieces, k)
	if err != nil {
		return err
	}
	scene.Logger().Debug("flatten: exporting", "path", path, "pieces", len(pieces))
	return kernel.Write(k, shape, path)
}
