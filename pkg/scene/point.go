package scene

import "github.com/pkg/errors"

// Point is a positioned leaf with no extent.
type Point struct {
	x, y float64
	sink Sink
}

// NewPoint returns a point at (x, y). Non-finite coordinates are rejected.
func NewPoint(x, y float64, opts ...LeafOption) (*Point, error) {
	if !finite(x, y) {
		return nil, errors.Wrapf(ErrInvalidArgument, "point: non-finite position (%v, %v)", x, y)
	}
	o := applyLeafOptions(opts)
	return &Point{x: x, y: y, sink: o.sink}, nil
}

// MustPoint is like NewPoint but panics on invalid input.
func MustPoint(x, y float64, opts ...LeafOption) *Point {
	p, err := NewPoint(x, y, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Position returns the current coordinates.
func (p *Point) Position() (x, y float64) {
	return p.x, p.y
}

// Move translates the point and traces the new position. A delta that
// would leave the position non-finite is dropped.
func (p *Point) Move(dx, dy float64) {
	nx, ny := p.x+dx, p.y+dy
	if !finite(nx, ny) {
		Logger().Warn("scene: move rejected", "kind", KindPoint, "dx", dx, "dy", dy)
		return
	}
	p.x, p.y = nx, ny
	emit(p.sink, traceLine(KindPoint, "move to", p.x, p.y))
}

// Draw traces the current position.
func (p *Point) Draw() {
	emit(p.sink, traceLine(KindPoint, "draw", p.x, p.y))
}
