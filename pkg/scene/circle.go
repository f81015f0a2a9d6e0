package scene

import "github.com/pkg/errors"

// Circle is a positioned leaf with a radius. It shares Point's movement
// contract but not its implementation, so a Circle always draws as a Circle.
type Circle struct {
	x, y   float64
	radius float64
	sink   Sink
}

// NewCircle returns a circle centred at (x, y). The radius must be finite
// and non-negative.
func NewCircle(x, y, radius float64, opts ...LeafOption) (*Circle, error) {
	if !finite(x, y) {
		return nil, errors.Wrapf(ErrInvalidArgument, "circle: non-finite position (%v, %v)", x, y)
	}
	if !finite(radius) || radius < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "circle: radius %v must be finite and >= 0", radius)
	}
	o := applyLeafOptions(opts)
	return &Circle{x: x, y: y, radius: radius, sink: o.sink}, nil
}

// MustCircle is like NewCircle but panics on invalid input.
func MustCircle(x, y, radius float64, opts ...LeafOption) *Circle {
	c, err := NewCircle(x, y, radius, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Position returns the centre coordinates.
func (c *Circle) Position() (x, y float64) {
	return c.x, c.y
}

// Radius returns the radius.
func (c *Circle) Radius() float64 {
	return c.radius
}

// Move translates the centre; the radius is unaffected.
func (c *Circle) Move(dx, dy float64) {
	nx, ny := c.x+dx, c.y+dy
	if !finite(nx, ny) {
		Logger().Warn("scene: move rejected", "kind", KindCircle, "dx", dx, "dy", dy)
		return
	}
	c.x, c.y = nx, ny
	emit(c.sink, traceLine(KindCircle, "move to", c.x, c.y))
}

// Draw traces the centre and radius.
func (c *Circle) Draw() {
	emit(c.sink, traceLine(KindCircle, "draw", c.x, c.y)+" radius: "+formatFloat(c.radius))
}
