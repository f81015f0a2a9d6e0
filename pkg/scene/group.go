package scene

import "github.com/pkg/errors"

// Group is a composite element. Move and Draw fan out to every child in
// insertion order, recursing through nested groups.
//
// A group never contains itself, directly or transitively; Add enforces
// this. A Group does not track parents, so keeping an element in only one
// group at a time is up to the caller (see Scene.GroupSelectedStrict and
// Validate).
type Group struct {
	children []Element
}

// NewGroup returns a group holding children in the given order.
func NewGroup(children ...Element) *Group {
	g := &Group{}
	for _, c := range children {
		g.Add(c)
	}
	return g
}

// Add appends e. It panics with an error wrapping ErrInvalidArgument for a
// nil element (including a nil *Point, *Circle or *Group) and ErrCycle if e
// is g or a group that already reaches g.
func (g *Group) Add(e Element) {
	if err := g.checkAdd(e); err != nil {
		panic(err)
	}
	g.children = append(g.children, e)
}

// checkAdd returns the error Add would panic with, or nil.
func (g *Group) checkAdd(e Element) error {
	if isNil(e) {
		return errors.Wrap(ErrInvalidArgument, "group: nil element")
	}
	if sub, ok := e.(*Group); ok && (sub == g || sub.reaches(g)) {
		return errors.Wrap(ErrCycle, "group: adding element would make group contain itself")
	}
	return nil
}

// Remove detaches the first child identical to e and reports whether one
// was found. Removing an absent element is a no-op.
func (g *Group) Remove(e Element) bool {
	i := g.IndexOf(e)
	if i < 0 {
		return false
	}
	copy(g.children[i:], g.children[i+1:])
	g.children[len(g.children)-1] = nil
	g.children = g.children[:len(g.children)-1]
	return true
}

// Draw draws every child in order.
func (g *Group) Draw() {
	for _, c := range g.children {
		c.Draw()
	}
}

// Move moves every child by the same delta.
func (g *Group) Move(dx, dy float64) {
	for _, c := range g.children {
		c.Move(dx, dy)
	}
}

// Children returns a copy of the direct children.
func (g *Group) Children() []Element {
	out := make([]Element, len(g.children))
	copy(out, g.children)
	return out
}

// Len returns the number of direct children.
func (g *Group) Len() int {
	return len(g.children)
}

// IndexOf returns the index of the first direct child identical to e, or -1.
func (g *Group) IndexOf(e Element) int {
	for i, c := range g.children {
		if c == e {
			return i
		}
	}
	return -1
}

// Contains reports whether e is a direct child of g.
func (g *Group) Contains(e Element) bool {
	return g.IndexOf(e) >= 0
}

// WalkFunc is called for each element visited by Walk. Returning false
// skips the element's children.
type WalkFunc func(e Element, depth int) bool

// Walk visits g's descendants depth-first, left to right, in pre-order.
// g itself is not visited.
func (g *Group) Walk(fn WalkFunc) {
	g.walk(fn, 0)
}

func (g *Group) walk(fn WalkFunc, depth int) {
	for _, c := range g.children {
		if !fn(c, depth) {
			continue
		}
		if sub, ok := c.(*Group); ok {
			sub.walk(fn, depth+1)
		}
	}
}

// reaches reports whether target is a descendant of g.
func (g *Group) reaches(target *Group) bool {
	for _, c := range g.children {
		sub, ok := c.(*Group)
		if !ok {
			continue
		}
		if sub == target || sub.reaches(target) {
			return true
		}
	}
	return false
}
