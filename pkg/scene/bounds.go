package scene

import "math"

// Rect is an axis-aligned rectangle.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns MaxX - MinX.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns MaxY - MinY.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, o.MinX),
		MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX),
		MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

// Bounds returns the extent of every leaf under e. Points contribute their
// position, circles their disc. The second result is false when e holds no
// leaves.
func Bounds(e Element) (Rect, bool) {
	switch v := e.(type) {
	case *Point:
		return Rect{v.x, v.y, v.x, v.y}, true
	case *Circle:
		return Rect{v.x - v.radius, v.y - v.radius, v.x + v.radius, v.y + v.radius}, true
	case *Group:
		var out Rect
		found := false
		for _, c := range v.children {
			r, ok := Bounds(c)
			if !ok {
				continue
			}
			if !found {
				out, found = r, true
				continue
			}
			out = out.Union(r)
		}
		return out, found
	default:
		return Rect{}, false
	}
}
