package scene

import "math"

// Element is anything in a scene that can be translated and drawn.
type Element interface {
	Move(dx, dy float64)
	Draw()
}

// Kind enumerates the element variants.
type Kind int

const (
	KindPoint  Kind = iota // positioned primitive
	KindCircle             // positioned primitive with a radius
	KindGroup              // composite
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "Point"
	case KindCircle:
		return "Circle"
	case KindGroup:
		return "Group"
	default:
		return "unknown"
	}
}

// KindOf reports the variant of e. Unknown implementations report Kind(-1).
func KindOf(e Element) Kind {
	switch e.(type) {
	case *Point:
		return KindPoint
	case *Circle:
		return KindCircle
	case *Group:
		return KindGroup
	default:
		return Kind(-1)
	}
}

// isNil reports whether e is nil or a nil pointer of one of the element
// types.
func isNil(e Element) bool {
	switch v := e.(type) {
	case nil:
		return true
	case *Point:
		return v == nil
	case *Circle:
		return v == nil
	case *Group:
		return v == nil
	}
	return false
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// LeafOption configures a Point or Circle at construction.
type LeafOption func(*leafOptions)

type leafOptions struct {
	sink Sink
}

// Traced routes the leaf's trace lines to s instead of the package default.
func Traced(s Sink) LeafOption {
	return func(o *leafOptions) { o.sink = s }
}

func applyLeafOptions(opts []LeafOption) leafOptions {
	var o leafOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
