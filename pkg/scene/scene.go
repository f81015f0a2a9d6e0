package scene

import (
	"sync"

	"github.com/pkg/errors"
)

// Spec describes a leaf element used to seed a scene.
type Spec struct {
	Kind   Kind
	X, Y   float64
	Radius float64 // ignored for KindPoint
}

// Build constructs the leaf described by sp.
func (sp Spec) Build(opts ...LeafOption) (Element, error) {
	switch sp.Kind {
	case KindPoint:
		return NewPoint(sp.X, sp.Y, opts...)
	case KindCircle:
		return NewCircle(sp.X, sp.Y, sp.Radius, opts...)
	default:
		return nil, errors.Wrapf(ErrInvalidArgument, "seed: cannot build %s", sp.Kind)
	}
}

// DefaultSeed is the content Load places in a fresh root.
var DefaultSeed = []Spec{
	{Kind: KindPoint, X: 1, Y: 2},
	{Kind: KindCircle, X: 5, Y: 3, Radius: 10},
}

// Option configures a Scene.
type Option func(*Scene)

// WithTrace sets the sink used for the seed elements Load creates.
func WithTrace(s Sink) Option {
	return func(sc *Scene) { sc.sink = s }
}

// WithSeed replaces DefaultSeed for this scene.
func WithSeed(specs ...Spec) Option {
	return func(sc *Scene) {
		sc.seed = append([]Spec(nil), specs...)
	}
}

// Scene owns the root group and the editing operations on it. All methods
// are serialised on one mutex; the root group itself is not safe for
// concurrent use when reached through Root.
type Scene struct {
	mu   sync.Mutex
	root *Group
	seed []Spec
	sink Sink
}

// New returns a scene with an empty root group.
func New(opts ...Option) *Scene {
	s := &Scene{
		root: &Group{},
		seed: DefaultSeed,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the root with a new group populated from the seed.
// On error the previous root is kept.
func (s *Scene) Load() error {
	root := &Group{}
	for i, sp := range s.seed {
		var opts []LeafOption
		if s.sink != nil {
			opts = append(opts, Traced(s.sink))
		}
		e, err := sp.Build(opts...)
		if err != nil {
			return errors.Wrapf(err, "load: seed %d", i)
		}
		root.Add(e)
	}

	s.mu.Lock()
	s.root = root
	s.mu.Unlock()
	Logger().Debug("scene: loaded", "elements", root.Len())
	return nil
}

// Root returns the root group. It is never nil.
func (s *Scene) Root() *Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root
}

// Add appends e to the root.
func (s *Scene) Add(e Element) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.root.Add(e)
}

// Remove detaches e from the root, reporting whether it was a root child.
func (s *Scene) Remove(e Element) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root.Remove(e)
}

// Draw draws the whole tree.
func (s *Scene) Draw() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.root.Draw()
}

// Move moves the whole tree.
func (s *Scene) Move(dx, dy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.root.Move(dx, dy)
}

// GroupSelected folds selection into a new group attached to the root and
// draws the resulting tree. Each element is added to the new group, in
// order, and then removed from the root. An element that was not a root
// child is grouped anyway and stays wherever else it lives.
//
// A nil element, the root itself or a group containing the root makes
// GroupSelected panic like Group.Add, before the tree is touched.
func (s *Scene) GroupSelected(selection ...Element) *Group {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range selection {
		if err := s.root.checkAdd(e); err != nil {
			panic(errors.Wrap(err, "group selected"))
		}
	}

	group := &Group{}
	for _, e := range selection {
		group.Add(e)
		s.root.Remove(e)
	}
	s.root.Add(group)
	s.root.Draw()
	return group
}

// GroupSelectedStrict is GroupSelected with ownership checks. Every element
// must be a distinct, direct child of the root; otherwise the scene is left
// untouched and the error wraps ErrNotFound or ErrInvalidArgument.
func (s *Scene) GroupSelectedStrict(selection ...Element) (*Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[Element]bool, len(selection))
	for i, e := range selection {
		if isNil(e) {
			return nil, errors.Wrapf(ErrInvalidArgument, "group selected: element %d is nil", i)
		}
		if seen[e] {
			return nil, errors.Wrapf(ErrInvalidArgument, "group selected: element %d selected twice", i)
		}
		seen[e] = true
		if !s.root.Contains(e) {
			Logger().Info("scene: strict grouping rejected", "index", i, "kind", KindOf(e))
			return nil, errors.Wrapf(ErrNotFound, "group selected: element %d (%s) is not a root child", i, KindOf(e))
		}
	}

	group := &Group{}
	for _, e := range selection {
		group.Add(e)
		s.root.Remove(e)
	}
	s.root.Add(group)
	s.root.Draw()
	return group, nil
}
