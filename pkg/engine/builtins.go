package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/vellum/pkg/scene"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Custom Sexp type for passing scene elements through zygomys
// ---------------------------------------------------------------------------

// sexpElement wraps a scene.Element so it can be bound to variables and
// passed between builtins.
type sexpElement struct {
	elem scene.Element
}

func (s *sexpElement) SexpString(ps *zygo.PrintState) string {
	switch e := s.elem.(type) {
	case *scene.Point:
		x, y := e.Position()
		return fmt.Sprintf("(point %g %g)", x, y)
	case *scene.Circle:
		x, y := e.Position()
		return fmt.Sprintf("(circle %g %g %g)", x, y, e.Radius())
	case *scene.Group:
		return fmt.Sprintf("(group #%d)", e.Len())
	}
	return "(element)"
}
func (s *sexpElement) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toElement extracts a scene.Element from a sexpElement.
func toElement(s zygo.Sexp) (scene.Element, error) {
	if e, ok := s.(*sexpElement); ok {
		return e.elem, nil
	}
	return nil, fmt.Errorf("expected element, got %T (%s)", s, s.SexpString(nil))
}

// toGroup extracts a *scene.Group from a sexpElement.
func toGroup(s zygo.Sexp) (*scene.Group, error) {
	e, err := toElement(s)
	if err != nil {
		return nil, err
	}
	g, ok := e.(*scene.Group)
	if !ok {
		return nil, fmt.Errorf("expected group, got %s", scene.KindOf(e))
	}
	return g, nil
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// toElements flattens args into elements. Each arg is an element or a
// list/array of elements, so both (f a b) and (f (list a b)) work.
func toElements(args []zygo.Sexp) ([]scene.Element, error) {
	var out []scene.Element
	for i, a := range args {
		if e, ok := a.(*sexpElement); ok {
			out = append(out, e.elem)
			continue
		}
		items, err := sexpListToSlice(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		for j, item := range items {
			e, err := toElement(item)
			if err != nil {
				return nil, fmt.Errorf("argument %d item %d: %w", i, j, err)
			}
			out = append(out, e)
		}
	}
	return out, nil
}

// guard turns a panic raised by a structural edit (cycle, nil child) into
// an error.
func guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()
	fn()
	return nil
}

func wrap(e scene.Element) zygo.Sexp {
	return &sexpElement{elem: e}
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the Vellum builtins into a zygomys environment.
// Builtins edit sc; leaves they create trace to rec.
//
// Source code must be preprocessed with preprocessSource() before evaluation
// so that :keyword tokens and kebab-case names are recognised.
func registerBuiltins(env *zygo.Zlisp, sc *scene.Scene, rec scene.Sink) {
	traced := scene.Traced(rec)

	// (point x y)
	env.AddFunction("point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("point requires exactly 2 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point: y: %w", err)
		}
		p, err := scene.NewPoint(x, y, traced)
		if err != nil {
			return zygo.SexpNull, err
		}
		return wrap(p), nil
	})

	// (circle x y r) or (circle x y :radius r)
	env.AddFunction("circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 2 {
			return zygo.SexpNull, fmt.Errorf("circle requires x and y")
		}
		x, err := toFloat64(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: x: %w", err)
		}
		y, err := toFloat64(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: y: %w", err)
		}

		var rs zygo.Sexp
		switch {
		case len(pa.positional) == 3:
			rs = pa.positional[2]
		case pa.kw["radius"] != nil:
			rs = pa.kw["radius"]
		default:
			return zygo.SexpNull, fmt.Errorf("circle requires a radius")
		}
		r, err := toFloat64(rs)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: radius: %w", err)
		}

		c, err := scene.NewCircle(x, y, r, traced)
		if err != nil {
			return zygo.SexpNull, err
		}
		return wrap(c), nil
	})

	// (group child ...) builds a detached group.
	env.AddFunction("group", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		children, err := toElements(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("group: %w", err)
		}
		var g *scene.Group
		if err := guard(func() { g = scene.NewGroup(children...) }); err != nil {
			return zygo.SexpNull, fmt.Errorf("group: %w", err)
		}
		return wrap(g), nil
	})

	// (root)
	env.AddFunction("root", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return wrap(sc.Root()), nil
	})

	// (load) replaces the root with the seed content.
	env.AddFunction("load", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := sc.Load(); err != nil {
			return zygo.SexpNull, err
		}
		return wrap(sc.Root()), nil
	})

	// (add elem) appends to the root; (add group elem) appends to group.
	env.AddFunction("add", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		switch len(args) {
		case 1:
			e, err := toElement(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("add: %w", err)
			}
			if err := guard(func() { sc.Add(e) }); err != nil {
				return zygo.SexpNull, fmt.Errorf("add: %w", err)
			}
			return args[0], nil
		case 2:
			g, err := toGroup(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("add: target: %w", err)
			}
			e, err := toElement(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("add: %w", err)
			}
			if err := guard(func() { g.Add(e) }); err != nil {
				return zygo.SexpNull, fmt.Errorf("add: %w", err)
			}
			return args[1], nil
		}
		return zygo.SexpNull, fmt.Errorf("add requires 1 or 2 arguments, got %d", len(args))
	})

	// (remove elem) detaches from the root; (remove group elem) from group.
	env.AddFunction("remove", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		switch len(args) {
		case 1:
			e, err := toElement(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("remove: %w", err)
			}
			sc.Remove(e)
			return args[0], nil
		case 2:
			g, err := toGroup(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("remove: target: %w", err)
			}
			e, err := toElement(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("remove: %w", err)
			}
			g.Remove(e)
			return args[1], nil
		}
		return zygo.SexpNull, fmt.Errorf("remove requires 1 or 2 arguments, got %d", len(args))
	})

	// (move dx dy) moves the whole scene; (move elem dx dy) one element.
	env.AddFunction("move", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		var target scene.Element
		nums := args
		switch len(args) {
		case 2:
		case 3:
			e, err := toElement(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("move: %w", err)
			}
			target, nums = e, args[1:]
		default:
			return zygo.SexpNull, fmt.Errorf("move requires 2 or 3 arguments, got %d", len(args))
		}
		dx, err := toFloat64(nums[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("move: dx: %w", err)
		}
		dy, err := toFloat64(nums[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("move: dy: %w", err)
		}
		if target == nil {
			sc.Move(dx, dy)
			return zygo.SexpNull, nil
		}
		target.Move(dx, dy)
		return args[0], nil
	})

	// (draw) draws the whole scene; (draw elem) one element.
	env.AddFunction("draw", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			sc.Draw()
			return zygo.SexpNull, nil
		}
		e, err := toElement(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("draw: %w", err)
		}
		e.Draw()
		return args[0], nil
	})

	// (group-selected a b ...) or (group-selected (list a b))
	env.AddFunction("group_selected", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		sel, err := toElements(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("group-selected: %w", err)
		}
		var g *scene.Group
		if err := guard(func() { g = sc.GroupSelected(sel...) }); err != nil {
			return zygo.SexpNull, fmt.Errorf("group-selected: %w", err)
		}
		return wrap(g), nil
	})

	// (group-selected-strict a b ...) fails unless every element is a root child.
	env.AddFunction("group_selected_strict", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		sel, err := toElements(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("group-selected-strict: %w", err)
		}
		g, err := sc.GroupSelectedStrict(sel...)
		if err != nil {
			return zygo.SexpNull, err
		}
		return wrap(g), nil
	})

	// (count group)
	env.AddFunction("count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("count requires exactly 1 argument, got %d", len(args))
		}
		g, err := toGroup(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("count: %w", err)
		}
		return &zygo.SexpInt{Val: int64(g.Len())}, nil
	})

	// (children group) returns a list of the group's direct children.
	env.AddFunction("children", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("children requires exactly 1 argument, got %d", len(args))
		}
		g, err := toGroup(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("children: %w", err)
		}
		kids := g.Children()
		items := make([]zygo.Sexp, len(kids))
		for i, k := range kids {
			items[i] = wrap(k)
		}
		return zygo.MakeList(items), nil
	})
}
