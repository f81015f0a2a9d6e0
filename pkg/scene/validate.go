package scene

import (
	"fmt"
	"strconv"
)

// ValidationSeverity indicates whether a finding breaks a tree invariant or
// is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // invariant violated
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationRule names the invariant a finding is about.
type ValidationRule string

const (
	RuleNilRoot         ValidationRule = "nil-root"
	RuleCycle           ValidationRule = "cycle"
	RuleSharedOwnership ValidationRule = "shared-ownership"
	RuleEmptyGroup      ValidationRule = "empty-group"
)

// ValidationError describes a single validation finding. Path is the
// slash-separated child-index path from the validated root ("" for the
// root itself).
type ValidationError struct {
	Path     string
	Kind     Kind
	Rule     ValidationRule
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] %s at %s: %s", e.Severity, e.Kind, e.Path, e.Message)
}

// Validate checks the tree under root and returns its findings. An empty
// slice means the tree is well formed. Validate never mutates the tree.
//
// Errors are reported for a group that reaches itself and for an element
// reachable through more than one membership (shared ownership, which the
// permissive GroupSelected can produce). Empty groups are warnings.
func Validate(root *Group) []ValidationError {
	if root == nil {
		return []ValidationError{{Rule: RuleNilRoot, Message: "root group is nil", Severity: SeverityError}}
	}

	const (
		white = iota
		gray
		black
	)
	color := map[Element]int{root: gray}
	var errs []ValidationError

	var visit func(g *Group, path string)
	visit = func(g *Group, path string) {
		if g.Len() == 0 && path != "" {
			errs = append(errs, ValidationError{
				Path: path, Kind: KindGroup, Rule: RuleEmptyGroup,
				Message:  "group is empty",
				Severity: SeverityWarning,
			})
		}
		for i, c := range g.children {
			childPath := joinPath(path, i)
			switch color[c] {
			case gray:
				errs = append(errs, ValidationError{
					Path: childPath, Kind: KindOf(c), Rule: RuleCycle,
					Message:  "group contains itself",
					Severity: SeverityError,
				})
				continue
			case black:
				errs = append(errs, ValidationError{
					Path: childPath, Kind: KindOf(c), Rule: RuleSharedOwnership,
					Message:  "element is owned by more than one group",
					Severity: SeverityError,
				})
				continue
			}

			sub, ok := c.(*Group)
			if !ok {
				color[c] = black
				continue
			}
			color[sub] = gray
			visit(sub, childPath)
			color[sub] = black
		}
	}
	visit(root, "")
	return errs
}

func joinPath(parent string, index int) string {
	if parent == "" {
		return strconv.Itoa(index)
	}
	return parent + "/" + strconv.Itoa(index)
}
