package scene

import "github.com/google/uuid"

// snapshotNamespace scopes the name-based UUIDs given to snapshot nodes.
var snapshotNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("vellum:scene"))

// Node is a JSON-serialisable view of one element of a tree.
type Node struct {
	ID       string   `json:"id"`
	Path     string   `json:"path"`
	Kind     string   `json:"kind"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Radius   *float64 `json:"radius,omitempty"`
	Children []Node   `json:"children,omitempty"`
}

// Snapshot captures the tree under root. Node IDs are version 5 UUIDs of
// the child-index path, so the same shape always yields the same IDs.
func Snapshot(root *Group) Node {
	return snapshot(root, "")
}

func snapshot(e Element, path string) Node {
	n := Node{
		ID:   uuid.NewSHA1(snapshotNamespace, []byte("/"+path)).String(),
		Path: path,
		Kind: KindOf(e).String(),
	}
	switch v := e.(type) {
	case *Point:
		n.X, n.Y = v.x, v.y
	case *Circle:
		r := v.radius
		n.X, n.Y, n.Radius = v.x, v.y, &r
	case *Group:
		for i, c := range v.children {
			n.Children = append(n.Children, snapshot(c, joinPath(path, i)))
		}
	}
	return n
}
