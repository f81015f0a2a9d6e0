package scene

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func TestBounds(t *testing.T) {
	tests := []struct {
		name   string
		e      Element
		want   Rect
		wantOK bool
	}{
		{"point", MustPoint(1, 2), Rect{1, 2, 1, 2}, true},
		{"circle", MustCircle(5, 3, 10), Rect{-5, -7, 15, 13}, true},
		{"empty group", NewGroup(), Rect{}, false},
		{
			"nested",
			NewGroup(MustPoint(-4, 0), NewGroup(NewGroup(), MustCircle(3, 6, 2))),
			Rect{-4, 0, 5, 8},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Bounds(tt.e)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Bounds = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSnapshotShape(t *testing.T) {
	root := NewGroup(MustPoint(1, 2), NewGroup(MustCircle(3, 6, 2)))
	got := Snapshot(root)

	r := 2.0
	want := Node{
		Kind: "Group",
		Children: []Node{
			{Path: "0", Kind: "Point", X: 1, Y: 2},
			{Path: "1", Kind: "Group", Children: []Node{
				{Path: "1/0", Kind: "Circle", X: 3, Y: 6, Radius: &r},
			}},
		},
	}
	ignoreIDs := cmp.FilterPath(func(p cmp.Path) bool {
		return p.Last().String() == ".ID"
	}, cmp.Ignore())
	if diff := cmp.Diff(want, got, ignoreIDs); diff != "" {
		t.Errorf("snapshot (-want +got):\n%s", diff)
	}
}

func TestSnapshotIDsDeterministic(t *testing.T) {
	a := Snapshot(NewGroup(MustPoint(0, 0)))
	b := Snapshot(NewGroup(MustCircle(7, 7, 7)))
	if a.Children[0].ID != b.Children[0].ID {
		t.Error("same path should yield the same ID")
	}
	if a.ID == a.Children[0].ID {
		t.Error("root and child should have different IDs")
	}
	id, err := uuid.Parse(a.ID)
	if err != nil {
		t.Fatalf("ID is not a UUID: %v", err)
	}
	if id.Version() != 5 {
		t.Errorf("ID version = %d, want 5", id.Version())
	}
}

func TestSnapshotJSON(t *testing.T) {
	data, err := json.Marshal(Snapshot(NewGroup(MustPoint(1, 2))))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Node
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back.Children) != 1 || back.Children[0].Kind != "Point" || back.Children[0].Radius != nil {
		t.Errorf("unexpected round trip: %s", data)
	}
}

func TestSnapshotJSONKeepsZeroCoordinates(t *testing.T) {
	root := Snapshot(NewGroup(MustPoint(0, 0), MustPoint(3, 0)))
	for i, want := range []string{`"x":0,"y":0`, `"x":3,"y":0`} {
		data, err := json.Marshal(root.Children[i])
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if !strings.Contains(string(data), want) {
			t.Errorf("child %d json = %s, want it to contain %s", i, data, want)
		}
	}
}
