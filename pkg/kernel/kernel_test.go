package kernel

import "testing"

// stubShape is a minimal Shape implementation for testing.
type stubShape struct {
	minBB, maxBB [2]float64
}

func (s *stubShape) BoundingBox() (min, max [2]float64) {
	return s.minBB, s.maxBB
}

// stubKernel records which writer was called.
type stubKernel struct {
	wrote []string
}

var _ Kernel = (*stubKernel)(nil)

func (k *stubKernel) Disc(r float64) Shape {
	return &stubShape{[2]float64{-r, -r}, [2]float64{r, r}}
}
func (k *stubKernel) Ring(r, w float64) Shape                { return k.Disc(r) }
func (k *stubKernel) Union(shapes ...Shape) Shape            { return shapes[0] }
func (k *stubKernel) Translate(s Shape, x, y float64) Shape { return s }
func (k *stubKernel) ToSVG(s Shape, path string) error {
	k.wrote = append(k.wrote, "svg:"+path)
	return nil
}
func (k *stubKernel) ToDXF(s Shape, path string) error {
	k.wrote = append(k.wrote, "dxf:"+path)
	return nil
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"out.svg", FormatSVG, false},
		{"dir/OUT.SVG", FormatSVG, false},
		{"plan.dxf", FormatDXF, false},
		{"image.png", 0, true},
		{"noext", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFor(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFor(%q) err = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("FormatFor(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestWriteDispatch(t *testing.T) {
	k := &stubKernel{}
	s := k.Disc(1)
	if err := Write(k, s, "a.svg"); err != nil {
		t.Fatal(err)
	}
	if err := Write(k, s, "b.dxf"); err != nil {
		t.Fatal(err)
	}
	if err := Write(k, s, "c.txt"); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if len(k.wrote) != 2 || k.wrote[0] != "svg:a.svg" || k.wrote[1] != "dxf:b.dxf" {
		t.Errorf("wrote = %v", k.wrote)
	}
}

func TestFormatString(t *testing.T) {
	if FormatSVG.String() != "svg" || FormatDXF.String() != "dxf" || Format(9).String() != "unknown" {
		t.Error("unexpected format names")
	}
}
