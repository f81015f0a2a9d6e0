package raster

import (
	"bytes"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/vellum/pkg/scene"
)

func inked(t *testing.T, r uint8) bool {
	t.Helper()
	return r < 128
}

func TestRenderEmpty(t *testing.T) {
	img := Render(scene.NewGroup(), WithSize(32))
	if got := img.Bounds().Dx(); got != 32 {
		t.Fatalf("width = %d, want 32", got)
	}
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if c := img.RGBAAt(x, y); c.R != 255 || c.G != 255 || c.B != 255 {
				t.Fatalf("pixel (%d,%d) = %v, want white", x, y, c)
			}
		}
	}
}

func TestRenderNil(t *testing.T) {
	img := Render(nil, WithSize(8))
	if c := img.RGBAAt(4, 4); c.R != 255 {
		t.Errorf("nil root should render blank, got %v", c)
	}
}

func TestRenderPointCentred(t *testing.T) {
	img := Render(scene.MustPoint(7, -3), WithSize(100))
	if c := img.RGBAAt(50, 50); !inked(t, c.R) {
		t.Errorf("centre pixel = %v, want ink", c)
	}
	if c := img.RGBAAt(0, 0); c.R != 255 {
		t.Errorf("corner pixel = %v, want background", c)
	}
}

func TestRenderCircleRing(t *testing.T) {
	// Bounds -10..10, 84px available: scale 4.2, radius 42px about (50,50).
	img := Render(scene.MustCircle(0, 0, 10), WithSize(100), WithMargin(8))

	if c := img.RGBAAt(50, 50); c.R != 255 {
		t.Errorf("ring centre = %v, want background", c)
	}
	for _, p := range [][2]int{{92, 50}, {7, 50}, {50, 7}, {50, 92}} {
		if c := img.RGBAAt(p[0], p[1]); !inked(t, c.R) {
			t.Errorf("ring pixel %v = %v, want ink", p, c)
		}
	}
}

func TestRenderYAxisUp(t *testing.T) {
	// Two points on a vertical line: the higher y must land nearer the top.
	root := scene.NewGroup(scene.MustPoint(0, 0), scene.MustPoint(0, 10))
	img := Render(root, WithSize(100), WithMargin(10))

	if c := img.RGBAAt(50, 10); !inked(t, c.R) {
		t.Errorf("top pixel = %v, want ink for (0,10)", c)
	}
	if c := img.RGBAAt(50, 89); !inked(t, c.R) {
		t.Errorf("bottom pixel = %v, want ink for (0,0)", c)
	}
}

func TestViewport(t *testing.T) {
	m := viewport(scene.Rect{MinX: -10, MinY: -10, MaxX: 10, MaxY: 10}, 100, 8)
	tests := []struct {
		x, y   float64
		px, py float64
	}{
		{0, 0, 50, 50},
		{-10, -10, 8, 92},
		{10, 10, 92, 8},
	}
	for _, tt := range tests {
		px, py := project(m, tt.x, tt.y)
		if math.Abs(px-tt.px) > 1e-9 || math.Abs(py-tt.py) > 1e-9 {
			t.Errorf("project(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, px, py, tt.px, tt.py)
		}
	}
}

func TestSegments(t *testing.T) {
	tests := []struct {
		radius float64
		want   int
	}{
		{0.5, 16},
		{10, 32},
		{1000, 512},
	}
	for _, tt := range tests {
		if got := segments(tt.radius); got != tt.want {
			t.Errorf("segments(%v) = %d, want %d", tt.radius, got, tt.want)
		}
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.png")
	if err := SavePNG(scene.MustCircle(0, 0, 3), path, WithSize(64)); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 64 {
		t.Errorf("decoded width = %d, want 64", img.Bounds().Dx())
	}
}
