package mcpng

import (
	"image"
	"image/color"
	"testing"
)

func TestGetShapeForNameKnownAndUnknown(t *testing.T) {
	if _, ok := GetShapeForName("Cube"); !ok {
		t.Error(`GetShapeForName("Cube") not found`)
	}
	if _, ok := GetShapeForName("LetterQ"); !ok {
		t.Error(`GetShapeForName("LetterQ") not found`)
	}
	if _, ok := GetShapeForName("DoesNotExist"); ok {
		t.Error(`GetShapeForName("DoesNotExist") unexpectedly found`)
	}
}

func TestNewMarkerUnknownShape(t *testing.T) {
	if _, err := NewMarker(0, 0, 0, "NotAShape", NoColor); err == nil {
		t.Fatal("expected error for unknown shape name")
	}
}

func TestNewMarkerKnownShape(t *testing.T) {
	m, err := NewMarker(1, 2, 3, "Cube", NoColor)
	if err != nil {
		t.Fatalf("NewMarker: %v", err)
	}
	if m.X != 1 || m.Y != 2 || m.Z != 3 {
		t.Errorf("marker coords = (%d,%d,%d), want (1,2,3)", m.X, m.Y, m.Z)
	}
	if len(m.Shape) != 12 {
		t.Errorf("len(m.Shape) = %d, want 12", len(m.Shape))
	}
}

func TestResolveColorFallsBackToDefault(t *testing.T) {
	got := resolveColor(NoColor, 0x00ff00)
	want := color.RGBA{R: 0, G: 0xff, B: 0, A: 0xff}
	if got != want {
		t.Errorf("resolveColor(NoColor, 0x00ff00) = %+v, want %+v", got, want)
	}
}

func TestResolveColorUsesOverride(t *testing.T) {
	got := resolveColor(0xff0000, 0x00ff00)
	want := color.RGBA{R: 0xff, G: 0, B: 0, A: 0xff}
	if got != want {
		t.Errorf("resolveColor(0xff0000, ...) = %+v, want %+v", got, want)
	}
}

func TestProject3DCorners(t *testing.T) {
	tests := []struct {
		p          Point3
		wantX      int
		wantY      int
	}{
		{Point3{0, 0, 0}, 8, 7},
		{Point3{1, 0, 0}, 4, 9},
		{Point3{0, 0, 1}, 4, 5},
		{Point3{0, 1, 0}, 8, 2},
	}
	for _, tc := range tests {
		x, y := project3D(tc.p, 4, 5)
		if x != tc.wantX || y != tc.wantY {
			t.Errorf("project3D(%+v, 4, 5) = (%d,%d), want (%d,%d)", tc.p, x, y, tc.wantX, tc.wantY)
		}
	}
}

func TestRoundToInt(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0.4, 0}, {0.5, 1}, {0.6, 1},
		{-0.4, 0}, {-0.5, -1}, {-0.6, -1},
		{2.5, 3}, {-2.5, -3},
	}
	for _, tc := range tests {
		if got := roundToInt(tc.in); got != tc.want {
			t.Errorf("roundToInt(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestDrawLineEndpointsInclusive(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	drawLine(img, 2, 2, 2, 2, color.RGBA{R: 0xff, A: 0xff})
	if img.RGBAAt(2, 2).A == 0 {
		t.Fatal("degenerate line (single point) did not paint its pixel")
	}

	img2 := image.NewRGBA(image.Rect(0, 0, 10, 10))
	drawLine(img2, 0, 0, 5, 0, color.RGBA{R: 0xff, A: 0xff})
	if img2.RGBAAt(0, 0).A == 0 || img2.RGBAAt(5, 0).A == 0 {
		t.Fatal("horizontal line did not paint both endpoints")
	}
	for x := 0; x <= 5; x++ {
		if img2.RGBAAt(x, 0).A == 0 {
			t.Errorf("horizontal line missing pixel at x=%d", x)
		}
	}
}

func TestDrawTriangleFillsInterior(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	col := color.RGBA{G: 0xff, A: 0xff}
	drawTriangle(img, 0, 0, 10, 0, 5, 10, col)

	if img.RGBAAt(5, 1).A == 0 {
		t.Error("triangle interior point (5,1) not painted")
	}
	if img.RGBAAt(19, 19).A != 0 {
		t.Error("far corner outside the triangle was painted")
	}
}

func TestDrawTriangleDegenerateIsNoop(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	drawTriangle(img, 0, 0, 5, 0, 9, 0, color.RGBA{R: 0xff, A: 0xff})
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if img.RGBAAt(x, y).A != 0 {
				t.Fatalf("degenerate (flat) triangle painted pixel (%d,%d)", x, y)
			}
		}
	}
}

func TestMarkerDrawInvokesShapeGeometry(t *testing.T) {
	m, err := NewMarker(0, 0, 0, "BottomDot", 0xff0000)
	if err != nil {
		t.Fatalf("NewMarker: %v", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	m.Draw(img, 20, 20, 4, 5)

	painted := false
	for y := 0; y < 40 && !painted; y++ {
		for x := 0; x < 40; x++ {
			if img.RGBAAt(x, y).A != 0 {
				painted = true
				break
			}
		}
	}
	if !painted {
		t.Error("Marker.Draw painted nothing")
	}
}
