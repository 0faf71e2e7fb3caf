package mcpng

import (
	"fmt"
	"image"
	"image/color"
	"sync"
)

// NoColor is the sentinel Marker.Color value meaning "use the shape's
// default color".
const NoColor int32 = -1

// Marker pins a named shape to a block coordinate, optionally overriding
// its default color.
type Marker struct {
	X, Y, Z int
	Shape   MarkerShape
	Color   int32 // 0xRRGGBB, or NoColor to use each shape's own default
}

// NewMarker builds a Marker for the given block coordinate, resolving
// shapeName against the shape registry. It returns an error if shapeName
// is not a known shape.
func NewMarker(x, y, z int, shapeName string, colorVal int32) (Marker, error) {
	shape, ok := GetShapeForName(shapeName)
	if !ok {
		return Marker{}, fmt.Errorf("mcpng: unknown marker shape %q", shapeName)
	}
	return Marker{X: x, Y: y, Z: z, Shape: shape, Color: colorVal}, nil
}

// Draw renders every Shape in the marker's MarkerShape, in catalog order,
// at image-space origin (imgX, imgY).
func (m Marker) Draw(img *image.RGBA, imgX, imgY, horzSize, vertSize int) {
	for _, s := range m.Shape {
		drawShape(img, s, imgX, imgY, horzSize, vertSize, m.Color)
	}
}

var (
	registryOnce sync.Once
	registry     map[string]MarkerShape
)

// buildRegistry populates the shape registry from shapeCatalog plus the
// generated LetterA..LetterZ entries. Runs exactly once.
func buildRegistry() {
	registry = make(map[string]MarkerShape, len(shapeCatalog)+26)
	for name, shape := range shapeCatalog {
		registry[name] = shape
	}
	for c := byte('A'); c <= 'Z'; c++ {
		registry["Letter"+string(rune(c))] = letterShape(c)
	}
}

// GetShapeForName resolves a catalog name to its MarkerShape. The
// registry is built lazily, exactly once, on first call.
func GetShapeForName(name string) (MarkerShape, bool) {
	registryOnce.Do(buildRegistry)
	shape, ok := registry[name]
	return shape, ok
}

// project3D maps a point in a block's unit cube to an image-space offset
// relative to that block's origin, using the fixed isometric projection.
// The formulas are part of the on-disk output contract and must not be
// simplified algebraically even though they admit an equivalent, shorter
// form.
func project3D(p Point3, horzSize, vertSize int) (x, y int) {
	h := float64(horzSize)
	v := float64(vertSize)
	px := (1 - p.Z - p.X + 1) * h
	py := (1-p.Y)*v + (p.X+1-p.Z)*h/2
	return roundToInt(px), roundToInt(py)
}

func roundToInt(f float64) int {
	if f >= 0 {
		return int(f + 0.5)
	}
	return -int(-f + 0.5)
}

// resolveColor returns the shape's own default when colorVal is NoColor,
// otherwise colorVal, decoded into an opaque RGBA.
func resolveColor(colorVal, defaultColor int32) color.RGBA {
	c := colorVal
	if c == NoColor {
		c = defaultColor
	}
	return color.RGBA{
		R: byte(c >> 16),
		G: byte(c >> 8),
		B: byte(c),
		A: 0xff,
	}
}

// drawShape projects and rasterizes a single Shape into img, with its
// origin offset by (imgX, imgY).
func drawShape(img *image.RGBA, s Shape, imgX, imgY, horzSize, vertSize int, markerColor int32) {
	col := resolveColor(markerColor, s.DefaultColor)
	switch s.Kind {
	case ShapeLine:
		x1, y1 := project3D(s.P1, horzSize, vertSize)
		x2, y2 := project3D(s.P2, horzSize, vertSize)
		drawLine(img, imgX+x1, imgY+y1, imgX+x2, imgY+y2, col)
	case ShapeTriangle:
		x1, y1 := project3D(s.P1, horzSize, vertSize)
		x2, y2 := project3D(s.P2, horzSize, vertSize)
		x3, y3 := project3D(s.P3, horzSize, vertSize)
		drawTriangle(img, imgX+x1, imgY+y1, imgX+x2, imgY+y2, imgX+x3, imgY+y3, col)
	}
}

// drawLine rasterizes a single-pixel-wide line between two image-space
// points using Bresenham's integer algorithm, endpoints inclusive,
// clipped to the image bounds. Marker pixels are always opaque.
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	dx := abs(x1 - x2)
	sx := -1
	if x2 < x1 {
		sx = 1
	}
	dy := abs(y1 - y2)
	sy := -1
	if y2 < y1 {
		sy = 1
	}
	err := dx
	if dx <= dy {
		err = -dy
	}
	err /= 2

	for {
		compositePixel(img, x2, y2, col)
		if x2 == x1 && y2 == y1 {
			break
		}
		e2 := err
		if e2 > -dx {
			err -= dy
			x2 += sx
		}
		if e2 < dy {
			err += dx
			y2 += sy
		}
	}
}

// drawTriangle fills a solid, non-antialiased triangle by scanline,
// vertices sorted by ascending Y (ties by X).
func drawTriangle(img *image.RGBA, x1, y1, x2, y2, x3, y3 int, col color.RGBA) {
	type vert struct{ x, y int }
	v1, v2, v3 := vert{x1, y1}, vert{x2, y2}, vert{x3, y3}

	sortVerts := func(a, b *vert) {
		if a.y > b.y || (a.y == b.y && a.x > b.x) {
			*a, *b = *b, *a
		}
	}
	sortVerts(&v1, &v2)
	sortVerts(&v1, &v3)
	sortVerts(&v2, &v3)

	if v3.y == v1.y {
		return // degenerate
	}

	if v2.y != v1.y {
		for y := v1.y; y < v2.y; y++ {
			x12 := v1.x + (v2.x-v1.x)*(y-v1.y)/(v2.y-v1.y)
			x13 := v1.x + (v3.x-v1.x)*(y-v1.y)/(v3.y-v1.y)
			fillSpan(img, y, x12, x13, col)
		}
	}
	if v3.y != v2.y {
		for y := v2.y; y < v3.y; y++ {
			x13 := v1.x + (v3.x-v1.x)*(y-v1.y)/(v3.y-v1.y)
			x23 := v2.x + (v3.x-v2.x)*(y-v2.y)/(v3.y-v2.y)
			fillSpan(img, y, x13, x23, col)
		}
	}
}

func fillSpan(img *image.RGBA, y, xa, xb int, col color.RGBA) {
	left, right := xa, xb
	if left > right {
		left, right = right, left
	}
	for x := left; x < right; x++ {
		compositePixel(img, x, y, col)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
