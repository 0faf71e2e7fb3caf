package mcpng

// Point3 is a point in the unit cube [0,1]^3 of the block a marker is
// pinned to.
type Point3 struct {
	X, Y, Z float64
}

// ShapeKind distinguishes the two primitive kinds a Shape can be. A
// tagged variant keeps the whole catalog a plain composite-literal data
// table instead of a Line/Triangle class hierarchy.
type ShapeKind int

const (
	ShapeLine ShapeKind = iota
	ShapeTriangle
)

// Shape is either a 3D line segment (P1-P2) or a filled triangle
// (P1-P2-P3); P3 is unused for ShapeLine. DefaultColor is an 0xRRGGBB
// value used whenever the owning Marker doesn't override it.
type Shape struct {
	Kind         ShapeKind
	P1, P2, P3   Point3
	DefaultColor int32
}

func line(x1, y1, z1, x2, y2, z2 float64, defaultColor int32) Shape {
	return Shape{Kind: ShapeLine, P1: Point3{x1, y1, z1}, P2: Point3{x2, y2, z2}, DefaultColor: defaultColor}
}

func tri(x1, y1, z1, x2, y2, z2, x3, y3, z3 float64, defaultColor int32) Shape {
	return Shape{
		Kind: ShapeTriangle,
		P1:   Point3{x1, y1, z1},
		P2:   Point3{x2, y2, z2},
		P3:   Point3{x3, y3, z3},
		DefaultColor: defaultColor,
	}
}

// MarkerShape is a named, immutable list of Shapes drawn together.
type MarkerShape []Shape

// shapeCatalog is the process-wide named-shape table: Cube, the six axis
// arrows, the four bottom arrows, BottomDot, and the eight corner-arrow
// variants. The 26 capital-letter shapes are generated separately by
// letterShape from a stroke table instead of living in this map.
var shapeCatalog = map[string]MarkerShape{
	"Cube": {
		line(0, 0, 0, 1, 0, 0, 0x000000),
		line(0, 0, 0, 0, 1, 0, 0x000000),
		line(0, 0, 0, 0, 0, 1, 0x000000),
		line(1, 0, 0, 1, 1, 0, 0x000000),
		line(1, 0, 0, 1, 0, 1, 0x000000),
		line(0, 1, 0, 1, 1, 0, 0x000000),
		line(0, 1, 0, 0, 1, 1, 0x000000),
		line(0, 0, 1, 1, 0, 1, 0x000000),
		line(0, 0, 1, 0, 1, 1, 0x000000),
		line(1, 1, 1, 1, 1, 0, 0x000000),
		line(1, 1, 1, 1, 0, 1, 0x000000),
		line(1, 1, 1, 0, 1, 1, 0x000000),
	},
	"ArrowXM": {
		tri(0, 0.5, 0.5, 0.5, 0.5, 1, 0.5, 0.5, 0, 0x000000),
		tri(1, 0.5, 0.6, 1, 0.5, 0.4, 0, 0.5, 0.5, 0x000000),
	},
	"ArrowXP": {
		tri(1, 0.5, 0.5, 0.5, 0.5, 1, 0.5, 0.5, 0, 0x000000),
		tri(0, 0.5, 0.6, 0, 0.5, 0.4, 1, 0.5, 0.5, 0x000000),
	},
	"ArrowYM": {
		tri(1, 0.5, 0, 0, 0.5, 1, 0.5, 0, 0.5, 0x000000),
		tri(0.4, 1, 0.6, 0.6, 1, 0.4, 0.5, 0, 0.5, 0x000000),
	},
	"ArrowYP": {
		tri(1, 0.5, 0, 0, 0.5, 1, 0.5, 1, 0.5, 0x000000),
		tri(0.4, 0, 0.6, 0.6, 0, 0.4, 0.5, 1, 0.5, 0x000000),
	},
	"ArrowZM": {
		tri(0.5, 0.5, 0, 1, 0.5, 0.5, 0, 0.5, 0.5, 0x000000),
		tri(0.6, 0.5, 1, 0.4, 0.5, 1, 0.5, 0.5, 0, 0x000000),
	},
	"ArrowZP": {
		tri(0.5, 0.5, 1, 1, 0.5, 0.5, 0, 0.5, 0.5, 0x000000),
		tri(0.6, 0.5, 0, 0.4, 0.5, 0, 0.5, 0.5, 1, 0x000000),
	},
	"BottomArrowXM": {
		tri(0, 0, 0.5, 0.5, 0, 1, 0.5, 0, 0, 0x000000),
		tri(1, 0, 0.6, 1, 0, 0.4, 0, 0, 0.5, 0x000000),
	},
	"BottomArrowXP": {
		tri(1, 0, 0.5, 0.5, 0, 1, 0.5, 0, 0, 0x000000),
		tri(0, 0, 0.6, 0, 0, 0.4, 1, 0, 0.5, 0x000000),
	},
	"BottomArrowZM": {
		tri(0.5, 0, 0, 1, 0, 0.5, 0, 0, 0.5, 0x000000),
		tri(0.6, 0, 1, 0.4, 0, 1, 0.5, 0, 0, 0x000000),
	},
	"BottomArrowZP": {
		tri(0.5, 0, 1, 1, 0, 0.5, 0, 0, 0.5, 0x000000),
		tri(0.6, 0, 0, 0.4, 0, 0, 0.5, 0, 1, 0x000000),
	},
	"BottomDot": {
		tri(0, 0, 0.5, 0.5, 0, 1, 1, 0, 0.5, 0x000000),
		tri(0, 0, 0.5, 0.5, 0, 0, 1, 0, 0.5, 0x000000),
	},
	"ArrowYMCornerXMZM": {
		line(0, 0, 0, 0.5, 0.5, 0, 0x000000),
		line(0, 0, 0, 0, 0.5, 0.5, 0x000000),
		line(0, 0, 0, 0, 1, 0, 0x000000),
	},
	"ArrowYMCornerXMZP": {
		line(0, 0, 1, 0.5, 0.5, 1, 0x000000),
		line(0, 0, 1, 0, 0.5, 0.5, 0x000000),
		line(0, 0, 1, 0, 1, 1, 0x000000),
	},
	"ArrowYMCornerXPZM": {
		line(1, 0, 0, 0.5, 0.5, 0, 0x000000),
		line(1, 0, 0, 1, 0.5, 0.5, 0x000000),
		line(1, 0, 0, 1, 1, 0, 0x000000),
	},
	"ArrowYMCornerXPZP": {
		line(1, 0, 1, 0.5, 0.5, 1, 0x000000),
		line(1, 0, 1, 1, 0.5, 0.5, 0x000000),
		line(1, 0, 1, 1, 1, 1, 0x000000),
	},
	"ArrowYPCornerXMZM": {
		line(0, 1, 0, 0.5, 0.5, 0, 0x000000),
		line(0, 1, 0, 0, 0.5, 0.5, 0x000000),
		line(0, 0, 0, 0, 1, 0, 0x000000),
	},
	"ArrowYPCornerXMZP": {
		line(0, 1, 1, 0.5, 0.5, 1, 0x000000),
		line(0, 1, 1, 0, 0.5, 0.5, 0x000000),
		line(0, 0, 1, 0, 1, 1, 0x000000),
	},
	"ArrowYPCornerXPZM": {
		line(1, 1, 0, 0.5, 0.5, 0, 0x000000),
		line(1, 1, 0, 1, 0.5, 0.5, 0x000000),
		line(1, 0, 0, 1, 1, 0, 0x000000),
	},
	"ArrowYPCornerXPZP": {
		line(1, 1, 1, 0.5, 0.5, 1, 0x000000),
		line(1, 1, 1, 1, 0.5, 0.5, 0x000000),
		line(1, 0, 1, 1, 1, 1, 0x000000),
	},
}

// letterStrokes is a stroke table for the capital-letter marker shapes
// (LetterA..LetterZ). Each entry is a list of (x1,y1,x2,y2) line segments
// in the unit square, all drawn at Z=0.5 so the letter faces along Z
// like a signboard.
var letterStrokes = map[byte][][4]float64{
	'A': {{0, 0, 0, 0.5}, {0, 0.5, 0.5, 1}, {0.5, 1, 1, 0.5}, {1, 0.5, 1, 0}, {0, 0.5, 1, 0.5}},
	'B': {{0, 0, 0, 1}, {0, 1, 0.75, 1}, {0.75, 1, 1, 0.75}, {1, 0.75, 0.75, 0.5}, {0.75, 0.5, 0, 0.5}, {0.75, 0.5, 1, 0.25}, {1, 0.25, 0.75, 0}, {0.75, 0, 0, 0}},
	'C': {{1, 1, 0, 1}, {0, 1, 0, 0}, {0, 0, 1, 0}},
	'D': {{0, 0, 0, 1}, {0, 1, 0.75, 1}, {0.75, 1, 1, 0.5}, {1, 0.5, 0.75, 0}, {0.75, 0, 0, 0}},
	'E': {{1, 1, 0, 1}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0.5, 0.75, 0.5}},
	'F': {{0, 0, 0, 1}, {0, 1, 1, 1}, {0, 0.5, 0.75, 0.5}},
	'G': {{1, 1, 0, 1}, {0, 1, 0, 0}, {0, 0, 1, 0}, {1, 0, 1, 0.4}, {1, 0.4, 0.5, 0.4}},
	'H': {{0, 0, 0, 1}, {1, 0, 1, 1}, {0, 0.5, 1, 0.5}},
	'I': {{0.5, 0, 0.5, 1}},
	'J': {{1, 1, 1, 0.2}, {1, 0.2, 0.5, 0}, {0.5, 0, 0, 0.2}},
	'K': {{0, 0, 0, 1}, {0, 0.5, 1, 1}, {0, 0.5, 1, 0}},
	'L': {{0, 1, 0, 0}, {0, 0, 1, 0}},
	'M': {{0, 0, 0, 1}, {0, 1, 0.5, 0.5}, {0.5, 0.5, 1, 1}, {1, 1, 1, 0}},
	'N': {{0, 0, 0, 1}, {0, 1, 1, 0}, {1, 0, 1, 1}},
	'O': {{0, 0, 0, 1}, {0, 1, 1, 1}, {1, 1, 1, 0}, {1, 0, 0, 0}},
	'P': {{0, 0, 0, 1}, {0, 1, 1, 1}, {1, 1, 1, 0.5}, {1, 0.5, 0, 0.5}},
	'Q': {{0, 0, 0, 1}, {0, 1, 1, 1}, {1, 1, 1, 0}, {1, 0, 0, 0}, {0.5, 0.3, 1, 0}},
	'R': {{0, 0, 0, 1}, {0, 1, 1, 1}, {1, 1, 1, 0.5}, {1, 0.5, 0, 0.5}, {0, 0.5, 1, 0}},
	'S': {{1, 1, 0, 1}, {0, 1, 0, 0.5}, {0, 0.5, 1, 0.5}, {1, 0.5, 1, 0}, {1, 0, 0, 0}},
	'T': {{0, 1, 1, 1}, {0.5, 1, 0.5, 0}},
	'U': {{0, 1, 0, 0}, {0, 0, 1, 0}, {1, 0, 1, 1}},
	'V': {{0, 1, 0.5, 0}, {0.5, 0, 1, 1}},
	'W': {{0, 1, 0, 0}, {0, 0, 0.5, 0.5}, {0.5, 0.5, 1, 0}, {1, 0, 1, 1}},
	'X': {{0, 1, 1, 0}, {0, 0, 1, 1}},
	'Y': {{0, 1, 0.5, 0.5}, {1, 1, 0.5, 0.5}, {0.5, 0.5, 0.5, 0}},
	'Z': {{0, 1, 1, 1}, {1, 1, 0, 0}, {0, 0, 1, 0}},
}

// letterShape builds the MarkerShape for a capital letter from
// letterStrokes, or nil if letter isn't 'A'..'Z'.
func letterShape(letter byte) MarkerShape {
	strokes, ok := letterStrokes[letter]
	if !ok {
		return nil
	}
	shapes := make(MarkerShape, 0, len(strokes))
	for _, s := range strokes {
		shapes = append(shapes, line(s[0], s[1], 0.5, s[2], s[3], 0.5, 0x000000))
	}
	return shapes
}
