package mcpng

import "image/color"

// defaultBlockColor is used for any (type, meta) pair not present in
// blockColors, so that an unrecognized block type still renders as an
// opaque, distinguishable solid rather than silently vanishing.
var defaultBlockColor = color.RGBA{R: 0x90, G: 0x90, B: 0x90, A: 0xff}

// blockColors is the static type->meta->color lookup table driving the
// renderer's face shading. It carries a representative subset of common
// block types; any type not listed falls back to defaultBlockColor so
// the renderer's output invariants (only {light, normal, shadow,
// transparent} pixels for a uniform-type schematic) hold for any type,
// known or not.
var blockColors = map[byte][16]color.RGBA{
	1:  solid(color.RGBA{R: 0x7d, G: 0x7d, B: 0x7d, A: 0xff}), // stone
	2:  solid(color.RGBA{R: 0x6a, G: 0xab, B: 0x39, A: 0xff}), // grass
	3:  solid(color.RGBA{R: 0x86, G: 0x5a, B: 0x3c, A: 0xff}), // dirt
	4:  solid(color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}), // cobblestone
	5:  solid(color.RGBA{R: 0xa9, G: 0x8a, B: 0x5b, A: 0xff}), // wood planks
	7:  solid(color.RGBA{R: 0x21, G: 0x21, B: 0x21, A: 0xff}), // bedrock
	8:  solid(color.RGBA{R: 0x3b, G: 0x5d, B: 0xc9, A: 0x80}), // water (flowing)
	9:  solid(color.RGBA{R: 0x3b, G: 0x5d, B: 0xc9, A: 0x80}), // water (still)
	10: solid(color.RGBA{R: 0xd2, G: 0x53, B: 0x1c, A: 0xff}), // lava (flowing)
	11: solid(color.RGBA{R: 0xd2, G: 0x53, B: 0x1c, A: 0xff}), // lava (still)
	12: solid(color.RGBA{R: 0xdb, G: 0xd3, B: 0x9c, A: 0xff}), // sand
	13: solid(color.RGBA{R: 0x8d, G: 0x8d, B: 0x8d, A: 0xff}), // gravel
	17: solid(color.RGBA{R: 0x6c, G: 0x50, B: 0x33, A: 0xff}), // log
	18: solid(color.RGBA{R: 0x4a, G: 0x8c, B: 0x2b, A: 0xb0}), // leaves
	20: solid(color.RGBA{R: 0xd4, G: 0xf1, B: 0xf7, A: 0x60}), // glass
	24: solid(color.RGBA{R: 0xdd, G: 0xcc, B: 0x8a, A: 0xff}), // sandstone
	35: wool(),                                                // wool, by dye meta
	41: solid(color.RGBA{R: 0xfa, G: 0xe1, B: 0x4b, A: 0xff}), // gold block
	42: solid(color.RGBA{R: 0xd8, G: 0xd8, B: 0xd8, A: 0xff}), // iron block
	45: solid(color.RGBA{R: 0x97, G: 0x4d, B: 0x3e, A: 0xff}), // bricks
	49: solid(color.RGBA{R: 0x14, G: 0x0a, B: 0x22, A: 0xff}), // obsidian
	56: solid(color.RGBA{R: 0x7c, G: 0xdb, B: 0xd5, A: 0xff}), // diamond ore
}

// solid builds a 16-entry meta table where every meta shares one color,
// for block types whose appearance doesn't depend on meta.
func solid(c color.RGBA) [16]color.RGBA {
	var t [16]color.RGBA
	for i := range t {
		t[i] = c
	}
	return t
}

// dyeColors are the 16 Minecraft dye colors in meta order, used by wool
// (and by any other dyed-block table added later).
var dyeColors = [16]color.RGBA{
	{R: 0xe9, G: 0xec, B: 0xec, A: 0xff}, // white
	{R: 0xea, G: 0x7e, B: 0x35, A: 0xff}, // orange
	{R: 0xb5, G: 0x50, B: 0xba, A: 0xff}, // magenta
	{R: 0x6a, G: 0x9c, B: 0xd4, A: 0xff}, // light blue
	{R: 0xc2, G: 0xb5, B: 0x0c, A: 0xff}, // yellow
	{R: 0x5a, G: 0xbd, B: 0x2e, A: 0xff}, // lime
	{R: 0xd8, G: 0x8b, B: 0x9b, A: 0xff}, // pink
	{R: 0x3e, G: 0x3e, B: 0x3e, A: 0xff}, // gray
	{R: 0x8e, G: 0x8e, B: 0x86, A: 0xff}, // light gray
	{R: 0x15, G: 0x6b, B: 0x7b, A: 0xff}, // cyan
	{R: 0x79, G: 0x3b, B: 0xbd, A: 0xff}, // purple
	{R: 0x30, G: 0x3a, B: 0x9e, A: 0xff}, // blue
	{R: 0x53, G: 0x37, B: 0x21, A: 0xff}, // brown
	{R: 0x39, G: 0x4a, B: 0x1f, A: 0xff}, // green
	{R: 0x8e, G: 0x2e, B: 0x2a, A: 0xff}, // red
	{R: 0x19, G: 0x13, B: 0x10, A: 0xff}, // black
}

func wool() [16]color.RGBA {
	return dyeColors
}

// lookupBlockColor returns the normal-shade color for (blockType, meta),
// falling back to defaultBlockColor for unrecognized types. meta is
// clamped to the low nibble, mirroring the Data byte's own masking.
func lookupBlockColor(blockType, meta byte) color.RGBA {
	meta &= 0x0f
	if table, ok := blockColors[blockType]; ok {
		return table[meta]
	}
	return defaultBlockColor
}

// shadeColors derives the light (top-face) and shadow (side-face)
// variants of a block's normal color.
func shadeColors(c color.RGBA) (light, shadow color.RGBA) {
	light = color.RGBA{
		R: c.R + (255-c.R)/3,
		G: c.G + (255-c.G)/3,
		B: c.B + (255-c.B)/3,
		A: c.A,
	}
	shadow = color.RGBA{
		R: 2 * c.R / 3,
		G: 2 * c.G / 3,
		B: 2 * c.B / 3,
		A: c.A,
	}
	return light, shadow
}
