// Package mcpng decodes Minecraft schematic files and renders them to PNG
// images using a fixed isometric projection.
package mcpng

import "fmt"

// BlockImage is a dense 3D voxel grid loaded from a schematic.
//
// ╔════════════════╤══════════════════════════════════════════╗
// ║ Axis           │ Range              │ Meaning              ║
// ╠════════════════╪════════════════════╪══════════════════════╣
// ║ X (sx)         │ 0 .. sx-1          │ east/west            ║
// ║ Y (sy)         │ 0 .. sy-1          │ up, ascending        ║
// ║ Z (sz)         │ 0 .. sz-1          │ north/south          ║
// ╚════════════════╧════════════════════╧══════════════════════╝
//
// Cells are addressed index = x + z*sx + y*(sx*sz); the type/meta slices
// each carry exactly sx*sy*sz entries.
type BlockImage struct {
	sx, sy, sz int
	types      []byte
	metas      []byte
}

// NewBlockImage allocates a BlockImage of the given dimensions with all
// cells zeroed (air, meta 0).
func NewBlockImage(sx, sy, sz int) *BlockImage {
	n := sx * sy * sz
	return &BlockImage{
		sx:    sx,
		sy:    sy,
		sz:    sz,
		types: make([]byte, n),
		metas: make([]byte, n),
	}
}

// SizeX returns the grid's extent along X.
func (b *BlockImage) SizeX() int { return b.sx }

// SizeY returns the grid's extent along Y.
func (b *BlockImage) SizeY() int { return b.sy }

// SizeZ returns the grid's extent along Z.
func (b *BlockImage) SizeZ() int { return b.sz }

func (b *BlockImage) index(x, y, z int) int {
	if x < 0 || x >= b.sx || y < 0 || y >= b.sy || z < 0 || z >= b.sz {
		panic(fmt.Sprintf("mcpng: block coord (%d,%d,%d) out of range (%d,%d,%d)", x, y, z, b.sx, b.sy, b.sz))
	}
	return x + z*b.sx + y*(b.sx*b.sz)
}

// Set writes the type and meta (low nibble only) of the cell at (x,y,z).
// Out-of-bounds coordinates are a programmer error and panic.
func (b *BlockImage) Set(x, y, z int, blockType, meta byte) {
	idx := b.index(x, y, z)
	b.types[idx] = blockType
	b.metas[idx] = meta & 0x0f
}

// GetType returns the block type at (x,y,z).
func (b *BlockImage) GetType(x, y, z int) byte {
	return b.types[b.index(x, y, z)]
}

// GetMeta returns the block meta nibble at (x,y,z).
func (b *BlockImage) GetMeta(x, y, z int) byte {
	return b.metas[b.index(x, y, z)]
}

// Get returns both the type and meta at (x,y,z).
func (b *BlockImage) Get(x, y, z int) (blockType, meta byte) {
	idx := b.index(x, y, z)
	return b.types[idx], b.metas[idx]
}

// RotateCCW returns a new BlockImage rotated 90 degrees counter-clockwise
// around the vertical (Y) axis. The result has dimensions (sz, sy, sx),
// with new[z, y, sx-1-x] == old[x, y, z]. The receiver is left untouched.
func (b *BlockImage) RotateCCW() *BlockImage {
	out := NewBlockImage(b.sz, b.sy, b.sx)
	for y := 0; y < b.sy; y++ {
		for z := 0; z < b.sz; z++ {
			for x := 0; x < b.sx; x++ {
				t, m := b.Get(x, y, z)
				out.Set(z, y, b.sx-1-x, t, m)
			}
		}
	}
	return out
}

// RotateCW returns a BlockImage rotated k quarter-turns clockwise, computed
// as (4 - k mod 4) mod 4 CCW rotations so that CW and CCW rotation always
// agree: k CW turns equal (4-k mod 4) mod 4 CCW turns.
func (b *BlockImage) RotateCW(k int) *BlockImage {
	return b.RotateCCWBy(numCCWFromCW(k))
}

// RotateCCWBy applies n CCW quarter turns in sequence.
func (b *BlockImage) RotateCCWBy(n int) *BlockImage {
	cur := b
	for i := 0; i < n; i++ {
		cur = cur.RotateCCW()
	}
	return cur
}

// numCCWFromCW converts a count of clockwise quarter turns into the
// equivalent count of counter-clockwise quarter turns.
func numCCWFromCW(numCW int) int {
	m := ((numCW % 4) + 4) % 4
	return (4 - m) % 4
}
