package mcpng

import (
	"image"
	"image/color"
	"image/png"
	"io"
)

// ImageSize returns the pixel dimensions of the PNG a BlockImage of the
// given extent and tile geometry renders to.
func ImageSize(sx, sy, sz, horzSize, vertSize int) (width, height int) {
	width = (sx+sz)*horzSize + 2
	height = sy*vertSize + width/2
	return width, height
}

// Render paints img (optionally annotated with markers) into a freshly
// allocated, fully transparent *image.RGBA using the fixed isometric
// projection, and returns the result.
func Render(img *BlockImage, horzSize, vertSize int, markers []Marker) *image.RGBA {
	sx, sy, sz := img.SizeX(), img.SizeY(), img.SizeZ()
	width, height := ImageSize(sx, sy, sz, horzSize, vertSize)

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	// image.NewRGBA already zero-fills, which is fully transparent black.

	numLayers := sx + sz
	for i := 1; i <= numLayers; i++ {
		for j := 0; j < sz; j++ {
			colX := sx - i + j
			colZ := sz - j - 1
			if colX < 0 || colZ < 0 || colX >= sx || colZ >= sz {
				continue
			}
			drawColumn(out, img, markers, colX, colZ, horzSize, vertSize)
		}
	}
	return out
}

// drawColumn paints one (colX, colZ) column of the isometric sweep,
// top-down, including markers pinned to cells outside the block's Y
// range.
func drawColumn(out *image.RGBA, img *BlockImage, markers []Marker, colX, colZ, horzSize, vertSize int) {
	sx, sy, sz := img.SizeX(), img.SizeY(), img.SizeZ()

	baseX := colX*horzSize + (sz-colZ-1)*horzSize
	baseY := (sx + sz - colX - colZ - 2) * horzSize / 2

	blockX := sx - colX - 1
	blockZ := colZ

	for y := sy; y >= -1; y-- {
		blockY := sy - y - 1
		originX := baseX
		originY := baseY + y*vertSize

		if blockY >= 0 && blockY < sy {
			blockType, blockMeta := img.Get(blockX, blockY, blockZ)
			drawMarkersInCube(out, markers, originX, originY, blockX, blockY, blockZ, horzSize, vertSize)

			drawTop := blockY == sy-1 || img.GetType(blockX, blockY+1, blockZ) != blockType
			drawLeft := blockX == sx-1 || img.GetType(blockX+1, blockY, blockZ) != blockType
			drawRight := blockZ == 0 || img.GetType(blockX, blockY, blockZ-1) != blockType

			drawCube(out, originX, originY, blockType, blockMeta, drawTop, drawLeft, drawRight, horzSize, vertSize)
		} else {
			drawMarkersInCube(out, markers, originX, originY, blockX, blockY, blockZ, horzSize, vertSize)
		}
	}
}

func drawMarkersInCube(out *image.RGBA, markers []Marker, imgX, imgY, blockX, blockY, blockZ, horzSize, vertSize int) {
	for _, m := range markers {
		if m.X == blockX && m.Y == blockY && m.Z == blockZ {
			m.Draw(out, imgX, imgY, horzSize, vertSize)
		}
	}
}

// drawCube rasterizes the three visible parallelogram faces of a single
// block at image-space origin (imgX, imgY).
func drawCube(out *image.RGBA, imgX, imgY int, blockType, blockMeta byte, drawTop, drawLeft, drawRight bool, horzSize, vertSize int) {
	if blockType == 0 {
		return
	}
	normal := lookupBlockColor(blockType, blockMeta)
	light, shadow := shadeColors(normal)

	if drawTop {
		for x := 1; x <= horzSize; x++ {
			for y := x / 2; y > 0; y-- {
				compositePixel(out, imgX+x, imgY+y+horzSize/2, light)
				compositePixel(out, imgX+x, imgY-y+horzSize/2, light)
				compositePixel(out, imgX+2*horzSize-x+1, imgY+y+horzSize/2, light)
				compositePixel(out, imgX+2*horzSize-x+1, imgY-y+horzSize/2, light)
			}
			compositePixel(out, imgX+x, imgY+horzSize/2, light)
			compositePixel(out, imgX+2*horzSize-x+1, imgY+horzSize/2, light)
		}
	}

	if drawLeft {
		for x := 1; x <= horzSize; x++ {
			for y := 1; y <= vertSize; y++ {
				compositePixel(out, imgX+x, imgY+y+horzSize/2+x/2, normal)
			}
		}
	}

	if drawRight {
		for x := 0; x < horzSize; x++ {
			for y := 1; y <= vertSize; y++ {
				compositePixel(out, imgX+horzSize+x+1, imgY+y+horzSize-(x+1)/2, shadow)
			}
		}
	}
}

// encodePNG writes img to w as a PNG.
func encodePNG(w io.Writer, img *image.RGBA) error {
	return png.Encode(w, img)
}

// compositePixel blends src over the pixel at (x,y) using associated-alpha
// src-over compositing, discarding writes outside the image bounds. Opaque
// src always yields src; fully transparent src leaves the destination
// untouched (out_a == dst_a, out_c == dst_c).
func compositePixel(img *image.RGBA, x, y int, src color.RGBA) {
	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	dst := img.RGBAAt(x, y)

	outA := uint32(src.A) + uint32(dst.A)*(255-uint32(src.A))/255
	if outA == 0 {
		img.SetRGBA(x, y, color.RGBA{})
		return
	}
	mix := func(sc, dc uint8) uint8 {
		v := (uint32(sc)*uint32(src.A) + uint32(dc)*uint32(dst.A)*(255-uint32(src.A))/255) / outA
		return uint8(v)
	}
	img.SetRGBA(x, y, color.RGBA{
		R: mix(src.R, dst.R),
		G: mix(src.G, dst.G),
		B: mix(src.B, dst.B),
		A: uint8(outA),
	})
}
