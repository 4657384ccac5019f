package video

import (
	"github.com/corebound/dmgcore/dmg/addr"
	"github.com/corebound/dmgcore/dmg/bit"
)

// drawScanline renders the background layer for the current line into the
// framebuffer. Window and sprite compositing belong to the external pixel
// renderer this core exposes VRAM/OAM/palettes to; see SPEC_FULL.md.
func (g *GPU) drawScanline() {
	line := int(g.ly)
	if line < 0 || line >= Height {
		return
	}

	if !bit.IsSet(lcdcBGEnable, g.lcdc) {
		palette := decodePalette(g.bgp)
		for x := 0; x < Width; x++ {
			g.framebuffer.SetPixel(x, line, palette[0])
		}
		return
	}

	useSignedTiles := !bit.IsSet(lcdcTileDataSelect, g.lcdc)
	useMap0 := !bit.IsSet(lcdcBGMapSelect, g.lcdc)

	tileMapBase := addr.TileMap1
	if useMap0 {
		tileMapBase = addr.TileMap0
	}

	bgY := (line + int(g.scy)) & 0xFF
	tileRow := bgY / 8
	pixelY := bgY % 8
	palette := decodePalette(g.bgp)

	for x := 0; x < Width; x++ {
		bgX := (x + int(g.scx)) & 0xFF
		tileCol := bgX / 8
		pixelX := bgX % 8

		mapAddr := tileMapBase + uint16(tileRow*32+tileCol) - addr.VRAMStart
		tileIndex := g.vram[mapAddr]

		var tileAddr uint16
		if useSignedTiles {
			tileAddr = addr.TileData2 - addr.VRAMStart + uint16(int16(int8(tileIndex))*16)
		} else {
			tileAddr = addr.TileData0 - addr.VRAMStart + uint16(tileIndex)*16
		}
		tileAddr += uint16(pixelY * 2)

		low := g.vram[tileAddr]
		high := g.vram[tileAddr+1]

		bitIndex := uint8(7 - pixelX)
		colorIndex := uint8(0)
		if bit.IsSet(bitIndex, low) {
			colorIndex |= 1
		}
		if bit.IsSet(bitIndex, high) {
			colorIndex |= 2
		}

		g.framebuffer.SetPixel(x, line, palette[colorIndex])
	}
}
