package video

import (
	"testing"

	"github.com/corebound/dmgcore/dmg/addr"
	"github.com/stretchr/testify/assert"
)

func TestDrawScanline_BGDisabledFillsLightestShade(t *testing.T) {
	g := NewGPU()
	g.Write(addr.BGP, 0xE4) // identity palette
	g.lcdc = 0              // BG disabled (bit 0 clear)
	g.ly = 0

	g.drawScanline()

	assert.Equal(t, White, g.framebuffer.Shades()[0])
}

func TestDrawScanline_decodesUnsignedTile(t *testing.T) {
	g := NewGPU()
	g.Write(addr.LCDC, 0x91) // BG enabled, unsigned tile data, map 0
	g.Write(addr.BGP, 0xE4)
	g.ly = 0

	// tile 1 at unsigned tile data base (0x8000 + 1*16), all bits set on row 0
	tileAddr := addr.TileData0 + 16 - addr.VRAMStart
	g.vram[tileAddr] = 0xFF
	g.vram[tileAddr+1] = 0xFF
	// map entry for (0,0) selects tile index 1
	g.vram[addr.TileMap0-addr.VRAMStart] = 0x01

	g.drawScanline()

	assert.Equal(t, Black, g.framebuffer.Shades()[0])
}
