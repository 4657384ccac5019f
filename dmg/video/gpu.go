// Package video implements the DMG PPU's mode machine, VRAM/OAM storage,
// palettes and a background-only scanline renderer. The full pixel
// renderer (window/sprite compositing, host framebuffer presentation) is an
// external collaborator; this package only produces what the mode machine
// needs to drive interrupts and a believable background layer.
package video

import (
	"github.com/corebound/dmgcore/dmg/addr"
	"github.com/corebound/dmgcore/dmg/bit"
)

// Mode is one of the four PPU scanline phases. Values match STAT bits 1-0.
type Mode uint8

const (
	HBlank Mode = 0
	VBlank Mode = 1
	OAMScan Mode = 2
	VRAMScan Mode = 3
)

// Mode durations in CPU T-cycles, per spec.md's mode table.
const (
	oamScanCycles  = 80
	vramScanCycles = 172
	hblankCycles   = 204
	vblankLineCycles = 456
	vblankLines      = 10
)

// LCDC bit positions.
const (
	lcdcBGEnable        uint8 = 0
	lcdcOBJEnable       uint8 = 1
	lcdcOBJSize         uint8 = 2
	lcdcBGMapSelect     uint8 = 3
	lcdcTileDataSelect  uint8 = 4
	lcdcWindowEnable    uint8 = 5
	lcdcWindowMapSelect uint8 = 6
	lcdcDisplayEnable   uint8 = 7
)

// STAT bit positions.
const (
	statCoincidenceFlag uint8 = 2
	statHBlankIRQ       uint8 = 3
	statVBlankIRQ       uint8 = 4
	statOAMIRQ          uint8 = 5
	statCoincidenceIRQ  uint8 = 6
)

// GPU owns VRAM, OAM, the LCD registers and the scanline mode machine.
type GPU struct {
	vram [0x2000]uint8
	oam  [160]uint8

	lcdc, stat          uint8
	scy, scx            uint8
	ly, lyc             uint8
	bgp, obp0, obp1     uint8
	wy, wx              uint8

	mode       Mode
	cycles     int
	vblankLine int

	framebuffer *FrameBuffer

	// RequestInterrupt requests one of the five DMG interrupt sources.
	RequestInterrupt func(addr.Interrupt)
}

// NewGPU returns a GPU with the mode machine at its power-on state: OAM scan
// at line 0.
func NewGPU() *GPU {
	return &GPU{
		framebuffer: NewFrameBuffer(),
		mode:        OAMScan,
	}
}

// FrameBuffer returns the current decoded frame.
func (g *GPU) FrameBuffer() *FrameBuffer {
	return g.framebuffer
}

func (g *GPU) lcdOn() bool {
	return bit.IsSet(lcdcDisplayEnable, g.lcdc)
}

// Tick advances the mode machine by cycles CPU T-cycles, per spec.md's
// exact per-mode duration table.
func (g *GPU) Tick(cycles int) {
	if !g.lcdOn() {
		g.ly = 0
		g.mode = HBlank
		g.cycles = 0
		g.vblankLine = 0
		return
	}

	g.cycles += cycles

	for {
		switch g.mode {
		case OAMScan:
			if g.cycles < oamScanCycles {
				return
			}
			g.cycles -= oamScanCycles
			g.setMode(VRAMScan)
		case VRAMScan:
			if g.cycles < vramScanCycles {
				return
			}
			g.cycles -= vramScanCycles
			g.drawScanline()
			g.setMode(HBlank)
		case HBlank:
			if g.cycles < hblankCycles {
				return
			}
			g.cycles -= hblankCycles
			if g.ly == 143 {
				g.setLY(144)
				g.vblankLine = 0
				g.setMode(VBlank)
				if g.RequestInterrupt != nil {
					g.RequestInterrupt(addr.VBlankInterrupt)
				}
			} else {
				g.setLY(g.ly + 1)
				g.setMode(OAMScan)
			}
		case VBlank:
			if g.cycles < vblankLineCycles {
				return
			}
			g.cycles -= vblankLineCycles
			g.vblankLine++
			if g.vblankLine >= vblankLines {
				g.setLY(0)
				g.setMode(OAMScan)
			} else {
				g.setLY(144 + uint8(g.vblankLine))
			}
		}
	}
}

// setMode updates the mode and raises the matching STAT interrupt if its
// selector bit is enabled.
func (g *GPU) setMode(m Mode) {
	g.mode = m
	var selector uint8
	switch m {
	case HBlank:
		selector = statHBlankIRQ
	case VBlank:
		selector = statVBlankIRQ
	case OAMScan:
		selector = statOAMIRQ
	default:
		return
	}
	if bit.IsSet(selector, g.stat) && g.RequestInterrupt != nil {
		g.RequestInterrupt(addr.LCDSTATInterrupt)
	}
}

// setLY updates LY and evaluates the LYC coincidence flag/interrupt.
func (g *GPU) setLY(line uint8) {
	g.ly = line
	coincident := g.ly == g.lyc
	if coincident {
		g.stat = bit.Set(statCoincidenceFlag, g.stat)
	} else {
		g.stat = bit.Reset(statCoincidenceFlag, g.stat)
	}
	if coincident && bit.IsSet(statCoincidenceIRQ, g.stat) && g.RequestInterrupt != nil {
		g.RequestInterrupt(addr.LCDSTATInterrupt)
	}
}

// Read services the GPU's MMIO registers and VRAM/OAM address ranges.
func (g *GPU) Read(address uint16) uint8 {
	switch {
	case address >= addr.VRAMStart && address <= addr.VRAMEnd:
		return g.vram[address-addr.VRAMStart]
	case address >= addr.OAMStart && address <= addr.OAMEnd:
		return g.oam[address-addr.OAMStart]
	case address > addr.OAMEnd && address <= addr.OAMUnusedEnd:
		return 0
	case address == addr.LCDC:
		return g.lcdc
	case address == addr.STAT:
		return 0x80 | (g.stat & 0x7F) | uint8(g.mode)
	case address == addr.SCY:
		return g.scy
	case address == addr.SCX:
		return g.scx
	case address == addr.LY:
		return g.ly
	case address == addr.LYC:
		return g.lyc
	case address == addr.BGP:
		return g.bgp
	case address == addr.OBP0:
		return g.obp0
	case address == addr.OBP1:
		return g.obp1
	case address == addr.WY:
		return g.wy
	case address == addr.WX:
		return g.wx
	default:
		return 0xFF
	}
}

// Write services the GPU's MMIO registers and VRAM/OAM address ranges.
// DMA is not handled here: it copies through the bus, which calls WriteOAM.
func (g *GPU) Write(address uint16, value uint8) {
	switch {
	case address >= addr.VRAMStart && address <= addr.VRAMEnd:
		g.vram[address-addr.VRAMStart] = value
	case address >= addr.OAMStart && address <= addr.OAMEnd:
		g.oam[address-addr.OAMStart] = value
	case address > addr.OAMEnd && address <= addr.OAMUnusedEnd:
		// unusable region: writes ignored
	case address == addr.LCDC:
		wasOn := g.lcdOn()
		g.lcdc = value
		if wasOn && !g.lcdOn() {
			g.ly = 0
			g.mode = HBlank
			g.cycles = 0
		}
	case address == addr.STAT:
		// bits 0-2 are read-only (mode + coincidence), only interrupt
		// selectors and above are writable.
		g.stat = (g.stat & 0x07) | (value & 0x78)
	case address == addr.SCY:
		g.scy = value
	case address == addr.SCX:
		g.scx = value
	case address == addr.LY:
		// read-only on real hardware
	case address == addr.LYC:
		g.lyc = value
		g.setLY(g.ly)
	case address == addr.BGP:
		g.bgp = value
	case address == addr.OBP0:
		g.obp0 = value
	case address == addr.OBP1:
		g.obp1 = value
	case address == addr.WY:
		g.wy = value
	case address == addr.WX:
		g.wx = value
	}
}

// WriteOAM is the DMA copy target: the bus reads 160 bytes through its own
// address decoder and writes each one here, so the source can be ROM, VRAM
// or WRAM depending on the DMA source page.
func (g *GPU) WriteOAM(index int, value uint8) {
	if index >= 0 && index < len(g.oam) {
		g.oam[index] = value
	}
}

// ReadOAMByte exposes a raw OAM byte for the debugger/disassembler, with no
// mode gating.
func (g *GPU) ReadOAMByte(index int) uint8 {
	if index < 0 || index >= len(g.oam) {
		return 0xFF
	}
	return g.oam[index]
}
