// Package dmg wires the CPU, video, memory and serial packages together
// into a complete Game Boy DMG core: the address-decoding Bus and the
// top-level Emulator that drives it instruction by instruction.
package dmg

import (
	"fmt"
	"log/slog"

	"github.com/corebound/dmgcore/dmg/addr"
	"github.com/corebound/dmgcore/dmg/memory"
	"github.com/corebound/dmgcore/dmg/serial"
	"github.com/corebound/dmgcore/dmg/video"
)

type memRegion uint8

const (
	regionBootOrROM memRegion = iota
	regionROM
	regionVRAM
	regionExtRAM
	regionWRAM
	regionEcho
	regionOAM
	regionUnused
	regionIO
	regionHRAM
)

// Bus is the DMG's full address decoder: it owns work RAM and high RAM
// directly, and dispatches everything else (cartridge, video, timer,
// joypad, serial, interrupt flags) to the device that owns that range.
type Bus struct {
	cart *memory.Cartridge
	mbc  memory.MBC
	gpu  *video.GPU

	timer  memory.Timer
	joypad *memory.Joypad
	serial serial.Port

	wram [0x2000]uint8
	hram [0x7F]uint8

	ifReg uint8
	ieReg uint8
	dma   uint8

	bootROM    [256]uint8
	bootLoaded bool
	bootActive bool

	regionMap [256]memRegion
}

// NewBus returns a bus with no cartridge loaded and the boot overlay
// disabled; load a boot ROM and a cartridge before running a CPU against it.
func NewBus() *Bus {
	b := &Bus{
		cart:   memory.NewCartridge(),
		gpu:    video.NewGPU(),
		joypad: memory.NewJoypad(),
	}
	b.mbc = memory.NewMBCFor(b.cart)
	b.serial = serial.NewLogSink(func() { b.RequestInterrupt(addr.SerialInterrupt) })
	b.timer.RequestInterrupt = func() { b.RequestInterrupt(addr.TimerInterrupt) }
	b.joypad.RequestInterrupt = func() { b.RequestInterrupt(addr.JoypadInterrupt) }
	b.gpu.RequestInterrupt = func(i addr.Interrupt) { b.RequestInterrupt(i) }
	b.initRegionMap()
	return b
}

func (b *Bus) initRegionMap() {
	for i := 0x00; i <= 0x7F; i++ {
		b.regionMap[i] = regionROM
	}
	for i := 0x80; i <= 0x9F; i++ {
		b.regionMap[i] = regionVRAM
	}
	for i := 0xA0; i <= 0xBF; i++ {
		b.regionMap[i] = regionExtRAM
	}
	for i := 0xC0; i <= 0xDF; i++ {
		b.regionMap[i] = regionWRAM
	}
	for i := 0xE0; i <= 0xFD; i++ {
		b.regionMap[i] = regionEcho
	}
	b.regionMap[0xFE] = regionOAM
	b.regionMap[0xFF] = regionIO
}

// LoadBootROM installs the 256-byte boot image and activates the overlay.
// A boot ROM shorter or longer than 256 bytes is a caller error; it is
// truncated/zero-padded rather than rejected, since this core has no error
// return path for construction-time mistakes.
func (b *Bus) LoadBootROM(data []byte) {
	n := copy(b.bootROM[:], data)
	if n < len(b.bootROM) {
		slog.Warn("boot ROM shorter than 256 bytes", "size", n)
	}
	b.bootLoaded = true
	b.bootActive = true
}

// LoadCartridge replaces the currently mapped cartridge and picks a fresh
// MBC for it.
func (b *Bus) LoadCartridge(cart *memory.Cartridge) {
	b.cart = cart
	b.mbc = memory.NewMBCFor(cart)
}

// GPU exposes the video subsystem for the render frontend and debugger.
func (b *Bus) GPU() *video.GPU { return b.gpu }

// Joypad exposes the input device for the render frontend.
func (b *Bus) Joypad() *memory.Joypad { return b.joypad }

// Cartridge exposes the loaded cartridge for the disassembler.
func (b *Bus) Cartridge() *memory.Cartridge { return b.cart }

// RequestInterrupt sets the matching IF bit.
func (b *Bus) RequestInterrupt(i addr.Interrupt) {
	b.ifReg |= uint8(i)
}

// Step advances every cycle-driven peripheral by the given T-cycle count.
// The CPU calls this once per instruction (or once per idle/interrupt
// cycle), so no peripheral ever double-counts a cycle.
func (b *Bus) Step(cycles int) {
	b.timer.Tick(cycles)
	b.serial.Tick(cycles)
	b.gpu.Tick(cycles)
}

// Read implements the cpu.Bus interface: it never returns an error, only
// degrading to 0xFF/0x00 on an unmapped or write-only address.
func (b *Bus) Read(address uint16) uint8 {
	if b.bootActive && address <= addr.BootROMEnd {
		return b.bootROM[address]
	}

	switch b.regionMap[address>>8] {
	case regionROM, regionExtRAM:
		return b.mbc.Read(address)
	case regionVRAM, regionOAM:
		return b.gpu.Read(address)
	case regionWRAM:
		return b.wram[address-addr.WRAMStart]
	case regionEcho:
		return b.wram[address-addr.EchoStart]
	case regionIO:
		return b.readIO(address)
	default:
		slog.Warn("read at unmapped address", "addr", fmt.Sprintf("0x%04X", address))
		return 0xFF
	}
}

func (b *Bus) readIO(address uint16) uint8 {
	switch {
	case address == addr.P1:
		return b.joypad.Read()
	case address == addr.SB || address == addr.SC:
		return b.serial.Read(address)
	case address == addr.DIV || address == addr.TIMA || address == addr.TMA || address == addr.TAC:
		return b.timer.Read(address)
	case address == addr.IF:
		return b.ifReg | 0xE0
	case address == addr.IE:
		return b.ieReg
	case address == addr.DMA:
		return b.dma
	case address >= addr.LCDC && address <= addr.WX:
		return b.gpu.Read(address)
	case address >= addr.HRAMStart && address <= addr.HRAMEnd:
		return b.hram[address-addr.HRAMStart]
	case address >= addr.AudioStart && address <= addr.AudioEnd:
		return 0xFF
	default:
		return 0xFF
	}
}

// Write implements the cpu.Bus interface.
func (b *Bus) Write(address uint16, value uint8) {
	switch b.regionMap[address>>8] {
	case regionROM, regionExtRAM:
		b.mbc.Write(address, value)
	case regionVRAM, regionOAM:
		b.gpu.Write(address, value)
	case regionWRAM:
		b.wram[address-addr.WRAMStart] = value
	case regionEcho:
		b.wram[address-addr.EchoStart] = value
	case regionIO:
		b.writeIO(address, value)
	default:
		slog.Warn("write at unmapped address", "addr", fmt.Sprintf("0x%04X", address), "value", fmt.Sprintf("0x%02X", value))
	}
}

func (b *Bus) writeIO(address uint16, value uint8) {
	switch {
	case address == addr.P1:
		b.joypad.Write(value)
	case address == addr.SB || address == addr.SC:
		b.serial.Write(address, value)
	case address == addr.DIV || address == addr.TIMA || address == addr.TMA || address == addr.TAC:
		b.timer.Write(address, value)
	case address == addr.IF:
		b.ifReg = value & 0x1F
	case address == addr.IE:
		b.ieReg = value
	case address == addr.DMA:
		b.dma = value
		b.performDMA(value)
	case address == addr.BootOff:
		b.bootActive = false
	case address >= addr.LCDC && address <= addr.WX:
		b.gpu.Write(address, value)
	case address >= addr.HRAMStart && address <= addr.HRAMEnd:
		b.hram[address-addr.HRAMStart] = value
	case address >= addr.AudioStart && address <= addr.AudioEnd:
		// stubbed per spec.md's non-goals; accepted and discarded
	}
}

// performDMA copies 160 bytes from (value<<8) through the normal Read path
// into OAM, matching real hardware's OAM DMA.
func (b *Bus) performDMA(value uint8) {
	source := uint16(value) << 8
	for i := 0; i < 160; i++ {
		b.gpu.WriteOAM(i, b.Read(source+uint16(i)))
	}
}
