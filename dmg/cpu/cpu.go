// Package cpu implements the Sharp LR35902 instruction interpreter: the
// register file, flag semantics, the primary and CB-prefixed opcode
// tables, and interrupt dispatch. It never touches a device directly; all
// memory access goes through the Bus interface, so the cpu package has no
// dependency on the bus, cartridge, GPU or timer packages.
package cpu

import "github.com/corebound/dmgcore/dmg/addr"

// Bus is the subset of bus behavior the CPU needs: byte-addressed
// read/write, and the ability to advance peripherals by a cycle count once
// an instruction has finished executing.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	Step(cycles int)
}

// Flag bit positions within F (the low nibble is always zero).
const (
	flagZ uint8 = 0x80
	flagN uint8 = 0x40
	flagH uint8 = 0x20
	flagC uint8 = 0x10
)

// CPU holds the full Z80-derived register file plus the small amount of
// control state (IME, halt/stop, the halt-bug one-shot) spec.md §3 and §4.6
// describe.
type CPU struct {
	a, f          uint8
	b, c          uint8
	d, e          uint8
	h, l          uint8
	sp, pc        uint16

	bus Bus

	ime      bool
	imeDelay int // EI schedules IME two Step() calls out; see interrupts.go

	halted  bool
	haltBug bool
	stopped bool

	lastOpcode uint8

	// OnStep, if set, is invoked between instructions with read-only access
	// to the CPU. It is the hook a host debugger attaches to; the debugger
	// REPL itself is an external collaborator.
	OnStep func(c *CPU)
}

// New returns a CPU wired to bus, with PC at 0x0000 (the start of the boot
// overlay) and all other state zeroed.
func New(bus Bus) *CPU {
	return &CPU{bus: bus}
}

// Stopped reports whether a STOP instruction has been executed.
func (c *CPU) Stopped() bool {
	return c.stopped
}

// PC returns the current program counter, for the debugger/disassembler.
func (c *CPU) PC() uint16 { return c.pc }

// SP returns the current stack pointer.
func (c *CPU) SP() uint16 { return c.sp }

// IME reports the interrupt master enable flag.
func (c *CPU) IME() bool { return c.ime }

// LastOpcode returns the most recently fetched instruction byte.
func (c *CPU) LastOpcode() uint8 { return c.lastOpcode }

// Registers returns the eight 8-bit registers in A,F,B,C,D,E,H,L order, for
// debugger/snapshot use.
func (c *CPU) Registers() [8]uint8 {
	return [8]uint8{c.a, c.f, c.b, c.c, c.d, c.e, c.h, c.l}
}

func (c *CPU) getFlag(mask uint8) bool {
	return c.f&mask != 0
}

func (c *CPU) setFlag(mask uint8, set bool) {
	if set {
		c.f |= mask
	} else {
		c.f &^= mask
	}
}

// fetch reads the byte at PC. It implements the HALT-bug one-shot: if the
// previous instruction was HALT executed with IME=0 and a pending
// interrupt, this fetch reads the byte after HALT without advancing PC, so
// the next fetch reads that same byte again.
func (c *CPU) fetch() uint8 {
	v := c.bus.Read(c.pc)
	if c.haltBug {
		c.haltBug = false
	} else {
		c.pc++
	}
	return v
}

// takeByte reads the immediate byte at PC and advances PC; always advances,
// unlike fetch (the halt bug only affects the opcode fetch itself).
func (c *CPU) takeByte() uint8 {
	v := c.bus.Read(c.pc)
	c.pc++
	return v
}

// takeSignedByte reads a signed 8-bit immediate.
func (c *CPU) takeSignedByte() int8 {
	return int8(c.takeByte())
}

// takeWord reads a little-endian 16-bit immediate.
func (c *CPU) takeWord() uint16 {
	low := c.takeByte()
	high := c.takeByte()
	return uint16(high)<<8 | uint16(low)
}

// Step executes exactly one instruction (or one cycle of interrupt
// dispatch, or one idle cycle while halted) and returns the T-cycles
// charged to the bus.
func (c *CPU) Step() int {
	if c.halted {
		if c.pendingInterrupts() != 0 {
			c.halted = false
		} else {
			c.bus.Step(4)
			return 4
		}
	}

	if cycles, dispatched := c.dispatchInterrupt(); dispatched {
		return cycles
	}

	opcode := c.fetch()
	c.lastOpcode = opcode

	var cycles int
	if opcode == 0xCB {
		cbOpcode := c.takeByte()
		cycles = cbOpcodeTable[cbOpcode](c)
	} else {
		cycles = opcodeTable[opcode](c)
	}

	c.bus.Step(cycles)
	c.advanceIME()

	if c.OnStep != nil {
		c.OnStep(c)
	}

	return cycles
}

func (c *CPU) pendingInterrupts() uint8 {
	return c.bus.Read(addr.IF) & c.bus.Read(addr.IE) & 0x1F
}
