package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func stepWith(t *testing.T, program ...uint8) *CPU {
	t.Helper()
	bus := newFakeBus()
	copy(bus.mem[:], program)
	c := New(bus)
	c.Step()
	return c
}

func TestUndefinedOpcodes_areFourCycleNoOps(t *testing.T) {
	for _, op := range []uint8{0xD3, 0xDB, 0xE3, 0xF4, 0xFC} {
		bus := newFakeBus()
		bus.mem[0] = op
		c := New(bus)
		cycles := c.Step()
		assert.Equal(t, 4, cycles, "opcode %02X", op)
		assert.Equal(t, uint16(1), c.PC())
	}
}

func TestPushPopOpcodes(t *testing.T) {
	bus := newFakeBus()
	bus.mem[0] = 0x01 // LD BC,nn
	bus.mem[1] = 0x34
	bus.mem[2] = 0x12
	bus.mem[3] = 0xC5 // PUSH BC
	bus.mem[4] = 0xD1 // POP DE
	c := New(bus)
	c.sp = 0xFFFE

	c.Step()
	c.Step()
	c.Step()

	assert.Equal(t, uint16(0x1234), c.getDE())
}

func TestDIClearsIME(t *testing.T) {
	c := stepWith(t, 0xF3) // DI
	assert.False(t, c.IME())
}

func TestRSTPushesReturnAddress(t *testing.T) {
	bus := newFakeBus()
	bus.mem[0x50] = 0xFF // RST 38H
	c := New(bus)
	c.sp = 0xFFFE
	c.pc = 0x50

	c.Step()

	assert.Equal(t, uint16(0x38), c.PC())
	assert.Equal(t, uint16(0x51), c.pop())
}

func TestConditionalJR_notTaken(t *testing.T) {
	bus := newFakeBus()
	bus.mem[0] = 0x28 // JR Z,e
	bus.mem[1] = 0x05
	c := New(bus)
	c.setFlag(flagZ, false)

	cycles := c.Step()

	assert.Equal(t, 8, cycles)
	assert.Equal(t, uint16(2), c.PC())
}

func TestConditionalJR_taken(t *testing.T) {
	bus := newFakeBus()
	bus.mem[0] = 0x28 // JR Z,e
	bus.mem[1] = 0x05
	c := New(bus)
	c.setFlag(flagZ, true)

	cycles := c.Step()

	assert.Equal(t, 12, cycles)
	assert.Equal(t, uint16(7), c.PC())
}

func TestLDHAIndirect(t *testing.T) {
	bus := newFakeBus()
	bus.mem[0] = 0xF0 // LDH A,(n)
	bus.mem[1] = 0x80
	bus.mem[0xFF80] = 0x99
	c := New(bus)

	c.Step()

	assert.Equal(t, uint8(0x99), c.a)
}

func TestLDHLIncDec(t *testing.T) {
	bus := newFakeBus()
	bus.mem[0] = 0x22 // LD (HL+),A
	bus.mem[1] = 0x3A // LD A,(HL-)
	c := New(bus)
	c.a = 0x7F
	c.setHL(0xC100)

	c.Step()
	assert.Equal(t, uint16(0xC101), c.getHL())
	assert.Equal(t, uint8(0x7F), bus.mem[0xC100])

	c.a = 0
	c.Step()
	assert.Equal(t, uint8(0x7F), c.a)
	assert.Equal(t, uint16(0xC100), c.getHL())
}
