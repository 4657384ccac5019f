package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCB_BitTest(t *testing.T) {
	bus := newFakeBus()
	bus.mem[0] = 0xCB
	bus.mem[1] = 0x7F // BIT 7,A
	c := New(bus)
	c.a = 0x00

	cycles := c.Step()

	assert.Equal(t, 8, cycles)
	assert.True(t, c.getFlag(flagZ))
	assert.Equal(t, uint16(2), c.PC())
}

func TestCB_BitTest_HLIndirectCosts12(t *testing.T) {
	bus := newFakeBus()
	bus.mem[0] = 0xCB
	bus.mem[1] = 0x46 // BIT 0,(HL)
	c := New(bus)
	c.setHL(0xC000)
	bus.mem[0xC000] = 0x01

	cycles := c.Step()

	assert.Equal(t, 12, cycles)
	assert.False(t, c.getFlag(flagZ))
}

func TestCB_SetBit(t *testing.T) {
	bus := newFakeBus()
	bus.mem[0] = 0xCB
	bus.mem[1] = 0xC7 // SET 0,A
	c := New(bus)

	c.Step()

	assert.Equal(t, uint8(0x01), c.a)
}

func TestCB_ResBit(t *testing.T) {
	bus := newFakeBus()
	bus.mem[0] = 0xCB
	bus.mem[1] = 0x87 // RES 0,A
	c := New(bus)
	c.a = 0xFF

	c.Step()

	assert.Equal(t, uint8(0xFE), c.a)
}

func TestCB_SRL_setsZAndC(t *testing.T) {
	bus := newFakeBus()
	bus.mem[0] = 0xCB
	bus.mem[1] = 0x3F // SRL A
	c := New(bus)
	c.a = 0x01

	c.Step()

	assert.Equal(t, uint8(0), c.a)
	assert.True(t, c.getFlag(flagZ))
	assert.True(t, c.getFlag(flagC))
}

func TestCB_SWAPViaHL_costs16(t *testing.T) {
	bus := newFakeBus()
	bus.mem[0] = 0xCB
	bus.mem[1] = 0x36 // SWAP (HL)
	c := New(bus)
	c.setHL(0xC000)
	bus.mem[0xC000] = 0xA5

	cycles := c.Step()

	assert.Equal(t, 16, cycles)
	assert.Equal(t, uint8(0x5A), bus.mem[0xC000])
}
