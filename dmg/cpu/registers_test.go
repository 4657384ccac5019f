package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAF_masksLowNibbleOfF(t *testing.T) {
	c := newTestCPU()
	c.setAF(0x12FF)
	assert.Equal(t, uint8(0x12), c.a)
	assert.Equal(t, uint8(0xF0), c.f)
	assert.Equal(t, uint16(0x12F0), c.getAF())
}

func TestBCDEHL_roundTrip(t *testing.T) {
	c := newTestCPU()
	c.setBC(0x1234)
	c.setDE(0x5678)
	c.setHL(0x9ABC)
	assert.Equal(t, uint16(0x1234), c.getBC())
	assert.Equal(t, uint16(0x5678), c.getDE())
	assert.Equal(t, uint16(0x9ABC), c.getHL())
}

func TestReg8_HLIndirectRoutesThroughBus(t *testing.T) {
	c := newTestCPU()
	c.setHL(0xC000)
	c.setReg8(regHLInd, 0x42)
	assert.Equal(t, uint8(0x42), c.bus.Read(0xC000))
	assert.Equal(t, uint8(0x42), c.getReg8(regHLInd))
}

func TestPushPop_roundTrip(t *testing.T) {
	c := newTestCPU()
	c.sp = 0xFFFE
	c.push(0xBEEF)
	assert.Equal(t, uint16(0xFFFC), c.sp)
	assert.Equal(t, uint16(0xBEEF), c.pop())
	assert.Equal(t, uint16(0xFFFE), c.sp)
}

func TestCheckCondition(t *testing.T) {
	c := newTestCPU()
	c.setFlag(flagZ, true)
	c.setFlag(flagC, false)

	assert.True(t, c.checkCondition(condZ))
	assert.False(t, c.checkCondition(condNZ))
	assert.True(t, c.checkCondition(condNC))
	assert.False(t, c.checkCondition(condC))
}
