package cpu

import "github.com/corebound/dmgcore/dmg/addr"

// advanceIME ticks the EI delay scheduled by the EI opcode. EI itself only
// arms imeDelay; IME becomes true after the instruction immediately
// following EI has completed, never during EI's own Step.
func (c *CPU) advanceIME() {
	if c.imeDelay == 0 {
		return
	}
	c.imeDelay--
	if c.imeDelay == 0 {
		c.ime = true
	}
}

// dispatchInterrupt services the highest-priority pending interrupt if IME
// is set. It reports the cycles charged and whether it actually dispatched,
// so Step can skip instruction fetch for this call.
func (c *CPU) dispatchInterrupt() (int, bool) {
	if !c.ime {
		return 0, false
	}

	pending := c.pendingInterrupts()
	if pending == 0 {
		return 0, false
	}

	var bitIdx uint8
	for bitIdx = 0; bitIdx < 5; bitIdx++ {
		if pending&(1<<bitIdx) != 0 {
			break
		}
	}

	ifReg := c.bus.Read(addr.IF)
	c.bus.Write(addr.IF, ifReg&^(1<<bitIdx))
	c.ime = false

	c.push(c.pc)
	c.pc = addr.VectorFor(bitIdx)

	c.bus.Step(20)
	return 20, true
}
