package cpu

// cbOpcodeTable is the 256-entry CB-prefixed table, built algorithmically
// from the opcode's bit fields: bits 7-6 select the group (00 = rotate/
// shift, 01 = BIT, 10 = RES, 11 = SET), bits 5-3 select the sub-operation
// (rotate/shift kind, or the bit index for BIT/RES/SET), and bits 2-0
// select the register via the same ordering as the primary table.
var cbOpcodeTable [256]opcodeFunc

func init() {
	type shiftFn func(c *CPU, v uint8) uint8
	shiftOps := [8]shiftFn{
		(*CPU).rlc,
		(*CPU).rrc,
		(*CPU).rl,
		(*CPU).rr,
		(*CPU).sla,
		(*CPU).sra,
		(*CPU).swap,
		(*CPU).srl,
	}

	for op := 0; op < 256; op++ {
		group := (op >> 6) & 3
		sub := uint8((op >> 3) & 7)
		reg := reg8Order[op&7]

		cycles := 8
		if reg == regHLInd {
			cycles = 16
		}

		switch group {
		case 0:
			fn := shiftOps[sub]
			cbOpcodeTable[op] = func(c *CPU) int {
				result := fn(c, c.getReg8(reg))
				c.setZFromCBResult(result)
				c.setReg8(reg, result)
				return cycles
			}
		case 1: // BIT n,r
			n := sub
			readCycles := 8
			if reg == regHLInd {
				readCycles = 12
			}
			cbOpcodeTable[op] = func(c *CPU) int {
				c.bitTest(n, c.getReg8(reg))
				return readCycles
			}
		case 2: // RES n,r
			n := sub
			cbOpcodeTable[op] = func(c *CPU) int {
				c.setReg8(reg, resBit(n, c.getReg8(reg)))
				return cycles
			}
		default: // SET n,r
			n := sub
			cbOpcodeTable[op] = func(c *CPU) int {
				c.setReg8(reg, setBit(n, c.getReg8(reg)))
				return cycles
			}
		}
	}
}
