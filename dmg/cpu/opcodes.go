package cpu

// opcodeFunc executes one primary-table instruction (the opcode byte has
// already been fetched) and returns the T-cycles it consumed.
type opcodeFunc func(c *CPU) int

// opcodeTable is built once at init time: most of the table is regular
// enough to generate from the opcode's bit fields (the real LR35902
// encoding groups LD r,r' / ALU A,r / INC/DEC r8 / 16-bit ops / PUSH-POP /
// RST / conditional branches this way), and only the irregular rows are
// written out by hand.
var opcodeTable [256]opcodeFunc

// reg8Order is the register ordering used by bits 2-0 (source) and bits 5-3
// (destination) of the regular opcode blocks.
var reg8Order = [8]reg8{regB, regC, regD, regE, regH, regL, regHLInd, regA}

// reg16Order is the register-pair ordering used by bits 5-4 of the 16-bit
// LD/INC/DEC/ADD HL blocks.
var reg16Order = [4]reg16{regBC, regDE, regHL, regSP}

// stackReg16Order is the register-pair ordering used by bits 5-4 of
// PUSH/POP.
var stackReg16Order = [4]stackReg16{stackBC, stackDE, stackHL, stackAF}

// conditionOrder is the branch-condition ordering used by bits 4-3 of
// conditional JR/JP/CALL/RET.
var conditionOrder = [4]condition{condNZ, condZ, condNC, condC}

func init() {
	buildLDRegToReg()
	buildALUOps()
	buildIncDecReg8()
	buildLDRegImmediate()
	build16BitOps()
	buildStackOps()
	buildRSTOps()
	buildConditionalBranches()
	buildSpecialOpcodes()
	buildUndefinedOpcodes()
}

// buildLDRegToReg fills 0x40-0x7F (except 0x76 = HALT) with LD r,r'.
func buildLDRegToReg() {
	for op := 0x40; op <= 0x7F; op++ {
		if op == 0x76 {
			continue
		}
		dst := reg8Order[(op>>3)&7]
		src := reg8Order[op&7]
		cycles := 4
		if dst == regHLInd || src == regHLInd {
			cycles = 8
		}
		opcodeTable[op] = func(c *CPU) int {
			c.setReg8(dst, c.getReg8(src))
			return cycles
		}
	}
}

// buildALUOps fills 0x80-0xBF with ADD/ADC/SUB/SBC/AND/XOR/OR/CP A,r.
func buildALUOps() {
	type aluFn func(c *CPU, v uint8)
	ops := [8]aluFn{
		func(c *CPU, v uint8) { c.add(v) },
		func(c *CPU, v uint8) { c.adc(v) },
		func(c *CPU, v uint8) { c.a = c.sub(v) },
		func(c *CPU, v uint8) { c.sbc(v) },
		func(c *CPU, v uint8) { c.and(v) },
		func(c *CPU, v uint8) { c.xor(v) },
		func(c *CPU, v uint8) { c.or(v) },
		func(c *CPU, v uint8) { c.cp(v) },
	}
	for op := 0x80; op <= 0xBF; op++ {
		fn := ops[(op>>3)&7]
		src := reg8Order[op&7]
		cycles := 4
		if src == regHLInd {
			cycles = 8
		}
		opcodeTable[op] = func(c *CPU) int {
			fn(c, c.getReg8(src))
			return cycles
		}
	}

	// The immediate forms (0xC6,0xCE,0xD6,0xDE,0xE6,0xEE,0xF6,0xFE) reuse the
	// same op table, indexed by bits 5-3 of the immediate opcode.
	immOps := [8]uint8{0xC6, 0xCE, 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE}
	for i, op := range immOps {
		fn := ops[i]
		opcodeTable[op] = func(c *CPU) int {
			fn(c, c.takeByte())
			return 8
		}
	}
}

// buildIncDecReg8 fills the regular INC r / DEC r rows at column 4/5 of
// each 8-register block (0x04,0x0C,0x14,...,0x3C and the DEC equivalents).
func buildIncDecReg8() {
	for i, r := range reg8Order {
		reg := r
		incOp := uint8(0x04 + i*8)
		decOp := uint8(0x05 + i*8)
		cycles := 4
		if reg == regHLInd {
			cycles = 12
		}
		opcodeTable[incOp] = func(c *CPU) int {
			c.inc8(reg)
			return cycles
		}
		opcodeTable[decOp] = func(c *CPU) int {
			c.dec8(reg)
			return cycles
		}
	}
}

// buildLDRegImmediate fills LD r,n at column 6 of each 8-register block.
func buildLDRegImmediate() {
	for i, r := range reg8Order {
		reg := r
		op := uint8(0x06 + i*8)
		cycles := 8
		if reg == regHLInd {
			cycles = 12
		}
		opcodeTable[op] = func(c *CPU) int {
			c.setReg8(reg, c.takeByte())
			return cycles
		}
	}
}

// build16BitOps fills LD rr,nn / INC rr / DEC rr / ADD HL,rr, one row per
// register pair at 0x01/0x03/0x09/0x0B plus 0x10 per pair.
func build16BitOps() {
	for i, r := range reg16Order {
		reg := r
		base := uint8(i * 0x10)
		ldOp := base + 0x01
		incOp := base + 0x03
		addOp := base + 0x09
		decOp := base + 0x0B

		opcodeTable[ldOp] = func(c *CPU) int {
			c.setReg16(reg, c.takeWord())
			return 12
		}
		opcodeTable[incOp] = func(c *CPU) int {
			c.setReg16(reg, c.getReg16(reg)+1)
			return 8
		}
		opcodeTable[addOp] = func(c *CPU) int {
			c.addHL(c.getReg16(reg))
			return 8
		}
		opcodeTable[decOp] = func(c *CPU) int {
			c.setReg16(reg, c.getReg16(reg)-1)
			return 8
		}
	}
}

// buildStackOps fills PUSH/POP at 0xC1/0xC5,0xD1/0xD5,0xE1/0xE5,0xF1/0xF5.
func buildStackOps() {
	for i, r := range stackReg16Order {
		reg := r
		base := uint8(0xC0 + i*0x10)
		popOp := base + 0x01
		pushOp := base + 0x05

		opcodeTable[popOp] = func(c *CPU) int {
			c.setStackReg16(reg, c.pop())
			return 12
		}
		opcodeTable[pushOp] = func(c *CPU) int {
			c.push(c.getStackReg16(reg))
			return 16
		}
	}
}

// buildRSTOps fills the eight RST vectors at 0xC7,0xCF,...,0xFF.
func buildRSTOps() {
	for i := 0; i < 8; i++ {
		target := uint16(i * 8)
		op := uint8(0xC7 + i*8)
		opcodeTable[op] = func(c *CPU) int {
			c.push(c.pc)
			c.pc = target
			return 16
		}
	}
}

// buildConditionalBranches fills conditional JR/JP/CALL/RET. Cycle counts
// branch on whether the condition held.
func buildConditionalBranches() {
	for i, cc := range conditionOrder {
		cond := cc
		jrOp := uint8(0x20 + i*8)
		jpOp := uint8(0xC2 + i*8)
		callOp := uint8(0xC4 + i*8)
		retOp := uint8(0xC0 + i*8)

		opcodeTable[jrOp] = func(c *CPU) int {
			offset := c.takeSignedByte()
			if c.checkCondition(cond) {
				c.pc = uint16(int32(c.pc) + int32(offset))
				return 12
			}
			return 8
		}
		opcodeTable[jpOp] = func(c *CPU) int {
			target := c.takeWord()
			if c.checkCondition(cond) {
				c.pc = target
				return 16
			}
			return 12
		}
		opcodeTable[callOp] = func(c *CPU) int {
			target := c.takeWord()
			if c.checkCondition(cond) {
				c.push(c.pc)
				c.pc = target
				return 24
			}
			return 12
		}
		opcodeTable[retOp] = func(c *CPU) int {
			if c.checkCondition(cond) {
				c.pc = c.pop()
				return 20
			}
			return 8
		}
	}
}

// buildUndefinedOpcodes fills the 11 real opcode bytes with no defined
// behavior on the LR35902; real hardware locks up, but this core treats
// them as 4-cycle no-ops so a ROM that stumbles into one keeps running.
func buildUndefinedOpcodes() {
	undefined := []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD}
	for _, op := range undefined {
		opcodeTable[op] = func(c *CPU) int { return 4 }
	}
}

// buildSpecialOpcodes writes out every row too irregular to generate.
func buildSpecialOpcodes() {
	opcodeTable[0x00] = func(c *CPU) int { return 4 } // NOP

	opcodeTable[0x10] = func(c *CPU) int { // STOP
		c.takeByte() // STOP is followed by a padding byte on real hardware
		c.stopped = true
		return 4
	}

	opcodeTable[0x76] = func(c *CPU) int { // HALT
		if !c.ime && c.pendingInterrupts() != 0 {
			c.haltBug = true
		} else {
			c.halted = true
		}
		return 4
	}

	opcodeTable[0x07] = func(c *CPU) int { // RLCA
		c.a = c.rlc(c.a)
		c.setFlag(flagZ, false)
		return 4
	}
	opcodeTable[0x17] = func(c *CPU) int { // RLA
		c.a = c.rl(c.a)
		c.setFlag(flagZ, false)
		return 4
	}
	opcodeTable[0x0F] = func(c *CPU) int { // RRCA
		c.a = c.rrc(c.a)
		c.setFlag(flagZ, false)
		return 4
	}
	opcodeTable[0x1F] = func(c *CPU) int { // RRA
		c.a = c.rr(c.a)
		c.setFlag(flagZ, false)
		return 4
	}

	opcodeTable[0x27] = func(c *CPU) int { c.daa(); return 4 } // DAA
	opcodeTable[0x2F] = func(c *CPU) int { // CPL
		c.a = ^c.a
		c.setFlag(flagN, true)
		c.setFlag(flagH, true)
		return 4
	}
	opcodeTable[0x37] = func(c *CPU) int { // SCF
		c.setFlag(flagN, false)
		c.setFlag(flagH, false)
		c.setFlag(flagC, true)
		return 4
	}
	opcodeTable[0x3F] = func(c *CPU) int { // CCF
		c.setFlag(flagN, false)
		c.setFlag(flagH, false)
		c.setFlag(flagC, !c.getFlag(flagC))
		return 4
	}

	opcodeTable[0x08] = func(c *CPU) int { // LD (nn),SP
		target := c.takeWord()
		c.bus.Write(target, uint8(c.sp))
		c.bus.Write(target+1, uint8(c.sp>>8))
		return 20
	}

	opcodeTable[0x18] = func(c *CPU) int { // JR e
		offset := c.takeSignedByte()
		c.pc = uint16(int32(c.pc) + int32(offset))
		return 12
	}

	opcodeTable[0xC3] = func(c *CPU) int { c.pc = c.takeWord(); return 16 } // JP nn
	opcodeTable[0xE9] = func(c *CPU) int { c.pc = c.getHL(); return 4 }     // JP (HL)
	opcodeTable[0xCD] = func(c *CPU) int { // CALL nn
		target := c.takeWord()
		c.push(c.pc)
		c.pc = target
		return 24
	}
	opcodeTable[0xC9] = func(c *CPU) int { c.pc = c.pop(); return 16 } // RET
	opcodeTable[0xD9] = func(c *CPU) int {                             // RETI
		c.pc = c.pop()
		c.ime = true
		return 16
	}

	opcodeTable[0xE0] = func(c *CPU) int { // LDH (n),A
		offset := c.takeByte()
		c.bus.Write(0xFF00+uint16(offset), c.a)
		return 12
	}
	opcodeTable[0xF0] = func(c *CPU) int { // LDH A,(n)
		offset := c.takeByte()
		c.a = c.bus.Read(0xFF00 + uint16(offset))
		return 12
	}
	opcodeTable[0xE2] = func(c *CPU) int { // LD (C),A
		c.bus.Write(0xFF00+uint16(c.c), c.a)
		return 8
	}
	opcodeTable[0xF2] = func(c *CPU) int { // LD A,(C)
		c.a = c.bus.Read(0xFF00 + uint16(c.c))
		return 8
	}
	opcodeTable[0xEA] = func(c *CPU) int { // LD (nn),A
		c.bus.Write(c.takeWord(), c.a)
		return 16
	}
	opcodeTable[0xFA] = func(c *CPU) int { // LD A,(nn)
		c.a = c.bus.Read(c.takeWord())
		return 16
	}

	opcodeTable[0x02] = func(c *CPU) int { c.bus.Write(c.getBC(), c.a); return 8 } // LD (BC),A
	opcodeTable[0x12] = func(c *CPU) int { c.bus.Write(c.getDE(), c.a); return 8 } // LD (DE),A
	opcodeTable[0x0A] = func(c *CPU) int { c.a = c.bus.Read(c.getBC()); return 8 } // LD A,(BC)
	opcodeTable[0x1A] = func(c *CPU) int { c.a = c.bus.Read(c.getDE()); return 8 } // LD A,(DE)

	opcodeTable[0x22] = func(c *CPU) int { // LD (HL+),A
		c.bus.Write(c.getHL(), c.a)
		c.setHL(c.getHL() + 1)
		return 8
	}
	opcodeTable[0x32] = func(c *CPU) int { // LD (HL-),A
		c.bus.Write(c.getHL(), c.a)
		c.setHL(c.getHL() - 1)
		return 8
	}
	opcodeTable[0x2A] = func(c *CPU) int { // LD A,(HL+)
		c.a = c.bus.Read(c.getHL())
		c.setHL(c.getHL() + 1)
		return 8
	}
	opcodeTable[0x3A] = func(c *CPU) int { // LD A,(HL-)
		c.a = c.bus.Read(c.getHL())
		c.setHL(c.getHL() - 1)
		return 8
	}

	opcodeTable[0xF9] = func(c *CPU) int { c.sp = c.getHL(); return 8 } // LD SP,HL

	opcodeTable[0xE8] = func(c *CPU) int { // ADD SP,e
		c.sp = c.addSPOffset(c.takeSignedByte())
		return 16
	}
	opcodeTable[0xF8] = func(c *CPU) int { // LD HL,SP+e
		c.setHL(c.addSPOffset(c.takeSignedByte()))
		return 12
	}

	opcodeTable[0xF3] = func(c *CPU) int { c.ime = false; c.imeDelay = 0; return 4 } // DI
	opcodeTable[0xFB] = func(c *CPU) int { c.imeDelay = 2; return 4 }                // EI
}
