// Package debug provides read-only introspection for a running core: a
// point-in-time register/flag snapshot and a memory reader interface, so a
// host debugger never needs write access to poke at emulator state.
package debug

import "fmt"

// MemoryReader is read-only access to bus-mapped memory, decoupling debug
// tools from the bus implementation. Grounded on the teacher's
// debug.MemoryReader.
type MemoryReader interface {
	Read(address uint16) uint8
}

// Registers mirrors cpu.CPU's eight 8-bit registers in A,F,B,C,D,E,H,L
// order.
type Registers struct {
	A, F, B, C, D, E, H, L uint8
}

// CPUProvider is the subset of cpu.CPU a snapshot needs, so this package
// never imports the cpu package directly.
type CPUProvider interface {
	PC() uint16
	SP() uint16
	IME() bool
	LastOpcode() uint8
	Registers() [8]uint8
}

// Snapshot is a frozen view of CPU state at one instant, taken between
// instructions via CPU.OnStep.
type Snapshot struct {
	Registers  Registers
	PC, SP     uint16
	IME        bool
	LastOpcode uint8
}

// Take captures a snapshot from a running CPU.
func Take(c CPUProvider) Snapshot {
	r := c.Registers()
	return Snapshot{
		Registers:  Registers{A: r[0], F: r[1], B: r[2], C: r[3], D: r[4], E: r[5], H: r[6], L: r[7]},
		PC:         c.PC(),
		SP:         c.SP(),
		IME:        c.IME(),
		LastOpcode: c.LastOpcode(),
	}
}

// Flags decodes the Z/N/H/C bits of F into a readable string, e.g. "Z-HC".
func (s Snapshot) Flags() string {
	flag := func(mask uint8, set, unset byte) byte {
		if s.Registers.F&mask != 0 {
			return set
		}
		return unset
	}
	return string([]byte{
		flag(0x80, 'Z', '-'),
		flag(0x40, 'N', '-'),
		flag(0x20, 'H', '-'),
		flag(0x10, 'C', '-'),
	})
}

func (s Snapshot) String() string {
	return fmt.Sprintf("PC=%04X SP=%04X AF=%02X%02X BC=%02X%02X DE=%02X%02X HL=%02X%02X %s IME=%v op=%02X",
		s.PC, s.SP,
		s.Registers.A, s.Registers.F,
		s.Registers.B, s.Registers.C,
		s.Registers.D, s.Registers.E,
		s.Registers.H, s.Registers.L,
		s.Flags(), s.IME, s.LastOpcode)
}
