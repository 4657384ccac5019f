package memory

// MBC is the interface the bus drives for the entire cartridge ROM
// (0x0000-0x7FFF) and external RAM (0xA000-0xBFFF) address ranges. No
// implementation returns an error: invalid accesses degrade silently, per
// spec.md's error-handling design.
type MBC interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// NoMBC is the baseline controller spec.md §4.1 describes: a flat ROM image
// plus a RAM-enable latch gating a fixed 8KiB external RAM window. No bank
// switching. Writes to the ROM range are otherwise ignored.
type NoMBC struct {
	rom        []uint8
	ram        [0x2000]uint8
	ramEnabled bool
}

// NewNoMBC wraps a ROM image with no banking behavior.
func NewNoMBC(rom []uint8) *NoMBC {
	return &NoMBC{rom: rom}
}

func (m *NoMBC) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x7FFF:
		if int(addr) < len(m.rom) {
			return m.rom[addr]
		}
		return 0
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled {
			return 0
		}
		return m.ram[addr-0xA000]
	default:
		return 0
	}
}

func (m *NoMBC) Write(addr uint16, value uint8) {
	switch {
	case addr <= 0x1FFF:
		m.ramEnabled = (value & 0x0F) == 0x0A
	case addr >= 0xA000 && addr <= 0xBFFF:
		if m.ramEnabled {
			m.ram[addr-0xA000] = value
		}
	default:
		// Other ROM-range writes are MBC control on real banked carts;
		// NoMBC has no banking state, so they're silently ignored.
	}
}

// MBC1 is the first and most common banking chip: a switchable 16KiB ROM
// bank at 0x4000-0x7FFF and an optional switchable 8KiB RAM bank, gated by
// the same RAM-enable latch as NoMBC. Grounded on the teacher's MBC1.
type MBC1 struct {
	rom []uint8
	ram []uint8

	ramEnabled  bool
	romBank     uint8
	ramBank     uint8
	bankingMode uint8 // 0 = ROM banking mode, 1 = RAM banking mode
}

// NewMBC1 creates an MBC1 controller with the given ROM image and RAM bank
// count (each bank 8KiB).
func NewMBC1(rom []uint8, ramBankCount uint8) *MBC1 {
	return &MBC1{
		rom:     rom,
		ram:     make([]uint8, int(ramBankCount)*0x2000),
		romBank: 1,
	}
}

func (m *MBC1) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x3FFF:
		return m.readROM(0, addr)
	case addr <= 0x7FFF:
		return m.readROM(m.effectiveROMBank(), addr-0x4000)
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		offset := m.effectiveRAMBank() * 0x2000
		return m.ram[(offset+int(addr-0xA000))%len(m.ram)]
	default:
		return 0
	}
}

func (m *MBC1) Write(addr uint16, value uint8) {
	switch {
	case addr <= 0x1FFF:
		m.ramEnabled = (value & 0x0F) == 0x0A
	case addr <= 0x3FFF:
		bank := value & 0x1F
		if bank == 0 {
			bank = 1
		}
		m.romBank = bank
	case addr <= 0x5FFF:
		m.ramBank = value & 0x03
	case addr <= 0x7FFF:
		m.bankingMode = value & 0x01
	case addr >= 0xA000 && addr <= 0xBFFF:
		if m.ramEnabled && len(m.ram) > 0 {
			offset := m.effectiveRAMBank() * 0x2000
			m.ram[(offset+int(addr-0xA000))%len(m.ram)] = value
		}
	}
}

// effectiveROMBank applies the upper two ram/rom-select bits when in ROM
// banking mode. The bank-0 quirk (bank register of 0 reads as 1) is applied
// when the bank register is written, so romBank is never 0 here.
func (m *MBC1) effectiveROMBank() int {
	bank := int(m.romBank)
	if m.bankingMode == 0 {
		bank |= int(m.ramBank) << 5
	}
	return bank
}

func (m *MBC1) effectiveRAMBank() int {
	if m.bankingMode == 1 {
		return int(m.ramBank)
	}
	return 0
}

func (m *MBC1) readROM(bank int, offset uint16) uint8 {
	addr := bank*0x4000 + int(offset)
	if addr < 0 || addr >= len(m.rom) {
		return 0
	}
	return m.rom[addr]
}
