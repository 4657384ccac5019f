// Package memory holds the cartridge/MBC, timer and joypad devices that
// hang off the bus.
package memory

import (
	"strings"
	"unicode"
)

const (
	titleAddress          = 0x134
	titleLength           = 16
	cartridgeTypeAddress  = 0x147
	romSizeAddress        = 0x148
	ramSizeAddress        = 0x149
)

// cartType enumerates the header byte at 0x147 values the core recognizes.
// Anything else falls back to NoMBC, which is always a safe (if inaccurate)
// choice since it only ever reads the fixed 32KiB window.
type cartType uint8

const (
	ctROMOnly cartType = 0x00
	ctMBC1    cartType = 0x01
	ctMBC1RAM cartType = 0x02
	ctMBC1RAMBattery cartType = 0x03
)

// ramBankCounts maps the header's RAM size code (0149) to a bank count of
// 8KiB banks, per the published cartridge header layout.
var ramBankCounts = map[uint8]uint8{
	0x00: 0,
	0x01: 1, // unofficial 2KiB, rounds up to one bank
	0x02: 1,
	0x03: 4,
	0x04: 16,
	0x05: 8,
}

// Cartridge is a read-only view over a loaded ROM image plus the header
// metadata needed to pick an MBC implementation.
type Cartridge struct {
	data         []byte
	title        string
	cartType     cartType
	ramBankCount uint8
}

// NewCartridge returns an empty cartridge, useful only so the bus always has
// something to dispatch to before a ROM is loaded.
func NewCartridge() *Cartridge {
	return &Cartridge{data: make([]byte, 0x8000)}
}

// NewCartridgeWithData loads a ROM image and parses its header.
func NewCartridgeWithData(data []byte) *Cartridge {
	cart := &Cartridge{
		data: make([]byte, len(data)),
	}
	copy(cart.data, data)

	if len(data) > titleAddress+titleLength {
		cart.title = cleanTitle(data[titleAddress : titleAddress+titleLength])
	}
	if len(data) > cartridgeTypeAddress {
		cart.cartType = cartType(data[cartridgeTypeAddress])
	}
	if len(data) > ramSizeAddress {
		cart.ramBankCount = ramBankCounts[data[ramSizeAddress]]
	}

	return cart
}

// Title returns the cleaned-up cartridge title from the header.
func (c *Cartridge) Title() string {
	if c.title == "" {
		return "(Untitled)"
	}
	return c.title
}

// Data returns the raw ROM bytes; used by the disassembler and debugger.
func (c *Cartridge) Data() []byte {
	return c.data
}

func cleanTitle(raw []byte) string {
	runes := make([]rune, 0, len(raw))
	for _, b := range raw {
		r := rune(b)
		switch {
		case r == 0:
			continue
		case !unicode.IsPrint(r):
			r = '?'
		}
		runes = append(runes, r)
	}
	return strings.TrimSpace(string(runes))
}

// NewMBCFor builds the MBC implementation indicated by the cartridge header.
// Unrecognized cartridge types fall back to NoMBC (read-only ROM, latch-gated
// external RAM), which is the behavior spec.md describes as the baseline.
func NewMBCFor(cart *Cartridge) MBC {
	switch cart.cartType {
	case ctMBC1, ctMBC1RAM, ctMBC1RAMBattery:
		return NewMBC1(cart.data, cart.ramBankCount)
	default:
		return NewNoMBC(cart.data)
	}
}
