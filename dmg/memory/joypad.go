package memory

import "github.com/corebound/dmgcore/dmg/bit"

// Key identifies one of the eight DMG joypad inputs.
type Key uint8

const (
	KeyRight Key = iota
	KeyLeft
	KeyUp
	KeyDown
	KeyA
	KeyB
	KeySelect
	KeyStart
)

// Joypad models the P1 (0xFF00) register: two select lines chosen by the
// bus/CPU and two 4-bit button matrices, read back active-low. Grounded on
// the teacher's updateJoypadRegister/writeJoypad logic in memory/mem.go.
type Joypad struct {
	selectButtons bool // bit 5 written low: buttons (Start/Select/B/A) selected
	selectDpad    bool // bit 4 written low: directions selected

	buttons uint8 // bits 3-0: Start,Select,B,A - 1 = released
	dpad    uint8 // bits 3-0: Down,Up,Left,Right - 1 = released

	// RequestInterrupt is invoked on any button press transition
	// (released -> pressed), matching real hardware's P10-P13 edge logic.
	RequestInterrupt func()
}

// NewJoypad returns a joypad with all eight buttons released.
func NewJoypad() *Joypad {
	return &Joypad{buttons: 0x0F, dpad: 0x0F}
}

// Read returns the current P1 byte. Bits 6-7 always read high; the select
// lines are active-low, so a selected group reads back with its bit
// clear; the selected matrix (or the AND of both, or all released if
// neither select bit is set) occupies the low nibble.
func (j *Joypad) Read() uint8 {
	result := uint8(0xC0)
	if !j.selectButtons {
		result |= 0x20
	}
	if !j.selectDpad {
		result |= 0x10
	}

	switch {
	case j.selectButtons && j.selectDpad:
		result |= j.buttons & j.dpad & 0x0F
	case j.selectButtons:
		result |= j.buttons & 0x0F
	case j.selectDpad:
		result |= j.dpad & 0x0F
	default:
		result |= 0x0F
	}

	return result
}

// Write updates only the two select bits; the low nibble is read-only from
// the CPU's perspective. The select lines are active-low: a bit written 0
// selects that group.
func (j *Joypad) Write(value uint8) {
	j.selectButtons = !bit.IsSet(5, value)
	j.selectDpad = !bit.IsSet(4, value)
}

// Press marks a key as held. It returns true, and calls RequestInterrupt,
// when the press changes the low nibble of P1: the key was released and its
// group is currently selected. A press in an unselected group returns false.
func (j *Joypad) Press(key Key) bool {
	before := j.Read()
	switch key {
	case KeyRight:
		j.dpad = bit.Reset(0, j.dpad)
	case KeyLeft:
		j.dpad = bit.Reset(1, j.dpad)
	case KeyUp:
		j.dpad = bit.Reset(2, j.dpad)
	case KeyDown:
		j.dpad = bit.Reset(3, j.dpad)
	case KeyA:
		j.buttons = bit.Reset(0, j.buttons)
	case KeyB:
		j.buttons = bit.Reset(1, j.buttons)
	case KeySelect:
		j.buttons = bit.Reset(2, j.buttons)
	case KeyStart:
		j.buttons = bit.Reset(3, j.buttons)
	}
	transitioned := before&0x0F != j.Read()&0x0F
	if transitioned && j.RequestInterrupt != nil {
		j.RequestInterrupt()
	}
	return transitioned
}

// Release marks a key as no longer held.
func (j *Joypad) Release(key Key) {
	switch key {
	case KeyRight:
		j.dpad = bit.Set(0, j.dpad)
	case KeyLeft:
		j.dpad = bit.Set(1, j.dpad)
	case KeyUp:
		j.dpad = bit.Set(2, j.dpad)
	case KeyDown:
		j.dpad = bit.Set(3, j.dpad)
	case KeyA:
		j.buttons = bit.Set(0, j.buttons)
	case KeyB:
		j.buttons = bit.Set(1, j.buttons)
	case KeySelect:
		j.buttons = bit.Set(2, j.buttons)
	case KeyStart:
		j.buttons = bit.Set(3, j.buttons)
	}
}
