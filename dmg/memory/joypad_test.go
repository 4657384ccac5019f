package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoypad_AllReleasedByDefault(t *testing.T) {
	j := NewJoypad()
	j.Write(0x30) // neither select line active
	assert.Equal(t, uint8(0xFF), j.Read())
}

func TestJoypad_SelectButtons(t *testing.T) {
	j := NewJoypad()
	j.Press(KeyA)
	j.Write(0x10) // select buttons (bit 5 low)

	result := j.Read()
	assert.False(t, result&0x01 != 0) // A is bit 0, pressed -> reads 0
}

func TestJoypad_SelectDpad(t *testing.T) {
	j := NewJoypad()
	j.Press(KeyUp)
	j.Write(0x20) // select d-pad (bit 4 low)

	result := j.Read()
	assert.False(t, result&0x04 != 0) // Up is bit 2, pressed -> reads 0
}

func TestJoypad_PressTransitionFiresInterrupt(t *testing.T) {
	j := NewJoypad()
	j.Write(0x10) // buttons selected
	fired := false
	j.RequestInterrupt = func() { fired = true }

	transitioned := j.Press(KeyStart)

	assert.True(t, transitioned)
	assert.True(t, fired)
}

func TestJoypad_ReleaseRestoresBit(t *testing.T) {
	j := NewJoypad()
	j.Press(KeyB)
	j.Release(KeyB)
	j.Write(0x10)
	assert.Equal(t, uint8(0x0F), j.Read()&0x0F)
}
