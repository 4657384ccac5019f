package serial

import (
	"testing"

	"github.com/corebound/dmgcore/dmg/addr"
	"github.com/stretchr/testify/assert"
)

func TestLogSink_ImmediateTransferCompletesAndFiresIRQ(t *testing.T) {
	fired := false
	s := NewLogSink(func() { fired = true })

	s.Write(addr.SB, 'A')
	s.Write(addr.SC, 0x81) // transfer start + internal clock

	assert.True(t, fired)
	assert.Equal(t, byte(0xFF), s.Read(addr.SB))
	assert.Zero(t, s.Read(addr.SC)&0x80)
}

func TestLogSink_RequiresBothStartAndInternalClockBits(t *testing.T) {
	fired := false
	s := NewLogSink(func() { fired = true })

	s.Write(addr.SB, 'A')
	s.Write(addr.SC, 0x80) // start bit only, no internal clock
	assert.False(t, fired)
}

func TestLogSink_FixedTimingDelaysCompletion(t *testing.T) {
	fired := false
	s := NewLogSink(func() { fired = true }, WithFixedTiming())

	s.Write(addr.SB, 'A')
	s.Write(addr.SC, 0x81)
	assert.False(t, fired, "fixed-timing transfer must not complete synchronously")

	s.Tick(8191)
	assert.False(t, fired)

	s.Tick(1)
	assert.True(t, fired)
}

func TestLogSink_ReadSCMasksUnusedBits(t *testing.T) {
	s := NewLogSink(func() {})
	s.Write(addr.SC, 0x01)
	assert.Equal(t, byte(0x7F), s.Read(addr.SC))
}

func TestLogSink_ResetClearsPendingTransfer(t *testing.T) {
	s := NewLogSink(func() {}, WithFixedTiming())
	s.Write(addr.SB, 'x')
	s.Write(addr.SC, 0x81)

	s.Reset()

	assert.Equal(t, byte(0x00), s.Read(addr.SB))
	s.Tick(8192) // should have no effect: transfer was cleared by Reset
}
