package dmg

import (
	"testing"

	"github.com/corebound/dmgcore/dmg/memory"
	"github.com/stretchr/testify/assert"
)

func TestNew_startsWithRunningDebuggerState(t *testing.T) {
	e := New()
	assert.Equal(t, DebuggerRunning, e.DebuggerState())
	assert.Zero(t, e.InstructionCount())
	assert.Zero(t, e.FrameCount())
}

func TestNewWithFile_missingPathReturnsWrappedError(t *testing.T) {
	e, err := NewWithFile("/nonexistent/rom.gb")
	assert.Nil(t, e)
	assert.Error(t, err)
}

func TestRunUntilFrame_pausedDoesNothing(t *testing.T) {
	e := New()
	e.SetDebuggerState(DebuggerPaused)
	e.RunUntilFrame()
	assert.Zero(t, e.InstructionCount())
}

func TestRunUntilFrame_stepOnlyAdvancesWhenRequested(t *testing.T) {
	e := New()
	e.SetDebuggerState(DebuggerStep)
	e.RunUntilFrame() // no step requested yet
	assert.Zero(t, e.InstructionCount())

	e.RequestStep()
	e.RunUntilFrame()
	assert.Equal(t, uint64(1), e.InstructionCount())
	assert.Equal(t, DebuggerPaused, e.DebuggerState())
}

func TestRunUntilFrame_frameStepPausesAfterOneFrame(t *testing.T) {
	e := New()
	e.RequestFrameStep()
	e.RunUntilFrame()
	assert.Equal(t, uint64(1), e.FrameCount())
	assert.Equal(t, DebuggerPaused, e.DebuggerState())
}

func TestRunUntilFrame_runningCompletesOneFrameWorthOfCycles(t *testing.T) {
	e := New()
	e.RunUntilFrame()
	assert.Equal(t, uint64(1), e.FrameCount())
	assert.Greater(t, e.InstructionCount(), uint64(0))
}

func TestHandleKeyPressAndRelease_reachJoypad(t *testing.T) {
	e := New()
	e.bus.Joypad().Write(0x10) // select buttons

	e.HandleKeyPress(memory.KeyA)
	pressed := e.bus.Joypad().Read()

	e.HandleKeyRelease(memory.KeyA)
	released := e.bus.Joypad().Read()

	assert.NotEqual(t, pressed, released)
}
