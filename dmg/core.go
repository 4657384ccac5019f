package dmg

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/corebound/dmgcore/dmg/cpu"
	"github.com/corebound/dmgcore/dmg/memory"
	"github.com/corebound/dmgcore/dmg/video"
)

// DebuggerState is the current run mode of the Emulator's main loop.
type DebuggerState int

const (
	DebuggerRunning DebuggerState = iota
	DebuggerPaused
	DebuggerStep
	DebuggerStepFrame
)

// cyclesPerFrame is the number of T-cycles in one 59.7Hz DMG frame
// (154 scanlines x 456 cycles).
const cyclesPerFrame = 70224

// Emulator is the root struct: one CPU driving one Bus, plus the debugger
// run-state a host frontend (terminal renderer, CLI) steps through.
type Emulator struct {
	cpu *cpu.CPU
	bus *Bus

	debuggerState    DebuggerState
	debuggerMutex    sync.RWMutex
	stepRequested    bool
	frameRequested   bool
	instructionCount uint64
	frameCount       uint64
}

// New returns an emulator with no cartridge loaded, equivalent to turning on
// a DMG with an empty cartridge slot.
func New() *Emulator {
	bus := NewBus()
	return &Emulator{
		cpu: cpu.New(bus),
		bus: bus,
	}
}

// NewWithFile returns an emulator with the ROM at path loaded as the
// cartridge.
func NewWithFile(path string) (*Emulator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dmg: reading cartridge: %w", err)
	}

	slog.Debug("loaded cartridge", "path", path, "size", len(data))

	e := New()
	e.bus.LoadCartridge(memory.NewCartridgeWithData(data))
	return e, nil
}

// LoadBootROM installs a boot image; without one, PC starts at 0x0000 with
// no overlay, which is also a valid (if unrealistic) power-on state.
func (e *Emulator) LoadBootROM(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("dmg: reading boot ROM: %w", err)
	}
	e.bus.LoadBootROM(data)
	return nil
}

// CPU exposes the CPU for the debugger and disassembler.
func (e *Emulator) CPU() *cpu.CPU { return e.cpu }

// Bus exposes the bus for the debugger.
func (e *Emulator) Bus() *Bus { return e.bus }

// FrameBuffer returns the GPU's current decoded frame.
func (e *Emulator) FrameBuffer() *video.FrameBuffer {
	return e.bus.GPU().FrameBuffer()
}

// HandleKeyPress forwards a button press to the joypad.
func (e *Emulator) HandleKeyPress(key memory.Key) {
	e.bus.Joypad().Press(key)
}

// HandleKeyRelease forwards a button release to the joypad.
func (e *Emulator) HandleKeyRelease(key memory.Key) {
	e.bus.Joypad().Release(key)
}

// SetDebuggerState changes the run mode.
func (e *Emulator) SetDebuggerState(state DebuggerState) {
	e.debuggerMutex.Lock()
	defer e.debuggerMutex.Unlock()
	e.debuggerState = state
}

// DebuggerState reports the current run mode.
func (e *Emulator) DebuggerState() DebuggerState {
	e.debuggerMutex.RLock()
	defer e.debuggerMutex.RUnlock()
	return e.debuggerState
}

// RequestStep arms a single-instruction step for the next RunUntilFrame call.
func (e *Emulator) RequestStep() {
	e.debuggerMutex.Lock()
	defer e.debuggerMutex.Unlock()
	e.stepRequested = true
	e.debuggerState = DebuggerStep
}

// RequestFrameStep arms a single-frame step for the next RunUntilFrame call.
func (e *Emulator) RequestFrameStep() {
	e.debuggerMutex.Lock()
	defer e.debuggerMutex.Unlock()
	e.frameRequested = true
	e.debuggerState = DebuggerStepFrame
}

// InstructionCount returns the number of instructions executed so far.
func (e *Emulator) InstructionCount() uint64 { return e.instructionCount }

// FrameCount returns the number of complete frames rendered so far.
func (e *Emulator) FrameCount() uint64 { return e.frameCount }

// RunUntilFrame advances the emulator according to the current debugger
// state: a full frame when running or frame-stepping, a single instruction
// when step-requested, or nothing when paused. Each call returns once its
// unit of work completes (or is declined because no step was requested).
func (e *Emulator) RunUntilFrame() {
	state := e.DebuggerState()

	switch state {
	case DebuggerPaused:
		return

	case DebuggerStep:
		e.debuggerMutex.Lock()
		requested := e.stepRequested
		e.stepRequested = false
		e.debuggerMutex.Unlock()
		if !requested {
			return
		}
		e.cpu.Step()
		e.instructionCount++
		e.SetDebuggerState(DebuggerPaused)

	case DebuggerStepFrame:
		e.debuggerMutex.Lock()
		requested := e.frameRequested
		e.frameRequested = false
		e.debuggerMutex.Unlock()
		if !requested {
			return
		}
		e.runFrame()
		e.SetDebuggerState(DebuggerPaused)

	default:
		e.runFrame()
	}
}

func (e *Emulator) runFrame() {
	total := 0
	for total < cyclesPerFrame {
		total += e.cpu.Step()
		e.instructionCount++
		if e.cpu.Stopped() {
			return
		}
	}
	e.frameCount++
}
