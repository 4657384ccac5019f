// Package render implements a tcell-based terminal frontend: it blits the
// core's framebuffer as block characters, forwards keys to the joypad, and
// shows a small register/disassembly panel alongside.
package render

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/corebound/dmgcore/dmg"
	"github.com/corebound/dmgcore/dmg/debug"
	"github.com/corebound/dmgcore/dmg/disasm"
	"github.com/corebound/dmgcore/dmg/memory"
	"github.com/corebound/dmgcore/dmg/timing"
	"github.com/corebound/dmgcore/dmg/video"
)

const (
	minTermWidth  = video.Width + 32
	minTermHeight = video.Height + 8
)

// shadeChars renders the four DMG grays as block characters, indexed by
// Shade (White..Black). The screen draws white on black, so White is the
// densest block and Black is a blank cell.
var shadeChars = [4]rune{'█', '▓', '▒', ' '}

// Terminal drives the emulator's main loop and presents its output via
// tcell.
type Terminal struct {
	screen   tcell.Screen
	emulator *dmg.Emulator
	running  bool
	limiter  *timing.TickerLimiter
}

// New initializes the terminal screen and wraps emu for rendering.
func New(emu *dmg.Emulator) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("render: init terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("render: init terminal: %w", err)
	}
	return &Terminal{screen: screen, emulator: emu, running: true}, nil
}

// Run drives the 60Hz frame loop until the user quits or the process
// receives a termination signal.
func (t *Terminal) Run() error {
	defer t.screen.Fini()

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	go t.handleInput()

	t.limiter = timing.NewTickerLimiter()
	defer t.limiter.Stop()

	frames := make(chan struct{})
	go func() {
		for t.running {
			t.limiter.WaitForNextFrame()
			frames <- struct{}{}
		}
	}()

	for t.running {
		select {
		case <-frames:
			t.emulator.RunUntilFrame()
			t.render()
			t.screen.Show()
		case <-signals:
			slog.Info("terminal: received stop signal")
			t.running = false
			return nil
		}
	}

	return nil
}

func (t *Terminal) handleInput() {
	for t.running {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			t.handleKey(ev)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func (t *Terminal) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.running = false
	case tcell.KeyEnter:
		t.emulator.HandleKeyPress(memory.KeyStart)
	case tcell.KeyRight:
		t.emulator.HandleKeyPress(memory.KeyRight)
	case tcell.KeyLeft:
		t.emulator.HandleKeyPress(memory.KeyLeft)
	case tcell.KeyUp:
		t.emulator.HandleKeyPress(memory.KeyUp)
	case tcell.KeyDown:
		t.emulator.HandleKeyPress(memory.KeyDown)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a':
			t.emulator.HandleKeyPress(memory.KeyA)
		case 's':
			t.emulator.HandleKeyPress(memory.KeyB)
		case 'q':
			t.emulator.HandleKeyPress(memory.KeySelect)
		case ' ':
			if t.emulator.DebuggerState() == dmg.DebuggerPaused {
				t.emulator.SetDebuggerState(dmg.DebuggerRunning)
				if t.limiter != nil {
					t.limiter.Reset()
				}
			} else {
				t.emulator.SetDebuggerState(dmg.DebuggerPaused)
			}
		case 'n':
			t.emulator.RequestStep()
		case 'f':
			t.emulator.RequestFrameStep()
		}
	}
}

func (t *Terminal) render() {
	width, height := t.screen.Size()
	if width < minTermWidth || height < minTermHeight {
		t.renderTooSmall(width, height)
		return
	}

	t.screen.Clear()
	t.drawFrame()
	t.drawSidebar(video.Width + 2)
}

func (t *Terminal) renderTooSmall(width, height int) {
	t.screen.Clear()
	style := tcell.StyleDefault.Foreground(tcell.ColorRed)
	msg := fmt.Sprintf("terminal too small, need at least %dx%d", minTermWidth, minTermHeight)
	for i, ch := range msg {
		t.screen.SetContent(i, height/2, ch, nil, style)
	}
}

func (t *Terminal) drawFrame() {
	fb := t.emulator.FrameBuffer()
	style := tcell.StyleDefault
	for y := 0; y < video.Height; y++ {
		for x := 0; x < video.Width; x++ {
			shade := fb.Shades()[y*video.Width+x]
			t.screen.SetContent(x, y, shadeChars[shade], nil, style)
		}
	}
}

func (t *Terminal) drawSidebar(x int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	snap := debug.Take(t.emulator.CPU())

	t.drawLine(x, 0, snap.String(), style)

	lines := disasm.Range(snap.PC, t.emulator.Bus(), 10)
	for i, line := range lines {
		rowStyle := style
		if line.Address == snap.PC {
			rowStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
		}
		t.drawLine(x, 2+i, fmt.Sprintf("%04X  %s", line.Address, line.Instruction), rowStyle)
	}
}

func (t *Terminal) drawLine(x, y int, s string, style tcell.Style) {
	for i, ch := range s {
		t.screen.SetContent(x+i, y, ch, nil, style)
	}
}
