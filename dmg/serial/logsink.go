// Package serial implements the SB/SC serial port as a log sink: bytes
// written out are logged as text instead of being transferred to a second
// machine, which has no analog in this core.
package serial

import (
	"log/slog"

	"github.com/corebound/dmgcore/dmg/addr"
	"github.com/corebound/dmgcore/dmg/bit"
)

// Port is the interface the bus drives for the SB/SC address pair.
type Port interface {
	Write(address uint16, value byte)
	Read(address uint16) byte
	Tick(cycles int)
	Reset()
}

// LogSink is a dummy serial device for test ROMs that report pass/fail by
// writing characters to SB. Grounded on the teacher's serial.LogSink.
type LogSink struct {
	irqHandler func()
	sb, sc     byte

	transferActive bool
	countdown      int
	immediate      bool

	logger *slog.Logger
	line   []byte
}

// Option configures a LogSink at construction.
type Option func(*LogSink)

// WithFixedTiming makes transfers complete after the real ~8192 T-cycle
// budget instead of instantly, for timing-sensitive test ROMs.
func WithFixedTiming() Option { return func(s *LogSink) { s.immediate = false } }

// NewLogSink returns a serial port that completes transfers immediately by
// default and calls irq once a transfer completes.
func NewLogSink(irq func(), opts ...Option) *LogSink {
	s := &LogSink{
		irqHandler: irq,
		immediate:  true,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

func (s *LogSink) Write(address uint16, value byte) {
	switch address {
	case addr.SB:
		s.sb = value
	case addr.SC:
		s.sc = value
		s.maybeStartTransfer()
	}
}

func (s *LogSink) Read(address uint16) byte {
	switch address {
	case addr.SB:
		return s.sb
	case addr.SC:
		return s.sc | 0x7E
	default:
		return 0xFF
	}
}

// Tick advances a fixed-timing transfer in progress; a no-op in the default
// immediate mode.
func (s *LogSink) Tick(cycles int) {
	if s.immediate || !s.transferActive {
		return
	}
	s.countdown -= cycles
	if s.countdown <= 0 {
		s.completeTransfer()
	}
}

// Reset clears the port to its power-on state.
func (s *LogSink) Reset() {
	s.sb = 0x00
	s.sc = 0x00
	s.transferActive = false
	s.countdown = 0
	s.line = s.line[:0]
}

func (s *LogSink) maybeStartTransfer() {
	if s.transferActive {
		return
	}
	if !bit.IsSet(7, s.sc) || !bit.IsSet(0, s.sc) {
		return
	}

	b := s.sb
	if b == 0 || b == '\n' || b == '\r' {
		if len(s.line) > 0 {
			s.logger.Info("serial", "line", string(s.line))
			s.line = s.line[:0]
		}
	} else {
		s.line = append(s.line, b)
	}

	if s.immediate {
		s.completeTransfer()
		return
	}

	s.transferActive = true
	s.countdown = 8192
}

func (s *LogSink) completeTransfer() {
	s.sb = 0xFF
	s.sc = bit.Reset(7, s.sc)
	s.transferActive = false
	if s.irqHandler != nil {
		s.irqHandler()
	}
}
