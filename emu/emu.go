package emu

import (
	"context"
	"fmt"
	"image/png"
	"io"
	"os"
	"sync/atomic"

	"nescore/emu/debugger"
	"nescore/emu/log"
	"nescore/ines"
)

// Emulator drives a session headlessly, frame after frame.
type Emulator struct {
	NES *NES
	cfg EmulationConfig

	dbg *debugger.Debugger

	// These can be accessed concurrently with the emulator loop.
	frames  atomic.Int64
	quit    atomic.Bool
	reset   atomic.Bool
	restart atomic.Bool
}

// Launch powers up a console with rom inserted and configures it. When trace
// is not nil the CPU execution trace is written to it.
func Launch(rom *ines.Rom, cfg Config, trace io.Writer) (*Emulator, error) {
	nes, err := PowerUp(rom)
	if err != nil {
		return nil, fmt.Errorf("power up failed: %w", err)
	}

	nes.Input.Port1, nes.Input.Port2, err = cfg.Input.Buttons()
	if err != nil {
		return nil, err
	}
	if trace != nil {
		nes.CPU.SetTraceOutput(trace)
	}

	return &Emulator{
		NES: nes,
		cfg: cfg.Emulation,
	}, nil
}

// Run runs the emulation loop until the configured number of frames has
// been emulated, ctx is canceled, Stop is called or the CPU jams.
func (e *Emulator) Run(ctx context.Context) error {
	for !e.shouldStop() {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.NES.RunFrame()
		e.frames.Add(1)
		e.handleReset()
	}
	if e.NES.CPU.Halted() && e.dbg != nil {
		log.ModEmu.WarnZ("CPU halted").
			String("backtrace", e.dbg.Backtrace().String()).
			End()
	}
	log.ModEmu.InfoZ("emulation loop exited").
		Int("frames", e.Frames()).
		Bool("halted", e.NES.CPU.Halted()).
		End()
	return nil
}

// Frames returns the number of frames emulated by Run.
func (e *Emulator) Frames() int { return int(e.frames.Load()) }

// SetBreakpoints makes the emulation loop stop at the end of the frame
// during which the CPU reached one of addrs. A debugger is attached to the
// CPU on first call, from then on backtraces are logged on breakpoints and
// when the CPU halts.
func (e *Emulator) SetBreakpoints(addrs ...uint16) {
	if e.dbg == nil {
		e.dbg = debugger.Attach(e.NES.CPU)
		e.dbg.OnBreak = func(pc uint16) {
			log.ModEmu.InfoZ("breakpoint hit").
				Hex16("pc", pc).
				String("backtrace", e.dbg.Backtrace().String()).
				End()
			e.Stop()
		}
	}
	for _, addr := range addrs {
		e.dbg.SetBreakpoint(addr)
	}
}

// Stop, Reset and Restart allow to control the emulator loop in a
// concurrent-safe way.

func (e *Emulator) Stop()    { e.quit.Store(true) }
func (e *Emulator) Reset()   { e.reset.Store(true) }
func (e *Emulator) Restart() { e.restart.Store(true) }

func (e *Emulator) shouldStop() bool {
	if e.cfg.Frames > 0 && e.Frames() >= e.cfg.Frames {
		return true
	}
	return e.quit.Load() || e.NES.CPU.Halted()
}

func (e *Emulator) handleReset() {
	if e.reset.CompareAndSwap(true, false) {
		log.ModEmu.InfoZ("performing soft reset").End()
		e.NES.Reset(true)
	} else if e.restart.CompareAndSwap(true, false) {
		log.ModEmu.InfoZ("performing hard reset").End()
		e.NES.Reset(false)
	}
}

// SaveScreenshot writes the last completed frame as a PNG file.
func (e *Emulator) SaveScreenshot(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, e.NES.PPU.LastFrame().RGBA()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SaveSnapshot writes the session state to path.
func (e *Emulator) SaveSnapshot(path string) error {
	buf, err := e.NES.SaveSnapshot()
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

// LoadSnapshot restores the session state from path.
func (e *Emulator) LoadSnapshot(path string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return e.NES.LoadSnapshot(buf)
}
