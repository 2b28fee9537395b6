// Package debugger monitors the execution of a CPU. It keeps track of the
// call stack and reports when execution reaches a breakpoint.
package debugger

import (
	"nescore/emu/log"
	"nescore/hw"
)

var modDbg = log.NewModule("dbg")

// A Debugger is attached to a CPU and called back before each instruction.
// In order to provide a backtrace at any moment, it has to keep track of the
// call stack even when no breakpoint is set.
type Debugger struct {
	cpu *hw.CPU

	// OnBreak is called, from the emulation goroutine, when the CPU is about
	// to execute the instruction at a breakpoint.
	OnBreak func(pc uint16)

	breakpoints map[uint16]struct{}

	prevPC     uint16
	prevOpcode uint8
	frames     int64

	cstack callStack
}

// Attach creates a debugger monitoring cpu.
func Attach(cpu *hw.CPU) *Debugger {
	d := &Debugger{
		cpu:         cpu,
		breakpoints: make(map[uint16]struct{}),
		prevOpcode:  0xFF,
	}
	cpu.SetDebugger(d)
	return d
}

// Detach stops monitoring the CPU.
func (d *Debugger) Detach() {
	d.cpu.SetDebugger(nil)
}

func (d *Debugger) SetBreakpoint(addr uint16)   { d.breakpoints[addr] = struct{}{} }
func (d *Debugger) ClearBreakpoint(addr uint16) { delete(d.breakpoints, addr) }

// Frames returns the number of frames completed since the debugger was
// attached.
func (d *Debugger) Frames() int64 { return d.frames }

// Backtrace returns the current call stack.
func (d *Debugger) Backtrace() Backtrace {
	return d.cstack.build(d.cpu.PC)
}

// Trace implements hw.Debugger.
func (d *Debugger) Trace(pc uint16) {
	d.updateStack(pc, frameCall)
	d.prevPC = pc
	d.prevOpcode = d.cpu.Peek8(pc)

	if _, ok := d.breakpoints[pc]; ok {
		modDbg.InfoZ("breakpoint").
			Hex16("pc", pc).
			Int64("frame", d.frames).
			End()
		if d.OnBreak != nil {
			d.OnBreak(pc)
		}
	}
}

// updateStack accounts for the last executed instruction, dstPC being where
// it led.
func (d *Debugger) updateStack(dstPC uint16, kind frameKind) {
	switch d.prevOpcode {
	case 0x20: // JSR
		d.cstack.push(d.prevPC, dstPC, d.prevPC+3, kind)
	case 0x40, 0x60: // RTI RTS
		d.cstack.pop()
	}
}

// Interrupt implements hw.Debugger.
func (d *Debugger) Interrupt(prevpc, curpc uint16, kind hw.Interrupt) {
	if kind == hw.IntReset {
		d.cstack.reset()
		d.prevOpcode = 0xFF
		return
	}

	fk := frameIRQ
	if kind == hw.IntNMI {
		fk = frameNMI
	}
	// The last instruction may have been a JSR whose target is prevpc.
	d.updateStack(prevpc, frameCall)
	d.prevOpcode = 0xFF

	d.cstack.push(prevpc, curpc, prevpc, fk)
}

// FrameEnd implements hw.Debugger.
func (d *Debugger) FrameEnd() {
	d.frames++
}
