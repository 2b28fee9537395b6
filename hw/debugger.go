package hw

// A Debugger monitors a CPU.
type Debugger interface {
	// Trace is called before each opcode is executed. A debugger can stop
	// execution by blocking until user interaction finishes.
	Trace(pc uint16)

	// Interrupt is called once an interrupt sequence has run. prevpc is the
	// address of the instruction that was about to be executed, curpc is
	// the address of the handler.
	Interrupt(prevpc, curpc uint16, kind Interrupt)

	// FrameEnd signals the end of the current frame.
	FrameEnd()
}

type nopDebugger struct{}

func (nopDebugger) Trace(uint16)                        {}
func (nopDebugger) Interrupt(uint16, uint16, Interrupt) {}
func (nopDebugger) FrameEnd()                           {}
