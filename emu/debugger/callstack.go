package debugger

import (
	"fmt"
	"strings"
)

type frameKind uint8

const (
	frameCall frameKind = iota
	frameNMI
	frameIRQ
)

type stackFrame struct {
	src    uint16 // address of the JSR, or of the interrupted instruction
	target uint16 // subroutine or handler entry point
	ret    uint16
	kind   frameKind
}

// maxDepth bounds the call stack. Programs manipulating the stack by hand
// (return address popped then jumped to) never unwind their frames.
const maxDepth = 256

type callStack []stackFrame

func (cs *callStack) push(src, target, ret uint16, kind frameKind) {
	if len(*cs) == maxDepth {
		*cs = append((*cs)[:0], (*cs)[1:]...)
	}
	*cs = append(*cs, stackFrame{
		src:    src,
		target: target,
		ret:    ret,
		kind:   kind,
	})
}

func (cs *callStack) pop() {
	if len(*cs) == 0 {
		return
	}
	*cs = (*cs)[:len(*cs)-1]
}

func (cs *callStack) reset() {
	*cs = (*cs)[:0]
}

// FrameInfo describes a call stack frame: the entry point of the routine
// and the address being executed in it.
type FrameInfo struct {
	Entry string
	PC    string
}

// Backtrace lists the frames from the innermost (executing pc) to the
// outermost.
type Backtrace []FrameInfo

func (bt Backtrace) String() string {
	var sb strings.Builder
	for i, f := range bt {
		if i > 0 {
			sb.WriteString(" <- ")
		}
		sb.WriteString(f.PC)
		sb.WriteString(" in ")
		sb.WriteString(f.Entry)
	}
	return sb.String()
}

func (cs callStack) build(pc uint16) Backtrace {
	bt := make(Backtrace, 0, len(cs)+1)
	bt = append(bt, FrameInfo{Entry: cs.entryPoint(len(cs) - 1), PC: fmt.Sprintf("$%04X", pc)})
	for i := len(cs) - 1; i >= 0; i-- {
		bt = append(bt, FrameInfo{
			Entry: cs.entryPoint(i - 1),
			PC:    fmt.Sprintf("$%04X", cs[i].src),
		})
	}
	return bt
}

// entryPoint returns the entry point of the routine of frame i, -1 being the
// bottom of the stack.
func (cs callStack) entryPoint(i int) string {
	if i < 0 {
		return "[bottom of stack]"
	}

	f := cs[i]
	str := fmt.Sprintf("$%04X", f.target)
	switch f.kind {
	case frameNMI:
		return "[nmi] " + str
	case frameIRQ:
		return "[irq] " + str
	}
	return str
}
