package hw

import (
	"io"
	"strconv"
)

// cpuState stores the CPU state for the execution trace.
type cpuState struct {
	A, X, Y uint8
	P       P
	SP      uint8
	PC      uint16

	Clock    int64
	PPUCycle int
	Scanline int
}

type disasmer interface {
	Disasm(pc uint16) DisasmOp
}

// tracer writes one line per executed instruction, in the format of the
// nestest log:
//
//	C000  4C F5 C5  JMP $C5F5                       A:00 X:00 Y:00 P:24 SP:FD PPU:  0, 21 CYC:7
type tracer struct {
	d   disasmer
	w   io.Writer
	buf []byte
}

func hexEncode(dst []byte, v byte) {
	const hextable = "0123456789ABCDEF"
	dst[0] = hextable[v>>4]
	dst[1] = hextable[v&0x0f]
}

func appendReg(buf []byte, name string, v uint8) []byte {
	buf = append(buf, name...)
	buf = append(buf, ':', 0, 0, ' ')
	hexEncode(buf[len(buf)-3:], v)
	return buf
}

// appendPad appends v right-aligned in a 3-column field.
func appendPad(buf []byte, v int) []byte {
	switch {
	case v >= 0 && v < 10:
		buf = append(buf, ' ', ' ')
	case v >= 10 && v < 100, v < 0 && v > -10:
		buf = append(buf, ' ')
	}
	return strconv.AppendInt(buf, int64(v), 10)
}

func (t *tracer) write(state cpuState) {
	buf := append(t.buf[:0], t.d.Disasm(state.PC).Bytes()...)

	buf = appendReg(buf, "A", state.A)
	buf = appendReg(buf, "X", state.X)
	buf = appendReg(buf, "Y", state.Y)
	buf = appendReg(buf, "P", uint8(state.P))
	buf = appendReg(buf, "SP", state.SP)

	buf = append(buf, "PPU:"...)
	buf = appendPad(buf, state.Scanline)
	buf = append(buf, ',')
	buf = appendPad(buf, state.PPUCycle)
	buf = append(buf, " CYC:"...)
	buf = strconv.AppendInt(buf, state.Clock, 10)
	buf = append(buf, '\n')

	t.buf = buf
	t.w.Write(buf)
}
