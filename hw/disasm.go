package hw

import (
	"fmt"
	"strings"
)

// DisasmOp is a disassembled instruction.
type DisasmOp struct {
	Opcode string // mnemonic, prefixed with '*' for unofficial opcodes
	Oper   string
	Buf    []byte // instruction bytes
	PC     uint16
}

func (d DisasmOp) String() string {
	return string(d.Bytes())
}

// Bytes returns the instruction in nestest log format, padded to 48 columns
// so that the register dump of the tracer is aligned.
func (d DisasmOp) Bytes() []byte {
	const totalLen = 48
	buf := make([]byte, 16, totalLen)

	hexEncode(buf[0:], byte(d.PC>>8))
	hexEncode(buf[2:], byte(d.PC))
	buf[4] = ' '
	buf[5] = ' '

	off := 6
	for i := range d.Buf {
		hexEncode(buf[off:], d.Buf[i])
		buf[off+2] = ' '
		off += 3
	}
	for ; off < 16; off++ {
		buf[off] = ' '
	}

	// Unofficial opcodes have their star one column on the left.
	if strings.HasPrefix(d.Opcode, "*") {
		buf = buf[:15]
	}
	buf = append(buf, d.Opcode...)
	if d.Oper != "" {
		buf = append(buf, ' ')
		buf = append(buf, d.Oper...)
	}
	for len(buf) < totalLen {
		buf = append(buf, ' ')
	}
	return buf
}

// Disasm disassembles the instruction at pc. It uses Peek8 so that it has
// no effect on the emulated hardware.
func (c *CPU) Disasm(pc uint16) DisasmOp {
	opcode := c.Peek8(pc)
	op := &Opcodes[opcode]

	d := DisasmOp{PC: pc, Opcode: op.Name}
	if !op.Official {
		d.Opcode = "*" + op.Name
	}
	size := op.Mode.Size()
	for i := range size {
		d.Buf = append(d.Buf, c.Peek8(pc+uint16(i)))
	}

	var (
		b1  = uint16(0)
		w   = uint16(0)
		val = func(addr uint16) uint8 { return c.Peek8(addr) }
	)
	if size > 1 {
		b1 = uint16(d.Buf[1])
		w = b1
	}
	if size > 2 {
		w |= uint16(d.Buf[2]) << 8
	}

	switch op.Mode {
	case Implied:
	case Accumulator:
		d.Oper = "A"
	case Immediate:
		d.Oper = fmt.Sprintf("#$%02X", b1)
	case ZeroPage:
		d.Oper = fmt.Sprintf("$%02X = %02X", b1, val(b1))
	case ZeroPageX:
		addr := uint16(uint8(b1) + c.X)
		d.Oper = fmt.Sprintf("$%02X,X @ %02X = %02X", b1, addr, val(addr))
	case ZeroPageY:
		addr := uint16(uint8(b1) + c.Y)
		d.Oper = fmt.Sprintf("$%02X,Y @ %02X = %02X", b1, addr, val(addr))
	case Absolute:
		if op.Name == "JMP" || op.Name == "JSR" {
			d.Oper = fmt.Sprintf("$%04X", w)
		} else {
			d.Oper = fmt.Sprintf("$%04X = %02X", w, val(w))
		}
	case AbsoluteX:
		addr := w + uint16(c.X)
		d.Oper = fmt.Sprintf("$%04X,X @ %04X = %02X", w, addr, val(addr))
	case AbsoluteY:
		addr := w + uint16(c.Y)
		d.Oper = fmt.Sprintf("$%04X,Y @ %04X = %02X", w, addr, val(addr))
	case Indirect:
		lo := val(w)
		hi := val(w&0xFF00 | uint16(uint8(w)+1))
		d.Oper = fmt.Sprintf("($%04X) = %04X", w, uint16(hi)<<8|uint16(lo))
	case IndirectX:
		ptr := uint8(b1) + c.X
		addr := uint16(val(uint16(ptr+1)))<<8 | uint16(val(uint16(ptr)))
		d.Oper = fmt.Sprintf("($%02X,X) @ %02X = %04X = %02X", b1, ptr, addr, val(addr))
	case IndirectY:
		ptr := uint8(b1)
		base := uint16(val(uint16(ptr+1)))<<8 | uint16(val(uint16(ptr)))
		addr := base + uint16(c.Y)
		d.Oper = fmt.Sprintf("($%02X),Y = %04X @ %04X = %02X", b1, base, addr, val(addr))
	case Relative:
		d.Oper = fmt.Sprintf("$%04X", pc+2+uint16(int8(b1)))
	}
	return d
}
