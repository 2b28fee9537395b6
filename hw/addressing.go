package hw

// AddrMode is a 6502 addressing mode.
type AddrMode uint8

const (
	Implied AddrMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX
	IndirectY
	Relative
)

// Size returns the length in bytes of an instruction using this mode,
// opcode included.
func (m AddrMode) Size() int {
	switch m {
	case Implied, Accumulator:
		return 1
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 3
	}
	return 2
}

// operand is the result of the addressing mode resolution of an
// instruction.
type operand struct {
	mode AddrMode

	// effective address (branch target for relative mode).
	addr uint16

	// address before indexing, for indexed modes.
	base uint16

	// set when indexing (or a branch) crossed a page boundary.
	crossed bool
}

func pagesDiffer(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// resolve fetches the operand bytes at PC, advancing it, and computes the
// effective address. It performs no dummy reads.
func (c *CPU) resolve(mode AddrMode) operand {
	oper := operand{mode: mode}

	switch mode {
	case Implied, Accumulator:
	case Immediate:
		oper.addr = c.PC
		c.PC++
	case ZeroPage:
		oper.addr = uint16(c.Read8(c.PC))
		c.PC++
	case ZeroPageX:
		oper.addr = uint16(c.Read8(c.PC) + c.X)
		c.PC++
	case ZeroPageY:
		oper.addr = uint16(c.Read8(c.PC) + c.Y)
		c.PC++
	case Absolute:
		oper.addr = c.Read16(c.PC)
		c.PC += 2
	case AbsoluteX:
		oper.base = c.Read16(c.PC)
		oper.addr = oper.base + uint16(c.X)
		oper.crossed = pagesDiffer(oper.base, oper.addr)
		c.PC += 2
	case AbsoluteY:
		oper.base = c.Read16(c.PC)
		oper.addr = oper.base + uint16(c.Y)
		oper.crossed = pagesDiffer(oper.base, oper.addr)
		c.PC += 2
	case Indirect:
		oper.addr = c.read16bug(c.Read16(c.PC))
		c.PC += 2
	case IndirectX:
		oper.addr = c.read16zp(c.Read8(c.PC) + c.X)
		c.PC++
	case IndirectY:
		oper.base = c.read16zp(c.Read8(c.PC))
		oper.addr = oper.base + uint16(c.Y)
		oper.crossed = pagesDiffer(oper.base, oper.addr)
		c.PC++
	case Relative:
		off := int8(c.Read8(c.PC))
		c.PC++
		oper.base = c.PC
		oper.addr = c.PC + uint16(off)
		oper.crossed = pagesDiffer(oper.base, oper.addr)
	}
	return oper
}
