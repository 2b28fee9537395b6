package hw

// Official instructions.

func (c *CPU) fetch(oper operand) uint8 {
	if oper.mode == Accumulator {
		return c.A
	}
	return c.Read8(oper.addr)
}

// store writes the result of a read-modify-write instruction back.
func (c *CPU) store(oper operand, val uint8) {
	if oper.mode == Accumulator {
		c.A = val
		return
	}
	c.Write8(oper.addr, val)
}

/* loads, stores and transfers */

func lda(c *CPU, oper operand) { c.A = c.Read8(oper.addr); c.P.checkNZ(c.A) }
func ldx(c *CPU, oper operand) { c.X = c.Read8(oper.addr); c.P.checkNZ(c.X) }
func ldy(c *CPU, oper operand) { c.Y = c.Read8(oper.addr); c.P.checkNZ(c.Y) }

func sta(c *CPU, oper operand) { c.Write8(oper.addr, c.A) }
func stx(c *CPU, oper operand) { c.Write8(oper.addr, c.X) }
func sty(c *CPU, oper operand) { c.Write8(oper.addr, c.Y) }

func tax(c *CPU, _ operand) { c.X = c.A; c.P.checkNZ(c.X) }
func tay(c *CPU, _ operand) { c.Y = c.A; c.P.checkNZ(c.Y) }
func txa(c *CPU, _ operand) { c.A = c.X; c.P.checkNZ(c.A) }
func tya(c *CPU, _ operand) { c.A = c.Y; c.P.checkNZ(c.A) }
func tsx(c *CPU, _ operand) { c.X = c.SP; c.P.checkNZ(c.X) }
func txs(c *CPU, _ operand) { c.SP = c.X }

/* stack */

func pha(c *CPU, _ operand) { c.push8(c.A) }
func php(c *CPU, _ operand) { c.push8(uint8(c.P | Break | Unused)) }
func pla(c *CPU, _ operand) { c.A = c.pull8(); c.P.checkNZ(c.A) }
func plp(c *CPU, _ operand) { c.P = P(c.pull8())&^Break | Unused }

/* arithmetic and logic */

func (c *CPU) add(val uint8) {
	sum := uint16(c.A) + uint16(val) + uint16(c.P.carry())
	c.P.checkCV(c.A, val, sum)
	c.A = uint8(sum)
	c.P.checkNZ(c.A)
}

func adc(c *CPU, oper operand) { c.add(c.Read8(oper.addr)) }

// Decimal mode doesn't exist on the 2A03, SBC is ADC of the one's complement.
func sbc(c *CPU, oper operand) { c.add(c.Read8(oper.addr) ^ 0xFF) }

func and(c *CPU, oper operand) { c.A &= c.Read8(oper.addr); c.P.checkNZ(c.A) }
func ora(c *CPU, oper operand) { c.A |= c.Read8(oper.addr); c.P.checkNZ(c.A) }
func eor(c *CPU, oper operand) { c.A ^= c.Read8(oper.addr); c.P.checkNZ(c.A) }

func (c *CPU) compare(reg, val uint8) {
	c.P.set(Carry, reg >= val)
	c.P.checkNZ(reg - val)
}

func cmp(c *CPU, oper operand) { c.compare(c.A, c.Read8(oper.addr)) }
func cpx(c *CPU, oper operand) { c.compare(c.X, c.Read8(oper.addr)) }
func cpy(c *CPU, oper operand) { c.compare(c.Y, c.Read8(oper.addr)) }

func bit(c *CPU, oper operand) {
	val := c.Read8(oper.addr)
	c.P.set(Zero, c.A&val == 0)
	c.P.set(Overflow, val&0x40 != 0)
	c.P.set(Negative, val&0x80 != 0)
}

/* increments and decrements */

func inc(c *CPU, oper operand) {
	val := c.Read8(oper.addr) + 1
	c.Write8(oper.addr, val)
	c.P.checkNZ(val)
}

func dec(c *CPU, oper operand) {
	val := c.Read8(oper.addr) - 1
	c.Write8(oper.addr, val)
	c.P.checkNZ(val)
}

func inx(c *CPU, _ operand) { c.X++; c.P.checkNZ(c.X) }
func iny(c *CPU, _ operand) { c.Y++; c.P.checkNZ(c.Y) }
func dex(c *CPU, _ operand) { c.X--; c.P.checkNZ(c.X) }
func dey(c *CPU, _ operand) { c.Y--; c.P.checkNZ(c.Y) }

/* shifts and rotates */

func (c *CPU) shl(val uint8, in uint8) uint8 {
	c.P.set(Carry, val&0x80 != 0)
	val = val<<1 | in
	c.P.checkNZ(val)
	return val
}

func (c *CPU) shr(val uint8, in uint8) uint8 {
	c.P.set(Carry, val&0x01 != 0)
	val = val>>1 | in<<7
	c.P.checkNZ(val)
	return val
}

func asl(c *CPU, oper operand) { c.store(oper, c.shl(c.fetch(oper), 0)) }
func lsr(c *CPU, oper operand) { c.store(oper, c.shr(c.fetch(oper), 0)) }
func rol(c *CPU, oper operand) { c.store(oper, c.shl(c.fetch(oper), c.P.carry())) }
func ror(c *CPU, oper operand) { c.store(oper, c.shr(c.fetch(oper), c.P.carry())) }

/* flags */

func clc(c *CPU, _ operand) { c.P &^= Carry }
func cld(c *CPU, _ operand) { c.P &^= Decimal }
func cli(c *CPU, _ operand) { c.P &^= IntDisable }
func clv(c *CPU, _ operand) { c.P &^= Overflow }
func sec(c *CPU, _ operand) { c.P |= Carry }
func sed(c *CPU, _ operand) { c.P |= Decimal }
func sei(c *CPU, _ operand) { c.P |= IntDisable }

/* control flow */

// branch jumps to the target when cond holds. A taken branch costs one more
// cycle, and another one if the target is on a different page.
func (c *CPU) branch(oper operand, cond bool) {
	if !cond {
		return
	}
	c.extra++
	if oper.crossed {
		c.extra++
	}
	c.PC = oper.addr
}

func bcc(c *CPU, oper operand) { c.branch(oper, !c.P.C()) }
func bcs(c *CPU, oper operand) { c.branch(oper, c.P.C()) }
func bne(c *CPU, oper operand) { c.branch(oper, !c.P.Z()) }
func beq(c *CPU, oper operand) { c.branch(oper, c.P.Z()) }
func bpl(c *CPU, oper operand) { c.branch(oper, !c.P.N()) }
func bmi(c *CPU, oper operand) { c.branch(oper, c.P.N()) }
func bvc(c *CPU, oper operand) { c.branch(oper, !c.P.V()) }
func bvs(c *CPU, oper operand) { c.branch(oper, c.P.V()) }

func jmp(c *CPU, oper operand) { c.PC = oper.addr }

func jsr(c *CPU, oper operand) {
	c.push16(c.PC - 1)
	c.PC = oper.addr
}

func rts(c *CPU, _ operand) { c.PC = c.pull16() + 1 }

func rti(c *CPU, _ operand) {
	c.P = P(c.pull8())&^Break | Unused
	c.PC = c.pull16()
}

// BRK skips the byte following the opcode, pushes the status with B set and
// jumps through the IRQ vector.
func brk(c *CPU, _ operand) {
	c.push16(c.PC + 1)
	c.push8(uint8(c.P | Break | Unused))
	c.P |= IntDisable
	c.PC = c.Read16(IRQVector)
}

// NOPs with a memory operand still read it.
func nop(c *CPU, oper operand) {
	switch oper.mode {
	case Implied, Accumulator:
	default:
		c.Read8(oper.addr)
	}
}
