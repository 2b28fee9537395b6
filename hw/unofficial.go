package hw

// Unofficial instructions. Most combine two official operations on the same
// operand; the unstable ones use the constants observed on NES consoles.

func slo(c *CPU, oper operand) {
	val := c.shl(c.Read8(oper.addr), 0)
	c.Write8(oper.addr, val)
	c.A |= val
	c.P.checkNZ(c.A)
}

func rla(c *CPU, oper operand) {
	val := c.shl(c.Read8(oper.addr), c.P.carry())
	c.Write8(oper.addr, val)
	c.A &= val
	c.P.checkNZ(c.A)
}

func sre(c *CPU, oper operand) {
	val := c.shr(c.Read8(oper.addr), 0)
	c.Write8(oper.addr, val)
	c.A ^= val
	c.P.checkNZ(c.A)
}

func rra(c *CPU, oper operand) {
	val := c.shr(c.Read8(oper.addr), c.P.carry())
	c.Write8(oper.addr, val)
	c.add(val)
}

func sax(c *CPU, oper operand) { c.Write8(oper.addr, c.A&c.X) }

func lax(c *CPU, oper operand) {
	c.A = c.Read8(oper.addr)
	c.X = c.A
	c.P.checkNZ(c.A)
}

func dcp(c *CPU, oper operand) {
	val := c.Read8(oper.addr) - 1
	c.Write8(oper.addr, val)
	c.compare(c.A, val)
}

func isc(c *CPU, oper operand) {
	val := c.Read8(oper.addr) + 1
	c.Write8(oper.addr, val)
	c.add(val ^ 0xFF)
}

func anc(c *CPU, oper operand) {
	c.A &= c.Read8(oper.addr)
	c.P.checkNZ(c.A)
	c.P.set(Carry, c.A&0x80 != 0)
}

func alr(c *CPU, oper operand) {
	c.A = c.shr(c.A&c.Read8(oper.addr), 0)
}

// ARR is AND then ROR, with C and V computed from bits 6 and 5 of the
// result.
func arr(c *CPU, oper operand) {
	c.A = (c.A&c.Read8(oper.addr))>>1 | c.P.carry()<<7
	c.P.checkNZ(c.A)
	c.P.set(Carry, c.A&0x40 != 0)
	c.P.set(Overflow, (c.A>>6^c.A>>5)&1 != 0)
}

// SBX (also AXS) sets X to (A&X) minus the operand, without borrow.
func sbx(c *CPU, oper operand) {
	val := c.Read8(oper.addr)
	ax := c.A & c.X
	c.P.set(Carry, ax >= val)
	c.X = ax - val
	c.P.checkNZ(c.X)
}

func las(c *CPU, oper operand) {
	val := c.Read8(oper.addr) & c.SP
	c.A, c.X, c.SP = val, val, val
	c.P.checkNZ(val)
}

// ANE (XAA) and LXA depend on analog effects, 0xEE is the "magic" constant
// most NES CPUs exhibit.
func ane(c *CPU, oper operand) {
	c.A = (c.A | 0xEE) & c.X & c.Read8(oper.addr)
	c.P.checkNZ(c.A)
}

func lxa(c *CPU, oper operand) {
	c.A = (c.A | 0xEE) & c.Read8(oper.addr)
	c.X = c.A
	c.P.checkNZ(c.A)
}

// storeHigh implements the SHA/SHX/SHY/TAS family: the stored value is ANDed
// with the high byte of the base address plus one. When indexing crosses a
// page, that value also replaces the high byte of the target address.
func (c *CPU) storeHigh(oper operand, val uint8) {
	val &= uint8(oper.base>>8) + 1
	addr := oper.addr
	if oper.crossed {
		addr = uint16(val)<<8 | addr&0xFF
	}
	c.Write8(addr, val)
}

func sha(c *CPU, oper operand) { c.storeHigh(oper, c.A&c.X) }
func shx(c *CPU, oper operand) { c.storeHigh(oper, c.X) }
func shy(c *CPU, oper operand) { c.storeHigh(oper, c.Y) }

func tas(c *CPU, oper operand) {
	c.SP = c.A & c.X
	c.storeHigh(oper, c.SP)
}

// jam locks the CPU up, only a reset recovers from it.
func jam(c *CPU, _ operand) {
	c.halt(c.Peek8(c.PC - 1))
}
