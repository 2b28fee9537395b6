package hw

import (
	"io"

	"nescore/emu/log"
	"nescore/hw/hwio"
)

// CPU is the 6502 core of the 2A03. It executes one whole instruction per
// call to Step. Bus accesses are counted so that, before an access to its
// registers, the PPU is advanced up to the cycle of the access.
type CPU struct {
	Bus *hwio.Table

	RAM hwio.Mem `hwio:"bank=0,offset=0x0,size=0x800,vsize=0x2000"`

	PPU    *PPU
	PPUDMA ppuDMA
	Input  InputPorts
	APU    apuRegs

	// Non-nil when execution tracing is enabled.
	tracer *tracer
	dbg    Debugger

	Cycles int64 // total CPU cycles since power up

	A, X, Y, SP uint8
	PC          uint16
	P           P

	openbus openBus
	halted  bool

	// cycles added to the base count by the instruction being executed
	// (taken branches).
	extra int

	// bus accesses performed by the current instruction or interrupt
	// sequence, and how many of its cycles the PPU has already run.
	inSeq     bool
	busCycle  int
	ppuSynced int
}

// NewCPU creates a CPU in power-up state.
func NewCPU(ppu *PPU) *CPU {
	cpu := &CPU{
		Bus: hwio.NewTable("cpu"),
		PPU: ppu,
		dbg: nopDebugger{},
	}
	if ppu != nil {
		ppu.CPU = cpu
	}
	return cpu
}

// Reset runs the reset sequence and returns the number of cycles it took. A
// hard reset first puts the registers and internal RAM in their power-up
// state.
func (c *CPU) Reset(soft bool) int {
	if !soft {
		c.A, c.X, c.Y = 0, 0, 0
		c.SP = 0x00
		c.P = Unused
		c.Cycles = 0
		clear(c.RAM.Data)
	}
	return c.ServiceInterrupt(IntReset)
}

// Read8 reads a byte on the bus, as the CPU would.
func (c *CPU) Read8(addr uint16) uint8 {
	c.syncPPU(addr)
	val := c.Bus.Read8(addr)
	c.openbus.last = val
	return val
}

// Write8 writes a byte on the bus, as the CPU would.
func (c *CPU) Write8(addr uint16, val uint8) {
	c.syncPPU(addr)
	c.openbus.last = val
	c.Bus.Write8(addr, val)
}

// syncPPU accounts for a bus cycle. Before an access to the PPU registers
// or to OAMDMA, the PPU is caught up with the cycles already elapsed in the
// current sequence.
func (c *CPU) syncPPU(addr uint16) {
	if !c.inSeq {
		return
	}
	if c.PPU != nil && (addr&0xE000 == 0x2000 || addr == 0x4014) {
		if n := c.busCycle - c.ppuSynced; n > 0 {
			c.PPU.Step(3 * n)
			c.ppuSynced = c.busCycle
		}
	}
	c.busCycle++
}

func (c *CPU) startSequence() {
	c.inSeq = true
	c.busCycle, c.ppuSynced = 0, 0
}

func (c *CPU) endSequence() {
	c.inSeq = false
	c.busCycle = 0
}

// TakePPUSynced returns the number of cycles of the last instruction (or
// interrupt sequence) that the PPU has already been advanced by, and resets
// it. The caller only has to run the PPU for the remaining cycles.
func (c *CPU) TakePPUSynced() int {
	n := c.ppuSynced
	c.ppuSynced = 0
	return n
}

// Peek8 reads a byte without side effects.
func (c *CPU) Peek8(addr uint16) uint8 {
	return c.Bus.Peek8(addr)
}

func (c *CPU) Read16(addr uint16) uint16 {
	return hwio.Read16(c, addr)
}

// read16zp reads a pointer in zero page, the high byte wraps to $00.
func (c *CPU) read16zp(addr uint8) uint16 {
	lo := c.Read8(uint16(addr))
	hi := c.Read8(uint16(addr + 1))
	return uint16(hi)<<8 | uint16(lo)
}

// read16bug emulates the page boundary bug of JMP (ind): the high byte is
// fetched without carrying into the high byte of the address.
func (c *CPU) read16bug(addr uint16) uint16 {
	lo := c.Read8(addr)
	hi := c.Read8(addr&0xFF00 | uint16(uint8(addr)+1))
	return uint16(hi)<<8 | uint16(lo)
}

/* stack operations */

func (c *CPU) push8(val uint8) {
	c.Write8(0x0100|uint16(c.SP), val)
	c.SP--
}

func (c *CPU) push16(val uint16) {
	c.push8(uint8(val >> 8))
	c.push8(uint8(val))
}

func (c *CPU) pull8() uint8 {
	c.SP++
	return c.Read8(0x0100 | uint16(c.SP))
}

func (c *CPU) pull16() uint16 {
	lo := c.pull8()
	hi := c.pull8()
	return uint16(hi)<<8 | uint16(lo)
}

// Step executes the instruction at PC and returns the number of CPU cycles
// it took: base cycles, plus 1 when an indexed read crosses a page, plus 1
// for a taken branch and 1 more if the branch target is on another page.
func (c *CPU) Step() int {
	c.startSequence()
	defer c.endSequence()
	if c.halted {
		c.Cycles += 2
		return 2
	}

	c.traceOp()

	opcode := c.Read8(c.PC)
	op := &Opcodes[opcode]
	c.PC++

	c.extra = 0
	oper := c.resolve(op.Mode)
	op.exec(c, oper)

	cycles := int(op.Cycles) + c.extra
	if oper.crossed && op.PageCycle {
		cycles++
	}
	c.Cycles += int64(cycles)
	return cycles
}

// ServiceInterrupt runs the given interrupt sequence and returns the number
// of cycles it took. NMI and IRQ push PC and P (with B clear), set I and jump
// through their vector. Reset performs the same stack pointer decrement
// without writing, and clears the halted state.
//
// A halted CPU ignores NMI and IRQ.
func (c *CPU) ServiceInterrupt(kind Interrupt) int {
	c.startSequence()
	defer c.endSequence()
	prevpc := c.PC
	switch kind {
	case IntReset:
		c.SP -= 3
		c.P |= IntDisable
		c.halted = false
		c.PPUDMA.reset()
	case IntNMI, IntIRQ:
		if c.halted {
			return 0
		}
		c.push16(c.PC)
		c.push8(uint8(c.P&^Break | Unused))
		c.P |= IntDisable
	}

	// Vectors are read every time, mappers may switch the bank holding them.
	c.PC = c.Read16(kind.vector())
	c.Cycles += 7

	log.ModCPU.DebugZ("interrupt").
		Stringer("kind", kind).
		Hex16("from", prevpc).
		Hex16("to", c.PC).
		End()

	c.dbg.Interrupt(prevpc, c.PC, kind)
	return 7
}

// Halted reports whether the CPU executed a JAM opcode. Only a reset gets
// it out of that state.
func (c *CPU) Halted() bool {
	return c.halted
}

func (c *CPU) halt(opcode uint8) {
	c.halted = true
	c.PC--
	log.ModCPU.WarnZ("CPU halted").
		Hex16("PC", c.PC).
		Hex8("opcode", opcode).
		End()
}

// TakeStall returns, and resets, the number of cycles the CPU has been
// suspended by an OAM DMA transfer during the last instruction.
func (c *CPU) TakeStall() int {
	n := c.PPUDMA.stall
	c.PPUDMA.stall = 0
	c.Cycles += int64(n)
	return n
}

/* tracing / debugging */

func (c *CPU) traceOp() {
	if c.tracer != nil {
		state := cpuState{
			A:     c.A,
			X:     c.X,
			Y:     c.Y,
			P:     c.P,
			SP:    c.SP,
			Clock: c.Cycles,
			PC:    c.PC,
		}
		if c.PPU != nil {
			state.PPUCycle = c.PPU.Cycle
			state.Scanline = c.PPU.Scanline
		}
		c.tracer.write(state)
	}
	c.dbg.Trace(c.PC)
}

// SetTraceOutput enables execution tracing to w, in nestest log format.
// Passing nil disables it.
func (c *CPU) SetTraceOutput(w io.Writer) {
	if w == nil {
		c.tracer = nil
		return
	}
	c.tracer = &tracer{w: w, d: c}
}

func (c *CPU) SetDebugger(dbg Debugger) {
	if dbg == nil {
		dbg = nopDebugger{}
	}
	c.dbg = dbg
}

// AddLogContext implements log.Context.
func (c *CPU) AddLogContext(e *log.EntryZ) {
	e.Int64("cyc", c.Cycles)
	e.Hex16("pc", c.PC)
}
