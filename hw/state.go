package hw

import "nescore/hw/snapshot"

// SaveState stores the CPU registers and the internal RAM into s.
func (c *CPU) SaveState(s *snapshot.NES) {
	s.CPU = snapshot.CPU{
		PC:      c.PC,
		SP:      c.SP,
		P:       uint8(c.P),
		A:       c.A,
		X:       c.X,
		Y:       c.Y,
		Cycles:  c.Cycles,
		Halted:  c.halted,
		OpenBus: c.openbus.last,
	}
	copy(s.RAM[:], c.RAM.Data)
}

func (c *CPU) LoadState(s *snapshot.NES) {
	c.PC = s.CPU.PC
	c.SP = s.CPU.SP
	c.P = P(s.CPU.P)
	c.A = s.CPU.A
	c.X = s.CPU.X
	c.Y = s.CPU.Y
	c.Cycles = s.CPU.Cycles
	c.halted = s.CPU.Halted
	c.openbus.last = s.CPU.OpenBus
	copy(c.RAM.Data, s.RAM[:])
	c.PPUDMA.reset()
}

// SaveState stores the PPU state into s. The background and sprite
// pipelines are not saved, a snapshot is meant to be taken between frames.
func (p *PPU) SaveState(s *snapshot.PPU) {
	*s = snapshot.PPU{
		Palette:    p.palette,
		OAM:        p.OAM,
		CIRAM:      p.ciram,
		OpenBus:    p.openbus,
		OAMAddr:    p.oamAddr,
		VRAMAddr:   p.v,
		VRAMTemp:   p.t,
		FineX:      p.x,
		WriteLatch: p.w,
		ReadBuf:    p.readBuf,
		PPUCTRL:    p.ctrl,
		PPUMASK:    p.mask,
		PPUSTATUS:  p.status,
		Cycle:      p.Cycle,
		Scanline:   p.Scanline,
		Frames:     p.Frames,
		OddFrame:   p.oddFrame,
		NMILatch:   p.nmiLatch,
	}
}

func (p *PPU) LoadState(s *snapshot.PPU) {
	p.palette = s.Palette
	p.OAM = s.OAM
	p.ciram = s.CIRAM
	p.openbus = s.OpenBus
	p.oamAddr = s.OAMAddr
	p.v = s.VRAMAddr
	p.t = s.VRAMTemp
	p.x = s.FineX
	p.w = s.WriteLatch
	p.readBuf = s.ReadBuf
	p.ctrl = s.PPUCTRL
	p.mask = s.PPUMASK
	p.status = s.PPUSTATUS
	p.Cycle = s.Cycle
	p.Scanline = s.Scanline
	p.Frames = s.Frames
	p.oddFrame = s.OddFrame
	p.nmiLatch = s.NMILatch

	p.tileData = 0
	p.spriteCount = 0
	p.frameReady = false
}
