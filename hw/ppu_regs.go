package hw

import (
	"nescore/emu/log"
	"nescore/hw/hwio"
)

// ReadRegister reads PPU register idx ($2000+idx), with the side effects of a
// CPU read.
func (p *PPU) ReadRegister(idx int) uint8 {
	return p.reg(idx).Read8(0x2000 + uint16(idx&7))
}

// WriteRegister writes PPU register idx ($2000+idx).
func (p *PPU) WriteRegister(idx int, val uint8) {
	p.reg(idx).Write8(0x2000+uint16(idx&7), val)
}

func (p *PPU) reg(idx int) *hwio.Reg8 {
	switch idx & 7 {
	case 0:
		return &p.PPUCTRL
	case 1:
		return &p.PPUMASK
	case 2:
		return &p.PPUSTATUS
	case 3:
		return &p.OAMADDR
	case 4:
		return &p.OAMDATA
	case 5:
		return &p.PPUSCROLL
	case 6:
		return &p.PPUADDR
	}
	return &p.PPUDATA
}

func (p *PPU) ReadOpenBus(uint8) uint8 { return p.openbus }

func (p *PPU) WriteOpenBus(_, val uint8) { p.openbus = val }

// $2000
func (p *PPU) WritePPUCTRL(_, val uint8) {
	p.openbus = val
	p.ctrl = val
	// t: ...GH.. ........ <- d: ......GH
	p.t = p.t&0x73FF | uint16(val&ctrlNTSelect)<<10
	log.ModPPU.DebugZ("write PPUCTRL").Hex8("val", val).End()
}

// $2001
func (p *PPU) WritePPUMASK(_, val uint8) {
	p.openbus = val
	p.mask = val
}

// $2002
func (p *PPU) ReadPPUSTATUS(uint8) uint8 {
	val := p.PeekPPUSTATUS(0)
	p.status &^= statusVblank
	p.w = false
	p.openbus = val
	return val
}

func (p *PPU) PeekPPUSTATUS(uint8) uint8 {
	return p.status&0xE0 | p.openbus&0x1F
}

// $2003
func (p *PPU) WriteOAMADDR(_, val uint8) {
	p.openbus = val
	p.oamAddr = val
}

// $2004
func (p *PPU) ReadOAMDATA(uint8) uint8 {
	val := p.PeekOAMDATA(0)
	p.openbus = val
	return val
}

func (p *PPU) PeekOAMDATA(uint8) uint8 {
	val := p.OAM[p.oamAddr]
	// Unimplemented bits of the sprite attribute byte read as 0.
	if p.oamAddr&3 == 2 {
		val &= 0xE3
	}
	return val
}

func (p *PPU) WriteOAMDATA(_, val uint8) {
	p.openbus = val
	p.OAM[p.oamAddr] = val
	p.oamAddr++
}

// $2005
func (p *PPU) WritePPUSCROLL(_, val uint8) {
	p.openbus = val
	if !p.w {
		// t: ....... ...ABCDE <- d: ABCDE...
		// x:              FGH <- d: .....FGH
		p.t = p.t&0xFFE0 | uint16(val)>>3
		p.x = val & 0x07
	} else {
		// t: FGH..AB CDE..... <- d: ABCDEFGH
		p.t = p.t&0x0C1F | uint16(val&0x07)<<12 | uint16(val&0xF8)<<2
	}
	p.w = !p.w
}

// $2006
func (p *PPU) WritePPUADDR(_, val uint8) {
	p.openbus = val
	if !p.w {
		// t: .CDEFGH ........ <- d: ..CDEFGH
		//        <unused>     <- d: AB......
		// t: Z...... ........ <- 0 (bit Z is cleared)
		p.t = p.t&0x00FF | uint16(val&0x3F)<<8
	} else {
		// t: ....... ABCDEFGH <- d: ABCDEFGH
		// v: <...all bits...> <- t: <...all bits...>
		p.t = p.t&0xFF00 | uint16(val)
		p.v = p.t
	}
	p.w = !p.w
}

// $2007
func (p *PPU) ReadPPUDATA(uint8) uint8 {
	addr := p.v & 0x3FFF
	var val uint8
	if addr < 0x3F00 {
		val = p.readBuf
		p.readBuf = p.Bus.Read8(addr)
	} else {
		// Palette reads are immediate; the buffer gets the nametable byte
		// "under" the palette.
		val = p.Bus.Read8(addr) | p.openbus&0xC0
		p.readBuf = p.Bus.Read8(addr - 0x1000)
	}
	p.incrementAddr()
	p.openbus = val
	return val
}

func (p *PPU) PeekPPUDATA(uint8) uint8 {
	addr := p.v & 0x3FFF
	if addr < 0x3F00 {
		return p.readBuf
	}
	return p.Bus.Peek8(addr) | p.openbus&0xC0
}

func (p *PPU) WritePPUDATA(_, val uint8) {
	p.openbus = val
	p.Bus.Write8(p.v&0x3FFF, val)
	p.incrementAddr()
}

func (p *PPU) incrementAddr() {
	if p.ctrl&ctrlIncr32 != 0 {
		p.v += 32
	} else {
		p.v++
	}
	p.v &= 0x7FFF
}
