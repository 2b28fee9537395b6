package hw

import (
	"nescore/emu/log"
	"nescore/hw/hwio"
	"nescore/ines"
)

const (
	NumScanlines = 262 // Number of scanlines per frame.
	NumCycles    = 341 // Number of PPU cycles (dots) per scanline.

	preRenderLine = 261
	vblankLine    = 241
)

// PPUCTRL ($2000) bits.
const (
	ctrlNTSelect   = 0b11
	ctrlIncr32     = 1 << 2 // VRAM address increment (0: +1, 1: +32)
	ctrlSpriteAddr = 1 << 3 // 8x8 sprite pattern table (0: $0000, 1: $1000)
	ctrlBgAddr     = 1 << 4 // background pattern table
	ctrlSprite16   = 1 << 5 // 8x16 sprites
	ctrlNMI        = 1 << 7 // NMI at the start of vblank
)

// PPUMASK ($2001) bits.
const (
	maskGreyscale   = 1 << 0
	maskLeftBg      = 1 << 1 // show background in leftmost 8 pixels
	maskLeftSprites = 1 << 2 // show sprites in leftmost 8 pixels
	maskShowBg      = 1 << 3
	maskShowSprites = 1 << 4
)

// PPUSTATUS ($2002) bits. The low 5 bits read back the I/O latch.
const (
	statusOverflow   = 1 << 5
	statusSprite0Hit = 1 << 6
	statusVblank     = 1 << 7
)

// PPU is the 2C02 picture processing unit.
type PPU struct {
	Bus *hwio.Table // PPU bus
	CPU *CPU

	Cycle    int   // current dot in scanline (0-340)
	Scanline int   // current scanline (0-261, 261 is the pre-render line)
	Frames   int64 // completed frames

	// PPU bus map:
	//	$0000-$1FFF  pattern tables (cartridge CHR)
	//	$2000-$2FFF  nametables, mapped onto CIRAM by the cartridge mirroring
	//	$3000-$3EFF  mirrors of $2000-$2EFF
	//	$3F00-$3F1F  palette RAM
	//	$3F20-$3FFF  mirrors of $3F00-$3F1F
	Nametables hwio.Device `hwio:"offset=0x2000,size=0x1F00,rcb,pcb=ReadNAMETABLES,wcb"`
	Palettes   hwio.Device `hwio:"offset=0x3F00,size=0x100,rcb,pcb=ReadPALETTES,wcb"`

	// CPU-exposed registers, mapped from $2000 to $2007 and mirrored up to
	// $3FFF. Write-only registers read back the I/O latch.
	PPUCTRL   hwio.Reg8 `hwio:"bank=1,offset=0x0,rcb=ReadOpenBus,pcb=ReadOpenBus,wcb"`
	PPUMASK   hwio.Reg8 `hwio:"bank=1,offset=0x1,rcb=ReadOpenBus,pcb=ReadOpenBus,wcb"`
	PPUSTATUS hwio.Reg8 `hwio:"bank=1,offset=0x2,rcb,pcb,wcb=WriteOpenBus"`
	OAMADDR   hwio.Reg8 `hwio:"bank=1,offset=0x3,rcb=ReadOpenBus,pcb=ReadOpenBus,wcb"`
	OAMDATA   hwio.Reg8 `hwio:"bank=1,offset=0x4,rcb,pcb,wcb"`
	PPUSCROLL hwio.Reg8 `hwio:"bank=1,offset=0x5,rcb=ReadOpenBus,pcb=ReadOpenBus,wcb"`
	PPUADDR   hwio.Reg8 `hwio:"bank=1,offset=0x6,rcb=ReadOpenBus,pcb=ReadOpenBus,wcb"`
	PPUDATA   hwio.Reg8 `hwio:"bank=1,offset=0x7,rcb,pcb,wcb"`

	OAM     [256]byte
	oamAddr uint8

	ciram   [0x1000]byte // 2KB on the console, 4KB with four-screen boards
	palette [32]byte

	mapper Mapper

	ctrl, mask, status uint8

	v, t    uint16 // current and temporary VRAM address
	x       uint8  // fine X scroll
	w       bool   // $2005/$2006 write toggle
	readBuf uint8  // $2007 read buffer
	openbus uint8  // I/O latch

	nmiLatch bool
	oddFrame bool

	// background fetch pipeline
	ntByte, atByte uint8
	loByte, hiByte uint8
	tileData       uint64

	// sprites of the current scanline
	spriteCount      int
	spritePatterns   [8]uint32
	spritePositions  [8]uint8
	spritePriorities [8]uint8
	spriteIndexes    [8]uint8

	front, back *Frame
	frameReady  bool
}

func NewPPU() *PPU {
	return &PPU{
		Bus:   hwio.NewTable("ppu"),
		front: new(Frame),
		back:  new(Frame),
	}
}

// InitBus maps the cartridge pattern tables, the nametables and the palette
// on the PPU bus.
func (p *PPU) InitBus(m Mapper) {
	hwio.MustInitRegs(p)
	p.mapper = m
	p.Bus.Reset()
	p.Bus.MapDevice(0x0000, &hwio.Device{
		Name:    "chr",
		Size:    0x2000,
		ReadCb:  m.ReadCHR,
		PeekCb:  m.ReadCHR,
		WriteCb: m.WriteCHR,
	})
	p.Bus.MapBank(0x0000, p, 0)
}

// Reset puts the PPU in its power-up state. CIRAM, OAM and palette contents
// are left untouched, as on the console.
func (p *PPU) Reset() {
	p.Cycle, p.Scanline = 0, 0
	p.ctrl, p.mask, p.status = 0, 0, 0
	p.v, p.t, p.x, p.w = 0, 0, 0, false
	p.readBuf = 0
	p.openbus = 0
	p.oamAddr = 0
	p.nmiLatch = false
	p.oddFrame = false
	p.tileData = 0
	p.spriteCount = 0
	p.frameReady = false
}

func (p *PPU) renderingEnabled() bool {
	return p.mask&(maskShowBg|maskShowSprites) != 0
}

// Step advances the PPU by the given number of dots.
func (p *PPU) Step(dots int) {
	for range dots {
		p.tick()
	}
}

// TakeNMI reports whether the NMI latch is armed, and disarms it.
func (p *PPU) TakeNMI() bool {
	nmi := p.nmiLatch
	p.nmiLatch = false
	return nmi
}

// TakeFrame returns the last completed frame, if one has been completed since
// the last call. The frame must be considered read-only, and is valid until
// the next frame is completed.
func (p *PPU) TakeFrame() (*Frame, bool) {
	if !p.frameReady {
		return nil, false
	}
	p.frameReady = false
	return p.front, true
}

// LastFrame returns the last completed frame.
func (p *PPU) LastFrame() *Frame {
	return p.front
}

func (p *PPU) tick() {
	rendering := p.renderingEnabled()
	preLine := p.Scanline == preRenderLine
	visibleLine := p.Scanline < 240
	renderLine := preLine || visibleLine
	visibleDot := p.Cycle >= 1 && p.Cycle <= 256
	prefetchDot := p.Cycle >= 321 && p.Cycle <= 336
	fetchDot := visibleDot || prefetchDot

	if visibleLine && visibleDot {
		p.renderPixel()
	}

	if rendering {
		if renderLine && fetchDot {
			p.tileData <<= 4
			switch p.Cycle % 8 {
			case 1:
				p.fetchNametableByte()
			case 3:
				p.fetchAttributeByte()
			case 5:
				p.loByte = p.fetchPatternByte(0)
			case 7:
				p.hiByte = p.fetchPatternByte(8)
			case 0:
				p.storeTileData()
			}
		}
		if preLine && p.Cycle >= 280 && p.Cycle <= 304 {
			p.copyY()
		}
		if renderLine {
			if fetchDot && p.Cycle%8 == 0 {
				p.incrementX()
			}
			switch p.Cycle {
			case 256:
				p.incrementY()
			case 257:
				p.copyX()
			case 260:
				if sc, ok := p.mapper.(ScanlineCounter); ok {
					sc.Scanline()
				}
			}
		}
		if p.Cycle == 257 {
			if visibleLine {
				p.evaluateSprites()
			} else {
				p.spriteCount = 0
			}
		}
	}

	switch {
	case p.Scanline == vblankLine && p.Cycle == 1:
		p.status |= statusVblank
		if p.ctrl&ctrlNMI != 0 {
			p.nmiLatch = true
		}
		log.ModPPU.DebugZ("vblank start").
			Int64("frame", p.Frames).
			Bool("nmi", p.nmiLatch).
			End()
	case preLine && p.Cycle == 1:
		p.status &^= statusVblank | statusSprite0Hit | statusOverflow
	}

	p.Cycle++
	// Odd frames are one dot shorter when rendering: dot 339 of the
	// pre-render line is followed by dot 0 of line 0.
	skip := preLine && p.Cycle == 340 && p.oddFrame && rendering
	if p.Cycle < NumCycles && !skip {
		return
	}

	p.Cycle = 0
	p.Scanline++
	switch p.Scanline {
	case 240:
		p.front, p.back = p.back, p.front
		p.frameReady = true
		p.Frames++
		if p.CPU != nil {
			p.CPU.dbg.FrameEnd()
		}
	case NumScanlines:
		p.Scanline = 0
		p.oddFrame = !p.oddFrame
	}
}

/* PPU bus */

// ciramOffset maps a nametable address onto CIRAM.
func (p *PPU) ciramOffset(addr uint16) uint16 {
	off := (addr - 0x2000) & 0xFFF
	table := off >> 10
	switch p.mapper.Mirroring() {
	case ines.HorzMirroring:
		table >>= 1
	case ines.VertMirroring:
		table &= 1
	case ines.OnlyAScreen:
		table = 0
	case ines.OnlyBScreen:
		table = 1
	}
	return table<<10 | off&0x3FF
}

func (p *PPU) ReadNAMETABLES(addr uint16) uint8 {
	return p.ciram[p.ciramOffset(addr)]
}

func (p *PPU) WriteNAMETABLES(addr uint16, val uint8) {
	p.ciram[p.ciramOffset(addr)] = val
}

// paletteIndex folds the palette mirrors: $3F10/$14/$18/$1C are the same
// entries as $3F00/$04/$08/$0C.
func paletteIndex(addr uint16) uint16 {
	i := addr & 0x1F
	if i&0x13 == 0x10 {
		i &^= 0x10
	}
	return i
}

func (p *PPU) ReadPALETTES(addr uint16) uint8 {
	return p.palette[paletteIndex(addr)]
}

func (p *PPU) WritePALETTES(addr uint16, val uint8) {
	p.palette[paletteIndex(addr)] = val & 0x3F
}
