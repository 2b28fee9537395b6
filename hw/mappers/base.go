package mappers

import (
	"fmt"

	"nescore/hw/hwio"
	"nescore/hw/snapshot"
	"nescore/ines"
)

// base holds what all boards have in common. PRG and CHR accesses go through
// two private buses on which ROM/RAM banks are mapped (and remapped on bank
// switches) as hwio.Mem slices.
type base struct {
	desc MapperDesc
	rom  *ines.Rom

	prg *hwio.Table // $6000-$FFFF
	chr *hwio.Table // $0000-$1FFF

	prgram []byte
	chrram []byte // nil when the cartridge has CHR ROM
	chrmem []byte // CHR ROM or CHR RAM

	mirroring    ines.NTMirroring
	busConflicts bool

	// Set by boards able to disable or write-protect their PRG RAM.
	ramDisabled bool
	ramReadOnly bool

	// writeReg is called on writes to the PRG ROM area ($8000-$FFFF).
	writeReg func(addr uint16, val uint8)

	// regs is set by boards having internal registers.
	regs registers
}

// registers is implemented by boards with internal registers, for
// snapshots. loadRegs must remap banks according to the new values.
type registers interface {
	saveRegs() []uint8
	loadRegs([]uint8) error
}

func ispow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func newbase(desc MapperDesc, rom *ines.Rom) (*base, error) {
	if !ispow2(len(rom.PRG)) {
		return nil, fmt.Errorf("only support PRG ROM with power of 2 size, got %d", len(rom.PRG))
	}
	b := &base{
		desc:      desc,
		rom:       rom,
		prg:       hwio.NewTable("prg"),
		chr:       hwio.NewTable("chr"),
		prgram:    make([]byte, 0x2000),
		mirroring: rom.Mirroring(),
	}
	if len(rom.CHR) == 0 {
		b.chrram = make([]byte, 0x2000)
		b.chrmem = b.chrram
	} else {
		if !ispow2(len(rom.CHR)) {
			return nil, fmt.Errorf("only support CHR ROM with power of 2 size, got %d", len(rom.CHR))
		}
		b.chrmem = rom.CHR
	}
	if desc.HasBusConflicts != nil {
		b.busConflicts = desc.HasBusConflicts(b)
	}
	return b, nil
}

// init maps PRG RAM and sets the function handling writes to PRG ROM.
func (b *base) init(writeReg func(addr uint16, val uint8)) {
	b.writeReg = writeReg
	b.prg.MapDevice(0x6000, &hwio.Device{
		Name:    "PRGRAM",
		Size:    0x2000,
		ReadCb:  b.readPRGRAM,
		PeekCb:  b.readPRGRAM,
		WriteCb: b.writePRGRAM,
	})
}

// A disabled PRG RAM doesn't drive the data bus, which still holds the high
// byte of the address, fetched last by absolute addressing modes.
func (b *base) readPRGRAM(addr uint16) uint8 {
	if b.ramDisabled {
		return uint8(addr >> 8)
	}
	return b.prgram[addr&0x1FFF]
}

func (b *base) writePRGRAM(addr uint16, val uint8) {
	if b.ramDisabled || b.ramReadOnly {
		modMapper.DebugZ("write to protected PRG RAM").
			String("mapper", b.desc.Name).
			Hex16("addr", addr).
			Hex8("val", val).
			End()
		return
	}
	b.prgram[addr&0x1FFF] = val
}

func (b *base) writePRGROM(addr uint16, val uint8) {
	if b.busConflicts {
		// The value on the bus is the AND of what the CPU writes and what
		// the ROM outputs.
		val &= b.prg.Peek8(addr)
	}
	if b.writeReg != nil {
		b.writeReg(addr, val)
	}
}

// bankSlice returns the given bank of buf. Negative bank numbers count from
// the end, bank numbers wrap around the number of banks. If buf is smaller
// than the bank size the whole buffer is returned (and mirrored by hwio).
func bankSlice(buf []byte, size, bank int) []byte {
	if len(buf) <= size {
		return buf
	}
	nbanks := len(buf) / size
	bank %= nbanks
	if bank < 0 {
		bank += nbanks
	}
	return buf[bank*size : (bank+1)*size]
}

func (b *base) mapPRG(addr uint16, size, bank int) {
	b.prg.Unmap(addr, addr+uint16(size-1))
	b.prg.MapMem(addr, &hwio.Mem{
		Name:    "PRGROM",
		Data:    bankSlice(b.rom.PRG, size, bank),
		VSize:   size,
		Flags:   hwio.ReadOnlyFlag,
		WriteCb: b.writePRGROM,
	})
}

func (b *base) mapCHR(addr uint16, size, bank int) {
	var flags hwio.RWFlags
	name := "CHRRAM"
	if b.chrram == nil {
		flags = hwio.ReadOnlyFlag
		name = "CHRROM"
	}
	b.chr.Unmap(addr, addr+uint16(size-1))
	b.chr.MapMem(addr, &hwio.Mem{
		Name:  name,
		Data:  bankSlice(b.chrmem, size, bank),
		VSize: size,
		Flags: flags,
	})
}

func (b *base) selectPRGPage8KB(slot, bank int) {
	b.mapPRG(0x8000+uint16(slot)*0x2000, 0x2000, bank)
}

func (b *base) selectPRGPage16KB(slot, bank int) {
	b.mapPRG(0x8000+uint16(slot)*0x4000, 0x4000, bank)
}

func (b *base) selectPRGPage32KB(bank int) {
	b.mapPRG(0x8000, 0x8000, bank)
}

func (b *base) selectCHRPage1KB(slot, bank int) {
	b.mapCHR(uint16(slot)*0x400, 0x400, bank)
}

func (b *base) selectCHRPage4KB(slot, bank int) {
	b.mapCHR(uint16(slot)*0x1000, 0x1000, bank)
}

func (b *base) selectCHRPage8KB(bank int) {
	b.mapCHR(0x0000, 0x2000, bank)
}

func (b *base) setNTMirroring(m ines.NTMirroring) {
	if b.mirroring == m {
		return
	}
	modMapper.DebugZ("select NT mirroring").
		String("mapper", b.desc.Name).
		Stringer("prev", b.mirroring).
		Stringer("new", m).
		End()
	b.mirroring = m
}

/* hw.Mapper implementation */

func (b *base) ReadPRG(addr uint16) uint8       { return b.prg.Read8(addr) }
func (b *base) WritePRG(addr uint16, val uint8) { b.prg.Write8(addr, val) }
func (b *base) ReadCHR(addr uint16) uint8       { return b.chr.Read8(addr) }
func (b *base) WriteCHR(addr uint16, val uint8) { b.chr.Write8(addr, val) }
func (b *base) Mirroring() ines.NTMirroring     { return b.mirroring }
func (b *base) String() string                  { return b.desc.Name }

/* hw.MapperSnapshotter implementation */

func (b *base) SaveState(s *snapshot.Mapper) {
	s.Name = b.desc.Name
	s.Mirroring = uint8(b.mirroring)
	s.PRGRAM = append([]byte(nil), b.prgram...)
	s.CHRRAM = append([]byte(nil), b.chrram...)
	s.Regs = nil
	if b.regs != nil {
		s.Regs = b.regs.saveRegs()
	}
}

func (b *base) LoadState(s *snapshot.Mapper) error {
	if s.Name != b.desc.Name {
		return fmt.Errorf("snapshot is for mapper %s, not %s", s.Name, b.desc.Name)
	}
	if len(s.PRGRAM) != len(b.prgram) || len(s.CHRRAM) != len(b.chrram) {
		return fmt.Errorf("snapshot memory sizes don't match the cartridge")
	}
	if b.regs != nil {
		if err := b.regs.loadRegs(s.Regs); err != nil {
			return err
		}
	}
	copy(b.prgram, s.PRGRAM)
	copy(b.chrram, s.CHRRAM)
	b.mirroring = ines.NTMirroring(s.Mirroring)
	return nil
}

func checkRegs(regs []uint8, n int) error {
	if len(regs) != n {
		return fmt.Errorf("got %d mapper registers, want %d", len(regs), n)
	}
	return nil
}
