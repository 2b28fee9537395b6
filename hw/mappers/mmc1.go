package mappers

import (
	"nescore/hw"
	"nescore/ines"
)

var MMC1 = MapperDesc{
	Name: "MMC1",
	Load: loadMMC1,
}

// mmc1 registers are written serially: 5 writes of bit 0 to $8000-$FFFF,
// the address of the 5th write selects the register.
type mmc1 struct {
	*base

	serial  uint8 // shift register
	counter uint8 // count of bits shifted

	ctrl     uint8 // $8000-$9FFF
	chrbank0 uint8 // $A000-$BFFF
	chrbank1 uint8 // $C000-$DFFF
	prgbank  uint8 // $E000-$FFFF
}

func (m *mmc1) writeReg(addr uint16, val uint8) {
	if val&0x80 != 0 {
		// Reset the shift register and set PRG mode 3 ($8000 swappable,
		// $C000 fixed to the last bank). Other bits are unchanged.
		m.serial = 0
		m.counter = 0
		m.ctrl |= 0x0C
		m.remap()
		return
	}

	m.serial = m.serial>>1 | (val&1)<<4
	m.counter++
	if m.counter < 5 {
		return
	}

	val = m.serial
	m.serial = 0
	m.counter = 0

	switch (addr >> 13) & 3 {
	case 0:
		m.ctrl = val
	case 1:
		m.chrbank0 = val
	case 2:
		m.chrbank1 = val
	case 3:
		m.prgbank = val
	}
	modMapper.DebugZ("register write").
		String("mapper", m.desc.Name).
		Hex16("addr", addr).
		Uint8("val", val).
		End()
	m.remap()
}

func (m *mmc1) remap() {
	// CTRL: CPPMM
	//       |||++- Nametable mirroring (0: one-screen lower bank; 1:
	//       |||    one-screen upper bank; 2: vertical; 3: horizontal)
	//       |++--- PRG ROM bank mode (0, 1: switch 32 KB at $8000;
	//       |      2: fix first bank at $8000 and switch 16 KB bank at $C000;
	//       |      3: fix last bank at $C000 and switch 16 KB bank at $8000)
	//       +----- CHR ROM bank mode (0: switch 8 KB; 1: two 4 KB banks)
	switch m.ctrl & 3 {
	case 0:
		m.setNTMirroring(ines.OnlyAScreen)
	case 1:
		m.setNTMirroring(ines.OnlyBScreen)
	case 2:
		m.setNTMirroring(ines.VertMirroring)
	case 3:
		m.setNTMirroring(ines.HorzMirroring)
	}

	prg := int(m.prgbank & 0x0F)
	switch (m.ctrl >> 2) & 3 {
	case 0, 1:
		m.selectPRGPage32KB(prg >> 1)
	case 2:
		m.selectPRGPage16KB(0, 0)
		m.selectPRGPage16KB(1, prg)
	case 3:
		m.selectPRGPage16KB(0, prg)
		m.selectPRGPage16KB(1, -1)
	}

	if m.ctrl&0x10 == 0 {
		m.selectCHRPage8KB(int(m.chrbank0 >> 1))
	} else {
		m.selectCHRPage4KB(0, int(m.chrbank0))
		m.selectCHRPage4KB(1, int(m.chrbank1))
	}
}

func (m *mmc1) saveRegs() []uint8 {
	return []uint8{m.serial, m.counter, m.ctrl, m.chrbank0, m.chrbank1, m.prgbank}
}

func (m *mmc1) loadRegs(regs []uint8) error {
	if err := checkRegs(regs, 6); err != nil {
		return err
	}
	m.serial, m.counter = regs[0], regs[1]
	m.ctrl, m.chrbank0, m.chrbank1, m.prgbank = regs[2], regs[3], regs[4], regs[5]
	m.remap()
	return nil
}

func loadMMC1(b *base) (hw.Mapper, error) {
	m := &mmc1{base: b}
	b.regs = m
	b.init(m.writeReg)

	// On power up bits 2,3 of CTRL are set: $C000 holds the last bank,
	// where the reset vector is.
	m.ctrl = 0x0C
	m.remap()
	return m, nil
}
