package mappers

import (
	"nescore/hw"
	"nescore/ines"
)

var AxROM = MapperDesc{
	Name:            "AxROM",
	Load:            loadAxROM,
	HasBusConflicts: submapper2,
}

type axrom struct {
	*base

	reg uint8
}

func (m *axrom) writeReg(_ uint16, val uint8) {
	// 7  bit  0
	// ---- ----
	// xxxM xPPP
	//    |  |||
	//    |  +++- Select 32 KB PRG ROM bank for CPU $8000-$FFFF
	//    +------ Select 1 KB VRAM page for all 4 nametables
	m.reg = val
	m.remap()
}

func (m *axrom) remap() {
	m.selectPRGPage32KB(int(m.reg & 0x07))
	if m.reg&0x10 != 0 {
		m.setNTMirroring(ines.OnlyBScreen)
	} else {
		m.setNTMirroring(ines.OnlyAScreen)
	}
}

func (m *axrom) saveRegs() []uint8 { return []uint8{m.reg} }

func (m *axrom) loadRegs(regs []uint8) error {
	if err := checkRegs(regs, 1); err != nil {
		return err
	}
	m.reg = regs[0]
	m.remap()
	return nil
}

func loadAxROM(b *base) (hw.Mapper, error) {
	m := &axrom{base: b}
	b.regs = m
	b.init(m.writeReg)

	b.selectCHRPage8KB(0)
	m.remap()
	return m, nil
}
