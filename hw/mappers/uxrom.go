package mappers

import "nescore/hw"

var UxROM = MapperDesc{
	Name:            "UxROM",
	Load:            loadUxROM,
	HasBusConflicts: submapper2,
}

type uxrom struct {
	*base

	prgbank uint8
}

func (m *uxrom) writeReg(_ uint16, val uint8) {
	// 7  bit  0
	// ---- ----
	// xxxx pPPP
	//      ||||
	//      ++++- Select 16 KB PRG ROM bank for CPU $8000-$BFFF
	//            (UNROM uses bits 2-0; UOROM uses bits 3-0)
	if val == m.prgbank {
		return
	}
	m.prgbank = val
	m.selectPRGPage16KB(0, int(m.prgbank))
}

func (m *uxrom) saveRegs() []uint8 { return []uint8{m.prgbank} }

func (m *uxrom) loadRegs(regs []uint8) error {
	if err := checkRegs(regs, 1); err != nil {
		return err
	}
	m.prgbank = regs[0]
	m.selectPRGPage16KB(0, int(m.prgbank))
	return nil
}

func loadUxROM(b *base) (hw.Mapper, error) {
	m := &uxrom{base: b}
	b.regs = m
	b.init(m.writeReg)

	b.selectCHRPage8KB(0)
	b.selectPRGPage16KB(0, 0)
	b.selectPRGPage16KB(1, -1)
	return m, nil
}
