package mappers

import "nescore/hw"

var CNROM = MapperDesc{
	Name:            "CNROM",
	Load:            loadCNROM,
	HasBusConflicts: submapper2,
}

type cnrom struct {
	*base

	chrbank uint8
}

func (m *cnrom) writeReg(_ uint16, val uint8) {
	// 7  bit  0
	// ---- ----
	// cccc ccCC
	// |||| ||||
	// ++++-++++- Select 8 KB CHR ROM bank for PPU $0000-$1FFF
	if val == m.chrbank {
		return
	}
	modMapper.DebugZ("CHR bank switch").
		String("mapper", m.desc.Name).
		Uint8("prev", m.chrbank).
		Uint8("new", val).
		End()
	m.chrbank = val
	m.selectCHRPage8KB(int(m.chrbank))
}

func (m *cnrom) saveRegs() []uint8 { return []uint8{m.chrbank} }

func (m *cnrom) loadRegs(regs []uint8) error {
	if err := checkRegs(regs, 1); err != nil {
		return err
	}
	m.chrbank = regs[0]
	m.selectCHRPage8KB(int(m.chrbank))
	return nil
}

func loadCNROM(b *base) (hw.Mapper, error) {
	m := &cnrom{base: b}
	b.regs = m
	b.init(m.writeReg)

	b.selectPRGPage32KB(0)
	b.selectCHRPage8KB(0)
	return m, nil
}
