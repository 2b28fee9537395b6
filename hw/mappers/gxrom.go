package mappers

import "nescore/hw"

var GxROM = MapperDesc{
	Name: "GxROM",
	Load: loadGxROM,
}

type gxrom struct {
	*base

	reg uint8
}

func (m *gxrom) writeReg(_ uint16, val uint8) {
	// 7  bit  0
	// ---- ----
	// xxPP xxCC
	//   ||   ||
	//   ||   ++- Select 8 KB CHR ROM bank for PPU $0000-$1FFF
	//   ++------ Select 32 KB PRG ROM bank for CPU $8000-$FFFF
	m.reg = val
	m.remap()
}

func (m *gxrom) remap() {
	m.selectPRGPage32KB(int(m.reg>>4) & 0x03)
	m.selectCHRPage8KB(int(m.reg & 0x03))
}

func (m *gxrom) saveRegs() []uint8 { return []uint8{m.reg} }

func (m *gxrom) loadRegs(regs []uint8) error {
	if err := checkRegs(regs, 1); err != nil {
		return err
	}
	m.reg = regs[0]
	m.remap()
	return nil
}

func loadGxROM(b *base) (hw.Mapper, error) {
	m := &gxrom{base: b}
	b.regs = m
	b.init(m.writeReg)
	m.remap()
	return m, nil
}
