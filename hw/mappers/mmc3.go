package mappers

import (
	"nescore/hw"
	"nescore/ines"
)

var MMC3 = MapperDesc{
	Name: "MMC3",
	Load: loadMMC3,
}

type mmc3 struct {
	*base

	bankSelect uint8
	banks      [8]uint8 // R0-R7
	mirror     uint8
	ramProtect uint8

	irqLatch   uint8
	irqCounter uint8
	irqReload  bool
	irqEnabled bool
	irqPending bool
}

func (m *mmc3) writeReg(addr uint16, val uint8) {
	switch addr & 0xE001 {
	case 0x8000:
		m.bankSelect = val
		m.remap()
	case 0x8001:
		m.banks[m.bankSelect&7] = val
		m.remap()
	case 0xA000:
		m.mirror = val
		m.remap()
	case 0xA001:
		m.ramProtect = val
		m.protectRAM()
	case 0xC000:
		m.irqLatch = val
	case 0xC001:
		m.irqCounter = 0
		m.irqReload = true
	case 0xE000:
		m.irqEnabled = false
		m.irqPending = false
	case 0xE001:
		m.irqEnabled = true
	}
}

func (m *mmc3) remap() {
	if m.rom.Mirroring() != ines.FourScreen {
		if m.mirror&1 == 0 {
			m.setNTMirroring(ines.VertMirroring)
		} else {
			m.setNTMirroring(ines.HorzMirroring)
		}
	}

	// PRG mode 0: $8000 = R6, $C000 = second to last bank.
	// PRG mode 1: $8000 = second to last bank, $C000 = R6.
	r6, fixed := int(m.banks[6]), -2
	if m.bankSelect&0x40 != 0 {
		r6, fixed = fixed, r6
	}
	m.selectPRGPage8KB(0, r6)
	m.selectPRGPage8KB(1, int(m.banks[7]))
	m.selectPRGPage8KB(2, fixed)
	m.selectPRGPage8KB(3, -1)

	// CHR mode 0: 2KB banks (R0, R1) at $0000, 1KB banks (R2-R5) at $1000.
	// CHR mode 1: the same with both halves swapped.
	var inv int
	if m.bankSelect&0x80 != 0 {
		inv = 4
	}
	m.selectCHRPage1KB(0^inv, int(m.banks[0]&0xFE))
	m.selectCHRPage1KB(1^inv, int(m.banks[0]|0x01))
	m.selectCHRPage1KB(2^inv, int(m.banks[1]&0xFE))
	m.selectCHRPage1KB(3^inv, int(m.banks[1]|0x01))
	m.selectCHRPage1KB(4^inv, int(m.banks[2]))
	m.selectCHRPage1KB(5^inv, int(m.banks[3]))
	m.selectCHRPage1KB(6^inv, int(m.banks[4]))
	m.selectCHRPage1KB(7^inv, int(m.banks[5]))
}

// $A001: bit 7 enables PRG RAM, bit 6 denies writes to it.
func (m *mmc3) protectRAM() {
	m.ramDisabled = m.ramProtect&0x80 == 0
	m.ramReadOnly = m.ramProtect&0x40 != 0
}

// Scanline clocks the IRQ counter, the PPU calls it once per rendered
// scanline.
func (m *mmc3) Scanline() {
	if m.irqCounter == 0 || m.irqReload {
		m.irqCounter = m.irqLatch
		m.irqReload = false
	} else {
		m.irqCounter--
	}
	if m.irqCounter == 0 && m.irqEnabled {
		m.irqPending = true
	}
}

// IRQ reports whether the IRQ line is asserted. It stays asserted until
// acknowledged by a write to $E000.
func (m *mmc3) IRQ() bool { return m.irqPending }

func (m *mmc3) saveRegs() []uint8 {
	regs := []uint8{
		m.bankSelect, m.mirror, m.ramProtect,
		m.irqLatch, m.irqCounter,
		b2u8(m.irqReload), b2u8(m.irqEnabled), b2u8(m.irqPending),
	}
	return append(regs, m.banks[:]...)
}

func (m *mmc3) loadRegs(regs []uint8) error {
	if err := checkRegs(regs, 16); err != nil {
		return err
	}
	m.bankSelect, m.mirror, m.ramProtect = regs[0], regs[1], regs[2]
	m.irqLatch, m.irqCounter = regs[3], regs[4]
	m.irqReload, m.irqEnabled, m.irqPending = regs[5] != 0, regs[6] != 0, regs[7] != 0
	copy(m.banks[:], regs[8:])
	m.remap()
	m.protectRAM()
	return nil
}

func b2u8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func loadMMC3(b *base) (hw.Mapper, error) {
	// PRG RAM is enabled until the program says otherwise.
	m := &mmc3{base: b, ramProtect: 0x80}
	b.regs = m
	b.init(m.writeReg)
	m.remap()
	return m, nil
}
