package hwio

import "nescore/emu/log"

// Mem is a linear memory area. Data length must be a power of 2; the area
// covers VSize bytes of address space so that a buffer smaller than VSize is
// mirrored.
type Mem struct {
	Name  string
	Data  []byte
	VSize int
	Flags RWFlags

	// WriteCb, if set, is called instead of writing into Data.
	WriteCb func(addr uint16, val uint8)
}

func (m *Mem) bankIO8() BankIO8 {
	if len(m.Data) == 0 || len(m.Data)&(len(m.Data)-1) != 0 {
		panic("hwio: memory buffer size is not pow2: " + m.Name)
	}
	if m.VSize == 0 {
		m.VSize = len(m.Data)
	}
	return &memIO{Mem: m, mask: uint16(len(m.Data) - 1)}
}

type memIO struct {
	*Mem
	mask uint16
}

func (m *memIO) Read8(addr uint16) uint8 { return m.Data[addr&m.mask] }
func (m *memIO) Peek8(addr uint16) uint8 { return m.Data[addr&m.mask] }

func (m *memIO) Write8(addr uint16, val uint8) {
	switch {
	case m.WriteCb != nil:
		m.WriteCb(addr, val)
	case m.Flags&ReadOnlyFlag != 0:
		log.ModHwIo.DebugZ("Write8 to readonly memory").
			String("name", m.Name).
			Hex16("addr", addr).
			Hex8("val", val).
			End()
	default:
		m.Data[addr&m.mask] = val
	}
}
