package hwio

import (
	"fmt"

	"nescore/emu/log"
)

// Table is an address bus. Each address is served by at most one BankIO8;
// accesses to unmapped addresses go to Unmapped when set.
type Table struct {
	Name string

	// Unmapped, if not nil, serves accesses to unmapped addresses. On the NES
	// this is where open bus behavior is implemented.
	Unmapped BankIO8

	table8 radixTree
}

func NewTable(name string) *Table {
	return &Table{Name: name}
}

// Reset unmaps everything.
func (t *Table) Reset() {
	t.table8 = radixTree{}
}

// MapBank maps all the Mem, Reg8 and Device fields of the struct pointed to
// by bank that are tagged with the given bank number. Each field is mapped
// at addr plus its offset. See InitRegs for the syntax of the hwio tag.
func (t *Table) MapBank(addr uint16, bank any, bankNum int) {
	regs, err := bankGetRegs(bank, bankNum)
	if err != nil {
		panic(err)
	}

	for _, reg := range regs {
		switch r := reg.regPtr.(type) {
		case *Mem:
			t.MapMem(addr+reg.offset, r)
		case *Reg8:
			t.MapReg8(addr+reg.offset, r)
		case *Device:
			t.MapDevice(addr+reg.offset, r)
		default:
			panic(fmt.Errorf("invalid reg type: %T", r))
		}
	}
}

func (t *Table) UnmapBank(addr uint16, bank any, bankNum int) {
	regs, err := bankGetRegs(bank, bankNum)
	if err != nil {
		panic(err)
	}

	for _, reg := range regs {
		begin := addr + reg.offset
		switch r := reg.regPtr.(type) {
		case *Mem:
			t.Unmap(begin, begin+uint16(r.VSize-1))
		case *Reg8:
			t.Unmap(begin, begin)
		case *Device:
			t.Unmap(begin, begin+uint16(r.Size-1))
		default:
			panic(fmt.Errorf("invalid reg type: %T", r))
		}
	}
}

func (t *Table) mapBus8(addr uint16, size int, io BankIO8) {
	if size <= 0 || int(addr)+size > 0x10000 {
		panic(fmt.Errorf("%s: invalid mapping at %04X (size %d)", t.Name, addr, size))
	}
	if err := t.table8.InsertRange(addr, addr+uint16(size-1), io); err != nil {
		panic(fmt.Errorf("%s: %w", t.Name, err))
	}
}

func (t *Table) MapReg8(addr uint16, reg *Reg8) {
	t.mapBus8(addr, 1, reg)
}

// MapRegMirrors maps the same register every stride bytes over [begin, end].
func (t *Table) MapRegMirrors(begin, end, stride uint16, reg *Reg8) {
	for a := uint32(begin); a <= uint32(end); a += uint32(stride) {
		t.mapBus8(uint16(a), 1, reg)
	}
}

func (t *Table) MapDevice(addr uint16, dev *Device) {
	log.ModHwIo.DebugZ("mapping device").
		Hex16("addr", addr).
		Int("size", dev.Size).
		String("dev", dev.Name).
		String("bus", t.Name).
		End()

	t.mapBus8(addr, dev.Size, dev)
}

func (t *Table) MapMem(addr uint16, mem *Mem) {
	log.ModHwIo.DebugZ("mapping mem").
		Hex16("addr", addr).
		Int("size", mem.VSize).
		String("area", mem.Name).
		String("bus", t.Name).
		End()

	t.mapBus8(addr, mem.VSize, mem.bankIO8())
}

// MapMemorySlice maps buf over [addr, end]. The slice length must be a power
// of 2, it's mirrored if smaller than the range.
func (t *Table) MapMemorySlice(addr, end uint16, buf []uint8, readonly bool) {
	var flags RWFlags
	if readonly {
		flags |= ReadOnlyFlag
	}
	t.MapMem(addr, &Mem{
		Name:  fmt.Sprintf("slice-%04X", addr),
		Data:  buf,
		Flags: flags,
		VSize: int(end) - int(addr) + 1,
	})
}

func (t *Table) Unmap(begin, end uint16) {
	t.table8.RemoveRange(begin, end)
}

func (t *Table) Read8(addr uint16) uint8 {
	io := t.table8.Search(addr)
	if io == nil {
		if t.Unmapped != nil {
			return t.Unmapped.Read8(addr)
		}
		return 0
	}
	return io.Read8(addr)
}

func (t *Table) Peek8(addr uint16) uint8 {
	io := t.table8.Search(addr)
	if io == nil {
		if t.Unmapped != nil {
			return t.Unmapped.Peek8(addr)
		}
		return 0
	}
	return io.Peek8(addr)
}

func (t *Table) Write8(addr uint16, val uint8) {
	io := t.table8.Search(addr)
	if io == nil {
		if t.Unmapped != nil {
			t.Unmapped.Write8(addr, val)
		}
		return
	}
	io.Write8(addr, val)
}
