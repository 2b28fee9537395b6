package mappers

import "nescore/hw"

var NROM = MapperDesc{
	Name: "NROM",
	Load: loadNROM,
}

// nrom has no registers: 16 or 32KB of PRG ROM (16KB is mirrored at $C000)
// and 8KB of CHR.
type nrom struct {
	*base
}

func loadNROM(b *base) (hw.Mapper, error) {
	b.init(nil)
	b.selectPRGPage32KB(0)
	b.selectCHRPage8KB(0)
	return &nrom{base: b}, nil
}
