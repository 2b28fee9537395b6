// Package mappers implements the cartridge boards supported by the emulator.
package mappers

import (
	"errors"
	"fmt"

	"nescore/emu/log"
	"nescore/hw"
	"nescore/ines"
)

var modMapper = log.NewModule("mapper")

// ErrUnsupportedMapper is returned by Load for mapper numbers without
// implementation.
var ErrUnsupportedMapper = errors.New("unsupported mapper")

// Load creates the board described by the rom header.
func Load(rom *ines.Rom) (hw.Mapper, error) {
	desc, ok := All[rom.Mapper()]
	if !ok {
		return nil, fmt.Errorf("%w %d", ErrUnsupportedMapper, rom.Mapper())
	}
	b, err := newbase(desc, rom)
	if err != nil {
		return nil, fmt.Errorf("mapper initialization failed: %w", err)
	}
	m, err := desc.Load(b)
	if err != nil {
		return nil, fmt.Errorf("failed to load mapper %s: %w", desc.Name, err)
	}
	modMapper.InfoZ("mapper loaded").
		String("name", desc.Name).
		Int("prg", len(rom.PRG)).
		Int("chr", len(rom.CHR)).
		Stringer("mirroring", b.mirroring).
		End()
	return m, nil
}

type MapperDesc struct {
	Name            string
	Load            func(*base) (hw.Mapper, error)
	HasBusConflicts func(*base) bool
}

// submapper 2 of discrete logic boards denotes bus conflicts.
func submapper2(b *base) bool { return b.rom.SubMapper() == 2 }

var All = map[uint16]MapperDesc{
	0:  NROM,
	1:  MMC1,
	2:  UxROM,
	3:  CNROM,
	4:  MMC3,
	7:  AxROM,
	66: GxROM,
}
