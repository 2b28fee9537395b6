package hw

import (
	"nescore/hw/snapshot"
	"nescore/ines"
)

// Mapper is the cartridge board as seen by the console. The CPU bus forwards
// $6000-$FFFF to it, the PPU bus forwards $0000-$1FFF to it and asks it for
// the current nametable mirroring.
type Mapper interface {
	ReadPRG(addr uint16) uint8
	WritePRG(addr uint16, val uint8)
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, val uint8)
	Mirroring() ines.NTMirroring
}

// ScanlineCounter is implemented by mappers counting scanlines (MMC3). The
// PPU clocks it once per rendered scanline.
type ScanlineCounter interface {
	Scanline()
}

// IRQSource is implemented by mappers able to drive the CPU IRQ line.
type IRQSource interface {
	IRQ() bool
}

// MapperSnapshotter is implemented by mappers supporting save-states.
type MapperSnapshotter interface {
	SaveState(*snapshot.Mapper)
	LoadState(*snapshot.Mapper) error
}
