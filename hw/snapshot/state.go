// Package snapshot defines the save-state of an emulated console and its
// JSON encoding.
package snapshot

// Version is incremented each time the layout of the snapshot changes.
const Version = 1

// PPU timing bounds.
const (
	ScanlinesPerFrame = 262
	DotsPerScanline   = 341
)

type NES struct {
	Version int
	CPU     CPU
	RAM     [0x800]uint8
	PPU     PPU
	Mapper  Mapper
}

type CPU struct {
	PC uint16
	SP uint8
	P  uint8
	A  uint8
	X  uint8
	Y  uint8

	Cycles int64
	Halted bool

	// value of the last CPU bus access.
	OpenBus uint8
}

type PPU struct {
	Palette [0x20]uint8
	OAM     [0x100]uint8
	CIRAM   [0x1000]uint8

	OpenBus    uint8
	OAMAddr    uint8
	VRAMAddr   uint16
	VRAMTemp   uint16
	FineX      uint8
	WriteLatch bool
	ReadBuf    uint8

	PPUCTRL   uint8
	PPUMASK   uint8
	PPUSTATUS uint8

	Cycle    int
	Scanline int
	Frames   int64
	OddFrame bool
	NMILatch bool
}

type Mapper struct {
	Name      string
	Mirroring uint8
	PRGRAM    []uint8
	CHRRAM    []uint8

	// Board specific registers.
	Regs []uint8
}
