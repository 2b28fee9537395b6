package hw

import (
	"nescore/emu/log"
	"nescore/hw/hwio"
)

// ppuDMA copies a 256-byte page of CPU memory into OAM when $4014 is
// written. The copy happens at once; the 513 (or 514) cycles during which
// the CPU is suspended are reported through CPU.TakeStall.
type ppuDMA struct {
	OAMDMA hwio.Reg8 `hwio:"offset=0x00,rcb,pcb=ReadOAMDMA,wcb"`

	cpu   *CPU
	stall int
}

func (dma *ppuDMA) initBus(cpu *CPU) {
	hwio.MustInitRegs(dma)
	dma.cpu = cpu
	dma.reset()
}

func (dma *ppuDMA) reset() {
	dma.stall = 0
}

func (dma *ppuDMA) ReadOAMDMA(uint8) uint8 { return dma.cpu.openbus.last }

func (dma *ppuDMA) WriteOAMDMA(_, val uint8) {
	base := uint16(val) << 8
	ppu := dma.cpu.PPU
	for i := range uint16(256) {
		// DMA cycles are accounted as a whole by the stall count.
		b := dma.cpu.Bus.Read8(base | i)
		dma.cpu.openbus.last = b
		if ppu != nil {
			ppu.OAM[ppu.oamAddr] = b
			ppu.oamAddr++
		}
	}

	// One idle cycle, plus an alignment cycle when the transfer starts on an
	// odd cycle, then 256 read/write pairs. The transfer starts on the cycle
	// following the write to $4014.
	dma.stall += 513
	if (dma.cpu.Cycles+int64(dma.cpu.busCycle))%2 == 1 {
		dma.stall++
	}

	log.ModDMA.DebugZ("OAM DMA transfer").
		Hex8("page", val).
		Int("stall", dma.stall).
		End()
}
