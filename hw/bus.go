package hw

import (
	"nescore/emu/log"
	"nescore/hw/hwio"
)

// CPU memory map:
//
//	$0000-$07FF  2KB internal RAM
//	$0800-$1FFF  mirrors of $0000-$07FF
//	$2000-$2007  PPU registers
//	$2008-$3FFF  mirrors of $2000-$2007, every 8 bytes
//	$4000-$4013  APU registers
//	$4014        OAM DMA
//	$4015        APU status
//	$4016-$4017  controller ports (writes to $4017 go to the APU frame counter)
//	$4018-$401F  test mode registers, unused
//	$4020-$5FFF  expansion area, unused by supported boards
//	$6000-$FFFF  cartridge (PRG RAM and PRG ROM)
//
// Unmapped addresses and write-only registers read back the last value seen
// on the data bus.
func (c *CPU) InitBus(cart Mapper) {
	hwio.MustInitRegs(c)
	c.Bus.Reset()
	c.Bus.Unmapped = &c.openbus

	c.Bus.MapBank(0x0000, c, 0)

	for off := uint16(0x2000); off < 0x4000; off += 8 {
		c.Bus.MapBank(off, c.PPU, 1)
	}

	c.APU.initBus(&c.openbus)
	c.Bus.MapBank(0x4000, &c.APU, 0)

	c.PPUDMA.initBus(c)
	c.Bus.MapBank(0x4014, &c.PPUDMA, 0)

	c.Input.initBus(&c.openbus, &c.APU)
	c.Bus.MapBank(0x4000, &c.Input, 0)

	if cart != nil {
		c.Bus.MapDevice(0x6000, &hwio.Device{
			Name:    "cartridge",
			Size:    0xA000,
			ReadCb:  cart.ReadPRG,
			PeekCb:  cart.ReadPRG,
			WriteCb: cart.WritePRG,
		})
	}
}

// openBus holds the last value driven on the CPU data bus.
type openBus struct{ last uint8 }

func (ob *openBus) Read8(uint16) uint8   { return ob.last }
func (ob *openBus) Peek8(uint16) uint8   { return ob.last }
func (ob *openBus) Write8(uint16, uint8) {}

// apuRegs stands in for the APU. Sound generation is not emulated so writes
// to the registers are only logged; they are write-only anyway, except
// $4015.
type apuRegs struct {
	Regs   hwio.Device `hwio:"offset=0x00,size=0x14,rcb,pcb=ReadREGS,wcb"`
	Status hwio.Reg8   `hwio:"offset=0x15,rcb,pcb=ReadSTATUS,wcb"`

	bus *openBus
}

func (apu *apuRegs) initBus(bus *openBus) {
	hwio.MustInitRegs(apu)
	apu.bus = bus
}

func (apu *apuRegs) ReadREGS(uint16) uint8 { return apu.bus.last }

func (apu *apuRegs) WriteREGS(addr uint16, val uint8) {
	log.ModEmu.DebugZ("APU register write").Hex16("addr", addr).Hex8("val", val).End()
}

// $4015 reads return 0 in all status bits: no channel is ever playing.
func (apu *apuRegs) ReadSTATUS(uint8) uint8 { return apu.bus.last & 0x20 }

func (apu *apuRegs) WriteSTATUS(_, val uint8) {
	log.ModEmu.DebugZ("APU status write").Hex8("val", val).End()
}

func (apu *apuRegs) writeFrameCounter(val uint8) {
	log.ModEmu.DebugZ("APU frame counter write").Hex8("val", val).End()
}
