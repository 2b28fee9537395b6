package emu

import (
	"fmt"

	"nescore/emu/log"
	"nescore/hw"
	"nescore/hw/mappers"
	"nescore/hw/snapshot"
	"nescore/ines"
)

// FrameSink receives completed frames. The frame is only valid during the
// call.
type FrameSink interface {
	Frame(*hw.Frame)
}

// NES is an emulation session: a console with a cartridge inserted. Its
// methods must be called from a single goroutine.
type NES struct {
	CPU    *hw.CPU
	PPU    *hw.PPU
	Mapper hw.Mapper
	Rom    *ines.Rom

	// Input holds the buttons pressed on both controllers.
	Input *hw.StaticInput

	// Sink, if set, receives each completed frame.
	Sink FrameSink

	irq hw.IRQSource

	// RunCycle state.
	pending    int  // cycles left of the current instruction or interrupt
	ahead      int  // cycles of the sequence the PPU already ran
	afterInstr bool // interrupts must be polled before the next instruction
}

// PowerUp creates a session for rom and runs the power-up reset sequence.
func PowerUp(rom *ines.Rom) (*NES, error) {
	m, err := mappers.Load(rom)
	if err != nil {
		return nil, err
	}

	ppu := hw.NewPPU()
	cpu := hw.NewCPU(ppu)
	ppu.InitBus(m)
	cpu.InitBus(m)

	nes := &NES{
		CPU:    cpu,
		PPU:    ppu,
		Mapper: m,
		Rom:    rom,
		Input:  &hw.StaticInput{},
	}
	nes.irq, _ = m.(hw.IRQSource)
	cpu.Input.Connect(nes.Input)

	nes.Reset(false)
	return nes, nil
}

// Reset resets the console, as the reset button (soft) or the power switch
// would do.
func (nes *NES) Reset(soft bool) {
	nes.PPU.Reset()
	cycles := nes.CPU.Reset(soft)
	nes.syncPPU(cycles)
	nes.pending, nes.ahead = 0, 0
	nes.afterInstr = false

	log.ModEmu.InfoZ("reset").
		Bool("soft", soft).
		Hex16("pc", nes.CPU.PC).
		End()
}

// RunInstruction executes one CPU instruction, advances the PPU accordingly,
// then services a pending interrupt. It returns the number of CPU cycles
// elapsed.
func (nes *NES) RunInstruction() int {
	cycles, _ := nes.runInstruction()
	return cycles
}

func (nes *NES) runInstruction() (int, bool) {
	cycles := nes.CPU.Step()
	cycles += nes.CPU.TakeStall()
	nes.syncPPU(cycles)

	icycles := nes.interrupt()
	nes.syncPPU(icycles)

	return cycles + icycles, nes.deliverFrame()
}

// syncPPU runs the PPU for the cycles of the last CPU sequence it hasn't
// already been advanced by, while the CPU accessed its registers.
func (nes *NES) syncPPU(cycles int) {
	nes.PPU.Step(3 * (cycles - nes.CPU.TakePPUSynced()))
}

// interrupt services the NMI if the PPU latched one, or an IRQ if the IRQ
// line is asserted and IRQs aren't masked. It returns the number of cycles
// of the interrupt sequence.
func (nes *NES) interrupt() int {
	switch {
	case nes.PPU.TakeNMI():
		return nes.CPU.ServiceInterrupt(hw.IntNMI)
	case nes.irq != nil && nes.irq.IRQ() && !nes.CPU.P.I():
		return nes.CPU.ServiceInterrupt(hw.IntIRQ)
	}
	return 0
}

func (nes *NES) deliverFrame() bool {
	frame, ok := nes.PPU.TakeFrame()
	if ok && nes.Sink != nil {
		nes.Sink.Frame(frame)
	}
	return ok
}

// RunCycle advances the console by a single CPU cycle. An instruction or an
// interrupt sequence is executed as a whole on its first cycle, the PPU being
// caught up before each access to its registers; the following calls consume
// the remaining cycles.
func (nes *NES) RunCycle() {
	if nes.pending == 0 {
		nes.pending = nes.startSequence()
		nes.ahead = nes.CPU.TakePPUSynced()
	}
	if nes.ahead > 0 {
		nes.ahead--
	} else {
		nes.PPU.Step(3)
	}
	nes.pending--
	nes.deliverFrame()
}

func (nes *NES) startSequence() int {
	if nes.afterInstr {
		nes.afterInstr = false
		if cycles := nes.interrupt(); cycles > 0 {
			return cycles
		}
	}
	nes.afterInstr = true
	return nes.CPU.Step() + nes.CPU.TakeStall()
}

// RunFrame runs instructions until the PPU completes a frame.
func (nes *NES) RunFrame() {
	for {
		if _, done := nes.runInstruction(); done {
			return
		}
	}
}

// SaveSnapshot returns the serialized state of the session.
func (nes *NES) SaveSnapshot() ([]byte, error) {
	ms, ok := nes.Mapper.(hw.MapperSnapshotter)
	if !ok {
		return nil, fmt.Errorf("mapper %v doesn't support snapshots", nes.Mapper)
	}

	s := &snapshot.NES{Version: snapshot.Version}
	nes.CPU.SaveState(s)
	nes.PPU.SaveState(&s.PPU)
	ms.SaveState(&s.Mapper)
	return snapshot.Encode(s), nil
}

// LoadSnapshot restores a state saved with SaveSnapshot. The session is left
// untouched on error.
func (nes *NES) LoadSnapshot(buf []byte) error {
	ms, ok := nes.Mapper.(hw.MapperSnapshotter)
	if !ok {
		return fmt.Errorf("mapper %v doesn't support snapshots", nes.Mapper)
	}
	s, err := snapshot.Decode(buf)
	if err != nil {
		return err
	}
	if err := ms.LoadState(&s.Mapper); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	nes.CPU.LoadState(s)
	nes.PPU.LoadState(&s.PPU)
	nes.pending, nes.ahead = 0, 0
	nes.afterInstr = false
	return nil
}
