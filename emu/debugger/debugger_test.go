package debugger

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"nescore/hw"
	"nescore/hw/hwio"
)

func newCPU(t *testing.T, prog map[uint16][]byte) *hw.CPU {
	t.Helper()

	mem := make([]byte, 0x10000)
	for addr, code := range prog {
		copy(mem[addr:], code)
	}
	cpu := hw.NewCPU(nil)
	cpu.Bus = hwio.NewTable("dbgtest")
	cpu.Bus.MapMem(0x0000, &hwio.Mem{
		Name:  "flat",
		Data:  mem,
		VSize: 0x10000,
	})
	return cpu
}

func TestDebugger(t *testing.T) {
	cpu := newCPU(t, map[uint16][]byte{
		0x8000: {0x20, 0x10, 0x80}, // JSR $8010
		0x8003: {0x4C, 0x03, 0x80}, // JMP $8003
		0x8010: {0x20, 0x20, 0x80}, // JSR $8020
		0x8013: {0x60},             // RTS
		0x8020: {0xEA},             // NOP
		0x8021: {0x60},             // RTS
		0x8030: {0x40},             // RTI
		0xFFFA: {0x30, 0x80},
		0xFFFC: {0x00, 0x80},
	})

	dbg := Attach(cpu)
	defer dbg.Detach()

	var (
		hits []uint16
		bt   Backtrace
	)
	dbg.SetBreakpoint(0x8020)
	dbg.OnBreak = func(pc uint16) {
		hits = append(hits, pc)
		bt = dbg.Backtrace()
	}

	cpu.Reset(false)
	for range 6 {
		cpu.Step()
	}

	if diff := cmp.Diff([]uint16{0x8020}, hits); diff != "" {
		t.Fatalf("breakpoint hits mismatch (-want +got):\n%s", diff)
	}
	want := Backtrace{
		{"$8020", "$8020"},
		{"$8010", "$8010"},
		{"[bottom of stack]", "$8000"},
	}
	if diff := cmp.Diff(want, bt); diff != "" {
		t.Errorf("backtrace at breakpoint mismatch (-want +got):\n%s", diff)
	}

	// Back to the main loop, both subroutines returned.
	want = Backtrace{{"[bottom of stack]", "$8003"}}
	if diff := cmp.Diff(want, dbg.Backtrace()); diff != "" {
		t.Errorf("backtrace after returns mismatch (-want +got):\n%s", diff)
	}

	cpu.ServiceInterrupt(hw.IntNMI)
	want = Backtrace{
		{"[nmi] $8030", "$8030"},
		{"[bottom of stack]", "$8003"},
	}
	if diff := cmp.Diff(want, dbg.Backtrace()); diff != "" {
		t.Errorf("backtrace in NMI handler mismatch (-want +got):\n%s", diff)
	}

	cpu.Step() // RTI
	cpu.Step() // JMP
	want = Backtrace{{"[bottom of stack]", "$8003"}}
	if diff := cmp.Diff(want, dbg.Backtrace()); diff != "" {
		t.Errorf("backtrace after RTI mismatch (-want +got):\n%s", diff)
	}

	dbg.ClearBreakpoint(0x8020)
	dbg.FrameEnd()
	if dbg.Frames() != 1 {
		t.Errorf("frames = %d, want 1", dbg.Frames())
	}
}
