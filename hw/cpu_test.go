package hw

import (
	"testing"

	gocmp "github.com/google/go-cmp/cmp"
)

func TestPflag(t *testing.T) {
	p := P(0x40)
	p.set(IntDisable, true)
	if p != 0x44 {
		t.Errorf("got P = %q, want %q", p.String(), P(0x44))
	}

	p.set(Overflow, false)
	if p != 0x04 {
		t.Errorf("got P = %q, want %q", p.String(), P(0x04))
	}

	// Negative flag
	p.checkNZ(0xff)
	if !p.N() || p.Z() {
		t.Error("N bit should be set, Z clear")
	}
	p.checkNZ(0x7f)
	if p.N() {
		t.Error("N bit should not be set")
	}

	// Zero flag
	p.checkNZ(0)
	if !p.Z() || p.N() {
		t.Error("Z bit should be set, N clear")
	}
	p.checkNZ(1)
	if p.Z() {
		t.Error("Z bit should not be set")
	}
}

func TestPString(t *testing.T) {
	p := P(0b00110100)
	if got := p.String(); got != "nvUBdIzc" {
		t.Errorf("got P = %s, want %s", got, "nvUBdIzc")
	}
	p = P(0b00000100)
	if p.String() != "nvubdIzc" {
		t.Errorf("got P = %s, want %s", p.String(), "nvubdIzc")
	}
}

func TestReset(t *testing.T) {
	cpu := loadCPUWith(t, `fffc: 34 12`)
	runAndCheckState(t, cpu, 0,
		"PC", uint16(0x1234),
		"SP", uint8(0xFD),
		"P", uint8(0x24),
		"cycles", int64(7),
	)

	// Soft reset keeps registers but decrements SP by 3.
	cpu.A = 0x42
	cpu.Reset(true)
	runAndCheckState(t, cpu, 0,
		"A", uint8(0x42),
		"SP", uint8(0xFA),
		"PC", uint16(0x1234),
		"cycles", int64(14),
	)
}

func TestLoads(t *testing.T) {
	cpu := loadCPUWith(t, `
8000: a9 80 a2 00 a0 7f
fffc: 00 80
`)
	runAndCheckState(t, cpu, 1, "A", uint8(0x80), "Pn", uint8(1), "Pz", uint8(0))
	runAndCheckState(t, cpu, 1, "X", uint8(0x00), "Pn", uint8(0), "Pz", uint8(1))
	runAndCheckState(t, cpu, 1, "Y", uint8(0x7F), "Pnz", uint8(0), "cycles", int64(13))
}

func TestADC(t *testing.T) {
	tests := []struct {
		name  string
		a, m  uint8
		carry bool
		want  uint8
		c, v  uint8
	}{
		{"simple", 0x10, 0x20, false, 0x30, 0, 0},
		{"carry in", 0x10, 0x20, true, 0x31, 0, 0},
		{"signed overflow", 0x50, 0x50, false, 0xA0, 0, 1},
		{"carry out", 0xD0, 0x90, false, 0x60, 1, 1},
		{"zero", 0xFF, 0x01, false, 0x00, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu := loadCPUWith(t, `
8000: 69 00
fffc: 00 80
`)
			cpu.Bus.Write8(0x8001, tt.m)
			cpu.A = tt.a
			cpu.P.set(Carry, tt.carry)
			runAndCheckState(t, cpu, 1,
				"A", tt.want,
				"Pc", tt.c,
				"Pv", tt.v,
				"Pz", b2i(tt.want == 0),
			)
		})
	}
}

func TestSBC(t *testing.T) {
	tests := []struct {
		name  string
		a, m  uint8
		carry bool
		want  uint8
		c, v  uint8
	}{
		{"no borrow", 0x50, 0x10, true, 0x40, 1, 0},
		{"borrow in", 0x50, 0x10, false, 0x3F, 1, 0},
		{"borrow out", 0x50, 0xF0, true, 0x60, 0, 0},
		{"signed overflow", 0xD0, 0x70, true, 0x60, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu := loadCPUWith(t, `
8000: e9 00
fffc: 00 80
`)
			cpu.Bus.Write8(0x8001, tt.m)
			cpu.A = tt.a
			cpu.P.set(Carry, tt.carry)
			runAndCheckState(t, cpu, 1, "A", tt.want, "Pc", tt.c, "Pv", tt.v)
		})
	}
}

func TestPageCrossingCycles(t *testing.T) {
	tests := []struct {
		name   string
		dump   string
		x      uint8
		cycles int
	}{
		{"lda abs,x same page", "8000: bd 00 81", 0x01, 4},
		{"lda abs,x cross page", "8000: bd ff 80", 0x01, 5},
		{"sta abs,x cross page", "8000: 9d ff 80", 0x01, 5},
		{"inc abs,x cross page", "8000: fe ff 80", 0x01, 7},
		{"nop abs,x cross page", "8000: 1c ff 80", 0x01, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu := loadCPUWith(t, tt.dump+"\nfffc: 00 80")
			cpu.X = tt.x
			if got := cpu.Step(); got != tt.cycles {
				t.Errorf("got %d cycles, want %d", got, tt.cycles)
			}
		})
	}
}

func TestBranches(t *testing.T) {
	tests := []struct {
		name   string
		dump   string
		pc     uint16
		cycles int
	}{
		{"not taken", "8000: a9 01 f0 02\nfffc: 00 80", 0x8004, 2},
		{"taken", "8000: a9 00 f0 02\nfffc: 00 80", 0x8006, 3},
		{"taken backward", "8000: a9 00 f0 fc\nfffc: 00 80", 0x8000, 3},
		{"taken cross page", "80f0: a9 00 f0 10\nfffc: f0 80", 0x8104, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu := loadCPUWith(t, tt.dump)
			cpu.Step()
			if got := cpu.Step(); got != tt.cycles {
				t.Errorf("got %d cycles, want %d", got, tt.cycles)
			}
			if cpu.PC != tt.pc {
				t.Errorf("PC = $%04X, want $%04X", cpu.PC, tt.pc)
			}
		})
	}
}

func TestJMPIndirectPageBug(t *testing.T) {
	cpu := loadCPUWith(t, `
8000: 6c ff 02
0200: 90
02ff: 00
0300: 40
fffc: 00 80
`)
	runAndCheckState(t, cpu, 1, "PC", uint16(0x9000), "cycles", int64(12))
}

func TestJSRRTS(t *testing.T) {
	cpu := loadCPUWith(t, `
8000: 20 00 90
9000: 60
fffc: 00 80
`)
	runAndCheckState(t, cpu, 1,
		"PC", uint16(0x9000),
		"SP", uint8(0xFB),
		"mem", "01fc: 02 80",
	)
	runAndCheckState(t, cpu, 1,
		"PC", uint16(0x8003),
		"SP", uint8(0xFD),
		"cycles", int64(7+6+6),
	)
}

func TestBRKRTI(t *testing.T) {
	cpu := loadCPUWith(t, `
8000: 00 ea
9000: 40
fffc: 00 80 00 90
`)
	runAndCheckState(t, cpu, 1,
		"PC", uint16(0x9000),
		"SP", uint8(0xFA),
		"Pi", uint8(1),
		"mem", "01fb: 34 02 80",
	)

	runAndCheckState(t, cpu, 1,
		"PC", uint16(0x8002),
		"SP", uint8(0xFD),
		"P", uint8(0x24),
	)
}

func TestStackWrap(t *testing.T) {
	cpu, mem := newFlatCPU()
	for i := range 256 {
		copy(mem[0x8000+3*i:], []byte{0x48, 0x69, 0x01}) // PHA / ADC #1
	}
	mem[0xFFFC], mem[0xFFFD] = 0x00, 0x80
	cpu.Reset(false)

	for range 256 {
		cpu.Step()
		cpu.Step()
	}
	if cpu.SP != 0xFD {
		t.Fatalf("SP = $%02X after 256 pushes, want $FD", cpu.SP)
	}

	// The nth push wrote n at $0100 | (FD-n).
	if diff := gocmp.Diff([]byte{0x00, 0xFF, 0xFE}, mem[0x01FD:0x0200]); diff != "" {
		t.Errorf("stack top mismatch (-want +got):\n%s", diff)
	}
	if mem[0x0100] != 0xFD {
		t.Errorf("$0100 = $%02X, want $FD", mem[0x0100])
	}
}

func TestPHPPLP(t *testing.T) {
	cpu := loadCPUWith(t, `
8000: 38 08 18 28
fffc: 00 80
`)
	runAndCheckState(t, cpu, 3, "Pc", uint8(0), "mem", "01fd: 35")
	runAndCheckState(t, cpu, 1, "P", uint8(0x25), "SP", uint8(0xFD))
}

func TestReadModifyWrite(t *testing.T) {
	cpu := loadCPUWith(t, `
8000: 06 10 26 10 46 11 66 11 e6 12 c6 13
0010: 81 00 ff 00
fffc: 00 80
`)
	// ASL $10: 81 -> 02, C=1
	runAndCheckState(t, cpu, 1, "mem", "0010: 02", "Pc", uint8(1))
	// ROL $10: 02 -> 05 (carry in)
	runAndCheckState(t, cpu, 1, "mem", "0010: 05", "Pc", uint8(0))
	// LSR $11: 00 -> 00, Z=1
	runAndCheckState(t, cpu, 1, "mem", "0011: 00", "Pz", uint8(1))
	// ROR $11: 00 -> 00 (no carry)
	runAndCheckState(t, cpu, 1, "mem", "0011: 00", "Pc", uint8(0))
	// INC $12: ff -> 00
	runAndCheckState(t, cpu, 1, "mem", "0012: 00", "Pz", uint8(1))
	// DEC $13: 00 -> ff
	runAndCheckState(t, cpu, 1, "mem", "0013: ff", "Pn", uint8(1))
}

func TestUnofficialOpcodes(t *testing.T) {
	t.Run("LAX", func(t *testing.T) {
		cpu := loadCPUWith(t, "8000: a7 10\n0010: 5a\nfffc: 00 80")
		runAndCheckState(t, cpu, 1, "A", uint8(0x5A), "X", uint8(0x5A))
	})
	t.Run("SAX", func(t *testing.T) {
		cpu := loadCPUWith(t, "8000: a9 f0 a2 3c 87 20\nfffc: 00 80")
		runAndCheckState(t, cpu, 3, "mem", "0020: 30")
	})
	t.Run("DCP", func(t *testing.T) {
		cpu := loadCPUWith(t, "8000: a9 10 c7 30\n0030: 11\nfffc: 00 80")
		runAndCheckState(t, cpu, 2, "mem", "0030: 10", "Pzc", uint8(1))
	})
	t.Run("ISC", func(t *testing.T) {
		cpu := loadCPUWith(t, "8000: 38 a9 10 e7 40\n0040: 0f\nfffc: 00 80")
		runAndCheckState(t, cpu, 3, "mem", "0040: 10", "A", uint8(0), "Pzc", uint8(1))
	})
	t.Run("SLO", func(t *testing.T) {
		cpu := loadCPUWith(t, "8000: a9 01 07 50\n0050: 40\nfffc: 00 80")
		runAndCheckState(t, cpu, 2, "mem", "0050: 80", "A", uint8(0x81), "Pn", uint8(1))
	})
	t.Run("SBX", func(t *testing.T) {
		cpu := loadCPUWith(t, "8000: a9 0f a2 fc cb 02\nfffc: 00 80")
		runAndCheckState(t, cpu, 3, "X", uint8(0x0A), "Pc", uint8(1))
	})
	t.Run("ANC", func(t *testing.T) {
		cpu := loadCPUWith(t, "8000: a9 ff 0b 80\nfffc: 00 80")
		runAndCheckState(t, cpu, 2, "A", uint8(0x80), "Pnc", uint8(1))
	})
}

func TestJAM(t *testing.T) {
	cpu := loadCPUWith(t, `
8000: 02
9000: ea
fffa: 00 90 00 80 00 90
`)
	cpu.Step()
	if !cpu.Halted() {
		t.Fatal("CPU should be halted")
	}
	runAndCheckState(t, cpu, 3, "PC", uint16(0x8000))

	if n := cpu.ServiceInterrupt(IntNMI); n != 0 {
		t.Errorf("halted CPU serviced an NMI (%d cycles)", n)
	}
	if cpu.PC != 0x8000 {
		t.Errorf("PC = $%04X, want $8000", cpu.PC)
	}

	cpu.Reset(true)
	if cpu.Halted() {
		t.Fatal("CPU should not be halted after reset")
	}
}

func TestInterrupts(t *testing.T) {
	for _, tt := range []struct {
		kind Interrupt
		pc   uint16
	}{
		{IntNMI, 0xA000},
		{IntIRQ, 0xB000},
	} {
		t.Run(tt.kind.String(), func(t *testing.T) {
			cpu := loadCPUWith(t, `
fffa: 00 a0 00 80 00 b0
`)
			cpu.P |= Carry
			if n := cpu.ServiceInterrupt(tt.kind); n != 7 {
				t.Errorf("interrupt took %d cycles, want 7", n)
			}
			runAndCheckState(t, cpu, 0,
				"PC", tt.pc,
				"SP", uint8(0xFA),
				"Pi", uint8(1),
				"mem", "01fb: 25 00 80",
			)
		})
	}
}

func TestRAMMirroring(t *testing.T) {
	cpu, _, _ := newTestConsole(t)

	cpu.Write8(0x0001, 0x42)
	for _, addr := range []uint16{0x0801, 0x1001, 0x1801} {
		if got := cpu.Read8(addr); got != 0x42 {
			t.Errorf("$%04X = $%02X, want $42", addr, got)
		}
	}
	cpu.Write8(0x1FFF, 0x24)
	wantMem8(t, cpu, 0x07FF, 0x24)
}
