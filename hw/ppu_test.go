package hw

import (
	"testing"

	"nescore/ines"
)

func TestPPUScroll(t *testing.T) {
	cpu, ppu, _ := newTestConsole(t)

	ppu.t = 0x7fff

	// Write to PPUCTRL
	cpu.Write8(0x2000, 0)
	if got := (ppu.t >> 10) & 0b11; got != 0b00 {
		t.Errorf("t.nametable = 0b%02b, want 0b00", got)
	}

	// Read from PPUSTATUS
	_ = cpu.Read8(0x2002)
	if ppu.w {
		t.Errorf("w = %t, want false", ppu.w)
	}

	// First write to PPUSCROLL
	cpu.Write8(0x2005, 0b01111_101)
	if got := ppu.t & 0x1F; got != 0b01111 {
		t.Errorf("t.coarsex = 0b%05b, want 0b01111", got)
	}
	if ppu.x != 0b101 {
		t.Errorf("x = 0b%03b, want 0b101", ppu.x)
	}
	if !ppu.w {
		t.Errorf("w = %t, want true", ppu.w)
	}

	// Second write to PPUSCROLL
	cpu.Write8(0x2005, 0b01_011_110)
	if got := (ppu.t >> 5) & 0x1F; got != 0b01011 {
		t.Errorf("t.coarsey = 0b%05b, want 0b01011", got)
	}
	if got := (ppu.t >> 12) & 0x7; got != 0b110 {
		t.Errorf("t.finey = 0b%03b, want 0b110", got)
	}
	if ppu.w {
		t.Errorf("w = %t, want false", ppu.w)
	}

	// First write to PPUADDR
	cpu.Write8(0x2006, 0b00_111101)
	if got := (ppu.t >> 8) & 0x3F; got != 0b111101 {
		t.Errorf("t.high = %06b, want 0b111101", got)
	}
	// Bit 14 (15th bit) of t gets set to zero
	if ppu.t != 0b0111101_01101111 {
		t.Errorf("t = %015b, want 0b0111101_01101111", ppu.t)
	}

	// Second write to PPUADDR
	cpu.Write8(0x2006, 0b11110000)
	if ppu.t != 0b0111101_11110000 {
		t.Errorf("t = %015b, want 0b0111101_11110000", ppu.t)
	}
	// After t is updated, contents of t copied into v
	if ppu.t != ppu.v {
		t.Errorf("v != t")
	}
}

func setPPUAddr(cpu *CPU, addr uint16) {
	cpu.Write8(0x2006, uint8(addr>>8))
	cpu.Write8(0x2006, uint8(addr))
}

func TestPPUDATABuffer(t *testing.T) {
	cpu, _, _ := newTestConsole(t)

	setPPUAddr(cpu, 0x2000)
	cpu.Write8(0x2007, 0xAA)
	cpu.Write8(0x2007, 0xBB)

	setPPUAddr(cpu, 0x2000)
	if got := cpu.Read8(0x2007); got != 0x00 {
		t.Errorf("first read = $%02X, want stale $00", got)
	}
	if got := cpu.Read8(0x2007); got != 0xAA {
		t.Errorf("second read = $%02X, want $AA", got)
	}
	if got := cpu.Read8(0x2007); got != 0xBB {
		t.Errorf("third read = $%02X, want $BB", got)
	}

	// Palette reads aren't buffered.
	setPPUAddr(cpu, 0x3F01)
	cpu.Write8(0x2007, 0x2C)
	setPPUAddr(cpu, 0x3F01)
	if got := cpu.Read8(0x2007) & 0x3F; got != 0x2C {
		t.Errorf("palette read = $%02X, want $2C", got)
	}
}

func TestPPUDATAIncrement32(t *testing.T) {
	cpu, ppu, _ := newTestConsole(t)

	cpu.Write8(0x2000, ctrlIncr32)
	setPPUAddr(cpu, 0x2000)
	cpu.Write8(0x2007, 0x11)
	cpu.Write8(0x2007, 0x22)
	if ppu.v != 0x2040 {
		t.Errorf("v = $%04X, want $2040", ppu.v)
	}
	if got := ppu.Bus.Peek8(0x2020); got != 0x22 {
		t.Errorf("$2020 = $%02X, want $22", got)
	}
}

func TestPaletteMirrors(t *testing.T) {
	cpu, ppu, _ := newTestConsole(t)

	for _, tt := range []struct{ write, read uint16 }{
		{0x3F10, 0x3F00},
		{0x3F14, 0x3F04},
		{0x3F18, 0x3F08},
		{0x3F1C, 0x3F0C},
		{0x3F00, 0x3F20},
		{0x3F05, 0x3FE5},
	} {
		setPPUAddr(cpu, tt.write)
		cpu.Write8(0x2007, 0xC0|uint8(tt.write))
		if got, want := ppu.Bus.Peek8(tt.read), uint8(tt.write)&0x3F; got != want {
			t.Errorf("write $%04X, read $%04X = $%02X, want $%02X", tt.write, tt.read, got, want)
		}
	}

	// $3F11 is not a mirror.
	setPPUAddr(cpu, 0x3F01)
	cpu.Write8(0x2007, 0x01)
	setPPUAddr(cpu, 0x3F11)
	cpu.Write8(0x2007, 0x02)
	if got := ppu.Bus.Peek8(0x3F01); got != 0x01 {
		t.Errorf("$3F01 = $%02X, want $01", got)
	}
}

func TestNametableMirroring(t *testing.T) {
	tests := []struct {
		mirroring ines.NTMirroring
		same      []uint16 // addresses sharing the same CIRAM byte as $2005
		other     []uint16
	}{
		{ines.HorzMirroring, []uint16{0x2405, 0x3005}, []uint16{0x2805, 0x2C05}},
		{ines.VertMirroring, []uint16{0x2805, 0x3005}, []uint16{0x2405, 0x2C05}},
		{ines.OnlyAScreen, []uint16{0x2405, 0x2805, 0x2C05}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.mirroring.String(), func(t *testing.T) {
			_, ppu, m := newTestConsole(t)
			m.mirroring = tt.mirroring

			ppu.Bus.Write8(0x2005, 0x77)
			for _, addr := range tt.same {
				if got := ppu.Bus.Peek8(addr); got != 0x77 {
					t.Errorf("$%04X = $%02X, want $77", addr, got)
				}
			}
			for _, addr := range tt.other {
				if got := ppu.Bus.Peek8(addr); got != 0x00 {
					t.Errorf("$%04X = $%02X, want $00", addr, got)
				}
			}
		})
	}
}

func TestOAMDATA(t *testing.T) {
	cpu, ppu, _ := newTestConsole(t)

	cpu.Write8(0x2003, 0x10)
	for i := range 4 {
		cpu.Write8(0x2004, 0xFF-uint8(i))
	}
	if ppu.oamAddr != 0x14 {
		t.Errorf("OAMADDR = $%02X, want $14", ppu.oamAddr)
	}

	// Unimplemented attribute bits read back as 0.
	cpu.Write8(0x2003, 0x12)
	if got := cpu.Read8(0x2004); got != 0xFD&0xE3 {
		t.Errorf("OAMDATA = $%02X, want $%02X", got, 0xFD&0xE3)
	}
	// Reads don't increment OAMADDR.
	if ppu.oamAddr != 0x12 {
		t.Errorf("OAMADDR = $%02X, want $12", ppu.oamAddr)
	}
}

func TestOpenBus(t *testing.T) {
	cpu, _, _ := newTestConsole(t)

	cpu.Write8(0x2001, 0x5A)
	if got := cpu.Read8(0x2000); got != 0x5A {
		t.Errorf("PPUCTRL read = $%02X, want I/O latch $5A", got)
	}
	if got := cpu.Read8(0x2002) & 0x1F; got != 0x1A {
		t.Errorf("PPUSTATUS low bits = $%02X, want $1A", got)
	}
	// Register mirrors
	cpu.Write8(0x3FF9, 0x33)
	if got := cpu.Read8(0x2001); got != 0x33 {
		t.Errorf("$2001 = $%02X, want $33", got)
	}
}

// dots returns the number of dots from the start of the frame to the given
// position, that dot included.
func dots(scanline, dot int) int {
	return scanline*NumCycles + dot + 1
}

func TestVblankTiming(t *testing.T) {
	cpu, ppu, _ := newTestConsole(t)
	ppu.Reset()
	cpu.Write8(0x2000, ctrlNMI)

	ppu.Step(dots(241, 0))
	if ppu.status&statusVblank != 0 {
		t.Fatal("vblank set before 241/1")
	}
	if ppu.TakeNMI() {
		t.Fatal("NMI before 241/1")
	}

	ppu.Step(1)
	if ppu.status&statusVblank == 0 {
		t.Fatal("vblank not set at 241/1")
	}
	if !ppu.TakeNMI() {
		t.Fatal("NMI not latched at 241/1")
	}
	if ppu.TakeNMI() {
		t.Fatal("NMI taken twice")
	}

	ppu.Step(dots(261, 0) - dots(241, 1))
	if ppu.status&statusVblank == 0 {
		t.Fatal("vblank cleared before 261/1")
	}
	ppu.Step(1)
	if ppu.status&statusVblank != 0 {
		t.Fatal("vblank not cleared at 261/1")
	}
}

func TestVblankWithoutNMI(t *testing.T) {
	_, ppu, _ := newTestConsole(t)
	ppu.Reset()

	ppu.Step(dots(241, 1))
	if ppu.status&statusVblank == 0 {
		t.Fatal("vblank not set at 241/1")
	}
	if ppu.TakeNMI() {
		t.Fatal("NMI latched with PPUCTRL bit 7 clear")
	}
}

func TestPPUSTATUSRead(t *testing.T) {
	cpu, ppu, _ := newTestConsole(t)
	ppu.Reset()
	ppu.Step(dots(241, 1))

	cpu.Write8(0x2005, 0) // sets w
	if got := cpu.Read8(0x2002); got&0x80 == 0 {
		t.Fatalf("PPUSTATUS = $%02X, want vblank set", got)
	}
	if got := cpu.Read8(0x2002); got&0x80 != 0 {
		t.Fatalf("PPUSTATUS = $%02X, want vblank cleared by previous read", got)
	}
	if ppu.w {
		t.Fatal("write toggle not reset by PPUSTATUS read")
	}
}

func TestPPUSTATUSReadCycle(t *testing.T) {
	// LDA $2002 reads PPUSTATUS on its 4th cycle, the PPU having run 9 dots
	// since the start of the instruction.
	tests := []struct {
		dot        int // dot of line 240 at which the instruction starts
		wantVblank bool
	}{
		{dot: 330, wantVblank: false},
		{dot: 333, wantVblank: false},
		{dot: 334, wantVblank: true},
		{dot: 338, wantVblank: true},
	}
	for _, tt := range tests {
		cpu, ppu, m := newTestConsole(t)
		copy(m.prg[0x8000-0x6000:], []byte{0xAD, 0x02, 0x20})
		ppu.Reset()
		ppu.Scanline, ppu.Cycle = 240, tt.dot
		cpu.PC = 0x8000

		cycles := cpu.Step()
		if got := cpu.A&0x80 != 0; got != tt.wantVblank {
			t.Errorf("LDA $2002 at 240/%d: vblank = %t, want %t", tt.dot, got, tt.wantVblank)
		}
		if synced := cpu.TakePPUSynced(); synced != 3 || cycles != 4 {
			t.Errorf("LDA $2002 at 240/%d: PPU ran %d of %d cycles, want 3 of 4", tt.dot, synced, cycles)
		}
	}
}

func TestDirectBusAccessDoesNotRunPPU(t *testing.T) {
	cpu, ppu, _ := newTestConsole(t)
	ppu.Reset()

	for i := range 16 {
		cpu.Write8(uint16(i), 0)
	}
	cpu.Read8(0x2002)
	if ppu.Scanline != 0 || ppu.Cycle != 0 {
		t.Errorf("PPU at %d/%d, want 0/0", ppu.Scanline, ppu.Cycle)
	}
	if n := cpu.TakePPUSynced(); n != 0 {
		t.Errorf("TakePPUSynced() = %d, want 0", n)
	}
}

func TestFrameCompletion(t *testing.T) {
	_, ppu, _ := newTestConsole(t)
	ppu.Reset()

	ppu.Step(dots(239, 339))
	if _, ok := ppu.TakeFrame(); ok {
		t.Fatal("frame completed before scanline 240")
	}
	ppu.Step(1)
	if _, ok := ppu.TakeFrame(); !ok {
		t.Fatal("frame not completed at scanline 240")
	}
	if _, ok := ppu.TakeFrame(); ok {
		t.Fatal("frame taken twice")
	}
	if ppu.Frames != 1 {
		t.Errorf("Frames = %d, want 1", ppu.Frames)
	}
}

func TestOddFrameSkip(t *testing.T) {
	const frameDots = NumScanlines * NumCycles

	t.Run("rendering", func(t *testing.T) {
		_, ppu, _ := newTestConsole(t)
		ppu.Reset()
		ppu.mask = maskShowBg

		ppu.Step(frameDots)
		if ppu.Scanline != 0 || ppu.Cycle != 0 {
			t.Fatalf("even frame ended at %d/%d", ppu.Scanline, ppu.Cycle)
		}
		ppu.Step(frameDots - 1)
		if ppu.Scanline != 0 || ppu.Cycle != 0 {
			t.Fatalf("odd frame ended at %d/%d, want it one dot shorter", ppu.Scanline, ppu.Cycle)
		}
	})

	t.Run("not rendering", func(t *testing.T) {
		_, ppu, _ := newTestConsole(t)
		ppu.Reset()

		ppu.Step(2 * frameDots)
		if ppu.Scanline != 0 || ppu.Cycle != 0 {
			t.Fatalf("2 frames ended at %d/%d", ppu.Scanline, ppu.Cycle)
		}
	})
}

// solidTile fills tile 0 of the first pattern table with color 1.
func solidTile(m *testMapper) {
	for i := range 8 {
		m.chr[i] = 0xFF
	}
}

func TestSprite0Hit(t *testing.T) {
	_, ppu, m := newTestConsole(t)
	ppu.Reset()
	solidTile(m)

	ppu.OAM[0] = 0x20 // Y
	ppu.OAM[1] = 0x00 // tile
	ppu.OAM[2] = 0x00 // attributes
	ppu.OAM[3] = 0x20 // X
	for i := 4; i < 256; i += 4 {
		ppu.OAM[i] = 0xFF // offscreen
	}
	ppu.mask = maskShowBg | maskShowSprites | maskLeftBg | maskLeftSprites

	ppu.Step(dots(0x18, 0))
	if ppu.status&statusSprite0Hit != 0 {
		t.Fatal("sprite 0 hit before the sprite is drawn")
	}
	ppu.Step(dots(100, 0) - dots(0x18, 0))
	if ppu.status&statusSprite0Hit == 0 {
		t.Fatal("sprite 0 hit not set")
	}
	ppu.Step(dots(261, 1) - dots(100, 0))
	if ppu.status&statusSprite0Hit != 0 {
		t.Fatal("sprite 0 hit not cleared on the pre-render line")
	}
}

func TestSprite0HitTransparentBackground(t *testing.T) {
	_, ppu, m := newTestConsole(t)
	ppu.Reset()

	// Sprites use the second pattern table, the background the first one
	// which is empty.
	for i := range 8 {
		m.chr[0x1000+i] = 0xFF
	}
	ppu.ctrl = ctrlSpriteAddr
	ppu.OAM[0], ppu.OAM[3] = 0x20, 0x20
	ppu.mask = maskShowBg | maskShowSprites | maskLeftBg | maskLeftSprites

	ppu.Step(dots(100, 0))
	if ppu.status&statusSprite0Hit != 0 {
		t.Fatal("sprite 0 hit over a transparent background")
	}
}

func TestSpriteOverflow(t *testing.T) {
	for _, nsprites := range []int{8, 9} {
		_, ppu, _ := newTestConsole(t)
		ppu.Reset()
		for i := range 64 {
			ppu.OAM[i*4] = 0xFF
		}
		for i := range nsprites {
			ppu.OAM[i*4] = 0x30
			ppu.OAM[i*4+3] = uint8(i * 10)
		}
		ppu.mask = maskShowSprites

		ppu.Step(dots(0x40, 0))
		overflow := ppu.status&statusOverflow != 0
		if overflow != (nsprites > 8) {
			t.Errorf("%d sprites on a line: overflow = %t", nsprites, overflow)
		}
	}
}

func TestRenderingDisabledDrawsBackdrop(t *testing.T) {
	_, ppu, _ := newTestConsole(t)
	ppu.Reset()
	ppu.palette[0] = 0x21

	ppu.Step(dots(240, 0))
	frame, ok := ppu.TakeFrame()
	if !ok {
		t.Fatal("no frame")
	}
	for _, xy := range [][2]int{{0, 0}, {128, 120}, {255, 239}} {
		if got := frame.At(xy[0], xy[1]); got != 0x21 {
			t.Errorf("pixel %v = $%02X, want backdrop $21", xy, got)
		}
	}
}

func TestOAMDMA(t *testing.T) {
	cpu, ppu, _ := newTestConsole(t)

	for i := range 256 {
		cpu.Write8(0x0200+uint16(i), uint8(i))
	}
	cpu.Write8(0x2003, 0x00)

	cpu.Cycles = 10
	cpu.Write8(0x4014, 0x02)
	for i := range 256 {
		if ppu.OAM[i] != uint8(i) {
			t.Fatalf("OAM[%d] = $%02X, want $%02X", i, ppu.OAM[i], i)
		}
	}
	if stall := cpu.TakeStall(); stall != 513 {
		t.Errorf("stall = %d, want 513", stall)
	}
	if stall := cpu.TakeStall(); stall != 0 {
		t.Errorf("stall = %d after TakeStall, want 0", stall)
	}

	cpu.Cycles = 11
	cpu.Write8(0x4014, 0x02)
	if stall := cpu.TakeStall(); stall != 514 {
		t.Errorf("stall = %d on odd cycle, want 514", stall)
	}
}

func TestControllerShift(t *testing.T) {
	cpu, _, _ := newTestConsole(t)
	cpu.Input.Connect(&StaticInput{Port1: ButtonA | ButtonStart, Port2: ButtonRight})

	cpu.Write8(0x4016, 1)
	cpu.Write8(0x4016, 0)

	want1 := []uint8{1, 0, 0, 1, 0, 0, 0, 0, 1, 1}
	for i, want := range want1 {
		if got := cpu.Read8(0x4016) & 1; got != want {
			t.Errorf("port 1 read %d = %d, want %d", i, got, want)
		}
	}
	want2 := []uint8{0, 0, 0, 0, 0, 0, 0, 1, 1}
	for i, want := range want2 {
		if got := cpu.Read8(0x4017) & 1; got != want {
			t.Errorf("port 2 read %d = %d, want %d", i, got, want)
		}
	}

	// While strobe is high, reads keep returning the A button.
	cpu.Write8(0x4016, 1)
	for range 3 {
		if got := cpu.Read8(0x4016) & 1; got != 1 {
			t.Errorf("strobed read = %d, want 1", got)
		}
	}
}

func TestParseButtons(t *testing.T) {
	b, err := ParseButtons("a, start,Right")
	if err != nil {
		t.Fatal(err)
	}
	if b != ButtonA|ButtonStart|ButtonRight {
		t.Errorf("got %s", b)
	}
	if b.String() != "A,Start,Right" {
		t.Errorf("String() = %q", b.String())
	}
	if _, err := ParseButtons("A,Turbo"); err == nil {
		t.Error("expected error for unknown button")
	}
}
