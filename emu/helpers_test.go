package emu

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"nescore/emu/log"
	"nescore/ines"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// nromImage returns an NROM image with 32KB of PRG ROM (mapped at $8000)
// and CHR RAM. code is loaded at $8000, vectors are the NMI, reset and IRQ
// vectors.
func nromImage(code []byte, nmi, reset, irq uint16) []byte {
	prg := make([]byte, 0x8000)
	copy(prg, code)
	prg[0x7FFA], prg[0x7FFB] = uint8(nmi), uint8(nmi>>8)
	prg[0x7FFC], prg[0x7FFD] = uint8(reset), uint8(reset>>8)
	prg[0x7FFE], prg[0x7FFF] = uint8(irq), uint8(irq>>8)

	hdr := make([]byte, 16)
	copy(hdr, ines.Magic)
	hdr[4] = 2 // 2 * 16KB PRG, no CHR ROM.
	return append(hdr, prg...)
}

func loadImage(tb testing.TB, img []byte) *ines.Rom {
	tb.Helper()

	rom := new(ines.Rom)
	if _, err := rom.ReadFrom(bytes.NewReader(img)); err != nil {
		tb.Fatal(err)
	}
	return rom
}

func powerUp(tb testing.TB, img []byte) *NES {
	tb.Helper()

	nes, err := PowerUp(loadImage(tb, img))
	if err != nil {
		tb.Fatal(err)
	}
	return nes
}

func writeImage(tb testing.TB, name string, img []byte) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, img, 0644); err != nil {
		tb.Fatal(err)
	}
	return path
}

// nmiCounter enables NMIs then loops forever. The NMI handler increments $10.
var nmiCounter = nromImage([]byte{
	0xA9, 0x80,       // 8000  LDA #$80
	0x8D, 0x00, 0x20, // 8002  STA $2000
	0x4C, 0x05, 0x80, // 8005  JMP $8005
	0xEA, 0xEA, 0xEA, 0xEA, 0xEA, 0xEA, 0xEA, 0xEA,
	0xE6, 0x10, // 8010  INC $10
	0x40,       // 8012  RTI
}, 0x8010, 0x8000, 0x8010)

// testRomImage writes report at $6000 then loops forever, mimicking a test
// rom having completed.
func testRomImage(report []byte) []byte {
	code := []byte{
		0xA2, 0x00,              // 8000  LDX #$00
		0xBD, 0x10, 0x80,        // 8002  LDA $8010,X
		0x9D, 0x00, 0x60,        // 8005  STA $6000,X
		0xE8,                    // 8008  INX
		0xE0, byte(len(report)), // 8009  CPX #len
		0xD0, 0xF5,              // 800B  BNE $8002
		0x4C, 0x0D, 0x80,        // 800D  JMP $800D
	}
	code = append(code, report...)
	return nromImage(code, 0x800D, 0x8000, 0x800D)
}

// testReport returns what a test rom writes at $6000 when done.
func testReport(code uint8, msg string) []byte {
	buf := []byte{code, 0xDE, 0xB0, 0x61}
	buf = append(buf, msg...)
	return append(buf, 0)
}
