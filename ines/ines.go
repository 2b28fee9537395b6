// Package ines reads cartridge images in the iNES and NES 2.0 formats.
package ines

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrMalformedImage is returned for images that can't be decoded: bad magic
// number, truncated header or sections shorter than what the header declares.
var ErrMalformedImage = errors.New("malformed iNES image")

const Magic = "NES\x1a"

type Rom struct {
	header
	Trainer []byte // 512 bytes if present, or empty.
	PRG     []byte // PRG ROM, multiple of 16KB.
	CHR     []byte // CHR ROM, multiple of 8KB. Empty when the board has CHR RAM.
}

// Open loads a rom from file.
func Open(path string) (*Rom, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rom := new(Rom)
	if _, err := rom.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rom, nil
}

// ReadFrom implements io.ReaderFrom.
func (rom *Rom) ReadFrom(r io.Reader) (int64, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	return int64(len(buf)), rom.decode(buf)
}

func (rom *Rom) decode(buf []byte) error {
	if err := rom.header.decode(buf); err != nil {
		return err
	}
	off := 16

	section := func(name string, size int) ([]byte, error) {
		if size < 0 || len(buf)-off < size {
			return nil, fmt.Errorf("%w: incomplete %s section (want %d bytes, got %d)",
				ErrMalformedImage, name, size, max(len(buf)-off, 0))
		}
		b := buf[off : off+size : off+size]
		off += size
		return b, nil
	}

	var err error
	if rom.HasTrainer() {
		if rom.Trainer, err = section("trainer", 512); err != nil {
			return err
		}
	}
	if rom.PRG, err = section("PRG", rom.prgsz); err != nil {
		return err
	}
	if rom.CHR, err = section("CHR", rom.chrsz); err != nil {
		return err
	}
	return nil
}

// PrintInfos writes a human readable summary of the rom header.
func (rom *Rom) PrintInfos(w io.Writer) {
	format := "iNES"
	if rom.IsNES20() {
		format = "NES 2.0"
	}
	chr := fmt.Sprintf("%dKB ROM", len(rom.CHR)/1024)
	if len(rom.CHR) == 0 {
		chr = "8KB RAM"
	}
	fmt.Fprintf(w, "format:     %s\n", format)
	fmt.Fprintf(w, "mapper:     %d (submapper %d)\n", rom.Mapper(), rom.SubMapper())
	fmt.Fprintf(w, "PRG:        %dKB ROM\n", len(rom.PRG)/1024)
	fmt.Fprintf(w, "CHR:        %s\n", chr)
	fmt.Fprintf(w, "PRG-RAM:    %dKB\n", rom.PRGRAMSize()/1024)
	fmt.Fprintf(w, "mirroring:  %s\n", rom.Mirroring())
	fmt.Fprintf(w, "battery:    %t\n", rom.HasPersistent())
	fmt.Fprintf(w, "trainer:    %t\n", rom.HasTrainer())
}
