package ines

import "fmt"

type header struct {
	raw   [16]byte
	prgsz int
	chrsz int
}

func (hdr *header) decode(p []byte) error {
	if len(p) < 16 {
		return fmt.Errorf("%w: header too short (%d bytes)", ErrMalformedImage, len(p))
	}
	if string(p[:4]) != Magic {
		return fmt.Errorf("%w: invalid magic number % x", ErrMalformedImage, p[:4])
	}
	copy(hdr.raw[:], p[:16])

	if hdr.IsNES20() {
		var err error
		if hdr.prgsz, err = nes2Size(hdr.raw[4], hdr.raw[9]&0x0F, 16384); err != nil {
			return fmt.Errorf("%w: PRG %w", ErrMalformedImage, err)
		}
		if hdr.chrsz, err = nes2Size(hdr.raw[5], hdr.raw[9]>>4, 8192); err != nil {
			return fmt.Errorf("%w: CHR %w", ErrMalformedImage, err)
		}
	} else {
		hdr.prgsz = int(hdr.raw[4]) * 16384
		hdr.chrsz = int(hdr.raw[5]) * 8192
	}
	if hdr.prgsz == 0 {
		return fmt.Errorf("%w: no PRG ROM", ErrMalformedImage)
	}
	return nil
}

// nes2Size decodes a NES 2.0 ROM size from its LSB and MSB nibble. An MSB
// nibble of $F selects the exponent-multiplier notation.
func nes2Size(lsb, msb uint8, unit int) (int, error) {
	if msb != 0x0F {
		return (int(msb)<<8 | int(lsb)) * unit, nil
	}
	exp := lsb >> 2
	if exp > maxSizeExp {
		return 0, fmt.Errorf("size exponent %d too large", exp)
	}
	mul := int(lsb&0x03)*2 + 1
	return (1 << exp) * mul, nil
}

// maxSizeExp is the largest exponent accepted in the exponent-multiplier
// notation (7GB with the largest multiplier).
const maxSizeExp = 30

// IsNES20 reports whether the header is in the NES 2.0 format.
func (hdr *header) IsNES20() bool {
	return hdr.raw[7]&0x0C == 0x08
}

// dirty reports whether bytes 12-15 of an iNES header hold garbage (some
// old dumping tools wrote their name there), in which case byte 7 can't be
// trusted either.
func (hdr *header) dirty() bool {
	return !hdr.IsNES20() && (hdr.raw[12]|hdr.raw[13]|hdr.raw[14]|hdr.raw[15]) != 0
}

// HasTrainer indicates the presence of a trainer section in the rom.
func (hdr *header) HasTrainer() bool {
	return hdr.raw[6]&0x04 != 0
}

// HasPersistent indicates the presence of battery-backed memory.
func (hdr *header) HasPersistent() bool {
	return hdr.raw[6]&0x02 != 0
}

func (hdr *header) Mapper() uint16 {
	num := uint16(hdr.raw[6] >> 4)
	if hdr.dirty() {
		return num
	}
	num |= uint16(hdr.raw[7] & 0xF0)
	if hdr.IsNES20() {
		num |= uint16(hdr.raw[8]&0x0F) << 8
	}
	return num
}

// SubMapper is always 0 for iNES headers.
func (hdr *header) SubMapper() uint8 {
	if !hdr.IsNES20() {
		return 0
	}
	return hdr.raw[8] >> 4
}

func (hdr *header) Mirroring() NTMirroring {
	switch {
	case hdr.raw[6]&0x08 != 0:
		return FourScreen
	case hdr.raw[6]&0x01 != 0:
		return VertMirroring
	}
	return HorzMirroring
}

// PRGRAMSize returns the size of the PRG RAM at $6000. When the header says
// nothing the usual 8KB is assumed.
func (hdr *header) PRGRAMSize() int {
	if hdr.IsNES20() {
		if shift := hdr.raw[10] & 0x0F; shift != 0 {
			return 64 << shift
		}
		if shift := hdr.raw[10] >> 4; shift != 0 {
			return 64 << shift
		}
		return 8192
	}
	if n := int(hdr.raw[8]); n != 0 && !hdr.dirty() {
		return n * 8192
	}
	return 8192
}
