package snapshot

import (
	"bytes"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Encode returns the JSON representation of a snapshot. Memory areas are
// base64 encoded.
func Encode(s *NES) []byte {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	e.Obj(func(e *jx.Encoder) {
		e.Field("version", func(e *jx.Encoder) { e.Int(s.Version) })
		e.Field("cpu", func(e *jx.Encoder) { encodeCPU(e, &s.CPU) })
		e.Field("ram", func(e *jx.Encoder) { e.Base64(s.RAM[:]) })
		e.Field("ppu", func(e *jx.Encoder) { encodePPU(e, &s.PPU) })
		e.Field("mapper", func(e *jx.Encoder) { encodeMapper(e, &s.Mapper) })
	})
	return bytes.Clone(e.Bytes())
}

func encodeCPU(e *jx.Encoder, cpu *CPU) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("pc", func(e *jx.Encoder) { e.UInt16(cpu.PC) })
		e.Field("sp", func(e *jx.Encoder) { e.UInt8(cpu.SP) })
		e.Field("p", func(e *jx.Encoder) { e.UInt8(cpu.P) })
		e.Field("a", func(e *jx.Encoder) { e.UInt8(cpu.A) })
		e.Field("x", func(e *jx.Encoder) { e.UInt8(cpu.X) })
		e.Field("y", func(e *jx.Encoder) { e.UInt8(cpu.Y) })
		e.Field("cycles", func(e *jx.Encoder) { e.Int64(cpu.Cycles) })
		e.Field("halted", func(e *jx.Encoder) { e.Bool(cpu.Halted) })
		e.Field("openbus", func(e *jx.Encoder) { e.UInt8(cpu.OpenBus) })
	})
}

func encodePPU(e *jx.Encoder, ppu *PPU) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("palette", func(e *jx.Encoder) { e.Base64(ppu.Palette[:]) })
		e.Field("oam", func(e *jx.Encoder) { e.Base64(ppu.OAM[:]) })
		e.Field("ciram", func(e *jx.Encoder) { e.Base64(ppu.CIRAM[:]) })
		e.Field("openbus", func(e *jx.Encoder) { e.UInt8(ppu.OpenBus) })
		e.Field("oamaddr", func(e *jx.Encoder) { e.UInt8(ppu.OAMAddr) })
		e.Field("v", func(e *jx.Encoder) { e.UInt16(ppu.VRAMAddr) })
		e.Field("t", func(e *jx.Encoder) { e.UInt16(ppu.VRAMTemp) })
		e.Field("x", func(e *jx.Encoder) { e.UInt8(ppu.FineX) })
		e.Field("w", func(e *jx.Encoder) { e.Bool(ppu.WriteLatch) })
		e.Field("readbuf", func(e *jx.Encoder) { e.UInt8(ppu.ReadBuf) })
		e.Field("ctrl", func(e *jx.Encoder) { e.UInt8(ppu.PPUCTRL) })
		e.Field("mask", func(e *jx.Encoder) { e.UInt8(ppu.PPUMASK) })
		e.Field("status", func(e *jx.Encoder) { e.UInt8(ppu.PPUSTATUS) })
		e.Field("cycle", func(e *jx.Encoder) { e.Int(ppu.Cycle) })
		e.Field("scanline", func(e *jx.Encoder) { e.Int(ppu.Scanline) })
		e.Field("frames", func(e *jx.Encoder) { e.Int64(ppu.Frames) })
		e.Field("oddframe", func(e *jx.Encoder) { e.Bool(ppu.OddFrame) })
		e.Field("nmilatch", func(e *jx.Encoder) { e.Bool(ppu.NMILatch) })
	})
}

func encodeMapper(e *jx.Encoder, m *Mapper) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("name", func(e *jx.Encoder) { e.Str(m.Name) })
		e.Field("mirroring", func(e *jx.Encoder) { e.UInt8(m.Mirroring) })
		e.Field("prgram", func(e *jx.Encoder) { e.Base64(m.PRGRAM) })
		e.Field("chrram", func(e *jx.Encoder) { e.Base64(m.CHRRAM) })
		e.Field("regs", func(e *jx.Encoder) { e.Base64(m.Regs) })
	})
}

// Decode parses a snapshot produced by Encode.
func Decode(data []byte) (*NES, error) {
	var s NES
	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "version":
			s.Version, err = d.Int()
		case "cpu":
			err = decodeCPU(d, &s.CPU)
		case "ram":
			err = decodeFixed(d, s.RAM[:])
		case "ppu":
			err = decodePPU(d, &s.PPU)
		case "mapper":
			err = decodeMapper(d, &s.Mapper)
		default:
			err = d.Skip()
		}
		return wrapKey(err, key)
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode snapshot")
	}
	if s.Version != Version {
		return nil, errors.Errorf("unsupported snapshot version %d (want %d)", s.Version, Version)
	}
	if err := s.PPU.validate(); err != nil {
		return nil, errors.Wrap(err, "decode snapshot")
	}
	return &s, nil
}

// wrapKey annotates a decoding error with the key being decoded.
func wrapKey(err error, key string) error {
	if err != nil {
		return errors.Wrap(err, key)
	}
	return nil
}

// validate checks the PPU timing and scroll values index within the frame.
func (ppu *PPU) validate() error {
	switch {
	case ppu.Scanline < 0 || ppu.Scanline >= ScanlinesPerFrame:
		return errors.Errorf("ppu scanline %d out of range", ppu.Scanline)
	case ppu.Cycle < 0 || ppu.Cycle >= DotsPerScanline:
		return errors.Errorf("ppu cycle %d out of range", ppu.Cycle)
	case ppu.FineX >= 8:
		return errors.Errorf("ppu fine x %d out of range", ppu.FineX)
	}
	return nil
}

func decodeCPU(d *jx.Decoder, cpu *CPU) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "pc":
			cpu.PC, err = d.UInt16()
		case "sp":
			cpu.SP, err = d.UInt8()
		case "p":
			cpu.P, err = d.UInt8()
		case "a":
			cpu.A, err = d.UInt8()
		case "x":
			cpu.X, err = d.UInt8()
		case "y":
			cpu.Y, err = d.UInt8()
		case "cycles":
			cpu.Cycles, err = d.Int64()
		case "halted":
			cpu.Halted, err = d.Bool()
		case "openbus":
			cpu.OpenBus, err = d.UInt8()
		default:
			err = d.Skip()
		}
		return wrapKey(err, key)
	})
}

func decodePPU(d *jx.Decoder, ppu *PPU) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "palette":
			err = decodeFixed(d, ppu.Palette[:])
		case "oam":
			err = decodeFixed(d, ppu.OAM[:])
		case "ciram":
			err = decodeFixed(d, ppu.CIRAM[:])
		case "openbus":
			ppu.OpenBus, err = d.UInt8()
		case "oamaddr":
			ppu.OAMAddr, err = d.UInt8()
		case "v":
			ppu.VRAMAddr, err = d.UInt16()
		case "t":
			ppu.VRAMTemp, err = d.UInt16()
		case "x":
			ppu.FineX, err = d.UInt8()
		case "w":
			ppu.WriteLatch, err = d.Bool()
		case "readbuf":
			ppu.ReadBuf, err = d.UInt8()
		case "ctrl":
			ppu.PPUCTRL, err = d.UInt8()
		case "mask":
			ppu.PPUMASK, err = d.UInt8()
		case "status":
			ppu.PPUSTATUS, err = d.UInt8()
		case "cycle":
			ppu.Cycle, err = d.Int()
		case "scanline":
			ppu.Scanline, err = d.Int()
		case "frames":
			ppu.Frames, err = d.Int64()
		case "oddframe":
			ppu.OddFrame, err = d.Bool()
		case "nmilatch":
			ppu.NMILatch, err = d.Bool()
		default:
			err = d.Skip()
		}
		return wrapKey(err, key)
	})
}

func decodeMapper(d *jx.Decoder, m *Mapper) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "name":
			m.Name, err = d.Str()
		case "mirroring":
			m.Mirroring, err = d.UInt8()
		case "prgram":
			m.PRGRAM, err = decodeBytes(d)
		case "chrram":
			m.CHRRAM, err = decodeBytes(d)
		case "regs":
			m.Regs, err = decodeBytes(d)
		default:
			err = d.Skip()
		}
		return wrapKey(err, key)
	})
}

// decodeBytes decodes a base64 string, null decodes as nil.
func decodeBytes(d *jx.Decoder) ([]byte, error) {
	if d.Next() == jx.Null {
		return nil, d.Null()
	}
	return d.Base64()
}

func decodeFixed(d *jx.Decoder, dst []byte) error {
	buf, err := decodeBytes(d)
	if err != nil {
		return err
	}
	if len(buf) != len(dst) {
		return errors.Errorf("got %d bytes, want %d", len(buf), len(dst))
	}
	copy(dst, buf)
	return nil
}
