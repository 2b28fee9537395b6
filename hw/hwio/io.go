// Package hwio maps memories, registers and devices onto a 16-bit address
// bus.
package hwio

// BankIO8 is implemented by everything that can be mapped on a Table.
type BankIO8 interface {
	Read8(addr uint16) uint8
	// Peek8 reads without side effects, for tracing and debugging.
	Peek8(addr uint16) uint8
	Write8(addr uint16, val uint8)
}

// Read16 reads a little-endian word at addr.
func Read16(b BankIO8, addr uint16) uint16 {
	lo := b.Read8(addr)
	hi := b.Read8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

type RWFlags uint8

const (
	ReadWriteFlag RWFlags = 0
	ReadOnlyFlag  RWFlags = 1 << iota
	WriteOnlyFlag
)
