package hw

//go:generate go tool stringer -type=Interrupt -trimprefix=Int

// Interrupt identifies one of the 3 interrupt sequences of the 6502.
type Interrupt uint8

const (
	IntReset Interrupt = iota
	IntNMI
	IntIRQ
)

// Locations of the interrupt vectors.
const (
	NMIVector   = uint16(0xFFFA)
	ResetVector = uint16(0xFFFC)
	IRQVector   = uint16(0xFFFE)
)

func (i Interrupt) vector() uint16 {
	switch i {
	case IntNMI:
		return NMIVector
	case IntIRQ:
		return IRQVector
	}
	return ResetVector
}
