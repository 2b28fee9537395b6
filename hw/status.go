package hw

// P is the processor status register.
type P uint8

const (
	Carry      = 1 << iota // C
	Zero                   // Z
	IntDisable             // I
	Decimal                // D, stored but without effect on the 2A03
	Break                  // B, only exists in the copy pushed on the stack
	Unused                 // U, always 1 when pushed
	Overflow               // V
	Negative               // N
)

func (p P) String() string {
	const bits = "nvubdizcNVUBDIZC"

	var s [8]byte
	for i := range 8 {
		ibit := (uint8(p) >> (7 - i)) & 1
		s[i] = bits[i+int(8*ibit)]
	}
	return string(s[:])
}

func (p P) C() bool { return p&Carry != 0 }
func (p P) Z() bool { return p&Zero != 0 }
func (p P) I() bool { return p&IntDisable != 0 }
func (p P) D() bool { return p&Decimal != 0 }
func (p P) B() bool { return p&Break != 0 }
func (p P) V() bool { return p&Overflow != 0 }
func (p P) N() bool { return p&Negative != 0 }

func (p *P) set(flag uint8, on bool) {
	if on {
		*p |= P(flag)
	} else {
		*p &^= P(flag)
	}
}

// checkNZ updates N and Z according to v.
func (p *P) checkNZ(v uint8) {
	p.set(Negative, v&0x80 != 0)
	p.set(Zero, v == 0)
}

// checkCV updates C and V after the 8-bit addition x+y (+carry) = sum.
func (p *P) checkCV(x, y uint8, sum uint16) {
	p.set(Carry, sum > 0xFF)
	// Signed overflow happens when both operands have the same sign and
	// the result has a different one.
	p.set(Overflow, (uint16(x)^sum)&(uint16(y)^sum)&0x80 != 0)
}

// carry returns 1 if C is set, 0 otherwise.
func (p P) carry() uint8 {
	return uint8(p & Carry)
}
