package hwio

import "testing"

type regBank struct {
	Ctrl   Reg8 `hwio:"offset=0x111,reset=0x23,rwmask=0x1,wcb"`
	Data   Reg8 `hwio:"offset=0x444,bank=1,rcb"`
	VRAM   Mem  `hwio:"bank=1,offset=0x1000,size=0x400,vsize=0x1000"`
	called bool
}

func (b *regBank) WriteCTRL(old, val uint8) { b.called = true }
func (b *regBank) ReadDATA(val uint8) uint8 { return val | 1 }

func TestInitRegs(t *testing.T) {
	b := &regBank{}
	if err := InitRegs(b); err != nil {
		t.Fatal(err)
	}

	if b.Ctrl.Name != "Ctrl" || b.Data.Name != "Data" {
		t.Errorf("invalid names: %v %v", b.Ctrl, b.Data)
	}
	if got := b.Data.Read8(0); got != 1 {
		t.Errorf("Data.Read8 = %02X, want 01", got)
	}
	if got := b.Ctrl.Read8(0); got != 0x23 {
		t.Errorf("Ctrl.Read8 = %02X, want 23", got)
	}

	b.Ctrl.Write8(0, 0)
	if b.Ctrl.Value != 0x22 {
		t.Errorf("rwmask not respected, Ctrl = %02X", b.Ctrl.Value)
	}
	if !b.called {
		t.Error("write callback not called")
	}
	if len(b.VRAM.Data) != 0x400 || b.VRAM.VSize != 0x1000 {
		t.Errorf("VRAM: len=%d vsize=%d", len(b.VRAM.Data), b.VRAM.VSize)
	}
}

func TestInitRegsErrors(t *testing.T) {
	tests := []struct {
		name string
		data any
	}{
		{"not a pointer", regBank{}},
		{"missing method", &struct {
			R Reg8 `hwio:"offset=0,rcb"`
		}{}},
		{"unknown option", &struct {
			R Reg8 `hwio:"offset=0,foo=1"`
		}{}},
		{"mem without size", &struct {
			M Mem `hwio:"offset=0"`
		}{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := InitRegs(tt.data); err == nil {
				t.Errorf("InitRegs should have failed")
			}
		})
	}
}

func TestBankGetRegs(t *testing.T) {
	b := &regBank{}
	regs, err := bankGetRegs(b, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(regs) != 1 {
		t.Fatalf("got %d regs in bank 0, want 1", len(regs))
	}
	if regs[0].offset != 0x111 {
		t.Errorf("offset = %X, want 111", regs[0].offset)
	}
	if ptr, ok := regs[0].regPtr.(*Reg8); !ok || ptr != &b.Ctrl {
		t.Errorf("invalid reg ptr %T", regs[0].regPtr)
	}

	regs, err = bankGetRegs(b, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(regs) != 2 {
		t.Fatalf("got %d regs in bank 1, want 2", len(regs))
	}
	if regs[1].offset != 0x1000 {
		t.Errorf("offset = %X, want 1000", regs[1].offset)
	}
}
