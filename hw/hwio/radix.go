package hwio

import "fmt"

// radixTree is a two-level lookup table indexed by the high then the low
// byte of an address. Leaves are allocated on first use.
type radixTree struct {
	root [256]*[256]BankIO8
}

func (rt *radixTree) Search(addr uint16) BankIO8 {
	leaf := rt.root[addr>>8]
	if leaf == nil {
		return nil
	}
	return leaf[addr&0xff]
}

// InsertRange maps io to [begin, end]. It fails, without modifying the tree,
// if any address in the range is already mapped.
func (rt *radixTree) InsertRange(begin, end uint16, io BankIO8) error {
	if end < begin {
		return fmt.Errorf("invalid range [%04X-%04X]", begin, end)
	}
	for a := uint32(begin); a <= uint32(end); a++ {
		if rt.Search(uint16(a)) != nil {
			return fmt.Errorf("address %04X already mapped (range [%04X-%04X])", a, begin, end)
		}
	}
	for a := uint32(begin); a <= uint32(end); a++ {
		hi := a >> 8
		if rt.root[hi] == nil {
			rt.root[hi] = new([256]BankIO8)
		}
		rt.root[hi][a&0xff] = io
	}
	return nil
}

func (rt *radixTree) RemoveRange(begin, end uint16) {
	for a := uint32(begin); a <= uint32(end); a++ {
		if leaf := rt.root[a>>8]; leaf != nil {
			leaf[a&0xff] = nil
		}
	}
}
