package hwio

// Device is a range of addresses entirely managed by callbacks. Missing
// callbacks read as 0 and ignore writes.
type Device struct {
	Name  string
	Size  int
	Flags RWFlags

	ReadCb  func(addr uint16) uint8
	PeekCb  func(addr uint16) uint8
	WriteCb func(addr uint16, val uint8)
}

func (d *Device) Read8(addr uint16) uint8 {
	if d.Flags&WriteOnlyFlag != 0 || d.ReadCb == nil {
		return 0
	}
	return d.ReadCb(addr)
}

func (d *Device) Peek8(addr uint16) uint8 {
	if d.PeekCb == nil {
		return 0
	}
	return d.PeekCb(addr)
}

func (d *Device) Write8(addr uint16, val uint8) {
	if d.Flags&ReadOnlyFlag != 0 || d.WriteCb == nil {
		return
	}
	d.WriteCb(addr, val)
}
