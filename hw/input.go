package hw

import (
	"fmt"
	"strings"

	"nescore/hw/hwio"
)

// Button is a bit in the state of a standard controller, in the order the
// controller shifts them out.
type Button uint8

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

var buttonNames = [...]string{"A", "B", "Select", "Start", "Up", "Down", "Left", "Right"}

func (b Button) String() string {
	var names []string
	for i, name := range buttonNames {
		if b&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, ",")
}

// ParseButtons parses a comma-separated list of button names, as returned by
// Button.String. Names are case insensitive.
func ParseButtons(s string) (Button, error) {
	var b Button
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		found := false
		for i, name := range buttonNames {
			if strings.EqualFold(tok, name) {
				b |= 1 << i
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown button %q", tok)
		}
	}
	return b, nil
}

// An InputDevice provides the state of the devices connected to both ports.
type InputDevice interface {
	// LoadState captures the current state of both input devices.
	LoadState() (uint8, uint8)
}

// StaticInput is an InputDevice whose buttons are set by the host.
type StaticInput struct {
	Port1, Port2 Button
}

func (si *StaticInput) LoadState() (uint8, uint8) {
	return uint8(si.Port1), uint8(si.Port2)
}

// InputPorts implements the controller registers. Writing 1 then 0 to bit 0
// of $4016 latches the state of both controllers, then each read of
// $4016/$4017 shifts out one button. After 8 reads, standard controllers
// report 1s.
type InputPorts struct {
	In  hwio.Reg8 `hwio:"offset=0x16,rcb,pcb,wcb"`
	Out hwio.Reg8 `hwio:"offset=0x17,rcb,pcb,wcb"`

	dev InputDevice
	bus *openBus
	apu *apuRegs

	strobe bool
	state  [2]uint8 // shift registers
}

func (ip *InputPorts) initBus(bus *openBus, apu *apuRegs) {
	hwio.MustInitRegs(ip)
	ip.bus = bus
	ip.apu = apu
}

// Connect plugs an input device. nil disconnects it.
func (ip *InputPorts) Connect(dev InputDevice) {
	ip.dev = dev
}

func (ip *InputPorts) load() {
	if ip.dev == nil {
		ip.state[0], ip.state[1] = 0, 0
		return
	}
	ip.state[0], ip.state[1] = ip.dev.LoadState()
}

func (ip *InputPorts) shift(port int) uint8 {
	if ip.strobe {
		ip.load()
	}
	bit := ip.state[port] & 1
	ip.state[port] = ip.state[port]>>1 | 0x80

	// Only bit 0 is driven, upper bits are open bus.
	return ip.bus.last&0xE0 | bit
}

func (ip *InputPorts) peek(port int) uint8 {
	return ip.bus.last&0xE0 | ip.state[port]&1
}

// $4016
func (ip *InputPorts) WriteIN(_, val uint8) {
	ip.strobe = val&1 == 1
	if ip.strobe {
		ip.load()
	}
}

func (ip *InputPorts) ReadIN(uint8) uint8 { return ip.shift(0) }
func (ip *InputPorts) PeekIN(uint8) uint8 { return ip.peek(0) }

// $4017
func (ip *InputPorts) WriteOUT(_, val uint8) { ip.apu.writeFrameCounter(val) }
func (ip *InputPorts) ReadOUT(uint8) uint8   { return ip.shift(1) }
func (ip *InputPorts) PeekOUT(uint8) uint8   { return ip.peek(1) }
