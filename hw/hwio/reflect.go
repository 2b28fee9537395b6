package hwio

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// InitRegs initializes the Mem, Reg8 and Device fields of the struct pointed
// to by data, according to their "hwio" struct tag. Tag options are:
//
//	offset=0x12   offset within the bank (required by MapBank, ignored here)
//	bank=1        bank number, defaults to 0
//	size=0x800    Mem: physical size. Device: address range size
//	vsize=0x2000  Mem: mapped size, Data is mirrored over it
//	reset=0x12    Reg8: initial value
//	rwmask=0xF0   Reg8: writable bits (default 0xFF)
//	readonly      ignore writes
//	writeonly     reads return 0
//	rcb, wcb, pcb read, write, peek callbacks. By default the callback is the
//	              method named Read/Write/Peek followed by the field name in
//	              upper case (ReadPPUCTRL); rcb=Foo selects method Foo.
//
// Callback signatures are func(uint8) uint8 (Reg8 read/peek),
// func(old, val uint8) (Reg8 write), func(uint16) uint8 (Mem and Device
// read/peek) and func(uint16, uint8) (Mem and Device write).
func InitRegs(data any) error {
	val := reflect.ValueOf(data)
	if val.Kind() != reflect.Pointer || val.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("hwio: InitRegs wants a pointer to struct, got %T", data)
	}
	sv := val.Elem()
	st := sv.Type()

	for i := range st.NumField() {
		field := st.Field(i)
		tag, ok := field.Tag.Lookup("hwio")
		if !ok {
			continue
		}
		opts, err := parseTag(tag)
		if err != nil {
			return fmt.Errorf("hwio: field %s: %w", field.Name, err)
		}

		ptr := sv.Field(i).Addr().Interface()
		switch r := ptr.(type) {
		case *Mem:
			err = initMem(r, field.Name, opts, val)
		case *Reg8:
			err = initReg8(r, field.Name, opts, val)
		case *Device:
			err = initDevice(r, field.Name, opts, val)
		default:
			err = fmt.Errorf("unsupported type %s", field.Type)
		}
		if err != nil {
			return fmt.Errorf("hwio: field %s: %w", field.Name, err)
		}
	}
	return nil
}

// MustInitRegs is like InitRegs but panics on error.
func MustInitRegs(data any) {
	if err := InitRegs(data); err != nil {
		panic(err)
	}
}

type tagOpts map[string]string

func parseTag(tag string) (tagOpts, error) {
	opts := make(tagOpts)
	for _, opt := range strings.Split(tag, ",") {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}
		k, v, _ := strings.Cut(opt, "=")
		switch k {
		case "offset", "bank", "size", "vsize", "reset", "rwmask",
			"readonly", "writeonly", "rcb", "wcb", "pcb":
		default:
			return nil, fmt.Errorf("unknown tag option %q", k)
		}
		opts[k] = v
	}
	return opts, nil
}

func (o tagOpts) has(k string) bool {
	_, ok := o[k]
	return ok
}

func (o tagOpts) uint(k string, def uint64) (uint64, error) {
	s, ok := o[k]
	if !ok {
		return def, nil
	}
	n, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("option %s: %w", k, err)
	}
	return n, nil
}

func (o tagOpts) flags() RWFlags {
	var f RWFlags
	if o.has("readonly") {
		f |= ReadOnlyFlag
	}
	if o.has("writeonly") {
		f |= WriteOnlyFlag
	}
	return f
}

// method returns the callback method for option opt ("rcb", "wcb" or
// "pcb"), or an invalid Value if the option is not set.
func (o tagOpts) method(obj reflect.Value, opt, fieldName string) (reflect.Value, error) {
	name, ok := o[opt]
	if !ok {
		return reflect.Value{}, nil
	}
	if name == "" {
		prefix := map[string]string{"rcb": "Read", "wcb": "Write", "pcb": "Peek"}[opt]
		name = prefix + strings.ToUpper(fieldName)
	}
	m := obj.MethodByName(name)
	if !m.IsValid() {
		return m, fmt.Errorf("missing method %s", name)
	}
	return m, nil
}

func setCallback[F any](dst *F, obj reflect.Value, opts tagOpts, opt, fieldName string) error {
	m, err := opts.method(obj, opt, fieldName)
	if err != nil || !m.IsValid() {
		return err
	}
	f, ok := m.Interface().(F)
	if !ok {
		return fmt.Errorf("%s: method has type %s, want %T", opt, m.Type(), *dst)
	}
	*dst = f
	return nil
}

func initMem(m *Mem, name string, opts tagOpts, obj reflect.Value) error {
	size, err := opts.uint("size", 0)
	if err != nil {
		return err
	}
	if size == 0 {
		return fmt.Errorf("missing size")
	}
	vsize, err := opts.uint("vsize", size)
	if err != nil {
		return err
	}
	m.Name = name
	m.Data = make([]byte, size)
	m.VSize = int(vsize)
	m.Flags = opts.flags()
	return setCallback(&m.WriteCb, obj, opts, "wcb", name)
}

func initReg8(r *Reg8, name string, opts tagOpts, obj reflect.Value) error {
	reset, err := opts.uint("reset", 0)
	if err != nil {
		return err
	}
	rwmask, err := opts.uint("rwmask", 0xFF)
	if err != nil {
		return err
	}
	r.Name = name
	r.Value = uint8(reset)
	r.RoMask = ^uint8(rwmask)
	r.Flags = opts.flags()
	if err := setCallback(&r.ReadCb, obj, opts, "rcb", name); err != nil {
		return err
	}
	if err := setCallback(&r.PeekCb, obj, opts, "pcb", name); err != nil {
		return err
	}
	return setCallback(&r.WriteCb, obj, opts, "wcb", name)
}

func initDevice(d *Device, name string, opts tagOpts, obj reflect.Value) error {
	size, err := opts.uint("size", 0)
	if err != nil {
		return err
	}
	if size == 0 {
		return fmt.Errorf("missing size")
	}
	d.Name = name
	d.Size = int(size)
	d.Flags = opts.flags()
	if err := setCallback(&d.ReadCb, obj, opts, "rcb", name); err != nil {
		return err
	}
	if err := setCallback(&d.PeekCb, obj, opts, "pcb", name); err != nil {
		return err
	}
	return setCallback(&d.WriteCb, obj, opts, "wcb", name)
}

type bankReg struct {
	offset uint16
	regPtr any
}

// bankGetRegs returns the fields of bank tagged with bank number bankNum and
// an offset.
func bankGetRegs(bank any, bankNum int) ([]bankReg, error) {
	val := reflect.ValueOf(bank)
	if val.Kind() != reflect.Pointer || val.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("hwio: bank must be a pointer to struct, got %T", bank)
	}
	sv := val.Elem()
	st := sv.Type()

	var regs []bankReg
	for i := range st.NumField() {
		tag, ok := st.Field(i).Tag.Lookup("hwio")
		if !ok {
			continue
		}
		opts, err := parseTag(tag)
		if err != nil {
			return nil, fmt.Errorf("hwio: field %s: %w", st.Field(i).Name, err)
		}
		if !opts.has("offset") {
			continue
		}
		n, err := opts.uint("bank", 0)
		if err != nil {
			return nil, err
		}
		if int(n) != bankNum {
			continue
		}
		off, err := opts.uint("offset", 0)
		if err != nil {
			return nil, err
		}
		regs = append(regs, bankReg{
			offset: uint16(off),
			regPtr: sv.Field(i).Addr().Interface(),
		})
	}
	return regs, nil
}
