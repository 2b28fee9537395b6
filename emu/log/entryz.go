package log

import (
	"fmt"
	"sync"

	"gopkg.in/Sirupsen/logrus.v0"
)

const maxZFields = 16

// EntryZ is a log entry with typed fields. All methods accept a nil receiver
// and do nothing, which is what a filtered-out message is.
type EntryZ struct {
	lvl   Level
	mod   Module
	msg   string
	zfbuf [maxZFields]ZField
	zfidx int
}

var entryzPool = sync.Pool{
	New: func() any { return new(EntryZ) },
}

func newEntryZ() *EntryZ {
	e := entryzPool.Get().(*EntryZ)
	e.zfidx = 0
	return e
}

func (e *EntryZ) field() *ZField {
	if e.zfidx == maxZFields {
		return nil
	}
	f := &e.zfbuf[e.zfidx]
	*f = ZField{}
	e.zfidx++
	return f
}

func (e *EntryZ) add(typ FieldType, key string) *ZField {
	if e == nil {
		return nil
	}
	f := e.field()
	if f != nil {
		f.Type = typ
		f.Key = key
	}
	return f
}

func (e *EntryZ) String(key, val string) *EntryZ {
	if f := e.add(FieldTypeString, key); f != nil {
		f.String = val
	}
	return e
}

func (e *EntryZ) Bool(key string, val bool) *EntryZ {
	if f := e.add(FieldTypeBool, key); f != nil {
		f.Boolean = val
	}
	return e
}

func (e *EntryZ) Hex8(key string, val uint8) *EntryZ {
	if f := e.add(FieldTypeHex8, key); f != nil {
		f.Integer = uint64(val)
	}
	return e
}

func (e *EntryZ) Hex16(key string, val uint16) *EntryZ {
	if f := e.add(FieldTypeHex16, key); f != nil {
		f.Integer = uint64(val)
	}
	return e
}

func (e *EntryZ) Hex32(key string, val uint32) *EntryZ {
	if f := e.add(FieldTypeHex32, key); f != nil {
		f.Integer = uint64(val)
	}
	return e
}

func (e *EntryZ) Int(key string, val int) *EntryZ {
	if f := e.add(FieldTypeInt, key); f != nil {
		f.Integer = uint64(val)
	}
	return e
}

func (e *EntryZ) Int64(key string, val int64) *EntryZ {
	if f := e.add(FieldTypeInt, key); f != nil {
		f.Integer = uint64(val)
	}
	return e
}

func (e *EntryZ) Uint8(key string, val uint8) *EntryZ {
	if f := e.add(FieldTypeUint, key); f != nil {
		f.Integer = uint64(val)
	}
	return e
}

func (e *EntryZ) Uint16(key string, val uint16) *EntryZ {
	if f := e.add(FieldTypeUint, key); f != nil {
		f.Integer = uint64(val)
	}
	return e
}

func (e *EntryZ) Uint64(key string, val uint64) *EntryZ {
	if f := e.add(FieldTypeUint, key); f != nil {
		f.Integer = val
	}
	return e
}

func (e *EntryZ) Error(key string, err error) *EntryZ {
	if f := e.add(FieldTypeError, key); f != nil {
		f.Error = err
	}
	return e
}

func (e *EntryZ) Stringer(key string, val fmt.Stringer) *EntryZ {
	if f := e.add(FieldTypeStringer, key); f != nil {
		f.Interface = val
	}
	return e
}

func (e *EntryZ) Blob(key string, val []byte) *EntryZ {
	if f := e.add(FieldTypeBlob, key); f != nil {
		f.Blob = val
	}
	return e
}

// End emits the entry and recycles it.
func (e *EntryZ) End() {
	if e == nil {
		return
	}
	for _, c := range contexts {
		c.AddLogContext(e)
	}

	fields := make(logrus.Fields, e.zfidx+1)
	fields["_mod"] = e.mod.String()
	for i := range e.zfbuf[:e.zfidx] {
		fields[e.zfbuf[i].Key] = e.zfbuf[i].Value()
	}
	entry := logrus.StandardLogger().WithFields(fields)

	switch e.lvl {
	case DebugLevel:
		entry.Debug(e.msg)
	case InfoLevel:
		entry.Info(e.msg)
	case WarnLevel:
		entry.Warn(e.msg)
	case ErrorLevel:
		entry.Error(e.msg)
	case FatalLevel:
		entry.Fatal(e.msg)
	case PanicLevel:
		entry.Panic(e.msg)
	}
	entryzPool.Put(e)
}
