package log

import "gopkg.in/Sirupsen/logrus.v0"

type Fields logrus.Fields

// Entry is a printf-style log entry bound to a module. It's a value type and
// building one costs nothing until a message is actually emitted.
type Entry struct {
	mod    Module
	fields [4]struct {
		key string
		val any
	}
	nfields int
}

func (entry Entry) WithField(key string, value any) Entry {
	if entry.nfields < len(entry.fields) {
		entry.fields[entry.nfields].key = key
		entry.fields[entry.nfields].val = value
		entry.nfields++
	}
	return entry
}

func (entry Entry) log() *logrus.Entry {
	fields := make(logrus.Fields, entry.nfields+1)
	fields["_mod"] = entry.mod.String()
	for _, f := range entry.fields[:entry.nfields] {
		fields[f.key] = f.val
	}

	var z EntryZ
	for _, c := range contexts {
		c.AddLogContext(&z)
	}
	for i := range z.zfbuf[:z.zfidx] {
		fields[z.zfbuf[i].Key] = z.zfbuf[i].Value()
	}
	return logrus.StandardLogger().WithFields(fields)
}

func (entry Entry) Debugf(format string, args ...any) {
	if entry.mod.Enabled(DebugLevel) {
		entry.log().Debugf(format, args...)
	}
}

func (entry Entry) Infof(format string, args ...any) {
	if entry.mod.Enabled(InfoLevel) {
		entry.log().Infof(format, args...)
	}
}

func (entry Entry) Warnf(format string, args ...any) {
	if entry.mod.Enabled(WarnLevel) {
		entry.log().Warnf(format, args...)
	}
}

func (entry Entry) Errorf(format string, args ...any) {
	if entry.mod.Enabled(ErrorLevel) {
		entry.log().Errorf(format, args...)
	}
}

func (entry Entry) Fatalf(format string, args ...any) {
	entry.log().Fatalf(format, args...)
}
