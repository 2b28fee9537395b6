// Package log is a module-aware logger built on top of logrus.
//
// Every emulated component logs through its own Module. Warnings and errors
// are always shown, debug and info messages only for the modules enabled with
// EnableDebugModules. The Z family (DebugZ, InfoZ...) returns a nil *EntryZ
// when the message is filtered out, so that disabled logging costs a single
// branch on hot paths.
package log

import (
	"io"

	"gopkg.in/Sirupsen/logrus.v0"
)

var disabled bool

func init() {
	logrus.SetLevel(logrus.DebugLevel)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
}

// SetOutput sets the destination of all log messages.
func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}

// Disable turns off logging, at all levels and for all modules.
func Disable() {
	disabled = true
}

// Enable turns logging back on after a call to Disable.
func Enable() {
	disabled = false
}

// A Context adds fields to every message emitted, for example the current
// CPU clock or PPU position.
type Context interface {
	AddLogContext(e *EntryZ)
}

var contexts []Context

// AddContext registers a context. It returns a function removing it.
func AddContext(ctx Context) (remove func()) {
	contexts = append(contexts, ctx)
	return func() {
		for i, c := range contexts {
			if c == ctx {
				contexts = append(contexts[:i], contexts[i+1:]...)
				return
			}
		}
	}
}
