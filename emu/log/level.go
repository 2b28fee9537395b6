package log

import "gopkg.in/Sirupsen/logrus.v0"

// Level mirrors logrus levels, lower is more severe.
type Level uint8

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)

func (l Level) logrus() logrus.Level {
	return logrus.Level(l)
}

func (l Level) String() string {
	return l.logrus().String()
}
