// Package rpc exposes the controls of a running emulator over net/rpc, so
// that a headless session can be stopped or reset by another process.
package rpc

import (
	"net"

	"nescore/emu/log"
)

var modRPC = log.NewModule("rpc")

// Emu is the emulator as controlled remotely.
type Emu interface {
	Reset()
	Restart()
	Stop()
	Frames() int
}

// UnusedPort returns a TCP port available on localhost.
func UnusedPort() (int, error) {
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	port := l.Addr().(*net.TCPAddr).Port
	if err := l.Close(); err != nil {
		return 0, err
	}
	return port, nil
}
