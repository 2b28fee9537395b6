package rpc

import (
	"sync"
	"testing"
)

type fakeEmu struct {
	mu    sync.Mutex
	calls []string
}

func (e *fakeEmu) record(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, name)
}

func (e *fakeEmu) Reset()      { e.record("reset") }
func (e *fakeEmu) Restart()    { e.record("restart") }
func (e *fakeEmu) Stop()       { e.record("stop") }
func (e *fakeEmu) Frames() int { return 42 }

func TestClientServer(t *testing.T) {
	port, err := UnusedPort()
	if err != nil {
		t.Fatal(err)
	}

	emu := &fakeEmu{}
	srv, err := NewServer(port, emu)
	if err != nil {
		t.Fatal(err)
	}
	defer srv.Close()

	client, err := NewClient(port)
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	for _, f := range []func() error{client.Reset, client.Restart, client.Stop} {
		if err := f(); err != nil {
			t.Fatal(err)
		}
	}
	frames, err := client.Frames()
	if err != nil {
		t.Fatal(err)
	}
	if frames != 42 {
		t.Errorf("frames = %d, want 42", frames)
	}

	emu.mu.Lock()
	defer emu.mu.Unlock()
	want := []string{"reset", "restart", "stop"}
	if len(emu.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", emu.calls, want)
	}
	for i := range want {
		if emu.calls[i] != want[i] {
			t.Errorf("calls = %v, want %v", emu.calls, want)
		}
	}
}
