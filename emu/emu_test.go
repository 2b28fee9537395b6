package emu

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nescore/hw"
)

func launch(tb testing.TB, img []byte, cfg Config) *Emulator {
	tb.Helper()

	e, err := Launch(loadImage(tb, img), cfg, nil)
	if err != nil {
		tb.Fatal(err)
	}
	return e
}

func TestEmulatorRun(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Emulation.Frames = 4
	e := launch(t, nmiCounter, cfg)

	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if e.Frames() != 4 {
		t.Errorf("ran %d frames, want 4", e.Frames())
	}
}

func TestEmulatorStop(t *testing.T) {
	e := launch(t, nmiCounter, DefaultConfig())
	e.Stop()

	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if e.Frames() != 0 {
		t.Errorf("ran %d frames after Stop, want 0", e.Frames())
	}
}

func TestEmulatorCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := launch(t, nmiCounter, DefaultConfig())
	if err := e.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v, want context.Canceled", err)
	}
}

func TestEmulatorHalts(t *testing.T) {
	// KIL at the reset vector.
	e := launch(t, nromImage([]byte{0x02}, 0x8000, 0x8000, 0x8000), DefaultConfig())

	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !e.NES.CPU.Halted() {
		t.Error("CPU should be halted")
	}
}

func TestEmulatorReset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Emulation.Frames = 3
	e := launch(t, nmiCounter, cfg)

	e.Restart()
	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	// The hard reset happened after the first frame, and cleared RAM.
	if got := e.NES.CPU.Peek8(0x10); got > 2 {
		t.Errorf("NMI count = %d, want at most 2", got)
	}
}

func TestLaunchInput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Input.Port1 = "Start,Right"
	e := launch(t, nmiCounter, cfg)

	if want := hw.ButtonStart | hw.ButtonRight; e.NES.Input.Port1 != want {
		t.Errorf("port1 = %s, want %s", e.NES.Input.Port1, want)
	}

	cfg.Input.Port1 = "Jump"
	if _, err := Launch(loadImage(t, nmiCounter), cfg, nil); err == nil {
		t.Error("Launch should fail with an invalid button")
	}
}

func TestLaunchTrace(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Emulation.Frames = 1

	e, err := Launch(loadImage(t, nmiCounter), cfg, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "8000  A9 80     LDA #$80") {
		t.Errorf("unexpected trace start:\n%.200s", buf.String())
	}
}

func TestEmulatorFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Emulation.Frames = 2
	e := launch(t, nmiCounter, cfg)

	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	t.Run("screenshot", func(t *testing.T) {
		path := filepath.Join(dir, "screen.png")
		if err := e.SaveScreenshot(path); err != nil {
			t.Fatal(err)
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		img, err := png.Decode(f)
		if err != nil {
			t.Fatal(err)
		}
		if b := img.Bounds(); b.Dx() != hw.FrameWidth || b.Dy() != hw.FrameHeight {
			t.Errorf("screenshot size = %dx%d", b.Dx(), b.Dy())
		}
	})

	t.Run("snapshot", func(t *testing.T) {
		path := filepath.Join(dir, "state.json")
		if err := e.SaveSnapshot(path); err != nil {
			t.Fatal(err)
		}
		want := stateOf(e.NES)

		e.NES.RunFrame()
		if err := e.LoadSnapshot(path); err != nil {
			t.Fatal(err)
		}
		if got := stateOf(e.NES); got.Cycles != want.Cycles || got.PC != want.PC {
			t.Errorf("state not restored: got cycles=%d pc=$%04X, want cycles=%d pc=$%04X",
				got.Cycles, got.PC, want.Cycles, want.PC)
		}

		if err := e.LoadSnapshot(filepath.Join(dir, "missing.json")); err == nil {
			t.Error("loading a missing snapshot should fail")
		}
	})
}

func TestEmulatorBreakpoint(t *testing.T) {
	e := launch(t, nmiCounter, DefaultConfig())
	e.SetBreakpoints(0x8010)

	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	// The first NMI occurs during the second frame.
	if e.Frames() > 2 {
		t.Errorf("ran %d frames, want at most 2", e.Frames())
	}
	if got := e.NES.CPU.Peek8(0x10); got != 1 {
		t.Errorf("NMI count = %d, want 1", got)
	}
}
