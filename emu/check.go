package emu

import (
	"bytes"
	"context"
	"fmt"

	"nescore/emu/log"
	"nescore/ines"

	"golang.org/x/sync/errgroup"
)

// Test ROMs following the blargg protocol report their progress in PRG RAM:
//
//	$6000       status: $80 running, $81 reset needed, $00-$7F result code
//	$6001-$6003 signature DE B0 61, written once the status is valid
//	$6004-      null-terminated output text
const (
	statusRunning    = 0x80
	statusNeedsReset = 0x81
)

var testSignature = []byte{0xDE, 0xB0, 0x61}

// TestStatus is the state reported by a test ROM.
type TestStatus struct {
	Code    uint8
	Message string
}

func (ts TestStatus) Running() bool    { return ts.Code == statusRunning }
func (ts TestStatus) NeedsReset() bool { return ts.Code == statusNeedsReset }
func (ts TestStatus) Passed() bool     { return ts.Code == 0 }

// ReadTestStatus reads the status reported by a test ROM. ok is false if the
// ROM didn't write the signature (yet).
func ReadTestStatus(nes *NES) (ts TestStatus, ok bool) {
	sig := []byte{
		nes.CPU.Peek8(0x6001),
		nes.CPU.Peek8(0x6002),
		nes.CPU.Peek8(0x6003),
	}
	if !bytes.Equal(sig, testSignature) {
		return TestStatus{}, false
	}

	ts.Code = nes.CPU.Peek8(0x6000)
	var msg []byte
	for addr := uint16(0x6004); addr < 0x8000; addr++ {
		c := nes.CPU.Peek8(addr)
		if c == 0 {
			break
		}
		msg = append(msg, c)
	}
	ts.Message = string(bytes.TrimSpace(msg))
	return ts, true
}

// CheckResult is the outcome of a test ROM run.
type CheckResult struct {
	Path   string
	Status TestStatus
	Frames int
	Err    error // ROM couldn't be loaded or didn't complete
}

func (r CheckResult) Passed() bool {
	return r.Err == nil && r.Status.Passed()
}

// CheckROMs runs test ROMs concurrently, each in its own session, and
// returns their results in the order of paths. Only a canceled context
// causes an error, failures of individual ROMs are reported in the results.
func CheckROMs(ctx context.Context, paths []string, cfg CheckConfig) ([]CheckResult, error) {
	results := make([]CheckResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if cfg.Jobs > 0 {
		g.SetLimit(cfg.Jobs)
	}
	for i, path := range paths {
		g.Go(func() error {
			res, err := checkROM(ctx, path, cfg.TimeoutFrames)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// resetDelay is the number of frames to wait before resetting the console
// when a test ROM asks for it (the protocol requires at least 100ms).
const resetDelay = 10

func checkROM(ctx context.Context, path string, timeout int) (CheckResult, error) {
	res := CheckResult{Path: path}

	rom, err := ines.Open(path)
	if err != nil {
		res.Err = err
		return res, nil
	}
	nes, err := PowerUp(rom)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", path, err)
		return res, nil
	}

	resetAt := -1
	for res.Frames = 0; res.Frames < timeout; res.Frames++ {
		if res.Frames%60 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		nes.RunFrame()

		ts, ok := ReadTestStatus(nes)
		if !ok {
			continue
		}
		res.Status = ts
		switch {
		case ts.Running():
		case ts.NeedsReset():
			if resetAt < 0 {
				resetAt = res.Frames + resetDelay
			}
			if res.Frames >= resetAt {
				nes.Reset(true)
				resetAt = -1
			}
		default:
			log.ModEmu.InfoZ("test rom done").
				String("rom", path).
				Uint8("code", ts.Code).
				Int("frames", res.Frames).
				End()
			return res, nil
		}
	}

	res.Err = fmt.Errorf("%s: no result after %d frames", path, timeout)
	return res, nil
}
