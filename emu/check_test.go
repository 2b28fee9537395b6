package emu

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadTestStatus(t *testing.T) {
	nes := powerUp(t, nmiCounter)

	if _, ok := ReadTestStatus(nes); ok {
		t.Fatal("status reported without signature")
	}

	for i, b := range testReport(0x80, "  01-basics\n\nrunning  ") {
		nes.Mapper.WritePRG(0x6000+uint16(i), b)
	}
	ts, ok := ReadTestStatus(nes)
	if !ok {
		t.Fatal("status not found")
	}
	want := TestStatus{Code: 0x80, Message: "01-basics\n\nrunning"}
	if diff := cmp.Diff(want, ts); diff != "" {
		t.Errorf("status mismatch (-want +got):\n%s", diff)
	}
	if !ts.Running() || ts.Passed() || ts.NeedsReset() {
		t.Errorf("status %+v should only be running", ts)
	}
}

func TestCheckROMs(t *testing.T) {
	paths := []string{
		writeImage(t, "pass.nes", testRomImage(testReport(0, "Passed"))),
		writeImage(t, "fail.nes", testRomImage(testReport(3, "Failed #3"))),
		writeImage(t, "timeout.nes", nmiCounter),
		filepath.Join(t.TempDir(), "missing.nes"),
		writeImage(t, "garbage.nes", []byte("not a rom")),
	}

	cfg := CheckConfig{Jobs: 2, TimeoutFrames: 5}
	results, err := CheckROMs(context.Background(), paths, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(paths) {
		t.Fatalf("got %d results, want %d", len(results), len(paths))
	}

	type outcome struct {
		Path    string
		Passed  bool
		Code    uint8
		Message string
		Err     bool
	}
	var got []outcome
	for _, r := range results {
		got = append(got, outcome{
			Path:    r.Path,
			Passed:  r.Passed(),
			Code:    r.Status.Code,
			Message: r.Status.Message,
			Err:     r.Err != nil,
		})
	}
	want := []outcome{
		{Path: paths[0], Passed: true, Message: "Passed"},
		{Path: paths[1], Code: 3, Message: "Failed #3"},
		{Path: paths[2], Err: true},
		{Path: paths[3], Err: true},
		{Path: paths[4], Err: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	if results[2].Frames != cfg.TimeoutFrames {
		t.Errorf("timed out after %d frames, want %d", results[2].Frames, cfg.TimeoutFrames)
	}
}

func TestCheckROMsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	paths := []string{writeImage(t, "timeout.nes", nmiCounter)}
	_, err := CheckROMs(ctx, paths, CheckConfig{TimeoutFrames: 1000})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got error %v, want context.Canceled", err)
	}
}
