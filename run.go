package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"

	"nescore/emu"
	"nescore/emu/rpc"
	"nescore/ines"
)

// runMain runs rom headlessly and returns the process exit code.
func runMain(ctx context.Context, args Run, cfg emu.Config) int {
	rom, err := ines.Open(args.RomPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading ROM: %s\n", err)
		return 1
	}

	var traceout io.WriteCloser
	if args.Trace != nil {
		traceout = args.Trace
		defer traceout.Close()
	} else if cfg.Trace.Output != "" {
		f := &outfile{}
		if err := f.open(cfg.Trace.Output); err != nil {
			fmt.Fprintf(os.Stderr, "failed to open trace output: %v\n", err)
			return 1
		}
		traceout = f
		defer traceout.Close()
	}

	if args.Frames != 0 {
		cfg.Emulation.Frames = args.Frames
	}
	if args.Buttons != "" {
		cfg.Input.Port1 = args.Buttons
	}

	var w io.Writer
	if traceout != nil {
		w = traceout
	}
	emulator, err := emu.Launch(rom, cfg, w)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start emulator: %v\n", err)
		return 1
	}

	if len(args.Break) > 0 {
		addrs, err := parseAddrs(args.Break)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid breakpoint: %v\n", err)
			return 1
		}
		emulator.SetBreakpoints(addrs...)
	}

	if args.RPC != 0 {
		srv, err := rpc.NewServer(args.RPC, emulator)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start rpc server: %v\n", err)
			return 1
		}
		defer srv.Close()
	}

	if args.LoadState != "" {
		if err := emulator.LoadSnapshot(args.LoadState); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load snapshot: %v\n", err)
			return 1
		}
	}

	if args.CPUProfile != "" {
		f, err := os.Create(args.CPUProfile)
		checkf(err, "failed to create cpu profile file")
		checkf(pprof.StartCPUProfile(f), "failed to start cpu profile")
		defer func() {
			pprof.StopCPUProfile()
			f.Close()
			fmt.Println("CPU profile written to", args.CPUProfile)
		}()
	}

	exitcode := 0
	if err := emulator.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "emulation error: %v\n", err)
		exitcode = 1
	}

	if args.Screenshot != "" {
		if err := emulator.SaveScreenshot(args.Screenshot); err != nil {
			fmt.Fprintf(os.Stderr, "failed to save screenshot: %v\n", err)
			exitcode = 1
		}
	}
	if args.SaveState != "" {
		if err := emulator.SaveSnapshot(args.SaveState); err != nil {
			fmt.Fprintf(os.Stderr, "failed to save snapshot: %v\n", err)
			exitcode = 1
		}
	}
	return exitcode
}

// parseAddrs parses hexadecimal CPU addresses, optionally prefixed with $.
func parseAddrs(strs []string) ([]uint16, error) {
	addrs := make([]uint16, 0, len(strs))
	for _, s := range strs {
		addr, err := strconv.ParseUint(strings.TrimPrefix(s, "$"), 16, 16)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		addrs = append(addrs, uint16(addr))
	}
	return addrs, nil
}

// checkMain runs test ROMs and prints a line per ROM. The exit code is 1 if
// any of them failed.
func checkMain(ctx context.Context, args Check, cfg emu.Config) int {
	if args.Jobs != 0 {
		cfg.Check.Jobs = args.Jobs
	}
	if args.Timeout != 0 {
		cfg.Check.TimeoutFrames = args.Timeout
	}

	results, err := emu.CheckROMs(ctx, args.RomPaths, cfg.Check)
	if err != nil {
		fmt.Fprintf(os.Stderr, "check interrupted: %v\n", err)
		return 1
	}

	exitcode := 0
	var npassed int
	for _, res := range results {
		switch {
		case res.Err != nil:
			fmt.Printf("ERROR %s: %v\n", res.Path, res.Err)
			exitcode = 1
		case res.Passed():
			fmt.Printf("PASS  %s (%d frames)\n", res.Path, res.Frames)
			npassed++
		default:
			fmt.Printf("FAIL  %s: code %d\n", res.Path, res.Status.Code)
			if res.Status.Message != "" {
				fmt.Printf("\t%s\n", res.Status.Message)
			}
			exitcode = 1
		}
	}
	fmt.Printf("%d/%d passed\n", npassed, len(results))
	return exitcode
}
