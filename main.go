package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"

	"nescore/emu"
	"nescore/emu/log"
	"nescore/ines"
)

func main() {
	cli := parseArgs(os.Args[1:])
	cfg := emu.LoadConfigOrDefault(cli.Config)
	checkf(enableLogModules(cfg.Log.Modules), "invalid log configuration")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch cli.mode {
	case runMode:
		os.Exit(runMain(ctx, cli.Run, cfg))
	case romInfosMode:
		rom, err := ines.Open(cli.RomInfos.RomPath)
		checkf(err, "failed to read rom")
		rom.PrintInfos(os.Stdout)
	case checkMode:
		os.Exit(checkMain(ctx, cli.Check, cfg))
	case versionMode:
		printVersion()
	}
}

// enableLogModules enables debug logging for the modules listed in the
// configuration, in addition to those given with --log.
func enableLogModules(names []string) error {
	for _, name := range names {
		if name == "all" {
			log.EnableDebugModules(log.ModuleMaskAll)
			continue
		}
		mod, ok := log.ModuleByName(name)
		if !ok {
			return fmt.Errorf("unknown log module %s", name)
		}
		log.EnableDebugModules(mod.Mask())
	}
	return nil
}

func printVersion() {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		fmt.Println("nescore (unknown version)")
		return
	}
	fmt.Println("nescore", bi.Main.Version, bi.GoVersion)
}
