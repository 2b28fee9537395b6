package emu

import (
	"fmt"
	"os"

	"nescore/emu/log"
	"nescore/hw"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Emulation EmulationConfig `toml:"emulation"`
	Log       LogConfig       `toml:"log"`
	Trace     TraceConfig     `toml:"trace"`
	Check     CheckConfig     `toml:"check"`
	Input     InputConfig     `toml:"input"`
}

type EmulationConfig struct {
	// Number of frames to run, 0 means until interrupted.
	Frames int `toml:"frames"`
}

type LogConfig struct {
	// Modules for which debug logging is enabled ("all" for all of them).
	Modules []string `toml:"modules"`
}

type TraceConfig struct {
	// Execution trace destination: a file path, "stdout" or "stderr". Empty
	// disables tracing.
	Output string `toml:"output"`
}

type CheckConfig struct {
	// Maximum number of ROMs checked concurrently, 0 means GOMAXPROCS.
	Jobs int `toml:"jobs"`

	// A test ROM not reporting its result after that many frames fails.
	TimeoutFrames int `toml:"timeout_frames"`
}

// InputConfig holds the buttons held on each controller during headless
// runs, as comma-separated button names ("A,Start").
type InputConfig struct {
	Port1 string `toml:"port1"`
	Port2 string `toml:"port2"`
}

// Buttons parses the button lists of both ports.
func (icfg InputConfig) Buttons() (port1, port2 hw.Button, err error) {
	if port1, err = hw.ParseButtons(icfg.Port1); err != nil {
		return 0, 0, fmt.Errorf("input port1: %w", err)
	}
	if port2, err = hw.ParseButtons(icfg.Port2); err != nil {
		return 0, 0, fmt.Errorf("input port2: %w", err)
	}
	return port1, port2, nil
}

func DefaultConfig() Config {
	return Config{
		Check: CheckConfig{
			TimeoutFrames: 60 * 60,
		},
	}
}

// LoadConfig loads the configuration at path. Missing settings keep their
// default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, err
	}
	for _, key := range md.Undecoded() {
		log.ModEmu.WarnZ("unknown config key").
			String("file", path).
			Stringer("key", key).
			End()
	}
	return cfg, nil
}

// LoadConfigOrDefault loads the configuration at path, or provides the
// default one if it can't be loaded.
func LoadConfigOrDefault(path string) Config {
	cfg, err := LoadConfig(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.ModEmu.WarnZ("failed to load config, using default").Error("err", err).End()
		}
		return DefaultConfig()
	}
	return cfg
}

// SaveConfig writes cfg at path.
func SaveConfig(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}
