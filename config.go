package main

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"

	"moss/emu/log"
)

const defaultCycleLimit = 100_000_000

type Config struct {
	General GeneralConfig `toml:"general"`
}

type GeneralConfig struct {
	CycleLimit int64 `toml:"cycle_limit"`
	TraceJSON  bool  `toml:"trace_json"`
}

var ConfigDir string = sync.OnceValue(func() string {
	dir := configdir.LocalConfig("moss")
	if err := configdir.MakePath(dir); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})()

const cfgFilename = "config.toml"

// LoadConfigOrDefault loads the configuration from the moss config
// directory, or provides a default one.
func LoadConfigOrDefault() Config {
	var cfg Config
	_, err := toml.DecodeFile(filepath.Join(ConfigDir, cfgFilename), &cfg)
	if err != nil {
		return Config{}
	}
	return cfg
}

// SaveConfig into the moss config directory.
func SaveConfig(cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(ConfigDir, cfgFilename), buf, 0644)
}
