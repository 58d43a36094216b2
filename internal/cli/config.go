package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// configFile is the name of the config file inside configDir.
const configFile = "config.toml"

// Config holds settings from the user's config file. The file lives at
// $XDG_CONFIG_HOME/ripple/config.toml (~/.config/ripple/config.toml by
// default) and every key is optional:
//
//	[eval]
//	precision = 2
//
//	[dot]
//	format = "svg"
//	rankdir = "LR"
//	values = true
//
//	[watch]
//	step = 0.5
//
// Command-line flags override config values; config values override the
// built-in defaults.
type Config struct {
	Eval struct {
		Precision int `toml:"precision"`
	} `toml:"eval"`
	Dot struct {
		Format  string `toml:"format"`
		Rankdir string `toml:"rankdir"`
		Values  bool   `toml:"values"`
	} `toml:"dot"`
	Watch struct {
		Step float32 `toml:"step"`
	} `toml:"watch"`
}

// loadConfig reads the user's config file. A missing file is not an error:
// the zero Config leaves every setting at its built-in default.
func loadConfig() (Config, error) {
	dir, err := configDir()
	if err != nil {
		return Config{}, nil
	}
	data, err := os.ReadFile(filepath.Join(dir, configFile))
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", configFile, err)
	}
	return cfg, nil
}
