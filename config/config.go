// Package config loads a small set of constants an operator may
// reasonably want to tune without recompiling: symbol table capacity,
// memory slot width, maximum lexeme length, and whether debug
// diagnostics are written to stderr. It follows the
// discover-file-or-fall-back-to-defaults shape of an emulator's
// config package: an absent file is not an error.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/skx/regc/symtab"
	"github.com/skx/regc/token"
)

// EnvVar names the environment variable that overrides the default
// config file location.
const EnvVar = "REGC_CONFIG"

// DefaultPath is where Load looks for a config file when REGC_CONFIG
// is unset.
const DefaultPath = "regc.toml"

// Compiler holds the tunable constants.
type Compiler struct {
	SymbolCapacity int  `toml:"symbol_capacity"`
	SlotWidth      int  `toml:"slot_width"`
	MaxLexeme      int  `toml:"max_lexeme"`
	Debug          bool `toml:"debug"`
}

// Config is the top-level document shape.
type Config struct {
	Compiler Compiler `toml:"compiler"`
}

// Default returns a Config whose values match the compiler's built-in
// constants exactly - the behaviour a user sees with no config file
// present at all.
func Default() *Config {
	return &Config{
		Compiler: Compiler{
			SymbolCapacity: symtab.DefaultCapacity,
			SlotWidth:      symtab.SlotWidth,
			MaxLexeme:      token.MaxLexeme,
			Debug:          false,
		},
	}
}

// Load resolves the config path (REGC_CONFIG, else DefaultPath) and
// reads it. A missing file is not an error: Load returns the built-in
// defaults.
func Load() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		path = DefaultPath
	}
	return LoadFrom(path)
}

// LoadFrom reads path, falling back to Default when it does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return cfg, nil
}
