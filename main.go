// This is the main-driver for our compiler.

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gofrs/uuid"

	"github.com/skx/regc/compiler"
	"github.com/skx/regc/config"
)

var (
	errColor  = color.New(color.FgRed)
	noteColor = color.New(color.FgCyan)
	stmtColor = color.New(color.FgYellow)
)

func main() {

	//
	// Look for flags.
	//
	debug := flag.Bool("debug", false, "Write colorized diagnostics to stderr.")
	configPath := flag.String("config", "", "Path to a regc.toml config file, overriding REGC_CONFIG and ./regc.toml.")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		errColor.Fprintf(os.Stderr, "error loading config: %s\n", err)
		os.Exit(1)
	}
	if *debug {
		cfg.Compiler.Debug = true
	}

	//
	// Create a compiler-object, driven by the resolved config.
	//
	comp := compiler.New(cfg)
	if cfg.Compiler.Debug {
		comp.SetDebugLog(newDebugLogger(os.Stderr))
	}

	//
	// Run the statement loop. stdin in, stdout out - the
	// instruction stream is the only thing that belongs on stdout.
	//
	if err := comp.Run(os.Stdin, os.Stdout); err != nil && cfg.Compiler.Debug {
		// The instruction stream already carries the "EXIT 1"
		// sentinel; the process itself still exits 0 - "EXIT n"
		// is a target-machine directive, not an OS exit code.
		errColor.Fprintf(os.Stderr, "compilation stopped: %s\n", err)
	}
}

// loadConfig resolves the config file: an explicit --config flag
// wins, otherwise REGC_CONFIG or ./regc.toml via config.Load.
func loadConfig(override string) (*config.Config, error) {
	if override != "" {
		return config.LoadFrom(override)
	}
	return config.Load()
}

// newDebugLogger builds a debug callback that colorizes each line by
// its rough category and prefixes it with a short correlation id, so
// that multiple piped runs captured in one log file can be told
// apart.
func newDebugLogger(w *os.File) func(string, ...interface{}) {
	runID := "unknown"
	if id, genErr := uuid.NewV4(); genErr == nil {
		runID = id.String()[:8]
	}

	return func(format string, args ...interface{}) {
		msg := fmt.Sprintf(format, args...)

		c := noteColor
		switch {
		case strings.HasSuffix(format, "error: %s"):
			c = errColor
		case strings.HasPrefix(format, "statement:"):
			c = stmtColor
		}
		c.Fprintf(w, "[%s] %s\n", runID, msg)
	}
}
