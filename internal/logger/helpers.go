package logger

import (
	"os"

	"golang.org/x/term"
)

var (
	FlagVerboseCount int  // -V, -VV
	FlagQuiet        bool // --quiet/-q
	FlagJSON         bool // --json-logs
)

// ConfigureLoggerFromFlags maps the global CLI flags onto Configure. Color is
// only used when stdout is a terminal.
func ConfigureLoggerFromFlags() {
	level := "info"
	switch {
	case FlagQuiet:
		level = "error"
	case FlagVerboseCount > 0:
		level = "debug"
	}

	Configure(Options{
		Level: level,
		JSON:  FlagJSON,
		Color: !FlagJSON && term.IsTerminal(int(os.Stdout.Fd())),
		Out:   os.Stdout,
	})
}
