// Package cfg contains common configuration variables.
package cfg

import (
	"flag"
	"log/slog"
	"os"

	"github.com/rusq/osenv/v2"

	"github.com/rusq/datax/internal/dataset"
)

const (
	envDB      = "DATAX_DB"
	envBaseLoc = "BASE_LOC"
)

// Terminal is the output location that means standard output.
const Terminal = "-"

var (
	TraceFile string
	LogFile   string
	JsonLog   bool
	Verbose   bool

	// StorePath is the DuckDB database location.  The default is an
	// in-memory database that is discarded on exit.
	StorePath string

	// BaseLoc is the base output location - a directory or a zip file, or
	// "-" for the terminal.
	BaseLoc string

	// Log is the default logger, it may be reinitialised by the main
	// package after the flags are parsed.
	Log *slog.Logger = slog.Default()
)

var logLevel = new(slog.LevelVar)

type FlagMask int

const (
	DefaultFlags FlagMask = 0
	OmitStoreFlag FlagMask = 1 << iota
	OmitBaseLoc

	OmitAll = OmitStoreFlag |
		OmitBaseLoc
)

// SetBaseFlags sets base flags
func SetBaseFlags(fs *flag.FlagSet, mask FlagMask) {
	fs.StringVar(&TraceFile, "trace", os.Getenv("TRACE_FILE"), "trace `filename`")
	fs.StringVar(&LogFile, "log", os.Getenv("LOG_FILE"), "log `file`, if not specified, messages are printed to STDERR")
	fs.BoolVar(&JsonLog, "log-json", osenv.Value("JSON_LOG", false), "log in JSON format")
	fs.BoolVar(&Verbose, "v", osenv.Value("DEBUG", false), "verbose messages")

	if mask&OmitStoreFlag == 0 {
		fs.StringVar(&StorePath, "db", osenv.Value(envDB, dataset.InMemory), "DuckDB database `location`, use \""+dataset.InMemory+"\" for a\nthrowaway in-memory database")
	}
	if mask&OmitBaseLoc == 0 {
		fs.StringVar(&BaseLoc, "base", osenv.Value(envBaseLoc, Terminal), "a `location` (a directory or a ZIP file) on the local disk to save\nexported files to, \"-\" for the terminal.")
	}
}

// SetDebugLevel sets the log level to debug if verbose is requested.
func SetDebugLevel() {
	if Verbose {
		logLevel.Set(slog.LevelDebug)
	}
}

// LogLevel returns the current log level variable.
func LogLevel() *slog.LevelVar {
	return logLevel
}
