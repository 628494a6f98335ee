package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/minifeed/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   data directory
//	-f string   database file name (":memory:" for a throwaway feed)
//	-l string   log level (debug, info, warn, error)
//	-s string   initial feed sort (latest, oldest, most-liked)
//
// os.Args is filtered with flagx.FilterArgs first, so -c and unknown flags
// do not make parsing fail.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-f", "-l", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DataDir, "d", config.DataDir, "data directory")
	fs.StringVar(&config.DatabaseFile, "f", config.DatabaseFile, "database file name")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.DefaultSort, "s", config.DefaultSort, "initial feed sort")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
