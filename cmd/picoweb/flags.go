// flags.go - command-line flags and how they override the config file
package main

import (
	"flag"

	"github.com/jromang/picochess/internal/config"
)

var (
	// Server
	configFile = flag.String("config", "", "Config file (yaml, json or toml)")
	addr       = flag.String("addr", "", "Listen address (overrides server.addr)")
	sessionID  = flag.String("session", "", "Resume the stored session with this id")
	logLevel   = flag.String("log-level", "", "Log level (overrides log.level)")

	// Batch export
	exportFile   = flag.String("export", "", "Render the games of this PGN file to stdout and exit")
	format       = flag.String("format", "pgn", "Batch output format: pgn, html, json")
	columns      = flag.Int("columns", 0, "Wrap movetext at this width (overrides output.columns)")
	workers      = flag.Int("workers", 4, "Batch worker goroutines")
	noComments   = flag.Bool("C", false, "Don't output comments or NAGs")
	noVariations = flag.Bool("V", false, "Don't output variations")
	ecoFile      = flag.String("e", "", "ECO classification file (PGN format)")

	showVersion = flag.Bool("version", false, "Show version and exit")
)

// applyFlags copies explicitly set flags over the loaded config and
// validates the result.
func applyFlags(cfg *config.Config) (*config.Config, error) {
	b := config.BuilderFrom(cfg)
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			b.WithAddr(*addr)
		case "log-level":
			b.WithLogLevel(*logLevel)
		case "columns":
			b.WithColumns(*columns)
		case "C":
			b.KeepComments(!*noComments)
		case "V":
			b.KeepVariations(!*noVariations)
		}
	})
	return b.Build()
}
