// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/nsfscope/internal/options"
	"github.com/retroenv/nsfscope/internal/tune"
	"github.com/retroenv/nsfscope/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// TuneOptions returns the analysis options for the program options.
func TuneOptions(opts options.Program) tune.Options {
	tuneOpts := tune.NewOptions()
	tuneOpts.ClipToAddressSpace = !opts.NoClip
	tuneOpts.StrictMagic = opts.Strict
	tuneOpts.StrictInstructions = opts.Strict
	return tuneOpts
}

// WriterOptions returns the listing options for the program options.
func WriterOptions(opts options.Program) writer.Options {
	return writer.Options{
		HexComments:    !opts.NoHexComments,
		OffsetComments: !opts.NoOffsets,
	}
}
