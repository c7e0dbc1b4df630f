// Package cli handles command line interface logic
package cli

import (
	"errors"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/retroenv/nsfscope/internal/options"
)

// ParseFlags parses the command line arguments without the program name and returns the program options.
func ParseFlags(args []string) (options.Program, error) {
	var opts options.Program
	parser, err := kong.New(
		&opts,
		kong.Name("nsfscope"),
		kong.Description("Inspect NSF tunes: decode the header and disassemble the 6502 code."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	if err != nil {
		return opts, fmt.Errorf("creating parser: %w", err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		var parseErr *kong.ParseError
		if errors.As(err, &parseErr) {
			return opts, &UsageError{ctx: parseErr.Context, msg: err.Error()}
		}
		return opts, fmt.Errorf("parsing arguments: %w", err)
	}

	if opts.Version {
		return opts, nil
	}
	if len(opts.Tunes) == 0 && opts.Batch == "" {
		return opts, &UsageError{ctx: ctx, msg: "no tune files given"}
	}

	if err := validateOptions(opts); err != nil {
		return opts, &UsageError{ctx: ctx, msg: err.Error()}
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	ctx *kong.Context
	msg string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage of the program.
func (e *UsageError) ShowUsage() {
	if e.ctx == nil {
		return
	}
	_ = e.ctx.PrintUsage(false)
	fmt.Println()
}

// validateOptions checks option values that the parser can not validate
func validateOptions(opts options.Program) error {
	if opts.Jobs < 1 {
		return fmt.Errorf("invalid number of jobs %d, at least 1 is required", opts.Jobs)
	}
	if opts.Log != "" && opts.Log == opts.Summary {
		return errors.New("log directory and summary file can not use the same path")
	}
	return nil
}
