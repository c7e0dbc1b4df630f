// Package main implements the main entry point for the NSF tune inspector
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/nsfscope/internal/cli"
	"github.com/retroenv/nsfscope/internal/config"
	"github.com/retroenv/nsfscope/internal/fileprocessor"
	"github.com/retroenv/nsfscope/internal/pipeline"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags(os.Args[1:])
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			logger.Error(usageErr.Error())
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("version: %s\n", buildinfo.Version(version, commit, date))
		return
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	files, err := fileprocessor.GetFilesToProcess(&opts)
	if err != nil {
		logger.Fatal(err.Error())
	}

	p := pipeline.New(logger, opts, os.Stdout)
	failed, err := p.Execute(ctx, files)
	if err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			os.Exit(1)
		}
		logger.Fatal("Processing failed", log.Err(err))
	}

	if failed > 0 {
		logger.Error("Not all tunes could be processed",
			log.Int("failed", failed),
			log.Int("total", len(files)))
		os.Exit(1)
	}
}
