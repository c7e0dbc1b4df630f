// Package pipeline orchestrates the analysis workflow stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/nsfscope/internal/config"
	"github.com/retroenv/nsfscope/internal/detector"
	"github.com/retroenv/nsfscope/internal/fileprocessor"
	"github.com/retroenv/nsfscope/internal/loader"
	"github.com/retroenv/nsfscope/internal/options"
	"github.com/retroenv/nsfscope/internal/tune"
	"github.com/retroenv/nsfscope/internal/verification"
	"github.com/retroenv/nsfscope/internal/writer"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sync/errgroup"
)

const stdoutName = "-"

// Pipeline orchestrates the analysis of multiple tune files.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
	opts     options.Program
	output   io.Writer

	tuneOpts   tune.Options
	writerOpts writer.Options
}

// Result is the outcome of processing a single file.
type Result struct {
	Path   string
	Record *tune.Record
	Err    error
}

// New creates a new analysis pipeline that writes its reports to output.
func New(logger *log.Logger, opts options.Program, output io.Writer) *Pipeline {
	return &Pipeline{
		logger:     logger,
		detector:   detector.New(logger),
		loader:     loader.New(),
		opts:       opts,
		output:     output,
		tuneOpts:   config.TuneOptions(opts),
		writerOpts: config.WriterOptions(opts),
	}
}

// Execute analyzes all files and reports the results in the order of the files.
// Failures of single files are logged and skipped, the number of failed files is
// returned. An error is only returned for a canceled context or failing report output.
func (p *Pipeline) Execute(ctx context.Context, files []string) (int, error) {
	results, err := p.Analyze(ctx, files)
	if err != nil {
		return 0, err
	}

	failed := 0
	records := make([]*tune.Record, 0, len(results))
	for _, res := range results {
		if res.Err == nil {
			res.Err = p.report(res.Record)
		}
		if res.Err != nil {
			var outputErr *outputError
			if errors.As(res.Err, &outputErr) {
				return failed, outputErr.err
			}
			p.logger.Error("Processing tune failed", log.String("file", res.Path), log.Err(res.Err))
			failed++
			continue
		}
		records = append(records, res.Record)
	}

	if p.opts.Summary != "" {
		if err := p.writeSummary(records); err != nil {
			return failed, err
		}
	}
	return failed, nil
}

// Analyze loads and analyzes all files in parallel, limited by the configured number of jobs.
// The results are returned in the order of the files.
func (p *Pipeline) Analyze(ctx context.Context, files []string) ([]Result, error) {
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.opts.Jobs, 1))

	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.analyzeFile(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analyzing files: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analyzing files: %w", err)
	}
	return results, nil
}

func (p *Pipeline) analyzeFile(path string) Result {
	res := Result{Path: path}

	file, err := p.loader.Load(path)
	if err != nil {
		res.Err = fmt.Errorf("loading tune: %w", err)
		return res
	}

	if format := p.detector.Detect(path, file.Data); format == detector.NSFE {
		res.Err = fmt.Errorf("%w: %s", detector.ErrUnsupportedFormat, format)
		return res
	}

	res.Record, res.Err = tune.Analyze(file.Name, file.Data, p.tuneOpts)
	return res
}

// outputError marks a failure of writing to the report output, which aborts all processing.
type outputError struct {
	err error
}

func (e *outputError) Error() string {
	return e.err.Error()
}

// report logs information about the record, writes its log files and prints its reports.
func (p *Pipeline) report(rec *tune.Record) error {
	p.printInfo(rec)

	if p.opts.Verify {
		if err := verification.VerifyRecord(p.logger, rec); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		p.logger.Info("Verification successful", log.String("name", rec.Name))
	}

	if p.opts.Log != "" {
		if err := fileprocessor.WriteLogFiles(p.opts.Log, rec, p.writerOpts, p.opts.Force); err != nil {
			return fmt.Errorf("writing log files: %w", err)
		}
		p.logger.Debug("Wrote log files",
			log.String("directory", fileprocessor.LogDirectory(p.opts.Log, rec.Name)))
	}

	if p.opts.Quiet && !p.opts.Disasm {
		return nil
	}

	w := writer.New(p.output, p.writerOpts)
	if !p.opts.Quiet {
		if err := w.WriteHeader(rec.Header); err != nil {
			return &outputError{fmt.Errorf("writing header report: %w", err)}
		}
	}
	if p.opts.Disasm {
		if err := w.WriteListing(rec); err != nil {
			return &outputError{fmt.Errorf("writing listing: %w", err)}
		}
	}
	if _, err := fmt.Fprintln(p.output); err != nil {
		return &outputError{fmt.Errorf("writing line: %w", err)}
	}
	return nil
}

func (p *Pipeline) writeSummary(records []*tune.Record) error {
	if p.opts.Summary == stdoutName {
		if err := writer.WriteSummary(p.output, records); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
		return nil
	}

	file, err := os.Create(p.opts.Summary)
	if err != nil {
		return fmt.Errorf("creating summary file %s: %w", p.opts.Summary, err)
	}
	if err := writer.WriteSummary(file, records); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing summary: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing summary file %s: %w", p.opts.Summary, err)
	}

	p.logger.Info("Wrote summary", log.String("file", p.opts.Summary), log.Int("tunes", len(records)))
	return nil
}

// printInfo logs information about the analyzed tune and warns about unusual properties.
func (p *Pipeline) printInfo(rec *tune.Record) {
	h := rec.Header

	p.logger.Info("Analyzed tune",
		log.String("name", rec.Name),
		log.String("title", h.Title),
		log.Uint8("songs", h.TotalSongs),
		log.Hex("load", h.LoadAddress),
		log.Int("code_size", rec.CodeSize),
		log.Int("instructions", len(rec.Instructions)),
	)
	p.logger.Debug("Tune details",
		log.String("name", rec.Name),
		log.Hex("init", h.InitAddress),
		log.Hex("play", h.PlayAddress),
		log.String("tv_system", h.TVSystem()),
		log.Stringer("chips", h.Chips),
	)

	if !h.Valid {
		p.logger.Warn("Invalid magic number",
			log.String("name", rec.Name),
			log.String("magic", fmt.Sprintf("% X", h.Magic[:])))
	}
	if rec.ExceedsAddressSpace() {
		if rec.ClippedBytes > 0 {
			p.logger.Warn("Code exceeds the address space, excess bytes were not disassembled",
				log.String("name", rec.Name),
				log.Int("clipped_bytes", rec.ClippedBytes))
		} else {
			p.logger.Warn("Code exceeds the address space, addresses wrap around to $0000",
				log.String("name", rec.Name),
				log.Hex("last_address", rec.LastCodeAddress))
		}
	}
	if rec.PartialInstructions() > 0 {
		p.logger.Warn("Code ends with a truncated instruction",
			log.String("name", rec.Name),
			log.Uint16("address", rec.Instructions[len(rec.Instructions)-1].Address))
	}
}
