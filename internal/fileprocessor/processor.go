// Package fileprocessor handles file selection and output operations
package fileprocessor

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/nsfscope/internal/options"
	"github.com/retroenv/nsfscope/internal/tune"
	"github.com/retroenv/nsfscope/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// Names of the files written to the log directory of a tune.
const (
	HeaderBinaryFile = "head.bin"
	CodeBinaryFile   = "code.bin"
	HeaderTextFile   = "head.txt"
	ListingFile      = "code.asm"
)

var (
	// ErrOutputExists is returned when a log file exists already and overwriting is not enabled.
	ErrOutputExists = errors.New("output file exists")
	// ErrNotDirectory is returned when a log directory path exists but is not a directory.
	ErrNotDirectory = errors.New("not a directory")
)

// GetFilesToProcess returns list of files to process based on options.
// Files passed as arguments come first, followed by the batch matches.
// Every file is returned only once.
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	files := make([]string, 0, len(opts.Tunes))
	seen := make(map[string]struct{}, len(opts.Tunes))
	add := func(file string) {
		if _, ok := seen[file]; ok {
			return
		}
		seen[file] = struct{}{}
		files = append(files, file)
	}

	for _, file := range opts.Tunes {
		add(file)
	}

	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		if len(matches) == 0 && len(files) == 0 {
			return nil, fmt.Errorf("no files found matching batch pattern '%s'", opts.Batch)
		}
		for _, file := range matches {
			add(file)
		}
	}

	return files, nil
}

// LogDirectory returns the log directory of a tune.
func LogDirectory(dir, name string) string {
	return filepath.Join(dir, name)
}

// WriteLogFiles writes the raw header and code, the header report and the listing
// of the tune into its log directory below dir. Without force no file is written
// if any of them exists already.
func WriteLogFiles(dir string, rec *tune.Record, writerOpts writer.Options, force bool) error {
	target := LogDirectory(dir, rec.Name)
	for _, path := range []string{dir, target} {
		if err := createDirectory(path); err != nil {
			return err
		}
	}

	headerText := &bytes.Buffer{}
	listing := &bytes.Buffer{}
	w := writer.New(headerText, writerOpts)
	if err := w.WriteHeader(rec.Header); err != nil {
		return fmt.Errorf("writing header report: %w", err)
	}
	w = writer.New(listing, writerOpts)
	if err := w.WriteListing(rec); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}

	files := []struct {
		name string
		data []byte
	}{
		{HeaderBinaryFile, rec.HeaderData},
		{CodeBinaryFile, rec.Code},
		{HeaderTextFile, headerText.Bytes()},
		{ListingFile, listing.Bytes()},
	}

	if !force {
		for _, file := range files {
			path := filepath.Join(target, file.name)
			_, err := os.Lstat(path)
			if err == nil {
				return fmt.Errorf("%w: %s", ErrOutputExists, path)
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("checking output file %s: %w", path, err)
			}
		}
	}

	for _, file := range files {
		path := filepath.Join(target, file.name)
		if err := os.WriteFile(path, file.data, 0o644); err != nil {
			return fmt.Errorf("writing output file %s: %w", path, err)
		}
	}
	return nil
}

// createDirectory creates the directory including all parents if it does not exist yet.
func createDirectory(path string) error {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		if !info.IsDir() {
			return fmt.Errorf("%w: %s", ErrNotDirectory, path)
		}
		return nil

	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", path, err)
		}
		return nil

	default:
		return fmt.Errorf("checking directory %s: %w", path, err)
	}
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("nsfscope", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
