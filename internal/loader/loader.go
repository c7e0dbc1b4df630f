// Package loader handles tune file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/nsfscope/internal/tune"
)

// MaxFileSize is the largest tune file that is loaded, it covers a header
// followed by 256 banks of 4 KB.
const MaxFileSize = 0x80 + 256*0x1000

// ErrFileTooLarge is returned for files that exceed MaxFileSize.
var ErrFileTooLarge = errors.New("file too large")

// File is a tune file loaded into memory.
type File struct {
	Path string
	Name string // base name without extension
	Data []byte
}

// Loader handles loading tune files from disk.
type Loader struct{}

// New creates a new tune file loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the complete tune file at the given path.
func (l *Loader) Load(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("getting file info %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("loading %s: is a directory", path)
	}

	return l.LoadFromReader(path, file)
}

// LoadFromReader reads a tune from the reader, the path is only used for naming.
func (l *Loader) LoadFromReader(path string, reader io.Reader) (*File, error) {
	data, err := io.ReadAll(io.LimitReader(reader, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrFileTooLarge, path, MaxFileSize)
	}

	return &File{
		Path: path,
		Name: tune.Name(path),
		Data: data,
	}, nil
}
