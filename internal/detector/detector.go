// Package detector handles tune file format detection.
package detector

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"

	"github.com/retroenv/nsfscope/internal/nsf"
	"github.com/retroenv/retrogolib/log"
)

// Format of a tune file.
type Format int

// Supported and recognized formats.
const (
	Unknown Format = iota
	NSF
	NSFE
)

// ErrUnsupportedFormat is returned for recognized tune formats that can not be analyzed.
var ErrUnsupportedFormat = errors.New("unsupported tune format")

var nsfeMagic = []byte("NSFE")

var formatNames = map[Format]string{
	Unknown: "unknown",
	NSF:     "NSF",
	NSFE:    "NSFe",
}

func (f Format) String() string {
	return formatNames[f]
}

// Detector handles tune format detection from file contents and extensions.
type Detector struct {
	logger *log.Logger
}

// New creates a new format detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the format of the tune data. The magic number takes
// precedence, the file extension is only used for data without a known magic number.
func (d *Detector) Detect(path string, data []byte) Format {
	format := detectFromData(data)
	if format == Unknown {
		format = detectFromFile(path)
		d.logger.Debug("Detected format from file extension",
			log.Stringer("format", format),
			log.String("file", path))
	}
	return format
}

// detectFromData determines the format based on the magic number.
func detectFromData(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, nsf.Magic[:]):
		return NSF
	case bytes.HasPrefix(data, nsfeMagic):
		return NSFE
	default:
		return Unknown
	}
}

// detectFromFile determines the format based on the file extension.
func detectFromFile(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".nsf":
		return NSF
	case ".nsfe":
		return NSFE
	default:
		return Unknown
	}
}
