// Package nsf decodes the 128 byte header of NES Sound Format files.
package nsf

import (
	"errors"
	"fmt"
	"strings"
)

// HeaderSize is the size of the NSF header in bytes.
const HeaderSize = 0x80

// Magic is the expected magic number at the start of every NSF file.
var Magic = [5]byte{'N', 'E', 'S', 'M', 0x1a}

var (
	// ErrTruncatedInput is returned when fewer than HeaderSize bytes are passed to Decode.
	ErrTruncatedInput = errors.New("truncated header input")
	// ErrInvalidMagic is returned by Validate when the magic number does not match.
	ErrInvalidMagic = errors.New("invalid magic number")
	// ErrTextField is returned by Encode for text that does not fit a header text field.
	ErrTextField = errors.New("invalid text field")
)

const (
	tvFlagPAL  = 1 << 0
	tvFlagDual = 1 << 1
)

// TVStandard is the television standard a tune is timed for.
type TVStandard uint8

const (
	NTSC TVStandard = iota
	PAL
)

func (s TVStandard) String() string {
	if s == PAL {
		return "PAL"
	}
	return "NTSC"
}

// Header contains the decoded fields of an NSF header.
// Reserved regions of the header are not represented.
type Header struct {
	Magic        [5]byte
	Version      uint8
	TotalSongs   uint8
	StartingSong uint8 // 1 based

	LoadAddress uint16
	InitAddress uint16
	PlayAddress uint16

	Title     string
	Artist    string
	Copyright string

	NTSCSpeed      uint16 // play routine call period in 1/1000000 seconds
	BankswitchInit [8]byte
	PALSpeed       uint16

	PAL      bool // tv flags bit 0
	DualMode bool // tv flags bit 1, tune supports NTSC and PAL

	Chips ExpansionChips

	Valid bool // magic number matched
}

// Validate returns ErrInvalidMagic if the header magic number did not match.
func (h *Header) Validate() error {
	if h.Valid {
		return nil
	}
	return fmt.Errorf("%w: % x", ErrInvalidMagic, h.Magic[:])
}

// TVStandard returns PAL if only the PAL flag is set, otherwise NTSC.
func (h *Header) TVStandard() TVStandard {
	if h.PAL && !h.DualMode {
		return PAL
	}
	return NTSC
}

// TVSystem returns a display name of the supported television standards.
func (h *Header) TVSystem() string {
	if h.DualMode {
		return "NTSC/PAL"
	}
	return h.TVStandard().String()
}

// UsesBankswitching returns whether the tune initializes any bank.
func (h *Header) UsesBankswitching() bool {
	for _, b := range h.BankswitchInit {
		if b != 0 {
			return true
		}
	}
	return false
}

// NTSCRate returns the NTSC play routine call rate in Hz, 0 if the speed is not set.
func (h *Header) NTSCRate() float64 {
	return speedToRate(h.NTSCSpeed)
}

// PALRate returns the PAL play routine call rate in Hz, 0 if the speed is not set.
func (h *Header) PALRate() float64 {
	return speedToRate(h.PALSpeed)
}

func speedToRate(speed uint16) float64 {
	if speed == 0 {
		return 0
	}
	return 1000000 / float64(speed)
}

func (h *Header) tvFlags() uint8 {
	var b uint8
	if h.PAL {
		b |= tvFlagPAL
	}
	if h.DualMode {
		b |= tvFlagDual
	}
	return b
}

func (h *Header) setTVFlags(b uint8) {
	h.PAL = b&tvFlagPAL != 0
	h.DualMode = b&tvFlagDual != 0
}

// ExpansionChips contains the extra sound chip flags of a tune.
type ExpansionChips struct {
	VRC6     bool
	VRC7     bool
	FDS      bool
	MMC5     bool
	Namco106 bool
	FME07    bool
}

// chipBits maps the bits of the expansion chip byte, bits 6 and 7 are reserved.
var chipBits = []struct {
	name string
	key  string
	bit  uint8
	flag func(c *ExpansionChips) *bool
}{
	{"VRC6", "vrc6", 1 << 0, func(c *ExpansionChips) *bool { return &c.VRC6 }},
	{"VRC7", "vrc7", 1 << 1, func(c *ExpansionChips) *bool { return &c.VRC7 }},
	{"FDS", "fds", 1 << 2, func(c *ExpansionChips) *bool { return &c.FDS }},
	{"MMC5", "mmc5", 1 << 3, func(c *ExpansionChips) *bool { return &c.MMC5 }},
	{"Namco 106", "namco_106", 1 << 4, func(c *ExpansionChips) *bool { return &c.Namco106 }},
	{"FME-07", "fme07", 1 << 5, func(c *ExpansionChips) *bool { return &c.FME07 }},
}

func chipsFromByte(b uint8) ExpansionChips {
	var c ExpansionChips
	for _, chip := range chipBits {
		*chip.flag(&c) = b&chip.bit != 0
	}
	return c
}

func (c ExpansionChips) bits() uint8 {
	var b uint8
	for _, chip := range chipBits {
		if *chip.flag(&c) {
			b |= chip.bit
		}
	}
	return b
}

// Names returns the names of all enabled chips.
func (c ExpansionChips) Names() []string {
	var names []string
	for _, chip := range chipBits {
		if *chip.flag(&c) {
			names = append(names, chip.name)
		}
	}
	return names
}

func (c ExpansionChips) String() string {
	names := c.Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
