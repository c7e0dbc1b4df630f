// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Log     string `short:"l" placeholder:"DIR" help:"Write head.bin, code.bin, head.txt and code.asm of every tune to DIR/<name>/."`
	Batch   string `placeholder:"PATTERN" help:"Process all files matching the pattern (e.g. *.nsf) in addition to the given tunes."`
	Summary string `placeholder:"FILE" help:"Write a CSV summary of all tunes to FILE ('-' for stdout)."`
}

// Flags contains behavior options.
type Flags struct {
	Force   bool `short:"f" help:"Overwrite existing files in the log directory."`
	NoClip  bool `name:"no-clip" help:"Disassemble code beyond the end of the address space, wrapping to $0000."`
	Strict  bool `help:"Fail on an invalid magic number or a truncated last instruction."`
	Verify  bool `help:"Verify that the decoded header and the disassembled code recreate the tune bytes."`
	Jobs    int  `short:"j" default:"4" help:"Number of tunes to analyze in parallel."`
	Debug   bool `help:"Enable debug logging."`
	Quiet   bool `short:"q" help:"Quiet mode."`
	Version bool `help:"Print the version and exit."`
}

// OutputFlags contains output formatting options.
type OutputFlags struct {
	Disasm        bool `short:"d" help:"Print the disassembly of every tune after its header."`
	NoHexComments bool `name:"nohexcomments" help:"Omit hex opcode bytes in comments."`
	NoOffsets     bool `name:"nooffsets" help:"Omit code offsets in comments."`
}

// Program options of nsfscope.
type Program struct {
	Tunes []string `arg:"" optional:"" name:"tune" help:"NSF files to analyze."`

	Parameters  `embed:""`
	Flags       `embed:""`
	OutputFlags `embed:""`
}
