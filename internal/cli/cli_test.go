package cli

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	opts, err := ParseFlags([]string{"-l", "logs", "-f", "-d", "--summary=-", "-j", "8", "a.nsf", "b.nsf"})
	assert.NoError(t, err)

	assert.Equal(t, 2, len(opts.Tunes))
	assert.Equal(t, "a.nsf", opts.Tunes[0])
	assert.Equal(t, "b.nsf", opts.Tunes[1])
	assert.Equal(t, "logs", opts.Log)
	assert.Equal(t, "-", opts.Summary)
	assert.Equal(t, 8, opts.Jobs)
	assert.True(t, opts.Force)
	assert.True(t, opts.Disasm)
	assert.False(t, opts.Strict)
}

func TestParseFlagsDefaults(t *testing.T) {
	opts, err := ParseFlags([]string{"tune.nsf"})
	assert.NoError(t, err)

	assert.Equal(t, 4, opts.Jobs)
	assert.Equal(t, "", opts.Log)
	assert.Equal(t, "", opts.Summary)
	assert.False(t, opts.Force)
	assert.False(t, opts.NoClip)
	assert.False(t, opts.NoHexComments)
	assert.False(t, opts.NoOffsets)
	assert.False(t, opts.Debug)
	assert.False(t, opts.Quiet)
}

func TestParseFlagsOutputFlags(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		noHexComments bool
		noOffsets     bool
		noClip        bool
		strict        bool
	}{
		{
			name: "default flags",
			args: []string{"test.nsf"},
		},
		{
			name:          "nohexcomments flag",
			args:          []string{"--nohexcomments", "test.nsf"},
			noHexComments: true,
		},
		{
			name:      "nooffsets flag",
			args:      []string{"--nooffsets", "test.nsf"},
			noOffsets: true,
		},
		{
			name:   "analysis flags",
			args:   []string{"--no-clip", "--strict", "test.nsf"},
			noClip: true,
			strict: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := ParseFlags(tt.args)
			assert.NoError(t, err)
			assert.Equal(t, tt.noHexComments, opts.NoHexComments)
			assert.Equal(t, tt.noOffsets, opts.NoOffsets)
			assert.Equal(t, tt.noClip, opts.NoClip)
			assert.Equal(t, tt.strict, opts.Strict)
		})
	}
}

func TestParseFlagsBatchWithoutTunes(t *testing.T) {
	opts, err := ParseFlags([]string{"--batch", "*.nsf"})
	assert.NoError(t, err)
	assert.Equal(t, "*.nsf", opts.Batch)
	assert.Equal(t, 0, len(opts.Tunes))
}

func TestParseFlagsVersion(t *testing.T) {
	opts, err := ParseFlags([]string{"--version"})
	assert.NoError(t, err)
	assert.True(t, opts.Version)
}

func TestParseFlagsUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no tunes", args: nil},
		{name: "unknown flag", args: []string{"--unknown", "a.nsf"}},
		{name: "zero jobs", args: []string{"-j", "0", "a.nsf"}},
		{name: "invalid jobs", args: []string{"-j", "many", "a.nsf"}},
		{name: "same output path", args: []string{"-l", "out", "--summary", "out", "a.nsf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlags(tt.args)
			assert.Error(t, err)

			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
			assert.NotEmpty(t, usageErr.Error())
		})
	}
}
