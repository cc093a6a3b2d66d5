package app

import (
	"github.com/usingfmt/usingfmt/internal/options"
	"github.com/usingfmt/usingfmt/internal/report"
)

type Mode string

const (
	// ModeFormat rewrites one file (or prints the formatted text).
	ModeFormat Mode = "format"
	// ModeCheck verifies files without writing and fails when any needs
	// formatting.
	ModeCheck Mode = "check"
)

type Request struct {
	Mode      Mode
	FilePaths []string

	// Write persists formatted text in format mode; without it the
	// formatted source goes to stdout.
	Write bool

	Format          report.Format
	DiagnosticsPath string
	ConfigPath      string

	// Overrides holds only the option flags the caller actually set;
	// they layer over the config file, which layers over the defaults.
	Overrides options.Overrides
}

func DefaultRequest() Request {
	return Request{
		Mode:   ModeFormat,
		Format: report.FormatTable,
	}
}
