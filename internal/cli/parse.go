package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/usingfmt/usingfmt/internal/app"
	"github.com/usingfmt/usingfmt/internal/options"
	"github.com/usingfmt/usingfmt/internal/report"
)

var ErrHelpRequested = errors.New("help requested")

func ParseArgs(args []string) (app.Request, error) {
	req := app.DefaultRequest()
	if len(args) == 0 {
		return req, ErrHelpRequested
	}

	if isHelpArg(args[0]) {
		return req, ErrHelpRequested
	}

	switch args[0] {
	case "format":
		return parseFormat(args[1:], req)
	case "check":
		return parseCheck(args[1:], req)
	default:
		return req, fmt.Errorf("unknown command: %s", args[0])
	}
}

func parseFormat(args []string, req app.Request) (app.Request, error) {
	args = normalizeArgs(args)

	fs := flag.NewFlagSet("format", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	write := fs.Bool("write", false, "write the result back to the file")
	shared := bindSharedFlags(fs, req)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return req, ErrHelpRequested
		}
		return req, err
	}

	if fs.NArg() == 0 {
		return req, fmt.Errorf("missing file argument")
	}
	if fs.NArg() > 1 {
		return req, fmt.Errorf("format takes exactly one file")
	}

	req.Mode = app.ModeFormat
	req.FilePaths = fs.Args()
	req.Write = *write
	return applySharedFlags(req, fs, shared)
}

func parseCheck(args []string, req app.Request) (app.Request, error) {
	args = normalizeArgs(args)

	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	formatFlag := fs.String("format", string(req.Format), "output format")
	shared := bindSharedFlags(fs, req)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return req, ErrHelpRequested
		}
		return req, err
	}

	if fs.NArg() == 0 {
		return req, fmt.Errorf("missing file arguments")
	}

	format, err := report.ParseFormat(*formatFlag)
	if err != nil {
		return req, err
	}

	req.Mode = app.ModeCheck
	req.FilePaths = fs.Args()
	req.Format = format
	return applySharedFlags(req, fs, shared)
}

// sharedFlags are the option and input flags both commands accept.
type sharedFlags struct {
	configPath      *string
	diagnosticsPath *string
	sortOrder       *string
	noSplit         *bool
	keepUnused      *bool
	processCond     *bool
	staticPlacement *string
}

func bindSharedFlags(fs *flag.FlagSet, req app.Request) sharedFlags {
	return sharedFlags{
		configPath:      fs.String("config", req.ConfigPath, "config file path"),
		diagnosticsPath: fs.String("diagnostics", req.DiagnosticsPath, "analyzer diagnostics snapshot path"),
		sortOrder:       fs.String("sort-order", options.DefaultSortOrder, "space-separated namespace prefixes, highest priority first"),
		noSplit:         fs.Bool("no-split", false, "do not insert blank lines between namespace groups"),
		keepUnused:      fs.Bool("keep-unused", false, "skip unused-directive removal"),
		processCond:     fs.Bool("process-conditionals", false, "allow removal inside preprocessor blocks"),
		staticPlacement: fs.String("static-placement", string(options.StaticBottom), "bottom, intermixed or groupedWithNamespace"),
	}
}

// applySharedFlags converts the flags the user actually passed into
// option overrides, leaving unset options to the config file layer.
func applySharedFlags(req app.Request, fs *flag.FlagSet, shared sharedFlags) (app.Request, error) {
	req.ConfigPath = strings.TrimSpace(*shared.configPath)
	req.DiagnosticsPath = strings.TrimSpace(*shared.diagnosticsPath)

	visited := visitedFlags(fs)
	if visited["sort-order"] {
		req.Overrides.SortOrder = shared.sortOrder
	}
	if visited["no-split"] {
		split := !*shared.noSplit
		req.Overrides.SplitGroups = &split
	}
	if visited["keep-unused"] {
		req.Overrides.DisableUnusedRemoval = shared.keepUnused
	}
	if visited["process-conditionals"] {
		req.Overrides.ProcessConditionalBlocks = shared.processCond
	}
	if visited["static-placement"] {
		req.Overrides.StaticPlacement = shared.staticPlacement
	}
	if err := req.Overrides.Validate(); err != nil {
		return req, err
	}
	return req, nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func normalizeArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}

	flags := make([]string, 0, len(args))
	positionals := make([]string, 0, 1)

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if strings.HasPrefix(arg, "-") {
			flags = append(flags, arg)
			if flagNeedsValue(arg) && i+1 < len(args) {
				flags = append(flags, args[i+1])
				i++
			}
			continue
		}
		positionals = append(positionals, arg)
	}

	// the explicit terminator keeps dash-leading positionals out of
	// flag parsing
	flags = append(flags, "--")
	return append(flags, positionals...)
}

func flagNeedsValue(arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}
	switch arg {
	case "--config", "--diagnostics", "--sort-order", "--static-placement", "--format":
		return true
	default:
		return false
	}
}

func visitedFlags(fs *flag.FlagSet) map[string]bool {
	visited := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		visited[f.Name] = true
	})
	return visited
}
