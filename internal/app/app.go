// Package app executes format and check runs: it resolves options,
// loads documents, gathers unused-using findings, drives the transform
// pipeline and renders the outcome.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/usingfmt/usingfmt/internal/diagnostics"
	"github.com/usingfmt/usingfmt/internal/document"
	"github.com/usingfmt/usingfmt/internal/options"
	"github.com/usingfmt/usingfmt/internal/project"
	"github.com/usingfmt/usingfmt/internal/report"
	"github.com/usingfmt/usingfmt/internal/transform"
)

var (
	ErrUnknownMode     = errors.New("unknown mode")
	ErrNoFiles         = errors.New("no input files")
	ErrSingleFile      = errors.New("format mode takes exactly one file")
	ErrChangesRequired = errors.New("files need formatting")
)

type App struct {
	Formatter report.Formatter
	Analyzer  *diagnostics.Analyzer

	now func() time.Time
}

func New() *App {
	return &App{
		Formatter: report.NewFormatter(),
		Analyzer:  diagnostics.NewAnalyzer(),
		now:       time.Now,
	}
}

func (a *App) Execute(ctx context.Context, req Request) (string, error) {
	if len(req.FilePaths) == 0 {
		return "", ErrNoFiles
	}

	opts, err := a.resolveOptions(req)
	if err != nil {
		return "", err
	}

	switch req.Mode {
	case ModeFormat:
		return a.executeFormat(ctx, req, opts)
	case ModeCheck:
		return a.executeCheck(ctx, req, opts)
	default:
		return "", ErrUnknownMode
	}
}

// resolveOptions layers defaults, then the discovered or explicit
// config file, then the caller's flag overrides. Discovery starts from
// the first input file's directory.
func (a *App) resolveOptions(req Request) (options.Values, error) {
	fileOverrides, _, err := options.Load(filepath.Dir(req.FilePaths[0]), req.ConfigPath)
	if err != nil {
		return options.Values{}, err
	}
	if err := req.Overrides.Validate(); err != nil {
		return options.Values{}, err
	}

	opts := req.Overrides.Apply(fileOverrides.Apply(options.Defaults()))
	if err := opts.Validate(); err != nil {
		return options.Values{}, err
	}
	return opts, nil
}

func (a *App) executeFormat(ctx context.Context, req Request, opts options.Values) (string, error) {
	if len(req.FilePaths) != 1 {
		return "", ErrSingleFile
	}
	path := req.FilePaths[0]

	doc, err := document.Read(path)
	if err != nil {
		return "", err
	}

	findings, _, err := a.collectFindings(ctx, req, opts, doc)
	if err != nil {
		return "", err
	}

	text, result, err := transform.NewPipeline(opts).Run(doc.Text, doc.LineEnding, findings)
	if err != nil {
		return "", err
	}

	if !req.Write {
		return text, nil
	}

	written, err := doc.WriteIfChanged(text)
	if err != nil {
		return "", err
	}
	file := fileResult(path, result, written, nil)
	return a.Formatter.Format(report.New(a.now(), []report.FileResult{file}, nil), req.Format)
}

func (a *App) executeCheck(ctx context.Context, req Request, opts options.Values) (string, error) {
	files := make([]report.FileResult, 0, len(req.FilePaths))
	anyChanged := false

	for _, path := range req.FilePaths {
		doc, err := document.Read(path)
		if err != nil {
			return "", err
		}

		findings, warning, err := a.collectCheckFindings(ctx, req, opts, doc)
		if err != nil {
			return "", err
		}

		_, result, err := transform.NewPipeline(opts).Run(doc.Text, doc.LineEnding, findings)
		if err != nil {
			return "", err
		}

		var warnings []string
		if warning != "" {
			warnings = append(warnings, warning)
		}
		files = append(files, fileResult(path, result, false, warnings))
		anyChanged = anyChanged || result.Changed
	}

	formatted, err := a.Formatter.Format(report.New(a.now(), files, nil), req.Format)
	if err != nil {
		return "", err
	}
	if anyChanged {
		return formatted, ErrChangesRequired
	}
	return formatted, nil
}

// collectFindings gathers unused-using findings for format mode. An
// explicit snapshot bypasses the project gate; the built-in analyzer
// refuses to run against an unrestored or unlocatable project.
func (a *App) collectFindings(ctx context.Context, req Request, opts options.Values, doc *document.Document) ([]diagnostics.Unused, string, error) {
	if opts.DisableUnusedRemoval {
		return nil, "", nil
	}
	if req.DiagnosticsPath != "" {
		findings, err := diagnostics.LoadSnapshot(req.DiagnosticsPath)
		return findings, "", err
	}
	if _, err := project.Ready(doc.Path); err != nil {
		return nil, "", err
	}
	findings, err := a.Analyzer.Analyze(ctx, []byte(doc.Text))
	return findings, "", err
}

// collectCheckFindings is the check-mode variant: an unready project
// downgrades to a warning and removal is skipped for that file.
func (a *App) collectCheckFindings(ctx context.Context, req Request, opts options.Values, doc *document.Document) ([]diagnostics.Unused, string, error) {
	findings, warning, err := a.collectFindings(ctx, req, opts, doc)
	if err == nil {
		return findings, warning, nil
	}
	if errors.Is(err, project.ErrNoProject) || errors.Is(err, project.ErrNotRestored) {
		return nil, fmt.Sprintf("unused removal skipped: %v", err), nil
	}
	return nil, "", err
}

func fileResult(path string, result transform.Result, written bool, warnings []string) report.FileResult {
	removed := make([]report.RemovedDirective, 0, len(result.Removed))
	for _, r := range result.Removed {
		removed = append(removed, report.RemovedDirective{
			Namespace: r.Namespace,
			Line:      r.Line,
			Code:      r.Code,
		})
	}
	return report.FileResult{
		Path:              path,
		Changed:           result.Changed,
		Written:           written,
		RemovedDirectives: removed,
		Warnings:          warnings,
	}
}
