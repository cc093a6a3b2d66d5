// Package report renders run results as a human table, machine JSON,
// or SARIF for code-scanning upload.
package report

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatSARIF Format = "sarif"
)

const SchemaVersion = "0.1.0"

var ErrUnknownFormat = errors.New("unknown format")

func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatSARIF):
		return FormatSARIF, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, value)
	}
}

type Report struct {
	SchemaVersion string       `json:"schemaVersion"`
	GeneratedAt   time.Time    `json:"generatedAt"`
	Files         []FileResult `json:"files"`
	Summary       Summary      `json:"summary"`
	Warnings      []string     `json:"warnings,omitempty"`
}

type FileResult struct {
	Path              string             `json:"path"`
	Changed           bool               `json:"changed"`
	Written           bool               `json:"written"`
	RemovedDirectives []RemovedDirective `json:"removedDirectives,omitempty"`
	Warnings          []string           `json:"warnings,omitempty"`
}

// RemovedDirective names one deleted using directive, its original
// 1-based line, and the diagnostic code that flagged it.
type RemovedDirective struct {
	Namespace string `json:"namespace"`
	Line      int    `json:"line"`
	Code      string `json:"code"`
}

type Summary struct {
	FileCount    int `json:"fileCount"`
	ChangedCount int `json:"changedCount"`
	RemovedCount int `json:"removedCount"`
}

// New assembles a report from per-file results, computing the summary.
func New(generatedAt time.Time, files []FileResult, warnings []string) Report {
	summary := Summary{FileCount: len(files)}
	for _, f := range files {
		if f.Changed {
			summary.ChangedCount++
		}
		summary.RemovedCount += len(f.RemovedDirectives)
	}
	return Report{
		SchemaVersion: SchemaVersion,
		GeneratedAt:   generatedAt,
		Files:         files,
		Summary:       summary,
		Warnings:      warnings,
	}
}
