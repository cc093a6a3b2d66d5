package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
)

type Formatter struct{}

func NewFormatter() Formatter {
	return Formatter{}
}

func (f Formatter) Format(report Report, format Format) (string, error) {
	switch format {
	case FormatTable:
		return formatTable(report), nil
	case FormatJSON:
		payload, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return "", err
		}
		return string(payload) + "\n", nil
	case FormatSARIF:
		return formatSARIF(report)
	default:
		return "", ErrUnknownFormat
	}
}

func formatTable(report Report) string {
	if len(report.Files) == 0 {
		return formatEmpty(report)
	}

	var buffer bytes.Buffer
	appendSummary(&buffer, report.Summary)

	writer := tabwriter.NewWriter(&buffer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(writer, "File\tStatus\tRemoved")
	for _, file := range report.Files {
		_, _ = fmt.Fprintf(writer, "%s\t%s\t%s\n", file.Path, fileStatus(file), formatRemoved(file.RemovedDirectives))
	}
	_ = writer.Flush()

	appendWarnings(&buffer, report)
	return buffer.String()
}

func appendSummary(buffer *bytes.Buffer, summary Summary) {
	_, _ = fmt.Fprintf(
		buffer,
		"Summary: %d file(s), %d changed, %d directive(s) removed\n\n",
		summary.FileCount,
		summary.ChangedCount,
		summary.RemovedCount,
	)
}

func fileStatus(file FileResult) string {
	switch {
	case file.Written:
		return "formatted"
	case file.Changed:
		return "needs formatting"
	default:
		return "ok"
	}
}

func formatRemoved(removed []RemovedDirective) string {
	if len(removed) == 0 {
		return "-"
	}
	items := make([]string, 0, len(removed))
	for _, r := range removed {
		items = append(items, fmt.Sprintf("%s (L%d)", r.Namespace, r.Line))
	}
	return strings.Join(items, ", ")
}

func formatEmpty(report Report) string {
	var buffer bytes.Buffer
	buffer.WriteString("No files to report.\n")
	appendWarnings(&buffer, report)
	return buffer.String()
}

func appendWarnings(buffer *bytes.Buffer, report Report) {
	warnings := make([]string, 0, len(report.Warnings))
	warnings = append(warnings, report.Warnings...)
	for _, file := range report.Files {
		for _, w := range file.Warnings {
			warnings = append(warnings, fmt.Sprintf("%s: %s", file.Path, w))
		}
	}
	if len(warnings) == 0 {
		return
	}
	buffer.WriteString("\nWarnings:\n")
	for _, warning := range warnings {
		buffer.WriteString("- ")
		buffer.WriteString(warning)
		buffer.WriteString("\n")
	}
}
