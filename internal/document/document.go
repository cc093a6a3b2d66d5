// Package document loads source files as text, detects their dominant
// line ending, and writes them back only when the content changed.
package document

import (
	"strings"

	"github.com/usingfmt/usingfmt/internal/safeio"
)

const (
	LF   = "\n"
	CRLF = "\r\n"
)

// Document is one source file held in memory. Text is the verbatim file
// content; LineEnding is the ending the file already uses and every
// transform must emit.
type Document struct {
	Path       string
	Text       string
	LineEnding string
}

// Read loads the file and detects its line ending.
func Read(path string) (*Document, error) {
	data, err := safeio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := string(data)
	return &Document{
		Path:       path,
		Text:       text,
		LineEnding: DetectLineEnding(text),
	}, nil
}

// DetectLineEnding reports CRLF when the text contains any CRLF
// sequence, otherwise LF. Mixed files are treated as CRLF so existing
// endings are never stripped.
func DetectLineEnding(text string) string {
	if strings.Contains(text, CRLF) {
		return CRLF
	}
	return LF
}

// WriteIfChanged persists new text when it differs from the loaded
// content, and reports whether a write happened. The in-memory text is
// updated either way so repeated calls stay consistent.
func (d *Document) WriteIfChanged(text string) (bool, error) {
	if text == d.Text {
		return false, nil
	}
	if err := safeio.WriteFile(d.Path, []byte(text)); err != nil {
		return false, err
	}
	d.Text = text
	return true, nil
}
