package transform

import (
	"strings"

	"github.com/usingfmt/usingfmt/internal/directive"
)

// Separate pulls preprocessor-delimited spans out of the statement
// stream so sorting never crosses them. A span opens at #if or #region
// and closes at the first #endif or #endregion; nesting is not tracked,
// the first terminator always closes the span. #else and #elif stay
// inside. A terminator with no open span becomes a one-line span of its
// own. Every extracted span leaves a blank marker in the remaining
// stream: a comment run ahead of the span stays orphaned instead of
// attaching to the directive after it. An unterminated span runs to the
// end of the stream.
func Separate(statements []directive.Statement) (remaining []directive.Statement, blocks [][]directive.Statement) {
	var current []directive.Statement
	open := false

	for _, st := range statements {
		if !open {
			switch {
			case isConditionalOpen(st):
				open = true
				current = append(current, st)
				remaining = append(remaining, blankStatement())
			case isConditionalClose(st):
				blocks = append(blocks, []directive.Statement{st})
				remaining = append(remaining, blankStatement())
			default:
				remaining = append(remaining, st)
			}
			continue
		}

		current = append(current, st)
		if isConditionalClose(st) {
			blocks = append(blocks, current)
			current = nil
			open = false
		}
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return remaining, blocks
}

// Recombine appends the preserved spans after the sorted directives,
// each preceded by one blank line, then trims blanks left dangling at
// the very end.
func Recombine(sorted []directive.Statement, blocks [][]directive.Statement) []directive.Statement {
	out := append([]directive.Statement{}, sorted...)
	for _, block := range blocks {
		if len(out) > 0 {
			out = append(out, blankStatement())
		}
		out = append(out, block...)
	}

	end := len(out)
	for end > 0 && out[end-1].IsBlank {
		end--
	}
	return out[:end]
}

func isConditionalOpen(st directive.Statement) bool {
	keyword := conditionalKeyword(st)
	return keyword == "if" || keyword == "region"
}

func isConditionalClose(st directive.Statement) bool {
	keyword := conditionalKeyword(st)
	return keyword == "endif" || keyword == "endregion"
}

func isConditionalMiddle(st directive.Statement) bool {
	keyword := conditionalKeyword(st)
	return keyword == "else" || keyword == "elif"
}

// conditionalKeyword extracts the preprocessor keyword of a conditional
// line, tolerating whitespace between the hash and the keyword.
func conditionalKeyword(st directive.Statement) string {
	if !st.IsConditional {
		return ""
	}
	rest := strings.TrimSpace(st.Raw)
	rest = strings.TrimPrefix(rest, "#")
	rest = strings.TrimLeft(rest, " \t")
	end := 0
	for end < len(rest) && rest[end] >= 'a' && rest[end] <= 'z' {
		end++
	}
	return rest[:end]
}

func blankStatement() directive.Statement {
	return directive.Statement{IsBlank: true}
}
