package transform

import "github.com/usingfmt/usingfmt/internal/directive"

// NormalizeWhitespace re-establishes the blank lines that blank
// filtering removed: one blank between a leading comment run and the
// first directive, and blanks isolating preprocessor markers from
// adjacent content. The pass only ever adds blanks, so it is idempotent.
func NormalizeWhitespace(statements []directive.Statement) []directive.Statement {
	statements = separateLeadingComments(statements)

	out := make([]directive.Statement, 0, len(statements)+4)
	for i, st := range statements {
		switch {
		case isConditionalOpen(st):
			if n := len(out); n > 0 && !out[n-1].IsBlank && !out[n-1].IsComment {
				out = append(out, blankStatement())
			}
			out = append(out, st)
			if i+1 < len(statements) && statements[i+1].IsDirective() {
				out = append(out, blankStatement())
			}
		case isConditionalClose(st) || isConditionalMiddle(st):
			if n := len(out); n > 0 && !out[n-1].IsBlank {
				out = append(out, blankStatement())
			}
			out = append(out, st)
			if i+1 < len(statements) && !statements[i+1].IsBlank {
				out = append(out, blankStatement())
			}
		default:
			out = append(out, st)
		}
	}
	return out
}

// separateLeadingComments inserts one blank line after a comment run
// that immediately precedes the first directive, keeping file headers
// visually apart from the directives they do not belong to.
func separateLeadingComments(statements []directive.Statement) []directive.Statement {
	first := -1
	for i, st := range statements {
		if st.IsDirective() {
			first = i
			break
		}
	}
	if first <= 0 || !statements[first-1].IsComment {
		return statements
	}

	out := make([]directive.Statement, 0, len(statements)+1)
	out = append(out, statements[:first]...)
	out = append(out, blankStatement())
	return append(out, statements[first:]...)
}

// NormalizeLeading trims blank lines trailing the captured leading
// content; the renderer owns the separator blank.
func NormalizeLeading(statements []directive.Statement) []directive.Statement {
	end := len(statements)
	for end > 0 && statements[end-1].IsBlank {
		end--
	}
	return statements[:end]
}
