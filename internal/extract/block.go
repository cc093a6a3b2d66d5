package extract

import (
	"strings"

	"github.com/usingfmt/usingfmt/internal/directive"
)

// Block is one contiguous using-directive region. Leading holds the
// comments, conditionals and blanks captured before the first directive
// line; Statements holds the directive region itself. StartLine is the
// 0-based index of the first captured line in the original source, kept
// so diagnostics line ranges can be mapped back onto statement indices.
type Block struct {
	StartLine  int
	EndLine    int
	Leading    []directive.Statement
	Statements []directive.Statement

	// trailingSeparator is set when source content follows the region;
	// rendering then owns exactly one blank separator line. finalNewline
	// is set when a region ending the file carried a trailing newline.
	trailingSeparator bool
	finalNewline      bool
}

// DirectiveOffset is the 1-based source line of the statement at index
// idx within the block's statement sequence. Valid only until blank
// filtering reshuffles the sequence, which is why unused-removal is the
// first pipeline stage.
func (b *Block) DirectiveOffset(idx int) int {
	return b.StartLine + len(b.Leading) + idx + 1
}

// Render produces the block's current text. Leading content is trimmed
// of trailing blanks and separated from the directives by a single blank
// line. A block with content following it owns one trailing blank line;
// an emptied block renders to nothing.
func (b *Block) Render(lineEnding string) string {
	lead := trimTrailingBlanks(b.Leading)

	lines := make([]string, 0, len(lead)+len(b.Statements)+2)
	for _, s := range lead {
		lines = append(lines, s.Raw)
	}
	if len(lead) > 0 && len(b.Statements) > 0 {
		lines = append(lines, "")
	}
	for _, s := range b.Statements {
		lines = append(lines, s.Lines()...)
	}

	if len(lines) == 0 {
		return ""
	}
	if b.trailingSeparator {
		return strings.Join(lines, lineEnding) + lineEnding + lineEnding
	}
	if b.finalNewline {
		return strings.Join(lines, lineEnding) + lineEnding
	}
	return strings.Join(lines, lineEnding)
}

func trimTrailingBlanks(statements []directive.Statement) []directive.Statement {
	end := len(statements)
	for end > 0 && statements[end-1].IsBlank {
		end--
	}
	return statements[:end]
}
