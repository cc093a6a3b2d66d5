// Package extract locates using-directive regions in raw source text and
// splices processed regions back in. The scanner is a single forward pass
// over lines with an explicit block-comment state machine; it never
// backtracks and uses no regular expressions.
package extract

import (
	"strings"

	"github.com/usingfmt/usingfmt/internal/directive"
)

// Region pairs the verbatim original text of one block with its parsed
// form, so Replace can substitute the first textual occurrence without
// needing byte offsets. Regions are ordered by position in the source.
type Region struct {
	Original string
	Block    *Block
}

// Extract scans the source for using-directive regions. Each region is
// anchored on a directive-shaped line, expanded backward over contiguous
// leading content (blanks, line and block comments, preprocessor lines)
// and forward over the directive vocabulary, stopping at the first line
// that is neither blank nor part of that vocabulary. Trailing blank
// lines are swallowed into the region so blocks own their surrounding
// whitespace.
func Extract(source, lineEnding string) []Region {
	lines := strings.Split(source, lineEnding)
	inComment := blockCommentMask(lines)

	regions := make([]Region, 0, 1)
	scanFloor := 0

	for i := 0; i < len(lines); i++ {
		if inComment[i] || !directive.IsUsingLine(lines[i]) {
			continue
		}

		start := i
		for start > scanFloor && isLeadingLine(lines[start-1], inComment[start-1]) {
			start--
		}

		stop := i + 1
		for stop < len(lines) && isRegionLine(lines[stop], inComment[stop]) {
			stop++
		}

		regions = append(regions, buildRegion(lines, inComment, lineEnding, start, i, stop))
		scanFloor = stop
		i = stop
	}

	return regions
}

// Replace substitutes each region's rendering for the first occurrence
// of its original text. Text outside matched regions is left untouched.
func Replace(source, lineEnding string, regions []Region) string {
	out := source
	for _, r := range regions {
		rendered := r.Block.Render(lineEnding)
		if rendered == r.Original {
			continue
		}
		out = strings.Replace(out, r.Original, rendered, 1)
	}
	return out
}

// Changed reports whether any region renders differently from its
// original text, without touching the source.
func Changed(lineEnding string, regions []Region) bool {
	for _, r := range regions {
		if r.Block.Render(lineEnding) != r.Original {
			return true
		}
	}
	return false
}

func buildRegion(lines []string, inComment []bool, lineEnding string, start, first, stop int) Region {
	block := &Block{
		StartLine: start,
		EndLine:   stop - 1,
	}

	// Leading content ends at the last blank line before the first
	// directive. Comments and conditionals touching the directive belong
	// to the statement stream, where sorting can keep them attached.
	leadEnd := first
	for leadEnd > start && strings.TrimSpace(lines[leadEnd-1]) != "" {
		leadEnd--
	}
	for idx := start; idx < leadEnd; idx++ {
		block.Leading = append(block.Leading, parseRegionLine(lines[idx], inComment[idx]))
	}
	for idx := leadEnd; idx < stop; idx++ {
		block.Statements = append(block.Statements, parseRegionLine(lines[idx], inComment[idx]))
	}

	original := strings.Join(lines[start:stop], lineEnding)
	if stop < len(lines) {
		block.trailingSeparator = true
		original += lineEnding
	} else if n := len(block.Statements); n > 0 && block.Statements[n-1].IsBlank {
		block.finalNewline = true
	}
	block.Statements = trimTrailingBlanks(block.Statements)

	return Region{Original: original, Block: block}
}

// parseRegionLine classifies one captured line, forcing block-comment
// continuations to comment statements regardless of their content.
func parseRegionLine(line string, insideComment bool) directive.Statement {
	if insideComment {
		return directive.Statement{Raw: line, IsComment: true}
	}
	return directive.Parse(line)
}

func isLeadingLine(line string, insideComment bool) bool {
	if insideComment {
		return true
	}
	s := directive.Parse(line)
	return s.IsBlank || s.IsComment || s.IsConditional
}

func isRegionLine(line string, insideComment bool) bool {
	if insideComment {
		return true
	}
	s := directive.Parse(line)
	if s.IsBlank || s.IsComment || s.IsConditional {
		return true
	}
	return directive.IsUsingLine(line)
}

// blockCommentMask marks lines that start inside a /* */ comment, so the
// scanner treats their content as comment continuation rather than code.
func blockCommentMask(lines []string) []bool {
	mask := make([]bool, len(lines))
	open := false
	for i, line := range lines {
		mask[i] = open
		open = scanBlockCommentState(line, open)
	}
	return mask
}

func scanBlockCommentState(line string, open bool) bool {
	for i := 0; i < len(line); {
		if open {
			idx := strings.Index(line[i:], "*/")
			if idx < 0 {
				return true
			}
			i += idx + 2
			open = false
			continue
		}
		idx := strings.Index(line[i:], "/*")
		if idx < 0 {
			return false
		}
		i += idx + 2
		open = true
	}
	return open
}
