package transform

import (
	"github.com/usingfmt/usingfmt/internal/diagnostics"
	"github.com/usingfmt/usingfmt/internal/directive"
	"github.com/usingfmt/usingfmt/internal/extract"
	"github.com/usingfmt/usingfmt/internal/options"
)

// RemovedUsing records one directive dropped by unused removal, with
// its original 1-based source line and the diagnostic code that
// condemned it.
type RemovedUsing struct {
	Namespace string
	Line      int
	Code      string
}

// Result summarizes one pipeline run over a source file.
type Result struct {
	Changed bool
	Removed []RemovedUsing
}

// Pipeline runs the fixed stage order over every directive region of a
// file: unused removal, blank filtering, conditional-aware sorting,
// group splitting, then whitespace normalization. The order is load
// bearing: removal consumes original line numbers, so it must run
// before anything reshuffles the statements, and normalization re-adds
// the blanks filtering took away.
type Pipeline struct {
	opts     options.Values
	sorter   Sorter
	splitter GroupSplitter
}

func NewPipeline(opts options.Values) Pipeline {
	cmp := NewComparator(opts.SortOrder)
	return Pipeline{
		opts:     opts,
		sorter:   NewSorter(cmp, opts.StaticPlacement),
		splitter: NewGroupSplitter(opts.StaticPlacement),
	}
}

// Run formats the source and reports whether it changed. The returned
// text equals the input when nothing changed, and running the pipeline
// on its own output is always a no-op.
func (p Pipeline) Run(source, lineEnding string, findings []diagnostics.Unused) (string, Result, error) {
	regions := extract.Extract(source, lineEnding)
	if len(regions) == 0 {
		return source, Result{}, nil
	}

	result := Result{}
	for _, region := range regions {
		removed := p.removeUnused(region.Block, findings)
		result.Removed = append(result.Removed, removed...)

		// Blank filtering happens inside Sort so that a blank line can
		// orphan the comment run before it; preprocessor spans keep
		// their interior blanks verbatim.
		remaining, blocks := Separate(region.Block.Statements)
		sorted, err := p.sorter.Sort(remaining)
		if err != nil {
			return source, Result{}, err
		}
		statements := Recombine(sorted, blocks)
		if p.opts.SplitGroups {
			statements = p.splitter.Split(statements)
		}
		statements = NormalizeWhitespace(statements)

		region.Block.Statements = statements
		region.Block.Leading = NormalizeLeading(region.Block.Leading)
	}

	if !extract.Changed(lineEnding, regions) {
		return source, result, nil
	}
	result.Changed = true
	return extract.Replace(source, lineEnding, regions), result, nil
}

// removeUnused drops directives whose original source line is covered
// by a recognized finding. Directives inside preprocessor spans are kept
// unless conditional processing is enabled. Must run before any stage
// that invalidates the block's line arithmetic.
func (p Pipeline) removeUnused(block *extract.Block, findings []diagnostics.Unused) []RemovedUsing {
	if p.opts.DisableUnusedRemoval || len(findings) == 0 {
		return nil
	}

	var removed []RemovedUsing
	kept := make([]directive.Statement, 0, len(block.Statements))
	inConditional := false

	for idx, st := range block.Statements {
		if st.IsConditional {
			if isConditionalOpen(st) {
				inConditional = true
			} else if isConditionalClose(st) {
				inConditional = false
			}
			kept = append(kept, st)
			continue
		}

		if !st.IsDirective() || (inConditional && !p.opts.ProcessConditionalBlocks) {
			kept = append(kept, st)
			continue
		}

		line := block.DirectiveOffset(idx)
		if code, hit := findingFor(findings, line); hit {
			removed = append(removed, RemovedUsing{Namespace: st.Namespace, Line: line, Code: code})
			continue
		}
		kept = append(kept, st)
	}

	block.Statements = kept
	return removed
}

func findingFor(findings []diagnostics.Unused, line int) (string, bool) {
	for _, f := range findings {
		if f.Covers(line) {
			return f.Code, true
		}
	}
	return "", false
}
