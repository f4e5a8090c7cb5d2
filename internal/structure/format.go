// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package structure implements the content structuring pipeline: a
// line-oriented, model-free classifier and reformatter that turns raw
// extracted document text into Markdown plus a tagged structured-text
// representation. The pipeline is a single synchronous pass with no I/O;
// concurrent calls on different documents are independent.
package structure

import (
	"strings"

	"github.com/pdiddy/docstruct/pkg/types"
)

// Format runs the full structuring pipeline over raw extracted text:
// repair, classification with rolling context, block grouping, and
// per-block formatting. It is total: any input, including empty or
// binary-noise text, produces a FormattedDocument without error.
func Format(raw string, cfg types.FormatConfig) types.FormattedDocument {
	cfg = cfg.WithDefaults()
	blocks := reclassifyDegenerate(Group(ClassifyAll(raw, cfg)))
	return types.FormattedDocument{
		Markdown:       RenderMarkdown(blocks, cfg),
		StructuredText: RenderStructured(blocks),
	}
}

// ClassifyAll repairs and classifies every line of raw text, threading
// the rolling context through the sequence.
func ClassifyAll(raw string, cfg types.FormatConfig) []types.Line {
	cfg = cfg.WithDefaults()
	src := strings.Split(raw, "\n")
	lines := make([]types.Line, 0, len(src))

	var ctx Context
	for _, s := range src {
		var line types.Line
		line, ctx = Classify(Repair(s), ctx, cfg)
		lines = append(lines, line)
	}
	return lines
}

// Group collapses a classified line sequence into maximal same-role
// blocks. Blank lines terminate the open block and are dropped; they
// separate two otherwise-identical adjacent blocks rather than merging
// them.
func Group(lines []types.Line) []types.Block {
	var blocks []types.Block
	var current *types.Block

	for _, line := range lines {
		if line.Role == types.RoleBlank {
			current = nil
			continue
		}
		if current == nil || current.Role != line.Role {
			blocks = append(blocks, types.Block{Role: line.Role})
			current = &blocks[len(blocks)-1]
		}
		current.Lines = append(current.Lines, line)
	}
	return blocks
}

// reclassifyDegenerate demotes single-column table blocks to body
// paragraphs, since a one-column "table" carries no tabular information.
// Running this before rendering keeps the Markdown and structured-text
// views in agreement.
func reclassifyDegenerate(blocks []types.Block) []types.Block {
	for i, b := range blocks {
		if b.Role == types.RoleTableRow && TableColumnCount(b) <= 1 {
			blocks[i].Role = types.RoleBody
			for j := range blocks[i].Lines {
				blocks[i].Lines[j].Role = types.RoleBody
			}
		}
	}
	return blocks
}

// RenderMarkdown dispatches each block to its formatter and joins the
// results with blank-line separators.
func RenderMarkdown(blocks []types.Block, cfg types.FormatConfig) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if s := formatBlock(b, cfg); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

func formatBlock(b types.Block, cfg types.FormatConfig) string {
	switch b.Role {
	case types.RoleHeader:
		lines := make([]string, len(b.Lines))
		for i, l := range b.Lines {
			lines[i] = FormatHeader(l)
		}
		return strings.Join(lines, "\n\n")
	case types.RoleTableRow:
		return FormatTable(b)
	case types.RoleListItem:
		return FormatList(b)
	default:
		return formatBody(b)
	}
}

// formatBody emits a block's lines as a plain paragraph, folding the
// repaired lines together with single spaces.
func formatBody(b types.Block) string {
	lines := make([]string, len(b.Lines))
	for i, l := range b.Lines {
		lines[i] = strings.TrimSpace(l.Text)
	}
	return strings.Join(lines, " ")
}
