// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package structure

import (
	"regexp"
	"strings"

	"github.com/pdiddy/docstruct/pkg/types"
)

// separator identifies how a table's columns are delimited in the source.
type separator int

const (
	sepMultiSpace separator = iota
	sepPipe
	sepTab
)

var multiSpaceSplit = regexp.MustCompile(` {2,}`)

// sampleRows is how many leading rows vote on the dominant separator.
const sampleRows = 3

// detectSeparator chooses the dominant column separator by majority vote
// across the block's first few rows. Pipes win ties over tabs, tabs over
// multi-space runs, because the more explicit delimiter is the more
// reliable signal.
func detectSeparator(block types.Block) separator {
	var pipeVotes, tabVotes, spaceVotes int
	for i, line := range block.Lines {
		if i >= sampleRows {
			break
		}
		t := strings.TrimSpace(line.Text)
		switch {
		case strings.Count(t, "|") >= 2:
			pipeVotes++
		case strings.Contains(t, "\t"):
			tabVotes++
		case multiSpaceSplit.MatchString(t):
			spaceVotes++
		}
	}
	switch {
	case pipeVotes >= tabVotes && pipeVotes >= spaceVotes && pipeVotes > 0:
		return sepPipe
	case tabVotes >= spaceVotes && tabVotes > 0:
		return sepTab
	default:
		return sepMultiSpace
	}
}

// splitBy splits one row into trimmed cells using the given separator.
// Empty leading/trailing fragments from pipe-framed rows are dropped.
func splitBy(text string, sep separator) []string {
	t := strings.TrimSpace(text)
	var parts []string
	switch sep {
	case sepPipe:
		parts = strings.Split(strings.Trim(t, "|"), "|")
	case sepTab:
		parts = strings.Split(t, "\t")
	default:
		parts = multiSpaceSplit.Split(t, -1)
	}
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

// splitCells splits a single line with a locally detected separator. The
// classifier uses it to establish the column count when a table opens.
func splitCells(text string) []string {
	t := strings.TrimSpace(text)
	switch {
	case strings.Count(t, "|") >= 2:
		return splitBy(text, sepPipe)
	case strings.Contains(t, "\t"):
		return splitBy(text, sepTab)
	default:
		return splitBy(text, sepMultiSpace)
	}
}

// TableColumnCount returns the modal cell count across the block's rows
// under the dominant separator. The orchestrator reclassifies blocks
// where this is 1 as body paragraphs.
func TableColumnCount(block types.Block) int {
	sep := detectSeparator(block)
	counts := map[int]int{}
	for _, line := range block.Lines {
		counts[len(splitBy(line.Text, sep))]++
	}
	mode, best := 1, 0
	for n, votes := range counts {
		if votes > best || (votes == best && n > mode) {
			mode, best = n, votes
		}
	}
	return mode
}

// FormatTable reconstructs a run of table rows into a Markdown pipe
// table: first row as header, a --- separator row, then body rows. Every
// row is normalized to the modal column count; short rows are padded with
// empty cells and long rows merge their trailing excess into the last
// column, since trailing content is more likely a continuation than a
// new column. A single-row block still yields a one-row table.
func FormatTable(block types.Block) string {
	if len(block.Lines) == 0 {
		return ""
	}
	sep := detectSeparator(block)
	cols := TableColumnCount(block)

	var b strings.Builder
	for i, line := range block.Lines {
		cells := normalizeRow(splitBy(line.Text, sep), line.Text, cols)
		b.WriteString(renderRow(cells))
		if i == 0 {
			b.WriteString("\n")
			b.WriteString("|" + strings.Repeat("---|", cols))
		}
		if i < len(block.Lines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// normalizeRow forces a row to exactly cols cells. A row that did not
// split at all falls back to even division by position proportion.
func normalizeRow(cells []string, raw string, cols int) []string {
	if len(cells) == cols {
		return cells
	}
	if len(cells) == 1 && cols > 1 {
		return splitProportionally(cells[0], cols)
	}
	if len(cells) < cols {
		for len(cells) < cols {
			cells = append(cells, "")
		}
		return cells
	}
	// Merge the excess trailing cells into the last column.
	merged := strings.Join(cells[cols-1:], " ")
	return append(cells[:cols-1:cols-1], merged)
}

// splitProportionally divides text into n cells of roughly equal rune
// length, splitting at word boundaries where possible.
func splitProportionally(text string, n int) []string {
	words := strings.Fields(text)
	cells := make([]string, n)
	if len(words) == 0 {
		return cells
	}
	per := (len(words) + n - 1) / n
	for i := 0; i < n; i++ {
		lo := i * per
		if lo >= len(words) {
			break
		}
		hi := lo + per
		if hi > len(words) {
			hi = len(words)
		}
		cells[i] = strings.Join(words[lo:hi], " ")
	}
	return cells
}

// renderRow emits one pipe-table row, escaping interior pipes so cell
// content cannot be misread as a column delimiter.
func renderRow(cells []string) string {
	var b strings.Builder
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(strings.ReplaceAll(c, "|", `\|`))
		b.WriteString(" |")
	}
	return b.String()
}
