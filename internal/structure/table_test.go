// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package structure

import (
	"strings"
	"testing"

	"github.com/pdiddy/docstruct/pkg/types"
)

func tableBlock(lines ...string) types.Block {
	b := types.Block{Role: types.RoleTableRow}
	for _, l := range lines {
		b.Lines = append(b.Lines, types.Line{Text: l, Role: types.RoleTableRow})
	}
	return b
}

func TestFormatTableMultiSpace(t *testing.T) {
	block := tableBlock(
		"Name  Age  City",
		"Ann  30  NYC",
		"Bo  41  LA",
	)

	got := FormatTable(block)
	want := strings.Join([]string{
		"| Name | Age | City |",
		"|---|---|---|",
		"| Ann | 30 | NYC |",
		"| Bo | 41 | LA |",
	}, "\n")

	if got != want {
		t.Errorf("FormatTable:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatTablePipeSeparated(t *testing.T) {
	block := tableBlock(
		"Item | Qty | Price",
		"Widget | 2 | $8.00",
	)

	got := FormatTable(block)
	if !strings.HasPrefix(got, "| Item | Qty | Price |\n|---|---|---|\n") {
		t.Errorf("pipe table header malformed:\n%s", got)
	}
	if !strings.Contains(got, "| Widget | 2 | $8.00 |") {
		t.Errorf("pipe table body malformed:\n%s", got)
	}
}

func TestFormatTableShortRowPadded(t *testing.T) {
	block := tableBlock(
		"Name  Age  City",
		"Ann  30",
	)

	got := FormatTable(block)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 output lines, got %d:\n%s", len(lines), got)
	}
	if lines[2] != "| Ann | 30 |  |" {
		t.Errorf("short row = %q, want padded to 3 cells", lines[2])
	}
}

func TestFormatTableLongRowMergesTrailing(t *testing.T) {
	block := tableBlock(
		"Name  Age",
		"Bo  41",
		"Ann  30  extra  words",
	)

	got := FormatTable(block)
	if !strings.Contains(got, "| Ann | 30 extra words |") {
		t.Errorf("long row should merge trailing cells into the last column:\n%s", got)
	}
}

func TestFormatTableEscapesInteriorPipes(t *testing.T) {
	block := tableBlock(
		"Name  Note",
		"Ann  a|b",
	)

	got := FormatTable(block)
	if !strings.Contains(got, `a\|b`) {
		t.Errorf("interior pipe not escaped:\n%s", got)
	}
}

func TestFormatTableSingleRow(t *testing.T) {
	block := tableBlock("Name  Age  City")

	got := FormatTable(block)
	want := "| Name | Age | City |\n|---|---|---|"
	if got != want {
		t.Errorf("single-row table = %q, want %q", got, want)
	}
}

func TestTableColumnCount(t *testing.T) {
	tests := []struct {
		name  string
		block types.Block
		want  int
	}{
		{"uniform three columns", tableBlock("a  b  c", "d  e  f"), 3},
		{"modal wins over outlier", tableBlock("a  b  c", "d  e  f", "odd row"), 3},
		{"single column", tableBlock("alpha", "beta"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TableColumnCount(tt.block); got != tt.want {
				t.Errorf("TableColumnCount = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNormalizeRowProportionalFallback(t *testing.T) {
	cells := normalizeRow([]string{"one two three four"}, "one two three four", 2)
	if len(cells) != 2 {
		t.Fatalf("got %d cells, want 2", len(cells))
	}
	if cells[0] != "one two" || cells[1] != "three four" {
		t.Errorf("proportional split = %q, want even word division", cells)
	}
}
