// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package structure

import (
	"testing"

	"github.com/pdiddy/docstruct/pkg/types"
)

func TestClassifySingleLines(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		ctx       Context
		wantRole  types.Role
		wantLevel int
	}{
		{"empty is blank", "", Context{}, types.RoleBlank, 0},
		{"whitespace is blank", "   \t ", Context{}, types.RoleBlank, 0},
		{"sentence is body", "The meeting covered several topics.", Context{}, types.RoleBody, 0},
		{"all caps first header is title", "EXECUTIVE SUMMARY", Context{}, types.RoleHeader, 1},
		{"all caps later header is level 2", "METHODS", Context{HeaderSeen: true}, types.RoleHeader, 2},
		{"title case majority header", "Quarterly Revenue Overview", Context{HeaderSeen: true}, types.RoleHeader, 2},
		{"numbered header depth two", "2.1 Background", Context{}, types.RoleHeader, 2},
		{"numbered header depth three", "1.2.3 Title", Context{}, types.RoleHeader, 3},
		{"numbered header capped at six", "1.2.3.4.5.6.7.8 Deep", Context{}, types.RoleHeader, 6},
		{"chapter heading", "Chapter 3", Context{}, types.RoleHeader, 1},
		{"long caps line is body", "THIS LINE GOES ON AND ON WELL PAST ANY PLAUSIBLE HEADING LENGTH THRESHOLD FOR A DOCUMENT TITLE OR SECTION", Context{}, types.RoleBody, 0},
		{"terminal punctuation blocks header", "Results.", Context{}, types.RoleBody, 0},
		{"dash bullet", "- first item", Context{}, types.RoleListItem, 0},
		{"asterisk bullet", "* second item", Context{}, types.RoleListItem, 0},
		{"unicode bullet", "• third item", Context{}, types.RoleListItem, 0},
		{"ordered number dot", "3. Foo", Context{}, types.RoleListItem, 0},
		{"ordered number paren", "4) Bar", Context{}, types.RoleListItem, 0},
		{"ordered letter", "a. Baz", Context{}, types.RoleListItem, 0},
		{"nested bullet level one", "  - nested", Context{}, types.RoleListItem, 1},
		{"nested bullet level two", "    - deeper", Context{}, types.RoleListItem, 2},
		{"two space gaps make a table row", "Name  Age  City", Context{}, types.RoleTableRow, 0},
		{"pipes make a table row", "a | b | c", Context{}, types.RoleTableRow, 0},
		{"tabs make a table row", "a\tb\tc", Context{}, types.RoleTableRow, 0},
		{"single gap is not a table row", "name  age", Context{}, types.RoleBody, 0},
		{"adjacent gaps around one-char cells", "a  b  c", Context{}, types.RoleTableRow, 0},
		{"multibyte heading under char threshold", "事業概況報告書の要約と分析に関する統計情報の概要セクション", Context{}, types.RoleHeader, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, _ := Classify(tt.in, tt.ctx, types.FormatConfig{})
			if line.Role != tt.wantRole {
				t.Errorf("Classify(%q) role = %q, want %q", tt.in, line.Role, tt.wantRole)
			}
			if line.Level != tt.wantLevel {
				t.Errorf("Classify(%q) level = %d, want %d", tt.in, line.Level, tt.wantLevel)
			}
		})
	}
}

func TestClassifyTableContinuation(t *testing.T) {
	cfg := types.FormatConfig{}
	var ctx Context

	_, ctx = Classify("Name  Age  City", ctx, cfg)
	if ctx.TableCols != 3 {
		t.Fatalf("established column count = %d, want 3", ctx.TableCols)
	}

	// No explicit separator, but token count matches the open table.
	line, ctx := Classify("Total 123 USD", ctx, cfg)
	if line.Role != types.RoleTableRow {
		t.Errorf("compatible continuation role = %q, want table_row", line.Role)
	}

	// Token count off by two closes the table.
	line, ctx = Classify("just one trailing sentence of prose", ctx, cfg)
	if line.Role != types.RoleBody {
		t.Errorf("incompatible line role = %q, want body", line.Role)
	}
	if ctx.TableCols != 0 {
		t.Errorf("column count after table closed = %d, want 0", ctx.TableCols)
	}
}

func TestClassifyBlankClosesTable(t *testing.T) {
	cfg := types.FormatConfig{}
	var ctx Context

	_, ctx = Classify("a | b | c", ctx, cfg)
	_, ctx = Classify("", ctx, cfg)
	line, _ := Classify("one two three", ctx, cfg)
	if line.Role != types.RoleBody {
		t.Errorf("line after blank classified %q, want body (no table lookback across blanks)", line.Role)
	}
}

func TestClassifyNumberingBeatsCaps(t *testing.T) {
	// Matches both the numbering and the all-caps heuristics; numbering
	// must decide the level.
	line, _ := Classify("1.2 RELATED WORK", Context{HeaderSeen: true}, types.FormatConfig{})
	if line.Role != types.RoleHeader || line.Level != 2 {
		t.Errorf("got role %q level %d, want header level 2", line.Role, line.Level)
	}
}

func TestClassifyHeaderThresholdConfigurable(t *testing.T) {
	cfg := types.FormatConfig{HeaderMaxLen: 10}
	line, _ := Classify("Quarterly Revenue Overview", Context{HeaderSeen: true}, cfg)
	if line.Role != types.RoleBody {
		t.Errorf("over-threshold line role = %q, want body", line.Role)
	}
}
