// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package structure

import (
	"testing"

	"github.com/pdiddy/docstruct/pkg/types"
)

func listBlock(items ...types.Line) types.Block {
	for i := range items {
		items[i].Role = types.RoleListItem
	}
	return types.Block{Role: types.RoleListItem, Lines: items}
}

func TestFormatList(t *testing.T) {
	tests := []struct {
		name  string
		block types.Block
		want  string
	}{
		{
			name: "bullets normalized to dashes",
			block: listBlock(
				types.Line{Text: "* alpha"},
				types.Line{Text: "• beta"},
				types.Line{Text: "- gamma"},
			),
			want: "- alpha\n- beta\n- gamma",
		},
		{
			name: "ordered markers renumbered from one",
			block: listBlock(
				types.Line{Text: "3. Foo"},
				types.Line{Text: "7. Bar"},
			),
			want: "1. Foo\n2. Bar",
		},
		{
			name: "paren numbering stays ordered",
			block: listBlock(
				types.Line{Text: "9) first"},
				types.Line{Text: "2) second"},
			),
			want: "1. first\n2. second",
		},
		{
			name: "nesting depth becomes two-space indent",
			block: listBlock(
				types.Line{Text: "- top"},
				types.Line{Text: "  - inner", Level: 1},
				types.Line{Text: "    - innermost", Level: 2},
			),
			want: "- top\n  - inner\n    - innermost",
		},
		{
			name: "markerless line passes through as bullet",
			block: listBlock(
				types.Line{Text: "- real item"},
				types.Line{Text: "stray continuation"},
			),
			want: "- real item\n- stray continuation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatList(tt.block); got != tt.want {
				t.Errorf("FormatList:\ngot:  %q\nwant: %q", got, tt.want)
			}
		})
	}
}

func TestFormatHeader(t *testing.T) {
	tests := []struct {
		name string
		line types.Line
		want string
	}{
		{"level one", types.Line{Text: "Title", Role: types.RoleHeader, Level: 1}, "# Title"},
		{"level three", types.Line{Text: "1.2.3 Title", Role: types.RoleHeader, Level: 3}, "### 1.2.3 Title"},
		{"zero clamps to one", types.Line{Text: "Untitled", Role: types.RoleHeader}, "# Untitled"},
		{"overflow clamps to six", types.Line{Text: "Deep", Role: types.RoleHeader, Level: 9}, "###### Deep"},
		{"surrounding space trimmed", types.Line{Text: "  Padded  ", Role: types.RoleHeader, Level: 2}, "## Padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatHeader(tt.line); got != tt.want {
				t.Errorf("FormatHeader(%+v) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}
