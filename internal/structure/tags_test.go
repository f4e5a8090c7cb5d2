// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package structure

import (
	"strings"
	"testing"

	"github.com/pdiddy/docstruct/pkg/types"
)

func TestRenderStructured(t *testing.T) {
	blocks := []types.Block{
		{Role: types.RoleHeader, Lines: []types.Line{{Text: "Report", Role: types.RoleHeader, Level: 1}}},
		{Role: types.RoleBody, Lines: []types.Line{{Text: "Some prose.", Role: types.RoleBody}}},
	}

	got := RenderStructured(blocks)
	want := "[TITLE]\nReport\n[/TITLE]\n\n[TEXT]\nSome prose.\n[/TEXT]"
	if got != want {
		t.Errorf("RenderStructured = %q, want %q", got, want)
	}
}

func TestParseStructured(t *testing.T) {
	in := strings.Join([]string{
		"[TITLE]",
		"Report",
		"[/TITLE]",
		"",
		"[TABLE]",
		"a  b",
		"c  d",
		"[/TABLE]",
	}, "\n")

	blocks, err := ParseStructured(in)
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].Role != types.RoleHeader || blocks[0].Lines[0].Level != 1 {
		t.Errorf("title block = %+v", blocks[0])
	}
	if blocks[1].Role != types.RoleTableRow || len(blocks[1].Lines) != 2 {
		t.Errorf("table block = %+v", blocks[1])
	}
	if blocks[1].Lines[1].Text != "c  d" {
		t.Errorf("table content = %q, want verbatim line", blocks[1].Lines[1].Text)
	}
}

func TestStructuredTagContentRoundTrip(t *testing.T) {
	// Content lines that read as tag delimiters must survive a render
	// and parse cycle instead of closing or corrupting their block.
	tests := []struct {
		name string
		text string
	}{
		{"own closing tag", "[/HEADER]"},
		{"other opening tag", "[TITLE]"},
		{"indented tag token", "  [/TABLE]"},
		{"already escaped token", `\[/TEXT]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := []types.Block{
				{Role: types.RoleBody, Lines: []types.Line{{Text: tt.text, Role: types.RoleBody}}},
				{Role: types.RoleBody, Lines: []types.Line{{Text: "after", Role: types.RoleBody}}},
			}

			parsed, err := ParseStructured(RenderStructured(blocks))
			if err != nil {
				t.Fatalf("round trip does not parse: %v", err)
			}
			if len(parsed) != 2 {
				t.Fatalf("got %d blocks, want 2", len(parsed))
			}
			if got := parsed[0].Lines[0].Text; got != tt.text {
				t.Errorf("content = %q, want %q", got, tt.text)
			}
		})
	}
}

func TestFormatTagLikeInputParses(t *testing.T) {
	doc := Format("INTRO\n\n[/HEADER]", types.FormatConfig{})
	if _, err := ParseStructured(doc.StructuredText); err != nil {
		t.Errorf("structured text does not parse: %v", err)
	}
}

func TestParseStructuredErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown tag", "[BOGUS]\nx\n[/BOGUS]"},
		{"unclosed tag", "[TEXT]\nx"},
		{"content outside tags", "stray line"},
		{"mismatched close", "[TEXT]\nx\n[/LIST]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseStructured(tt.in); err == nil {
				t.Errorf("ParseStructured(%q) expected error", tt.in)
			}
		})
	}
}
