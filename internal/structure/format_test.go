// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package structure

import (
	"strings"
	"testing"

	"github.com/pdiddy/docstruct/pkg/types"
)

func TestFormatEndToEnd(t *testing.T) {
	raw := strings.Join([]string{
		"ANNUAL REPORT",
		"",
		"1.1 Revenue",
		"",
		"Revenue grew steadily across all regions during the year.",
		"",
		"Region  Q1  Q2",
		"North  10  12",
		"South  8  9",
		"",
		"- strong growth in the north",
		"- flat results in the south",
	}, "\n")

	doc := Format(raw, types.FormatConfig{})

	wantMarkdown := strings.Join([]string{
		"# ANNUAL REPORT",
		"",
		"## 1.1 Revenue",
		"",
		"Revenue grew steadily across all regions during the year.",
		"",
		"| Region | Q1 | Q2 |",
		"|---|---|---|",
		"| North | 10 | 12 |",
		"| South | 8 | 9 |",
		"",
		"- strong growth in the north",
		"- flat results in the south",
	}, "\n")

	if doc.Markdown != wantMarkdown {
		t.Errorf("markdown:\ngot:\n%s\nwant:\n%s", doc.Markdown, wantMarkdown)
	}

	for _, tag := range []string{"[TITLE]", "[HEADER]", "[TEXT]", "[TABLE]", "[LIST]"} {
		if !strings.Contains(doc.StructuredText, tag) {
			t.Errorf("structured text missing %s:\n%s", tag, doc.StructuredText)
		}
	}
}

func TestFormatTotality(t *testing.T) {
	inputs := []string{
		"",
		" ",
		"\n",
		"x",
		"\x00\x01\x02",
		strings.Repeat("\n", 100),
		"only one line of ordinary prose here.",
		"|||||",
		"\t\t\t",
	}
	for _, in := range inputs {
		// Must not panic and must produce parseable structured text.
		doc := Format(in, types.FormatConfig{})
		if _, err := ParseStructured(doc.StructuredText); err != nil {
			t.Errorf("Format(%q) structured text does not parse: %v", in, err)
		}
	}
}

func TestFormatBlankLineSeparatesBlocks(t *testing.T) {
	doc := Format("first paragraph here\n\nsecond paragraph here", types.FormatConfig{})

	blocks, err := ParseStructured(doc.StructuredText)
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2 (blank line must separate same-role runs)", len(blocks))
	}
	for _, b := range blocks {
		if b.Role != types.RoleBody {
			t.Errorf("block role = %q, want body", b.Role)
		}
	}
	if doc.Markdown != "first paragraph here\n\nsecond paragraph here" {
		t.Errorf("markdown = %q", doc.Markdown)
	}
}

func TestFormatAdjacentBodyLinesFoldIntoOneBlock(t *testing.T) {
	doc := Format("first line of prose\nsecond line of prose", types.FormatConfig{})

	blocks, err := ParseStructured(doc.StructuredText)
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if doc.Markdown != "first line of prose second line of prose" {
		t.Errorf("markdown = %q", doc.Markdown)
	}
}

func TestFormatDegenerateTableBecomesBody(t *testing.T) {
	// Both lines carry pipe signals but split into a single column, so
	// the block must be demoted to body text in both outputs.
	raw := "||alpha\n||beta"

	doc := Format(raw, types.FormatConfig{})
	if strings.Contains(doc.Markdown, "---") {
		t.Errorf("degenerate table rendered as table:\n%s", doc.Markdown)
	}
	if strings.Contains(doc.StructuredText, "[TABLE]") {
		t.Errorf("degenerate table tagged [TABLE]:\n%s", doc.StructuredText)
	}
	if !strings.Contains(doc.StructuredText, "[TEXT]") {
		t.Errorf("degenerate table should be tagged [TEXT]:\n%s", doc.StructuredText)
	}
}

func TestGroupRoundTripBlockCount(t *testing.T) {
	raws := []string{
		"A\n\nB",
		"HEADING\nbody text follows here.\n- item one\n- item two",
		"a  b  c\nd  e  f\n\nplain prose after the table.",
		"",
	}
	for _, raw := range raws {
		cfg := types.FormatConfig{}
		blocks := reclassifyDegenerate(Group(ClassifyAll(raw, cfg)))
		parsed, err := ParseStructured(RenderStructured(blocks))
		if err != nil {
			t.Errorf("round trip failed for %q: %v", raw, err)
			continue
		}
		if len(parsed) != len(blocks) {
			t.Errorf("round trip block count = %d, want %d for %q", len(parsed), len(blocks), raw)
		}
		for i := range parsed {
			if parsed[i].Role != blocks[i].Role {
				t.Errorf("block %d role = %q, want %q", i, parsed[i].Role, blocks[i].Role)
			}
		}
	}
}
