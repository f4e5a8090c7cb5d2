// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package structure

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/docstruct/pkg/types"
)

// Structured text wraps each block's repaired content in a closed bracket
// tag pair:
//
//	[TAG]
//	<block lines, verbatim>
//	[/TAG]
//
// with one blank line between consecutive blocks. The vocabulary is
// TITLE (level-1 header block), HEADER, TABLE, LIST, and TEXT. The closed
// convention keeps the representation machine-parseable: ParseStructured
// inverts RenderStructured exactly on block count, role, and content.

const (
	tagTitle  = "TITLE"
	tagHeader = "HEADER"
	tagTable  = "TABLE"
	tagList   = "LIST"
	tagText   = "TEXT"
)

// blockTag returns the structured-text tag name for a block.
func blockTag(b types.Block) string {
	switch b.Role {
	case types.RoleHeader:
		if len(b.Lines) > 0 && b.Lines[0].Level == 1 {
			return tagTitle
		}
		return tagHeader
	case types.RoleTableRow:
		return tagTable
	case types.RoleListItem:
		return tagList
	default:
		return tagText
	}
}

// tagToken matches a line that reads as a tag delimiter once trimmed,
// with any number of leading escape backslashes.
var tagToken = regexp.MustCompile(`^(\\*)\[/?(TITLE|HEADER|TABLE|LIST|TEXT)\]$`)

// escapeTagToken guards a content line that would otherwise parse as a
// tag delimiter by backslash-escaping its bracket. unescapeTagToken
// inverts it; together they keep the round trip exact for any content.
func escapeTagToken(text string) string {
	if tagToken.MatchString(strings.TrimSpace(text)) {
		return strings.Replace(text, "[", `\[`, 1)
	}
	return text
}

func unescapeTagToken(text string) string {
	trimmed := strings.TrimSpace(text)
	if m := tagToken.FindStringSubmatch(trimmed); m != nil && m[1] != "" {
		return strings.Replace(text, `\`, "", 1)
	}
	return text
}

// RenderStructured emits the tagged structured-text representation of a
// block sequence.
func RenderStructured(blocks []types.Block) string {
	var b strings.Builder
	for i, blk := range blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		tag := blockTag(blk)
		b.WriteString("[" + tag + "]\n")
		for _, line := range blk.Lines {
			b.WriteString(escapeTagToken(line.Text))
			b.WriteString("\n")
		}
		b.WriteString("[/" + tag + "]")
	}
	return b.String()
}

// tagRole maps a tag name back to its block role and default line level.
func tagRole(tag string) (types.Role, int, bool) {
	switch tag {
	case tagTitle:
		return types.RoleHeader, 1, true
	case tagHeader:
		return types.RoleHeader, 2, true
	case tagTable:
		return types.RoleTableRow, 0, true
	case tagList:
		return types.RoleListItem, 0, true
	case tagText:
		return types.RoleBody, 0, true
	default:
		return "", 0, false
	}
}

// ParseStructured parses a structured-text document back into blocks. It
// returns an error on an unknown tag, a missing closing tag, or content
// outside any tag pair. Header levels inside [HEADER] blocks and list
// nesting depths are restored to their tag defaults, not their original
// values; role and content round-trip exactly.
func ParseStructured(s string) ([]types.Block, error) {
	var blocks []types.Block
	var open string
	var current *types.Block
	var level int

	for n, raw := range strings.Split(s, "\n") {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)

		switch {
		case open == "" && trimmed == "":
			continue

		case open == "" && strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") && !strings.HasPrefix(trimmed, "[/"):
			tag := trimmed[1 : len(trimmed)-1]
			role, lvl, ok := tagRole(tag)
			if !ok {
				return nil, fmt.Errorf("line %d: unknown tag %q", n+1, tag)
			}
			open = tag
			level = lvl
			current = &types.Block{Role: role}

		case open != "" && trimmed == "[/"+open+"]":
			blocks = append(blocks, *current)
			open = ""
			current = nil

		case open != "":
			current.Lines = append(current.Lines, types.Line{
				Text:  unescapeTagToken(line),
				Role:  current.Role,
				Level: level,
			})

		default:
			return nil, fmt.Errorf("line %d: content outside tag pair: %q", n+1, trimmed)
		}
	}

	if open != "" {
		return nil, fmt.Errorf("missing closing tag [/%s]", open)
	}
	return blocks, nil
}
