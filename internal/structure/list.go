// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package structure

import (
	"fmt"
	"strings"

	"github.com/pdiddy/docstruct/pkg/types"
)

// FormatList normalizes a run of list items into canonical Markdown list
// syntax. Bullet markers become "- "; ordered-looking markers ("1.", "a)")
// stay ordered but are renumbered sequentially from 1 within the block,
// because source numbering that survived OCR is unreliable. Nesting is
// re-emitted as two spaces per level.
func FormatList(block types.Block) string {
	var b strings.Builder
	counter := 0
	for i, line := range block.Lines {
		content, ordered := stripMarker(line.Text)
		indent := strings.Repeat("  ", line.Level)
		if ordered {
			counter++
			fmt.Fprintf(&b, "%s%d. %s", indent, counter, content)
		} else {
			fmt.Fprintf(&b, "%s- %s", indent, content)
		}
		if i < len(block.Lines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// stripMarker removes the source list marker and reports whether it was
// an ordered marker. Lines without a recognizable marker pass through as
// unordered content.
func stripMarker(text string) (content string, ordered bool) {
	if m := orderedMarker.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[3]), true
	}
	if m := bulletMarker.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[3]), false
	}
	return strings.TrimSpace(text), false
}
