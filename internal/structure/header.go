// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package structure

import (
	"strings"

	"github.com/pdiddy/docstruct/pkg/types"
)

// FormatHeader emits a Markdown heading for a classified header line. The
// level is clamped to the Markdown range [1,6].
func FormatHeader(line types.Line) string {
	level := line.Level
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return strings.Repeat("#", level) + " " + strings.TrimSpace(line.Text)
}
