// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package structure

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/docstruct/pkg/types"
)

// Context is the rolling classification state threaded through one
// structuring pass. It is the only state the classifier may consult
// beyond the current line's text.
type Context struct {
	// PrevRole is the role assigned to the preceding non-dropped line.
	PrevRole types.Role

	// TableCols is the column count established when the current table
	// run opened. Zero when no table is open.
	TableCols int

	// HeaderSeen reports whether any header was already classified in
	// this document. The first header gets level 1 (document title).
	HeaderSeen bool
}

var (
	// multiSpace matches one interior run of two or more spaces; together
	// with pipes and tabs these are the column-separating signals.
	multiSpace = regexp.MustCompile(` {2,}`)

	// sectionNumber matches dotted section numbering: "1.2", "3.1.4 Title".
	sectionNumber = regexp.MustCompile(`^\s*(\d+(?:\.\d+)+)\.?\s`)
	// chapterWord matches word-numbered headings: "Chapter 3", "Appendix B".
	chapterWord = regexp.MustCompile(`^\s*(?i:chapter|section|part|appendix)\s+\S+\s*$`)

	// bulletMarker matches bullet list markers with required trailing space.
	bulletMarker = regexp.MustCompile(`^(\s*)([-*+\x{2022}\x{25e6}\x{2023}])\s+(.*)$`)
	// orderedMarker matches ordered list markers: "1.", "1)", "a.", "a)".
	orderedMarker = regexp.MustCompile(`^(\s*)(\d+|[a-z])[.)]\s+(.*)$`)
)

// rule is one entry in the prioritized classification table. A rule that
// does not apply returns ok == false and classification falls through to
// the next rule.
type rule func(text string, ctx Context, cfg types.FormatConfig) (types.Line, bool)

// rules is evaluated in order. Blank and table-continuation come first
// because they depend on context alone; explicit table signals outrank
// list and header heuristics, and numbering outranks caps-based header
// detection inside classifyHeader.
var rules = []rule{
	classifyBlank,
	classifyTableContinuation,
	classifyTableRow,
	classifyListItem,
	classifyHeader,
}

// Classify assigns a structural role to one repaired line and returns the
// updated rolling context. It never fails; lines matching no rule are
// classified body text.
func Classify(text string, ctx Context, cfg types.FormatConfig) (types.Line, Context) {
	cfg = cfg.WithDefaults()

	line := types.Line{Text: text, Role: types.RoleBody}
	for _, r := range rules {
		if l, ok := r(text, ctx, cfg); ok {
			line = l
			break
		}
	}

	switch line.Role {
	case types.RoleBlank:
		// Blank lines terminate any open block but do not disturb the
		// header history.
		ctx.PrevRole = types.RoleBlank
		ctx.TableCols = 0
	case types.RoleTableRow:
		if ctx.PrevRole != types.RoleTableRow {
			ctx.TableCols = len(splitCells(text))
		}
		ctx.PrevRole = types.RoleTableRow
	case types.RoleHeader:
		ctx.HeaderSeen = true
		ctx.PrevRole = types.RoleHeader
		ctx.TableCols = 0
	default:
		ctx.PrevRole = line.Role
		ctx.TableCols = 0
	}

	return line, ctx
}

func classifyBlank(text string, _ Context, _ types.FormatConfig) (types.Line, bool) {
	if strings.TrimSpace(text) == "" {
		return types.Line{Text: text, Role: types.RoleBlank}, true
	}
	return types.Line{}, false
}

// classifyTableContinuation absorbs a separator-free line into an open
// table when its whitespace token count is within the configured
// tolerance of the established column count.
func classifyTableContinuation(text string, ctx Context, cfg types.FormatConfig) (types.Line, bool) {
	if ctx.PrevRole != types.RoleTableRow || ctx.TableCols == 0 {
		return types.Line{}, false
	}
	n := len(strings.Fields(text))
	if n == 0 {
		return types.Line{}, false
	}
	diff := n - ctx.TableCols
	if diff < 0 {
		diff = -diff
	}
	if diff <= cfg.TableLookback {
		return types.Line{Text: text, Role: types.RoleTableRow}, true
	}
	return types.Line{}, false
}

func classifyTableRow(text string, _ Context, _ types.FormatConfig) (types.Line, bool) {
	if separatorSignals(text) >= 2 {
		return types.Line{Text: text, Role: types.RoleTableRow}, true
	}
	return types.Line{}, false
}

// separatorSignals counts column-separating signals in a line: pipe
// characters, tabs, and interior runs of two or more spaces. Trimming
// first keeps indentation and trailing padding out of the count; every
// space run left after that sits between two cells, so adjacent runs
// around a single-character cell each count.
func separatorSignals(text string) int {
	trimmed := strings.TrimSpace(text)
	n := strings.Count(trimmed, "|") + strings.Count(trimmed, "\t")
	n += len(multiSpace.FindAllString(trimmed, -1))
	return n
}

func classifyListItem(text string, _ Context, cfg types.FormatConfig) (types.Line, bool) {
	var indent string
	switch {
	case bulletMarker.MatchString(text):
		indent = bulletMarker.FindStringSubmatch(text)[1]
	case orderedMarker.MatchString(text):
		indent = orderedMarker.FindStringSubmatch(text)[1]
	default:
		return types.Line{}, false
	}
	level := indentWidth(indent) / cfg.IndentUnit
	return types.Line{Text: text, Role: types.RoleListItem, Level: level}, true
}

// classifyHeader applies the header heuristics: short line, no terminal
// sentence punctuation, and at least one positive signal. Numbering
// patterns take precedence over caps and title-case detection.
func classifyHeader(text string, ctx Context, cfg types.FormatConfig) (types.Line, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return types.Line{}, false
	}
	// The length cutoff counts characters, not bytes, so multibyte
	// headings are not penalized.
	runes := []rune(trimmed)
	if len(runes) > cfg.HeaderMaxLen {
		return types.Line{}, false
	}
	if strings.ContainsRune(".!?,;:", runes[len(runes)-1]) {
		return types.Line{}, false
	}

	switch {
	case sectionNumber.MatchString(text):
		m := sectionNumber.FindStringSubmatch(text)
		level := strings.Count(m[1], ".") + 1
		if level > 6 {
			level = 6
		}
		return types.Line{Text: text, Role: types.RoleHeader, Level: level}, true
	case chapterWord.MatchString(text):
		return types.Line{Text: text, Role: types.RoleHeader, Level: 1}, true
	case isAllCaps(trimmed) || isTitleCaseMajority(trimmed):
		return types.Line{Text: text, Role: types.RoleHeader, Level: unnumberedLevel(text, ctx, cfg)}, true
	}
	return types.Line{}, false
}

// unnumberedLevel derives a heading level for caps or title-case headers:
// the first header in a document is the title (level 1), later ones
// default to level 2 deepened by relative indentation.
func unnumberedLevel(text string, ctx Context, cfg types.FormatConfig) int {
	indent := indentWidth(text[:len(text)-len(strings.TrimLeft(text, " \t"))])
	if !ctx.HeaderSeen && indent == 0 {
		return 1
	}
	level := 2 + indent/cfg.IndentUnit
	if level > 6 {
		level = 6
	}
	return level
}

// isAllCaps reports whether the text contains at least one letter and no
// lowercase letters.
func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// isTitleCaseMajority reports whether more than half of the words start
// with an uppercase letter. Single words fall under the all-caps check
// instead, so a lone capitalized word is not mistaken for a heading.
func isTitleCaseMajority(s string) bool {
	words := strings.Fields(s)
	if len(words) < 2 {
		return false
	}
	capped := 0
	for _, w := range words {
		r := []rune(w)[0]
		if unicode.IsUpper(r) {
			capped++
		}
	}
	return capped*2 > len(words)
}

// indentWidth measures leading whitespace in space units. A tab counts
// as two spaces, the default indent unit.
func indentWidth(indent string) int {
	w := 0
	for _, r := range indent {
		switch r {
		case '\t':
			w += 2
		case ' ':
			w++
		}
	}
	return w
}
