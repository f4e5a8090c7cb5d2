// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package structure

import (
	"regexp"
	"strings"
)

// literalFixes are straight substring substitutions for OCR misreads that
// are unambiguous regardless of context: broken ligatures and fraction
// glyphs the extraction backends emit as single codepoints.
var literalFixes = []struct{ from, to string }{
	{"ﬀ", "ff"},
	{"ﬁ", "fi"},
	{"ﬂ", "fl"},
	{"ﬃ", "ffi"},
	{"ﬄ", "ffl"},
	{"½", "1/2"},
	{"¼", "1/4"},
	{"¾", "3/4"},
}

// regexFixes are ordered pattern substitutions. Context-sensitive digit
// confusions only fire between digits so prose is never touched; the
// dollar-amount rules undo a digit transposition the OCR models produce
// on thousands separators.
var regexFixes = []struct {
	re   *regexp.Regexp
	repl string
}{
	// Letter-for-digit confusions in numeric context: 4l2 -> 412, 3O1 -> 301.
	{regexp.MustCompile(`(\d)[lI](\d)`), "${1}1${2}"},
	{regexp.MustCompile(`(\d)O(\d)`), "${1}0${2}"},
	// Glyph-pair confusions at word start, where no English word begins
	// with the confused pair: rnail -> mail, vvork -> work. Interior
	// occurrences are left alone (corner, savvy).
	{regexp.MustCompile(`\brn([a-z])`), "m${1}"},
	{regexp.MustCompile(`\bvv([a-z])`), "w${1}"},
	// Transposed thousands groups: $005,3 -> $3,500 and $000,25 -> $25,000.
	{regexp.MustCompile(`\$005,(\d)\b`), "$$${1},500"},
	{regexp.MustCompile(`\$000,(\d+)\b`), "$$${1},000"},
}

var (
	controlChars = regexp.MustCompile("[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]")
	// Interior runs of three or more spaces collapse to exactly two, so a
	// two-space run keeps marking a column boundary for the classifier.
	wideSpaceRun = regexp.MustCompile(`   +`)
)

// Repair applies the fixed substitution table to one line of extracted
// text. It is idempotent and total: Repair(Repair(x)) == Repair(x), and
// unmatched text passes through unchanged. Leading indentation is
// preserved because the classifier reads nesting depth from it; trailing
// whitespace is trimmed.
func Repair(line string) string {
	line = strings.TrimRight(line, " \t\r\n")
	line = controlChars.ReplaceAllString(line, "")
	line = strings.ReplaceAll(line, " ", " ")

	for _, f := range literalFixes {
		line = strings.ReplaceAll(line, f.from, f.to)
	}
	// Chained confusions ("4l2l3") need a second pass because regexp
	// replacement does not revisit overlapping matches, so run the table
	// to a fixpoint.
	for {
		prev := line
		for _, f := range regexFixes {
			line = f.re.ReplaceAllString(line, f.repl)
		}
		if line == prev {
			break
		}
	}

	// Collapse only past the leading indent.
	indent := len(line) - len(strings.TrimLeft(line, " "))
	line = line[:indent] + wideSpaceRun.ReplaceAllString(line[indent:], "  ")

	return strings.TrimRight(line, " \t")
}
