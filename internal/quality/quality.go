// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package quality scores extracted text for OCR corruption. The checks
// are fixed heuristics over the text alone; the package reports findings
// and never decides what a caller should do about them.
package quality

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/docstruct/pkg/types"
)

// check is one corruption detector. It appends an issue and returns its
// weight when it fires, or returns 0.
type check func(text string, issues *[]types.QualityIssue) float64

// checks run in a fixed order so reports are deterministic.
var checks = []check{
	checkCharacterSpacing,
	checkReversedWords,
	checkSingleChars,
	checkEncodingNoise,
	checkFinancialCorruption,
	checkPunctuationSpam,
	checkFragmentedText,
	checkMissingTableStructure,
	checkWordLength,
	checkContentDensity,
	checkSymbols,
}

// Assess analyzes text against the full check battery and returns a
// report. Text shorter than the configured minimum is reported clean
// without running the checks; text below the minimum content length is
// flagged corrupted regardless of score.
func Assess(text string, cfg types.QualityConfig) types.QualityReport {
	cfg = cfg.WithDefaults()

	trimmed := strings.TrimSpace(text)
	if len(trimmed) < cfg.MinTextLength {
		return types.QualityReport{}
	}

	var report types.QualityReport
	for _, c := range checks {
		report.Score += c(text, &report.Issues)
	}
	report.Score += checkContentSparsity(text, cfg, &report.Issues)

	report.Corrupted = report.Score >= cfg.CorruptionThreshold ||
		len(trimmed) < cfg.MinContentLength
	return report
}

func addIssue(issues *[]types.QualityIssue, name string, weight float64, format string, args ...any) float64 {
	*issues = append(*issues, types.QualityIssue{
		Check:  name,
		Detail: fmt.Sprintf(format, args...),
		Weight: weight,
	})
	return weight
}

// checkCharacterSpacing flags text where spaces outnumber half the
// non-space characters, the signature of per-character OCR output.
func checkCharacterSpacing(text string, issues *[]types.QualityIssue) float64 {
	spaces := strings.Count(text, " ")
	chars := len(strings.ReplaceAll(strings.ReplaceAll(text, " ", ""), "\n", ""))
	if chars == 0 {
		return 0
	}
	ratio := float64(spaces) / float64(chars)
	if ratio > 0.5 {
		return addIssue(issues, "character_spacing", 0.8, "space ratio %.2f", ratio)
	}
	return 0
}

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}]`)

// reversedPrefixes, reversedSuffixes and knownReversed are fragments of
// common English morphemes as they appear when a word is read backwards.
var (
	reversedPrefixes = []string{"gni", "noi", "eci"}
	reversedSuffixes = []string{"erp", "bus", "noc", "red"}
	knownReversed    = map[string]bool{"synapmoc": true, "ecnarusni": true, "dradnats": true}
)

func checkReversedWords(text string, issues *[]types.QualityIssue) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}
	reversed := 0
	for _, w := range words {
		clean := nonWord.ReplaceAllString(strings.ToLower(w), "")
		if len(clean) < 3 {
			continue
		}
		if knownReversed[clean] || hasAnyPrefix(clean, reversedPrefixes) || hasAnySuffix(clean, reversedSuffixes) {
			reversed++
		}
	}
	if float64(reversed)/float64(len(words)) > 0.05 {
		return addIssue(issues, "reversed_words", 0.6, "%d/%d words", reversed, len(words))
	}
	return 0
}

func checkSingleChars(text string, issues *[]types.QualityIssue) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}
	singles := 0
	for _, w := range words {
		r := []rune(w)
		if len(r) == 1 && isLetter(r[0]) {
			singles++
		}
	}
	if float64(singles)/float64(len(words)) > 0.1 {
		return addIssue(issues, "single_char_words", 0.7, "%d single-character words", singles)
	}
	return 0
}

var weirdChars = regexp.MustCompile(`[^\w\s.,!?;:()\-$%/€£¥'"&@#*]`)

func checkEncodingNoise(text string, issues *[]types.QualityIssue) float64 {
	weird := len(weirdChars.FindAllString(text, -1))
	if float64(weird) > float64(len(text))*0.01 {
		return addIssue(issues, "encoding_noise", 0.3, "%d unexpected characters", weird)
	}
	return 0
}

var suspiciousMoney = regexp.MustCompile(`\$\d*0{2,},\d{1,2}\b`)

func checkFinancialCorruption(text string, issues *[]types.QualityIssue) float64 {
	if n := len(suspiciousMoney.FindAllString(text, -1)); n > 0 {
		return addIssue(issues, "financial_corruption", 0.5, "%d suspicious amounts", n)
	}
	return 0
}

func checkPunctuationSpam(text string, issues *[]types.QualityIssue) float64 {
	questions := strings.Count(text, "?")
	if float64(questions) > float64(len(text))*0.008 {
		return addIssue(issues, "punctuation_spam", 0.3, "%d question marks", questions)
	}
	return 0
}

var sentenceEnd = regexp.MustCompile(`[.!?]\s+`)

func checkFragmentedText(text string, issues *[]types.QualityIssue) float64 {
	sentences := sentenceEnd.Split(text, -1)
	if len(sentences) <= 1 {
		return 0
	}
	short := 0
	for _, s := range sentences {
		if strings.TrimSpace(s) != "" && len(strings.Fields(s)) < 3 {
			short++
		}
	}
	if float64(short)/float64(len(sentences)) > 0.3 {
		return addIssue(issues, "fragmented_text", 0.4, "%d/%d short sentences", short, len(sentences))
	}
	return 0
}

// tableVocabulary are words that usually appear in benefits or schedule
// tables; their presence without any pipe delimiter suggests the table
// structure was lost during extraction.
var tableVocabulary = []string{"condition", "additional", "topical", "fluoride", "cleaning", "benefit"}

func checkMissingTableStructure(text string, issues *[]types.QualityIssue) float64 {
	lower := strings.ToLower(text)
	hits := 0
	for _, w := range tableVocabulary {
		if strings.Contains(lower, w) {
			hits++
		}
	}
	if hits >= 3 && !strings.Contains(text, "|") {
		return addIssue(issues, "missing_table_structure", 0.6, "%d table indicators, no delimiters", hits)
	}
	return 0
}

func checkWordLength(text string, issues *[]types.QualityIssue) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}
	total := 0
	for _, w := range words {
		total += len(w)
	}
	avg := float64(total) / float64(len(words))
	if avg < 2.5 {
		return addIssue(issues, "short_words", 0.5, "average word length %.1f", avg)
	}
	return 0
}

var sentenceBreak = regexp.MustCompile(`[.!?]\n`)

func checkContentDensity(text string, issues *[]types.QualityIssue) float64 {
	sentences := sentenceBreak.Split(text, -1)
	if len(sentences) <= 2 {
		return 0
	}
	total := 0
	for _, s := range sentences {
		total += len(strings.Fields(s))
	}
	avg := float64(total) / float64(len(sentences))
	if avg < 5 {
		return addIssue(issues, "sparse_sentences", 0.3, "average sentence length %.1f", avg)
	}
	return 0
}

// checkSymbols flags checkmark glyphs, which table reconstruction cannot
// place without their original grid position.
func checkSymbols(text string, issues *[]types.QualityIssue) float64 {
	marks := strings.Count(text, "✓") + strings.Count(text, "✔") + strings.Count(text, "√")
	if marks > 0 {
		return addIssue(issues, "checkmark_symbols", 0.7, "%d checkmark glyphs", marks)
	}
	return 0
}

func checkContentSparsity(text string, cfg types.QualityConfig, issues *[]types.QualityIssue) float64 {
	substantial := 0
	for _, line := range strings.Split(text, "\n") {
		if len(strings.TrimSpace(line)) > 20 {
			substantial++
		}
	}
	if substantial < cfg.MinSubstantialLines {
		return addIssue(issues, "content_sparsity", 0.4, "%d substantial lines", substantial)
	}
	return 0
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
