// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the docstruct pipeline.
package types

import "time"

// Role is the structural classification of a single line of extracted text.
type Role string

const (
	RoleBlank    Role = "blank"
	RoleHeader   Role = "header"
	RoleTableRow Role = "table_row"
	RoleListItem Role = "list_item"
	RoleBody     Role = "body"
)

// Line is one classified line of repaired text. Level is meaningful only
// for header lines (heading depth 1-6) and list items (nesting depth,
// zero-based); it is zero for every other role.
type Line struct {
	Text  string `json:"text" yaml:"text"`
	Role  Role   `json:"role" yaml:"role"`
	Level int    `json:"level,omitempty" yaml:"level,omitempty"`
}

// Block is a maximal run of contiguous lines sharing one role. Blank lines
// terminate a block and are dropped; they never appear inside one.
type Block struct {
	Role  Role   `json:"role" yaml:"role"`
	Lines []Line `json:"lines" yaml:"lines"`
}

// FormattedDocument is the output of one structuring pass: standard
// Markdown plus the parallel tagged structured-text representation.
type FormattedDocument struct {
	Markdown       string `json:"markdown" yaml:"markdown"`
	StructuredText string `json:"structured_text" yaml:"structured_text"`
}

// DocType labels the detected document category, derived from first-page
// keyword frequency.
type DocType string

const (
	DocGeneral   DocType = "general"
	DocFinancial DocType = "financial"
	DocInsurance DocType = "insurance"
	DocLegal     DocType = "legal"
	DocMedical   DocType = "medical"
	DocTechnical DocType = "technical"
	DocInvoice   DocType = "invoice"
	DocReport    DocType = "report"
)

// QualityIssue is a single corruption finding with the weight it
// contributed to the overall score.
type QualityIssue struct {
	// Check names the detector that fired (e.g. "character_spacing").
	Check string `json:"check" yaml:"check"`

	// Detail is a short human-readable description with the measured value.
	Detail string `json:"detail" yaml:"detail"`

	// Weight is the score contribution of this finding.
	Weight float64 `json:"weight" yaml:"weight"`
}

// QualityReport summarizes corruption analysis of extracted text. Score is
// the sum of issue weights; Corrupted reports whether it crossed the
// configured threshold.
type QualityReport struct {
	Score     float64        `json:"score" yaml:"score"`
	Corrupted bool           `json:"corrupted" yaml:"corrupted"`
	Issues    []QualityIssue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// DocumentMeta is the frontmatter written ahead of formatted Markdown
// output, linking it back to its source.
type DocumentMeta struct {
	ID           string    `json:"id" yaml:"id"`
	SourcePath   string    `json:"source_path" yaml:"source_path"`
	DocType      DocType   `json:"doc_type" yaml:"doc_type"`
	QualityScore float64   `json:"quality_score" yaml:"quality_score"`
	FormattedAt  time.Time `json:"formatted_at" yaml:"formatted_at"`
}
