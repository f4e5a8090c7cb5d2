// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// FormatMode selects the structuring strategy. Only the local heuristic
// mode exists; the field is kept so upstream configs that name a mode
// remain loadable.
type FormatMode string

const (
	// ModeLocal is the heuristic, model-free structuring pipeline.
	ModeLocal FormatMode = "local"
)

// FormatConfig holds tunables for the content structuring pipeline.
type FormatConfig struct {
	// Mode selects the structuring strategy. Only "local" is valid.
	Mode FormatMode `json:"mode" yaml:"mode"`

	// HeaderMaxLen is the maximum character length for a line to be
	// considered a header candidate (default 80).
	HeaderMaxLen int `json:"header_max_len" yaml:"header_max_len"`

	// IndentUnit is the number of leading spaces that count as one list
	// nesting level (default 2).
	IndentUnit int `json:"indent_unit" yaml:"indent_unit"`

	// TableLookback is the tolerance, in cells, for absorbing a
	// separator-free line into an open table when its token count is
	// close to the established column count (default 1).
	TableLookback int `json:"table_lookback" yaml:"table_lookback"`

	// DPI is the render resolution passed through to upstream extraction
	// config (default 300). The structuring core does not use it.
	DPI int `json:"dpi" yaml:"dpi"`
}

// WithDefaults returns a copy of the config with zero-valued fields
// replaced by their defaults.
func (c FormatConfig) WithDefaults() FormatConfig {
	if c.Mode == "" {
		c.Mode = ModeLocal
	}
	if c.HeaderMaxLen <= 0 {
		c.HeaderMaxLen = 80
	}
	if c.IndentUnit <= 0 {
		c.IndentUnit = 2
	}
	if c.TableLookback <= 0 {
		c.TableLookback = 1
	}
	if c.DPI <= 0 {
		c.DPI = 300
	}
	return c
}

// QualityConfig holds thresholds for corruption analysis.
type QualityConfig struct {
	// CorruptionThreshold is the score at or above which text is reported
	// as corrupted (default 0.10).
	CorruptionThreshold float64 `json:"corruption_threshold" yaml:"corruption_threshold"`

	// MinTextLength is the minimum trimmed length for analysis to run at
	// all; shorter text is reported clean (default 10).
	MinTextLength int `json:"min_text_length" yaml:"min_text_length"`

	// MinSubstantialLines is the minimum count of lines longer than 20
	// characters before the sparsity check fires (default 2).
	MinSubstantialLines int `json:"min_substantial_lines" yaml:"min_substantial_lines"`

	// MinContentLength is the trimmed length below which text is flagged
	// corrupted regardless of score (default 100).
	MinContentLength int `json:"min_content_length" yaml:"min_content_length"`
}

// WithDefaults returns a copy of the config with zero-valued fields
// replaced by their defaults.
func (c QualityConfig) WithDefaults() QualityConfig {
	if c.CorruptionThreshold <= 0 {
		c.CorruptionThreshold = 0.10
	}
	if c.MinTextLength <= 0 {
		c.MinTextLength = 10
	}
	if c.MinSubstantialLines <= 0 {
		c.MinSubstantialLines = 2
	}
	if c.MinContentLength <= 0 {
		c.MinContentLength = 100
	}
	return c
}

// ExtractionBackend identifies the raw-text extraction collaborator.
type ExtractionBackend string

const (
	// BackendPlain reads already-extracted text files directly.
	BackendPlain ExtractionBackend = "plain"
	// BackendMarkitdown pipes source documents through the markitdown
	// container image.
	BackendMarkitdown ExtractionBackend = "markitdown"
)

// ExtractionConfig holds settings for the extraction collaborator that
// supplies raw text to the structuring pipeline.
type ExtractionConfig struct {
	// Backend selects the extraction tool: plain or markitdown.
	Backend ExtractionBackend `json:"backend" yaml:"backend"`

	// DocsDir is the base directory for documents (contains raw/,
	// markdown/, structured/).
	DocsDir string `json:"docs_dir" yaml:"docs_dir"`
}

// ArchiveConfig holds settings for the document archive.
type ArchiveConfig struct {
	// ArchiveDir is the base directory for the archive (contains index/).
	ArchiveDir string `json:"archive_dir" yaml:"archive_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Format     FormatConfig     `json:"format" yaml:"format"`
	Quality    QualityConfig    `json:"quality" yaml:"quality"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	Archive    ArchiveConfig    `json:"archive" yaml:"archive"`
}
