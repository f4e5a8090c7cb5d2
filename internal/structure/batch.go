// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package structure

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/docstruct/internal/analyze"
	"github.com/pdiddy/docstruct/internal/quality"
	"github.com/pdiddy/docstruct/pkg/types"
)

const (
	// rawDir is the subdirectory under the documents base for raw
	// extracted text.
	rawDir = "raw"
	// markdownDir is the subdirectory for Markdown output.
	markdownDir = "markdown"
	// structuredDir is the subdirectory for structured-text output.
	structuredDir = "structured"
)

// Status is the outcome of formatting one document.
type Status string

const (
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// BatchResult holds the outcome of a batch formatting run.
type BatchResult struct {
	Formatted int
	Skipped   int
	Failed    int
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Formatted + r.Skipped + r.Failed
}

// HasFailures reports whether any documents failed formatting.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// FormatFile structures a single raw text file, writing Markdown with
// frontmatter to docsDir/markdown/ and structured text to
// docsDir/structured/. If the Markdown output already exists it skips
// the document.
func FormatFile(rawPath, docsDir string, cfg types.PipelineConfig, w io.Writer) Status {
	base := strings.TrimSuffix(filepath.Base(rawPath), filepath.Ext(rawPath))
	mdPath := filepath.Join(docsDir, markdownDir, base+".md")
	structPath := filepath.Join(docsDir, structuredDir, base+".txt")

	if _, err := os.Stat(mdPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
		return StatusSkipped
	}

	raw, err := os.ReadFile(rawPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	for _, dir := range []string{filepath.Dir(mdPath), filepath.Dir(structPath)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
			return StatusFailed
		}
	}

	text := string(raw)
	report := quality.Assess(text, cfg.Quality)
	docType, _ := analyze.DetectType(text)
	doc := Format(text, cfg.Format)

	meta := types.DocumentMeta{
		ID:           base,
		SourcePath:   rawPath,
		DocType:      docType,
		QualityScore: report.Score,
		FormattedAt:  time.Now().UTC(),
	}

	if err := os.WriteFile(mdPath, []byte(addFrontmatter(meta, doc.Markdown)), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}
	if err := os.WriteFile(structPath, []byte(doc.StructuredText+"\n"), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	fmt.Fprintf(w, "formatted: %s (type=%s score=%.2f)\n", base, docType, report.Score)
	return StatusDone
}

// FormatBatch processes every raw text file under docsDir/raw/, printing
// per-file status to w and returning a summary.
func FormatBatch(docsDir string, cfg types.PipelineConfig, w io.Writer) (BatchResult, error) {
	srcDir := filepath.Join(docsDir, rawDir)
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return BatchResult{}, fmt.Errorf("reading raw directory %s: %w", srcDir, err)
	}

	var result BatchResult
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		switch FormatFile(filepath.Join(srcDir, entry.Name()), docsDir, cfg, w) {
		case StatusDone:
			result.Formatted++
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d formatted, %d skipped, %d failed (total: %d)\n",
		result.Formatted, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// FormatPaths formats an explicit list of raw text files into docsDir.
func FormatPaths(paths []string, docsDir string, cfg types.PipelineConfig, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range paths {
		switch FormatFile(p, docsDir, cfg, w) {
		case StatusDone:
			result.Formatted++
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d formatted, %d skipped, %d failed (total: %d)\n",
		result.Formatted, result.Skipped, result.Failed, result.Total())
	return result
}

// addFrontmatter prepends YAML frontmatter to the formatted Markdown.
func addFrontmatter(meta types.DocumentMeta, body string) string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "doc_id: %q\n", meta.ID)
	fmt.Fprintf(&b, "source_path: %q\n", meta.SourcePath)
	fmt.Fprintf(&b, "doc_type: %q\n", meta.DocType)
	fmt.Fprintf(&b, "quality_score: %.2f\n", meta.QualityScore)
	fmt.Fprintf(&b, "formatted_at: %q\n", meta.FormattedAt.Format(time.RFC3339))
	b.WriteString("---\n\n")
	b.WriteString(body)
	b.WriteString("\n")
	return b.String()
}
