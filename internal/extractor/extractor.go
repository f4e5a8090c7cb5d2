// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extractor produces raw text from source documents. It is the
// collaborator boundary in front of the structuring pipeline: backends
// here may shell out to conversion tooling, but the pipeline itself only
// ever sees their text output.
package extractor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/docstruct/pkg/types"
)

// rawDir is the subdirectory under the documents base for raw text.
const rawDir = "raw"

// Extractor turns one source document into raw text. Backends (plain
// text passthrough, markitdown container) implement this interface.
type Extractor interface {
	// Extract reads the document at srcPath and returns its text.
	Extract(srcPath string) (string, error)
}

// PlainExtractor reads already-extracted text files verbatim.
type PlainExtractor struct{}

// Extract returns the file contents as text.
func (PlainExtractor) Extract(srcPath string) (string, error) {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", srcPath, err)
	}
	return string(data), nil
}

// New returns the extractor selected by the config. The markitdown
// backend requires a working container runtime and fails fast when none
// is available.
func New(cfg types.ExtractionConfig) (Extractor, error) {
	switch cfg.Backend {
	case types.BackendPlain, "":
		return PlainExtractor{}, nil
	case types.BackendMarkitdown:
		rt, err := DetectRuntime()
		if err != nil {
			return nil, err
		}
		return NewMarkitdownExtractor(rt)
	default:
		return nil, fmt.Errorf("unknown extraction backend %q: use plain or markitdown", cfg.Backend)
	}
}

// BatchResult holds the outcome of a batch extraction run.
type BatchResult struct {
	Extracted int
	Skipped   int
	Failed    int
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Extracted + r.Skipped + r.Failed
}

// HasFailures reports whether any documents failed extraction.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ExtractFile runs one document through the extractor and writes the raw
// text to docsDir/raw/<base>.txt. Existing output is not overwritten.
func ExtractFile(e Extractor, srcPath, docsDir string, w io.Writer) error {
	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	outDir := filepath.Join(docsDir, rawDir)
	outPath := filepath.Join(outDir, base+".txt")

	if _, err := os.Stat(outPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
		return nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating raw directory: %w", err)
	}

	text, err := e.Extract(srcPath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	fmt.Fprintf(w, "extracted: %s (%d chars)\n", base, len(text))
	return nil
}

// ExtractBatch runs a list of source documents through the extractor,
// printing per-file status to w and returning a summary.
func ExtractBatch(e Extractor, srcPaths []string, docsDir string, w io.Writer) BatchResult {
	var result BatchResult
	for _, src := range srcPaths {
		base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		outPath := filepath.Join(docsDir, rawDir, base+".txt")
		if _, err := os.Stat(outPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
			result.Skipped++
			continue
		}
		if err := ExtractFile(e, src, docsDir, w); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
			result.Failed++
			continue
		}
		result.Extracted++
	}
	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d skipped, %d failed (total: %d)\n",
		result.Extracted, result.Skipped, result.Failed, result.Total())
	return result
}
