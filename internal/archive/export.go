// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ExportEntry holds one block with document metadata for export.
type ExportEntry struct {
	DocID    string          `json:"doc_id" yaml:"doc_id"`
	Position int             `json:"position" yaml:"position"`
	Role     string          `json:"role" yaml:"role"`
	Level    int             `json:"level" yaml:"level"`
	Content  string          `json:"content" yaml:"content"`
	Document *ExportDocument `json:"document,omitempty" yaml:"document,omitempty"`
}

// ExportDocument holds the document-level fields included in each
// export entry.
type ExportDocument struct {
	Title        string  `json:"title" yaml:"title"`
	DocType      string  `json:"doc_type" yaml:"doc_type"`
	QualityScore float64 `json:"quality_score" yaml:"quality_score"`
}

const exportLimit = 100000

// ExportYAML writes the archive to archiveDir/index/export.yaml. It
// supports the same filters as Retrieve.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) error {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.archiveDir, indexDir, "export.yaml")
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the archive to archiveDir/index/export.json. It
// supports the same filters as Retrieve.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) error {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.archiveDir, indexDir, "export.json")
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportEntries(ctx context.Context, opts QueryOptions) ([]ExportEntry, error) {
	opts.MaxResults = exportLimit
	results, err := s.Retrieve(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, len(results))
	for i, r := range results {
		entries[i] = ExportEntry{
			DocID:    r.DocID,
			Position: r.Position,
			Role:     string(r.Role),
			Level:    r.Level,
			Content:  r.Content,
		}
		if r.DocTitle != "" || r.DocType != "" {
			entries[i].Document = &ExportDocument{
				Title:        r.DocTitle,
				DocType:      string(r.DocType),
				QualityScore: r.QualityScore,
			}
		}
	}

	return entries, nil
}
