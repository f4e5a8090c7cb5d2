// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/docstruct/pkg/types"
)

// QueryOptions holds parameters for archive queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string.
	Query string

	// Role filters by block role (header, table_row, list_item, body).
	Role types.Role

	// DocType filters by detected document type.
	DocType types.DocType

	// DocID filters by document.
	DocID string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Role == "" && q.DocType == "" && q.DocID == ""
}

// QueryResult is one indexed block with its document metadata.
type QueryResult struct {
	DocID        string        `json:"doc_id" yaml:"doc_id"`
	Position     int           `json:"position" yaml:"position"`
	Role         types.Role    `json:"role" yaml:"role"`
	Level        int           `json:"level" yaml:"level"`
	Content      string        `json:"content" yaml:"content"`
	DocTitle     string        `json:"doc_title" yaml:"doc_title"`
	DocType      types.DocType `json:"doc_type" yaml:"doc_type"`
	QualityScore float64       `json:"quality_score" yaml:"quality_score"`
}

// Retrieve queries the archive with optional full-text search and
// structured filters. Results are ranked by relevance for full-text
// queries or sorted by doc_id and position otherwise.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT b.doc_id, b.position, b.role, b.level, b.content,
				d.title, d.doc_type, d.quality_score, blocks_fts.rank
			FROM blocks_fts
			JOIN blocks b ON b.rowid = blocks_fts.rowid
			LEFT JOIN documents d ON b.doc_id = d.id
			WHERE blocks_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT b.doc_id, b.position, b.role, b.level, b.content,
				d.title, d.doc_type, d.quality_score, 0 AS rank
			FROM blocks b
			LEFT JOIN documents d ON b.doc_id = d.id
			WHERE 1=1`)
	}

	if opts.Role != "" {
		qb.WriteString(` AND b.role = ?`)
		args = append(args, string(opts.Role))
	}

	if opts.DocType != "" {
		qb.WriteString(` AND d.doc_type = ?`)
		args = append(args, string(opts.DocType))
	}

	if opts.DocID != "" {
		qb.WriteString(` AND b.doc_id = ?`)
		args = append(args, opts.DocID)
	}

	if useFTS {
		qb.WriteString(` ORDER BY blocks_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY b.doc_id, b.position`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr       QueryResult
			role     string
			docTitle sql.NullString
			docType  sql.NullString
			score    sql.NullFloat64
			rank     float64
		)

		if err := rows.Scan(
			&qr.DocID, &qr.Position, &role, &qr.Level, &qr.Content,
			&docTitle, &docType, &score, &rank,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		qr.Role = types.Role(role)
		if docTitle.Valid {
			qr.DocTitle = docTitle.String
		}
		if docType.Valid {
			qr.DocType = types.DocType(docType.String)
		}
		if score.Valid {
			qr.QualityScore = score.Float64
		}

		results = append(results, qr)
	}

	return results, rows.Err()
}

// Document returns the metadata row for a single archived document.
func (s *Store) Document(ctx context.Context, docID string) (*types.DocumentMeta, string, error) {
	var (
		meta        types.DocumentMeta
		title       sql.NullString
		docType     sql.NullString
		score       sql.NullFloat64
		sourcePath  sql.NullString
		formattedAt sql.NullString
	)

	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, doc_type, quality_score, source_path, formatted_at
		 FROM documents WHERE id = ?`, docID,
	).Scan(&meta.ID, &title, &docType, &score, &sourcePath, &formattedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, "", fmt.Errorf("document %s not found", docID)
		}
		return nil, "", fmt.Errorf("looking up document: %w", err)
	}

	if docType.Valid {
		meta.DocType = types.DocType(docType.String)
	}
	if score.Valid {
		meta.QualityScore = score.Float64
	}
	if sourcePath.Valid {
		meta.SourcePath = sourcePath.String
	}
	if formattedAt.Valid && formattedAt.String != "" {
		if t, err := time.Parse(time.RFC3339, formattedAt.String); err == nil {
			meta.FormattedAt = t
		}
	}

	titleStr := ""
	if title.Valid {
		titleStr = title.String
	}
	return &meta, titleStr, nil
}
