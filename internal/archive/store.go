// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive persists formatted documents and builds a retrieval
// index over their blocks.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docstruct/internal/structure"
	"github.com/pdiddy/docstruct/pkg/types"
)

const (
	structuredDir = "structured"
	markdownDir   = "markdown"
	indexDir      = "index"
	dbFile        = "docstruct.db"
)

// Store manages the document archive SQLite database.
type Store struct {
	db         *sql.DB
	archiveDir string
	docsDir    string
	maxResults int
}

// NewStore opens or creates the archive database at
// archiveDir/index/docstruct.db, creating the schema if it does not
// exist.
func NewStore(cfg types.ArchiveConfig, docsDir string) (*Store, error) {
	dbDir := filepath.Join(cfg.ArchiveDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		archiveDir: cfg.ArchiveDir,
		docsDir:    docsDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			title TEXT,
			doc_type TEXT,
			quality_score REAL,
			source_path TEXT,
			formatted_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS blocks (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			doc_id TEXT NOT NULL REFERENCES documents(id),
			position INTEGER NOT NULL,
			role TEXT NOT NULL,
			level INTEGER,
			content TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_blocks_doc_id ON blocks(doc_id)`,
		`CREATE INDEX IF NOT EXISTS idx_blocks_role ON blocks(role)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			doc_id TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='blocks_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE blocks_fts USING fts5(content, content=blocks, content_rowid=rowid)`,
			`CREATE TRIGGER blocks_ai AFTER INSERT ON blocks BEGIN
				INSERT INTO blocks_fts(rowid, content) VALUES (new.rowid, new.content);
			END`,
			`CREATE TRIGGER blocks_ad AFTER DELETE ON blocks BEGIN
				INSERT INTO blocks_fts(blocks_fts, rowid, content) VALUES('delete', old.rowid, old.content);
			END`,
			`CREATE TRIGGER blocks_au AFTER UPDATE ON blocks BEGIN
				INSERT INTO blocks_fts(blocks_fts, rowid, content) VALUES('delete', old.rowid, old.content);
				INSERT INTO blocks_fts(rowid, content) VALUES (new.rowid, new.content);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from an archive indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of documents processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest reads structured-text files from docsDir/structured/ and
// populates the database. It detects new, changed, and unchanged files
// for incremental updates.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	structDir := filepath.Join(s.docsDir, structuredDir)

	entries, err := os.ReadDir(structDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading structured directory %s: %w", structDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		docID := strings.TrimSuffix(entry.Name(), ".txt")
		filePath := filepath.Join(structDir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		// Check whether the file has changed since last indexing.
		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE doc_id = ?`, docID,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", docID)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		data, err := os.ReadFile(filePath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}

		blocks, err := structure.ParseStructured(string(data))
		if err != nil {
			fmt.Fprintf(w, "failed  %s: parse error: %v\n", docID, err)
			summary.Failed++
			continue
		}

		meta := s.loadDocumentMeta(docID)

		if err := s.ingestDocument(ctx, docID, blocks, meta, modTime, isUpdate); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d blocks)\n", docID, len(blocks))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d blocks)\n", docID, len(blocks))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	return summary, nil
}

func (s *Store) ingestDocument(ctx context.Context, docID string, blocks []types.Block, meta *types.DocumentMeta, modTime string, isUpdate bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Remove old blocks if updating.
	if isUpdate {
		if _, err := tx.ExecContext(ctx, `DELETE FROM blocks WHERE doc_id = ?`, docID); err != nil {
			return fmt.Errorf("deleting old blocks: %w", err)
		}
	}

	title := documentTitle(blocks)

	if meta != nil {
		formattedAt := ""
		if !meta.FormattedAt.IsZero() {
			formattedAt = meta.FormattedAt.Format(time.RFC3339)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO documents (id, title, doc_type, quality_score, source_path, formatted_at)
			 VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
				title=excluded.title, doc_type=excluded.doc_type,
				quality_score=excluded.quality_score,
				source_path=excluded.source_path, formatted_at=excluded.formatted_at`,
			docID, title, string(meta.DocType), meta.QualityScore,
			meta.SourcePath, formattedAt,
		)
		if err != nil {
			return fmt.Errorf("upserting document: %w", err)
		}
	} else {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO documents (id, title) VALUES (?, ?)
			 ON CONFLICT(id) DO UPDATE SET title=excluded.title`,
			docID, title,
		)
		if err != nil {
			return fmt.Errorf("inserting document stub: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO blocks (doc_id, position, role, level, content)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, blk := range blocks {
		level := 0
		if len(blk.Lines) > 0 {
			level = blk.Lines[0].Level
		}
		_, err := stmt.ExecContext(ctx,
			docID, i, string(blk.Role), level, blockContent(blk),
		)
		if err != nil {
			return fmt.Errorf("inserting block %d: %w", i, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO indexing_status (doc_id, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(doc_id) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		docID, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}

	return tx.Commit()
}

// blockContent joins a block's line texts for indexing.
func blockContent(b types.Block) string {
	texts := make([]string, len(b.Lines))
	for i, line := range b.Lines {
		texts[i] = line.Text
	}
	return strings.Join(texts, "\n")
}

// documentTitle returns the text of the first level-1 header block, or
// the first header at any level when no title exists.
func documentTitle(blocks []types.Block) string {
	var fallback string
	for _, blk := range blocks {
		if blk.Role != types.RoleHeader || len(blk.Lines) == 0 {
			continue
		}
		if blk.Lines[0].Level == 1 {
			return strings.TrimSpace(blk.Lines[0].Text)
		}
		if fallback == "" {
			fallback = strings.TrimSpace(blk.Lines[0].Text)
		}
	}
	return fallback
}

// loadDocumentMeta reads frontmatter from docsDir/markdown/[docID].md.
// Returns nil if the file does not exist or carries no parseable
// frontmatter.
func (s *Store) loadDocumentMeta(docID string) *types.DocumentMeta {
	path := filepath.Join(s.docsDir, markdownDir, docID+".md")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	front, ok := splitFrontmatter(string(data))
	if !ok {
		return nil
	}
	// Frontmatter uses doc_id where DocumentMeta serializes id.
	var fm struct {
		DocID        string    `yaml:"doc_id"`
		SourcePath   string    `yaml:"source_path"`
		DocType      string    `yaml:"doc_type"`
		QualityScore float64   `yaml:"quality_score"`
		FormattedAt  time.Time `yaml:"formatted_at"`
	}
	if err := yaml.Unmarshal([]byte(front), &fm); err != nil {
		return nil
	}
	return &types.DocumentMeta{
		ID:           fm.DocID,
		SourcePath:   fm.SourcePath,
		DocType:      types.DocType(fm.DocType),
		QualityScore: fm.QualityScore,
		FormattedAt:  fm.FormattedAt,
	}
}

// splitFrontmatter returns the YAML between the leading "---" fence
// pair of a Markdown document.
func splitFrontmatter(content string) (string, bool) {
	if !strings.HasPrefix(content, "---\n") {
		return "", false
	}
	rest := content[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}
