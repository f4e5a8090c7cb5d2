// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docstruct/internal/archive"
	"github.com/pdiddy/docstruct/pkg/types"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage the document archive (store, retrieve, export)",
	Long: `Archive manages a local SQLite index built from formatted documents.
Use subcommands to ingest structured-text output, query blocks by
full-text search or structural filters, or export the index.`,
}

// --- store subcommand ---

var archiveStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Ingest formatted documents into the archive",
	Long: `Store reads structured-text files from docs-dir/structured/, parses
their tagged blocks, and ingests them into a SQLite database with FTS5
indexing. Document metadata comes from the matching Markdown
frontmatter. Unchanged documents are skipped on subsequent runs.`,
	RunE: runArchiveStore,
}

func runArchiveStore(cmd *cobra.Command, args []string) error {
	store, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d document(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- retrieve subcommand ---

var archiveRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Query archived blocks with full-text search and filters",
	Long: `Retrieve searches archived blocks using FTS5 full-text search,
structural filters (role, document type, document), or a combination.
Results carry the document title, type, and quality score.

Use --info with a document ID to show its stored metadata instead.`,
	RunE: runArchiveRetrieve,
}

func runArchiveRetrieve(cmd *cobra.Command, args []string) error {
	infoID, _ := cmd.Flags().GetString("info")

	store, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if infoID != "" {
		meta, title, err := store.Document(context.Background(), infoID)
		if err != nil {
			return err
		}
		fmt.Printf("id:            %s\n", meta.ID)
		fmt.Printf("title:         %s\n", title)
		fmt.Printf("doc_type:      %s\n", meta.DocType)
		fmt.Printf("quality_score: %.2f\n", meta.QualityScore)
		fmt.Printf("source_path:   %s\n", meta.SourcePath)
		if !meta.FormattedAt.IsZero() {
			fmt.Printf("formatted_at:  %s\n", meta.FormattedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	}

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --role, --doc-type, or --doc")
	}

	results, err := store.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRetrieveOutput(results, jsonOutput)
}

func formatRetrieveOutput(results []archive.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-10s  %-50s  %-20s  %s\n",
		"Rank", "Role", "Content", "Document", "Pos")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 96))

	for i, r := range results {
		content := strings.ReplaceAll(r.Content, "\n", " ")
		if len(content) > 50 {
			content = content[:47] + "..."
		}
		doc := r.DocID
		if len(doc) > 20 {
			doc = doc[:17] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-10s  %-50s  %-20s  %d\n",
			i+1, r.Role, content, doc, r.Position)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var archiveExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the archive to YAML or JSON",
	Long: `Export writes the full archive (or a filtered subset) to
archive/index/export.yaml or export.json. Supports the same filter
flags as retrieve for partial exports.`,
	RunE: runArchiveExport,
}

func runArchiveExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to archive/index/export.yaml")
	case "json":
		if err := store.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to archive/index/export.json")
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func openArchive(cmd *cobra.Command) (*archive.Store, error) {
	archiveDir, _ := cmd.Flags().GetString("archive-dir")
	if archiveDir == "" {
		archiveDir = viper.GetString("archive_dir")
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	cfg := types.ArchiveConfig{
		ArchiveDir: archiveDir,
		MaxResults: maxResults,
	}
	return archive.NewStore(cfg, docsDirFlag(cmd))
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) archive.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	role, _ := cmd.Flags().GetString("role")
	docType, _ := cmd.Flags().GetString("doc-type")
	docID, _ := cmd.Flags().GetString("doc")
	limit, _ := cmd.Flags().GetInt("limit")

	return archive.QueryOptions{
		Query:      queryText,
		Role:       types.Role(role),
		DocType:    types.DocType(docType),
		DocID:      docID,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	archiveCmd.PersistentFlags().String("archive-dir", "", "base directory for the archive (contains index/)")
	archiveCmd.PersistentFlags().String("docs-dir", "", "base directory for documents (contains markdown/, structured/)")
	archiveCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// Retrieve flags.
	archiveRetrieveCmd.Flags().String("query", "", "full-text search query")
	archiveRetrieveCmd.Flags().String("role", "", "filter by block role: header, table_row, list_item, body")
	archiveRetrieveCmd.Flags().String("doc-type", "", "filter by document type: invoice, financial, insurance, legal, medical, technical, report, general")
	archiveRetrieveCmd.Flags().String("doc", "", "filter by document ID")
	archiveRetrieveCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	archiveRetrieveCmd.Flags().String("info", "", "show stored metadata for a document ID")
	archiveRetrieveCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	archiveExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	archiveExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	archiveExportCmd.Flags().String("role", "", "filter by block role for partial export")
	archiveExportCmd.Flags().String("doc-type", "", "filter by document type for partial export")
	archiveExportCmd.Flags().String("doc", "", "filter by document ID for partial export")
	archiveExportCmd.Flags().Int("limit", 0, "maximum blocks to export (0 = all)")

	// Wire subcommands.
	archiveCmd.AddCommand(archiveStoreCmd)
	archiveCmd.AddCommand(archiveRetrieveCmd)
	archiveCmd.AddCommand(archiveExportCmd)

	rootCmd.AddCommand(archiveCmd)
}
