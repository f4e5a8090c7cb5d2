// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docstruct/internal/extractor"
	"github.com/pdiddy/docstruct/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [files...]",
	Short: "Extract raw text from source documents",
	Long: `Extract produces raw text from source documents into docs-dir/raw/,
ready for formatting. The plain backend copies text files through; the
markitdown backend pipes documents through a container for PDF and
office formats. Existing raw text files are skipped.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("backend", "plain", "extraction backend: plain or markitdown")
	extractCmd.Flags().String("docs-dir", "", "base directory for documents")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more source documents")
	}

	backend, _ := cmd.Flags().GetString("backend")
	cfg := types.ExtractionConfig{
		Backend: types.ExtractionBackend(backend),
		DocsDir: docsDirFlag(cmd),
	}

	e, err := extractor.New(cfg)
	if err != nil {
		return err
	}

	result := extractor.ExtractBatch(e, args, cfg.DocsDir, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d document(s) failed extraction", result.Failed)
	}
	return nil
}
