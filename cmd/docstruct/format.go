// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docstruct/internal/structure"
	"github.com/pdiddy/docstruct/pkg/types"
)

var formatCmd = &cobra.Command{
	Use:   "format [files...]",
	Short: "Structure raw text files into Markdown and tagged blocks",
	Long: `Format repairs OCR artifacts, classifies each line by structural role,
and emits Markdown plus a bracket-tagged structured-text file per document.
Markdown goes to docs-dir/markdown/, structured text to docs-dir/structured/.
Documents with existing Markdown output are skipped.

With --batch, all .txt files under docs-dir/raw/ are processed. With
--stdin, text is read from standard input and the result printed to
standard output. Otherwise pass explicit raw text files as arguments.`,
	RunE: runFormat,
}

func init() {
	formatCmd.Flags().String("docs-dir", "", "base directory for documents (contains raw/, markdown/, structured/)")
	formatCmd.Flags().Bool("batch", false, "process all raw text files in docs-dir/raw/")
	formatCmd.Flags().Bool("stdin", false, "read raw text from stdin and print the result")
	formatCmd.Flags().Bool("structured", false, "with --stdin, print structured text instead of Markdown")
	formatCmd.Flags().Int("header-max-len", 0, "maximum line length considered for headers (default 80)")
	formatCmd.Flags().Int("indent-unit", 0, "spaces per list nesting level (default 2)")
	formatCmd.Flags().Int("table-lookback", 0, "field-count tolerance for table continuation rows (default 1)")

	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	batch, _ := cmd.Flags().GetBool("batch")
	stdin, _ := cmd.Flags().GetBool("stdin")
	if !batch && !stdin && len(args) == 0 {
		return fmt.Errorf("provide raw text files, --batch, or --stdin")
	}

	docsDir := docsDirFlag(cmd)
	cfg := pipelineConfig(cmd)

	if stdin {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		doc := structure.Format(string(raw), cfg.Format)
		structured, _ := cmd.Flags().GetBool("structured")
		if structured {
			fmt.Println(doc.StructuredText)
		} else {
			fmt.Println(doc.Markdown)
		}
		return nil
	}

	var result structure.BatchResult
	if batch {
		var err error
		result, err = structure.FormatBatch(docsDir, cfg, os.Stdout)
		if err != nil {
			return err
		}
	} else {
		result = structure.FormatPaths(args, docsDir, cfg, os.Stdout)
	}

	if result.HasFailures() {
		return fmt.Errorf("%d document(s) failed formatting", result.Failed)
	}
	return nil
}

func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	headerMaxLen, _ := cmd.Flags().GetInt("header-max-len")
	indentUnit, _ := cmd.Flags().GetInt("indent-unit")
	tableLookback, _ := cmd.Flags().GetInt("table-lookback")

	return types.PipelineConfig{
		Format: types.FormatConfig{
			HeaderMaxLen:  headerMaxLen,
			IndentUnit:    indentUnit,
			TableLookback: tableLookback,
		}.WithDefaults(),
		Quality: types.QualityConfig{}.WithDefaults(),
	}
}
