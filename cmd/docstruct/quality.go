// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docstruct/internal/analyze"
	"github.com/pdiddy/docstruct/internal/quality"
	"github.com/pdiddy/docstruct/pkg/types"
)

var qualityCmd = &cobra.Command{
	Use:   "quality [files...]",
	Short: "Score extraction corruption in raw text files",
	Long: `Quality runs a battery of corruption heuristics over raw text:
spaced-out characters, reversed words, encoding noise, financial value
corruption, flattened tables, and more. Each finding contributes a
weighted amount to the score; text crossing the threshold is flagged
corrupted. The report also includes the detected document type and
table complexity.`,
	RunE: runQuality,
}

func init() {
	qualityCmd.Flags().Float64("threshold", 0, "corruption score threshold (default 0.10)")
	qualityCmd.Flags().Bool("json", false, "output reports as JSON")

	rootCmd.AddCommand(qualityCmd)
}

// fileReport is the per-file quality output.
type fileReport struct {
	File            string              `json:"file"`
	DocType         types.DocType       `json:"doc_type"`
	TableComplexity string              `json:"table_complexity"`
	Report          types.QualityReport `json:"report"`
}

func runQuality(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more raw text files")
	}

	threshold, _ := cmd.Flags().GetFloat64("threshold")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg := types.QualityConfig{CorruptionThreshold: threshold}.WithDefaults()

	var reports []fileReport
	corrupted := 0

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		text := string(data)

		report := quality.Assess(text, cfg)
		docType, _ := analyze.DetectType(text)

		reports = append(reports, fileReport{
			File:            filepath.Base(path),
			DocType:         docType,
			TableComplexity: analyze.TableComplexity(text).String(),
			Report:          report,
		})
		if report.Corrupted {
			corrupted++
		}
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	} else {
		for _, r := range reports {
			status := "clean"
			if r.Report.Corrupted {
				status = "CORRUPTED"
			}
			fmt.Printf("%s: %s (score %.2f, type %s, tables %s)\n",
				r.File, status, r.Report.Score, r.DocType, r.TableComplexity)
			for _, issue := range r.Report.Issues {
				fmt.Printf("  %-24s %.2f  %s\n", issue.Check, issue.Weight, issue.Detail)
			}
		}
	}

	if corrupted > 0 {
		return fmt.Errorf("%d file(s) flagged corrupted", corrupted)
	}
	return nil
}
