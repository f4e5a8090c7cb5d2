// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/pdiddy/docstruct/internal/structure"
	"github.com/pdiddy/docstruct/pkg/types"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Preview line classification for a raw text file",
	Long: `Inspect shows how each line of a raw text file would be classified
before formatting: the repaired text alongside its structural role and
level. Useful for tuning header length or indent settings on documents
that misclassify.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().Int("width", 60, "preview column width")
	inspectCmd.Flags().Int("header-max-len", 0, "maximum line length considered for headers (default 80)")
	inspectCmd.Flags().Int("indent-unit", 0, "spaces per list nesting level (default 2)")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	width, _ := cmd.Flags().GetInt("width")
	if width < 10 {
		width = 10
	}
	headerMaxLen, _ := cmd.Flags().GetInt("header-max-len")
	indentUnit, _ := cmd.Flags().GetInt("indent-unit")

	cfg := types.FormatConfig{
		HeaderMaxLen: headerMaxLen,
		IndentUnit:   indentUnit,
	}.WithDefaults()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	lines := structure.ClassifyAll(string(data), cfg)

	fmt.Printf("%4s  %-*s  %-10s  %s\n", "Line", width, "Text", "Role", "Level")
	fmt.Println(strings.Repeat("-", width+26))

	for i, line := range lines {
		text := line.Text
		if line.Role == types.RoleBlank {
			text = ""
		}
		fmt.Printf("%4d  %-*s  %-10s  %d\n",
			i+1, width, truncateDisplay(text, width), line.Role, line.Level)
	}
	return nil
}

// truncateDisplay trims text to a display width, counting wide runes as
// two columns so CJK content stays aligned.
func truncateDisplay(text string, width int) string {
	if runewidth.StringWidth(text) <= width {
		return text
	}
	return runewidth.Truncate(text, width, "...")
}
