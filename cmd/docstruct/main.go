// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docstruct CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the docstruct CLI.
var rootCmd = &cobra.Command{
	Use:   "docstruct",
	Short: "Structure OCR-extracted text into Markdown and tagged blocks",
	Long: `docstruct converts raw OCR-extracted text into clean Markdown and a
tagged structured-text representation. Classification is rule-based: no
models, no network calls, deterministic output.

Each pipeline stage is a subcommand: extract produces raw text from
source documents, format structures it, quality scores extraction
corruption, inspect previews line classification, and archive indexes
formatted documents for retrieval.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docstruct.yaml or ~/.config/docstruct/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docstruct")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docstruct"))
		}
	}

	viper.SetDefault("docs_dir", "documents")
	viper.SetDefault("archive_dir", "archive")

	viper.SetEnvPrefix("DOCSTRUCT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// docsDirFlag resolves the documents base directory: explicit flag,
// then config, then "documents".
func docsDirFlag(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("docs-dir"); dir != "" {
		return dir
	}
	return viper.GetString("docs_dir")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
