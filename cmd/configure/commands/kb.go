package commands

import (
	"fmt"

	"github.com/legalia/intake-api/internal/knowledge"
	"github.com/legalia/intake-api/internal/models"
	"github.com/legalia/intake-api/internal/validation"
	"github.com/spf13/cobra"
)

// NewKBCmd creates the knowledge base command with validate and stats subcommands.
func NewKBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kb",
		Short: "Inspect the curated knowledge base",
		Long:  "Validate or summarize the curated knowledge base (embedded dataset or a YAML file)",
	}
	cmd.AddCommand(newKBValidateCmd())
	cmd.AddCommand(newKBStatsCmd())
	return cmd
}

func newKBValidateCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a knowledge base file",
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := knowledge.Load(path)
			if err != nil {
				return fmt.Errorf("knowledge base is invalid: %w", err)
			}

			source := "embedded dataset"
			if path != "" {
				source = path
			}
			fmt.Printf("✓ Knowledge base is valid (%s)\n", source)
			fmt.Printf("  Version: %d\n", kb.Version())
			fmt.Printf("  Entries: %d\n", kb.Size())
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Path to a knowledge base YAML file (default: embedded dataset)")
	return cmd
}

func newKBStatsCmd() *cobra.Command {
	var path string
	var category string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-category knowledge base statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories := models.Categories
			if category != "" {
				if err := validation.ValidateLegalCategory(category); err != nil {
					return err
				}
				categories = []models.LegalCategory{models.LegalCategory(category)}
			}

			kb, err := knowledge.Load(path)
			if err != nil {
				return fmt.Errorf("load knowledge base: %w", err)
			}

			fmt.Printf("Knowledge base version %d, %d entries\n\n", kb.Version(), kb.Size())
			for _, category := range categories {
				fmt.Printf("  %-15s %d entries\n", category, kb.CountFor(category))
				for _, entry := range kb.EntriesFor(category) {
					fmt.Printf("    - %s (%d keywords)\n", entry.ID, len(entry.Keywords))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Path to a knowledge base YAML file (default: embedded dataset)")
	cmd.Flags().StringVar(&category, "category", "", "Restrict output to one category")
	return cmd
}
