package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/legalia/intake-api/internal/config"
	"github.com/legalia/intake-api/internal/services/ai"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewClassifierCmd creates the classifier command with a test subcommand.
func NewClassifierCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classifier",
		Short: "Manage the question classifier",
		Long:  "Test the configured AI classifier against a sample question",
	}
	cmd.AddCommand(newClassifierTestCmd())
	return cmd
}

func newClassifierTestCmd() *cobra.Command {
	var question string

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Send a sample question to the configured classifier",
		RunE: func(cmd *cobra.Command, args []string) error {
			if question == "" {
				return fmt.Errorf("--question is required")
			}

			_ = godotenv.Load()
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			classifier, err := ai.NewOpenAIClassifierWithLogger(cfg.OpenAIKey, cfg.AIBaseURL, cfg.AIModel, zap.NewNop(), false)
			if err != nil {
				return fmt.Errorf("create classifier: %w", err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			fmt.Println("Classifying question...")
			classification, err := classifier.Classify(ctx, question)
			if err != nil {
				return fmt.Errorf("classification failed: %w", err)
			}

			fmt.Println("✓ Classifier responded")
			fmt.Printf("  Category:   %s\n", classification.Category)
			fmt.Printf("  Complexity: %s\n", classification.Complexity)
			fmt.Printf("  Confidence: %.2f\n", classification.Confidence)
			fmt.Printf("  Escalate:   %t\n", classification.NeedsProfessionalConsultation)
			if classification.BriefAnswer != "" {
				fmt.Printf("  Answer:     %s\n", classification.BriefAnswer)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&question, "question", "", "Question text to classify")
	return cmd
}
