package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/legalia/intake-api/internal/config"
	"github.com/legalia/intake-api/internal/ratelimit"
	"github.com/spf13/cobra"
)

// NewRatelimitCmd creates the ratelimit command with a list subcommand.
func NewRatelimitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ratelimit",
		Short: "Inspect rate limit presets",
		Long:  "Show the built-in rate limit presets and the effective configured values",
	}
	cmd.AddCommand(newRatelimitListCmd())
	return cmd
}

func newRatelimitListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rate limit presets and effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			standard := ratelimit.NewStandard()
			strict := ratelimit.NewStrict()

			fmt.Println("Built-in presets:")
			fmt.Printf("  standard: %d requests per %s\n", standard.Limit(), standard.Window())
			fmt.Printf("  strict:   %d requests per %s\n", strict.Limit(), strict.Window())

			_ = godotenv.Load()
			cfg, err := config.Load()
			if err != nil {
				fmt.Println("\nEffective configuration unavailable:", err)
				return nil
			}

			fmt.Println("\nEffective configuration:")
			fmt.Printf("  standard: %d requests per %s\n", cfg.RateLimitRequests, cfg.RateLimitWindow)
			fmt.Printf("  strict:   %d requests per %s\n", cfg.StrictRateLimitRequests, cfg.StrictRateLimitWindow)
			return nil
		},
	}
}
