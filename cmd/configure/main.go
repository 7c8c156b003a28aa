package main

import (
	"fmt"
	"os"

	"github.com/legalia/intake-api/cmd/configure/commands"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "intake-configure",
		Short: "Configuration tool for the legal intake API",
		Long:  "CLI tool for inspecting the knowledge base, rate limit presets and classifier settings",
	}

	rootCmd.AddCommand(commands.NewKBCmd())
	rootCmd.AddCommand(commands.NewRatelimitCmd())
	rootCmd.AddCommand(commands.NewClassifierCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
