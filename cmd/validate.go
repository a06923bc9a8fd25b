package cmd

import (
	"fmt"
	"os"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/pontifex/internal/config"
	"github.com/arcanaland/pontifex/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a key deck file",
	Long: `Validate checks that a key deck file holds each card of its declared
dimensions exactly once, with one red and one black joker. The argument may be
a path or the name of a deck in your deck library.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		deckPath := args[0]

		if _, err := os.Stat(deckPath); os.IsNotExist(err) {
			resolved, err := config.GetDeckPath(deckPath)
			if err != nil {
				return fmt.Errorf("key deck not found: %s", deckPath)
			}
			deckPath = resolved
		}

		// Create validator and run validation
		v := validator.NewValidator(deckPath)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if len(results.Errors) == 0 {
			fmt.Fprintf(out, "%s Key deck '%s' is valid.\n", colorize.GreenString("✅"), deckPath)
		} else {
			fmt.Fprintf(out, "%s Key deck '%s' has %d validation errors:\n",
				colorize.RedString("❌"), deckPath, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, err)
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, "\n"+colorize.YellowString("Warnings:"))
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, warn)
			}
		}

		if len(results.Errors) > 0 {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)
}
