package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hwidmann/taskcanvas/pkg/schema"
)

// validateCommand creates the validate command checking a configuration
// against the problem-set schema without building anything.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config.json]",
		Short: "Validate a problem-set configuration",
		Long: `Validate a problem-set configuration.

The validator runs a single pass over the full configuration and reports
every violation with its path, so all problems can be fixed in one round.
A valid configuration exits with status 0.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(args[0])
			if err != nil {
				return err
			}

			violations := schema.Validate(cfg)
			if len(violations) == 0 {
				printSuccess("%s is valid", args[0])
				return nil
			}

			printError("%s has %d violation(s)", args[0], len(violations))
			printViolations(violations)
			return fmt.Errorf("%d schema violations", len(violations))
		},
	}
}

// printViolations prints each violation with its path and expected shape.
func printViolations(violations []schema.ValidationError) {
	for _, v := range violations {
		printDetail("%s: %s", StyleHighlight.Render(v.Path), v.Message)
		if v.Expected != "" {
			printDetail("  expected %s", v.Expected)
		}
	}
}
