package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/csdlgen/internal/presentation/tui"
)

var validateCmd = &cobra.Command{
	Use:   "validate [graph]",
	Short: "Check the graph and its decorators",
	Long: `Applies the decorators of the graph without rendering and reports rejected declarations,
ambiguous keys, navigation properties that do not target models and similar findings.
Exits non-zero when any finding is an error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd, args)
		if err != nil {
			return err
		}
		prog, err := a.program(cmd.Context())
		if err != nil {
			return err
		}

		diags := a.emitter(nil, nil).Validate(prog)
		fmt.Fprint(cmd.OutOrStdout(), tui.FormatDiagnostics(diags, outputProfile(cmd)))

		if err := diags.Err(); err != nil {
			return fmt.Errorf("validation failed with %d finding(s)", len(diags))
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Graph is valid!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
