package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/csdlgen/internal/presentation/tui"
)

var rootCmd = &cobra.Command{
	Use:   "csdlgen",
	Short: "csdlgen renders type graphs as OData CSDL metadata",
	Long: `csdlgen turns a resolved type graph (YAML or JSON) into an OData v4 CSDL XML document.
Models with a key property become EntityTypes, the rest ComplexTypes; enums become EnumTypes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		tui.PrintBanner(cmd.OutOrStdout(), outputProfile(cmd))
		_ = cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default: csdlgen.yaml in the current or a parent directory)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.StringP("output", "o", "", "Output directory of the file store")
	flags.StringSlice("exclude", nil, "Namespace prefixes to leave out (default: Cadl)")
	flags.Bool("entity-container", false, "Emit the EntityContainer placeholder")
	flags.String("store", "", "Document store: file, memory or redis")
}
