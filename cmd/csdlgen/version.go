package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/csdlgen"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of csdlgen",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "csdlgen version %s\n", csdlgen.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
