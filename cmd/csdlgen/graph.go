package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/csdlgen/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [graph]",
	Short: "Export a class diagram of the rendered types",
	Long: `Outputs a Mermaid class diagram of the types that end up in the document: EntityTypes,
ComplexTypes and EnumTypes with containment, reference and inheritance edges.`,
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

		res := a.emitter(nil, nil).Render(prog)

		var overlay *graph.Overlay
		if highlight, _ := cmd.Flags().GetStringSlice("highlight"); len(highlight) > 0 {
			overlay = &graph.Overlay{Highlight: highlight}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(res.Namespaces, res.Annotations, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringSlice("highlight", nil, "Qualified type ids to highlight, e.g. Zoo.Pet")
}
