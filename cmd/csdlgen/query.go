package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/csdlgen/pkg/query"
)

var queryCmd = &cobra.Command{
	Use:   "query <xpath> [graph]",
	Short: "Run an XPath expression against the rendered document",
	Long: `Renders the graph in memory and prints every node matching the XPath expression.
Prefixed edmx elements need local-name(), e.g. //*[local-name()='DataServices'].
With --stored the expression runs against the document saved in the configured store.`,
	Example: `  csdlgen query "//EntityType/@Name"
  csdlgen query --count "//NavigationProperty[@ContainsTarget='true']"`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		expr := args[0]
		if err := query.Compile(expr); err != nil {
			return err
		}

		a, err := loadApp(cmd, args[1:])
		if err != nil {
			return err
		}

		data, err := queryTarget(cmd, a)
		if err != nil {
			return err
		}
		doc, err := query.Parse(data)
		if err != nil {
			return err
		}

		nodes, err := doc.All(expr)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if count, _ := cmd.Flags().GetBool("count"); count {
			fmt.Fprintln(out, len(nodes))
			return nil
		}
		asXML, _ := cmd.Flags().GetBool("xml")
		for _, n := range nodes {
			if asXML {
				fmt.Fprintln(out, n.XML())
			} else {
				fmt.Fprintln(out, n.String())
			}
		}
		return nil
	},
}

func queryTarget(cmd *cobra.Command, a *app) ([]byte, error) {
	if stored, _ := cmd.Flags().GetBool("stored"); stored {
		store, closeStore, err := a.store()
		if err != nil {
			return nil, err
		}
		defer closeStore()
		return store.Load(cmd.Context(), a.cfg.Filename)
	}

	prog, err := a.program(cmd.Context())
	if err != nil {
		return nil, err
	}
	return a.emitter(nil, nil).Render(prog).Document, nil
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().Bool("count", false, "Print the number of matches only")
	queryCmd.Flags().Bool("xml", false, "Print matching elements as XML")
	queryCmd.Flags().Bool("stored", false, "Query the saved document instead of rendering")
}
