package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/csdlgen/internal/classify"
	"github.com/aretw0/csdlgen/internal/flatten"
	"github.com/aretw0/csdlgen/internal/identity"
	"github.com/aretw0/csdlgen/pkg/annotation"
	"github.com/aretw0/csdlgen/pkg/odata"
	"github.com/aretw0/csdlgen/pkg/typegraph"
)

// inspectedNode is one annotated node of the graph.
type inspectedNode struct {
	ID          string             `json:"id"`
	Kind        string             `json:"kind"`
	Class       string             `json:"class,omitempty"`
	Annotations []annotation.Entry `json:"annotations"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [graph]",
	Short: "List the annotations bound to each node",
	Long: `Applies the decorators of the graph and lists, for every model, property, interface and
operation outside the excluded namespaces, the annotations it ended up with.`,
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

		ann, _ := a.emitter(nil, nil).Apply(prog)
		nodes := collectAnnotated(prog.Global, ann, a.cfg.Exclude)

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(nodes)
		}

		for _, n := range nodes {
			var parts []string
			for _, e := range n.Annotations {
				parts = append(parts, fmt.Sprintf("%s=%v", e.Kind, e.Value))
			}
			label := n.Kind
			if n.Class != "" {
				label = n.Class
			}
			fmt.Fprintf(out, "%-40s %-14s %s\n", n.ID, label, strings.Join(parts, " "))
		}
		return nil
	},
}

func collectAnnotated(ns *typegraph.Namespace, ann *odata.Annotations, excluded []string) []inspectedNode {
	var out []inspectedNode
	add := func(id string, t typegraph.Type, class string) {
		entries := ann.Store.Entries(t)
		if entries == nil {
			entries = []annotation.Entry{}
		}
		out = append(out, inspectedNode{ID: id, Kind: t.Kind().String(), Class: class, Annotations: entries})
	}

	var walk func(ns *typegraph.Namespace)
	walk = func(ns *typegraph.Namespace) {
		if name := identity.NamespaceString(ns); name != "" && flatten.IsExcluded(name, excluded) {
			return
		}
		for _, m := range ns.Models.Values() {
			class, _ := classify.ClassifyModel(ann, m)
			add(identity.QualifiedID(m), m, class.String())
			for _, p := range m.Properties.Values() {
				add(identity.QualifiedID(m)+"."+p.Name, p, "")
			}
		}
		for _, i := range ns.Interfaces.Values() {
			add(identity.QualifiedID(i), i, "")
			for _, op := range i.Operations.Values() {
				add(identity.QualifiedID(i)+"."+op.Name, op, "")
			}
		}
		for _, op := range ns.Operations.Values() {
			add(identity.QualifiedID(op), op, "")
		}
		for _, child := range ns.Namespaces.Values() {
			walk(child)
		}
	}
	walk(ns)
	return out
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("json", false, "Print JSON instead of a table")
}
