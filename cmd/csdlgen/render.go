package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/csdlgen"
	"github.com/aretw0/csdlgen/internal/presentation/tui"
	"github.com/aretw0/csdlgen/pkg/adapters/file"
)

var renderCmd = &cobra.Command{
	Use:   "render [graph]",
	Short: "Render the graph and save the CSDL document",
	Long: `Loads the graph document, applies its decorators and writes the CSDL XML to the configured store
(./csdl-output/csdl.xml by default). With --stdout the document is printed instead.`,
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

		toStdout, _ := cmd.Flags().GetBool("stdout")
		strict, _ := cmd.Flags().GetBool("strict")
		quiet, _ := cmd.Flags().GetBool("quiet")

		if toStdout {
			res := a.emitter(nil, nil).Render(prog)
			if strict && res.Diagnostics.HasErrors() {
				return fmt.Errorf("%w: %w", csdlgen.ErrDiagnostics, res.Diagnostics)
			}
			_, err := cmd.OutOrStdout().Write(res.Document)
			return err
		}

		store, closeStore, err := a.store()
		if err != nil {
			return err
		}
		defer closeStore()

		res, err := a.emitter(store, nil, csdlgen.WithStrict(strict)).Emit(cmd.Context(), prog)
		if err != nil {
			return err
		}
		if quiet {
			return nil
		}

		target := a.cfg.Filename
		if fs, ok := store.(*file.Store); ok {
			target = fs.Path(a.cfg.Filename)
		}
		out, err := tui.NewRenderer(stdoutStyled(cmd))(tui.Summary(res, target))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().Bool("stdout", false, "Print the document instead of saving it")
	renderCmd.Flags().Bool("strict", false, "Fail when declarations produce error diagnostics")
	renderCmd.Flags().BoolP("quiet", "q", false, "Do not print the summary")
}
