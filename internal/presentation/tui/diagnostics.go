package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/csdlgen/pkg/annotation"
)

// FormatDiagnostics renders one diagnostic per line, colored by severity.
func FormatDiagnostics(diags annotation.Diagnostics, p termenv.Profile) string {
	var b strings.Builder
	for _, d := range diags {
		color := "#facc15"
		if d.Severity == annotation.SeverityError {
			color = "#f87171"
		}
		label := p.String(d.Severity.String()).Foreground(p.Color(color)).Bold()
		code := p.String(string(d.Code)).Faint()

		if d.Site.Path != "" {
			fmt.Fprintf(&b, "%s: ", d.Site)
		}
		fmt.Fprintf(&b, "%s %s: %s\n", label, code, d.Message)
	}
	return b.String()
}
