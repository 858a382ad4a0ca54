package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/csdlgen"
)

// Summary builds a markdown report of a render.
func Summary(res *csdlgen.Result, target string) string {
	var b strings.Builder

	b.WriteString("# CSDL document\n\n")
	if target != "" {
		fmt.Fprintf(&b, "Saved to `%s` (%d bytes).\n\n", target, len(res.Document))
	}

	if len(res.Schemas) == 0 {
		b.WriteString("_No schemas were produced._\n")
	} else {
		b.WriteString("| Schema | Entity types | Complex types | Enums | Navigation | Entity sets |\n")
		b.WriteString("|---|---:|---:|---:|---:|---|\n")
		for _, s := range res.Schemas {
			sets := "-"
			if len(s.EntitySets) > 0 {
				sets = "`" + strings.Join(s.EntitySets, "`, `") + "`"
			}
			fmt.Fprintf(&b, "| %s | %d | %d | %d | %d | %s |\n",
				s.Namespace, s.EntityTypes, s.ComplexTypes, s.EnumTypes, s.NavigationProperties, sets)
		}
	}

	if n := len(res.Diagnostics); n > 0 {
		fmt.Fprintf(&b, "\n## Diagnostics (%d)\n\n", n)
		for _, d := range res.Diagnostics {
			fmt.Fprintf(&b, "- **%s** `%s` %s", d.Severity, d.Code, d.Message)
			if d.Site.Path != "" {
				fmt.Fprintf(&b, " (`%s`)", d.Site)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
