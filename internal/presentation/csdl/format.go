package csdl

import (
	"regexp"
	"strings"
)

const (
	// EdmNamespace is the default namespace of every Schema element.
	EdmNamespace = "http://docs.oasis-open.org/odata/ns/edm"
	// EdmxNamespace is bound to the edmx prefix on the envelope.
	EdmxNamespace = "http://docs.oasis-open.org/odata/ns/edmx"
	// AggregatorNamespace is bound to the ags prefix.
	AggregatorNamespace = "http://aggregator.microsoft.com/internal"

	xmlDeclaration = `<?xml version="1.0" encoding="utf-8"?>`
	defaultIndent  = "  "
)

var (
	tagBoundary = regexp.MustCompile(`>\s*<`)
	closingTag  = regexp.MustCompile(`^/\w`)
	openingTag  = regexp.MustCompile(`^\w([^>]*[^/])?$`)
)

// FormatXML puts every tag on its own line and indents nested elements by indent.
//
// Each chunk between tag boundaries is classified by shape only: a chunk led by "/"
// closes a level, a chunk that starts with a name character, does not end in "/" and
// holds no inline content opens one. Declarations and comments never nest.
func FormatXML(markup, indent string) string {
	markup = strings.TrimSpace(markup)
	markup = strings.TrimPrefix(markup, "<")
	markup = strings.TrimSuffix(markup, ">")
	if markup == "" {
		return ""
	}

	var b strings.Builder
	depth := 0
	for _, chunk := range tagBoundary.Split(markup, -1) {
		if closingTag.MatchString(chunk) && depth > 0 {
			depth--
		}

		b.WriteString(strings.Repeat(indent, depth))
		b.WriteByte('<')
		b.WriteString(chunk)
		b.WriteString(">\n")

		if openingTag.MatchString(chunk) {
			depth++
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// Envelope wraps schemas in the edmx:Edmx and edmx:DataServices elements.
func Envelope(schemas []Element) Element {
	services := NewElement("edmx:DataServices").Append(schemas...)
	return NewElement("edmx:Edmx",
		Attr{Name: "Version", Value: "4.0"},
		Attr{Name: "xmlns:ags", Value: AggregatorNamespace},
		Attr{Name: "xmlns:edmx", Value: EdmxNamespace},
	).Append(services)
}

// Document renders the complete CSDL text for schemas.
func Document(schemas []Element) string {
	return FormatXML(xmlDeclaration+Markup(Envelope(schemas)), defaultIndent) + "\n"
}
