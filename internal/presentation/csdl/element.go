package csdl

import (
	"encoding/xml"
	"strings"
)

// Attr is an ordered element attribute.
type Attr struct {
	Name  string
	Value string
}

// Element is a node of the generic document tree.
// An element without a Tag is a comment carrying Comment.
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []Element
	Text     string
	Comment  string
}

// NewElement creates an element with the given tag and attributes.
func NewElement(tag string, attrs ...Attr) Element {
	return Element{Tag: tag, Attrs: attrs}
}

// NewComment creates a comment node.
func NewComment(text string) Element {
	return Element{Comment: text}
}

// Append adds children and returns the element.
func (e Element) Append(children ...Element) Element {
	e.Children = append(e.Children, children...)
	return e
}

// Attr returns the value of the named attribute.
func (e Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Markup renders e as compact markup. Empty elements self-close.
func Markup(e Element) string {
	var b strings.Builder
	writeElement(&b, e)
	return b.String()
}

func writeElement(b *strings.Builder, e Element) {
	if e.Tag == "" {
		if e.Comment != "" {
			b.WriteString("<!-- ")
			b.WriteString(strings.ReplaceAll(e.Comment, "--", "- -"))
			b.WriteString(" -->")
		}
		return
	}

	b.WriteByte('<')
	b.WriteString(e.Tag)
	for _, a := range e.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		escape(b, a.Value)
		b.WriteByte('"')
	}

	if len(e.Children) == 0 && e.Text == "" {
		b.WriteString("/>")
		return
	}

	b.WriteByte('>')
	escape(b, e.Text)
	for _, child := range e.Children {
		writeElement(b, child)
	}
	b.WriteString("</")
	b.WriteString(e.Tag)
	b.WriteByte('>')
}

func escape(b *strings.Builder, s string) {
	// strings.Builder never fails to write.
	_ = xml.EscapeText(b, []byte(s))
}
