package csdl

import (
	"strings"
	"testing"
)

func TestFormatXML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "nesting",
			in:   `<a><b><c/></b><d x="1"/></a>`,
			want: "<a>\n  <b>\n    <c/>\n  </b>\n  <d x=\"1\"/>\n</a>",
		},
		{
			name: "whitespace between tags is dropped",
			in:   "<a>\n   <b/>   </a>",
			want: "<a>\n  <b/>\n</a>",
		},
		{
			name: "inline text stays on one line",
			in:   `<a><b>text</b><c/></a>`,
			want: "<a>\n  <b>text</b>\n  <c/>\n</a>",
		},
		{
			name: "declaration and comments do not nest",
			in:   `<?xml version="1.0"?><a><!-- note --><b/></a>`,
			want: "<?xml version=\"1.0\"?>\n<a>\n  <!-- note -->\n  <b/>\n</a>",
		},
		{
			name: "url attributes",
			in:   `<edmx:Edmx xmlns:edmx="http://x/y"><s/></edmx:Edmx>`,
			want: "<edmx:Edmx xmlns:edmx=\"http://x/y\">\n  <s/>\n</edmx:Edmx>",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatXML(tt.in, "  "); got != tt.want {
				t.Errorf("FormatXML() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestFormatXML_CustomIndent(t *testing.T) {
	got := FormatXML(`<a><b/></a>`, "\t")
	if got != "<a>\n\t<b/>\n</a>" {
		t.Errorf("FormatXML() = %q", got)
	}
}

func TestDocument_EmptyEnvelope(t *testing.T) {
	want := strings.Join([]string{
		`<?xml version="1.0" encoding="utf-8"?>`,
		`<edmx:Edmx Version="4.0" xmlns:ags="http://aggregator.microsoft.com/internal" xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx">`,
		`  <edmx:DataServices/>`,
		`</edmx:Edmx>`,
		``,
	}, "\n")

	if got := Document(nil); got != want {
		t.Errorf("Document(nil) =\n%s\nwant\n%s", got, want)
	}
}
