package blocks

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		justifyAll bool
		want       []Block
	}{
		{
			name: "empty input",
			in:   "",
			want: []Block{{Kind: Spacer}},
		},
		{
			name: "heading spacer body",
			in:   "# Title\n\nBody",
			want: []Block{
				{Kind: Title, Text: "Title"},
				{Kind: Spacer},
				{Kind: Paragraph, Text: "Body"},
			},
		},
		{
			name: "same line span does not leak",
			in:   "{{just}}A{{/just}}\nB",
			want: []Block{
				{Kind: Paragraph, Text: "A", Justified: true},
				{Kind: Paragraph, Text: "B"},
			},
		},
		{
			name: "crlf and consecutive blanks",
			in:   "a\r\n\r\n\r\nb",
			want: []Block{
				{Kind: Paragraph, Text: "a"},
				{Kind: Spacer},
				{Kind: Spacer},
				{Kind: Paragraph, Text: "b"},
			},
		},
		{
			name: "multi line span",
			in:   "{{just}}\n- item\ntext\n{{/just}}\nafter",
			want: []Block{
				{Kind: Spacer},
				{Kind: Bullet, Text: "item", Justified: true},
				{Kind: Paragraph, Text: "text", Justified: true},
				{Kind: Spacer},
				{Kind: Paragraph, Text: "after"},
			},
		},
		{
			name: "unclosed span justifies the rest",
			in:   "{{just}}one\ntwo\n## Heading\nthree",
			want: []Block{
				{Kind: Paragraph, Text: "one", Justified: true},
				{Kind: Paragraph, Text: "two", Justified: true},
				{Kind: Subtitle, Text: "Heading"},
				{Kind: Paragraph, Text: "three", Justified: true},
			},
		},
		{
			name:       "justify all never touches headings or spacers",
			in:         "# T\n\n- b\np",
			justifyAll: true,
			want: []Block{
				{Kind: Title, Text: "T"},
				{Kind: Spacer},
				{Kind: Bullet, Text: "b", Justified: true},
				{Kind: Paragraph, Text: "p", Justified: true},
			},
		},
		{
			name: "prefixes need a space",
			in:   "#tag\n-dash\n  ##   Sub  ",
			want: []Block{
				{Kind: Paragraph, Text: "#tag"},
				{Kind: Paragraph, Text: "-dash"},
				{Kind: Subtitle, Text: "Sub"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.in, tt.justifyAll)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Parse(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestText(t *testing.T) {
	got := Text(Parse("# T\n- a\n\nb", false))
	want := "T\n• a\n\nb"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFromHTML(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		fallback string
		want     string
	}{
		{
			name: "headings lists paragraphs",
			in:   "<h1>Proposta</h1><p>Texto  da\n proposta</p><ul><li>Um</li><li>Dois</li></ul><h3>Prazo</h3>",
			want: "# Proposta\n\nTexto da proposta\n\n- Um\n- Dois\n\n## Prazo",
		},
		{
			name: "nested unknown elements are walked",
			in:   "<section><article><p>A&nbsp;B</p></article></section><br><br><br><div>C</div>",
			want: "A B\n\nC",
		},
		{
			name:     "plain text returns fallback",
			in:       "just text",
			fallback: "just text",
			want:     "just text",
		},
		{
			name:     "no extractable text returns fallback",
			in:       "<span>lost</span>",
			fallback: "fb",
			want:     "fb",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromHTML(tt.in, tt.fallback); got != tt.want {
				t.Fatalf("FromHTML() = %q, want %q", got, tt.want)
			}
		})
	}
}
