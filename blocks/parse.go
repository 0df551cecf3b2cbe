// Package blocks classifies template body text into content blocks.
//
// The markup is line oriented: "# " starts a title, "## " a subtitle, "- " a
// bullet, blank lines are spacers and anything else is a paragraph. The
// literal markers {{just}} and {{/just}} delimit a justified region.
package blocks

import (
	"strings"
)

// Markers delimiting a justified region.
const (
	JustifyOpen  = "{{just}}"
	JustifyClose = "{{/just}}"
)

// Kind is the structural class of a Block.
type Kind string

const (
	Spacer    Kind = "spacer"
	Title     Kind = "title"
	Subtitle  Kind = "subtitle"
	Bullet    Kind = "bullet"
	Paragraph Kind = "paragraph"
)

// Block is one classified line of body text. Justified is only ever set on
// bullets and paragraphs.
type Block struct {
	Kind      Kind   `json:"type"`
	Text      string `json:"text"`
	Justified bool   `json:"justified"`
}

// IsHeading reports whether b is a title or subtitle.
func (b Block) IsHeading() bool {
	return b.Kind == Title || b.Kind == Subtitle
}

// Parse splits text into blocks, one per line, in source order. Lines are
// never merged. When justifyAll is set every bullet and paragraph is
// justified.
func Parse(text string, justifyAll bool) []Block {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]Block, 0, len(lines))
	inside := false

	for _, line := range lines {
		opens := strings.Contains(line, JustifyOpen)
		closes := strings.Contains(line, JustifyClose)
		clean := strings.ReplaceAll(line, JustifyOpen, "")
		clean = strings.ReplaceAll(clean, JustifyClose, "")
		trimmed := strings.TrimSpace(clean)
		justified := justifyAll || inside || opens || closes

		switch {
		case trimmed == "":
			out = append(out, Block{Kind: Spacer})
		case strings.HasPrefix(trimmed, "# "):
			out = append(out, Block{Kind: Title, Text: strings.TrimSpace(trimmed[2:])})
		case strings.HasPrefix(trimmed, "## "):
			out = append(out, Block{Kind: Subtitle, Text: strings.TrimSpace(trimmed[3:])})
		case strings.HasPrefix(trimmed, "- "):
			out = append(out, Block{Kind: Bullet, Text: strings.TrimSpace(trimmed[2:]), Justified: justified})
		default:
			out = append(out, Block{Kind: Paragraph, Text: trimmed, Justified: justified})
		}

		if opens && !closes {
			inside = true
		}
		if closes {
			inside = false
		}
	}
	return out
}

// Text joins the block texts back into plain lines, with bullets prefixed by
// a bullet sign. Spacers become empty lines.
func Text(bs []Block) string {
	var sb strings.Builder
	for i, b := range bs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if b.Kind == Bullet {
			sb.WriteString("• ")
		}
		sb.WriteString(b.Text)
	}
	return sb.String()
}
