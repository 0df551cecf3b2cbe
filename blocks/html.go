package blocks

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	tagPattern       = regexp.MustCompile(`(?i)</?[a-z][^>]*>`)
	horizontalSpace  = regexp.MustCompile(`[ \t]+`)
	newlineRun       = regexp.MustCompile(`\s*\n\s*`)
	blankLineOverrun = regexp.MustCompile(`\n{3,}`)
)

// FromHTML converts rich text pasted from a browser clipboard into block
// markup. Headings, lists and paragraph-like elements are mapped onto the
// markup prefixes; other elements are descended into. Input without any tag,
// or markup that yields no text, returns fallback.
func FromHTML(src, fallback string) string {
	source := strings.TrimSpace(src)
	if source == "" || !tagPattern.MatchString(source) {
		return fallback
	}
	doc, err := html.Parse(strings.NewReader(source))
	if err != nil {
		return fallback
	}
	body := findElement(doc, atom.Body)
	if body == nil {
		return fallback
	}

	c := &clipboardConverter{}
	for n := body.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode {
			c.walk(n)
		}
	}

	out := blankLineOverrun.ReplaceAllString(strings.Join(c.lines, "\n"), "\n\n")
	out = strings.TrimSpace(out)
	if out == "" {
		return fallback
	}
	return out
}

type clipboardConverter struct {
	lines []string
}

func (c *clipboardConverter) push(line string) {
	clean := normalizeInline(line)
	if clean == "" {
		return
	}
	c.lines = append(c.lines, clean)
}

func (c *clipboardConverter) blank() {
	c.lines = append(c.lines, "")
}

func (c *clipboardConverter) walk(n *html.Node) {
	switch n.DataAtom {
	case atom.H1:
		c.push("# " + textContent(n))
		c.blank()
		return
	case atom.H2, atom.H3:
		c.push("## " + textContent(n))
		c.blank()
		return
	case atom.Ul, atom.Ol:
		for li := n.FirstChild; li != nil; li = li.NextSibling {
			if li.Type == html.ElementNode && li.DataAtom == atom.Li {
				c.push("- " + textContent(li))
			}
		}
		c.blank()
		return
	case atom.P, atom.Div, atom.Blockquote:
		c.push(textContent(n))
		c.blank()
		return
	case atom.Br:
		c.blank()
		return
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode {
			c.walk(ch)
		}
	}
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			collect(ch)
		}
	}
	collect(n)
	return sb.String()
}

func normalizeInline(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = horizontalSpace.ReplaceAllString(s, " ")
	s = newlineRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if found := findElement(ch, a); found != nil {
			return found
		}
	}
	return nil
}
