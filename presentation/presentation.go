// Package presentation resolves company and product presentations into the
// view rendered by the PDF and HTML renderers.
package presentation

import (
	"strings"

	"github.com/apogeu/crmdocs/blocks"
	"github.com/apogeu/crmdocs/layout"
)

// Kind tells company presentations from product presentations.
type Kind string

const (
	Company Kind = "company"
	Product Kind = "product"
)

// ParseKind accepts the route forms "company"/"empresa" and
// "product"/"produto".
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "company", "empresa":
		return Company, true
	case "product", "produto":
		return Product, true
	}
	return "", false
}

// Record is a stored presentation. ProductID is only set on product
// presentations.
type Record struct {
	ID         string         `json:"id"`
	Kind       Kind           `json:"kind"`
	ProductID  string         `json:"product_id,omitempty"`
	Title      string         `json:"title"`
	Content    string         `json:"content"`
	Parameters map[string]any `json:"parameters"`
	Active     bool           `json:"active"`
}

// DefaultTitle returns the title used when a presentation's title is blank.
func (k Kind) DefaultTitle() string {
	if k == Product {
		return "Apresentação de produto"
	}
	return "Apresentação da empresa"
}

// FallbackTitle is the title of a presentation rendered without any record
// context.
const FallbackTitle = "Apresentação"

// View is the resolved content of one presentation document.
type View struct {
	ID       string
	Kind     Kind
	Title    string
	Subtitle string
	Layout   layout.Presentation
	Warnings layout.Warnings
	Content  string
	Blocks   []blocks.Block
}

// Build resolves rec. productName is the name of the related product and
// only matters for product presentations; blank becomes "Produto".
func Build(rec Record, productName string) View {
	lay, ws := layout.PresentationFromParameters(rec.Parameters)

	title := strings.TrimSpace(rec.Title)
	if title == "" {
		title = rec.Kind.DefaultTitle()
	}

	subtitle := "Apresentação institucional"
	if rec.Kind == Product {
		name := strings.TrimSpace(productName)
		if name == "" {
			name = "Produto"
		}
		subtitle = "Produto: " + name
	}

	return View{
		ID:       rec.ID,
		Kind:     rec.Kind,
		Title:    title,
		Subtitle: subtitle,
		Layout:   lay,
		Warnings: ws,
		Content:  rec.Content,
		Blocks:   blocks.Parse(rec.Content, lay.JustifyAll),
	}
}

// FallbackLines is the plain text content of the degraded document.
func (v View) FallbackLines() []string {
	lines := []string{"Apresentação: " + v.Title}
	if v.Subtitle != "" {
		lines = append(lines, v.Subtitle)
	}
	lines = append(lines, "")
	content := strings.NewReplacer(blocks.JustifyOpen, "", blocks.JustifyClose, "", "\r\n", "\n").Replace(v.Content)
	if strings.TrimSpace(content) == "" {
		content = "Sem conteudo."
	}
	return append(lines, strings.Split(content, "\n")...)
}
