// Package quote assembles everything a quote document needs from the stored
// quote, its contact, product and model: the merged layout, the placeholder
// context, the rendered body blocks, line items and commercial terms.
package quote

import (
	"time"
)

// Status is the sales status of a quote.
type Status string

const (
	StatusDraft    Status = "rascunho"
	StatusSent     Status = "enviado"
	StatusApproved Status = "aprovado"
	StatusRejected Status = "rejeitado"
)

// Record is a stored quote. Empty ids mean the relation is unset.
type Record struct {
	ID               string         `json:"id"`
	ContactID        string         `json:"contact_id,omitempty"`
	ProductID        string         `json:"product_id,omitempty"`
	ModelID          string         `json:"quote_model_id,omitempty"`
	Title            string         `json:"title"`
	Status           Status         `json:"status"`
	TotalValue       *float64       `json:"total_value"`
	Parameters       map[string]any `json:"parameters"`
	GeneratedContent *string        `json:"generated_content"`
	CreatedAt        time.Time      `json:"created_at"`
}

// Contact is the CRM contact a quote is addressed to. Optional columns are
// empty when unset.
type Contact struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Company  string `json:"company,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	WhatsApp string `json:"whatsapp,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Product is the catalogue product a quote refers to.
type Product struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  string   `json:"category,omitempty"`
	UnitPrice *float64 `json:"unit_price"`
}

// Model is a reusable quote template with its layout and defaults stored in
// Parameters under the "layout" and "defaults" keys.
type Model struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	TemplateContent string         `json:"template_content"`
	Parameters      map[string]any `json:"parameters"`
	Active          bool           `json:"active"`
}

// Input is the snapshot a single render works on.
type Input struct {
	Quote   Record   `json:"quote"`
	Contact *Contact `json:"contact,omitempty"`
	Product *Product `json:"product,omitempty"`
	Model   *Model   `json:"model,omitempty"`

	// Location used to print the quote date; nil means time.Local.
	Location *time.Location `json:"-"`
}
