package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/apogeu/crmdocs"
	"github.com/apogeu/crmdocs/quote"
)

const (
	selectQuote = `
		SELECT id, contact_id, product_id, quote_model_id, title, status,
		       total_value, parameters, generated_content, created_at
		FROM quotes
		WHERE id = $1`

	selectContact = `
		SELECT id, name, COALESCE(company, ''), COALESCE(phone, ''),
		       COALESCE(email, ''), COALESCE(whatsapp, ''), COALESCE(role, '')
		FROM contacts
		WHERE id = $1`

	selectProduct = `
		SELECT id, name, COALESCE(category, ''), unit_price
		FROM products
		WHERE id = $1`

	selectModel = `
		SELECT id, name, template_content, parameters, active
		FROM quote_models
		WHERE id = $1`
)

// Quotes reads quotes and their relations.
type Quotes struct {
	db *sql.DB
}

// NewQuotes creates a Quotes repository on db.
func NewQuotes(db *sql.DB) *Quotes {
	return &Quotes{db: db}
}

// Quote loads one quote.
func (r *Quotes) Quote(ctx context.Context, id string) (quote.Record, error) {
	var (
		q                             quote.Record
		contactID, productID, modelID sql.NullString
		total                         sql.NullFloat64
		params                        []byte
		generated                     sql.NullString
	)
	err := r.db.QueryRowContext(ctx, selectQuote, id).Scan(
		&q.ID, &contactID, &productID, &modelID, &q.Title, &q.Status,
		&total, &params, &generated, &q.CreatedAt,
	)
	if err != nil {
		return quote.Record{}, notFound("store.Quote", "quote", id, err)
	}
	q.ContactID = nullString(contactID)
	q.ProductID = nullString(productID)
	q.ModelID = nullString(modelID)
	if total.Valid {
		q.TotalValue = &total.Float64
	}
	if generated.Valid {
		q.GeneratedContent = &generated.String
	}
	q.Parameters = decodeObject(params)
	return q, nil
}

// Contact loads one contact.
func (r *Quotes) Contact(ctx context.Context, id string) (quote.Contact, error) {
	var c quote.Contact
	err := r.db.QueryRowContext(ctx, selectContact, id).Scan(
		&c.ID, &c.Name, &c.Company, &c.Phone, &c.Email, &c.WhatsApp, &c.Role,
	)
	if err != nil {
		return quote.Contact{}, notFound("store.Contact", "contact", id, err)
	}
	return c, nil
}

// Product loads one product.
func (r *Quotes) Product(ctx context.Context, id string) (quote.Product, error) {
	var (
		p     quote.Product
		price sql.NullFloat64
	)
	err := r.db.QueryRowContext(ctx, selectProduct, id).Scan(&p.ID, &p.Name, &p.Category, &price)
	if err != nil {
		return quote.Product{}, notFound("store.Product", "product", id, err)
	}
	if price.Valid {
		p.UnitPrice = &price.Float64
	}
	return p, nil
}

// Model loads one quote model.
func (r *Quotes) Model(ctx context.Context, id string) (quote.Model, error) {
	var (
		m      quote.Model
		params []byte
	)
	err := r.db.QueryRowContext(ctx, selectModel, id).Scan(&m.ID, &m.Name, &m.TemplateContent, &params, &m.Active)
	if err != nil {
		return quote.Model{}, notFound("store.Model", "quote model", id, err)
	}
	m.Parameters = decodeObject(params)
	return m, nil
}

// Bundle loads a quote snapshot with its contact, product and model. A
// relation that is unset or points at a deleted row is left nil.
func (r *Quotes) Bundle(ctx context.Context, quoteID string) (quote.Input, error) {
	q, err := r.Quote(ctx, quoteID)
	if err != nil {
		return quote.Input{}, err
	}
	in := quote.Input{Quote: q}

	if q.ContactID != "" {
		c, err := r.Contact(ctx, q.ContactID)
		if err = optional(err); err != nil {
			return quote.Input{}, err
		}
		if c.ID != "" {
			in.Contact = &c
		}
	}
	if q.ProductID != "" {
		p, err := r.Product(ctx, q.ProductID)
		if err = optional(err); err != nil {
			return quote.Input{}, err
		}
		if p.ID != "" {
			in.Product = &p
		}
	}
	if q.ModelID != "" {
		m, err := r.Model(ctx, q.ModelID)
		if err = optional(err); err != nil {
			return quote.Input{}, err
		}
		if m.ID != "" {
			in.Model = &m
		}
	}
	return in, nil
}

func optional(err error) error {
	if errors.Is(err, crmdocs.ErrNotFound) {
		return nil
	}
	return err
}
