package store

import (
	"context"
	"database/sql"

	"github.com/apogeu/crmdocs/presentation"
)

const (
	selectCompanyPresentation = `
		SELECT id, title, content, parameters, active
		FROM company_presentations
		WHERE id = $1`

	selectProductPresentation = `
		SELECT pp.id, pp.product_id, pp.title, pp.content, pp.parameters, pp.active,
		       COALESCE(p.name, '')
		FROM product_presentations pp
		LEFT JOIN products p ON p.id = pp.product_id
		WHERE pp.id = $1`
)

// Presentations reads company and product presentations.
type Presentations struct {
	db *sql.DB
}

// NewPresentations creates a Presentations repository on db.
func NewPresentations(db *sql.DB) *Presentations {
	return &Presentations{db: db}
}

// Company loads one company presentation.
func (r *Presentations) Company(ctx context.Context, id string) (presentation.Record, error) {
	rec := presentation.Record{Kind: presentation.Company}
	var params []byte
	err := r.db.QueryRowContext(ctx, selectCompanyPresentation, id).Scan(
		&rec.ID, &rec.Title, &rec.Content, &params, &rec.Active,
	)
	if err != nil {
		return presentation.Record{}, notFound("store.Company", "company presentation", id, err)
	}
	rec.Parameters = decodeObject(params)
	return rec, nil
}

// Product loads one product presentation and the name of its product,
// empty when the product is unset or gone.
func (r *Presentations) Product(ctx context.Context, id string) (presentation.Record, string, error) {
	rec := presentation.Record{Kind: presentation.Product}
	var (
		productID sql.NullString
		params    []byte
		name      string
	)
	err := r.db.QueryRowContext(ctx, selectProductPresentation, id).Scan(
		&rec.ID, &productID, &rec.Title, &rec.Content, &params, &rec.Active, &name,
	)
	if err != nil {
		return presentation.Record{}, "", notFound("store.Product", "product presentation", id, err)
	}
	rec.ProductID = nullString(productID)
	rec.Parameters = decodeObject(params)
	return rec, name, nil
}
