package mcp

import (
	"encoding/json"

	"github.com/apogeu/crmdocs/layout"
)

// Resource URIs.
const (
	QuoteLayoutURI        = "crmdocs://layout/quote"
	PresentationLayoutURI = "crmdocs://layout/presentation"
	PlaceholdersURI       = "crmdocs://placeholders"
)

// RegisterResources adds the layout and placeholder reference resources.
func RegisterResources(s *Server) {
	s.AddResource(Resource{
		URI:         QuoteLayoutURI,
		Name:        "Quote layout defaults",
		Description: "Default quote layout, the starting point stored under a model's \"layout\" parameter.",
		MIMEType:    "application/json",
		Handler:     jsonResource(func() any { return layout.DefaultQuote().Map() }),
	})

	s.AddResource(Resource{
		URI:         PresentationLayoutURI,
		Name:        "Presentation layout defaults",
		Description: "Default presentation layout, stored under a presentation's \"layout\" parameter.",
		MIMEType:    "application/json",
		Handler:     jsonResource(func() any { return layout.DefaultPresentation().Map() }),
	})

	s.AddResource(Resource{
		URI:         PlaceholdersURI,
		Name:        "Quote placeholders",
		Description: "Placeholder keys available in quote templates, with their summary labels.",
		MIMEType:    "application/json",
		Handler:     jsonResource(placeholders),
	})
}

type placeholder struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

func placeholders() any {
	out := make([]placeholder, 0, len(layout.AllFields))
	for _, k := range layout.AllFields {
		out = append(out, placeholder{Key: string(k), Label: k.Label()})
	}
	return out
}

func jsonResource(value func() any) ResourceHandler {
	return func(uri string) ([]ResourceContent, error) {
		b, err := json.MarshalIndent(value(), "", "  ")
		if err != nil {
			return nil, err
		}
		return []ResourceContent{{URI: uri, MIMEType: "application/json", Text: string(b)}}, nil
	}
}
