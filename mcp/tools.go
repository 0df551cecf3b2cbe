package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/apogeu/crmdocs"
	"github.com/apogeu/crmdocs/blocks"
	"github.com/apogeu/crmdocs/pdfexport"
	"github.com/apogeu/crmdocs/presentation"
	"github.com/apogeu/crmdocs/quote"
	"github.com/apogeu/crmdocs/service"
	"github.com/apogeu/crmdocs/tmpl"
	"github.com/apogeu/crmdocs/words"
)

// Tools holds the dependencies of the document tools.
type Tools struct {
	exp *service.Exporter
	now func() time.Time
}

// NewTools creates the tool set backed by exp.
func NewTools(exp *service.Exporter) *Tools {
	return &Tools{exp: exp, now: time.Now}
}

// Register adds every document tool to the server.
func (t *Tools) Register(s *Server) {
	s.AddTool(t.renderQuoteTool())
	s.AddTool(t.renderModelPreviewTool())
	s.AddTool(t.renderPresentationTool())
	s.AddTool(t.previewQuoteTool())
	s.AddTool(t.generateContentTool())
	s.AddTool(currencyToWordsTool())
	s.AddTool(parseBlocksTool())
	s.AddTool(renderTemplateTool())
	s.AddTool(htmlToMarkupTool())
}

func object(description string) map[string]any {
	return map[string]any{"type": "object", "description": description}
}

func str(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func schema(required []string, props map[string]any) map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

// decode re-encodes args[key] and unmarshals it into dst.
func decode(args map[string]any, key string, dst any) error {
	raw, ok := args[key]
	if !ok || raw == nil {
		return fmt.Errorf("missing '%s' argument", key)
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", crmdocs.ErrInvalidParameters, key, err)
	}
	return nil
}

func text(s string) ToolResult {
	return ToolResult{Content: []ContentBlock{{Type: "text", Text: s}}}
}

func jsonText(v any) (ToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ToolResult{}, err
	}
	return text(string(b)), nil
}

// pdfResult saves out into output_dir when given and returns it as base64
// otherwise.
func pdfResult(out *pdfexport.Output, args map[string]any) (ToolResult, error) {
	status := "PDF created successfully"
	if out.Fallback {
		status = fmt.Sprintf("PDF rendered in degraded mode (%v)", out.Cause)
	}
	if dir, ok := args["output_dir"].(string); ok && dir != "" {
		path, err := out.Save(dir)
		if err != nil {
			return ToolResult{}, fmt.Errorf("writing file: %w", err)
		}
		return text(fmt.Sprintf("%s: %s (%d pages, %d bytes)", status, path, out.Pages, len(out.Data))), nil
	}
	return ToolResult{Content: []ContentBlock{
		{Type: "text", Text: fmt.Sprintf("%s: %s (%d pages, %d bytes)", status, out.Filename, out.Pages, len(out.Data))},
		{Type: "resource", MIMEType: "application/pdf", Data: base64.StdEncoding.EncodeToString(out.Data)},
	}}, nil
}

var outputDirProp = str("Optional directory to save the PDF in. If omitted, the PDF is returned as base64.")

func (t *Tools) renderQuoteTool() Tool {
	return Tool{
		Name:        "render_quote_pdf",
		Description: "Render a quote (orçamento) as PDF. Pass either the id of a stored quote or an inline snapshot with quote, contact, product and model.",
		InputSchema: schema(nil, map[string]any{
			"quote_id":   str("Id of a stored quote"),
			"snapshot":   object("Inline snapshot: {quote, contact, product, model}"),
			"output_dir": outputDirProp,
		}),
		Handler: t.handleRenderQuote,
	}
}

func (t *Tools) handleRenderQuote(ctx context.Context, args map[string]any) (ToolResult, error) {
	if id, ok := args["quote_id"].(string); ok && id != "" {
		out, err := t.exp.ExportQuote(ctx, id)
		if err != nil {
			return ToolResult{}, err
		}
		return pdfResult(out, args)
	}
	var in quote.Input
	if err := decode(args, "snapshot", &in); err != nil {
		return ToolResult{}, err
	}
	return pdfResult(t.exp.RenderQuoteInput(ctx, in), args)
}

func (t *Tools) renderModelPreviewTool() Tool {
	return Tool{
		Name:        "render_model_preview",
		Description: "Render the sample quote of a quote model as PDF, using a sample contact, product and total. defaults is the model's default parameters JSON text.",
		InputSchema: schema([]string{"model"}, map[string]any{
			"model":      object("Quote model: {id, name, template_content, parameters}"),
			"defaults":   str("Default parameters as JSON object text"),
			"output_dir": outputDirProp,
		}),
		Handler: t.handleRenderModelPreview,
	}
}

func (t *Tools) handleRenderModelPreview(ctx context.Context, args map[string]any) (ToolResult, error) {
	var m quote.Model
	if err := decode(args, "model", &m); err != nil {
		return ToolResult{}, err
	}
	defaultsText, _ := args["defaults"].(string)
	defaults, err := quote.DecodeDefaults(defaultsText)
	if err != nil {
		return ToolResult{}, err
	}
	return pdfResult(t.exp.RenderQuoteInput(ctx, quote.PreviewInput(m, defaults, t.now())), args)
}

func (t *Tools) renderPresentationTool() Tool {
	return Tool{
		Name:        "render_presentation_pdf",
		Description: "Render a company or product presentation as PDF. Pass kind and id of a stored presentation, or an inline presentation record.",
		InputSchema: schema(nil, map[string]any{
			"kind":            map[string]any{"type": "string", "enum": []string{"company", "product"}},
			"presentation_id": str("Id of a stored presentation"),
			"presentation":    object("Inline presentation: {kind, title, content, parameters}"),
			"product_name":    str("Product name shown in the subtitle of inline product presentations"),
			"output_dir":      outputDirProp,
		}),
		Handler: t.handleRenderPresentation,
	}
}

func (t *Tools) handleRenderPresentation(ctx context.Context, args map[string]any) (ToolResult, error) {
	if id, ok := args["presentation_id"].(string); ok && id != "" {
		kindText, _ := args["kind"].(string)
		kind, ok := presentation.ParseKind(kindText)
		if !ok {
			return ToolResult{}, fmt.Errorf("%w: unknown presentation kind %q", crmdocs.ErrInvalidParameters, kindText)
		}
		out, err := t.exp.ExportPresentation(ctx, kind, id)
		if err != nil {
			return ToolResult{}, err
		}
		return pdfResult(out, args)
	}
	var rec presentation.Record
	if err := decode(args, "presentation", &rec); err != nil {
		return ToolResult{}, err
	}
	if kind, ok := presentation.ParseKind(string(rec.Kind)); ok {
		rec.Kind = kind
	} else {
		rec.Kind = presentation.Company
	}
	name, _ := args["product_name"].(string)
	return pdfResult(t.exp.RenderPresentationInput(ctx, rec, name), args)
}

func (t *Tools) previewQuoteTool() Tool {
	return Tool{
		Name:        "preview_quote_html",
		Description: "Render the HTML preview of a quote snapshot, laid out like the PDF.",
		InputSchema: schema([]string{"snapshot"}, map[string]any{
			"snapshot": object("Inline snapshot: {quote, contact, product, model}"),
		}),
		Handler: t.handlePreviewQuote,
	}
}

func (t *Tools) handlePreviewQuote(_ context.Context, args map[string]any) (ToolResult, error) {
	var in quote.Input
	if err := decode(args, "snapshot", &in); err != nil {
		return ToolResult{}, err
	}
	var b strings.Builder
	if err := t.exp.PreviewQuoteInput(in, &b); err != nil {
		return ToolResult{}, err
	}
	return ToolResult{Content: []ContentBlock{{Type: "text", MIMEType: "text/html", Text: b.String()}}}, nil
}

func (t *Tools) generateContentTool() Tool {
	return Tool{
		Name:        "generate_quote_content",
		Description: "Fill a quote model template with the values of a quote draft, producing the content stored with the quote.",
		InputSchema: schema([]string{"draft"}, map[string]any{
			"draft": object("Draft: {contact, product, model, total_value, parameters}"),
		}),
		Handler: t.handleGenerateContent,
	}
}

func (t *Tools) handleGenerateContent(_ context.Context, args map[string]any) (ToolResult, error) {
	var d quote.Draft
	if err := decode(args, "draft", &d); err != nil {
		return ToolResult{}, err
	}
	content := quote.GenerateContent(d)
	if content == nil {
		return ToolResult{}, fmt.Errorf("%w: draft has no model", crmdocs.ErrInvalidParameters)
	}
	return text(*content), nil
}

func currencyToWordsTool() Tool {
	return Tool{
		Name:        "currency_to_words",
		Description: "Spell a BRL amount in Brazilian Portuguese words, e.g. 1500.5 becomes \"mil e quinhentos reais e cinquenta centavos\".",
		InputSchema: schema([]string{"value"}, map[string]any{
			"value": map[string]any{"type": "number", "description": "Amount in reais"},
		}),
		Handler: handleCurrencyToWords,
	}
}

func handleCurrencyToWords(_ context.Context, args map[string]any) (ToolResult, error) {
	v, ok := args["value"].(float64)
	if !ok {
		return ToolResult{}, fmt.Errorf("missing 'value' argument")
	}
	return jsonText(map[string]string{
		"formatted": words.FormatBRL(v),
		"words":     words.ToWords(v),
	})
}

func parseBlocksTool() Tool {
	return Tool{
		Name:        "parse_blocks",
		Description: "Classify template body text into content blocks (title, subtitle, bullet, paragraph, spacer) with their justification.",
		InputSchema: schema([]string{"text"}, map[string]any{
			"text":        str("Body text in the line markup"),
			"justify_all": map[string]any{"type": "boolean", "description": "Justify every bullet and paragraph"},
		}),
		Handler: handleParseBlocks,
	}
}

func handleParseBlocks(_ context.Context, args map[string]any) (ToolResult, error) {
	src, ok := args["text"].(string)
	if !ok {
		return ToolResult{}, fmt.Errorf("missing 'text' argument")
	}
	all, _ := args["justify_all"].(bool)
	return jsonText(blocks.Parse(src, all))
}

func renderTemplateTool() Tool {
	return Tool{
		Name:        "render_template",
		Description: "Substitute {{placeholder}} markers in a template with the given values. Unknown placeholders become empty. Also lists the placeholders found.",
		InputSchema: schema([]string{"template"}, map[string]any{
			"template": str("Template text"),
			"data":     object("Placeholder values"),
		}),
		Handler: handleRenderTemplate,
	}
}

func handleRenderTemplate(_ context.Context, args map[string]any) (ToolResult, error) {
	src, ok := args["template"].(string)
	if !ok {
		return ToolResult{}, fmt.Errorf("missing 'template' argument")
	}
	data, _ := args["data"].(map[string]any)
	return jsonText(map[string]any{
		"output":       tmpl.Render(src, tmpl.DataFromMap(data)),
		"placeholders": tmpl.Placeholders(src),
	})
}

func htmlToMarkupTool() Tool {
	return Tool{
		Name:        "html_to_markup",
		Description: "Convert rich-text editor HTML into the line markup used by quote and presentation bodies.",
		InputSchema: schema([]string{"html"}, map[string]any{
			"html":     str("Editor HTML"),
			"fallback": str("Text returned when the HTML carries no content"),
		}),
		Handler: handleHTMLToMarkup,
	}
}

func handleHTMLToMarkup(_ context.Context, args map[string]any) (ToolResult, error) {
	src, ok := args["html"].(string)
	if !ok {
		return ToolResult{}, fmt.Errorf("missing 'html' argument")
	}
	fallback, _ := args["fallback"].(string)
	return text(blocks.FromHTML(src, fallback)), nil
}
