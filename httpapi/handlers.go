package httpapi

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/apogeu/crmdocs"
	"github.com/apogeu/crmdocs/pdfexport"
	"github.com/apogeu/crmdocs/presentation"
	"github.com/apogeu/crmdocs/quote"
	"github.com/apogeu/crmdocs/service"
	"github.com/apogeu/crmdocs/words"
)

// FallbackHeader is set to "true" on PDFs rendered in degraded mode.
const FallbackHeader = "X-Document-Fallback"

type handlers struct {
	exp    *service.Exporter
	logger *zap.Logger
	now    func() time.Time
}

// status maps an exporter error to an HTTP status.
func status(err error) int {
	switch {
	case errors.Is(err, crmdocs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, crmdocs.ErrInvalidParameters):
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func (h *handlers) fail(c *gin.Context, err error) {
	code := status(err)
	if code >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// id returns the :id path parameter when it is a UUID.
func id(c *gin.Context) (string, bool) {
	raw := c.Param("id")
	if _, err := uuid.Parse(raw); err != nil {
		badRequest(c, "invalid id")
		return "", false
	}
	return raw, true
}

func sendPDF(c *gin.Context, out *pdfexport.Output) {
	disposition := "attachment"
	if c.Query("disposition") == "inline" {
		disposition = "inline"
	}
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, out.Filename))
	c.Header("X-Document-Pages", strconv.Itoa(out.Pages))
	if out.Fallback {
		c.Header(FallbackHeader, "true")
	}
	c.Data(http.StatusOK, "application/pdf", out.Data)
}

func sendHTML(c *gin.Context, render func(*bytes.Buffer) error, onError func(error)) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		onError(err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *handlers) quotePDF(c *gin.Context) {
	qid, ok := id(c)
	if !ok {
		return
	}
	out, err := h.exp.ExportQuote(c.Request.Context(), qid)
	if err != nil {
		h.fail(c, err)
		return
	}
	sendPDF(c, out)
}

func (h *handlers) quotePreview(c *gin.Context) {
	qid, ok := id(c)
	if !ok {
		return
	}
	sendHTML(c, func(b *bytes.Buffer) error {
		return h.exp.PreviewQuote(c.Request.Context(), qid, b)
	}, func(err error) { h.fail(c, err) })
}

func (h *handlers) inlineQuotePDF(c *gin.Context) {
	var in quote.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request")
		return
	}
	sendPDF(c, h.exp.RenderQuoteInput(c.Request.Context(), in))
}

func (h *handlers) inlineQuotePreview(c *gin.Context) {
	var in quote.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request")
		return
	}
	sendHTML(c, func(b *bytes.Buffer) error {
		return h.exp.PreviewQuoteInput(in, b)
	}, func(err error) { h.fail(c, err) })
}

type modelPreviewRequest struct {
	Model    quote.Model `json:"model"`
	Defaults string      `json:"defaults"`
}

func (h *handlers) modelPreview(c *gin.Context) {
	var req modelPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	defaults, err := quote.DecodeDefaults(req.Defaults)
	if err != nil {
		h.fail(c, err)
		return
	}
	in := quote.PreviewInput(req.Model, defaults, h.now())
	sendPDF(c, h.exp.RenderQuoteInput(c.Request.Context(), in))
}

func (h *handlers) generateContent(c *gin.Context) {
	var d quote.Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		badRequest(c, "invalid request")
		return
	}
	c.JSON(http.StatusOK, gin.H{"generated_content": quote.GenerateContent(d)})
}

type parametersRequest struct {
	Text string `json:"text"`
}

func (h *handlers) validateParameters(c *gin.Context) {
	var req parametersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	params, err := quote.DecodeParameters(req.Text)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"parameters": params})
}

func kind(c *gin.Context) (presentation.Kind, bool) {
	k, ok := presentation.ParseKind(c.Param("kind"))
	if !ok {
		badRequest(c, "invalid presentation kind")
	}
	return k, ok
}

func (h *handlers) presentationPDF(c *gin.Context) {
	k, ok := kind(c)
	if !ok {
		return
	}
	pid, ok := id(c)
	if !ok {
		return
	}
	out, err := h.exp.ExportPresentation(c.Request.Context(), k, pid)
	if err != nil {
		h.fail(c, err)
		return
	}
	sendPDF(c, out)
}

func (h *handlers) presentationPreview(c *gin.Context) {
	k, ok := kind(c)
	if !ok {
		return
	}
	pid, ok := id(c)
	if !ok {
		return
	}
	sendHTML(c, func(b *bytes.Buffer) error {
		return h.exp.PreviewPresentation(c.Request.Context(), k, pid, b)
	}, func(err error) { h.fail(c, err) })
}

type wordsRequest struct {
	Value *float64 `json:"value" binding:"required"`
}

func (h *handlers) spell(c *gin.Context) {
	var req wordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "value is required")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"formatted": words.FormatBRL(*req.Value),
		"words":     words.ToWords(*req.Value),
	})
}
