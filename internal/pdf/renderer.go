package pdf

import (
	"bytes"
	"context"
	"strings"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/gestorly/gestorly/internal/domain/pdf"
	ierr "github.com/gestorly/gestorly/internal/errors"
	"github.com/gestorly/gestorly/internal/logger"
)

// Renderer builds the fixed HTML representation of an invoice and
// rasterizes it to a PDF.
type Renderer interface {
	RenderInvoicePDF(ctx context.Context, data *pdf.InvoiceData) ([]byte, error)
}

type renderer struct {
	logger *logger.Logger
}

// NewRenderer creates a wkhtmltopdf-backed invoice renderer.
func NewRenderer(logger *logger.Logger) Renderer {
	return &renderer{logger: logger}
}

func (r *renderer) RenderInvoicePDF(ctx context.Context, data *pdf.InvoiceData) ([]byte, error) {
	var html bytes.Buffer
	if err := invoiceTemplate.Execute(&html, data); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to render invoice template").
			Mark(ierr.ErrSystem)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to initialize PDF generator").
			Mark(ierr.ErrSystem)
	}

	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)
	pdfg.Dpi.Set(96)
	pdfg.MarginTop.Set(12)
	pdfg.MarginBottom.Set(12)

	page := wkhtmltopdf.NewPageReader(strings.NewReader(html.String()))
	page.DisableJavascript.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.CreateContext(ctx); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to rasterize invoice PDF").
			Mark(ierr.ErrSystem)
	}

	return pdfg.Bytes(), nil
}
