package pdf

import (
	"bytes"
	"testing"

	"github.com/gestorly/gestorly/internal/domain/pdf"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderTemplate(t *testing.T, data *pdf.InvoiceData) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, invoiceTemplate.Execute(&buf, data))
	return buf.String()
}

func TestInvoiceTemplateRendersCoreFields(t *testing.T) {
	html := renderTemplate(t, &pdf.InvoiceData{
		DisplayNumber: "1007",
		Status:        "pending",
		IssueDate:     "2026-09-01",
		DueDate:       "2026-10-01",
		BusinessName:  "Taller García",
		ClientName:    "Juan Pérez",
		Items: []pdf.LineItemData{
			{Description: "Cambio de aceite", Quantity: 2, UnitPrice: decimal.NewFromInt(50), LineTotal: decimal.NewFromInt(100)},
		},
		Subtotal: decimal.NewFromInt(100),
		Tax:      decimal.NewFromInt(21),
		Total:    decimal.NewFromInt(121),
	})

	assert.Contains(t, html, "Factura #1007")
	assert.Contains(t, html, "Taller García")
	assert.Contains(t, html, "Juan Pérez")
	assert.Contains(t, html, "Cambio de aceite")
	assert.Contains(t, html, "Vence: 2026-10-01")
	assert.NotContains(t, html, "badge paid")
}

func TestInvoiceTemplateDistinguishesPaidStatus(t *testing.T) {
	html := renderTemplate(t, &pdf.InvoiceData{
		DisplayNumber: "1008",
		Status:        "paid",
		IssueDate:     "2026-09-01",
		PaidDate:      "2026-09-15",
	})

	assert.Contains(t, html, "badge paid")
	assert.Contains(t, html, "Pagada: 2026-09-15")
}

func TestInvoiceTemplateOmitsEmptyOptionalSections(t *testing.T) {
	html := renderTemplate(t, &pdf.InvoiceData{
		DisplayNumber: "1009",
		Status:        "draft",
		IssueDate:     "2026-09-01",
	})

	assert.NotContains(t, html, "Vence:")
	assert.NotContains(t, html, "Pagada:")
	assert.NotContains(t, html, "img class=\"logo\"")
}
