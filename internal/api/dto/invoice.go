package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/gestorly/gestorly/internal/domain/invoice"
	ierr "github.com/gestorly/gestorly/internal/errors"
	"github.com/gestorly/gestorly/internal/types"
	"github.com/shopspring/decimal"
)

// InvoiceLineItemRequest is one line item in a create/update payload.
type InvoiceLineItemRequest struct {
	Description string           `json:"descripcion"`
	Category    *string          `json:"categoria,omitempty"`
	UnitPrice   decimal.Decimal  `json:"precio_unitario"`
	Quantity    int              `json:"cantidad"`
	LineTotal   decimal.Decimal  `json:"total_linea"`
}

func (r *InvoiceLineItemRequest) violations(index int) []string {
	var violations []string
	if strings.TrimSpace(r.Description) == "" {
		violations = append(violations, fmt.Sprintf("items[%d]: descripcion is required", index))
	}
	if r.UnitPrice.IsNegative() {
		violations = append(violations, fmt.Sprintf("items[%d]: precio_unitario must be >= 0", index))
	}
	if r.Quantity <= 0 {
		violations = append(violations, fmt.Sprintf("items[%d]: cantidad must be a positive integer", index))
	}
	if r.LineTotal.IsNegative() {
		violations = append(violations, fmt.Sprintf("items[%d]: total_linea must be >= 0", index))
	}
	return violations
}

// CreateInvoiceRequest represents the request to create an invoice
// with its line items.
type CreateInvoiceRequest struct {
	ClientID         string                   `json:"cliente_id"`
	Status           *types.InvoiceStatus     `json:"estado,omitempty"`
	IssueDate        *string                  `json:"fecha_emision,omitempty"`
	DueDate          *string                  `json:"fecha_vencimiento,omitempty"`
	Subtotal         *decimal.Decimal         `json:"subtotal,omitempty"`
	Tax              *decimal.Decimal         `json:"impuestos,omitempty"`
	Total            *decimal.Decimal         `json:"total,omitempty"`
	Deposit          *decimal.Decimal         `json:"deposito,omitempty"`
	RemainingBalance *decimal.Decimal         `json:"saldo_pendiente,omitempty"`
	Note             *string                  `json:"notas,omitempty"`
	Terms            *string                  `json:"terminos,omitempty"`
	LogoURL          *string                  `json:"logo_url,omitempty"`
	SignatureURL     *string                  `json:"firma_url,omitempty"`
	PaymentMethodID  *string                  `json:"metodo_pago_id,omitempty"`
	Items            []InvoiceLineItemRequest `json:"items"`
}

// Validate aggregates every violated rule into a single validation
// error; it never fails fast on the first violation.
func (r *CreateInvoiceRequest) Validate() error {
	var violations []string

	if strings.TrimSpace(r.ClientID) == "" {
		violations = append(violations, "cliente_id is required")
	}
	if r.Status != nil {
		if err := r.Status.Validate(); err != nil {
			violations = append(violations, fmt.Sprintf("estado must be one of %v", types.InvoiceStatuses()))
		}
	}
	violations = append(violations, monetaryViolations(map[string]*decimal.Decimal{
		"subtotal":        r.Subtotal,
		"impuestos":       r.Tax,
		"total":           r.Total,
		"deposito":        r.Deposit,
		"saldo_pendiente": r.RemainingBalance,
	})...)

	if len(r.Items) == 0 {
		violations = append(violations, "items must contain at least one line item")
	}
	for i := range r.Items {
		violations = append(violations, r.Items[i].violations(i)...)
	}

	if len(violations) > 0 {
		return ierr.NewError("invalid invoice request").
			WithHint(strings.Join(violations, "; ")).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// UpdateInvoiceRequest has partial update semantics: only fields that
// are present change. Items replaces the full line-item set when
// present, even as an empty array; nil leaves the existing set alone.
type UpdateInvoiceRequest struct {
	ClientID         *string                   `json:"cliente_id,omitempty"`
	Status           *types.InvoiceStatus      `json:"estado,omitempty"`
	IssueDate        *string                   `json:"fecha_emision,omitempty"`
	DueDate          *string                   `json:"fecha_vencimiento,omitempty"`
	Subtotal         *decimal.Decimal          `json:"subtotal,omitempty"`
	Tax              *decimal.Decimal          `json:"impuestos,omitempty"`
	Total            *decimal.Decimal          `json:"total,omitempty"`
	Deposit          *decimal.Decimal          `json:"deposito,omitempty"`
	RemainingBalance *decimal.Decimal          `json:"saldo_pendiente,omitempty"`
	Note             *string                   `json:"notas,omitempty"`
	Terms            *string                   `json:"terminos,omitempty"`
	LogoURL          *string                   `json:"logo_url,omitempty"`
	SignatureURL     *string                   `json:"firma_url,omitempty"`
	PaymentMethodID  *string                   `json:"metodo_pago_id,omitempty"`
	Items            *[]InvoiceLineItemRequest `json:"items,omitempty"`
}

func (r *UpdateInvoiceRequest) Validate() error {
	var violations []string

	if r.ClientID != nil && strings.TrimSpace(*r.ClientID) == "" {
		violations = append(violations, "cliente_id must not be empty")
	}
	if r.Status != nil {
		if err := r.Status.Validate(); err != nil {
			violations = append(violations, fmt.Sprintf("estado must be one of %v", types.InvoiceStatuses()))
		}
	}
	violations = append(violations, monetaryViolations(map[string]*decimal.Decimal{
		"subtotal":        r.Subtotal,
		"impuestos":       r.Tax,
		"total":           r.Total,
		"deposito":        r.Deposit,
		"saldo_pendiente": r.RemainingBalance,
	})...)

	if r.Items != nil {
		for i := range *r.Items {
			violations = append(violations, (*r.Items)[i].violations(i)...)
		}
	}

	if len(violations) > 0 {
		return ierr.NewError("invalid invoice update").
			WithHint(strings.Join(violations, "; ")).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func monetaryViolations(fields map[string]*decimal.Decimal) []string {
	var violations []string
	for _, name := range []string{"subtotal", "impuestos", "total", "deposito", "saldo_pendiente"} {
		if v := fields[name]; v != nil && v.IsNegative() {
			violations = append(violations, fmt.Sprintf("%s must be >= 0", name))
		}
	}
	return violations
}

// InvoiceLineItemResponse is one line item in responses.
type InvoiceLineItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"descripcion"`
	Category    *string         `json:"categoria,omitempty"`
	UnitPrice   decimal.Decimal `json:"precio_unitario"`
	Quantity    int             `json:"cantidad"`
	LineTotal   decimal.Decimal `json:"total_linea"`
}

// InvoiceResponse is the owner-facing invoice projection.
type InvoiceResponse struct {
	ID               string                     `json:"id"`
	ClientID         string                     `json:"cliente_id"`
	PublicID         string                     `json:"public_id"`
	SequenceNumber   int                        `json:"numero_factura"`
	DisplayNumber    string                     `json:"numero_mostrado"`
	IssueDate        string                     `json:"fecha_emision"`
	DueDate          *string                    `json:"fecha_vencimiento,omitempty"`
	PaidDate         *string                    `json:"fecha_pago,omitempty"`
	Status           types.InvoiceStatus        `json:"estado"`
	Subtotal         decimal.Decimal            `json:"subtotal"`
	Tax              decimal.Decimal            `json:"impuestos"`
	Total            decimal.Decimal            `json:"total"`
	Deposit          decimal.Decimal            `json:"deposito"`
	RemainingBalance decimal.Decimal            `json:"saldo_pendiente"`
	Note             string                     `json:"notas,omitempty"`
	Terms            string                     `json:"terminos,omitempty"`
	LogoURL          string                     `json:"logo_url,omitempty"`
	SignatureURL     string                     `json:"firma_url,omitempty"`
	PaymentMethodID  *string                    `json:"metodo_pago_id,omitempty"`
	PDFURL           *string                    `json:"pdf_url"`
	Items            []*InvoiceLineItemResponse `json:"items"`
	CreatedAt        time.Time                  `json:"created_at"`
}

// PublicInvoiceResponse is the restricted projection served without
// authentication.
type PublicInvoiceResponse struct {
	DisplayNumber    string                     `json:"numero_mostrado"`
	Status           types.InvoiceStatus        `json:"estado"`
	IssueDate        string                     `json:"fecha_emision"`
	DueDate          *string                    `json:"fecha_vencimiento,omitempty"`
	PaidDate         *string                    `json:"fecha_pago,omitempty"`
	Subtotal         decimal.Decimal            `json:"subtotal"`
	Tax              decimal.Decimal            `json:"impuestos"`
	Total            decimal.Decimal            `json:"total"`
	Deposit          decimal.Decimal            `json:"deposito"`
	RemainingBalance decimal.Decimal            `json:"saldo_pendiente"`
	Note             string                     `json:"notas,omitempty"`
	Terms            string                     `json:"terminos,omitempty"`
	LogoURL          string                     `json:"logo_url,omitempty"`
	PDFURL           *string                    `json:"pdf_url"`
	Items            []*InvoiceLineItemResponse `json:"items"`
}

// ToLineItemResponses converts domain line items to their response shape.
func ToLineItemResponses(items []*invoice.LineItem) []*InvoiceLineItemResponse {
	responses := make([]*InvoiceLineItemResponse, len(items))
	for i, item := range items {
		responses[i] = &InvoiceLineItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Category:    item.Category,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal,
		}
	}
	return responses
}

// ToInvoiceResponse converts an invoice joined with its items.
func ToInvoiceResponse(inv *invoice.Invoice, items []*invoice.LineItem, numberPrefix string) *InvoiceResponse {
	if inv == nil {
		return nil
	}
	return &InvoiceResponse{
		ID:               inv.ID,
		ClientID:         inv.ClientID,
		PublicID:         inv.PublicID,
		SequenceNumber:   inv.SequenceNumber,
		DisplayNumber:    inv.DisplayNumber(numberPrefix),
		IssueDate:        inv.IssueDate,
		DueDate:          inv.DueDate,
		PaidDate:         inv.PaidDate,
		Status:           inv.Status,
		Subtotal:         inv.Subtotal,
		Tax:              inv.Tax,
		Total:            inv.Total,
		Deposit:          inv.Deposit,
		RemainingBalance: inv.RemainingBalance,
		Note:             inv.Note,
		Terms:            inv.Terms,
		LogoURL:          inv.LogoURL,
		SignatureURL:     inv.SignatureURL,
		PaymentMethodID:  inv.PaymentMethodID,
		PDFURL:           inv.PDFURL,
		Items:            ToLineItemResponses(items),
		CreatedAt:        inv.CreatedAt,
	}
}

// ToPublicInvoiceResponse converts an invoice to its public projection.
func ToPublicInvoiceResponse(inv *invoice.Invoice, items []*invoice.LineItem, numberPrefix string) *PublicInvoiceResponse {
	if inv == nil {
		return nil
	}
	return &PublicInvoiceResponse{
		DisplayNumber:    inv.DisplayNumber(numberPrefix),
		Status:           inv.Status,
		IssueDate:        inv.IssueDate,
		DueDate:          inv.DueDate,
		PaidDate:         inv.PaidDate,
		Subtotal:         inv.Subtotal,
		Tax:              inv.Tax,
		Total:            inv.Total,
		Deposit:          inv.Deposit,
		RemainingBalance: inv.RemainingBalance,
		Note:             inv.Note,
		Terms:            inv.Terms,
		LogoURL:          inv.LogoURL,
		PDFURL:           inv.PDFURL,
		Items:            ToLineItemResponses(items),
	}
}
