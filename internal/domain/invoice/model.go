package invoice

import (
	"fmt"
	"time"

	"github.com/gestorly/gestorly/internal/types"
	"github.com/shopspring/decimal"
)

// Invoice is a billing document owned by a user. SequenceNumber is
// assigned exactly once at creation as the owner's current maximum
// plus one and is never renumbered.
type Invoice struct {
	ID               string              `json:"id"`
	OwnerID          string              `json:"user_id"`
	ClientID         string              `json:"cliente_id"`
	PublicID         string              `json:"public_id"`
	SequenceNumber   int                 `json:"numero_factura"`
	IssueDate        string              `json:"fecha_emision"`
	DueDate          *string             `json:"fecha_vencimiento"`
	PaidDate         *string             `json:"fecha_pago"`
	Status           types.InvoiceStatus `json:"estado"`
	Subtotal         decimal.Decimal     `json:"subtotal"`
	Tax              decimal.Decimal     `json:"impuestos"`
	Total            decimal.Decimal     `json:"total"`
	Deposit          decimal.Decimal     `json:"deposito"`
	RemainingBalance decimal.Decimal     `json:"saldo_pendiente"`
	Note             string              `json:"notas"`
	Terms            string              `json:"terminos"`
	LogoURL          string              `json:"logo_url"`
	SignatureURL     string              `json:"firma_url"`
	PaymentMethodID  *string             `json:"metodo_pago_id"`
	PDFURL           *string             `json:"pdf_url"`
	CreatedAt        time.Time           `json:"created_at"`
}

// LineItem belongs to exactly one invoice and cannot outlive it.
type LineItem struct {
	ID          string          `json:"id"`
	InvoiceID   string          `json:"factura_id"`
	Description string          `json:"descripcion"`
	Category    *string         `json:"categoria"`
	UnitPrice   decimal.Decimal `json:"precio_unitario"`
	Quantity    int             `json:"cantidad"`
	LineTotal   decimal.Decimal `json:"total_linea"`
}

// DisplayNumber formats the invoice number shown to users: the fixed
// numeric prefix concatenated with the per-owner sequence number.
func (i *Invoice) DisplayNumber(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, i.SequenceNumber)
}

// IsPaid reports whether the invoice has been marked paid.
func (i *Invoice) IsPaid() bool {
	return i.Status == types.InvoiceStatusPaid
}
