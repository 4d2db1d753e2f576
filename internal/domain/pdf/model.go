package pdf

import "github.com/shopspring/decimal"

// InvoiceData is the renderer input: a flat, display-ready projection
// of an invoice joined with its client and the owner's business profile.
type InvoiceData struct {
	DisplayNumber string
	Status        string
	IssueDate     string
	DueDate       string
	PaidDate      string

	BusinessName    string
	BusinessPhone   string
	BusinessAddress string
	LogoURL         string
	SignatureURL    string

	ClientName    string
	ClientEmail   string
	ClientPhone   string
	ClientAddress string

	Items []LineItemData

	Subtotal         decimal.Decimal
	Tax              decimal.Decimal
	Total            decimal.Decimal
	Deposit          decimal.Decimal
	RemainingBalance decimal.Decimal

	Note  string
	Terms string
}

// LineItemData is one row of the rendered line-item table.
type LineItemData struct {
	Description string
	Category    string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}
