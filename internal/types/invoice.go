package types

import (
	ierr "github.com/gestorly/gestorly/internal/errors"
	"github.com/samber/lo"
)

// InvoiceStatus is the lifecycle state of an invoice.
// draft and pending move freely in both directions; entering paid sets
// the paid date as a side effect of the same update.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

func InvoiceStatuses() []InvoiceStatus {
	return []InvoiceStatus{
		InvoiceStatusDraft,
		InvoiceStatusPending,
		InvoiceStatusPaid,
	}
}

func (s InvoiceStatus) Validate() error {
	if !lo.Contains(InvoiceStatuses(), s) {
		return ierr.NewError("invalid invoice status").
			WithHintf("status must be one of %v", InvoiceStatuses()).
			Mark(ierr.ErrValidation)
	}
	return nil
}
