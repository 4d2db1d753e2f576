package testutil

import (
	"context"
	"sync"

	"github.com/gestorly/gestorly/internal/domain/invoice"
	ierr "github.com/gestorly/gestorly/internal/errors"
	"github.com/gestorly/gestorly/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]

	mu    sync.RWMutex
	items map[string][]*invoice.LineItem
}

// NewInMemoryInvoiceStore creates a new in-memory invoice store
func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.Invoice](),
		items:         make(map[string][]*invoice.LineItem),
	}
}

func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	if inv == nil {
		return nil
	}
	c := *inv
	return &c
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	if inv == nil {
		return ierr.NewError("invoice cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) CreateLineItems(ctx context.Context, items []*invoice.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		c := *item
		s.items[item.InvoiceID] = append(s.items[item.InvoiceID], &c)
	}
	return nil
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string, ownerID string) (*invoice.Invoice, error) {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || inv.OwnerID != ownerID {
		return nil, ierr.NewError("invoice not found").
			WithHint("Invoice not found").
			Mark(ierr.ErrNotFound)
	}
	return copyInvoice(inv), nil
}

func (s *InMemoryInvoiceStore) GetByPublicID(ctx context.Context, publicID string) (*invoice.Invoice, error) {
	invoices, _ := s.InMemoryStore.List(ctx, nil, nil, nil)
	for _, inv := range invoices {
		if inv.PublicID == publicID {
			return copyInvoice(inv), nil
		}
	}
	return nil, ierr.NewError("invoice not found").
		WithHint("Invoice not found").
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryInvoiceStore) ListByOwner(ctx context.Context, ownerID string) ([]*invoice.Invoice, error) {
	invoices, _ := s.InMemoryStore.List(ctx, nil,
		func(ctx context.Context, inv *invoice.Invoice, _ interface{}) bool {
			return inv.OwnerID == ownerID
		},
		func(i, j *invoice.Invoice) bool {
			return i.SequenceNumber > j.SequenceNumber
		})
	result := make([]*invoice.Invoice, len(invoices))
	for i, inv := range invoices {
		result[i] = copyInvoice(inv)
	}
	return result, nil
}

func (s *InMemoryInvoiceStore) ListLineItems(ctx context.Context, invoiceID string) ([]*invoice.LineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := s.items[invoiceID]
	result := make([]*invoice.LineItem, len(items))
	for i, item := range items {
		c := *item
		result[i] = &c
	}
	return result, nil
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, id string, ownerID string, patch map[string]interface{}) (*invoice.Invoice, error) {
	inv, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	applyInvoicePatch(inv, patch)
	if err := s.InMemoryStore.Update(ctx, id, inv); err != nil {
		return nil, err
	}
	return copyInvoice(inv), nil
}

func (s *InMemoryInvoiceStore) Delete(ctx context.Context, id string, ownerID string) error {
	if _, err := s.Get(ctx, id, ownerID); err != nil {
		return err
	}
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryInvoiceStore) DeleteLineItems(ctx context.Context, invoiceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, invoiceID)
	return nil
}

func (s *InMemoryInvoiceStore) MaxSequenceNumber(ctx context.Context, ownerID string) (int, error) {
	invoices, _ := s.InMemoryStore.List(ctx, nil, nil, nil)
	max := 0
	for _, inv := range invoices {
		if inv.OwnerID == ownerID && inv.SequenceNumber > max {
			max = inv.SequenceNumber
		}
	}
	return max, nil
}

// Clear removes all invoices and line items from the store
func (s *InMemoryInvoiceStore) Clear() {
	s.InMemoryStore.Clear()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string][]*invoice.LineItem)
}

// applyInvoicePatch mirrors the column-keyed partial update the real
// backend performs.
func applyInvoicePatch(inv *invoice.Invoice, patch map[string]interface{}) {
	for key, value := range patch {
		switch key {
		case "cliente_id":
			inv.ClientID = value.(string)
		case "estado":
			inv.Status = value.(types.InvoiceStatus)
		case "fecha_emision":
			inv.IssueDate = value.(string)
		case "fecha_vencimiento":
			inv.DueDate = lo.ToPtr(value.(string))
		case "fecha_pago":
			inv.PaidDate = lo.ToPtr(value.(string))
		case "subtotal":
			inv.Subtotal = value.(decimal.Decimal)
		case "impuestos":
			inv.Tax = value.(decimal.Decimal)
		case "total":
			inv.Total = value.(decimal.Decimal)
		case "deposito":
			inv.Deposit = value.(decimal.Decimal)
		case "saldo_pendiente":
			inv.RemainingBalance = value.(decimal.Decimal)
		case "notas":
			inv.Note = value.(string)
		case "terminos":
			inv.Terms = value.(string)
		case "logo_url":
			inv.LogoURL = value.(string)
		case "firma_url":
			inv.SignatureURL = value.(string)
		case "metodo_pago_id":
			inv.PaymentMethodID = lo.ToPtr(value.(string))
		case "pdf_url":
			inv.PDFURL = lo.ToPtr(value.(string))
		}
	}
}
