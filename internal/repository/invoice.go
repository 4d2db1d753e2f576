package repository

import (
	"context"
	"sort"

	"github.com/gestorly/gestorly/internal/domain/invoice"
	ierr "github.com/gestorly/gestorly/internal/errors"
	"github.com/gestorly/gestorly/internal/logger"
	"github.com/gestorly/gestorly/internal/supabase"
)

type invoiceRepository struct {
	client *supabase.Client
	logger *logger.Logger
}

// NewInvoiceRepository creates a supabase-backed invoice repository.
func NewInvoiceRepository(client *supabase.Client, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{
		client: client,
		logger: logger,
	}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	db := resolveClient(ctx, r.client)

	var inserted []invoice.Invoice
	err := db.DB.From(tableInvoices).
		Insert(inv).
		ExecuteWithContext(ctx, &inserted)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create invoice").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *invoiceRepository) CreateLineItems(ctx context.Context, items []*invoice.LineItem) error {
	db := resolveClient(ctx, r.client)

	var inserted []invoice.LineItem
	err := db.DB.From(tableInvoiceItems).
		Insert(items).
		ExecuteWithContext(ctx, &inserted)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create invoice line items").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id string, ownerID string) (*invoice.Invoice, error) {
	db := resolveClient(ctx, r.client)

	var rows []invoice.Invoice
	err := db.DB.From(tableInvoices).
		Select("*").
		Eq("id", id).
		Eq("user_id", ownerID).
		ExecuteWithContext(ctx, &rows)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch invoice").
			Mark(ierr.ErrDatabase)
	}
	if len(rows) == 0 {
		return nil, ierr.NewError("invoice not found").
			WithHint("Invoice not found").
			WithReportableDetails(map[string]any{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	return &rows[0], nil
}

func (r *invoiceRepository) GetByPublicID(ctx context.Context, publicID string) (*invoice.Invoice, error) {
	var rows []invoice.Invoice
	err := r.client.DB.From(tableInvoices).
		Select("*").
		Eq("public_id", publicID).
		ExecuteWithContext(ctx, &rows)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch invoice").
			Mark(ierr.ErrDatabase)
	}
	if len(rows) == 0 {
		return nil, ierr.NewError("invoice not found").
			WithHint("Invoice not found").
			WithReportableDetails(map[string]any{"public_id": publicID}).
			Mark(ierr.ErrNotFound)
	}
	return &rows[0], nil
}

func (r *invoiceRepository) ListByOwner(ctx context.Context, ownerID string) ([]*invoice.Invoice, error) {
	db := resolveClient(ctx, r.client)

	var rows []invoice.Invoice
	err := db.DB.From(tableInvoices).
		Select("*").
		Eq("user_id", ownerID).
		ExecuteWithContext(ctx, &rows)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list invoices").
			Mark(ierr.ErrDatabase)
	}

	invoices := make([]*invoice.Invoice, len(rows))
	for i := range rows {
		invoices[i] = &rows[i]
	}
	sort.Slice(invoices, func(i, j int) bool {
		return invoices[i].SequenceNumber > invoices[j].SequenceNumber
	})
	return invoices, nil
}

func (r *invoiceRepository) ListLineItems(ctx context.Context, invoiceID string) ([]*invoice.LineItem, error) {
	db := resolveClient(ctx, r.client)

	var rows []invoice.LineItem
	err := db.DB.From(tableInvoiceItems).
		Select("*").
		Eq("factura_id", invoiceID).
		ExecuteWithContext(ctx, &rows)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list invoice line items").
			Mark(ierr.ErrDatabase)
	}

	items := make([]*invoice.LineItem, len(rows))
	for i := range rows {
		items[i] = &rows[i]
	}
	// item ids are ULIDs, so lexical order is insertion order
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (r *invoiceRepository) Update(ctx context.Context, id string, ownerID string, patch map[string]interface{}) (*invoice.Invoice, error) {
	db := resolveClient(ctx, r.client)

	var updated []invoice.Invoice
	err := db.DB.From(tableInvoices).
		Update(patch).
		Eq("id", id).
		Eq("user_id", ownerID).
		ExecuteWithContext(ctx, &updated)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to update invoice").
			Mark(ierr.ErrDatabase)
	}
	if len(updated) == 0 {
		return nil, ierr.NewError("invoice not found").
			WithHint("Invoice not found").
			WithReportableDetails(map[string]any{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	return &updated[0], nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id string, ownerID string) error {
	db := resolveClient(ctx, r.client)

	err := db.DB.From(tableInvoices).
		Delete().
		Eq("id", id).
		Eq("user_id", ownerID).
		ExecuteWithContext(ctx, nil)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete invoice").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *invoiceRepository) DeleteLineItems(ctx context.Context, invoiceID string) error {
	db := resolveClient(ctx, r.client)

	err := db.DB.From(tableInvoiceItems).
		Delete().
		Eq("factura_id", invoiceID).
		ExecuteWithContext(ctx, nil)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete invoice line items").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *invoiceRepository) MaxSequenceNumber(ctx context.Context, ownerID string) (int, error) {
	db := resolveClient(ctx, r.client)

	var rows []struct {
		SequenceNumber int `json:"numero_factura"`
	}
	err := db.DB.From(tableInvoices).
		Select("numero_factura").
		Eq("user_id", ownerID).
		ExecuteWithContext(ctx, &rows)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to read invoice sequence numbers").
			Mark(ierr.ErrDatabase)
	}

	max := 0
	for _, row := range rows {
		if row.SequenceNumber > max {
			max = row.SequenceNumber
		}
	}
	return max, nil
}
