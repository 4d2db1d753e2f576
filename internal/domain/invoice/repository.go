package invoice

import "context"

// Repository defines the interface for invoice data access
type Repository interface {
	// Create persists the invoice row
	Create(ctx context.Context, inv *Invoice) error

	// CreateLineItems persists line items referencing an existing invoice
	CreateLineItems(ctx context.Context, items []*LineItem) error

	// Get retrieves an invoice owned by ownerID
	Get(ctx context.Context, id string, ownerID string) (*Invoice, error)

	// GetByPublicID retrieves an invoice by its public identifier,
	// regardless of owner
	GetByPublicID(ctx context.Context, publicID string) (*Invoice, error)

	// ListByOwner retrieves all invoices for an owner, newest first
	ListByOwner(ctx context.Context, ownerID string) ([]*Invoice, error)

	// ListLineItems retrieves the invoice's line items in insertion order
	ListLineItems(ctx context.Context, invoiceID string) ([]*LineItem, error)

	// Update applies a partial update; only the fields present in the
	// patch are changed
	Update(ctx context.Context, id string, ownerID string, patch map[string]interface{}) (*Invoice, error)

	// Delete removes the invoice row
	Delete(ctx context.Context, id string, ownerID string) error

	// DeleteLineItems removes every line item of an invoice
	DeleteLineItems(ctx context.Context, invoiceID string) error

	// MaxSequenceNumber returns the owner's current highest sequence
	// number, 0 when the owner has no invoices
	MaxSequenceNumber(ctx context.Context, ownerID string) (int, error)
}
