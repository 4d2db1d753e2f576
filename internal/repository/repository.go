package repository

import (
	"context"

	"github.com/gestorly/gestorly/internal/supabase"
)

// Table names on the external data store.
const (
	tableAPITokens      = "api_tokens"
	tableUsers          = "users"
	tableInvoices       = "facturas"
	tableInvoiceItems   = "factura_items"
	tableBusinessConfig = "negocio_config"
	tableClients        = "clientes"
)

// resolveClient picks the data-access handle for this call: the
// request-scoped client when the caller authenticated with a session
// (row-level security applies), otherwise the privileged service
// client. Every query still filters by owner id explicitly, so API
// token requests stay tenant-isolated without RLS.
func resolveClient(ctx context.Context, service *supabase.Client) *supabase.Client {
	if scoped := supabase.FromContext(ctx); scoped != nil {
		return scoped
	}
	return service
}
