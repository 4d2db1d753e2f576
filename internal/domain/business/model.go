package business

// Profile holds the owner's business configuration: branding assets
// and the default terms/note merged into new invoices.
type Profile struct {
	ID           string `json:"id"`
	OwnerID      string `json:"user_id"`
	Name         string `json:"nombre_negocio"`
	LogoURL      string `json:"logo_url"`
	SignatureURL string `json:"firma_url"`
	DefaultTerms string `json:"terminos"`
	DefaultNote  string `json:"notas"`
	Phone        string `json:"telefono"`
	Address      string `json:"direccion"`
}
