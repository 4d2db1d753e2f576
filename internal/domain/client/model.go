package client

// Client is the minimal client-record projection this core needs:
// invoice creation validates the reference and the PDF renderer prints
// the client block. Full client CRUD lives in its own handlers.
type Client struct {
	ID      string `json:"id"`
	OwnerID string `json:"user_id"`
	Name    string `json:"nombre"`
	Email   string `json:"email"`
	Phone   string `json:"telefono"`
	Address string `json:"direccion"`
}
